package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medguide-server/internal/domain"
	"github.com/medguide-server/internal/history"
	"github.com/medguide-server/pkg/extract"
)

// evaluateRequest carries pre-structured events for direct rule evaluation,
// bypassing extraction.
type evaluateRequest struct {
	Patient *domain.PatientProfile   `json:"patient" binding:"required"`
	Events  []domain.MedicationEvent `json:"events"`
}

// listResponse wraps a page of stored analyses.
type listResponse struct {
	Analyses []*history.Analysis `json:"analyses"`
	Total    int64               `json:"total"`
	Limit    int                 `json:"limit"`
	Offset   int                 `json:"offset"`
}

// handleAnalyze runs the full pipeline: extraction from the profile's notes,
// then rule evaluation over the extracted timeline.
func (s *Server) handleAnalyze(c *gin.Context) {
	var patient domain.PatientProfile
	if err := c.ShouldBindJSON(&patient); err != nil {
		s.writeError(c, http.StatusBadRequest, domain.ErrInvalidInput, "invalid request body", err.Error())
		return
	}

	report, err := s.analysis.AnalyzeRecord(c.Request.Context(), &patient)
	if err != nil {
		s.mapError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// handleEvaluateSafety evaluates the rule catalog over caller-supplied
// structured events without calling the extraction service.
func (s *Server) handleEvaluateSafety(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, domain.ErrInvalidInput, "invalid request body", err.Error())
		return
	}

	result, err := s.analysis.EvaluateSafety(req.Patient, req.Events)
	if err != nil {
		s.mapError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleListAnalyses returns stored analyses, most recent first.
func (s *Server) handleListAnalyses(c *gin.Context) {
	limit := parseQueryInt(c, "limit", 20)
	offset := parseQueryInt(c, "offset", 0)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	analyses, total, err := s.analysis.ListAnalyses(c.Request.Context(), limit, offset)
	if err != nil {
		s.mapError(c, err)
		return
	}

	if analyses == nil {
		analyses = []*history.Analysis{}
	}
	c.JSON(http.StatusOK, listResponse{
		Analyses: analyses,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	})
}

// handleGetAnalysis returns one stored analysis by ID.
func (s *Server) handleGetAnalysis(c *gin.Context) {
	analysis, err := s.analysis.GetAnalysis(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// handleExportFHIR renders a stored analysis as a FHIR collection bundle.
func (s *Server) handleExportFHIR(c *gin.Context) {
	bundle, err := s.analysis.ExportFHIR(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, bundle)
}

// mapError translates service errors to HTTP status codes and the standard
// error envelope.
func (s *Server) mapError(c *gin.Context, err error) {
	var inputErr *domain.InputError
	if errors.As(err, &inputErr) {
		s.writeError(c, http.StatusBadRequest, domain.ErrInvalidInput, inputErr.Error(), "")
		return
	}

	if errors.Is(err, history.ErrNotFound) {
		s.writeError(c, http.StatusNotFound, domain.ErrNotFoundCode, "analysis not found", "")
		return
	}

	var upstream *extract.UpstreamError
	if errors.As(err, &upstream) {
		switch upstream.Category {
		case extract.CategoryRateLimit:
			s.writeError(c, http.StatusTooManyRequests, domain.ErrRateLimit, "extraction service is busy", "")
		case extract.CategoryAuth, extract.CategoryServer, extract.CategoryParsing, extract.CategorySafety:
			s.writeError(c, http.StatusBadGateway, domain.ErrExtraction, "extraction service failed", upstream.Message)
		default:
			s.writeError(c, http.StatusBadGateway, domain.ErrExtraction, "extraction service failed", "")
		}
		return
	}

	s.logger.WithError(err).Error("Unhandled request error")
	s.writeError(c, http.StatusInternalServerError, domain.ErrInternalServer, "internal server error", "")
}

// writeError emits the standard error envelope.
func (s *Server) writeError(c *gin.Context, status int, code, message, details string) {
	c.JSON(status, gin.H{
		"error": domain.NewAPIError(code, message, details, c.GetString("request_id")),
	})
}

func parseQueryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
