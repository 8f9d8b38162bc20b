package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/medguide-server/internal/domain"
	"github.com/medguide-server/internal/fhir"
	"github.com/medguide-server/internal/history"
)

// AnalysisReport is the complete output of one analysis run: the extracted
// timeline plus the safety assessment over it.
type AnalysisReport struct {
	ID         string                   `json:"id"`
	Extraction *domain.ExtractionResult `json:"extraction"`
	Safety     *domain.SafetyResult     `json:"safety"`
	CreatedAt  time.Time                `json:"created_at"`
}

// AnalysisService orchestrates the two-stage pipeline: probabilistic NER
// extraction of the medication timeline, then deterministic rule evaluation
// over the extracted events. The rules engine only ever sees structured
// events, never raw note text.
type AnalysisService struct {
	logger    *logrus.Logger
	extractor domain.EventExtractor
	engine    *SafetyEngine
	store     history.Store
	cache     *lru.Cache[string, *domain.SafetyResult]
}

// NewAnalysisService creates the analysis pipeline. cacheSize bounds the
// evaluation result cache; values below 1 fall back to a small default.
func NewAnalysisService(
	logger *logrus.Logger,
	extractor domain.EventExtractor,
	engine *SafetyEngine,
	store history.Store,
	cacheSize int,
) (*AnalysisService, error) {
	if cacheSize < 1 {
		cacheSize = 128
	}
	cache, err := lru.New[string, *domain.SafetyResult](cacheSize)
	if err != nil {
		return nil, err
	}
	return &AnalysisService{
		logger:    logger,
		extractor: extractor,
		engine:    engine,
		store:     store,
		cache:     cache,
	}, nil
}

// AnalyzeRecord runs the full pipeline for one patient: extract the timeline
// from their notes, evaluate safety rules over it, and persist the result.
// A storage failure is logged but does not fail the analysis; the caller
// still gets the report.
func (s *AnalysisService) AnalyzeRecord(ctx context.Context, patient *domain.PatientProfile) (*AnalysisReport, error) {
	if patient == nil {
		return nil, domain.NewInputError("patient", "patient profile is required", nil)
	}
	if err := patient.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	extraction, err := s.extractor.Extract(ctx, patient)
	if err != nil {
		return nil, err
	}

	safety, err := s.EvaluateSafety(patient, extraction.Events)
	if err != nil {
		return nil, err
	}

	report := &AnalysisReport{
		ID:         uuid.New().String(),
		Extraction: extraction,
		Safety:     safety,
		CreatedAt:  time.Now(),
	}

	if err := s.store.Save(ctx, &history.Analysis{
		ID:          report.ID,
		PatientID:   patient.ID,
		PatientName: patient.Name,
		Patient:     *patient,
		Events:      extraction.Events,
		Alerts:      safety.Alerts,
		Summary:     safety.Summary,
		CreatedAt:   report.CreatedAt,
	}); err != nil {
		s.logger.WithError(err).WithField("analysis_id", report.ID).
			Warn("Failed to persist analysis, continuing")
	}

	s.logger.WithFields(logrus.Fields{
		"analysis_id": report.ID,
		"patient_id":  patient.ID,
		"event_count": len(extraction.Events),
		"alert_count": len(safety.Alerts),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Completed patient analysis")

	return report, nil
}

// EvaluateSafety evaluates the rule catalog over already-structured events.
// Results are cached by content hash; evaluation is deterministic, so a cache
// hit is always identical to re-running the engine.
func (s *AnalysisService) EvaluateSafety(patient *domain.PatientProfile, events []domain.MedicationEvent) (*domain.SafetyResult, error) {
	key, err := evaluationKey(patient, events)
	if err == nil {
		if cached, ok := s.cache.Get(key); ok {
			return cached, nil
		}
	}

	result, err2 := s.engine.EvaluateResult(patient, events)
	if err2 != nil {
		return nil, err2
	}

	if err == nil {
		s.cache.Add(key, result)
	}
	return result, nil
}

// GetAnalysis retrieves a stored analysis by ID.
func (s *AnalysisService) GetAnalysis(ctx context.Context, id string) (*history.Analysis, error) {
	return s.store.Get(ctx, id)
}

// ListAnalyses returns stored analyses, most recent first.
func (s *AnalysisService) ListAnalyses(ctx context.Context, limit, offset int) ([]*history.Analysis, int64, error) {
	analyses, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return analyses, total, nil
}

// ExportFHIR renders a stored analysis as a FHIR collection bundle.
func (s *AnalysisService) ExportFHIR(ctx context.Context, id string) (*fhir.Bundle, error) {
	analysis, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return fhir.NewBundle(&analysis.Patient, analysis.Events, time.Now()), nil
}

// evaluationKey derives a cache key from the evaluation inputs.
func evaluationKey(patient *domain.PatientProfile, events []domain.MedicationEvent) (string, error) {
	h := sha256.New()
	enc := json.NewEncoder(h)
	if err := enc.Encode(patient); err != nil {
		return "", err
	}
	if err := enc.Encode(events); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
