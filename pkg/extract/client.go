// Package extract calls the upstream clinical NER service that turns
// free-text progress notes into a structured medication timeline, and
// normalizes its output before it reaches the deterministic safety engine.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/medguide-server/internal/domain"
)

// Client calls the extraction service over HTTP. It implements
// domain.EventExtractor.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	retryCount int
	retryDelay time.Duration
	logger     *logrus.Logger
}

// NewClient creates an extraction client with rate limiting and a circuit
// breaker around the upstream service.
func NewClient(config domain.ExtractorConfig, logger *logrus.Logger) *Client {
	if config.RateLimit <= 0 {
		config.RateLimit = 2
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = time.Second
	}

	cbSettings := gobreaker.Settings{
		Name:        "ExtractionService",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"circuit_breaker": name,
				"from_state":      from,
				"to_state":        to,
			}).Warn("Circuit breaker state changed")
		},
	}

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		apiKey:  config.APIKey,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter:    rate.NewLimiter(rate.Limit(config.RateLimit), 1),
		breaker:    gobreaker.NewCircuitBreaker(cbSettings),
		retryCount: config.RetryCount,
		retryDelay: config.RetryDelay,
		logger:     logger,
	}
}

// extractRequest is the payload sent to the extraction service.
type extractRequest struct {
	PatientID string `json:"patientId"`
	Name      string `json:"name"`
	Notes     string `json:"notes"`
}

// extractResponse mirrors the service's response envelope.
type extractResponse struct {
	Extraction *domain.ExtractionResult `json:"extraction"`
}

// Extract sends the patient's notes to the extraction service and returns the
// normalized medication timeline. Rate-limited and retried on transient
// failures; retries use a fixed delay.
func (c *Client) Extract(ctx context.Context, patient *domain.PatientProfile) (*domain.ExtractionResult, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retryCount; attempt++ {
		if attempt > 0 {
			c.logger.WithFields(logrus.Fields{
				"patient_id": patient.ID,
				"attempt":    attempt,
			}).Warn("Retrying extraction")
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := c.extractOnce(ctx, patient)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if upstream, ok := err.(*UpstreamError); !ok || !upstream.Retryable() {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) extractOnce(ctx context.Context, patient *domain.PatientProfile) (*domain.ExtractionResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doRequest(ctx, patient)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, newUpstreamError(CategoryServer, "extraction service circuit open", err)
		}
		return nil, err
	}
	return result.(*domain.ExtractionResult), nil
}

func (c *Client) doRequest(ctx context.Context, patient *domain.PatientProfile) (*domain.ExtractionResult, error) {
	payload, err := json.Marshal(extractRequest{
		PatientID: patient.ID,
		Name:      patient.Name,
		Notes:     patient.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/extract", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newUpstreamError(CategoryServer, "extraction request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newUpstreamError(CategoryServer, "failed to read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		category := categorizeStatus(resp.StatusCode)
		return nil, newUpstreamError(category,
			fmt.Sprintf("extraction service returned status %d", resp.StatusCode), nil)
	}

	return parseExtraction(body)
}

// parseExtraction decodes the service response, tolerating markdown fencing,
// and normalizes each event for downstream use.
func parseExtraction(body []byte) (*domain.ExtractionResult, error) {
	clean := CleanJSONResponse(string(body))

	var envelope extractResponse
	if err := json.Unmarshal([]byte(clean), &envelope); err != nil {
		return nil, newUpstreamError(CategoryParsing, "failed to decode extraction response", err)
	}
	if envelope.Extraction == nil {
		return nil, newUpstreamError(CategoryParsing, "response missing extraction", nil)
	}

	extraction := envelope.Extraction
	for i := range extraction.Events {
		evt := &extraction.Events[i]
		evt.ID = fmt.Sprintf("evt_%d_%s", i, uuid.New().String())
		evt.Medication = TitleCase(evt.Medication)
		evt.Route = FormatRoute(evt.Route)
		// Some responses return full timestamps; keep the calendar date only.
		if idx := strings.IndexByte(evt.Date, 'T'); idx != -1 {
			evt.Date = evt.Date[:idx]
		}
	}
	return extraction, nil
}
