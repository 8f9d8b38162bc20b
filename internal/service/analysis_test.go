package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/medguide-server/internal/domain"
	"github.com/medguide-server/internal/history"
	"github.com/medguide-server/internal/rules"
)

type stubExtractor struct {
	result *domain.ExtractionResult
	err    error
	calls  int
}

func (s *stubExtractor) Extract(ctx context.Context, patient *domain.PatientProfile) (*domain.ExtractionResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type memStore struct {
	saved   []*history.Analysis
	saveErr error
}

func (m *memStore) Save(ctx context.Context, a *history.Analysis) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, a)
	return nil
}

func (m *memStore) Get(ctx context.Context, id string) (*history.Analysis, error) {
	for _, a := range m.saved {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, history.ErrNotFound
}

func (m *memStore) List(ctx context.Context, limit, offset int) ([]*history.Analysis, error) {
	return m.saved, nil
}

func (m *memStore) Count(ctx context.Context) (int64, error) {
	return int64(len(m.saved)), nil
}

func (m *memStore) Delete(ctx context.Context, id string) error { return nil }
func (m *memStore) Close() error                                { return nil }

func newTestAnalysisService(t *testing.T, extractor domain.EventExtractor, store history.Store) *AnalysisService {
	t.Helper()
	catalog, err := rules.NewCatalog()
	if err != nil {
		t.Fatalf("Failed to build catalog: %v", err)
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	svc, err := NewAnalysisService(logger, extractor, NewSafetyEngine(logger, catalog), store, 16)
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	return svc
}

func TestAnalyzeRecord(t *testing.T) {
	extractor := &stubExtractor{
		result: &domain.ExtractionResult{
			PatientID: "pt-1",
			Events: []domain.MedicationEvent{
				event("2024-01-01", "Omeprazole", domain.STARTED),
			},
		},
	}
	store := &memStore{}
	svc := newTestAnalysisService(t, extractor, store)

	report, err := svc.AnalyzeRecord(context.Background(), elderly())
	if err != nil {
		t.Fatalf("AnalyzeRecord failed: %v", err)
	}

	if report.ID == "" {
		t.Error("Expected a generated analysis ID")
	}
	if len(report.Safety.Alerts) == 0 {
		t.Error("Expected alerts for an elderly patient on a PPI")
	}
	if len(store.saved) != 1 {
		t.Fatalf("Expected one persisted analysis, got %d", len(store.saved))
	}
	if store.saved[0].ID != report.ID {
		t.Error("Expected persisted record to carry the report ID")
	}
}

func TestAnalyzeRecordStoreFailureDoesNotFailAnalysis(t *testing.T) {
	extractor := &stubExtractor{
		result: &domain.ExtractionResult{PatientID: "pt-1"},
	}
	store := &memStore{saveErr: errors.New("disk full")}
	svc := newTestAnalysisService(t, extractor, store)

	report, err := svc.AnalyzeRecord(context.Background(), elderly())
	if err != nil {
		t.Fatalf("Expected analysis to succeed despite storage failure, got %v", err)
	}
	if report.Safety == nil {
		t.Error("Expected a safety result")
	}
}

func TestAnalyzeRecordPropagatesExtractionError(t *testing.T) {
	extractor := &stubExtractor{err: errors.New("upstream down")}
	svc := newTestAnalysisService(t, extractor, &memStore{})

	if _, err := svc.AnalyzeRecord(context.Background(), elderly()); err == nil {
		t.Error("Expected extraction error to propagate")
	}
}

func TestEvaluateSafetyUsesCache(t *testing.T) {
	svc := newTestAnalysisService(t, &stubExtractor{}, &memStore{})
	patient := elderly()
	events := []domain.MedicationEvent{
		event("2024-01-01", "Omeprazole", domain.STARTED),
	}

	first, err := svc.EvaluateSafety(patient, events)
	if err != nil {
		t.Fatalf("EvaluateSafety failed: %v", err)
	}
	second, err := svc.EvaluateSafety(patient, events)
	if err != nil {
		t.Fatalf("EvaluateSafety failed: %v", err)
	}

	// Cache hit returns the identical result value.
	if first != second {
		t.Error("Expected cached result on identical input")
	}

	// Different input misses the cache and evaluates fresh.
	other, err := svc.EvaluateSafety(&domain.PatientProfile{ID: "pt-2", Age: 40}, events)
	if err != nil {
		t.Fatalf("EvaluateSafety failed: %v", err)
	}
	if other == first {
		t.Error("Expected a distinct result for different input")
	}
}

func TestExportFHIRNotFound(t *testing.T) {
	svc := newTestAnalysisService(t, &stubExtractor{}, &memStore{})
	if _, err := svc.ExportFHIR(context.Background(), "missing"); !errors.Is(err, history.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
