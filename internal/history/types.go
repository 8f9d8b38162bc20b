// Package history provides persistence for completed patient analyses: the
// extracted medication timeline plus the safety assessment produced from it.
// Two backends are available, SQLite for standalone operation and PostgreSQL
// for shared deployments.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/medguide-server/internal/domain"
)

// ErrNotFound is returned when no analysis exists for the requested ID.
var ErrNotFound = errors.New("analysis not found")

// Analysis is one persisted record of a completed analysis run.
type Analysis struct {
	ID          string                    `json:"id"`
	PatientID   string                    `json:"patient_id"`
	PatientName string                    `json:"patient_name,omitempty"`
	Patient     domain.PatientProfile     `json:"patient"`
	Events      []domain.MedicationEvent  `json:"events"`
	Alerts      []domain.SafetyAlert      `json:"alerts"`
	Summary     string                    `json:"summary"`
	CreatedAt   time.Time                 `json:"created_at"`
}

// Store defines the interface for analysis history storage.
type Store interface {
	// Save persists a completed analysis.
	Save(ctx context.Context, analysis *Analysis) error

	// Get retrieves an analysis by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Analysis, error)

	// List returns analyses ordered most recent first, with pagination.
	List(ctx context.Context, limit, offset int) ([]*Analysis, error)

	// Count returns the total number of stored analyses.
	Count(ctx context.Context) (int64, error)

	// Delete removes an analysis by ID.
	Delete(ctx context.Context, id string) error

	// Close closes the store and releases resources.
	Close() error
}
