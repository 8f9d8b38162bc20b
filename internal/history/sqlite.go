package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/medguide-server/internal/domain"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite analysis store.
// It creates the database file and schema if they don't exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		patient_id TEXT NOT NULL,
		patient_name TEXT DEFAULT '',
		patient_json TEXT NOT NULL,
		events_json TEXT NOT NULL,
		alerts_json TEXT NOT NULL,
		summary TEXT DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_patient_id ON analyses(patient_id);
	CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
	`

	_, err := db.Exec(schema)
	return err
}

// scanner is an interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanAnalysis scans a row into an Analysis struct, decoding the JSON
// document columns.
func scanAnalysis(s scanner) (*Analysis, error) {
	a := &Analysis{}
	var patientJSON, eventsJSON, alertsJSON string

	err := s.Scan(
		&a.ID, &a.PatientID, &a.PatientName,
		&patientJSON, &eventsJSON, &alertsJSON,
		&a.Summary, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(patientJSON), &a.Patient); err != nil {
		return nil, fmt.Errorf("failed to decode patient: %w", err)
	}
	if err := json.Unmarshal([]byte(eventsJSON), &a.Events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	if err := json.Unmarshal([]byte(alertsJSON), &a.Alerts); err != nil {
		return nil, fmt.Errorf("failed to decode alerts: %w", err)
	}
	return a, nil
}

func encodeAnalysis(a *Analysis) (patientJSON, eventsJSON, alertsJSON string, err error) {
	p, err := json.Marshal(a.Patient)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode patient: %w", err)
	}
	// Encode empty slices as [] rather than null so decoding round-trips.
	events := a.Events
	if events == nil {
		events = []domain.MedicationEvent{}
	}
	e, err := json.Marshal(events)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode events: %w", err)
	}
	alerts := a.Alerts
	if alerts == nil {
		alerts = []domain.SafetyAlert{}
	}
	al, err := json.Marshal(alerts)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode alerts: %w", err)
	}
	return string(p), string(e), string(al), nil
}

// Save persists a completed analysis.
func (s *SQLiteStore) Save(ctx context.Context, analysis *Analysis) error {
	if analysis.ID == "" {
		return fmt.Errorf("analysis ID is required")
	}
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now()
	}

	patientJSON, eventsJSON, alertsJSON, err := encodeAnalysis(analysis)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (
			id, patient_id, patient_name,
			patient_json, events_json, alerts_json,
			summary, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		analysis.ID,
		analysis.PatientID,
		analysis.PatientName,
		patientJSON,
		eventsJSON,
		alertsJSON,
		analysis.Summary,
		analysis.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert: %w", err)
	}
	return nil
}

// Get retrieves an analysis by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Analysis, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, patient_id, patient_name,
			patient_json, events_json, alerts_json,
			summary, created_at
		FROM analyses
		WHERE id = ?
	`, id)

	a, err := scanAnalysis(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}
	return a, nil
}

// List returns analyses ordered most recent first.
func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]*Analysis, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, patient_id, patient_name,
			patient_json, events_json, alerts_json,
			summary, created_at
		FROM analyses
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var result []*Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// Count returns the total number of stored analyses.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM analyses").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count: %w", err)
	}
	return count, nil
}

// Delete removes an analysis by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM analyses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
