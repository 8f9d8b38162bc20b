package history

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/medguide-server/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements the Store interface using PostgreSQL via the pgx
// stdlib driver.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to PostgreSQL, applies pending schema migrations,
// and returns a ready store.
func NewPostgresStore(ctx context.Context, cfg *domain.DatabaseConfig) (*PostgresStore, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Database, cfg.Username, cfg.Password, cfg.SSLMode,
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// newPostgresStoreWithDB wraps an existing connection without running
// migrations. Used by tests with a mocked database.
func newPostgresStoreWithDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// runMigrations applies the embedded SQL migrations.
func runMigrations(db *sql.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migration source: %w", err)
	}

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Save persists a completed analysis.
func (s *PostgresStore) Save(ctx context.Context, analysis *Analysis) error {
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
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
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
func (s *PostgresStore) Get(ctx context.Context, id string) (*Analysis, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, patient_id, patient_name,
			patient_json, events_json, alerts_json,
			summary, created_at
		FROM analyses
		WHERE id = $1
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
func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]*Analysis, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, patient_id, patient_name,
			patient_json, events_json, alerts_json,
			summary, created_at
		FROM analyses
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
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
func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM analyses").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count: %w", err)
	}
	return count, nil
}

// Delete removes an analysis by ID.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM analyses WHERE id = $1", id)
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
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
