package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"fairlens/domain/fairness"
)

// HistoryRepository appends one summary row per analysis invocation. It
// implements ports.HistorySink.
type HistoryRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a history repository over an open connection
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Connect opens a postgres connection pool for the repositories
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the tables the repositories need
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS analysis_history (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		record_count INTEGER NOT NULL,
		group_count INTEGER NOT NULL,
		bias_score DOUBLE PRECISION NOT NULL,
		flag_count INTEGER NOT NULL,
		risk_level TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS analysis_settings (
		name TEXT PRIMARY KEY,
		config JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Append inserts the summary row for one invocation
func (r *HistoryRepository) Append(ctx context.Context, s fairness.Summary) error {
	query := `
		INSERT INTO analysis_history (id, created_at, record_count, group_count, bias_score, flag_count, risk_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID.String(), s.Timestamp, s.RecordCount, s.GroupCount, s.BiasScore, s.FlagCount, string(s.RiskLevel))
	if err != nil {
		return fmt.Errorf("failed to append history row: %w", err)
	}
	return nil
}

// Recent lists the newest summary rows, most recent first
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]fairness.Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []fairness.Summary
	query := `
		SELECT id, created_at, record_count, group_count, bias_score, flag_count, risk_level
		FROM analysis_history
		ORDER BY created_at DESC
		LIMIT $1`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list history rows: %w", err)
	}
	return rows, nil
}
