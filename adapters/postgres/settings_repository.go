package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"fairlens/domain/core"
	"fairlens/domain/fairness"
)

// defaultSettingsName keys the single active configuration document.
const defaultSettingsName = "default"

// SettingsRepository persists the analysis configuration as one JSON
// document. It implements ports.SettingsStore.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository creates a settings repository over an open
// connection
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Load retrieves the stored configuration merged onto defaults. Returns
// the domain's not-found error when nothing was ever saved.
func (r *SettingsRepository) Load(ctx context.Context) (fairness.Config, error) {
	var raw []byte
	query := `SELECT config FROM analysis_settings WHERE name = $1`
	err := r.db.GetContext(ctx, &raw, query, defaultSettingsName)
	if errors.Is(err, sql.ErrNoRows) {
		return fairness.DefaultConfig(), core.ErrSettingsNotFound
	}
	if err != nil {
		return fairness.Config{}, fmt.Errorf("failed to load settings: %w", err)
	}

	var cfg fairness.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return fairness.Config{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return cfg.Normalized(), nil
}

// Save upserts the configuration document
func (r *SettingsRepository) Save(ctx context.Context, cfg fairness.Config) error {
	raw, err := json.Marshal(cfg.Normalized())
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	query := `
		INSERT INTO analysis_settings (name, config, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET
			config = EXCLUDED.config,
			updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, defaultSettingsName, raw, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
