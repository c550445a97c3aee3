package ports

import (
	"context"

	"fairlens/domain/fairness"
)

// SettingsStore persists and retrieves the analysis configuration. Load
// merges stored overrides onto defaults; missing settings are not an
// error for callers that can fall back to defaults.
type SettingsStore interface {
	Load(ctx context.Context) (fairness.Config, error)
	Save(ctx context.Context, cfg fairness.Config) error
}
