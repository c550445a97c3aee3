package config

import (
	"os"
	"strconv"
	"strings"

	"fairlens/domain/fairness"
	"fairlens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Data     DataConfig
	Analysis fairness.Config
}

// DatabaseConfig holds connection settings for the history/settings store
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds the default dataset location
type DataConfig struct {
	File string
}

// Load reads configuration from environment variables. DATABASE_URL is
// optional: without it the history and settings stores are disabled and
// defaults apply.
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Data: DataConfig{
			File: os.Getenv("DATA_FILE"),
		},
		Analysis: loadAnalysisConfig(),
	}
	cfg.Database.Enabled = cfg.Database.URL != ""

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// loadAnalysisConfig reads threshold and keyword overrides; anything unset
// falls back to the domain defaults via Normalized.
func loadAnalysisConfig() fairness.Config {
	cfg := fairness.Config{
		DisparateImpactThreshold:   getEnvFloatOrDefault("DISPARATE_IMPACT_THRESHOLD", 0),
		StatisticalParityThreshold: getEnvFloatOrDefault("STATISTICAL_PARITY_THRESHOLD", 0),
		EqualOpportunityThreshold:  getEnvFloatOrDefault("EQUAL_OPPORTUNITY_THRESHOLD", 0),
		IndividualFairnessLimit:    getEnvIntOrDefault("INDIVIDUAL_FAIRNESS_LIMIT", 0),
		CounterfactualLimit:        getEnvIntOrDefault("COUNTERFACTUAL_LIMIT", 0),
	}
	if kws := os.Getenv("PROTECTED_KEYWORDS"); kws != "" {
		cfg.ProtectedAttributeKeywords = splitList(kws)
	}
	if kws := os.Getenv("TARGET_KEYWORDS"); kws != "" {
		cfg.TargetKeywords = splitList(kws)
	}
	return cfg.Normalized()
}

func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
	}
	if cfg.Analysis.DisparateImpactThreshold < 0 || cfg.Analysis.DisparateImpactThreshold > 1 {
		return errors.ConfigInvalid("DISPARATE_IMPACT_THRESHOLD must be in [0,1]")
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloatOrDefault(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
