package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"fairlens/adapters/postgres"
	"fairlens/adapters/report"
	"fairlens/app"
	"fairlens/internal"
	"fairlens/internal/config"
	"fairlens/ports"
	"fairlens/ui"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	log := internal.DefaultLogger

	cfg, err := config.Load()
	if err != nil {
		log.Error("configuration error: %v", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.Server.GinMode)

	var history ports.HistorySink
	var settings ports.SettingsStore
	analysisCfg := cfg.Analysis

	if cfg.Database.Enabled {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			log.Error("database connection failed: %v", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.EnsureSchema(context.Background(), db); err != nil {
			log.Error("schema setup failed: %v", err)
			os.Exit(1)
		}
		history = postgres.NewHistoryRepository(db)
		store := postgres.NewSettingsRepository(db)
		settings = store

		// Stored settings take precedence over env defaults when present.
		if stored, err := store.Load(context.Background()); err == nil {
			analysisCfg = stored
		}
	} else {
		log.Warn("DATABASE_URL not set; history and settings endpoints disabled")
	}

	service := app.NewAnalysisService(analysisCfg, history)
	server := ui.NewServer(service, report.NewRenderer(), history, settings)

	if err := server.Run(":" + cfg.Server.Port); err != nil {
		log.Error("server exited: %v", err)
		os.Exit(1)
	}
}
