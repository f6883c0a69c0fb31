package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/ecomlytics-backend/api/routes"
	"github.com/angelmondragon/ecomlytics-backend/internal/dataset"
	"github.com/angelmondragon/ecomlytics-backend/internal/insights"
	"github.com/angelmondragon/ecomlytics-backend/internal/narrative"
	"github.com/angelmondragon/ecomlytics-backend/pkg/config"
	"github.com/angelmondragon/ecomlytics-backend/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	store := dataset.NewStore()
	insightsService := insights.NewService(store, cfg.Insights.DefaultTopN)

	var polisher narrative.TextPolisher
	if cfg.Narrative.Enabled() {
		polisher = narrative.NewPolisher(cfg.Narrative, logg)
	}
	narrativeService := narrative.NewService(store, polisher)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":              cfg.App.Env,
		"addr":             addr,
		"narrative_polish": cfg.Narrative.Enabled(),
		"max_upload_bytes": cfg.Dataset.MaxUploadBytes,
		"default_top_n":    cfg.Insights.DefaultTopN,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, registry, store, insightsService, narrativeService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
