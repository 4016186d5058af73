package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/complyscan/complyscan/internal/analyzer"
	"github.com/complyscan/complyscan/internal/api"
	"github.com/complyscan/complyscan/internal/config"
	"github.com/complyscan/complyscan/internal/docsource"
	"github.com/complyscan/complyscan/internal/metrics"
	"github.com/complyscan/complyscan/internal/pipeline"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stats := metrics.NewRegistry(cfg.StatsWindow)
	a := analyzer.New(docsource.Options{
		PDFFallbackPdftotext: cfg.PDFFallbackPdftotext,
	}, log, stats)

	orch := pipeline.NewOrchestrator(cfg, a, log)
	orch.Start(ctx)

	srv := api.NewServer(a, orch, stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		// Stop accepting requests before closing the job queue so no
		// in-flight submit can send on a closed channel.
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
	}()

	log.Info("starting complyscan", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
