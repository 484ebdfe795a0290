package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpadapter "github.com/cookjwelch/golf-market-explorer/internal/adapter/http"
	"github.com/cookjwelch/golf-market-explorer/internal/config"
	"github.com/cookjwelch/golf-market-explorer/internal/dataset"
	"github.com/cookjwelch/golf-market-explorer/internal/domain"
	"github.com/cookjwelch/golf-market-explorer/internal/export"
	"github.com/cookjwelch/golf-market-explorer/internal/observability"
	"github.com/cookjwelch/golf-market-explorer/internal/pipeline"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the dataset and serve the dashboard API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	presets, err := config.LoadPresets(cfg.PresetsPath)
	if err != nil {
		return err
	}

	records, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return err
	}
	store := dataset.NewStore(records, time.Now())
	logger.Info("dataset loaded",
		"path", cfg.DatasetPath,
		"counties", store.Len(),
		"regions", len(store.Regions()),
		"affluence_threshold", store.AffluenceThreshold(),
	)

	explorer := pipeline.New(store, logger, metrics, cfg.CacheSize)

	if cfg.ExportEnabled {
		if err := persistBaseline(parent, cfg, explorer, logger, metrics); err != nil {
			return err
		}
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, explorer, presets, logger)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// persistBaseline writes the default-weighted snapshot to the configured
// Postgres table so downstream consumers see fresh scores whenever the
// service restarts with a new dataset.
func persistBaseline(ctx context.Context, cfg *config.Config, explorer *pipeline.Explorer, logger *slog.Logger, metrics *observability.Metrics) error {
	sink, err := export.NewPostgresSink(ctx, cfg.ExportDSN, cfg.ExportTable, logger, metrics)
	if err != nil {
		return err
	}
	defer sink.Close()

	view := explorer.Explore(pipeline.Request{Weights: domain.DefaultWeights()})
	return sink.Write(ctx, view.Counties)
}
