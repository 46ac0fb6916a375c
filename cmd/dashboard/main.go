package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/fire-hotspot-dashboard/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/fire-hotspot-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/adapter/mapbox"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/adapter/viirscsv"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/config"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/dashboard"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/domain"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/observability"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogFormat, cfg.LogLevel)
	metrics := observability.NewMetrics()

	// Province enrichment is feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	var enricher pipeline.Enricher
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder := mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		enricher = pipeline.NewProvinceEnricher(geocoder, logger, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	var (
		publisher pipeline.Publisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("detection feed enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	reader := viirscsv.NewReader(cfg.DataPath, logger)
	p := pipeline.New(reader, enricher, publisher, pipeline.Options{
		Preprocess: domain.PreprocessOptions{
			Years:              cfg.RetainedYears,
			SkipMalformedDates: cfg.SkipMalformedDates,
		},
	}, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// Load the baseline, then open the dashboard and start the feed.
	loadFailed := make(chan struct{})
	go func() {
		baseline, err := p.Run(ctx)
		if err != nil {
			logger.Error("pipeline error", "error", err)
			close(loadFailed)
			stop()
			return
		}
		srv.SetDashboard(dashboard.NewService(baseline, cfg.DefaultYear, logger, metrics))
		p.Publish(ctx, baseline)
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	select {
	case <-loadFailed:
		logger.Error("exiting after failed load")
		os.Exit(1) //nolint:gocritic // exitAfterDefer
	default:
	}
	logger.Info("shutdown complete")
}
