package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/delivery-quote-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/delivery-quote-service/internal/adapter/kafka"
	"github.com/couchcryptid/delivery-quote-service/internal/adapter/mapbox"
	"github.com/couchcryptid/delivery-quote-service/internal/config"
	"github.com/couchcryptid/delivery-quote-service/internal/domain"
	"github.com/couchcryptid/delivery-quote-service/internal/observability"
	"github.com/couchcryptid/delivery-quote-service/internal/pipeline"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		cached, err := mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		if err != nil {
			logger.Error("failed to create geocoder cache", "error", err)
			os.Exit(1)
		}
		geocoder = cached
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var ready sharedobs.ReadinessChecker = httpadapter.AlwaysReady{}
	var reader *kafkaadapter.Reader
	var writer *kafkaadapter.Writer
	pipelineDone := make(chan struct{})

	if cfg.PipelineEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		writer = kafkaadapter.NewWriter(cfg, logger)
		transformer := pipeline.NewTransformer(geocoder, logger, metrics)

		p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)
		ready = p

		// Start order-quoting pipeline.
		go func() {
			defer close(pipelineDone)
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
	} else {
		close(pipelineDone)
		logger.Info("order pipeline disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, ready, geocoder, metrics, logger)

	// Start HTTP server.
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	select {
	case <-pipelineDone:
	case <-shutdownCtx.Done():
		logger.Warn("pipeline did not stop before shutdown timeout")
	}

	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
