// Command tempdrop-etl watches an inbox directory for TEMPDROP message
// files, runs each through the decode and correction pipeline, writes the
// HSA output next to the source file, and optionally publishes profile
// events to Kafka.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/couchcryptid/tempdrop-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/tempdrop-etl/internal/adapter/kafka"
	"github.com/couchcryptid/tempdrop-etl/internal/config"
	"github.com/couchcryptid/tempdrop-etl/internal/decoder"
	"github.com/couchcryptid/tempdrop-etl/internal/observability"
	"github.com/couchcryptid/tempdrop-etl/internal/pipeline"
	"github.com/couchcryptid/tempdrop-etl/internal/schema"
	"github.com/couchcryptid/tempdrop-etl/internal/watch"
)

func main() {
	// A local .env is a development convenience; absence is normal in
	// deployment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	sch, err := schema.Load(cfg.SchemaPath)
	if err != nil {
		logger.Error("failed to load level-record schema", "error", err)
		os.Exit(1)
	}

	dec := decoder.NewExecDecoder(cfg.DecoderCmd, cfg.DecodeFlags, cfg.DecodeTimeout, cfg.MissingValue, logger)

	var sink pipeline.ProfileSink
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		sink = writer
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	proc := pipeline.New(dec, sch, sink, nil, pipeline.Options{
		CorrectDrift:     cfg.CorrectDrift,
		CorrectTime:      cfg.CorrectTime,
		SurfacePressure:  cfg.SurfacePressure,
		MissingValue:     cfg.MissingValue,
		ValidLevelFlags:  cfg.ValidLevelFlags,
		HeadingOffsetDeg: cfg.HeadingOffsetDeg,
		EastNegative:     cfg.EastNegative,
	}, logger, metrics)

	watcher := watch.New(cfg.InboxDir, cfg.PollInterval, proc, logger, nil)
	srv := httpadapter.NewServer(cfg.HTTPAddr, proc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	metrics.PipelineRunning.Set(1)
	go func() {
		if err := watcher.Run(ctx); err != nil {
			logger.Error("watcher error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	metrics.PipelineRunning.Set(0)

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

	logger.Info("shutdown complete")
}
