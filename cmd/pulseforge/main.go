package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/pulseforge/alarm-report-etl/internal/adapter/http"
	kafkaadapter "github.com/pulseforge/alarm-report-etl/internal/adapter/kafka"
	"github.com/pulseforge/alarm-report-etl/internal/adapter/telegram"
	"github.com/pulseforge/alarm-report-etl/internal/config"
	"github.com/pulseforge/alarm-report-etl/internal/notify"
	"github.com/pulseforge/alarm-report-etl/internal/observability"
	"github.com/pulseforge/alarm-report-etl/internal/pipeline"
	"github.com/pulseforge/alarm-report-etl/internal/registry"
	registryexcel "github.com/pulseforge/alarm-report-etl/internal/registry/excel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	zones, found, err := config.LoadZones(cfg.ZonesPath)
	if err != nil {
		logger.Error("failed to load zones config", "path", cfg.ZonesPath, "error", err)
		os.Exit(1)
	}
	if !found {
		logger.Warn("zones config missing, using built-in defaults", "path", cfg.ZonesPath)
	}

	reg := registry.Load(registryexcel.NewStore(cfg.RegistryPath), logger)

	// Delivery is feature-flagged via TELEGRAM_BOT_TOKEN / TELEGRAM_ENABLED.
	var dispatcher *notify.Dispatcher
	if cfg.TelegramEnabled {
		transport := telegram.NewClient(cfg.TelegramToken, cfg.TelegramChatID, cfg.TelegramTimeout, logger)
		dispatcher = notify.NewDispatcher(transport, reg, zones.Message, logger, metrics)
		logger.Info("telegram delivery enabled", "timeout", cfg.TelegramTimeout)
	} else {
		logger.Info("telegram delivery disabled")
	}

	var exporter pipeline.Exporter
	var exportWriter *kafkaadapter.Writer
	if cfg.ExportEnabled {
		exportWriter = kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.ExportTopic, logger)
		exporter = exportWriter
		logger.Info("kafka export enabled", "topic", cfg.ExportTopic)
	} else {
		logger.Info("kafka export disabled")
	}

	p := pipeline.New(zones, reg, dispatcher, exporter, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if exportWriter != nil {
		if err := exportWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
