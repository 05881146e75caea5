package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/lib/pq"

	"github.com/user/fraud-lens/internal/adapter/feed"
	"github.com/user/fraud-lens/internal/adapter/metrics"
	"github.com/user/fraud-lens/internal/adapter/repository/postgres"
	"github.com/user/fraud-lens/internal/pkg/config"
	"github.com/user/fraud-lens/internal/pkg/logger"
	"github.com/user/fraud-lens/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	log.Info("starting feed consumer")

	if len(cfg.KafkaBrokers) == 0 {
		log.Error("KAFKA_BROKERS must be set for the consumer")
		os.Exit(1)
	}

	m := metrics.New()

	// Metrics endpoint for the consumer process.
	adminMux := http.NewServeMux()
	adminMux.Handle("/metrics", promhttp.Handler())
	adminServer := &http.Server{Addr: cfg.AdminAddr, Handler: adminMux}
	go func() {
		if err := adminServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		log.Error("failed to open postgres connection", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	log.Info("connected to postgres")

	txRepo := postgres.NewTransactionRepository(db, log)
	labelRepo := postgres.NewLabelRepository(db, log)
	scoreRepo := postgres.NewScoreRepository(db, log)

	ingest := usecase.NewFeedIngestService(txRepo, labelRepo, scoreRepo, log)

	consumer, err := feed.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID, ingest, log, m)
	if err != nil {
		log.Error("failed to create feed consumer", "error", err)
		os.Exit(1)
	}
	defer consumer.Close()

	log.Info("consuming feed", "topic", cfg.KafkaTopic, "group", cfg.KafkaGroupID)
	if err := consumer.Run(ctx); err != nil {
		log.Error("feed consumer stopped with error", "error", err)
		os.Exit(1)
	}

	log.Info("feed consumer shut down gracefully")
}
