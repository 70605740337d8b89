package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/ttgrab/tiktok-dl-go/internal/config"
	"github.com/ttgrab/tiktok-dl-go/internal/db"
	workerHandler "github.com/ttgrab/tiktok-dl-go/internal/handler/worker"
	"github.com/ttgrab/tiktok-dl-go/internal/logger"
	"github.com/ttgrab/tiktok-dl-go/internal/repository/mariadb"
	"github.com/ttgrab/tiktok-dl-go/internal/resolver"
	"github.com/ttgrab/tiktok-dl-go/internal/task"
	dlSvc "github.com/ttgrab/tiktok-dl-go/internal/usecase/download"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	res := resolver.New(resolver.Config{
		APIKey:  cfg.RapidAPIKey,
		APIHost: cfg.RapidAPIHost,
		BaseURL: cfg.ProviderBaseURL,
		Timeout: cfg.ProviderTimeout,
	})
	if !res.Configured() {
		logger.Warn(ctx, "⚠️  RAPIDAPI_KEY not configured, serving demo metadata")
	}

	videoRepo := mariadb.NewVideoRepository(database.DB)
	downloadRepo := mariadb.NewDownloadRepository(database.DB)
	sessionRepo := mariadb.NewSessionRepository(database.DB)
	processorSvc := dlSvc.NewBulkProcessor(res, videoRepo, downloadRepo, sessionRepo, cfg.BulkDelay, nil)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeProcessBulk, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseProcessBulkPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.ProcessBulkHandler(ctx, p, processorSvc)
	})

	runWorker(ctx, mux, cfg, database)
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: 10})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish in-flight batches
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.Shutdown()       // stop accepting new tasks, finish in-flight
	<-shutdownCtx.Done() // either timeout or done

	logger.Info(ctx, "✅  Worker gracefully stopped")
}
