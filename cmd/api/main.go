package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/ttgrab/tiktok-dl-go/internal/cache"
	"github.com/ttgrab/tiktok-dl-go/internal/config"
	"github.com/ttgrab/tiktok-dl-go/internal/db"
	"github.com/ttgrab/tiktok-dl-go/internal/handler/api"
	"github.com/ttgrab/tiktok-dl-go/internal/logger"
	cMiddleware "github.com/ttgrab/tiktok-dl-go/internal/middleware"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
	"github.com/ttgrab/tiktok-dl-go/internal/ratelimit"
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

	logger.Init()

	database := initDb(ctx, cfg)

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

	var ca port.Cache
	var dispatcher port.TaskDispatcher
	var limiter port.RateLimiter
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		limiter = ratelimit.NewLimiter(cfg.RedisAddr, cfg.RedisPassword, int64(cfg.RateLimitPerSecond))
		logger.Info(ctx, "✅  Redis enabled: caching, rate limiting and queued processing active")
	} else {
		ca = cache.NewNoop()
		dispatcher = task.NewInlineDispatcher(processorSvc)
		limiter = ratelimit.NewNoop()
		logger.Warn(ctx, "⚠️  Redis not configured, processing batches in-process without caching or rate limiting")
	}

	r := initRouter(ctx, cfg.JWTSecret)

	singleSvc := dlSvc.NewSingleDownloader(res, videoRepo, downloadRepo, nil)
	starterSvc := dlSvc.NewBulkStarter(sessionRepo, dispatcher, uuid.NewString)
	statusSvc := dlSvc.NewBulkStatusGetter(sessionRepo, nil)
	resultsSvc := dlSvc.NewBulkResultsGetter(sessionRepo, downloadRepo, ca)
	historySvc := dlSvc.NewHistoryGetter(downloadRepo)
	statsSvc := dlSvc.NewStatsGetter(downloadRepo, nil)

	r.With(cMiddleware.WithRateLimit(limiter)).
		Post("/downloads", api.DownloadSingleHandler(singleSvc))
	r.With(cMiddleware.WithRateLimit(limiter)).
		Post("/downloads/bulk", api.StartBulkHandler(starterSvc))
	r.With(cMiddleware.WithBatchID()).
		Get("/downloads/bulk/{batchId}/status", api.BulkStatusHandler(statusSvc))
	r.With(cMiddleware.WithBatchID()).
		Get("/downloads/bulk/{batchId}/results", api.BulkResultsHandler(resultsSvc))
	r.Get("/downloads/history", api.HistoryHandler(historySvc))
	r.Get("/downloads/stats", api.StatsHandler(statsSvc))

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(ctx context.Context, jwtSecret string) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(cMiddleware.WithUserAuth(jwtSecret))

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
