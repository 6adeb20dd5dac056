package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dev-boi/lecture-server-go/internal/http/routes"
	"github.com/dev-boi/lecture-server-go/internal/storage"
	"github.com/dev-boi/lecture-server-go/pkg/cache"
	"github.com/dev-boi/lecture-server-go/pkg/config"
	"github.com/dev-boi/lecture-server-go/pkg/database"
	"github.com/dev-boi/lecture-server-go/pkg/jobs"
	"github.com/dev-boi/lecture-server-go/pkg/logger"
	"github.com/dev-boi/lecture-server-go/pkg/metrics"
	"github.com/dev-boi/lecture-server-go/pkg/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// The storage backend is chosen once at startup; every caller depends on
	// the storage.Store interface only.
	var store storage.Store
	var db *gorm.DB
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err = database.Connect(ctx, cfg.Database, appLogger)
		if err != nil {
			appLogger.Error("database connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if err := database.Close(db, appLogger); err != nil {
				appLogger.Error("database close failed", slog.String("error", err.Error()))
			}
		}()
		store = storage.NewDBStore(db)
	case config.DriverMemory:
		store = storage.NewMemStore()
	}

	appLogger.Info("storage initialized", slog.String("driver", cfg.StorageDriver))

	var cacheClient cache.Client
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			appLogger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		cacheClient = redisClient
	} else {
		cacheClient = cache.NewMemoryCache()
	}
	defer cacheClient.Close()

	scheduler := jobs.NewScheduler(appLogger)
	scheduler.AddJob(jobs.NewExpirySweepJob(store, appLogger), jobs.SweepInterval)
	if cfg.KeepAliveURL != "" {
		scheduler.AddJob(jobs.NewKeepAlivePingJob(cfg.KeepAliveURL, appLogger), jobs.KeepAliveInterval)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := gin.New()
	router.Use(middleware.Recovery(appLogger))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(appLogger))
	router.Use(middleware.SecurityHeaders())
	router.Use(metrics.Middleware())

	rateLimiter := middleware.NewRateLimiter(100, time.Minute)
	router.Use(rateLimiter.Middleware())

	routes.Register(router, store, db, appLogger, cacheClient)

	srv := &http.Server{
		Addr:              cfg.ServerAddress(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		appLogger.Info("server starting",
			slog.String("addr", cfg.ServerAddress()),
			slog.String("env", cfg.Env),
			slog.String("storage", cfg.StorageDriver),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("server listen failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", slog.String("error", err.Error()))
	} else {
		appLogger.Info("server stopped gracefully")
	}
}
