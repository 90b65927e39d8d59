package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fan-faceoff/internal/api"
	"github.com/jstittsworth/fan-faceoff/internal/api/middleware"
	"github.com/jstittsworth/fan-faceoff/internal/providers"
	"github.com/jstittsworth/fan-faceoff/internal/services"
	"github.com/jstittsworth/fan-faceoff/internal/storage"
	"github.com/jstittsworth/fan-faceoff/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}
	logger := logrus.StandardLogger()

	// Provider chain: AllSports primary (only when keyed), ESPN fallback.
	var primary providers.Client
	if cfg.RapidAPIKey != "" {
		primary = providers.NewAllSportsClient(cfg.RapidAPIKey, logger, cfg.ProviderTimeout)
	} else {
		logger.Warn("RAPIDAPI_KEY not set, running on the ESPN fallback only")
	}
	fallback := providers.NewESPNClient(logger, cfg.ProviderTimeout)
	aggregator := services.NewPlayerAggregator(primary, fallback, logger)

	// Quota store
	var quotaStore storage.QuotaStore
	var janitor *services.QuotaJanitor
	switch cfg.QuotaBackend {
	case "redis":
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logrus.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opt)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logrus.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		quotaStore = storage.NewRedisQuotaStore(redisClient)
	default:
		// Developer-mode fallback: counters live for the process only.
		memStore := storage.NewMemoryQuotaStore()
		quotaStore = memStore
		janitor = services.NewQuotaJanitor(memStore, logger)
		if err := janitor.Start(); err != nil {
			logrus.Errorf("Failed to start quota janitor: %v", err)
		}
		defer janitor.Stop()
	}
	ledger := services.NewQuotaLedger(quotaStore, cfg.PullCap)

	// Pick store
	var pickStore storage.PickStore
	switch cfg.PicksBackend {
	case "postgres":
		pgStore, err := storage.NewPostgresPickStore(cfg.DatabaseURL, cfg.IsDevelopment())
		if err != nil {
			logrus.Fatalf("Failed to open pick store: %v", err)
		}
		defer pgStore.Close()
		pickStore = pgStore
	default:
		pickStore = storage.NewMemoryPickStore()
	}
	picks := services.NewPickService(pickStore)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	api.SetupRoutes(apiGroup, aggregator, ledger, picks)

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
