package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fanpulse/backend/config"
	"github.com/fanpulse/backend/internal/api"
	"github.com/fanpulse/backend/internal/cache"
	"github.com/fanpulse/backend/internal/database"
	"github.com/fanpulse/backend/internal/middleware"
	"github.com/fanpulse/backend/internal/normalize"
	"github.com/fanpulse/backend/internal/observability"
	"github.com/fanpulse/backend/internal/router"
	"github.com/fanpulse/backend/internal/server"
	"github.com/fanpulse/backend/internal/service"
	"github.com/fanpulse/backend/internal/source"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := observability.NewLogger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// The warehouse is optional at startup: if it is down the fallback
	// chain keeps serving from the file export or mock data.
	var warehouse *source.WarehouseSource
	if cfg.DBHost != "" {
		db, err := database.New(cfg)
		if err != nil {
			logger.Warn("warehouse unreachable at startup, relying on fallback sources", zap.Error(err))
		} else {
			warehouse = source.NewWarehouseSource(db, cfg.FetchLimit)
		}
	}

	var s3cfg *config.S3Config
	if cfg.S3Bucket != "" {
		s3cfg, err = config.NewS3Config(ctx, cfg.S3Bucket)
		if err != nil {
			logger.Warn("S3 client setup failed, reading local export only", zap.Error(err))
			s3cfg = nil
		}
	}
	fileSource := source.NewFileSource(cfg.DataFile, s3cfg, cfg.S3Key, logger)

	var fetchers []source.Fetcher
	if warehouse != nil {
		fetchers = append(fetchers, warehouse)
	}
	fetchers = append(fetchers, fileSource)
	chain := source.NewChain(fetchers, normalize.New(logger), cfg.FetchTimeout, logger)
	snapshotCache := cache.New(chain.Fetch, cfg.CacheTTL, logger)

	identities := service.DefaultIdentities()
	if cfg.IdentityFile != "" {
		loaded, err := service.LoadIdentities(cfg.IdentityFile)
		if err != nil {
			logger.Fatal("failed to load identity file", zap.String("path", cfg.IdentityFile), zap.Error(err))
		}
		identities = loaded
	}

	authService := service.NewAuthService(service.NewStaticIdentityProvider(identities), cfg.JWTSecret, cfg.TokenTTL)
	feedbackService := service.NewFeedbackService(snapshotCache, warehouse, fileSource, logger)
	analyticsService := service.NewAnalyticsService(snapshotCache, logger)

	var limiter *middleware.RateLimiter
	if cfg.RedisHost != "" || cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("redis unreachable, login rate limiting disabled", zap.Error(err))
		} else {
			limiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
				Window:    time.Minute,
				Limit:     10,
				KeyPrefix: "login",
			})
		}
	}

	engine := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewDashboardHandler(analyticsService, feedbackService),
		api.NewFeedbackHandler(feedbackService),
		authService,
		router.Options{
			LoginLimiter:   limiter,
			AllowedOrigins: cfg.AllowedOrigins,
			Logger:         logger,
		},
	)

	srv := server.New(engine, cfg.ServerHost+":"+cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("host", cfg.ServerHost),
			zap.String("port", cfg.ServerPort))
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
