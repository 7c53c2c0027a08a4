package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"truthlens/internal/api"
	"truthlens/internal/api/handlers"
	apimiddleware "truthlens/internal/api/middleware"
	"truthlens/internal/config"
	"truthlens/internal/detection"
	"truthlens/internal/domain/services"
	grpcserver "truthlens/internal/grpc/truthlens"
	"truthlens/internal/infrastructure/cache"
	"truthlens/internal/infrastructure/database"
	"truthlens/internal/infrastructure/database/repository"
	"truthlens/internal/streaming"
	"truthlens/pkg/logger"
)

// pinger is satisfied by every backing store
type pinger interface {
	Ping(ctx context.Context) error
}

func main() {
	configPath := flag.String("config", "", "path to config file (default: search ./, ./config, /etc/truthlens)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var log *logger.Logger
	if cfg.App.Debug && !cfg.IsProduction() {
		log = logger.NewDevelopment()
	} else {
		format := cfg.Logger.Format
		if cfg.IsProduction() {
			format = "json"
		}
		log = logger.New(logger.Config{
			Level:      cfg.Logger.Level,
			Format:     format,
			TimeFormat: cfg.Logger.TimeFormat,
		})
	}

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting TruthLens")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine, err := detection.NewEngine(detection.ConfigFromSettings(cfg.Detection), log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize detection engine")
	}

	checks := map[string]handlers.Pinger{}
	var healthDeps []grpcserver.Pinger

	// Redis backs the verdict cache and the rate limiter
	var (
		verdictCache services.VerdictCache
		limiter      apimiddleware.RateLimitStore
	)
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedis(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without cache and rate limiting")
		} else {
			defer redisCache.Close()
			verdictCache = redisCache
			limiter = redisCache
			checks["redis"] = redisCache
			healthDeps = append(healthDeps, redisCache)
		}
	}

	// Feedback store
	var store services.FeedbackStore
	if cfg.Database.Enabled {
		s, db, closeFn, err := openFeedbackStore(ctx, cfg.Database, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to open feedback store, feedback will not be persisted")
		} else {
			defer closeFn()
			store = s
			checks["database"] = db
			healthDeps = append(healthDeps, db)
		}
	}

	// Initialize streaming infrastructure
	var natsPublisher *streaming.NATSPublisher
	if cfg.NATS.Enabled {
		natsPublisher, err = streaming.NewNATSPublisher(ctx, cfg.NATS, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to NATS, continuing with local events only")
			natsPublisher = nil
		} else {
			log.Info().Str("url", cfg.NATS.URL).Msg("connected to NATS")
		}
	}

	eventBus := streaming.NewEventBus(natsPublisher, log)
	log.Info().Bool("nats_enabled", natsPublisher != nil).Msg("event bus initialized")

	wsHub := streaming.NewWebSocketHub(log)
	go wsHub.Run(ctx)

	eventPublisher := streaming.NewEventBusPublisher(eventBus, wsHub)

	// Initialize services
	analysisService := services.NewAnalysisService(engine, verdictCache, eventPublisher, cfg.Detection, log)
	feedbackService := services.NewFeedbackService(store, eventPublisher, log)

	// Initialize handlers
	h := handlers.NewHandlers(handlers.Dependencies{
		Analysis: analysisService,
		Feedback: feedbackService,
		WSHub:    wsHub,
		EventBus: eventBus,
		Checks:   checks,
		Version:  cfg.App.Version,
		Logger:   log,
	})

	// Create router
	router := api.NewRouter(*cfg, h, limiter, log)

	// Start HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Start gRPC server
	grpcListener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.GRPCPort))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create gRPC listener")
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(grpcserver.UnaryLoggingInterceptor(log)))
	grpcserver.NewServer(analysisService, feedbackService, eventBus, log).Register(grpcServer)
	grpcserver.RegisterHealthServer(ctx, grpcServer, healthDeps...)

	go func() {
		log.Info().
			Str("addr", grpcListener.Addr().String()).
			Msg("starting gRPC server")
		if err := grpcServer.Serve(grpcListener); err != nil {
			log.Fatal().Err(err).Msg("gRPC server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")

	// Stops the hub, health watcher and stream subscriptions
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Ends open verdict streams and closes the NATS connection
	eventBus.Close()
	grpcServer.GracefulStop()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}

// openFeedbackStore connects the configured driver and applies the schema
func openFeedbackStore(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (services.FeedbackStore, pinger, func(), error) {
	switch cfg.Driver {
	case "sqlite":
		db, err := database.NewSQLite(ctx, cfg, log)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		return repository.NewSQLiteFeedbackRepository(db.DB()), db, func() { _ = db.Close() }, nil
	default:
		db, err := database.NewPostgres(ctx, cfg, log)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return repository.NewFeedbackRepository(db.Pool()), db, db.Close, nil
	}
}
