package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cypherlabdev/parlay-intel-service/internal/bookmaker"
	"github.com/cypherlabdev/parlay-intel-service/internal/cache"
	"github.com/cypherlabdev/parlay-intel-service/internal/config"
	httpHandler "github.com/cypherlabdev/parlay-intel-service/internal/handler/http"
	"github.com/cypherlabdev/parlay-intel-service/internal/ingest"
	"github.com/cypherlabdev/parlay-intel-service/internal/messaging"
	"github.com/cypherlabdev/parlay-intel-service/internal/metrics"
	"github.com/cypherlabdev/parlay-intel-service/internal/oddsfeed"
	"github.com/cypherlabdev/parlay-intel-service/internal/repository"
	"github.com/cypherlabdev/parlay-intel-service/internal/service"
	"github.com/cypherlabdev/parlay-intel-service/internal/store"
	"github.com/cypherlabdev/parlay-intel-service/internal/updater"
	"github.com/cypherlabdev/parlay-intel-service/internal/verifier"
	"github.com/cypherlabdev/parlay-intel-service/pkg/bookhealth"
	"github.com/cypherlabdev/parlay-intel-service/pkg/parlay"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Setup logger
	logger := setupLogger(cfg.Logging)
	logger.Info().Msg("starting parlay-intel-service")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New(prometheus.DefaultRegisterer)

	// Create Redis cache
	redisCache := cache.NewRedisCache(
		cache.RedisCacheConfig{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			ReportTTL: cfg.Redis.ReportTTL,
		},
		logger,
	)
	defer redisCache.Close()

	// Test Redis connection
	if err := redisCache.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")

	// Open the SQL store
	repo, err := repository.Open(ctx, repository.Config{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer repo.Close()
	logger.Info().Str("driver", cfg.Database.Driver).Msg("database ready")

	catalog, err := loadCatalog(ctx, repo, cfg.Engine.CorrelationCatalogFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load correlation catalog")
	}
	logger.Info().Int("patterns", len(catalog.Patterns())).Msg("correlation catalog loaded")

	// Core components
	books := bookmaker.NewRegistry(bookmaker.RestrictFeed(bookmaker.DefaultBooks, cfg.OddsFeed.Bookmakers))
	normalizer := ingest.NewNormalizer(ingest.NormalizerConfig{
		StrictBookmakers:    cfg.Engine.StrictBookmakers,
		DefaultEventHorizon: cfg.Engine.DefaultEventHorizon,
	}, books, logger)
	pool := store.NewOpportunityStore(logger)

	feed := oddsfeed.NewClient(oddsfeed.Config{
		BaseURL:           cfg.OddsFeed.BaseURL,
		APIKey:            cfg.OddsFeed.APIKey,
		Regions:           cfg.OddsFeed.Regions,
		Timeout:           cfg.Engine.OddsFeedTimeout(),
		RequestsPerSecond: cfg.OddsFeed.RequestsPerSecond,
		MaxRetries:        cfg.OddsFeed.MaxRetries,
	}, logger)
	oddsVerifier := verifier.New(verifier.DefaultConfig(), feed, books, logger)

	engine := parlay.NewEngine(cfg.Engine.ToEngineConfig(), catalog, logger)
	parlayUpdater := updater.New(engine, logger)
	scorer := bookhealth.NewScorer(cfg.Engine.ToScorerConfig(), logger)

	// Event publisher
	var publisher service.EventPublisher
	if cfg.Kafka.Enabled {
		kafkaPublisher := messaging.NewKafkaPublisher(messaging.KafkaPublisherConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.EventsTopic,
		}, logger)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	} else {
		publisher = messaging.NewLogPublisher(logger)
	}

	// Service layer
	parlayService := service.NewParlayService(
		service.ParlayConfig{
			GenerationInterval:   cfg.Engine.GenerationInterval(),
			VerificationCooldown: cfg.Engine.VerificationCooldown(),
		},
		engine, parlayUpdater, oddsVerifier, pool,
		repo, repo, repo, redisCache, publisher, m, logger,
	)
	ingestService := service.NewIngestService(
		service.IngestConfig{DedupTTL: cfg.Engine.DedupTTL()},
		normalizer, redisCache, repo, pool, parlayService, m, logger,
	)
	healthService := service.NewHealthService(
		service.HealthConfig{RecomputeInterval: cfg.Engine.HealthRecomputeInterval},
		scorer, repo, repo, repo, publisher, m, logger,
	)
	trackingService := service.NewTrackingService(
		service.TrackingConfig{
			RecomputeEveryNBets: cfg.Engine.ScoringRecomputeEveryNBets,
			ClosingLineWindow:   cfg.Engine.ClosingLineWindow,
			SettlementInterval:  cfg.Engine.SettlementInterval,
		},
		repo, repo, oddsVerifier, feed, healthService, m, logger,
	)
	logger.Info().Msg("services initialized")

	if _, err := ingestService.Warm(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to warm opportunity pool")
	}

	// Background workers
	go func() {
		if err := parlayService.Run(ctx); err != nil {
			logger.Error().Err(err).Msg("parlay scheduler failed")
		}
	}()
	go func() {
		if err := trackingService.Run(ctx); err != nil {
			logger.Error().Err(err).Msg("bet tracking worker failed")
		}
	}()
	go func() {
		if err := healthService.Run(ctx); err != nil {
			logger.Error().Err(err).Msg("book health job failed")
		}
	}()

	if cfg.Kafka.Enabled {
		consumer := messaging.NewKafkaConsumer(
			messaging.KafkaConsumerConfig{
				Brokers: cfg.Kafka.Brokers,
				Topic:   cfg.Kafka.DropsTopic,
				GroupID: cfg.Kafka.GroupID,
			},
			ingestService,
			m,
			logger,
		)
		defer consumer.Close()

		// Start Kafka consumer in goroutine
		go func() {
			if err := consumer.Start(ctx); err != nil {
				logger.Error().Err(err).Msg("Kafka consumer failed")
			}
		}()
	}

	router := httpHandler.NewRouter(
		httpHandler.RouterConfig{
			CORSOrigins:    cfg.Server.CORSOrigins,
			RequestTimeout: cfg.Server.WriteTimeout,
		},
		m,
		map[string]httpHandler.ReadyCheck{
			"redis":    redisCache.Ping,
			"database": repo.Ping,
		},
		logger,
		httpHandler.NewDropHandler(ingestService, logger),
		httpHandler.NewParlayHandler(parlayService, logger),
		httpHandler.NewBetHandler(trackingService, logger),
		httpHandler.NewHealthHandler(healthService, logger),
	)
	logger.Info().Msg("API routes registered")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start HTTP server in goroutine
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("shutting down gracefully...")

	// Cancel context to stop workers and consumer
	cancel()

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	logger.Info().Msg("shutdown complete")
}

// loadCatalog stores the seed and file patterns, then builds the catalog
// from everything persisted so operator additions survive restarts.
func loadCatalog(ctx context.Context, repo *repository.Repository, file string) (*parlay.CorrelationCatalog, error) {
	patterns := parlay.SeedPatterns()
	if file != "" {
		extra, err := parlay.LoadPatternsFile(file)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, extra...)
	}

	for i := range patterns {
		if err := repo.SavePattern(ctx, &patterns[i]); err != nil {
			return nil, err
		}
	}

	stored, err := repo.ListPatterns(ctx)
	if err != nil {
		return nil, err
	}
	return parlay.NewCorrelationCatalog(stored...), nil
}

// setupLogger configures the logger based on config
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set format
	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return log.Logger.With().Str("service", "parlay-intel").Logger()
}
