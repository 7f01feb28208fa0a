package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pricemunch/priceworker/config"
	"pricemunch/priceworker/internal/schedule"
	"pricemunch/priceworker/logger"
	"pricemunch/priceworker/services/cache"
	"pricemunch/priceworker/services/publisher"
	"pricemunch/priceworker/services/worker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Dur("refresh_interval", cfg.RefreshInterval).
		Dur("health_check_interval", cfg.HealthCheckInterval).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize services
	services, err := initializeServices(ctx, &cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer services.Cleanup()

	lastRuns := schedule.NewLastRunStore(services.Cache)

	sources := []worker.Source{
		worker.NewFileSource("payload-spool", "refresh_prices", cfg.PayloadSpoolDir),
	}

	log.Info().
		Int("source_count", len(sources)).
		Str("spool_dir", cfg.PayloadSpoolDir).
		Msg("Created payload sources")

	// Create the refresh worker and the schedule health monitor
	w := worker.NewWorker(
		ctx,
		sources,
		worker.NewMemoryCatalog(),
		services.Publisher,
		lastRuns,
		logger.ForWorker(),
		cfg.RefreshInterval,
	)

	m := worker.NewMonitor(
		ctx,
		cfg.ScheduleConfigPath,
		lastRuns,
		services.Publisher,
		logger.ForMonitor(),
		cfg.HealthCheckInterval,
		cfg.AlertMultiplier,
		cfg.AlertGrace,
	)

	workerDone := make(chan struct{}, 1)
	go func() {
		log.Info().Msg("Starting price refresh worker")
		w.Start()
		workerDone <- struct{}{}
	}()

	go func() {
		log.Info().Msg("Starting schedule health monitor")
		m.Start()
	}()

	// Wait for shutdown signal or worker exit
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	case <-workerDone:
		log.Info().Msg("Worker exited")
	}

	// Graceful shutdown
	log.Info().Msg("Shutting down gracefully...")
}

// Services holds all the initialized services
type Services struct {
	Cache     cache.CacheService
	Publisher publisher.Publisher
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		s.Publisher.Close()
	}
}

// initializeServices initializes all required services
func initializeServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	services := &Services{}

	// Initialize cache service
	cacheService := cache.NewMemcacheService(cfg.MemcacheAddr)
	if cacheService == nil {
		return nil, fmt.Errorf("failed to create cache service")
	}
	services.Cache = cacheService

	logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)

	// Initialize publisher
	redisPublisher := publisher.NewRedisPublisher(
		ctx,
		cfg.RedisAddr,
		cfg.RedisDB,
		cfg.RedisStream,
		cfg.RedisStreamCount,
		cfg.RedisStreamMaxLength,
	)
	if redisPublisher == nil {
		return nil, fmt.Errorf("failed to create redis publisher")
	}
	services.Publisher = redisPublisher

	logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
		cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)

	return services, nil
}
