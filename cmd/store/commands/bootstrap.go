package commands

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm"

	"github.com/tair/ai-goat-store/internal/ml"
	"github.com/tair/ai-goat-store/kafka"
	"github.com/tair/ai-goat-store/pkg/database"
	"github.com/tair/ai-goat-store/pkg/httpcache"
	"github.com/tair/ai-goat-store/pkg/logger"
	"github.com/tair/ai-goat-store/pkg/tracing"
)

// initTracing installs the Jaeger tracer when enabled and returns its shutdown
func initTracing() func() {
	if !cfg.TracingEnabled {
		return func() {}
	}

	tp, err := tracing.InitTracer(cfg.Tracing)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
		return func() {}
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
		}
	}
}

// openDatabase connects with the configured driver; the caller closes it
func openDatabase() (*gorm.DB, func(), error) {
	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	return db, func() { sqlDB.Close() }, nil
}

// newModelService picks the configured backend once. An unusable provider
// leaves the service answering with its fallbacks.
func newModelService() *ml.Service {
	httpClient := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

	backend, err := ml.NewBackend(cfg.ML, httpClient)
	if err != nil {
		logger.Logger.Warn().Err(err).Str("provider", cfg.ML.Provider).Msg("Model backend unavailable, using fallbacks")
		backend = ml.UnavailableBackend{Reason: err.Error()}
	}

	logger.Logger.Info().Str("provider", backend.Name()).Msg("Model service initialized")
	return ml.NewService(backend)
}

// newEventPublisher connects to Kafka when brokers are configured
func newEventPublisher() (kafka.EventPublisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Logger.Info().Msg("No Kafka brokers configured, store events disabled")
		return kafka.NopPublisher{}, func() {}
	}

	publisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Kafka unavailable, store events disabled")
		return kafka.NopPublisher{}, func() {}
	}
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close Kafka publisher")
		}
	}
}

// newResponseCache connects to Redis when an address is configured
func newResponseCache(ctx context.Context) (*httpcache.Cache, func()) {
	if cfg.RedisAddr == "" {
		return httpcache.New(nil, cfg.CacheConfig()), func() {}
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unavailable, response cache disabled")
		client.Close()
		return httpcache.New(nil, cfg.CacheConfig()), func() {}
	}

	logger.Logger.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.CacheTTL).Msg("Response cache enabled")
	return httpcache.New(client, cfg.CacheConfig()), func() { client.Close() }
}
