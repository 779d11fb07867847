package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tair/ai-goat-store/internal/ml"
	"github.com/tair/ai-goat-store/internal/storage"
	"github.com/tair/ai-goat-store/pkg/database"
	"github.com/tair/ai-goat-store/pkg/httpcache"
	"github.com/tair/ai-goat-store/pkg/logger"
	"github.com/tair/ai-goat-store/pkg/tracing"
)

const (
	DefaultSecretKey      = "a_secret_key_that_you_should_change"
	DefaultMaxUploadBytes = 16 << 20
)

// Config holds the store configuration
type Config struct {
	HTTPPort       string
	Environment    string
	LogLevel       string
	ServiceName    string
	SecretKey      string
	MaxUploadBytes int64

	Database database.Config
	ML       ml.Config
	Storage  storage.Config
	Tracing  tracing.Config

	TracingEnabled bool
	RedisAddr      string
	CacheTTL       time.Duration
	KafkaBrokers   []string
}

// Load reads the given env files (".env" when none) and then the environment.
// Missing files are ignored; variables already set are not overridden.
func Load(files ...string) *Config {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err == nil {
			logger.Logger.Debug().Str("file", file).Msg("Loaded env file")
		}
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only
func FromEnv() *Config {
	serviceName := getEnv("OTEL_SERVICE_NAME", "ai-goat-store")

	return &Config{
		HTTPPort:       getEnv("HTTP_PORT", "5000"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ServiceName:    serviceName,
		SecretKey:      getEnv("SECRET_KEY", getEnv("FLASK_SECRET_KEY", DefaultSecretKey)),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),

		Database: database.Config{
			Driver:   getEnv("DB_DRIVER", database.DriverPostgres),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "aigoat"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			URL:      getEnv("DATABASE_URL", ""),
			Path:     getEnv("DB_PATH", ""),
		},

		ML: ml.Config{
			Provider:         strings.ToLower(getEnv("AI_PROVIDER", ml.ProviderOllama)),
			OllamaEndpoint:   getEnv("OLLAMA_ENDPOINT", "http://ollama:11434"),
			OllamaModelImage: getEnv("OLLAMA_MODEL_IMAGE", "llava"),
			OllamaModelText:  getEnv("OLLAMA_MODEL_TEXT", "llama3.1"),
			OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", ""),
			OpenAIModelImage: getEnv("OPENAI_MODEL_IMAGE", "gpt-4-vision-preview"),
			OpenAIModelText:  getEnv("OPENAI_MODEL_TEXT", "gpt-4-turbo"),
		},

		Storage: storage.Config{
			Endpoint:            getEnv("MINIO_ENDPOINT", "http://minio:9000"),
			AccessKey:           getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey:           getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Region:              getEnv("MINIO_REGION", "us-east-1"),
			SupplyChainBucket:   getEnv("SUPPLY_CHAIN_BUCKET", "supply-chain-bucket"),
			DataPoisoningBucket: getEnv("DATA_POISONING_BUCKET", "data-poisoning-bucket"),
			UploadsBucket:       getEnv("UPLOADS_BUCKET", "uploads-bucket"),
		},

		Tracing: tracing.Config{
			ServiceName:    serviceName,
			ServiceVersion: getEnv("SERVICE_VERSION", "1.0.0"),
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},

		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		CacheTTL:       getEnvDuration("CACHE_TTL", httpcache.DefaultConfig().DefaultTTL),
		KafkaBrokers:   splitList(getEnv("KAFKA_BROKERS", "")),
	}
}

// IsDevelopment reports whether console logging should be used
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// CacheConfig returns the response cache settings
func (c *Config) CacheConfig() httpcache.Config {
	cfg := httpcache.DefaultConfig()
	cfg.DefaultTTL = c.CacheTTL
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		logger.Logger.Warn().Str("key", key).Str("value", value).Msg("Invalid integer, using default")
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		logger.Logger.Warn().Str("key", key).Str("value", value).Msg("Invalid boolean, using default")
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logger.Logger.Warn().Str("key", key).Str("value", value).Msg("Invalid duration, using default")
		return defaultValue
	}
	return d
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
