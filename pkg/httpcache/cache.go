package httpcache

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tair/ai-goat-store/pkg/logger"
)

// KeyPrefix prefixes every cached response key
const KeyPrefix = "cache:"

// Config holds cache configuration
type Config struct {
	DefaultTTL       time.Duration
	CacheableMethods []string
	CacheableStatus  []int
}

// DefaultConfig returns default cache configuration
func DefaultConfig() Config {
	return Config{
		DefaultTTL:       5 * time.Minute,
		CacheableMethods: []string{http.MethodGet, http.MethodHead},
		CacheableStatus:  []int{http.StatusOK, http.StatusNotFound},
	}
}

// Cache stores JSON responses in Redis. A nil client disables caching.
type Cache struct {
	client *redis.Client
	config Config
}

// New creates a response cache
func New(client *redis.Client, config Config) *Cache {
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = DefaultConfig().DefaultTTL
	}
	return &Cache{client: client, config: config}
}

// Enabled reports whether a Redis client is configured
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Middleware implements response caching with Redis
func (c *Cache) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !c.Enabled() || !contains(c.config.CacheableMethods, r.Method) {
			next(w, r)
			return
		}

		ctx := r.Context()
		cacheKey := GenerateKey(r)

		cached, err := c.client.Get(ctx, cacheKey).Bytes()
		if err == nil {
			if status, body, ok := decodeEntry(cached); ok {
				logger.Debug(ctx).
					Str("path", r.URL.Path).
					Str("cache_key", cacheKey).
					Int("status", status).
					Msg("Cache hit")

				w.Header().Set("X-Cache", "HIT")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				w.Write(body)
				return
			}
		}

		logger.Debug(ctx).
			Str("path", r.URL.Path).
			Str("cache_key", cacheKey).
			Msg("Cache miss")

		rec := &recorder{ResponseWriter: w, statusCode: http.StatusOK}
		w.Header().Set("X-Cache", "MISS")
		next(rec, r)

		if !containsInt(c.config.CacheableStatus, rec.statusCode) {
			return
		}

		if err := c.client.Set(ctx, cacheKey, encodeEntry(rec.statusCode, rec.body.Bytes()), c.config.DefaultTTL).Err(); err != nil {
			logger.Warn(ctx).
				Err(err).
				Str("cache_key", cacheKey).
				Msg("Failed to cache response")
			return
		}

		logger.Debug(ctx).
			Str("path", r.URL.Path).
			Str("cache_key", cacheKey).
			Dur("ttl", c.config.DefaultTTL).
			Int("size", rec.body.Len()).
			Msg("Response cached")
	}
}

// Invalidate deletes every cached response whose path starts with pathPrefix
func (c *Cache) Invalidate(ctx context.Context, pathPrefix string) error {
	if !c.Enabled() {
		return nil
	}

	pattern := KeyPrefix + pathPrefix + "*"
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}

	logger.Info(ctx).
		Int("count", len(keys)).
		Str("pattern", pattern).
		Msg("Cache invalidated")
	return nil
}

// GenerateKey builds a key from the path (kept readable for prefix invalidation)
// and a hash of method, query and authorization header.
func GenerateKey(r *http.Request) string {
	h := xxhash.New()
	h.WriteString(r.Method)
	h.WriteString(":")
	h.WriteString(r.URL.RawQuery)
	h.WriteString(":")
	h.WriteString(r.Header.Get("Authorization"))
	return fmt.Sprintf("%s%s:%016x", KeyPrefix, r.URL.Path, h.Sum64())
}

// encodeEntry stores the status code on the first line, followed by the body
func encodeEntry(status int, body []byte) []byte {
	entry := make([]byte, 0, len(body)+4)
	entry = strconv.AppendInt(entry, int64(status), 10)
	entry = append(entry, '\n')
	return append(entry, body...)
}

func decodeEntry(entry []byte) (int, []byte, bool) {
	i := bytes.IndexByte(entry, '\n')
	if i <= 0 {
		return 0, nil, false
	}
	status, err := strconv.Atoi(string(entry[:i]))
	if err != nil || status < 100 || status > 599 {
		return 0, nil, false
	}
	return status, entry[i+1:], true
}

// recorder captures the response body while passing it through
type recorder struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (r *recorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt(values []int, v int) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
