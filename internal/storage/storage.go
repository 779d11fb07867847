package storage

import (
	"context"
	"time"

	servertiming "github.com/mitchellh/go-server-timing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/ai-goat-store/pkg/logger"
)

// DefaultPresignExpiry is the lifetime of presigned download links
const DefaultPresignExpiry = time.Hour

const uploadTimeLayout = "20060102_150405"

// Config holds the endpoint, credentials and bucket names
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string

	SupplyChainBucket   string
	DataPoisoningBucket string
	UploadsBucket       string
}

// BucketInfo describes where objects live
type BucketInfo struct {
	Endpoint string            `json:"endpoint"`
	Buckets  map[string]string `json:"buckets"`
}

// Storage wraps an object store. Failures are logged and reported as absence
// ("" / nil / false / empty) rather than errors.
type Storage struct {
	client ObjectClient
	config Config
	now    func() time.Time
}

// New connects to the configured endpoint. A client that cannot be built
// leaves the storage in a disabled state where every call is a no-op.
func New(cfg Config) *Storage {
	client, err := NewMinioClient(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, cfg.Region)
	if err != nil {
		logger.Logger.Error().Err(err).Str("endpoint", cfg.Endpoint).Msg("Failed to initialize storage client")
		return NewWithClient(cfg, nil)
	}
	logger.Logger.Info().Str("endpoint", cfg.Endpoint).Msg("Storage client initialized")
	return NewWithClient(cfg, client)
}

// NewWithClient builds a Storage over an existing client
func NewWithClient(cfg Config, client ObjectClient) *Storage {
	return &Storage{client: client, config: cfg, now: time.Now}
}

// UploadsBucket returns the bucket photo uploads are written to
func (s *Storage) UploadsBucket() string {
	return s.config.UploadsBucket
}

// SaveUpload stores an uploaded image as <YYYYMMDD_HHMMSS>_<filename> in the
// uploads bucket and returns that key, or "" on failure. The name is not sanitized.
func (s *Storage) SaveUpload(ctx context.Context, filename string, data []byte) string {
	if !s.ready(ctx) {
		return ""
	}
	ctx, done := s.observe(ctx, "save_upload", s.config.UploadsBucket)
	defer done()

	key := s.now().Format(uploadTimeLayout) + "_" + filename
	if err := s.client.PutObject(ctx, s.config.UploadsBucket, key, data, "image/jpeg"); err != nil {
		logger.Error(ctx).Err(err).Str("filename", filename).Msg("Failed to upload file")
		return ""
	}

	logger.Info(ctx).Str("key", key).Int("size", len(data)).Msg("Uploaded file")
	return key
}

// GetFile reads an object, nil when missing or on failure
func (s *Storage) GetFile(ctx context.Context, bucket, key string) []byte {
	if !s.ready(ctx) {
		return nil
	}
	ctx, done := s.observe(ctx, "get_file", bucket)
	defer done()

	data, err := s.client.GetObject(ctx, bucket, key)
	if err != nil {
		logger.Error(ctx).Err(err).Str("bucket", bucket).Str("key", key).Msg("Failed to get file")
		return nil
	}
	return data
}

// ListFiles returns the keys under prefix
func (s *Storage) ListFiles(ctx context.Context, bucket, prefix string) []string {
	if !s.ready(ctx) {
		return []string{}
	}
	ctx, done := s.observe(ctx, "list_files", bucket)
	defer done()

	keys, err := s.client.ListObjects(ctx, bucket, prefix)
	if err != nil {
		logger.Error(ctx).Err(err).Str("bucket", bucket).Msg("Failed to list files")
		return []string{}
	}
	if keys == nil {
		keys = []string{}
	}
	return keys
}

// PutFile writes an object; contentType defaults to application/octet-stream
func (s *Storage) PutFile(ctx context.Context, bucket, key string, data []byte, contentType string) bool {
	if !s.ready(ctx) {
		return false
	}
	ctx, done := s.observe(ctx, "put_file", bucket)
	defer done()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := s.client.PutObject(ctx, bucket, key, data, contentType); err != nil {
		logger.Error(ctx).Err(err).Str("bucket", bucket).Str("key", key).Msg("Failed to put file")
		return false
	}
	return true
}

// PresignedURL returns a time-limited GET link, "" on failure
func (s *Storage) PresignedURL(ctx context.Context, bucket, key string, expiry time.Duration) string {
	if !s.ready(ctx) {
		return ""
	}
	if expiry <= 0 {
		expiry = DefaultPresignExpiry
	}
	ctx, done := s.observe(ctx, "presign", bucket)
	defer done()

	url, err := s.client.PresignedGetObject(ctx, bucket, key, expiry)
	if err != nil {
		logger.Error(ctx).Err(err).Str("bucket", bucket).Str("key", key).Msg("Failed to generate presigned URL")
		return ""
	}
	return url
}

// DeleteFile removes an object
func (s *Storage) DeleteFile(ctx context.Context, bucket, key string) bool {
	if !s.ready(ctx) {
		return false
	}
	ctx, done := s.observe(ctx, "delete_file", bucket)
	defer done()

	if err := s.client.RemoveObject(ctx, bucket, key); err != nil {
		logger.Error(ctx).Err(err).Str("bucket", bucket).Str("key", key).Msg("Failed to delete file")
		return false
	}
	return true
}

// BucketInfo reports the endpoint and configured bucket names
func (s *Storage) BucketInfo() BucketInfo {
	return BucketInfo{
		Endpoint: s.config.Endpoint,
		Buckets: map[string]string{
			"supply_chain":   s.config.SupplyChainBucket,
			"data_poisoning": s.config.DataPoisoningBucket,
			"uploads":        s.config.UploadsBucket,
		},
	}
}

func (s *Storage) ready(ctx context.Context) bool {
	if s.client == nil {
		logger.Error(ctx).Msg("Storage client not initialized")
		return false
	}
	return true
}

func (s *Storage) observe(ctx context.Context, operation, bucket string) (context.Context, func()) {
	ctx, span := otel.Tracer("storage").Start(ctx, "storage."+operation,
		trace.WithAttributes(attribute.String("storage.bucket", bucket)))

	var metric *servertiming.Metric
	if timing := servertiming.FromContext(ctx); timing != nil {
		metric = timing.NewMetric("storage").WithDesc(operation).Start()
	}

	return ctx, func() {
		if metric != nil {
			metric.Stop()
		}
		span.End()
	}
}
