package ml

import (
	"context"
	"strings"

	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tair/ai-goat-store/pkg/logger"
)

var fallbackTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "store_model_fallbacks_total",
		Help: "Model calls answered from the offline fallback",
	},
	[]string{"operation"},
)

// Service is the model facade used by the store. None of its methods fail:
// backend or parse errors are logged and answered with fixed dummy data.
type Service struct {
	backend Backend
}

// NewService wraps a backend. A nil backend behaves as UnavailableBackend.
func NewService(backend Backend) *Service {
	if backend == nil {
		backend = UnavailableBackend{Reason: "no backend configured"}
	}
	return &Service{backend: backend}
}

// Provider returns the backend name
func (s *Service) Provider() string {
	return s.backend.Name()
}

// FindSimilarProducts asks the vision model for catalog items resembling the image
func (s *Service) FindSimilarProducts(ctx context.Context, image []byte) []SimilarProduct {
	raw, err := s.complete(ctx, "find_similar_products", similarProductsRequest(image))
	if err != nil {
		s.fallback(ctx, "find_similar_products", err)
		return fallbackSimilarProducts()
	}

	switch result := ParseSimilarProducts(raw).(type) {
	case ParsedList[SimilarProduct]:
		return result.Items
	case ParseFailure[SimilarProduct]:
		s.fallback(ctx, "find_similar_products", result.Err)
	}
	return fallbackSimilarProducts()
}

// GetRecommendations asks the text model for product ids for a user
func (s *Service) GetRecommendations(ctx context.Context, userID uint) []uint {
	raw, err := s.complete(ctx, "get_recommendations", recommendationRequest(userID))
	if err != nil {
		s.fallback(ctx, "get_recommendations", err)
		return fallbackRecommendations()
	}

	switch result := ParseProductIDs(raw).(type) {
	case ParsedList[uint]:
		return result.Items
	case ParseFailure[uint]:
		s.fallback(ctx, "get_recommendations", result.Err)
	}
	return fallbackRecommendations()
}

// FilterContent reports whether a comment may be published
func (s *Service) FilterContent(ctx context.Context, content string) bool {
	raw, err := s.complete(ctx, "filter_content", moderationRequest(content))
	if err != nil {
		s.fallback(ctx, "filter_content", err)
		return fallbackAllow(content)
	}
	return strings.ToUpper(strings.TrimSpace(raw)) == "ALLOW"
}

func (s *Service) complete(ctx context.Context, operation string, prompt Prompt) (string, error) {
	ctx, span := otel.Tracer("ml-service").Start(ctx, "ml."+operation)
	defer span.End()

	span.SetAttributes(
		attribute.String("ml.provider", s.backend.Name()),
		attribute.Bool("ml.has_image", len(prompt.Image) > 0),
	)

	if timing := servertiming.FromContext(ctx); timing != nil {
		metric := timing.NewMetric("llm").WithDesc(operation).Start()
		defer metric.Stop()
	}

	raw, err := s.backend.Complete(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return raw, nil
}

func (s *Service) fallback(ctx context.Context, operation string, err error) {
	fallbackTotal.WithLabelValues(operation).Inc()
	logger.Warn(ctx).
		Err(err).
		Str("operation", operation).
		Str("provider", s.backend.Name()).
		Msg("Model call failed, using fallback")
}
