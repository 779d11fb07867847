package repository

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/ai-goat-store/internal/user/domain"
)

var tracer = otel.Tracer("user-repository")

// GormUserRepositoryWithTracing wraps GormUserRepository with tracing
type GormUserRepositoryWithTracing struct {
	*GormUserRepository
}

// NewGormUserRepositoryWithTracing creates a new repository with tracing
func NewGormUserRepositoryWithTracing(db *gorm.DB) *GormUserRepositoryWithTracing {
	return &GormUserRepositoryWithTracing{
		GormUserRepository: NewGormUserRepository(db),
	}
}

// FindByUsername with tracing
func (r *GormUserRepositoryWithTracing) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByUsername",
		trace.WithAttributes(attribute.String("user.username", username)),
	)
	defer span.End()

	user, err := r.GormUserRepository.FindByUsername(ctx, username)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("user.id", int(user.ID)),
		attribute.Int("user.cart_size", len(user.Cart)),
	)
	return user, nil
}

// UpdateRecommendations with tracing
func (r *GormUserRepositoryWithTracing) UpdateRecommendations(ctx context.Context, id uint, productIDs []uint) error {
	ctx, span := tracer.Start(ctx, "repository.UpdateRecommendations",
		trace.WithAttributes(
			attribute.Int("user.id", int(id)),
			attribute.Int("recommendations.count", len(productIDs)),
		),
	)
	defer span.End()

	if err := r.GormUserRepository.UpdateRecommendations(ctx, id, productIDs); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

// Count with tracing
func (r *GormUserRepositoryWithTracing) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Count")
	defer span.End()

	count, err := r.GormUserRepository.Count(ctx)
	if err != nil {
		recordError(span, err)
		return 0, err
	}

	span.SetAttributes(attribute.Int64("result.count", count))
	return count, nil
}

func recordError(span trace.Span, err error) {
	if errors.Is(err, domain.ErrUserNotFound) {
		span.SetAttributes(attribute.Bool("user.found", false))
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
