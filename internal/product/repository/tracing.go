package repository

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/ai-goat-store/internal/product/domain"
)

var tracer = otel.Tracer("product-repository")

// GormProductRepositoryWithTracing wraps GormProductRepository with tracing
type GormProductRepositoryWithTracing struct {
	*GormProductRepository
}

// NewGormProductRepositoryWithTracing creates a new repository with tracing
func NewGormProductRepositoryWithTracing(db *gorm.DB) *GormProductRepositoryWithTracing {
	return &GormProductRepositoryWithTracing{
		GormProductRepository: NewGormProductRepository(db),
	}
}

func (r *GormProductRepositoryWithTracing) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindAll")
	defer span.End()

	products, err := r.GormProductRepository.FindAll(ctx)
	if err != nil {
		recordDBError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, nil
}

func (r *GormProductRepositoryWithTracing) FindByIDs(ctx context.Context, ids []uint) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByIDs",
		trace.WithAttributes(attribute.Int("query.ids", len(ids))),
	)
	defer span.End()

	products, err := r.GormProductRepository.FindByIDs(ctx, ids)
	if err != nil {
		recordDBError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, nil
}

func (r *GormProductRepositoryWithTracing) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.Int("product.id", int(id))),
	)
	defer span.End()

	product, err := r.GormProductRepository.FindByID(ctx, id)
	if err != nil {
		recordDBError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.String("product.name", product.Name))
	return product, nil
}

func (r *GormProductRepositoryWithTracing) FindByCategory(ctx context.Context, categoryID uint) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByCategory",
		trace.WithAttributes(attribute.Int("category.id", int(categoryID))),
	)
	defer span.End()

	products, err := r.GormProductRepository.FindByCategory(ctx, categoryID)
	if err != nil {
		recordDBError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, nil
}

func (r *GormProductRepositoryWithTracing) Exists(ctx context.Context, id uint) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.Exists",
		trace.WithAttributes(attribute.Int("product.id", int(id))),
	)
	defer span.End()

	ok, err := r.GormProductRepository.Exists(ctx, id)
	if err != nil {
		recordDBError(span, err)
		return false, err
	}

	span.SetAttributes(attribute.Bool("product.exists", ok))
	return ok, nil
}

func (r *GormProductRepositoryWithTracing) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Count")
	defer span.End()

	count, err := r.GormProductRepository.Count(ctx)
	if err != nil {
		recordDBError(span, err)
		return 0, err
	}

	span.SetAttributes(attribute.Int64("result.count", count))
	return count, nil
}

// not-found is an expected outcome, not a span error
func recordDBError(span trace.Span, err error) {
	if errors.Is(err, domain.ErrProductNotFound) {
		span.SetAttributes(attribute.Bool("product.found", false))
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
