package query

import (
	"context"
	"fmt"

	"github.com/tair/ai-goat-store/internal/product/domain"
)

// ListProductsQuery lists the catalog, optionally restricted to IDs
type ListProductsQuery struct {
	IDs []uint
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, query ListProductsQuery) ([]domain.Product, error) {
	var products []domain.Product
	var err error

	if len(query.IDs) > 0 {
		products, err = h.repo.FindByIDs(ctx, query.IDs)
	} else {
		products, err = h.repo.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}
