package query

import (
	"context"
	"fmt"

	"github.com/tair/ai-goat-store/internal/product/domain"
)

// ListCategoriesHandler returns every category
type ListCategoriesHandler struct {
	repo domain.CategoryRepository
}

func NewListCategoriesHandler(repo domain.CategoryRepository) *ListCategoriesHandler {
	return &ListCategoriesHandler{repo: repo}
}

func (h *ListCategoriesHandler) Handle(ctx context.Context) ([]domain.Category, error) {
	categories, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

// CategoryProductsQuery selects the products of one category
type CategoryProductsQuery struct {
	CategoryID uint
}

// CategoryProductsHandler lists products attached to a category
type CategoryProductsHandler struct {
	categories domain.CategoryRepository
	products   domain.ProductRepository
}

func NewCategoryProductsHandler(categories domain.CategoryRepository, products domain.ProductRepository) *CategoryProductsHandler {
	return &CategoryProductsHandler{categories: categories, products: products}
}

func (h *CategoryProductsHandler) Handle(ctx context.Context, query CategoryProductsQuery) ([]domain.Product, error) {
	if _, err := h.categories.FindByID(ctx, query.CategoryID); err != nil {
		return nil, fmt.Errorf("get category %d: %w", query.CategoryID, err)
	}

	products, err := h.products.FindByCategory(ctx, query.CategoryID)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}
