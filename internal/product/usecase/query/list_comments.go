package query

import (
	"context"
	"fmt"

	"github.com/tair/ai-goat-store/internal/product/domain"
)

// ListCommentsQuery selects the comments of a product
type ListCommentsQuery struct {
	ProductID uint
}

// ListCommentsHandler handles list comments query
type ListCommentsHandler struct {
	products domain.ProductRepository
	comments domain.CommentRepository
}

func NewListCommentsHandler(products domain.ProductRepository, comments domain.CommentRepository) *ListCommentsHandler {
	return &ListCommentsHandler{products: products, comments: comments}
}

// Handle returns ErrProductNotFound for an unknown product
func (h *ListCommentsHandler) Handle(ctx context.Context, query ListCommentsQuery) ([]domain.Comment, error) {
	exists, err := h.products.Exists(ctx, query.ProductID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("list comments of %d: %w", query.ProductID, domain.ErrProductNotFound)
	}

	return h.comments.FindByProduct(ctx, query.ProductID)
}
