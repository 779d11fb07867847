package query

import (
	"context"

	productdomain "github.com/tair/ai-goat-store/internal/product/domain"
	"github.com/tair/ai-goat-store/internal/user/domain"
)

// GetCartQuery represents the query to read a user's cart
type GetCartQuery struct {
	Username string
}

// GetCartHandler resolves cart ids to products; unknown ids are skipped
type GetCartHandler struct {
	users   domain.UserRepository
	catalog domain.ProductCatalog
}

// NewGetCartHandler creates a new get cart handler
func NewGetCartHandler(users domain.UserRepository, catalog domain.ProductCatalog) *GetCartHandler {
	return &GetCartHandler{users: users, catalog: catalog}
}

// Handle executes the get cart query
func (h *GetCartHandler) Handle(ctx context.Context, query GetCartQuery) ([]productdomain.Product, error) {
	user, err := h.users.FindByUsername(ctx, query.Username)
	if err != nil {
		return nil, err
	}
	return h.catalog.FindByIDs(ctx, user.Cart)
}
