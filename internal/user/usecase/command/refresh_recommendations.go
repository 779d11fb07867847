package command

import (
	"context"
	"fmt"

	"github.com/tair/ai-goat-store/internal/ml"
	productdomain "github.com/tair/ai-goat-store/internal/product/domain"
	"github.com/tair/ai-goat-store/internal/user/domain"
	"github.com/tair/ai-goat-store/kafka"
	"github.com/tair/ai-goat-store/pkg/logger"
)

// Recommender proposes product ids for a user
type Recommender interface {
	GetRecommendations(ctx context.Context, userID uint) []uint
}

// RefreshRecommendationsCommand recomputes the recommendations of a user
type RefreshRecommendationsCommand struct {
	Username string
}

// RefreshRecommendationsHandler asks the recommender, stores the first
// ml.RecommendationLimit ids on the user and resolves them to products
type RefreshRecommendationsHandler struct {
	users       domain.UserRepository
	catalog     domain.ProductCatalog
	recommender Recommender
	events      kafka.EventPublisher
}

// NewRefreshRecommendationsHandler creates a new recommendations handler
func NewRefreshRecommendationsHandler(users domain.UserRepository, catalog domain.ProductCatalog, recommender Recommender, events kafka.EventPublisher) *RefreshRecommendationsHandler {
	if events == nil {
		events = kafka.NopPublisher{}
	}
	return &RefreshRecommendationsHandler{users: users, catalog: catalog, recommender: recommender, events: events}
}

// Handle executes the command
func (h *RefreshRecommendationsHandler) Handle(ctx context.Context, cmd RefreshRecommendationsCommand) ([]productdomain.Product, error) {
	user, err := h.users.FindByUsername(ctx, cmd.Username)
	if err != nil {
		return nil, err
	}

	ids := h.recommender.GetRecommendations(ctx, user.ID)
	if len(ids) > ml.RecommendationLimit {
		ids = ids[:ml.RecommendationLimit]
	}

	if err := h.users.UpdateRecommendations(ctx, user.ID, ids); err != nil {
		return nil, fmt.Errorf("failed to store recommendations: %w", err)
	}

	products, err := h.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		exists, err := h.catalog.Exists(ctx, id)
		switch {
		case err != nil:
			logger.Warn(ctx).Err(err).Uint("product_id", id).Msg("Could not check recommended product")
		case exists:
			logger.Info(ctx).Uint("product_id", id).Msg("Recommended product exists in database")
		default:
			logger.Info(ctx).Uint("product_id", id).Msg("Recommended product does not exist in database")
		}
	}

	if err := h.events.Publish(ctx, kafka.StoreEvent{
		EventType:  kafka.EventTypeRecommendationsGenerated,
		UserID:     user.ID,
		Username:   user.Username,
		ProductIDs: ids,
	}); err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to publish recommendations event")
	}

	return products, nil
}
