package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/ai-goat-store/internal/product/domain"
	"github.com/tair/ai-goat-store/kafka"
	"github.com/tair/ai-goat-store/pkg/logger"
)

// ErrCommentBlocked is returned when the content filter rejects a comment
var ErrCommentBlocked = errors.New("comment blocked by content filter")

// ContentFilter decides whether text may be published
type ContentFilter interface {
	FilterContent(ctx context.Context, content string) bool
}

// AddCommentCommand represents the command to comment on a product
type AddCommentCommand struct {
	ProductID uint
	Content   string
}

// AddCommentHandler handles comment submission
type AddCommentHandler struct {
	filter   ContentFilter
	products domain.ProductRepository
	comments domain.CommentRepository
	events   kafka.EventPublisher
}

// NewAddCommentHandler creates a new add comment handler
func NewAddCommentHandler(filter ContentFilter, products domain.ProductRepository, comments domain.CommentRepository, events kafka.EventPublisher) *AddCommentHandler {
	if events == nil {
		events = kafka.NopPublisher{}
	}
	return &AddCommentHandler{filter: filter, products: products, comments: comments, events: events}
}

// Handle filters the content first, then checks the product and stores the comment
func (h *AddCommentHandler) Handle(ctx context.Context, cmd AddCommentCommand) (*domain.Comment, error) {
	if !h.filter.FilterContent(ctx, cmd.Content) {
		logger.Info(ctx).Uint("product_id", cmd.ProductID).Msg("Comment blocked by content filter")
		return nil, ErrCommentBlocked
	}

	exists, err := h.products.Exists(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("comment on %d: %w", cmd.ProductID, domain.ErrProductNotFound)
	}

	comment := &domain.Comment{
		Content:   cmd.Content,
		ProductID: cmd.ProductID,
	}
	if err := h.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	if err := h.events.Publish(ctx, kafka.StoreEvent{
		EventType: kafka.EventTypeCommentPosted,
		ProductID: cmd.ProductID,
	}); err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to publish comment event")
	}

	return comment, nil
}
