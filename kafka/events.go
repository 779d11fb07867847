package kafka

import (
	"context"
	"time"
)

// StoreEvent is emitted when a customer interacts with the store
type StoreEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	ProductID  uint      `json:"product_id,omitempty"`
	UserID     uint      `json:"user_id,omitempty"`
	Username   string    `json:"username,omitempty"`
	ProductIDs []uint    `json:"product_ids,omitempty"`
	Filename   string    `json:"filename,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeCommentPosted            = "comment.posted"
	EventTypePhotoUploaded            = "photo.uploaded"
	EventTypeRecommendationsGenerated = "recommendations.generated"
)

// EventTypes lists every event type the store emits
var EventTypes = []string{
	EventTypeCommentPosted,
	EventTypePhotoUploaded,
	EventTypeRecommendationsGenerated,
}

// Kafka topics
const (
	TopicStoreEvents = "store-events"
)

// EventPublisher publishes store events
type EventPublisher interface {
	Publish(ctx context.Context, event StoreEvent) error
}

// NopPublisher drops every event; used when no brokers are configured
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, StoreEvent) error { return nil }
