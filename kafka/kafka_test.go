package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishFillsMetadata(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer producer.Close()

	var sent StoreEvent
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, TopicStoreEvents, msg.Topic)
		value, err := msg.Value.Encode()
		require.NoError(t, err)
		return json.Unmarshal(value, &sent)
	})

	publisher := NewPublisherWithProducer(producer)
	err := publisher.Publish(context.Background(), StoreEvent{
		EventType: EventTypeCommentPosted,
		ProductID: 3,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, sent.EventID)
	assert.False(t, sent.Timestamp.IsZero())
	assert.Equal(t, EventTypeCommentPosted, sent.EventType)
	assert.Equal(t, uint(3), sent.ProductID)
}

func TestPublishReportsFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer producer.Close()
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := NewPublisherWithProducer(producer).Publish(context.Background(), StoreEvent{EventType: EventTypePhotoUploaded})

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}

func TestConsumerDispatchesByEventType(t *testing.T) {
	c := &Consumer{}
	var got StoreEvent
	c.RegisterHandler(EventTypeRecommendationsGenerated, func(_ context.Context, e StoreEvent) error {
		got = e
		return nil
	})

	body, err := json.Marshal(StoreEvent{EventID: "e1", EventType: EventTypeRecommendationsGenerated, ProductIDs: []uint{25, 5}})
	require.NoError(t, err)

	err = c.handleMessage(context.Background(), &sarama.ConsumerMessage{
		Topic:   TopicStoreEvents,
		Value:   body,
		Headers: []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte(EventTypeRecommendationsGenerated)}},
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{25, 5}, got.ProductIDs)
}

func TestConsumerRejectsUnroutableMessages(t *testing.T) {
	c := &Consumer{}
	c.RegisterHandler(EventTypeCommentPosted, func(context.Context, StoreEvent) error {
		return errors.New("boom")
	})

	assert.Error(t, c.handleMessage(context.Background(), &sarama.ConsumerMessage{Value: []byte(`{}`)}))
	assert.Error(t, c.handleMessage(context.Background(), &sarama.ConsumerMessage{
		Value:   []byte(`{}`),
		Headers: []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte("unknown")}},
	}))
	assert.Error(t, c.handleMessage(context.Background(), &sarama.ConsumerMessage{
		Value:   []byte(`not json`),
		Headers: []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte(EventTypeCommentPosted)}},
	}))
	assert.Error(t, c.handleMessage(context.Background(), &sarama.ConsumerMessage{
		Value:   []byte(`{}`),
		Headers: []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte(EventTypeCommentPosted)}},
	}))
}

func TestNopPublisher(t *testing.T) {
	var p EventPublisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), StoreEvent{}))
}
