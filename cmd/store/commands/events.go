package commands

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tair/ai-goat-store/kafka"
	"github.com/tair/ai-goat-store/pkg/logger"
)

var consumerGroup string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Consume store events from Kafka and log them",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(cfg.KafkaBrokers) == 0 {
			return errors.New("KAFKA_BROKERS is not set")
		}

		consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, consumerGroup, []string{kafka.TopicStoreEvents})
		if err != nil {
			return err
		}
		defer consumer.Close()

		for _, eventType := range kafka.EventTypes {
			consumer.RegisterHandler(eventType, logEvent)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return consumer.Run(ctx)
	},
}

func logEvent(ctx context.Context, event kafka.StoreEvent) error {
	logger.Info(ctx).
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Uint("product_id", event.ProductID).
		Str("username", event.Username).
		Interface("product_ids", event.ProductIDs).
		Str("filename", event.Filename).
		Time("timestamp", event.Timestamp).
		Msg("Store event")
	return nil
}

func init() {
	eventsCmd.Flags().StringVar(&consumerGroup, "group", "store-events-logger", "Kafka consumer group")
}
