package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Domenick1991/tripsearch/internal/metrics"
)

type Consumer struct {
	reader *kafka.Reader
	log    *slog.Logger
}

// TripEventHandler receives each decoded trip event in partition order.
type TripEventHandler func(ctx context.Context, event TripEvent) error

func NewConsumer(brokers []string, groupID, topic string, log *slog.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		log: log,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// ConsumeTripEvents reads trip events until ctx is cancelled or handler
// fails. Messages that are not trip events are logged and skipped.
// Cancellation is not reported as an error.
func (c *Consumer) ConsumeTripEvents(ctx context.Context, handler TripEventHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return err
		}

		if err := c.dispatch(ctx, msg, handler); err != nil {
			return err
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, msg kafka.Message, handler TripEventHandler) error {
	event, err := DecodeTripEvent(msg.Value)
	if err != nil {
		metrics.IncKafkaError("consumer", "decode")
		c.log.WarnContext(ctx, "skip undecodable trip event",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"error", err,
		)
		return nil
	}

	if err := handler(ctx, event); err != nil {
		metrics.IncKafkaError("consumer", "handle")
		return fmt.Errorf("handle trip event %s: %w", event.Reference, err)
	}
	metrics.IncKafkaProcessed()
	return nil
}
