package events

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// CatalogConsumer turns catalog change notifications into refreshes.
type CatalogConsumer struct {
	reader *kafka.Reader
	logger *zap.Logger
}

func NewCatalogConsumer(brokers, topic, groupID string, logger *zap.Logger) (*CatalogConsumer, error) {
	addrs := splitBrokers(brokers)
	if len(addrs) == 0 {
		return nil, errors.New("no kafka brokers configured")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: addrs,
		Topic:   topic,
		GroupID: groupID,
	})

	return &CatalogConsumer{
		reader: reader,
		logger: logger,
	}, nil
}

// Run blocks until ctx is cancelled, calling onChange for every decoded
// event. Handler errors are logged and the message is committed anyway;
// the periodic refresh picks up whatever was missed.
func (c *CatalogConsumer) Run(ctx context.Context, onChange func(context.Context, CatalogChangedEvent) error) {
	topic := c.reader.Config().Topic
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("Catalog consumer shutting down", zap.String("topic", topic))
				return
			}
			c.logger.Error("Error reading message", zap.String("topic", topic), zap.Error(err))
			continue
		}
		c.handle(ctx, msg, onChange)
	}
}

func (c *CatalogConsumer) handle(ctx context.Context, msg kafka.Message, onChange func(context.Context, CatalogChangedEvent) error) {
	var event CatalogChangedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Warn("Skipping malformed catalog event",
			zap.Int64("offset", msg.Offset),
			zap.Error(err))
		return
	}

	if err := onChange(ctx, event); err != nil {
		c.logger.Error("Error handling catalog event",
			zap.String("event_id", event.EventID),
			zap.String("entity", event.Entity),
			zap.Error(err))
	}
}

func (c *CatalogConsumer) Close() error {
	return c.reader.Close()
}
