package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// ConsumeNotifications reads until ctx is done or handler fails.
// Messages that do not decode are logged and skipped.
func (c *Consumer) ConsumeNotifications(ctx context.Context, handler func(context.Context, Notification) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		n, ok := decodeNotification(msg.Value)
		if !ok {
			log.Printf("skip undecodable notification at offset %d", msg.Offset)
			continue
		}
		if err := handler(ctx, n); err != nil {
			return err
		}
	}
}

func decodeNotification(data []byte) (Notification, bool) {
	var n Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return Notification{}, false
	}
	if n.Email == "" {
		return Notification{}, false
	}
	return n, true
}
