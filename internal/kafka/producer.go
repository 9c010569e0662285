package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer writes JSON-encoded booking events and notifications. Topics are
// chosen per message so one writer serves both streams.
type Producer struct {
	brokers []string
	writer  *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		brokers: brokers,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			BatchTimeout:           20 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

// Publish sends payload to topic. Messages sharing a key (a user or booking
// id) land on the same partition and keep their order.
func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	msg, err := encodeMessage(topic, key, payload)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	log.Printf("[KAFKA] published topic=%s key=%s", topic, key)
	return nil
}

func encodeMessage(topic, key string, payload interface{}) (kafka.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode %s message: %w", topic, err)
	}
	return kafka.Message{Topic: topic, Key: []byte(key), Value: data, Time: time.Now().UTC()}, nil
}

func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// CheckConnection dials the first broker and reads its partition list.
func (p *Producer) CheckConnection(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return fmt.Errorf("no kafka brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("dial kafka %s: %w", p.brokers[0], err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions()
	if err != nil {
		return fmt.Errorf("read kafka partitions: %w", err)
	}
	log.Printf("[KAFKA] connected to %s, %d partitions visible", p.brokers[0], len(partitions))
	return nil
}
