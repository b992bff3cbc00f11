// Package mykafka ships domain events (register, login, post/comment
// mutations) to Kafka. Publishing is best-effort: callers log failures and
// never fail the request on a broker problem.
package mykafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const serviceName = "IAM_SERVICE"

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Service    string    `json:"service"`
	UserID     uint      `json:"user_id"`
	EntityID   uint      `json:"entity_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &Producer{writer: w}
}

// PublishEvent stamps the envelope and writes one message keyed by user id.
// A nil Producer is a disabled producer and publishes nothing.
func (p *Producer) PublishEvent(ctx context.Context, eventType string, userID, entityID uint) error {
	if p == nil || p.writer == nil {
		return nil
	}

	event := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Service:    serviceName,
		UserID:     userID,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprint(userID)),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
