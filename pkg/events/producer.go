package events

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"gigbook/pkg/logger"
)

// Producer writes events to a single topic, hashed by key so events for the
// same booking or user stay ordered within a partition.
type Producer struct {
	writer *kafka.Writer
	log    *logger.Logger
}

func NewProducer(brokers []string, topic string, log *logger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		// Async writes return before delivery, so broker failures only
		// surface here.
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Error("Event delivery failed",
					"count", len(messages),
					"error", err,
				)
			}
		},
	}

	log.Info("Kafka event producer initialized", "brokers", brokers, "topic", topic)

	return &Producer{
		writer: writer,
		log:    log,
	}
}

func (p *Producer) Publish(ctx context.Context, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	value, err := event.Encode()
	if err != nil {
		p.log.Error("Failed to encode event", "type", event.Type, "error", err)
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key),
		Value: value,
	})
	if err != nil {
		p.log.Error("Failed to publish event",
			"type", event.Type,
			"key", event.Key,
			"error", err,
		)
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
