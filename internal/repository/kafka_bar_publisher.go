package repository

import (
	"context"
	"fmt"

	"MarketSim/internal/domain/models"
	pkgkafka "MarketSim/pkg/kafka"
)

// KafkaBarPublisher publishes bars to a Kafka topic, keyed by symbol so
// a symbol's bars stay ordered within one partition.
type KafkaBarPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaBarPublisher creates a bar publisher for the given topic.
func NewKafkaBarPublisher(producer *pkgkafka.Producer, topic string) *KafkaBarPublisher {
	return &KafkaBarPublisher{producer: producer, topic: topic}
}

// Publish sends a single bar.
func (p *KafkaBarPublisher) Publish(ctx context.Context, b *models.Bar) error {
	if err := p.producer.Publish(ctx, p.topic, []byte(b.Symbol), b); err != nil {
		return fmt.Errorf("publish bar %s: %w", b.Symbol, err)
	}
	return nil
}

// PublishBatch sends a series of bars in one writer call.
func (p *KafkaBarPublisher) PublishBatch(ctx context.Context, bars []models.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(bars))
	for i := range bars {
		msgs[i] = pkgkafka.Message{Key: []byte(bars[i].Symbol), Value: bars[i]}
	}
	if err := p.producer.PublishBatch(ctx, p.topic, msgs); err != nil {
		return fmt.Errorf("publish %d bars: %w", len(bars), err)
	}
	return nil
}

// Close closes the underlying producer.
func (p *KafkaBarPublisher) Close() error {
	return p.producer.Close()
}
