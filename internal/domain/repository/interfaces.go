package repository

import (
	"context"
	"time"

	"MarketSim/internal/domain/models"
)

// BarStore persists generated (or ingested) daily bars.
type BarStore interface {
	Store(ctx context.Context, b *models.Bar) error
	StoreBatch(ctx context.Context, bars []models.Bar) error
	Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]models.Bar, error)
	Health(ctx context.Context) error
	Close() error
}

// BarPublisher publishes bars for downstream consumers.
type BarPublisher interface {
	Publish(ctx context.Context, b *models.Bar) error
	PublishBatch(ctx context.Context, bars []models.Bar) error
	Close() error
}

// Metrics records operational metrics.
type Metrics interface {
	RecordBarsGenerated(symbol, scenario string, n int)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
	RecordViolation(rule string)
}
