package usecase

import (
	"context"
	"sync"
	"time"

	"MarketSim/internal/domain/models"
)

// fakeMetrics counts recorder calls.
type fakeMetrics struct {
	mu         sync.Mutex
	bars       int
	errors     map[string]int
	violations map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{errors: make(map[string]int), violations: make(map[string]int)}
}

func (m *fakeMetrics) RecordBarsGenerated(_, _ string, n int) {
	m.mu.Lock()
	m.bars += n
	m.mu.Unlock()
}

func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	m.errors[kind]++
	m.mu.Unlock()
}

func (m *fakeMetrics) RecordViolation(rule string) {
	m.mu.Lock()
	m.violations[rule]++
	m.mu.Unlock()
}

func (m *fakeMetrics) RecordLastPrice(string, float64) {}
func (m *fakeMetrics) RecordLatency(string, float64)   {}

// fakeStore collects stored bars in memory.
type fakeStore struct {
	mu   sync.Mutex
	bars []models.Bar
}

func (s *fakeStore) Store(ctx context.Context, b *models.Bar) error {
	return s.StoreBatch(ctx, []models.Bar{*b})
}

func (s *fakeStore) StoreBatch(_ context.Context, bars []models.Bar) error {
	s.mu.Lock()
	s.bars = append(s.bars, bars...)
	s.mu.Unlock()
	return nil
}

func (s *fakeStore) Query(_ context.Context, symbol string, from, to time.Time, limit int) ([]models.Bar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Bar
	for _, b := range s.bars {
		if b.Symbol != symbol || b.Date.Before(from) || b.Date.After(to) {
			continue
		}
		out = append(out, b)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *fakeStore) Health(context.Context) error { return nil }
func (s *fakeStore) Close() error                 { return nil }

// fakePublisher collects published bars.
type fakePublisher struct {
	mu   sync.Mutex
	bars []models.Bar
}

func (p *fakePublisher) Publish(ctx context.Context, b *models.Bar) error {
	return p.PublishBatch(ctx, []models.Bar{*b})
}

func (p *fakePublisher) PublishBatch(_ context.Context, bars []models.Bar) error {
	p.mu.Lock()
	p.bars = append(p.bars, bars...)
	p.mu.Unlock()
	return nil
}

func (p *fakePublisher) Close() error { return nil }
