package usecase

import (
	"context"
	"fmt"
	"time"

	"MarketSim/internal/domain/models"
	"MarketSim/internal/domain/repository"
	"MarketSim/internal/services/market"
	applogger "MarketSim/pkg/logger"
	"MarketSim/pkg/util"
)

// SeedSummary reports what a bulk seed run produced.
type SeedSummary struct {
	Symbols  int   `json:"symbols"`
	Bars     int   `json:"bars"`
	TookMs   int64 `json:"tookMs"`
	Stored   bool  `json:"stored"`
	Released bool  `json:"released"` // published to the broker
}

// Seeder bulk-generates series and loads them into the warehouse and
// the broker. Used to stand up demo datasets in one call.
type Seeder struct {
	store     repository.BarStore     // optional
	publisher repository.BarPublisher // optional
	metrics   repository.Metrics
	log       *applogger.Logger
	batchSize int
}

// NewSeeder creates a seeder. store and publisher may be nil; the run
// then only generates and reports.
func NewSeeder(store repository.BarStore, pub repository.BarPublisher, m repository.Metrics, log *applogger.Logger, batchSize int) *Seeder {
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &Seeder{store: store, publisher: pub, metrics: m, log: log, batchSize: batchSize}
}

// Seed generates series for the requested symbols (the full builtin
// universe when none are given) and loads them downstream.
func (s *Seeder) Seed(ctx context.Context, req models.SeedRequest) (SeedSummary, error) {
	from, ok := util.ParseDay(req.From)
	if !ok {
		return SeedSummary{}, fmt.Errorf("from %q: %w", req.From, models.ErrInvalidParameter)
	}
	to, ok := util.ParseDay(req.To)
	if !ok {
		return SeedSummary{}, fmt.Errorf("to %q: %w", req.To, models.ErrInvalidParameter)
	}

	symbols := req.Symbols
	if len(symbols) == 0 {
		for _, p := range market.ListProfiles() {
			symbols = append(symbols, p.Symbol)
		}
	}

	sc := market.DefaultScenario()
	if req.Scenario != "" {
		var err error
		if sc, err = market.GetScenario(req.Scenario); err != nil {
			return SeedSummary{}, err
		}
	}

	start := time.Now()
	series, err := market.GenerateMulti(symbols, models.GenerationOptions{
		From:     from,
		To:       to,
		Scenario: &sc,
		Seed:     req.Seed,
	})
	if err != nil {
		s.metrics.RecordError("seed_generate")
		return SeedSummary{}, err
	}

	total := 0
	for sym, bars := range series {
		total += len(bars)
		s.metrics.RecordBarsGenerated(sym, sc.Name, len(bars))

		if s.store != nil {
			for off := 0; off < len(bars); off += s.batchSize {
				end := off + s.batchSize
				if end > len(bars) {
					end = len(bars)
				}
				if err := s.store.StoreBatch(ctx, bars[off:end]); err != nil {
					s.metrics.RecordError("seed_store")
					return SeedSummary{}, fmt.Errorf("store %s: %w", sym, err)
				}
			}
		}
		if s.publisher != nil {
			if err := s.publisher.PublishBatch(ctx, bars); err != nil {
				s.metrics.RecordError("seed_publish")
				return SeedSummary{}, fmt.Errorf("publish %s: %w", sym, err)
			}
		}
	}

	took := time.Since(start)
	s.metrics.RecordLatency("seed", took.Seconds())
	if s.log != nil {
		s.log.Info("seed run complete",
			applogger.Int("symbols", len(series)),
			applogger.Int("bars", total),
			applogger.Duration("took", took),
		)
	}

	return SeedSummary{
		Symbols:  len(series),
		Bars:     total,
		TookMs:   took.Milliseconds(),
		Stored:   s.store != nil,
		Released: s.publisher != nil,
	}, nil
}

// Stored reads previously seeded bars back from the warehouse, oldest
// first. limit <= 0 returns the whole range.
func (s *Seeder) Stored(ctx context.Context, symbol, from, to string, limit int) ([]models.Bar, error) {
	if s.store == nil {
		return nil, fmt.Errorf("warehouse disabled: %w", models.ErrNotFound)
	}
	fromDay, ok := util.ParseDay(from)
	if !ok {
		return nil, fmt.Errorf("from %q: %w", from, models.ErrInvalidParameter)
	}
	toDay, ok := util.ParseDay(to)
	if !ok {
		return nil, fmt.Errorf("to %q: %w", to, models.ErrInvalidParameter)
	}
	bars, err := s.store.Query(ctx, symbol, fromDay, toDay, limit)
	if err != nil {
		s.metrics.RecordError("warehouse_query")
		return nil, fmt.Errorf("query warehouse: %w", err)
	}
	return bars, nil
}
