package usecase

import (
	"context"
	"math"
	"sync"
	"time"

	"MarketSim/internal/domain/models"
	"MarketSim/internal/domain/repository"
	"MarketSim/internal/services/market"
	applogger "MarketSim/pkg/logger"
)

// intradayVolScale shrinks the daily volatility to per-tick moves.
const intradayVolScale = 0.1

// LiveFeed walks every builtin symbol forward in simulated real time
// and fans ticks out to subscribers. Slow subscribers drop ticks rather
// than stall the feed.
type LiveFeed struct {
	interval time.Duration
	metrics  repository.Metrics
	log      *applogger.Logger

	mu     sync.Mutex
	subs   map[chan models.Tick]struct{}
	prices map[string]float64
	stream *market.Stream
}

// NewLiveFeed creates the feed. Prices start at each profile's base
// price; the walk is seeded from the wall clock since a live feed has
// no reproducibility contract.
func NewLiveFeed(interval time.Duration, m repository.Metrics, log *applogger.Logger) *LiveFeed {
	if interval <= 0 {
		interval = time.Second
	}
	prices := make(map[string]float64)
	for _, p := range market.ListProfiles() {
		prices[p.Symbol] = p.BasePrice
	}
	return &LiveFeed{
		interval: interval,
		metrics:  m,
		log:      log,
		subs:     make(map[chan models.Tick]struct{}),
		prices:   prices,
		stream:   market.NewStream(time.Now().UnixNano()),
	}
}

// Subscribe registers a tick channel. The returned cancel func must be
// called to release it.
func (f *LiveFeed) Subscribe() (<-chan models.Tick, func()) {
	ch := make(chan models.Tick, 64)
	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subs[ch]; ok {
			delete(f.subs, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Run drives the feed until the context is cancelled.
func (f *LiveFeed) Run(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	if f.log != nil {
		f.log.Info("live feed started", applogger.Duration("interval", f.interval))
	}
	for {
		select {
		case <-ctx.Done():
			if f.log != nil {
				f.log.Info("live feed stopped")
			}
			return
		case now := <-ticker.C:
			f.tick(now)
		}
	}
}

func (f *LiveFeed) tick(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.subs) == 0 {
		return
	}

	for _, p := range market.ListProfiles() {
		last := f.prices[p.Symbol]
		px := last * (1 + f.stream.Signed()*p.Volatility*intradayVolScale)
		px = math.Round(px*100) / 100
		if px < 0.01 {
			px = 0.01
		}
		f.prices[p.Symbol] = px
		f.metrics.RecordLastPrice(p.Symbol, px)

		t := models.Tick{
			Symbol: p.Symbol,
			Price:  px,
			Volume: int64(f.stream.Range(0.5, 1.5) * float64(p.AvgVolume) / 390),
			Time:   now,
		}
		for ch := range f.subs {
			select {
			case ch <- t:
			default:
				// subscriber is behind, drop the tick
			}
		}
	}
}
