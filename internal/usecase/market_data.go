package usecase

import (
	"context"
	"fmt"
	"time"

	"MarketSim/internal/domain/models"
	"MarketSim/internal/domain/repository"
	"MarketSim/internal/services/market"
	"MarketSim/pkg/cache"
	applogger "MarketSim/pkg/logger"
	"MarketSim/pkg/util"
)

// MarketDataOptions bounds what a single request may ask for.
type MarketDataOptions struct {
	MaxRangeDays int
	MaxSymbols   int
	CacheTTL     time.Duration
}

// MarketData serves generated OHLCV series. Generation itself is pure;
// this layer adds request resolution, response caching, publishing, and
// metrics around it.
type MarketData struct {
	cache     cache.Service           // optional
	publisher repository.BarPublisher // optional
	metrics   repository.Metrics
	log       *applogger.Logger
	opts      MarketDataOptions
}

// NewMarketData creates the market data service. cache and publisher
// may be nil when those backends are disabled.
func NewMarketData(
	c cache.Service,
	pub repository.BarPublisher,
	m repository.Metrics,
	log *applogger.Logger,
	opts MarketDataOptions,
) *MarketData {
	if opts.MaxRangeDays <= 0 {
		opts.MaxRangeDays = 3660
	}
	if opts.MaxSymbols <= 0 {
		opts.MaxSymbols = 50
	}
	return &MarketData{cache: c, publisher: pub, metrics: m, log: log, opts: opts}
}

// Symbols returns the builtin symbol universe.
func (s *MarketData) Symbols() []models.SymbolProfile {
	return market.ListProfiles()
}

// Scenarios returns the builtin scenario catalog.
func (s *MarketData) Scenarios() []models.Scenario {
	return market.ListScenarios()
}

// OHLCV returns the generated daily series for one symbol.
func (s *MarketData) OHLCV(ctx context.Context, req models.OHLCVRequest) ([]models.Bar, error) {
	profile, opts, err := s.resolve(req.Symbol, req.From, req.To, req.Scenario, req.Seed, req.IncludeWeekends)
	if err != nil {
		return nil, err
	}

	key := s.seriesKey(req.Symbol, opts, req.Scenario)
	if bars, ok := s.cachedSeries(ctx, key); ok {
		return bars, nil
	}

	start := time.Now()
	bars, err := market.Generate(profile, opts)
	if err != nil {
		s.metrics.RecordError("generate")
		return nil, err
	}
	s.observeGenerated(ctx, req.Scenario, map[string][]models.Bar{req.Symbol: bars}, time.Since(start))

	s.storeSeries(ctx, key, bars)
	return bars, nil
}

// MultiOHLCV returns independent series for several symbols.
func (s *MarketData) MultiOHLCV(ctx context.Context, req models.MultiOHLCVRequest) (map[string][]models.Bar, error) {
	if len(req.Symbols) > s.opts.MaxSymbols {
		return nil, fmt.Errorf("%d symbols exceeds limit %d: %w", len(req.Symbols), s.opts.MaxSymbols, models.ErrInvalidParameter)
	}
	_, opts, err := s.resolveRange(req.From, req.To, req.Scenario, req.Seed, req.IncludeWeekends)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	series, err := market.GenerateMulti(req.Symbols, opts)
	if err != nil {
		s.metrics.RecordError("generate_multi")
		return nil, err
	}
	s.observeGenerated(ctx, req.Scenario, series, time.Since(start))
	return series, nil
}

// resolve builds generation inputs for a single-symbol request.
func (s *MarketData) resolve(symbol, from, to, scenario string, seed *int64, weekends bool) (models.SymbolProfile, models.GenerationOptions, error) {
	profile, err := market.LookupProfile(symbol)
	if err != nil {
		return models.SymbolProfile{}, models.GenerationOptions{}, err
	}
	_, opts, err := s.resolveRange(from, to, scenario, seed, weekends)
	return profile, opts, err
}

// resolveRange parses dates, checks the range limit, and resolves the
// scenario name.
func (s *MarketData) resolveRange(from, to, scenario string, seed *int64, weekends bool) (models.Scenario, models.GenerationOptions, error) {
	fromDay, ok := util.ParseDay(from)
	if !ok {
		return models.Scenario{}, models.GenerationOptions{}, fmt.Errorf("from %q: %w", from, models.ErrInvalidParameter)
	}
	toDay, ok := util.ParseDay(to)
	if !ok {
		return models.Scenario{}, models.GenerationOptions{}, fmt.Errorf("to %q: %w", to, models.ErrInvalidParameter)
	}
	if fromDay.After(toDay) {
		return models.Scenario{}, models.GenerationOptions{}, fmt.Errorf("from %s after to %s: %w", from, to, models.ErrInvalidRange)
	}
	if days := int(toDay.Sub(fromDay).Hours()/24) + 1; days > s.opts.MaxRangeDays {
		return models.Scenario{}, models.GenerationOptions{}, fmt.Errorf("range of %d days exceeds limit %d: %w", days, s.opts.MaxRangeDays, models.ErrInvalidRange)
	}

	sc := market.DefaultScenario()
	if scenario != "" {
		var err error
		if sc, err = market.GetScenario(scenario); err != nil {
			return models.Scenario{}, models.GenerationOptions{}, err
		}
	}

	return sc, models.GenerationOptions{
		From:            fromDay,
		To:              toDay,
		Scenario:        &sc,
		IncludeWeekends: weekends,
		Seed:            seed,
	}, nil
}

func (s *MarketData) seriesKey(symbol string, opts models.GenerationOptions, scenario string) string {
	seed := int64(-1)
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	return cache.GenerateKeyWithParams("ohlcv",
		symbol,
		opts.From.Format(util.DayFormat),
		opts.To.Format(util.DayFormat),
		scenario,
		seed,
		opts.IncludeWeekends,
	)
}

func (s *MarketData) cachedSeries(ctx context.Context, key string) ([]models.Bar, bool) {
	if s.cache == nil {
		return nil, false
	}
	var bars []models.Bar
	if err := s.cache.Get(ctx, key, &bars); err != nil {
		return nil, false
	}
	return bars, true
}

func (s *MarketData) storeSeries(ctx context.Context, key string, bars []models.Bar) {
	if s.cache == nil || s.opts.CacheTTL <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, bars, s.opts.CacheTTL); err != nil && s.log != nil {
		s.log.Warn("series cache write failed", applogger.Error(err))
	}
}

// observeGenerated records metrics for finished generation and publishes
// the series downstream when a publisher is wired. Publish failures are
// logged, not returned: the response does not depend on the broker.
func (s *MarketData) observeGenerated(ctx context.Context, scenario string, series map[string][]models.Bar, took time.Duration) {
	if scenario == "" {
		scenario = market.DefaultScenario().Name
	}
	s.metrics.RecordLatency("generate", took.Seconds())
	for sym, bars := range series {
		s.metrics.RecordBarsGenerated(sym, scenario, len(bars))
		if len(bars) > 0 {
			s.metrics.RecordLastPrice(sym, bars[len(bars)-1].Close)
		}
		if s.publisher != nil {
			if err := s.publisher.PublishBatch(ctx, bars); err != nil {
				s.metrics.RecordError("publish")
				if s.log != nil {
					s.log.Warn("bar publish failed", applogger.String("symbol", sym), applogger.Error(err))
				}
			}
		}
	}
}
