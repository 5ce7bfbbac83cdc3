package market

import (
	"fmt"
	"math"
	"sync"
	"time"

	"MarketSim/internal/domain/models"
	"MarketSim/pkg/util"
)

const (
	priceFloor  = 0.01
	volumeFloor = 1000
	// openJitter bounds the open's deviation from the previous close,
	// as a fraction of the scenario volatility.
	openJitter = 0.3
)

// Generate walks a daily price process forward under the options'
// scenario and returns one bar per eligible trading day in
// [opts.From, opts.To], sorted ascending by date.
//
// The walk is reproducible: a fixed seed, profile, and options yield an
// identical series. When opts.Seed is nil the seed is derived from the
// symbol alone, so repeated calls for the same symbol stay stable.
func Generate(p models.SymbolProfile, opts models.GenerationOptions) ([]models.Bar, error) {
	if p.Symbol == "" || p.BasePrice <= 0 || p.Volatility <= 0 {
		return nil, fmt.Errorf("profile %q: %w", p.Symbol, models.ErrInvalidParameter)
	}
	from, to := util.Day(opts.From), util.Day(opts.To)
	if from.After(to) {
		return nil, fmt.Errorf("from %s after to %s: %w",
			from.Format(util.DayFormat), to.Format(util.DayFormat), models.ErrInvalidRange)
	}
	sc := DefaultScenario()
	if opts.Scenario != nil {
		sc = *opts.Scenario
	}
	if sc.Volatility <= 0 || sc.VolumeMultiplier < 0 {
		return nil, fmt.Errorf("scenario %q: %w", sc.Name, models.ErrInvalidParameter)
	}

	seed := SeedFor(p.Symbol, 0)
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	st := NewStream(seed)

	bars := make([]models.Bar, 0, util.CountTradingDays(from, to, opts.IncludeWeekends))
	prevClose := p.BasePrice
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if !opts.IncludeWeekends && util.IsWeekend(d) {
			continue
		}
		vol, trend, volumeMult := effectiveParams(sc, d)

		// Daily return: symmetric deviate scaled by volatility plus drift.
		r := st.Signed()*vol + trend
		closePx := prevClose * (1 + r)

		// Open gaps off the previous close, independent of the close draw.
		openPx := prevClose * (1 + st.Signed()*vol*openJitter)

		if closePx < priceFloor {
			closePx = priceFloor
		}
		if openPx < priceFloor {
			openPx = priceFloor
		}

		// Non-negative magnitude extensions keep High/Low valid by construction.
		highPx := math.Max(openPx, closePx) * (1 + math.Abs(st.Signed())*vol)
		lowPx := math.Min(openPx, closePx) * (1 - math.Abs(st.Signed())*vol)
		if lowPx < priceFloor {
			lowPx = priceFloor
		}

		volume := int64(math.Round(float64(p.AvgVolume) * volumeMult * st.Range(0.5, 1.5)))
		if volume < volumeFloor {
			volume = volumeFloor
		}

		closePx = round2(closePx)
		bars = append(bars, models.Bar{
			Symbol: p.Symbol,
			Date:   d,
			Open:   round2(openPx),
			High:   round2(highPx),
			Low:    round2(lowPx),
			Close:  closePx,
			Volume: volume,
		})
		prevClose = closePx
	}

	// Supplying rules makes them a gate: the caller opted into treating
	// violations as fatal rather than advisory.
	if opts.Rules != nil {
		if vs := ValidateSeries(bars, opts.Rules); len(vs) > 0 {
			return nil, fmt.Errorf("%d rule violations, first %q: %w",
				len(vs), vs[0].Rule, models.ErrValidationFailed)
		}
	}
	return bars, nil
}

// GenerateMulti generates independent series for each symbol.
//
// Each symbol gets its own stream seeded with SeedFor(symbol, baseSeed),
// so a symbol's series does not depend on which other symbols were
// requested, and symbols are generated in parallel.
func GenerateMulti(symbols []string, opts models.GenerationOptions) (map[string][]models.Bar, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no symbols: %w", models.ErrInvalidParameter)
	}
	profilesBySym := make(map[string]models.SymbolProfile, len(symbols))
	for _, s := range symbols {
		p, err := LookupProfile(s)
		if err != nil {
			return nil, err
		}
		profilesBySym[s] = p
	}

	var baseSeed int64
	if opts.Seed != nil {
		baseSeed = *opts.Seed
	}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		out  = make(map[string][]models.Bar, len(symbols))
		errs = make([]error, 0, 1)
	)
	for _, s := range symbols {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			symOpts := opts
			seed := SeedFor(sym, baseSeed)
			symOpts.Seed = &seed
			bars, err := Generate(profilesBySym[sym], symOpts)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("generate %s: %w", sym, err))
				return
			}
			out[sym] = bars
		}(s)
	}
	wg.Wait()
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return out, nil
}

// effectiveParams applies the scenario's validity window: outside the
// window the walk falls back to normal-scenario parameters.
func effectiveParams(sc models.Scenario, d time.Time) (vol, trend, volumeMult float64) {
	if (sc.StartDate != nil && d.Before(*sc.StartDate)) ||
		(sc.EndDate != nil && d.After(*sc.EndDate)) {
		def := DefaultScenario()
		return def.Volatility, def.Trend, def.VolumeMultiplier
	}
	return sc.Volatility, sc.Trend, sc.VolumeMultiplier
}
