package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"MarketSim/internal/domain/models"
	"MarketSim/internal/domain/repository"
	"MarketSim/pkg/cache"
)

func newTestMarketData(pub *fakePublisher) (*MarketData, *fakeMetrics) {
	m := newFakeMetrics()
	var p repository.BarPublisher
	if pub != nil {
		p = pub
	}
	svc := NewMarketData(
		cache.NewMemoryCache(cache.WithMemoryMaxSize(100)),
		p,
		m,
		nil,
		MarketDataOptions{MaxRangeDays: 400, MaxSymbols: 5, CacheTTL: time.Minute},
	)
	return svc, m
}

func TestOHLCV_DeterministicAndCached(t *testing.T) {
	svc, _ := newTestMarketData(nil)
	req := models.OHLCVRequest{Symbol: "AAPL", From: "2024-01-01", To: "2024-03-29", Scenario: "normal"}

	a, err := svc.OHLCV(context.Background(), req)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if len(a) == 0 {
		t.Fatal("empty series")
	}

	b, err := svc.OHLCV(context.Background(), req)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("cached series differs from generated one")
	}
}

func TestOHLCV_ErrorMapping(t *testing.T) {
	svc, _ := newTestMarketData(nil)

	cases := []struct {
		name string
		req  models.OHLCVRequest
		want error
	}{
		{"unknown symbol", models.OHLCVRequest{Symbol: "NOPE", From: "2024-01-01", To: "2024-01-31"}, models.ErrNotFound},
		{"unknown scenario", models.OHLCVRequest{Symbol: "AAPL", From: "2024-01-01", To: "2024-01-31", Scenario: "sideways"}, models.ErrNotFound},
		{"inverted range", models.OHLCVRequest{Symbol: "AAPL", From: "2024-02-01", To: "2024-01-01"}, models.ErrInvalidRange},
		{"range too large", models.OHLCVRequest{Symbol: "AAPL", From: "2020-01-01", To: "2024-01-01"}, models.ErrInvalidRange},
		{"bad date", models.OHLCVRequest{Symbol: "AAPL", From: "01/02/2024", To: "2024-01-31"}, models.ErrInvalidParameter},
	}
	for _, tc := range cases {
		if _, err := svc.OHLCV(context.Background(), tc.req); !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestOHLCV_PublishesGeneratedBars(t *testing.T) {
	pub := &fakePublisher{}
	svc, m := newTestMarketData(pub)

	bars, err := svc.OHLCV(context.Background(), models.OHLCVRequest{
		Symbol: "MSFT", From: "2024-01-01", To: "2024-01-31",
	})
	if err != nil {
		t.Fatalf("ohlcv: %v", err)
	}
	if len(pub.bars) != len(bars) {
		t.Fatalf("published %d bars, generated %d", len(pub.bars), len(bars))
	}
	if m.bars != len(bars) {
		t.Fatalf("metrics recorded %d bars, want %d", m.bars, len(bars))
	}

	// Cache hit must not publish again.
	if _, err := svc.OHLCV(context.Background(), models.OHLCVRequest{
		Symbol: "MSFT", From: "2024-01-01", To: "2024-01-31",
	}); err != nil {
		t.Fatalf("cached ohlcv: %v", err)
	}
	if len(pub.bars) != len(bars) {
		t.Fatal("cache hit republished bars")
	}
}

func TestMultiOHLCV_SymbolLimit(t *testing.T) {
	svc, _ := newTestMarketData(nil)

	req := models.MultiOHLCVRequest{
		Symbols: []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META"},
		From:    "2024-01-01",
		To:      "2024-01-31",
	}
	if _, err := svc.MultiOHLCV(context.Background(), req); !errors.Is(err, models.ErrInvalidParameter) {
		t.Fatalf("got %v, want %v", err, models.ErrInvalidParameter)
	}

	req.Symbols = req.Symbols[:3]
	series, err := svc.MultiOHLCV(context.Background(), req)
	if err != nil {
		t.Fatalf("multi: %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("got %d series, want 3", len(series))
	}
}

func TestAnalysisAndIndicators(t *testing.T) {
	svc, _ := newTestMarketData(nil)
	ctx := context.Background()

	res, err := svc.Analysis(ctx, models.AnalysisRequest{
		Symbol: "AAPL", From: "2024-01-01", To: "2024-06-28", Scenario: "bull",
	})
	if err != nil {
		t.Fatalf("analysis: %v", err)
	}
	if res.Symbol != "AAPL" || res.Records == 0 {
		t.Fatalf("unexpected result %+v", res)
	}

	ireq := models.IndicatorRequest{
		Symbol: "AAPL", From: "2024-01-01", To: "2024-06-28", Period: 20,
	}
	sma, err := svc.SMA(ctx, ireq)
	if err != nil {
		t.Fatalf("sma: %v", err)
	}
	if len(sma) != res.Records-20+1 {
		t.Fatalf("sma points %d, want %d", len(sma), res.Records-20+1)
	}

	if _, err := svc.RSI(ctx, models.IndicatorRequest{
		Symbol: "AAPL", From: "2024-01-01", To: "2024-01-05", Period: 200,
	}); !errors.Is(err, models.ErrInvalidParameter) {
		t.Fatalf("rsi period error: got %v", err)
	}

	macd, err := svc.MACD(ctx, models.MACDRequest{
		Symbol: "AAPL", From: "2024-01-01", To: "2024-06-28", Fast: 12, Slow: 26, Signal: 9,
	})
	if err != nil {
		t.Fatalf("macd: %v", err)
	}
	if len(macd) == 0 {
		t.Fatal("empty macd")
	}
}

func TestValidate_RecordsViolationMetrics(t *testing.T) {
	svc, m := newTestMarketData(nil)

	report := svc.Validate(context.Background(), models.ValidateRequest{
		Records: []models.Bar{
			{Symbol: "T", Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Open: 100, High: 90, Low: 99, Close: 100, Volume: 10},
		},
	})
	if report.Valid {
		t.Fatal("broken bar reported valid")
	}
	if report.Records != 1 || len(report.Violations) == 0 {
		t.Fatalf("unexpected report %+v", report)
	}
	if m.violations["high_below_body"] == 0 {
		t.Fatal("violation not recorded in metrics")
	}

	clean := svc.Validate(context.Background(), models.ValidateRequest{
		Records: []models.Bar{
			{Symbol: "T", Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Open: 100, High: 101, Low: 99, Close: 100, Volume: 10},
		},
	})
	if !clean.Valid {
		t.Fatalf("clean bar reported invalid: %+v", clean.Violations)
	}
}
