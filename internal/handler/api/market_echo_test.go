package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"MarketSim/internal/usecase"
	"MarketSim/pkg/cache"
)

// noopMetrics satisfies the metrics port without touching the global
// Prometheus registry, which only tolerates one registration per name.
type noopMetrics struct{}

func (noopMetrics) RecordBarsGenerated(string, string, int) {}
func (noopMetrics) RecordError(string)                      {}
func (noopMetrics) RecordLastPrice(string, float64)         {}
func (noopMetrics) RecordLatency(string, float64)           {}
func (noopMetrics) RecordViolation(string)                  {}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	md := usecase.NewMarketData(
		cache.NewMemoryCache(cache.WithMemoryMaxSize(100)),
		nil,
		noopMetrics{},
		nil,
		usecase.MarketDataOptions{MaxRangeDays: 3660, MaxSymbols: 10, CacheTTL: time.Minute},
	)
	h := NewMarketHandler(nil, md, nil, nil)

	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type apiEnvelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestSymbolsEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/api/symbols", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)

	var symbols []map[string]interface{}
	if err := json.Unmarshal(env.Data, &symbols); err != nil {
		t.Fatalf("decode symbols: %v", err)
	}
	if len(symbols) != 10 {
		t.Fatalf("got %d symbols, want 10", len(symbols))
	}
}

func TestScenariosEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/api/scenarios", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)

	var scenarios []map[string]interface{}
	if err := json.Unmarshal(env.Data, &scenarios); err != nil {
		t.Fatalf("decode scenarios: %v", err)
	}
	if len(scenarios) != 6 {
		t.Fatalf("got %d scenarios, want 6", len(scenarios))
	}
}

func TestOHLCVEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/api/ohlcv?symbol=AAPL&from=2024-01-01&to=2024-01-31", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)

	var bars []map[string]interface{}
	if err := json.Unmarshal(env.Data, &bars); err != nil {
		t.Fatalf("decode bars: %v", err)
	}
	if len(bars) != 23 {
		t.Fatalf("got %d bars, want 23 weekdays", len(bars))
	}

	// Identical query is served from the response cache with the same body.
	again := do(e, http.MethodGet, "/api/ohlcv?symbol=AAPL&from=2024-01-01&to=2024-01-31", "")
	if again.Code != http.StatusOK {
		t.Fatalf("cached status %d", again.Code)
	}
	if again.Body.String() != rec.Body.String() {
		t.Fatal("cached response body differs")
	}
}

func TestOHLCVEndpoint_Errors(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/api/ohlcv?symbol=AAPL", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Status != http.StatusBadRequest {
		t.Fatalf("missing dates: envelope status %d, want 400", env.Status)
	}

	rec = do(e, http.MethodGet, "/api/ohlcv?symbol=NOPE&from=2024-01-01&to=2024-01-31", "")
	if env := decodeEnvelope(t, rec); env.Status != http.StatusNotFound {
		t.Fatalf("unknown symbol: envelope status %d, want 404", env.Status)
	}
}

func TestMultiOHLCVEndpoint(t *testing.T) {
	e := newTestServer(t)

	body := `{"symbols":["AAPL","MSFT"],"from":"2024-01-01","to":"2024-01-31"}`
	rec := do(e, http.MethodPost, "/api/ohlcv/multi", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)

	var series map[string][]map[string]interface{}
	if err := json.Unmarshal(env.Data, &series); err != nil {
		t.Fatalf("decode series: %v", err)
	}
	if len(series["AAPL"]) != 23 || len(series["MSFT"]) != 23 {
		t.Fatalf("unexpected series sizes %d/%d", len(series["AAPL"]), len(series["MSFT"]))
	}
}

func TestIndicatorEndpoints(t *testing.T) {
	e := newTestServer(t)

	for _, path := range []string{
		"/api/indicators/sma",
		"/api/indicators/ema",
		"/api/indicators/rsi",
		"/api/indicators/bollinger",
	} {
		rec := do(e, http.MethodGet, path+"?symbol=AAPL&from=2024-01-01&to=2024-06-28&period=14", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status %d: %s", path, rec.Code, rec.Body.String())
		}
		if env := decodeEnvelope(t, rec); env.Status != http.StatusOK {
			t.Fatalf("%s envelope status %d", path, env.Status)
		}
	}

	rec := do(e, http.MethodGet, "/api/indicators/macd?symbol=AAPL&from=2024-01-01&to=2024-06-28", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("macd status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRSIEndpoint_DefaultPeriod(t *testing.T) {
	e := newTestServer(t)

	// 65 weekday bars in the range; RSI over period p yields len-p points,
	// so the conventional 14-day default must produce 51.
	rec := do(e, http.MethodGet, "/api/indicators/rsi?symbol=AAPL&from=2024-01-01&to=2024-03-29", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)

	var points []map[string]interface{}
	if err := json.Unmarshal(env.Data, &points); err != nil {
		t.Fatalf("decode points: %v", err)
	}
	if len(points) != 51 {
		t.Fatalf("got %d points, want 51 (default period 14)", len(points))
	}

	// An explicit period still wins over the default.
	rec = do(e, http.MethodGet, "/api/indicators/rsi?symbol=AAPL&from=2024-01-01&to=2024-03-29&period=20", "")
	env = decodeEnvelope(t, rec)
	if err := json.Unmarshal(env.Data, &points); err != nil {
		t.Fatalf("decode points: %v", err)
	}
	if len(points) != 45 {
		t.Fatalf("got %d points, want 45 (period 20)", len(points))
	}
}

func TestBollingerEndpoint_RejectsZeroMultiplier(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/api/indicators/bollinger?symbol=AAPL&from=2024-01-01&to=2024-03-29&stddev=0", "")
	if env := decodeEnvelope(t, rec); env.Status != http.StatusBadRequest {
		t.Fatalf("stddev=0: envelope status %d, want 400", env.Status)
	}

	// Omitting the multiplier still falls back to 2.
	rec = do(e, http.MethodGet, "/api/indicators/bollinger?symbol=AAPL&from=2024-01-01&to=2024-03-29", "")
	if env := decodeEnvelope(t, rec); env.Status != http.StatusOK {
		t.Fatalf("default stddev: envelope status %d", env.Status)
	}
}

func TestValidateEndpoint(t *testing.T) {
	e := newTestServer(t)

	body := `{"records":[{"symbol":"T","date":"2024-01-02T00:00:00Z","open":100,"high":90,"low":99,"close":100,"volume":10}]}`
	rec := do(e, http.MethodPost, "/api/validate", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)

	var report struct {
		Valid      bool `json:"valid"`
		Records    int  `json:"records"`
		Violations []struct {
			Rule string `json:"rule"`
		} `json:"violations"`
	}
	if err := json.Unmarshal(env.Data, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Valid || report.Records != 1 || len(report.Violations) == 0 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestSeedRouteAbsentWithoutSeeder(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/seed", `{"from":"2024-01-01","to":"2024-01-31"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}
