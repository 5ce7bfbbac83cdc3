package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"MarketSim/internal/domain/models"
	icache "MarketSim/internal/service/cache"
	svcmetrics "MarketSim/internal/service/metrics"
	"MarketSim/internal/service/ratelimit"
	"MarketSim/internal/usecase"
	xhttp "MarketSim/pkg/http"
	applogger "MarketSim/pkg/logger"
)

const (
	rateCapacity  = 20 // burst per client IP
	rateRefillSec = 10 // tokens per second
)

// MarketHandler exposes the market data API over Echo.
type MarketHandler struct {
	log     *applogger.Logger
	md      *usecase.MarketData
	seeder  *usecase.Seeder
	feed    *usecase.LiveFeed
	limiter *ratelimit.Limiter
	cache   icache.BytesCache
	respTTL time.Duration
}

// NewMarketHandler creates the API handler. seeder and feed may be nil
// when their backends are disabled; the routes then return 404.
func NewMarketHandler(log *applogger.Logger, md *usecase.MarketData, seeder *usecase.Seeder, feed *usecase.LiveFeed) *MarketHandler {
	return &MarketHandler{
		log:     log,
		md:      md,
		seeder:  seeder,
		feed:    feed,
		limiter: ratelimit.New(),
		cache:   icache.NewTTLCache(),
		respTTL: 30 * time.Second,
	}
}

// RegisterRoutes registers all API routes.
func (h *MarketHandler) RegisterRoutes(e *echo.Echo) {
	svcmetrics.Register()

	e.GET("/healthz", h.health)

	g := e.Group("/api", h.rateLimit)
	g.GET("/symbols", h.symbols)
	g.GET("/scenarios", h.scenarios)
	g.GET("/ohlcv", h.ohlcv)
	g.POST("/ohlcv/multi", h.multiOHLCV)
	g.GET("/analysis", h.analysis)
	g.GET("/indicators/sma", h.sma)
	g.GET("/indicators/ema", h.ema)
	g.GET("/indicators/rsi", h.rsi)
	g.GET("/indicators/bollinger", h.bollinger)
	g.GET("/indicators/macd", h.macd)
	g.POST("/validate", h.validate)
	if h.seeder != nil {
		g.POST("/seed", h.seed)
		g.GET("/warehouse/ohlcv", h.warehouseBars)
	}
	if h.feed != nil {
		e.GET("/ws/live", h.liveFeed)
	}
}

func (h *MarketHandler) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.limiter.Allow(c.RealIP(), rateCapacity, rateRefillSec) {
			return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limit exceeded")
		}
		return next(c)
	}
}

func (h *MarketHandler) health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *MarketHandler) symbols(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.md.Symbols())
}

func (h *MarketHandler) scenarios(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.md.Scenarios())
}

func (h *MarketHandler) ohlcv(c echo.Context) error {
	defer h.observe("ohlcv", time.Now())

	var req models.OHLCVRequest
	if errs := xhttp.ReadAndValidateRequest(c, &req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	key := "ohlcv:" + c.QueryString()
	if b, ok, _ := h.cache.GetBytes(key); ok {
		return c.JSONBlob(http.StatusOK, b)
	}

	bars, err := h.md.OHLCV(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, "ohlcv", err)
	}
	return h.respondCached(c, key, bars)
}

func (h *MarketHandler) multiOHLCV(c echo.Context) error {
	defer h.observe("ohlcv_multi", time.Now())

	var req models.MultiOHLCVRequest
	if errs := xhttp.ReadAndValidateRequest(c, &req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}
	series, err := h.md.MultiOHLCV(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, "ohlcv_multi", err)
	}
	return xhttp.SuccessResponse(c, series)
}

func (h *MarketHandler) analysis(c echo.Context) error {
	defer h.observe("analysis", time.Now())

	var req models.AnalysisRequest
	if errs := xhttp.ReadAndValidateRequest(c, &req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}
	res, err := h.md.Analysis(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, "analysis", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *MarketHandler) sma(c echo.Context) error {
	return h.indicator(c, "sma", h.md.SMA)
}

func (h *MarketHandler) ema(c echo.Context) error {
	return h.indicator(c, "ema", h.md.EMA)
}

// rsi binds its own request type: the default period is 14, not the 20
// shared by the window-based indicators.
func (h *MarketHandler) rsi(c echo.Context) error {
	defer h.observe("rsi", time.Now())

	var req models.RSIRequest
	if errs := xhttp.ReadAndValidateRequest(c, &req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}
	points, err := h.md.RSI(c.Request().Context(), models.IndicatorRequest{
		Symbol:   req.Symbol,
		From:     req.From,
		To:       req.To,
		Scenario: req.Scenario,
		Seed:     req.Seed,
		Period:   req.Period,
	})
	if err != nil {
		return h.fail(c, "rsi", err)
	}
	return xhttp.SuccessResponse(c, points)
}

// indicator handles the single-line indicators that share a request
// shape.
func (h *MarketHandler) indicator(
	c echo.Context,
	name string,
	compute func(ctx context.Context, req models.IndicatorRequest) ([]models.IndicatorPoint, error),
) error {
	defer h.observe(name, time.Now())

	var req models.IndicatorRequest
	if errs := xhttp.ReadAndValidateRequest(c, &req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}
	points, err := compute(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, name, err)
	}
	return xhttp.SuccessResponse(c, points)
}

func (h *MarketHandler) bollinger(c echo.Context) error {
	defer h.observe("bollinger", time.Now())

	var req models.IndicatorRequest
	if errs := xhttp.ReadAndValidateRequest(c, &req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}
	points, err := h.md.Bollinger(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, "bollinger", err)
	}
	return xhttp.SuccessResponse(c, points)
}

func (h *MarketHandler) macd(c echo.Context) error {
	defer h.observe("macd", time.Now())

	var req models.MACDRequest
	if errs := xhttp.ReadAndValidateRequest(c, &req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}
	points, err := h.md.MACD(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, "macd", err)
	}
	return xhttp.SuccessResponse(c, points)
}

func (h *MarketHandler) validate(c echo.Context) error {
	defer h.observe("validate", time.Now())

	var req models.ValidateRequest
	if errs := xhttp.ReadAndValidateRequest(c, &req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}
	return xhttp.SuccessResponse(c, h.md.Validate(c.Request().Context(), req))
}

func (h *MarketHandler) seed(c echo.Context) error {
	defer h.observe("seed", time.Now())

	var req models.SeedRequest
	if errs := xhttp.ReadAndValidateRequest(c, &req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}
	summary, err := h.seeder.Seed(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, "seed", err)
	}
	return xhttp.SuccessResponse(c, summary)
}

// warehouseBars serves bars previously persisted by seed runs or the
// ingest pipeline, as opposed to generating them on the fly.
func (h *MarketHandler) warehouseBars(c echo.Context) error {
	defer h.observe("warehouse_ohlcv", time.Now())

	var req models.OHLCVRequest
	if errs := xhttp.ReadAndValidateRequest(c, &req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}
	limit := xhttp.ParseIntDefault(c.QueryParam("limit"), 0)

	bars, err := h.seeder.Stored(c.Request().Context(), req.Symbol, req.From, req.To, limit)
	if err != nil {
		return h.fail(c, "warehouse_ohlcv", err)
	}
	return xhttp.SuccessResponse(c, bars)
}

// fail maps engine errors to HTTP statuses and records them.
func (h *MarketHandler) fail(c echo.Context, endpoint string, err error) error {
	svcmetrics.APIErrors.WithLabelValues(endpoint).Inc()
	if h.log != nil {
		h.log.Warn("request failed", applogger.String("endpoint", endpoint), applogger.Error(err))
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError(err.Error()))
	case errors.Is(err, models.ErrInvalidParameter), errors.Is(err, models.ErrInvalidRange):
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	case errors.Is(err, models.ErrValidationFailed):
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_VALIDATION", "", err.Error(), http.StatusUnprocessableEntity))
	default:
		return xhttp.AppErrorResponse(c, xhttp.InternalError("internal error").WithError(err))
	}
}

func (h *MarketHandler) observe(endpoint string, start time.Time) {
	svcmetrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// respondCached writes the response and keeps the serialized body for
// identical follow-up queries.
func (h *MarketHandler) respondCached(c echo.Context, key string, data interface{}) error {
	body, err := json.Marshal(xhttp.APIResponse{
		Status:  http.StatusOK,
		Message: http.StatusText(http.StatusOK),
		Data:    data,
	})
	if err != nil {
		return xhttp.SuccessResponse(c, data)
	}
	_ = h.cache.SetBytes(key, body, h.respTTL)
	return c.JSONBlob(http.StatusOK, body)
}
