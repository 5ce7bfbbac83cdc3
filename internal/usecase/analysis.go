package usecase

import (
	"context"
	"time"

	"MarketSim/internal/domain/models"
	"MarketSim/internal/services/indicators"
	"MarketSim/internal/services/market"
)

// Analysis generates the requested series and summarizes it.
func (s *MarketData) Analysis(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error) {
	bars, err := s.OHLCV(ctx, models.OHLCVRequest{
		Symbol:   req.Symbol,
		From:     req.From,
		To:       req.To,
		Scenario: req.Scenario,
		Seed:     req.Seed,
	})
	if err != nil {
		return models.AnalysisResult{}, err
	}

	start := time.Now()
	res, err := market.Analyze(bars)
	if err != nil {
		s.metrics.RecordError("analyze")
		return models.AnalysisResult{}, err
	}
	s.metrics.RecordLatency("analyze", time.Since(start).Seconds())
	return res, nil
}

// indicatorSeries resolves the request's series once for any indicator.
func (s *MarketData) indicatorSeries(ctx context.Context, symbol, from, to, scenario string, seed *int64) ([]models.Bar, error) {
	return s.OHLCV(ctx, models.OHLCVRequest{
		Symbol:   symbol,
		From:     from,
		To:       to,
		Scenario: scenario,
		Seed:     seed,
	})
}

// SMA computes the simple moving average over the requested series.
func (s *MarketData) SMA(ctx context.Context, req models.IndicatorRequest) ([]models.IndicatorPoint, error) {
	bars, err := s.indicatorSeries(ctx, req.Symbol, req.From, req.To, req.Scenario, req.Seed)
	if err != nil {
		return nil, err
	}
	return indicators.SMA(bars, req.Period)
}

// EMA computes the exponential moving average over the requested series.
func (s *MarketData) EMA(ctx context.Context, req models.IndicatorRequest) ([]models.IndicatorPoint, error) {
	bars, err := s.indicatorSeries(ctx, req.Symbol, req.From, req.To, req.Scenario, req.Seed)
	if err != nil {
		return nil, err
	}
	return indicators.EMA(bars, req.Period)
}

// RSI computes the relative strength index over the requested series.
func (s *MarketData) RSI(ctx context.Context, req models.IndicatorRequest) ([]models.IndicatorPoint, error) {
	bars, err := s.indicatorSeries(ctx, req.Symbol, req.From, req.To, req.Scenario, req.Seed)
	if err != nil {
		return nil, err
	}
	return indicators.RSI(bars, req.Period)
}

// Bollinger computes Bollinger Bands over the requested series.
func (s *MarketData) Bollinger(ctx context.Context, req models.IndicatorRequest) ([]models.BollingerPoint, error) {
	bars, err := s.indicatorSeries(ctx, req.Symbol, req.From, req.To, req.Scenario, req.Seed)
	if err != nil {
		return nil, err
	}
	mult := 2.0
	if req.StdDev != nil {
		mult = *req.StdDev
	}
	return indicators.Bollinger(bars, req.Period, mult)
}

// MACD computes the MACD indicator over the requested series.
func (s *MarketData) MACD(ctx context.Context, req models.MACDRequest) ([]models.MACDPoint, error) {
	bars, err := s.indicatorSeries(ctx, req.Symbol, req.From, req.To, req.Scenario, req.Seed)
	if err != nil {
		return nil, err
	}
	return indicators.MACD(bars, req.Fast, req.Slow, req.Signal)
}
