package market

import (
	"fmt"
	"math"

	"MarketSim/internal/domain/models"
)

// Analyze summarizes a series using consecutive close-to-close returns.
// Percentage fields are already scaled (2.35 means 2.35%) and rounded
// to two decimals. Volatility is the population standard deviation of
// daily returns, reported as the raw sample statistic (no annualization).
func Analyze(bars []models.Bar) (models.AnalysisResult, error) {
	if len(bars) < 2 {
		return models.AnalysisResult{}, fmt.Errorf("need at least 2 records, got %d: %w", len(bars), models.ErrInvalidRange)
	}

	returns := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		prev := bars[i-1].Close
		if prev == 0 {
			continue
		}
		returns = append(returns, (bars[i].Close-prev)/prev*100)
	}
	if len(returns) == 0 {
		return models.AnalysisResult{}, fmt.Errorf("no computable returns: %w", models.ErrInvalidRange)
	}

	sum, maxGain, maxLoss := 0.0, returns[0], returns[0]
	for _, r := range returns {
		sum += r
		if r > maxGain {
			maxGain = r
		}
		if r < maxLoss {
			maxLoss = r
		}
	}
	mean := sum / float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns))

	var volSum int64
	for _, b := range bars {
		volSum += b.Volume
	}

	return models.AnalysisResult{
		Symbol:           bars[0].Symbol,
		Records:          len(bars),
		AvgVolume:        round2(float64(volSum) / float64(len(bars))),
		AvgChangePercent: round2(mean),
		MaxGain:          round2(maxGain),
		MaxLoss:          round2(maxLoss),
		Volatility:       round2(math.Sqrt(variance)),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
