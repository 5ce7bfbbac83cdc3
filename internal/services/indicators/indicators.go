// Package indicators computes technical indicators over ordered daily
// price series. All functions are pure and deterministic: they take the
// series and parameters as arguments, share no state, and are safe to
// call concurrently over disjoint series.
//
// Output series omit the warm-up period rather than null-padding it:
// period-based indicators yield len(bars)-period+1 points; RSI consumes
// day-over-day deltas and yields len(bars)-period points.
package indicators

import (
	"fmt"
	"math"

	"MarketSim/internal/domain/models"
)

func checkPeriod(name string, period, n int) error {
	if period < 1 {
		return fmt.Errorf("%s period must be >= 1, got %d: %w", name, period, models.ErrInvalidParameter)
	}
	if period > n {
		return fmt.Errorf("%s period %d exceeds series length %d: %w", name, period, n, models.ErrInvalidParameter)
	}
	return nil
}

// SMA computes the simple moving average: the arithmetic mean of the
// trailing period closes, aligned to the date of the last close in the
// window.
func SMA(bars []models.Bar, period int) ([]models.IndicatorPoint, error) {
	if err := checkPeriod("sma", period, len(bars)); err != nil {
		return nil, err
	}
	out := make([]models.IndicatorPoint, 0, len(bars)-period+1)
	sum := 0.0
	for i, b := range bars {
		sum += b.Close
		if i < period-1 {
			continue
		}
		if i >= period {
			sum -= bars[i-period].Close
		}
		out = append(out, models.IndicatorPoint{Date: b.Date, Value: sum / float64(period)})
	}
	return out, nil
}

// EMA computes the exponential moving average, seeded with the SMA of
// the first period closes, then ema[i] = close[i]*k + ema[i-1]*(1-k)
// with k = 2/(period+1).
func EMA(bars []models.Bar, period int) ([]models.IndicatorPoint, error) {
	if err := checkPeriod("ema", period, len(bars)); err != nil {
		return nil, err
	}
	values, err := emaValues(models.Closes(bars), period)
	if err != nil {
		return nil, err
	}
	out := make([]models.IndicatorPoint, len(values))
	for i, v := range values {
		out[i] = models.IndicatorPoint{Date: bars[period-1+i].Date, Value: v}
	}
	return out, nil
}

// emaValues is the EMA recurrence over raw values; the first output is
// the SMA of the first period values.
func emaValues(closes []float64, period int) ([]float64, error) {
	if period < 1 || period > len(closes) {
		return nil, fmt.Errorf("ema period %d out of range for %d values: %w", period, len(closes), models.ErrInvalidParameter)
	}
	out := make([]float64, 0, len(closes)-period+1)
	seed := 0.0
	for _, v := range closes[:period] {
		seed += v
	}
	ema := seed / float64(period)
	out = append(out, ema)
	k := 2.0 / float64(period+1)
	for _, v := range closes[period:] {
		ema = v*k + ema*(1-k)
		out = append(out, ema)
	}
	return out, nil
}

// RSI computes the Relative Strength Index over trailing period
// day-over-day changes. The first averages are simple means; subsequent
// ones use Wilder smoothing: avg = (avg*(period-1) + change)/period.
//
// Flat-market convention: when both average gain and average loss are
// zero the RSI is defined as 50; when only the average loss is zero it
// is 100. This matches common practice, it is a convention rather than
// a law.
func RSI(bars []models.Bar, period int) ([]models.IndicatorPoint, error) {
	if period < 1 {
		return nil, fmt.Errorf("rsi period must be >= 1, got %d: %w", period, models.ErrInvalidParameter)
	}
	if period >= len(bars) {
		return nil, fmt.Errorf("rsi period %d needs %d closes, series has %d: %w", period, period+1, len(bars), models.ErrInvalidParameter)
	}

	out := make([]models.IndicatorPoint, 0, len(bars)-period)
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := bars[i].Close - bars[i-1].Close
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out = append(out, models.IndicatorPoint{Date: bars[period].Date, Value: rsiValue(avgGain, avgLoss)})

	for i := period + 1; i < len(bars); i++ {
		change := bars[i].Close - bars[i-1].Close
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out = append(out, models.IndicatorPoint{Date: bars[i].Date, Value: rsiValue(avgGain, avgLoss)})
	}
	return out, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// MACD computes the moving average convergence divergence:
// macd = EMA(fast) - EMA(slow), signal = EMA(signalPeriod) of the macd
// line, histogram = macd - signal. Points start once the signal line is
// computable and carry a qualitative trend label from the histogram sign.
func MACD(bars []models.Bar, fast, slow, signalPeriod int) ([]models.MACDPoint, error) {
	if fast < 1 || slow < 1 || signalPeriod < 1 {
		return nil, fmt.Errorf("macd periods must be >= 1: %w", models.ErrInvalidParameter)
	}
	if fast >= slow {
		return nil, fmt.Errorf("macd fast period %d must be below slow %d: %w", fast, slow, models.ErrInvalidParameter)
	}
	if slow+signalPeriod-1 > len(bars) {
		return nil, fmt.Errorf("macd needs %d closes, series has %d: %w", slow+signalPeriod-1, len(bars), models.ErrInvalidParameter)
	}

	closes := models.Closes(bars)
	fastE, err := emaValues(closes, fast)
	if err != nil {
		return nil, err
	}
	slowE, err := emaValues(closes, slow)
	if err != nil {
		return nil, err
	}

	// macdLine[i] describes bar slow-1+i.
	macdLine := make([]float64, len(slowE))
	for i := range slowE {
		macdLine[i] = fastE[i+(slow-fast)] - slowE[i]
	}
	signalLine, err := emaValues(macdLine, signalPeriod)
	if err != nil {
		return nil, err
	}

	offset := slow - 1 + signalPeriod - 1
	out := make([]models.MACDPoint, len(signalLine))
	for i, sig := range signalLine {
		m := macdLine[i+signalPeriod-1]
		hist := m - sig
		trend := models.TrendNeutral
		switch {
		case hist > 0:
			trend = models.TrendBullish
		case hist < 0:
			trend = models.TrendBearish
		}
		out[i] = models.MACDPoint{
			Date:      bars[offset+i].Date,
			MACD:      m,
			Signal:    sig,
			Histogram: hist,
			Trend:     trend,
		}
	}
	return out, nil
}

// Bollinger computes Bollinger Bands: middle = SMA(period), upper/lower
// = middle +/- mult * population standard deviation of the trailing
// period closes.
func Bollinger(bars []models.Bar, period int, mult float64) ([]models.BollingerPoint, error) {
	if err := checkPeriod("bollinger", period, len(bars)); err != nil {
		return nil, err
	}
	if mult <= 0 {
		return nil, fmt.Errorf("bollinger stddev multiplier must be > 0, got %v: %w", mult, models.ErrInvalidParameter)
	}
	out := make([]models.BollingerPoint, 0, len(bars)-period+1)
	for i := period - 1; i < len(bars); i++ {
		window := bars[i-period+1 : i+1]
		sum := 0.0
		for _, b := range window {
			sum += b.Close
		}
		mean := sum / float64(period)
		variance := 0.0
		for _, b := range window {
			d := b.Close - mean
			variance += d * d
		}
		sd := math.Sqrt(variance / float64(period))
		out = append(out, models.BollingerPoint{
			Date:   bars[i].Date,
			Upper:  mean + mult*sd,
			Middle: mean,
			Lower:  mean - mult*sd,
		})
	}
	return out, nil
}
