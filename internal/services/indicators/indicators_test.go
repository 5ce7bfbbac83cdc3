package indicators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketSim/internal/domain/models"
)

func series(closes ...float64) []models.Bar {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, len(closes))
	for i, c := range closes {
		bars[i] = models.Bar{Symbol: "TEST", Date: day.AddDate(0, 0, i), Close: c}
	}
	return bars
}

func linearSeries(n int, start, step float64) []models.Bar {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + float64(i)*step
	}
	return series(closes...)
}

func TestSMA_KnownValues(t *testing.T) {
	bars := series(1, 2, 3, 4, 5)

	out, err := SMA(bars, 3)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.InDelta(t, 2.0, out[0].Value, 1e-9)
	assert.InDelta(t, 3.0, out[1].Value, 1e-9)
	assert.InDelta(t, 4.0, out[2].Value, 1e-9)

	// Each point carries the date of the last close in its window.
	assert.Equal(t, bars[2].Date, out[0].Date)
	assert.Equal(t, bars[4].Date, out[2].Date)
}

func TestSMA_OutputLength(t *testing.T) {
	bars := linearSeries(100, 50, 0.25)

	out, err := SMA(bars, 20)
	require.NoError(t, err)
	assert.Len(t, out, 81)

	single, err := SMA(bars, 100)
	require.NoError(t, err)
	assert.Len(t, single, 1)
}

func TestSMA_InvalidPeriod(t *testing.T) {
	bars := series(1, 2, 3)

	_, err := SMA(bars, 0)
	assert.ErrorIs(t, err, models.ErrInvalidParameter)

	_, err = SMA(bars, 4)
	assert.ErrorIs(t, err, models.ErrInvalidParameter)
}

func TestEMA_SeededWithSMA(t *testing.T) {
	// period 3 over 1..5: seed (1+2+3)/3 = 2, k = 0.5,
	// then 4*0.5 + 2*0.5 = 3, then 5*0.5 + 3*0.5 = 4.
	out, err := EMA(series(1, 2, 3, 4, 5), 3)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.InDelta(t, 2.0, out[0].Value, 1e-9)
	assert.InDelta(t, 3.0, out[1].Value, 1e-9)
	assert.InDelta(t, 4.0, out[2].Value, 1e-9)
}

func TestEMA_ConstantSeriesStaysFlat(t *testing.T) {
	out, err := EMA(linearSeries(50, 42, 0), 10)
	require.NoError(t, err)
	require.Len(t, out, 41)
	for _, p := range out {
		assert.InDelta(t, 42.0, p.Value, 1e-9)
	}
}

func TestEMA_TracksTighterThanSMA(t *testing.T) {
	closes := make([]float64, 60)
	px := 100.0
	for i := range closes {
		closes[i] = px
		px *= 1.02
	}
	bars := series(closes...)

	ema, err := EMA(bars, 10)
	require.NoError(t, err)
	sma, err := SMA(bars, 10)
	require.NoError(t, err)
	require.Len(t, ema, len(sma))

	// Recent closes weigh more in the EMA, so on an accelerating series
	// it sits above the equally weighted mean.
	last := len(ema) - 1
	assert.Greater(t, ema[last].Value, sma[last].Value)
}

func TestRSI_OutputLength(t *testing.T) {
	bars := linearSeries(100, 80, 0.5)

	out, err := RSI(bars, 14)
	require.NoError(t, err)
	assert.Len(t, out, 86)
	assert.Equal(t, bars[14].Date, out[0].Date)
}

func TestRSI_Extremes(t *testing.T) {
	up, err := RSI(linearSeries(30, 10, 1), 14)
	require.NoError(t, err)
	for _, p := range up {
		assert.InDelta(t, 100.0, p.Value, 1e-9)
	}

	down, err := RSI(linearSeries(30, 100, -1), 14)
	require.NoError(t, err)
	for _, p := range down {
		assert.InDelta(t, 0.0, p.Value, 1e-9)
	}
}

func TestRSI_FlatSeriesIsNeutral(t *testing.T) {
	out, err := RSI(linearSeries(30, 55, 0), 14)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	for _, p := range out {
		assert.InDelta(t, 50.0, p.Value, 1e-9)
	}
}

func TestRSI_BoundedOnMixedSeries(t *testing.T) {
	closes := make([]float64, 0, 60)
	px := 100.0
	for i := 0; i < 60; i++ {
		if i%3 == 0 {
			px *= 0.985
		} else {
			px *= 1.012
		}
		closes = append(closes, px)
	}
	out, err := RSI(series(closes...), 14)
	require.NoError(t, err)
	for _, p := range out {
		assert.GreaterOrEqual(t, p.Value, 0.0)
		assert.LessOrEqual(t, p.Value, 100.0)
	}
}

func TestRSI_NeedsOneMoreCloseThanPeriod(t *testing.T) {
	_, err := RSI(series(1, 2, 3), 3)
	assert.ErrorIs(t, err, models.ErrInvalidParameter)

	out, err := RSI(series(1, 2, 3, 4), 3)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestMACD_CompoundingUptrendIsBullish(t *testing.T) {
	closes := make([]float64, 80)
	px := 100.0
	for i := range closes {
		closes[i] = px
		px *= 1.01
	}

	out, err := MACD(series(closes...), 12, 26, 9)
	require.NoError(t, err)
	require.Len(t, out, 80-26-9+2)

	// Compounding growth keeps the fast EMA above the slow one and the
	// MACD line rising, so the histogram stays positive throughout.
	for _, p := range out {
		assert.InDelta(t, p.MACD-p.Signal, p.Histogram, 1e-9)
		assert.Greater(t, p.MACD, 0.0)
		assert.Equal(t, models.TrendBullish, p.Trend)
	}
}

func TestMACD_FlatSeriesIsNeutral(t *testing.T) {
	out, err := MACD(linearSeries(60, 250, 0), 12, 26, 9)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	for _, p := range out {
		assert.InDelta(t, 0.0, p.MACD, 1e-9)
		assert.InDelta(t, 0.0, p.Histogram, 1e-9)
		assert.Equal(t, models.TrendNeutral, p.Trend)
	}
}

func TestMACD_ParameterValidation(t *testing.T) {
	bars := linearSeries(100, 10, 1)

	_, err := MACD(bars, 26, 12, 9)
	assert.ErrorIs(t, err, models.ErrInvalidParameter)

	_, err = MACD(bars, 0, 26, 9)
	assert.ErrorIs(t, err, models.ErrInvalidParameter)

	_, err = MACD(linearSeries(30, 10, 1), 12, 26, 9)
	assert.ErrorIs(t, err, models.ErrInvalidParameter)
}

func TestBollinger_ConstantSeriesCollapses(t *testing.T) {
	out, err := Bollinger(linearSeries(40, 77, 0), 20, 2)
	require.NoError(t, err)
	require.Len(t, out, 21)
	for _, p := range out {
		assert.InDelta(t, 77.0, p.Middle, 1e-9)
		assert.InDelta(t, 77.0, p.Upper, 1e-9)
		assert.InDelta(t, 77.0, p.Lower, 1e-9)
	}
}

func TestBollinger_BandsStraddleMiddle(t *testing.T) {
	closes := make([]float64, 0, 50)
	for i := 0; i < 50; i++ {
		closes = append(closes, 100+float64(i%7))
	}
	bars := series(closes...)

	out, err := Bollinger(bars, 20, 2)
	require.NoError(t, err)

	sma, err := SMA(bars, 20)
	require.NoError(t, err)
	require.Len(t, out, len(sma))

	for i, p := range out {
		assert.InDelta(t, sma[i].Value, p.Middle, 1e-9)
		assert.Greater(t, p.Upper, p.Middle)
		assert.Less(t, p.Lower, p.Middle)
		assert.InDelta(t, p.Upper-p.Middle, p.Middle-p.Lower, 1e-9)
	}
}

func TestBollinger_InvalidMultiplier(t *testing.T) {
	_, err := Bollinger(linearSeries(40, 100, 1), 20, 0)
	assert.ErrorIs(t, err, models.ErrInvalidParameter)
}
