package models

import "time"

// IndicatorPoint is one value of a single-line indicator, aligned to the
// date of the underlying price point it describes.
type IndicatorPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// MACDTrend is the qualitative label attached to each MACD point.
type MACDTrend string

const (
	TrendBullish MACDTrend = "bullish"
	TrendBearish MACDTrend = "bearish"
	TrendNeutral MACDTrend = "neutral"
)

// MACDPoint is one point of the MACD indicator.
type MACDPoint struct {
	Date      time.Time `json:"date"`
	MACD      float64   `json:"macd"`
	Signal    float64   `json:"signal"`
	Histogram float64   `json:"histogram"`
	Trend     MACDTrend `json:"trend"`
}

// BollingerPoint is one point of the Bollinger Bands indicator.
type BollingerPoint struct {
	Date   time.Time `json:"date"`
	Upper  float64   `json:"upper"`
	Middle float64   `json:"middle"`
	Lower  float64   `json:"lower"`
}
