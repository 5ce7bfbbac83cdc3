package models

import "time"

// Bar is one trading day of OHLCV data for a symbol.
//
// A bar is immutable once produced. For any bar considered valid:
// High >= max(Open, Close), Low <= min(Open, Close), High >= Low,
// all prices > 0 and Volume >= 0.
type Bar struct {
	Symbol   string    `json:"symbol"`
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   int64     `json:"volume"`
	AdjClose float64   `json:"adjClose,omitempty"`
}

// Closes extracts the closing prices of a series in order.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}
