package models

import "time"

// Tick is one simulated intraday price update pushed to live feed
// subscribers.
type Tick struct {
	Symbol string    `json:"symbol"`
	Price  float64   `json:"price"`
	Volume int64     `json:"volume"`
	Time   time.Time `json:"time"`
}
