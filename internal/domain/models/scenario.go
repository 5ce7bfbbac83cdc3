package models

import "time"

// Scenario is a named bundle of generation parameters simulating a
// market regime. Volatility must be > 0 and VolumeMultiplier >= 0; if a
// validity window is present, StartDate <= EndDate.
type Scenario struct {
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Volatility       float64    `json:"volatility"` // absolute daily volatility
	Trend            float64    `json:"trend"`      // signed daily drift fraction
	VolumeMultiplier float64    `json:"volumeMultiplier"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
}

// GenerationOptions controls a price-path generation call.
// The zero value is not usable: From and To are required, From <= To.
type GenerationOptions struct {
	From            time.Time
	To              time.Time
	Scenario        *Scenario // nil means the builtin "normal" scenario
	Rules           *ValidationRules // non-nil turns violations into a fatal error
	IncludeWeekends bool
	Seed            *int64 // nil derives a stable seed from the symbol
}
