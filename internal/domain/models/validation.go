package models

// ValidationRules bounds used by the data validator. Defaults are
// generous so only structurally broken data fails.
type ValidationRules struct {
	MinPrice       float64 `json:"minPrice"`
	MaxPrice       float64 `json:"maxPrice"`
	MinVolume      int64   `json:"minVolume"`
	MaxVolume      int64   `json:"maxVolume"`
	MaxDailyChange float64 `json:"maxDailyChange"` // fraction, close-to-close
	MaxGap         float64 `json:"maxGap"`         // fraction, prev close to open
}

// DefaultValidationRules returns the rule set used when callers pass nil.
func DefaultValidationRules() ValidationRules {
	return ValidationRules{
		MinPrice:       0.01,
		MaxPrice:       1_000_000,
		MinVolume:      0,
		MaxVolume:      1_000_000_000_000,
		MaxDailyChange: 0.5,
		MaxGap:         0.5,
	}
}

// Violation describes one failed validation rule. Violations are
// diagnostics, not errors: callers decide whether to reject data.
type Violation struct {
	Rule    string  `json:"rule"`
	Message string  `json:"message"`
	Value   float64 `json:"value"`
	Index   int     `json:"index"` // series position, -1 for single-record checks
}

// ValidationReport is the outcome of validating a series.
type ValidationReport struct {
	Valid      bool        `json:"valid"`
	Records    int         `json:"records"`
	Violations []Violation `json:"violations,omitempty"`
}
