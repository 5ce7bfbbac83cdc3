package models

// SymbolProfile holds per-instrument generation parameters.
// Profiles are immutable reference data, looked up by symbol.
type SymbolProfile struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	BasePrice  float64 `json:"basePrice"`  // > 0
	Volatility float64 `json:"volatility"` // fraction of price per day, > 0
	AvgVolume  int64   `json:"avgVolume"`  // > 0
	Sector     string  `json:"sector"`
	Exchange   string  `json:"exchange"`
}
