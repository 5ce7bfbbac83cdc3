package models

// AnalysisResult summarizes a generated series. Derived on demand,
// never persisted. Percentage fields are already scaled (2.35 means
// 2.35%) and rounded to two decimal places for display stability.
type AnalysisResult struct {
	Symbol           string  `json:"symbol"`
	Records          int     `json:"records"`
	AvgVolume        float64 `json:"avgVolume"`
	AvgChangePercent float64 `json:"avgChangePercent"`
	MaxGain          float64 `json:"maxGain"`
	MaxLoss          float64 `json:"maxLoss"`
	Volatility       float64 `json:"volatility"` // population std dev of daily returns, in %
}
