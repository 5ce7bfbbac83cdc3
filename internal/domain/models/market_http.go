package models

// Requests for market data HTTP endpoints. Defined in domain for consistency and reuse.

type OHLCVRequest struct {
	Symbol          string `query:"symbol" json:"symbol" validate:"required"`
	From            string `query:"from" json:"from" validate:"required,datetime=2006-01-02"`
	To              string `query:"to" json:"to" validate:"required,datetime=2006-01-02"`
	Scenario        string `query:"scenario" json:"scenario" default:"normal"`
	Seed            *int64 `query:"seed" json:"seed"`
	IncludeWeekends bool   `query:"include_weekends" json:"includeWeekends"`
}

type MultiOHLCVRequest struct {
	Symbols         []string `json:"symbols" validate:"required,min=1,max=50,dive,required"`
	From            string   `json:"from" validate:"required,datetime=2006-01-02"`
	To              string   `json:"to" validate:"required,datetime=2006-01-02"`
	Scenario        string   `json:"scenario" default:"normal"`
	Seed            *int64   `json:"seed"`
	IncludeWeekends bool     `json:"includeWeekends"`
}

type AnalysisRequest struct {
	Symbol   string `query:"symbol" json:"symbol" validate:"required"`
	From     string `query:"from" json:"from" validate:"required,datetime=2006-01-02"`
	To       string `query:"to" json:"to" validate:"required,datetime=2006-01-02"`
	Scenario string `query:"scenario" json:"scenario" default:"normal"`
	Seed     *int64 `query:"seed" json:"seed"`
}

type IndicatorRequest struct {
	Symbol   string   `query:"symbol" json:"symbol" validate:"required"`
	From     string   `query:"from" json:"from" validate:"required,datetime=2006-01-02"`
	To       string   `query:"to" json:"to" validate:"required,datetime=2006-01-02"`
	Scenario string   `query:"scenario" json:"scenario" default:"normal"`
	Seed     *int64   `query:"seed" json:"seed"`
	Period   int      `query:"period" json:"period" default:"20" validate:"gte=1,lte=500"`
	StdDev   *float64 `query:"stddev" json:"stddev" default:"2" validate:"omitempty,gt=0"`
}

// RSIRequest is IndicatorRequest with RSI's conventional 14-day default
// period instead of the 20 shared by the window-based indicators.
type RSIRequest struct {
	Symbol   string `query:"symbol" json:"symbol" validate:"required"`
	From     string `query:"from" json:"from" validate:"required,datetime=2006-01-02"`
	To       string `query:"to" json:"to" validate:"required,datetime=2006-01-02"`
	Scenario string `query:"scenario" json:"scenario" default:"normal"`
	Seed     *int64 `query:"seed" json:"seed"`
	Period   int    `query:"period" json:"period" default:"14" validate:"gte=1,lte=500"`
}

type MACDRequest struct {
	Symbol   string `query:"symbol" json:"symbol" validate:"required"`
	From     string `query:"from" json:"from" validate:"required,datetime=2006-01-02"`
	To       string `query:"to" json:"to" validate:"required,datetime=2006-01-02"`
	Scenario string `query:"scenario" json:"scenario" default:"normal"`
	Seed     *int64 `query:"seed" json:"seed"`
	Fast     int    `query:"fast" json:"fast" default:"12" validate:"gte=1,lte=200"`
	Slow     int    `query:"slow" json:"slow" default:"26" validate:"gte=2,lte=500"`
	Signal   int    `query:"signal" json:"signal" default:"9" validate:"gte=1,lte=200"`
}

type ValidateRequest struct {
	Records []Bar            `json:"records" validate:"required,min=1,max=10000"`
	Rules   *ValidationRules `json:"rules"`
}

type SeedRequest struct {
	Symbols  []string `json:"symbols" validate:"omitempty,max=50,dive,required"`
	From     string   `json:"from" validate:"required,datetime=2006-01-02"`
	To       string   `json:"to" validate:"required,datetime=2006-01-02"`
	Scenario string   `json:"scenario" default:"normal"`
	Seed     *int64   `json:"seed"`
}
