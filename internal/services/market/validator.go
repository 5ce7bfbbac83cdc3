package market

import (
	"fmt"
	"math"

	"MarketSim/internal/domain/models"
)

// ValidateBar checks a single bar against structural and rule-bound
// sanity checks. Every failed check is reported independently; an empty
// result means the bar is valid. Violations are diagnostics, never
// errors: the generator guarantees its own output by construction, so
// this is meant for externally supplied or mutated data.
func ValidateBar(b models.Bar, rules *models.ValidationRules) []models.Violation {
	return validateBarAt(b, rules, -1)
}

func validateBarAt(b models.Bar, rules *models.ValidationRules, idx int) []models.Violation {
	r := models.DefaultValidationRules()
	if rules != nil {
		r = *rules
	}
	var out []models.Violation
	add := func(rule, msg string, value float64) {
		out = append(out, models.Violation{Rule: rule, Message: msg, Value: value, Index: idx})
	}

	body := math.Max(b.Open, b.Close)
	if b.High < body {
		add("high_below_body", fmt.Sprintf("high %.4f below max(open, close) %.4f", b.High, body), b.High)
	}
	floor := math.Min(b.Open, b.Close)
	if b.Low > floor {
		add("low_above_body", fmt.Sprintf("low %.4f above min(open, close) %.4f", b.Low, floor), b.Low)
	}
	if b.High < b.Low {
		add("high_below_low", fmt.Sprintf("high %.4f below low %.4f", b.High, b.Low), b.High)
	}
	for _, p := range [...]struct {
		name string
		v    float64
	}{{"open", b.Open}, {"high", b.High}, {"low", b.Low}, {"close", b.Close}} {
		if p.v <= 0 {
			add("non_positive_price", fmt.Sprintf("%s %.4f is not positive", p.name, p.v), p.v)
		}
	}
	if b.Volume < 0 {
		add("negative_volume", fmt.Sprintf("volume %d is negative", b.Volume), float64(b.Volume))
	}

	for _, p := range [...]struct {
		name string
		v    float64
	}{{"open", b.Open}, {"high", b.High}, {"low", b.Low}, {"close", b.Close}} {
		if p.v < r.MinPrice {
			add("price_below_min", fmt.Sprintf("%s %.4f below min price %.4f", p.name, p.v, r.MinPrice), p.v)
		}
		if p.v > r.MaxPrice {
			add("price_above_max", fmt.Sprintf("%s %.4f above max price %.4f", p.name, p.v, r.MaxPrice), p.v)
		}
	}
	if b.Volume < r.MinVolume {
		add("volume_below_min", fmt.Sprintf("volume %d below min %d", b.Volume, r.MinVolume), float64(b.Volume))
	}
	if b.Volume > r.MaxVolume {
		add("volume_above_max", fmt.Sprintf("volume %d above max %d", b.Volume, r.MaxVolume), float64(b.Volume))
	}
	return out
}

// ValidateSeries runs per-record checks on every bar plus the
// cross-record checks: close-to-close daily change and the gap between
// the previous close and the next open, both bounded by the rules.
func ValidateSeries(bars []models.Bar, rules *models.ValidationRules) []models.Violation {
	r := models.DefaultValidationRules()
	if rules != nil {
		r = *rules
	}
	var out []models.Violation
	for i, b := range bars {
		out = append(out, validateBarAt(b, &r, i)...)
	}
	for i := 1; i < len(bars); i++ {
		prev, cur := bars[i-1], bars[i]
		if prev.Close <= 0 {
			continue
		}
		change := math.Abs(cur.Close-prev.Close) / prev.Close
		if change > r.MaxDailyChange {
			out = append(out, models.Violation{
				Rule:    "daily_change_exceeded",
				Message: fmt.Sprintf("day-over-day close change %.4f exceeds %.4f", change, r.MaxDailyChange),
				Value:   change,
				Index:   i,
			})
		}
		gap := math.Abs(cur.Open-prev.Close) / prev.Close
		if gap > r.MaxGap {
			out = append(out, models.Violation{
				Rule:    "gap_exceeded",
				Message: fmt.Sprintf("open gap %.4f from previous close exceeds %.4f", gap, r.MaxGap),
				Value:   gap,
				Index:   i,
			})
		}
	}
	return out
}
