package usecase

import (
	"context"

	"MarketSim/internal/domain/models"
	"MarketSim/internal/services/market"
)

// Validate runs structural and rule-bound checks on caller-supplied
// records. A report with violations is a successful call; the caller
// decides what to do with bad data.
func (s *MarketData) Validate(ctx context.Context, req models.ValidateRequest) models.ValidationReport {
	violations := market.ValidateSeries(req.Records, req.Rules)
	for _, v := range violations {
		s.metrics.RecordViolation(v.Rule)
	}
	return models.ValidationReport{
		Valid:      len(violations) == 0,
		Records:    len(req.Records),
		Violations: violations,
	}
}
