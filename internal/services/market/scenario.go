package market

import (
	"fmt"
	"sort"
	"time"

	"MarketSim/internal/domain/models"
)

// Builtin scenarios. The catalog is read-only after init; ad-hoc
// scenarios come from NewCustomScenario.
var scenarios = map[string]models.Scenario{
	"normal": {
		Name:             "normal",
		Description:      "typical market conditions",
		Volatility:       0.02,
		Trend:            0,
		VolumeMultiplier: 1.0,
	},
	"bull": {
		Name:             "bull",
		Description:      "sustained uptrend with moderate volatility",
		Volatility:       0.018,
		Trend:            0.003,
		VolumeMultiplier: 1.2,
	},
	"bear": {
		Name:             "bear",
		Description:      "sustained downtrend with elevated volume",
		Volatility:       0.022,
		Trend:            -0.003,
		VolumeMultiplier: 1.3,
	},
	"crash": {
		Name:             "crash",
		Description:      "sharp selloff with panic volume",
		Volatility:       0.06,
		Trend:            -0.02,
		VolumeMultiplier: 2.5,
	},
	"earnings": {
		Name:             "earnings",
		Description:      "earnings season: larger swings, heavier volume",
		Volatility:       0.035,
		Trend:            0.001,
		VolumeMultiplier: 1.8,
	},
	"quiet": {
		Name:             "quiet",
		Description:      "low-volatility drift, thin volume",
		Volatility:       0.008,
		Trend:            0,
		VolumeMultiplier: 0.7,
	},
}

// DefaultScenario returns the "normal" scenario.
func DefaultScenario() models.Scenario { return scenarios["normal"] }

// GetScenario looks up a builtin scenario by name.
func GetScenario(name string) (models.Scenario, error) {
	sc, ok := scenarios[name]
	if !ok {
		return models.Scenario{}, fmt.Errorf("scenario %q: %w", name, models.ErrNotFound)
	}
	return sc, nil
}

// ListScenarioNames returns the builtin scenario names sorted.
func ListScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListScenarios returns the builtin scenarios ordered by name.
func ListScenarios() []models.Scenario {
	out := make([]models.Scenario, 0, len(scenarios))
	for _, name := range ListScenarioNames() {
		out = append(out, scenarios[name])
	}
	return out
}

// NewCustomScenario builds a structurally valid ad-hoc scenario from
// caller-supplied numbers.
func NewCustomScenario(name string, volatility, trend, volumeMultiplier float64, start, end *time.Time) (models.Scenario, error) {
	if volatility <= 0 {
		return models.Scenario{}, fmt.Errorf("volatility must be > 0, got %v: %w", volatility, models.ErrInvalidParameter)
	}
	if volumeMultiplier < 0 {
		return models.Scenario{}, fmt.Errorf("volume multiplier must be >= 0, got %v: %w", volumeMultiplier, models.ErrInvalidParameter)
	}
	if start != nil && end != nil && start.After(*end) {
		return models.Scenario{}, fmt.Errorf("scenario window start after end: %w", models.ErrInvalidRange)
	}
	return models.Scenario{
		Name:             name,
		Description:      "custom scenario",
		Volatility:       volatility,
		Trend:            trend,
		VolumeMultiplier: volumeMultiplier,
		StartDate:        start,
		EndDate:          end,
	}, nil
}
