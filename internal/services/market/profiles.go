package market

import (
	"fmt"

	"MarketSim/internal/domain/models"
)

// Builtin symbol universe. Read-only reference data, initialized once.
var profiles = []models.SymbolProfile{
	{Symbol: "AAPL", Name: "Apple Inc.", BasePrice: 178.50, Volatility: 0.018, AvgVolume: 58_000_000, Sector: "Technology", Exchange: "NASDAQ"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", BasePrice: 412.30, Volatility: 0.016, AvgVolume: 24_000_000, Sector: "Technology", Exchange: "NASDAQ"},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", BasePrice: 152.10, Volatility: 0.019, AvgVolume: 27_000_000, Sector: "Communication Services", Exchange: "NASDAQ"},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", BasePrice: 186.40, Volatility: 0.021, AvgVolume: 41_000_000, Sector: "Consumer Discretionary", Exchange: "NASDAQ"},
	{Symbol: "NVDA", Name: "NVIDIA Corporation", BasePrice: 118.70, Volatility: 0.032, AvgVolume: 310_000_000, Sector: "Technology", Exchange: "NASDAQ"},
	{Symbol: "META", Name: "Meta Platforms Inc.", BasePrice: 505.20, Volatility: 0.024, AvgVolume: 15_000_000, Sector: "Communication Services", Exchange: "NASDAQ"},
	{Symbol: "TSLA", Name: "Tesla Inc.", BasePrice: 248.90, Volatility: 0.035, AvgVolume: 95_000_000, Sector: "Consumer Discretionary", Exchange: "NASDAQ"},
	{Symbol: "JPM", Name: "JPMorgan Chase & Co.", BasePrice: 198.60, Volatility: 0.014, AvgVolume: 9_000_000, Sector: "Financials", Exchange: "NYSE"},
	{Symbol: "XOM", Name: "Exxon Mobil Corporation", BasePrice: 113.80, Volatility: 0.015, AvgVolume: 16_000_000, Sector: "Energy", Exchange: "NYSE"},
	{Symbol: "JNJ", Name: "Johnson & Johnson", BasePrice: 156.20, Volatility: 0.011, AvgVolume: 7_500_000, Sector: "Health Care", Exchange: "NYSE"},
}

var profileIndex = func() map[string]models.SymbolProfile {
	m := make(map[string]models.SymbolProfile, len(profiles))
	for _, p := range profiles {
		m[p.Symbol] = p
	}
	return m
}()

// LookupProfile returns the profile for a symbol.
func LookupProfile(symbol string) (models.SymbolProfile, error) {
	p, ok := profileIndex[symbol]
	if !ok {
		return models.SymbolProfile{}, fmt.Errorf("symbol %q: %w", symbol, models.ErrNotFound)
	}
	return p, nil
}

// ListProfiles returns the builtin universe in its declared order.
func ListProfiles() []models.SymbolProfile {
	out := make([]models.SymbolProfile, len(profiles))
	copy(out, profiles)
	return out
}
