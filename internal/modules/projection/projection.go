// Package projection compounds purchasing-power erosion and
// preservation over a time horizon.
package projection

import (
	"math"

	"github.com/hedgewise/hedgewise/internal/domain"
)

// DefaultHorizonYears is used when the caller does not specify a
// horizon.
const DefaultHorizonYears = 3

// OptimizedRateMultiplier is the policy constant assumed for a
// rebalanced portfolio: optimized rate = current rate * 0.6.
const OptimizedRateMultiplier = 0.6

// Calculate projects the portfolio value under the current weighted
// inflation rate and under the optimized rate. Rates are clamped to
// [0, 100] so a hyperinflation input cannot flip the compounding base
// negative; a rate at the cap simply zeroes the value.
func Calculate(totalValueUSD, currentRate float64, horizonYears int) domain.Projection {
	if horizonYears <= 0 {
		horizonYears = DefaultHorizonYears
	}

	currentRate = clampRate(currentRate)
	optimizedRate := clampRate(currentRate * OptimizedRateMultiplier)

	current := path(totalValueUSD, currentRate, horizonYears)
	optimized := path(totalValueUSD, optimizedRate, horizonYears)

	return domain.Projection{
		HorizonYears:                horizonYears,
		Current:                     current,
		Optimized:                   optimized,
		PurchasingPowerLostUSD:      totalValueUSD - current.ValueAtHorizon,
		PurchasingPowerPreservedUSD: optimized.ValueAtHorizon - current.ValueAtHorizon,
	}
}

// path compounds value(t) = total * (1 - rate/100)^t for t = 1..horizon.
func path(totalValueUSD, rate float64, horizonYears int) domain.ProjectionPath {
	base := 1 - rate/100
	yearly := make([]float64, horizonYears)
	for year := 1; year <= horizonYears; year++ {
		yearly[year-1] = totalValueUSD * math.Pow(base, float64(year))
	}

	return domain.ProjectionPath{
		AnnualRate:     rate,
		ValueAtHorizon: yearly[horizonYears-1],
		YearlyValues:   yearly,
	}
}

func clampRate(rate float64) float64 {
	return math.Max(0, math.Min(100, rate))
}
