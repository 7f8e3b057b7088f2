// Package riskmetrics computes the portfolio-level risk metrics:
// weighted inflation risk, diversification score and concentration
// classification.
package riskmetrics

import (
	"math"

	"github.com/hedgewise/hedgewise/internal/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Concentration thresholds over the maximum regional share (percent).
const (
	concentrationHighShare   = 70.0
	concentrationMediumShare = 50.0
)

// Diversification bonus caps.
const (
	tokenBonusPerToken   = 4.0
	tokenBonusCap        = 20.0
	regionBonusPerRegion = 10.0
	regionBonusCap       = 30.0
)

// WeightedInflationRisk is the value-weighted average of the holdings'
// inflation rates. Zero when there is no value.
func WeightedInflationRisk(allocations []domain.TokenAllocation) float64 {
	if len(allocations) == 0 {
		return 0
	}

	rates := make([]float64, len(allocations))
	weights := make([]float64, len(allocations))
	for i, alloc := range allocations {
		rates[i] = alloc.InflationRate
		weights[i] = alloc.ValueUSD
	}

	if floats.Sum(weights) <= 0 {
		return 0
	}
	return stat.Mean(rates, weights)
}

// DiversificationScore combines an HHI-based concentration measure with
// token and region count bonuses, clamped to [0, 100]. An empty
// portfolio scores 0.
func DiversificationScore(exposures []domain.RegionalExposure, tokenCount int) float64 {
	if len(exposures) == 0 || tokenCount == 0 {
		return 0
	}

	shares := make([]float64, len(exposures))
	for i, e := range exposures {
		shares[i] = e.Percentage / 100
	}

	// Herfindahl-Hirschman index over regional shares.
	hhi := floats.Dot(shares, shares)

	base := clamp((1-hhi)*100, 0, 100)
	tokenBonus := math.Min(tokenBonusCap, float64(tokenCount)*tokenBonusPerToken)
	regionBonus := math.Min(regionBonusCap, float64(len(exposures))*regionBonusPerRegion)

	return clamp(base+tokenBonus+regionBonus, 0, 100)
}

// ConcentrationRisk classifies the maximum regional share: HIGH above
// 70%, MEDIUM above 50%, LOW otherwise (including no regions at all).
func ConcentrationRisk(exposures []domain.RegionalExposure) domain.RiskLevel {
	maxShare := 0.0
	for _, e := range exposures {
		if e.Percentage > maxShare {
			maxShare = e.Percentage
		}
	}

	switch {
	case maxShare > concentrationHighShare:
		return domain.RiskHigh
	case maxShare > concentrationMediumShare:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
