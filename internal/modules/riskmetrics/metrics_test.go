package riskmetrics

import (
	"testing"

	"github.com/hedgewise/hedgewise/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestWeightedInflationRisk(t *testing.T) {
	t.Run("empty portfolio is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, WeightedInflationRisk(nil))
	})

	t.Run("single token matches its own rate exactly", func(t *testing.T) {
		allocations := []domain.TokenAllocation{
			{Symbol: "BRZ", ValueUSD: 1000, InflationRate: 15.0},
		}
		assert.Equal(t, 15.0, WeightedInflationRisk(allocations))
	})

	t.Run("two equal holdings average exactly", func(t *testing.T) {
		allocations := []domain.TokenAllocation{
			{Symbol: "EURC", ValueUSD: 500, InflationRate: 2.0},
			{Symbol: "NGNT", ValueUSD: 500, InflationRate: 8.0},
		}
		assert.Equal(t, 5.0, WeightedInflationRisk(allocations))
	})

	t.Run("result lies between min and max rate", func(t *testing.T) {
		allocations := []domain.TokenAllocation{
			{Symbol: "USDC", ValueUSD: 700, InflationRate: 3.2},
			{Symbol: "BRZ", ValueUSD: 200, InflationRate: 15.0},
			{Symbol: "EURC", ValueUSD: 100, InflationRate: 2.4},
		}
		risk := WeightedInflationRisk(allocations)
		assert.GreaterOrEqual(t, risk, 2.4)
		assert.LessOrEqual(t, risk, 15.0)
	})
}

// exposuresForShares builds equal-inflation exposures with the given
// percentage shares, one token per region.
func exposuresForShares(shares ...float64) []domain.RegionalExposure {
	regions := []domain.Region{
		domain.RegionUSA, domain.RegionEurope, domain.RegionAsia,
		domain.RegionAfrica, domain.RegionLatAm, domain.RegionGlobal,
	}
	exposures := make([]domain.RegionalExposure, len(shares))
	for i, share := range shares {
		exposures[i] = domain.RegionalExposure{
			Region:     regions[i],
			ValueUSD:   share * 10,
			Percentage: share,
		}
	}
	return exposures
}

func TestDiversificationScoreBounds(t *testing.T) {
	assert.Equal(t, 0.0, DiversificationScore(nil, 0))

	score := DiversificationScore(exposuresForShares(100), 1)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)
}

func TestDiversificationScoreMonotonicSpread(t *testing.T) {
	oneRegion := DiversificationScore(exposuresForShares(100), 1)
	twoRegions := DiversificationScore(exposuresForShares(50, 50), 2)
	fourRegions := DiversificationScore(exposuresForShares(25, 25, 25, 25), 4)

	assert.Less(t, oneRegion, twoRegions)
	assert.Less(t, twoRegions, fourRegions)
	assert.LessOrEqual(t, fourRegions, 100.0)
}

func TestConcentrationRiskBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		maxShare float64
		want     domain.RiskLevel
	}{
		{"exactly 50.0 is LOW", 50.0, domain.RiskLow},
		{"50.01 is MEDIUM", 50.01, domain.RiskMedium},
		{"exactly 70.0 is MEDIUM", 70.0, domain.RiskMedium},
		{"70.01 is HIGH", 70.01, domain.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exposures := exposuresForShares(tt.maxShare, 100-tt.maxShare)
			assert.Equal(t, tt.want, ConcentrationRisk(exposures))
		})
	}

	t.Run("no regions is LOW", func(t *testing.T) {
		assert.Equal(t, domain.RiskLow, ConcentrationRisk(nil))
	})
}
