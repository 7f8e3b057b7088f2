package gaps

import (
	"testing"

	"github.com/hedgewise/hedgewise/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeEmptyPortfolio(t *testing.T) {
	result := Analyze(nil)

	assert.Equal(t, domain.RegionUniverse, result.MissingRegions)
	assert.Empty(t, result.OverExposedRegions)
	assert.Empty(t, result.UnderExposedRegions)
}

func TestAnalyzeOverAndUnderExposure(t *testing.T) {
	exposures := []domain.RegionalExposure{
		{Region: domain.RegionUSA, ValueUSD: 650, Percentage: 65},
		{Region: domain.RegionEurope, ValueUSD: 300, Percentage: 30},
		{Region: domain.RegionAsia, ValueUSD: 50, Percentage: 5},
	}

	result := Analyze(exposures)

	assert.Equal(t, []domain.Region{domain.RegionUSA}, result.OverExposedRegions)
	assert.Equal(t, []domain.Region{domain.RegionAsia}, result.UnderExposedRegions)
	assert.ElementsMatch(t,
		[]domain.Region{domain.RegionAfrica, domain.RegionLatAm, domain.RegionGlobal},
		result.MissingRegions)
}

func TestAnalyzeTrueZeroIsMissingNotUnderExposed(t *testing.T) {
	exposures := []domain.RegionalExposure{
		{Region: domain.RegionUSA, ValueUSD: 1000, Percentage: 100},
		{Region: domain.RegionAsia, ValueUSD: 0, Percentage: 0},
	}

	result := Analyze(exposures)

	assert.Contains(t, result.MissingRegions, domain.RegionAsia)
	assert.NotContains(t, result.UnderExposedRegions, domain.RegionAsia)
}

func TestAnalyzeBoundaryShares(t *testing.T) {
	// Exactly 50% is not over-exposed; exactly 10% is not under-exposed.
	exposures := []domain.RegionalExposure{
		{Region: domain.RegionUSA, ValueUSD: 500, Percentage: 50},
		{Region: domain.RegionEurope, ValueUSD: 400, Percentage: 40},
		{Region: domain.RegionAsia, ValueUSD: 100, Percentage: 10},
	}

	result := Analyze(exposures)

	assert.Empty(t, result.OverExposedRegions)
	assert.Empty(t, result.UnderExposedRegions)
}
