package analysis

import (
	"testing"

	"github.com/hedgewise/hedgewise/internal/domain"
	"github.com/hedgewise/hedgewise/internal/modules/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() *Service {
	return NewService(scoring.NewStaticPerformanceProvider())
}

func testDataset() domain.InflationDataset {
	return domain.InflationDataset{
		domain.RegionUSA:    {AverageRate: 3.2},
		domain.RegionEurope: {AverageRate: 2.4},
		domain.RegionAsia:   {AverageRate: 2.1},
		domain.RegionLatAm:  {AverageRate: 15.0},
		domain.RegionGlobal: {AverageRate: 2.0},
	}
}

func TestAnalyzeEmptyPortfolio(t *testing.T) {
	service := testService()

	result := service.Analyze(nil, testDataset(), domain.GoalExploring)

	assert.Equal(t, domain.GoalExploring, result.Goal)
	assert.Zero(t, result.TotalValueUSD)
	assert.Zero(t, result.TokenCount)
	assert.Zero(t, result.RegionCount)
	assert.Zero(t, result.WeightedInflationRisk)
	assert.Zero(t, result.DiversificationScore)
	assert.Equal(t, domain.RiskLow, result.ConcentrationRisk)

	// Slices come back empty, never nil, so API consumers can range
	// without checks.
	require.NotNil(t, result.Allocations)
	require.NotNil(t, result.Exposures)
	require.NotNil(t, result.Opportunities)
	assert.Empty(t, result.Allocations)
	assert.Empty(t, result.Exposures)
	assert.Empty(t, result.Opportunities)

	// With nothing held, every region in the universe is missing.
	assert.Equal(t, domain.RegionUniverse, result.MissingRegions)
	assert.Empty(t, result.OverExposedRegions)
	assert.Empty(t, result.UnderExposedRegions)

	// Target allocations are holdings-independent and still computed.
	assert.NotEmpty(t, result.TargetAllocations)

	assert.Equal(t, 3, result.Projection.HorizonYears)
	assert.Zero(t, result.Projection.Current.ValueAtHorizon)
	assert.Zero(t, result.Projection.PurchasingPowerLostUSD)
}

func TestAnalyzeConcentratedHighInflationHolding(t *testing.T) {
	service := testService()

	balances := []domain.Balance{
		{ChainID: "celo", Symbol: "BRZ", ValueUSD: 1000},
	}

	result := service.Analyze(balances, testDataset(), domain.GoalInflationProtection)

	assert.InDelta(t, 1000.0, result.TotalValueUSD, 1e-9)
	assert.Equal(t, 1, result.TokenCount)
	assert.Equal(t, 1, result.RegionCount)
	assert.InDelta(t, 15.0, result.WeightedInflationRisk, 1e-9)
	assert.Equal(t, domain.RiskHigh, result.ConcentrationRisk)
	assert.Contains(t, result.OverExposedRegions, domain.RegionLatAm)
	assert.NotContains(t, result.MissingRegions, domain.RegionLatAm)

	require.NotEmpty(t, result.Opportunities)
	for _, opp := range result.Opportunities {
		assert.Equal(t, "BRZ", opp.FromSymbol)
		assert.NotEqual(t, "BRZ", opp.ToSymbol)
		// 100% concentration triggers the half-position suggestion.
		assert.InDelta(t, 500.0, opp.SuggestedAmountUSD, 1e-9)
		assert.InDelta(t, opp.SuggestedAmountUSD*opp.InflationDelta/100, opp.AnnualSavingsUSD, 1e-9)
	}
	// Delta over 5 points on a $500 move is always HIGH priority.
	assert.Equal(t, domain.RiskHigh, result.Opportunities[0].Priority)

	// 15% clamps nowhere; optimized is 9%. 1000*0.85^3 vs 1000*0.91^3.
	assert.InDelta(t, 15.0, result.Projection.Current.AnnualRate, 1e-9)
	assert.InDelta(t, 9.0, result.Projection.Optimized.AnnualRate, 1e-9)
	assert.InDelta(t, 614.125, result.Projection.Current.ValueAtHorizon, 1e-6)
	assert.InDelta(t, 753.571, result.Projection.Optimized.ValueAtHorizon, 1e-3)
	assert.InDelta(t, 385.875, result.Projection.PurchasingPowerLostUSD, 1e-6)
}

func TestAnalyzeWeightedRiskIsValueWeighted(t *testing.T) {
	service := testService()

	dataset := domain.InflationDataset{
		domain.RegionUSA:    {AverageRate: 8.0},
		domain.RegionEurope: {AverageRate: 2.0},
	}
	balances := []domain.Balance{
		{ChainID: "ethereum", Symbol: "USDC", ValueUSD: 500},
		{ChainID: "ethereum", Symbol: "EURC", ValueUSD: 500},
	}

	result := service.Analyze(balances, dataset, domain.GoalGeographicDiversification)

	assert.InDelta(t, 5.0, result.WeightedInflationRisk, 1e-9)
	// Two equal regions: HHI 0.5 -> base 50, +8 token bonus, +20 region
	// bonus.
	assert.InDelta(t, 78.0, result.DiversificationScore, 1e-9)
	assert.Equal(t, domain.RiskLow, result.ConcentrationRisk)
	assert.Len(t, result.MissingRegions, 4)
}

func TestAnalyzeHorizonFromUserContext(t *testing.T) {
	service := testService()

	balances := []domain.Balance{
		{ChainID: "ethereum", Symbol: "USDC", ValueUSD: 100},
	}
	user := domain.UserContext{
		RiskTolerance:     domain.RiskToleranceBalanced,
		Goal:              domain.GoalExploring,
		TimeHorizonMonths: 60,
	}

	result := service.AnalyzeWithContext(balances, testDataset(), domain.GoalExploring, testMarket(), user)

	assert.Equal(t, 5, result.Projection.HorizonYears)
	assert.Len(t, result.Projection.Current.YearlyValues, 5)
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	service := testService()

	balances := []domain.Balance{
		{ChainID: "ethereum", Symbol: "USDC", ValueUSD: 400},
		{ChainID: "polygon", Symbol: "BRZ", ValueUSD: 300},
		{ChainID: "ethereum", Symbol: "EURC", ValueUSD: 200},
		{ChainID: "ethereum", Symbol: "PAXG", ValueUSD: 100},
	}

	first := service.Analyze(balances, testDataset(), domain.GoalInflationProtection)
	second := service.Analyze(balances, testDataset(), domain.GoalInflationProtection)

	assert.Equal(t, first, second)
}

func testMarket() domain.MarketContext {
	return domain.MarketContext{
		TreasuryYield: 4.2,
		InflationRate: 3.0,
		GoldPrice:     2300,
		GoldYTDChange: 8.0,
		USDIndex:      103.0,
		PolicyStance:  domain.PolicyNeutral,
	}
}
