package scoring

import (
	"testing"

	"github.com/hedgewise/hedgewise/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMarket() domain.MarketContext {
	return domain.MarketContext{
		TreasuryYield: 4.5,
		InflationRate: 3.2,
		GoldPrice:     2350,
		GoldYTDChange: 12.4,
		USDIndex:      104.2,
		PolicyStance:  domain.PolicyNeutral,
	}
}

func testDataset() domain.InflationDataset {
	return domain.InflationDataset{
		domain.RegionUSA:    {AverageRate: 3.2},
		domain.RegionGlobal: {AverageRate: 3.8},
	}
}

func TestScoreTokensUSDYOutranksPAXGForRWAAccess(t *testing.T) {
	engine := NewEngine(NewStaticPerformanceProvider())

	user := domain.UserContext{
		RiskTolerance: domain.RiskToleranceConservative,
		Goal:          domain.GoalRWAAccess,
	}

	scores := engine.ScoreTokens([]string{"PAXG", "USDY"}, testMarket(), user, testDataset())
	require.Len(t, scores, 2)

	// Real yield of 1.3 triggers the yield-token bonuses.
	assert.Equal(t, "USDY", scores[0].Symbol)
	assert.Equal(t, "PAXG", scores[1].Symbol)
	assert.Greater(t, scores[0].Total, scores[1].Total)
	assert.Equal(t, 100.0, scores[0].Breakdown.Yield)
	assert.Equal(t, 10.0, scores[0].Breakdown.RealYield)
}

func TestScoreTokensYieldScoreZeroWhenNoAPY(t *testing.T) {
	engine := NewEngine(NewStaticPerformanceProvider())
	user := domain.UserContext{RiskTolerance: domain.RiskToleranceBalanced, Goal: domain.GoalExploring}

	scores := engine.ScoreTokens([]string{"PAXG", "XAUT"}, testMarket(), user, testDataset())
	for _, score := range scores {
		assert.Equal(t, 0.0, score.Breakdown.Yield)
	}
}

func TestScoreTokensHardAssetRegimes(t *testing.T) {
	engine := NewEngine(NewStaticPerformanceProvider())
	user := domain.UserContext{RiskTolerance: domain.RiskToleranceBalanced, Goal: domain.GoalExploring}

	t.Run("high inflation plus negative real yield boosts hard assets", func(t *testing.T) {
		market := testMarket()
		market.InflationRate = 6.0
		market.TreasuryYield = 4.0

		scores := engine.ScoreTokens([]string{"PAXG"}, market, user, testDataset())
		require.Len(t, scores, 1)

		// base 15 + 30 (inflation > 4) + 25 (real yield < 0)
		assert.InDelta(t, 70.0, scores[0].Breakdown.InflationHedge, 1e-9)
		assert.Equal(t, 15.0, scores[0].Breakdown.RealYield)

		codes := reasonCodes(scores[0].Reasons)
		assert.Contains(t, codes, domain.ReasonInflationHedge)
		assert.Contains(t, codes, domain.ReasonNegativeRealYield)
	})

	t.Run("strong real yield drags hard assets", func(t *testing.T) {
		market := testMarket()
		market.InflationRate = 1.5
		market.TreasuryYield = 4.5

		scores := engine.ScoreTokens([]string{"PAXG"}, market, user, testDataset())
		require.Len(t, scores, 1)

		// base 15 - 40 (real yield > 2)
		assert.InDelta(t, -25.0, scores[0].Breakdown.InflationHedge, 1e-9)
		assert.Equal(t, -30.0, scores[0].Breakdown.RealYield)
		assert.Contains(t, reasonCodes(scores[0].Reasons), domain.ReasonHighRealYieldDrag)
	})

	t.Run("hawkish stance penalizes hard assets", func(t *testing.T) {
		market := testMarket()
		market.PolicyStance = domain.PolicyHawkish

		neutral := engine.ScoreTokens([]string{"PAXG"}, testMarket(), user, testDataset())
		hawkish := engine.ScoreTokens([]string{"PAXG"}, market, user, testDataset())

		assert.InDelta(t, neutral[0].Breakdown.InflationHedge-20,
			hawkish[0].Breakdown.InflationHedge, 1e-9)
		assert.Contains(t, reasonCodes(hawkish[0].Reasons), domain.ReasonHawkishHeadwind)
	})
}

func TestScoreTokensYieldBearingRegimes(t *testing.T) {
	engine := NewEngine(NewStaticPerformanceProvider())
	user := domain.UserContext{RiskTolerance: domain.RiskToleranceBalanced, Goal: domain.GoalExploring}

	t.Run("strong real yield stacks both bonuses", func(t *testing.T) {
		market := testMarket()
		market.TreasuryYield = 5.0
		market.InflationRate = 2.0

		scores := engine.ScoreTokens([]string{"USDY"}, market, user, testDataset())
		require.Len(t, scores, 1)

		// base 2 + 25 (real yield > 1) + 20 (real yield > 2) + 15 (inflation < 2.5)
		assert.InDelta(t, 62.0, scores[0].Breakdown.InflationHedge, 1e-9)
		assert.Equal(t, 20.0, scores[0].Breakdown.RealYield)
	})
}

func TestScoreTokensGoalBonuses(t *testing.T) {
	engine := NewEngine(NewStaticPerformanceProvider())

	t.Run("inflation protection favors hard assets above 5 percent", func(t *testing.T) {
		market := testMarket()
		market.InflationRate = 5.5

		exploring := engine.ScoreTokens([]string{"PAXG"}, market,
			domain.UserContext{RiskTolerance: domain.RiskToleranceBalanced, Goal: domain.GoalExploring}, testDataset())
		protecting := engine.ScoreTokens([]string{"PAXG"}, market,
			domain.UserContext{RiskTolerance: domain.RiskToleranceBalanced, Goal: domain.GoalInflationProtection}, testDataset())

		assert.InDelta(t, exploring[0].Breakdown.InflationHedge+20,
			protecting[0].Breakdown.InflationHedge, 1e-9)
		assert.Contains(t, reasonCodes(protecting[0].Reasons), domain.ReasonGoalHardAssetFit)
	})

	t.Run("rwa access favors yield tokens above 1.5 real yield", func(t *testing.T) {
		market := testMarket()
		market.TreasuryYield = 5.0 // real yield 1.8

		scores := engine.ScoreTokens([]string{"USDY"}, market,
			domain.UserContext{RiskTolerance: domain.RiskToleranceBalanced, Goal: domain.GoalRWAAccess}, testDataset())
		assert.Contains(t, reasonCodes(scores[0].Reasons), domain.ReasonGoalYieldFit)
	})
}

func TestScoreTokensRiskTolerance(t *testing.T) {
	engine := NewEngine(NewStaticPerformanceProvider())
	market := testMarket()

	conservative := engine.ScoreTokens([]string{"PAXG"}, market,
		domain.UserContext{RiskTolerance: domain.RiskToleranceConservative, Goal: domain.GoalExploring}, testDataset())
	balanced := engine.ScoreTokens([]string{"PAXG"}, market,
		domain.UserContext{RiskTolerance: domain.RiskToleranceBalanced, Goal: domain.GoalExploring}, testDataset())
	aggressive := engine.ScoreTokens([]string{"PAXG"}, market,
		domain.UserContext{RiskTolerance: domain.RiskToleranceAggressive, Goal: domain.GoalExploring}, testDataset())

	// Conservative subtracts volatility * 0.5 (14.0 * 0.5 = 7).
	assert.InDelta(t, balanced[0].Breakdown.RiskAdjusted-7.0,
		conservative[0].Breakdown.RiskAdjusted, 1e-9)

	// Aggressive adds 10 since YTD return exceeds 10.
	assert.InDelta(t, balanced[0].Breakdown.RiskAdjusted+10.0,
		aggressive[0].Breakdown.RiskAdjusted, 1e-9)
	assert.Contains(t, reasonCodes(aggressive[0].Reasons), domain.ReasonMomentumBonus)
}

func TestScoreTokensDeterministic(t *testing.T) {
	engine := NewEngine(NewStaticPerformanceProvider())
	user := domain.UserContext{RiskTolerance: domain.RiskToleranceBalanced, Goal: domain.GoalExploring}
	symbols := []string{"USDC", "USDY", "PAXG", "EURC", "BRZ", "XSGD"}

	first := engine.ScoreTokens(symbols, testMarket(), user, testDataset())
	second := engine.ScoreTokens(symbols, testMarket(), user, testDataset())

	assert.Equal(t, first, second)
}

func TestScoreTokensUnknownSymbolScoresFromZeroProfile(t *testing.T) {
	engine := NewEngine(NewStaticPerformanceProvider())
	user := domain.UserContext{RiskTolerance: domain.RiskToleranceBalanced, Goal: domain.GoalExploring}

	scores := engine.ScoreTokens([]string{"WAGMI"}, testMarket(), user, testDataset())
	require.Len(t, scores, 1)
	assert.Equal(t, "WAGMI", scores[0].Symbol)
	assert.Equal(t, 0.0, scores[0].Breakdown.Yield)
}

func TestOpportunityCost(t *testing.T) {
	engine := NewEngine(NewStaticPerformanceProvider())

	t.Run("finds highest strictly better APY", func(t *testing.T) {
		cost := engine.OpportunityCost("USDC", []string{"USDY", "OUSG", "PAXG"}, 10000)
		require.NotNil(t, cost)
		assert.Equal(t, "OUSG", cost.AlternativeSymbol)
		assert.InDelta(t, 5.1/100*10000, cost.AnnualDifferenceUSD, 1e-9)
	})

	t.Run("nil when nothing strictly exceeds", func(t *testing.T) {
		cost := engine.OpportunityCost("OUSG", []string{"USDC", "USDT", "PAXG"}, 10000)
		assert.Nil(t, cost)
	})

	t.Run("ignores the token itself", func(t *testing.T) {
		cost := engine.OpportunityCost("OUSG", []string{"OUSG"}, 10000)
		assert.Nil(t, cost)
	})
}

func TestScoreTokensGoldMomentumBonus(t *testing.T) {
	engine := NewEngine(NewStaticPerformanceProvider())
	user := domain.UserContext{RiskTolerance: domain.RiskToleranceBalanced, Goal: domain.GoalExploring}

	baseline := engine.ScoreTokens([]string{"PAXG"}, testMarket(), user, testDataset())
	require.Len(t, baseline, 1)

	up := true
	market := testMarket()
	market.GoldUptrend = &up
	trending := engine.ScoreTokens([]string{"PAXG"}, market, user, testDataset())
	require.Len(t, trending, 1)

	assert.InDelta(t, baseline[0].Total+10, trending[0].Total, 1e-9)
	assert.Contains(t, reasonCodes(trending[0].Reasons), domain.ReasonGoldMomentum)
	assert.NotContains(t, reasonCodes(baseline[0].Reasons), domain.ReasonGoldMomentum)
}

func reasonCodes(reasons []domain.Reason) []domain.ReasonCode {
	codes := make([]domain.ReasonCode, len(reasons))
	for i, r := range reasons {
		codes[i] = r.Code
	}
	return codes
}
