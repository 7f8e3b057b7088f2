// Package scoring ranks candidate tokens by a composite desirability
// score under current market conditions. The engine is independent of
// current holdings and fully deterministic given identical inputs: no
// randomness, no clock, no I/O beyond the injected performance provider.
package scoring

import (
	"sort"

	"github.com/hedgewise/hedgewise/internal/domain"
	"github.com/hedgewise/hedgewise/internal/modules/classifier"
)

// Regime thresholds (percent) used by the inflation-hedge and real-yield
// factors.
const (
	highInflationThreshold    = 4.0
	severeInflationThreshold  = 5.0
	lowInflationThreshold     = 2.5
	strongRealYieldThreshold  = 2.0
	positiveRealYieldTreshold = 1.0
	goalRealYieldThreshold    = 1.5
)

// Engine scores candidate tokens using an injected performance provider.
type Engine struct {
	performance domain.PerformanceProvider
}

// NewEngine creates a scoring engine backed by the given performance
// provider.
func NewEngine(performance domain.PerformanceProvider) *Engine {
	return &Engine{performance: performance}
}

// ScoreTokens scores and ranks the candidate symbols. Results are sorted
// by total score descending with symbol as the deterministic tie-break.
// The inflation dataset is only used to parameterize reasons; the
// scoring factors read the market context exclusively.
func (e *Engine) ScoreTokens(
	symbols []string,
	market domain.MarketContext,
	user domain.UserContext,
	dataset domain.InflationDataset,
) []domain.TokenScore {
	profiles := make(map[string]domain.TokenPerformance, len(symbols))
	maxAPY := 0.0
	for _, symbol := range symbols {
		perf, ok := e.performance.Performance(symbol)
		if !ok {
			// Unknown candidates score from a zero profile rather than erroring.
			perf = domain.TokenPerformance{Symbol: symbol}
		}
		profiles[symbol] = perf
		if perf.APY > maxAPY {
			maxAPY = perf.APY
		}
	}

	scores := make([]domain.TokenScore, 0, len(symbols))
	for _, symbol := range symbols {
		perf := profiles[symbol]
		score := e.scoreToken(perf, market, user, dataset, maxAPY)
		scores = append(scores, score)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Total != scores[j].Total {
			return scores[i].Total > scores[j].Total
		}
		return scores[i].Symbol < scores[j].Symbol
	})

	return scores
}

// scoreToken computes the five factors and the ordered reason codes for
// a single candidate.
func (e *Engine) scoreToken(
	perf domain.TokenPerformance,
	market domain.MarketContext,
	user domain.UserContext,
	dataset domain.InflationDataset,
	maxAPY float64,
) domain.TokenScore {
	var reasons []domain.Reason

	breakdown := domain.ScoreBreakdown{
		Yield: yieldScore(perf, maxAPY),
	}
	if maxAPY > 0 && perf.APY == maxAPY {
		reasons = append(reasons, domain.NewReason(domain.ReasonTopYield, "apy", perf.APY))
	}

	hedge, hedgeReasons := inflationHedgeScore(perf, market, user, dataset)
	breakdown.InflationHedge = hedge
	reasons = append(reasons, hedgeReasons...)

	breakdown.RealYield = realYieldScore(perf, market)
	breakdown.Performance = perf.YTDReturn * 2
	if perf.YTDReturn > 10 {
		reasons = append(reasons, domain.NewReason(domain.ReasonStrongPerformance, "ytd_return", perf.YTDReturn))
	}

	riskAdjusted, riskReasons := riskAdjustedScore(perf, user)
	breakdown.RiskAdjusted = riskAdjusted
	reasons = append(reasons, riskReasons...)

	return domain.TokenScore{
		Symbol: perf.Symbol,
		Total: breakdown.Yield + breakdown.InflationHedge + breakdown.RealYield +
			breakdown.Performance + breakdown.RiskAdjusted,
		Breakdown: breakdown,
		Reasons:   reasons,
	}
}

// yieldScore normalizes the candidate's APY against the best APY in the
// candidate set.
func yieldScore(perf domain.TokenPerformance, maxAPY float64) float64 {
	if maxAPY <= 0 {
		return 0
	}
	return perf.APY / maxAPY * 100
}

// inflationHedgeScore applies the regime-dependent hedge adjustments on
// top of the inflation-correlation base.
func inflationHedgeScore(
	perf domain.TokenPerformance,
	market domain.MarketContext,
	user domain.UserContext,
	dataset domain.InflationDataset,
) (float64, []domain.Reason) {
	score := perf.CorrelationWithInflation * 20
	realYield := market.RealYield()
	var reasons []domain.Reason

	if perf.HardAsset && !perf.YieldBearing {
		if market.InflationRate > highInflationThreshold {
			score += 30
			reasons = append(reasons, domain.NewReason(domain.ReasonInflationHedge, "inflation", market.InflationRate))
		}
		if realYield < 0 {
			score += 25
			reasons = append(reasons, domain.NewReason(domain.ReasonNegativeRealYield, "real_yield", realYield))
		}
		if realYield > strongRealYieldThreshold {
			score -= 40
			reasons = append(reasons, domain.NewReason(domain.ReasonHighRealYieldDrag, "real_yield", realYield))
		}
		if market.PolicyStance == domain.PolicyHawkish {
			score -= 20
			reasons = append(reasons, domain.NewReason(domain.ReasonHawkishHeadwind))
		}
		if market.GoldUptrend != nil && *market.GoldUptrend {
			score += 10
			reasons = append(reasons, domain.NewReason(domain.ReasonGoldMomentum, "gold_ytd_change", market.GoldYTDChange))
		}
	}

	if perf.YieldBearing {
		if realYield > positiveRealYieldTreshold {
			score += 25
			reasons = append(reasons, domain.NewReason(domain.ReasonPositiveRealYield, "real_yield", realYield))
			if realYield > strongRealYieldThreshold {
				score += 20
				reasons = append(reasons, domain.NewReason(domain.ReasonStrongRealYield, "real_yield", realYield))
			}
		}
		if market.InflationRate < lowInflationThreshold {
			score += 15
			reasons = append(reasons, domain.NewReason(domain.ReasonLowInflationRegime, "inflation", market.InflationRate))
		}
	}

	region := classifier.RegionFor(perf.Symbol)
	regionInflation := classifier.InflationRateFor(region, dataset)

	switch user.Goal {
	case domain.GoalInflationProtection:
		if perf.HardAsset && market.InflationRate > severeInflationThreshold {
			score += 20
			reasons = append(reasons, domain.NewReason(domain.ReasonGoalHardAssetFit,
				"inflation", market.InflationRate, "region_inflation", regionInflation))
		}
	case domain.GoalRWAAccess:
		if perf.YieldBearing && realYield > goalRealYieldThreshold {
			score += 15
			reasons = append(reasons, domain.NewReason(domain.ReasonGoalYieldFit,
				"real_yield", realYield, "region_inflation", regionInflation))
		}
	}

	return score, reasons
}

// realYieldScore rewards or penalizes a token depending on whether it
// earns nominal yield in the current real-yield regime.
func realYieldScore(perf domain.TokenPerformance, market domain.MarketContext) float64 {
	realYield := market.RealYield()

	if perf.YieldBearing {
		switch {
		case realYield > strongRealYieldThreshold:
			return 20
		case realYield > 0:
			return 10
		default:
			return 0
		}
	}

	switch {
	case realYield > strongRealYieldThreshold:
		return -30
	case realYield > positiveRealYieldTreshold:
		return -15
	case realYield < 0:
		return 15
	default:
		return 0
	}
}

// riskAdjustedScore scales the Sharpe ratio and applies the tolerance
// adjustments.
func riskAdjustedScore(perf domain.TokenPerformance, user domain.UserContext) (float64, []domain.Reason) {
	score := perf.SharpeRatio * 10
	var reasons []domain.Reason

	if perf.SharpeRatio > 1.5 {
		reasons = append(reasons, domain.NewReason(domain.ReasonHighSharpe, "sharpe", perf.SharpeRatio))
	}

	switch user.RiskTolerance {
	case domain.RiskToleranceConservative:
		score -= perf.Volatility * 0.5
		if perf.Volatility > 10 {
			reasons = append(reasons, domain.NewReason(domain.ReasonVolatilityPenalty, "volatility", perf.Volatility))
		}
	case domain.RiskToleranceAggressive:
		if perf.YTDReturn > 10 {
			score += 10
			reasons = append(reasons, domain.NewReason(domain.ReasonMomentumBonus, "ytd_return", perf.YTDReturn))
		}
	}

	return score, reasons
}

// OpportunityCost finds the highest-APY alternative strictly exceeding
// the token's own APY and quantifies the annual difference on the given
// investment. Returns nil when no alternative qualifies.
func (e *Engine) OpportunityCost(symbol string, alternatives []string, investmentUSD float64) *domain.OpportunityCost {
	tokenPerf, ok := e.performance.Performance(symbol)
	if !ok {
		tokenPerf = domain.TokenPerformance{Symbol: symbol}
	}

	best := ""
	bestAPY := tokenPerf.APY
	for _, alt := range alternatives {
		if alt == symbol {
			continue
		}
		perf, ok := e.performance.Performance(alt)
		if !ok {
			continue
		}
		if perf.APY > bestAPY || (best != "" && perf.APY == bestAPY && alt < best) {
			best = alt
			bestAPY = perf.APY
		}
	}

	if best == "" {
		return nil
	}

	return &domain.OpportunityCost{
		AlternativeSymbol:   best,
		AlternativeAPY:      bestAPY,
		TokenAPY:            tokenPerf.APY,
		AnnualDifferenceUSD: (bestAPY - tokenPerf.APY) / 100 * investmentUSD,
	}
}
