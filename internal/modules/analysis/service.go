// Package analysis composes the classifier, aggregator, risk metrics,
// gap analyzer, scoring engine, opportunity generator, target
// allocation generator and projection calculator into one immutable
// PortfolioAnalysis. The service is pure and stateless: identical
// inputs always produce identical output, and nothing is mutated
// outside the call's own inputs and outputs.
package analysis

import (
	"github.com/hedgewise/hedgewise/internal/domain"
	"github.com/hedgewise/hedgewise/internal/modules/allocation"
	"github.com/hedgewise/hedgewise/internal/modules/classifier"
	"github.com/hedgewise/hedgewise/internal/modules/exposure"
	"github.com/hedgewise/hedgewise/internal/modules/gaps"
	"github.com/hedgewise/hedgewise/internal/modules/marketdata"
	"github.com/hedgewise/hedgewise/internal/modules/opportunities"
	"github.com/hedgewise/hedgewise/internal/modules/projection"
	"github.com/hedgewise/hedgewise/internal/modules/riskmetrics"
	"github.com/hedgewise/hedgewise/internal/modules/scoring"
)

// Analyzer is the primary entry point contract. CachedAnalyzer wraps it
// without the service knowing.
type Analyzer interface {
	Analyze(balances []domain.Balance, dataset domain.InflationDataset, goal domain.Goal) domain.PortfolioAnalysis
}

// Service is the stateless analysis orchestrator.
type Service struct {
	engine  *scoring.Engine
	targets *allocation.Generator
}

// NewService creates the orchestrator on top of a performance provider.
func NewService(performance domain.PerformanceProvider) *Service {
	engine := scoring.NewEngine(performance)
	return &Service{
		engine:  engine,
		targets: allocation.NewGenerator(engine),
	}
}

// Analyze runs the full analysis with the default market context and a
// goal-derived user context. Callers holding a real market snapshot
// should use AnalyzeWithContext instead.
func (s *Service) Analyze(
	balances []domain.Balance,
	dataset domain.InflationDataset,
	goal domain.Goal,
) domain.PortfolioAnalysis {
	return s.AnalyzeWithContext(balances, dataset, goal, marketdata.DefaultContext(), domain.UserContext{
		RiskTolerance:     domain.RiskToleranceBalanced,
		Goal:              goal,
		TimeHorizonMonths: projection.DefaultHorizonYears * 12,
	})
}

// AnalyzeWithContext runs the full analysis with explicit market and
// user context. An empty or zero-value portfolio yields a fully
// populated, zeroed structure: all regions missing, target allocations
// still computed (they are holdings-independent), projections zeroed.
// Downstream consumers never need a null check.
func (s *Service) AnalyzeWithContext(
	balances []domain.Balance,
	dataset domain.InflationDataset,
	goal domain.Goal,
	market domain.MarketContext,
	user domain.UserContext,
) domain.PortfolioAnalysis {
	allocations, exposures := exposure.Aggregate(balances, dataset)
	if allocations == nil {
		allocations = []domain.TokenAllocation{}
	}
	if exposures == nil {
		exposures = []domain.RegionalExposure{}
	}

	totalValue := 0.0
	for _, alloc := range allocations {
		totalValue += alloc.ValueUSD
	}

	gapResult := gaps.Analyze(exposures)
	weightedRisk := riskmetrics.WeightedInflationRisk(allocations)

	targetAllocations := s.targets.Generate(goal, market, user, dataset)
	candidates := make([]opportunities.TargetCandidate, 0, len(targetAllocations))
	for _, target := range targetAllocations {
		candidates = append(candidates, opportunities.TargetCandidate{
			Symbol:        target.Symbol,
			Region:        target.Region,
			InflationRate: classifier.InflationRateFor(target.Region, dataset),
		})
	}

	horizonYears := user.TimeHorizonMonths / 12
	if horizonYears <= 0 {
		horizonYears = projection.DefaultHorizonYears
	}

	return domain.PortfolioAnalysis{
		Goal:                  goal,
		TotalValueUSD:         totalValue,
		TokenCount:            len(allocations),
		RegionCount:           len(exposures),
		Allocations:           allocations,
		Exposures:             exposures,
		WeightedInflationRisk: weightedRisk,
		DiversificationScore:  riskmetrics.DiversificationScore(exposures, len(allocations)),
		ConcentrationRisk:     riskmetrics.ConcentrationRisk(exposures),
		MissingRegions:        gapResult.MissingRegions,
		OverExposedRegions:    gapResult.OverExposedRegions,
		UnderExposedRegions:   gapResult.UnderExposedRegions,
		Opportunities:         opportunities.Generate(allocations, candidates, goal),
		TargetAllocations:     targetAllocations,
		Projection:            projection.Calculate(totalValue, weightedRisk, horizonYears),
	}
}

// ScoreTokens ranks candidate symbols; a thin passthrough to the
// scoring engine so callers need only the analysis service.
func (s *Service) ScoreTokens(
	symbols []string,
	market domain.MarketContext,
	user domain.UserContext,
	dataset domain.InflationDataset,
) []domain.TokenScore {
	return s.engine.ScoreTokens(symbols, market, user, dataset)
}

// OpportunityCost exposes the scoring engine's opportunity-cost helper.
func (s *Service) OpportunityCost(symbol string, alternatives []string, investmentUSD float64) *domain.OpportunityCost {
	return s.engine.OpportunityCost(symbol, alternatives, investmentUSD)
}
