// Package allocation produces goal-based ideal region allocations
// resolved to representative symbols.
package allocation

import (
	"github.com/hedgewise/hedgewise/internal/domain"
	"github.com/hedgewise/hedgewise/internal/modules/classifier"
	"github.com/hedgewise/hedgewise/internal/modules/scoring"
)

// goalWeights is the static per-goal region weight table. Every row sums
// to 100; zero-weight regions produce no allocation entry.
var goalWeights = map[domain.Goal]map[domain.Region]float64{
	domain.GoalInflationProtection: {
		domain.RegionUSA:    20,
		domain.RegionEurope: 15,
		domain.RegionAsia:   10,
		domain.RegionAfrica: 0,
		domain.RegionLatAm:  5,
		domain.RegionGlobal: 50,
	},
	domain.GoalGeographicDiversification: {
		domain.RegionUSA:    25,
		domain.RegionEurope: 20,
		domain.RegionAsia:   20,
		domain.RegionAfrica: 10,
		domain.RegionLatAm:  10,
		domain.RegionGlobal: 15,
	},
	domain.GoalRWAAccess: {
		domain.RegionUSA:    15,
		domain.RegionEurope: 10,
		domain.RegionAsia:   5,
		domain.RegionAfrica: 0,
		domain.RegionLatAm:  0,
		domain.RegionGlobal: 70,
	},
	domain.GoalExploring: {
		domain.RegionUSA:    30,
		domain.RegionEurope: 20,
		domain.RegionAsia:   15,
		domain.RegionAfrica: 5,
		domain.RegionLatAm:  10,
		domain.RegionGlobal: 20,
	},
}

// representativeSymbols fixes the representative token per non-Global
// region. The Global slot is resolved dynamically through the scoring
// engine.
var representativeSymbols = map[domain.Region]string{
	domain.RegionUSA:    "USDC",
	domain.RegionEurope: "EURC",
	domain.RegionAsia:   "XSGD",
	domain.RegionAfrica: "ZARP",
	domain.RegionLatAm:  "BRZ",
}

// Generator resolves goal weight rows into concrete target allocations.
type Generator struct {
	engine *scoring.Engine
}

// NewGenerator creates a target allocation generator backed by the
// scoring engine used for the Global slot.
func NewGenerator(engine *scoring.Engine) *Generator {
	return &Generator{engine: engine}
}

// Generate returns the target allocations for a goal. Allocations are
// holdings-independent, so an empty portfolio still gets a full set.
// Rows follow the fixed region universe order for determinism.
func (g *Generator) Generate(
	goal domain.Goal,
	market domain.MarketContext,
	user domain.UserContext,
	dataset domain.InflationDataset,
) []domain.TargetAllocation {
	weights, ok := goalWeights[goal]
	if !ok {
		// ParseGoal guards the boundary; an unknown goal here means the
		// caller bypassed it, and defaults would corrupt the output.
		return []domain.TargetAllocation{}
	}

	allocations := make([]domain.TargetAllocation, 0, len(weights))
	for _, region := range domain.RegionUniverse {
		weight := weights[region]
		if weight <= 0 {
			continue
		}

		symbol := representativeSymbols[region]
		if region == domain.RegionGlobal {
			symbol = g.topGlobalSymbol(market, user, dataset)
		}

		inflation := classifier.InflationRateFor(region, dataset)
		allocations = append(allocations, domain.TargetAllocation{
			Symbol:           symbol,
			Region:           region,
			TargetPercentage: weight,
			Reason: domain.NewReason(domain.ReasonRegionTarget,
				"region", string(region),
				"inflation", inflation,
				"goal", string(goal)),
		})
	}

	return allocations
}

// topGlobalSymbol asks the scoring engine for the best-ranked Global
// candidate under current conditions.
func (g *Generator) topGlobalSymbol(
	market domain.MarketContext,
	user domain.UserContext,
	dataset domain.InflationDataset,
) string {
	candidates := classifier.KnownSymbols(domain.RegionGlobal)
	scores := g.engine.ScoreTokens(candidates, market, user, dataset)
	if len(scores) == 0 {
		return "PAXG"
	}
	return scores[0].Symbol
}
