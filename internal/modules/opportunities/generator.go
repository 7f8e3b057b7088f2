// Package opportunities pairs high-inflation holdings with
// lower-inflation targets and ranks the resulting rebalancing
// suggestions.
package opportunities

import (
	"sort"

	"github.com/google/uuid"
	"github.com/hedgewise/hedgewise/internal/domain"
)

// Matching thresholds (percent unless noted).
const (
	sourceInflationFloor = 5.0
	maxOpportunities     = 5

	geoTargetMaxInflation     = 6.0
	rwaTargetMaxInflation     = 2.0
	defaultTargetMaxInflation = 4.0

	geoMinDelta     = 1.0
	defaultMinDelta = 2.0

	concentratedShare    = 50.0
	concentratedFraction = 0.5
	defaultFraction      = 0.25
)

// TargetCandidate is a potential destination token for a rebalance.
type TargetCandidate struct {
	Symbol        string
	Region        domain.Region
	InflationRate float64
}

// opportunityNamespace keys the deterministic opportunity IDs.
// Identical inputs must yield identical output, so IDs are content
// derived rather than random.
var opportunityNamespace = uuid.MustParse("3e9f2b1c-58a4-4c6e-9d7a-6f0e8c2d4b11")

// Generate builds ranked rebalancing opportunities for the holdings.
// Sources are holdings above the inflation floor; targets are filtered
// by goal with a fallback to the default rule when the goal-specific set
// is empty. Output is sorted by priority then annual savings and capped.
func Generate(
	allocations []domain.TokenAllocation,
	candidates []TargetCandidate,
	goal domain.Goal,
) []domain.RebalancingOpportunity {
	sources := make([]domain.TokenAllocation, 0, len(allocations))
	for _, alloc := range allocations {
		if alloc.InflationRate > sourceInflationFloor {
			sources = append(sources, alloc)
		}
	}
	if len(sources) == 0 {
		return []domain.RebalancingOpportunity{}
	}

	heldRegions := make(map[domain.Region]bool, len(allocations))
	for _, alloc := range allocations {
		heldRegions[alloc.Region] = true
	}

	targets := filterTargets(candidates, goal, heldRegions)
	if len(targets) == 0 {
		// Goal-specific set is empty; fall back to the default rule.
		targets = filterTargets(candidates, domain.GoalInflationProtection, heldRegions)
	}

	minDelta := defaultMinDelta
	if goal == domain.GoalGeographicDiversification {
		minDelta = geoMinDelta
	}

	var opportunities []domain.RebalancingOpportunity
	for _, source := range sources {
		for _, target := range targets {
			if target.Symbol == source.Symbol {
				continue
			}
			delta := source.InflationRate - target.InflationRate
			if delta < minDelta {
				continue
			}

			fraction := defaultFraction
			if source.Percentage > concentratedShare {
				fraction = concentratedFraction
			}
			amount := source.ValueUSD * fraction
			savings := amount * delta / 100
			aligned := goalAligned(goal, source, target)

			opportunities = append(opportunities, domain.RebalancingOpportunity{
				ID:                 opportunityID(source, target),
				FromSymbol:         source.Symbol,
				ToSymbol:           target.Symbol,
				FromRegion:         source.Region,
				ToRegion:           target.Region,
				SuggestedAmountUSD: amount,
				FromInflation:      source.InflationRate,
				ToInflation:        target.InflationRate,
				InflationDelta:     delta,
				AnnualSavingsUSD:   savings,
				Priority:           priorityFor(delta, amount, aligned),
			})
		}
	}

	sortOpportunities(opportunities, goal, heldRegions)
	if len(opportunities) > maxOpportunities {
		opportunities = opportunities[:maxOpportunities]
	}
	if opportunities == nil {
		opportunities = []domain.RebalancingOpportunity{}
	}
	return opportunities
}

// filterTargets applies the goal-specific target rule.
func filterTargets(candidates []TargetCandidate, goal domain.Goal, heldRegions map[domain.Region]bool) []TargetCandidate {
	var targets []TargetCandidate
	for _, c := range candidates {
		switch goal {
		case domain.GoalGeographicDiversification:
			if c.InflationRate <= geoTargetMaxInflation {
				targets = append(targets, c)
			}
		case domain.GoalRWAAccess:
			if c.Region == domain.RegionGlobal || c.InflationRate <= rwaTargetMaxInflation {
				targets = append(targets, c)
			}
		default:
			if c.InflationRate <= defaultTargetMaxInflation {
				targets = append(targets, c)
			}
		}
	}
	return targets
}

// goalAligned reports whether a pair advances the user's stated goal.
func goalAligned(goal domain.Goal, source domain.TokenAllocation, target TargetCandidate) bool {
	switch goal {
	case domain.GoalGeographicDiversification:
		return source.Region != target.Region
	case domain.GoalRWAAccess:
		return target.Region == domain.RegionGlobal
	case domain.GoalInflationProtection:
		return target.InflationRate <= rwaTargetMaxInflation
	default:
		return false
	}
}

// priorityFor applies the fixed priority rules.
func priorityFor(delta, amount float64, aligned bool) domain.RiskLevel {
	switch {
	case (delta > 5 && amount > 100) || (aligned && delta > 3):
		return domain.RiskHigh
	case (delta > 3 && amount > 50) || aligned:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// sortOpportunities orders by priority, then annual savings descending.
// Remaining ties prefer targets in regions not already held (the
// geographic bias), then symbols for a fully deterministic order.
func sortOpportunities(opportunities []domain.RebalancingOpportunity, goal domain.Goal, heldRegions map[domain.Region]bool) {
	rank := map[domain.RiskLevel]int{domain.RiskHigh: 0, domain.RiskMedium: 1, domain.RiskLow: 2}

	sort.SliceStable(opportunities, func(i, j int) bool {
		a, b := opportunities[i], opportunities[j]
		if rank[a.Priority] != rank[b.Priority] {
			return rank[a.Priority] < rank[b.Priority]
		}
		if a.AnnualSavingsUSD != b.AnnualSavingsUSD {
			return a.AnnualSavingsUSD > b.AnnualSavingsUSD
		}
		if goal == domain.GoalGeographicDiversification {
			aNew, bNew := !heldRegions[a.ToRegion], !heldRegions[b.ToRegion]
			if aNew != bNew {
				return aNew
			}
		}
		if a.FromSymbol != b.FromSymbol {
			return a.FromSymbol < b.FromSymbol
		}
		return a.ToSymbol < b.ToSymbol
	})
}

// opportunityID derives a stable content-addressed identifier for a
// source/target pair.
func opportunityID(source domain.TokenAllocation, target TargetCandidate) string {
	key := source.ChainID + "/" + source.Symbol + "->" + target.Symbol
	return uuid.NewSHA1(opportunityNamespace, []byte(key)).String()
}
