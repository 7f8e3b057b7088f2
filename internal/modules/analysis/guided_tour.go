package analysis

import (
	"github.com/hedgewise/hedgewise/internal/domain"
)

// Guided tour section identifiers.
const (
	SectionDiversification = "diversification"
	SectionOpportunities   = "opportunities"
	SectionRegions         = "regions"
	SectionTargets         = "targets"
)

// Tour thresholds read off the analysis invariants.
const (
	tourInflationRiskThreshold   = 6.0
	tourDiversificationThreshold = 40.0
)

// DetectGuidedTour is a thin rules layer over the analysis snapshot. It
// keeps no state of its own: the rules read only the analysis
// invariants and the caller-supplied set of visited sections. Returns
// nil when every relevant section has been seen.
func DetectGuidedTour(
	result domain.PortfolioAnalysis,
	goal domain.Goal,
	visitedSections []string,
) *domain.TourRecommendation {
	visited := make(map[string]bool, len(visitedSections))
	for _, section := range visitedSections {
		visited[section] = true
	}

	if result.ConcentrationRisk == domain.RiskHigh && !visited[SectionDiversification] {
		return &domain.TourRecommendation{
			Section:  SectionDiversification,
			Reason:   domain.NewReason(domain.ReasonHighConcentration),
			Priority: domain.RiskHigh,
		}
	}

	if result.WeightedInflationRisk > tourInflationRiskThreshold && !visited[SectionOpportunities] {
		return &domain.TourRecommendation{
			Section:  SectionOpportunities,
			Reason:   domain.NewReason(domain.ReasonHighInflationRisk, "weighted_risk", result.WeightedInflationRisk),
			Priority: domain.RiskHigh,
		}
	}

	if result.DiversificationScore < tourDiversificationThreshold && result.TokenCount > 0 && !visited[SectionRegions] {
		return &domain.TourRecommendation{
			Section:  SectionRegions,
			Reason:   domain.NewReason(domain.ReasonLowDiversification, "score", result.DiversificationScore),
			Priority: domain.RiskMedium,
		}
	}

	if !visited[SectionTargets] {
		return &domain.TourRecommendation{
			Section:  SectionTargets,
			Reason:   domain.NewReason(domain.ReasonGoalIntro, "goal", string(goal)),
			Priority: domain.RiskLow,
		}
	}

	return nil
}
