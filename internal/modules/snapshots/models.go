// Package snapshots persists portfolio analysis results so users can
// track exposure and risk drift over time.
package snapshots

import (
	"time"

	"github.com/hedgewise/hedgewise/internal/domain"
)

// Snapshot is one stored analysis run. The full analysis document is
// kept as JSON; the scalar columns exist for listing and pruning
// without decoding every row.
type Snapshot struct {
	ID                    string                   `json:"id"`
	Goal                  domain.Goal              `json:"goal"`
	TotalValueUSD         float64                  `json:"total_value_usd"`
	TokenCount            int                      `json:"token_count"`
	WeightedInflationRisk float64                  `json:"weighted_inflation_risk"`
	DiversificationScore  float64                  `json:"diversification_score"`
	CreatedAt             time.Time                `json:"created_at"`
	Analysis              *domain.PortfolioAnalysis `json:"analysis,omitempty"`
}

// Summary is the listing view of a snapshot, without the full analysis
// document.
type Summary struct {
	ID                    string      `json:"id"`
	Goal                  domain.Goal `json:"goal"`
	TotalValueUSD         float64     `json:"total_value_usd"`
	TokenCount            int         `json:"token_count"`
	WeightedInflationRisk float64     `json:"weighted_inflation_risk"`
	DiversificationScore  float64     `json:"diversification_score"`
	CreatedAt             time.Time   `json:"created_at"`
}
