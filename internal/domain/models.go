// Package domain provides core domain models and types.
package domain

// Region represents a monetary/geographic grouping used to bucket a token
// by currency exposure. The set is closed; unmapped symbols resolve to
// RegionUnknown.
type Region string

const (
	RegionUSA     Region = "USA"
	RegionEurope  Region = "Europe"
	RegionLatAm   Region = "LatAm"
	RegionAfrica  Region = "Africa"
	RegionAsia    Region = "Asia"
	RegionGlobal  Region = "Global"
	RegionUnknown Region = "Unknown"
)

// RegionUniverse is the fixed set of regions used for gap analysis and
// target allocation tables. RegionUnknown is deliberately excluded.
var RegionUniverse = []Region{
	RegionUSA,
	RegionEurope,
	RegionAsia,
	RegionAfrica,
	RegionLatAm,
	RegionGlobal,
}

// RiskLevel classifies concentration risk and opportunity priority.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Balance is a raw per-chain holding as reported by the balance-reading
// collaborator. Values are already normalized to USD.
type Balance struct {
	ChainID  string  `json:"chain_id"`
	Symbol   string  `json:"symbol"`
	ValueUSD float64 `json:"value_usd"`
}

// TokenAllocation represents a single (chain, symbol) holding with its
// share of the portfolio and regional inflation exposure. Entries are
// never merged across chains.
type TokenAllocation struct {
	Symbol        string  `json:"symbol"`
	ChainID       string  `json:"chain_id"`
	Region        Region  `json:"region"`
	ValueUSD      float64 `json:"value_usd"`
	Percentage    float64 `json:"percentage"`
	InflationRate float64 `json:"inflation_rate"`
}

// RegionalExposure aggregates holdings by region, merging across chains
// and tokens. One entry exists per region present in the portfolio.
type RegionalExposure struct {
	Region           Region   `json:"region"`
	ValueUSD         float64  `json:"value_usd"`
	Percentage       float64  `json:"percentage"`
	AvgInflationRate float64  `json:"avg_inflation_rate"`
	Symbols          []string `json:"symbols"`
}

// RebalancingOpportunity is a suggested partial move from a higher- to a
// lower-inflation-exposed holding.
type RebalancingOpportunity struct {
	ID                 string    `json:"id"`
	FromSymbol         string    `json:"from_symbol"`
	ToSymbol           string    `json:"to_symbol"`
	FromRegion         Region    `json:"from_region"`
	ToRegion           Region    `json:"to_region"`
	SuggestedAmountUSD float64   `json:"suggested_amount_usd"`
	FromInflation      float64   `json:"from_inflation"`
	ToInflation        float64   `json:"to_inflation"`
	InflationDelta     float64   `json:"inflation_delta"`
	AnnualSavingsUSD   float64   `json:"annual_savings_usd"`
	Priority           RiskLevel `json:"priority"`
}

// TargetAllocation is a goal-based ideal allocation for one region,
// resolved to a representative symbol.
type TargetAllocation struct {
	Symbol           string  `json:"symbol"`
	Region           Region  `json:"region"`
	TargetPercentage float64 `json:"target_percentage"`
	Reason           Reason  `json:"reason"`
}

// ScoreBreakdown holds the per-factor components of a token score.
type ScoreBreakdown struct {
	Yield          float64 `json:"yield"`
	InflationHedge float64 `json:"inflation_hedge"`
	RealYield      float64 `json:"real_yield"`
	Performance    float64 `json:"performance"`
	RiskAdjusted   float64 `json:"risk_adjusted"`
}

// OpportunityCost records the best strictly-higher-APY alternative for a
// token, if one exists.
type OpportunityCost struct {
	AlternativeSymbol   string  `json:"alternative_symbol"`
	AlternativeAPY      float64 `json:"alternative_apy"`
	TokenAPY            float64 `json:"token_apy"`
	AnnualDifferenceUSD float64 `json:"annual_difference_usd"`
}

// TokenScore is the ranked scoring result for a single candidate symbol.
// Reasons are ordered, threshold-triggered codes; text rendering belongs
// to the presentation boundary.
type TokenScore struct {
	Symbol          string           `json:"symbol"`
	Total           float64          `json:"total"`
	Breakdown       ScoreBreakdown   `json:"breakdown"`
	Reasons         []Reason         `json:"reasons"`
	OpportunityCost *OpportunityCost `json:"opportunity_cost,omitempty"`
}

// ProjectionPath is a compounded purchasing-power trajectory at a fixed
// annual rate.
type ProjectionPath struct {
	AnnualRate     float64   `json:"annual_rate"`
	ValueAtHorizon float64   `json:"value_at_horizon"`
	YearlyValues   []float64 `json:"yearly_values"`
}

// Projection compares the current purchasing-power path against an
// optimized path over the analysis horizon.
type Projection struct {
	HorizonYears                int            `json:"horizon_years"`
	Current                     ProjectionPath `json:"current"`
	Optimized                   ProjectionPath `json:"optimized"`
	PurchasingPowerLostUSD      float64        `json:"purchasing_power_lost_usd"`
	PurchasingPowerPreservedUSD float64        `json:"purchasing_power_preserved_usd"`
}

// PortfolioAnalysis is the aggregate, immutable analysis snapshot. It is
// recomputed on demand from its inputs and owns no persistent state, so
// it deliberately carries no timestamp; persistence layers attach their
// own.
type PortfolioAnalysis struct {
	Goal                  Goal                     `json:"goal"`
	TotalValueUSD         float64                  `json:"total_value_usd"`
	TokenCount            int                      `json:"token_count"`
	RegionCount           int                      `json:"region_count"`
	Allocations           []TokenAllocation        `json:"allocations"`
	Exposures             []RegionalExposure       `json:"exposures"`
	WeightedInflationRisk float64                  `json:"weighted_inflation_risk"`
	DiversificationScore  float64                  `json:"diversification_score"`
	ConcentrationRisk     RiskLevel                `json:"concentration_risk"`
	MissingRegions        []Region                 `json:"missing_regions"`
	OverExposedRegions    []Region                 `json:"over_exposed_regions"`
	UnderExposedRegions   []Region                 `json:"under_exposed_regions"`
	Opportunities         []RebalancingOpportunity `json:"opportunities"`
	TargetAllocations     []TargetAllocation       `json:"target_allocations"`
	Projection            Projection               `json:"projection"`
}

// TourRecommendation suggests the next guided-tour section based on the
// analysis invariants alone.
type TourRecommendation struct {
	Section  string    `json:"section"`
	Reason   Reason    `json:"reason"`
	Priority RiskLevel `json:"priority"`
}
