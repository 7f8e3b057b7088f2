package domain

import "fmt"

// Goal selects which target-allocation table and opportunity-matching
// bias applies. The enum is closed; values outside it are a contract
// violation at the boundary and must fail fast.
type Goal string

const (
	GoalInflationProtection       Goal = "inflation_protection"
	GoalGeographicDiversification Goal = "geographic_diversification"
	GoalRWAAccess                 Goal = "rwa_access"
	GoalExploring                 Goal = "exploring"
)

// ParseGoal validates a raw goal string against the closed enum.
// Silently defaulting here would corrupt every downstream allocation
// table, so an unknown value is an error, not a fallback.
func ParseGoal(raw string) (Goal, error) {
	switch Goal(raw) {
	case GoalInflationProtection, GoalGeographicDiversification, GoalRWAAccess, GoalExploring:
		return Goal(raw), nil
	default:
		return "", fmt.Errorf("invalid goal: %q", raw)
	}
}

// RiskTolerance adjusts the risk-adjusted scoring factor.
type RiskTolerance string

const (
	RiskToleranceConservative RiskTolerance = "conservative"
	RiskToleranceBalanced     RiskTolerance = "balanced"
	RiskToleranceAggressive   RiskTolerance = "aggressive"
)

// ParseRiskTolerance validates a raw risk tolerance string against the
// closed enum.
func ParseRiskTolerance(raw string) (RiskTolerance, error) {
	switch RiskTolerance(raw) {
	case RiskToleranceConservative, RiskToleranceBalanced, RiskToleranceAggressive:
		return RiskTolerance(raw), nil
	default:
		return "", fmt.Errorf("invalid risk tolerance: %q", raw)
	}
}

// PolicyStance is the central-bank policy stance carried in the market
// context snapshot.
type PolicyStance string

const (
	PolicyHawkish PolicyStance = "hawkish"
	PolicyNeutral PolicyStance = "neutral"
	PolicyDovish  PolicyStance = "dovish"
)

// MarketContext is the macro snapshot consumed by the scoring engine.
// All fields are explicit inputs; scoring has no hidden clock or feed
// dependency beyond this struct.
type MarketContext struct {
	TreasuryYield float64      `json:"treasury_yield"`
	InflationRate float64      `json:"inflation_rate"`
	GoldPrice     float64      `json:"gold_price"`
	GoldYTDChange float64      `json:"gold_ytd_change"`
	// GoldUptrend is only set when a close series was available to judge
	// momentum; nil means unknown.
	GoldUptrend  *bool        `json:"gold_uptrend,omitempty"`
	USDIndex     float64      `json:"usd_index"`
	PolicyStance PolicyStance `json:"policy_stance"`
}

// RealYield returns the treasury yield net of inflation, the deciding
// variable between yield-bearing and non-yielding hedge assets.
func (m MarketContext) RealYield() float64 {
	return m.TreasuryYield - m.InflationRate
}

// UserContext carries the user-level inputs supplied by the calling
// layer.
type UserContext struct {
	RiskTolerance     RiskTolerance `json:"risk_tolerance"`
	Goal              Goal          `json:"goal"`
	TimeHorizonMonths int           `json:"time_horizon_months"`
	PortfolioValueUSD float64       `json:"portfolio_value_usd"`
}
