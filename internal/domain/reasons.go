package domain

// ReasonCode is a machine-readable explanation tag. Codes are tagged
// variants with parameters; rendering them into locale-specific text is
// a presentation concern and never happens inside the engine.
type ReasonCode string

const (
	// Scoring reasons, emitted in threshold order.
	ReasonTopYield           ReasonCode = "top_yield"
	ReasonInflationHedge     ReasonCode = "inflation_hedge"
	ReasonNegativeRealYield  ReasonCode = "negative_real_yield"
	ReasonHighRealYieldDrag  ReasonCode = "high_real_yield_drag"
	ReasonHawkishHeadwind    ReasonCode = "hawkish_headwind"
	ReasonPositiveRealYield  ReasonCode = "positive_real_yield"
	ReasonStrongRealYield    ReasonCode = "strong_real_yield"
	ReasonLowInflationRegime ReasonCode = "low_inflation_regime"
	ReasonGoalHardAssetFit   ReasonCode = "goal_hard_asset_fit"
	ReasonGoalYieldFit       ReasonCode = "goal_yield_fit"
	ReasonStrongPerformance  ReasonCode = "strong_performance"
	ReasonHighSharpe         ReasonCode = "high_sharpe"
	ReasonVolatilityPenalty  ReasonCode = "volatility_penalty"
	ReasonMomentumBonus      ReasonCode = "momentum_bonus"
	ReasonGoldMomentum       ReasonCode = "gold_momentum"

	// Target allocation reasons.
	ReasonRegionTarget ReasonCode = "region_target"

	// Guided tour reasons.
	ReasonHighConcentration  ReasonCode = "high_concentration"
	ReasonHighInflationRisk  ReasonCode = "high_inflation_risk"
	ReasonLowDiversification ReasonCode = "low_diversification"
	ReasonGoalIntro          ReasonCode = "goal_intro"
)

// Reason is a tagged reason variant: a code plus the parameters needed
// to render it at the presentation boundary.
type Reason struct {
	Code   ReasonCode     `json:"code"`
	Params map[string]any `json:"params,omitempty"`
}

// NewReason builds a reason with optional parameters. Params come in
// key/value pairs; a trailing unpaired key is dropped.
func NewReason(code ReasonCode, kv ...any) Reason {
	r := Reason{Code: code}
	if len(kv) >= 2 {
		r.Params = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			key, ok := kv[i].(string)
			if !ok {
				continue
			}
			r.Params[key] = kv[i+1]
		}
	}
	return r
}
