package domain

// TokenPerformance is the market performance profile for a single token.
// APY, YTDReturn and Volatility are percentages; CorrelationWithInflation
// is in [-1, 1].
type TokenPerformance struct {
	Symbol                   string  `json:"symbol"`
	APY                      float64 `json:"apy"`
	YTDReturn                float64 `json:"ytd_return"`
	Volatility               float64 `json:"volatility"`
	SharpeRatio              float64 `json:"sharpe_ratio"`
	CorrelationWithInflation float64 `json:"correlation_with_inflation"`
	YieldBearing             bool    `json:"yield_bearing"`
	HardAsset                bool    `json:"hard_asset"`
}

// PerformanceProvider supplies the current performance profile for a
// symbol. The scoring engine depends on this interface rather than a
// compiled-in table so callers can inject a live feed or a test double.
type PerformanceProvider interface {
	Performance(symbol string) (TokenPerformance, bool)
}
