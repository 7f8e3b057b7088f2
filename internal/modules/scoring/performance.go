package scoring

import (
	"strings"

	"github.com/hedgewise/hedgewise/internal/domain"
)

// StaticPerformanceProvider serves a compiled-in performance table. It
// is the default wiring; production deployments can swap in a live feed
// behind the same interface.
type StaticPerformanceProvider struct {
	table map[string]domain.TokenPerformance
}

// NewStaticPerformanceProvider creates the default static provider.
func NewStaticPerformanceProvider() *StaticPerformanceProvider {
	return &StaticPerformanceProvider{table: staticPerformanceTable()}
}

// Performance implements domain.PerformanceProvider. Lookups are
// case-insensitive; unknown symbols report ok=false.
func (p *StaticPerformanceProvider) Performance(symbol string) (domain.TokenPerformance, bool) {
	perf, ok := p.table[strings.ToUpper(strings.TrimSpace(symbol))]
	return perf, ok
}

// staticPerformanceTable holds the reference market profiles. Numbers
// are annualized percentages except CorrelationWithInflation.
func staticPerformanceTable() map[string]domain.TokenPerformance {
	entries := []domain.TokenPerformance{
		// US dollar pegs
		{Symbol: "USDC", APY: 0, YTDReturn: 0.1, Volatility: 0.3, SharpeRatio: 0.3, CorrelationWithInflation: 0},
		{Symbol: "USDT", APY: 0, YTDReturn: 0.1, Volatility: 0.4, SharpeRatio: 0.25, CorrelationWithInflation: 0},
		{Symbol: "DAI", APY: 5.0, YTDReturn: 4.8, Volatility: 0.6, SharpeRatio: 1.5, CorrelationWithInflation: 0.05, YieldBearing: true},
		{Symbol: "PYUSD", APY: 0, YTDReturn: 0.1, Volatility: 0.3, SharpeRatio: 0.3, CorrelationWithInflation: 0},
		{Symbol: "FDUSD", APY: 0, YTDReturn: 0.1, Volatility: 0.5, SharpeRatio: 0.2, CorrelationWithInflation: 0},

		// Euro pegs
		{Symbol: "EURC", APY: 0, YTDReturn: 1.8, Volatility: 6.0, SharpeRatio: 0.4, CorrelationWithInflation: 0.1},
		{Symbol: "EURS", APY: 0, YTDReturn: 1.6, Volatility: 6.2, SharpeRatio: 0.35, CorrelationWithInflation: 0.1},
		{Symbol: "EURT", APY: 0, YTDReturn: 1.5, Volatility: 6.5, SharpeRatio: 0.3, CorrelationWithInflation: 0.1},
		{Symbol: "AGEUR", APY: 2.5, YTDReturn: 3.9, Volatility: 6.8, SharpeRatio: 0.5, CorrelationWithInflation: 0.1, YieldBearing: true},

		// Latin American currency pegs
		{Symbol: "BRZ", APY: 0, YTDReturn: -4.2, Volatility: 12.0, SharpeRatio: -0.3, CorrelationWithInflation: 0.3},
		{Symbol: "MXNT", APY: 0, YTDReturn: 2.8, Volatility: 9.5, SharpeRatio: 0.2, CorrelationWithInflation: 0.25},
		{Symbol: "ARST", APY: 0, YTDReturn: -18.5, Volatility: 28.0, SharpeRatio: -0.8, CorrelationWithInflation: 0.5},

		// African currency pegs
		{Symbol: "CNGN", APY: 0, YTDReturn: -9.8, Volatility: 18.0, SharpeRatio: -0.6, CorrelationWithInflation: 0.4},
		{Symbol: "NGNT", APY: 0, YTDReturn: -10.2, Volatility: 19.0, SharpeRatio: -0.6, CorrelationWithInflation: 0.4},
		{Symbol: "ZARP", APY: 0, YTDReturn: 1.2, Volatility: 11.0, SharpeRatio: 0.1, CorrelationWithInflation: 0.3},
		{Symbol: "CKES", APY: 0, YTDReturn: -2.4, Volatility: 9.0, SharpeRatio: -0.2, CorrelationWithInflation: 0.3},

		// Asian currency pegs
		{Symbol: "XSGD", APY: 0, YTDReturn: 2.2, Volatility: 4.5, SharpeRatio: 0.4, CorrelationWithInflation: 0.1},
		{Symbol: "JPYC", APY: 0, YTDReturn: -6.5, Volatility: 8.0, SharpeRatio: -0.5, CorrelationWithInflation: 0.05},
		{Symbol: "IDRT", APY: 0, YTDReturn: -1.8, Volatility: 7.5, SharpeRatio: -0.2, CorrelationWithInflation: 0.2},
		{Symbol: "XIDR", APY: 0, YTDReturn: -2.0, Volatility: 7.8, SharpeRatio: -0.2, CorrelationWithInflation: 0.2},

		// Commodity pegs and tokenized treasuries
		{Symbol: "PAXG", APY: 0, YTDReturn: 12.4, Volatility: 14.0, SharpeRatio: 0.9, CorrelationWithInflation: 0.75, HardAsset: true},
		{Symbol: "XAUT", APY: 0, YTDReturn: 12.1, Volatility: 14.5, SharpeRatio: 0.85, CorrelationWithInflation: 0.72, HardAsset: true},
		{Symbol: "USDY", APY: 4.8, YTDReturn: 4.6, Volatility: 0.5, SharpeRatio: 1.8, CorrelationWithInflation: 0.1, YieldBearing: true},
		{Symbol: "OUSG", APY: 5.1, YTDReturn: 4.9, Volatility: 0.7, SharpeRatio: 1.7, CorrelationWithInflation: 0.08, YieldBearing: true},
		{Symbol: "BUIDL", APY: 5.0, YTDReturn: 4.7, Volatility: 0.5, SharpeRatio: 1.9, CorrelationWithInflation: 0.05, YieldBearing: true},
	}

	table := make(map[string]domain.TokenPerformance, len(entries))
	for _, entry := range entries {
		table[entry.Symbol] = entry
	}
	return table
}
