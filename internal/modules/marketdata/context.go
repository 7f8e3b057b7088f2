// Package marketdata builds MarketContext snapshots for the scoring
// engine, deriving gold momentum from price history and supplying
// documented defaults when no data is available.
package marketdata

import (
	"github.com/hedgewise/hedgewise/internal/domain"
	"github.com/markcheno/go-talib"
)

// Default macro snapshot used when the market-data collaborator is
// unavailable. Values are deliberately unremarkable: mid-cycle treasury
// yield, target-adjacent inflation, neutral policy.
const (
	DefaultTreasuryYield = 4.2
	DefaultInflationRate = 3.0
	DefaultGoldPrice     = 2300.0
	DefaultGoldYTD       = 8.0
	DefaultUSDIndex      = 103.0
)

// goldTrendPeriod is the SMA window used to judge gold momentum.
const goldTrendPeriod = 20

// DefaultContext returns the fallback market context.
func DefaultContext() domain.MarketContext {
	return domain.MarketContext{
		TreasuryYield: DefaultTreasuryYield,
		InflationRate: DefaultInflationRate,
		GoldPrice:     DefaultGoldPrice,
		GoldYTDChange: DefaultGoldYTD,
		USDIndex:      DefaultUSDIndex,
		PolicyStance:  domain.PolicyNeutral,
	}
}

// BuildContext assembles a market context from raw macro readings plus a
// gold daily close series. The series, when long enough, overrides the
// supplied year-to-date figure with a derived one.
func BuildContext(
	treasuryYield, inflationRate, usdIndex float64,
	stance domain.PolicyStance,
	goldCloses []float64,
) domain.MarketContext {
	ctx := DefaultContext()

	if treasuryYield > 0 {
		ctx.TreasuryYield = treasuryYield
	}
	if inflationRate != 0 {
		ctx.InflationRate = inflationRate
	}
	if usdIndex > 0 {
		ctx.USDIndex = usdIndex
	}
	if stance != "" {
		ctx.PolicyStance = stance
	}

	if len(goldCloses) > 0 {
		ctx.GoldPrice = goldCloses[len(goldCloses)-1]
		if ytd, ok := GoldYTDChange(goldCloses); ok {
			ctx.GoldYTDChange = ytd
		}
		if up, ok := GoldInUptrend(goldCloses); ok {
			ctx.GoldUptrend = &up
		}
	}

	return ctx
}

// GoldYTDChange derives the percent change across the close series via
// rate-of-change. Returns ok=false when the series is too short.
func GoldYTDChange(closes []float64) (float64, bool) {
	if len(closes) < 2 {
		return 0, false
	}

	roc := talib.Roc(closes, len(closes)-1)
	last := roc[len(roc)-1]
	if isNaN(last) {
		return 0, false
	}
	return last, true
}

// GoldInUptrend reports whether the latest close sits above its simple
// moving average. Used by callers to color momentum-dependent reasons;
// requires at least goldTrendPeriod closes.
func GoldInUptrend(closes []float64) (bool, bool) {
	if len(closes) < goldTrendPeriod {
		return false, false
	}

	sma := talib.Sma(closes, goldTrendPeriod)
	last := sma[len(sma)-1]
	if isNaN(last) {
		return false, false
	}
	return closes[len(closes)-1] > last, true
}

func isNaN(f float64) bool {
	return f != f
}
