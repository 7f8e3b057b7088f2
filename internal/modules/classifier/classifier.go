// Package classifier maps asset symbols to canonical regions and
// supplies the fallback inflation rate used when a regional sample is
// missing. Pure lookup, no I/O.
package classifier

import (
	"sort"
	"strings"

	"github.com/hedgewise/hedgewise/internal/domain"
)

// FallbackInflationRate is used when a region has no inflation sample in
// the dataset, including everything classified as RegionUnknown.
const FallbackInflationRate = 3.0

// regionBySymbol is the canonical symbol -> region table. Keys are
// upper-case; lookups are case-insensitive.
var regionBySymbol = map[string]domain.Region{
	// US dollar pegs
	"USDC":  domain.RegionUSA,
	"USDT":  domain.RegionUSA,
	"DAI":   domain.RegionUSA,
	"PYUSD": domain.RegionUSA,
	"FDUSD": domain.RegionUSA,

	// Euro pegs
	"EURC":  domain.RegionEurope,
	"EURS":  domain.RegionEurope,
	"EURT":  domain.RegionEurope,
	"AGEUR": domain.RegionEurope,

	// Latin American currency pegs
	"BRZ":  domain.RegionLatAm,
	"MXNT": domain.RegionLatAm,
	"ARST": domain.RegionLatAm,

	// African currency pegs
	"CNGN": domain.RegionAfrica,
	"NGNT": domain.RegionAfrica,
	"ZARP": domain.RegionAfrica,
	"CKES": domain.RegionAfrica,

	// Asian currency pegs
	"XSGD": domain.RegionAsia,
	"JPYC": domain.RegionAsia,
	"IDRT": domain.RegionAsia,
	"XIDR": domain.RegionAsia,

	// Commodity pegs and tokenized RWAs with no single-currency exposure
	"PAXG":  domain.RegionGlobal,
	"XAUT":  domain.RegionGlobal,
	"USDY":  domain.RegionGlobal,
	"OUSG":  domain.RegionGlobal,
	"BUIDL": domain.RegionGlobal,
}

// RegionFor resolves a symbol to its canonical region. Unmapped symbols
// resolve to RegionUnknown, never an error.
func RegionFor(symbol string) domain.Region {
	if region, ok := regionBySymbol[strings.ToUpper(strings.TrimSpace(symbol))]; ok {
		return region
	}
	return domain.RegionUnknown
}

// InflationRateFor returns the average inflation rate for a region from
// the dataset, degrading to FallbackInflationRate when the region has no
// sample.
func InflationRateFor(region domain.Region, dataset domain.InflationDataset) float64 {
	if rate, ok := dataset.Rate(region); ok {
		return rate
	}
	return FallbackInflationRate
}

// KnownSymbols returns all symbols in the classification table for a
// given region, in deterministic order.
func KnownSymbols(region domain.Region) []string {
	var symbols []string
	for symbol, r := range regionBySymbol {
		if r == region {
			symbols = append(symbols, symbol)
		}
	}
	sort.Strings(symbols)
	return symbols
}
