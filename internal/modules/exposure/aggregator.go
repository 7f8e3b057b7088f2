// Package exposure turns raw per-chain balances into per-token
// allocations and per-region exposure summaries.
package exposure

import (
	"sort"

	"github.com/hedgewise/hedgewise/internal/domain"
	"github.com/hedgewise/hedgewise/internal/modules/classifier"
)

// Aggregate converts raw balances into token allocations and regional
// exposures. Token entries stay per (chain, symbol); region totals merge
// across chains and tokens. A zero-value portfolio yields empty slices,
// not an error.
func Aggregate(balances []domain.Balance, dataset domain.InflationDataset) ([]domain.TokenAllocation, []domain.RegionalExposure) {
	totalValue := 0.0
	for _, b := range balances {
		if b.ValueUSD > 0 {
			totalValue += b.ValueUSD
		}
	}
	if totalValue <= 0 {
		return nil, nil
	}

	allocations := make([]domain.TokenAllocation, 0, len(balances))
	for _, b := range balances {
		if b.ValueUSD <= 0 {
			continue
		}
		region := classifier.RegionFor(b.Symbol)
		allocations = append(allocations, domain.TokenAllocation{
			Symbol:        b.Symbol,
			ChainID:       b.ChainID,
			Region:        region,
			ValueUSD:      b.ValueUSD,
			Percentage:    b.ValueUSD / totalValue * 100,
			InflationRate: classifier.InflationRateFor(region, dataset),
		})
	}

	// Stable ordering: by value descending, then symbol, then chain.
	sort.SliceStable(allocations, func(i, j int) bool {
		if allocations[i].ValueUSD != allocations[j].ValueUSD {
			return allocations[i].ValueUSD > allocations[j].ValueUSD
		}
		if allocations[i].Symbol != allocations[j].Symbol {
			return allocations[i].Symbol < allocations[j].Symbol
		}
		return allocations[i].ChainID < allocations[j].ChainID
	})

	return allocations, buildExposures(allocations, totalValue)
}

// buildExposures merges token allocations into one exposure per region.
func buildExposures(allocations []domain.TokenAllocation, totalValue float64) []domain.RegionalExposure {
	type regionAccum struct {
		value   float64
		symbols map[string]bool
	}

	accums := make(map[domain.Region]*regionAccum)
	for _, alloc := range allocations {
		accum, ok := accums[alloc.Region]
		if !ok {
			accum = &regionAccum{symbols: make(map[string]bool)}
			accums[alloc.Region] = accum
		}
		accum.value += alloc.ValueUSD
		accum.symbols[alloc.Symbol] = true
	}

	exposures := make([]domain.RegionalExposure, 0, len(accums))
	for region, accum := range accums {
		symbols := make([]string, 0, len(accum.symbols))
		for symbol := range accum.symbols {
			symbols = append(symbols, symbol)
		}
		sort.Strings(symbols)

		exposures = append(exposures, domain.RegionalExposure{
			Region:           region,
			ValueUSD:         accum.value,
			Percentage:       accum.value / totalValue * 100,
			AvgInflationRate: regionAvgInflation(allocations, region),
			Symbols:          symbols,
		})
	}

	sort.SliceStable(exposures, func(i, j int) bool {
		if exposures[i].ValueUSD != exposures[j].ValueUSD {
			return exposures[i].ValueUSD > exposures[j].ValueUSD
		}
		return exposures[i].Region < exposures[j].Region
	})

	return exposures
}

// regionAvgInflation is the value-weighted inflation rate of a region's
// holdings.
func regionAvgInflation(allocations []domain.TokenAllocation, region domain.Region) float64 {
	var value, weighted float64
	for _, alloc := range allocations {
		if alloc.Region != region {
			continue
		}
		value += alloc.ValueUSD
		weighted += alloc.ValueUSD * alloc.InflationRate
	}
	if value <= 0 {
		return 0
	}
	return weighted / value
}
