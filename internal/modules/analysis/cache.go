package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync/atomic"

	"github.com/dgraph-io/ristretto"
	"github.com/hedgewise/hedgewise/internal/domain"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// CachedAnalyzer memoizes the stateless orchestrator. Caching lives in
// this wrapper and never inside the service itself, so the core stays
// referentially transparent and the wrapper can be dropped or replaced
// without touching it.
type CachedAnalyzer struct {
	inner Analyzer
	cache *ristretto.Cache
	log   zerolog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// CacheStats is a point-in-time hit/miss snapshot.
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// cacheKeyInput is the canonical, msgpack-encoded digest input. The
// dataset is flattened into a region-sorted slice so identical inputs
// always produce identical keys regardless of map iteration order.
type cacheKeyInput struct {
	Balances []domain.Balance `msgpack:"balances"`
	Dataset  []datasetEntry   `msgpack:"dataset"`
	Goal     string           `msgpack:"goal"`
}

type datasetEntry struct {
	Region      string                   `msgpack:"region"`
	AverageRate float64                  `msgpack:"average_rate"`
	Samples     []domain.InflationSample `msgpack:"samples"`
}

// NewCachedAnalyzer wraps an analyzer with a ristretto cache. maxCost
// bounds the number of retained analyses (each entry costs 1).
func NewCachedAnalyzer(inner Analyzer, maxCost int64, log zerolog.Logger) (*CachedAnalyzer, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxCost * 10,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &CachedAnalyzer{
		inner: inner,
		cache: cache,
		log:   log.With().Str("component", "analysis_cache").Logger(),
	}, nil
}

// Analyze returns a memoized analysis when the exact same inputs were
// seen before, recomputing otherwise.
func (c *CachedAnalyzer) Analyze(
	balances []domain.Balance,
	dataset domain.InflationDataset,
	goal domain.Goal,
) domain.PortfolioAnalysis {
	result, _ := c.AnalyzeCached(balances, dataset, goal)
	return result
}

// AnalyzeCached is Analyze plus a flag reporting whether this call was
// served from the cache. Callers needing per-request hit attribution use
// this instead of diffing the shared counters, which would misreport
// under concurrent requests.
func (c *CachedAnalyzer) AnalyzeCached(
	balances []domain.Balance,
	dataset domain.InflationDataset,
	goal domain.Goal,
) (domain.PortfolioAnalysis, bool) {
	key, err := cacheKey(balances, dataset, goal)
	if err != nil {
		// Digest failure just means no memoization for this call.
		c.log.Warn().Err(err).Msg("Failed to build cache key, bypassing cache")
		return c.inner.Analyze(balances, dataset, goal), false
	}

	if cached, ok := c.cache.Get(key); ok {
		if result, ok := cached.(domain.PortfolioAnalysis); ok {
			c.hits.Add(1)
			return result, true
		}
	}

	c.misses.Add(1)
	result := c.inner.Analyze(balances, dataset, goal)
	c.cache.Set(key, result, 1)
	return result, false
}

// Stats reports cumulative hits and misses.
func (c *CachedAnalyzer) Stats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}

// Wait blocks until buffered writes have been applied. Ristretto applies
// Set asynchronously, so callers needing read-your-write visibility on
// the next Analyze call go through here.
func (c *CachedAnalyzer) Wait() {
	c.cache.Wait()
}

// Clear drops every cached analysis. Used by the retention job after
// the inflation dataset refreshes.
func (c *CachedAnalyzer) Clear() {
	c.cache.Clear()
	c.log.Debug().Msg("Analysis cache cleared")
}

// cacheKey digests the full input set.
func cacheKey(balances []domain.Balance, dataset domain.InflationDataset, goal domain.Goal) (string, error) {
	normalized := make([]datasetEntry, 0, len(dataset))
	for region, entry := range dataset {
		normalized = append(normalized, datasetEntry{
			Region:      string(region),
			AverageRate: entry.AverageRate,
			Samples:     entry.Samples,
		})
	}
	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i].Region < normalized[j].Region
	})

	payload, err := msgpack.Marshal(cacheKeyInput{
		Balances: balances,
		Dataset:  normalized,
		Goal:     string(goal),
	})
	if err != nil {
		return "", err
	}

	digest := sha256.Sum256(payload)
	return hex.EncodeToString(digest[:]), nil
}
