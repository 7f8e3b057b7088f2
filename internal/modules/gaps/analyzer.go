// Package gaps identifies missing, over-exposed and under-exposed
// regions relative to the fixed region universe.
package gaps

import (
	"github.com/hedgewise/hedgewise/internal/domain"
)

// Exposure thresholds in percent of portfolio value.
const (
	overExposedShare  = 50.0
	underExposedShare = 10.0
)

// Result holds the three gap lists. Slices are never nil so downstream
// consumers can range without checks.
type Result struct {
	MissingRegions      []domain.Region `json:"missing_regions"`
	OverExposedRegions  []domain.Region `json:"over_exposed_regions"`
	UnderExposedRegions []domain.Region `json:"under_exposed_regions"`
}

// Analyze compares regional exposures against the fixed six-region
// universe. Under-exposure requires actual value, so a true-zero region
// is reported as missing rather than under-exposed.
func Analyze(exposures []domain.RegionalExposure) Result {
	byRegion := make(map[domain.Region]domain.RegionalExposure, len(exposures))
	for _, e := range exposures {
		byRegion[e.Region] = e
	}

	result := Result{
		MissingRegions:      []domain.Region{},
		OverExposedRegions:  []domain.Region{},
		UnderExposedRegions: []domain.Region{},
	}

	for _, region := range domain.RegionUniverse {
		exposure, present := byRegion[region]
		if !present || exposure.ValueUSD <= 0 {
			result.MissingRegions = append(result.MissingRegions, region)
			continue
		}
		if exposure.Percentage > overExposedShare {
			result.OverExposedRegions = append(result.OverExposedRegions, region)
		}
		if exposure.Percentage < underExposedShare {
			result.UnderExposedRegions = append(result.UnderExposedRegions, region)
		}
	}

	return result
}
