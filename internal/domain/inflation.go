package domain

// InflationSample is a single per-country inflation observation inside a
// regional bucket.
type InflationSample struct {
	Country string  `json:"country"`
	Rate    float64 `json:"rate"`
}

// RegionalInflation is the aggregated inflation picture for one region
// as supplied by the external multi-source inflation collaborator.
type RegionalInflation struct {
	AverageRate float64           `json:"average_rate"`
	Samples     []InflationSample `json:"samples"`
}

// InflationDataset maps regions to their inflation data. A missing
// region is not an error; lookups degrade to the classifier fallback.
type InflationDataset map[Region]RegionalInflation

// Rate returns the average inflation rate for a region and whether the
// dataset holds a sample for it.
func (d InflationDataset) Rate(region Region) (float64, bool) {
	ri, ok := d[region]
	if !ok {
		return 0, false
	}
	return ri.AverageRate, true
}
