package insights

import (
	"sort"
	"time"

	"github.com/angelmondragon/ecomlytics-backend/internal/dataset"
)

// Thresholds of the daily anomaly check. The 2x-median rule is a placeholder
// heuristic with no statistical grounding.
// TODO: replace with a seasonality-aware detector once enough uploads carry
// multi-week history to estimate weekday baselines.
const (
	anomalyMinDays = 5
	anomalyRatio   = 2.0
)

// Anomaly is the result of the ratio-to-median check over daily GMV.
type Anomaly struct {
	Flagged bool       `json:"flagged"`
	Day     *time.Time `json:"day,omitempty"`
	Value   float64    `json:"value,omitempty"`
	Median  float64    `json:"median,omitempty"`
	Ratio   float64    `json:"ratio,omitempty"`
}

// DetectDailyAnomaly flags the peak GMV day when it exceeds twice the median
// of all days. Requires at least five distinct days and a positive median.
func DetectDailyAnomaly(ds *dataset.Dataset) Anomaly {
	series := TimeSeries(ds, BucketDaily)
	if len(series) < anomalyMinDays {
		return Anomaly{}
	}

	values := make([]float64, len(series))
	maxIdx := 0
	for i, b := range series {
		values[i] = b.Sales
		if b.Sales > series[maxIdx].Sales {
			maxIdx = i
		}
	}

	med := median(values)
	if med <= 0 {
		return Anomaly{}
	}

	ratio := series[maxIdx].Sales / med
	out := Anomaly{
		Value:  series[maxIdx].Sales,
		Median: med,
		Ratio:  ratio,
	}
	if ratio > anomalyRatio {
		day := series[maxIdx].Date
		out.Flagged = true
		out.Day = &day
	}
	return out
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
