package insights

import (
	"sort"
	"time"

	"github.com/angelmondragon/ecomlytics-backend/internal/dataset"
	"github.com/angelmondragon/ecomlytics-backend/pkg/types"
)

// TimeSeries resamples the dataset into per-bucket aggregate rows, ascending
// by bucket start. Only buckets with at least one source row appear; empty
// calendar gaps are not synthesized.
func TimeSeries(ds *dataset.Dataset, size BucketSize) []Bucket {
	if ds.Empty() {
		return []Bucket{}
	}

	derived := dataset.Derive(ds)

	type acc struct {
		sales      float64
		units      float64
		orders     map[string]struct{}
		profit     float64
		profitSeen bool
		returned   float64
		rows       int
	}

	byBucket := make(map[time.Time]*acc)
	for _, row := range derived.Rows {
		start := floorBucket(row.OrderDate, size)
		a, ok := byBucket[start]
		if !ok {
			a = &acc{orders: make(map[string]struct{})}
			byBucket[start] = a
		}
		a.sales += row.Sales
		a.units += row.Quantity
		a.orders[row.OrderID] = struct{}{}
		if row.GrossProfit.Valid {
			a.profit += row.GrossProfit.Float64
			a.profitSeen = true
		}
		a.returned += float64(row.Returned)
		a.rows++
	}

	out := make([]Bucket, 0, len(byBucket))
	for start, a := range byBucket {
		b := Bucket{
			Date:   start,
			Sales:  a.sales,
			Orders: len(a.orders),
			Units:  a.units,
		}
		if derived.HasCost && a.profitSeen {
			b.GrossProfit = types.FloatFrom(a.profit)
		}
		if derived.HasReturns {
			b.ReturnRate = types.FloatFrom(a.returned / float64(a.rows))
		}
		out = append(out, b)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// floorBucket floors a date to its bucket start: the day itself for daily,
// the preceding Monday for weekly.
func floorBucket(t time.Time, size BucketSize) time.Time {
	t = dataset.Midnight(t)
	if size != BucketWeekly {
		return t
	}
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
