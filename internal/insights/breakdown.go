package insights

import (
	"sort"

	"github.com/angelmondragon/ecomlytics-backend/internal/dataset"
)

// TopBreakdown groups the dataset by the dimension, reduces by the metric,
// and returns the top n rows sorted descending. Requesting gross_profit on a
// dataset without cost data returns an empty result, not an error.
func TopBreakdown(ds *dataset.Dataset, by Dimension, metric Metric, n int) ([]BreakdownRow, error) {
	if _, err := ParseMetric(string(metric)); err != nil {
		return nil, err
	}
	if metric == MetricGrossProfit && (ds == nil || !ds.HasCost) {
		return []BreakdownRow{}, nil
	}
	if ds.Empty() {
		return []BreakdownRow{}, nil
	}

	values, keys := reduceByDimension(ds, by, metric)

	out := make([]BreakdownRow, 0, len(keys))
	for _, key := range keys {
		out = append(out, BreakdownRow{Key: key, Value: values[key]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// reduceByDimension aggregates one metric per dimension value. Keys are
// returned in first-seen order so downstream sorts stay deterministic for a
// given input order.
func reduceByDimension(ds *dataset.Dataset, by Dimension, metric Metric) (map[string]float64, []string) {
	derived := dataset.Derive(ds)

	values := make(map[string]float64)
	orderSets := make(map[string]map[string]struct{})
	var keys []string

	for _, row := range derived.Rows {
		key := dimensionKey(row, by)
		if _, seen := values[key]; !seen {
			values[key] = 0
			keys = append(keys, key)
		}
		switch metric {
		case MetricSales:
			values[key] += row.Sales
		case MetricUnits:
			values[key] += row.Quantity
		case MetricOrders:
			set, ok := orderSets[key]
			if !ok {
				set = make(map[string]struct{})
				orderSets[key] = set
			}
			set[row.OrderID] = struct{}{}
		case MetricGrossProfit:
			if row.GrossProfit.Valid {
				values[key] += row.GrossProfit.Float64
			}
		}
	}

	if metric == MetricOrders {
		for key, set := range orderSets {
			values[key] = float64(len(set))
		}
	}
	return values, keys
}

func dimensionKey(row dataset.Row, by Dimension) string {
	if by == DimensionChannel {
		return row.Channel
	}
	return row.SKU
}
