package insights

import (
	"sort"

	"github.com/angelmondragon/ecomlytics-backend/internal/dataset"
)

// KPIDelta lines up two snapshots as an ordered delta table. Profit rows are
// appended only when both windows have profit data; a window without cost
// coverage must not surface a zero-profit delta.
func KPIDelta(curr, prev Snapshot) []DeltaRow {
	rows := []DeltaRow{
		{Metric: "GMV", Prev: prev.GMV, Curr: curr.GMV},
		{Metric: "ORDERS", Prev: float64(prev.Orders), Curr: float64(curr.Orders)},
		{Metric: "UNITS", Prev: prev.Units, Curr: curr.Units},
		{Metric: "AOV", Prev: prev.AOV, Curr: curr.AOV},
		{Metric: "ASP", Prev: prev.ASP, Curr: curr.ASP},
	}
	if curr.HasProfit() && prev.HasProfit() {
		rows = append(rows,
			DeltaRow{Metric: "GROSS_PROFIT", Prev: prev.GrossProfit.Float64, Curr: curr.GrossProfit.Float64},
			DeltaRow{Metric: "GROSS_MARGIN", Prev: prev.GrossMargin.Float64, Curr: curr.GrossMargin.Float64},
		)
	}
	for i := range rows {
		rows[i].Delta = rows[i].Curr - rows[i].Prev
	}
	return rows
}

// Drivers ranks dimension values by their metric delta between the two
// slices. A value absent from one window counts as zero activity there, so
// the head of the result surfaces gainers and the tail decliners.
func Drivers(curr, prev *dataset.Dataset, by Dimension, metric Metric, n int) ([]DriverRow, error) {
	if _, err := ParseMetric(string(metric)); err != nil {
		return nil, err
	}
	if metric == MetricGrossProfit {
		if curr == nil || prev == nil || !curr.HasCost || !prev.HasCost {
			return []DriverRow{}, nil
		}
	}

	currValues, currKeys := reduceByDimension(curr, by, metric)
	prevValues, prevKeys := reduceByDimension(prev, by, metric)

	keys := mergeKeys(currKeys, prevKeys)
	out := make([]DriverRow, 0, len(keys))
	for _, key := range keys {
		row := DriverRow{
			Key:  key,
			Curr: currValues[key],
			Prev: prevValues[key],
		}
		row.Delta = row.Curr - row.Prev
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Delta > out[j].Delta })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// mergeKeys unions the two key lists, current-window keys first, preserving
// first-seen order on both sides.
func mergeKeys(curr, prev []string) []string {
	seen := make(map[string]struct{}, len(curr)+len(prev))
	out := make([]string, 0, len(curr)+len(prev))
	for _, lists := range [][]string{curr, prev} {
		for _, key := range lists {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, key)
		}
	}
	return out
}
