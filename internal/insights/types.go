package insights

import (
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/ecomlytics-backend/pkg/errors"
	"github.com/angelmondragon/ecomlytics-backend/pkg/types"
)

// Dimension is a grouping key for breakdowns, drivers, and decomposition.
type Dimension string

const (
	DimensionSKU     Dimension = "sku"
	DimensionChannel Dimension = "channel"
)

func ParseDimension(raw string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(DimensionSKU):
		return DimensionSKU, nil
	case string(DimensionChannel):
		return DimensionChannel, nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "dimension must be sku or channel").
			WithDetails(map[string]any{"dimension": raw})
	}
}

// Metric is the fixed set of reducible measures.
type Metric string

const (
	MetricSales       Metric = "sales"
	MetricUnits       Metric = "units"
	MetricOrders      Metric = "orders"
	MetricGrossProfit Metric = "gross_profit"
)

func ParseMetric(raw string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(MetricSales):
		return MetricSales, nil
	case string(MetricUnits):
		return MetricUnits, nil
	case string(MetricOrders):
		return MetricOrders, nil
	case string(MetricGrossProfit):
		return MetricGrossProfit, nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeUnsupportedMetric, "unsupported metric: "+raw).
			WithDetails(map[string]any{"metric": raw, "supported": []string{"sales", "units", "orders", "gross_profit"}})
	}
}

// BucketSize selects the rollup granularity.
type BucketSize string

const (
	BucketDaily  BucketSize = "daily"
	BucketWeekly BucketSize = "weekly"
)

func ParseBucketSize(raw string) (BucketSize, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(BucketDaily):
		return BucketDaily, nil
	case string(BucketWeekly):
		return BucketWeekly, nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "bucket must be daily or weekly").
			WithDetails(map[string]any{"bucket": raw})
	}
}

// Snapshot is the scalar KPI summary of one row slice. It is created fresh
// per aggregation call and never mutated.
type Snapshot struct {
	GMV         float64         `json:"gmv"`
	Orders      int             `json:"orders"`
	Units       float64         `json:"units"`
	AOV         float64         `json:"aov"`
	ASP         float64         `json:"asp"`
	GrossProfit types.NullFloat `json:"gross_profit"`
	GrossMargin types.NullFloat `json:"gross_margin"`
	ReturnRate  types.NullFloat `json:"return_rate"`
}

// HasProfit reports whether profit KPIs are available on this snapshot.
func (s Snapshot) HasProfit() bool {
	return s.GrossProfit.Valid
}

// DeltaRow is one metric of the two-window comparison, ordered by the fixed
// metric list.
type DeltaRow struct {
	Metric string  `json:"metric"`
	Prev   float64 `json:"prev"`
	Curr   float64 `json:"curr"`
	Delta  float64 `json:"delta"`
}

// DriverRow ranks one dimension value by its contribution to a metric delta.
type DriverRow struct {
	Key   string  `json:"key"`
	Prev  float64 `json:"prev"`
	Curr  float64 `json:"curr"`
	Delta float64 `json:"delta"`
}

// BreakdownRow is one ranked dimension value of a top-N breakdown.
type BreakdownRow struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// Component is one row of the price/volume/mix decomposition. Order is
// meaningful: GMV_prev, GMV_curr and Delta precede the attribution rows.
type Component struct {
	Name  string  `json:"component"`
	Value float64 `json:"value"`
}

// Bucket is one time-bucketed rollup row. GrossProfit and ReturnRate carry
// null when the source columns are absent.
type Bucket struct {
	Date        time.Time       `json:"date"`
	Sales       float64         `json:"sales"`
	Orders      int             `json:"orders"`
	Units       float64         `json:"units"`
	GrossProfit types.NullFloat `json:"gross_profit"`
	ReturnRate  types.NullFloat `json:"return_rate"`
}

// Window is an inclusive date range at date granularity.
type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}
