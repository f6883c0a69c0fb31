package insights

import (
	"testing"
	"time"

	"github.com/angelmondragon/ecomlytics-backend/internal/dataset"
	"github.com/angelmondragon/ecomlytics-backend/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func costOf(v float64) types.NullFloat {
	return types.FloatFrom(v)
}

// threeLineDataset mirrors the canonical scenario: two orders on Jan 1 and
// one on Jan 2, all with cost data.
func threeLineDataset() *dataset.Dataset {
	return &dataset.Dataset{
		ID:      "test",
		HasCost: true,
		Rows: []dataset.Row{
			{OrderID: "1", OrderDate: day("2024-01-01"), Channel: "web", SKU: "A", Quantity: 2, UnitPrice: 10, UnitCost: costOf(4)},
			{OrderID: "2", OrderDate: day("2024-01-01"), Channel: "app", SKU: "B", Quantity: 1, UnitPrice: 20, UnitCost: costOf(8)},
			{OrderID: "3", OrderDate: day("2024-01-02"), Channel: "web", SKU: "A", Quantity: 1, UnitPrice: 10, UnitCost: costOf(4)},
		},
	}
}

func TestSummarizeThreeLineScenario(t *testing.T) {
	snap := Summarize(threeLineDataset())

	assert.Equal(t, 50.0, snap.GMV)
	assert.Equal(t, 3, snap.Orders)
	assert.Equal(t, 4.0, snap.Units)
	assert.InDelta(t, 16.6667, snap.AOV, 1e-3)
	assert.InDelta(t, 12.5, snap.ASP, 1e-9)
	// Line-level profit: 2*(10-4) + 1*(20-8) + 1*(10-4) = 30.
	require.True(t, snap.GrossProfit.Valid)
	assert.InDelta(t, 30.0, snap.GrossProfit.Float64, 1e-9)
	require.True(t, snap.GrossMargin.Valid)
	assert.InDelta(t, 0.6, snap.GrossMargin.Float64, 1e-9)
}

func TestSummarizeEmptySliceIsAllZeros(t *testing.T) {
	snap := Summarize(&dataset.Dataset{})

	assert.Equal(t, 0.0, snap.GMV)
	assert.Equal(t, 0, snap.Orders)
	assert.Equal(t, 0.0, snap.Units)
	assert.Equal(t, 0.0, snap.AOV)
	assert.Equal(t, 0.0, snap.ASP)
	assert.False(t, snap.GrossProfit.Valid)
	assert.False(t, snap.GrossMargin.Valid)
	assert.False(t, snap.ReturnRate.Valid)
}

func TestSummarizeNilDataset(t *testing.T) {
	snap := Summarize(nil)
	assert.Equal(t, Snapshot{}, snap)
}

func TestSummarizeWithoutCostColumn(t *testing.T) {
	ds := threeLineDataset()
	ds.HasCost = false
	for i := range ds.Rows {
		ds.Rows[i].UnitCost = types.NullFloat{}
	}

	snap := Summarize(ds)
	assert.Equal(t, 50.0, snap.GMV)
	assert.False(t, snap.GrossProfit.Valid)
	assert.False(t, snap.GrossMargin.Valid)
}

func TestSummarizeOrderSpanningMultipleLines(t *testing.T) {
	ds := &dataset.Dataset{Rows: []dataset.Row{
		{OrderID: "1", OrderDate: day("2024-01-01"), SKU: "A", Quantity: 1, UnitPrice: 10},
		{OrderID: "1", OrderDate: day("2024-01-01"), SKU: "B", Quantity: 1, UnitPrice: 15},
	}}

	snap := Summarize(ds)
	assert.Equal(t, 1, snap.Orders)
	assert.Equal(t, 25.0, snap.GMV)
	assert.Equal(t, 25.0, snap.AOV)
}

func TestSummarizeReturnRate(t *testing.T) {
	ds := &dataset.Dataset{HasReturns: true, Rows: []dataset.Row{
		{OrderID: "1", OrderDate: day("2024-01-01"), SKU: "A", Quantity: 1, UnitPrice: 10, Returned: 1},
		{OrderID: "2", OrderDate: day("2024-01-01"), SKU: "A", Quantity: 1, UnitPrice: 10},
		{OrderID: "3", OrderDate: day("2024-01-01"), SKU: "A", Quantity: 1, UnitPrice: 10},
		{OrderID: "4", OrderDate: day("2024-01-01"), SKU: "A", Quantity: 1, UnitPrice: 10, Returned: 1},
	}}

	snap := Summarize(ds)
	require.True(t, snap.ReturnRate.Valid)
	assert.InDelta(t, 0.5, snap.ReturnRate.Float64, 1e-9)
}

func TestSummarizeZeroPriceRowsKeepMarginAbsent(t *testing.T) {
	// GMV of zero must not divide; margin stays absent even with cost data.
	ds := &dataset.Dataset{HasCost: true, Rows: []dataset.Row{
		{OrderID: "1", OrderDate: day("2024-01-01"), SKU: "A", Quantity: 1, UnitPrice: 0, UnitCost: costOf(2)},
	}}

	snap := Summarize(ds)
	require.True(t, snap.GrossProfit.Valid)
	assert.InDelta(t, -2.0, snap.GrossProfit.Float64, 1e-9)
	assert.False(t, snap.GrossMargin.Valid)
}
