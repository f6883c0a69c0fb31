package insights

import (
	"testing"

	"github.com/angelmondragon/ecomlytics-backend/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spanDataset(from, to string) *dataset.Dataset {
	return &dataset.Dataset{Rows: []dataset.Row{
		{OrderID: "1", OrderDate: day(from), SKU: "A", Quantity: 1, UnitPrice: 1},
		{OrderID: "2", OrderDate: day(to), SKU: "A", Quantity: 1, UnitPrice: 1},
	}}
}

func TestDefaultWindowsLongSpanUsesSevenDays(t *testing.T) {
	curr, prev, ok := DefaultWindows(spanDataset("2024-01-01", "2024-01-31"))
	require.True(t, ok)

	assert.Equal(t, day("2024-01-25"), curr.From)
	assert.Equal(t, day("2024-01-31"), curr.To)
	assert.Equal(t, 7, curr.Days())

	assert.Equal(t, day("2024-01-18"), prev.From)
	assert.Equal(t, day("2024-01-24"), prev.To)
	assert.Equal(t, 7, prev.Days())
}

func TestDefaultWindowsShortSpanSplitsInHalf(t *testing.T) {
	curr, prev, ok := DefaultWindows(spanDataset("2024-01-01", "2024-01-04"))
	require.True(t, ok)

	assert.Equal(t, 2, curr.Days())
	assert.Equal(t, day("2024-01-03"), curr.From)
	assert.Equal(t, day("2024-01-01"), prev.From)
	assert.Equal(t, day("2024-01-02"), prev.To)
}

func TestDefaultWindowsSingleDayClampsPrevious(t *testing.T) {
	curr, prev, ok := DefaultWindows(spanDataset("2024-01-01", "2024-01-01"))
	require.True(t, ok)

	assert.Equal(t, curr.From, curr.To)
	// There is no day before the span; the previous window clamps to it.
	assert.Equal(t, day("2024-01-01"), prev.From)
	assert.Equal(t, day("2024-01-01"), prev.To)
}

func TestDefaultWindowsEmptyDataset(t *testing.T) {
	_, _, ok := DefaultWindows(&dataset.Dataset{})
	assert.False(t, ok)
}
