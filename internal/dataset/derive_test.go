package dataset

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveComputesSalesAndProfit(t *testing.T) {
	ds, err := LoadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	derived := Derive(ds)
	require.Len(t, derived.Rows, 3)

	assert.Equal(t, 20.0, derived.Rows[0].Sales)
	require.True(t, derived.Rows[0].GrossProfit.Valid)
	assert.Equal(t, 12.0, derived.Rows[0].GrossProfit.Float64)

	assert.Equal(t, 20.0, derived.Rows[1].Sales)
	assert.Equal(t, 12.0, derived.Rows[1].GrossProfit.Float64)

	// Source dataset stays untouched.
	assert.Equal(t, 0.0, ds.Rows[0].Sales)
}

func TestDeriveWithoutCostLeavesProfitAbsent(t *testing.T) {
	csvData := "order_id,order_date,channel,sku,quantity,unit_price\n1,2024-01-01,web,A,2,10\n"
	ds, err := LoadCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	derived := Derive(ds)
	assert.Equal(t, 20.0, derived.Rows[0].Sales)
	assert.False(t, derived.Rows[0].GrossProfit.Valid)
}

func TestDeriveRowMissingCostStaysAbsent(t *testing.T) {
	csvData := "order_id,order_date,channel,sku,quantity,unit_price,unit_cost\n1,2024-01-01,web,A,2,10,4\n2,2024-01-01,web,B,1,5,\n"
	ds, err := LoadCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.True(t, ds.HasCost)

	derived := Derive(ds)
	assert.True(t, derived.Rows[0].GrossProfit.Valid)
	assert.False(t, derived.Rows[1].GrossProfit.Valid)
}

func TestDeriveIsIdempotent(t *testing.T) {
	ds, err := LoadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	once := Derive(ds)
	twice := Derive(once)
	require.Len(t, twice.Rows, len(once.Rows))
	for i := range once.Rows {
		assert.Equal(t, once.Rows[i].Sales, twice.Rows[i].Sales)
		assert.Equal(t, once.Rows[i].GrossProfit, twice.Rows[i].GrossProfit)
	}
}

func TestBetweenFiltersAtDateGranularity(t *testing.T) {
	ds := &Dataset{Rows: []Row{
		{OrderID: "1", OrderDate: day("2024-01-01")},
		{OrderID: "2", OrderDate: day("2024-01-02")},
		{OrderID: "3", OrderDate: day("2024-01-05")},
	}}

	got := ds.Between(day("2024-01-01"), day("2024-01-02"))
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "1", got.Rows[0].OrderID)
	assert.Equal(t, "2", got.Rows[1].OrderID)
}

func TestWithChannelsEmptyFilterKeepsAll(t *testing.T) {
	ds := &Dataset{Rows: []Row{{Channel: "web"}, {Channel: "app"}}}

	assert.Len(t, ds.WithChannels(nil).Rows, 2)
	assert.Len(t, ds.WithChannels([]string{"app"}).Rows, 1)
}

func TestProfileOf(t *testing.T) {
	ds, err := LoadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	p := ProfileOf(ds)
	assert.Equal(t, 3, p.Rows)
	assert.Equal(t, 3, p.Orders)
	assert.Equal(t, 2, p.SKUs)
	assert.Equal(t, 2, p.Channels)
	assert.True(t, p.HasCost)
	require.NotNil(t, p.DateMin)
	require.NotNil(t, p.DateMax)
	assert.Equal(t, "2024-01-01", p.DateMin.Format("2006-01-02"))
	assert.Equal(t, "2024-01-02", p.DateMax.Format("2006-01-02"))
}

func TestProfileOfAveragesPickTime(t *testing.T) {
	csvData := "order_id,order_date,channel,sku,quantity,unit_price,pick_time_sec\n" +
		"1,2024-01-01,web,A,1,10,30\n" +
		"2,2024-01-01,web,A,1,10,90\n" +
		"3,2024-01-02,web,B,1,10,\n"
	ds, err := LoadCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	p := ProfileOf(ds)
	require.True(t, p.AvgPickTimeSec.Valid)
	assert.Equal(t, 60.0, p.AvgPickTimeSec.Float64)
}

func TestProfileOfWithoutPickTimeColumn(t *testing.T) {
	ds, err := LoadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.False(t, ProfileOf(ds).AvgPickTimeSec.Valid)
}

func TestStoreSwapIsAtomicReplace(t *testing.T) {
	store := NewStore()
	assert.Nil(t, store.Current())

	first := &Dataset{ID: "first"}
	require.Nil(t, store.Swap(first))
	assert.Equal(t, "first", store.Current().ID)

	second := &Dataset{ID: "second"}
	prev := store.Swap(second)
	require.NotNil(t, prev)
	assert.Equal(t, "first", prev.ID)
	assert.Equal(t, "second", store.Current().ID)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}
