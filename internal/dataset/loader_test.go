package dataset

import (
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/ecomlytics-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `order_id,order_date,channel,sku,quantity,unit_price,unit_cost,is_returned
1,2024-01-01,web,A,2,10,4,0
2,2024-01-01,app,B,1,20,8,0
3,2024-01-02,web,A,1,10,4,1
`

func TestLoadCSVParsesCanonicalFile(t *testing.T) {
	ds, err := LoadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	require.Len(t, ds.Rows, 3)
	assert.True(t, ds.HasCost)
	assert.True(t, ds.HasReturns)
	assert.Equal(t, 0, ds.DroppedRows)

	first := ds.Rows[0]
	assert.Equal(t, "1", first.OrderID)
	assert.Equal(t, "web", first.Channel)
	assert.Equal(t, "A", first.SKU)
	assert.Equal(t, 2.0, first.Quantity)
	assert.Equal(t, 10.0, first.UnitPrice)
	require.True(t, first.UnitCost.Valid)
	assert.Equal(t, 4.0, first.UnitCost.Float64)
	assert.Equal(t, 0, first.Returned)
	assert.Equal(t, 1, ds.Rows[2].Returned)
}

func TestLoadCSVMissingRequiredColumns(t *testing.T) {
	csvData := "order_id,order_date,channel,quantity\n1,2024-01-01,web,2\n"

	ds, err := LoadCSV(strings.NewReader(csvData))
	require.Nil(t, ds)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeSchema, typed.Code())

	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"sku", "unit_price"}, details["missing_columns"])
}

func TestLoadCSVDropsUnparseableAndInvalidRows(t *testing.T) {
	csvData := `order_id,order_date,channel,sku,quantity,unit_price
1,2024-01-01,web,A,2,10
2,not-a-date,web,A,2,10
3,2024-01-02,web,A,zero,10
4,2024-01-02,web,A,2,oops
5,2024-01-03,web,A,0,10
6,2024-01-03,web,A,-1,10
7,2024-01-04,web,A,1,-5
8,2024-01-05,web,A,1,0
`
	ds, err := LoadCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	// Rows 2-7 fail coercion or the positivity rules; row 8 (price 0) stays.
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, 6, ds.DroppedRows)
	assert.False(t, ds.HasCost)
	assert.False(t, ds.HasReturns)
}

func TestLoadCSVTrimsHeaderWhitespace(t *testing.T) {
	csvData := " order_id , order_date ,channel,sku,quantity,unit_price\n1,2024-01-01,web,A,1,5\n"

	ds, err := LoadCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)
}

func TestLoadCSVResolvesOptionalColumnsByCandidateName(t *testing.T) {
	csvData := "order_id,order_date,channel,sku,quantity,unit_price,COGS,return_flag\n1,2024-01-01,web,A,1,10,3,1\n"

	ds, err := LoadCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)
	assert.True(t, ds.HasCost)
	assert.True(t, ds.HasReturns)
	assert.Equal(t, 3.0, ds.Rows[0].UnitCost.Float64)
	assert.Equal(t, 1, ds.Rows[0].Returned)
}

func TestLoadCSVRaggedRowIsDropped(t *testing.T) {
	csvData := "order_id,order_date,channel,sku,quantity,unit_price\n1,2024-01-01,web,A,1,5\n2,2024-01-01,web\n3,2024-01-02,app,B,2,7\n"

	ds, err := LoadCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, 1, ds.DroppedRows)
}

func TestLoadCSVNormalizesDatesToMidnightUTC(t *testing.T) {
	csvData := "order_id,order_date,channel,sku,quantity,unit_price\n1,2024-03-05 14:30:00,web,A,1,5\n"

	ds, err := LoadCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)
	got := ds.Rows[0].OrderDate
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, "2024-03-05", got.Format("2006-01-02"))
}
