package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/ecomlytics-backend/pkg/errors"
	"github.com/angelmondragon/ecomlytics-backend/pkg/types"
	"github.com/google/uuid"
)

// NewSchemaError builds the ingestion rejection for missing required columns.
// The details always carry the full list so the caller can fix the upload in
// one pass.
func NewSchemaError(missing []string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeSchema, "missing required columns: "+strings.Join(missing, ", ")).
		WithDetails(map[string]any{"missing_columns": missing})
}

// LoadCSV validates and normalizes a raw orders CSV into a Dataset.
//
// Required columns must be present by exact (whitespace-trimmed) name.
// Optional columns are resolved through the prioritized matcher. Rows that
// fail date or numeric coercion are dropped, not repaired, as are rows with
// non-positive quantity or negative unit price.
func LoadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unable to read csv header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, NewSchemaError(missing)
	}

	costIdx, hasCostColumn := optionalIndex(header, index, costCandidates)
	returnedIdx, hasReturnedColumn := optionalIndex(header, index, returnedCandidates)
	pickIdx, hasPickColumn := optionalIndex(header, index, pickTimeCandidates)

	ds := &Dataset{
		ID:         uuid.NewString(),
		LoadedAt:   time.Now().UTC(),
		HasReturns: hasReturnedColumn,
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) && errors.Is(parseErr.Err, csv.ErrFieldCount) {
				ds.DroppedRows++
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed csv record")
		}

		orderDate, dateOK := parseDate(record[index["order_date"]])
		quantity, qtyOK := parseFloat(record[index["quantity"]])
		unitPrice, priceOK := parseFloat(record[index["unit_price"]])

		if !dateOK || !qtyOK || !priceOK || quantity <= 0 || unitPrice < 0 {
			ds.DroppedRows++
			continue
		}

		row := Row{
			OrderID:   strings.TrimSpace(record[index["order_id"]]),
			OrderDate: Midnight(orderDate),
			Channel:   strings.TrimSpace(record[index["channel"]]),
			SKU:       strings.TrimSpace(record[index["sku"]]),
			Quantity:  quantity,
			UnitPrice: unitPrice,
		}

		if hasCostColumn && costIdx < len(record) {
			if cost, ok := parseFloat(record[costIdx]); ok {
				row.UnitCost = types.FloatFrom(cost)
				ds.HasCost = true
			}
		}
		if hasReturnedColumn && returnedIdx < len(record) {
			if flag, ok := parseFloat(record[returnedIdx]); ok && flag != 0 {
				row.Returned = 1
			}
		}
		if hasPickColumn && pickIdx < len(record) {
			if secs, ok := parseFloat(record[pickIdx]); ok {
				row.PickTimeSec = types.FloatFrom(secs)
			}
		}

		ds.Rows = append(ds.Rows, row)
	}

	return ds, nil
}

func optionalIndex(header []string, index map[string]int, candidates []string) (int, bool) {
	name, ok := MatchColumn(header, candidates)
	if !ok {
		return 0, false
	}
	idx, ok := index[name]
	return idx, ok
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseFloat(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
