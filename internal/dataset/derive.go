package dataset

import "github.com/angelmondragon/ecomlytics-backend/pkg/types"

// Derive returns a copy of the dataset with line-level sales and gross profit
// filled in. Sales is always computed; gross profit only when the upload
// carried usable cost data, and stays absent (not zero) on rows whose cost
// failed to parse. Deriving an already-derived dataset is a no-op.
func Derive(d *Dataset) *Dataset {
	if d == nil {
		return nil
	}
	rows := make([]Row, len(d.Rows))
	copy(rows, d.Rows)
	for i := range rows {
		rows[i].Sales = rows[i].Quantity * rows[i].UnitPrice
		if d.HasCost && rows[i].UnitCost.Valid {
			rows[i].GrossProfit = types.FloatFrom(rows[i].Quantity * (rows[i].UnitPrice - rows[i].UnitCost.Float64))
		} else {
			rows[i].GrossProfit = types.NullFloat{}
		}
	}
	return d.withRows(rows)
}
