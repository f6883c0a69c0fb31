package insights

import (
	"github.com/angelmondragon/ecomlytics-backend/internal/dataset"
	"github.com/angelmondragon/ecomlytics-backend/pkg/types"
)

// Summarize reduces a row slice to its KPI snapshot. Derived fields are
// recomputed here so the input needs no preparation. Empty input yields a
// zero-valued snapshot with absent profit fields, never an error.
func Summarize(ds *dataset.Dataset) Snapshot {
	var snap Snapshot
	if ds.Empty() {
		return snap
	}

	derived := dataset.Derive(ds)

	orderIDs := make(map[string]struct{})
	var profitSum float64
	var profitSeen bool
	var returnedSum float64

	for _, row := range derived.Rows {
		snap.GMV += row.Sales
		snap.Units += row.Quantity
		orderIDs[row.OrderID] = struct{}{}
		if row.GrossProfit.Valid {
			profitSum += row.GrossProfit.Float64
			profitSeen = true
		}
		returnedSum += float64(row.Returned)
	}
	snap.Orders = len(orderIDs)

	if snap.Orders > 0 {
		snap.AOV = snap.GMV / float64(snap.Orders)
	}
	if snap.Units > 0 {
		snap.ASP = snap.GMV / snap.Units
	}

	if profitSeen {
		snap.GrossProfit = types.FloatFrom(profitSum)
		if snap.GMV != 0 {
			snap.GrossMargin = types.FloatFrom(profitSum / snap.GMV)
		}
	}

	if derived.HasReturns {
		snap.ReturnRate = types.FloatFrom(returnedSum / float64(len(derived.Rows)))
	}

	return snap
}
