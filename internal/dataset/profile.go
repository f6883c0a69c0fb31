package dataset

import (
	"time"

	"github.com/angelmondragon/ecomlytics-backend/pkg/types"
)

// Profile summarizes a loaded snapshot for the dashboard landing view.
type Profile struct {
	DatasetID      string          `json:"dataset_id"`
	LoadedAt       time.Time       `json:"loaded_at"`
	Rows           int             `json:"rows"`
	Orders         int             `json:"orders"`
	SKUs           int             `json:"skus"`
	Channels       int             `json:"channels"`
	DateMin        *time.Time      `json:"date_min,omitempty"`
	DateMax        *time.Time      `json:"date_max,omitempty"`
	HasCost        bool            `json:"has_cost"`
	HasReturns     bool            `json:"has_returns"`
	AvgPickTimeSec types.NullFloat `json:"avg_pick_time_sec"`
	DroppedRows    int             `json:"dropped_rows"`
}

// ProfileOf computes distinct order/SKU/channel counts and the date span.
func ProfileOf(d *Dataset) Profile {
	p := Profile{}
	if d == nil {
		return p
	}
	p.DatasetID = d.ID
	p.LoadedAt = d.LoadedAt
	p.Rows = len(d.Rows)
	p.HasCost = d.HasCost
	p.HasReturns = d.HasReturns
	p.DroppedRows = d.DroppedRows

	orders := make(map[string]struct{})
	skus := make(map[string]struct{})
	channels := make(map[string]struct{})
	var pickSum float64
	var pickCount int
	for _, row := range d.Rows {
		orders[row.OrderID] = struct{}{}
		skus[row.SKU] = struct{}{}
		channels[row.Channel] = struct{}{}
		if row.PickTimeSec.Valid {
			pickSum += row.PickTimeSec.Float64
			pickCount++
		}
	}
	p.Orders = len(orders)
	p.SKUs = len(skus)
	p.Channels = len(channels)
	if pickCount > 0 {
		p.AvgPickTimeSec = types.FloatFrom(pickSum / float64(pickCount))
	}

	if min, max, ok := d.DateRange(); ok {
		p.DateMin = &min
		p.DateMax = &max
	}
	return p
}
