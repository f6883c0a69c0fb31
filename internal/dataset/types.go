package dataset

import (
	"time"

	"github.com/angelmondragon/ecomlytics-backend/pkg/types"
)

// Row is one canonical order line. OrderID is not unique across rows: an
// order may span multiple SKU lines, so order counts are always distinct
// counts of OrderID, never row counts.
type Row struct {
	OrderID   string
	OrderDate time.Time
	Channel   string
	SKU       string
	Quantity  float64
	UnitPrice float64

	UnitCost    types.NullFloat
	Returned    int
	PickTimeSec types.NullFloat

	// Derived by Derive; zero until then.
	Sales       float64
	GrossProfit types.NullFloat
}

// Dataset is an immutable snapshot of a validated upload. Callers must not
// mutate Rows after construction; the store hands the same slice to every
// reader.
type Dataset struct {
	ID       string
	LoadedAt time.Time
	Rows     []Row

	// HasCost is true when the upload carried a unit_cost column with at
	// least one parseable value. Profit KPIs are absent otherwise.
	HasCost bool
	// HasReturns is true when a return-flag column was present.
	HasReturns bool

	DroppedRows int
}

// Empty reports whether the snapshot holds no usable rows.
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Rows) == 0
}

// Between returns a shallow copy restricted to rows whose order date falls
// inside [from, to] at date granularity.
func (d *Dataset) Between(from, to time.Time) *Dataset {
	if d == nil {
		return nil
	}
	from = Midnight(from)
	to = Midnight(to)
	out := d.withRows(make([]Row, 0, len(d.Rows)))
	for _, row := range d.Rows {
		if row.OrderDate.Before(from) || row.OrderDate.After(to) {
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// WithChannels returns a shallow copy restricted to the given channels.
// An empty filter keeps every row.
func (d *Dataset) WithChannels(channels []string) *Dataset {
	if d == nil || len(channels) == 0 {
		return d
	}
	keep := make(map[string]struct{}, len(channels))
	for _, ch := range channels {
		keep[ch] = struct{}{}
	}
	out := d.withRows(make([]Row, 0, len(d.Rows)))
	for _, row := range d.Rows {
		if _, ok := keep[row.Channel]; ok {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// DateRange returns the min and max order dates, ok=false for empty data.
func (d *Dataset) DateRange() (min, max time.Time, ok bool) {
	if d.Empty() {
		return time.Time{}, time.Time{}, false
	}
	min, max = d.Rows[0].OrderDate, d.Rows[0].OrderDate
	for _, row := range d.Rows[1:] {
		if row.OrderDate.Before(min) {
			min = row.OrderDate
		}
		if row.OrderDate.After(max) {
			max = row.OrderDate
		}
	}
	return min, max, true
}

func (d *Dataset) withRows(rows []Row) *Dataset {
	out := *d
	out.Rows = rows
	return &out
}

// Midnight floors a timestamp to date granularity in UTC.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
