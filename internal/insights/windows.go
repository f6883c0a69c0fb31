package insights

import (
	"github.com/angelmondragon/ecomlytics-backend/internal/dataset"
)

// DefaultWindows derives a current/previous comparison pair from a dataset's
// date span: up to seven trailing days as the current window, the preceding
// stretch of equal length as the previous one, clamped to the span start.
func DefaultWindows(ds *dataset.Dataset) (curr, prev Window, ok bool) {
	min, max, ok := ds.DateRange()
	if !ok {
		return Window{}, Window{}, false
	}

	totalDays := int(max.Sub(min).Hours()/24) + 1
	win := totalDays / 2
	if win < 1 {
		win = 1
	}
	if win > 7 {
		win = 7
	}

	curr = Window{From: max.AddDate(0, 0, -(win - 1)), To: max}
	prevEnd := curr.From.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -(win - 1))
	if prevStart.Before(min) {
		prevStart = min
	}
	if prevEnd.Before(prevStart) {
		prevEnd = prevStart
	}
	prev = Window{From: prevStart, To: prevEnd}
	return curr, prev, true
}

// Days reports the inclusive day count of the window.
func (w Window) Days() int {
	return int(dataset.Midnight(w.To).Sub(dataset.Midnight(w.From)).Hours()/24) + 1
}
