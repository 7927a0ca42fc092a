package workload

import (
	"time"

	"github.com/rack-sim/rack-sim/sim"
)

// DefaultStockPerCategory is the number of pallets of each category present
// before the first recorded event.
const DefaultStockPerCategory = 20

// InitialStock generates perCategory pallets of every category, dated the day
// before first. Records are grouped by category in canonical order.
func InitialStock(first time.Time, perCategory int) []Record {
	if perCategory <= 0 {
		return nil
	}
	date := first.AddDate(0, 0, -1)
	out := make([]Record, 0, perCategory*len(sim.Categories))
	for _, c := range sim.Categories {
		for i := 0; i < perCategory; i++ {
			out = append(out, Record{Date: date, Category: c})
		}
	}
	return out
}

// Earliest returns the earliest date across the record sets, and false if all
// are empty.
func Earliest(sets ...[]Record) (time.Time, bool) {
	var first time.Time
	found := false
	for _, set := range sets {
		for _, r := range set {
			if !found || r.Date.Before(first) {
				first, found = r.Date, true
			}
		}
	}
	return first, found
}
