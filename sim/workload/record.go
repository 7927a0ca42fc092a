// Package workload builds the event stream replayed by the simulator: it reads
// dated store and retrieve records from CSV, generates the initial stock and
// orders everything into sim events.
package workload

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rack-sim/rack-sim/sim"
)

// ErrMalformedRecord is returned for CSV rows that cannot be turned into a Record.
var ErrMalformedRecord = errors.New("malformed record")

// Record is one dated request for a pallet category.
type Record struct {
	Date     time.Time
	Category sim.Category
	Line     int // 1-based CSV line, 0 for generated records
}

// dateLayouts are the accepted day/month/year spellings.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02.01.2006",
	"2.1.2006",
	"02-01-2006",
	"2-1-2006",
}

// ParseDate parses a day/month/year date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q, want day/month/year", s)
}
