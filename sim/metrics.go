// Tracks per-run operation counts, occupancy and accumulated travel time.

package sim

import (
	"fmt"
	"io"
)

// Metrics aggregates statistics about one policy run for final reporting.
type Metrics struct {
	Policy           string  `json:"policy"`
	Stored           int     `json:"stored"`            // successful placements
	Retrieved        int     `json:"retrieved"`         // successful retrievals
	FailedStores     int     `json:"failed_stores"`     // placements dropped for lack of a slot
	FailedRetrievals int     `json:"failed_retrievals"` // retrievals with no matching pallet
	PeakOccupancy    int     `json:"peak_occupancy"`
	FinalOccupancy   int     `json:"final_occupancy"`
	StoreTime        float64 `json:"store_time_s"`
	RetrieveTime     float64 `json:"retrieve_time_s"`
	Days             int     `json:"days"` // distinct days replayed
}

// NewMetrics creates empty metrics for the named policy.
func NewMetrics(policy string) *Metrics {
	return &Metrics{Policy: policy}
}

// TotalTime returns store plus retrieve time in seconds.
func (m *Metrics) TotalTime() float64 {
	return m.StoreTime + m.RetrieveTime
}

// observe copies the warehouse counters after an operation.
func (m *Metrics) observe(wh *Warehouse) {
	m.StoreTime = wh.Times.Store
	m.RetrieveTime = wh.Times.Retrieve
	m.FinalOccupancy = wh.Occupied()
	if m.FinalOccupancy > m.PeakOccupancy {
		m.PeakOccupancy = m.FinalOccupancy
	}
}

// Print writes a human-readable summary of the run.
func (m *Metrics) Print(w io.Writer) {
	_, _ = fmt.Fprintf(w, "=== %s ===\n", m.Policy)
	_, _ = fmt.Fprintf(w, "Days replayed        : %d\n", m.Days)
	_, _ = fmt.Fprintf(w, "Stored / failed      : %d / %d\n", m.Stored, m.FailedStores)
	_, _ = fmt.Fprintf(w, "Retrieved / failed   : %d / %d\n", m.Retrieved, m.FailedRetrievals)
	_, _ = fmt.Fprintf(w, "Occupancy peak/final : %d / %d of %d\n", m.PeakOccupancy, m.FinalOccupancy, Capacity)
	_, _ = fmt.Fprintf(w, "Store time           : %.2f s\n", m.StoreTime)
	_, _ = fmt.Fprintf(w, "Retrieve time        : %.2f s\n", m.RetrieveTime)
	_, _ = fmt.Fprintf(w, "Total time           : %.2f s\n", m.TotalTime())
}
