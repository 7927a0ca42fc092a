package workload

import (
	"sort"

	"github.com/rack-sim/rack-sim/sim"
)

// Stream is the input of one replay: initial stock plus recorded stores and
// retrievals.
type Stream struct {
	Stock      []Record
	Stores     []Record
	Retrievals []Record
}

// Events converts the stream into simulator events. Stock is stored first,
// then recorded stores in file order, then retrievals in file order; event IDs
// follow that sequence so the simulator's day → type → ID ordering applies
// stores before retrievals on each day and keeps file order otherwise.
func (s Stream) Events() []sim.Event {
	events := make([]sim.Event, 0, len(s.Stock)+len(s.Stores)+len(s.Retrievals))
	var id int64
	for _, set := range [][]Record{s.Stock, s.Stores} {
		for _, r := range set {
			events = append(events, sim.NewStoreEvent(sim.DayOf(r.Date), sim.Pallet{Category: r.Category}, id))
			id++
		}
	}
	for _, r := range s.Retrievals {
		events = append(events, sim.NewRetrieveEvent(sim.DayOf(r.Date), r.Category, id))
		id++
	}
	return events
}

// Ordered returns the events in the order the simulator will execute them.
func (s Stream) Ordered() []sim.Event {
	events := s.Events()
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Timestamp() != b.Timestamp() {
			return a.Timestamp() < b.Timestamp()
		}
		pa, pb := sim.EventTypePriority[a.Type()], sim.EventTypePriority[b.Type()]
		if pa != pb {
			return pa < pb
		}
		return a.EventID() < b.EventID()
	})
	return events
}

// Days returns the distinct days in the stream.
func (s Stream) Days() int {
	days := make(map[int64]struct{})
	for _, set := range [][]Record{s.Stock, s.Stores, s.Retrievals} {
		for _, r := range set {
			days[sim.DayOf(r.Date)] = struct{}{}
		}
	}
	return len(days)
}

// LoadStream reads the store and retrieve files. When stockPath is empty the
// initial stock is generated with perCategory pallets of each category.
func LoadStream(storesPath, retrievalsPath, stockPath string, perCategory int) (Stream, error) {
	var s Stream
	var err error
	if s.Stores, err = LoadRecords(storesPath); err != nil {
		return Stream{}, err
	}
	if s.Retrievals, err = LoadRecords(retrievalsPath); err != nil {
		return Stream{}, err
	}
	if stockPath != "" {
		if s.Stock, err = LoadRecords(stockPath); err != nil {
			return Stream{}, err
		}
		return s, nil
	}
	if first, ok := Earliest(s.Stores, s.Retrievals); ok {
		s.Stock = InitialStock(first, perCategory)
	}
	return s, nil
}
