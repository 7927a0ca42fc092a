package sim

import (
	"fmt"
	"math"
)

// Decision describes the slot a policy chose for one operation.
type Decision struct {
	Slot   Coord
	Cost   float64 // seconds added to the warehouse counters
	Reason string  // human-readable explanation
}

// Policy selects slots for storing and retrieving pallets. Implementations own
// no state beyond the warehouse they operate on.
//
// Place returns false when no acceptable free slot exists; Retrieve returns
// false when no pallet of the category is stored. Neither mutates the warehouse
// nor adds cost on failure.
type Policy interface {
	Name() string
	Place(p Pallet) (Decision, bool)
	Retrieve(c Category) (Decision, bool)
	Warehouse() *Warehouse
}

// Policy names.
const (
	PolicyFirstFit        = "first-fit"
	PolicyReverseFirstFit = "reverse-first-fit"
	PolicyNearestMiddle   = "nearest-middle"
	PolicyGlobalMinCost   = "global-min-cost"
	PolicyFillFromEnds    = "fill-from-ends"
)

// PolicyNames lists every policy in canonical order.
var PolicyNames = []string{
	PolicyFirstFit,
	PolicyReverseFirstFit,
	PolicyNearestMiddle,
	PolicyGlobalMinCost,
	PolicyFillFromEnds,
}

// validPolicies is shared by IsValidPolicy and NewPolicy.
var validPolicies = map[string]bool{
	PolicyFirstFit:        true,
	PolicyReverseFirstFit: true,
	PolicyNearestMiddle:   true,
	PolicyGlobalMinCost:   true,
	PolicyFillFromEnds:    true,
}

// IsValidPolicy returns true if name is a recognized policy.
func IsValidPolicy(name string) bool {
	return validPolicies[name]
}

// NewPolicy creates a policy by name operating on wh.
// Panics on unrecognized names.
func NewPolicy(name string, wh *Warehouse, cost CostModel) Policy {
	if !IsValidPolicy(name) {
		panic(fmt.Sprintf("unknown slotting policy %q", name))
	}
	base := slotter{wh: wh, cost: cost}
	switch name {
	case PolicyFirstFit:
		return &FirstFit{base}
	case PolicyReverseFirstFit:
		return &ReverseFirstFit{base}
	case PolicyNearestMiddle:
		return &NearestMiddle{base}
	case PolicyGlobalMinCost:
		return &GlobalMinCost{base}
	case PolicyFillFromEnds:
		return &FillFromEnds{base}
	default:
		panic(fmt.Sprintf("unhandled slotting policy %q", name))
	}
}

// slotter holds the warehouse and cost model shared by every policy, plus the
// search and commit primitives they are built from.
type slotter struct {
	wh   *Warehouse
	cost CostModel
}

func (s *slotter) Warehouse() *Warehouse { return s.wh }

// firstFree returns the first empty slot, in traversal order, whose level
// admits the category.
func (s *slotter) firstFree(order Order, lanes LaneOrder, c Category) (Coord, bool) {
	for at := range Enumerate(order, lanes) {
		if CanAccept(at.Level, c) && s.wh.At(at) == nil {
			return at, true
		}
	}
	return Coord{}, false
}

// firstMatch returns the first slot, in traversal order, holding a pallet of
// the category.
func (s *slotter) firstMatch(order Order, lanes LaneOrder, c Category) (Coord, bool) {
	for at := range Enumerate(order, lanes) {
		if p := s.wh.At(at); p != nil && p.Category == c {
			return at, true
		}
	}
	return Coord{}, false
}

// cheapestFree scans every acceptable empty slot and returns the one with the
// lowest store cost. Ties go to the first slot in ascending order.
func (s *slotter) cheapestFree(c Category) (Coord, float64, bool) {
	best, bestCost, found := Coord{}, math.Inf(1), false
	for at := range Enumerate(Ascending, LanesAscending) {
		if !CanAccept(at.Level, c) || s.wh.At(at) != nil {
			continue
		}
		if cost := s.cost.CostAt(at, Store); cost < bestCost {
			best, bestCost, found = at, cost, true
		}
	}
	return best, bestCost, found
}

// cheapestMatch scans every stored pallet of the category and returns the one
// with the lowest retrieve cost. Ties go to the first slot in ascending order.
func (s *slotter) cheapestMatch(c Category) (Coord, float64, bool) {
	best, bestCost, found := Coord{}, math.Inf(1), false
	for at := range Enumerate(Ascending, LanesAscending) {
		p := s.wh.At(at)
		if p == nil || p.Category != c {
			continue
		}
		if cost := s.cost.CostAt(at, Retrieve); cost < bestCost {
			best, bestCost, found = at, cost, true
		}
	}
	return best, bestCost, found
}

// store commits a placement chosen by a search primitive. A rejected slot at
// this point means the search handed back a coordinate it should not have,
// which is a bug rather than an operational condition.
func (s *slotter) store(at Coord, p Pallet, reason string) Decision {
	if err := s.wh.Occupy(at, p); err != nil {
		panic(fmt.Sprintf("policy chose unusable slot: %v", err))
	}
	cost := s.cost.CostAt(at, Store)
	s.wh.Times.Store += cost
	return Decision{Slot: at, Cost: cost, Reason: reason}
}

// take commits a retrieval chosen by a search primitive.
func (s *slotter) take(at Coord, reason string) Decision {
	if _, err := s.wh.Vacate(at); err != nil {
		panic(fmt.Sprintf("policy chose empty slot: %v", err))
	}
	cost := s.cost.CostAt(at, Retrieve)
	s.wh.Times.Retrieve += cost
	return Decision{Slot: at, Cost: cost, Reason: reason}
}

// FirstFit stores into the first acceptable free slot in ascending order and
// retrieves the first matching pallet scanning shelves in descending order.
// Within a shelf the lowest matching lane is taken, so on a shared shelf the
// pallet picked is decided by position, not by when it was stored.
type FirstFit struct {
	slotter
}

func (p *FirstFit) Name() string { return PolicyFirstFit }

// Place implements Policy for FirstFit.
func (p *FirstFit) Place(pallet Pallet) (Decision, bool) {
	at, ok := p.firstFree(Ascending, LanesAscending, pallet.Category)
	if !ok {
		return Decision{Reason: "no free slot"}, false
	}
	return p.store(at, pallet, "first-fit (ascending)"), true
}

// Retrieve implements Policy for FirstFit.
func (p *FirstFit) Retrieve(c Category) (Decision, bool) {
	at, ok := p.firstMatch(Descending, LanesAscending, c)
	if !ok {
		return Decision{Reason: "no matching pallet"}, false
	}
	return p.take(at, "first-fit (descending)"), true
}

// ReverseFirstFit stores into the first acceptable free slot scanning shelves
// in descending order and retrieves from the same end, preferring the highest
// matching lane of the first shelf that holds the category.
type ReverseFirstFit struct {
	slotter
}

func (p *ReverseFirstFit) Name() string { return PolicyReverseFirstFit }

// Place implements Policy for ReverseFirstFit.
func (p *ReverseFirstFit) Place(pallet Pallet) (Decision, bool) {
	at, ok := p.firstFree(Descending, LanesAscending, pallet.Category)
	if !ok {
		return Decision{Reason: "no free slot"}, false
	}
	return p.store(at, pallet, "reverse-first-fit (descending)"), true
}

// Retrieve implements Policy for ReverseFirstFit.
func (p *ReverseFirstFit) Retrieve(c Category) (Decision, bool) {
	at, ok := p.firstMatch(Descending, LanesDescending, c)
	if !ok {
		return Decision{Reason: "no matching pallet"}, false
	}
	return p.take(at, "reverse-first-fit (descending, last lane)"), true
}

// NearestMiddle fills outward from the middle bay and retrieves the matching
// pallet with the lowest retrieve cost.
type NearestMiddle struct {
	slotter
}

func (p *NearestMiddle) Name() string { return PolicyNearestMiddle }

// Place implements Policy for NearestMiddle.
func (p *NearestMiddle) Place(pallet Pallet) (Decision, bool) {
	at, ok := p.firstFree(FromMiddle, LanesAscending, pallet.Category)
	if !ok {
		return Decision{Reason: "no free slot"}, false
	}
	return p.store(at, pallet, "nearest-middle (zig-zag)"), true
}

// Retrieve implements Policy for NearestMiddle.
func (p *NearestMiddle) Retrieve(c Category) (Decision, bool) {
	at, _, ok := p.cheapestMatch(c)
	if !ok {
		return Decision{Reason: "no matching pallet"}, false
	}
	return p.take(at, "nearest-middle (min retrieve cost)"), true
}

// GlobalMinCost searches the whole grid on every operation and picks the slot
// with the lowest cost for the direction.
type GlobalMinCost struct {
	slotter
}

func (p *GlobalMinCost) Name() string { return PolicyGlobalMinCost }

// Place implements Policy for GlobalMinCost.
func (p *GlobalMinCost) Place(pallet Pallet) (Decision, bool) {
	at, _, ok := p.cheapestFree(pallet.Category)
	if !ok {
		return Decision{Reason: "no free slot"}, false
	}
	return p.store(at, pallet, "global-min-cost (min store cost)"), true
}

// Retrieve implements Policy for GlobalMinCost.
func (p *GlobalMinCost) Retrieve(c Category) (Decision, bool) {
	at, _, ok := p.cheapestMatch(c)
	if !ok {
		return Decision{Reason: "no matching pallet"}, false
	}
	return p.take(at, "global-min-cost (min retrieve cost)"), true
}

// FillFromEnds stores by alternating between the last and first bay and moving
// inward, scanning racks and levels from the top like ReverseFirstFit. It
// retrieves the matching pallet with the lowest retrieve cost.
type FillFromEnds struct {
	slotter
}

func (p *FillFromEnds) Name() string { return PolicyFillFromEnds }

// Place implements Policy for FillFromEnds.
func (p *FillFromEnds) Place(pallet Pallet) (Decision, bool) {
	at, ok := p.firstFree(FromEnds, LanesAscending, pallet.Category)
	if !ok {
		return Decision{Reason: "no free slot"}, false
	}
	return p.store(at, pallet, "fill-from-ends (alternating)"), true
}

// Retrieve implements Policy for FillFromEnds.
func (p *FillFromEnds) Retrieve(c Category) (Decision, bool) {
	at, _, ok := p.cheapestMatch(c)
	if !ok {
		return Decision{Reason: "no matching pallet"}, false
	}
	return p.take(at, "fill-from-ends (min retrieve cost)"), true
}
