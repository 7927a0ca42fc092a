package sim

import "iter"

// Order selects the sequence in which shelves are visited.
type Order int

const (
	// Ascending visits bays 0..9, racks 0..1, levels 0..3.
	Ascending Order = iota
	// Descending visits bays 9..0, racks 1..0, levels 3..0.
	Descending
	// FromMiddle starts at the middle bay and alternates outward
	// (5, 6, 4, 7, 3, ...), racks and levels ascending.
	FromMiddle
	// FromEnds alternates between the two extreme bays and moves inward
	// (9, 0, 8, 1, ...), racks and levels descending.
	FromEnds
)

func (o Order) String() string {
	switch o {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	case FromMiddle:
		return "from-middle"
	case FromEnds:
		return "from-ends"
	default:
		return "unknown"
	}
}

// LaneOrder selects the direction lanes are visited within a shelf.
type LaneOrder int

const (
	LanesAscending LaneOrder = iota
	LanesDescending
)

// Enumerate yields every slot coordinate exactly once in the given order. The
// sequence is finite and may be ranged over any number of times; it never
// reads or mutates warehouse state.
func Enumerate(order Order, lanes LaneOrder) iter.Seq[Coord] {
	bays := bayOrder(order)
	racks := ascending(RackCount)
	levels := ascending(ShelvesPerBay)
	if order == Descending || order == FromEnds {
		racks = descending(RackCount)
		levels = descending(ShelvesPerBay)
	}
	laneIdx := ascending(LanesPerShelf)
	if lanes == LanesDescending {
		laneIdx = descending(LanesPerShelf)
	}
	return func(yield func(Coord) bool) {
		for _, b := range bays {
			for _, r := range racks {
				for _, l := range levels {
					for _, ln := range laneIdx {
						if !yield(Coord{Rack: r, Bay: b, Level: l, Lane: ln}) {
							return
						}
					}
				}
			}
		}
	}
}

// bayOrder returns the bay visiting sequence for an order.
func bayOrder(order Order) []int {
	switch order {
	case Descending:
		return descending(BaysPerRack)
	case FromMiddle:
		mid := BaysPerRack / 2
		out := []int{mid}
		for off := 1; len(out) < BaysPerRack; off++ {
			if b := mid + off; b < BaysPerRack {
				out = append(out, b)
			}
			if b := mid - off; b >= 0 {
				out = append(out, b)
			}
		}
		return out
	case FromEnds:
		out := make([]int, 0, BaysPerRack)
		lo, hi := 0, BaysPerRack-1
		for lo <= hi {
			out = append(out, hi)
			if lo != hi {
				out = append(out, lo)
			}
			lo++
			hi--
		}
		return out
	default:
		return ascending(BaysPerRack)
	}
}

func ascending(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func descending(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = n - 1 - i
	}
	return out
}
