package sim

import (
	"errors"
	"fmt"
)

// Fixed grid dimensions.
const (
	RackCount     = 2
	BaysPerRack   = 10
	ShelvesPerBay = 4
	LanesPerShelf = 3

	// Capacity is the total number of pallet slots in the warehouse.
	Capacity = RackCount * BaysPerRack * ShelvesPerBay * LanesPerShelf
)

var (
	// ErrSlotRejected is returned by Occupy when the category is not allowed
	// on the shelf, the lane is out of range, or the lane is already taken.
	ErrSlotRejected = errors.New("slot rejected")
	// ErrSlotEmpty is returned by Vacate when the lane holds no pallet.
	ErrSlotEmpty = errors.New("slot empty")
)

// Coord addresses a single slot.
type Coord struct {
	Rack  int
	Bay   int
	Level int
	Lane  int
}

func (c Coord) String() string {
	return fmt.Sprintf("rack%d/bay%d/level%d/lane%d", c.Rack, c.Bay, c.Level, c.Lane)
}

// Valid reports whether every component is within the grid.
func (c Coord) Valid() bool {
	return c.Rack >= 0 && c.Rack < RackCount &&
		c.Bay >= 0 && c.Bay < BaysPerRack &&
		c.Level >= 0 && c.Level < ShelvesPerBay &&
		c.Lane >= 0 && c.Lane < LanesPerShelf
}

// Shelf is one level of a bay, holding up to LanesPerShelf pallets.
type Shelf struct {
	Level int
	lanes [LanesPerShelf]*Pallet
}

// CanAccept reports whether the shelf's level admits the category.
func (s *Shelf) CanAccept(c Category) bool {
	return CanAccept(s.Level, c)
}

// HasFreeLane reports whether any lane is empty.
func (s *Shelf) HasFreeLane() bool {
	return s.FirstFreeLane() >= 0
}

// FirstFreeLane returns the lowest empty lane index, or -1 if the shelf is full.
func (s *Shelf) FirstFreeLane() int {
	for i, p := range s.lanes {
		if p == nil {
			return i
		}
	}
	return -1
}

// At returns the pallet in the lane, or nil if the lane is empty or out of range.
func (s *Shelf) At(lane int) *Pallet {
	if lane < 0 || lane >= LanesPerShelf {
		return nil
	}
	return s.lanes[lane]
}

// Occupy stores the pallet in the lane.
func (s *Shelf) Occupy(lane int, p Pallet) error {
	if lane < 0 || lane >= LanesPerShelf {
		return fmt.Errorf("%w: lane %d out of range", ErrSlotRejected, lane)
	}
	if !s.CanAccept(p.Category) {
		return fmt.Errorf("%w: %s not allowed on level %d", ErrSlotRejected, p.Category, s.Level)
	}
	if s.lanes[lane] != nil {
		return fmt.Errorf("%w: lane %d occupied", ErrSlotRejected, lane)
	}
	s.lanes[lane] = &p
	return nil
}

// Vacate empties the lane and returns the pallet that was stored there.
func (s *Shelf) Vacate(lane int) (Pallet, error) {
	if lane < 0 || lane >= LanesPerShelf || s.lanes[lane] == nil {
		return Pallet{}, fmt.Errorf("%w: lane %d", ErrSlotEmpty, lane)
	}
	p := *s.lanes[lane]
	s.lanes[lane] = nil
	return p, nil
}

// Bay is a vertical section of a rack.
type Bay struct {
	Position int
	Shelves  [ShelvesPerBay]Shelf
}

// Rack is a run of bays.
type Rack struct {
	Index int
	Bays  [BaysPerRack]Bay
}

// Times holds the accumulated operation time of a warehouse, in seconds.
type Times struct {
	Store    float64
	Retrieve float64
}

// Total returns the combined store and retrieve time.
func (t Times) Total() float64 {
	return t.Store + t.Retrieve
}

// Warehouse owns the full slot grid and the operation-time counters. Each
// policy run uses its own Warehouse; nothing is shared between instances.
type Warehouse struct {
	Racks    [RackCount]Rack
	Times    Times
	occupied int
}

// NewWarehouse creates an empty warehouse with every level labelled.
func NewWarehouse() *Warehouse {
	w := &Warehouse{}
	for r := range w.Racks {
		w.Racks[r].Index = r
		for b := range w.Racks[r].Bays {
			w.Racks[r].Bays[b].Position = b
			for l := range w.Racks[r].Bays[b].Shelves {
				w.Racks[r].Bays[b].Shelves[l].Level = l
			}
		}
	}
	return w
}

// Shelf returns the shelf containing the coordinate. Lane is ignored.
func (w *Warehouse) Shelf(c Coord) *Shelf {
	return &w.Racks[c.Rack].Bays[c.Bay].Shelves[c.Level]
}

// At returns the pallet stored at the coordinate, or nil.
func (w *Warehouse) At(c Coord) *Pallet {
	if !c.Valid() {
		return nil
	}
	return w.Shelf(c).At(c.Lane)
}

// Occupy stores a pallet at the coordinate.
func (w *Warehouse) Occupy(c Coord, p Pallet) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %s out of range", ErrSlotRejected, c)
	}
	if err := w.Shelf(c).Occupy(c.Lane, p); err != nil {
		return fmt.Errorf("occupy %s: %w", c, err)
	}
	w.occupied++
	return nil
}

// Vacate removes and returns the pallet stored at the coordinate.
func (w *Warehouse) Vacate(c Coord) (Pallet, error) {
	if !c.Valid() {
		return Pallet{}, fmt.Errorf("%w: %s out of range", ErrSlotEmpty, c)
	}
	p, err := w.Shelf(c).Vacate(c.Lane)
	if err != nil {
		return Pallet{}, fmt.Errorf("vacate %s: %w", c, err)
	}
	w.occupied--
	return p, nil
}

// Occupied returns the number of filled slots.
func (w *Warehouse) Occupied() int {
	return w.occupied
}

// Occupancy summarises the stored pallets.
type Occupancy struct {
	ByCategory map[Category]int
	ByLevel    [ShelvesPerBay]int
}

// Occupancy counts stored pallets per category and per level.
func (w *Warehouse) Occupancy() Occupancy {
	occ := Occupancy{ByCategory: make(map[Category]int, len(Categories))}
	for c := range Enumerate(Ascending, LanesAscending) {
		if p := w.At(c); p != nil {
			occ.ByCategory[p.Category]++
			occ.ByLevel[c.Level]++
		}
	}
	return occ
}
