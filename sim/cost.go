package sim

// Direction tells the cost model which side of the rack run the forklift
// travels from.
type Direction int

const (
	// Store trips start at the input area in front of bay 0.
	Store Direction = iota
	// Retrieve trips start at the output area beyond the last bay.
	Retrieve
)

func (d Direction) String() string {
	if d == Retrieve {
		return "retrieve"
	}
	return "store"
}

// CostModel maps a slot and a direction to a round-trip time in seconds.
// Distances are in metres, speeds in metres per second. The rack index does not
// enter the formula: both racks are treated as equidistant from the I/O areas.
type CostModel struct {
	DistanceToAreas float64 `yaml:"distance_to_areas" validate:"gt=0"`
	RackWidth       float64 `yaml:"rack_width" validate:"gt=0"`
	PalletWidth     float64 `yaml:"pallet_width" validate:"gt=0"`
	ShelfHeight     float64 `yaml:"shelf_height" validate:"gt=0"`
	ForkliftSpeed   float64 `yaml:"forklift_speed" validate:"gt=0"`
	LiftSpeed       float64 `yaml:"lift_speed" validate:"gt=0"`
}

// DefaultCostModel returns the reference layout: 5 m to the I/O areas, 3 m bays,
// 0.8 m pallets, 1.8 m shelves, forklift at 1.2 m/s and lift at 0.5 m/s.
func DefaultCostModel() CostModel {
	return CostModel{
		DistanceToAreas: 5,
		RackWidth:       3,
		PalletWidth:     0.8,
		ShelfHeight:     1.8,
		ForkliftSpeed:   1.2,
		LiftSpeed:       0.5,
	}
}

// HorizontalDistance returns the one-way distance from the relevant I/O area to
// the centre of the lane.
func (m CostModel) HorizontalDistance(bay, lane int, dir Direction) float64 {
	if dir == Retrieve {
		bay = BaysPerRack - 1 - bay
		lane = LanesPerShelf - 1 - lane
	}
	return m.DistanceToAreas + float64(bay)*m.RackWidth + float64(lane)*m.PalletWidth + m.PalletWidth/2
}

// Cost returns the round-trip time for one operation at the slot.
func (m CostModel) Cost(bay, level, lane int, dir Direction) float64 {
	horizontal := 2 * m.HorizontalDistance(bay, lane, dir) / m.ForkliftSpeed
	vertical := float64(level) * m.ShelfHeight * 2 / m.LiftSpeed
	return horizontal + vertical
}

// CostAt is Cost for a coordinate.
func (m CostModel) CostAt(c Coord, dir Direction) float64 {
	return m.Cost(c.Bay, c.Level, c.Lane, dir)
}
