// Package trace provides per-operation decision recording for slotting policy analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Direction labels used in OperationRecord.
const (
	DirectionStore    = "store"
	DirectionRetrieve = "retrieve"
)

// SlotRef is a plain copy of a slot coordinate.
type SlotRef struct {
	Rack  int
	Bay   int
	Level int
	Lane  int
}

// OperationRecord captures a single store or retrieve decision.
type OperationRecord struct {
	Seq       int64  // operation index within the run, starting at 0
	Day       int64  // simulated day of the triggering event
	Direction string // DirectionStore or DirectionRetrieve
	Category  string
	OK        bool    // false when no slot or pallet was found
	Slot      SlotRef // zero value when !OK
	Cost      float64 // seconds; 0 when !OK
	Reason    string
}
