// Package sim provides the warehouse model and the replay engine for rack-sim.
//
// # Reading Guide
//
// Start with these files to understand the model:
//   - warehouse.go: the fixed slot grid (rack → bay → shelf → lane) and its counters
//   - cost.go: round-trip travel time of a slot for a store or a retrieve
//   - policy.go: the five slotting policies and the search primitives they share
//   - simulator.go: the event loop that replays dated stores and retrievals
//
// # Architecture
//
// The sim package owns every type that touches warehouse state; sub-packages
// feed it or consume its results:
//   - sim/workload/: CSV loading, initial stock and event-stream assembly
//   - sim/compare/: runs several policies side by side and ranks them
//   - sim/trace/: per-operation decision recording
//
// # Key Interfaces
//
//   - Policy: choose a slot for a pallet, or a pallet to take out
//   - Event: one dated store or retrieve request
//
// A Warehouse is owned by exactly one Policy and one Simulator. Comparing
// policies means building one warehouse per policy; nothing is shared.
package sim
