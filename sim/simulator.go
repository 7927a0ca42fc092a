// sim/simulator.go
package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/rack-sim/rack-sim/sim/trace"
)

// Simulator replays store and retrieve events against one policy. It is the
// only writer of its warehouse; running several policies means running several
// simulators.
type Simulator struct {
	// Day is the simulated day of the event being executed.
	Day        int64
	EventQueue *EventHeap
	Policy     Policy
	Metrics    *Metrics
	// Trace records every operation when enabled; nil disables recording.
	Trace *trace.SimulationTrace
	seq   int64
}

// NewSimulator creates a simulator for the policy. tr may be nil.
func NewSimulator(policy Policy, tr *trace.SimulationTrace) *Simulator {
	return &Simulator{
		EventQueue: NewEventHeap(),
		Policy:     policy,
		Metrics:    NewMetrics(policy.Name()),
		Trace:      tr,
	}
}

// Schedule pushes an event into the replay queue.
func (sim *Simulator) Schedule(ev Event) {
	sim.EventQueue.Schedule(ev)
}

// ScheduleAll pushes every event into the replay queue.
func (sim *Simulator) ScheduleAll(events []Event) {
	for _, ev := range events {
		sim.EventQueue.Schedule(ev)
	}
}

// Run drains the event queue in day, type priority, ID order and returns the
// accumulated metrics.
func (sim *Simulator) Run() *Metrics {
	lastDay, seenDay := int64(0), false
	for sim.EventQueue.Len() > 0 {
		ev := sim.EventQueue.PopNext()
		sim.Day = ev.Timestamp()
		if !seenDay || sim.Day != lastDay {
			sim.Metrics.Days++
			lastDay, seenDay = sim.Day, true
		}
		ev.Execute(sim)
	}
	logrus.Infof("[%s] replay finished: %d stored, %d retrieved, %d failed stores, %d failed retrievals, total %.2fs",
		sim.Policy.Name(), sim.Metrics.Stored, sim.Metrics.Retrieved,
		sim.Metrics.FailedStores, sim.Metrics.FailedRetrievals, sim.Metrics.TotalTime())
	return sim.Metrics
}

// Store places a pallet through the policy and records the outcome. A failed
// placement drops the pallet and is not an error.
func (sim *Simulator) Store(p Pallet) bool {
	d, ok := sim.Policy.Place(p)
	if ok {
		sim.Metrics.Stored++
	} else {
		sim.Metrics.FailedStores++
		logrus.Debugf("[%s] day %d: cannot store %s pallet: %s", sim.Policy.Name(), sim.Day, p.Category, d.Reason)
	}
	sim.record(trace.DirectionStore, p.Category, d, ok)
	return ok
}

// Retrieve takes one pallet of the category through the policy and records the
// outcome. A failed retrieval is not an error.
func (sim *Simulator) Retrieve(c Category) bool {
	d, ok := sim.Policy.Retrieve(c)
	if ok {
		sim.Metrics.Retrieved++
	} else {
		sim.Metrics.FailedRetrievals++
		logrus.Debugf("[%s] day %d: cannot retrieve %s pallet: %s", sim.Policy.Name(), sim.Day, c, d.Reason)
	}
	sim.record(trace.DirectionRetrieve, c, d, ok)
	return ok
}

func (sim *Simulator) record(direction string, c Category, d Decision, ok bool) {
	wh := sim.Policy.Warehouse()
	sim.Metrics.observe(wh)
	if sim.Trace.Enabled() {
		rec := trace.OperationRecord{
			Seq:       sim.seq,
			Day:       sim.Day,
			Direction: direction,
			Category:  string(c),
			OK:        ok,
			Reason:    d.Reason,
		}
		if ok {
			rec.Slot = trace.SlotRef{Rack: d.Slot.Rack, Bay: d.Slot.Bay, Level: d.Slot.Level, Lane: d.Slot.Lane}
			rec.Cost = d.Cost
		}
		sim.Trace.RecordOperation(rec)
	}
	sim.seq++
}
