package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rack-sim/rack-sim/sim/trace"
)

func newTestSimulator(t *testing.T, policy string, tr *trace.SimulationTrace) *Simulator {
	t.Helper()
	return NewSimulator(NewPolicy(policy, NewWarehouse(), DefaultCostModel()), tr)
}

func TestSimulator_Run_StoresBeforeRetrievalsOnSameDay(t *testing.T) {
	// GIVEN a retrieval scheduled ahead of the store that satisfies it
	s := newTestSimulator(t, PolicyGlobalMinCost, nil)
	s.ScheduleAll([]Event{
		NewRetrieveEvent(1, BottomOnly, 0),
		NewStoreEvent(1, Pallet{Category: BottomOnly}, 1),
	})

	// WHEN the replay runs
	m := s.Run()

	// THEN the store ran first and the retrieval succeeded
	assert.Equal(t, 1, m.Stored)
	assert.Equal(t, 1, m.Retrieved)
	assert.Equal(t, 0, m.FailedRetrievals)
	assert.Equal(t, 0, m.FinalOccupancy)
	assert.Equal(t, 1, m.PeakOccupancy)
	assert.Equal(t, 1, m.Days)
}

func TestSimulator_Run_RetrievalBeforeStockFails(t *testing.T) {
	s := newTestSimulator(t, PolicyFirstFit, nil)
	s.ScheduleAll([]Event{
		NewRetrieveEvent(1, TopOnly, 0),
		NewStoreEvent(2, Pallet{Category: TopOnly}, 1),
	})

	m := s.Run()

	assert.Equal(t, 1, m.FailedRetrievals)
	assert.Equal(t, 0, m.Retrieved)
	assert.Equal(t, 1, m.Stored)
	assert.Equal(t, 0.0, m.RetrieveTime)
	assert.Equal(t, 2, m.Days)
}

func TestSimulator_Metrics_MatchWarehouseTimes(t *testing.T) {
	s := newTestSimulator(t, PolicyNearestMiddle, nil)
	var events []Event
	id := int64(0)
	for day := int64(0); day < 5; day++ {
		for _, c := range Categories {
			events = append(events, NewStoreEvent(day, Pallet{Category: c}, id))
			id++
		}
		events = append(events, NewRetrieveEvent(day, Any, id))
		id++
	}
	s.ScheduleAll(events)

	m := s.Run()

	wh := s.Policy.Warehouse()
	assert.Equal(t, wh.Times.Store, m.StoreTime)
	assert.Equal(t, wh.Times.Retrieve, m.RetrieveTime)
	assert.Equal(t, wh.Times.Total(), m.TotalTime())
	assert.Equal(t, 15, m.Stored)
	assert.Equal(t, 5, m.Retrieved)
	assert.Equal(t, 10, m.FinalOccupancy)
	assert.Equal(t, wh.Occupied(), m.FinalOccupancy)
}

func TestSimulator_Trace_RecordsEveryOperation(t *testing.T) {
	tr := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelOperations})
	s := newTestSimulator(t, PolicyGlobalMinCost, tr)
	s.ScheduleAll([]Event{
		NewStoreEvent(3, Pallet{Category: BottomOnly}, 0),
		NewRetrieveEvent(3, TopOnly, 1),
	})

	s.Run()

	require.Len(t, tr.Operations, 2)
	store := tr.Operations[0]
	assert.Equal(t, int64(0), store.Seq)
	assert.Equal(t, int64(3), store.Day)
	assert.Equal(t, trace.DirectionStore, store.Direction)
	assert.True(t, store.OK)
	assert.Equal(t, trace.SlotRef{Rack: 0, Bay: 0, Level: 0, Lane: 0}, store.Slot)
	assert.InDelta(t, 9.0, store.Cost, 1e-12)

	retrieve := tr.Operations[1]
	assert.Equal(t, trace.DirectionRetrieve, retrieve.Direction)
	assert.False(t, retrieve.OK)
	assert.Equal(t, 0.0, retrieve.Cost)
	assert.NotEmpty(t, retrieve.Reason)
}

func TestSimulator_Determinism_SameEventsSameResult(t *testing.T) {
	build := func() []Event {
		var events []Event
		id := int64(0)
		for day := int64(0); day < 30; day++ {
			for i := 0; i < 6; i++ {
				events = append(events, NewStoreEvent(day, Pallet{Category: Categories[(int(day)+i)%3]}, id))
				id++
			}
			for i := 0; i < 4; i++ {
				events = append(events, NewRetrieveEvent(day, Categories[(int(day)*i)%3], id))
				id++
			}
		}
		return events
	}
	for _, name := range PolicyNames {
		t.Run(name, func(t *testing.T) {
			s1 := newTestSimulator(t, name, nil)
			s1.ScheduleAll(build())
			m1 := s1.Run()

			s2 := newTestSimulator(t, name, nil)
			s2.ScheduleAll(build())
			m2 := s2.Run()

			assert.Equal(t, *m1, *m2)
			assert.Equal(t, s1.Policy.Warehouse().Racks, s2.Policy.Warehouse().Racks)
		})
	}
}
