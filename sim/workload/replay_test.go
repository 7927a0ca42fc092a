package workload

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rack-sim/rack-sim/sim"
	"github.com/rack-sim/rack-sim/sim/internal/testutil"
)

func date(d, m, y int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestInitialStock_PerCategoryDayBefore(t *testing.T) {
	stock := InitialStock(date(1, 3, 2023), DefaultStockPerCategory)

	require.Len(t, stock, 60)
	counts := make(map[sim.Category]int)
	for _, r := range stock {
		counts[r.Category]++
		assert.True(t, r.Date.Equal(date(28, 2, 2023)), "stock dated %v", r.Date)
	}
	for _, c := range sim.Categories {
		assert.Equal(t, 20, counts[c])
	}
	assert.Equal(t, sim.BottomOnly, stock[0].Category)
	assert.Equal(t, sim.Any, stock[59].Category)
}

func TestInitialStock_NonPositive_Empty(t *testing.T) {
	assert.Empty(t, InitialStock(date(1, 1, 2023), 0))
}

func TestEarliest(t *testing.T) {
	_, ok := Earliest(nil, nil)
	assert.False(t, ok)

	first, ok := Earliest(
		[]Record{{Date: date(5, 1, 2023)}, {Date: date(3, 1, 2023)}},
		[]Record{{Date: date(4, 1, 2023)}},
	)
	require.True(t, ok)
	assert.True(t, first.Equal(date(3, 1, 2023)))
}

func TestStream_Ordered_DateAscendingStoresFirst(t *testing.T) {
	// GIVEN stores and retrievals out of date order
	s := Stream{
		Stores: []Record{
			{Date: date(2, 1, 2023), Category: sim.Any},
			{Date: date(1, 1, 2023), Category: sim.TopOnly},
		},
		Retrievals: []Record{
			{Date: date(1, 1, 2023), Category: sim.TopOnly},
			{Date: date(2, 1, 2023), Category: sim.BottomOnly},
		},
		Stock: []Record{{Date: date(31, 12, 2022), Category: sim.BottomOnly}},
	}

	// WHEN ordered
	events := s.Ordered()

	// THEN stock, then day 1 store, day 1 retrieve, day 2 store, day 2 retrieve
	require.Len(t, events, 5)
	wantTypes := []sim.EventType{
		sim.EventTypeStore, sim.EventTypeStore, sim.EventTypeRetrieve, sim.EventTypeStore, sim.EventTypeRetrieve,
	}
	for i, ev := range events {
		assert.Equal(t, wantTypes[i], ev.Type(), "event %d", i)
		if i > 0 {
			assert.LessOrEqual(t, events[i-1].Timestamp(), ev.Timestamp())
		}
	}
	assert.Equal(t, sim.DayOf(date(31, 12, 2022)), events[0].Timestamp())
	assert.Equal(t, 3, s.Days())
}

func TestStream_Events_ReplayMatchesOrdered(t *testing.T) {
	s := Stream{
		Stock:      InitialStock(date(1, 1, 2023), 2),
		Stores:     []Record{{Date: date(1, 1, 2023), Category: sim.Any}, {Date: date(2, 1, 2023), Category: sim.BottomOnly}},
		Retrievals: []Record{{Date: date(1, 1, 2023), Category: sim.Any}, {Date: date(2, 1, 2023), Category: sim.TopOnly}},
	}

	replay := sim.NewSimulator(sim.NewPolicy(sim.PolicyFirstFit, sim.NewWarehouse(), sim.DefaultCostModel()), nil)
	replay.ScheduleAll(s.Events())
	var executed []int64
	for replay.EventQueue.Len() > 0 {
		executed = append(executed, replay.EventQueue.PopNext().EventID())
	}

	var ordered []int64
	for _, ev := range s.Ordered() {
		ordered = append(ordered, ev.EventID())
	}
	assert.Equal(t, ordered, executed)
}

func TestLoadStream_GeneratesStockBeforeFirstEvent(t *testing.T) {
	dir := t.TempDir()
	stores := testutil.WriteCSV(t, dir, "stores.csv", "03/01/2023,A", "05/01/2023,C")
	retrievals := testutil.WriteCSV(t, dir, "retrievals.csv", "02/01/2023,B")

	s, err := LoadStream(stores, retrievals, "", DefaultStockPerCategory)

	require.NoError(t, err)
	assert.Len(t, s.Stores, 2)
	assert.Len(t, s.Retrievals, 1)
	require.Len(t, s.Stock, 60)
	assert.True(t, s.Stock[0].Date.Equal(date(1, 1, 2023)))
}

func TestLoadStream_StockFile(t *testing.T) {
	dir := t.TempDir()
	stores := testutil.WriteCSV(t, dir, "stores.csv", "03/01/2023,A")
	retrievals := testutil.WriteCSV(t, dir, "retrievals.csv", "03/01/2023,A")
	stock := testutil.WriteCSV(t, dir, "stock.csv", testutil.Repeat("01/01/2023,C", 4)...)

	s, err := LoadStream(stores, retrievals, stock, DefaultStockPerCategory)

	require.NoError(t, err)
	assert.Len(t, s.Stock, 4)
}

func TestLoadStream_PropagatesErrors(t *testing.T) {
	dir := t.TempDir()
	good := testutil.WriteCSV(t, dir, "good.csv", "03/01/2023,A")
	bad := testutil.WriteCSV(t, dir, "bad.csv", "03/01/2023,Z")

	_, err := LoadStream(bad, good, "", 1)
	assert.ErrorIs(t, err, ErrMalformedRecord)
	_, err = LoadStream(good, bad, "", 1)
	assert.ErrorIs(t, err, ErrMalformedRecord)
	_, err = LoadStream(good, good, bad, 1)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}
