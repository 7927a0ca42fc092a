package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalOperations   int
	Stores            int
	Retrievals        int
	FailedStores      int
	FailedRetrievals  int
	MeanStoreCost     float64
	MeanRetrieveCost  float64
	MaxCost           float64
	BayDistribution   map[int]int // bay → successful stores
	LevelDistribution map[int]int // level → successful stores
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		BayDistribution:   make(map[int]int),
		LevelDistribution: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalOperations = len(st.Operations)
	storeCost, retrieveCost := 0.0, 0.0
	for _, op := range st.Operations {
		switch op.Direction {
		case DirectionStore:
			if !op.OK {
				summary.FailedStores++
				continue
			}
			summary.Stores++
			storeCost += op.Cost
			summary.BayDistribution[op.Slot.Bay]++
			summary.LevelDistribution[op.Slot.Level]++
		case DirectionRetrieve:
			if !op.OK {
				summary.FailedRetrievals++
				continue
			}
			summary.Retrievals++
			retrieveCost += op.Cost
		}
		if op.Cost > summary.MaxCost {
			summary.MaxCost = op.Cost
		}
	}

	if summary.Stores > 0 {
		summary.MeanStoreCost = storeCost / float64(summary.Stores)
	}
	if summary.Retrievals > 0 {
		summary.MeanRetrieveCost = retrieveCost / float64(summary.Retrievals)
	}

	return summary
}
