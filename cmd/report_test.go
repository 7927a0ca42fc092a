package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rack-sim/rack-sim/sim"
	"github.com/rack-sim/rack-sim/sim/compare"
)

func sampleResults() []compare.Result {
	results := []compare.Result{
		{Metrics: &sim.Metrics{Policy: sim.PolicyFirstFit, StoreTime: 30, RetrieveTime: 20, Stored: 4, FinalOccupancy: 2}},
		{Metrics: &sim.Metrics{Policy: sim.PolicyGlobalMinCost, StoreTime: 10, RetrieveTime: 15, Stored: 4, FailedRetrievals: 1}},
	}
	results[0].Occupancy.ByCategory = map[sim.Category]int{sim.Any: 2}
	compare.Rank(results)
	return results
}

func TestWriteTable_NonTerminal_TSV(t *testing.T) {
	// GIVEN ranked results and a non-terminal writer
	var buf bytes.Buffer

	// WHEN rendered
	require.NoError(t, WriteTable(&buf, sampleResults()))

	// THEN the output is a header plus one tab-separated row per policy, best first
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(reportHeaders, "\t"), lines[0])
	first := strings.Split(lines[1], "\t")
	assert.Equal(t, []string{"1", sim.PolicyGlobalMinCost, "10.00", "15.00", "25.00"}, first[:5])
	assert.Equal(t, "0/240", first[len(first)-1])
	assert.True(t, strings.HasPrefix(lines[2], "2\t"+sim.PolicyFirstFit+"\t"))
}

func TestReport_WriteJSON(t *testing.T) {
	// GIVEN a report over two ranked results
	report := NewReport("stores.csv", "retrievals.csv", sim.DefaultCostModel(), sampleResults())
	var buf bytes.Buffer

	// WHEN written as JSON
	require.NoError(t, report.WriteJSON(&buf))

	// THEN it carries a valid run ID, the cost model and flattened metrics
	var decoded struct {
		RunID   string             `json:"run_id"`
		Cost    map[string]float64 `json:"cost"`
		Results []struct {
			Rank       int            `json:"rank"`
			Policy     string         `json:"policy"`
			TotalTime  float64        `json:"total_time_s"`
			StoreTime  float64        `json:"store_time_s"`
			ByCategory map[string]int `json:"final_by_category"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	_, err := uuid.Parse(decoded.RunID)
	assert.NoError(t, err)
	assert.Equal(t, 1.2, decoded.Cost["forklift_speed"])
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, 1, decoded.Results[0].Rank)
	assert.Equal(t, sim.PolicyGlobalMinCost, decoded.Results[0].Policy)
	assert.Equal(t, 25.0, decoded.Results[0].TotalTime)
	assert.Equal(t, 2, decoded.Results[1].ByCategory["C"])
	assert.Equal(t, 0, decoded.Results[1].ByCategory["A"])
}

func TestNewReport_DistinctRunIDs(t *testing.T) {
	a := NewReport("", "", sim.DefaultCostModel(), nil)
	b := NewReport("", "", sim.DefaultCostModel(), nil)
	assert.NotEqual(t, a.RunID, b.RunID)
}
