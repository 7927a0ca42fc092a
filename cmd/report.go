package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/rack-sim/rack-sim/sim"
	"github.com/rack-sim/rack-sim/sim/compare"
)

// ReportRow is one ranked policy in a comparison report.
type ReportRow struct {
	Rank int `json:"rank"`
	*sim.Metrics
	TotalTime  float64        `json:"total_time_s"`
	ByCategory map[string]int `json:"final_by_category"`
}

// Report is the JSON form of a comparison.
type Report struct {
	RunID       string             `json:"run_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Stores      string             `json:"stores"`
	Retrievals  string             `json:"retrievals"`
	Cost        map[string]float64 `json:"cost"`
	Results     []ReportRow        `json:"results"`
}

// NewReport builds a report with a fresh run ID.
func NewReport(storesPath, retrievalsPath string, cost sim.CostModel, results []compare.Result) Report {
	rows := make([]ReportRow, len(results))
	for i, r := range results {
		byCategory := make(map[string]int, len(sim.Categories))
		for _, c := range sim.Categories {
			byCategory[string(c)] = r.Occupancy.ByCategory[c]
		}
		rows[i] = ReportRow{
			Rank:       r.Rank,
			Metrics:    r.Metrics,
			TotalTime:  r.Metrics.TotalTime(),
			ByCategory: byCategory,
		}
	}
	return Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Stores:      storesPath,
		Retrievals:  retrievalsPath,
		Cost:        costJSON(cost),
		Results:     rows,
	}
}

func costJSON(m sim.CostModel) map[string]float64 {
	return map[string]float64{
		"distance_to_areas": m.DistanceToAreas,
		"rack_width":        m.RackWidth,
		"pallet_width":      m.PalletWidth,
		"shelf_height":      m.ShelfHeight,
		"forklift_speed":    m.ForkliftSpeed,
		"lift_speed":        m.LiftSpeed,
	}
}

// WriteJSON writes the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

var reportHeaders = []string{"Rank", "Policy", "Store (s)", "Retrieve (s)", "Total (s)", "Stored", "Failed stores", "Retrieved", "Failed retrievals", "Final occupancy"}

func reportRows(results []compare.Result) [][]string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		m := r.Metrics
		rows = append(rows, []string{
			fmt.Sprint(r.Rank),
			m.Policy,
			fmt.Sprintf("%.2f", m.StoreTime),
			fmt.Sprintf("%.2f", m.RetrieveTime),
			fmt.Sprintf("%.2f", m.TotalTime()),
			fmt.Sprint(m.Stored),
			fmt.Sprint(m.FailedStores),
			fmt.Sprint(m.Retrieved),
			fmt.Sprint(m.FailedRetrievals),
			fmt.Sprintf("%d/%d", m.FinalOccupancy, sim.Capacity),
		})
	}
	return rows
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	bestStyle   = cellStyle.Foreground(lipgloss.Color("42"))
)

// WriteTable renders the ranked results. Terminals get a bordered table; pipes
// and files get tab-separated values with a header line.
func WriteTable(w io.Writer, results []compare.Result) error {
	if !isTerminal(w) {
		return writeTSV(w, results)
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("241"))).
		Headers(reportHeaders...).
		Rows(reportRows(results)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == 0:
				return bestStyle
			default:
				return cellStyle
			}
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func writeTSV(w io.Writer, results []compare.Result) error {
	if _, err := fmt.Fprintln(w, strings.Join(reportHeaders, "\t")); err != nil {
		return err
	}
	for _, row := range reportRows(results) {
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// writeTraceSummary prints the placement histogram of a traced run.
func writeTraceSummary(w io.Writer, r compare.Result) {
	if r.Trace == nil {
		return
	}
	s := r.Summary
	_, _ = fmt.Fprintf(w, "--- %s decisions ---\n", r.Metrics.Policy)
	_, _ = fmt.Fprintf(w, "Operations          : %d\n", s.TotalOperations)
	_, _ = fmt.Fprintf(w, "Mean store cost     : %.2f s\n", s.MeanStoreCost)
	_, _ = fmt.Fprintf(w, "Mean retrieve cost  : %.2f s\n", s.MeanRetrieveCost)
	_, _ = fmt.Fprintf(w, "Max cost            : %.2f s\n", s.MaxCost)
	_, _ = fmt.Fprint(w, "Stores per bay      :")
	for bay := 0; bay < sim.BaysPerRack; bay++ {
		_, _ = fmt.Fprintf(w, " %d", s.BayDistribution[bay])
	}
	_, _ = fmt.Fprint(w, "\nStores per level    :")
	for level := 0; level < sim.ShelvesPerBay; level++ {
		_, _ = fmt.Fprintf(w, " %d", s.LevelDistribution[level])
	}
	_, _ = fmt.Fprintln(w)
}
