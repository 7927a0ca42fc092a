// Package compare runs several slotting policies over the same event stream and
// ranks them by total travel time.
//
// Every policy gets a fresh warehouse and simulator, so runs share no mutable
// state and may execute concurrently.
package compare

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rack-sim/rack-sim/sim"
	"github.com/rack-sim/rack-sim/sim/trace"
	"github.com/rack-sim/rack-sim/sim/workload"
)

// Options configures a comparison.
type Options struct {
	Policies   []string // empty means every policy in sim.PolicyNames
	Cost       sim.CostModel
	Parallel   bool
	TraceLevel trace.TraceLevel
}

// Result is the outcome of one policy run.
type Result struct {
	Rank      int // 1 = lowest total time
	Metrics   *sim.Metrics
	Occupancy sim.Occupancy
	Trace     *trace.SimulationTrace // nil unless tracing was requested
	Summary   *trace.TraceSummary
}

// Run replays the stream once per policy and returns the results ranked best
// to worst. Unknown policy names are rejected before anything runs.
func Run(ctx context.Context, stream workload.Stream, opts Options) ([]Result, error) {
	names := opts.Policies
	if len(names) == 0 {
		names = sim.PolicyNames
	}
	for _, name := range names {
		if !sim.IsValidPolicy(name) {
			return nil, fmt.Errorf("unknown slotting policy %q", name)
		}
	}

	results := make([]Result, len(names))
	g, gCtx := errgroup.WithContext(ctx)
	if opts.Parallel {
		g.SetLimit(runtime.NumCPU())
	} else {
		g.SetLimit(1)
	}
	for i, name := range names {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = RunPolicy(name, stream, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("comparing policies: %w", err)
	}

	Rank(results)
	logrus.Infof("compared %d policies, best: %s (%.2fs)", len(results),
		results[0].Metrics.Policy, results[0].Metrics.TotalTime())
	return results, nil
}

// RunPolicy replays the stream against a single policy on a fresh warehouse.
// Panics on unknown policy names.
func RunPolicy(name string, stream workload.Stream, opts Options) Result {
	var tr *trace.SimulationTrace
	if opts.TraceLevel == trace.TraceLevelOperations {
		tr = trace.NewSimulationTrace(trace.TraceConfig{Level: opts.TraceLevel})
	}
	wh := sim.NewWarehouse()
	s := sim.NewSimulator(sim.NewPolicy(name, wh, opts.Cost), tr)
	s.ScheduleAll(stream.Events())
	m := s.Run()
	return Result{
		Metrics:   m,
		Occupancy: wh.Occupancy(),
		Trace:     tr,
		Summary:   trace.Summarize(tr),
	}
}

// Rank sorts results by total time ascending and assigns ranks. Equal totals
// keep the canonical policy order.
func Rank(results []Result) {
	order := make(map[string]int, len(sim.PolicyNames))
	for i, name := range sim.PolicyNames {
		order[name] = i
	}
	sort.SliceStable(results, func(i, j int) bool {
		ti, tj := results[i].Metrics.TotalTime(), results[j].Metrics.TotalTime()
		if ti != tj {
			return ti < tj
		}
		return order[results[i].Metrics.Policy] < order[results[j].Metrics.Policy]
	})
	for i := range results {
		results[i].Rank = i + 1
	}
}
