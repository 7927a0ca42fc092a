package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rack-sim/rack-sim/sim"
	"github.com/rack-sim/rack-sim/sim/compare"
	"github.com/rack-sim/rack-sim/sim/trace"
	"github.com/rack-sim/rack-sim/sim/workload"
)

var (
	// Input files
	storesPath     string // CSV of dated store requests
	retrievalsPath string // CSV of dated retrieve requests
	stockPath      string // Optional CSV of pallets present before the first event
	stockPerCat    int    // Generated initial stock per category when no stock file is given

	// Run control
	configPath  string   // Optional YAML config
	logLevel    string   // Log verbosity level
	policyName  string   // Policy for `run`
	policyNames []string // Policies for `compare`
	parallel    bool     // Run compared policies concurrently
	traceLevel  string   // Decision trace verbosity
	metricsOut  string   // Prometheus text-format output path
	jsonOut     bool     // Print the report as JSON

	// Cost model overrides
	distanceToAreas float64
	rackWidth       float64
	palletWidth     float64
	shelfHeight     float64
	forkliftSpeed   float64
	liftSpeed       float64
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "rack-sim",
	Short: "Replay pallet traffic through a two-rack warehouse under different slotting policies",
}

// runCmd replays the event stream under a single policy
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay the stores and retrievals under one slotting policy",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if !sim.IsValidPolicy(policyName) {
			logrus.Fatalf("Unknown policy %q. Valid policies: %s", policyName, strings.Join(sim.PolicyNames, ", "))
		}
		cfg := mustResolveConfig(cmd)
		stream := mustLoadStream(cfg)

		logrus.Infof("Replaying %d stores and %d retrievals over %d days with policy %s",
			len(stream.Stores), len(stream.Retrievals), stream.Days(), policyName)
		result := compare.RunPolicy(policyName, stream, compareOptions(cfg, []string{policyName}))
		result.Rank = 1
		results := []compare.Result{result}

		out := cmd.OutOrStdout()
		if jsonOut {
			mustWriteJSON(out, cfg, results)
		} else {
			result.Metrics.Print(out)
			writeOccupancy(out, result.Occupancy)
			writeTraceSummary(out, result)
		}
		mustWriteMetrics(results)
		logrus.Info("Replay complete.")
	},
}

// compareCmd replays the event stream under every selected policy and ranks them
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Replay the stores and retrievals under several policies and rank them by total time",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := mustResolveConfig(cmd)
		stream := mustLoadStream(cfg)

		n := len(cfg.Policies)
		if n == 0 {
			n = len(sim.PolicyNames)
		}
		logrus.Infof("Comparing %d policies over %d stores and %d retrievals", n, len(stream.Stores), len(stream.Retrievals))
		results, err := compare.Run(cmd.Context(), stream, compareOptions(cfg, cfg.Policies))
		if err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}

		out := cmd.OutOrStdout()
		if jsonOut {
			mustWriteJSON(out, cfg, results)
		} else {
			if err := WriteTable(out, results); err != nil {
				logrus.Fatalf("Writing report: %v", err)
			}
			for _, r := range results {
				writeTraceSummary(out, r)
			}
		}
		mustWriteMetrics(results)
	},
}

// policiesCmd lists the available slotting policies
var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List the available slotting policies",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, name := range sim.PolicyNames {
			_, _ = fmt.Fprintf(out, "%-18s %s\n", name, policyDescriptions[name])
		}
	},
}

var policyDescriptions = map[string]string{
	sim.PolicyFirstFit:        "store in the first free slot from bay 0, retrieve from the far end",
	sim.PolicyReverseFirstFit: "store and retrieve from the far end, last lane first on retrieval",
	sim.PolicyNearestMiddle:   "fill outward from the middle bay, retrieve the cheapest match",
	sim.PolicyGlobalMinCost:   "pick the cheapest free slot and the cheapest matching pallet",
	sim.PolicyFillFromEnds:    "alternate between the outermost bays moving inward",
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveConfig loads --config (if any) and applies explicitly set flags on
// top of it.
func resolveConfig(cmd *cobra.Command) (Config, error) {
	cfg := DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = LoadConfig(configPath); err != nil {
			return Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("initial-stock") {
		cfg.InitialStock.File = stockPath
	}
	if flags.Changed("stock-per-category") {
		cfg.InitialStock.PerCategory = stockPerCat
	}
	if flags.Changed("policies") {
		cfg.Policies = policyNames
	}
	if flags.Changed("parallel") {
		cfg.Parallel = parallel
	}
	for name, dst := range map[string]*float64{
		"distance-to-areas": &cfg.Cost.DistanceToAreas,
		"rack-width":        &cfg.Cost.RackWidth,
		"pallet-width":      &cfg.Cost.PalletWidth,
		"shelf-height":      &cfg.Cost.ShelfHeight,
		"forklift-speed":    &cfg.Cost.ForkliftSpeed,
		"lift-speed":        &cfg.Cost.LiftSpeed,
	} {
		if flags.Changed(name) {
			v, _ := flags.GetFloat64(name)
			*dst = v
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if !trace.IsValidTraceLevel(traceLevel) {
		return Config{}, fmt.Errorf("unknown trace level %q", traceLevel)
	}
	return cfg, nil
}

func mustResolveConfig(cmd *cobra.Command) Config {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		logrus.Fatalf("Configuration error: %v", err)
	}
	logrus.Debugf("Cost model: %+v", cfg.Cost)
	return cfg
}

func mustLoadStream(cfg Config) workload.Stream {
	if storesPath == "" || retrievalsPath == "" {
		logrus.Fatalf("Both --stores and --retrievals are required")
	}
	stream, err := workload.LoadStream(storesPath, retrievalsPath, cfg.InitialStock.File, cfg.InitialStock.PerCategory)
	if err != nil {
		logrus.Fatalf("Loading events: %v", err)
	}
	if len(stream.Stores)+len(stream.Retrievals) == 0 {
		logrus.Warn("Event files are empty; only the initial stock will be stored")
	}
	return stream
}

func compareOptions(cfg Config, policies []string) compare.Options {
	return compare.Options{
		Policies:   policies,
		Cost:       cfg.Cost,
		Parallel:   cfg.Parallel,
		TraceLevel: trace.TraceLevel(traceLevel),
	}
}

func mustWriteJSON(w io.Writer, cfg Config, results []compare.Result) {
	report := NewReport(storesPath, retrievalsPath, cfg.Cost, results)
	if err := report.WriteJSON(w); err != nil {
		logrus.Fatalf("Writing report: %v", err)
	}
	logrus.Infof("Report %s written", report.RunID)
}

func mustWriteMetrics(results []compare.Result) {
	if metricsOut == "" {
		return
	}
	if err := compare.WriteMetrics(metricsOut, results); err != nil {
		logrus.Fatalf("%v", err)
	}
	logrus.Infof("Metrics written to %s", metricsOut)
}

func writeOccupancy(w io.Writer, occ sim.Occupancy) {
	_, _ = fmt.Fprint(w, "Final by category    :")
	for _, c := range sim.Categories {
		_, _ = fmt.Fprintf(w, " %s=%d", c, occ.ByCategory[c])
	}
	_, _ = fmt.Fprint(w, "\nFinal by level       :")
	for level, n := range occ.ByLevel {
		_, _ = fmt.Fprintf(w, " %d=%d", level, n)
	}
	_, _ = fmt.Fprintln(w)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerReplayFlags attaches the flags shared by run and compare.
func registerReplayFlags(cmd *cobra.Command) {
	def := sim.DefaultCostModel()
	flags := cmd.Flags()

	flags.StringVar(&storesPath, "stores", "", "CSV of store requests (date,category)")
	flags.StringVar(&retrievalsPath, "retrievals", "", "CSV of retrieve requests (date,category)")
	flags.StringVar(&stockPath, "initial-stock", "", "CSV of pallets present before the first event (overrides --stock-per-category)")
	flags.IntVar(&stockPerCat, "stock-per-category", workload.DefaultStockPerCategory, "Generated initial pallets per category")

	flags.StringVar(&configPath, "config", "", "YAML config file")
	flags.StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	flags.StringVar(&traceLevel, "trace-level", "none", "Decision trace level (none, operations); operations prints a placement summary")
	flags.StringVar(&metricsOut, "metrics-out", "", "Write Prometheus text-format metrics to this file")
	flags.BoolVar(&jsonOut, "json", false, "Print the report as JSON")

	flags.Float64Var(&distanceToAreas, "distance-to-areas", def.DistanceToAreas, "Distance from the I/O areas to the first/last bay (m)")
	flags.Float64Var(&rackWidth, "rack-width", def.RackWidth, "Width of one bay (m)")
	flags.Float64Var(&palletWidth, "pallet-width", def.PalletWidth, "Width of one lane (m)")
	flags.Float64Var(&shelfHeight, "shelf-height", def.ShelfHeight, "Height of one shelf level (m)")
	flags.Float64Var(&forkliftSpeed, "forklift-speed", def.ForkliftSpeed, "Horizontal forklift speed (m/s)")
	flags.Float64Var(&liftSpeed, "lift-speed", def.LiftSpeed, "Vertical lift speed (m/s)")
}

// init sets up CLI flags and subcommands
func init() {
	registerReplayFlags(runCmd)
	runCmd.Flags().StringVar(&policyName, "policy", sim.PolicyFirstFit, "Slotting policy ("+strings.Join(sim.PolicyNames, ", ")+")")

	registerReplayFlags(compareCmd)
	compareCmd.Flags().StringSliceVar(&policyNames, "policies", nil, "Comma-separated policies to compare (default all)")
	compareCmd.Flags().BoolVar(&parallel, "parallel", true, "Run policies concurrently")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(policiesCmd)
}
