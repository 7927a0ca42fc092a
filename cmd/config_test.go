package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rack-sim/rack-sim/sim"
)

func TestParseConfig_EmptyFile_Defaults(t *testing.T) {
	cfg, err := parseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfig_PartialCost_KeepsOtherDefaults(t *testing.T) {
	// GIVEN a config overriding only the forklift speed
	data := []byte("cost:\n  forklift_speed: 2.4\npolicies: [first-fit, global-min-cost]\nparallel: false\n")

	// WHEN parsed
	cfg, err := parseConfig(data)

	// THEN the override applies and the other constants keep their defaults
	require.NoError(t, err)
	assert.Equal(t, 2.4, cfg.Cost.ForkliftSpeed)
	assert.Equal(t, sim.DefaultCostModel().RackWidth, cfg.Cost.RackWidth)
	assert.Equal(t, []string{sim.PolicyFirstFit, sim.PolicyGlobalMinCost}, cfg.Policies)
	assert.False(t, cfg.Parallel)
	assert.Equal(t, 20, cfg.InitialStock.PerCategory)
}

func TestParseConfig_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown top-level key", "policy: first-fit\n"},
		{"unknown cost key", "cost:\n  speed: 1\n"},
		{"zero speed", "cost:\n  lift_speed: 0\n"},
		{"negative width", "cost:\n  rack_width: -3\n"},
		{"unknown policy", "policies: [first-fit, random]\n"},
		{"negative stock", "initial_stock:\n  per_category: -1\n"},
		{"malformed yaml", "cost: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := writeFile(t, t.TempDir(), "racksim.yaml", "initial_stock:\n  file: stock.csv\n  per_category: 5\n")

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "stock.csv", cfg.InitialStock.File)
	assert.Equal(t, 5, cfg.InitialStock.PerCategory)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/racksim.yaml")
	assert.Error(t, err)
}

// newFlagCommand returns a command carrying the replay flags, with every
// package-level flag variable reset to its default.
func newFlagCommand(t *testing.T) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	registerReplayFlags(c)
	c.Flags().StringSliceVar(&policyNames, "policies", nil, "")
	c.Flags().BoolVar(&parallel, "parallel", true, "")
	t.Cleanup(func() { registerReplayFlags(&cobra.Command{}) })
	return c
}

func TestResolveConfig_FlagsOverrideFile(t *testing.T) {
	// GIVEN a config file and explicitly set flags
	c := newFlagCommand(t)
	path := writeFile(t, t.TempDir(), "racksim.yaml",
		"cost:\n  forklift_speed: 2\n  lift_speed: 1\npolicies: [first-fit]\ninitial_stock:\n  per_category: 3\n")
	require.NoError(t, c.Flags().Set("config", path))
	require.NoError(t, c.Flags().Set("lift-speed", "0.25"))
	require.NoError(t, c.Flags().Set("policies", "nearest-middle,fill-from-ends"))
	require.NoError(t, c.Flags().Set("parallel", "false"))

	// WHEN resolved
	cfg, err := resolveConfig(c)

	// THEN set flags win, unset flags leave the file values alone
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Cost.ForkliftSpeed)
	assert.Equal(t, 0.25, cfg.Cost.LiftSpeed)
	assert.Equal(t, []string{sim.PolicyNearestMiddle, sim.PolicyFillFromEnds}, cfg.Policies)
	assert.Equal(t, 3, cfg.InitialStock.PerCategory)
	assert.False(t, cfg.Parallel)
}

func TestResolveConfig_InvalidFlagValue(t *testing.T) {
	c := newFlagCommand(t)
	require.NoError(t, c.Flags().Set("forklift-speed", "0"))
	_, err := resolveConfig(c)
	assert.Error(t, err)

	c = newFlagCommand(t)
	require.NoError(t, c.Flags().Set("policies", "nope"))
	_, err = resolveConfig(c)
	assert.Error(t, err)

	c = newFlagCommand(t)
	require.NoError(t, c.Flags().Set("trace-level", "decisions"))
	_, err = resolveConfig(c)
	assert.Error(t, err)
}
