package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rack-sim/rack-sim/sim"
	"github.com/rack-sim/rack-sim/sim/workload"
)

// StockConfig describes the pallets present before the first recorded event.
type StockConfig struct {
	PerCategory int    `yaml:"per_category" validate:"gte=0"`
	File        string `yaml:"file"` // CSV with the same layout as the event files; wins over PerCategory
}

// Config is the --config file structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Cost         sim.CostModel `yaml:"cost"`
	Policies     []string      `yaml:"policies" validate:"dive,policy"`
	InitialStock StockConfig   `yaml:"initial_stock"`
	Parallel     bool          `yaml:"parallel"`
}

var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	_ = configValidate.RegisterValidation("policy", validatePolicyName)
}

// validatePolicyName accepts only names known to sim.NewPolicy.
func validatePolicyName(fl validator.FieldLevel) bool {
	return sim.IsValidPolicy(fl.Field().String())
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Cost:         sim.DefaultCostModel(),
		InitialStock: StockConfig{PerCategory: workload.DefaultStockPerCategory},
		Parallel:     true,
	}
}

// Validate checks every constraint declared on the config.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig reads a YAML config on top of DefaultConfig, so keys left out of
// the file keep their default values. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
