package keel

import (
	"fmt"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/lodehart/keel/gjk"
)

// Config carries the runtime settings of the narrow phase.
type Config struct {
	Tuning  gjk.Tuning `yaml:"tuning"`
	Workers int        `yaml:"workers"`
}

func DefaultConfig() Config {
	return Config{
		Tuning:  gjk.DefaultTuning(),
		Workers: runtime.NumCPU(),
	}
}

// ParseConfig unmarshals a YAML document over the defaults, so omitted keys
// keep their default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("keel: parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("keel: workers must be positive, got %d", c.Workers)
	}
	if c.Tuning.NearZero <= 0 {
		return fmt.Errorf("keel: near_zero must be positive, got %g", c.Tuning.NearZero)
	}
	if c.Tuning.Convergence <= 0 {
		return fmt.Errorf("keel: convergence must be positive, got %g", c.Tuning.Convergence)
	}
	for name, n := range map[string]int{
		"gjk_iterations":    c.Tuning.GJKIterations,
		"epa_iterations":    c.Tuning.EPAIterations,
		"march_iterations":  c.Tuning.MarchIterations,
		"portal_iterations": c.Tuning.PortalIterations,
		"hybrid_iterations": c.Tuning.HybridIterations,
	} {
		if n < 1 {
			return fmt.Errorf("keel: %s must be positive, got %d", name, n)
		}
	}
	return nil
}
