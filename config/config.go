// Package config provides configuration loading for the sampler.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all sampler hyperparameters.
type Config struct {
	CrpAlpha        float64 `yaml:"crp_alpha"`           // CRP concentration for opening new regions
	Alpha           float64 `yaml:"alpha"`               // document-region smoothing, decode pass only
	Beta            float64 `yaml:"beta"`                // word-region smoothing
	Kappa           float64 `yaml:"kappa"`               // directional kernel concentration
	InitialTemp     float64 `yaml:"initial_temperature"` // annealing start temperature
	TargetTemp      float64 `yaml:"target_temperature"`  // annealing end temperature
	Iterations      int     `yaml:"iterations"`          // number of gibbs sweeps
	Seed            int64   `yaml:"seed"`                // 0 seeds from the clock
	InitialRegions  int     `yaml:"initial_regions"`     // 0 derives the capacity from corpus size
	ExpansionFactor float64 `yaml:"expansion_factor"`    // region capacity growth factor
}

// Load returns the embedded defaults with the optional yaml file at
// path merged over them. An empty path loads defaults only.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects hyperparameter settings the sampler cannot run with.
func (c *Config) Validate() error {
	if c.CrpAlpha <= 0 {
		return fmt.Errorf("crp_alpha must be positive, got %g", c.CrpAlpha)
	}
	if c.Alpha <= 0 {
		return fmt.Errorf("alpha must be positive, got %g", c.Alpha)
	}
	if c.Beta <= 0 {
		return fmt.Errorf("beta must be positive, got %g", c.Beta)
	}
	// sinh(kappa) overflows float64 past ~710
	if c.Kappa <= 0 || c.Kappa >= 700 {
		return fmt.Errorf("kappa must be in (0, 700), got %g", c.Kappa)
	}
	if c.TargetTemp <= 0 || c.InitialTemp < c.TargetTemp {
		return fmt.Errorf("temperature schedule must satisfy initial >= target > 0, got %g -> %g",
			c.InitialTemp, c.TargetTemp)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", c.Iterations)
	}
	if c.InitialRegions < 0 {
		return fmt.Errorf("initial_regions must be non-negative, got %d", c.InitialRegions)
	}
	if c.ExpansionFactor <= 0 {
		return fmt.Errorf("expansion_factor must be positive, got %g", c.ExpansionFactor)
	}
	return nil
}

// ExpectedRegions derives the initial region capacity from the token
// count when initial_regions is left unset.
func (c *Config) ExpectedRegions(n int) int {
	if c.InitialRegions > 0 {
		return c.InitialRegions
	}
	return int(math.Ceil(c.CrpAlpha*math.Log(1+float64(n)/c.CrpAlpha))) * 2
}
