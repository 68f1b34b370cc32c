package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")

	assert.NoError(t, err)
	assert.Equal(t, 20.0, cfg.CrpAlpha)
	assert.Equal(t, 0.1, cfg.Beta)
	assert.Equal(t, 100, cfg.Iterations)
	assert.Equal(t, 0.25, cfg.ExpansionFactor)
}

func TestLoadOverride(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "cfg.yaml")
	err := os.WriteFile(fn, []byte("kappa: 50.0\niterations: 5\n"), 0644)
	assert.NoError(t, err)

	cfg, err := Load(fn)

	assert.NoError(t, err)
	assert.Equal(t, 50.0, cfg.Kappa)
	assert.Equal(t, 5, cfg.Iterations)
	// untouched fields keep their defaults
	assert.Equal(t, 20.0, cfg.CrpAlpha)
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		assert.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Kappa = 800
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Beta = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.InitialTemp = 1
	cfg.TargetTemp = 2
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Iterations = 0
	assert.Error(t, cfg.Validate())
}

func TestExpectedRegions(t *testing.T) {
	cfg, err := Load("")
	assert.NoError(t, err)

	// explicit capacity wins
	cfg.InitialRegions = 7
	assert.Equal(t, 7, cfg.ExpectedRegions(1000))

	// otherwise derived from the corpus size, growing with n
	cfg.InitialRegions = 0
	small := cfg.ExpectedRegions(100)
	large := cfg.ExpectedRegions(100000)
	assert.Greater(t, small, 0)
	assert.Greater(t, large, small)
}
