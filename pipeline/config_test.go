package pipeline_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jessica-ewald/JQ-coexpression-network/pipeline"
)

// TestConfigValidate covers the pre-flight parameter table: every bad
// field is rejected with ErrBadConfig before any matrix work.
func TestConfigValidate(t *testing.T) {
	mutate := func(f func(*pipeline.Config)) pipeline.Config {
		cfg := pipeline.DefaultConfig()
		f(&cfg)
		return cfg
	}

	tests := []struct {
		name string
		cfg  pipeline.Config
		ok   bool
	}{
		{"defaults", pipeline.DefaultConfig(), true},
		{"explicit pearson unsigned", mutate(func(c *pipeline.Config) {
			c.Correlation, c.NetworkType = "pearson", "unsigned"
		}), true},
		{"empty strings fall back", mutate(func(c *pipeline.Config) {
			c.Correlation, c.NetworkType = "", ""
		}), true},
		{"unknown correlation", mutate(func(c *pipeline.Config) { c.Correlation = "kendall" }), false},
		{"unknown network type", mutate(func(c *pipeline.Config) { c.NetworkType = "hybrid" }), false},
		{"fractional power", mutate(func(c *pipeline.Config) { c.Power = 0.5 }), false},
		{"target fit above one", mutate(func(c *pipeline.Config) { c.TargetFit = 1.5 }), false},
		{"target fit zero", mutate(func(c *pipeline.Config) { c.TargetFit = 0 }), false},
		{"candidate below one", mutate(func(c *pipeline.Config) { c.CandidatePowers = []float64{2, 0.5} }), false},
		{"negative min cluster size", mutate(func(c *pipeline.Config) { c.MinClusterSize = -1 }), false},
		{"cut height above one", mutate(func(c *pipeline.Config) { c.CutHeight = 1.2 }), false},
		{"no deep splits", mutate(func(c *pipeline.Config) { c.DeepSplits = nil }), false},
		{"deep split out of range", mutate(func(c *pipeline.Config) { c.DeepSplits = []int{0, 4} }), false},
		{"negative block size", mutate(func(c *pipeline.Config) { c.BlockSize = -8 }), false},
		{"negative workers", mutate(func(c *pipeline.Config) { c.Workers = -2 }), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, pipeline.ErrBadConfig)
			}
		})
	}
}

// TestLoadConfig reads YAML over the defaults.
func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	body := []byte(`
correlation: pearson
power: 6
min_cluster_size: 20
deep_splits: [1, 3]
candidate_powers: [2, 4, 6]
`)
	require.NoError(t, os.WriteFile(path, body, 0o644))

	cfg, err := pipeline.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "pearson", cfg.Correlation)
	assert.Equal(t, 6.0, cfg.Power)
	assert.Equal(t, 20, cfg.MinClusterSize)
	assert.Equal(t, []int{1, 3}, cfg.DeepSplits)
	assert.Equal(t, []float64{2, 4, 6}, cfg.CandidatePowers)

	// Untouched fields keep their defaults.
	assert.Equal(t, "signed", cfg.NetworkType)
	assert.Equal(t, 0.99, cfg.CutHeight)
	assert.Equal(t, 0.90, cfg.TargetFit)
}

// TestLoadConfig_Errors: missing files, malformed YAML and invalid
// values all surface as errors.
func TestLoadConfig_Errors(t *testing.T) {
	_, err := pipeline.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("correlation: [not a scalar"), 0o644))
	_, err = pipeline.LoadConfig(bad)
	assert.Error(t, err)

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("correlation: kendall"), 0o644))
	_, err = pipeline.LoadConfig(invalid)
	assert.ErrorIs(t, err, pipeline.ErrBadConfig)
}
