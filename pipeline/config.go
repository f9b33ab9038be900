package pipeline

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jessica-ewald/JQ-coexpression-network/adjacency"
	"github.com/jessica-ewald/JQ-coexpression-network/bicor"
	"github.com/jessica-ewald/JQ-coexpression-network/treecut"
)

// ErrBadConfig indicates a configuration rejected before any matrix
// computation begins.
var ErrBadConfig = errors.New("pipeline: invalid configuration")

// Config parameterizes a full pipeline run. The YAML tags match the
// config file read by LoadConfig; zero values fall back to the
// documented defaults where one exists.
type Config struct {
	// Correlation selects the pairwise estimator: "bicor" (robust,
	// default) or "pearson".
	Correlation string `yaml:"correlation"`
	// NetworkType is the sign convention: "signed" (default) or
	// "unsigned".
	NetworkType string `yaml:"network_type"`
	// Power is the chosen soft-thresholding exponent. 0 means "recommend
	// from the scan at TargetFit" — the advisory path, not an error.
	Power float64 `yaml:"power"`
	// TargetFit is the scale-free fit threshold used by the
	// recommendation; default 0.90.
	TargetFit float64 `yaml:"target_fit"`
	// CandidatePowers is the scan grid; empty means the default grid.
	CandidatePowers []float64 `yaml:"candidate_powers"`
	// ConnectivityBins is the bin count of the scale-free fit; 0 means
	// the default.
	ConnectivityBins int `yaml:"connectivity_bins"`
	// MinClusterSize is the smallest admissible module; 0 means the
	// default (30).
	MinClusterSize int `yaml:"min_cluster_size"`
	// CutHeight is the module merge-height ceiling; 0 is a legal,
	// explicit value, so the default (0.99) applies only when the field
	// is absent from the YAML (set by DefaultConfig).
	CutHeight float64 `yaml:"cut_height"`
	// DeepSplits lists the sensitivity levels to sweep; empty means
	// {0,1,2,3}.
	DeepSplits []int `yaml:"deep_splits"`
	// BlockSize bounds the TOM block products; 0 means the default.
	BlockSize int `yaml:"block_size"`
	// Workers bounds data-parallel stages; 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the canonical run configuration.
func DefaultConfig() Config {
	return Config{
		Correlation:    "bicor",
		NetworkType:    "signed",
		Power:          0,
		TargetFit:      0.90,
		MinClusterSize: treecut.DefaultMinClusterSize,
		CutHeight:      treecut.DefaultCutHeight,
		DeepSplits:     []int{0, 1, 2, 3},
	}
}

// LoadConfig reads a YAML config file over the defaults and validates
// the result.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("pipeline: read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("pipeline: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects parameter errors before any matrix work, naming the
// offending field and value.
func (c Config) Validate() error {
	if _, err := c.mode(); err != nil {
		return err
	}
	if _, err := c.networkType(); err != nil {
		return err
	}
	if c.Power != 0 && c.Power < 1 {
		return fmt.Errorf("pipeline: power %v (want 0 for auto, or >= 1): %w", c.Power, ErrBadConfig)
	}
	if c.TargetFit <= 0 || c.TargetFit > 1 {
		return fmt.Errorf("pipeline: target_fit %v outside (0,1]: %w", c.TargetFit, ErrBadConfig)
	}
	for _, p := range c.CandidatePowers {
		if p < 1 {
			return fmt.Errorf("pipeline: candidate power %v < 1: %w", p, ErrBadConfig)
		}
	}
	if c.MinClusterSize < 0 {
		return fmt.Errorf("pipeline: min_cluster_size %d: %w", c.MinClusterSize, ErrBadConfig)
	}
	if c.CutHeight < 0 || c.CutHeight > 1 {
		return fmt.Errorf("pipeline: cut_height %v outside [0,1]: %w", c.CutHeight, ErrBadConfig)
	}
	if len(c.DeepSplits) == 0 {
		return fmt.Errorf("pipeline: deep_splits is empty: %w", ErrBadConfig)
	}
	for _, ds := range c.DeepSplits {
		if ds < 0 || ds > treecut.MaxDeepSplit {
			return fmt.Errorf("pipeline: deep_split %d outside 0..%d: %w", ds, treecut.MaxDeepSplit, ErrBadConfig)
		}
	}
	if c.BlockSize < 0 {
		return fmt.Errorf("pipeline: block_size %d: %w", c.BlockSize, ErrBadConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("pipeline: workers %d: %w", c.Workers, ErrBadConfig)
	}
	return nil
}

func (c Config) mode() (bicor.Mode, error) {
	switch c.Correlation {
	case "", "bicor":
		return bicor.Biweight, nil
	case "pearson":
		return bicor.Pearson, nil
	default:
		return 0, fmt.Errorf("pipeline: correlation %q: %w", c.Correlation, ErrBadConfig)
	}
}

func (c Config) networkType() (adjacency.Type, error) {
	switch c.NetworkType {
	case "", "signed":
		return adjacency.Signed, nil
	case "unsigned":
		return adjacency.Unsigned, nil
	default:
		return 0, fmt.Errorf("pipeline: network_type %q: %w", c.NetworkType, ErrBadConfig)
	}
}

func (c Config) minClusterSize() int {
	if c.MinClusterSize == 0 {
		return treecut.DefaultMinClusterSize
	}
	return c.MinClusterSize
}
