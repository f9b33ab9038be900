package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/jessica-ewald/JQ-coexpression-network/adjacency"
	"github.com/jessica-ewald/JQ-coexpression-network/bicor"
	"github.com/jessica-ewald/JQ-coexpression-network/expr"
	"github.com/jessica-ewald/JQ-coexpression-network/hclust"
	"github.com/jessica-ewald/JQ-coexpression-network/softpower"
	"github.com/jessica-ewald/JQ-coexpression-network/tom"
	"github.com/jessica-ewald/JQ-coexpression-network/treecut"
)

// Outcome is the read-only result of a full run: everything the
// downstream plotting/enrichment collaborators consume.
type Outcome struct {
	// Genes is the gene identifier order shared by every index-keyed
	// field below.
	Genes []string
	// Report is the candidate power report of the scan.
	Report *softpower.Report
	// Power is the power the network was actually built with.
	Power float64
	// PowerAdvisory is true when Power was auto-recommended without any
	// candidate reaching TargetFit (low-confidence selection).
	PowerAdvisory bool
	// Dendrogram is the average-linkage merge tree, exposed for external
	// rendering alongside trait annotations.
	Dendrogram *hclust.Dendrogram
	// DeepSplits and Assignments pair each swept sensitivity level with
	// its independent module assignment.
	DeepSplits  []int
	Assignments []*treecut.Assignment
	// DegeneratePairs lists gene pairs whose correlation could not be
	// estimated; they were clustered at maximum dissimilarity.
	DegeneratePairs []bicor.Pair
}

// Run executes the full pipeline over m under cfg. A nil logger
// defaults to slog.Default(). The expression matrix is read-only
// throughout; every stage output is a fresh value.
func Run(ctx context.Context, logger *slog.Logger, m *expr.Matrix, cfg Config) (*Outcome, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, _ := cfg.mode()
	netType, _ := cfg.networkType()

	genesProcessed.Set(float64(m.NumGenes()))
	logger.Info("pipeline start",
		"genes", m.NumGenes(), "samples", m.NumSamples(),
		"correlation", mode.String(), "network_type", netType.String())

	// Stage 1: robust correlation.
	start := time.Now()
	corr, err := bicor.Correlate(ctx, m, bicor.Options{Mode: mode, Workers: cfg.Workers})
	if err != nil {
		return nil, err
	}
	observeStage("correlation", start)
	degeneratePairs.Add(float64(len(corr.Degenerate)))
	logger.Info("correlation done",
		"duration", time.Since(start),
		"fallback_genes", corr.FallbackGenes,
		"degenerate_pairs", len(corr.Degenerate))

	// Stage 2: soft-threshold scan.
	cands := cfg.CandidatePowers
	if len(cands) == 0 {
		cands = softpower.DefaultCandidates()
	}
	start = time.Now()
	report, err := softpower.Scan(ctx, corr.Sim, cands, softpower.Options{
		Type:  netType,
		NBins: cfg.ConnectivityBins,
	})
	if err != nil {
		return nil, err
	}
	observeStage("power_scan", start)

	// Power choice: human-supplied, or recommended from the report.
	power, advisory := cfg.Power, false
	if power == 0 {
		fit, err := report.Recommend(cfg.TargetFit)
		if errors.Is(err, softpower.ErrNoPowerReachedFit) {
			advisory = true
			logger.Warn("no power reached the target scale-free fit; proceeding with best",
				"target_fit", cfg.TargetFit, "power", fit.Power, "fit_index", fit.FitIndex)
		} else if err != nil {
			return nil, err
		}
		power = fit.Power
	}
	logger.Info("power selected", "power", power, "advisory", advisory)

	// Stage 3: adjacency.
	start = time.Now()
	adj, err := adjacency.Build(corr.Sim, power, netType)
	if err != nil {
		return nil, err
	}
	observeStage("adjacency", start)

	// Stage 4: topological overlap dissimilarity.
	start = time.Now()
	diss, err := tom.Dissimilarity(ctx, adj, tom.Options{BlockSize: cfg.BlockSize, Workers: cfg.Workers})
	if err != nil {
		return nil, err
	}
	// Degenerate pairs cluster at maximum distance instead of failing
	// the run.
	for _, p := range corr.Degenerate {
		diss.SetSym(p.I, p.J, 1)
	}
	observeStage("tom", start)
	logger.Info("dissimilarity done", "duration", time.Since(start))

	// Stage 5: dendrogram.
	start = time.Now()
	dendro, err := hclust.Cluster(ctx, diss, hclust.Options{Workers: cfg.Workers})
	if err != nil {
		return nil, err
	}
	observeStage("clustering", start)
	logger.Info("clustering done", "duration", time.Since(start), "merges", len(dendro.Merges()))

	// Stage 6: deepSplit sweep of the module detector.
	start = time.Now()
	opts := treecut.Options{
		MinClusterSize: cfg.minClusterSize(),
		CutHeight:      cfg.CutHeight,
	}
	assignments, err := treecut.SweepDeepSplit(dendro, opts, cfg.DeepSplits)
	if err != nil {
		return nil, err
	}
	observeStage("treecut", start)
	for i, a := range assignments {
		modulesDetected.WithLabelValues(strconv.Itoa(cfg.DeepSplits[i])).Set(float64(a.NumModules()))
		logger.Info("modules detected",
			"deep_split", cfg.DeepSplits[i],
			"modules", a.NumModules(),
			"unassigned", len(a.Unassigned()))
	}

	return &Outcome{
		Genes:           m.Genes(),
		Report:          report,
		Power:           power,
		PowerAdvisory:   advisory,
		Dendrogram:      dendro,
		DeepSplits:      append([]int(nil), cfg.DeepSplits...),
		Assignments:     assignments,
		DegeneratePairs: corr.Degenerate,
	}, nil
}

// ScanPowers runs only the correlation and power-scan stages, for the
// interactive workflow where a human inspects the report before
// committing to a power.
func ScanPowers(ctx context.Context, logger *slog.Logger, m *expr.Matrix, cfg Config) (*softpower.Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, _ := cfg.mode()
	netType, _ := cfg.networkType()

	start := time.Now()
	corr, err := bicor.Correlate(ctx, m, bicor.Options{Mode: mode, Workers: cfg.Workers})
	if err != nil {
		return nil, err
	}
	observeStage("correlation", start)

	cands := cfg.CandidatePowers
	if len(cands) == 0 {
		cands = softpower.DefaultCandidates()
	}
	start = time.Now()
	report, err := softpower.Scan(ctx, corr.Sim, cands, softpower.Options{
		Type:  netType,
		NBins: cfg.ConnectivityBins,
	})
	if err != nil {
		return nil, err
	}
	observeStage("power_scan", start)
	logger.Info("power scan done", "candidates", len(cands), "duration", time.Since(start))
	return report, nil
}
