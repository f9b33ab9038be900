// Command coexpressnet runs the weighted co-expression network pipeline
// over a cleaned expression matrix: power scan, network construction,
// clustering and dynamic module detection.
//
// Usage:
//
//	coexpressnet -expr clean_matrix.csv -out results/thyroid [-config run.yaml] [-scan-only]
//
// The expression CSV is the gene_id-by-sample table emitted by the
// upstream filtering stages. -scan-only stops after the candidate power
// report so a power can be chosen by hand and fixed in the config.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jessica-ewald/JQ-coexpression-network/expr"
	"github.com/jessica-ewald/JQ-coexpression-network/pipeline"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to the YAML run configuration (defaults apply when empty)")
		exprPath   = flag.String("expr", "", "path to the cleaned expression CSV (gene_id,<samples...>)")
		outPrefix  = flag.String("out", "coexpressnet", "prefix for output files")
		scanOnly   = flag.Bool("scan-only", false, "stop after the candidate power report")
		logLevel   = flag.String("log-level", "info", "log level: debug|info|warn|error")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Builds a weighted gene co-expression network and detects expression modules.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := newLogger(*logLevel)
	if err := run(logger, *configPath, *exprPath, *outPrefix, *scanOnly); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, configPath, exprPath, outPrefix string, scanOnly bool) error {
	if exprPath == "" {
		return fmt.Errorf("missing -expr: path to the expression matrix is required")
	}

	cfg := pipeline.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = pipeline.LoadConfig(configPath); err != nil {
			return err
		}
	}

	// A batch run this long deserves a clean Ctrl-C: cancel the context
	// and let the stages abort between blocks.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f, err := os.Open(exprPath)
	if err != nil {
		return fmt.Errorf("open expression matrix: %w", err)
	}
	m, err := expr.ReadCSV(f)
	f.Close()
	if err != nil {
		return err
	}
	logger.Info("expression matrix loaded", "genes", m.NumGenes(), "samples", m.NumSamples())

	if scanOnly {
		report, err := pipeline.ScanPowers(ctx, logger, m, cfg)
		if err != nil {
			return err
		}
		return writeFile(outPrefix+"_power_report.csv", func(w *os.File) error {
			return pipeline.WritePowerReportCSV(w, report)
		})
	}

	outcome, err := pipeline.Run(ctx, logger, m, cfg)
	if err != nil {
		return err
	}

	if err := writeFile(outPrefix+"_power_report.csv", func(w *os.File) error {
		return pipeline.WritePowerReportCSV(w, outcome.Report)
	}); err != nil {
		return err
	}
	if err := writeFile(outPrefix+"_modules.csv", func(w *os.File) error {
		return pipeline.WriteModulesCSV(w, outcome.Genes, outcome.DeepSplits, outcome.Assignments)
	}); err != nil {
		return err
	}
	logger.Info("pipeline finished",
		"power", outcome.Power,
		"advisory", outcome.PowerAdvisory,
		"outputs", outPrefix+"_{power_report,modules}.csv")
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newLogger(level string) *slog.Logger {
	var lv slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lv = slog.LevelDebug
	case "warn", "warning":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv}))
}
