// Command berry-bench runs the lockfile parser repeatedly over a
// directory of fixtures and reports throughput, optionally checked
// against a previously recorded JSON baseline.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/briandowns/spinner"
	hclog "github.com/hashicorp/go-hclog"
	"github.com/spanishpear/berry/internal/bench"
	"github.com/spanishpear/berry/internal/fixture"
	"github.com/spf13/cobra"
)

// Exit codes, per spec.md §6: 0 success, 1 benchmark/regression failure,
// 2 usage/I-O error (mirrors cmd/berry-dump's exit-code contract).
const (
	exitOK         = 0
	exitRunError   = 1
	exitUsageError = 2
)

// usageError marks a failure that should surface as exitUsageError
// rather than exitRunError: a missing/malformed argument or an
// unreadable input path, as opposed to a benchmark or regression
// failure that ran to completion.
type usageError struct{ error }

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := hclog.New(&hclog.LoggerOptions{Name: "berry-bench"})

	var (
		iterations int
		baseline   string
		ratio      float64
		quiet      bool
	)

	cmd := &cobra.Command{
		Use:           "berry-bench <fixtures-dir>",
		Short:         "Benchmark lockfile.Parse throughput over a fixture corpus",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return &usageError{err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, logger, args[0], iterations, baseline, ratio, quiet)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&iterations, "iterations", 50, "parse passes per fixture")
	flags.StringVar(&baseline, "baseline", envOr("BERRY_BENCH_BASELINE", ""), "path to a baseline JSON report to compare against")
	flags.Float64Var(&ratio, "regression-ratio", envRatioOr("BERRY_BENCH_REGRESSION_RATIO", 0.10), "fractional MiB/s drop that counts as a regression")
	flags.BoolVar(&quiet, "quiet", false, "suppress the progress spinner")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return &usageError{err} })
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		logger.Error("benchmark failed", "error", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		if _, ok := err.(*usageError); ok {
			return exitUsageError
		}
		return exitRunError
	}
	return exitOK
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envRatioOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func runBench(cmd *cobra.Command, logger hclog.Logger, dir string, iterations int, baselinePath string, ratio float64, quiet bool) error {
	corpora, err := fixture.Load(dir)
	if err != nil {
		return &usageError{err}
	}
	if len(corpora) == 0 {
		return &usageError{fmt.Errorf("no .lock fixtures found under %s", dir)}
	}

	var s *spinner.Spinner
	if !quiet {
		s = spinner.New(spinner.CharSets[11], 100*time.Millisecond)
		s.Suffix = fmt.Sprintf(" benchmarking %d fixtures...", len(corpora))
		s.Start()
	}

	results, runErr := bench.Run(context.Background(), corpora, iterations)
	if s != nil {
		s.Stop()
	}
	if runErr != nil {
		logger.Warn("one or more fixtures failed to parse", "error", runErr)
	}

	report := bench.Report{RunID: fixture.NewRunID(), Results: results}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}

	if baselinePath == "" {
		return runErr
	}
	if err := compareBaseline(baselinePath, report, ratio, logger); err != nil {
		return err
	}
	return runErr
}

func compareBaseline(path string, report bench.Report, ratio float64, logger hclog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &usageError{fmt.Errorf("reading baseline %s: %w", path, err)}
	}
	var baseline bench.Report
	if err := json.Unmarshal(data, &baseline); err != nil {
		return fmt.Errorf("parsing baseline %s: %w", path, err)
	}

	byFixture := make(map[string]bench.Result, len(baseline.Results))
	for _, r := range baseline.Results {
		byFixture[r.Fixture] = r
	}

	var regressed []string
	for _, current := range report.Results {
		base, ok := byFixture[current.Fixture]
		if !ok {
			continue
		}
		if bench.Regression(base, current, ratio) {
			regressed = append(regressed, current.Fixture)
		}
	}

	if len(regressed) > 0 {
		return fmt.Errorf("throughput regressed beyond %.0f%% for: %v", ratio*100, regressed)
	}
	logger.Info("no regression detected", "fixtures", len(report.Results))
	return nil
}
