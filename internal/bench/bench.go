// Package bench is the throughput harness around lockfile.Parse: it
// runs the parser N times over a set of fixtures, reports ms/KiB and
// MB/s per fixture, and can compare a run against a previously
// recorded JSON baseline (spec.md §6 "CLI surfaces of wrapper tools").
package bench

import (
	"context"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spanishpear/berry/internal/fixture"
	"github.com/spanishpear/berry/internal/lockfile"
	"golang.org/x/sync/errgroup"
)

// Result is one fixture's measured throughput.
type Result struct {
	Fixture    string  `json:"fixture"`
	Bytes      int     `json:"bytes"`
	Iterations int     `json:"iterations"`
	MsPerKiB   float64 `json:"msPerKiB"`
	MiBPerSec  float64 `json:"mibPerSec"`
	EntryCount int     `json:"entryCount"`
}

// Report is the full output of a benchmark run.
type Report struct {
	RunID   string   `json:"runId"`
	Results []Result `json:"results"`
}

// Run parses each corpus iterations times concurrently
// (golang.org/x/sync/errgroup, the same primitive the teacher's
// lockfile package uses to walk a dependency graph) and returns one
// Result per fixture, in input order. A fixture that fails to parse
// on any iteration contributes its error to the returned
// *multierror.Error rather than aborting the whole sweep, so a single
// bad corpus doesn't hide results for the rest.
func Run(ctx context.Context, corpora []fixture.Corpus, iterations int) ([]Result, error) {
	results := make([]Result, len(corpora))
	errs := make([]error, len(corpora))

	g, _ := errgroup.WithContext(ctx)
	for i, corpus := range corpora {
		i, corpus := i, corpus
		g.Go(func() error {
			result, err := runOne(corpus, iterations)
			if err != nil {
				// Each goroutine only ever writes its own index, so this
				// is race-free without a mutex.
				errs[i] = err
				return nil
			}
			results[i] = result
			return nil
		})
	}
	// errgroup.Group.Wait's error is always nil here: failures are
	// accumulated into errs above so partial results still come back.
	_ = g.Wait()

	var merr error
	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	return results, merr
}

func runOne(corpus fixture.Corpus, iterations int) (Result, error) {
	var entryCount int
	start := time.Now()
	for i := 0; i < iterations; i++ {
		lf, err := lockfile.Parse(corpus.Content)
		if err != nil {
			return Result{}, err
		}
		entryCount = len(lf.Entries)
	}
	elapsed := time.Since(start)

	kib := float64(len(corpus.Content)) / 1024
	totalMs := float64(elapsed.Microseconds()) / 1000
	msPerKiB := 0.0
	mibPerSec := 0.0
	if kib > 0 && iterations > 0 {
		msPerKiB = (totalMs / float64(iterations)) / kib
		seconds := elapsed.Seconds()
		if seconds > 0 {
			mibPerSec = (float64(len(corpus.Content)) * float64(iterations) / (1024 * 1024)) / seconds
		}
	}

	return Result{
		Fixture:    corpus.Name,
		Bytes:      len(corpus.Content),
		Iterations: iterations,
		MsPerKiB:   msPerKiB,
		MiBPerSec:  mibPerSec,
		EntryCount: entryCount,
	}, nil
}

// Regression compares a fresh Result against a baseline Result and
// reports whether its MiB/s throughput dropped by more than ratio
// (e.g. 0.1 for a 10% regression budget).
func Regression(baseline, current Result, ratio float64) bool {
	if baseline.MiBPerSec <= 0 {
		return false
	}
	drop := (baseline.MiBPerSec - current.MiBPerSec) / baseline.MiBPerSec
	return drop > ratio
}
