package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sync"

	"gocsp/internal/parallel"
	"gocsp/pkg/csp"
)

// RunExperiment sweeps matrix over `trials` freshly generated instances,
// running every (trial, config) pair on a bounded worker pool. instanceFor
// receives the trial index as a seed, so callers that want comparable
// instances across trials (e.g. a fixed sudoku puzzle) can ignore it and
// return the same CSP each time; callers that want a fresh random instance
// per trial (random graph coloring) use it to vary generation.
//
// Each (trial, config) pair solves its own csp.CSP.Clone of that trial's
// instance, giving every pair an independent Weights slice per spec §5's
// per-solve weight requirement.
func RunExperiment[V comparable, D comparable](
	trials int,
	workers int,
	instanceFor func(trial int) *csp.CSP[V, D],
	matrix []TrialConfig,
) ([]Summary, error) {
	pool := parallel.NewWorkerPool(workers)
	defer pool.Shutdown()

	accs := make(map[string]*accumulator, len(matrix))
	for _, tc := range matrix {
		accs[tc.Name] = &accumulator{}
	}

	ctx := context.Background()
	var wg sync.WaitGroup
	var submitErr error
	var submitErrOnce sync.Once

	for trial := 0; trial < trials; trial++ {
		instance := instanceFor(trial)

		for _, tc := range matrix {
			tc := tc
			trialIdx := trial
			clone := instance.Clone()

			cfg := tc.Config
			if cfg.Family == csp.FamilyMinConflicts {
				cfg.Seed = int64(trialIdx)
			}

			wg.Add(1)
			err := pool.Submit(ctx, func() {
				defer wg.Done()
				_, stats, err := csp.Solve(clone, cfg)
				if err != nil {
					return
				}
				accs[tc.Name].add(recordOf(stats))
			})
			if err != nil {
				wg.Done()
				submitErrOnce.Do(func() { submitErr = err })
			}
		}
	}

	wg.Wait()
	if submitErr != nil {
		return nil, submitErr
	}

	summaries := make([]Summary, 0, len(matrix))
	for _, tc := range matrix {
		summaries = append(summaries, accs[tc.Name].summarize(tc.Name))
	}
	return summaries, nil
}

// WriteSummariesCSV renders summaries as a CSV table, one row per
// configuration, the shape original_source's experiment runner writes with
// Python's csv module.
func WriteSummariesCSV(w io.Writer, summaries []Summary) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"config", "trials", "success_rate", "avg_runtime", "std_runtime", "avg_checks", "avg_backtracks", "avg_steps"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, s := range summaries {
		row := []string{
			s.Name,
			fmt.Sprintf("%d", s.Trials),
			fmt.Sprintf("%.4f", s.SuccessRate),
			fmt.Sprintf("%.6f", s.AvgRuntime),
			fmt.Sprintf("%.6f", s.StdRuntime),
			fmt.Sprintf("%.2f", s.AvgChecks),
			fmt.Sprintf("%.2f", s.AvgBacktracks),
			fmt.Sprintf("%.2f", s.AvgSteps),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return writer.Error()
}
