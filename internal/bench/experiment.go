// Package bench runs repeated CSP trials across a matrix of solver
// configurations and aggregates their statistics, the Go counterpart of
// original_source's experiment runner.
package bench

import (
	"math"
	"sync"

	"gocsp/pkg/csp"
)

// TrialConfig names one point in the configuration matrix an experiment
// sweeps: a label for display plus the csp.Config to run it with.
type TrialConfig struct {
	Name   string
	Config csp.Config
}

// trialRecord is one (trial, config) observation.
type trialRecord struct {
	solved     bool
	runtime    float64
	checks     int
	backtracks int
	steps      int
}

// accumulator collects trialRecords for one TrialConfig across every trial,
// guarded by mu since trials run concurrently on a shared WorkerPool.
type accumulator struct {
	mu      sync.Mutex
	records []trialRecord
}

func (a *accumulator) add(r trialRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, r)
}

// Summary is the aggregated view of one TrialConfig's records, mirroring
// the fields original_source's ExperimentResult.get_summary reports.
type Summary struct {
	Name          string
	Trials        int
	SuccessRate   float64
	AvgRuntime    float64
	StdRuntime    float64
	AvgChecks     float64
	AvgBacktracks float64
	AvgSteps      float64
}

func (a *accumulator) summarize(name string) Summary {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := len(a.records)
	s := Summary{Name: name, Trials: n}
	if n == 0 {
		return s
	}

	var solved, runtimeSum, checksSum, backtracksSum, stepsSum float64
	runtimes := make([]float64, 0, n)
	for _, r := range a.records {
		if r.solved {
			solved++
		}
		runtimeSum += r.runtime
		checksSum += float64(r.checks)
		backtracksSum += float64(r.backtracks)
		stepsSum += float64(r.steps)
		runtimes = append(runtimes, r.runtime)
	}

	s.SuccessRate = solved / float64(n)
	s.AvgRuntime = runtimeSum / float64(n)
	s.AvgChecks = checksSum / float64(n)
	s.AvgBacktracks = backtracksSum / float64(n)
	s.AvgSteps = stepsSum / float64(n)
	s.StdRuntime = stddev(runtimes, s.AvgRuntime)
	return s
}

func stddev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

func recordOf(stats *csp.Statistics) trialRecord {
	return trialRecord{
		solved:     stats.Status == csp.StatusSolved,
		runtime:    stats.RuntimeSeconds,
		checks:     stats.ConstraintChecks,
		backtracks: stats.Backtracks,
		steps:      stats.LocalSteps,
	}
}

// DefaultConfigMatrix builds the "every inference x {mrv, dom_wdeg}, plus
// min-conflicts" sweep original_source's run_trials defaults to, all with LCV
// value ordering; the default variable order is not swept.
func DefaultConfigMatrix(testCBJ bool) []TrialConfig {
	inferences := []struct {
		name string
		inf  csp.Inference
	}{
		{"none", csp.InferenceNone},
		{"fc", csp.InferenceFC},
		{"mac", csp.InferenceMAC},
	}
	varOrders := []struct {
		name  string
		order csp.VariableOrder
	}{
		{"mrv", csp.VariableOrderMRV},
		{"dom_wdeg", csp.VariableOrderDomWdeg},
	}

	var matrix []TrialConfig
	for _, inf := range inferences {
		for _, vo := range varOrders {
			base := csp.DefaultConfig()
			base.Inference = inf.inf
			base.VariableOrder = vo.order
			base.ValueOrder = csp.ValueOrderLCV

			plain := base
			plain.UseCBJ = false
			matrix = append(matrix, TrialConfig{Name: inf.name + "+" + vo.name, Config: plain})

			if testCBJ {
				withCBJ := base
				withCBJ.UseCBJ = true
				matrix = append(matrix, TrialConfig{Name: inf.name + "+" + vo.name + "+cbj", Config: withCBJ})
			}
		}
	}

	mc := csp.DefaultConfig()
	mc.Family = csp.FamilyMinConflicts
	mc.MaxSteps = 10000
	matrix = append(matrix, TrialConfig{Name: "min_conflicts", Config: mc})

	return matrix
}
