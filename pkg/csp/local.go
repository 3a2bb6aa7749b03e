package csp

import "math/rand"

// minConflictsSearch implements spec §4.6: build an initial assignment by
// greedily minimizing conflicts against already-chosen neighbors, then
// repeatedly repair a conflicted variable, chosen uniformly at random, by the
// value that leaves it with the fewest violations, breaking ties randomly. cfg.Seed drives every
// random choice, making a run reproducible.
func minConflictsSearch[V comparable, D comparable](csp *CSP[V, D], cfg Config, stats *Statistics) (map[V]D, Status) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	logger := cfg.logger()

	assignment := make(map[V]D, len(csp.Variables()))
	for _, v := range csp.Variables() {
		assignment[v] = minConflictValue(csp, v, assignment, rng, &stats.ConstraintChecks)
	}

	bestViolations := countTotalViolations(csp, assignment, &stats.ConstraintChecks)
	stats.BestViolationsSeen = bestViolations

	for step := 0; step < cfg.MaxSteps; step++ {
		stats.LocalSteps++

		conflicted := conflictedVariables(csp, assignment, &stats.ConstraintChecks)
		if len(conflicted) == 0 {
			logger.Debugf("min-conflicts solved run=%s steps=%d", stats.RunID, stats.LocalSteps)
			return assignment, StatusSolved
		}

		v := conflicted[rng.Intn(len(conflicted))]
		assignment[v] = minConflictValue(csp, v, assignment, rng, &stats.ConstraintChecks)

		if total := countTotalViolations(csp, assignment, &stats.ConstraintChecks); total < bestViolations {
			bestViolations = total
			stats.BestViolationsSeen = bestViolations
		}
	}

	logger.Debugf("min-conflicts exhausted step budget run=%s steps=%d best_violations=%d", stats.RunID, stats.LocalSteps, bestViolations)
	return nil, StatusBudgetExceeded
}

// conflictedVariables returns every variable participating in at least one
// violated constraint under the current (complete) assignment.
func conflictedVariables[V comparable, D comparable](csp *CSP[V, D], assignment map[V]D, checks *int) []V {
	var conflicted []V
	for _, v := range csp.Variables() {
		if len(csp.ViolatedConstraintsOf(v, assignment, checks)) > 0 {
			conflicted = append(conflicted, v)
		}
	}
	return conflicted
}

// minConflictValue returns the value for v, among its original domain, that
// minimizes the number of violated constraints on v, breaking ties
// uniformly at random via rng.
func minConflictValue[V comparable, D comparable](
	csp *CSP[V, D],
	v V,
	assignment map[V]D,
	rng *rand.Rand,
	checks *int,
) D {
	trial := make(map[V]D, len(assignment))
	for k, val := range assignment {
		trial[k] = val
	}

	values := csp.OriginalDomain(v).Values()
	best := make([]D, 0, len(values))
	bestCount := -1

	for _, candidate := range values {
		trial[v] = candidate
		count := len(csp.ViolatedConstraintsOf(v, trial, checks))
		switch {
		case bestCount < 0 || count < bestCount:
			bestCount = count
			best = best[:0]
			best = append(best, candidate)
		case count == bestCount:
			best = append(best, candidate)
		}
	}

	return best[rng.Intn(len(best))]
}

// countTotalViolations sums, over every variable, the number of constraints
// on it that the assignment violates. Constraints shared by two variables
// are counted twice, which is fine — the quantity is only ever compared
// against itself across steps to track best-seen progress.
func countTotalViolations[V comparable, D comparable](csp *CSP[V, D], assignment map[V]D, checks *int) int {
	total := 0
	for _, v := range csp.Variables() {
		total += len(csp.ViolatedConstraintsOf(v, assignment, checks))
	}
	return total
}
