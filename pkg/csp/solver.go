package csp

import "github.com/google/uuid"

// Solve dispatches to the systematic backtracking searcher or the
// min-conflicts local searcher according to cfg.Family, the facade spec
// §4.7/§6 describes. It validates cfg first, returning InvalidConfigError
// without touching csp on failure.
//
// The returned Statistics.RunID is a fresh UUID, letting log lines and
// benchmark rows from the same call be correlated even across a concurrent
// batch of Solve calls sharing one *CSP via Clone.
func Solve[V comparable, D comparable](csp *CSP[V, D], cfg Config) (map[V]D, *Statistics, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	stats := newStatistics(uuid.New().String())

	var assignment map[V]D
	var status Status
	switch cfg.Family {
	case FamilyMinConflicts:
		assignment, status = minConflictsSearch(csp, cfg, stats)
	default:
		assignment, status = backtrackSearch(csp, cfg, stats)
	}

	stats.finish(status)
	return assignment, stats, nil
}
