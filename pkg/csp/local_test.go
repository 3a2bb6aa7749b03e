package csp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildQueens(t *testing.T, n int) *CSP[int, int] {
	t.Helper()
	builder := NewBuilder[int, int]()
	cols := make([]int, n)
	for i := range cols {
		cols[i] = i
	}
	for row := 0; row < n; row++ {
		builder.AddVariable(row, NewDomain(cols...))
	}
	for r1 := 0; r1 < n; r1++ {
		for r2 := r1 + 1; r2 < n; r2++ {
			builder.AddConstraint(NewNotEqual[int, int](r1, r2))
			rowA, rowB := r1, r2
			builder.AddConstraint(NewPredicateConstraint(
				"not-diagonal",
				[]int{rowA, rowB},
				func(a map[int]int) bool {
					ca, okA := a[rowA]
					cb, okB := a[rowB]
					if !okA || !okB {
						return true
					}
					diff := ca - cb
					if diff < 0 {
						diff = -diff
					}
					return diff != rowB-rowA
				},
			))
		}
	}
	built, err := builder.Build()
	require.NoError(t, err)
	return built
}

func TestMinConflictsSearch_GreedyInitMinimizesConflictsAgainstEarlierNeighbors(t *testing.T) {
	builder := NewBuilder[string, int]()
	builder.AddVariable("a", NewDomain(1))
	builder.AddVariable("b", NewDomain(1, 2))
	builder.AddConstraint(NewNotEqual[string, int]("a", "b"))
	csp, err := builder.Build()
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Family = FamilyMinConflicts
	cfg.MaxSteps = 1
	cfg.Seed = 1

	assignment, status := minConflictsSearch(csp, cfg, newStatistics("greedy-init"))
	require.Equal(t, StatusSolved, status, "a's only value forces b away from 1 during the greedy initial assignment, needing zero repair steps")
	assert.Equal(t, 1, assignment["a"])
	assert.Equal(t, 2, assignment["b"])
}

func TestMinConflictsSearch_SolvesQueensWithinBudget(t *testing.T) {
	csp := buildQueens(t, 8)
	cfg := DefaultConfig()
	cfg.Family = FamilyMinConflicts
	cfg.MaxSteps = 10000
	cfg.Seed = 42
	stats := newStatistics("test")

	assignment, status := minConflictsSearch(csp, cfg, stats)
	require.Equal(t, StatusSolved, status)
	assert.Len(t, assignment, 8)
	assert.Equal(t, 0, countTotalViolations(csp, assignment, nil))
}

func TestMinConflictsSearch_IsDeterministicGivenSameSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Family = FamilyMinConflicts
	cfg.MaxSteps = 10000
	cfg.Seed = 7

	a1, s1 := minConflictsSearch(buildQueens(t, 8), cfg, newStatistics("a"))
	a2, s2 := minConflictsSearch(buildQueens(t, 8), cfg, newStatistics("b"))

	require.Equal(t, s1, s2)
	assert.Equal(t, a1, a2, "identical seed and instance must reproduce the identical trajectory")
}

func TestMinConflictsSearch_ExhaustsBudgetOnSingleStep(t *testing.T) {
	csp := buildQueens(t, 8)
	cfg := DefaultConfig()
	cfg.Family = FamilyMinConflicts
	cfg.MaxSteps = 1
	cfg.Seed = 1
	stats := newStatistics("test")

	_, status := minConflictsSearch(csp, cfg, stats)
	if status == StatusSolved {
		t.Skip("random initial assignment happened to already be a solution")
	}
	assert.Equal(t, StatusBudgetExceeded, status)
}

func TestConflictedVariables_ListsVariablesInViolatedConstraints(t *testing.T) {
	csp := buildTriangle(t)
	assignment := map[string]int{"a": 1, "b": 2, "c": 1}
	assert.ElementsMatch(t, []string{"a", "c"}, conflictedVariables(csp, assignment, nil))
}

func TestMinConflictValue_PicksValueWithFewestViolations(t *testing.T) {
	csp := buildTriangle(t)
	assignment := map[string]int{"a": 1, "b": 1, "c": 1}
	rng := rand.New(rand.NewSource(0))

	got := minConflictValue(csp, "c", assignment, rng, nil)
	assert.Equal(t, 2, got, "c=2 conflicts with neither a nor b, while c=1 conflicts with both")
}
