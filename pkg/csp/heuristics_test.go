package csp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildStarGraph(t *testing.T) *CSP[string, int] {
	t.Helper()
	builder := NewBuilder[string, int]()
	builder.AddVariable("hub", NewDomain(1, 2, 3))
	builder.AddVariable("a", NewDomain(1, 2, 3))
	builder.AddVariable("b", NewDomain(1, 2, 3))
	builder.AddVariable("c", NewDomain(1, 2, 3))
	builder.AddConstraint(NewNotEqual[string, int]("hub", "a"))
	builder.AddConstraint(NewNotEqual[string, int]("hub", "b"))
	builder.AddConstraint(NewNotEqual[string, int]("hub", "c"))

	built, err := builder.Build()
	require.NoError(t, err)
	return built
}

func TestSelectMRV_PicksSmallestDomain(t *testing.T) {
	csp := buildStarGraph(t)
	domains := csp.CurrentDomains()
	domains["a"].Remove(1)
	domains["a"].Remove(2) // a now has the smallest domain (size 1)

	got := SelectMRV(csp, domains, map[string]int{})
	assert.Equal(t, "a", got)
}

func TestSelectMRV_BreaksTiesByDegree(t *testing.T) {
	csp := buildStarGraph(t)
	domains := csp.CurrentDomains()
	// every domain has size 3; hub has the highest future degree (3 vs 1)
	got := SelectMRV(csp, domains, map[string]int{})
	assert.Equal(t, "hub", got)
}

func TestSelectDomWdeg_PrefersLowRatio(t *testing.T) {
	// Two disconnected edges so each variable's wdeg comes from exactly one
	// constraint, isolating the effect of that constraint's weight.
	builder := NewBuilder[string, int]()
	builder.AddVariable("p1", NewDomain(1, 2, 3))
	builder.AddVariable("p2", NewDomain(1, 2, 3))
	builder.AddVariable("q1", NewDomain(1, 2, 3))
	builder.AddVariable("q2", NewDomain(1, 2, 3))
	builder.AddConstraint(NewNotEqual[string, int]("p1", "p2"))
	builder.AddConstraint(NewNotEqual[string, int]("q1", "q2"))
	csp, err := builder.Build()
	require.NoError(t, err)

	domains := csp.CurrentDomains()
	weights := []int{10, 1} // p-edge is far more conflict-prone than q-edge

	got := SelectDomWdeg(csp, domains, map[string]int{}, weights)
	assert.Equal(t, "p1", got, "equal domain sizes, but p1's incident constraint has the higher weight and lower ratio")
}

func TestSelectDomWdeg_FallsBackToMRVWhenNoWeight(t *testing.T) {
	builder := NewBuilder[string, int]()
	builder.AddVariable("lonely", NewDomain(1, 2))
	built, err := builder.Build()
	require.NoError(t, err)

	got := SelectDomWdeg(built, built.CurrentDomains(), map[string]int{}, built.Weights)
	assert.Equal(t, "lonely", got)
}

func TestOrderLCV_SortsByFewestEliminations(t *testing.T) {
	csp := buildStarGraph(t)
	domains := csp.CurrentDomains()
	domains["a"].Remove(2)
	domains["a"].Remove(3) // a is pinned to 1, so assigning hub=1 eliminates a's only value

	ordered := OrderLCV(csp, domains, map[string]int{}, "hub")
	require.Len(t, ordered, 3)
	assert.NotEqual(t, 1, ordered[0], "hub=1 eliminates a's sole remaining value, so it should sort last")
}
