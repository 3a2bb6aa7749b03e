package problem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocsp/pkg/csp"
)

func TestRandomGraphColoring_RejectsBadArguments(t *testing.T) {
	_, _, err := RandomGraphColoring(0, 0.5, 3, 1)
	require.Error(t, err)

	_, _, err = RandomGraphColoring(5, 0.5, 0, 1)
	require.Error(t, err)
}

func TestRandomGraphColoring_SameSeedSameGraph(t *testing.T) {
	_, edges1, err := RandomGraphColoring(10, 0.4, 3, 99)
	require.NoError(t, err)
	_, edges2, err := RandomGraphColoring(10, 0.4, 3, 99)
	require.NoError(t, err)

	assert.Equal(t, edges1, edges2)
}

func TestRandomGraphColoring_BuildsOneVariablePerVertex(t *testing.T) {
	built, _, err := RandomGraphColoring(6, 0.5, 3, 1)
	require.NoError(t, err)
	assert.Len(t, built.Variables(), 6)
}

func TestGraphColoringFromEdges_K4IsUnsatisfiableWithThreeColors(t *testing.T) {
	edges := []Edge{
		{A: 0, B: 1}, {A: 0, B: 2}, {A: 0, B: 3},
		{A: 1, B: 2}, {A: 1, B: 3}, {A: 2, B: 3},
	}
	built, err := GraphColoringFromEdges(edges, 3)
	require.NoError(t, err)

	cfg := csp.DefaultConfig()
	cfg.UseCBJ = true
	_, stats, err := csp.Solve(built, cfg)
	require.NoError(t, err)
	assert.Equal(t, csp.StatusUnsolvable, stats.Status)
}

func TestGraphColoringFromEdges_K4IsSatisfiableWithFourColors(t *testing.T) {
	edges := []Edge{
		{A: 0, B: 1}, {A: 0, B: 2}, {A: 0, B: 3},
		{A: 1, B: 2}, {A: 1, B: 3}, {A: 2, B: 3},
	}
	built, err := GraphColoringFromEdges(edges, 4)
	require.NoError(t, err)

	assignment, stats, err := csp.Solve(built, csp.DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, csp.StatusSolved, stats.Status)

	for _, e := range edges {
		assert.NotEqual(t, assignment[e.A], assignment[e.B])
	}
}

func TestGraphColoringFromEdges_VertexCountIsMaxIndexPlusOne(t *testing.T) {
	edges := []Edge{{A: 0, B: 4}}
	built, err := GraphColoringFromEdges(edges, 2)
	require.NoError(t, err)
	assert.Len(t, built.Variables(), 5)
}

func TestCBJ_NeverExceedsChronologicalOnK4WithThreeColors(t *testing.T) {
	edges := []Edge{
		{A: 0, B: 1}, {A: 0, B: 2}, {A: 0, B: 3},
		{A: 1, B: 2}, {A: 1, B: 3}, {A: 2, B: 3},
	}
	chronoInstance, err := GraphColoringFromEdges(edges, 3)
	require.NoError(t, err)
	cbjInstance, err := GraphColoringFromEdges(edges, 3)
	require.NoError(t, err)

	_, chronoStats, err := csp.Solve(chronoInstance, csp.DefaultConfig())
	require.NoError(t, err)

	cbjCfg := csp.DefaultConfig()
	cbjCfg.UseCBJ = true
	_, cbjStats, err := csp.Solve(cbjInstance, cbjCfg)
	require.NoError(t, err)

	assert.Equal(t, csp.StatusUnsolvable, chronoStats.Status)
	assert.Equal(t, csp.StatusUnsolvable, cbjStats.Status)
	assert.LessOrEqual(t, cbjStats.Backtracks, chronoStats.Backtracks)
}
