// Package problem builds ready-to-solve csp.CSP instances for a handful of
// classic combinatorial problems, the same role original_source's
// problem_graph_coloring / problem_sudoku modules played.
package problem

import (
	"math/rand"

	"github.com/pkg/errors"

	"gocsp/pkg/csp"
)

// Edge is an undirected pair of vertex indices.
type Edge struct {
	A, B int
}

// RandomGraphColoring builds an Erdos-Renyi random graph on n vertices,
// where each unordered pair is connected independently with probability p,
// and frames k-coloring it as a CSP: one variable per vertex, domain
// {0,...,k-1}, a NotEqual constraint per edge. seed drives which edges are
// included, so two calls with the same (n, p, k, seed) produce the same CSP.
func RandomGraphColoring(n int, p float64, k int, seed int64) (*csp.CSP[int, int], []Edge, error) {
	if n <= 0 {
		return nil, nil, errors.New("graph coloring: n must be positive")
	}
	if k <= 0 {
		return nil, nil, errors.New("graph coloring: k must be positive")
	}
	rng := rand.New(rand.NewSource(seed))

	var edges []Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				edges = append(edges, Edge{A: i, B: j})
			}
		}
	}

	built, err := buildColoring(n, k, edges)
	return built, edges, err
}

// GraphColoringFromEdges frames a caller-supplied edge list as a k-coloring
// CSP over vertices 0 through the largest index the edges mention; vertices
// in that range that no edge mentions are included, unconstrained.
func GraphColoringFromEdges(edges []Edge, k int) (*csp.CSP[int, int], error) {
	if k <= 0 {
		return nil, errors.New("graph coloring: k must be positive")
	}
	vertexSet := map[int]struct{}{}
	for _, e := range edges {
		vertexSet[e.A] = struct{}{}
		vertexSet[e.B] = struct{}{}
	}
	n := 0
	for v := range vertexSet {
		if v+1 > n {
			n = v + 1
		}
	}
	return buildColoring(n, k, edges)
}

func buildColoring(n, k int, edges []Edge) (*csp.CSP[int, int], error) {
	colors := make([]int, k)
	for c := range colors {
		colors[c] = c
	}

	builder := csp.NewBuilder[int, int]()
	for v := 0; v < n; v++ {
		builder.AddVariable(v, csp.NewDomain(colors...))
	}
	for _, e := range edges {
		builder.AddConstraint(csp.NewNotEqual[int, int](e.A, e.B))
	}

	built, err := builder.Build()
	if err != nil {
		return nil, errors.Wrap(err, "graph coloring")
	}
	return built, nil
}
