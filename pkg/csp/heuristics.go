package csp

import (
	"math"
	"sort"
)

// unassignedVariables returns every variable in csp.Variables() not present
// in assignment, preserving CSP order (the order ties are ultimately broken
// in, per spec §4.4).
func unassignedVariables[V comparable, D comparable](csp *CSP[V, D], assignment map[V]D) []V {
	out := make([]V, 0, len(csp.Variables())-len(assignment))
	for _, v := range csp.Variables() {
		if _, ok := assignment[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}

// futureDegree counts v's neighbors that are not yet assigned.
func futureDegree[V comparable, D comparable](csp *CSP[V, D], assignment map[V]D, v V) int {
	n := 0
	for neighbor := range csp.Neighbors(v) {
		if _, ok := assignment[neighbor]; !ok {
			n++
		}
	}
	return n
}

// SelectMRV implements the MRV+degree variable-ordering heuristic: minimize
// current-domain size, break ties by maximum future degree, and break
// remaining ties by position in CSP.Variables() for determinism.
func SelectMRV[V comparable, D comparable](
	csp *CSP[V, D],
	domains map[V]*Domain[D],
	assignment map[V]D,
) V {
	var best V
	bestSet := false
	bestSize := math.MaxInt
	bestDegree := -1

	for _, v := range unassignedVariables(csp, assignment) {
		size := domains[v].Len()
		switch {
		case !bestSet || size < bestSize:
			best, bestSet, bestSize = v, true, size
			bestDegree = futureDegree(csp, assignment, v)
		case size == bestSize:
			deg := futureDegree(csp, assignment, v)
			if deg > bestDegree {
				best, bestDegree = v, deg
			}
		}
	}

	return best
}

// weightedDegree sums the weights of constraints on v that still have at
// least one other unassigned variable in their scope, per spec §4.4's
// wdeg(X) definition.
func weightedDegree[V comparable, D comparable](
	csp *CSP[V, D],
	assignment map[V]D,
	weights []int,
	v V,
) int {
	total := 0
	for _, idx := range csp.ConstraintsOf(v) {
		hasOtherUnassigned := false
		for _, sv := range csp.ConstraintAt(idx).Scope() {
			if sv == v {
				continue
			}
			if _, assigned := assignment[sv]; !assigned {
				hasOtherUnassigned = true
				break
			}
		}
		if hasOtherUnassigned {
			total += weights[idx]
		}
	}
	return total
}

// SelectDomWdeg implements the dom/wdeg adaptive variable-ordering
// heuristic: minimize |domain(X)| / wdeg(X), treating wdeg(X)=0 as +Inf
// (never preferred unless every candidate is +Inf, in which case MRV
// decides). Ties are broken by CSP.Variables() order.
func SelectDomWdeg[V comparable, D comparable](
	csp *CSP[V, D],
	domains map[V]*Domain[D],
	assignment map[V]D,
	weights []int,
) V {
	unassigned := unassignedVariables(csp, assignment)

	bestRatio := math.Inf(1)
	var best V
	bestSet := false
	anyFinite := false

	for _, v := range unassigned {
		wdeg := weightedDegree(csp, assignment, weights, v)
		ratio := math.Inf(1)
		if wdeg > 0 {
			ratio = float64(domains[v].Len()) / float64(wdeg)
			anyFinite = true
		}
		if !bestSet || ratio < bestRatio {
			best, bestSet, bestRatio = v, true, ratio
		}
	}

	if anyFinite {
		return best
	}
	return SelectMRV(csp, domains, assignment)
}

// OrderLCV implements the Least Constraining Value heuristic: sort x's
// current-domain candidates ascending by how many values they would
// eliminate from unassigned neighbors' current domains under a one-step
// lookahead.
func OrderLCV[V comparable, D comparable](
	csp *CSP[V, D],
	domains map[V]*Domain[D],
	assignment map[V]D,
	x V,
) []D {
	candidates := domains[x].Values()
	if len(candidates) <= 1 {
		return candidates
	}

	eliminated := make(map[D]int, len(candidates))
	for _, v := range candidates {
		count := 0
		for y := range csp.Neighbors(x) {
			if _, assigned := assignment[y]; assigned {
				continue
			}
			between := constraintsBetween(csp, x, y)
			if len(between) == 0 {
				continue
			}
			for _, b := range domains[y].Values() {
				trial := map[V]D{x: v, y: b}
				ruledOut := false
				for _, idx := range between {
					if !csp.ConstraintAt(idx).IsSatisfied(trial) {
						ruledOut = true
						break
					}
				}
				if ruledOut {
					count++
				}
			}
		}
		eliminated[v] = count
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return eliminated[candidates[i]] < eliminated[candidates[j]]
	})
	return candidates
}
