package csp

// TrailEntry records a single domain removal: value val was removed from
// variable v's current domain, and constraintIdx is the constraint blamed
// for ruling it out (used both by CBJ's conflict sets and by dom/wdeg's
// weight bump on wipeout).
type TrailEntry[V comparable, D comparable] struct {
	Var           V
	Val           D
	ConstraintIdx int
}

// Trail is an ordered removal log. Restoring it, in any order, fully
// reverses the propagation call that produced it (spec §4.3's
// restorability guarantee) — weight changes are never part of the trail,
// since dom/wdeg weights must accumulate across the whole search.
type Trail[V comparable, D comparable] []TrailEntry[V, D]

// Undo replays the trail against domains, restoring every removed value.
// Order doesn't matter for correctness (Restore is idempotent), but undoing
// in reverse keeps behavior symmetric with how the trail was built.
func (t Trail[V, D]) Undo(domains map[V]*Domain[D]) {
	for i := len(t) - 1; i >= 0; i-- {
		e := t[i]
		domains[e.Var].Restore(e.Val)
	}
}

// Wipeout reports that Var's current domain became empty during
// propagation, and names the constraint blamed for the last removal that
// caused it.
type Wipeout[V comparable] struct {
	Var           V
	ConstraintIdx int
}

// Arc is a directed pair of variables sharing at least one constraint,
// the unit of work in the AC-3 worklist.
type Arc[V comparable] struct {
	Xi, Xj V
}

// constraintsBetween returns the indices of constraints whose scope
// contains both xi and xj. AC-3's revise only filters through constraints
// it can fully evaluate from just (xi, xj)'s values, which in this engine
// means genuinely binary constraints over exactly {xi, xj} — AllDifferent
// is always pre-expanded into such pairs (spec §4.1), so this is sufficient
// for every constraint shape the engine accepts.
func constraintsBetween[V comparable, D comparable](csp *CSP[V, D], xi, xj V) []int {
	var out []int
	for _, idx := range csp.ConstraintsOf(xi) {
		scope := csp.ConstraintAt(idx).Scope()
		hasXj := false
		for _, v := range scope {
			if v == xj {
				hasXj = true
				break
			}
		}
		if hasXj {
			out = append(out, idx)
		}
	}
	return out
}

// ForwardCheck implements spec §4.3's Forward Checking: after assigning
// X=v (already reflected in assignment and in domains[x] having been
// reduced to {v} by the caller), remove from every unassigned neighbor's
// current domain any value inconsistent with the assignment.
//
// deadline, if non-nil, is polled once per neighbor visited — one
// propagation worklist iteration in FC's terms — so a caller's time budget
// is honored mid-propagation rather than only between node expansions. A
// nil deadline never aborts, which is how tests drive FC deadline-free.
func ForwardCheck[V comparable, D comparable](
	csp *CSP[V, D],
	domains map[V]*Domain[D],
	assignment map[V]D,
	x V,
	checks *int,
	deadline func() bool,
) (Trail[V, D], *Wipeout[V], bool) {
	var trail Trail[V, D]

	for y := range csp.Neighbors(x) {
		if deadline != nil && deadline() {
			return trail, nil, true
		}
		if _, assigned := assignment[y]; assigned {
			continue
		}
		yDomain := domains[y]
		if yDomain.IsEmpty() {
			continue
		}

		between := constraintsBetween(csp, x, y)
		if len(between) == 0 {
			continue
		}

		lastCulprit := between[0]
		for _, b := range yDomain.Values() {
			trial := make(map[V]D, len(assignment)+1)
			for k, v := range assignment {
				trial[k] = v
			}
			trial[y] = b

			consistent := true
			for _, idx := range between {
				if checks != nil {
					*checks++
				}
				if !csp.ConstraintAt(idx).IsSatisfied(trial) {
					consistent = false
					lastCulprit = idx
					break
				}
			}
			if !consistent {
				yDomain.Remove(b)
				trail = append(trail, TrailEntry[V, D]{Var: y, Val: b, ConstraintIdx: lastCulprit})
			}
		}

		if yDomain.IsEmpty() {
			return trail, &Wipeout[V]{Var: y, ConstraintIdx: lastCulprit}, false
		}
	}

	return trail, nil, false
}

// revise makes xi arc-consistent with xj, removing from xi's current
// domain any value with no supporting value left in xj's current domain.
//
// When the arc's sole constraint implements the supporter capability, its
// Supports method answers "does some xjDomain value still make (xi=a,
// xj=b) satisfiable" directly, sparing revise the brute-force scan over
// every xj value. Arcs with no such fast path (or more than one constraint
// between xi and xj) fall back to evaluating IsSatisfied against every
// candidate b, per spec §4.1's documented default.
func revise[V comparable, D comparable](
	csp *CSP[V, D],
	domains map[V]*Domain[D],
	xi, xj V,
	checks *int,
) (Trail[V, D], bool) {
	between := constraintsBetween(csp, xi, xj)
	if len(between) == 0 {
		return nil, false
	}

	var fastSupport func(a D) bool
	if len(between) == 1 {
		if sup, ok := csp.ConstraintAt(between[0]).(supporter[V, D]); ok {
			xjDomain := domains[xj]
			fastSupport = func(a D) bool {
				if checks != nil {
					*checks++
				}
				return sup.Supports(xi, a, xj, xjDomain)
			}
		}
	}

	var trail Trail[V, D]
	xiDomain := domains[xi]
	xjValues := domains[xj].Values()

	for _, a := range xiDomain.Values() {
		var supported bool
		if fastSupport != nil {
			supported = fastSupport(a)
		} else {
			for _, b := range xjValues {
				trial := map[V]D{xi: a, xj: b}
				allSatisfied := true
				for _, idx := range between {
					if checks != nil {
						*checks++
					}
					if !csp.ConstraintAt(idx).IsSatisfied(trial) {
						allSatisfied = false
						break
					}
				}
				if allSatisfied {
					supported = true
					break
				}
			}
		}
		if !supported {
			xiDomain.Remove(a)
			trail = append(trail, TrailEntry[V, D]{Var: xi, Val: a, ConstraintIdx: between[0]})
		}
	}

	return trail, len(trail) > 0
}

// InitialArcs returns every arc in the constraint graph, for a from-scratch
// AC-3 sweep (e.g. establishing root consistency before search begins).
func InitialArcs[V comparable, D comparable](csp *CSP[V, D]) []Arc[V] {
	var arcs []Arc[V]
	for _, v := range csp.Variables() {
		for n := range csp.Neighbors(v) {
			arcs = append(arcs, Arc[V]{Xi: n, Xj: v})
		}
	}
	return arcs
}

// ArcsAfterAssignment returns the arcs to seed AC-3 with after assigning
// x, per spec §4.3: every (Y, X) for Y a still-unassigned neighbor of X.
func ArcsAfterAssignment[V comparable, D comparable](
	csp *CSP[V, D],
	assignment map[V]D,
	x V,
) []Arc[V] {
	var arcs []Arc[V]
	for y := range csp.Neighbors(x) {
		if _, assigned := assignment[y]; assigned {
			continue
		}
		arcs = append(arcs, Arc[V]{Xi: y, Xj: x})
	}
	return arcs
}

// AC3 runs the arc-consistency algorithm over a worklist seeded with queue,
// maintained FIFO. Arcs are appended in Go map iteration order over each
// variable's neighbors (as are the arcs from InitialArcs and
// ArcsAfterAssignment), so the order of revisions, the constraint-check
// count and the reported wipeout can differ between runs; when no wipeout
// occurs, the resulting domains do not. assignment is consulted only to decide which
// neighbors are worth re-enqueueing, never to decide if a value survives
// revise.
//
// deadline, if non-nil, is polled at every worklist iteration (spec §5's
// requirement that the deadline be checked "at every propagation worklist
// iteration", not only at node expansions) and aborts the sweep, reporting
// timedOut, the moment it fires. A nil deadline never aborts.
func AC3[V comparable, D comparable](
	csp *CSP[V, D],
	domains map[V]*Domain[D],
	assignment map[V]D,
	queue []Arc[V],
	checks *int,
	deadline func() bool,
) (trail Trail[V, D], wipeout *Wipeout[V], timedOut bool) {
	work := append([]Arc[V]{}, queue...)

	for len(work) > 0 {
		if deadline != nil && deadline() {
			return trail, nil, true
		}

		arc := work[0]
		work = work[1:]

		revTrail, revised := revise(csp, domains, arc.Xi, arc.Xj, checks)
		if !revised {
			continue
		}
		trail = append(trail, revTrail...)

		if domains[arc.Xi].IsEmpty() {
			culprit := revTrail[len(revTrail)-1].ConstraintIdx
			return trail, &Wipeout[V]{Var: arc.Xi, ConstraintIdx: culprit}, false
		}

		for xk := range csp.Neighbors(arc.Xi) {
			if xk == arc.Xj {
				continue
			}
			if _, assigned := assignment[xk]; assigned {
				continue
			}
			work = append(work, Arc[V]{Xi: xk, Xj: arc.Xi})
		}
	}

	return trail, nil, false
}
