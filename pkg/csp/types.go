// Package csp implements a generic finite-domain constraint satisfaction
// engine: systematic backtracking search (with optional conflict-directed
// backjumping), forward checking and AC-3 propagation, adaptive variable and
// value ordering heuristics, and min-conflicts local search.
//
// The engine is generic over a variable identifier type V and a value type
// D, both constrained to comparable so they can key Go maps directly.
// Ordering, where the spec requires it for determinism (tie-breaking,
// iteration order), is realized positionally — a variable's index in
// CSP.Variables(), a value's index in its Domain's iteration order — rather
// than through a total-order type constraint, since V and D are frequently
// tuple-shaped (e.g. Sudoku's (row, col)) and Go generics have no orderable
// constraint for arbitrary struct types.
package csp

import "fmt"

// Constraint is the capability every constraint must provide: a scope (the
// variables it ranges over) and a satisfaction predicate over partial
// assignments. Unbound variables in the scope are ignored by IsSatisfied —
// constraints are required to treat absence from the assignment map as "not
// yet relevant" rather than raising an error.
type Constraint[V comparable, D comparable] interface {
	// Scope returns the ordered sequence of variables this constraint
	// ranges over. Length is always at least 1.
	Scope() []V

	// IsSatisfied reports whether the bound variables in assignment leave
	// the constraint unviolated (true) or violate it (false). Variables in Scope that are absent
	// from assignment are ignored; only constraints whose full scope is
	// bound can actually be violated by a partial assignment, but
	// implementations are free to report false early on any inconsistent
	// subset they can detect.
	IsSatisfied(assignment map[V]D) bool
}

// supporter is the optional capability described in the data model as
// "supports": for a binary constraint between xi and xj, does some value of
// xj still make (xi=a, xj=b) satisfiable? Constraints that don't implement
// supporter get the propagation engine's brute-force default, which tries
// every value currently in xj's domain.
type supporter[V comparable, D comparable] interface {
	Supports(xi V, a D, xj V, xjDomain *Domain[D]) bool
}

// Named is implemented by constraints that want a human-readable label in
// logs and error messages. Optional; constraints without a Named
// implementation are logged by their Go type name.
type Named interface {
	Name() string
}

// constraintLabel returns c.Name() when c implements Named, and c's Go type
// name otherwise — the one place the engine decides how a constraint is
// identified in logs and error messages.
func constraintLabel[V comparable, D comparable](c Constraint[V, D]) string {
	if named, ok := c.(Named); ok {
		return named.Name()
	}
	return fmt.Sprintf("%T", c)
}
