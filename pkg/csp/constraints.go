package csp

import "fmt"

// NotEqual is a binary disequality constraint: the two variables, once both
// bound, must not hold the same value. It's the building block AllDifferent
// expands into (spec §4.1: "AllDifferent is represented as a collection of
// binary not-equal constraints over every pair in its scope").
type NotEqual[V comparable, D comparable] struct {
	X, Y V
}

// NewNotEqual constructs a NotEqual constraint between x and y.
func NewNotEqual[V comparable, D comparable](x, y V) *NotEqual[V, D] {
	return &NotEqual[V, D]{X: x, Y: y}
}

// Scope implements Constraint.
func (c *NotEqual[V, D]) Scope() []V { return []V{c.X, c.Y} }

// IsSatisfied implements Constraint.
func (c *NotEqual[V, D]) IsSatisfied(assignment map[V]D) bool {
	vx, okX := assignment[c.X]
	vy, okY := assignment[c.Y]
	if !okX || !okY {
		return true
	}
	return vx != vy
}

// Supports implements the optional supporter capability: a in xi's domain
// survives against xj iff some value of xj other than a itself is present
// (or xi and xj aren't actually the pair this constraint ranges over).
func (c *NotEqual[V, D]) Supports(xi V, a D, xj V, xjDomain *Domain[D]) bool {
	if (xi != c.X || xj != c.Y) && (xi != c.Y || xj != c.X) {
		return true
	}
	for _, b := range xjDomain.Values() {
		if b != a {
			return true
		}
	}
	return false
}

// Name implements Named.
func (c *NotEqual[V, D]) Name() string {
	return fmt.Sprintf("NotEqual(%v,%v)", c.X, c.Y)
}

// PredicateConstraint wraps an arbitrary user-supplied predicate over an
// explicit scope. This is the "custom user-provided predicate" variant of
// the constraint sum type described in the design notes: rather than a deep
// hierarchy of constraint kinds, open polymorphism is achieved by letting a
// closure stand in for bespoke constraint logic.
type PredicateConstraint[V comparable, D comparable] struct {
	scope     []V
	label     string
	predicate func(assignment map[V]D) bool
}

// NewPredicateConstraint builds a constraint with the given scope whose
// satisfaction is decided entirely by predicate. predicate must treat
// variables in scope that are absent from assignment as unconstrained, per
// the Constraint.IsSatisfied contract.
func NewPredicateConstraint[V comparable, D comparable](
	label string,
	scope []V,
	predicate func(assignment map[V]D) bool,
) *PredicateConstraint[V, D] {
	scopeCopy := make([]V, len(scope))
	copy(scopeCopy, scope)
	return &PredicateConstraint[V, D]{scope: scopeCopy, label: label, predicate: predicate}
}

// Scope implements Constraint.
func (c *PredicateConstraint[V, D]) Scope() []V { return c.scope }

// IsSatisfied implements Constraint.
func (c *PredicateConstraint[V, D]) IsSatisfied(assignment map[V]D) bool {
	return c.predicate(assignment)
}

// Name implements Named.
func (c *PredicateConstraint[V, D]) Name() string {
	if c.label == "" {
		return "PredicateConstraint"
	}
	return c.label
}

// AllDifferent expands a scope into the pairwise NotEqual constraints that
// jointly express "all of these variables take distinct values." Expanding
// up front, rather than special-casing an n-ary AllDifferent, keeps
// propagation and dom/wdeg uniform at binary-constraint granularity
// throughout the engine (spec §9's documented trade-off against a Régin-style
// n-ary propagator, which is an explicit non-goal).
func AllDifferent[V comparable, D comparable](scope []V) []Constraint[V, D] {
	out := make([]Constraint[V, D], 0, len(scope)*(len(scope)-1)/2)
	for i := 0; i < len(scope); i++ {
		for j := i + 1; j < len(scope); j++ {
			out = append(out, NewNotEqual[V, D](scope[i], scope[j]))
		}
	}
	return out
}
