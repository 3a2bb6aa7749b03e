package csp

import (
	"time"

	"github.com/sirupsen/logrus"
)

// backjumpSignal is what an exhausted variable frame hands its caller when
// CBJ is enabled: skip straight back to targetLevel instead of the
// immediately preceding level, carrying the accumulated conflict set so the
// target frame can merge it into its own before trying its next value.
type backjumpSignal[V comparable] struct {
	targetLevel int
	conflict    map[V]struct{}
}

// searcher holds one Solve call's exclusive mutable search state. It is
// never shared across goroutines — spec §5 confines a single systematic
// search to one goroutine; concurrency happens only across independent
// searchers, each with their own CSP clone.
type searcher[V comparable, D comparable] struct {
	csp        *CSP[V, D]
	domains    map[V]*Domain[D]
	assignment map[V]D
	levelOf    map[V]int
	cfg        Config
	stats      *Statistics

	deadline    time.Time
	hasDeadline bool
	logger      *logrus.Logger
}

// backtrackSearch runs spec §4.5's systematic searcher (chronological
// backtracking, or CBJ when cfg.UseCBJ is set), optionally interleaved with
// forward checking or MAC per cfg.Inference.
func backtrackSearch[V comparable, D comparable](csp *CSP[V, D], cfg Config, stats *Statistics) (map[V]D, Status) {
	s := &searcher[V, D]{
		csp:        csp,
		domains:    csp.CurrentDomains(),
		assignment: make(map[V]D, len(csp.Variables())),
		levelOf:    make(map[V]int, len(csp.Variables())),
		cfg:        cfg,
		stats:      stats,
		logger:     cfg.logger(),
	}
	if cfg.TimeLimit > 0 {
		s.deadline = time.Now().Add(cfg.TimeLimit)
		s.hasDeadline = true
	}

	if cfg.Inference == InferenceMAC {
		trail, wipeout, timedOut := AC3(csp, s.domains, s.assignment, InitialArcs(csp), &stats.ConstraintChecks, s.budgetExceeded)
		stats.Propagations++
		if timedOut {
			trail.Undo(s.domains)
			return nil, StatusBudgetExceeded
		}
		if wipeout != nil {
			s.bumpWeight(wipeout.ConstraintIdx)
			trail.Undo(s.domains)
			return nil, StatusUnsolvable
		}
	}

	solved, _ := s.recurse(0)
	switch {
	case solved:
		s.logger.Debugf("search solved run=%s assignments=%d backtracks=%d", stats.RunID, stats.Assignments, stats.Backtracks)
		return s.assignment, StatusSolved
	case s.hasDeadline && s.budgetExceeded():
		s.logger.Warnf("search budget exceeded run=%s assignments=%d", stats.RunID, stats.Assignments)
		return nil, StatusBudgetExceeded
	default:
		s.logger.Debugf("search proved unsolvable run=%s assignments=%d backtracks=%d", stats.RunID, stats.Assignments, stats.Backtracks)
		return nil, StatusUnsolvable
	}
}

func (s *searcher[V, D]) budgetExceeded() bool {
	return s.hasDeadline && time.Now().After(s.deadline)
}

// bumpWeight increments the weight of a constraint blamed for a wipeout.
// Weights only change under the dom/wdeg variable order.
func (s *searcher[V, D]) bumpWeight(constraintIdx int) {
	if s.cfg.VariableOrder != VariableOrderDomWdeg {
		return
	}
	s.csp.Weights[constraintIdx]++
	s.logger.Debugf("bumped weight on %s to %d", constraintLabel(s.csp.ConstraintAt(constraintIdx)), s.csp.Weights[constraintIdx])
}

func (s *searcher[V, D]) selectVariable() V {
	switch s.cfg.VariableOrder {
	case VariableOrderMRV:
		return SelectMRV(s.csp, s.domains, s.assignment)
	case VariableOrderDomWdeg:
		return SelectDomWdeg(s.csp, s.domains, s.assignment, s.csp.Weights)
	default:
		for _, v := range s.csp.Variables() {
			if _, ok := s.assignment[v]; !ok {
				return v
			}
		}
		var zero V
		return zero
	}
}

func (s *searcher[V, D]) orderValues(x V) []D {
	if s.cfg.ValueOrder == ValueOrderLCV {
		ordered := OrderLCV(s.csp, s.domains, s.assignment, x)
		out := make([]D, len(ordered))
		copy(out, ordered)
		return out
	}
	values := s.domains[x].Values()
	out := make([]D, len(values))
	copy(out, values)
	return out
}

// assignedCulpritsOf adds to conflict every variable in constraint idx's
// scope, other than exclude, that is already assigned — the set CBJ blames
// for the constraint's violation or wipeout.
func (s *searcher[V, D]) assignedCulpritsOf(idx int, exclude V, conflict map[V]struct{}) {
	for _, sv := range s.csp.ConstraintAt(idx).Scope() {
		if sv == exclude {
			continue
		}
		if _, assigned := s.assignment[sv]; assigned {
			conflict[sv] = struct{}{}
		}
	}
}

// recurse implements spec §4.5's recursion. level is the number of
// variables assigned along the current path — both the solved check and
// the coordinate a backjump target is named by.
func (s *searcher[V, D]) recurse(level int) (bool, *backjumpSignal[V]) {
	if s.budgetExceeded() {
		return false, nil
	}
	if level == len(s.csp.Variables()) {
		return true, nil
	}

	x := s.selectVariable()
	conflict := make(map[V]struct{})

	for _, value := range s.orderValues(x) {
		if s.budgetExceeded() {
			return false, nil
		}

		violated := s.csp.ViolatedOnAssign(x, value, s.assignment, &s.stats.ConstraintChecks)
		if len(violated) > 0 {
			for _, idx := range violated {
				s.assignedCulpritsOf(idx, x, conflict)
			}
			continue
		}

		s.assignment[x] = value
		s.levelOf[x] = level
		s.stats.Assignments++

		others := s.domains[x].Values()
		for _, o := range others {
			if o != value {
				s.domains[x].Remove(o)
			}
		}

		var trail Trail[V, D]
		var wipeout *Wipeout[V]
		var timedOut bool
		switch s.cfg.Inference {
		case InferenceFC:
			trail, wipeout, timedOut = ForwardCheck(s.csp, s.domains, s.assignment, x, &s.stats.ConstraintChecks, s.budgetExceeded)
			s.stats.Propagations++
		case InferenceMAC:
			trail, wipeout, timedOut = AC3(s.csp, s.domains, s.assignment, ArcsAfterAssignment(s.csp, s.assignment, x), &s.stats.ConstraintChecks, s.budgetExceeded)
			s.stats.Propagations++
		}

		var bj *backjumpSignal[V]
		solved := false
		switch {
		case timedOut:
		case wipeout != nil:
			s.bumpWeight(wipeout.ConstraintIdx)
			s.assignedCulpritsOf(wipeout.ConstraintIdx, x, conflict)
			conflict[x] = struct{}{}
		default:
			solved, bj = s.recurse(level + 1)
		}

		if trail != nil {
			trail.Undo(s.domains)
		}
		for _, o := range others {
			if o != value {
				s.domains[x].Restore(o)
			}
		}

		if solved {
			return true, nil
		}

		delete(s.assignment, x)
		delete(s.levelOf, x)

		if timedOut {
			return false, nil
		}
		s.stats.Backtracks++

		if bj != nil {
			if !s.cfg.UseCBJ || bj.targetLevel != level {
				return false, bj
			}
			for v := range bj.conflict {
				if v != x {
					conflict[v] = struct{}{}
				}
			}
		}
	}

	if !s.cfg.UseCBJ {
		return false, nil
	}

	target := -1
	for v := range conflict {
		if lvl, ok := s.levelOf[v]; ok && lvl < level && lvl > target {
			target = lvl
		}
	}
	if target < 0 {
		return false, nil
	}
	return false, &backjumpSignal[V]{targetLevel: target, conflict: conflict}
}
