package csp

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Family is the first-class "algorithm family" field the design notes call
// for, replacing the source's overloaded single "inference" option (which
// conflated "no inference" / "forward checking" / "MAC" with the
// fundamentally different min-conflicts local search).
type Family int

const (
	// FamilySystematic runs the backtracking searcher (spec §4.5),
	// optionally with forward checking or MAC inference and with CBJ.
	FamilySystematic Family = iota
	// FamilyMinConflicts runs the min-conflicts local searcher (spec
	// §4.6); VariableOrder, ValueOrder, and UseCBJ are ignored.
	FamilyMinConflicts
)

// Inference selects the systematic searcher's propagation strategy.
type Inference int

const (
	InferenceNone Inference = iota
	InferenceFC
	InferenceMAC
)

// VariableOrder selects the systematic searcher's variable heuristic.
type VariableOrder int

const (
	VariableOrderDefault VariableOrder = iota
	VariableOrderMRV
	VariableOrderDomWdeg
)

// ValueOrder selects the systematic searcher's value heuristic.
type ValueOrder int

const (
	ValueOrderDefault ValueOrder = iota
	ValueOrderLCV
)

// Config collects every option spec §4.7 enumerates. The zero Config is not
// directly usable — call DefaultConfig and override fields, or construct one
// via the Parse* helpers from string options (the shape a CLI or benchmark
// config file naturally arrives in).
type Config struct {
	Family        Family
	Inference     Inference
	VariableOrder VariableOrder
	ValueOrder    ValueOrder
	UseCBJ        bool

	// MaxSteps bounds min-conflicts local search. Ignored by the
	// systematic searcher.
	MaxSteps int

	// TimeLimit bounds wall-clock time for any mode. Zero means
	// unbounded.
	TimeLimit time.Duration

	// Seed drives min-conflicts' random choices. Ignored by the
	// systematic searcher, which is fully deterministic given Config.
	Seed int64

	// Logger receives structured progress/diagnostic events. Defaults
	// to logrus.StandardLogger() if nil.
	Logger *logrus.Logger
}

// DefaultConfig returns the systematic searcher with no inference, default
// orderings, CBJ disabled, and a generous step budget — the same defaults
// as the source's backtracking_search/min_conflicts signatures.
func DefaultConfig() Config {
	return Config{
		Family:        FamilySystematic,
		Inference:     InferenceNone,
		VariableOrder: VariableOrderDefault,
		ValueOrder:    ValueOrderDefault,
		MaxSteps:      100000,
	}
}

// Validate checks for the InvalidConfig conditions spec §7 names: negative
// budgets, and (via the Parse* helpers below) unknown option strings.
func (c Config) Validate() error {
	if c.MaxSteps < 0 {
		return newInvalidConfigError(fmt.Sprintf("max_steps must be non-negative, got %d", c.MaxSteps))
	}
	if c.Family == FamilyMinConflicts && c.MaxSteps == 0 {
		return newInvalidConfigError("max_steps must be positive for min_conflicts")
	}
	if c.TimeLimit < 0 {
		return newInvalidConfigError(fmt.Sprintf("time_limit must be non-negative, got %s", c.TimeLimit))
	}
	return nil
}

func (c Config) logger() *logrus.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return logrus.StandardLogger()
}

// ParseInference maps the CLI/config-file strings from spec §4.7's table
// ("none", "fc", "mac", "min_conflicts") onto Family+Inference. Any other
// string is an InvalidConfig error.
func ParseInference(s string) (Family, Inference, error) {
	switch s {
	case "none":
		return FamilySystematic, InferenceNone, nil
	case "fc":
		return FamilySystematic, InferenceFC, nil
	case "mac":
		return FamilySystematic, InferenceMAC, nil
	case "min_conflicts":
		return FamilyMinConflicts, InferenceNone, nil
	default:
		return 0, 0, newInvalidConfigError(fmt.Sprintf("unknown inference option %q", s))
	}
}

// ParseVariableOrder maps "default", "mrv", "dom_wdeg" onto VariableOrder.
func ParseVariableOrder(s string) (VariableOrder, error) {
	switch s {
	case "", "default":
		return VariableOrderDefault, nil
	case "mrv":
		return VariableOrderMRV, nil
	case "dom_wdeg":
		return VariableOrderDomWdeg, nil
	default:
		return 0, newInvalidConfigError(fmt.Sprintf("unknown variable_order option %q", s))
	}
}

// ParseValueOrder maps "default", "lcv" onto ValueOrder.
func ParseValueOrder(s string) (ValueOrder, error) {
	switch s {
	case "", "default":
		return ValueOrderDefault, nil
	case "lcv":
		return ValueOrderLCV, nil
	default:
		return 0, newInvalidConfigError(fmt.Sprintf("unknown value_order option %q", s))
	}
}
