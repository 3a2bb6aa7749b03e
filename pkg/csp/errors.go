package csp

import "github.com/pkg/errors"

// MalformedCSPError reports a structural problem with a CSP discovered at
// construction time: a constraint referencing a variable that was never
// added, or a variable given an empty original domain.
type MalformedCSPError struct {
	Reason string
}

func (e *MalformedCSPError) Error() string {
	return "malformed csp: " + e.Reason
}

func newMalformedCSPError(reason string) error {
	return errors.WithStack(&MalformedCSPError{Reason: reason})
}

// InvalidConfigError reports an unrecognized option value or an illegal
// budget (negative max steps, negative time limit) supplied to Solve.
type InvalidConfigError struct {
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return "invalid config: " + e.Reason
}

func newInvalidConfigError(reason string) error {
	return errors.WithStack(&InvalidConfigError{Reason: reason})
}
