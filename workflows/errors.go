// workflows/errors.go
package workflows

import "fmt"

// ValidationError: the request itself is malformed (missing field, bad
// value, unresolvable office). Maps to HTTP 400. No state change.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validationf builds a ValidationError.
func Validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// PreconditionError: the request was well-formed but a business
// invariant blocks it (mismatched custodians, disposed asset, terminal
// requisition, insufficient stock). Maps to HTTP 409; the transaction
// has been rolled back.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string { return e.Reason }

// Preconditionf builds a PreconditionError.
func Preconditionf(format string, args ...interface{}) *PreconditionError {
	return &PreconditionError{Reason: fmt.Sprintf(format, args...)}
}
