package report

import (
	"errors"
	"fmt"
)

// ErrNotImplemented is wrapped by NotImplementedError.
// It signals a formatter that is missing one of its fragments, which is a
// programming defect rather than a runtime condition.
var ErrNotImplemented = errors.New("formatter fragment not implemented")

// ErrNilFormatter is returned when Render is called without a formatter.
var ErrNilFormatter = errors.New("nil formatter")

// NotImplementedError reports which fragment of a formatter is missing.
type NotImplementedError struct {
	// Fragment is the name of the unimplemented method (Header, Body, Footer).
	Fragment string
}

// Error implements the error interface.
func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("formatter must implement %s", e.Fragment)
}

// Unwrap returns ErrNotImplemented so callers can use errors.Is.
func (e *NotImplementedError) Unwrap() error {
	return ErrNotImplemented
}
