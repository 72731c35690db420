package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/itemreport/internal/report"
)

// ErrUnknownReportType is wrapped by ConfigurationError.
var ErrUnknownReportType = errors.New("unknown report type")

// ConfigurationError is returned when a report type has no registered formatter.
// It is deterministic for a given pipeline and should not be retried.
type ConfigurationError struct {
	// ReportType is the requested type that could not be resolved.
	ReportType report.Type

	// Available lists the types the pipeline can render.
	Available []report.Type
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	available := make([]string, len(e.Available))
	for i, t := range e.Available {
		available[i] = string(t)
	}
	return fmt.Sprintf("no formatter registered for report type %q (available: %s)",
		e.ReportType, strings.Join(available, ", "))
}

// Unwrap returns ErrUnknownReportType so callers can use errors.Is.
func (e *ConfigurationError) Unwrap() error {
	return ErrUnknownReportType
}
