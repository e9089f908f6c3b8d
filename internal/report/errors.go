package report

import (
	"fmt"
	"strings"
)

// UnknownReportError indicates the requested report name matched neither a
// registered name nor an alias.
type UnknownReportError struct {
	// Name is the report name that was requested.
	Name string
}

func (e *UnknownReportError) Error() string {
	return fmt.Sprintf("unknown report %q: no registered report or alias by that name", e.Name)
}

// UnsupportedKindError indicates the report exists but advertises no format
// for the requested output kind.
type UnsupportedKindError struct {
	// Name is the report the kind was requested for.
	Name string
	// Kind is the requested (pre-canonicalization) kind.
	Kind Kind
	// Available is the union of kinds the report's formats advertise.
	Available []Kind
}

func (e *UnsupportedKindError) Error() string {
	kinds := make([]string, len(e.Available))
	for i, k := range e.Available {
		kinds[i] = string(k)
	}
	return fmt.Sprintf("report %q does not support output kind %s (available: %s)",
		e.Name, e.Kind, strings.Join(kinds, ", "))
}

// MissingParametersError indicates required parameters were absent and the
// binding policy forbade prompting for them.
type MissingParametersError struct {
	// Report is the report being bound.
	Report string
	// Missing lists every absent required parameter name, in declaration order.
	Missing []string
}

func (e *MissingParametersError) Error() string {
	return fmt.Sprintf("report %q is missing required parameters: %s",
		e.Report, strings.Join(e.Missing, ", "))
}
