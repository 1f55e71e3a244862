package uiconf

import (
	"fmt"
	"strings"
)

// Reason classifies why an override entry could not be applied.
type Reason int

const (
	// ReasonMalformedPath means the key did not split into exactly
	// tab/control/property.
	ReasonMalformedPath Reason = iota

	// ReasonUnresolvedControl means no registered control matched the
	// control segment, even approximately.
	ReasonUnresolvedControl

	// ReasonUnknownProperty means the control does not declare the
	// requested property.
	ReasonUnknownProperty

	// ReasonTypeMismatch means the value could not be coerced to the
	// property's declared type.
	ReasonTypeMismatch

	// ReasonOutOfRange means the property declares an inconsistent range
	// (minimum above maximum), so no value can be applied.
	ReasonOutOfRange
)

// String returns the reason's report label.
func (r Reason) String() string {
	switch r {
	case ReasonMalformedPath:
		return "malformed-path"
	case ReasonUnresolvedControl:
		return "unresolved-control"
	case ReasonUnknownProperty:
		return "unknown-property"
	case ReasonTypeMismatch:
		return "type-mismatch"
	case ReasonOutOfRange:
		return "out-of-range"
	default:
		return "unknown"
	}
}

// Error records one failed override entry. Failures never abort the pass;
// they are collected and shown once at startup.
type Error struct {
	// Path is the original document key, verbatim.
	Path string

	// Reason classifies the failure.
	Reason Reason

	// Detail describes the specific problem.
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Reason, e.Detail)
}

// Report aggregates the outcome of one override pass.
type Report struct {
	// Errors holds the failures in document order.
	Errors []*Error

	// Applied counts entries that were applied successfully.
	Applied int
}

// Add appends a failure to the report.
func (r *Report) Add(path string, reason Reason, detail string) {
	r.Errors = append(r.Errors, &Error{Path: path, Reason: reason, Detail: detail})
}

// HasErrors returns true if any entry failed.
func (r *Report) HasErrors() bool {
	return len(r.Errors) > 0
}

// String renders the report for the startup dialog.
func (r *Report) String() string {
	if !r.HasErrors() {
		return fmt.Sprintf("%d override(s) applied", r.Applied)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d override(s) applied, %d failed:", r.Applied, len(r.Errors))
	for _, e := range r.Errors {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return b.String()
}
