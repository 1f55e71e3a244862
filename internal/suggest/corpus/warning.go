package corpus

import "fmt"

// WarningKind classifies a non-fatal load problem.
type WarningKind int

const (
	// WarnSourceUnreadable indicates a source file or directory that could
	// not be opened. The source is skipped.
	WarnSourceUnreadable WarningKind = iota

	// WarnMalformedRecord indicates a single record that could not be
	// parsed. The record is skipped; the rest of the source is kept.
	WarnMalformedRecord
)

// String returns a human-readable representation of the kind.
func (k WarningKind) String() string {
	switch k {
	case WarnSourceUnreadable:
		return "source-unreadable"
	case WarnMalformedRecord:
		return "malformed-record"
	default:
		return "unknown"
	}
}

// Warning records a non-fatal problem encountered while loading a source.
// Loading never fails outright; a bad source just yields a smaller corpus.
type Warning struct {
	// Kind classifies the problem.
	Kind WarningKind

	// Source is the path of the offending file or directory.
	Source string

	// Line is the 1-based record position within the source (0 if the
	// whole source is affected).
	Line int

	// Detail describes what went wrong.
	Detail string
}

// String formats the warning for logs and the startup report.
func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("%s: %s:%d: %s", w.Kind, w.Source, w.Line, w.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", w.Kind, w.Source, w.Detail)
}
