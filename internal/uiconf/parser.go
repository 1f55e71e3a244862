package uiconf

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Override is one parsed entry from the override document. The value stays
// loosely typed until it meets the resolved control's declared property type.
type Override struct {
	// Path is the original document key, verbatim.
	Path string

	// Tab, Control, and Property are the three path segments.
	Tab      string
	Control  string
	Property string

	// Value is the document value: string, float64, bool, nil, or []any.
	Value any
}

// entry is one document key in order: either a parsed override or the error
// that disqualified it.
type entry struct {
	override *Override
	err      *Error
}

// parseEntries walks the document preserving key order. A document that is
// empty or an empty object yields no entries. A document whose top level is
// not an object yields a single malformed-path entry.
func parseEntries(data []byte) []entry {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil
	}

	doc := gjson.Parse(trimmed)
	if !doc.IsObject() {
		return []entry{{err: &Error{
			Reason: ReasonMalformedPath,
			Detail: "top-level value must be an object",
		}}}
	}

	var entries []entry
	doc.ForEach(func(key, value gjson.Result) bool {
		path := key.String()
		segments := strings.Split(path, "/")
		if len(segments) != 3 || hasEmptySegment(segments) {
			entries = append(entries, entry{err: &Error{
				Path:   path,
				Reason: ReasonMalformedPath,
				Detail: "path must be tab/control/property",
			}})
			return true
		}
		entries = append(entries, entry{override: &Override{
			Path:     path,
			Tab:      segments[0],
			Control:  segments[1],
			Property: segments[2],
			Value:    value.Value(),
		}})
		return true
	})
	return entries
}

func hasEmptySegment(segments []string) bool {
	for _, s := range segments {
		if strings.TrimSpace(s) == "" {
			return true
		}
	}
	return false
}

// ParseDocument parses the override document into its valid overrides and
// the malformed-path errors, both in document order. Parsing never fails;
// an unreadable document is just a document with errors.
func ParseDocument(data []byte) ([]Override, []*Error) {
	var overrides []Override
	var errs []*Error
	for _, ent := range parseEntries(data) {
		if ent.err != nil {
			errs = append(errs, ent.err)
			continue
		}
		overrides = append(overrides, *ent.override)
	}
	return overrides, errs
}
