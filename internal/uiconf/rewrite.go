package uiconf

import (
	"strings"

	"github.com/tidwall/sjson"
)

// Normalize rewrites an override document so every surviving key uses the
// canonical tab/control/property spelling, dropping entries that fail to
// resolve or validate. The returned report explains every dropped entry.
//
// Used by the CLI's fmt command; the GUI never rewrites the user's file.
func Normalize(document []byte, reg *Registry) ([]byte, *Report, error) {
	report := &Report{}
	out := []byte("{}")

	for _, ent := range parseEntries(document) {
		if ent.err != nil {
			report.Errors = append(report.Errors, ent.err)
			continue
		}
		o := ent.override

		desc, ok := Resolve(o.Tab, o.Control, reg)
		if !ok {
			report.Add(o.Path, ReasonUnresolvedControl,
				"no control matching "+o.Control+" on tab "+o.Tab)
			continue
		}

		// Validate without touching any control.
		validateOnly := &Descriptor{
			CanonicalName: desc.CanonicalName,
			Aliases:       desc.Aliases,
			Properties:    desc.Properties,
		}
		if applyErr := ApplyProperty(validateOnly, o.Property, o.Value); applyErr != nil {
			applyErr.Path = o.Path
			report.Errors = append(report.Errors, applyErr)
			continue
		}

		canonical := o.Tab + "/" + desc.CanonicalName + "/" + strings.ToLower(o.Property)
		var err error
		out, err = sjson.SetBytesOptions(out, escapePath(canonical), o.Value, &sjson.Options{
			ReplaceInPlace: true,
		})
		if err != nil {
			return nil, report, err
		}
		report.Applied++
	}

	return out, report, nil
}

// escapePath escapes sjson path syntax so the flat "tab/control/property"
// key stays a single top-level key instead of nesting on dots.
func escapePath(key string) string {
	var b []byte
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '.', '*', '?', '|', '#', '\\':
			b = append(b, '\\')
		}
		b = append(b, key[i])
	}
	return string(b)
}
