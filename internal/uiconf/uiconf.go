// Package uiconf resolves and applies user overrides from a ui-config.json
// document against the GUI's control registry.
//
// The document is a flat object mapping "tab/control/property" paths to
// scalar values. Control names are matched loosely: exact canonical name,
// then declared aliases, then a small bounded edit distance. Every failure
// is collected into a report shown once at startup; nothing in this package
// ever aborts launch.
package uiconf

// Apply runs the full override pass: parse the document, resolve each entry
// against the registry, validate and apply the value. The pass is
// synchronous, runs to completion, and returns a report with all failures
// in document order.
func Apply(document []byte, reg *Registry) *Report {
	report := &Report{}

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

		if applyErr := ApplyProperty(desc, o.Property, o.Value); applyErr != nil {
			applyErr.Path = o.Path
			report.Errors = append(report.Errors, applyErr)
			continue
		}
		report.Applied++
	}

	return report
}
