package uiconf

import (
	"strings"
	"testing"
)

// guiRegistry models a small txt2img tab with recording setters.
func guiRegistry() (*Registry, map[string]map[string]any) {
	applied := make(map[string]map[string]any)
	reg := NewRegistry()

	register := func(tab string, d *Descriptor) {
		values := make(map[string]any)
		applied[d.CanonicalName] = values
		d.Set = func(property string, value any) {
			values[property] = value
		}
		reg.Register(tab, d)
	}

	register("txt2img", &Descriptor{
		CanonicalName: "Sampling method",
		Aliases:       []string{"Sampler"},
		Properties: map[string]PropertySpec{
			"value":   {Type: TypeString},
			"visible": {Type: TypeBool},
		},
	})
	register("txt2img", &Descriptor{
		CanonicalName: "CFG scale",
		Properties: map[string]PropertySpec{
			"value":   {Type: TypeFloat, Minimum: floatPtr(7), Maximum: floatPtr(30)},
			"minimum": {Type: TypeFloat},
			"maximum": {Type: TypeFloat},
			"step":    {Type: TypeFloat},
		},
	})
	register("txt2img", &Descriptor{
		CanonicalName: "Batch count",
		Properties: map[string]PropertySpec{
			"value": {Type: TypeInt, Minimum: floatPtr(1), Maximum: floatPtr(100)},
		},
	})

	return reg, applied
}

func TestApply_SamplerAliasScenario(t *testing.T) {
	reg, applied := guiRegistry()

	report := Apply([]byte(`{"txt2img/Sampler/value": "Euler a"}`), reg)
	if report.HasErrors() {
		t.Fatalf("report errors = %v, want none", report.Errors)
	}
	if report.Applied != 1 {
		t.Fatalf("Applied = %d, want 1", report.Applied)
	}
	if got := applied["Sampling method"]["value"]; got != "Euler a" {
		t.Fatalf("Sampling method value = %v, want Euler a", got)
	}
}

func TestApply_OutOfRangeScenario(t *testing.T) {
	reg, applied := guiRegistry()

	report := Apply([]byte(`{"txt2img/CFG scale/maximum": 5}`), reg)
	if len(report.Errors) != 1 || report.Errors[0].Reason != ReasonOutOfRange {
		t.Fatalf("report = %v, want one out-of-range error", report.Errors)
	}
	if len(applied["CFG scale"]) != 0 {
		t.Fatalf("CFG scale = %v, want unchanged", applied["CFG scale"])
	}
}

func TestApply_CollectsAllFailuresAndKeepsGoing(t *testing.T) {
	reg, applied := guiRegistry()

	doc := []byte(`{
		"broken path": 1,
		"txt2img/Nonexistent widget/value": 2,
		"txt2img/Sampling method/opacity": 3,
		"txt2img/Sampling method/visible": "yes",
		"txt2img/Batch count/value": 4
	}`)

	report := Apply(doc, reg)
	if report.Applied != 1 {
		t.Fatalf("Applied = %d, want 1", report.Applied)
	}
	if got := applied["Batch count"]["value"]; got != 4 {
		t.Fatalf("Batch count value = %v, want 4", got)
	}

	wantReasons := []Reason{
		ReasonMalformedPath,
		ReasonUnresolvedControl,
		ReasonUnknownProperty,
		ReasonTypeMismatch,
	}
	if len(report.Errors) != len(wantReasons) {
		t.Fatalf("errors = %v, want %d", report.Errors, len(wantReasons))
	}
	for i, want := range wantReasons {
		if report.Errors[i].Reason != want {
			t.Errorf("errors[%d].Reason = %v, want %v (document order)", i, report.Errors[i].Reason, want)
		}
	}
}

func TestApply_EmptyDocument(t *testing.T) {
	reg, _ := guiRegistry()
	report := Apply([]byte(`{}`), reg)
	if report.HasErrors() || report.Applied != 0 {
		t.Fatalf("report = %+v, want clean empty report", report)
	}
}

func TestApply_ValueClampedThroughSetter(t *testing.T) {
	reg, applied := guiRegistry()

	report := Apply([]byte(`{"txt2img/Batch count/value": 500}`), reg)
	if report.HasErrors() {
		t.Fatalf("report errors = %v, want silent clamp", report.Errors)
	}
	if got := applied["Batch count"]["value"]; got != 100 {
		t.Fatalf("Batch count value = %v, want clamped to 100", got)
	}
}

func TestReport_String(t *testing.T) {
	report := &Report{Applied: 2}
	report.Add("txt2img/Foo/value", ReasonUnresolvedControl, "no control matching Foo")

	s := report.String()
	if !strings.Contains(s, "2 override(s) applied") {
		t.Errorf("String() = %q, want applied count", s)
	}
	if !strings.Contains(s, "unresolved-control") {
		t.Errorf("String() = %q, want reason label", s)
	}
}
