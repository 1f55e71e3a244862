package uiconf

import (
	"testing"

	"github.com/tidwall/gjson"
)

func TestNormalize_CanonicalizesKeys(t *testing.T) {
	reg, _ := guiRegistry()

	doc := []byte(`{
		"txt2img/Sampler/VALUE": "Euler a",
		"txt2img/cfg scele/step": 0.5
	}`)

	out, report, err := Normalize(doc, reg)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if report.HasErrors() {
		t.Fatalf("report errors = %v, want none", report.Errors)
	}
	if report.Applied != 2 {
		t.Fatalf("Applied = %d, want 2", report.Applied)
	}

	parsed := gjson.ParseBytes(out)
	sampler := parsed.Get(`txt2img/Sampling method/value`)
	if !sampler.Exists() || sampler.String() != "Euler a" {
		t.Fatalf("output = %s, want canonical Sampling method key", out)
	}
	step := parsed.Get(`txt2img/CFG scale/step`)
	if !step.Exists() || step.Float() != 0.5 {
		t.Fatalf("output = %s, want canonical CFG scale key", out)
	}
}

func TestNormalize_DropsInvalidEntries(t *testing.T) {
	reg, _ := guiRegistry()

	doc := []byte(`{
		"txt2img/Sampling method/value": "DPM++ 2M",
		"txt2img/No such widget/value": 1,
		"txt2img/Sampling method/visible": "yes"
	}`)

	out, report, err := Normalize(doc, reg)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if report.Applied != 1 {
		t.Fatalf("Applied = %d, want 1", report.Applied)
	}
	if len(report.Errors) != 2 {
		t.Fatalf("errors = %v, want 2 dropped entries", report.Errors)
	}

	parsed := gjson.ParseBytes(out)
	if n := len(parsed.Map()); n != 1 {
		t.Fatalf("output = %s, want single surviving key", out)
	}
	if got := parsed.Get(`txt2img/Sampling method/value`).String(); got != "DPM++ 2M" {
		t.Fatalf("output = %s, want surviving value entry", out)
	}
}

func TestNormalize_NeverTouchesControls(t *testing.T) {
	reg, applied := guiRegistry()

	if _, _, err := Normalize([]byte(`{"txt2img/Sampler/value": "Euler a"}`), reg); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	for name, values := range applied {
		if len(values) != 0 {
			t.Fatalf("control %s = %v, want untouched", name, values)
		}
	}
}

func TestNormalize_EmptyDocument(t *testing.T) {
	reg, _ := guiRegistry()

	out, report, err := Normalize([]byte(`{}`), reg)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if report.HasErrors() || report.Applied != 0 {
		t.Fatalf("report = %+v, want empty", report)
	}
	if string(out) != "{}" {
		t.Fatalf("output = %s, want {}", out)
	}
}
