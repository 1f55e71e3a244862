package caret

import (
	"strings"
	"testing"
)

func TestExtract_PartialTokenAfterDelimiters(t *testing.T) {
	text := "masterpiece, (de"
	ctx := Extract(text, len(text))

	if ctx.PartialToken != "de" {
		t.Errorf("PartialToken = %q, want %q", ctx.PartialToken, "de")
	}
	if want := strings.Index(text, "de"); ctx.TokenStart != want {
		t.Errorf("TokenStart = %d, want %d", ctx.TokenStart, want)
	}
}

func TestExtract_MultiWordToken(t *testing.T) {
	text := "1girl, long ha"
	ctx := Extract(text, len(text))

	if ctx.PartialToken != "long ha" {
		t.Errorf("PartialToken = %q, want %q", ctx.PartialToken, "long ha")
	}
	if want := strings.Index(text, "long"); ctx.TokenStart != want {
		t.Errorf("TokenStart = %d, want %d", ctx.TokenStart, want)
	}
}

func TestExtract_UnicodeWhitespaceOutsideSpan(t *testing.T) {
	// Whitespace TrimSpace removes must also sit outside the replacement
	// span, not just plain spaces and tabs.
	for _, ws := range []string{"\r ", " ", " \r\t"} {
		text := "low quality," + ws + "de"
		ctx := Extract(text, len(text))

		if ctx.PartialToken != "de" {
			t.Errorf("PartialToken = %q with %q whitespace, want %q", ctx.PartialToken, ws, "de")
		}
		if want := strings.Index(text, "de"); ctx.TokenStart != want {
			t.Errorf("TokenStart = %d with %q whitespace, want %d", ctx.TokenStart, ws, want)
		}
	}
}

func TestExtract_CaretAtZero(t *testing.T) {
	ctx := Extract("anything", 0)
	if ctx.PartialToken != "" || ctx.TokenStart != 0 || ctx.Caret != 0 {
		t.Errorf("Extract at 0 = %+v, want empty context", ctx)
	}
}

func TestExtract_CaretAfterDelimiter(t *testing.T) {
	text := "1girl,"
	ctx := Extract(text, len(text))
	if ctx.PartialToken != "" {
		t.Errorf("PartialToken = %q, want empty after delimiter", ctx.PartialToken)
	}
	if ctx.TokenStart != len(text) {
		t.Errorf("TokenStart = %d, want caret position %d", ctx.TokenStart, len(text))
	}
}

func TestExtract_WhitespaceOnlyRun(t *testing.T) {
	text := "1girl,  "
	ctx := Extract(text, len(text))
	if ctx.PartialToken != "" {
		t.Errorf("PartialToken = %q, want empty for whitespace run", ctx.PartialToken)
	}
}

func TestExtract_CaretBeyondTextClamped(t *testing.T) {
	text := "short"
	ctx := Extract(text, 100)
	if ctx.Caret != len(text) {
		t.Errorf("Caret = %d, want clamped to %d", ctx.Caret, len(text))
	}
	if ctx.PartialToken != "short" {
		t.Errorf("PartialToken = %q, want %q", ctx.PartialToken, "short")
	}
}

func TestExtract_EmphasisWeightSuppressed(t *testing.T) {
	for _, text := range []string{"(tag:", "(tag:1", "(tag:1.2", "(masterpiece:0."} {
		ctx := Extract(text, len(text))
		if ctx.PartialToken != "" {
			t.Errorf("Extract(%q) PartialToken = %q, want none inside weight", text, ctx.PartialToken)
		}
	}
}

func TestExtract_LettersAfterColonStillComplete(t *testing.T) {
	// A colon is a boundary, but non-numeric text after it is a new token.
	text := "style:wat"
	ctx := Extract(text, len(text))
	if ctx.PartialToken != "wat" {
		t.Errorf("PartialToken = %q, want %q", ctx.PartialToken, "wat")
	}
}

func TestExtract_LeadingSpaceOutsideSpan(t *testing.T) {
	text := "1girl, de"
	ctx := Extract(text, len(text))
	if ctx.PartialToken != "de" {
		t.Errorf("PartialToken = %q, want %q", ctx.PartialToken, "de")
	}
	if want := strings.Index(text, "de"); ctx.TokenStart != want {
		t.Errorf("TokenStart = %d, want %d (past the space)", ctx.TokenStart, want)
	}
}

func TestExtract_TrailingSpaceInsideSpan(t *testing.T) {
	text := "blue sky "
	ctx := Extract(text, len(text))
	if ctx.PartialToken != "blue sky" {
		t.Errorf("PartialToken = %q, want trimmed %q", ctx.PartialToken, "blue sky")
	}
	if ctx.TokenStart != 0 || ctx.Caret != len(text) {
		t.Errorf("span = %d..%d, want 0..%d", ctx.TokenStart, ctx.Caret, len(text))
	}
}

func TestExtract_CaretInsideGraphemeSnapsBack(t *testing.T) {
	// é as 'e' + combining acute: the caret may not land between the two.
	text := "caf" + "é"
	mid := len(text) - 1 // inside the combining sequence
	ctx := Extract(text, mid)
	if ctx.Caret != 3 {
		t.Errorf("Caret = %d, want snapped to %d", ctx.Caret, 3)
	}
}

func TestExtract_NoDelimiterInsideToken(t *testing.T) {
	texts := []string{
		"a, b, (c:1.1), partial",
		"[square], tok",
		"line one\nline two, tok",
	}
	for _, text := range texts {
		ctx := Extract(text, len(text))
		if strings.ContainsAny(ctx.PartialToken, ",\n()[]:") {
			t.Errorf("Extract(%q) token %q contains a delimiter", text, ctx.PartialToken)
		}
		if ctx.TokenStart > ctx.Caret {
			t.Errorf("Extract(%q) TokenStart %d > Caret %d", text, ctx.TokenStart, ctx.Caret)
		}
	}
}
