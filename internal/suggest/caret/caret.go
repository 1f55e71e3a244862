// Package caret isolates the partial tag being typed around a caret
// position in prompt text.
//
// Prompt syntax treats commas, newlines, parentheses, brackets, and the
// emphasis-weight colon (as in "(tag:1.2)") as token boundaries. Multi-word
// tags are common, so plain whitespace is not a boundary.
package caret

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Context describes the token under the caret. It is recomputed on every
// keystroke and never persisted.
type Context struct {
	// Preceding is the text before the (clamped) caret.
	Preceding string

	// Caret is the caret byte offset, clamped to the text length and to a
	// grapheme boundary.
	Caret int

	// PartialToken is the trimmed token being typed. Empty means no
	// suggestion query should be issued.
	PartialToken string

	// TokenStart is the byte offset where an accepted suggestion replaces
	// text; the replacement span is TokenStart..Caret.
	TokenStart int
}

// delimiters are the prompt token boundaries. All ASCII, so a byte scan is
// safe inside UTF-8 text.
func isDelimiter(b byte) bool {
	switch b {
	case ',', '\n', '(', ')', '[', ']', ':':
		return true
	}
	return false
}

// Extract computes the caret context for the given text and caret offset.
func Extract(text string, offset int) Context {
	offset = clampToBoundary(text, offset)
	preceding := text[:offset]

	// Maximal run of non-delimiter bytes immediately before the caret.
	start := offset
	for start > 0 && !isDelimiter(text[start-1]) {
		start--
	}

	ctx := Context{Preceding: preceding, Caret: offset, TokenStart: start}

	run := text[start:offset]
	token := strings.TrimSpace(run)
	if token == "" {
		ctx.TokenStart = offset
		return ctx
	}

	// A numeric run right after a colon is an emphasis weight ("(tag:1.2"),
	// not a tag being typed.
	if start > 0 && text[start-1] == ':' && isNumericRun(token) {
		ctx.TokenStart = offset
		return ctx
	}

	// Leading whitespace is outside the replacement span; trailing
	// whitespace stays inside it so acceptance replaces what was typed.
	ctx.TokenStart = start + leadingSpace(run)
	ctx.PartialToken = token
	return ctx
}

// clampToBoundary clamps the offset into [0, len(text)] and snaps it back
// to the nearest grapheme-cluster boundary so a caret inside a combining
// sequence never splits it.
func clampToBoundary(text string, offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= len(text) {
		return len(text)
	}

	g := uniseg.NewGraphemes(text)
	prev := 0
	for g.Next() {
		_, to := g.Positions()
		if to == offset {
			return offset
		}
		if to > offset {
			return prev
		}
		prev = to
	}
	return prev
}

// isNumericRun reports whether the token looks like an emphasis weight.
func isNumericRun(token string) bool {
	for i := 0; i < len(token); i++ {
		if b := token[i]; (b < '0' || b > '9') && b != '.' {
			return false
		}
	}
	return true
}

// leadingSpace returns the byte length of the leading whitespace in s,
// trimming the same set TrimSpace does so TokenStart always lands on the
// first byte of the token.
func leadingSpace(s string) int {
	return len(s) - len(strings.TrimLeftFunc(s, unicode.IsSpace))
}
