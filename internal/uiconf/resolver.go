package uiconf

import (
	"strings"
	"unicode"
)

// maxEditDistance bounds the approximate-match fallback. Anything further
// from every known name than this fails resolution.
const maxEditDistance = 2

// normalizeName prepares a control name for comparison: case-folded, with
// surrounding whitespace and punctuation stripped. Interior characters are
// preserved so "CFG scale" and "CFG-scale" stay one edit apart, not zero.
func normalizeName(s string) string {
	s = strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	return strings.ToLower(s)
}

// Resolve maps a loosely-specified control name to a registered descriptor.
//
// Matching order: exact normalized match against a canonical name, then
// against any alias, then the closest approximate match within
// maxEditDistance of any canonical name or alias. Approximate ties are
// broken by shortest canonical name, then alphabetically.
func Resolve(tabID, controlKey string, reg *Registry) (*Descriptor, bool) {
	descriptors := reg.Tab(tabID)
	if len(descriptors) == 0 {
		return nil, false
	}

	want := normalizeName(controlKey)
	if want == "" {
		return nil, false
	}

	// Tier 1: exact canonical name.
	for _, d := range descriptors {
		if normalizeName(d.CanonicalName) == want {
			return d, true
		}
	}

	// Tier 2: exact alias.
	for _, d := range descriptors {
		for _, alias := range d.Aliases {
			if normalizeName(alias) == want {
				return d, true
			}
		}
	}

	// Tier 3: closest name or alias within the edit-distance bound.
	var best *Descriptor
	bestDist := maxEditDistance + 1
	for _, d := range descriptors {
		dist := descriptorDistance(d, want)
		switch {
		case dist < bestDist:
			best, bestDist = d, dist
		case dist == bestDist && best != nil && closerTie(d, best):
			best = d
		}
	}
	if bestDist > maxEditDistance {
		return nil, false
	}
	return best, true
}

// descriptorDistance returns the smallest bounded edit distance between the
// wanted name and the descriptor's canonical name or aliases.
func descriptorDistance(d *Descriptor, want string) int {
	dist := boundedLevenshtein(normalizeName(d.CanonicalName), want, maxEditDistance)
	for _, alias := range d.Aliases {
		if ad := boundedLevenshtein(normalizeName(alias), want, maxEditDistance); ad < dist {
			dist = ad
		}
	}
	return dist
}

// closerTie reports whether a should win a distance tie against b:
// shortest canonical name first, then alphabetical.
func closerTie(a, b *Descriptor) bool {
	an, bn := normalizeName(a.CanonicalName), normalizeName(b.CanonicalName)
	if len(an) != len(bn) {
		return len(an) < len(bn)
	}
	return an < bn
}

// boundedLevenshtein computes the edit distance between a and b, giving up
// early once the distance must exceed max (returning max+1).
func boundedLevenshtein(a, b string, max int) int {
	ra, rb := []rune(a), []rune(b)
	if abs(len(ra)-len(rb)) > max {
		return max + 1
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if curr[j] < rowMin {
				rowMin = curr[j]
			}
		}
		if rowMin > max {
			return max + 1
		}
		prev, curr = curr, prev
	}

	if prev[len(rb)] > max {
		return max + 1
	}
	return prev[len(rb)]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
