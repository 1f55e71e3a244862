// Package index provides the queryable tag index behind prompt completion.
//
// An Index is immutable once built. Rebuilding after a vocabulary change
// means building a fresh Index and swapping the pointer; in-flight queries
// keep reading the old one.
package index

import (
	"strings"

	"github.com/sdforge/promptkit/internal/suggest/corpus"
)

// DefaultLimit bounds query results when the caller passes no limit.
// It keeps popup rendering cheap; it is not a correctness bound.
const DefaultLimit = 50

// MatchKind describes how a candidate matched the query, strongest first.
type MatchKind int

const (
	// MatchExact means the query equals the canonical name or an alias.
	MatchExact MatchKind = iota
	// MatchPrefix means the canonical name or an alias starts with the query.
	MatchPrefix
	// MatchContains means the canonical name or an alias contains the query.
	MatchContains
)

// String returns a human-readable representation of the kind.
func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchPrefix:
		return "prefix"
	case MatchContains:
		return "contains"
	default:
		return "unknown"
	}
}

// Candidate pairs a corpus entry with the way it matched.
// Candidates are transient; the corpus owns the entry.
type Candidate struct {
	Entry *corpus.Entry
	Kind  MatchKind
}

// indexed caches the folded match keys for one entry.
type indexed struct {
	entry *corpus.Entry
	keys  []string // folded canonical name first, then folded aliases
}

// Index answers prefix/substring queries over a corpus snapshot.
type Index struct {
	entries []indexed
}

// Build creates an index over the corpus. Entries keep the corpus order
// (descending weight, then ascending folded name), which makes query
// results inside a tier already correctly ordered.
func Build(c *corpus.Corpus) *Index {
	src := c.Entries()
	entries := make([]indexed, len(src))
	for i, e := range src {
		keys := make([]string, 0, 1+len(e.Aliases))
		keys = append(keys, corpus.Fold(e.Name))
		for _, a := range e.Aliases {
			keys = append(keys, corpus.Fold(a))
		}
		entries[i] = indexed{entry: e, keys: keys}
	}
	return &Index{entries: entries}
}

// Size returns the number of indexed entries.
func (ix *Index) Size() int {
	return len(ix.entries)
}

// Query returns up to limit candidates for the partial token, in tier order:
// exact name/alias matches, then prefix matches, then substring matches.
// Each tier is exhausted before the next is consulted. A limit <= 0 means
// DefaultLimit. An empty query returns nil.
func (ix *Index) Query(partial string, limit int) []Candidate {
	q := corpus.Fold(partial)
	if q == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	results := make([]Candidate, 0, limit)
	taken := make([]bool, len(ix.entries))

	for _, tier := range []MatchKind{MatchExact, MatchPrefix, MatchContains} {
		for i := range ix.entries {
			if len(results) >= limit {
				return results
			}
			if taken[i] {
				continue
			}
			if matchesTier(ix.entries[i].keys, q, tier) {
				taken[i] = true
				results = append(results, Candidate{Entry: ix.entries[i].entry, Kind: tier})
			}
		}
	}
	return results
}

// matchesTier reports whether any key matches the query at the given tier.
func matchesTier(keys []string, q string, tier MatchKind) bool {
	for _, key := range keys {
		switch tier {
		case MatchExact:
			if key == q {
				return true
			}
		case MatchPrefix:
			if strings.HasPrefix(key, q) {
				return true
			}
		case MatchContains:
			if strings.Contains(key, q) {
				return true
			}
		}
	}
	return false
}
