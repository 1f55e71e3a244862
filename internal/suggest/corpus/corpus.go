// Package corpus loads and merges tag vocabularies for prompt completion.
//
// A corpus is built once from an ordered list of sources (a bundled default
// file first, then user-supplied paths) and is immutable afterwards. Sources
// may be CSV, JSON, YAML, or plain-text tag lists, optionally gzip-wrapped,
// in the a1111 tag-autocomplete style.
package corpus

import (
	"sort"
	"strings"
)

// Entry is a single tag in the vocabulary.
// Entries are owned by the corpus and must not be mutated after load.
type Entry struct {
	// Name is the canonical display form of the tag.
	Name string

	// Category is the tag group from the source (0 if the source had none).
	Category int

	// Weight is the popularity count used for ranking (0 if unknown).
	Weight int64

	// Aliases are alternative spellings that resolve to this entry.
	Aliases []string
}

// Corpus is the merged, deduplicated set of tag entries.
type Corpus struct {
	entries []*Entry
	byName  map[string]*Entry
}

// Fold normalizes a tag name for uniqueness comparisons.
// Display casing is preserved on the Entry itself.
func Fold(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Len returns the number of entries.
func (c *Corpus) Len() int {
	return len(c.entries)
}

// Entries returns all entries in load order.
// The returned slice is owned by the corpus; callers must not modify it.
func (c *Corpus) Entries() []*Entry {
	return c.entries
}

// Get returns the entry whose canonical name folds to the given name.
func (c *Corpus) Get(name string) (*Entry, bool) {
	e, ok := c.byName[Fold(name)]
	return e, ok
}

// builder accumulates entries across sources, merging on folded name.
// The first source to define a name wins its canonical fields; alias sets
// are unioned across all sources.
type builder struct {
	entries   []*Entry
	byName    map[string]*Entry
	aliasSeen map[*Entry]map[string]bool
}

func newBuilder() *builder {
	return &builder{
		byName:    make(map[string]*Entry),
		aliasSeen: make(map[*Entry]map[string]bool),
	}
}

// add merges one parsed record into the corpus under construction.
func (b *builder) add(name string, category int, weight int64, aliases []string) {
	folded := Fold(name)
	if folded == "" {
		return
	}

	e, ok := b.byName[folded]
	if !ok {
		e = &Entry{
			Name:     strings.TrimSpace(name),
			Category: category,
			Weight:   weight,
		}
		b.entries = append(b.entries, e)
		b.byName[folded] = e
		b.aliasSeen[e] = make(map[string]bool)
	}

	for _, alias := range aliases {
		b.addAlias(e, alias)
	}
}

// addAlias records an alias on the entry, dropping duplicates and aliases
// that fold to the canonical name itself.
func (b *builder) addAlias(e *Entry, alias string) {
	folded := Fold(alias)
	if folded == "" || folded == Fold(e.Name) {
		return
	}
	seen := b.aliasSeen[e]
	if seen[folded] {
		return
	}
	seen[folded] = true
	e.Aliases = append(e.Aliases, strings.TrimSpace(alias))
}

// build finalizes the corpus, ordering entries by descending weight then
// ascending folded name so iteration order is deterministic.
func (b *builder) build() *Corpus {
	entries := b.entries
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Weight != entries[j].Weight {
			return entries[i].Weight > entries[j].Weight
		}
		return Fold(entries[i].Name) < Fold(entries[j].Name)
	})
	return &Corpus{entries: entries, byName: b.byName}
}
