// Package suggest coordinates the prompt tag-suggestion pipeline: caret
// context extraction, debounced index queries, and stale-result discard.
//
// The engine is driven by an event-driven editor: every text change calls
// Suggest with the full text and caret offset. Queries are debounced and
// generation-guarded so only the result for the newest keystroke is ever
// delivered; anything superseded is dropped without a callback.
package suggest

import (
	"sync"
	"time"

	"github.com/sdforge/promptkit/internal/suggest/caret"
	"github.com/sdforge/promptkit/internal/suggest/corpus"
	"github.com/sdforge/promptkit/internal/suggest/index"
)

// DefaultDebounce is the quiescence delay after the last keystroke before a
// query is issued.
const DefaultDebounce = 75 * time.Millisecond

// Result is the outcome of one suggestion query. Candidates may be empty,
// which tells the editor to close its popup. On acceptance the editor
// replaces the span TokenStart..Caret with the chosen canonical name (plus
// its own trailing delimiter, typically ", ").
type Result struct {
	Candidates []index.Candidate
	TokenStart int
	Caret      int
	Generation uint64
}

// DeliverFunc receives the result of the newest query. It is invoked from a
// timer goroutine while the engine lock is held: hand the result off to the
// UI loop, do not call back into the engine.
type DeliverFunc func(Result)

// Option configures an Engine.
type Option func(*Engine)

// WithDebounce sets the keystroke quiescence delay. Zero or negative runs
// queries synchronously inside Suggest (useful for tests and the CLI).
func WithDebounce(d time.Duration) Option {
	return func(e *Engine) { e.debounce = d }
}

// WithLimit bounds the number of candidates per query.
func WithLimit(n int) Option {
	return func(e *Engine) { e.limit = n }
}

// Engine serves ranked tag suggestions over an atomically swappable index.
type Engine struct {
	mu       sync.Mutex
	corpus   *corpus.Corpus
	idx      *index.Index
	limit    int
	debounce time.Duration
	timer    *time.Timer
	gen      uint64
}

// New creates an engine with no vocabulary loaded. Call Rebuild (or
// SetCorpus) before expecting non-empty results.
func New(opts ...Option) *Engine {
	e := &Engine{
		limit:    index.DefaultLimit,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rebuild loads the sources into a fresh corpus and index and swaps them in
// atomically: concurrent queries see either the old snapshot or the new one,
// never a partial build. Load problems come back as warnings; a failed
// source just yields a smaller corpus.
func (e *Engine) Rebuild(sources []string) []corpus.Warning {
	c, warnings := corpus.Load(sources)
	e.SetCorpus(c)
	return warnings
}

// SetCorpus swaps in an already-built corpus.
func (e *Engine) SetCorpus(c *corpus.Corpus) {
	ix := index.Build(c)
	e.mu.Lock()
	e.corpus = c
	e.idx = ix
	e.mu.Unlock()
}

// Corpus returns the current corpus snapshot (nil before the first load).
func (e *Engine) Corpus() *corpus.Corpus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.corpus
}

// Query runs a synchronous lookup against the current index. Used by the
// CLI and by callers that manage their own debouncing.
func (e *Engine) Query(partial string, limit int) []index.Candidate {
	e.mu.Lock()
	ix := e.idx
	if limit <= 0 {
		limit = e.limit
	}
	e.mu.Unlock()

	if ix == nil {
		return nil
	}
	return ix.Query(partial, limit)
}

// Suggest handles one text-change event. The partial token under the caret
// is extracted immediately; if it is empty an empty Result is delivered
// right away so the editor can close its popup, and no query is issued.
// Otherwise the query is scheduled after the debounce delay. Each call
// supersedes any pending or in-flight query.
func (e *Engine) Suggest(text string, offset int, deliver DeliverFunc) {
	cc := caret.Extract(text, offset)

	e.mu.Lock()
	e.gen++
	gen := e.gen
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}

	if cc.PartialToken == "" {
		e.mu.Unlock()
		deliver(Result{TokenStart: cc.TokenStart, Caret: cc.Caret, Generation: gen})
		return
	}

	if e.debounce <= 0 {
		e.mu.Unlock()
		e.run(gen, cc, deliver)
		return
	}

	e.timer = time.AfterFunc(e.debounce, func() {
		e.run(gen, cc, deliver)
	})
	e.mu.Unlock()
}

// Cancel discards any pending query without delivering a result.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

// run executes a scheduled query. The generation is checked before the
// lookup and again before delivery, so a keystroke that arrives while the
// query is computing silently discards it.
func (e *Engine) run(gen uint64, cc caret.Context, deliver DeliverFunc) {
	e.mu.Lock()
	if gen != e.gen || e.idx == nil {
		e.mu.Unlock()
		return
	}
	ix := e.idx
	limit := e.limit
	e.mu.Unlock()

	candidates := ix.Query(cc.PartialToken, limit)

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		return
	}
	deliver(Result{
		Candidates: candidates,
		TokenStart: cc.TokenStart,
		Caret:      cc.Caret,
		Generation: gen,
	})
}
