package app

import (
	"fmt"
	"os"

	"github.com/sdforge/promptkit/internal/config"
	"github.com/sdforge/promptkit/internal/suggest"
	"github.com/sdforge/promptkit/internal/suggest/corpus"
	"github.com/sdforge/promptkit/internal/suggest/watcher"
	"github.com/sdforge/promptkit/internal/uiconf"
)

// App owns the suggestion engine, the vocabulary watcher and the override
// pass for one GUI session.
type App struct {
	cfg     config.Config
	log     *Logger
	sources []string
	engine  *suggest.Engine
	watcher *watcher.Watcher
}

// New builds an App from resolved configuration. Nothing is loaded until
// Start.
func New(cfg config.Config, log *Logger) *App {
	if log == nil {
		log = NullLogger
	}
	return &App{
		cfg:     cfg,
		log:     log,
		sources: Sources(cfg),
		engine: suggest.New(
			suggest.WithDebounce(cfg.Tags.Debounce()),
			suggest.WithLimit(cfg.Tags.Limit),
		),
	}
}

// Sources resolves the ordered vocabulary source list: the bundled file,
// then configured paths, then PROMPTKIT_TAG_PATH entries. Earlier sources
// win canonical fields on name collisions.
func Sources(cfg config.Config) []string {
	var sources []string
	if cfg.Tags.Bundled != "" {
		sources = append(sources, cfg.Tags.Bundled)
	}
	sources = append(sources, cfg.Tags.Paths...)
	return append(sources, corpus.EnvSources()...)
}

// Start loads the vocabulary and, when configured, begins watching its
// sources for changes. Load warnings are logged, never fatal.
func (a *App) Start() error {
	a.reload()

	if !a.cfg.Tags.Watch || len(a.sources) == 0 {
		return nil
	}

	w, err := watcher.New(watcher.DefaultQuiet, a.reload)
	if err != nil {
		return fmt.Errorf("starting vocabulary watcher: %w", err)
	}
	for _, src := range a.sources {
		if err := w.Add(src); err != nil {
			a.log.Warn("cannot watch %s: %v", src, err)
		}
	}
	a.watcher = w
	return nil
}

// Engine returns the suggestion engine.
func (a *App) Engine() *suggest.Engine {
	return a.engine
}

// reload rebuilds the corpus from the source list and swaps it in. Used at
// startup and from the watcher callback.
func (a *App) reload() {
	warnings := a.engine.Rebuild(a.sources)
	for _, w := range warnings {
		a.log.Warn("vocabulary: %s", w)
	}
	a.log.Info("vocabulary loaded: %d tags from %d source(s)",
		a.engine.Corpus().Len(), len(a.sources))
}

// ApplyOverrides runs the configured override document against the control
// registry. A missing or unconfigured document applies nothing. Individual
// entry failures end up in the report, not the error.
func (a *App) ApplyOverrides(reg *uiconf.Registry) (*uiconf.Report, error) {
	if a.cfg.UI.Overrides == "" {
		return &uiconf.Report{}, nil
	}

	data, err := os.ReadFile(a.cfg.UI.Overrides)
	if os.IsNotExist(err) {
		a.log.Debug("no override document at %s", a.cfg.UI.Overrides)
		return &uiconf.Report{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading override document %s: %w", a.cfg.UI.Overrides, err)
	}

	report := uiconf.Apply(data, reg)
	if report.HasErrors() {
		a.log.Warn("override pass: %s", report)
	} else {
		a.log.Info("override pass: %s", report)
	}
	return report, nil
}

// Close stops the watcher and discards pending suggestion work.
func (a *App) Close() error {
	a.engine.Cancel()
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}
