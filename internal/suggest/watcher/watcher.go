// Package watcher triggers vocabulary rebuilds when tag source files change
// on disk.
//
// Raw file system events arrive in bursts (editors write temp files, rename,
// chmod), so changes are debounced: one rebuild callback fires per burst,
// after a quiet period.
package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrClosed is returned by operations on a closed watcher.
var ErrClosed = errors.New("vocabulary watcher is closed")

// DefaultQuiet is the debounce window applied to change bursts.
const DefaultQuiet = 250 * time.Millisecond

// watchedExts mirrors the loader's eligible vocabulary extensions.
var watchedExts = map[string]bool{
	".csv":  true,
	".json": true,
	".yaml": true,
	".yml":  true,
	".txt":  true,
	".gz":   true,
}

// Watcher observes vocabulary sources and invokes a rebuild callback.
type Watcher struct {
	fsw      *fsnotify.Watcher
	quiet    time.Duration
	onChange func()

	mu     sync.Mutex
	timer  *time.Timer
	closed bool

	closeCh chan struct{}
	wg      sync.WaitGroup
}

// New creates a watcher that calls onChange after each debounced burst of
// changes to watched vocabulary sources. A quiet duration <= 0 uses
// DefaultQuiet.
func New(quiet time.Duration, onChange func()) (*Watcher, error) {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		quiet:    quiet,
		onChange: onChange,
		closeCh:  make(chan struct{}),
	}

	w.wg.Add(1)
	go w.processLoop()

	return w, nil
}

// Add watches a vocabulary source. For a file the containing directory is
// watched (fsnotify loses file watches across rename-replace saves); for a
// directory the directory itself is watched.
func (w *Watcher) Add(path string) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	w.mu.Unlock()

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return w.fsw.Add(path)
	}
	return w.fsw.Add(filepath.Dir(path))
}

// Close stops the watcher. No callbacks fire after Close returns.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

// processLoop consumes raw fsnotify events until the watcher closes.
func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if relevant(event) {
				w.bump()
			}

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the current corpus stays valid.
		}
	}
}

// relevant filters events down to content changes on vocabulary files.
func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return watchedExts[strings.ToLower(filepath.Ext(event.Name))]
}

// bump starts or extends the quiet window. The callback fires once the
// window elapses with no further changes.
func (w *Watcher) bump() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Reset(w.quiet)
		return
	}
	w.timer = time.AfterFunc(w.quiet, w.fire)
}

// fire invokes the rebuild callback unless the watcher closed meanwhile.
func (w *Watcher) fire() {
	w.mu.Lock()
	w.timer = nil
	closed := w.closed
	w.mu.Unlock()

	if !closed {
		w.onChange()
	}
}
