// Package watch reloads collections when their dataset files change.
package watch

import (
	stderrors "errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gcbaptista/go-suggest/internal/dataset"
	"github.com/gcbaptista/go-suggest/internal/debounce"
	"github.com/gcbaptista/go-suggest/internal/metrics"
	"github.com/gcbaptista/go-suggest/services"
)

// DefaultDebounce is used when New is given a non-positive wait.
const DefaultDebounce = 300 * time.Millisecond

// ErrStopped is returned by Add after Stop.
var ErrStopped = stderrors.New("watcher stopped")

// Target binds a dataset file to the collection it feeds.
type Target struct {
	Collection string
	Path       string
	Fields     []string
}

type watched struct {
	target    Target
	debouncer *debounce.Debouncer
}

// Watcher reloads collections from their dataset files after writes settle.
type Watcher struct {
	manager services.CollectionManager
	wait    time.Duration

	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	files    map[string]*watched // absolute dataset path
	dirs     map[string]int      // watched parent directories and how many files use them
	running  bool
	stopped  bool
	stop     chan struct{}
	loopDone chan struct{}
}

// New creates a Watcher that reloads collections of manager.
func New(manager services.CollectionManager, wait time.Duration) (*Watcher, error) {
	if wait <= 0 {
		wait = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		manager:  manager,
		wait:     wait,
		fsw:      fsw,
		files:    make(map[string]*watched),
		dirs:     make(map[string]int),
		stop:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}, nil
}

// Add starts watching target.Path. The parent directory is watched so that
// editors which replace the file by rename keep triggering reloads.
func (w *Watcher) Add(target Target) error {
	abs, err := filepath.Abs(target.Path)
	if err != nil {
		return err
	}
	target.Path = abs

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return ErrStopped
	}

	if old, ok := w.files[abs]; ok {
		old.debouncer.Stop()
		old.target = target
		old.debouncer = w.newDebouncer(target)
		return nil
	}

	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.files[abs] = &watched{target: target, debouncer: w.newDebouncer(target)}
	log.Printf("Info: watching dataset %s for collection '%s'", abs, target.Collection)
	return nil
}

func (w *Watcher) newDebouncer(target Target) *debounce.Debouncer {
	return debounce.New(func() {
		if err := w.Reload(target); err != nil {
			log.Printf("Warning: %v", err)
		}
	}, w.wait)
}

// Remove stops watching path.
func (w *Watcher) Remove(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	f, ok := w.files[abs]
	if !ok {
		return
	}
	f.debouncer.Stop()
	delete(w.files, abs)

	dir := filepath.Dir(abs)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		if !w.stopped {
			_ = w.fsw.Remove(dir)
		}
	}
}

// Targets lists the watched targets.
func (w *Watcher) Targets() []Target {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Target, 0, len(w.files))
	for _, f := range w.files {
		out = append(out, f.target)
	}
	return out
}

// Sync watches the dataset of every collection that declares one and loads it
// once. Load failures are logged; the collection keeps its candidates.
func (w *Watcher) Sync() error {
	for _, name := range w.manager.ListCollections() {
		settings, err := w.manager.GetCollectionSettings(name)
		if err != nil || settings.DatasetPath == "" {
			continue
		}
		target := Target{Collection: name, Path: settings.DatasetPath, Fields: settings.DatasetFields}
		if err := w.Add(target); err != nil {
			return err
		}
		if err := w.Reload(target); err != nil {
			log.Printf("Warning: %v", err)
		}
	}
	return nil
}

// Reload reads the dataset of target and replaces the collection candidates.
func (w *Watcher) Reload(target Target) error {
	candidates, err := dataset.LoadFile(target.Path, target.Fields)
	if err != nil {
		metrics.IncDatasetReload("error")
		return fmt.Errorf("failed to reload collection '%s': %w", target.Collection, err)
	}
	col, err := w.manager.GetCollection(target.Collection)
	if err != nil {
		metrics.IncDatasetReload("error")
		return fmt.Errorf("failed to reload collection '%s': %w", target.Collection, err)
	}
	if err := col.ReplaceCandidates(candidates); err != nil {
		metrics.IncDatasetReload("error")
		return fmt.Errorf("failed to reload collection '%s': %w", target.Collection, err)
	}
	metrics.IncDatasetReload("success")
	log.Printf("Info: reloaded %d candidates into collection '%s' from %s", len(candidates), target.Collection, target.Path)
	return nil
}

// Start runs the event loop in the background. It is safe to call only once.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running || w.stopped {
		return
	}
	w.running = true
	go w.eventLoop()
}

// Stop cancels pending reloads and shuts the watcher down.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	running := w.running
	for _, f := range w.files {
		f.debouncer.Stop()
	}
	w.mu.Unlock()

	close(w.stop)
	err := w.fsw.Close()
	if running {
		<-w.loopDone
	}
	return err
}

func (w *Watcher) eventLoop() {
	defer close(w.loopDone)

	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("Warning: dataset watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	var d *debounce.Debouncer
	if f, ok := w.files[abs]; ok {
		d = f.debouncer
	}
	w.mu.Unlock()
	if d != nil {
		d.Call()
	}
}
