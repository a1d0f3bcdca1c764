// Package watch re-triggers searches when watched files change.
package watch

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/findsweep/internal/config"
	"github.com/standardbeagle/findsweep/internal/debug"
	"github.com/standardbeagle/findsweep/internal/runner"
)

// Watcher monitors the project tree and fires a callback after file
// activity settles. Bursts of events collapse into one callback per quiet
// period.
type Watcher struct {
	watcher   *fsnotify.Watcher
	cfg       *config.Config
	debouncer *runner.Debouncer
	onSettle  func()

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	statsMu       sync.RWMutex
	eventsSeen    int64
	triggersFired int64
	lastEventTime time.Time
}

// New creates a watcher that invokes onSettle after changes quiet down
func New(cfg *config.Config, onSettle func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	w := &Watcher{
		watcher:   fsw,
		cfg:       cfg,
		debouncer: runner.NewDebouncer(time.Duration(cfg.Watch.DebounceMs) * time.Millisecond),
		onSettle:  onSettle,
		ctx:       ctx,
		cancel:    cancel,
	}
	return w, nil
}

// Start adds recursive watches under root and begins processing events
func (w *Watcher) Start(root string) error {
	debug.LogWatch("starting watcher at %s\n", root)

	if err := w.addWatches(root); err != nil {
		return err
	}

	w.wg.Add(1)
	go w.processEvents()
	return nil
}

// Stop tears down the watcher. A pending debounced trigger is discarded;
// whatever it would have reported is stale once watching ends.
func (w *Watcher) Stop() error {
	w.cancel()
	w.debouncer.Disarm()

	err := w.watcher.Close()
	w.wg.Wait()

	debug.LogWatch("watcher stopped\n")
	return err
}

// Stats reports watcher activity counters
func (w *Watcher) Stats() (events, triggers int64, last time.Time) {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	return w.eventsSeen, w.triggersFired, w.lastEventTime
}

// addWatches walks root and watches every directory that is not excluded.
// Visited real paths are tracked so symlink cycles terminate.
func (w *Watcher) addWatches(root string) error {
	visited := make(map[string]bool)

	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}

		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return nil
		}
		if visited[realPath] {
			return filepath.SkipDir
		}
		visited[realPath] = true

		if w.excludedDir(path) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			log.Printf("Warning: failed to add watch for %s: %v", path, err)
		}
		return nil
	})
}

func (w *Watcher) excludedDir(path string) bool {
	base := filepath.Base(path)
	if !w.cfg.Search.SearchHidden && base != "." && strings.HasPrefix(base, ".") {
		return true
	}

	for _, pattern := range w.cfg.Exclude {
		dirPattern := strings.TrimSuffix(pattern, "/**")
		if matched, _ := doublestar.Match(dirPattern, base); matched {
			return true
		}
		if rel, err := filepath.Rel(w.cfg.Project.Root, path); err == nil {
			if matched, _ := doublestar.Match(pattern, filepath.ToSlash(rel)); matched {
				return true
			}
		}
	}
	return false
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if !w.excludedDir(path) {
				if err := w.watcher.Add(path); err != nil {
					log.Printf("Warning: failed to watch new directory %s: %v", path, err)
				}
			}
			return
		}
	}

	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	if !w.relevantFile(path) {
		debug.LogWatch("ignoring event for %s\n", path)
		return
	}

	w.statsMu.Lock()
	w.eventsSeen++
	w.lastEventTime = time.Now()
	w.statsMu.Unlock()

	debug.LogWatch("event %v for %s\n", event.Op, path)
	w.debouncer.Arm(w.trigger)
}

func (w *Watcher) trigger() {
	if w.ctx.Err() != nil {
		return
	}

	w.statsMu.Lock()
	w.triggersFired++
	w.statsMu.Unlock()

	if w.onSettle != nil {
		w.onSettle()
	}
}

// relevantFile applies the configured include and exclude globs to a file
// path. With no includes configured every non-excluded file is relevant.
func (w *Watcher) relevantFile(path string) bool {
	rel := path
	if w.cfg.Project.Root != "" {
		if r, err := filepath.Rel(w.cfg.Project.Root, path); err == nil {
			rel = r
		}
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range w.cfg.Exclude {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return false
		}
	}

	if len(w.cfg.Include) == 0 {
		return true
	}
	for _, pattern := range w.cfg.Include {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, filepath.Base(path)); matched {
			return true
		}
	}
	return false
}
