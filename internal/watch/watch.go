// Package watch re-runs a callback when markdown sources change on disk.
// Events are debounced so a burst of saves triggers one run.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a batch of changes is reported.
const DefaultDebounce = 300 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Debounce time.Duration           // Zero means DefaultDebounce
	Logger   *slog.Logger            // Nil means slog.Default()
	Match    func(path string) bool // Nil matches every non-ignored file
}

// Watcher watches files and directory trees.
type Watcher struct {
	fs     *fsnotify.Watcher
	dirs   []string        // recursive roots
	files  map[string]bool // single-file roots
	opts   Options
	logger *slog.Logger
}

// New watches each path: directories recursively, files individually.
func New(paths []string, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}

	w := &Watcher{fs: fsw, files: map[string]bool{}, opts: opts, logger: logger}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fsw.Close()
			return nil, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", p, err)
		}
		if info.IsDir() {
			w.dirs = append(w.dirs, abs)
			w.addDirsRecursive(abs)
			continue
		}
		// Editors often replace files on save, so watch the parent.
		w.files[abs] = true
		if err := fsw.Add(filepath.Dir(abs)); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", p, err)
		}
	}
	return w, nil
}

// Run blocks until ctx is done, calling onChange with the sorted, distinct
// paths changed during each debounce window. Calls never overlap.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, changed []string)) error {
	fire, trigger, stop := newDebouncer(w.opts.Debounce)
	defer stop()

	pending := map[string]struct{}{}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(ev) {
				pending[ev.Name] = struct{}{}
				trigger()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		case <-fire:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			pending = map[string]struct{}{}

			w.logger.Info("change detected; re-rendering", "files", len(changed))
			onChange(ctx, changed)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// handleEvent reports whether ev is a change worth re-rendering for.
// New directories under a recursive root are added to the watch list.
func (w *Watcher) handleEvent(ev fsnotify.Event) bool {
	if shouldIgnoreEvent(ev.Name) {
		return false
	}
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if ev.Has(fsnotify.Create) && w.underDirRoot(ev.Name) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			w.addDirsRecursive(ev.Name)
			return false
		}
	}
	if !w.files[ev.Name] && !w.underDirRoot(ev.Name) {
		return false
	}
	if w.opts.Match != nil && !w.opts.Match(ev.Name) {
		return false
	}
	w.logger.Debug("file change detected", "path", ev.Name, "op", ev.Op.String())
	return true
}

func (w *Watcher) underDirRoot(path string) bool {
	for _, root := range w.dirs {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) addDirsRecursive(root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && shouldIgnoreEvent(path) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			w.logger.Warn("watch add failed", "dir", path, "error", err)
		}
		return nil
	})
}

// newDebouncer returns a channel that receives once per quiet period after
// trigger calls, the trigger itself, and a stop function.
func newDebouncer(d time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case fire <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return fire, trigger, stop
}

// shouldIgnoreEvent returns true for hidden, swap, and temp files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
