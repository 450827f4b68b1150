// Package watch re-runs a callback when project files change.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for more changes before
// firing the callback.
const DefaultDebounce = 500 * time.Millisecond

var extensions = map[string]bool{
	".yaml": true,
	".yml":  true,
}

// Watcher collects changes to YAML files under a project directory and
// reports them in debounced batches.
type Watcher struct {
	root     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	logger   *zap.Logger

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op
}

// New creates a watcher and registers every non-hidden directory under root.
// Changes made after New returns are observed.
func New(root string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		root:     root,
		debounce: debounce,
		fsw:      fsw,
		logger:   logger,
		pending:  make(map[string]fsnotify.Op),
	}
	if err := w.addRecursive(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run delivers batches of changed paths (relative to root, sorted) to fn
// until ctx is done. fn runs on the watcher goroutine; events arriving while
// it runs are batched for the next call. Run closes the watcher on return.
func (w *Watcher) Run(ctx context.Context, fn func(changed []string)) error {
	defer func() { _ = w.fsw.Close() }()

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", zap.Error(err))

		case <-ticker.C:
			if changed := w.flush(); len(changed) > 0 {
				w.logger.Info("project changed", zap.Strings("files", changed))
				fn(changed)
			}
		}
	}
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && hidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", zap.String("path", path), zap.Error(err))
			return nil
		}
		w.logger.Debug("watching directory", zap.String("path", path))
		return nil
	})
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !hidden(filepath.Base(event.Name)) {
				// Files created together with the directory may predate the watch.
				if err := w.addRecursive(event.Name); err != nil {
					w.logger.Warn("failed to watch new directory", zap.String("path", event.Name), zap.Error(err))
				}
				w.mark(event.Name, event.Op)
			}
			return
		}
	}
	if !extensions[strings.ToLower(filepath.Ext(event.Name))] {
		return
	}
	if event.Op == fsnotify.Chmod {
		return
	}
	w.mark(event.Name, event.Op)
}

func (w *Watcher) mark(path string, op fsnotify.Op) {
	w.pendingMu.Lock()
	w.pending[path] |= op
	w.pendingMu.Unlock()
	w.logger.Debug("change detected", zap.String("path", path), zap.String("op", op.String()))
}

func (w *Watcher) flush() []string {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			rel = path
		}
		changed = append(changed, filepath.ToSlash(rel))
	}
	w.pending = make(map[string]fsnotify.Op)
	sort.Strings(changed)
	return changed
}

// hidden reports dot-directories such as .git. The project settings file
// lives in the root itself, which is always watched.
func hidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
