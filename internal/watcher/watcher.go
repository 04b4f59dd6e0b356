// Package watcher reports changed and removed input files under a set of
// directories, with per-file debouncing.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a file must stay quiet before it is reported.
const DefaultDebounce = 400 * time.Millisecond

// Op is the kind of file event delivered to a Handler.
type Op int

const (
	// OpChanged means the file was created or written and should be re-vectorized.
	OpChanged Op = iota
	// OpRemoved means the file was deleted or renamed away.
	OpRemoved
)

func (o Op) String() string {
	if o == OpRemoved {
		return "removed"
	}
	return "changed"
}

// Event is a file change under a watched root.
type Event struct {
	Op   Op
	Path string
}

// Handler receives events. It may be called from several goroutines.
type Handler func(Event)

// Watcher watches root directories for input files.
type Watcher struct {
	mu         sync.Mutex
	roots      []string
	watched    map[string][]string // root -> directories registered with fsnotify
	extensions []string
	recursive  bool
	debounce   time.Duration
	pending    map[string]*time.Timer
	handler    Handler
	fsw        *fsnotify.Watcher
	done       chan struct{}
	stopped    bool
	stopOnce   sync.Once
	logger     *zap.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger for watcher events.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithExtensions limits events to files with the given extensions. Empty means all files.
func WithExtensions(exts []string) Option {
	return func(w *Watcher) { w.extensions = append([]string(nil), exts...) }
}

// WithRecursive controls whether subdirectories are watched.
func WithRecursive(recursive bool) Option {
	return func(w *Watcher) { w.recursive = recursive }
}

// WithDebounce sets the quiet period before a changed file is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher over roots. Nothing is watched until Start.
func New(roots []string, handler Handler, opts ...Option) *Watcher {
	w := &Watcher{
		watched:   make(map[string][]string),
		recursive: true,
		debounce:  DefaultDebounce,
		pending:   make(map[string]*time.Timer),
		handler:   handler,
		done:      make(chan struct{}),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	for _, root := range roots {
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
		w.roots = append(w.roots, filepath.Clean(root))
	}
	return w
}

// Start registers every root and runs until ctx is cancelled or Stop is called.
// A stopped watcher cannot be started again.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return errors.New("watcher stopped")
	}
	if w.fsw != nil {
		w.mu.Unlock()
		return nil
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	w.fsw = fsw
	for _, root := range w.roots {
		if err := w.watchRootLocked(root); err != nil {
			_ = fsw.Close()
			w.fsw = nil
			w.mu.Unlock()
			return err
		}
	}
	w.logger.Debug("Watcher started",
		zap.Strings("roots", w.roots),
		zap.Strings("extensions", w.extensions),
		zap.Bool("recursive", w.recursive),
	)
	w.mu.Unlock()
	go w.run(ctx, fsw)
	return nil
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	path := filepath.Clean(ev.Name)
	if !w.underRoot(path) || hidden(path) {
		return
	}
	w.logger.Debug("Watcher event", zap.String("op", ev.Op.String()), zap.String("path", path))

	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		w.cancelPending(path)
		if w.matches(path) {
			w.emit(Event{Op: OpRemoved, Path: path})
		}
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		info, err := os.Stat(path)
		if err != nil {
			return
		}
		if info.IsDir() {
			w.handleNewDirectory(path)
			return
		}
		if w.matches(path) {
			w.schedule(path)
		}
	}
}

// handleNewDirectory watches a directory created or moved under a root and
// reports the files already inside it.
func (w *Watcher) handleNewDirectory(dir string) {
	w.mu.Lock()
	if w.fsw == nil {
		w.mu.Unlock()
		return
	}
	if w.recursive {
		root := w.rootOf(dir)
		added, err := w.addTreeLocked(dir)
		if err != nil {
			w.logger.Warn("Failed to watch new directory", zap.String("path", dir), zap.Error(err))
		}
		if root != "" {
			w.watched[root] = append(w.watched[root], added...)
		}
	}
	recursive := w.recursive
	w.mu.Unlock()
	if recursive {
		w.syncDirectory(dir)
	}
}

func (w *Watcher) emit(ev Event) {
	if w.handler != nil {
		w.handler(ev)
	}
}

// schedule reports path once it has been quiet for the debounce period.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.emit(Event{Op: OpChanged, Path: path})
	})
}

func (w *Watcher) cancelPending(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) underRoot(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rootOf(path) != ""
}

// rootOf returns the watched root containing path. Caller holds mu.
func (w *Watcher) rootOf(path string) string {
	for _, root := range w.roots {
		if inDir(root, path) {
			if !w.recursive && filepath.Dir(path) != root && path != root {
				continue
			}
			return root
		}
	}
	return ""
}

func inDir(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// hidden reports dotfiles such as editor swap files.
func hidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func (w *Watcher) matches(path string) bool {
	return matchExtension(path, w.extensions)
}

func matchExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, e := range extensions {
		if strings.TrimPrefix(strings.ToLower(e), ".") == ext {
			return true
		}
	}
	return false
}

// watchRootLocked registers root, and its subdirectories when recursive.
func (w *Watcher) watchRootLocked(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch root %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch root %s: not a directory", root)
	}
	var added []string
	if w.recursive {
		added, err = w.addTreeLocked(root)
	} else {
		err = w.fsw.Add(root)
		added = []string{root}
	}
	if err != nil {
		return fmt.Errorf("watch root %s: %w", root, err)
	}
	w.watched[root] = added
	return nil
}

// addTreeLocked registers dir and every non-hidden directory below it.
func (w *Watcher) addTreeLocked(dir string) ([]string, error) {
	var added []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && hidden(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return err
		}
		added = append(added, path)
		return nil
	})
	return added, err
}

// syncDirectory reports every matching file under dir as changed.
func (w *Watcher) syncDirectory(dir string) {
	w.mu.Lock()
	recursive := w.recursive
	w.mu.Unlock()
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != dir && hidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && w.matches(path) {
			w.emit(Event{Op: OpChanged, Path: path})
		}
		return nil
	})
	if err != nil {
		w.logger.Warn("Failed to sync directory", zap.String("path", dir), zap.Error(err))
	}
}

// Add starts watching another root. When syncExisting is set, files already in
// root are reported as changed.
func (w *Watcher) Add(root string, syncExisting bool) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	w.mu.Lock()
	for _, r := range w.roots {
		if r == abs {
			w.mu.Unlock()
			return nil
		}
	}
	if w.fsw != nil {
		if err := w.watchRootLocked(abs); err != nil {
			w.mu.Unlock()
			return err
		}
	}
	w.roots = append(w.roots, abs)
	w.mu.Unlock()
	w.logger.Debug("Watcher root added", zap.String("path", abs), zap.Bool("sync_existing", syncExisting))
	if syncExisting {
		w.syncDirectory(abs)
	}
	return nil
}

// Remove stops watching root.
func (w *Watcher) Remove(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, r := range w.roots {
		if r != abs {
			continue
		}
		if w.fsw != nil {
			for _, p := range w.watched[abs] {
				_ = w.fsw.Remove(p)
			}
		}
		delete(w.watched, abs)
		w.roots = append(w.roots[:i], w.roots[i+1:]...)
		w.logger.Debug("Watcher root removed", zap.String("path", abs))
		return nil
	}
	return nil
}

// Roots returns a copy of the watched root directories.
func (w *Watcher) Roots() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.roots...)
}

// Sync reports every existing matching file under each root as changed.
func (w *Watcher) Sync() {
	for _, root := range w.Roots() {
		w.syncDirectory(root)
	}
}

// Stop stops the watcher and drops pending events.
func (w *Watcher) Stop() {
	w.mu.Lock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	fsw := w.fsw
	w.fsw = nil
	w.stopped = true
	w.mu.Unlock()
	if fsw != nil {
		_ = fsw.Close()
	}
	w.stopOnce.Do(func() { close(w.done) })
}
