// Package watch reports changes to markdown sources in the content
// directory so cached catalogs can be dropped.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// DefaultDebounce coalesces bursts of editor writes into one notification.
const DefaultDebounce = 200 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithExtension sets the suffix of files that trigger notifications.
func WithExtension(ext string) Option {
	return func(w *Watcher) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		w.extension = ext
	}
}

// WithLogger routes watcher logs.
func WithLogger(logger interfaces.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Watcher monitors one flat content directory.
type Watcher struct {
	fs        *fsnotify.Watcher
	root      string
	extension string
	delay     time.Duration
	onChange  func()
	logger    interfaces.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending []string
}

// New starts watching root. onChange runs once per debounced burst of
// create, write, remove or rename events on markdown files.
func New(root string, onChange func(), opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fs:        fw,
		root:      filepath.Clean(root),
		extension: ".md",
		delay:     DefaultDebounce,
		onChange:  onChange,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	if err := fw.Add(w.root); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// Start processes events until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	w.logger.Info("blog.watch.started", "path", w.root)
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				w.stopTimer()
				return
			}
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				w.stopTimer()
				return
			}
			w.logger.Warn("blog.watch.error", "error", err)
		}
	}
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	w.stopTimer()
	return w.fs.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(event.Name), w.extension) {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !w.relevant(event) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = append(w.pending, filepath.Base(event.Name))
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	files := w.pending
	w.pending = nil
	w.timer = nil
	w.mu.Unlock()

	if len(files) == 0 {
		return
	}
	w.logger.Debug("blog.watch.changed", "files", strings.Join(files, ","))
	if w.onChange != nil {
		w.onChange()
	}
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.pending = nil
	w.mu.Unlock()
}
