// Package watch re-runs a job whenever files under a set of directories change.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for a burst of events to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watcher batches filesystem events into calls of a single job.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	ignore   map[string]bool
	log      *zap.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before the job runs.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithIgnoreNames drops events for files with these base names, such as the
// index files the job itself rewrites.
func WithIgnoreNames(names ...string) Option {
	return func(w *Watcher) {
		for _, n := range names {
			w.ignore[n] = true
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) { w.log = l }
}

// New starts watching dirs. Subdirectories are not added recursively, but
// directories created later inside a watched one are.
func New(dirs []string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{
		fsw:      fsw,
		debounce: DefaultDebounce,
		ignore:   make(map[string]bool),
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(w)
	}
	for _, d := range dirs {
		if err := fsw.Add(d); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", d, err)
		}
	}
	return w, nil
}

// Run calls job after every settled burst of changes until ctx is done. Job
// errors are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, job func(context.Context) error) error {
	defer w.fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("[Watch] change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := w.fsw.Add(event.Name); err != nil {
					w.log.Warn("[Watch] could not watch new directory", zap.String("path", event.Name), zap.Error(err))
				}
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := job(ctx); err != nil {
				w.log.Error("[Watch] run failed", zap.Error(err))
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("[Watch] watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if w.ignore[filepath.Base(event.Name)] {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
