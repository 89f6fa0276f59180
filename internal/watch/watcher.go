// Package watch reports changes of a single file.
//
// The directory of the file is watched rather than the file itself, so
// editors that save by writing a new file and renaming it over the old one
// are noticed. Bursts of events are collapsed into one notification.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/handiism/musicbook/internal/debounce"
)

// Watcher calls a function after the watched file changed.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	debounce *debounce.Debouncer
	log      *zap.Logger
}

// New watches path. onChange is called on its own goroutine once events
// have settled for delay.
func New(path string, delay time.Duration, onChange func(), log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		fsw:      fsw,
		debounce: debounce.New(delay, onChange),
		log:      log,
	}, nil
}

// Run handles file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.debounce.Stop()
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("File changed",
				zap.String("path", event.Name),
				zap.Stringer("op", event.Op))
			w.debounce.Trigger()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.debounce.Trigger()
				continue
			}
			w.log.Warn("Watcher error", zap.Error(err))
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.debounce.Stop()
	return w.fsw.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
