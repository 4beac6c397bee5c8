// Package watch re-renders a form document whenever its file changes,
// powering the live preview loop.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event carries the outcome of one re-render pass.
type Event struct {
	Path   string
	Output []byte
	Err    error
}

// RenderFunc turns a raw document into rendered output. Implementations
// decide how to present malformed input; the watcher reports whatever they
// return.
type RenderFunc func(ctx context.Context, raw []byte) ([]byte, error)

// Watcher monitors a single document file and emits a render event after
// writes settle for the debounce interval.
type Watcher struct {
	path      string
	debounce  time.Duration
	render    RenderFunc
	fsWatcher *fsnotify.Watcher

	events chan Event
	done   chan struct{}
	wg     sync.WaitGroup
}

// New creates a watcher for the given document path.
func New(path string, debounce time.Duration, render RenderFunc) (*Watcher, error) {
	if render == nil {
		return nil, fmt.Errorf("watch: render func is required")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve %q: %w", path, err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return nil, fmt.Errorf("watch: stat %q: %w", absPath, err)
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}

	return &Watcher{
		path:      absPath,
		debounce:  debounce,
		render:    render,
		fsWatcher: fsWatcher,
		events:    make(chan Event, 16),
		done:      make(chan struct{}),
	}, nil
}

// Events returns the channel of render events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start performs an initial render and begins watching. Editors often replace
// files instead of writing in place, so the parent directory is watched and
// events are filtered by name.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch: add %q: %w", filepath.Dir(w.path), err)
	}

	w.emit(ctx)

	w.wg.Add(1)
	go w.loop(ctx)
	return nil
}

// Stop shuts down the watcher and closes the event channel.
func (w *Watcher) Stop() error {
	close(w.done)
	err := w.fsWatcher.Close()
	w.wg.Wait()
	close(w.events)
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case <-ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			w.emit(ctx)

		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) emit(ctx context.Context) {
	raw, err := os.ReadFile(w.path)
	if err != nil {
		w.send(Event{Path: w.path, Err: fmt.Errorf("watch: read %q: %w", w.path, err)})
		return
	}

	output, err := w.render(ctx, raw)
	w.send(Event{Path: w.path, Output: output, Err: err})
}

func (w *Watcher) send(event Event) {
	select {
	case w.events <- event:
	case <-w.done:
	}
}
