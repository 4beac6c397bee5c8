package watch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-dynaform/internal/watch"
)

func waitForEvent(t *testing.T, events <-chan watch.Event) watch.Event {
	t.Helper()
	select {
	case event := <-events:
		return event
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
		return watch.Event{}
	}
}

func TestWatcherRendersInitialDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.json")
	if err := os.WriteFile(path, []byte(`{"v": 1}`), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}

	watcher, err := watch.New(path, 50*time.Millisecond, func(_ context.Context, raw []byte) ([]byte, error) {
		return append([]byte("rendered:"), raw...), nil
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := watcher.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer watcher.Stop()

	event := waitForEvent(t, watcher.Events())
	if event.Err != nil {
		t.Fatalf("unexpected render error: %v", event.Err)
	}
	if !strings.HasPrefix(string(event.Output), "rendered:") {
		t.Fatalf("unexpected output %q", event.Output)
	}
}

func TestWatcherReRendersAfterWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.json")
	if err := os.WriteFile(path, []byte(`first`), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}

	watcher, err := watch.New(path, 50*time.Millisecond, func(_ context.Context, raw []byte) ([]byte, error) {
		return raw, nil
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := watcher.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer watcher.Stop()

	// Drain the initial render.
	waitForEvent(t, watcher.Events())

	if err := os.WriteFile(path, []byte(`second`), 0o644); err != nil {
		t.Fatalf("rewrite document: %v", err)
	}

	event := waitForEvent(t, watcher.Events())
	if string(event.Output) != "second" {
		t.Fatalf("expected re-render of new content, got %q", event.Output)
	}
}

func TestWatcherReportsRenderErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.json")
	if err := os.WriteFile(path, []byte(`{broken`), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}

	renderErr := errors.New("invalid document")
	watcher, err := watch.New(path, 50*time.Millisecond, func(context.Context, []byte) ([]byte, error) {
		return nil, renderErr
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := watcher.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer watcher.Stop()

	event := waitForEvent(t, watcher.Events())
	if !errors.Is(event.Err, renderErr) {
		t.Fatalf("expected render error, got %v", event.Err)
	}
}

func TestWatcherRequiresExistingFile(t *testing.T) {
	if _, err := watch.New(filepath.Join(t.TempDir(), "missing.json"), 0, func(context.Context, []byte) ([]byte, error) {
		return nil, nil
	}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWatcherRequiresRenderFunc(t *testing.T) {
	if _, err := watch.New("anything.json", 0, nil); err == nil {
		t.Fatal("expected error for nil render func")
	}
}
