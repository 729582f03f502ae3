package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestScheduleCoalesces(t *testing.T) {
	fired := make(chan []string, 4)
	w := &Watcher{
		debounce: 30 * time.Millisecond,
		pending:  make(map[string]bool),
		onChange: func(paths []string) { fired <- paths },
	}

	w.schedule("/b.json")
	w.schedule("/a.json")
	w.schedule("/b.json")

	select {
	case paths := <-fired:
		if len(paths) != 2 || paths[0] != "/a.json" || paths[1] != "/b.json" {
			t.Fatalf("unexpected paths: %v", paths)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("debounce never fired")
	}

	select {
	case paths := <-fired:
		t.Fatalf("second callback for the same burst: %v", paths)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestFireEmptyPendingIsNoop(t *testing.T) {
	w := &Watcher{
		pending:  make(map[string]bool),
		onChange: func([]string) { t.Fatal("callback on empty pending set") },
	}
	w.fire()
}

func TestWatchFileWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	fired := make(chan []string, 4)
	w, err := New([]string{path}, 50*time.Millisecond, func(paths []string) { fired <- paths })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w.Start()
	defer w.Stop()

	// Two writes inside one debounce window.
	if err := os.WriteFile(path, []byte(`{"formatVersion":"1.0.0"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := os.WriteFile(path, []byte(`{"formatVersion":"1.0.1"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-fired:
		if len(paths) != 1 || paths[0] != path {
			t.Fatalf("unexpected paths: %v", paths)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no callback after write")
	}
}

func TestNewMissingFile(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "absent.json")}, 0, func([]string) {})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
