package watcher

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newWatcher(t *testing.T) *FileWatcher {
	t.Helper()
	fw, err := NewFileWatcher(50*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	t.Cleanup(func() { fw.Close() })
	return fw
}

func TestReportsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "part.stl")
	if err := os.WriteFile(path, []byte("solid a\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	fw := newWatcher(t)
	if err := fw.Watch(path); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	fw.Start()

	// several quick writes collapse into one change
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("solid b\n"), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	select {
	case got := <-fw.Changes():
		want, _ := filepath.Abs(path)
		if got != want {
			t.Errorf("change failed: expected %s, got %s", want, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case got := <-fw.Changes():
		t.Errorf("unexpected second change: %s", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "part.stl")
	other := filepath.Join(dir, "other.stl")
	if err := os.WriteFile(path, []byte("solid a\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	fw := newWatcher(t)
	if err := fw.Watch(path); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	fw.Start()

	if err := os.WriteFile(other, []byte("solid b\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	select {
	case got := <-fw.Changes():
		t.Errorf("change reported for unwatched file: %s", got)
	case <-time.After(300 * time.Millisecond):
	}
}
