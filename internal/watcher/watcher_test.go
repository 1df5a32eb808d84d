package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) onChange(path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}

func startWatcher(t *testing.T, files []string, rec *recorder) *Watcher {
	t.Helper()
	w := NewWatcher(files, rec.onChange, WithDebounce(100*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(w.Stop)
	return w
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "laptops.csv")
	if err := writeFile(path, "Name,Price\n"); err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	startWatcher(t, []string{path}, rec)

	for i := 0; i < 5; i++ {
		if err := writeFile(path, "Name,Price\nX,1\n"); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(400 * time.Millisecond)

	if got := rec.count(); got != 1 {
		t.Errorf("expected one debounced change, got %d", got)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.paths) > 0 && rec.paths[0] != filepath.Clean(path) {
		t.Errorf("changed path = %s, want %s", rec.paths[0], path)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "laptops.csv")
	if err := writeFile(path, "Name,Price\n"); err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	startWatcher(t, []string{path}, rec)

	if err := writeFile(filepath.Join(dir, "notes.txt"), "hello"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	if got := rec.count(); got != 0 {
		t.Errorf("expected no change callbacks, got %d", got)
	}
}

func TestWatcher_SeesReplaceByRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "laptops.csv")
	if err := writeFile(path, "Name,Price\n"); err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	startWatcher(t, []string{path}, rec)

	tmp := filepath.Join(dir, "laptops.csv.tmp")
	if err := writeFile(tmp, "Name,Price\nY,2\n"); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
	time.Sleep(400 * time.Millisecond)
	if got := rec.count(); got < 1 {
		t.Errorf("expected a change after rename, got %d", got)
	}
}

func TestWatcher_StopDropsPending(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "laptops.csv")
	if err := writeFile(path, "Name,Price\n"); err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	w := NewWatcher([]string{path}, rec.onChange, WithDebounce(300*time.Millisecond))
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := writeFile(path, "Name,Price\nZ,3\n"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)
	w.Stop()
	w.Stop()
	time.Sleep(400 * time.Millisecond)
	if got := rec.count(); got != 0 {
		t.Errorf("expected pending change to be dropped, got %d", got)
	}
}

func TestWatcher_StartErrors(t *testing.T) {
	if err := NewWatcher(nil, nil).Start(context.Background()); err == nil {
		t.Error("expected error with no files")
	}
	missing := filepath.Join(t.TempDir(), "no", "such", "laptops.csv")
	if err := NewWatcher([]string{missing}, nil).Start(context.Background()); err == nil {
		t.Error("expected error when the parent directory does not exist")
	}
}

func TestWatcher_Files(t *testing.T) {
	w := NewWatcher([]string{"/tmp/a/laptops.csv", "/tmp/a/../a/laptops.csv"}, nil)
	files := w.Files()
	if len(files) != 1 || files[0] != "/tmp/a/laptops.csv" {
		t.Errorf("Files() = %v", files)
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0600)
}
