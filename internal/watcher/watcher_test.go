package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{OnChange: func(string) error { return nil }}); err == nil {
		t.Error("expected error without file path")
	}
	if _, err := New(Config{FilePath: "x.toml"}); err == nil {
		t.Error("expected error without callback")
	}
	if _, err := New(Config{
		FilePath: filepath.Join(t.TempDir(), "missing.toml"),
		OnChange: func(string) error { return nil },
	}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWatcher_DebouncesBurst(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "doc.toml")
	if err := os.WriteFile(file, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var triggers atomic.Int32
	w, err := New(Config{
		FilePath: file,
		Debounce: 100 * time.Millisecond,
		OnChange: func(string) error {
			triggers.Add(1)
			return nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Start(ctx)
	}()

	// A burst of writes within the debounce window.
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(file, []byte("a = 2\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	deadline := time.Now().Add(2 * time.Second)
	for triggers.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	<-done

	if got := triggers.Load(); got != 1 {
		t.Errorf("triggers = %d, want 1", got)
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "doc.toml")
	if err := os.WriteFile(file, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var triggers atomic.Int32
	w, err := New(Config{
		FilePath: file,
		Debounce: 50 * time.Millisecond,
		OnChange: func(string) error {
			triggers.Add(1)
			return nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Start(ctx)
	}()

	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("b = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	<-done
	if got := triggers.Load(); got != 0 {
		t.Errorf("triggers = %d, want 0", got)
	}
}
