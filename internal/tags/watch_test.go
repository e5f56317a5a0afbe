package tags

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatch_CaptionChange(t *testing.T) {
	prev := WatchDebounce
	WatchDebounce = 20 * time.Millisecond
	defer func() { WatchDebounce = prev }()

	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, func() { changed <- struct{}{} })
	}()

	// Give the watcher time to register before writing.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("red"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		select {
		case <-changed:
			cancel()
			if err := <-done; err != nil {
				t.Fatalf("Watch returned %v", err)
			}
			return
		case <-deadline:
			t.Fatalf("no change notification")
		case <-tick.C:
		}
	}
}

func TestWatch_InvalidDir(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), func() {})
	if err == nil {
		t.Fatalf("expected error for missing dir")
	}
}
