package files

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUniquePath_Free(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2026-01-02_03-04-05.png")
	got, err := UniquePath(path)
	if err != nil {
		t.Fatalf("UniquePath failed: %v", err)
	}
	if got != path {
		t.Fatalf("expected %q, got %q", path, got)
	}
}

func TestUniquePath_NumberedSuffix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shot.png")
	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "shot_1.png"), []byte("x"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := UniquePath(path)
	if err != nil {
		t.Fatalf("UniquePath failed: %v", err)
	}
	if want := filepath.Join(dir, "shot_2.png"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestUniquePath_UUIDFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shot.png")
	os.WriteFile(path, []byte("x"), 0600)
	for i := 1; i <= 9; i++ {
		os.WriteFile(filepath.Join(dir, "shot_"+string(rune('0'+i))+".png"), []byte("x"), 0600)
	}

	got, err := UniquePath(path)
	if err != nil {
		t.Fatalf("UniquePath failed: %v", err)
	}
	base := filepath.Base(got)
	if !strings.HasPrefix(base, "shot_") || !strings.HasSuffix(base, ".png") || len(base) < len("shot_")+36 {
		t.Fatalf("expected uuid suffixed name, got %q", base)
	}
}

func TestUniquePath_Empty(t *testing.T) {
	if _, err := UniquePath("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
