package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oukeidos/lorakit/internal/apperrors"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestIsImage(t *testing.T) {
	cases := map[string]bool{
		"a.jpg":  true,
		"a.JPEG": true,
		"a.png":  true,
		"a.webp": true,
		"a.gif":  false,
		"a.txt":  false,
		"jpg":    false,
	}
	for name, want := range cases {
		if got := IsImage(name); got != want {
			t.Fatalf("IsImage(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestListImagesAndCaptions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.png", "a.jpg", "c.webp", "notes.md", "a.txt", "b.TXT")
	if err := os.Mkdir(filepath.Join(dir, "sub.jpg"), 0700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	images, err := ListImages(dir)
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}
	var got []string
	for _, p := range images {
		got = append(got, filepath.Base(p))
	}
	if strings.Join(got, ",") != "a.jpg,b.png,c.webp" {
		t.Fatalf("ListImages = %v", got)
	}

	captions, err := ListCaptions(dir)
	if err != nil {
		t.Fatalf("ListCaptions: %v", err)
	}
	if len(captions) != 2 {
		t.Fatalf("ListCaptions = %v", captions)
	}
}

func TestRequireDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "file.txt")

	if err := RequireDir(dir); err != nil {
		t.Fatalf("RequireDir(dir) = %v", err)
	}
	for _, p := range []string{"", "   ", filepath.Join(dir, "missing"), filepath.Join(dir, "file.txt")} {
		err := RequireDir(p)
		if !apperrors.Is(err, apperrors.KindInvalidDirectory) {
			t.Fatalf("RequireDir(%q) = %v, want invalid_directory", p, err)
		}
	}
}

func TestPairByBasename(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "dog.jpg", "cat.png", "cat.txt", "dog.txt")

	pairs, err := PairByBasename(dir)
	if err != nil {
		t.Fatalf("PairByBasename: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].Key != "cat" || filepath.Base(pairs[0].ImagePath) != "cat.png" || filepath.Base(pairs[0].CaptionPath) != "cat.txt" {
		t.Fatalf("unexpected first pair: %+v", pairs[0])
	}
	if pairs[1].Key != "dog" {
		t.Fatalf("unexpected second pair: %+v", pairs[1])
	}
}

func TestPairByBasename_CountMismatch(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.jpg", "b.jpg", "a.txt")

	_, err := PairByBasename(dir)
	if !apperrors.Is(err, apperrors.KindCountMismatch) {
		t.Fatalf("expected count_mismatch, got %v", err)
	}
}

func TestPairByBasename_KeyMismatch(t *testing.T) {
	dir := t.TempDir()
	// Positional pairing would silently match a.jpg with b.txt.
	touch(t, dir, "a.jpg", "b.txt")

	_, err := PairByBasename(dir)
	if !apperrors.Is(err, apperrors.KindPairing) {
		t.Fatalf("expected pairing error, got %v", err)
	}
	msg := apperrors.PublicMessage(err)
	if !strings.Contains(msg, "a") || !strings.Contains(msg, "b") {
		t.Fatalf("message should name unmatched keys: %q", msg)
	}
}

func TestPairByBasename_DuplicateImageKey(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.jpg", "a.png", "a.txt", "b.txt")

	_, err := PairByBasename(dir)
	if !apperrors.Is(err, apperrors.KindPairing) {
		t.Fatalf("expected pairing error, got %v", err)
	}
}

func TestReport(t *testing.T) {
	var r Report
	r.Processed = 3
	r.Changed = 1
	if r.Err() != nil {
		t.Fatalf("expected nil error for clean report")
	}
	if r.String() != "3 file(s) processed, 1 changed" {
		t.Fatalf("String() = %q", r.String())
	}
	r.Fail("b.txt", os.ErrPermission)
	err := r.Err()
	if !apperrors.Is(err, apperrors.KindFilesystem) {
		t.Fatalf("expected filesystem kind, got %v", err)
	}
	if !strings.Contains(r.String(), "1 failed") {
		t.Fatalf("String() = %q", r.String())
	}
}
