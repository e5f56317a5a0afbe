package renamer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oukeidos/lorakit/internal/apperrors"
)

func writeFiles(t *testing.T, dir string, contents map[string]string) {
	t.Helper()
	for name, body := range contents {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestReplacePhrase(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.txt": "ohwx man, smiling, ohwx man outdoors",
		"b.txt": "a woman, sitting",
		"c.jpg": "ohwx man",
		"d.md":  "ohwx man",
	})

	report, err := ReplacePhrase(dir, "ohwx man", "sks person")
	if err != nil {
		t.Fatalf("ReplacePhrase: %v", err)
	}
	if report.Processed != 2 || report.Changed != 1 || len(report.Failed) != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if got := readFile(t, filepath.Join(dir, "a.txt")); got != "sks person, smiling, sks person outdoors" {
		t.Fatalf("a.txt = %q", got)
	}
	if got := readFile(t, filepath.Join(dir, "c.jpg")); got != "ohwx man" {
		t.Fatalf("non-caption file modified: %q", got)
	}
}

func TestReplacePhrase_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "cat, black cat, cat toy"})

	if _, err := ReplacePhrase(dir, "cat", "dog"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	once := readFile(t, filepath.Join(dir, "a.txt"))
	report, err := ReplacePhrase(dir, "cat", "dog")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if report.Changed != 0 {
		t.Fatalf("second run changed %d files", report.Changed)
	}
	if twice := readFile(t, filepath.Join(dir, "a.txt")); twice != once || once != "dog, black dog, dog toy" {
		t.Fatalf("once=%q twice=%q", once, twice)
	}
}

func TestReplacePhrase_Validation(t *testing.T) {
	dir := t.TempDir()
	for _, tc := range []struct{ old, new string }{{"", "x"}, {"x", ""}} {
		_, err := ReplacePhrase(dir, tc.old, tc.new)
		if !apperrors.Is(err, apperrors.KindValidation) {
			t.Fatalf("ReplacePhrase(%q, %q) = %v, want validation error", tc.old, tc.new, err)
		}
	}
	_, err := ReplacePhrase(filepath.Join(dir, "missing"), "a", "b")
	if !apperrors.Is(err, apperrors.KindInvalidDirectory) {
		t.Fatalf("expected invalid_directory, got %v", err)
	}
}
