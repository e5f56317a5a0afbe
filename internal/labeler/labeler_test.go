package labeler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oukeidos/lorakit/internal/apperrors"
)

func fixture(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(data)
}

func TestOpen_Mismatch(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		kind  apperrors.Kind
	}{
		{"count", map[string]string{"a.jpg": "", "a.txt": "", "b.jpg": ""}, apperrors.KindCountMismatch},
		{"names", map[string]string{"a.jpg": "", "b.txt": ""}, apperrors.KindPairing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(fixture(t, tt.files))
			if !apperrors.Is(err, tt.kind) {
				t.Fatalf("Open() error = %v, want kind %s", err, tt.kind)
			}
			if s != nil {
				t.Fatalf("expected no session on error")
			}
		})
	}
}

func TestOpen_PairsByName(t *testing.T) {
	// sorted image order and sorted caption order disagree here
	dir := fixture(t, map[string]string{
		"b.jpg": "", "a.png": "",
		"a.txt": "caption a", "b.txt": "caption b",
	})
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for i, want := range []string{"caption a", "caption b"} {
		pair, draft, ok := s.Current()
		if !ok || draft != want {
			t.Fatalf("pair %d: draft = %q, want %q", i, draft, want)
		}
		if filepath.Base(pair.CaptionPath)[:1] != filepath.Base(pair.ImagePath)[:1] {
			t.Fatalf("pair %d mismatched: %+v", i, pair)
		}
		if err := s.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}
}

func TestSaveAndDirty(t *testing.T) {
	dir := fixture(t, map[string]string{"a.jpg": "", "a.txt": "old"})
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Dirty() {
		t.Fatalf("fresh session should not be dirty")
	}
	s.SetDraft("new caption")
	if !s.Dirty() {
		t.Fatalf("edited draft should be dirty")
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if s.Dirty() {
		t.Fatalf("saved draft should not be dirty")
	}
	if got := read(t, filepath.Join(dir, "a.txt")); got != "new caption" {
		t.Fatalf("caption = %q", got)
	}
}

func TestAppend(t *testing.T) {
	tests := []struct {
		name      string
		caption   string
		wantFile  string
		wantDraft string
		wantDirty bool
	}{
		{"plain", "red,", "red,blue", "red,blue", false},
		{"trailing space", "red, ", "red, blue", "red,blue", true},
		{"trailing newline", "red, car\n", "red, car\nblue", "red, carblue", true},
		{"empty", "", "blue", "blue", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := fixture(t, map[string]string{"a.jpg": "", "a.txt": tt.caption})
			s, err := Open(dir)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if err := s.Append("  blue  "); err != nil {
				t.Fatalf("Append: %v", err)
			}
			if err := s.Append("   "); err != nil {
				t.Fatalf("Append blank: %v", err)
			}
			if got := read(t, filepath.Join(dir, "a.txt")); got != tt.wantFile {
				t.Fatalf("caption file = %q, want %q", got, tt.wantFile)
			}
			if s.Draft() != tt.wantDraft || s.Dirty() != tt.wantDirty {
				t.Fatalf("draft = %q dirty=%v, want %q dirty=%v", s.Draft(), s.Dirty(), tt.wantDraft, tt.wantDirty)
			}
		})
	}
}

func TestNavigation_ClampsAndDiscardsDraft(t *testing.T) {
	dir := fixture(t, map[string]string{
		"a.jpg": "", "a.txt": "A",
		"b.jpg": "", "b.txt": "B",
	})
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Previous(); err != nil || s.Index() != 0 {
		t.Fatalf("Previous at start: index=%d err=%v", s.Index(), err)
	}
	s.SetDraft("unsaved")
	if err := s.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if err := s.Next(); err != nil || s.Index() != 1 {
		t.Fatalf("Next at end: index=%d err=%v", s.Index(), err)
	}
	if err := s.Previous(); err != nil {
		t.Fatalf("Previous: %v", err)
	}
	if s.Draft() != "A" {
		t.Fatalf("unsaved draft should be discarded, got %q", s.Draft())
	}
	if got := read(t, filepath.Join(dir, "a.txt")); got != "A" {
		t.Fatalf("navigation wrote to disk: %q", got)
	}
}

func TestClose(t *testing.T) {
	dir := fixture(t, map[string]string{"a.jpg": "", "a.txt": "A"})
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Close()
	if !s.Empty() {
		t.Fatalf("closed session should be empty")
	}
	if _, _, ok := s.Current(); ok {
		t.Fatalf("Current after Close should report no pair")
	}
	if err := s.Save(); !apperrors.Is(err, apperrors.KindValidation) {
		t.Fatalf("Save after Close = %v", err)
	}
}

func TestSeek(t *testing.T) {
	dir := fixture(t, map[string]string{
		"a.jpg": "", "a.txt": "A",
		"b.jpg": "", "b.txt": "B",
	})
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Seek(1); err != nil || s.Draft() != "B" {
		t.Fatalf("Seek(1): draft=%q err=%v", s.Draft(), err)
	}
	for _, i := range []int{-1, 2} {
		if err := s.Seek(i); !apperrors.Is(err, apperrors.KindValidation) {
			t.Fatalf("Seek(%d) = %v", i, err)
		}
	}
	if len(s.Pairs()) != 2 {
		t.Fatalf("Pairs() = %v", s.Pairs())
	}
}
