package main

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/oukeidos/lorakit/internal/capture"
)

func TestCropCommand(t *testing.T) {
	in := t.TempDir()
	src := filepath.Join(in, "a.png")
	if err := imaging.Save(imaging.New(40, 30, image.White.C), src); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	out := filepath.Join(t.TempDir(), "out")

	stdout, err := executeCommand(t, "crop", src, "--rect", "5,5,25,20", "--flip", "--out", out)
	if err != nil {
		t.Fatalf("crop: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "(20x15)") {
		t.Fatalf("unexpected output: %s", stdout)
	}
	if _, err := os.Stat(filepath.Join(out, "flipped_a.png")); err != nil {
		t.Fatalf("flipped crop missing: %v", err)
	}

	if _, err := executeCommand(t, "crop-full", src, "--out", out); err != nil {
		t.Fatalf("crop-full: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "a.png")); err != nil {
		t.Fatalf("full copy missing: %v", err)
	}
}

func TestCropCommand_RequiresRect(t *testing.T) {
	out, err := executeCommand(t, "crop", "a.png", "--out", t.TempDir())
	if err == nil || !strings.Contains(out, `"rect"`) {
		t.Fatalf("expected missing rect error, got %v: %s", err, out)
	}
}

func TestRenameReplaceCommand(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.txt": "ohwx man, hat"})
	out, err := executeCommand(t, "rename", "replace", dir, "--old", "ohwx man", "--new", "sks")
	if err != nil {
		t.Fatalf("replace: %v\n%s", err, out)
	}
	if got := readText(t, filepath.Join(dir, "a.txt")); got != "sks, hat" {
		t.Fatalf("a.txt = %q", got)
	}
	if !strings.Contains(out, "1 changed") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestRenameCounterCommand_DryRunAndManifest(t *testing.T) {
	dir := writeTree(t, map[string]string{"cat.jpg": "", "cat.txt": ""})
	manifest := filepath.Join(t.TempDir(), "plan.yaml")

	out, err := executeCommand(t, "rename", "counter", dir, "--dry-run", "--manifest", manifest)
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if !strings.Contains(out, "-> 000.jpg") {
		t.Fatalf("plan not printed: %s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "cat.jpg")); err != nil {
		t.Fatalf("dry run renamed files: %v", err)
	}
	if !strings.Contains(readText(t, manifest), "new: 000.txt") {
		t.Fatalf("manifest missing entry:\n%s", readText(t, manifest))
	}
}

func TestRenameCounterCommand_ConfirmAndUndo(t *testing.T) {
	dir := writeTree(t, map[string]string{"cat.jpg": "c", "cat.txt": "t"})
	manifest := filepath.Join(t.TempDir(), "plan.yaml")

	withAnswer(t, "n\n")
	if _, err := executeCommand(t, "rename", "counter", dir); err != nil {
		t.Fatalf("declined rename: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "cat.jpg")); err != nil {
		t.Fatalf("declined rename still renamed: %v", err)
	}

	if _, err := executeCommand(t, "rename", "counter", dir, "-y", "--manifest", manifest); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if readText(t, filepath.Join(dir, "000.txt")) != "t" {
		t.Fatalf("000.txt not created")
	}

	if _, err := executeCommand(t, "rename", "undo", manifest, "-y"); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if readText(t, filepath.Join(dir, "cat.jpg")) != "c" {
		t.Fatalf("undo did not restore cat.jpg")
	}
}

func TestLabelCommands(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.jpg": "", "a.txt": "first caption",
		"b.jpg": "", "b.txt": "second",
	})

	out, err := executeCommand(t, "label", "list", dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "a.jpg") || !strings.Contains(out, "first caption") {
		t.Fatalf("unexpected list output: %s", out)
	}

	if _, err := executeCommand(t, "label", "set", dir, "1", "new text"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := executeCommand(t, "label", "append", dir, "1", ", more"); err != nil {
		t.Fatalf("append: %v", err)
	}
	out, err = executeCommand(t, "label", "show", dir, "1")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "new text, more") {
		t.Fatalf("unexpected show output: %s", out)
	}

	if _, err := executeCommand(t, "label", "show", dir, "5"); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestLabelCommand_Mismatch(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.jpg": "", "b.txt": ""})
	out, err := executeCommand(t, "label", "list", dir)
	if err == nil || !strings.Contains(out, "do not match") {
		t.Fatalf("expected pairing error, got %v: %s", err, out)
	}
}

func TestTagsCommands(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.txt": "red, blue, red",
		"b.txt": "blue, green",
	})

	out, err := executeCommand(t, "tags", "list", dir, "--limit", "1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "blue") || strings.Contains(out, "green") || !strings.Contains(out, "2 more") {
		t.Fatalf("unexpected list output: %s", out)
	}

	out, err = executeCommand(t, "tags", "list", dir, "--filter", "GRE")
	if err != nil || !strings.Contains(out, "green") || strings.Contains(out, "red ") {
		t.Fatalf("filtered list: %v\n%s", err, out)
	}

	if _, err := executeCommand(t, "tags", "remove", dir, "Blue", "-y"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := readText(t, filepath.Join(dir, "a.txt")); got != "red, red" {
		t.Fatalf("a.txt = %q", got)
	}

	if _, err := executeCommand(t, "dedupe", dir); err != nil {
		t.Fatalf("dedupe: %v", err)
	}
	if got := readText(t, filepath.Join(dir, "a.txt")); got != "red" {
		t.Fatalf("a.txt after dedupe = %q", got)
	}
}

type solidCapturer struct{}

func (solidCapturer) Capture() (image.Image, error) {
	return imaging.New(8, 6, image.Black.C), nil
}

func TestShootCommand(t *testing.T) {
	prevCapturer, prevRun := newCapturer, runHotkeys
	newCapturer = func() capture.Capturer { return solidCapturer{} }
	runHotkeys = func(ctx context.Context, l capture.HotkeyListener, svc *capture.Service) error {
		if _, err := svc.CaptureOnce(); err != nil {
			return err
		}
		return nil
	}
	defer func() { newCapturer, runHotkeys = prevCapturer, prevRun }()

	dir := filepath.Join(t.TempDir(), "shots")
	out, err := executeCommand(t, "shoot", "--dir", dir)
	if err != nil {
		t.Fatalf("shoot: %v\n%s", err, out)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one screenshot, got %v (%v)", entries, err)
	}
}

func TestShootCommand_BadKey(t *testing.T) {
	if _, err := executeCommand(t, "shoot", "--capture-key", "hyper"); err == nil {
		t.Fatalf("expected unsupported key error")
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"red", 5, "red  "},
		{"猫", 4, "猫  "},
		{"toolong", 3, "toolong"},
	}
	for _, tt := range tests {
		if got := padRight(tt.in, tt.width); got != tt.want {
			t.Fatalf("padRight(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestPreview(t *testing.T) {
	if got := preview("a  b\nc", 10); got != "a b c" {
		t.Fatalf("preview = %q", got)
	}
	if got := preview("abcdefghij", 5); got != "abcd…" {
		t.Fatalf("preview = %q", got)
	}
}
