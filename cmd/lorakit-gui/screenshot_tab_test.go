package main

import (
	"reflect"
	"testing"

	"github.com/oukeidos/lorakit/internal/apperrors"
)

func TestValidateKeys(t *testing.T) {
	tests := []struct {
		capture, stop string
		wantErr       bool
	}{
		{"g", "escape", false},
		{"f9", "esc", false},
		{"g", "g", true},
		{"escape", "esc", true},
		{"", "escape", true},
		{"g", "ctrl+q", true},
	}
	for _, tt := range tests {
		err := validateKeys(tt.capture, tt.stop)
		if (err != nil) != tt.wantErr {
			t.Fatalf("validateKeys(%q, %q) error = %v, wantErr %v", tt.capture, tt.stop, err, tt.wantErr)
		}
		if err != nil && !apperrors.Is(err, apperrors.KindValidation) {
			t.Fatalf("validateKeys(%q, %q) kind = %v, want validation", tt.capture, tt.stop, err)
		}
	}
}

func TestAppendCaptureLog(t *testing.T) {
	var lines []string
	for _, l := range []string{"a", "b", "c", "d"} {
		lines = appendCaptureLog(lines, l, 3)
	}
	if want := []string{"d", "c", "b"}; !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines = %v, want %v", lines, want)
	}
}

func TestScreenshotTabStopWithoutSession(t *testing.T) {
	tab := &screenshotTab{}
	tab.stop()
	if tab.running() {
		t.Fatalf("expected no running session")
	}
}
