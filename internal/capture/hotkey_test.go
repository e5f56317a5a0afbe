package capture

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.design/x/hotkey"

	"github.com/oukeidos/lorakit/internal/apperrors"
)

type fakeBinding struct {
	events       chan hotkey.Event
	unregistered bool
}

func (f *fakeBinding) Keydown() <-chan hotkey.Event { return f.events }
func (f *fakeBinding) Unregister() error {
	f.unregistered = true
	return nil
}

// stubBindings prepares fake bindings for the default keys.
func stubBindings(t *testing.T) map[hotkey.Key]*fakeBinding {
	t.Helper()
	bound := map[hotkey.Key]*fakeBinding{
		hotkey.KeyG:      {events: make(chan hotkey.Event, 4)},
		hotkey.KeyEscape: {events: make(chan hotkey.Event, 4)},
	}
	prev := bindKey
	bindKey = func(key hotkey.Key) (binding, error) {
		b, ok := bound[key]
		if !ok {
			return nil, errors.New("unexpected key")
		}
		return b, nil
	}
	t.Cleanup(func() { bindKey = prev })
	return bound
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		want hotkey.Key
		ok   bool
	}{
		{"g", hotkey.KeyG, true},
		{" G ", hotkey.KeyG, true},
		{"Escape", hotkey.KeyEscape, true},
		{"esc", hotkey.KeyEscape, true},
		{"F5", hotkey.KeyF5, true},
		{"ctrl", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseKey(tt.name)
		if (err == nil) != tt.ok {
			t.Fatalf("ParseKey(%q) err = %v", tt.name, err)
		}
		if tt.ok && got != tt.want {
			t.Fatalf("ParseKey(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestHotkeyListener_CaptureThenStop(t *testing.T) {
	bound := stubBindings(t)
	svc := NewService(t.TempDir(), &fakeCapturer{}, WithClock(fixedClock()))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- HotkeyListener{}.Run(context.Background(), svc) }()

	bound[hotkey.KeyG].events <- hotkey.Event{}
	waitStatus(t, svc, StatusSaved)
	bound[hotkey.KeyEscape].events <- hotkey.Event{}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("listener did not stop")
	}
	select {
	case <-svc.Done():
	default:
		t.Fatalf("service should be stopped")
	}
	if !bound[hotkey.KeyG].unregistered || !bound[hotkey.KeyEscape].unregistered {
		t.Fatalf("hotkeys not unregistered")
	}
}

func TestHotkeyListener_Validation(t *testing.T) {
	stubBindings(t)
	svc := NewService(t.TempDir(), &fakeCapturer{})
	tests := []HotkeyListener{
		{CaptureKey: "nope"},
		{CaptureKey: "g", StopKey: "G"},
	}
	for _, l := range tests {
		if err := l.Run(context.Background(), svc); !apperrors.Is(err, apperrors.KindValidation) {
			t.Fatalf("Run(%+v) = %v, want validation error", l, err)
		}
	}
}

func TestHotkeyListener_RegisterFailure(t *testing.T) {
	prev := bindKey
	bindKey = func(hotkey.Key) (binding, error) { return nil, errors.New("no display") }
	defer func() { bindKey = prev }()

	svc := NewService(t.TempDir(), &fakeCapturer{})
	if err := (HotkeyListener{}).Run(context.Background(), svc); err == nil {
		t.Fatalf("expected registration error")
	}
}
