package capture

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/oukeidos/lorakit/internal/apperrors"
)

type fakeCapturer struct {
	mu    sync.Mutex
	calls int
	err   error
	block chan struct{}
}

func (f *fakeCapturer) Capture() (image.Image, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	return img, nil
}

func fixedClock() func() time.Time {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local)
	return func() time.Time { return ts }
}

func TestCaptureOnce_CreatesDirAndNeverOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	svc := NewService(dir, &fakeCapturer{}, WithClock(fixedClock()))

	first, err := svc.CaptureOnce()
	if err != nil {
		t.Fatalf("CaptureOnce: %v", err)
	}
	if filepath.Base(first) != "2024-05-06_07-08-09.png" {
		t.Fatalf("unexpected name %q", first)
	}
	second, err := svc.CaptureOnce()
	if err != nil {
		t.Fatalf("CaptureOnce: %v", err)
	}
	if filepath.Base(second) != "2024-05-06_07-08-09_1.png" {
		t.Fatalf("collision not avoided: %q", second)
	}

	f, err := os.Open(first)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if format != "png" || cfg.Width != 4 || cfg.Height != 3 {
		t.Fatalf("got %s %dx%d", format, cfg.Width, cfg.Height)
	}
}

func TestCaptureOnce_CapturerError(t *testing.T) {
	svc := NewService(t.TempDir(), &fakeCapturer{err: errors.New("no display")})
	if _, err := svc.CaptureOnce(); !apperrors.Is(err, apperrors.KindFilesystem) {
		t.Fatalf("expected filesystem error, got %v", err)
	}
}

func waitStatus(t *testing.T, svc *Service, kind StatusKind) Status {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case st, ok := <-svc.Status():
			if !ok {
				t.Fatalf("status channel closed while waiting for %d", kind)
			}
			if st.Kind == kind {
				return st
			}
		case <-timeout:
			t.Fatalf("timed out waiting for status %d", kind)
		}
	}
}

func TestService_TriggersAreSerialized(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, &fakeCapturer{}, WithClock(fixedClock()), WithQueueSize(8))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := svc.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("second Start = %v", err)
	}

	for i := 0; i < 3; i++ {
		if !svc.Trigger() {
			t.Fatalf("trigger %d rejected", i)
		}
	}
	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		st := waitStatus(t, svc, StatusSaved)
		if seen[st.Path] {
			t.Fatalf("path reused: %s", st.Path)
		}
		seen[st.Path] = true
	}
	svc.Stop()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 screenshots, got %d", len(entries))
	}
	if svc.Trigger() {
		t.Fatalf("Trigger after Stop should be rejected")
	}
}

func TestService_FullQueueDrops(t *testing.T) {
	fc := &fakeCapturer{block: make(chan struct{})}
	svc := NewService(t.TempDir(), fc, WithQueueSize(1))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// The first trigger is taken by the worker and blocks in Capture.
	svc.Trigger()
	deadline := time.Now().Add(5 * time.Second)
	for len(svc.requests) != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if !svc.Trigger() {
		t.Fatalf("queued trigger rejected")
	}
	if svc.Trigger() {
		t.Fatalf("trigger on a full queue should be dropped")
	}
	waitStatus(t, svc, StatusDropped)

	close(fc.block)
	waitStatus(t, svc, StatusSaved)
	svc.Stop()
}

func TestService_ContextCancelStops(t *testing.T) {
	svc := NewService(t.TempDir(), &fakeCapturer{})
	ctx, cancel := context.WithCancel(context.Background())
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	cancel()
	select {
	case <-svc.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("service did not stop on cancel")
	}
	svc.Stop()
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		st   Status
		want string
	}{
		{Status{Kind: StatusSaved, Path: "/x/a.png"}, "Saved a.png"},
		{Status{Kind: StatusStopped}, "Capture stopped"},
		{Status{Kind: StatusFailed, Err: apperrors.Validation("boom")}, "Capture failed: boom"},
	}
	for _, tt := range tests {
		if got := tt.st.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestService_TriggerDuringStop(t *testing.T) {
	for i := 0; i < 50; i++ {
		svc := NewService(t.TempDir(), &fakeCapturer{}, WithQueueSize(1))
		if err := svc.Start(context.Background()); err != nil {
			t.Fatalf("Start: %v", err)
		}
		var wg sync.WaitGroup
		for g := 0; g < 4; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 20; j++ {
					svc.Trigger()
				}
			}()
		}
		svc.Stop()
		wg.Wait()

		// A dropped-trigger notification arriving after the worker exited
		// must be discarded, not sent on the closed channel.
		svc.notify(Status{Kind: StatusDropped})
		for range svc.Status() {
		}
	}
}
