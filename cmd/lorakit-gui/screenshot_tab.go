package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/lorakit/internal/apperrors"
	"github.com/oukeidos/lorakit/internal/capture"
	"github.com/oukeidos/lorakit/internal/logger"
)

const maxCaptureLog = 200

type screenshotTab struct {
	app     *lorakitApp
	content fyne.CanvasObject

	dir        *widget.Entry
	captureKey *widget.Entry
	stopKey    *widget.Entry
	start      *widget.Button
	stopBtn    *widget.Button
	state      *widget.Label
	log        *widget.Label
	lines      []string
	saved      int

	mu     sync.Mutex
	svc    *capture.Service
	cancel context.CancelFunc
}

func newScreenshotTab(a *lorakitApp) *screenshotTab {
	t := &screenshotTab{app: a}

	var dirRow fyne.CanvasObject
	t.dir, dirRow = a.folderRow("Folder for screenshots", nil)
	t.dir.SetText(capture.DefaultDir)

	t.captureKey = widget.NewEntry()
	t.captureKey.SetText(a.config.CaptureKey)
	t.stopKey = widget.NewEntry()
	t.stopKey.SetText(a.config.StopKey)

	t.start = widget.NewButton("Start", t.startCapture)
	t.start.Importance = widget.HighImportance
	t.stopBtn = widget.NewButton("Stop", t.stop)
	t.stopBtn.Disable()
	now := widget.NewButton("Capture now", t.captureNow)

	t.state = widget.NewLabel("Stopped.")
	t.log = widget.NewLabel("")
	t.log.TextStyle = fyne.TextStyle{Monospace: true}

	form := widget.NewForm(
		widget.NewFormItem("Folder", dirRow),
		widget.NewFormItem("Capture key", t.captureKey),
		widget.NewFormItem("Stop key", t.stopKey),
	)
	top := container.NewVBox(
		form,
		widget.NewLabel("Keys work globally while capture is running, even when this window is not focused."),
		container.NewHBox(t.start, t.stopBtn, now, t.state),
		widget.NewSeparator(),
	)
	t.content = container.NewPadded(container.NewBorder(top, nil, nil, nil, container.NewVScroll(t.log)))
	return t
}

func (t *screenshotTab) running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.svc != nil
}

func (t *screenshotTab) startCapture() {
	if t.running() {
		return
	}
	captureName := strings.ToLower(strings.TrimSpace(t.captureKey.Text))
	stopName := strings.ToLower(strings.TrimSpace(t.stopKey.Text))
	if err := validateKeys(captureName, stopName); err != nil {
		t.state.SetText(errorStatus(err))
		return
	}
	dir := strings.TrimSpace(t.dir.Text)
	if dir == "" {
		dir = capture.DefaultDir
		t.dir.SetText(dir)
	}
	if captureName != t.app.config.CaptureKey || stopName != t.app.config.StopKey {
		t.app.config.CaptureKey, t.app.config.StopKey = captureName, stopName
		t.app.saveConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())
	svc := capture.NewService(dir, capture.ScreenCapturer{})
	if err := svc.Start(ctx); err != nil {
		cancel()
		t.state.SetText(errorStatus(err))
		return
	}
	t.mu.Lock()
	t.svc, t.cancel = svc, cancel
	t.mu.Unlock()

	t.start.Disable()
	t.stopBtn.Enable()
	t.state.SetText(fmt.Sprintf("Running: %s captures, %s stops.", strings.ToUpper(captureName), strings.ToUpper(stopName)))

	t.app.safeGo("capture.status", func() {
		for st := range svc.Status() {
			t.app.safeDo("capture.status.show", func() { t.record(st) })
		}
	})
	listener := capture.HotkeyListener{CaptureKey: captureName, StopKey: stopName}
	t.app.safeGo("capture.hotkeys", func() {
		err := listener.Run(ctx, svc)
		if err != nil {
			logger.Error("Hotkey listener failed", "error", err)
		}
		t.stop()
		t.app.safeDo("capture.stopped", func() {
			t.start.Enable()
			t.stopBtn.Disable()
			if err != nil {
				t.state.SetText(errorStatus(err))
				return
			}
			t.state.SetText(fmt.Sprintf("Stopped. %d screenshot(s) saved this session.", t.saved))
		})
	})
}

// stop ends a running capture session. It may be called from any goroutine.
func (t *screenshotTab) stop() {
	t.mu.Lock()
	svc, cancel := t.svc, t.cancel
	t.svc, t.cancel = nil, nil
	t.mu.Unlock()
	if svc == nil {
		return
	}
	cancel()
	svc.Stop()
}

// captureNow takes one screenshot, through the running service when there is one.
func (t *screenshotTab) captureNow() {
	t.mu.Lock()
	svc := t.svc
	t.mu.Unlock()
	if svc != nil {
		svc.Trigger()
		return
	}
	dir := strings.TrimSpace(t.dir.Text)
	if dir == "" {
		dir = capture.DefaultDir
	}
	t.app.safeGo("capture.once", func() {
		path, err := capture.NewService(dir, capture.ScreenCapturer{}).CaptureOnce()
		st := capture.Status{Kind: capture.StatusSaved, Path: path}
		if err != nil {
			st = capture.Status{Kind: capture.StatusFailed, Err: err}
		}
		t.app.safeDo("capture.once.done", func() { t.record(st) })
	})
}

func (t *screenshotTab) record(st capture.Status) {
	if st.Kind == capture.StatusStopped {
		return
	}
	if st.Kind == capture.StatusSaved {
		t.saved++
	}
	t.lines = appendCaptureLog(t.lines, st.String(), maxCaptureLog)
	t.log.SetText(strings.Join(t.lines, "\n"))
}

// appendCaptureLog adds line at the top and keeps at most limit lines.
func appendCaptureLog(lines []string, line string, limit int) []string {
	lines = append([]string{line}, lines...)
	if len(lines) > limit {
		lines = lines[:limit]
	}
	return lines
}

func validateKeys(captureName, stopName string) error {
	captureKey, err := capture.ParseKey(captureName)
	if err != nil {
		return err
	}
	stopKey, err := capture.ParseKey(stopName)
	if err != nil {
		return err
	}
	if captureKey == stopKey {
		return apperrors.Validation("Capture and stop keys must differ.")
	}
	return nil
}
