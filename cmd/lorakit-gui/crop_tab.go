package main

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/lorakit/internal/cropper"
	"github.com/oukeidos/lorakit/internal/logger"
)

type cropTab struct {
	app     *lorakitApp
	content fyne.CanvasObject

	input    *widget.Entry
	output   *widget.Entry
	start    *widget.Button
	surface  *selectionSurface
	progress *widget.Label
	status   *widget.Label
	actions  []*widget.Button

	session *cropper.Session
	// busy is only touched on the UI goroutine. While set, the session
	// belongs to the worker goroutine.
	busy bool
}

func newCropTab(a *lorakitApp) *cropTab {
	t := &cropTab{app: a}

	var inputRow, outputRow fyne.CanvasObject
	t.input, inputRow = a.folderRow("Input folder", nil)
	t.output, outputRow = a.folderRow("Output folder", nil)
	t.start = widget.NewButton("Start", t.startSession)
	t.start.Importance = widget.HighImportance

	t.surface = newSelectionSurface(float32(a.config.PreviewHeight))
	t.surface.onBegin = t.beginSelection
	t.surface.onDrag = t.dragSelection
	t.surface.onEnd = t.endSelection

	t.progress = widget.NewLabel("")
	t.status = widget.NewLabel("Choose an input and an output folder, then press Start.")
	t.status.Wrapping = fyne.TextWrapWord

	order := []cropAction{
		actionCrop, actionCropFlip, actionSaveFull, actionDelete,
		actionSkip, actionPrevious, actionNext, actionClose,
	}
	row := container.NewHBox()
	for _, act := range order {
		btn := widget.NewButton(act.String(), func() { t.perform(act) })
		t.actions = append(t.actions, btn)
		row.Add(btn)
	}
	t.setActionsEnabled(false)

	form := widget.NewForm(
		widget.NewFormItem("Input", inputRow),
		widget.NewFormItem("Output", outputRow),
	)
	top := container.NewVBox(form, container.NewHBox(t.start, t.progress))
	bottom := container.NewVBox(container.NewHScroll(row), t.status)
	t.content = container.NewPadded(container.NewBorder(top, bottom, nil, nil, t.surface))
	return t
}

func (t *cropTab) setActionsEnabled(on bool) {
	for _, b := range t.actions {
		if on {
			b.Enable()
		} else {
			b.Disable()
		}
	}
}

func (t *cropTab) setStatus(s string) { t.status.SetText(s) }

func (t *cropTab) startSession() {
	if t.busy {
		return
	}
	in := strings.TrimSpace(t.input.Text)
	out := strings.TrimSpace(t.output.Text)
	if in == "" || out == "" {
		t.setStatus("Both an input and an output folder are required.")
		return
	}
	t.busy = true
	t.start.Disable()
	t.setStatus("Loading images…")
	t.app.runTask("crop.start", func() func() {
		s, err := cropper.NewSession(in, out)
		return func() {
			t.busy = false
			t.start.Enable()
			if s == nil {
				t.setStatus(errorStatus(err))
				return
			}
			t.session = s
			t.refresh()
			if err != nil {
				t.setStatus(errorStatus(err))
				return
			}
			logger.Info("Crop session started", "input", in, "output", out)
			t.setStatus("Drag over the image to select a region.")
		}
	}, t.reset)
}

// reset drops the session after a failed worker so the tab is usable again.
func (t *cropTab) reset() {
	t.busy = false
	t.session = nil
	t.start.Enable()
	t.refresh()
}

// refresh redraws the current image and the progress label.
func (t *cropTab) refresh() {
	s := t.session
	if s == nil {
		t.surface.SetImage(nil)
		t.progress.SetText("")
		t.setActionsEnabled(false)
		return
	}
	t.surface.SetImage(s.Image())
	t.progress.SetText(s.String())
	t.setActionsEnabled(true)
	if s.Done() {
		t.setStatus("All images processed.")
	}
}

func (t *cropTab) beginSelection(p image.Point) {
	if t.busy || t.session == nil {
		return
	}
	t.session.BeginSelection(p)
}

func (t *cropTab) dragSelection(p image.Point) {
	if t.busy || t.session == nil {
		return
	}
	t.session.DragSelection(p)
	if r, ok := t.session.LiveRect(); ok {
		t.surface.ShowRect(r)
	}
}

func (t *cropTab) endSelection(p image.Point) {
	if t.busy || t.session == nil {
		return
	}
	t.session.EndSelection(p)
	r, ok := t.session.Selection()
	if !ok {
		t.surface.ShowRect(image.Rectangle{})
		t.setStatus("Selection is empty.")
		return
	}
	t.surface.ShowRect(r)
	t.setStatus(fmt.Sprintf("Selected %dx%d at (%d,%d).", r.Dx(), r.Dy(), r.Min.X, r.Min.Y))
}

func (t *cropTab) handleRune(r rune) {
	if act := cropActionForRune(r); act != actionNone {
		t.perform(act)
	}
}

func (t *cropTab) perform(act cropAction) {
	if t.busy || t.session == nil {
		return
	}
	switch act {
	case actionClose:
		t.session = nil
		t.refresh()
		t.setStatus("Session closed.")
		return
	case actionDelete:
		path, _, _ := t.session.Current()
		if path == "" {
			return
		}
		dialog.ShowConfirm("Delete image",
			fmt.Sprintf("Delete %s from the input folder?", filepath.Base(path)),
			func(ok bool) {
				if ok {
					t.run(act)
				}
			}, t.app.window)
		return
	}
	t.run(act)
}

// run executes act on a worker goroutine and redraws afterwards.
func (t *cropTab) run(act cropAction) {
	if t.busy || t.session == nil {
		return
	}
	s := t.session
	t.busy = true
	t.setActionsEnabled(false)
	t.app.runTask("crop.action", func() func() {
		msg := applyCropAction(s, act)
		return func() {
			t.busy = false
			if t.session == s {
				t.refresh()
			}
			if msg != "" {
				t.setStatus(msg)
			}
		}
	}, t.reset)
}

// applyCropAction runs act against s and returns the status line to show.
func applyCropAction(s *cropper.Session, act cropAction) string {
	var (
		res cropper.SaveResult
		err error
	)
	switch act {
	case actionCrop, actionCropFlip:
		res, err = s.SaveCrop(act == actionCropFlip)
		if err == nil && !res.Written {
			return "Nothing selected; moved to the next image."
		}
	case actionSaveFull:
		res, err = s.SaveFull()
	case actionDelete:
		err = s.Delete()
		if err == nil {
			return "Deleted."
		}
	case actionSkip:
		err = s.Skip()
	case actionPrevious:
		var moved bool
		moved, err = s.Previous()
		if err == nil && !moved {
			return "Already at the first image."
		}
	case actionNext:
		var moved bool
		moved, err = s.Next()
		if err == nil && !moved {
			return "Already at the last image."
		}
	}
	switch {
	case errors.Is(err, cropper.ErrDone):
		return "All images processed."
	case err != nil:
		return errorStatus(err)
	case res.Written:
		return fmt.Sprintf("Saved %s (%dx%d).", filepath.Base(res.Path), res.Width, res.Height)
	}
	return ""
}
