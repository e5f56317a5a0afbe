package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/lorakit/internal/labeler"
	"github.com/oukeidos/lorakit/internal/logger"
)

type labelTab struct {
	app     *lorakitApp
	content fyne.CanvasObject

	dir     *widget.Entry
	image   *canvas.Image
	caption *widget.Entry
	extra   *widget.Entry
	title   *widget.Label
	status  *widget.Label
	buttons []*widget.Button

	session *labeler.Session
	// loading suppresses draft updates while the entry is being filled.
	loading bool
}

func newLabelTab(a *lorakitApp) *labelTab {
	t := &labelTab{app: a}

	var dirRow fyne.CanvasObject
	t.dir, dirRow = a.folderRow("Folder with images and captions", nil)
	open := widget.NewButton("Open", t.open)
	open.Importance = widget.HighImportance

	t.image = canvas.NewImageFromImage(nil)
	t.image.FillMode = canvas.ImageFillContain
	t.image.SetMinSize(fyne.NewSize(360, 360))

	t.caption = widget.NewMultiLineEntry()
	t.caption.Wrapping = fyne.TextWrapWord
	t.caption.SetMinRowsVisible(8)
	t.caption.OnChanged = t.draftChanged

	t.extra = widget.NewEntry()
	t.extra.SetPlaceHolder("Text to append")

	t.title = widget.NewLabel("")
	t.status = widget.NewLabel("")
	t.status.Wrapping = fyne.TextWrapWord

	save := widget.NewButton("Save", t.save)
	appendBtn := widget.NewButton("Append", t.appendText)
	prev := widget.NewButton("Previous", func() { t.move(-1) })
	next := widget.NewButton("Next", func() { t.move(1) })
	closeBtn := widget.NewButton("Close", t.closeSession)
	t.buttons = []*widget.Button{save, appendBtn, prev, next, closeBtn}
	t.setEnabled(false)

	editor := container.NewBorder(
		t.title,
		container.NewVBox(
			container.NewBorder(nil, nil, nil, appendBtn, t.extra),
			container.NewHBox(prev, next, save, closeBtn),
			t.status,
		),
		nil, nil,
		t.caption,
	)
	split := container.NewHSplit(t.image, editor)
	split.Offset = 0.5

	top := container.NewBorder(nil, nil, nil, open, widget.NewForm(widget.NewFormItem("Folder", dirRow)))
	t.content = container.NewPadded(container.NewBorder(top, nil, nil, nil, split))
	return t
}

func (t *labelTab) setEnabled(on bool) {
	for _, b := range t.buttons {
		if on {
			b.Enable()
		} else {
			b.Disable()
		}
	}
}

func (t *labelTab) open() {
	dir := strings.TrimSpace(t.dir.Text)
	t.status.SetText("Opening…")
	t.app.runTask("label.open", func() func() {
		s, err := labeler.Open(dir)
		return func() {
			if err != nil {
				t.session = nil
				t.show()
				t.status.SetText(errorStatus(err))
				return
			}
			t.session = s
			t.show()
			if s.Empty() {
				t.status.SetText("No image/caption pairs in this folder.")
				return
			}
			t.status.SetText(fmt.Sprintf("Opened %d pair(s).", s.Len()))
		}
	}, func() { t.status.SetText("Could not open the folder.") })
}

// show loads the current pair into the widgets.
func (t *labelTab) show() {
	t.loading = true
	defer func() { t.loading = false }()

	if t.session == nil || t.session.Empty() {
		t.image.File = ""
		t.image.Image = nil
		t.image.Refresh()
		t.caption.SetText("")
		t.title.SetText("")
		t.setEnabled(false)
		return
	}
	pair, draft, _ := t.session.Current()
	t.image.Image = nil
	t.image.File = pair.ImagePath
	t.image.Refresh()
	t.caption.SetText(draft)
	t.updateTitle()
	t.setEnabled(true)
}

func (t *labelTab) updateTitle() {
	pair, _, ok := t.session.Current()
	if !ok {
		return
	}
	t.title.SetText(labelTitle(t.session.Index(), t.session.Len(), filepath.Base(pair.ImagePath), t.session.Dirty()))
}

func (t *labelTab) draftChanged(text string) {
	if t.loading || t.session == nil || t.session.Empty() {
		return
	}
	t.session.SetDraft(text)
	t.updateTitle()
}

func (t *labelTab) save() {
	if t.session == nil {
		return
	}
	if err := t.session.Save(); err != nil {
		t.status.SetText(errorStatus(err))
		return
	}
	t.updateTitle()
	t.status.SetText("Caption saved.")
	t.app.tags.refreshIfOpen()
}

func (t *labelTab) appendText() {
	if t.session == nil {
		return
	}
	if t.session.Dirty() {
		t.status.SetText("Save or discard the edited caption before appending.")
		return
	}
	if err := t.session.Append(t.extra.Text); err != nil {
		t.status.SetText(errorStatus(err))
		return
	}
	t.extra.SetText("")
	t.show()
	t.status.SetText("Text appended.")
	t.app.tags.refreshIfOpen()
}

// move steps by delta, asking first when the draft has unsaved edits.
func (t *labelTab) move(delta int) {
	if t.session == nil || t.session.Empty() {
		return
	}
	step := func() {
		var err error
		if delta < 0 {
			err = t.session.Previous()
		} else {
			err = t.session.Next()
		}
		if err != nil {
			t.status.SetText(errorStatus(err))
			return
		}
		t.show()
		t.status.SetText("")
	}
	if !t.session.Dirty() {
		step()
		return
	}
	dialog.ShowConfirm("Unsaved caption", "Discard the changes to this caption?", func(ok bool) {
		if ok {
			logger.Debug("Draft discarded", "index", t.session.Index())
			step()
		}
	}, t.app.window)
}

func (t *labelTab) closeSession() {
	if t.session == nil {
		return
	}
	t.session.Close()
	t.session = nil
	t.show()
	t.status.SetText("Folder closed.")
}

func labelTitle(index, total int, name string, dirty bool) string {
	s := fmt.Sprintf("%d/%d  %s", index+1, total, name)
	if dirty {
		s += "  (unsaved)"
	}
	return s
}
