package main

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/lorakit/internal/logger"
)

// page is one entry of the navigation list.
type page struct {
	title   string
	content fyne.CanvasObject
	// onRune receives typed runes while the page is shown.
	onRune func(rune)
	onShow func()
}

type lorakitApp struct {
	window fyne.Window
	config AppConfig

	pages   []*page
	current int
	stack   *fyne.Container

	crop   *cropTab
	rename *renameTab
	label  *labelTab
	shots  *screenshotTab
	tags   *tagsTab

	panicNoticeOnce sync.Once
}

func newLorakitApp(w fyne.Window) *lorakitApp {
	a := &lorakitApp{window: w}
	a.loadConfig()
	a.setupUI()
	return a
}

func (a *lorakitApp) setupUI() {
	a.crop = newCropTab(a)
	a.rename = newRenameTab(a)
	a.label = newLabelTab(a)
	a.shots = newScreenshotTab(a)
	a.tags = newTagsTab(a)

	a.pages = []*page{
		{title: "Crop", content: a.crop.content, onRune: a.crop.handleRune},
		{title: "Rename", content: a.rename.content},
		{title: "Label", content: a.label.content},
		{title: "Make Dataset", content: a.shots.content},
		{title: "Manage Tags", content: a.tags.content, onShow: a.tags.refreshIfOpen},
		{title: "About", content: buildAboutTab()},
	}

	objects := make([]fyne.CanvasObject, len(a.pages))
	for i, p := range a.pages {
		objects[i] = p.content
		if i != 0 {
			p.content.Hide()
		}
	}
	a.stack = container.NewStack(objects...)

	nav := widget.NewList(
		func() int { return len(a.pages) },
		func() fyne.CanvasObject { return widget.NewLabel("Make Dataset") },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(a.pages[id].title)
		},
	)
	nav.OnSelected = func(id widget.ListItemID) { a.showPage(id) }
	nav.Select(0)

	a.window.Canvas().SetOnTypedRune(func(r rune) {
		withPanicGuard("ui.typed_rune", a.recoverer("ui.typed_rune"), func() {
			if a.focusedEntry() {
				return
			}
			if fn := a.pages[a.current].onRune; fn != nil {
				fn(r)
			}
		})
	})

	split := container.NewHSplit(nav, a.stack)
	split.Offset = 0.16
	a.window.SetContent(split)
}

func (a *lorakitApp) showPage(i int) {
	if i < 0 || i >= len(a.pages) {
		return
	}
	for j, p := range a.pages {
		if j == i {
			p.content.Show()
		} else {
			p.content.Hide()
		}
	}
	a.current = i
	a.stack.Refresh()
	if fn := a.pages[i].onShow; fn != nil {
		fn()
	}
	logger.Debug("Page shown", "page", a.pages[i].title)
}

// focusedEntry reports whether keyboard input is going to a text field, so
// page shortcuts do not fire while typing.
func (a *lorakitApp) focusedEntry() bool {
	switch a.window.Canvas().Focused().(type) {
	case *widget.Entry, *widget.SelectEntry:
		return true
	}
	return false
}

// pickFolder opens a folder dialog and fills entry with the choice.
func (a *lorakitApp) pickFolder(entry *widget.Entry, then func(string)) {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if uri == nil {
			return
		}
		entry.SetText(uri.Path())
		if then != nil {
			then(uri.Path())
		}
	}, a.window)
}

// folderRow is an entry plus a Browse button.
func (a *lorakitApp) folderRow(placeholder string, then func(string)) (*widget.Entry, fyne.CanvasObject) {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(placeholder)
	browse := widget.NewButton("Browse…", func() { a.pickFolder(entry, then) })
	return entry, container.NewBorder(nil, nil, nil, browse, entry)
}

func (a *lorakitApp) shutdown() {
	if a.shots != nil {
		a.shots.stop()
	}
	if a.tags != nil {
		a.tags.stopWatch()
	}
}
