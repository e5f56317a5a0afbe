package main

import (
	"context"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/lorakit/internal/logger"
	"github.com/oukeidos/lorakit/internal/tags"
)

type tagsTab struct {
	app     *lorakitApp
	content fyne.CanvasObject

	dir     *widget.Entry
	filter  *widget.Entry
	list    *widget.List
	remove  *widget.Button
	dedupe  *widget.Button
	summary *widget.Label
	status  *widget.Label

	index    *tags.Index
	visible  []tags.Entry
	selected string

	stopWatching context.CancelFunc
}

func newTagsTab(a *lorakitApp) *tagsTab {
	t := &tagsTab{app: a}

	var dirRow fyne.CanvasObject
	t.dir, dirRow = a.folderRow("Folder with captions", func(string) { t.scan() })
	scan := widget.NewButton("Scan", t.scan)
	scan.Importance = widget.HighImportance

	t.filter = widget.NewEntry()
	t.filter.SetPlaceHolder("Filter tags")
	t.filter.OnChanged = func(string) { t.applyFilter() }

	t.list = widget.NewList(
		func() int { return len(t.visible) },
		func() fyne.CanvasObject { return widget.NewLabel("some long tag name (0000)") },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if id < len(t.visible) {
				o.(*widget.Label).SetText(tagRow(t.visible[id]))
			}
		},
	)
	t.list.OnSelected = func(id widget.ListItemID) {
		if id < len(t.visible) {
			t.selected = t.visible[id].Tag
			t.remove.Enable()
		}
	}
	t.list.OnUnselected = func(widget.ListItemID) {
		t.selected = ""
		t.remove.Disable()
	}

	t.remove = widget.NewButton("Remove tag…", t.confirmRemove)
	t.remove.Disable()
	t.dedupe = widget.NewButton("Remove duplicates", t.runDedupe)
	t.summary = widget.NewLabel("")
	t.status = widget.NewLabel("")
	t.status.Wrapping = fyne.TextWrapWord

	top := container.NewVBox(
		container.NewBorder(nil, nil, nil, scan, widget.NewForm(widget.NewFormItem("Folder", dirRow))),
		t.filter,
	)
	bottom := container.NewVBox(
		container.NewHBox(t.remove, t.dedupe, t.summary),
		t.status,
	)
	t.content = container.NewPadded(container.NewBorder(top, bottom, nil, nil, t.list))
	return t
}

func (t *tagsTab) scan() {
	dir := strings.TrimSpace(t.dir.Text)
	t.stopWatch()
	t.status.SetText("Scanning…")
	t.app.safeGo("tags.scan", func() {
		idx, err := tags.Scan(dir)
		t.app.safeDo("tags.scan.done", func() {
			if err != nil {
				t.index = nil
				t.showEntries()
				t.status.SetText(errorStatus(err))
				return
			}
			t.index = idx
			t.showEntries()
			t.status.SetText("")
			t.startWatch(idx)
		})
	})
}

// startWatch rescans idx whenever its caption files change on disk.
func (t *tagsTab) startWatch(idx *tags.Index) {
	ctx, cancel := context.WithCancel(context.Background())
	t.stopWatching = cancel
	t.app.safeGo("tags.watch", func() {
		err := tags.Watch(ctx, idx.Dir(), func() {
			if err := idx.Rescan(); err != nil {
				logger.Warn("Tag rescan failed", "dir", idx.Dir(), "error", err)
				return
			}
			t.app.safeDo("tags.watch.refresh", func() {
				if t.index == idx {
					t.showEntries()
				}
			})
		})
		if err != nil {
			logger.Warn("Folder watch ended", "dir", idx.Dir(), "error", err)
		}
	})
}

func (t *tagsTab) stopWatch() {
	if t.stopWatching != nil {
		t.stopWatching()
		t.stopWatching = nil
	}
}

// refreshIfOpen rescans the open folder after another tab changed files.
func (t *tagsTab) refreshIfOpen() {
	idx := t.index
	if idx == nil {
		return
	}
	t.app.safeGo("tags.refresh", func() {
		if err := idx.Rescan(); err != nil {
			t.app.safeDo("tags.refresh.failed", func() { t.status.SetText(errorStatus(err)) })
			return
		}
		t.app.safeDo("tags.refresh.done", func() {
			if t.index == idx {
				t.showEntries()
			}
		})
	})
}

func (t *tagsTab) showEntries() {
	if t.index == nil {
		t.visible = nil
		t.summary.SetText("")
	} else {
		all := t.index.Entries()
		t.summary.SetText(fmt.Sprintf("%d distinct tag(s)", len(all)))
	}
	t.applyFilter()
}

func (t *tagsTab) applyFilter() {
	if t.index == nil {
		t.visible = nil
	} else {
		t.visible = limitEntries(t.index.Filter(t.filter.Text), t.app.config.TagListLimit)
	}
	t.list.UnselectAll()
	t.selected = ""
	t.remove.Disable()
	t.list.Refresh()
}

func (t *tagsTab) confirmRemove() {
	idx, tag := t.index, t.selected
	if idx == nil || tag == "" {
		return
	}
	n := idx.Count(tag)
	dialog.ShowConfirm("Remove tag",
		fmt.Sprintf("Remove %q from %d caption file(s)?", tag, n),
		func(ok bool) {
			if !ok {
				return
			}
			t.app.runTask("tags.remove", func() func() {
				report, err := idx.Remove(tag)
				return func() {
					t.showEntries()
					t.status.SetText(reportStatus("Remove "+tag, report, err))
				}
			}, nil)
		}, t.app.window)
}

func (t *tagsTab) runDedupe() {
	dir := strings.TrimSpace(t.dir.Text)
	idx := t.index
	if idx != nil {
		dir = idx.Dir()
	}
	t.dedupe.Disable()
	t.app.runTask("tags.dedupe", func() func() {
		report, err := tags.DedupeFolder(dir)
		if err == nil && idx != nil {
			err = idx.Rescan()
		}
		return func() {
			t.dedupe.Enable()
			if t.index == idx {
				t.showEntries()
			}
			t.status.SetText(reportStatus("Remove duplicates", report, err))
		}
	}, t.dedupe.Enable)
}

// limitEntries keeps the first limit entries; limit 0 keeps all.
func limitEntries(entries []tags.Entry, limit int) []tags.Entry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}

func tagRow(e tags.Entry) string {
	return fmt.Sprintf("%s (%d)", e.Tag, e.Count)
}
