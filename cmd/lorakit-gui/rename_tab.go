package main

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/lorakit/internal/renamer"
)

const planPreviewRows = 12

type renameTab struct {
	app     *lorakitApp
	content fyne.CanvasObject

	dir       *widget.Entry
	oldPhrase *widget.Entry
	newPhrase *widget.Entry
	replace   *widget.Button
	counter   *widget.Button
	undo      *widget.Button
	status    *widget.Label

	// last is the most recent applied counter rename, kept for Undo.
	last *renamer.Plan
}

func newRenameTab(a *lorakitApp) *renameTab {
	t := &renameTab{app: a}

	var dirRow fyne.CanvasObject
	t.dir, dirRow = a.folderRow("Folder with captions", nil)
	t.oldPhrase = widget.NewEntry()
	t.oldPhrase.SetPlaceHolder("Phrase to find")
	t.newPhrase = widget.NewEntry()
	t.newPhrase.SetPlaceHolder("Replacement")

	t.replace = widget.NewButton("Replace in captions", t.runReplace)
	t.counter = widget.NewButton("Rename to counter…", t.planCounter)
	t.undo = widget.NewButton("Undo last rename", t.runUndo)
	t.undo.Disable()

	t.status = widget.NewLabel("")
	t.status.Wrapping = fyne.TextWrapWord

	replaceSection := container.NewVBox(
		widget.NewLabelWithStyle("Replace phrase", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("Old", t.oldPhrase),
			widget.NewFormItem("New", t.newPhrase),
		),
		container.NewHBox(t.replace),
	)
	counterSection := container.NewVBox(
		widget.NewLabelWithStyle("Counter rename", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Renames every file to 000, 001, … keeping image and caption pairs together."),
		container.NewHBox(t.counter, t.undo),
	)

	t.content = container.NewPadded(container.NewVScroll(container.NewVBox(
		widget.NewForm(widget.NewFormItem("Folder", dirRow)),
		widget.NewSeparator(),
		replaceSection,
		widget.NewSeparator(),
		counterSection,
		widget.NewSeparator(),
		t.status,
	)))
	return t
}

func (t *renameTab) setBusy(busy bool) {
	for _, b := range []*widget.Button{t.replace, t.counter} {
		if busy {
			b.Disable()
		} else {
			b.Enable()
		}
	}
	if busy || t.last == nil {
		t.undo.Disable()
	} else {
		t.undo.Enable()
	}
}

func (t *renameTab) resetBusy() {
	t.setBusy(false)
	t.status.SetText("The operation was interrupted.")
}

func (t *renameTab) runReplace() {
	dir := strings.TrimSpace(t.dir.Text)
	oldPhrase, newPhrase := t.oldPhrase.Text, t.newPhrase.Text
	t.setBusy(true)
	t.status.SetText("Replacing…")
	t.app.runTask("rename.replace", func() func() {
		report, err := renamer.ReplacePhrase(dir, oldPhrase, newPhrase)
		return func() {
			t.setBusy(false)
			t.status.SetText(reportStatus("Replace", report, err))
			t.app.tags.refreshIfOpen()
		}
	}, t.resetBusy)
}

func (t *renameTab) planCounter() {
	dir := strings.TrimSpace(t.dir.Text)
	t.setBusy(true)
	t.app.runTask("rename.plan", func() func() {
		plan, err := renamer.PlanCounter(dir)
		return func() {
			t.setBusy(false)
			if err != nil {
				t.status.SetText(errorStatus(err))
				return
			}
			if plan.Pending() == 0 {
				t.status.SetText(fmt.Sprintf("All %d file(s) already follow the counter.", len(plan.Items)))
				return
			}
			t.confirmCounter(plan)
		}
	}, t.resetBusy)
}

func (t *renameTab) confirmCounter(plan renamer.Plan) {
	preview := widget.NewLabel(planPreview(plan, planPreviewRows))
	preview.TextStyle = fyne.TextStyle{Monospace: true}
	body := container.NewVBox(
		widget.NewLabel(fmt.Sprintf("Rename %d of %d file(s) in %s?", plan.Pending(), len(plan.Items), plan.Dir)),
		preview,
	)
	d := dialog.NewCustomConfirm("Counter rename", "Rename", "Cancel", body, func(ok bool) {
		if ok {
			t.apply(plan, "Rename")
		}
	}, t.app.window)
	d.Show()
}

func (t *renameTab) runUndo() {
	if t.last == nil {
		return
	}
	plan := t.last.Invert()
	dialog.ShowConfirm("Undo rename",
		fmt.Sprintf("Restore the original names of %d file(s)?", plan.Pending()),
		func(ok bool) {
			if ok {
				t.apply(plan, "Undo")
			}
		}, t.app.window)
}

func (t *renameTab) apply(plan renamer.Plan, action string) {
	t.setBusy(true)
	t.status.SetText(action + "…")
	t.app.runTask("rename.apply", func() func() {
		report := renamer.ApplyCounter(plan)
		return func() {
			if action == "Undo" || len(report.Failed) > 0 {
				t.last = nil
			} else {
				t.last = &plan
			}
			t.setBusy(false)
			t.status.SetText(reportStatus(action, report, nil))
			t.app.tags.refreshIfOpen()
		}
	}, t.resetBusy)
}

// planPreview lists the first n pending renames as "old → new" lines.
func planPreview(plan renamer.Plan, n int) string {
	var b strings.Builder
	shown := 0
	for _, it := range plan.Items {
		if it.Unchanged() {
			continue
		}
		if shown == n {
			fmt.Fprintf(&b, "… and %d more", plan.Pending()-n)
			break
		}
		fmt.Fprintf(&b, "%s → %s\n", it.OldName, it.NewName)
		shown++
	}
	return strings.TrimRight(b.String(), "\n")
}
