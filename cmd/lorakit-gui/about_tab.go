package main

import (
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/lorakit/internal/version"
)

const githubURL = "https://github.com/oukeidos/lorakit"

func buildAboutTab() fyne.CanvasObject {
	aboutSection := container.NewVBox(
		widget.NewLabelWithStyle("About", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("App", widget.NewLabel(version.Name)),
			widget.NewFormItem("Version", widget.NewLabel(version.Version)),
			widget.NewFormItem("Commit", widget.NewLabel(version.Commit)),
			widget.NewFormItem("Build", widget.NewLabel(version.BuildDate)),
			widget.NewFormItem("Copyright", widget.NewLabel("(c) 2026 oukeidos")),
			widget.NewFormItem("Links", buildLinksRow()),
		),
	)

	shortcuts := widget.NewForm()
	for _, act := range []cropAction{
		actionCrop, actionCropFlip, actionSaveFull, actionDelete,
		actionSkip, actionPrevious, actionNext, actionClose,
	} {
		shortcuts.Append(shortcutKey(act), widget.NewLabel(shortcutName(act)))
	}
	shortcutSection := container.NewVBox(
		widget.NewLabelWithStyle("Crop shortcuts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		shortcuts,
		widget.NewLabel("Shortcuts are ignored while a text field has focus."),
	)

	return container.NewPadded(container.NewVScroll(container.NewVBox(
		aboutSection,
		widget.NewSeparator(),
		shortcutSection,
	)))
}

func buildLinksRow() fyne.CanvasObject {
	githubLink := newHyperlink("GitHub", githubURL)
	return container.NewHBox(githubLink)
}

func newHyperlink(label, raw string) *widget.Hyperlink {
	u, _ := url.Parse(raw)
	return widget.NewHyperlink(label, u)
}
