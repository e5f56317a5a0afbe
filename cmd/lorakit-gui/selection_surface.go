package main

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/lorakit/internal/cropper"
)

// selectionSurface shows an image scaled to fit and reports mouse drags in
// image pixel coordinates. The selection rectangle is drawn on top.
type selectionSurface struct {
	widget.BaseWidget

	img     *canvas.Image
	overlay *canvas.Rectangle
	minH    float32

	source   image.Image
	rect     image.Rectangle
	dragging bool

	onBegin func(image.Point)
	onDrag  func(image.Point)
	onEnd   func(image.Point)
	last    image.Point
}

func newSelectionSurface(minHeight float32) *selectionSurface {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleFastest

	overlay := canvas.NewRectangle(color.NRGBA{R: 0, G: 200, B: 0, A: 40})
	overlay.StrokeColor = color.NRGBA{R: 0, G: 255, B: 0, A: 255}
	overlay.StrokeWidth = 2
	overlay.Hide()

	s := &selectionSurface{img: img, overlay: overlay, minH: minHeight}
	s.ExtendBaseWidget(s)
	return s
}

// SetImage replaces the shown image and clears the overlay.
func (s *selectionSurface) SetImage(img image.Image) {
	s.source = img
	s.img.Image = img
	s.dragging = false
	s.rect = image.Rectangle{}
	s.overlay.Hide()
	s.img.Refresh()
	s.Refresh()
}

func (s *selectionSurface) imageSize() (int, int) {
	if s.source == nil {
		return 0, 0
	}
	b := s.source.Bounds()
	return b.Dx(), b.Dy()
}

func (s *selectionSurface) toImage(p fyne.Position) image.Point {
	w, h := s.imageSize()
	size := s.Size()
	return cropper.DisplayToImage(float64(p.X), float64(p.Y), float64(size.Width), float64(size.Height), w, h)
}

// ShowRect draws r, given in image pixels, over the image. An empty r hides
// the overlay.
func (s *selectionSurface) ShowRect(r image.Rectangle) {
	s.rect = r.Canon()
	s.placeOverlay()
}

func (s *selectionSurface) placeOverlay() {
	w, h := s.imageSize()
	if w == 0 || s.rect.Empty() {
		s.overlay.Hide()
		return
	}
	size := s.Size()
	x0, y0 := cropper.ImageToDisplay(s.rect.Min, float64(size.Width), float64(size.Height), w, h)
	x1, y1 := cropper.ImageToDisplay(s.rect.Max, float64(size.Width), float64(size.Height), w, h)
	s.overlay.Move(fyne.NewPos(float32(x0), float32(y0)))
	s.overlay.Resize(fyne.NewSize(float32(x1-x0), float32(y1-y0)))
	s.overlay.Show()
	s.overlay.Refresh()
}

func (s *selectionSurface) Dragged(e *fyne.DragEvent) {
	if s.source == nil {
		return
	}
	if !s.dragging {
		s.dragging = true
		start := fyne.NewPos(e.Position.X-e.Dragged.DX, e.Position.Y-e.Dragged.DY)
		if s.onBegin != nil {
			s.onBegin(s.toImage(start))
		}
	}
	s.last = s.toImage(e.Position)
	if s.onDrag != nil {
		s.onDrag(s.last)
	}
}

func (s *selectionSurface) DragEnd() {
	if !s.dragging {
		return
	}
	s.dragging = false
	if s.onEnd != nil {
		s.onEnd(s.last)
	}
}

func (s *selectionSurface) MinSize() fyne.Size {
	return fyne.NewSize(320, s.minH)
}

func (s *selectionSurface) CreateRenderer() fyne.WidgetRenderer {
	return &selectionRenderer{s: s}
}

type selectionRenderer struct {
	s *selectionSurface
}

func (r *selectionRenderer) Layout(size fyne.Size) {
	r.s.img.Resize(size)
	r.s.img.Move(fyne.NewPos(0, 0))
	r.s.placeOverlay()
}

func (r *selectionRenderer) MinSize() fyne.Size { return r.s.MinSize() }

func (r *selectionRenderer) Refresh() {
	canvas.Refresh(r.s.img)
	canvas.Refresh(r.s.overlay)
}

func (r *selectionRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.s.img, r.s.overlay}
}

func (r *selectionRenderer) Destroy() {}
