package cropper

import "image"

// BeginSelection starts a new selection at p, dropping any previous one.
func (s *Session) BeginSelection(p image.Point) {
	s.start = p
	s.end = p
	s.dragging = true
	s.completed = false
}

// DragSelection moves the live end point while a selection is in progress.
func (s *Session) DragSelection(p image.Point) {
	if !s.dragging {
		return
	}
	s.end = p
}

// EndSelection fixes the end point and completes the selection.
func (s *Session) EndSelection(p image.Point) {
	if !s.dragging {
		return
	}
	s.end = p
	s.dragging = false
	s.completed = true
}

// Dragging reports whether a selection is in progress.
func (s *Session) Dragging() bool { return s.dragging }

// LiveRect is the raw rectangle between the start and the current end
// point, for drawing feedback while dragging.
func (s *Session) LiveRect() (image.Rectangle, bool) {
	if !s.dragging && !s.completed {
		return image.Rectangle{}, false
	}
	return image.Rect(s.start.X, s.start.Y, s.end.X, s.end.Y), true
}

// Selection returns the completed selection normalized and clipped to the
// current image. ok is false when there is no selection or it has no area.
func (s *Session) Selection() (image.Rectangle, bool) {
	if !s.completed || s.current == nil {
		return image.Rectangle{}, false
	}
	return Normalize(s.start, s.end, s.current.Bounds())
}

func (s *Session) clearSelection() {
	s.start = image.Point{}
	s.end = image.Point{}
	s.dragging = false
	s.completed = false
}

// Normalize orders the two corners and clips the rectangle to bounds.
func Normalize(a, b image.Point, bounds image.Rectangle) (image.Rectangle, bool) {
	// image.Rect swaps coordinates so that Min <= Max.
	r := image.Rect(a.X, a.Y, b.X, b.Y).Intersect(bounds)
	if r.Empty() {
		return image.Rectangle{}, false
	}
	return r, true
}

// DisplayToImage maps a point inside a widget showing an image with
// contain-fit scaling back to image pixel coordinates. The result is clamped
// to [0, imgW] x [0, imgH].
func DisplayToImage(x, y, displayW, displayH float64, imgW, imgH int) image.Point {
	if imgW <= 0 || imgH <= 0 || displayW <= 0 || displayH <= 0 {
		return image.Point{}
	}
	scale := displayW / float64(imgW)
	if sy := displayH / float64(imgH); sy < scale {
		scale = sy
	}
	offX := (displayW - float64(imgW)*scale) / 2
	offY := (displayH - float64(imgH)*scale) / 2

	px := int((x - offX) / scale)
	py := int((y - offY) / scale)
	return image.Pt(clamp(px, 0, imgW), clamp(py, 0, imgH))
}

// ImageToDisplay is the inverse of DisplayToImage.
func ImageToDisplay(p image.Point, displayW, displayH float64, imgW, imgH int) (float64, float64) {
	if imgW <= 0 || imgH <= 0 {
		return 0, 0
	}
	scale := displayW / float64(imgW)
	if sy := displayH / float64(imgH); sy < scale {
		scale = sy
	}
	offX := (displayW - float64(imgW)*scale) / 2
	offY := (displayH - float64(imgH)*scale) / 2
	return offX + float64(p.X)*scale, offY + float64(p.Y)*scale
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
