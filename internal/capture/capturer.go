// Package capture saves full-screen screenshots into a dataset folder,
// triggered by a global hotkey or a button.
package capture

import (
	"errors"
	"image"

	"github.com/kbinani/screenshot"
)

// Capturer grabs one frame.
type Capturer interface {
	Capture() (image.Image, error)
}

// ScreenCapturer captures the union of all active displays.
type ScreenCapturer struct{}

var errNoDisplay = errors.New("no active display")

func (ScreenCapturer) Capture() (image.Image, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, errNoDisplay
	}
	var bounds image.Rectangle
	for i := 0; i < n; i++ {
		bounds = bounds.Union(screenshot.GetDisplayBounds(i))
	}
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, err
	}
	return img, nil
}
