package main

type cropAction int

const (
	actionNone cropAction = iota
	actionCrop
	actionCropFlip
	actionSaveFull
	actionDelete
	actionSkip
	actionPrevious
	actionNext
	actionClose
)

var cropKeys = map[rune]cropAction{
	'c': actionCrop,
	'f': actionCropFlip,
	't': actionSaveFull,
	'a': actionDelete,
	'j': actionSkip,
	'x': actionPrevious,
	'v': actionNext,
	'q': actionClose,
}

// cropActionForRune maps the crop page keyboard shortcuts, ignoring case.
func cropActionForRune(r rune) cropAction {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	return cropKeys[r]
}

var cropActionNames = map[cropAction]string{
	actionCrop:     "Crop",
	actionCropFlip: "Crop + Flip",
	actionSaveFull: "Save Full",
	actionDelete:   "Delete",
	actionSkip:     "Skip",
	actionPrevious: "Previous",
	actionNext:     "Next",
	actionClose:    "Close",
}

func shortcutName(c cropAction) string { return cropActionNames[c] }

// shortcutKey is the upper-case key bound to c, or "".
func shortcutKey(c cropAction) string {
	for r, act := range cropKeys {
		if act == c {
			return string(r - ('a' - 'A'))
		}
	}
	return ""
}

func (c cropAction) String() string {
	if c == actionNone {
		return ""
	}
	return shortcutName(c) + " (" + shortcutKey(c) + ")"
}
