package capture

import (
	"context"
	"fmt"
	"strings"

	"golang.design/x/hotkey"

	"github.com/oukeidos/lorakit/internal/apperrors"
	"github.com/oukeidos/lorakit/internal/logger"
)

const (
	DefaultCaptureKey = "g"
	DefaultStopKey    = "escape"
)

var keyNames = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3, "f4": hotkey.KeyF4,
	"f5": hotkey.KeyF5, "f6": hotkey.KeyF6, "f7": hotkey.KeyF7, "f8": hotkey.KeyF8,
	"f9": hotkey.KeyF9, "f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
	"space":  hotkey.KeySpace,
	"escape": hotkey.KeyEscape,
	"esc":    hotkey.KeyEscape,
	"return": hotkey.KeyReturn,
	"enter":  hotkey.KeyReturn,
	"tab":    hotkey.KeyTab,
}

// ParseKey maps a key name such as "g", "F5" or "Escape" to a hotkey key.
func ParseKey(name string) (hotkey.Key, error) {
	key, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, apperrors.Validation(fmt.Sprintf("Unsupported key %q.", name))
	}
	return key, nil
}

// binding is a registered global key.
type binding interface {
	Keydown() <-chan hotkey.Event
	Unregister() error
}

// bindKey is replaced in tests; real registration needs a desktop session.
var bindKey = func(key hotkey.Key) (binding, error) {
	hk := hotkey.New(nil, key)
	if err := hk.Register(); err != nil {
		return nil, err
	}
	return hk, nil
}

// HotkeyListener forwards a global capture key and stop key to a Service.
type HotkeyListener struct {
	CaptureKey string
	StopKey    string
}

// Run registers both keys and blocks until the stop key is pressed, the
// service stops, or ctx is done. The service is stopped on return.
func (l HotkeyListener) Run(ctx context.Context, svc *Service) error {
	captureName, stopName := l.CaptureKey, l.StopKey
	if captureName == "" {
		captureName = DefaultCaptureKey
	}
	if stopName == "" {
		stopName = DefaultStopKey
	}
	captureKey, err := ParseKey(captureName)
	if err != nil {
		return err
	}
	stopKey, err := ParseKey(stopName)
	if err != nil {
		return err
	}
	if captureKey == stopKey {
		return apperrors.Validation("Capture and stop keys must differ.")
	}

	capture, err := bindKey(captureKey)
	if err != nil {
		return apperrors.Newf(apperrors.KindValidation, err, "Could not register hotkey %s.", captureName)
	}
	defer unregister(capture, captureName)
	stop, err := bindKey(stopKey)
	if err != nil {
		return apperrors.Newf(apperrors.KindValidation, err, "Could not register hotkey %s.", stopName)
	}
	defer unregister(stop, stopName)
	defer svc.Stop()

	logger.Info("Hotkeys registered", "capture", captureName, "stop", stopName)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-svc.Done():
			return nil
		case <-capture.Keydown():
			svc.Trigger()
		case <-stop.Keydown():
			logger.Info("Stop key pressed")
			return nil
		}
	}
}

func unregister(b binding, name string) {
	if err := b.Unregister(); err != nil {
		logger.Warn("Could not unregister hotkey", "key", name, "error", err)
	}
}
