package main

import (
	"fyne.io/fyne/v2"

	"github.com/oukeidos/lorakit/internal/capture"
	"github.com/oukeidos/lorakit/internal/logger"
)

// AppConfig holds GUI settings. Folder choices are never stored; they are
// picked again on every run.
type AppConfig struct {
	CaptureKey string
	StopKey    string

	// PreviewHeight is the minimum height of the crop canvas.
	PreviewHeight int
	// TagListLimit caps the rows shown in the tag list; 0 shows all.
	TagListLimit int
}

const (
	defaultPreviewHeight = 560
	minPreviewHeight     = 240
	maxPreviewHeight     = 2000
	maxTagListLimit      = 10000
)

func defaultConfig() AppConfig {
	return AppConfig{
		CaptureKey:    capture.DefaultCaptureKey,
		StopKey:       capture.DefaultStopKey,
		PreviewHeight: defaultPreviewHeight,
	}
}

// normalizeConfig replaces unusable values with defaults and clamps sizes.
// changed reports whether anything was rewritten.
func normalizeConfig(c AppConfig) (AppConfig, bool) {
	def := defaultConfig()
	changed := false

	if _, err := capture.ParseKey(c.CaptureKey); err != nil {
		logger.Warn("Capture key reset", "requested", c.CaptureKey, "effective", def.CaptureKey)
		c.CaptureKey = def.CaptureKey
		changed = true
	}
	if _, err := capture.ParseKey(c.StopKey); err != nil {
		logger.Warn("Stop key reset", "requested", c.StopKey, "effective", def.StopKey)
		c.StopKey = def.StopKey
		changed = true
	}
	capKey, _ := capture.ParseKey(c.CaptureKey)
	stopKey, _ := capture.ParseKey(c.StopKey)
	if capKey == stopKey {
		logger.Warn("Capture and stop keys collide; using defaults", "key", c.CaptureKey)
		c.CaptureKey, c.StopKey = def.CaptureKey, def.StopKey
		changed = true
	}

	switch {
	case c.PreviewHeight == 0:
		c.PreviewHeight = def.PreviewHeight
		changed = true
	case c.PreviewHeight < minPreviewHeight:
		logger.Warn("Preview height clamped", "requested", c.PreviewHeight, "effective", minPreviewHeight)
		c.PreviewHeight = minPreviewHeight
		changed = true
	case c.PreviewHeight > maxPreviewHeight:
		logger.Warn("Preview height clamped", "requested", c.PreviewHeight, "effective", maxPreviewHeight)
		c.PreviewHeight = maxPreviewHeight
		changed = true
	}

	if c.TagListLimit < 0 {
		c.TagListLimit = 0
		changed = true
	}
	if c.TagListLimit > maxTagListLimit {
		logger.Warn("Tag list limit clamped", "requested", c.TagListLimit, "effective", maxTagListLimit)
		c.TagListLimit = maxTagListLimit
		changed = true
	}
	return c, changed
}

func (a *lorakitApp) loadConfig() {
	prefs := fyne.CurrentApp().Preferences()
	def := defaultConfig()

	cfg := AppConfig{
		CaptureKey:    prefs.StringWithFallback("CaptureKey", def.CaptureKey),
		StopKey:       prefs.StringWithFallback("StopKey", def.StopKey),
		PreviewHeight: prefs.IntWithFallback("PreviewHeight", def.PreviewHeight),
		TagListLimit:  prefs.IntWithFallback("TagListLimit", def.TagListLimit),
	}
	cfg, changed := normalizeConfig(cfg)
	a.config = cfg
	if changed {
		a.saveConfig()
	}
}

func (a *lorakitApp) saveConfig() {
	prefs := fyne.CurrentApp().Preferences()
	prefs.SetString("CaptureKey", a.config.CaptureKey)
	prefs.SetString("StopKey", a.config.StopKey)
	prefs.SetInt("PreviewHeight", a.config.PreviewHeight)
	prefs.SetInt("TagListLimit", a.config.TagListLimit)
}
