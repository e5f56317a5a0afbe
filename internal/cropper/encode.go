package cropper

import (
	"bytes"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/oukeidos/lorakit/internal/apperrors"
	"github.com/oukeidos/lorakit/internal/files"
)

// JPEGQuality is used for .jpg/.jpeg output.
const JPEGQuality = 95

// Crop cuts rect out of img, mirroring it horizontally when flip is set.
// The result always starts at (0,0).
func Crop(img image.Image, rect image.Rectangle, flip bool) *image.NRGBA {
	out := imaging.Crop(img, rect)
	if flip {
		out = imaging.FlipH(out)
	}
	return out
}

// OutputName maps a source file name to the name written on disk. WebP has
// no encoder in the stack, so .webp sources are stored as PNG.
func OutputName(name string) string {
	ext := filepath.Ext(name)
	if strings.EqualFold(ext, ".webp") {
		return strings.TrimSuffix(name, ext) + ".png"
	}
	return name
}

// Save encodes img in the format implied by path's extension and writes it atomically.
func Save(img image.Image, path string) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return apperrors.Newf(apperrors.KindValidation, err, "Unsupported output format: %s", filepath.Ext(path))
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return apperrors.Filesystem("encode", filepath.Base(path), err)
	}
	if err := files.AtomicWrite(path, buf.Bytes(), 0644); err != nil {
		return apperrors.Filesystem("write", filepath.Base(path), err)
	}
	return nil
}
