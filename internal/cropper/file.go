package cropper

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/oukeidos/lorakit/internal/apperrors"
	"github.com/oukeidos/lorakit/internal/dataset"
	"github.com/oukeidos/lorakit/internal/logger"
)

// ParseRect reads "x0,y0,x1,y1" in image pixels. The corners may be given
// in any order.
func ParseRect(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, apperrors.Validation("Rectangle must be x0,y0,x1,y1.")
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, apperrors.Newf(apperrors.KindValidation, err, "Invalid rectangle coordinate %q.", p)
		}
		v[i] = n
	}
	return image.Rect(v[0], v[1], v[2], v[3]), nil
}

func openImage(src string) (image.Image, error) {
	if !dataset.IsImage(src) {
		return nil, apperrors.Validation(fmt.Sprintf("Not a supported image: %s", filepath.Base(src)))
	}
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperrors.Filesystem("decode", filepath.Base(src), err)
	}
	return img, nil
}

func prepareOutput(outDir string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return apperrors.InvalidDirectory(outDir, err)
	}
	return dataset.RequireDir(outDir)
}

// CropFile crops one image file into outDir, like SaveCrop does for the
// current image of a session. The selection is clipped to the image.
func CropFile(src, outDir string, rect image.Rectangle, flip bool) (SaveResult, error) {
	img, err := openImage(src)
	if err != nil {
		return SaveResult{}, err
	}
	sel, ok := Normalize(rect.Min, rect.Max, img.Bounds())
	if !ok {
		return SaveResult{}, apperrors.New(apperrors.KindEmptySelection, "The rectangle does not overlap the image.", nil)
	}
	if err := prepareOutput(outDir); err != nil {
		return SaveResult{}, err
	}
	name := filepath.Base(src)
	if flip {
		name = FlipPrefix + name
	}
	return writeTo(Crop(img, sel, flip), outDir, name)
}

// CopyFile writes the whole image file into outDir, re-encoded like SaveFull.
func CopyFile(src, outDir string) (SaveResult, error) {
	img, err := openImage(src)
	if err != nil {
		return SaveResult{}, err
	}
	if err := prepareOutput(outDir); err != nil {
		return SaveResult{}, err
	}
	return writeTo(img, outDir, filepath.Base(src))
}

func writeTo(img image.Image, outDir, name string) (SaveResult, error) {
	dst := filepath.Join(outDir, OutputName(name))
	if err := Save(img, dst); err != nil {
		return SaveResult{Path: dst}, err
	}
	b := img.Bounds()
	logger.Info("Saved", "path", dst, "width", b.Dx(), "height", b.Dy())
	return SaveResult{Path: dst, Written: true, Width: b.Dx(), Height: b.Dy()}, nil
}
