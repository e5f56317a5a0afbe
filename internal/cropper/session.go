// Package cropper implements the interactive crop loop: one image at a time
// from an input folder, a dragged selection, and save/skip/delete actions
// that write into an output folder and advance.
package cropper

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/oukeidos/lorakit/internal/apperrors"
	"github.com/oukeidos/lorakit/internal/dataset"
	"github.com/oukeidos/lorakit/internal/logger"
)

// FlipPrefix is prepended to the file name of mirrored crops.
const FlipPrefix = "flipped_"

// ErrDone is returned by actions that need a current image once every image
// has been processed.
var ErrDone = errors.New("all images processed")

// ErrNotDecoded is the cause reported when a save is attempted on an image
// that failed to load. Skip or Delete moves past it.
var ErrNotDecoded = errors.New("image not decoded")

// Session is the state of one cropping run. It is not safe for concurrent use.
type Session struct {
	inputDir  string
	outputDir string
	images    []string
	index     int
	current   image.Image
	done      bool

	start     image.Point
	end       image.Point
	dragging  bool
	completed bool
}

// SaveResult describes what an action wrote.
type SaveResult struct {
	Path    string
	Written bool
	Width   int
	Height  int
}

// NewSession validates the folders, lists the input images and loads the first one.
// The output folder is created when missing.
func NewSession(inputDir, outputDir string) (*Session, error) {
	if err := dataset.RequireDir(inputDir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, apperrors.InvalidDirectory(outputDir, err)
	}
	if err := dataset.RequireDir(outputDir); err != nil {
		return nil, err
	}
	images, err := dataset.ListImages(inputDir)
	if err != nil {
		return nil, err
	}

	s := &Session{inputDir: inputDir, outputDir: outputDir, images: images}
	if len(images) == 0 {
		logger.Warn("No images found in the directory", "dir", inputDir)
		s.done = true
		return s, nil
	}
	if err := s.Load(0); err != nil {
		return s, err
	}
	return s, nil
}

// Load decodes the image at index. An index past the end marks the session done.
func (s *Session) Load(index int) error {
	s.clearSelection()
	if index < 0 {
		index = 0
	}
	s.index = index
	if index >= len(s.images) {
		if !s.done {
			logger.Info("All images processed", "dir", s.inputDir, "total", len(s.images))
		}
		s.done = true
		s.current = nil
		return nil
	}
	s.done = false

	path := s.images[index]
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		s.current = nil
		return apperrors.Filesystem("decode", filepath.Base(path), err)
	}
	s.current = img
	return nil
}

// Done reports whether every image has been processed.
func (s *Session) Done() bool { return s.done }

// Image returns the decoded current image, or nil.
func (s *Session) Image() image.Image { return s.current }

// Current returns the current image path, its index and the total count.
func (s *Session) Current() (string, int, int) {
	if s.done || s.index >= len(s.images) {
		return "", s.index, len(s.images)
	}
	return s.images[s.index], s.index, len(s.images)
}

// OutputDir is the folder saved images are written to.
func (s *Session) OutputDir() string { return s.outputDir }

func (s *Session) advance() error {
	return s.Load(s.index + 1)
}

// Previous moves back one image; it stops at the first image.
func (s *Session) Previous() (bool, error) {
	if s.index <= 0 || len(s.images) == 0 {
		return false, nil
	}
	idx := s.index - 1
	if idx >= len(s.images) {
		idx = len(s.images) - 1
	}
	return true, s.Load(idx)
}

// Next moves forward one image; it stops at the last image.
func (s *Session) Next() (bool, error) {
	if s.index >= len(s.images)-1 {
		return false, nil
	}
	return true, s.Load(s.index + 1)
}

// Skip advances without writing anything.
func (s *Session) Skip() error {
	if s.done {
		return ErrDone
	}
	path, _, _ := s.Current()
	logger.Info("Skipped", "path", path)
	return s.advance()
}

// Delete removes the current source file and advances. A failed removal is
// returned, but the session still moves on.
func (s *Session) Delete() error {
	if s.done {
		return ErrDone
	}
	path, _, _ := s.Current()
	var removeErr error
	if err := os.Remove(path); err != nil {
		logger.Error("Delete failed", "path", path, "error", err)
		removeErr = apperrors.Filesystem("delete", filepath.Base(path), err)
	} else {
		logger.Info("Deleted", "path", path)
	}
	if err := s.advance(); err != nil {
		return errors.Join(removeErr, err)
	}
	return removeErr
}

// SaveFull writes the whole current image under its original name and advances.
func (s *Session) SaveFull() (SaveResult, error) {
	if err := s.requireImage(); err != nil {
		return SaveResult{}, err
	}
	path, _, _ := s.Current()
	res, err := s.write(s.current, filepath.Base(path))
	if err != nil {
		return res, err
	}
	return res, s.advance()
}

// SaveCrop writes the selected region, mirrored when flip is set, and
// advances. Without a usable selection nothing is written.
func (s *Session) SaveCrop(flip bool) (SaveResult, error) {
	if err := s.requireImage(); err != nil {
		return SaveResult{}, err
	}
	path, _, _ := s.Current()

	rect, ok := s.Selection()
	if !ok {
		logger.Debug("Empty selection, nothing saved", "path", path)
		return SaveResult{}, s.advance()
	}

	out := Crop(s.current, rect, flip)
	name := filepath.Base(path)
	if flip {
		name = FlipPrefix + name
	}
	res, err := s.write(out, name)
	if err != nil {
		return res, err
	}
	return res, s.advance()
}

// requireImage reports why there is nothing to save: ErrDone at the end of
// the list, or a decode error naming the file that could not be loaded.
func (s *Session) requireImage() error {
	if s.done {
		return ErrDone
	}
	if s.current == nil {
		path, _, _ := s.Current()
		return apperrors.Filesystem("decode", filepath.Base(path), ErrNotDecoded)
	}
	return nil
}

func (s *Session) write(img image.Image, name string) (SaveResult, error) {
	return writeTo(img, s.outputDir, name)
}

func (s *Session) String() string {
	path, idx, total := s.Current()
	if s.done {
		return fmt.Sprintf("done (%d images)", total)
	}
	return fmt.Sprintf("%d/%d %s", idx+1, total, filepath.Base(path))
}
