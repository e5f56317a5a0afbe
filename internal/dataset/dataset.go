// Package dataset lists the images and caption files of a dataset folder
// and joins them into image/caption pairs.
package dataset

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oukeidos/lorakit/internal/apperrors"
)

// CaptionExt is the extension of caption files.
const CaptionExt = ".txt"

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ImageExtensions returns the supported image extensions in display order.
func ImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".webp"}
}

func IsImage(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

func IsCaption(name string) bool {
	return strings.EqualFold(filepath.Ext(name), CaptionExt)
}

// Basename strips the directory and the last extension.
func Basename(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// RequireDir reports an invalid_directory error unless path is an existing directory.
func RequireDir(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return apperrors.New(apperrors.KindInvalidDirectory, "No directory selected.", nil)
	}
	info, err := os.Stat(path)
	if err != nil {
		return apperrors.InvalidDirectory(path, err)
	}
	if !info.IsDir() {
		return apperrors.InvalidDirectory(path, nil)
	}
	return nil
}

// ListFiles returns the sorted names of all regular files in dir.
func ListFiles(dir string) ([]string, error) {
	if err := RequireDir(dir); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.Filesystem("read", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func listMatching(dir string, match func(string) bool) ([]string, error) {
	names, err := ListFiles(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, name := range names {
		if match(name) {
			out = append(out, filepath.Join(dir, name))
		}
	}
	return out, nil
}

// ListImages returns the sorted paths of image files directly inside dir.
func ListImages(dir string) ([]string, error) {
	return listMatching(dir, IsImage)
}

// ListCaptions returns the sorted paths of caption files directly inside dir.
func ListCaptions(dir string) ([]string, error) {
	return listMatching(dir, IsCaption)
}
