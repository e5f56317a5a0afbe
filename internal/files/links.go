package files

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrLink is returned when a write target is a symbolic link.
var ErrLink = errors.New("refusing to write through a link")

// RejectLink fails when path is a symlink, a reparse point or a directory.
// A missing path passes. Parent folders may be links.
func RejectLink(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is empty")
	}
	info, err := os.Lstat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to access %s: %w", path, err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("%w: %s", ErrLink, path)
	}
	if reparse, err := isReparsePoint(path); err != nil {
		return fmt.Errorf("failed to check reparse point: %w", err)
	} else if reparse {
		return fmt.Errorf("%w: %s (reparse point)", ErrLink, path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
