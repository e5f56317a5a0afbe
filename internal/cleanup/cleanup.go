// Package cleanup runs registered shutdown hooks, such as closing the log
// file, when a command exits.
package cleanup

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

var (
	mu    sync.Mutex
	hooks []func() error
)

// Register adds a cleanup hook executed in LIFO order.
func Register(hook func() error) {
	if hook == nil {
		return
	}
	mu.Lock()
	hooks = append(hooks, hook)
	mu.Unlock()
}

// RegisterCloser closes c on cleanup, naming it in the error.
func RegisterCloser(name string, c io.Closer) {
	if c == nil {
		return
	}
	Register(func() error {
		if err := c.Close(); err != nil {
			return fmt.Errorf("close %s: %w", name, err)
		}
		return nil
	})
}

// RunAll executes all registered hooks and returns the joined errors.
func RunAll() error {
	mu.Lock()
	local := hooks
	hooks = nil
	mu.Unlock()

	var errs []error
	for i := len(local) - 1; i >= 0; i-- {
		if err := local[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("cleanup failed: %w", errors.Join(errs...))
}
