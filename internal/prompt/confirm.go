// Package prompt asks the user to confirm destructive CLI operations.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type Confirmer struct {
	In            io.Reader
	Out           io.Writer
	IsInteractive func() bool
}

func DefaultConfirmer() Confirmer {
	return Confirmer{
		In:  os.Stdin,
		Out: os.Stdout,
		IsInteractive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// Confirm asks question and reports whether the user answered "y" or "yes".
// force skips the question. Without a terminal on stdin the answer is an
// error, so scripts must pass -y explicitly.
func (c Confirmer) Confirm(question string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	if c.IsInteractive == nil || !c.IsInteractive() {
		return false, fmt.Errorf("non-interactive stdin: use -y to confirm")
	}
	if c.Out != nil {
		fmt.Fprintf(c.Out, "%s (y/n): ", question)
	}
	reader := bufio.NewReader(c.In)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}

// ConfirmRename asks before renaming n files in dir.
func (c Confirmer) ConfirmRename(dir string, n int, force bool) (bool, error) {
	return c.Confirm(fmt.Sprintf("Rename %d file(s) in %s?", n, dir), force)
}

// ConfirmTagRemoval asks before rewriting the captions that carry tag.
func (c Confirmer) ConfirmTagRemoval(tag string, n int, force bool) (bool, error) {
	return c.Confirm(fmt.Sprintf("Remove tag %q (%d occurrence(s))?", tag, n), force)
}
