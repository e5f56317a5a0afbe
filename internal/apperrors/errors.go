package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindInvalidDirectory Kind = "invalid_directory"
	KindCountMismatch    Kind = "count_mismatch"
	KindPairing          Kind = "pairing"
	KindFilesystem       Kind = "filesystem"
	KindEmptySelection   Kind = "empty_selection"
	KindValidation       Kind = "validation"
)

type Error struct {
	Kind Kind
	// SafeMessage is intended for status labels and CLI output.
	SafeMessage string
	// Cause keeps the original error for logs and errors.Is matching.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.SafeMessage); msg != "" {
		return msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func defaultSafeMessage(kind Kind) string {
	switch kind {
	case KindInvalidDirectory:
		return "Invalid directory selected."
	case KindCountMismatch:
		return "Number of images does not match number of text files."
	case KindPairing:
		return "Images and captions do not share the same names."
	case KindFilesystem:
		return "File operation failed."
	case KindEmptySelection:
		return "Nothing selected to save."
	case KindValidation:
		return "Invalid input."
	default:
		return "Operation failed."
	}
}

func New(kind Kind, safeMessage string, cause error) error {
	msg := strings.TrimSpace(safeMessage)
	if msg == "" {
		msg = defaultSafeMessage(kind)
	}
	return &Error{
		Kind:        kind,
		SafeMessage: msg,
		Cause:       cause,
	}
}

// Newf is New with a formatted safe message.
func Newf(kind Kind, cause error, format string, args ...any) error {
	return New(kind, fmt.Sprintf(format, args...), cause)
}

func InvalidDirectory(path string, cause error) error {
	return Newf(KindInvalidDirectory, cause, "Invalid directory: %s", path)
}

func Filesystem(op, path string, cause error) error {
	return Newf(KindFilesystem, cause, "Failed to %s %s", op, path)
}

func Validation(msg string) error {
	return New(KindValidation, msg, nil)
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}

// FileError records a per-file failure inside a batch operation.
type FileError struct {
	Path string
	Err  error
}

func (f FileError) Error() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

func (f FileError) Unwrap() error { return f.Err }
