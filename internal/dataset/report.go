package dataset

import (
	"errors"
	"fmt"

	"github.com/oukeidos/lorakit/internal/apperrors"
)

// Report summarizes a batch operation over a folder. Failures are collected
// per file; one bad file never aborts the batch.
type Report struct {
	Processed int
	Changed   int
	Failed    []apperrors.FileError
}

func (r *Report) Fail(path string, err error) {
	r.Failed = append(r.Failed, apperrors.FileError{Path: path, Err: err})
}

// Err joins all per-file failures, or returns nil.
func (r Report) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failed))
	for i, f := range r.Failed {
		errs[i] = f
	}
	return apperrors.New(apperrors.KindFilesystem,
		fmt.Sprintf("%d file(s) failed", len(r.Failed)), errors.Join(errs...))
}

func (r Report) String() string {
	s := fmt.Sprintf("%d file(s) processed, %d changed", r.Processed, r.Changed)
	if len(r.Failed) > 0 {
		s += fmt.Sprintf(", %d failed", len(r.Failed))
	}
	return s
}
