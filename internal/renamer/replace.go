// Package renamer holds the two bulk rename operations: literal phrase
// substitution inside caption files and sequential counter renaming of
// same-named file groups.
package renamer

import (
	"os"
	"strings"

	"github.com/oukeidos/lorakit/internal/apperrors"
	"github.com/oukeidos/lorakit/internal/dataset"
	"github.com/oukeidos/lorakit/internal/files"
	"github.com/oukeidos/lorakit/internal/logger"
)

// ReplacePhrase replaces every literal occurrence of oldPhrase with
// newPhrase in each caption file of dir. Files without a match are left untouched.
func ReplacePhrase(dir, oldPhrase, newPhrase string) (dataset.Report, error) {
	var report dataset.Report
	if oldPhrase == "" || newPhrase == "" {
		return report, apperrors.Validation("Enter both old and new phrases.")
	}
	captions, err := dataset.ListCaptions(dir)
	if err != nil {
		return report, err
	}

	for _, path := range captions {
		report.Processed++
		data, err := os.ReadFile(path)
		if err != nil {
			report.Fail(path, err)
			continue
		}
		content := string(data)
		updated := strings.ReplaceAll(content, oldPhrase, newPhrase)
		if updated == content {
			continue
		}
		if err := files.RewriteFile(path, []byte(updated)); err != nil {
			report.Fail(path, err)
			continue
		}
		report.Changed++
	}
	logger.Info("Phrase replacement finished", "dir", dir, "changed", report.Changed, "failed", len(report.Failed))
	return report, nil
}
