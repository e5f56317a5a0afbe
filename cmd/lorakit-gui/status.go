package main

import (
	"fmt"

	"github.com/oukeidos/lorakit/internal/apperrors"
	"github.com/oukeidos/lorakit/internal/dataset"
)

// reportStatus renders a batch result for a status label.
func reportStatus(action string, r dataset.Report, err error) string {
	if err != nil {
		return action + " failed: " + apperrors.PublicMessage(err)
	}
	if len(r.Failed) > 0 {
		return fmt.Sprintf("%s: %s (first failure: %s)", action, r.String(), r.Failed[0].Error())
	}
	if r.Changed == 0 {
		return fmt.Sprintf("%s: nothing to change in %d file(s)", action, r.Processed)
	}
	return fmt.Sprintf("%s: %s", action, r.String())
}

func errorStatus(err error) string {
	return "Error: " + apperrors.PublicMessage(err)
}
