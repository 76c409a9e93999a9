package cli

import (
	"context"
	"fmt"

	"github.com/opencode-ai/gogo/internal/prompt"
)

// confirmAction asks before a destructive step. --yes skips the question;
// without a terminal the step is refused.
func confirmAction(ctx context.Context, message string) (bool, error) {
	if yesFlag {
		return true, nil
	}

	driver := promptDriver()
	if driver == nil {
		return false, &PreflightError{
			Message: "confirmation required",
			Hint:    "Re-run with --yes to confirm without a prompt",
		}
	}

	ok, err := driver.Confirm(ctx, prompt.ConfirmConfig{Message: message})
	if err != nil {
		return false, fmt.Errorf("failed to confirm: %w", err)
	}
	return ok, nil
}
