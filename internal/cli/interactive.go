package cli

import (
	"os"

	"github.com/opencode-ai/gogo/internal/prompt"
)

// Swapped in tests.
var (
	newPromptDriver = func() prompt.Driver {
		return prompt.NewSurveyDriver()
	}
	hasTTYFunc = hasTTY
)

// IsNonInteractive reports whether prompts should be skipped and defaults used.
func IsNonInteractive() bool {
	if nonInteractive {
		return true
	}
	if _, ok := os.LookupEnv("GOGO_NON_INTERACTIVE"); ok {
		return true
	}
	if IsJSONOutput() || IsJSONLOutput() {
		return true
	}
	return !hasTTYFunc()
}

// promptDriver returns the driver for value prompts, or nil when prompting
// is not possible.
func promptDriver() prompt.Driver {
	if IsNonInteractive() {
		return nil
	}
	return newPromptDriver()
}
