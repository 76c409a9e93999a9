package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/opencode-ai/gogo/internal/command"
	"github.com/opencode-ai/gogo/internal/gadget"
	"github.com/opencode-ai/gogo/internal/prompt"
	"github.com/opencode-ai/gogo/internal/runner"
)

// PreflightError is an error with guidance on how to fix it.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
}

func (e *PreflightError) Error() string {
	return e.Message
}

// Exit statuses for failures that are not a command's own status.
const (
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

// ExitCode maps an Execute error to a process exit status. A failing gadget
// command passes its own status through.
func ExitCode(err error) int {
	var exitErr *runner.ExitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, prompt.ErrAborted), errors.Is(err, context.Canceled):
		return exitInterrupted
	case isUsageError(err):
		return exitUsage
	default:
		return exitFailure
	}
}

func isUsageError(err error) bool {
	var preflight *PreflightError
	var invalid *command.InvalidVariableNameError
	var mismatch *command.VariableCountMismatchError
	return errors.As(err, &preflight) ||
		errors.As(err, &invalid) ||
		errors.As(err, &mismatch) ||
		errors.Is(err, command.ErrUnusedDescriptions) ||
		errors.Is(err, gadget.ErrInvalidGadgetName) ||
		errors.Is(err, gadget.ErrPlaceholderName) ||
		errors.Is(err, errBadValue)
}

type errorOutput struct {
	Error       string   `json:"error"`
	Hint        string   `json:"hint,omitempty"`
	NextStep    string   `json:"next_step,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	ExitCode    int      `json:"exit_code"`
}

func describeError(err error) errorOutput {
	out := errorOutput{Error: err.Error(), ExitCode: ExitCode(err)}

	var preflight *PreflightError
	if errors.As(err, &preflight) {
		out.Hint = preflight.Hint
		out.NextStep = preflight.NextStep
	}

	var notFound *gadget.NotFoundError
	if errors.As(err, &notFound) {
		out.Suggestions = notFound.Suggestions
		if out.NextStep == "" {
			out.NextStep = "gogo list"
		}
	}
	return out
}

func printError(w io.Writer, err error) {
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) && quietFlag {
		return
	}

	out := describeError(err)
	if IsJSONOutput() || IsJSONLOutput() {
		_ = json.NewEncoder(w).Encode(out)
		return
	}

	fmt.Fprintf(w, "%s %s\n", colorize("Error:", colorRed), out.Error)
	if out.Hint != "" {
		fmt.Fprintf(w, "  %s\n", out.Hint)
	}
	if out.NextStep != "" {
		fmt.Fprintf(w, "  Try: %s\n", colorize(out.NextStep, colorCyan))
	}
}
