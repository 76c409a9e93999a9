// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/gogo/internal/tui/styles"
)

// EmptyState is a placeholder message with optional next steps.
type EmptyState struct {
	Title       string
	Subtitle    string
	Suggestions []Suggestion
}

// Suggestion is a command the user can run, with a short description.
type Suggestion struct {
	Command     string
	Description string
}

// Render renders the empty state with the given styles.
func (e EmptyState) Render(styleSet styles.Styles) string {
	lines := []string{styleSet.Muted.Render(e.Title)}
	if e.Subtitle != "" {
		lines = append(lines, styleSet.Muted.Render(e.Subtitle))
	}

	if len(e.Suggestions) > 0 {
		lines = append(lines, "", styleSet.Text.Render("Get started:"))
		for _, s := range e.Suggestions {
			line := "  " + styleSet.Accent.Render(s.Command)
			if s.Description != "" {
				line += styleSet.Muted.Render(fmt.Sprintf("  # %s", s.Description))
			}
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n")
}

// EmptyGadgets is shown when the store has no gadgets.
func EmptyGadgets() EmptyState {
	return EmptyState{
		Title:    "No gadgets yet",
		Subtitle: "Gadgets are saved commands with {{placeholders}}.",
		Suggestions: []Suggestion{
			{Command: "ctrl+n", Description: "create a gadget here"},
			{Command: "gogo init", Description: "install the starter gadgets"},
			{Command: "gogo add <name> --command '...'", Description: "add one from the shell"},
		},
	}
}

// EmptyGadgetsFiltered is shown when the filter matches nothing.
func EmptyGadgetsFiltered(filter string) EmptyState {
	return EmptyState{
		Title:    fmt.Sprintf("No gadgets match '%s'", filter),
		Subtitle: "Backspace to edit the filter.",
	}
}

// NoVariables is shown in the editor for commands without placeholders.
func NoVariables() EmptyState {
	return EmptyState{
		Title:    "No variables",
		Subtitle: "Type {{name}} in the command to add one.",
	}
}
