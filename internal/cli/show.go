package cli

import (
	"fmt"
	"io"

	"github.com/opencode-ai/gogo/internal/command"
	"github.com/opencode-ai/gogo/internal/models"
)

// printGadget writes a human-readable summary of g.
func printGadget(w io.Writer, g *models.Gadget) error {
	fmt.Fprintf(w, "%s %s\n", colorize("Gadget:", colorCyan), g.Name)
	if g.Description != "" {
		fmt.Fprintf(w, "%s %s\n", colorize("Description:", colorCyan), g.Description)
	}
	fmt.Fprintf(w, "%s %s\n", colorize("Command:", colorCyan), highlightTemplate(g.Template()))

	if len(g.Variables) == 0 {
		fmt.Fprintln(w, "No variables.")
		return nil
	}

	fmt.Fprintln(w)
	return variableTable(g.Variables).render(w)
}

func highlightTemplate(tpl command.Template) string {
	out := ""
	for _, seg := range tpl.Segments() {
		if seg.IsPlaceholder() {
			out += colorize(seg.String(), colorMagenta)
			continue
		}
		out += seg.Text
	}
	return out
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
