package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/opencode-ai/gogo/internal/command"
	"github.com/opencode-ai/gogo/internal/models"
)

const (
	colorRed     = "1"
	colorGreen   = "2"
	colorYellow  = "3"
	colorMagenta = "5"
	colorCyan    = "6"
)

// colorize wraps text in an ANSI color unless color is disabled or stdout
// is not a terminal.
func colorize(text, color string) string {
	if !colorEnabled() || text == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
}

func colorEnabled() bool {
	if noColor || IsJSONOutput() || IsJSONLOutput() {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

func formatEventType(eventType models.EventType) string {
	label, color := statusLabelForEvent(eventType)
	return colorize(formatStatusLabel(label, string(eventType)), color)
}

func statusLabelForEvent(eventType models.EventType) (string, string) {
	switch eventType {
	case models.EventTypeGadgetCreated:
		return "NEW", colorGreen
	case models.EventTypeGadgetUpdated, models.EventTypeGadgetRenamed:
		return "EDIT", colorCyan
	case models.EventTypeGadgetDeleted:
		return "DEL", colorMagenta
	case models.EventTypeGadgetRan:
		return "RUN", colorYellow
	default:
		return "INFO", colorYellow
	}
}

func formatExitCode(code int) string {
	if code == 0 {
		return colorize("OK", colorGreen)
	}
	return colorize(fmt.Sprintf("ERR %d", code), colorRed)
}

func formatStatusLabel(label, status string) string {
	normalized := strings.TrimSpace(status)
	if normalized != "" {
		normalized = strings.ReplaceAll(normalized, "_", " ")
	}
	if normalized == "" {
		return label
	}
	return fmt.Sprintf("%s %s", label, normalized)
}

func formatDefault(v command.Variable) string {
	if !v.HasDefault() {
		return "-"
	}
	if *v.Default == "" {
		return `""`
	}
	return *v.Default
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen <= 0 || len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

func logWarning(msg string) {
	if quietFlag {
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", colorize("Warning:", colorYellow), msg)
}
