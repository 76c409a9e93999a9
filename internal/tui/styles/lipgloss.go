package styles

import "github.com/charmbracelet/lipgloss"

// Styles contains lipgloss styles derived from theme tokens.
type Styles struct {
	Theme       Theme
	Title       lipgloss.Style
	Text        lipgloss.Style
	Muted       lipgloss.Style
	Accent      lipgloss.Style
	Panel       lipgloss.Style
	Focus       lipgloss.Style
	Label       lipgloss.Style
	Placeholder lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	Error       lipgloss.Style
}

// DefaultStyles builds styles from the default theme.
func DefaultStyles() Styles {
	return BuildStyles(DefaultTheme)
}

// BuildStyles converts theme tokens into lipgloss styles.
func BuildStyles(theme Theme) Styles {
	tokens := theme.Tokens

	return Styles{
		Theme:       theme,
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Bold(true),
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)),
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Accent)),
		Panel:       lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(tokens.Border)).Padding(0, 1),
		Focus:       lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Focus)).Bold(true),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)).Width(14),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Placeholder)).Bold(true),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Success)),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Warning)),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Error)),
	}
}

// ForTheme builds styles for the named theme, falling back to the default.
func ForTheme(name string) Styles {
	theme, _ := ThemeByName(name)
	return BuildStyles(theme)
}
