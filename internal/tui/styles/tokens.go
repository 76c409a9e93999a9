package styles

// ThemeTokens defines the semantic color roles for the editor.
type ThemeTokens struct {
	Text        string
	TextMuted   string
	Border      string
	Accent      string
	Focus       string
	Placeholder string
	Success     string
	Warning     string
	Error       string
}

// Theme bundles a palette with a name.
type Theme struct {
	Name   string
	Tokens ThemeTokens
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	DefaultTheme.Name:      DefaultTheme,
	HighContrastTheme.Name: HighContrastTheme,
}

// ThemeByName returns the named theme, falling back to DefaultTheme.
func ThemeByName(name string) (Theme, bool) {
	theme, ok := Themes[name]
	if !ok {
		return DefaultTheme, false
	}
	return theme, true
}
