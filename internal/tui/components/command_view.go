package components

import (
	"strings"

	"github.com/opencode-ai/gogo/internal/command"
	"github.com/opencode-ai/gogo/internal/tui/styles"
)

// RenderTemplate draws tpl with placeholders highlighted.
func RenderTemplate(styleSet styles.Styles, tpl command.Template) string {
	var b strings.Builder
	for _, seg := range tpl.Segments() {
		if seg.IsPlaceholder() {
			b.WriteString(styleSet.Placeholder.Render(seg.String()))
			continue
		}
		b.WriteString(styleSet.Text.Render(seg.Text))
	}
	return b.String()
}

// RenderPreview draws tpl with defaults substituted and unfilled variables
// shown as <name>.
func RenderPreview(styleSet styles.Styles, tpl command.Template, vars []command.Variable) string {
	defaults := make(map[string]command.Variable, len(vars))
	for _, v := range vars {
		defaults[v.Name] = v
	}

	var b strings.Builder
	for _, seg := range tpl.Segments() {
		if !seg.IsPlaceholder() {
			b.WriteString(styleSet.Text.Render(seg.Text))
			continue
		}
		if v, ok := defaults[seg.Text]; ok && v.HasDefault() {
			b.WriteString(styleSet.Accent.Render(*v.Default))
			continue
		}
		b.WriteString(styleSet.Muted.Render("<" + seg.Text + ">"))
	}
	return b.String()
}
