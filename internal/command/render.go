package command

import "strings"

// Render substitutes each placeholder with its value. Names missing from
// values render as the empty string.
func (t Template) Render(values map[string]string) string {
	var out strings.Builder
	out.Grow(len(t.raw))
	for _, seg := range t.segments {
		if seg.IsPlaceholder() {
			out.WriteString(values[seg.Text])
			continue
		}
		out.WriteString(seg.Text)
	}
	return out.String()
}

// Source rebuilds the command text from the segments.
func (t Template) Source() string {
	var out strings.Builder
	out.Grow(len(t.raw))
	for _, seg := range t.segments {
		out.WriteString(seg.String())
	}
	return out.String()
}

// RenameVariable rewrites every {{oldName}} in the template text as
// {{newName}} and tokenizes the result.
func RenameVariable(t Template, oldName, newName string) Template {
	if oldName == newName || oldName == "" {
		return t
	}
	raw := strings.ReplaceAll(t.raw, openDelim+oldName+closeDelim, openDelim+newName+closeDelim)
	return Parse(raw)
}
