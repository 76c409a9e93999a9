// Package command tokenizes gadget command templates, renders them, and keeps
// their variable metadata aligned across edits.
package command

import "strings"

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// SegmentKind distinguishes literal text from placeholder references.
type SegmentKind int

const (
	// SegmentLiteral is verbatim command text.
	SegmentLiteral SegmentKind = iota
	// SegmentPlaceholder is a {{name}} reference.
	SegmentPlaceholder
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentLiteral:
		return "literal"
	case SegmentPlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// Segment is one literal or placeholder unit of a template.
// For placeholders Text holds the variable name.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Literal returns a literal segment.
func Literal(text string) Segment {
	return Segment{Kind: SegmentLiteral, Text: text}
}

// Placeholder returns a placeholder segment referencing name.
func Placeholder(name string) Segment {
	return Segment{Kind: SegmentPlaceholder, Text: name}
}

// IsPlaceholder reports whether the segment references a variable.
func (s Segment) IsPlaceholder() bool {
	return s.Kind == SegmentPlaceholder
}

// String returns the source form of the segment.
func (s Segment) String() string {
	if s.IsPlaceholder() {
		return openDelim + s.Text + closeDelim
	}
	return s.Text
}

// Template is a tokenized command string. The zero value is the empty template.
type Template struct {
	raw      string
	segments []Segment
}

// Parse tokenizes raw into literal and placeholder segments.
//
// A placeholder is "{{" followed by one or more ASCII letters, digits or
// underscores and then "}}". Anything else, including unclosed or empty
// braces, stays literal. Parse never fails.
func Parse(raw string) Template {
	tpl := Template{raw: raw}

	litStart := 0
	i := 0
	for i < len(raw) {
		name, width := matchPlaceholder(raw[i:])
		if width == 0 {
			i++
			continue
		}
		if i > litStart {
			tpl.segments = append(tpl.segments, Literal(raw[litStart:i]))
		}
		tpl.segments = append(tpl.segments, Placeholder(name))
		i += width
		litStart = i
	}
	if litStart < len(raw) {
		tpl.segments = append(tpl.segments, Literal(raw[litStart:]))
	}

	return tpl
}

// matchPlaceholder returns the variable name and byte width of a placeholder
// at the start of s, or a zero width when s does not start with one.
func matchPlaceholder(s string) (string, int) {
	if !strings.HasPrefix(s, openDelim) {
		return "", 0
	}
	end := len(openDelim)
	for end < len(s) && isWordByte(s[end]) {
		end++
	}
	if end == len(openDelim) || !strings.HasPrefix(s[end:], closeDelim) {
		return "", 0
	}
	return s[len(openDelim):end], end + len(closeDelim)
}

// PlaceholderName reports whether {{name}} tokenizes as a placeholder.
func PlaceholderName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isWordByte(name[i]) {
			return false
		}
	}
	return true
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// String returns the raw command text.
func (t Template) String() string {
	return t.raw
}

// Segments returns a copy of the template segments in order.
func (t Template) Segments() []Segment {
	out := make([]Segment, len(t.segments))
	copy(out, t.segments)
	return out
}

// Literals returns the text of every literal segment in order.
func (t Template) Literals() []string {
	out := make([]string, 0, len(t.segments))
	for _, seg := range t.segments {
		if !seg.IsPlaceholder() {
			out = append(out, seg.Text)
		}
	}
	return out
}

// Equal reports whether both templates were parsed from the same text.
func (t Template) Equal(other Template) bool {
	return t.raw == other.raw
}

// IsEmpty reports whether the template has no text at all.
func (t Template) IsEmpty() bool {
	return t.raw == ""
}
