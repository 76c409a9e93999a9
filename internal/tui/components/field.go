package components

import (
	"strings"

	"github.com/opencode-ai/gogo/internal/tui/styles"
)

// TextField is a single-line editable value with a cursor.
type TextField struct {
	Label string
	Hint  string

	value  []rune
	cursor int
}

// NewTextField creates a field holding value with the cursor at the end.
func NewTextField(label, value string) TextField {
	f := TextField{Label: label}
	f.SetValue(value)
	f.End()
	return f
}

// Value returns the current text.
func (f *TextField) Value() string {
	return string(f.value)
}

// SetValue replaces the text, keeping the cursor in range.
func (f *TextField) SetValue(value string) {
	f.value = []rune(value)
	if f.cursor > len(f.value) {
		f.cursor = len(f.value)
	}
}

// Cursor returns the cursor position in runes.
func (f *TextField) Cursor() int {
	return f.cursor
}

// Insert types s at the cursor.
func (f *TextField) Insert(s string) {
	runes := []rune(s)
	next := make([]rune, 0, len(f.value)+len(runes))
	next = append(next, f.value[:f.cursor]...)
	next = append(next, runes...)
	next = append(next, f.value[f.cursor:]...)
	f.value = next
	f.cursor += len(runes)
}

// Backspace deletes the rune before the cursor. It reports whether the
// value changed.
func (f *TextField) Backspace() bool {
	if f.cursor == 0 {
		return false
	}
	f.value = append(f.value[:f.cursor-1], f.value[f.cursor:]...)
	f.cursor--
	return true
}

// Delete removes the rune under the cursor.
func (f *TextField) Delete() bool {
	if f.cursor >= len(f.value) {
		return false
	}
	f.value = append(f.value[:f.cursor], f.value[f.cursor+1:]...)
	return true
}

// Left moves the cursor one rune left.
func (f *TextField) Left() {
	if f.cursor > 0 {
		f.cursor--
	}
}

// Right moves the cursor one rune right.
func (f *TextField) Right() {
	if f.cursor < len(f.value) {
		f.cursor++
	}
}

// Home moves the cursor to the start.
func (f *TextField) Home() {
	f.cursor = 0
}

// End moves the cursor to the end.
func (f *TextField) End() {
	f.cursor = len(f.value)
}

// Render draws the field; a focused field shows the cursor.
func (f *TextField) Render(styleSet styles.Styles, focused, invalid bool) string {
	label := styleSet.Label.Render(f.Label)

	valueStyle := styleSet.Text
	if invalid {
		valueStyle = styleSet.Error
	}

	var body string
	switch {
	case focused:
		before := string(f.value[:f.cursor])
		after := string(f.value[f.cursor:])
		body = valueStyle.Render(before) + styleSet.Focus.Render("|") + valueStyle.Render(after)
	case len(f.value) == 0 && f.Hint != "":
		body = styleSet.Muted.Render(f.Hint)
	default:
		body = valueStyle.Render(string(f.value))
	}

	marker := "  "
	if focused {
		marker = styleSet.Focus.Render("> ")
	}
	return strings.TrimRight(marker+label+" "+body, " ")
}
