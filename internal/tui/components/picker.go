package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/opencode-ai/gogo/internal/tui/styles"
)

// PickerItem is one selectable gadget.
type PickerItem struct {
	Name        string
	Description string
	Command     string
}

// Picker is a filterable list of gadgets.
type Picker struct {
	Query string
	Index int
	Items []PickerItem
}

// NewPicker creates a picker over items sorted by name.
func NewPicker(items []PickerItem) *Picker {
	p := &Picker{}
	p.SetItems(items)
	return p
}

// SetItems replaces the item list, keeping the selection in range.
func (p *Picker) SetItems(items []PickerItem) {
	p.Items = append([]PickerItem(nil), items...)
	sort.Slice(p.Items, func(i, j int) bool {
		return strings.ToLower(p.Items[i].Name) < strings.ToLower(p.Items[j].Name)
	})
	p.ClampIndex()
}

// Type appends to the filter query.
func (p *Picker) Type(s string) {
	p.Query += s
	p.Index = 0
}

// Backspace removes the last rune of the query.
func (p *Picker) Backspace() {
	if p.Query == "" {
		return
	}
	runes := []rune(p.Query)
	p.Query = string(runes[:len(runes)-1])
	p.Index = 0
}

// Move shifts the selection, wrapping around.
func (p *Picker) Move(delta int) {
	items := p.Filtered()
	if len(items) == 0 {
		p.Index = 0
		return
	}
	idx := p.Index + delta
	if idx < 0 {
		idx = len(items) - 1
	} else if idx >= len(items) {
		idx = 0
	}
	p.Index = idx
}

// ClampIndex keeps the selection within the filtered items.
func (p *Picker) ClampIndex() {
	items := p.Filtered()
	if p.Index >= len(items) {
		p.Index = len(items) - 1
	}
	if p.Index < 0 {
		p.Index = 0
	}
}

// Selected returns the highlighted item, or nil.
func (p *Picker) Selected() *PickerItem {
	items := p.Filtered()
	if p.Index < 0 || p.Index >= len(items) {
		return nil
	}
	selected := items[p.Index]
	return &selected
}

// Filtered returns items whose name, description or command contain every
// word of the query.
func (p *Picker) Filtered() []PickerItem {
	tokens := strings.Fields(strings.ToLower(p.Query))
	if len(tokens) == 0 {
		return p.Items
	}
	filtered := make([]PickerItem, 0, len(p.Items))
	for _, item := range p.Items {
		haystack := strings.ToLower(strings.Join([]string{item.Name, item.Description, item.Command}, " "))
		if matchesTokens(haystack, tokens) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Render renders the picker lines.
func (p *Picker) Render(styleSet styles.Styles, width int) []string {
	lines := []string{
		styleSet.Title.Render("Gadgets"),
		styleSet.Muted.Render("Type to filter. Enter edits, ctrl+n creates, esc quits."),
		styleSet.Text.Render(fmt.Sprintf("> %s", p.Query)),
		"",
	}

	if len(p.Items) == 0 {
		return append(lines, EmptyGadgets().Render(styleSet))
	}
	items := p.Filtered()
	if len(items) == 0 {
		return append(lines, EmptyGadgetsFiltered(p.Query).Render(styleSet))
	}

	maxLen := width - 4
	if maxLen < 20 {
		maxLen = 80
	}
	for idx, item := range items {
		label := item.Name
		if desc := strings.TrimSpace(item.Description); desc != "" {
			label = fmt.Sprintf("%s - %s", item.Name, desc)
		}
		label = truncate(label, maxLen)
		if idx == p.Index {
			lines = append(lines, styleSet.Focus.Render("> "+label))
			continue
		}
		lines = append(lines, styleSet.Muted.Render("  "+label))
	}
	return lines
}

func matchesTokens(haystack string, tokens []string) bool {
	for _, token := range tokens {
		if !strings.Contains(haystack, token) {
			return false
		}
	}
	return true
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
