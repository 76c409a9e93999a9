package components

import (
	"strings"
	"testing"

	"github.com/opencode-ai/gogo/internal/command"
	"github.com/opencode-ai/gogo/internal/tui/styles"
)

func TestEmptyStateRender(t *testing.T) {
	styleSet := styles.DefaultStyles()

	t.Run("title and subtitle", func(t *testing.T) {
		result := EmptyState{Title: "No data", Subtitle: "Check back later"}.Render(styleSet)
		if !strings.Contains(result, "No data") || !strings.Contains(result, "Check back later") {
			t.Errorf("Expected title and subtitle in output, got: %s", result)
		}
		if strings.Contains(result, "Get started") {
			t.Errorf("Did not expect suggestions header, got: %s", result)
		}
	})

	t.Run("suggestions", func(t *testing.T) {
		result := EmptyGadgets().Render(styleSet)
		if !strings.Contains(result, "Get started") {
			t.Errorf("Expected 'Get started' header, got: %s", result)
		}
		if !strings.Contains(result, "gogo init") {
			t.Errorf("Expected init suggestion, got: %s", result)
		}
	})
}

func TestPickerFilterAndMove(t *testing.T) {
	p := NewPicker([]PickerItem{
		{Name: "tar-dir", Description: "archive a directory"},
		{Name: "git-recent", Description: "latest commits"},
		{Name: "grep-text", Command: "grep -rn '{{text}}' {{dir}}"},
	})

	if got := p.Selected(); got == nil || got.Name != "git-recent" {
		t.Fatalf("expected sorted first item git-recent, got %+v", got)
	}

	p.Move(-1)
	if got := p.Selected(); got.Name != "tar-dir" {
		t.Fatalf("expected wrap to tar-dir, got %s", got.Name)
	}

	p.Type("grep")
	if items := p.Filtered(); len(items) != 1 || items[0].Name != "grep-text" {
		t.Fatalf("expected only grep-text, got %+v", items)
	}

	p.Backspace()
	p.Backspace()
	p.Backspace()
	p.Backspace()
	p.Type("dir")
	names := []string{}
	for _, item := range p.Filtered() {
		names = append(names, item.Name)
	}
	if strings.Join(names, ",") != "grep-text,tar-dir" {
		t.Fatalf("expected matches across name, description and command, got %v", names)
	}

	p.Type(" nope")
	if p.Selected() != nil {
		t.Fatal("expected no selection for unmatched filter")
	}
	if out := strings.Join(p.Render(styles.DefaultStyles(), 80), "\n"); !strings.Contains(out, "No gadgets match") {
		t.Fatalf("expected filtered empty state, got: %s", out)
	}
}

func TestTextFieldEditing(t *testing.T) {
	f := NewTextField("Command", "echo")
	f.Insert(" hi")
	if f.Value() != "echo hi" {
		t.Fatalf("unexpected value %q", f.Value())
	}

	f.Home()
	f.Insert(">")
	f.End()
	f.Left()
	if !f.Backspace() {
		t.Fatal("expected backspace to change value")
	}
	if f.Value() != ">echo i" {
		t.Fatalf("unexpected value %q", f.Value())
	}
	if !f.Delete() || f.Value() != ">echo " {
		t.Fatalf("unexpected value after delete %q", f.Value())
	}
	if f.Delete() {
		t.Fatal("delete at end must not change value")
	}

	f.Home()
	if f.Backspace() {
		t.Fatal("backspace at start must not change value")
	}

	f.SetValue("ab")
	if f.Cursor() != 0 {
		t.Fatalf("expected cursor to stay at 0, got %d", f.Cursor())
	}
}

func TestRenderTemplateAndPreview(t *testing.T) {
	styleSet := styles.DefaultStyles()
	tpl := command.Parse("ping -c {{count}} {{host}}")
	vars := []command.Variable{
		{Name: "count", Default: command.DefaultValue("3")},
		{Name: "host"},
	}

	if out := RenderTemplate(styleSet, tpl); !strings.Contains(out, "{{count}}") || !strings.Contains(out, "ping -c") {
		t.Fatalf("unexpected template rendering: %q", out)
	}
	out := RenderPreview(styleSet, tpl, vars)
	if !strings.Contains(out, "3") || !strings.Contains(out, "<host>") {
		t.Fatalf("unexpected preview: %q", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 5); got != "ab..." {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := truncate("abc", 5); got != "abc" {
		t.Fatalf("unexpected truncation %q", got)
	}
}
