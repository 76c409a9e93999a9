package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opencode-ai/gogo/internal/gadget"
	"github.com/opencode-ai/gogo/internal/models"
	"github.com/opencode-ai/gogo/internal/tui/components"
	"github.com/opencode-ai/gogo/internal/tui/styles"
)

const (
	fieldName = iota
	fieldDescription
	fieldCommand
	fixedFields
)

const (
	varName = iota
	varDescription
	varDefault
	fieldsPerVar
)

type variableFields struct {
	name        components.TextField
	description components.TextField
	defaultVal  components.TextField
}

func (v *variableFields) field(k int) *components.TextField {
	switch k {
	case varName:
		return &v.name
	case varDescription:
		return &v.description
	default:
		return &v.defaultVal
	}
}

// editor edits one gadget draft. Every change to a field is pushed into the
// draft immediately; the command field re-runs reconciliation per keystroke.
type editor struct {
	draft *gadget.Draft

	name        components.TextField
	description components.TextField
	command     components.TextField
	vars        []variableFields

	focus  int
	status string
}

func newEditor(draft *gadget.Draft) *editor {
	e := &editor{draft: draft}
	e.load()
	return e
}

// load rebuilds every field from the draft.
func (e *editor) load() {
	e.name = components.NewTextField("Name", e.draft.Name)
	e.name.Hint = "letters, digits, - and _"
	e.description = components.NewTextField("Description", e.draft.Description)
	e.command = components.NewTextField("Command", e.draft.Command())
	e.command.Hint = "echo {{message}}"
	e.loadVariables()
}

func (e *editor) loadVariables() {
	vars := e.draft.Variables()
	e.vars = make([]variableFields, len(vars))
	for i, v := range vars {
		e.vars[i] = variableFields{
			name:        components.NewTextField("  name", v.Name),
			description: components.NewTextField("  description", v.Description),
			defaultVal:  components.NewTextField("  default", v.DefaultOr("")),
		}
		e.vars[i].defaultVal.Hint = "none"
	}
	if e.focus >= e.fieldCount() {
		e.focus = e.fieldCount() - 1
	}
}

func (e *editor) fieldCount() int {
	return fixedFields + len(e.vars)*fieldsPerVar
}

func (e *editor) focused() *components.TextField {
	switch e.focus {
	case fieldName:
		return &e.name
	case fieldDescription:
		return &e.description
	case fieldCommand:
		return &e.command
	}
	idx := e.focus - fixedFields
	return e.vars[idx/fieldsPerVar].field(idx % fieldsPerVar)
}

func (e *editor) moveFocus(delta int) {
	count := e.fieldCount()
	e.focus = (e.focus + delta + count) % count
}

// apply pushes the focused field's value into the draft.
func (e *editor) apply() {
	value := e.focused().Value()
	switch e.focus {
	case fieldName:
		e.draft.Name = value
		return
	case fieldDescription:
		e.draft.Description = value
		return
	case fieldCommand:
		e.draft.SetCommand(value)
		e.loadVariables()
		return
	}

	idx := e.focus - fixedFields
	i := idx / fieldsPerVar
	switch idx % fieldsPerVar {
	case varName:
		e.draft.SetVariableName(i, value)
		e.command.SetValue(e.draft.Command())
	case varDescription:
		e.draft.SetVariableDescription(i, value)
	case varDefault:
		e.draft.SetVariableDefault(i, value)
	}
}

// save stores the draft. It returns the saved gadget, or nil when
// validation failed and the draft is left as typed.
func (e *editor) save(ctx context.Context) *models.Gadget {
	saved, err := e.draft.Save(ctx)
	if err != nil {
		e.status = ""
		return nil
	}
	focus := e.focus
	e.load()
	e.focus = focus
	if e.focus >= e.fieldCount() {
		e.focus = e.fieldCount() - 1
	}
	e.status = fmt.Sprintf("Saved %s", saved.Name)
	return saved
}

func (e *editor) revert() {
	e.draft.Reset()
	e.load()
	e.status = "Reverted"
}

// handleKey edits the focused field. It reports whether the key was used.
func (e *editor) handleKey(msg tea.KeyMsg) bool {
	field := e.focused()
	changed := false

	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		e.moveFocus(1)
		return true
	case tea.KeyShiftTab, tea.KeyUp:
		e.moveFocus(-1)
		return true
	case tea.KeyLeft:
		field.Left()
		return true
	case tea.KeyRight:
		field.Right()
		return true
	case tea.KeyHome, tea.KeyCtrlA:
		field.Home()
		return true
	case tea.KeyEnd, tea.KeyCtrlE:
		field.End()
		return true
	case tea.KeyBackspace:
		changed = field.Backspace()
	case tea.KeyDelete:
		changed = field.Delete()
	case tea.KeySpace:
		field.Insert(" ")
		changed = true
	case tea.KeyRunes:
		field.Insert(string(msg.Runes))
		changed = true
	default:
		return false
	}

	if changed {
		e.status = ""
		e.apply()
	}
	return true
}

func (e *editor) viewLines(styleSet styles.Styles) []string {
	title := "New gadget"
	if !e.draft.IsNew() {
		title = fmt.Sprintf("Edit gadget %s", e.draft.Name)
	}

	lines := []string{styleSet.Title.Render(title), ""}
	lines = append(lines,
		e.name.Render(styleSet, e.focus == fieldName, false),
		e.description.Render(styleSet, e.focus == fieldDescription, false),
		e.command.Render(styleSet, e.focus == fieldCommand, false),
		"",
		styleSet.Label.Render("  Template")+" "+components.RenderTemplate(styleSet, e.draft.Template()),
		styleSet.Label.Render("  Preview")+" "+components.RenderPreview(styleSet, e.draft.Template(), e.draft.Variables()),
		"",
		styleSet.Accent.Render("Variables"),
	)

	if len(e.vars) == 0 {
		lines = append(lines, components.NoVariables().Render(styleSet))
	}
	for i := range e.vars {
		base := fixedFields + i*fieldsPerVar
		lines = append(lines,
			e.vars[i].name.Render(styleSet, e.focus == base+varName, e.draft.NameError(i)),
			e.vars[i].description.Render(styleSet, e.focus == base+varDescription, false),
			e.vars[i].defaultVal.Render(styleSet, e.focus == base+varDefault, false),
		)
	}

	lines = append(lines, "")
	switch {
	case e.draft.Message() != "":
		lines = append(lines, styleSet.Error.Render(e.draft.Message()))
	case e.status != "":
		lines = append(lines, styleSet.Success.Render(e.status))
	}
	return lines
}
