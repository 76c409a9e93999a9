package gadget

import (
	"context"
	"errors"

	"github.com/opencode-ai/gogo/internal/command"
	"github.com/opencode-ai/gogo/internal/models"
)

// Draft is an in-progress edit of one gadget. Every command change is
// reconciled against the previous draft state so variable metadata follows
// the user's typing. Nothing reaches the store until Save succeeds.
type Draft struct {
	service  *Service
	original *models.Gadget

	Name        string
	Description string

	tpl  command.Template
	vars []command.Variable

	// applied holds the name each variable currently has in the command
	// text. It lags vars while a typed name is not a valid placeholder.
	applied    []string
	nameErrors []bool
	message    string
}

// NewDraft starts editing g. A nil gadget starts a new, empty gadget.
func (s *Service) NewDraft(g *models.Gadget) *Draft {
	d := &Draft{service: s}
	if g != nil {
		d.original = g.Clone()
	}
	d.Reset()
	return d
}

// Reset discards every change since the draft started or last saved.
func (d *Draft) Reset() {
	d.message = ""
	if d.original == nil {
		d.Name, d.Description = "", ""
		d.tpl = command.Parse("")
		d.setVariables(nil)
		return
	}
	d.Name = d.original.Name
	d.Description = d.original.Description
	d.tpl = d.original.Template()
	d.setVariables(command.CloneVariables(d.original.Variables))
}

// IsNew reports whether the draft creates a gadget rather than editing one.
func (d *Draft) IsNew() bool {
	return d.original == nil
}

// Command returns the current command text.
func (d *Draft) Command() string {
	return d.tpl.String()
}

// Template returns the current tokenized command.
func (d *Draft) Template() command.Template {
	return d.tpl
}

// Variables returns a copy of the current variable metadata.
func (d *Draft) Variables() []command.Variable {
	return command.CloneVariables(d.vars)
}

// NameError reports whether variable i is flagged as invalid.
func (d *Draft) NameError(i int) bool {
	return i >= 0 && i < len(d.nameErrors) && d.nameErrors[i]
}

// Message is the last validation error, or "".
func (d *Draft) Message() string {
	return d.message
}

// SetCommand replaces the command text and reconciles the variables.
func (d *Draft) SetCommand(raw string) {
	next := command.Parse(raw)
	d.setVariables(command.Reconcile(d.tpl, d.vars, next))
	d.tpl = next
}

// SetVariableName renames variable i. The command follows as soon as the
// name is usable as a placeholder and no other variable holds it.
func (d *Draft) SetVariableName(i int, name string) {
	if i < 0 || i >= len(d.vars) {
		return
	}
	d.vars[i].Name = name
	if !command.PlaceholderName(name) || d.nameTaken(i, name) {
		d.nameErrors[i] = true
		return
	}
	d.nameErrors[i] = false
	if d.applied[i] != name {
		d.tpl = command.RenameVariable(d.tpl, d.applied[i], name)
		d.applied[i] = name
	}
}

func (d *Draft) nameTaken(i int, name string) bool {
	for j, applied := range d.applied {
		if j != i && applied == name {
			return true
		}
	}
	return false
}

// SetVariableDescription sets the description of variable i.
func (d *Draft) SetVariableDescription(i int, description string) {
	if i < 0 || i >= len(d.vars) {
		return
	}
	d.vars[i].Description = description
}

// SetVariableDefault sets the default of variable i; "" removes it.
func (d *Draft) SetVariableDefault(i int, value string) {
	if i < 0 || i >= len(d.vars) {
		return
	}
	if value == "" {
		d.vars[i].Default = nil
		return
	}
	d.vars[i].Default = command.DefaultValue(value)
}

// Gadget builds the gadget the draft would save.
func (d *Draft) Gadget() *models.Gadget {
	g := &models.Gadget{
		Name:        d.Name,
		Description: d.Description,
		Command:     d.tpl.String(),
		Variables:   command.CloneVariables(d.vars),
	}
	if d.original != nil {
		g.CreatedAt = d.original.CreatedAt
	}
	return g
}

// Save validates and stores the draft. On failure the stored gadget is
// unchanged, the offending variables are flagged and Message is set.
func (d *Draft) Save(ctx context.Context) (*models.Gadget, error) {
	g := d.Gadget()

	oldName := ""
	if d.original != nil {
		oldName = d.original.Name
	}

	err := d.service.Save(ctx, oldName, g)
	if err != nil {
		d.flag(err)
		return nil, err
	}

	d.original = g.Clone()
	d.message = ""
	d.setVariables(command.CloneVariables(g.Variables))
	return g, nil
}

func (d *Draft) flag(err error) {
	for i := range d.nameErrors {
		d.nameErrors[i] = false
	}
	d.message = err.Error()

	var mismatch *command.VariableCountMismatchError
	switch {
	case errors.As(err, &mismatch):
		seen := make(map[string]bool, len(d.vars))
		for i, v := range d.vars {
			d.nameErrors[i] = !command.PlaceholderName(v.Name) || seen[v.Name]
			seen[v.Name] = true
		}
	default:
		bad := make(map[string]bool)
		for _, name := range command.InvalidNames(err) {
			bad[name] = true
		}
		for i, v := range d.vars {
			if bad[v.Name] {
				d.nameErrors[i] = true
			}
		}
	}
}

func (d *Draft) setVariables(vars []command.Variable) {
	if vars == nil {
		vars = []command.Variable{}
	}
	d.vars = vars
	d.applied = command.Names(vars)
	d.nameErrors = make([]bool, len(vars))
}
