// Package models defines the data types shared across gogo.
package models

import (
	"strings"
	"time"

	"github.com/opencode-ai/gogo/internal/command"
)

// Gadget is a named, reusable command template.
type Gadget struct {
	// Name identifies the gadget; it is also the key in the gadget store.
	Name string `json:"name" yaml:"name"`

	// Command is the raw template text with {{variable}} placeholders.
	Command string `json:"command" yaml:"command"`

	// Description is shown in listings.
	Description string `json:"description" yaml:"description"`

	// Variables holds one entry per distinct placeholder, in order.
	Variables []command.Variable `json:"variables" yaml:"variables,omitempty"`

	CreatedAt time.Time `json:"created_at,omitzero" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at,omitzero" yaml:"-"`
}

// Template tokenizes the gadget command.
func (g *Gadget) Template() command.Template {
	return command.Parse(g.Command)
}

// Variable returns the metadata for name, if present.
func (g *Gadget) Variable(name string) (command.Variable, bool) {
	for _, v := range g.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return command.Variable{}, false
}

// Clone returns a deep copy of the gadget.
func (g *Gadget) Clone() *Gadget {
	if g == nil {
		return nil
	}
	clone := *g
	clone.Variables = command.CloneVariables(g.Variables)
	return &clone
}

// Validate checks required fields without looking at variables.
func (g *Gadget) Validate() error {
	validation := &ValidationErrors{}
	if strings.TrimSpace(g.Name) == "" {
		validation.AddMessage("name", "gadget name is required")
	}
	if strings.TrimSpace(g.Command) == "" {
		validation.AddMessage("command", "command cannot be empty")
	}
	return validation.Err()
}
