package gadget

import (
	"errors"
	"fmt"
	"strings"
)

// Service errors.
var (
	ErrGadgetNotFound    = errors.New("gadget not found")
	ErrGadgetExists      = errors.New("gadget already exists")
	ErrInvalidGadgetName = errors.New("invalid gadget name")
	ErrEmptyCommand      = errors.New("command cannot be empty")
	ErrVariableNotFound  = errors.New("variable not found")
	ErrVariableExists    = errors.New("variable already exists")
	ErrPlaceholderName   = errors.New("variable name cannot be used as a placeholder")
)

// NotFoundError reports a missing gadget along with similar names.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("gadget %q not found", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *NotFoundError) Unwrap() error {
	return ErrGadgetNotFound
}

// InvalidNameError reports a gadget name outside [A-Za-z0-9_-]+.
type InvalidNameError struct {
	Name       string
	Suggestion string
}

func (e *InvalidNameError) Error() string {
	msg := fmt.Sprintf("invalid gadget name %q: use letters, digits, '_' or '-'", e.Name)
	if e.Suggestion != "" && e.Suggestion != e.Name {
		msg += fmt.Sprintf(" (try %q)", e.Suggestion)
	}
	return msg
}

func (e *InvalidNameError) Unwrap() error {
	return ErrInvalidGadgetName
}
