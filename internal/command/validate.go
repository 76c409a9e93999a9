package command

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnusedDescriptions is returned when variable descriptions are supplied
// for a command without placeholders.
var ErrUnusedDescriptions = errors.New("no variables found in command, but variable descriptions were provided")

var validName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// InvalidVariableNameError reports a variable name outside [A-Za-z0-9_-].
type InvalidVariableNameError struct {
	Name string
}

func (e *InvalidVariableNameError) Error() string {
	return fmt.Sprintf("variable name %q contains invalid characters; only letters, numbers, underscores and dashes are allowed", e.Name)
}

// VariableCountMismatchError reports descriptions that do not line up with
// the detected variables.
type VariableCountMismatchError struct {
	Detected []string
	Provided []string
}

func (e *VariableCountMismatchError) Error() string {
	return fmt.Sprintf("number of variable descriptions does not match number of variables in the command; variables: [%s] descriptions: [%s]",
		strings.Join(quoteAll(e.Detected), ", "),
		strings.Join(quoteAll(e.Provided), ", "))
}

// ValidName reports whether name is an allowed variable or gadget name.
func ValidName(name string) bool {
	return validName.MatchString(name)
}

// ValidateNames returns an InvalidVariableNameError for every offending
// name, joined into one error.
func ValidateNames(vars []Variable) error {
	var errs []error
	for _, v := range vars {
		if !ValidName(v.Name) {
			errs = append(errs, &InvalidVariableNameError{Name: v.Name})
		}
	}
	return errors.Join(errs...)
}

// Validate checks that vars can be stored alongside tpl.
func Validate(tpl Template, vars []Variable) error {
	detected := tpl.DistinctVariables()
	if len(detected) == 0 && len(vars) > 0 {
		return ErrUnusedDescriptions
	}
	if len(detected) != len(vars) {
		return &VariableCountMismatchError{Detected: detected, Provided: Names(vars)}
	}
	return ValidateNames(vars)
}

// FromDescriptions pairs a flat description list with the distinct variables
// of tpl in order.
func FromDescriptions(tpl Template, descriptions []string) ([]Variable, error) {
	detected := tpl.DistinctVariables()
	if len(detected) == 0 {
		if len(descriptions) > 0 {
			return nil, ErrUnusedDescriptions
		}
		return []Variable{}, nil
	}
	if len(descriptions) != len(detected) {
		return nil, &VariableCountMismatchError{Detected: detected, Provided: append([]string(nil), descriptions...)}
	}

	vars := make([]Variable, len(detected))
	for i, name := range detected {
		vars[i] = Variable{Name: name, Description: descriptions[i]}
	}
	if err := ValidateNames(vars); err != nil {
		return nil, err
	}
	return vars, nil
}

// InvalidNames extracts the offending names from an error returned by
// ValidateNames or Validate.
func InvalidNames(err error) []string {
	if err == nil {
		return nil
	}
	var names []string
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range joined.Unwrap() {
			names = append(names, InvalidNames(inner)...)
		}
		return names
	}
	var invalid *InvalidVariableNameError
	if errors.As(err, &invalid) {
		names = append(names, invalid.Name)
	}
	return names
}

func quoteAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprintf("%q", v)
	}
	return out
}
