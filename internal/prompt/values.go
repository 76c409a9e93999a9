package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/opencode-ai/gogo/internal/command"
)

// ErrMissingValue is returned when a variable has no value and no default.
var ErrMissingValue = errors.New("missing value")

// MissingValueError names the variable that could not be filled.
type MissingValueError struct {
	Name string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("no value provided for variable %q and no default is set", e.Name)
}

func (e *MissingValueError) Unwrap() error {
	return ErrMissingValue
}

// Collect resolves a value for every variable. Values in provided win;
// otherwise driver is asked when non-nil, and an empty answer falls back to
// the default. Without a driver the default is used directly.
func Collect(ctx context.Context, driver Driver, vars []command.Variable, provided map[string]string) (map[string]string, error) {
	values := make(map[string]string, len(vars))
	for _, v := range vars {
		if value, ok := provided[v.Name]; ok {
			values[v.Name] = value
			continue
		}

		if driver == nil {
			if !v.HasDefault() {
				return nil, &MissingValueError{Name: v.Name}
			}
			values[v.Name] = *v.Default
			continue
		}

		answer, err := driver.Input(ctx, InputConfig{
			Message:    Message(v),
			Default:    v.DefaultOr(""),
			HasDefault: v.HasDefault(),
		})
		if err != nil {
			return nil, err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			if !v.HasDefault() {
				return nil, &MissingValueError{Name: v.Name}
			}
			answer = *v.Default
		}
		values[v.Name] = answer
	}
	return values, nil
}

// Message is the prompt text for v.
func Message(v command.Variable) string {
	if v.Description == "" {
		return fmt.Sprintf("Enter value for %s:", v.Name)
	}
	return fmt.Sprintf("Enter value for %s (%s):", v.Name, v.Description)
}
