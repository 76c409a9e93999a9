package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/opencode-ai/gogo/internal/gadget"
	"github.com/opencode-ai/gogo/internal/models"
)

var errBadValue = errors.New("invalid variable value")

// parseSetFlags parses repeated --set key=value flags.
func parseSetFlags(values []string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for _, raw := range values {
		key, value, ok := strings.Cut(raw, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q must be key=value", errBadValue, raw)
		}
		out[key] = value
	}
	return out, nil
}

// parsePassthrough parses the arguments after "--" as --name value or
// --name=value pairs.
func parsePassthrough(args []string) (map[string]string, error) {
	out := make(map[string]string)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") || strings.TrimLeft(arg, "-") == "" {
			return nil, fmt.Errorf("%w: expected --name value, got %q", errBadValue, arg)
		}

		key := strings.TrimLeft(arg, "-")
		if name, value, ok := strings.Cut(key, "="); ok {
			out[name] = value
			continue
		}

		if i+1 >= len(args) {
			return nil, fmt.Errorf("%w: --%s needs a value", errBadValue, key)
		}
		out[key] = args[i+1]
		i++
	}
	return out, nil
}

// collectProvided merges passthrough values with --set flags, which win,
// and rejects names the gadget does not define.
func collectProvided(g *models.Gadget, set []string, passthrough []string) (map[string]string, error) {
	provided, err := parsePassthrough(passthrough)
	if err != nil {
		return nil, err
	}
	flags, err := parseSetFlags(set)
	if err != nil {
		return nil, err
	}
	for key, value := range flags {
		provided[key] = value
	}

	known := make([]string, 0, len(g.Variables))
	for _, v := range g.Variables {
		known = append(known, v.Name)
	}

	var unknown []string
	for key := range provided {
		if _, ok := g.Variable(key); !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return provided, nil
	}

	sort.Strings(unknown)
	msg := fmt.Sprintf("%s: %s", gadget.ErrVariableNotFound, strings.Join(unknown, ", "))
	if suggestions := gadget.Suggest(unknown[0], known); len(suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
	}
	hint := fmt.Sprintf("%s has no variables", g.Name)
	if len(known) > 0 {
		hint = fmt.Sprintf("%s takes: %s", g.Name, strings.Join(known, ", "))
	}
	return nil, &PreflightError{
		Message:  msg,
		Hint:     hint,
		NextStep: "gogo variables " + g.Name,
	}
}
