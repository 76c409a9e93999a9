package gadget

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/gosimple/slug"

	"github.com/opencode-ai/gogo/internal/command"
)

// maxSuggestions caps the did-you-mean list.
const maxSuggestions = 3

// Suggest returns the candidates closest to name, best first.
func Suggest(name string, candidates []string) []string {
	if name == "" {
		return nil
	}

	type scored struct {
		name     string
		distance int
	}

	lower := strings.ToLower(name)
	limit := len(name)/3 + 1
	if limit < 2 {
		limit = 2
	}

	var matches []scored
	for _, candidate := range candidates {
		if candidate == name {
			continue
		}
		candLower := strings.ToLower(candidate)
		distance := levenshtein.ComputeDistance(lower, candLower)
		if distance <= limit || strings.HasPrefix(candLower, lower) {
			matches = append(matches, scored{name: candidate, distance: distance})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}

// ValidateName checks a gadget name and proposes a slug when it is invalid.
func ValidateName(name string) error {
	if command.ValidName(name) {
		return nil
	}
	return &InvalidNameError{Name: name, Suggestion: SuggestName(name)}
}

// SuggestName turns free text into a valid gadget name, or "" if nothing
// usable remains.
func SuggestName(name string) string {
	candidate := slug.Make(name)
	if !command.ValidName(candidate) {
		return ""
	}
	return candidate
}
