package command

// Variable is the user-facing metadata attached to one distinct placeholder.
type Variable struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Default     *string `json:"default" yaml:"default,omitempty"`
}

// DefaultValue returns a pointer suitable for Variable.Default.
func DefaultValue(value string) *string {
	return &value
}

// HasDefault reports whether a default value is set.
func (v Variable) HasDefault() bool {
	return v.Default != nil
}

// DefaultOr returns the default value, or fallback when none is set.
func (v Variable) DefaultOr(fallback string) string {
	if v.Default == nil {
		return fallback
	}
	return *v.Default
}

// Clone returns a deep copy of the variable.
func (v Variable) Clone() Variable {
	if v.Default != nil {
		v.Default = DefaultValue(*v.Default)
	}
	return v
}

// Variables returns every placeholder name in order of appearance,
// including repeats.
func (t Template) Variables() []string {
	names := make([]string, 0, len(t.segments))
	for _, seg := range t.segments {
		if seg.IsPlaceholder() {
			names = append(names, seg.Text)
		}
	}
	return names
}

// DistinctVariables returns placeholder names in first-occurrence order.
func (t Template) DistinctVariables() []string {
	return distinct(t.Variables())
}

// HasVariables reports whether the template contains any placeholder.
func (t Template) HasVariables() bool {
	for _, seg := range t.segments {
		if seg.IsPlaceholder() {
			return true
		}
	}
	return false
}

func distinct(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Names returns the names of vars in order.
func Names(vars []Variable) []string {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	return names
}

// CloneVariables deep-copies a metadata list.
func CloneVariables(vars []Variable) []Variable {
	if vars == nil {
		return nil
	}
	out := make([]Variable, len(vars))
	for i, v := range vars {
		out[i] = v.Clone()
	}
	return out
}
