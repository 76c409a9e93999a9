package command

import "slices"

// Reconcile carries variable metadata from an edited template onto its new
// text and returns one entry per distinct variable of next, in first-occurrence
// order.
//
// When only placeholder names changed (the literal text and the number of
// placeholders are identical) metadata follows position: the i-th distinct
// variable of next inherits the description and default of the i-th distinct
// variable of prev. Any other edit matches by name, and names without prior
// metadata start blank. Metadata for names that disappeared is dropped.
func Reconcile(prev Template, prevVars []Variable, next Template) []Variable {
	if renamedOnly(prev, next) {
		return matchByPosition(prev, prevVars, next)
	}
	return MatchByName(prevVars, next)
}

func renamedOnly(prev, next Template) bool {
	return len(prev.Variables()) == len(next.Variables()) &&
		slices.Equal(prev.Literals(), next.Literals())
}

func matchByPosition(prev Template, prevVars []Variable, next Template) []Variable {
	prevNames := prev.DistinctVariables()
	byName := indexByName(prevVars)

	names := next.DistinctVariables()
	out := make([]Variable, 0, len(names))
	for i, name := range names {
		v := Variable{Name: name}
		if i < len(prevNames) {
			if old, ok := byName[prevNames[i]]; ok {
				v = old.Clone()
			} else if i < len(prevVars) {
				v = prevVars[i].Clone()
			}
			v.Name = name
		}
		out = append(out, v)
	}
	return out
}

// MatchByName builds metadata for the distinct variables of tpl, reusing
// entries of vars with the same name and blank entries otherwise.
func MatchByName(vars []Variable, tpl Template) []Variable {
	byName := indexByName(vars)

	names := tpl.DistinctVariables()
	out := make([]Variable, 0, len(names))
	for _, name := range names {
		if old, ok := byName[name]; ok {
			out = append(out, old.Clone())
			continue
		}
		out = append(out, Variable{Name: name})
	}
	return out
}

// Blank returns metadata with empty descriptions and no defaults for names.
func Blank(names []string) []Variable {
	out := make([]Variable, len(names))
	for i, name := range names {
		out[i] = Variable{Name: name}
	}
	return out
}

// Aligned reports whether vars names the distinct variables of tpl one to
// one and in order.
func Aligned(tpl Template, vars []Variable) bool {
	return slices.Equal(tpl.DistinctVariables(), Names(vars))
}

// indexByName keeps the first entry for each name.
func indexByName(vars []Variable) map[string]Variable {
	byName := make(map[string]Variable, len(vars))
	for _, v := range vars {
		if _, ok := byName[v.Name]; ok {
			continue
		}
		byName[v.Name] = v
	}
	return byName
}
