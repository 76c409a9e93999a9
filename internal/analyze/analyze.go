// Package analyze suggests placeholders for a plain shell command.
package analyze

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/opencode-ai/gogo/internal/runner"
	"mvdan.cc/sh/v3/syntax"
)

// Kind classifies a suggested placeholder.
type Kind string

const (
	KindString   Kind = "str"
	KindNumber   Kind = "num"
	KindPath     Kind = "path"
	KindVariable Kind = "var"
)

// Suggestion is one argument worth turning into a placeholder.
type Suggestion struct {
	Name     string `json:"name"`
	Original string `json:"original"`
	Kind     Kind   `json:"kind"`
}

// Result is the outcome of Analyze.
type Result struct {
	Command       string       `json:"command"`
	Parameterized string       `json:"parameterized"`
	Suggestions   []Suggestion `json:"suggestions"`
}

type span struct {
	kind       Kind
	start, end int
}

var numberPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// Analyze parses cmd and proposes placeholders for quoted strings, numbers,
// paths and environment expansions in command arguments and redirections.
// Identical arguments share one placeholder.
func Analyze(cmd string) (*Result, error) {
	prog, err := runner.Parse(cmd)
	if err != nil {
		return nil, err
	}

	var spans []span
	syntax.Walk(prog, func(node syntax.Node) bool {
		switch n := node.(type) {
		case *syntax.CallExpr:
			for i, word := range n.Args {
				if i == 0 {
					continue
				}
				if kind, ok := classify(cmd, word); ok {
					spans = append(spans, wordSpan(kind, word))
				}
			}
		case *syntax.Redirect:
			if n.Word != nil && redirectTarget(cmd, n.Word) {
				spans = append(spans, wordSpan(KindPath, n.Word))
			}
		}
		return true
	})
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	result := &Result{Command: cmd, Suggestions: []Suggestion{}}
	counters := make(map[Kind]int)
	byOriginal := make(map[string]string)

	var b strings.Builder
	last := 0
	for _, s := range spans {
		if s.start < last {
			continue
		}
		original := cmd[s.start:s.end]
		name, seen := byOriginal[original]
		if !seen {
			counters[s.kind]++
			name = string(s.kind) + strconv.Itoa(counters[s.kind])
			byOriginal[original] = name
			result.Suggestions = append(result.Suggestions, Suggestion{Name: name, Original: original, Kind: s.kind})
		}
		b.WriteString(cmd[last:s.start])
		b.WriteString("{{" + name + "}}")
		last = s.end
	}
	b.WriteString(cmd[last:])
	result.Parameterized = b.String()
	return result, nil
}

func classify(cmd string, word *syntax.Word) (Kind, bool) {
	if len(word.Parts) != 1 || strings.Contains(source(cmd, word), "{{") {
		return "", false
	}
	switch part := word.Parts[0].(type) {
	case *syntax.SglQuoted, *syntax.DblQuoted:
		return KindString, true
	case *syntax.ParamExp:
		return KindVariable, true
	case *syntax.Lit:
		if numberPattern.MatchString(part.Value) {
			return KindNumber, true
		}
		if likelyPath(part.Value) {
			return KindPath, true
		}
	}
	return "", false
}

// redirectTarget excludes descriptor duplications such as 2>&1.
func redirectTarget(cmd string, word *syntax.Word) bool {
	lit := word.Lit()
	if lit == "" || lit == "-" || numberPattern.MatchString(lit) {
		return false
	}
	return !strings.Contains(source(cmd, word), "{{")
}

func likelyPath(s string) bool {
	if len(s) < 3 || strings.HasPrefix(s, "-") {
		return false
	}
	return strings.Contains(s, "/") || strings.Contains(s, `:\`)
}

func wordSpan(kind Kind, word *syntax.Word) span {
	return span{kind: kind, start: int(word.Pos().Offset()), end: int(word.End().Offset())}
}

func source(cmd string, word *syntax.Word) string {
	s := wordSpan("", word)
	if s.start < 0 || s.end > len(cmd) || s.start > s.end {
		return ""
	}
	return cmd[s.start:s.end]
}
