package analyze

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name          string
		command       string
		parameterized string
		suggestions   []Suggestion
	}{
		{
			name:          "strings paths and numbers",
			command:       `grep -rn "TODO" ./src | head -n 20`,
			parameterized: `grep -rn {{str1}} {{path1}} | head -n {{num1}}`,
			suggestions: []Suggestion{
				{Name: "str1", Original: `"TODO"`, Kind: KindString},
				{Name: "path1", Original: "./src", Kind: KindPath},
				{Name: "num1", Original: "20", Kind: KindNumber},
			},
		},
		{
			name:          "expansion and redirect",
			command:       "echo $HOME > /tmp/out.txt 2>&1",
			parameterized: "echo {{var1}} > {{path1}} 2>&1",
			suggestions: []Suggestion{
				{Name: "var1", Original: "$HOME", Kind: KindVariable},
				{Name: "path1", Original: "/tmp/out.txt", Kind: KindPath},
			},
		},
		{
			name:          "repeated argument shares a name",
			command:       "ping -c 5 -i 5 'example.com'",
			parameterized: "ping -c {{num1}} -i {{num1}} {{str1}}",
			suggestions: []Suggestion{
				{Name: "num1", Original: "5", Kind: KindNumber},
				{Name: "str1", Original: "'example.com'", Kind: KindString},
			},
		},
		{
			name:          "existing placeholders are left alone",
			command:       "echo {{name}}",
			parameterized: "echo {{name}}",
			suggestions:   []Suggestion{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Analyze(tt.command)
			require.NoError(t, err)
			require.Equal(t, tt.command, result.Command)
			require.Equal(t, tt.parameterized, result.Parameterized)
			if diff := cmp.Diff(tt.suggestions, result.Suggestions); diff != "" {
				t.Fatalf("suggestions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAnalyzeParseError(t *testing.T) {
	_, err := Analyze("echo 'open")
	require.Error(t, err)
}
