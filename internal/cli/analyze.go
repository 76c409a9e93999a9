package cli

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/gogo/internal/analyze"
	"github.com/opencode-ai/gogo/internal/command"
	"github.com/opencode-ai/gogo/internal/gadget"
	"github.com/opencode-ai/gogo/internal/prompt"
	"github.com/spf13/cobra"
)

var (
	analyzeSave        string
	analyzeDescription string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeSave, "save", "", "save the suggested template as a gadget with this name")
	analyzeCmd.Flags().StringVarP(&analyzeDescription, "description", "d", "", "description for --save")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [command...]",
	Short: "Suggest placeholders for a shell command",
	Long: `Parse a shell command and suggest which arguments to turn into
{{placeholders}}: quoted strings, numbers, paths and $VARIABLES.`,
	Example: `  gogo analyze 'grep -rn "TODO" ./src'
  gogo analyze --save find-todo 'grep -rn "TODO" ./src'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		raw := strings.Join(args, " ")
		if strings.TrimSpace(raw) == "" {
			driver := promptDriver()
			if driver == nil {
				return &PreflightError{
					Message:  "no command to analyze",
					NextStep: "gogo analyze -- <command>",
				}
			}
			answer, err := driver.Input(ctx, prompt.InputConfig{Message: "Command to analyze:"})
			if err != nil {
				return err
			}
			raw = strings.TrimSpace(answer)
		}

		result, err := analyze.Analyze(raw)
		if err != nil {
			return err
		}

		if analyzeSave != "" {
			svc, s, err := openService(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			vars := make([]command.Variable, 0, len(result.Suggestions))
			for _, suggestion := range result.Suggestions {
				vars = append(vars, command.Variable{
					Name:        suggestion.Name,
					Description: fmt.Sprintf("was %s", suggestion.Original),
					Default:     command.DefaultValue(suggestion.Original),
				})
			}
			if _, err := svc.Add(ctx, gadget.AddInput{
				Name:        analyzeSave,
				Command:     result.Parameterized,
				Description: analyzeDescription,
				Variables:   vars,
			}); err != nil {
				return err
			}
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), result)
		}
		return printAnalysis(cmd, result)
	},
}

func printAnalysis(cmd *cobra.Command, result *analyze.Result) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", colorize("Original:", colorCyan), result.Command)

	if len(result.Suggestions) == 0 {
		fmt.Fprintln(out, "No variables detected; the command can be saved as-is.")
	} else {
		fmt.Fprintf(out, "%s %s\n\n", colorize("Suggested:", colorCyan), highlightTemplate(command.Parse(result.Parameterized)))
		t := newTable("VARIABLE", "KIND", "FROM").limit(2, 40)
		for _, s := range result.Suggestions {
			t.add(s.Name, string(s.Kind), s.Original)
		}
		if err := t.render(out); err != nil {
			return err
		}
	}

	if analyzeSave != "" {
		fmt.Fprintf(out, "\n%s\n", colorize("Saved as "+analyzeSave+".", colorGreen))
		return nil
	}
	fmt.Fprintln(out, "\nSave it with: gogo analyze --save <name> '<command>'")
	return nil
}
