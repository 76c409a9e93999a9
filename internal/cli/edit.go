package cli

import (
	"fmt"

	"github.com/opencode-ai/gogo/internal/gadget"
	"github.com/opencode-ai/gogo/internal/tui"
	"github.com/spf13/cobra"
)

var (
	editName        string
	editDescription string
	editCommand     string
	editTUI         bool

	editVar             string
	editVarName         string
	editVarDescription  string
	editVarDefault      string
	editVarClearDefault bool
)

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVar(&editName, "name", "", "new gadget name")
	editCmd.Flags().StringVar(&editDescription, "description", "", "new gadget description")
	editCmd.Flags().StringVar(&editCommand, "command", "", "new command template")
	editCmd.Flags().BoolVar(&editTUI, "tui", false, "open the interactive editor")

	editCmd.Flags().StringVar(&editVar, "var", "", "variable to change")
	editCmd.Flags().StringVar(&editVarName, "var-name", "", "rename the variable (rewrites the command)")
	editCmd.Flags().StringVar(&editVarDescription, "var-description", "", "new variable description")
	editCmd.Flags().StringVar(&editVarDefault, "var-default", "", "new variable default")
	editCmd.Flags().BoolVar(&editVarClearDefault, "clear-default", false, "remove the variable default")
}

var editCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Edit a gadget",
	Long: `Edit a gadget's name, description, command or variables.

A new command keeps the descriptions and defaults of variables that were only
renamed in place. Variable flags apply to the variable named by --var. If the
result does not validate nothing is saved.`,
	Example: `  # Rename a placeholder and keep its description
  gogo edit ping-host --command 'ping -c {{count}} {{target}}'

  # Change one variable
  gogo edit ping-host --var count --var-default 3

  # Open the interactive editor
  gogo edit ping-host --tui`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeGadgetNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		name := args[0]

		svc, s, err := openService(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		if editTUI {
			if IsNonInteractive() {
				return tuiPreflight()
			}
			return tui.Run(ctx, svc, tui.Options{Theme: GetConfig().TUI.Theme, Gadget: name})
		}

		flags := cmd.Flags()
		in := gadget.EditInput{}
		if flags.Changed("name") {
			in.Name = &editName
		}
		if flags.Changed("description") {
			in.Description = &editDescription
		}
		if flags.Changed("command") {
			in.Command = &editCommand
		}

		update, hasUpdate, err := variableUpdate(cmd)
		if err != nil {
			return err
		}
		if in.Name == nil && in.Description == nil && in.Command == nil && !hasUpdate {
			return &PreflightError{
				Message:  "nothing to change",
				Hint:     "Pass --name, --description, --command or --var with a variable flag",
				NextStep: fmt.Sprintf("gogo edit %s --tui", name),
			}
		}

		if hasUpdate {
			in.Variable = &update
		}
		g, err := svc.Edit(ctx, name, in)
		if err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), g)
		}
		if !quietFlag {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", colorize("Gadget updated.", colorGreen))
		}
		return printGadget(cmd.OutOrStdout(), g)
	},
}

func variableUpdate(cmd *cobra.Command) (gadget.VariableUpdate, bool, error) {
	flags := cmd.Flags()
	update := gadget.VariableUpdate{Variable: editVar, ClearDefault: editVarClearDefault}
	if flags.Changed("var-name") {
		update.Name = &editVarName
	}
	if flags.Changed("var-description") {
		update.Description = &editVarDescription
	}
	if flags.Changed("var-default") {
		update.Default = &editVarDefault
	}

	hasChange := update.Name != nil || update.Description != nil || update.Default != nil || update.ClearDefault
	switch {
	case editVar == "" && hasChange:
		return update, false, &PreflightError{
			Message: "variable flags need --var",
			Hint:    "Name the variable to change with --var <name>",
		}
	case editVar != "" && !hasChange:
		return update, false, &PreflightError{
			Message: fmt.Sprintf("nothing to change for variable %q", editVar),
			Hint:    "Pass --var-name, --var-description, --var-default or --clear-default",
		}
	}
	return update, hasChange, nil
}
