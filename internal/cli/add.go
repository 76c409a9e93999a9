package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/opencode-ai/gogo/internal/command"
	"github.com/opencode-ai/gogo/internal/gadget"
	"github.com/opencode-ai/gogo/internal/prompt"
	"github.com/spf13/cobra"
)

var (
	addCommand     string
	addDescription string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addCommand, "command", "c", "", "command template, with {{name}} placeholders")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "gadget description")
}

var addCmd = &cobra.Command{
	Use:   "add [name] [variable descriptions...]",
	Short: "Add a new gadget",
	Long: `Add a new gadget.

Descriptions after the name are matched to the command's variables in the
order they first appear. Anything missing is prompted for when running in a
terminal.`,
	Example: `  # Fully specified
  gogo add find-big --command 'find {{dir}} -size +{{size}}' "where to look" "minimum size"

  # Prompt for the rest
  gogo add`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		svc, s, err := openService(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		driver := promptDriver()
		in, err := buildAddInput(ctx, driver, args)
		if err != nil {
			return err
		}

		g, err := svc.Add(ctx, in)
		if err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), g)
		}
		if !quietFlag {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", colorize("Gadget added.", colorGreen))
		}
		return printGadget(cmd.OutOrStdout(), g)
	},
}

// buildAddInput fills an AddInput from args and flags, prompting for the
// missing parts when driver is non-nil.
func buildAddInput(ctx context.Context, driver prompt.Driver, args []string) (gadget.AddInput, error) {
	in := gadget.AddInput{
		Command:     addCommand,
		Description: addDescription,
	}
	if len(args) > 0 {
		in.Name = args[0]
		in.Descriptions = args[1:]
	}

	if driver == nil {
		if in.Name == "" || strings.TrimSpace(in.Command) == "" {
			return in, &PreflightError{
				Message:  "a gadget name and --command are required",
				Hint:     "Pass them as arguments or run in a terminal to be prompted",
				NextStep: "gogo add <name> --command '<command>'",
			}
		}
		return in, nil
	}

	var err error
	if strings.TrimSpace(in.Command) == "" {
		in.Command, err = askRequired(ctx, driver, "Command (use {{name}} for values you fill in each run):")
		if err != nil {
			return in, err
		}
	}

	for in.Name == "" || gadget.ValidateName(in.Name) != nil {
		if in.Name != "" {
			logWarning(gadget.ValidateName(in.Name).Error())
		}
		in.Name, err = askRequired(ctx, driver, "Gadget name:")
		if err != nil {
			return in, err
		}
	}

	if in.Description == "" {
		in.Description, err = driver.Input(ctx, prompt.InputConfig{Message: "Description:"})
		if err != nil {
			return in, err
		}
		in.Description = strings.TrimSpace(in.Description)
	}

	if len(in.Descriptions) == 0 {
		for _, name := range command.Parse(in.Command).DistinctVariables() {
			desc, err := driver.Input(ctx, prompt.InputConfig{
				Message: fmt.Sprintf("Describe variable '%s':", name),
			})
			if err != nil {
				return in, err
			}
			in.Descriptions = append(in.Descriptions, strings.TrimSpace(desc))
		}
	}
	return in, nil
}

func askRequired(ctx context.Context, driver prompt.Driver, message string) (string, error) {
	for {
		answer, err := driver.Input(ctx, prompt.InputConfig{Message: message})
		if err != nil {
			return "", err
		}
		if answer = strings.TrimSpace(answer); answer != "" {
			return answer, nil
		}
	}
}
