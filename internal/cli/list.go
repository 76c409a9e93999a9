package cli

import (
	"fmt"

	"github.com/opencode-ai/gogo/internal/command"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(variablesCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List gadgets",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		svc, s, err := openService(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		gadgets, err := svc.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list gadgets: %w", err)
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), gadgets)
		}

		if len(gadgets) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No gadgets yet. Run 'gogo init' for starters or 'gogo add' to create one.")
			return nil
		}

		return gadgetTable(gadgets).render(cmd.OutOrStdout())
	},
}

var infoCmd = &cobra.Command{
	Use:               "info <name>",
	Aliases:           []string{"show"},
	Short:             "Show a gadget",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeGadgetNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		svc, s, err := openService(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		g, err := svc.Get(ctx, args[0])
		if err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), g)
		}
		if err := printGadget(cmd.OutOrStdout(), g); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nCreated: %s\nUpdated: %s\n", formatTime(g.CreatedAt), formatTime(g.UpdatedAt))
		return nil
	},
}

var variablesCmd = &cobra.Command{
	Use:               "variables <name>",
	Aliases:           []string{"vars"},
	Short:             "List a gadget's variables",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeGadgetNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		svc, s, err := openService(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		g, err := svc.Get(ctx, args[0])
		if err != nil {
			return err
		}

		vars := g.Variables
		if vars == nil {
			vars = []command.Variable{}
		}
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), vars)
		}
		if len(vars) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s has no variables.\n", g.Name)
			return nil
		}
		return variableTable(vars).render(cmd.OutOrStdout())
	},
}
