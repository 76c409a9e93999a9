package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:               "delete <name>",
	Aliases:           []string{"rm"},
	Short:             "Delete a gadget",
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

		if _, err := svc.Get(ctx, name); err != nil {
			return err
		}

		ok, err := confirmAction(ctx, fmt.Sprintf("Delete gadget %q?", name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
			return nil
		}

		if err := svc.Delete(ctx, name); err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), map[string]string{"deleted": name})
		}
		if !quietFlag {
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted gadget %s\n", name)
		}
		return nil
	},
}
