package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/opencode-ai/gogo/internal/models"
	"github.com/opencode-ai/gogo/internal/store"
	"github.com/spf13/cobra"
)

var (
	exportOutput    string
	importOverwrite bool
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	importCmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "replace gadgets that already exist")
}

var exportCmd = &cobra.Command{
	Use:               "export [names...]",
	Short:             "Export gadgets as YAML",
	Long:              "Export all gadgets, or the named ones, as a YAML document that 'gogo import' reads.",
	ValidArgsFunction: completeGadgetNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		svc, s, err := openService(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		var gadgets []*models.Gadget
		if len(args) == 0 {
			if gadgets, err = svc.List(ctx); err != nil {
				return fmt.Errorf("failed to list gadgets: %w", err)
			}
		} else {
			for _, name := range args {
				g, err := svc.Get(ctx, name)
				if err != nil {
					return err
				}
				gadgets = append(gadgets, g)
			}
		}

		out := cmd.OutOrStdout()
		if exportOutput != "" && exportOutput != "-" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", exportOutput, err)
			}
			defer f.Close()
			out = f
		}

		if err := store.Export(out, gadgets); err != nil {
			return err
		}
		if out != cmd.OutOrStdout() && !quietFlag {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d gadgets to %s\n", len(gadgets), exportOutput)
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import gadgets from YAML",
	Long: `Import gadgets from a YAML document written by 'gogo export'. Use "-" to
read from stdin. Existing gadgets are skipped unless --overwrite is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		var in io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()
			in = f
		}

		gadgets, err := store.Import(in)
		if err != nil {
			return err
		}

		svc, s, err := openService(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		result, err := importGadgets(ctx, svc, cmd.ErrOrStderr(), "Importing gadgets", gadgets, importOverwrite)
		if err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), result)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %d, updated %d, skipped %d\n",
			len(result.Created), len(result.Updated), len(result.Skipped))
		for _, name := range result.Skipped {
			fmt.Fprintf(cmd.OutOrStdout(), "  skipped %s (exists; use --overwrite)\n", name)
		}
		return nil
	},
}
