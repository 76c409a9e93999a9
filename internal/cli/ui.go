// Package cli provides TUI launch commands.
package cli

import (
	"os"

	"github.com/opencode-ai/gogo/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var uiNew bool

func init() {
	rootCmd.AddCommand(uiCmd)

	uiCmd.Flags().BoolVar(&uiNew, "new", false, "start with an empty gadget")
}

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Browse and edit gadgets in the terminal UI",
	Long: `Launch the gadget editor.

Pick a gadget to edit it. Variable fields follow the command as you type:
renaming {{placeholders}} in place keeps their descriptions and defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if IsNonInteractive() {
			return tuiPreflight()
		}

		ctx := commandContext(cmd)
		svc, s, err := openService(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		return tui.Run(ctx, svc, tui.Options{Theme: GetConfig().TUI.Theme, New: uiNew})
	},
}

func tuiPreflight() error {
	return &PreflightError{
		Message:  "the editor requires an interactive terminal",
		Hint:     "Run without --non-interactive and with a TTY, or use the edit flags",
		NextStep: "gogo edit --help",
	}
}

func hasTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
