package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/opencode-ai/gogo/internal/gadget"
	"github.com/opencode-ai/gogo/internal/logging"
	"github.com/opencode-ai/gogo/internal/models"
	"github.com/opencode-ai/gogo/internal/prompt"
	"github.com/opencode-ai/gogo/internal/runner"
	"github.com/opencode-ai/gogo/internal/store"
	"github.com/spf13/cobra"
)

var (
	runSet    []string
	runDryRun bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArrayVarP(&runSet, "set", "s", nil, "variable value as name=value (repeatable)")
	runCmd.Flags().BoolVarP(&runDryRun, "dry-run", "n", false, "print the rendered command without running it")
}

var runCmd = &cobra.Command{
	Use:   "run <name> [-- --variable value ...]",
	Short: "Run a gadget",
	Long: `Fill in a gadget's variables and run the resulting command.

Values come from --set flags or "--name value" pairs after "--". Anything
still missing is prompted for; an empty answer uses the variable's default.
Without a terminal a variable with no value and no default is an error.`,
	Example: `  gogo run ping-host --set host=example.com
  gogo run ping-host -- --host example.com --count 3
  gogo run ping-host --dry-run --set host=example.com`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeGadgetNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGadget(cmd, args[0], runSet, args[1:], runDryRun)
	},
}

// runShortcut handles "gogo <name>", which runs the gadget when no command
// of that name exists.
func runShortcut(cmd *cobra.Command, name string, rest []string) error {
	err := runGadget(cmd, name, nil, rest, false)

	var notFound *gadget.NotFoundError
	if errors.As(err, &notFound) {
		if commands := cmd.SuggestionsFor(name); len(commands) > 0 {
			return &PreflightError{
				Message:  fmt.Sprintf("unknown command or gadget %q", name),
				Hint:     fmt.Sprintf("Did you mean the %q command?", commands[0]),
				NextStep: "gogo --help",
			}
		}
	}
	return err
}

func runGadget(cmd *cobra.Command, name string, set, passthrough []string, dryRun bool) error {
	ctx := commandContext(cmd)

	svc, s, err := openService(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	g, err := svc.Get(ctx, name)
	if err != nil {
		return err
	}

	provided, err := collectProvided(g, set, passthrough)
	if err != nil {
		return err
	}

	values, err := prompt.Collect(ctx, promptDriver(), g.Variables, provided)
	if err != nil {
		var missing *prompt.MissingValueError
		if errors.As(err, &missing) {
			return &PreflightError{
				Message:  err.Error(),
				Hint:     "Pass the value with --set or run in a terminal to be prompted",
				NextStep: fmt.Sprintf("gogo run %s --set %s=<value>", g.Name, missing.Name),
			}
		}
		return err
	}

	rendered := g.Template().Render(values)
	if dryRun {
		return writeRendered(cmd.OutOrStdout(), g, rendered)
	}

	if !quietFlag && !IsJSONOutput() && !IsJSONLOutput() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", colorize(">", colorCyan), rendered)
	}

	cfg := GetConfig()
	r := runner.New(runner.Options{
		Dir:    cfg.Run.Dir,
		Env:    cfg.Run.Env,
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})

	start := time.Now()
	runErr := r.Run(ctx, rendered)
	recordRun(s, g.Name, rendered, runner.ExitCode(runErr), time.Since(start), runErr)
	return runErr
}

func writeRendered(w io.Writer, g *models.Gadget, rendered string) error {
	if IsJSONOutput() || IsJSONLOutput() {
		return WriteOutput(w, map[string]string{"gadget": g.Name, "command": rendered})
	}
	_, err := fmt.Fprintln(w, rendered)
	return err
}

// recordRun logs the run in stores that keep history. The context is fresh
// so an interrupted run is still recorded.
func recordRun(s store.Store, name, rendered string, exitCode int, elapsed time.Duration, runErr error) {
	recorder, ok := s.(store.RunRecorder)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := recorder.RecordRun(ctx, name, rendered, exitCode, elapsed, runErr); err != nil {
		logger := logging.Component("cli")
		logger.Warn().Err(err).Str("gadget", name).Msg("failed to record run")
	}
}
