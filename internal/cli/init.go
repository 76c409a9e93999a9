package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/opencode-ai/gogo/internal/builtin"
	"github.com/opencode-ai/gogo/internal/config"
	"github.com/spf13/cobra"
)

var (
	initForce      bool
	initNoBuiltins bool
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
	initCmd.Flags().BoolVar(&initNoBuiltins, "no-builtins", false, "don't install the starter gadgets")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file and install starter gadgets",
	Long: `Set up gogo for first use.

Writes a commented config file and adds a few starter gadgets. Gadgets that
already exist are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		results := []initResult{createConfigFile()}
		if !initNoBuiltins {
			results = append(results, installBuiltins(ctx, cmd.ErrOrStderr()))
		}

		if IsJSONOutput() || IsJSONLOutput() {
			if err := WriteOutput(cmd.OutOrStdout(), results); err != nil {
				return err
			}
		} else {
			t := newTable("STEP", "STATUS", "DETAILS")
			for _, r := range results {
				t.add(r.Step, formatInitStatus(r.Status), r.Message)
			}
			if err := t.render(cmd.OutOrStdout()); err != nil {
				return err
			}
		}

		for _, r := range results {
			if r.Status == "failed" {
				return fmt.Errorf("init failed at %s: %s", r.Step, r.Message)
			}
		}
		return nil
	},
}

type initResult struct {
	Step    string `json:"step"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func configFilePath() string {
	if configFile != "" {
		return configFile
	}
	return config.DefaultPath()
}

func createConfigFile() initResult {
	path := configFilePath()
	err := config.WriteDefault(path, initForce)
	switch {
	case err == nil:
		return initResult{Step: "config", Status: "done", Message: "wrote " + path}
	case errors.Is(err, config.ErrConfigExists):
		return initResult{Step: "config", Status: "skipped", Message: path + " exists (use --force to overwrite)"}
	default:
		return initResult{Step: "config", Status: "failed", Message: err.Error()}
	}
}

func installBuiltins(ctx context.Context, out io.Writer) initResult {
	gadgets, err := builtin.Gadgets()
	if err != nil {
		return initResult{Step: "gadgets", Status: "failed", Message: err.Error()}
	}

	svc, s, err := openService(ctx)
	if err != nil {
		return initResult{Step: "gadgets", Status: "failed", Message: err.Error()}
	}
	defer s.Close()

	result, err := importGadgets(ctx, svc, out, "Installing starter gadgets", gadgets, false)
	if err != nil {
		return initResult{Step: "gadgets", Status: "failed", Message: err.Error()}
	}

	if len(result.Created) == 0 {
		return initResult{Step: "gadgets", Status: "skipped", Message: "starter gadgets already installed"}
	}
	msg := fmt.Sprintf("added %s", strings.Join(result.Created, ", "))
	if len(result.Skipped) > 0 {
		msg += fmt.Sprintf("; kept %d existing", len(result.Skipped))
	}
	return initResult{Step: "gadgets", Status: "done", Message: msg}
}

func formatInitStatus(status string) string {
	switch status {
	case "done":
		return colorize(status, colorGreen)
	case "failed":
		return colorize(status, colorRed)
	default:
		return colorize(status, colorYellow)
	}
}
