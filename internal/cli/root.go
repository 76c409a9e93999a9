// Package cli implements the gogo command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/opencode-ai/gogo/internal/config"
	"github.com/opencode-ai/gogo/internal/gadget"
	"github.com/opencode-ai/gogo/internal/logging"
	"github.com/opencode-ai/gogo/internal/store"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile     string
	storeBackend   string
	jsonOutput     bool
	jsonlOutput    bool
	nonInteractive bool
	yesFlag        bool
	logLevel       string
	logFormat      string
	quietFlag      bool
	noColor        bool

	appConfig *config.Config
)

// openStoreFunc is swapped in tests.
var openStoreFunc = func(ctx context.Context, cfg *config.Config) (store.Store, error) {
	return store.Open(ctx, cfg)
}

var rootCmd = &cobra.Command{
	Use:   "gogo",
	Short: "Save shell commands as reusable gadgets",
	Long: `gogo saves shell commands as named gadgets with {{placeholders}}.

Each time a gadget runs, gogo fills its placeholders from flags, prompts or
defaults and executes the result. Run a gadget with 'gogo run <name>' or
simply 'gogo <name>'.`,
	Example: `  # Save a gadget with two described variables
  gogo add ping-host --command 'ping -c {{count}} {{host}}' "packet count" "target host"

  # Run it, answering the prompts
  gogo ping-host

  # Run it without prompts
  gogo run ping-host --set count=3 --set host=example.com`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	ValidArgsFunction: completeGadgetNames,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runShortcut(cmd, args[0], args[1:])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", "", "gadget store backend (file, sqlite)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&jsonlOutput, "jsonl", false, "output in JSON Lines format")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "never prompt; use defaults or fail")
	rootCmd.PersistentFlags().BoolVarP(&yesFlag, "yes", "y", false, "answer yes to confirmations")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (auto, console, json)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "only print errors and command output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the CLI and prints any error to stderr.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func initConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return &PreflightError{
			Message:  fmt.Sprintf("failed to load config: %v", err),
			Hint:     "Fix the config file or point --config at another one",
			NextStep: "gogo init --force",
		}
	}

	level := cfg.Logging.Level
	if quietFlag {
		level = "error"
	}
	logging.Init(logging.Config{
		Level:   level,
		Format:  cfg.Logging.Format,
		NoColor: noColor,
	})

	appConfig = cfg
	logger := logging.Component("cli")
	logger.Debug().
		Str("config", cfg.File).
		Str("store", cfg.Store.Backend).
		Msg("configuration loaded")
	return nil
}

// GetConfig returns the loaded configuration, or the defaults before load.
func GetConfig() *config.Config {
	if appConfig == nil {
		return config.DefaultConfig()
	}
	return appConfig
}

// openService opens the configured store and wraps it in a gadget service.
// The caller closes the returned store.
func openService(ctx context.Context) (*gadget.Service, store.Store, error) {
	s, err := openStoreFunc(ctx, GetConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open gadget store: %w", err)
	}
	return gadget.NewService(s), s, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func completeGadgetNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if appConfig == nil {
		if err := initConfig(cmd); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
	}

	ctx := commandContext(cmd)
	svc, s, err := openService(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer s.Close()

	names, err := svc.Names(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
