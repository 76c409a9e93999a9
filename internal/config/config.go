// Package config loads gogo configuration from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// EnvPrefix prefixes configuration environment variables (GOGO_STORE_BACKEND, ...).
const EnvPrefix = "GOGO"

// Config is the full gogo configuration.
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Logging LoggingConfig `mapstructure:"logging"`
	Run     RunConfig     `mapstructure:"run"`
	TUI     TUIConfig     `mapstructure:"tui"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// StoreConfig selects where gadgets are persisted.
type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
	DBPath  string `mapstructure:"db_path"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RunConfig controls how rendered commands are executed.
type RunConfig struct {
	// Dir is the working directory; empty means the current directory.
	Dir string `mapstructure:"dir"`

	// Env adds KEY=VALUE pairs to the environment of every run. A list
	// keeps key case, which viper folds for maps.
	Env []string `mapstructure:"env"`
}

// TUIConfig controls the interactive editor.
type TUIConfig struct {
	Theme string `mapstructure:"theme"`
}

// configDirFunc is swapped in tests.
var configDirFunc = defaultConfigDir

// Dir returns the gogo configuration directory.
func Dir() string {
	return configDirFunc()
}

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "GoGoGadget")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	dir := Dir()
	return &Config{
		Store: StoreConfig{
			Backend: BackendFile,
			Path:    filepath.Join(dir, "gadgets.json"),
			DBPath:  filepath.Join(dir, "gogo.db"),
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "auto",
		},
		Run: RunConfig{
			Env: []string{},
		},
		TUI: TUIConfig{
			Theme: "default",
		},
	}
}

// FlagBindings maps config keys to persistent flag names.
var FlagBindings = map[string]string{
	"store.backend":  "store",
	"logging.level":  "log-level",
	"logging.format": "log-format",
}

// Load reads configuration from path (or the default location when empty),
// GOGO_* environment variables, and any changed flags in flags.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range FlagBindings {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case !explicit && errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if used := v.ConfigFileUsed(); used != "" {
		if _, err := os.Stat(used); err == nil {
			cfg.File = used
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("store.backend", cfg.Store.Backend)
	v.SetDefault("store.path", cfg.Store.Path)
	v.SetDefault("store.db_path", cfg.Store.DBPath)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("run.dir", cfg.Run.Dir)
	v.SetDefault("run.env", cfg.Run.Env)
	v.SetDefault("tui.theme", cfg.TUI.Theme)
}

func (c *Config) normalize() {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	c.Store.Path = expandHome(strings.TrimSpace(c.Store.Path))
	c.Store.DBPath = expandHome(strings.TrimSpace(c.Store.DBPath))
	c.Run.Dir = expandHome(strings.TrimSpace(c.Run.Dir))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Run.Env == nil {
		c.Run.Env = []string{}
	}
}

// Validate checks the configuration for unsupported values.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the file backend")
		}
	case BackendSQLite:
		if c.Store.DBPath == "" {
			return fmt.Errorf("store.db_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q (expected %s or %s)", c.Store.Backend, BackendFile, BackendSQLite)
	}

	switch c.Logging.Format {
	case "", "auto", "console", "text", "json":
	default:
		return fmt.Errorf("unknown logging format %q", c.Logging.Format)
	}

	for _, pair := range c.Run.Env {
		if key, _, ok := strings.Cut(pair, "="); !ok || key == "" {
			return fmt.Errorf("run.env entry %q must be KEY=VALUE", pair)
		}
	}
	return nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
