package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrConfigExists is returned when a config file is already present.
var ErrConfigExists = errors.New("config file already exists")

const defaultConfigTemplate = `# GoGoGadget Configuration File
#
# Values can be overridden with GOGO_* environment variables,
# e.g. GOGO_STORE_BACKEND=sqlite or GOGO_LOGGING_LEVEL=debug.

store:
  # file keeps gadgets in a JSON map; sqlite adds change history.
  backend: %s
  path: %s
  db_path: %s

logging:
  level: warn
  format: auto

run:
  # Working directory for gadget commands (default: current directory).
  dir: ""
  # Extra KEY=VALUE environment entries.
  env: []

tui:
  theme: default
`

// WriteDefault writes a commented default config file to path.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	defaults := DefaultConfig()
	content := fmt.Sprintf(defaultConfigTemplate, defaults.Store.Backend, quote(defaults.Store.Path), quote(defaults.Store.DBPath))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func quote(value string) string {
	return fmt.Sprintf("%q", value)
}
