// Package store persists gadgets in a JSON file or a SQLite database.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/opencode-ai/gogo/internal/config"
	"github.com/opencode-ai/gogo/internal/db"
	"github.com/opencode-ai/gogo/internal/models"
	"github.com/spf13/afero"
)

// Store errors.
var (
	ErrNotFound = errors.New("gadget not found")
	ErrExists   = errors.New("gadget already exists")
)

// Store is the persistence boundary for gadgets.
type Store interface {
	// Get returns a copy of the named gadget.
	Get(ctx context.Context, name string) (*models.Gadget, error)

	// List returns all gadgets ordered by name.
	List(ctx context.Context) ([]*models.Gadget, error)

	// Create adds a gadget; it fails with ErrExists if the name is taken.
	Create(ctx context.Context, gadget *models.Gadget) error

	// Update replaces the gadget stored under oldName. gadget.Name may
	// differ from oldName, in which case the gadget is renamed.
	Update(ctx context.Context, oldName string, gadget *models.Gadget) error

	// Delete removes the named gadget.
	Delete(ctx context.Context, name string) error

	Close() error
}

// RunRecorder is implemented by stores that keep a run history.
type RunRecorder interface {
	RecordRun(ctx context.Context, name, rendered string, exitCode int, elapsed time.Duration, runErr error) error
}

// HistoryReader is implemented by stores that keep an event log.
type HistoryReader interface {
	History(ctx context.Context, name string, limit int) ([]*models.Event, error)
}

// Open opens the backend selected by cfg.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	switch strings.ToLower(cfg.Store.Backend) {
	case config.BackendFile, "":
		return NewFileStore(afero.NewOsFs(), cfg.Store.Path)
	case config.BackendSQLite:
		database, err := db.Open(cfg.Store.DBPath)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		return NewSQLStore(database), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func notFound(name string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}

func exists(name string) error {
	return fmt.Errorf("%w: %s", ErrExists, name)
}
