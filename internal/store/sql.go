package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/opencode-ai/gogo/internal/db"
	"github.com/opencode-ai/gogo/internal/events"
	"github.com/opencode-ai/gogo/internal/logging"
	"github.com/opencode-ai/gogo/internal/models"
	"github.com/rs/zerolog"
)

// SQLStore keeps gadgets in SQLite and logs every change in the same
// transaction.
type SQLStore struct {
	db      *db.DB
	gadgets *db.GadgetRepository
	events  *db.EventRepository
	logger  zerolog.Logger
}

// NewSQLStore wraps a migrated database.
func NewSQLStore(database *db.DB) *SQLStore {
	return &SQLStore{
		db:      database,
		gadgets: db.NewGadgetRepository(database),
		events:  db.NewEventRepository(database),
		logger:  logging.Component("store"),
	}
}

// txEvents writes events through an open transaction.
type txEvents struct {
	repo *db.EventRepository
	tx   *sql.Tx
}

func (t txEvents) Create(ctx context.Context, event *models.Event) error {
	return t.repo.CreateWithTx(ctx, t.tx, event)
}

// Get returns the named gadget.
func (s *SQLStore) Get(ctx context.Context, name string) (*models.Gadget, error) {
	gadget, err := s.gadgets.Get(ctx, name)
	if err != nil {
		return nil, translate(err, name)
	}
	return gadget, nil
}

// List returns all gadgets ordered by name.
func (s *SQLStore) List(ctx context.Context) ([]*models.Gadget, error) {
	return s.gadgets.List(ctx)
}

// Create inserts a new gadget.
func (s *SQLStore) Create(ctx context.Context, gadget *models.Gadget) error {
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.gadgets.GetWithTx(ctx, tx, gadget.Name); err == nil {
			return exists(gadget.Name)
		} else if !errors.Is(err, db.ErrGadgetNotFound) {
			return err
		}

		if err := s.gadgets.SaveWithTx(ctx, tx, gadget); err != nil {
			return err
		}
		return events.LogGadgetSaved(ctx, txEvents{repo: s.events, tx: tx}, nil, gadget)
	})
	if err != nil {
		return translate(err, gadget.Name)
	}

	s.logger.Debug().Str("gadget", gadget.Name).Msg("gadget created")
	return nil
}

// Update replaces the gadget stored under oldName, renaming it if needed.
func (s *SQLStore) Update(ctx context.Context, oldName string, gadget *models.Gadget) error {
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		previous, err := s.gadgets.GetWithTx(ctx, tx, oldName)
		if err != nil {
			return err
		}
		if err := s.gadgets.RenameWithTx(ctx, tx, oldName, gadget.Name); err != nil {
			return err
		}

		gadget.CreatedAt = previous.CreatedAt
		if err := s.gadgets.SaveWithTx(ctx, tx, gadget); err != nil {
			return err
		}
		return events.LogGadgetSaved(ctx, txEvents{repo: s.events, tx: tx}, previous, gadget)
	})
	if err != nil {
		if errors.Is(err, db.ErrGadgetExists) {
			return exists(gadget.Name)
		}
		return translate(err, oldName)
	}

	s.logger.Debug().Str("gadget", gadget.Name).Str("previous", oldName).Msg("gadget updated")
	return nil
}

// Delete removes a gadget and its variables.
func (s *SQLStore) Delete(ctx context.Context, name string) error {
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := s.gadgets.DeleteWithTx(ctx, tx, name); err != nil {
			return err
		}
		return events.LogGadgetDeleted(ctx, txEvents{repo: s.events, tx: tx}, name)
	})
	if err != nil {
		return translate(err, name)
	}

	s.logger.Debug().Str("gadget", name).Msg("gadget deleted")
	return nil
}

// RecordRun appends a gadget.ran event.
func (s *SQLStore) RecordRun(ctx context.Context, name, rendered string, exitCode int, elapsed time.Duration, runErr error) error {
	return events.LogGadgetRan(ctx, s.events, name, rendered, exitCode, elapsed, runErr)
}

// History returns the newest events for a gadget.
func (s *SQLStore) History(ctx context.Context, name string, limit int) ([]*models.Event, error) {
	return s.events.ListByGadget(ctx, name, limit)
}

// Close closes the database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func translate(err error, name string) error {
	switch {
	case errors.Is(err, db.ErrGadgetNotFound):
		return notFound(name)
	case errors.Is(err, db.ErrGadgetExists):
		return exists(name)
	default:
		return err
	}
}
