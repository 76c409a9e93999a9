package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/opencode-ai/gogo/internal/command"
	"github.com/opencode-ai/gogo/internal/models"
)

// Gadget repository errors.
var (
	ErrGadgetNotFound = errors.New("gadget not found")
	ErrGadgetExists   = errors.New("gadget already exists")
	ErrInvalidGadget  = errors.New("invalid gadget")
)

// GadgetRepository handles gadget persistence.
type GadgetRepository struct {
	db *DB
}

type queryer interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// NewGadgetRepository creates a new GadgetRepository.
func NewGadgetRepository(db *DB) *GadgetRepository {
	return &GadgetRepository{db: db}
}

// Get retrieves a gadget and its variables by name.
func (r *GadgetRepository) Get(ctx context.Context, name string) (*models.Gadget, error) {
	return r.get(ctx, r.db, name)
}

// GetWithTx retrieves a gadget using an existing transaction.
func (r *GadgetRepository) GetWithTx(ctx context.Context, tx *sql.Tx, name string) (*models.Gadget, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction is required")
	}
	return r.get(ctx, tx, name)
}

func (r *GadgetRepository) get(ctx context.Context, q queryer, name string) (*models.Gadget, error) {
	row := q.QueryRowContext(ctx, `
		SELECT name, command, description, created_at, updated_at
		FROM gadgets WHERE name = ?
	`, name)

	gadget, err := scanGadget(row)
	if err != nil {
		return nil, err
	}

	vars, err := r.listVariables(ctx, q, gadget.Name)
	if err != nil {
		return nil, err
	}
	gadget.Variables = vars
	return gadget, nil
}

// List returns all gadgets ordered by name.
func (r *GadgetRepository) List(ctx context.Context) ([]*models.Gadget, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, command, description, created_at, updated_at
		FROM gadgets ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query gadgets: %w", err)
	}

	var gadgets []*models.Gadget
	for rows.Next() {
		gadget, err := scanGadget(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		gadgets = append(gadgets, gadget)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating gadgets: %w", err)
	}
	rows.Close()

	// Variables are loaded after the gadget cursor is closed; the in-memory
	// database only has one connection.
	for _, gadget := range gadgets {
		vars, err := r.listVariables(ctx, r.db, gadget.Name)
		if err != nil {
			return nil, err
		}
		gadget.Variables = vars
	}

	return gadgets, nil
}

// Save inserts or updates a gadget and replaces its variables.
func (r *GadgetRepository) Save(ctx context.Context, gadget *models.Gadget) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return r.SaveWithTx(ctx, tx, gadget)
	})
}

// SaveWithTx inserts or updates a gadget using an existing transaction.
func (r *GadgetRepository) SaveWithTx(ctx context.Context, tx *sql.Tx, gadget *models.Gadget) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}
	if gadget == nil {
		return ErrInvalidGadget
	}
	if err := gadget.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGadget, err)
	}

	now := time.Now().UTC()
	if gadget.CreatedAt.IsZero() {
		gadget.CreatedAt = now
	}
	gadget.UpdatedAt = now

	_, err := tx.ExecContext(ctx, `
		INSERT INTO gadgets (name, command, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			command = excluded.command,
			description = excluded.description,
			updated_at = excluded.updated_at
	`,
		gadget.Name,
		gadget.Command,
		gadget.Description,
		gadget.CreatedAt.Format(time.RFC3339),
		gadget.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save gadget: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM gadget_variables WHERE gadget_name = ?`, gadget.Name); err != nil {
		return fmt.Errorf("failed to clear gadget variables: %w", err)
	}
	for i, v := range gadget.Variables {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO gadget_variables (gadget_name, position, name, description, default_value)
			VALUES (?, ?, ?, ?, ?)
		`, gadget.Name, i, v.Name, v.Description, v.Default)
		if err != nil {
			return fmt.Errorf("failed to save variable %q: %w", v.Name, err)
		}
	}

	return nil
}

// RenameWithTx moves a gadget to a new name, keeping its variables.
func (r *GadgetRepository) RenameWithTx(ctx context.Context, tx *sql.Tx, oldName, newName string) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}
	if oldName == newName {
		return nil
	}

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM gadgets WHERE name = ?`, newName).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check gadget name: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: %s", ErrGadgetExists, newName)
	}

	result, err := tx.ExecContext(ctx, `UPDATE gadgets SET name = ? WHERE name = ?`, newName, oldName)
	if err != nil {
		return fmt.Errorf("failed to rename gadget: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrGadgetNotFound
	}
	return nil
}

// Delete removes a gadget and its variables.
func (r *GadgetRepository) Delete(ctx context.Context, name string) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return r.DeleteWithTx(ctx, tx, name)
	})
}

// DeleteWithTx removes a gadget using an existing transaction.
func (r *GadgetRepository) DeleteWithTx(ctx context.Context, tx *sql.Tx, name string) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM gadgets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete gadget: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrGadgetNotFound
	}
	return nil
}

func (r *GadgetRepository) listVariables(ctx context.Context, q queryer, gadgetName string) ([]command.Variable, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT name, description, default_value
		FROM gadget_variables
		WHERE gadget_name = ?
		ORDER BY position
	`, gadgetName)
	if err != nil {
		return nil, fmt.Errorf("failed to query gadget variables: %w", err)
	}
	defer rows.Close()

	vars := []command.Variable{}
	for rows.Next() {
		var v command.Variable
		var def sql.NullString
		if err := rows.Scan(&v.Name, &v.Description, &def); err != nil {
			return nil, fmt.Errorf("failed to scan gadget variable: %w", err)
		}
		if def.Valid {
			v.Default = command.DefaultValue(def.String)
		}
		vars = append(vars, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating gadget variables: %w", err)
	}
	return vars, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGadget(row rowScanner) (*models.Gadget, error) {
	var gadget models.Gadget
	var createdAt, updatedAt string

	if err := row.Scan(&gadget.Name, &gadget.Command, &gadget.Description, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGadgetNotFound
		}
		return nil, fmt.Errorf("failed to scan gadget: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		gadget.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		gadget.UpdatedAt = t
	}
	return &gadget, nil
}
