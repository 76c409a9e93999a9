// Package gadget manages named command templates on top of a store.
package gadget

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/opencode-ai/gogo/internal/command"
	"github.com/opencode-ai/gogo/internal/logging"
	"github.com/opencode-ai/gogo/internal/models"
	"github.com/opencode-ai/gogo/internal/store"
	"github.com/rs/zerolog"
)

// Service validates gadget edits and commits them to a store.
type Service struct {
	store  store.Store
	logger zerolog.Logger
}

// NewService creates a Service backed by s.
func NewService(s store.Store) *Service {
	return &Service{
		store:  s,
		logger: logging.Component("gadget"),
	}
}

// AddInput describes a new gadget.
type AddInput struct {
	Name        string
	Command     string
	Description string

	// Descriptions are matched to the distinct variables of Command in
	// order. Ignored when Variables is set.
	Descriptions []string

	// Variables gives full metadata, e.g. from an import.
	Variables []command.Variable
}

// EditInput lists the fields to change; nil fields are kept.
type EditInput struct {
	Name        *string
	Description *string
	Command     *string

	// Variable is applied after the command change, so it names a
	// variable of the reconciled command.
	Variable *VariableUpdate
}

// VariableUpdate changes one variable of a gadget; nil fields are kept.
type VariableUpdate struct {
	Variable    string
	Name        *string
	Description *string
	Default     *string

	// ClearDefault removes the default; it wins over Default.
	ClearDefault bool
}

// Add validates and stores a new gadget.
func (s *Service) Add(ctx context.Context, in AddInput) (*models.Gadget, error) {
	if err := ValidateName(in.Name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Command) == "" {
		return nil, ErrEmptyCommand
	}

	tpl := command.Parse(in.Command)
	vars, err := initialVariables(tpl, in)
	if err != nil {
		return nil, err
	}

	gadget := &models.Gadget{
		Name:        in.Name,
		Command:     in.Command,
		Description: in.Description,
		Variables:   vars,
	}
	if err := s.Save(ctx, "", gadget); err != nil {
		return nil, err
	}
	return gadget, nil
}

func initialVariables(tpl command.Template, in AddInput) ([]command.Variable, error) {
	if in.Variables != nil {
		return command.CloneVariables(in.Variables), nil
	}
	if len(in.Descriptions) == 0 {
		return command.Blank(tpl.DistinctVariables()), nil
	}
	return command.FromDescriptions(tpl, in.Descriptions)
}

// Get returns the named gadget. Missing names carry suggestions.
func (s *Service) Get(ctx context.Context, name string) (*models.Gadget, error) {
	gadget, err := s.store.Get(ctx, name)
	if err == nil {
		return gadget, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	notFound := &NotFoundError{Name: name}
	if names, listErr := s.Names(ctx); listErr == nil {
		notFound.Suggestions = Suggest(name, names)
	}
	return nil, notFound
}

// List returns every gadget ordered by name.
func (s *Service) List(ctx context.Context) ([]*models.Gadget, error) {
	return s.store.List(ctx)
}

// Names returns the names of every gadget.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	gadgets, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(gadgets))
	for i, g := range gadgets {
		names[i] = g.Name
	}
	return names, nil
}

// Edit applies in to the named gadget. A command change reconciles the
// variable metadata. Nothing is stored if the result does not validate.
func (s *Service) Edit(ctx context.Context, name string, in EditInput) (*models.Gadget, error) {
	current, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	next := current.Clone()
	if in.Name != nil {
		next.Name = *in.Name
	}
	if in.Description != nil {
		next.Description = *in.Description
	}
	if in.Command != nil {
		tpl := command.Parse(*in.Command)
		next.Command = *in.Command
		next.Variables = command.Reconcile(current.Template(), current.Variables, tpl)
	}
	if in.Variable != nil {
		if err := applyVariableUpdate(next, *in.Variable); err != nil {
			return nil, err
		}
	}

	if err := s.Save(ctx, name, next); err != nil {
		return nil, err
	}
	return next, nil
}

// UpdateVariable edits a single variable. Renaming it rewrites every
// placeholder in the command.
func (s *Service) UpdateVariable(ctx context.Context, name string, update VariableUpdate) (*models.Gadget, error) {
	return s.Edit(ctx, name, EditInput{Variable: &update})
}

func applyVariableUpdate(g *models.Gadget, update VariableUpdate) error {
	idx := -1
	for i, v := range g.Variables {
		if v.Name == update.Variable {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrVariableNotFound, update.Variable)
	}
	v := &g.Variables[idx]

	if update.Name != nil && *update.Name != v.Name {
		newName := *update.Name
		if !command.ValidName(newName) {
			return &command.InvalidVariableNameError{Name: newName}
		}
		if !command.PlaceholderName(newName) {
			return fmt.Errorf("%w: %q; use letters, digits and underscores", ErrPlaceholderName, newName)
		}
		if _, taken := g.Variable(newName); taken {
			return fmt.Errorf("%w: %s", ErrVariableExists, newName)
		}
		g.Command = command.RenameVariable(g.Template(), v.Name, newName).String()
		v.Name = newName
	}
	if update.Description != nil {
		v.Description = *update.Description
	}
	if update.Default != nil {
		v.Default = command.DefaultValue(*update.Default)
	}
	if update.ClearDefault {
		v.Default = nil
	}
	return nil
}

// Save validates gadget and stores it under oldName, or as a new gadget
// when oldName is empty.
func (s *Service) Save(ctx context.Context, oldName string, gadget *models.Gadget) error {
	if err := Check(gadget); err != nil {
		return err
	}

	var err error
	if oldName == "" {
		err = s.store.Create(ctx, gadget)
	} else {
		err = s.store.Update(ctx, oldName, gadget)
	}
	if err != nil {
		return s.translate(ctx, err, oldName, gadget.Name)
	}

	s.logger.Info().
		Str("gadget", gadget.Name).
		Int("variables", len(gadget.Variables)).
		Msg("gadget saved")
	return nil
}

// Check validates a gadget without storing it.
func Check(gadget *models.Gadget) error {
	if gadget == nil {
		return fmt.Errorf("gadget is required")
	}
	if err := ValidateName(gadget.Name); err != nil {
		return err
	}
	if strings.TrimSpace(gadget.Command) == "" {
		return ErrEmptyCommand
	}

	tpl := gadget.Template()
	if err := command.Validate(tpl, gadget.Variables); err != nil {
		return err
	}
	if !command.Aligned(tpl, gadget.Variables) {
		return &command.VariableCountMismatchError{
			Detected: tpl.DistinctVariables(),
			Provided: command.Names(gadget.Variables),
		}
	}
	return nil
}

// Delete removes the named gadget.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.store.Delete(ctx, name); err != nil {
		return s.translate(ctx, err, name, name)
	}
	s.logger.Info().Str("gadget", name).Msg("gadget deleted")
	return nil
}

// ImportStatus is what happened to one imported gadget.
type ImportStatus string

const (
	ImportCreated ImportStatus = "created"
	ImportUpdated ImportStatus = "updated"
	ImportSkipped ImportStatus = "skipped"
)

// ImportResult summarises an Import call.
type ImportResult struct {
	Created []string `json:"created"`
	Updated []string `json:"updated"`
	Skipped []string `json:"skipped"`
}

// Add records the outcome for name.
func (r *ImportResult) Add(name string, status ImportStatus) {
	switch status {
	case ImportCreated:
		r.Created = append(r.Created, name)
	case ImportUpdated:
		r.Updated = append(r.Updated, name)
	case ImportSkipped:
		r.Skipped = append(r.Skipped, name)
	}
}

// Import stores gadgets in order, stopping at the first failure. Existing
// gadgets are skipped unless overwrite is set.
func (s *Service) Import(ctx context.Context, gadgets []*models.Gadget, overwrite bool) (*ImportResult, error) {
	result := &ImportResult{}
	for _, incoming := range gadgets {
		status, err := s.ImportOne(ctx, incoming, overwrite)
		if err != nil {
			return result, err
		}
		result.Add(incoming.Name, status)
	}
	return result, nil
}

// ImportOne stores a single imported gadget. Gadgets without variable
// metadata get blank entries for their placeholders.
func (s *Service) ImportOne(ctx context.Context, incoming *models.Gadget, overwrite bool) (ImportStatus, error) {
	g := incoming.Clone()
	if len(g.Variables) == 0 {
		g.Variables = command.Blank(g.Template().DistinctVariables())
	}

	_, err := s.store.Get(ctx, g.Name)
	switch {
	case err == nil && !overwrite:
		return ImportSkipped, nil
	case err == nil:
		if err := s.Save(ctx, g.Name, g); err != nil {
			return "", fmt.Errorf("import %s: %w", g.Name, err)
		}
		return ImportUpdated, nil
	case errors.Is(err, store.ErrNotFound):
		if err := s.Save(ctx, "", g); err != nil {
			return "", fmt.Errorf("import %s: %w", g.Name, err)
		}
		return ImportCreated, nil
	default:
		return "", err
	}
}

func (s *Service) translate(ctx context.Context, err error, oldName, newName string) error {
	switch {
	case errors.Is(err, store.ErrExists):
		return fmt.Errorf("%w: %s", ErrGadgetExists, newName)
	case errors.Is(err, store.ErrNotFound):
		notFound := &NotFoundError{Name: oldName}
		if names, listErr := s.Names(ctx); listErr == nil {
			notFound.Suggestions = Suggest(oldName, names)
		}
		return notFound
	default:
		return err
	}
}
