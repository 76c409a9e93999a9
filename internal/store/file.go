package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/opencode-ai/gogo/internal/command"
	"github.com/opencode-ai/gogo/internal/logging"
	"github.com/opencode-ai/gogo/internal/models"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// FileStore keeps gadgets in a single JSON object keyed by gadget name.
type FileStore struct {
	fs     afero.Fs
	path   string
	logger zerolog.Logger

	mu      sync.RWMutex
	gadgets map[string]*models.Gadget
}

// NewFileStore loads the store at path. A missing file is an empty store.
func NewFileStore(fs afero.Fs, path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}

	s := &FileStore{
		fs:      fs,
		path:    path,
		logger:  logging.Component("store"),
		gadgets: make(map[string]*models.Gadget),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns a copy of the named gadget.
func (s *FileStore) Get(ctx context.Context, name string) (*models.Gadget, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	gadget, ok := s.gadgets[name]
	if !ok {
		return nil, notFound(name)
	}
	return gadget.Clone(), nil
}

// List returns copies of all gadgets ordered by name.
func (s *FileStore) List(ctx context.Context) ([]*models.Gadget, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	gadgets := make([]*models.Gadget, 0, len(s.gadgets))
	for _, gadget := range s.gadgets {
		gadgets = append(gadgets, gadget.Clone())
	}
	sort.Slice(gadgets, func(i, j int) bool {
		return gadgets[i].Name < gadgets[j].Name
	})
	return gadgets, nil
}

// Create adds a new gadget and writes the file.
func (s *FileStore) Create(ctx context.Context, gadget *models.Gadget) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := gadget.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.gadgets[gadget.Name]; ok {
		return exists(gadget.Name)
	}

	now := time.Now().UTC()
	stored := gadget.Clone()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.gadgets[stored.Name] = stored
	if err := s.flush(); err != nil {
		delete(s.gadgets, stored.Name)
		return err
	}

	gadget.CreatedAt, gadget.UpdatedAt = now, now
	s.logger.Debug().Str("gadget", gadget.Name).Msg("gadget created")
	return nil
}

// Update replaces the gadget stored under oldName, renaming it if needed.
func (s *FileStore) Update(ctx context.Context, oldName string, gadget *models.Gadget) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := gadget.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, ok := s.gadgets[oldName]
	if !ok {
		return notFound(oldName)
	}
	if gadget.Name != oldName {
		if _, taken := s.gadgets[gadget.Name]; taken {
			return exists(gadget.Name)
		}
	}

	stored := gadget.Clone()
	stored.CreatedAt = previous.CreatedAt
	stored.UpdatedAt = time.Now().UTC()

	delete(s.gadgets, oldName)
	s.gadgets[stored.Name] = stored
	if err := s.flush(); err != nil {
		delete(s.gadgets, stored.Name)
		s.gadgets[oldName] = previous
		return err
	}

	gadget.CreatedAt, gadget.UpdatedAt = stored.CreatedAt, stored.UpdatedAt
	s.logger.Debug().Str("gadget", gadget.Name).Str("previous", oldName).Msg("gadget updated")
	return nil
}

// Delete removes a gadget and writes the file.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, ok := s.gadgets[name]
	if !ok {
		return notFound(name)
	}

	delete(s.gadgets, name)
	if err := s.flush(); err != nil {
		s.gadgets[name] = previous
		return err
	}

	s.logger.Debug().Str("gadget", name).Msg("gadget deleted")
	return nil
}

// Close is a no-op; every change is already on disk.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) load() error {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug().Str("path", s.path).Msg("store file not found, starting empty")
			return nil
		}
		return fmt.Errorf("read store %s: %w", s.path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}

	var records map[string]fileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parse store %s: %w", s.path, err)
	}

	for key, record := range records {
		gadget, err := record.gadget(key)
		if err != nil {
			return fmt.Errorf("parse store %s: gadget %q: %w", s.path, key, err)
		}
		s.gadgets[gadget.Name] = gadget
	}

	s.logger.Debug().Str("path", s.path).Int("gadgets", len(s.gadgets)).Msg("store loaded")
	return nil
}

func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.gadgets, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(s.fs, s.path, data, 0); err != nil {
		return fmt.Errorf("write store %s: %w", s.path, err)
	}
	return nil
}

// fileRecord is the on-disk form of a gadget. Older files stored variables
// as an object mapping name to description.
type fileRecord struct {
	Name        string          `json:"name"`
	Command     string          `json:"command"`
	Description string          `json:"description"`
	Variables   json.RawMessage `json:"variables"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (r fileRecord) gadget(key string) (*models.Gadget, error) {
	gadget := &models.Gadget{
		Name:        r.Name,
		Command:     r.Command,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Variables:   []command.Variable{},
	}
	if gadget.Name == "" {
		gadget.Name = key
	}

	raw := strings.TrimSpace(string(r.Variables))
	switch {
	case raw == "" || raw == "null":
	case strings.HasPrefix(raw, "["):
		if err := json.Unmarshal(r.Variables, &gadget.Variables); err != nil {
			return nil, fmt.Errorf("decode variables: %w", err)
		}
	case strings.HasPrefix(raw, "{"):
		var legacy map[string]string
		if err := json.Unmarshal(r.Variables, &legacy); err != nil {
			return nil, fmt.Errorf("decode variables: %w", err)
		}
		gadget.Variables = legacyVariables(gadget.Template(), legacy)
	default:
		return nil, fmt.Errorf("decode variables: unexpected %s", raw)
	}

	return gadget, nil
}

// legacyVariables orders map-style variables by their position in the command.
func legacyVariables(tpl command.Template, descriptions map[string]string) []command.Variable {
	names := tpl.DistinctVariables()
	vars := make([]command.Variable, 0, len(names))
	for _, name := range names {
		vars = append(vars, command.Variable{Name: name, Description: descriptions[name]})
	}
	return vars
}
