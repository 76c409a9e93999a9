// Package events provides helper functions for logging gadget events.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/opencode-ai/gogo/internal/command"
	"github.com/opencode-ai/gogo/internal/models"
)

// Repository is the minimal interface needed to write events.
type Repository interface {
	Create(ctx context.Context, event *models.Event) error
}

// LogGadgetSaved records a create, or an update preceded by a rename when
// the name changed. previous is nil for new gadgets.
func LogGadgetSaved(ctx context.Context, repo Repository, previous, current *models.Gadget) error {
	if repo == nil {
		return fmt.Errorf("event repository is required")
	}
	if current == nil || current.Name == "" {
		return fmt.Errorf("gadget name is required")
	}

	if previous != nil && previous.Name != current.Name {
		payload, err := json.Marshal(models.GadgetRenamedPayload{
			OldName: previous.Name,
			NewName: current.Name,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal rename payload: %w", err)
		}
		if err := repo.Create(ctx, gadgetEvent(models.EventTypeGadgetRenamed, current.Name, payload)); err != nil {
			return err
		}
	}

	payload, err := json.Marshal(models.GadgetSavedPayload{
		Command:   current.Command,
		Variables: command.Names(current.Variables),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal gadget payload: %w", err)
	}

	eventType := models.EventTypeGadgetUpdated
	if previous == nil {
		eventType = models.EventTypeGadgetCreated
	}
	return repo.Create(ctx, gadgetEvent(eventType, current.Name, payload))
}

// LogGadgetDeleted records a gadget removal.
func LogGadgetDeleted(ctx context.Context, repo Repository, name string) error {
	if repo == nil {
		return fmt.Errorf("event repository is required")
	}
	if name == "" {
		return fmt.Errorf("gadget name is required")
	}
	return repo.Create(ctx, gadgetEvent(models.EventTypeGadgetDeleted, name, nil))
}

// LogGadgetRan records one execution of a rendered gadget command.
func LogGadgetRan(ctx context.Context, repo Repository, name, rendered string, exitCode int, elapsed time.Duration, runErr error) error {
	if repo == nil {
		return fmt.Errorf("event repository is required")
	}
	if name == "" {
		return fmt.Errorf("gadget name is required")
	}

	ran := models.GadgetRanPayload{
		Command:  rendered,
		ExitCode: exitCode,
		Duration: elapsed.Round(time.Millisecond).String(),
	}
	if runErr != nil {
		ran.Error = runErr.Error()
	}
	payload, err := json.Marshal(ran)
	if err != nil {
		return fmt.Errorf("failed to marshal run payload: %w", err)
	}

	return repo.Create(ctx, gadgetEvent(models.EventTypeGadgetRan, name, payload))
}

func gadgetEvent(eventType models.EventType, name string, payload json.RawMessage) *models.Event {
	return &models.Event{
		Type:       eventType,
		EntityType: models.EntityTypeGadget,
		EntityID:   name,
		Payload:    payload,
	}
}
