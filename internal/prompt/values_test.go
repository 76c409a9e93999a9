package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/opencode-ai/gogo/internal/command"
	"github.com/stretchr/testify/require"
)

func variables() []command.Variable {
	return []command.Variable{
		{Name: "host", Description: "target host"},
		{Name: "count", Default: command.DefaultValue("3")},
	}
}

func TestCollectProvidedValuesSkipPrompt(t *testing.T) {
	driver := NewScriptedDriver()

	values, err := Collect(context.Background(), driver, variables(), map[string]string{
		"host":  "example.com",
		"count": "1",
	})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"host": "example.com", "count": "1"}, values)
	require.Empty(t, driver.Asked())
}

func TestCollectPromptsAndFallsBackToDefault(t *testing.T) {
	driver := NewScriptedDriver("  example.com ", "")

	values, err := Collect(context.Background(), driver, variables(), nil)
	require.NoError(t, err)
	require.Equal(t, "example.com", values["host"])
	require.Equal(t, "3", values["count"])
	require.Equal(t, []string{
		"Enter value for host (target host):",
		"Enter value for count:",
	}, driver.Asked())
}

func TestCollectEmptyAnswerWithoutDefault(t *testing.T) {
	driver := NewScriptedDriver("")

	_, err := Collect(context.Background(), driver, variables(), nil)
	require.True(t, errors.Is(err, ErrMissingValue))

	var missing *MissingValueError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "host", missing.Name)
}

func TestCollectNonInteractive(t *testing.T) {
	values, err := Collect(context.Background(), nil, variables(), map[string]string{"host": "h"})
	require.NoError(t, err)
	require.Equal(t, "3", values["count"])

	_, err = Collect(context.Background(), nil, variables(), nil)
	require.ErrorIs(t, err, ErrMissingValue)
}

func TestCollectEmptyDefaultIsAValue(t *testing.T) {
	vars := []command.Variable{{Name: "flags", Default: command.DefaultValue("")}}

	values, err := Collect(context.Background(), NewScriptedDriver(""), vars, nil)
	require.NoError(t, err)
	require.Equal(t, "", values["flags"])
}

func TestCollectPropagatesDriverErrors(t *testing.T) {
	_, err := Collect(context.Background(), NewScriptedDriver(), variables(), nil)
	require.ErrorIs(t, err, ErrScriptExhausted)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Collect(ctx, NewScriptedDriver("x"), variables(), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestScriptedConfirm(t *testing.T) {
	driver := NewScriptedDriver("y", "no", "")
	ctx := context.Background()

	ok, err := driver.Confirm(ctx, ConfirmConfig{Message: "sure?"})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = driver.Confirm(ctx, ConfirmConfig{Message: "sure?", Default: true})
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = driver.Confirm(ctx, ConfirmConfig{Message: "sure?", Default: true})
	require.NoError(t, err)
	require.True(t, ok)
}
