package prompt

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrScriptExhausted is returned when a ScriptedDriver runs out of answers.
var ErrScriptExhausted = errors.New("no scripted answer left")

// ScriptedDriver answers prompts from a fixed list, in order. It records
// every prompt it was asked.
type ScriptedDriver struct {
	mu      sync.Mutex
	answers []string
	asked   []string
}

// NewScriptedDriver creates a driver that replies with answers in order.
// Confirm treats "y" and "yes" as true.
func NewScriptedDriver(answers ...string) *ScriptedDriver {
	return &ScriptedDriver{answers: answers}
}

// Asked returns the prompt messages seen so far.
func (d *ScriptedDriver) Asked() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.asked...)
}

func (d *ScriptedDriver) next(message string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.asked = append(d.asked, message)
	if len(d.answers) == 0 {
		return "", ErrScriptExhausted
	}
	answer := d.answers[0]
	d.answers = d.answers[1:]
	return answer, nil
}

func (d *ScriptedDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	answer, err := d.next(cfg.Message)
	if err != nil {
		return "", err
	}
	if answer == "" && cfg.HasDefault {
		return cfg.Default, nil
	}
	return answer, nil
}

func (d *ScriptedDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	answer, err := d.next(cfg.Message)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return cfg.Default, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
