package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/gogo/internal/gadget"
	"github.com/opencode-ai/gogo/internal/models"
	"github.com/opencode-ai/gogo/internal/store"
)

func newTestService(t *testing.T) *gadget.Service {
	t.Helper()
	fileStore, err := store.NewFileStore(afero.NewMemMapFs(), "/gadgets.json")
	require.NoError(t, err)
	svc := gadget.NewService(fileStore)

	_, err = svc.Add(context.Background(), gadget.AddInput{
		Name:         "copy",
		Command:      "cp {{src}} {{dst}}",
		Descriptions: []string{"source file", "dest file"},
	})
	require.NoError(t, err)
	return svc
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, keys ...tea.KeyMsg) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		updated, ok := next.(model)
		if !ok {
			t.Fatalf("expected model, got %T", next)
		}
		m = updated
	}
	return m
}

func openCopy(t *testing.T, svc *gadget.Service) model {
	t.Helper()
	m, err := newModel(context.Background(), svc, Options{Gadget: "copy"})
	require.NoError(t, err)
	require.Equal(t, viewEditor, m.view)
	return m
}

func TestEditorCommandTypingReconciles(t *testing.T) {
	svc := newTestService(t)
	m := openCopy(t, svc)

	// Focus the command field, then rewrite {{dst}} as {{dest}}.
	m = press(t, m, key(tea.KeyTab), key(tea.KeyTab))
	require.Equal(t, fieldCommand, m.editor.focus)

	m = press(t, m,
		key(tea.KeyLeft), key(tea.KeyLeft),
		key(tea.KeyBackspace), key(tea.KeyBackspace),
		runes("e"), runes("s"), runes("t"),
	)

	require.Equal(t, "cp {{src}} {{dest}}", m.editor.draft.Command())
	vars := m.editor.draft.Variables()
	require.Len(t, vars, 2)
	require.Equal(t, "dest", vars[1].Name)
	require.Equal(t, "dest file", vars[1].Description)
	require.Len(t, m.editor.vars, 2)
	require.Equal(t, "dest", m.editor.vars[1].name.Value())

	stored, err := svc.Get(context.Background(), "copy")
	require.NoError(t, err)
	require.Equal(t, "cp {{src}} {{dst}}", stored.Command, "nothing is stored before save")
}

func TestEditorVariableRenameUpdatesCommand(t *testing.T) {
	svc := newTestService(t)
	m := openCopy(t, svc)

	m = press(t, m, key(tea.KeyTab), key(tea.KeyTab), key(tea.KeyTab))
	require.Equal(t, fixedFields+varName, m.editor.focus)

	m = press(t, m, runes("2"))
	require.Equal(t, "cp {{src2}} {{dst}}", m.editor.command.Value())

	m = press(t, m, key(tea.KeyBackspace), key(tea.KeyBackspace), key(tea.KeyBackspace), key(tea.KeyBackspace))
	require.True(t, m.editor.draft.NameError(0))
	require.Equal(t, "cp {{s}} {{dst}}", m.editor.command.Value(), "an empty name leaves the last valid one")

	m = press(t, m, runes("from"))
	require.False(t, m.editor.draft.NameError(0))
	require.Equal(t, "cp {{from}} {{dst}}", m.editor.command.Value())
}

func TestEditorSaveAndRevert(t *testing.T) {
	svc := newTestService(t)
	m := openCopy(t, svc)
	ctx := context.Background()

	// Default for dst.
	m = press(t, m, key(tea.KeyShiftTab))
	require.Equal(t, fixedFields+fieldsPerVar+varDefault, m.editor.focus)
	m = press(t, m, runes("/tmp"), key(tea.KeyCtrlS))
	require.Contains(t, m.View(), "Saved copy")

	stored, err := svc.Get(ctx, "copy")
	require.NoError(t, err)
	require.Equal(t, "/tmp", stored.Variables[1].DefaultOr(""))

	m = press(t, m, key(tea.KeyBackspace), key(tea.KeyCtrlR))
	require.Equal(t, "/tmp", m.editor.vars[1].defaultVal.Value())
	require.Equal(t, "/tmp", m.editor.draft.Variables()[1].DefaultOr(""))
}

func TestEditorInvalidSaveKeepsStore(t *testing.T) {
	svc := newTestService(t)
	m := openCopy(t, svc)
	ctx := context.Background()

	m = press(t, m, runes(" bad"), key(tea.KeyCtrlS))
	require.Equal(t, "copy bad", m.editor.draft.Name)
	require.NotEmpty(t, m.editor.draft.Message())
	require.Contains(t, m.View(), m.editor.draft.Message())

	names, err := svc.Names(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"copy"}, names)
}

func TestEditorRenameGadget(t *testing.T) {
	svc := newTestService(t)
	m := openCopy(t, svc)
	ctx := context.Background()

	m = press(t, m, runes("-files"), key(tea.KeyCtrlS))
	require.Empty(t, m.editor.draft.Message())

	names, err := svc.Names(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"copy-files"}, names)
}

func TestPickerOpensAndCreates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	m, err := newModel(ctx, svc, Options{})
	require.NoError(t, err)
	require.Equal(t, viewPicker, m.view)
	require.Contains(t, m.View(), "copy")

	m = press(t, m, key(tea.KeyEnter))
	require.Equal(t, viewEditor, m.view)
	require.Contains(t, m.View(), "Edit gadget copy")

	m = press(t, m, key(tea.KeyEsc))
	require.Equal(t, viewPicker, m.view)

	m = press(t, m, key(tea.KeyCtrlN))
	require.Equal(t, viewEditor, m.view)
	require.True(t, m.editor.draft.IsNew())
	require.Contains(t, m.View(), "No variables")

	m = press(t, m, runes("greet"), key(tea.KeyTab), key(tea.KeyTab))
	for _, r := range "echo {{who}}" {
		if r == ' ' {
			m = press(t, m, key(tea.KeySpace))
			continue
		}
		m = press(t, m, runes(string(r)))
	}
	require.Equal(t, []string{"who"}, names(m))

	m = press(t, m, key(tea.KeyCtrlS), key(tea.KeyEsc))
	require.Equal(t, viewPicker, m.view)
	require.Len(t, m.picker.Items, 2)

	g, err := svc.Get(ctx, "greet")
	require.NoError(t, err)
	require.Equal(t, "echo {{who}}", g.Command)
}

func TestPickerFilter(t *testing.T) {
	svc := newTestService(t)
	m, err := newModel(context.Background(), svc, Options{})
	require.NoError(t, err)

	m = press(t, m, runes("zzz"))
	require.Contains(t, m.View(), "No gadgets match 'zzz'")

	m = press(t, m, key(tea.KeyEnter))
	require.Equal(t, viewPicker, m.view)
}

func TestDirectEditorEscQuits(t *testing.T) {
	svc := newTestService(t)
	m := openCopy(t, svc)

	_, cmd := m.Update(key(tea.KeyEsc))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestUnknownGadget(t *testing.T) {
	svc := newTestService(t)
	_, err := newModel(context.Background(), svc, Options{Gadget: "cpy"})
	require.ErrorIs(t, err, gadget.ErrGadgetNotFound)
}

func TestSmallTerminal(t *testing.T) {
	svc := newTestService(t)
	m := openCopy(t, svc)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	view := next.(model).View()
	if !strings.Contains(view, "Terminal too small") {
		t.Fatalf("expected small terminal warning, got %q", view)
	}
}

func names(m model) []string {
	out := []string{}
	for _, v := range m.editor.draft.Variables() {
		out = append(out, v.Name)
	}
	return out
}

type failingList struct {
	store.Store
	fail bool
}

func (s *failingList) List(ctx context.Context) ([]*models.Gadget, error) {
	if s.fail {
		return nil, errors.New("list unavailable")
	}
	return s.Store.List(ctx)
}

func TestEditorSaveSurvivesFailedRefresh(t *testing.T) {
	ctx := context.Background()
	fileStore, err := store.NewFileStore(afero.NewMemMapFs(), "/gadgets.json")
	require.NoError(t, err)
	wrapped := &failingList{Store: fileStore}
	svc := gadget.NewService(wrapped)
	_, err = svc.Add(ctx, gadget.AddInput{Name: "copy", Command: "cp {{src}} {{dst}}"})
	require.NoError(t, err)

	m := openCopy(t, svc)
	m = press(t, m, key(tea.KeyTab), runes("x"))
	wrapped.fail = true
	m = press(t, m, key(tea.KeyCtrlS))

	require.Contains(t, m.editor.status, "Saved")
	stored, err := fileStore.Get(ctx, "copy")
	require.NoError(t, err)
	require.Equal(t, "x", stored.Description)
}
