// Package tui implements the GoGoGadget terminal editor.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opencode-ai/gogo/internal/gadget"
	"github.com/opencode-ai/gogo/internal/logging"
	"github.com/opencode-ai/gogo/internal/models"
	"github.com/opencode-ai/gogo/internal/tui/components"
	"github.com/opencode-ai/gogo/internal/tui/styles"
	"github.com/rs/zerolog"
)

// Options configures the editor program.
type Options struct {
	// Theme names a styles theme; unknown names use the default.
	Theme string

	// Gadget opens this gadget directly; closing its editor quits.
	Gadget string

	// New opens an empty draft directly.
	New bool
}

// Run launches the TUI and blocks until the user quits.
func Run(ctx context.Context, svc *gadget.Service, opts Options) error {
	m, err := newModel(ctx, svc, opts)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}

type viewID int

const (
	viewPicker viewID = iota
	viewEditor
)

const (
	minWidth  = 60
	minHeight = 15
)

type model struct {
	ctx     context.Context
	service *gadget.Service
	styles  styles.Styles
	logger  zerolog.Logger

	width  int
	height int
	view   viewID

	picker *components.Picker
	editor *editor

	// direct is set when the editor was opened from the command line.
	direct bool
	status string
}

func newModel(ctx context.Context, svc *gadget.Service, opts Options) (model, error) {
	m := model{
		ctx:     ctx,
		service: svc,
		styles:  styles.ForTheme(opts.Theme),
		logger:  logging.Component("tui"),
		view:    viewPicker,
		picker:  components.NewPicker(nil),
	}

	if err := m.reload(); err != nil {
		return m, err
	}

	switch {
	case opts.Gadget != "":
		g, err := svc.Get(ctx, opts.Gadget)
		if err != nil {
			return m, err
		}
		m.openEditor(g)
		m.direct = true
	case opts.New:
		m.openEditor(nil)
		m.direct = true
	}
	return m, nil
}

func (m *model) reload() error {
	gadgets, err := m.service.List(m.ctx)
	if err != nil {
		return fmt.Errorf("failed to load gadgets: %w", err)
	}
	items := make([]components.PickerItem, 0, len(gadgets))
	for _, g := range gadgets {
		items = append(items, components.PickerItem{
			Name:        g.Name,
			Description: g.Description,
			Command:     g.Command,
		})
	}
	m.picker.SetItems(items)
	return nil
}

func (m *model) openEditor(g *models.Gadget) {
	m.editor = newEditor(m.service.NewDraft(g))
	m.view = viewEditor
	m.status = ""
}

func (m *model) closeEditor() tea.Cmd {
	if m.direct {
		return tea.Quit
	}
	m.editor = nil
	m.view = viewPicker
	return nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.view == viewEditor {
			return m.updateEditor(msg)
		}
		return m.updatePicker(msg)
	}
	return m, nil
}

func (m model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyUp, tea.KeyShiftTab:
		m.picker.Move(-1)
	case tea.KeyDown, tea.KeyTab:
		m.picker.Move(1)
	case tea.KeyBackspace:
		m.picker.Backspace()
	case tea.KeySpace:
		m.picker.Type(" ")
	case tea.KeyRunes:
		m.picker.Type(string(msg.Runes))
	case tea.KeyCtrlN:
		m.openEditor(nil)
	case tea.KeyEnter:
		selected := m.picker.Selected()
		if selected == nil {
			return m, nil
		}
		g, err := m.service.Get(m.ctx, selected.Name)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.openEditor(g)
	}
	return m, nil
}

func (m model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, m.closeEditor()
	case tea.KeyCtrlS:
		if saved := m.editor.save(m.ctx); saved != nil {
			if err := m.reload(); err != nil {
				m.logger.Warn().Err(err).Msg("failed to refresh gadget list")
			}
		}
		return m, nil
	case tea.KeyCtrlR:
		m.editor.revert()
		return m, nil
	}
	m.editor.handleKey(msg)
	return m, nil
}

func (m model) View() string {
	if m.width > 0 && m.height > 0 {
		if m.width < minWidth || m.height < minHeight {
			return fmt.Sprintf("%s\n", strings.Join(m.smallViewLines(), "\n"))
		}
	}

	var lines []string
	if m.view == viewEditor {
		lines = m.editor.viewLines(m.styles)
		lines = append(lines, "", m.styles.Muted.Render("tab/shift+tab move | ctrl+s save | ctrl+r revert | esc back | ctrl+c quit"))
	} else {
		lines = m.picker.Render(m.styles, m.width)
		if m.status != "" {
			lines = append(lines, "", m.styles.Error.Render(m.status))
		}
	}

	return fmt.Sprintf("%s\n", strings.Join(lines, "\n"))
}

func (m model) smallViewLines() []string {
	message := fmt.Sprintf("Terminal too small (%dx%d).", m.width, m.height)
	hint := fmt.Sprintf("Resize to at least %dx%d.", minWidth, minHeight)

	return []string{
		m.styles.Warning.Render(message),
		m.styles.Muted.Render(hint),
		m.styles.Muted.Render("Press ctrl+c to quit."),
	}
}
