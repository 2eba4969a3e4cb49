// Package tui provides the Bubble Tea integration for the game: the level
// screen, the level picker, input mapping and the SSH host.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/affine-affinity/internal/core"
	"github.com/vovakirdan/affine-affinity/internal/games/affinity"
)

// Model is the Bubble Tea model of the level screen. It is event driven:
// the screen only changes in response to keys, mouse and resizes.
type Model struct {
	ctx        context.Context
	game       *affinity.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(ctx context.Context, game *affinity.Game, cfg core.RuntimeConfig) Model {
	h := help.New()
	h.Width = cfg.ScreenW
	game.Resize(cfg.ScreenW, cfg.ScreenH-1)

	return Model{
		ctx:       ctx,
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH-1),
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      h,
	}
}

// Init implements tea.Model. Nothing runs in the background.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, level := m.keyMapper.MapKey(msg)

	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionMenu:
		m.backToMenu = true
		return m, nil
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.resizeScreen()
		return m, nil
	case core.ActionNone:
		if level > 0 {
			//nolint:errcheck // Shown on the status line
			m.game.GoTo(m.ctx, level)
		}
		return m, nil
	}

	//nolint:errcheck // Shown on the status line
	m.game.Handle(m.ctx, action)
	return m, nil
}

// handleMouse maps clicks on slider tracks and buttons. Motion only moves
// the slider grabbed by the press; buttons never fire while dragging.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		//nolint:errcheck // Shown on the status line
		m.game.Click(m.ctx, msg.X, msg.Y)
	case tea.MouseActionMotion:
		//nolint:errcheck // Shown on the status line
		m.game.Drag(m.ctx, msg.X)
	case tea.MouseActionRelease:
		m.game.Release()
	}
	return m, nil
}

// handleResize processes window resize events. Game state is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.resizeScreen()
	return m, nil
}

// resizeScreen leaves room under the game for the help view.
func (m *Model) resizeScreen() {
	helpH := 1
	if m.help.ShowAll {
		helpH = 6
	}
	h := max(m.config.ScreenH-helpH, 0)
	m.screen.Resize(m.config.ScreenW, h)
	m.game.Resize(m.config.ScreenW, h)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keyMapper.Keys())
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested the level picker.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Config returns the current runtime config (may have been updated by resize).
func (m Model) Config() core.RuntimeConfig {
	return m.config
}
