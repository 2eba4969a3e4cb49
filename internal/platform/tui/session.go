package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/affine-affinity/internal/core"
	"github.com/vovakirdan/affine-affinity/internal/games/affinity"
	"github.com/vovakirdan/affine-affinity/internal/progress"
)

// SessionModel manages the full flow of one player: level picker -> level
// screen -> level picker. It is the top-level model for local play and for
// SSH sessions.
type SessionModel struct {
	ctx      context.Context
	session  *progress.Session
	config   core.RuntimeConfig
	menu     MenuModel
	game     *affinity.Game
	model    Model
	inGame   bool
	quitting bool
}

// NewSessionModel creates a session model. With inMenu false it opens
// straight on the session's current level.
func NewSessionModel(ctx context.Context, session *progress.Session, cfg core.RuntimeConfig, inMenu bool) SessionModel {
	m := SessionModel{
		ctx:     ctx,
		session: session,
		config:  cfg,
		game:    affinity.New(session, cfg),
		menu:    NewMenuModel(session, cfg),
	}
	if !inMenu {
		m.model = NewModel(ctx, m.game, cfg)
		m.inGame = true
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.inGame {
		return m.model.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.inGame {
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if level := m.menu.Selected(); level > 0 {
		//nolint:errcheck // Shown on the status line
		m.game.GoTo(m.ctx, level)
		m.model = NewModel(m.ctx, m.game, m.config)
		m.inGame = true
		// The menu quits on select; the session keeps running.
		return m, m.model.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.model.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.model = gameModel
	}

	if m.model.BackToMenu() {
		m.inGame = false
		m.menu = NewMenuModel(m.session, m.config)
		return m, m.menu.Init()
	}

	if m.model.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inGame {
		return m.model.View()
	}
	return m.menu.View()
}

// InGame reports whether the level screen is showing.
func (m SessionModel) InGame() bool {
	return m.inGame
}

// Run starts a local Bubble Tea program for session.
func Run(ctx context.Context, session *progress.Session, cfg core.RuntimeConfig, inMenu bool) error {
	p := tea.NewProgram(
		NewSessionModel(ctx, session, cfg, inMenu),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
