package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/affine-affinity/internal/core"
	"github.com/vovakirdan/affine-affinity/internal/progress"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	menuCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	menuSolvedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	menuMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	items     []progress.LevelStatus
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  int // level chosen, 0 while browsing
}

// NewMenuModel creates a level picker positioned on the session's level.
func NewMenuModel(session *progress.Session, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:     session.Levels(),
		cursor:    session.Level() - 1,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if lv := digitLevel(msg.String()); lv > 0 {
		m.cursor = lv - 1
		m.selected = lv
		return m, tea.Quit
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			m.selected = m.items[m.cursor].Level
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("A F F I N E   A F F I N I T Y"), m.width))
	b.WriteString("\n\n")

	solved := 0
	for _, item := range m.items {
		if item.Solved {
			solved++
		}
	}
	b.WriteString(centerText(fmt.Sprintf("Pick a level  (%d/%d solved)", solved, len(m.items)), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = menuCursorStyle.Render("> ")
		}
		mark := menuMutedStyle.Render("•")
		if item.Solved {
			mark = menuSolvedStyle.Render("✓")
		}
		line := fmt.Sprintf("%s%s Level %-2d  %-9s  %s", cursor, mark, item.Level, item.Mode,
			menuMutedStyle.Render(strings.Join(item.Controls, " ")))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter or 1-0: Play  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen level, or 0 if none was chosen.
func (m MenuModel) Selected() int {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
