package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/affine-affinity/internal/affine"
	"github.com/vovakirdan/affine-affinity/internal/progress"
	"github.com/vovakirdan/affine-affinity/internal/storage"
)

// Board layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the profile sidebar
	sidebarWidth       = 20 // Width of the profile sidebar
)

// BoardKeyMap defines the key bindings for the progress board.
type BoardKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextProfile key.Binding
	PrevProfile key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextProfile, k.PrevProfile, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextProfile, k.PrevProfile},
		{k.Back, k.Quit},
	}
}

// DefaultBoardKeyMap returns default key bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return BoardKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextProfile: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next profile")),
		PrevProfile: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev profile")),
		Back:        key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// BoardModel shows the level progress of every profile in a store.
type BoardModel struct {
	ctx         context.Context
	store       storage.Provider
	profiles    []string
	cursor      int
	levels      []progress.LevelStatus
	table       table.Model
	help        help.Model
	keys        BoardKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewBoardModel creates a board over the named profiles of store.
func NewBoardModel(ctx context.Context, store storage.Provider, profiles []string, width, height int) BoardModel {
	m := BoardModel{
		ctx:         ctx,
		store:       store,
		profiles:    profiles,
		keys:        DefaultBoardKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadProfile()
	return m
}

// createTable creates a new table with one row per level.
func (m *BoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 6},
		{Title: "Mode", Width: 10},
		{Title: "", Width: 2},
		{Title: "tx", Width: 5},
		{Title: "ty", Width: 5},
		{Title: "s", Width: 5},
		{Title: "g", Width: 5},
		{Title: "h", Width: 5},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadProfile reads the selected profile through a throwaway session.
func (m *BoardModel) loadProfile() {
	m.levels = nil
	if len(m.profiles) > 0 && m.store != nil {
		session, err := progress.NewSession(m.ctx, m.store.Profile(m.profiles[m.cursor]), nil, 1)
		if err == nil {
			m.levels = session.Levels()
		}
	}
	m.updateTableRows()
}

func (m *BoardModel) updateTableRows() {
	rows := make([]table.Row, len(m.levels))
	for i, st := range m.levels {
		mark := "•"
		if st.Solved {
			mark = "✓"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", st.Level),
			string(st.Mode),
			mark,
			boardValue(affine.FieldTX, st.Params),
			boardValue(affine.FieldTY, st.Params),
			boardValue(affine.FieldS, st.Params),
			boardValue(affine.FieldG, st.Params),
			boardValue(affine.FieldH, st.Params),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func boardValue(f affine.Field, p affine.Params) string {
	if f == affine.FieldS {
		return fmt.Sprintf("%.1f", f.Get(p))
	}
	return fmt.Sprintf("%.0f", f.Get(p))
}

// Init initializes the board model.
func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the board.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextProfile):
			if len(m.profiles) > 0 {
				m.cursor = (m.cursor + 1) % len(m.profiles)
				m.loadProfile()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevProfile):
			if len(m.profiles) > 0 {
				m.cursor = (m.cursor + len(m.profiles) - 1) % len(m.profiles)
				m.loadProfile()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the board.
func (m BoardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "PROGRESS"
	if len(m.profiles) > 0 {
		title = fmt.Sprintf("PROGRESS - %s", m.profiles[m.cursor])
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showSidebar && len(m.profiles) > 1 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableRendered))
	} else {
		b.WriteString(centerText(tableRendered, m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m BoardModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Profiles\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, name := range m.profiles {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

func (m BoardModel) renderTableContent() string {
	if len(m.levels) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No progress recorded yet.\nPlay a level to get started!")
	}
	return m.table.View()
}

// RunBoard runs the progress board.
func RunBoard(ctx context.Context, store storage.Provider, profiles []string, width, height int) error {
	p := tea.NewProgram(
		NewBoardModel(ctx, store, profiles, width, height),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
