package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/affine-affinity/internal/core"
)

// KeyMap holds the key bindings of the level screen. It doubles as the
// help.KeyMap shown under the screen.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	CoarseLeft  key.Binding
	CoarseRight key.Binding
	PrevLevel   key.Binding
	NextLevel   key.Binding
	Advance     key.Binding
	Jump        key.Binding
	Reset       key.Binding
	ResetAll    key.Binding
	Menu        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev slider")),
		Down:        key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "next slider")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "decrease")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "increase")),
		CoarseLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("shift+←", "decrease ×10")),
		CoarseRight: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("shift+→", "increase ×10")),
		PrevLevel:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev level")),
		NextLevel:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next level")),
		Advance:     key.NewBinding(key.WithKeys("enter", "n"), key.WithHelp("n/enter", "next when solved")),
		Jump:        key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"), key.WithHelp("1-0", "jump to level")),
		Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset level")),
		ResetAll:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset all")),
		Menu:        key.NewBinding(key.WithKeys("m", "esc"), key.WithHelp("m", "levels")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Down, k.Advance, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.CoarseLeft, k.CoarseRight},
		{k.PrevLevel, k.NextLevel, k.Advance, k.Jump},
		{k.Reset, k.ResetAll, k.Menu, k.Help, k.Quit},
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings, for help rendering.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an action. Digit keys return
// ActionNone with the level they jump to (0 selects level 10).
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, level int) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, 0
	case key.Matches(msg, k.CoarseLeft):
		return core.ActionDecreaseCoarse, 0
	case key.Matches(msg, k.CoarseRight):
		return core.ActionIncreaseCoarse, 0
	case key.Matches(msg, k.Up):
		return core.ActionFocusPrev, 0
	case key.Matches(msg, k.Down):
		return core.ActionFocusNext, 0
	case key.Matches(msg, k.Left):
		return core.ActionDecrease, 0
	case key.Matches(msg, k.Right):
		return core.ActionIncrease, 0
	case key.Matches(msg, k.PrevLevel):
		return core.ActionPrevLevel, 0
	case key.Matches(msg, k.NextLevel):
		return core.ActionNextLevel, 0
	case key.Matches(msg, k.Advance):
		return core.ActionAdvance, 0
	case key.Matches(msg, k.ResetAll):
		return core.ActionResetAll, 0
	case key.Matches(msg, k.Reset):
		return core.ActionReset, 0
	case key.Matches(msg, k.Menu):
		return core.ActionMenu, 0
	case key.Matches(msg, k.Help):
		return core.ActionHelp, 0
	case key.Matches(msg, k.Jump):
		return core.ActionNone, digitLevel(msg.String())
	}
	return core.ActionNone, 0
}

func digitLevel(s string) int {
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return 0
	}
	if s[0] == '0' {
		return 10
	}
	return int(s[0] - '0')
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
