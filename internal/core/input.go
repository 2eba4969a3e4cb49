package core

// Action is a semantic player intent, abstracted from physical keys and
// mouse buttons so the game never sees terminal events.
type Action int

const (
	ActionNone           Action = iota
	ActionFocusPrev             // Up, K - previous slider
	ActionFocusNext             // Down, J, Tab - next slider
	ActionDecrease              // Left, H - one notch down
	ActionIncrease              // Right, L - one notch up
	ActionDecreaseCoarse        // Shift+Left - coarse step down
	ActionIncreaseCoarse        // Shift+Right - coarse step up
	ActionPrevLevel             // [ - previous level
	ActionNextLevel             // ] - next level
	ActionAdvance               // Enter, N - follow the next button once solved
	ActionReset                 // R - reset the current level
	ActionResetAll              // Shift+R - clear all progress
	ActionMenu                  // M, Esc - level picker
	ActionHelp                  // ? - toggle full help
	ActionQuit                  // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFocusPrev:
		return "FocusPrev"
	case ActionFocusNext:
		return "FocusNext"
	case ActionDecrease:
		return "Decrease"
	case ActionIncrease:
		return "Increase"
	case ActionDecreaseCoarse:
		return "DecreaseCoarse"
	case ActionIncreaseCoarse:
		return "IncreaseCoarse"
	case ActionPrevLevel:
		return "PrevLevel"
	case ActionNextLevel:
		return "NextLevel"
	case ActionAdvance:
		return "Advance"
	case ActionReset:
		return "Reset"
	case ActionResetAll:
		return "ResetAll"
	case ActionMenu:
		return "Menu"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Delta returns the notch delta of a value-changing action and the coarse
// step multiplier it uses.
func (a Action) Delta(coarse int) int {
	switch a {
	case ActionDecrease:
		return -1
	case ActionIncrease:
		return 1
	case ActionDecreaseCoarse:
		return -coarse
	case ActionIncreaseCoarse:
		return coarse
	}
	return 0
}
