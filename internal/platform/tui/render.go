package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/affine-affinity/internal/core"
)

// colorStyles maps core.Color roles to lipgloss styles. Parameter colors
// follow the slider colors of the web version.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorMuted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorTitle:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorGoal:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8a8a")),
	core.ColorLive:    lipgloss.NewStyle().Foreground(lipgloss.Color("#3f3f3f")).Background(lipgloss.Color("252")),
	core.ColorGhost:   lipgloss.NewStyle().Foreground(lipgloss.Color("#bebebe")),
	core.ColorTX:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6ca512")),
	core.ColorTY:      lipgloss.NewStyle().Foreground(lipgloss.Color("#8000af")),
	core.ColorScale:   lipgloss.NewStyle().Foreground(lipgloss.Color("#1cafbf")),
	core.ColorShearG:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9d00")),
	core.ColorShearH:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ec2da0")),
	core.ColorSolved:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorFocus:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
