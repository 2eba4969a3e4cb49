package affinity

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/affine-affinity/internal/affine"
	"github.com/vovakirdan/affine-affinity/internal/core"
	"github.com/vovakirdan/affine-affinity/internal/progress"
	"github.com/vovakirdan/affine-affinity/internal/registry"
	"github.com/vovakirdan/affine-affinity/internal/render"
)

const (
	margin      = 1
	maxText     = 100
	matrixCellW = 5
	minImageH   = 4
	minScreenW  = 40
	minScreenH  = 14
)

// Render draws the level screen and records the hit areas used by Click.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.tracks = g.tracks[:0]
	g.levels = [affine.LevelCount]core.Rect{}
	g.next, g.resetAll = core.Rect{}, core.Rect{}

	w, h := dst.Width(), dst.Height()
	if w < minScreenW || h < minScreenH {
		dst.DrawTextCentered(h/2, "Terminal too small", core.ColorWarning)
		dst.DrawTextCentered(h/2+1, fmt.Sprintf("need %dx%d", minScreenW, minScreenH), core.ColorMuted)
		return
	}

	snap := g.session.Snapshot()
	levels := g.session.Levels()

	g.renderHeader(dst, snap, levels)

	controls := len(snap.Controls)
	blockH := max(3, controls)
	footerH := 2
	imagesH := g.cfg.ImageH + 2 // border
	fixed := 3 + 1 + blockH + 1 + 1 + 1 + footerH

	textW := min(w-2*margin, maxText)
	lesson := lessonLines(snap.Lesson, textW)
	room := h - fixed - imagesH
	if room < 2 {
		// Give the lesson at least its action line by shrinking the images.
		room = max(2, h-fixed-minImageH-2)
	}
	if len(lesson) > room {
		lesson = append(lesson[:max(room-1, 0)], lessonLine{text: "…", color: core.ColorMuted})
	}

	y := 3
	for _, line := range lesson {
		dst.DrawTextColor(margin, y, line.text, line.color)
		y++
	}
	y++

	g.renderMatrix(dst, snap, margin, y+(blockH-3)/2)
	g.renderSliders(dst, snap, margin+3*matrixCellW+6, y)
	y += blockH + 1

	imgH := min(g.cfg.ImageH, h-y-footerH-3)
	imgW := min(g.cfg.ImageW, 2*imgH, (w-2*margin-6)/2)
	if imgH >= minImageH && imgW >= 2*minImageH {
		g.renderImages(dst, snap, y, imgW, imgH)
		if snap.Terminal && snap.Solved {
			drawBanner(dst, y+1+imgH/2, "congrats!", "every transformation matched")
		}
		y += imgH + 3
	}

	g.renderFooter(dst, snap, min(y, h-footerH))
}

func (g *Game) renderHeader(dst *core.Screen, snap progress.Snapshot, levels []progress.LevelStatus) {
	x := dst.DrawTextColor(margin, 0, "AffineAffinity", core.ColorTitle)
	x = dst.DrawTextColor(x+2, 0, fmt.Sprintf("Level %d/%d", snap.Level, affine.LevelCount), core.ColorDefault)
	x = dst.DrawTextColor(x+2, 0, string(snap.Mode), core.ColorMuted)
	if snap.Solved {
		dst.DrawTextColor(x+2, 0, "✓ solved", core.ColorSolved)
	}

	x = dst.DrawTextColor(margin, 1, "Levels ", core.ColorMuted)
	for _, st := range levels {
		mark, color := "•", core.ColorMuted
		if st.Solved {
			mark, color = "✓", core.ColorSolved
		}
		label := fmt.Sprintf(" %d%s ", st.Level, mark)
		if st.Level == snap.Level {
			label = fmt.Sprintf("[%d%s]", st.Level, mark)
			color = core.ColorFocus
		}
		start := x
		x = dst.DrawTextColor(x, 1, label, color)
		g.levels[st.Level-1] = core.NewRect(start, 1, x-start, 1)
	}
}

func (g *Game) renderMatrix(dst *core.Screen, snap progress.Snapshot, x, y int) {
	for r, row := range snap.Matrix {
		cx := dst.DrawTextColor(x, y+r, "│", core.ColorMuted)
		for _, cell := range row {
			color := core.ColorMuted
			if cell.Live {
				color = core.FieldColors[cell.Field]
			}
			cx = dst.DrawTextColor(cx, y+r, fmt.Sprintf("%*s", matrixCellW, cell.Text), color)
		}
		dst.DrawTextColor(cx+1, y+r, "│", core.ColorMuted)
	}
}

func (g *Game) renderSliders(dst *core.Screen, snap progress.Snapshot, x, y int) {
	width := g.cfg.SliderWidth
	for i, f := range g.Controls() {
		row := y + i
		labelColor := core.ColorDefault
		pointer := "  "
		if i == g.focus {
			labelColor = core.ColorFocus
			pointer = "▶ "
		}
		cx := dst.DrawTextColor(x, row, pointer, core.ColorFocus)
		cx = dst.DrawTextColor(cx, row, fmt.Sprintf("%-2s ", f), labelColor)

		lo, hi := f.Range()
		cx = dst.DrawTextColor(cx, row, fmt.Sprintf("%4s ", formatValue(f, lo)), core.ColorMuted)

		rect := core.NewRect(cx, row, width, 1)
		dst.DrawHLine(cx, row, width, '─', core.ColorMuted)
		v := f.Get(snap.Params)
		knob := int(math.Round(affine.Fraction(f, v) * float64(width-1)))
		dst.SetColor(cx+knob, row, '●', core.FieldColors[f])
		g.tracks = append(g.tracks, track{field: f, rect: rect})

		cx = dst.DrawTextColor(rect.Right()+1, row, formatValue(f, hi), core.ColorMuted)
		dst.DrawTextColor(cx+2, row, fmt.Sprintf("%s = %s", f, formatValue(f, v)), core.FieldColors[f])
	}
}

func (g *Game) renderImages(dst *core.Screen, snap progress.Snapshot, y, imgW, imgH int) {
	left := core.NewRect(margin, y+1, imgW+2, imgH+2)
	right := core.NewRect(left.Right()+2, y+1, imgW+2, imgH+2)

	dst.DrawTextColor(left.X+1, y, "Goal", core.ColorGoal)
	dst.DrawTextColor(right.X+1, y, "Scotty", core.ColorLive)
	dst.DrawBox(left, core.ColorMuted)
	dst.DrawBox(right, core.ColorMuted)

	for _, side := range []struct {
		kind registry.Kind
		box  core.Rect
	}{{registry.KindGoal, left}, {registry.KindLive, right}} {
		img := core.NewScreen(imgW, imgH)
		render.DrawASCII(img, render.SceneFor(side.kind, snap))
		dst.Blit(img, side.box.X+1, side.box.Y+1)
	}
}

func (g *Game) renderFooter(dst *core.Screen, snap progress.Snapshot, y int) {
	var label string
	color := core.ColorMuted
	switch {
	case snap.Terminal && snap.Solved:
		label, color = "[ congrats! ]", core.ColorSolved
	case snap.CanAdvance:
		label, color = "[ Next → ]", core.ColorSolved
	default:
		label = "[ Next → ]"
	}
	x := dst.DrawTextColor(margin, y, label, color)
	g.next = core.NewRect(margin, y, x-margin, 1)

	if snap.AllSolved {
		start := x + 2
		x = dst.DrawTextColor(start, y, "[ Reset all ]", core.ColorWarning)
		g.resetAll = core.NewRect(start, y, x-start, 1)
	}

	if g.status != "" {
		dst.DrawTextColor(margin, y+1, g.status, core.ColorWarning)
	}
}

// drawBanner draws a boxed message centered horizontally around row mid.
func drawBanner(dst *core.Screen, mid int, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	box := core.NewRect((dst.Width()-boxW)/2, mid-2, boxW, 5)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorSolved)
	dst.DrawTextCentered(box.Y+1, title, core.ColorSolved)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorDefault)
}

type lessonLine struct {
	text  string
	color core.Color
}

func lessonLines(l affine.Lesson, width int) []lessonLine {
	var out []lessonLine
	add := func(text string, color core.Color, indent string) {
		for _, line := range wrap(text, width-len([]rune(indent))) {
			out = append(out, lessonLine{text: indent + line, color: color})
			indent = strings.Repeat(" ", len([]rune(indent)))
		}
	}
	add(l.Intro, core.ColorDefault, "")
	add(l.Info, core.ColorDefault, "")
	for _, b := range l.Bullets {
		add(b, core.ColorDefault, "• ")
	}
	for _, line := range strings.Split(l.Formula, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, lessonLine{text: "  " + line, color: core.ColorMuted})
		}
	}
	add(l.Action, core.ColorTitle, "")
	return out
}

// wrap breaks text into lines of at most width cells at spaces.
// Words longer than width are cut.
func wrap(text string, width int) []string {
	width = max(width, 1)
	wrapped := ansi.Hardwrap(ansi.Wordwrap(text, width, ""), width, false)
	var lines []string
	for _, line := range strings.Split(wrapped, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func formatValue(f affine.Field, v float64) string {
	if f == affine.FieldS {
		return fmt.Sprintf("%.1f", v)
	}
	return fmt.Sprintf("%.0f", v)
}
