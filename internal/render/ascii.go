package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/vovakirdan/affine-affinity/internal/core"
	"github.com/vovakirdan/affine-affinity/internal/registry"
)

// Default terminal image size in cells. Cells are about twice as tall as
// wide, so this is a square image.
const (
	DefaultCellsW = 36
	DefaultCellsH = 18
)

func init() {
	registry.Register("txt", func(opts registry.Options) registry.Renderer {
		return NewASCII(opts)
	})
}

// ASCII renders scenes as block characters for terminals.
type ASCII struct {
	opts registry.Options
}

// NewASCII creates a text renderer.
func NewASCII(opts registry.Options) *ASCII {
	return &ASCII{opts: withDefaults(opts)}
}

func (r *ASCII) Format() string      { return "txt" }
func (r *ASCII) Title() string       { return "Terminal text" }
func (r *ASCII) ContentType() string { return "text/plain; charset=utf-8" }

// Render draws the scene into a text grid and writes its rows.
func (r *ASCII) Render(w io.Writer, scene registry.Scene) error {
	width, height := scene.Width, scene.Height
	if width <= 0 {
		width = DefaultCellsW
	}
	if height <= 0 {
		height = width / 2
	}

	screen := core.NewScreen(width, height)
	DrawASCII(screen, scene)

	bw := bufio.NewWriter(w)
	for y := 0; y < screen.Height(); y++ {
		bw.WriteString(screen.Row(y))
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("render: cannot write text: %w", err)
	}
	return nil
}

// DrawASCII fills dst with the scene. Each cell samples the mascot at its
// centre through the inverse stage transform. Live scenes also show the
// untransformed outline as dots.
func DrawASCII(dst *core.Screen, scene registry.Scene) {
	w, h := dst.Width(), dst.Height()
	if w == 0 || h == 0 {
		return
	}

	color := core.ColorGoal
	if scene.Kind == registry.KindLive {
		color = core.ColorLive
	}

	inv, visible := invert(StageMatrix(scene.Transform))
	ghost := GhostMatrix().Invert()

	unit := float64(StageSize) / float64(w)
	for cy := 0; cy < h; cy++ {
		sy := StageSize/2 + (float64(cy)+0.5-float64(h)/2)*2*unit
		for cx := 0; cx < w; cx++ {
			sx := (float64(cx) + 0.5) * unit

			if visible {
				if paint, ok := PaintAt(apply(inv, sx, sy)); ok {
					dst.SetColor(cx, cy, paintRune(paint), paintCellColor(paint, color))
					continue
				}
			}
			if scene.Kind == registry.KindLive {
				if _, ok := PaintAt(apply(ghost, sx, sy)); ok {
					dst.SetColor(cx, cy, '·', core.ColorGhost)
				}
			}
		}
	}
}

func paintRune(p Paint) rune {
	switch p {
	case PaintAccent:
		return '▓'
	case PaintEye:
		return 'o'
	}
	return '█'
}

func paintCellColor(p Paint, body core.Color) core.Color {
	if p == PaintAccent {
		return core.ColorWarning
	}
	return body
}
