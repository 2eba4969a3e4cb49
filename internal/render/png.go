package render

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"

	"github.com/vovakirdan/affine-affinity/internal/registry"
)

func init() {
	registry.Register("png", func(opts registry.Options) registry.Renderer {
		return NewPNG(opts)
	})
}

// PNG rasterises scenes with the gg software renderer.
type PNG struct {
	opts registry.Options
}

// NewPNG creates a PNG renderer. Unset options take the stock palette.
func NewPNG(opts registry.Options) *PNG {
	return &PNG{opts: withDefaults(opts)}
}

func (r *PNG) Format() string      { return "png" }
func (r *PNG) Title() string       { return "PNG image" }
func (r *PNG) ContentType() string { return "image/png" }

// Render rasterises the scene and writes it as PNG.
func (r *PNG) Render(w io.Writer, scene registry.Scene) error {
	width, height := sceneSize(scene, r.opts)
	dc := gg.NewContext(width, height)
	defer dc.Close()

	dc.ClearWithColor(gg.Hex(r.opts.Background))
	fit := fitMatrix(width, height)

	if scene.Kind == registry.KindLive {
		dc.Push()
		dc.Transform(fit.Multiply(GhostMatrix()))
		dc.SetHexColor(r.opts.Ghost)
		dc.SetLineWidth(2)
		for _, s := range Mascot {
			r.path(dc, s)
			if err := dc.Stroke(); err != nil {
				dc.Pop()
				return fmt.Errorf("render: cannot stroke ghost: %w", err)
			}
		}
		dc.Pop()
	}

	m := fit.Multiply(StageMatrix(scene.Transform))
	// A zero scale collapses the mascot to a point; there is nothing to fill.
	if _, ok := invert(m); ok {
		dc.Push()
		dc.Transform(m)
		for _, s := range Mascot {
			dc.SetHexColor(paintColor(s.Paint, r.opts))
			r.path(dc, s)
			if err := dc.Fill(); err != nil {
				dc.Pop()
				return fmt.Errorf("render: cannot fill mascot: %w", err)
			}
		}
		dc.Pop()
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("render: cannot encode png: %w", err)
	}
	return nil
}

func (r *PNG) path(dc *gg.Context, s Shape) {
	switch s.Kind {
	case ShapeRect:
		dc.DrawRectangle(float64(s.X), float64(s.Y), float64(s.W), float64(s.H))
	case ShapeCircle:
		dc.DrawCircle(float64(s.X), float64(s.Y), float64(s.R))
	case ShapePolygon:
		for i, pt := range s.Points {
			if i == 0 {
				dc.MoveTo(float64(pt[0]), float64(pt[1]))
				continue
			}
			dc.LineTo(float64(pt[0]), float64(pt[1]))
		}
		dc.ClosePath()
	}
}
