package render

import (
	"fmt"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"
	"github.com/gogpu/gg"

	"github.com/vovakirdan/affine-affinity/internal/registry"
)

func init() {
	registry.Register("svg", func(opts registry.Options) registry.Renderer {
		return NewSVG(opts)
	})
}

// SVG renders scenes as standalone SVG documents.
type SVG struct {
	opts registry.Options
}

// NewSVG creates an SVG renderer. Unset options take the stock palette.
func NewSVG(opts registry.Options) *SVG {
	return &SVG{opts: withDefaults(opts)}
}

func (r *SVG) Format() string      { return "svg" }
func (r *SVG) Title() string       { return "SVG image" }
func (r *SVG) ContentType() string { return "image/svg+xml" }

// Render writes the scene as an SVG document.
func (r *SVG) Render(w io.Writer, scene registry.Scene) error {
	width, height := sceneSize(scene, r.opts)
	ew := &errWriter{w: w}

	canvas := svg.New(ew)
	canvas.Start(width, height)
	canvas.Title(fmt.Sprintf("Level %d %s", scene.Level, scene.Kind))
	canvas.Rect(0, 0, width, height, "fill:"+r.opts.Background)

	canvas.Gtransform(svgMatrix(fitMatrix(width, height)))
	if scene.Kind == registry.KindLive {
		canvas.Gtransform(svgMatrix(GhostMatrix()))
		r.shapes(canvas, func(Paint) string {
			return "fill:none;stroke-width:2;stroke-dasharray:6 4;stroke:" + r.opts.Ghost
		})
		canvas.Gend()
	}
	canvas.Gtransform(svgMatrix(StageMatrix(scene.Transform)))
	r.shapes(canvas, func(p Paint) string {
		return "fill:" + paintColor(p, r.opts)
	})
	canvas.Gend()
	canvas.Gend()
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("render: cannot write svg: %w", ew.err)
	}
	return nil
}

func (r *SVG) shapes(canvas *svg.SVG, style func(Paint) string) {
	for _, s := range Mascot {
		switch s.Kind {
		case ShapeRect:
			canvas.Rect(s.X, s.Y, s.W, s.H, style(s.Paint))
		case ShapeCircle:
			canvas.Circle(s.X, s.Y, s.R, style(s.Paint))
		case ShapePolygon:
			xs := make([]int, len(s.Points))
			ys := make([]int, len(s.Points))
			for i, pt := range s.Points {
				xs[i], ys[i] = pt[0], pt[1]
			}
			canvas.Polygon(xs, ys, style(s.Paint))
		}
	}
}

// svgMatrix formats m as an SVG transform attribute, whose argument order
// is column-major.
func svgMatrix(m gg.Matrix) string {
	return fmt.Sprintf("matrix(%s %s %s %s %s %s)",
		svgNumber(m.A), svgNumber(m.D),
		svgNumber(m.B), svgNumber(m.E),
		svgNumber(m.C), svgNumber(m.F))
}

func svgNumber(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
