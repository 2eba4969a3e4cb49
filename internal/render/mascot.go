// Package render draws Scotty, the level mascot, in every output format the
// game offers. Each renderer registers itself with the registry package.
package render

import (
	"fmt"

	"github.com/gogpu/gg"

	"github.com/vovakirdan/affine-affinity/internal/affine"
	"github.com/vovakirdan/affine-affinity/internal/progress"
	"github.com/vovakirdan/affine-affinity/internal/registry"
)

// MascotSize is the edge of the box Scotty is drawn in. Transforms pivot
// around the centre of that box.
const MascotSize = 236

// StageSize is the edge of the square every image shows. The mascot box
// sits in its middle, leaving room for translation and growth.
const StageSize = 2 * MascotSize

// Paint is the role of a shape's fill.
type Paint int

const (
	PaintBody Paint = iota
	PaintAccent
	PaintEye
)

// ShapeKind selects how a Shape's coordinates are read.
type ShapeKind int

const (
	ShapeRect    ShapeKind = iota // X, Y, W, H
	ShapeCircle                   // X, Y centre and R
	ShapePolygon                  // Points
)

// Shape is one primitive of the mascot in mascot-box coordinates.
type Shape struct {
	Kind       ShapeKind
	X, Y, W, H int
	R          int
	Points     [][2]int
	Paint      Paint
}

// Mascot lists Scotty's shapes back to front.
var Mascot = []Shape{
	{Kind: ShapePolygon, Points: [][2]int{{40, 110}, {26, 56}, {58, 104}}},
	{Kind: ShapeRect, X: 40, Y: 100, W: 140, H: 62},
	{Kind: ShapeRect, X: 48, Y: 150, W: 22, H: 44},
	{Kind: ShapeRect, X: 80, Y: 150, W: 22, H: 44},
	{Kind: ShapeRect, X: 142, Y: 150, W: 22, H: 44},
	{Kind: ShapeRect, X: 168, Y: 150, W: 22, H: 44},
	{Kind: ShapeRect, X: 150, Y: 64, W: 58, H: 50},
	{Kind: ShapePolygon, Points: [][2]int{{156, 66}, {166, 30}, {180, 66}}},
	{Kind: ShapeRect, X: 200, Y: 80, W: 26, H: 26},
	{Kind: ShapePolygon, Points: [][2]int{{196, 106}, {226, 106}, {206, 124}}},
	{Kind: ShapeRect, X: 146, Y: 108, W: 12, H: 34, Paint: PaintAccent},
	{Kind: ShapeCircle, X: 188, Y: 80, R: 5, Paint: PaintEye},
}

// Contains reports whether the mascot-box point (x, y) is inside the shape.
func (s Shape) Contains(x, y float64) bool {
	switch s.Kind {
	case ShapeRect:
		return x >= float64(s.X) && x < float64(s.X+s.W) &&
			y >= float64(s.Y) && y < float64(s.Y+s.H)
	case ShapeCircle:
		dx, dy := x-float64(s.X), y-float64(s.Y)
		return dx*dx+dy*dy <= float64(s.R*s.R)
	case ShapePolygon:
		return insidePolygon(s.Points, x, y)
	}
	return false
}

// insidePolygon is the even-odd ray casting test.
func insidePolygon(pts [][2]int, x, y float64) bool {
	in := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		xi, yi := float64(pts[i][0]), float64(pts[i][1])
		xj, yj := float64(pts[j][0]), float64(pts[j][1])
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			in = !in
		}
	}
	return in
}

// PaintAt returns the paint of the topmost shape covering (x, y).
func PaintAt(x, y float64) (Paint, bool) {
	for i := len(Mascot) - 1; i >= 0; i-- {
		if Mascot[i].Contains(x, y) {
			return Mascot[i].Paint, true
		}
	}
	return 0, false
}

// offset places the mascot box in the middle of the stage.
var offset = gg.Translate(MascotSize/2, MascotSize/2)

// StageMatrix maps mascot-box coordinates to stage coordinates for vt,
// pivoting about the centre of the mascot box.
func StageMatrix(vt affine.VisualTransform) gg.Matrix {
	return offset.Multiply(about(TransformMatrix(vt), MascotSize/2, MascotSize/2))
}

// GhostMatrix maps the untransformed mascot onto the stage.
func GhostMatrix() gg.Matrix {
	return offset
}

// GoalScene returns the goal image of level.
func GoalScene(level int) (registry.Scene, error) {
	vt, ok := affine.GoalTransform(level)
	if !ok {
		return registry.Scene{}, fmt.Errorf("%w: %d", progress.ErrLevelNotFound, level)
	}
	return registry.Scene{Level: level, Kind: registry.KindGoal, Transform: vt}, nil
}

// LiveScene returns the player's image of level for p.
func LiveScene(level int, p affine.Params) (registry.Scene, error) {
	if !affine.ValidLevel(level) {
		return registry.Scene{}, fmt.Errorf("%w: %d", progress.ErrLevelNotFound, level)
	}
	return registry.Scene{
		Level:     level,
		Kind:      registry.KindLive,
		Transform: affine.ToVisualTransform(level, p),
	}, nil
}

// SceneFor builds the scene of kind from a session snapshot.
func SceneFor(kind registry.Kind, snap progress.Snapshot) registry.Scene {
	vt := snap.Live
	if kind == registry.KindGoal {
		vt = snap.Goal
	}
	return registry.Scene{Level: snap.Level, Kind: kind, Transform: vt}
}

// withDefaults fills unset options from the stock palette.
func withDefaults(opts registry.Options) registry.Options {
	if opts.Size <= 0 {
		opts.Size = MascotSize
	}
	if opts.Background == "" {
		opts.Background = "#ffffff"
	}
	if opts.Body == "" {
		opts.Body = "#3f3f3f"
	}
	if opts.Accent == "" {
		opts.Accent = "#ff4040"
	}
	if opts.Ghost == "" {
		opts.Ghost = "#bebebe"
	}
	return opts
}

// sceneSize returns the output size in pixels.
func sceneSize(scene registry.Scene, opts registry.Options) (int, int) {
	w, h := scene.Width, scene.Height
	if w <= 0 {
		w = opts.Size
	}
	if h <= 0 {
		h = w
	}
	return w, h
}

// fitMatrix scales the stage to a w×h image, preserving aspect ratio and
// centring it.
func fitMatrix(w, h int) gg.Matrix {
	k := float64(min(w, h)) / StageSize
	return gg.Translate((float64(w)-k*StageSize)/2, (float64(h)-k*StageSize)/2).
		Multiply(gg.Scale(k, k))
}

func paintColor(p Paint, opts registry.Options) string {
	switch p {
	case PaintAccent:
		return opts.Accent
	case PaintEye:
		return opts.Background
	}
	return opts.Body
}
