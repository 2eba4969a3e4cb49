// Package affinity is the playable AffineAffinity level screen: focus and
// slider handling, navigation, mouse hit-testing and drawing into a
// core.Screen. Persistence goes through the progress.Session it wraps.
package affinity

import (
	"context"
	"fmt"

	"github.com/vovakirdan/affine-affinity/internal/affine"
	"github.com/vovakirdan/affine-affinity/internal/core"
	"github.com/vovakirdan/affine-affinity/internal/progress"
)

// Game drives one player's session from abstract actions.
type Game struct {
	session *progress.Session
	cfg     core.RuntimeConfig
	focus   int // index into the level's controls
	grab    int // track held by the mouse, -1 when none
	status  string

	// Hit areas recorded by the last Render.
	tracks   []track
	levels   [affine.LevelCount]core.Rect
	next     core.Rect
	resetAll core.Rect
}

type track struct {
	field affine.Field
	rect  core.Rect
}

// New creates a game over session.
func New(session *progress.Session, cfg core.RuntimeConfig) *Game {
	g := &Game{session: session, grab: -1}
	g.Reset(cfg)
	return g
}

// Reset applies new terminal geometry and settings. Session state is kept.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	def := core.DefaultConfig()
	if cfg.SliderWidth < 3 {
		cfg.SliderWidth = def.SliderWidth
	}
	if cfg.CoarseStep < 1 {
		cfg.CoarseStep = def.CoarseStep
	}
	if cfg.ImageW < 4 || cfg.ImageH < 2 {
		cfg.ImageW, cfg.ImageH = def.ImageW, def.ImageH
	}
	g.cfg = cfg
	g.clampFocus()
}

// Resize updates the screen dimensions.
func (g *Game) Resize(w, h int) {
	g.cfg.ScreenW = w
	g.cfg.ScreenH = h
}

// Session returns the wrapped session.
func (g *Game) Session() *progress.Session {
	return g.session
}

// Status returns the last status line message.
func (g *Game) Status() string {
	return g.status
}

// Controls returns the sliders of the current level.
func (g *Game) Controls() []affine.Field {
	return affine.ControlsFor(g.session.Level())
}

// Focus returns the focused slider.
func (g *Game) Focus() affine.Field {
	return g.Controls()[g.focus]
}

func (g *Game) clampFocus() {
	g.focus = core.Clamp(g.focus, 0, len(g.Controls())-1)
}

// Handle applies one action. Persistence failures are returned and also
// shown on the status line; the in-memory state has changed either way.
func (g *Game) Handle(ctx context.Context, a core.Action) error {
	g.status = ""
	var err error

	switch a {
	case core.ActionFocusPrev:
		n := len(g.Controls())
		g.focus = (g.focus + n - 1) % n
	case core.ActionFocusNext:
		g.focus = (g.focus + 1) % len(g.Controls())
	case core.ActionDecrease, core.ActionIncrease, core.ActionDecreaseCoarse, core.ActionIncreaseCoarse:
		err = g.step(ctx, a.Delta(g.cfg.CoarseStep))
	case core.ActionPrevLevel:
		err = g.session.Prev(ctx)
		g.levelChanged()
	case core.ActionNextLevel:
		err = g.session.Next(ctx)
		g.levelChanged()
	case core.ActionAdvance:
		var moved bool
		moved, err = g.session.Advance(ctx)
		if moved {
			g.levelChanged()
		} else if err == nil {
			g.status = g.advanceHint()
		}
	case core.ActionReset:
		err = g.session.ResetLevel(ctx)
		g.status = fmt.Sprintf("Level %d reset", g.session.Level())
	case core.ActionResetAll:
		if !g.session.AllSolved() {
			g.status = "Reset all unlocks once every level is solved"
			return nil
		}
		err = g.session.ResetAll(ctx)
		g.levelChanged()
		g.status = "Progress cleared"
	}

	return g.report(err)
}

// GoTo jumps to level.
func (g *Game) GoTo(ctx context.Context, level int) error {
	g.status = ""
	err := g.session.GoTo(ctx, level)
	if err == nil {
		g.levelChanged()
	}
	return g.report(err)
}

// Click handles a mouse press at screen cell (x, y) using the hit areas
// of the last Render. It reports whether the click hit anything. A press
// on a slider track grabs it for Drag until Release.
func (g *Game) Click(ctx context.Context, x, y int) (bool, error) {
	g.grab = -1
	for i, t := range g.tracks {
		if !t.rect.Contains(x, y) {
			continue
		}
		g.focus = i
		g.grab = i
		return true, g.slide(ctx, t, x)
	}
	for i, r := range g.levels {
		if r.Contains(x, y) {
			return true, g.GoTo(ctx, i+1)
		}
	}
	if g.next.Contains(x, y) {
		return true, g.Handle(ctx, core.ActionAdvance)
	}
	if g.resetAll.Contains(x, y) {
		return true, g.Handle(ctx, core.ActionResetAll)
	}
	return false, nil
}

// Drag moves the grabbed slider to column x. Columns past either end of the
// track pin the slider to that end; the row is ignored. It reports whether
// a slider is grabbed.
func (g *Game) Drag(ctx context.Context, x int) (bool, error) {
	if g.grab < 0 || g.grab >= len(g.tracks) {
		return false, nil
	}
	return true, g.slide(ctx, g.tracks[g.grab], x)
}

// Release lets go of the grabbed slider.
func (g *Game) Release() {
	g.grab = -1
}

// Dragging reports whether a slider is grabbed.
func (g *Game) Dragging() bool {
	return g.grab >= 0
}

func (g *Game) slide(ctx context.Context, t track, x int) error {
	g.status = ""
	v := affine.FromFraction(t.field, t.rect.Fraction(x))
	return g.report(g.session.SetParam(ctx, t.field, v))
}

func (g *Game) step(ctx context.Context, delta int) error {
	f := g.Focus()
	v := affine.Step(f, f.Get(g.session.Params()), delta)
	return g.session.SetParam(ctx, f, v)
}

func (g *Game) levelChanged() {
	g.focus = 0
	g.grab = -1
	g.clampFocus()
}

func (g *Game) advanceHint() string {
	if affine.IsTerminal(g.session.Level()) && g.session.CurrentSolved() {
		return "congrats! that was the last level"
	}
	return "Match the goal image to unlock the next level"
}

func (g *Game) report(err error) error {
	if err != nil {
		g.status = err.Error()
	}
	return err
}
