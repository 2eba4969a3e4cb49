package render

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/gg"

	"github.com/vovakirdan/affine-affinity/internal/affine"
	"github.com/vovakirdan/affine-affinity/internal/core"
	"github.com/vovakirdan/affine-affinity/internal/progress"
	"github.com/vovakirdan/affine-affinity/internal/registry"
)

func TestPaintAt(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		paint  Paint
		inside bool
	}{
		{"body", 100, 130, PaintBody, true},
		{"eye", 188, 80, PaintEye, true},
		{"collar", 150, 120, PaintAccent, true},
		{"ear tip", 166, 40, PaintBody, true},
		{"empty corner", 5, 5, 0, false},
		{"between legs", 120, 185, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paint, ok := PaintAt(tt.x, tt.y)
			if ok != tt.inside || paint != tt.paint {
				t.Errorf("PaintAt(%v, %v) = %v, %v, expected %v, %v", tt.x, tt.y, paint, ok, tt.paint, tt.inside)
			}
		})
	}
}

func TestStageMatrix(t *testing.T) {
	m := StageMatrix(affine.ToVisualTransform(1, affine.DefaultParams()))
	if x, y := apply(m, 0, 0); x != 118 || y != 118 {
		t.Errorf("identity maps origin to (%v, %v), expected (118, 118)", x, y)
	}

	// Scaling pivots about the centre of the mascot box.
	m = StageMatrix(affine.VisualTransform{Scale: 2})
	if x, y := apply(m, 118, 118); x != 236 || y != 236 {
		t.Errorf("centre moved to (%v, %v), expected (236, 236)", x, y)
	}
	if x, y := apply(m, 0, 0); x != 0 || y != 0 {
		t.Errorf("scaled corner = (%v, %v), expected (0, 0)", x, y)
	}
}

func TestScenes(t *testing.T) {
	scene, err := GoalScene(3)
	if err != nil {
		t.Fatalf("GoalScene(3) failed: %v", err)
	}
	if scene.Kind != registry.KindGoal || scene.Transform.Scale != 0.5 {
		t.Errorf("unexpected goal scene %+v", scene)
	}

	if _, err := GoalScene(11); !errors.Is(err, progress.ErrLevelNotFound) {
		t.Errorf("GoalScene(11) error = %v", err)
	}

	// Shear is ignored before level 5.
	live, err := LiveScene(4, affine.Params{S: 1, G: 30, H: 30})
	if err != nil {
		t.Fatalf("LiveScene failed: %v", err)
	}
	if live.Transform.SkewX != 0 || live.Transform.SkewY != 0 {
		t.Errorf("level 4 scene should not shear, got %+v", live.Transform)
	}

	if _, err := LiveScene(0, affine.DefaultParams()); !errors.Is(err, progress.ErrLevelNotFound) {
		t.Errorf("LiveScene(0) error = %v", err)
	}
}

func TestSVGRender(t *testing.T) {
	r := NewSVG(registry.Options{})
	goal, _ := GoalScene(1)

	var buf bytes.Buffer
	if err := r.Render(&buf, goal); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"<svg", "Level 1 goal", "matrix(1 0 0 1 138 138)", "fill:#ff4040", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg output missing %q", want)
		}
	}
	if strings.Contains(out, "stroke-dasharray") {
		t.Error("goal image should not draw the ghost outline")
	}

	live, _ := LiveScene(1, affine.DefaultParams())
	buf.Reset()
	if err := r.Render(&buf, live); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "stroke-dasharray") {
		t.Error("live image should draw the ghost outline")
	}
}

func TestSVGMatrix(t *testing.T) {
	got := svgMatrix(gg.Matrix{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6})
	if got != "matrix(1 4 2 5 3 6)" {
		t.Errorf("svgMatrix = %q", got)
	}
	if got := svgMatrix(gg.Matrix{A: math.Copysign(0, -1), E: 1}); got != "matrix(0 0 0 1 0 0)" {
		t.Errorf("negative zero should print as 0, got %q", got)
	}
}

func TestPNGRender(t *testing.T) {
	r := NewPNG(registry.Options{Size: 64})
	live, _ := LiveScene(9, affine.Params{TX: -20, S: 2, G: 15})

	var buf bytes.Buffer
	if err := r.Render(&buf, live); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("output is not a PNG")
	}

	// Zero scale must not fail.
	buf.Reset()
	flat, _ := LiveScene(3, affine.Params{S: 0})
	if err := r.Render(&buf, flat); err != nil {
		t.Errorf("zero scale Render failed: %v", err)
	}
}

func countRune(s *core.Screen, r rune) int {
	n := 0
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) == r {
				n++
			}
		}
	}
	return n
}

func TestDrawASCII(t *testing.T) {
	identity := core.NewScreen(DefaultCellsW, DefaultCellsH)
	live, _ := LiveScene(3, affine.DefaultParams())
	DrawASCII(identity, live)

	full := countRune(identity, '█')
	if full == 0 {
		t.Fatal("identity image should draw the mascot")
	}
	if countRune(identity, '·') != 0 {
		t.Error("ghost should be hidden under an untransformed mascot")
	}
	if identity.GetCell(DefaultCellsW/2, DefaultCellsH/2).Color == core.ColorGoal {
		t.Error("live image should use the live color")
	}

	small := core.NewScreen(DefaultCellsW, DefaultCellsH)
	goal, _ := GoalScene(3)
	DrawASCII(small, goal)
	if got := countRune(small, '█'); got == 0 || got >= full {
		t.Errorf("half scale goal drew %d cells, identity drew %d", got, full)
	}

	flat := core.NewScreen(DefaultCellsW, DefaultCellsH)
	zero, _ := LiveScene(3, affine.Params{S: 0})
	DrawASCII(flat, zero)
	if countRune(flat, '█') != 0 {
		t.Error("zero scale should draw no mascot cells")
	}
	if countRune(flat, '·') == 0 {
		t.Error("zero scale should still show the ghost outline")
	}
}

func TestRegisteredRenderers(t *testing.T) {
	for _, format := range []string{"svg", "png", "txt"} {
		if !registry.Exists(format) {
			t.Errorf("%s renderer not registered", format)
		}
	}

	r, err := registry.Create("txt", registry.Options{})
	if err != nil {
		t.Fatalf("Create(txt) failed: %v", err)
	}
	goal, _ := GoalScene(1)
	goal.Width, goal.Height = 20, 10

	var buf bytes.Buffer
	if err := r.Render(&buf, goal); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 10 {
		t.Errorf("text render has %d lines, expected 10", len(lines))
	}
}
