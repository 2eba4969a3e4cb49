package render

import (
	"math"
	"testing"

	"github.com/gogpu/gg"

	"github.com/vovakirdan/affine-affinity/internal/affine"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTransformMatrixIdentity(t *testing.T) {
	m := TransformMatrix(affine.ToVisualTransform(10, affine.DefaultParams()))
	if !m.IsIdentity() {
		t.Errorf("identity params should give identity matrix, got %+v", m)
	}
}

func TestTransformMatrixOrder(t *testing.T) {
	// translate(10, 0) skew(45deg, 0) scale(2): (1, 1) scales to (2, 2),
	// skews to (4, 2), then translates to (14, 2).
	vt := affine.VisualTransform{TranslateX: 10, SkewX: 45, Scale: 2}
	x, y := apply(TransformMatrix(vt), 1, 1)
	if !almostEqual(x, 14) || !almostEqual(y, 2) {
		t.Errorf("apply(1, 1) = (%v, %v), expected (14, 2)", x, y)
	}
}

func TestAbout(t *testing.T) {
	m := about(TransformMatrix(affine.VisualTransform{Scale: 2}), 100, 100)

	x, y := apply(m, 100, 100)
	if !almostEqual(x, 100) || !almostEqual(y, 100) {
		t.Errorf("origin moved to (%v, %v)", x, y)
	}
	x, y = apply(m, 110, 100)
	if !almostEqual(x, 120) || !almostEqual(y, 100) {
		t.Errorf("apply(110, 100) = (%v, %v), expected (120, 100)", x, y)
	}
}

func TestInvert(t *testing.T) {
	vt, _ := affine.GoalTransform(10)
	m := StageMatrix(vt)
	inv, ok := invert(m)
	if !ok {
		t.Fatal("goal matrix of level 10 should be invertible")
	}

	points := [][2]float64{{0, 0}, {118, 118}, {236, 10}, {-40, 300}}
	for _, p := range points {
		x, y := apply(m, p[0], p[1])
		bx, by := apply(inv, x, y)
		if !almostEqual(bx, p[0]) || !almostEqual(by, p[1]) {
			t.Errorf("round trip of %v gave (%v, %v)", p, bx, by)
		}
	}

	tests := []struct {
		name string
		m    gg.Matrix
	}{
		{"zero scale", StageMatrix(affine.VisualTransform{Scale: 0})},
		{"zero matrix", gg.Matrix{}},
		{"nan", gg.Matrix{A: math.NaN(), E: 1}},
	}
	for _, tt := range tests {
		if _, ok := invert(tt.m); ok {
			t.Errorf("%s should not be invertible", tt.name)
		}
	}
}
