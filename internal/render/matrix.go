package render

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/vovakirdan/affine-affinity/internal/affine"
)

// minDet is the smallest determinant treated as invertible; gg.Matrix.Invert
// uses the same threshold and falls back to identity below it.
const minDet = 1e-10

// TransformMatrix composes vt as translate, then skew, then scale, the
// order of a CSS transform list.
func TransformMatrix(vt affine.VisualTransform) gg.Matrix {
	kx := math.Tan(vt.SkewX * math.Pi / 180)
	ky := math.Tan(vt.SkewY * math.Pi / 180)
	return gg.Translate(vt.TranslateX, vt.TranslateY).
		Multiply(gg.Shear(kx, ky)).
		Multiply(gg.Scale(vt.Scale, vt.Scale))
}

// about moves the origin of m to (cx, cy).
func about(m gg.Matrix, cx, cy float64) gg.Matrix {
	return gg.Translate(cx, cy).Multiply(m).Multiply(gg.Translate(-cx, -cy))
}

// invert returns the inverse of m. ok is false for singular matrices, for
// example when the scale is zero.
func invert(m gg.Matrix) (inv gg.Matrix, ok bool) {
	det := m.A*m.E - m.B*m.D
	if math.IsNaN(det) || math.Abs(det) < minDet {
		return gg.Matrix{}, false
	}
	return m.Invert(), true
}

// apply maps the point (x, y) through m.
func apply(m gg.Matrix, x, y float64) (float64, float64) {
	p := m.TransformPoint(gg.Pt(x, y))
	return p.X, p.Y
}
