package affine

import (
	"fmt"
	"strconv"
)

// ShearLevel is the first level whose images use the shear parameters.
const ShearLevel = 5

// VisualTransform is the transform applied to the player's image.
// It is composed as translate, then skew, then scale.
type VisualTransform struct {
	TranslateX float64 `json:"translateX"`
	TranslateY float64 `json:"translateY"`
	SkewX      float64 `json:"skewX"`
	SkewY      float64 `json:"skewY"`
	Scale      float64 `json:"scale"`
}

// ToVisualTransform derives the image transform for p on level.
// Shear is always zero before ShearLevel, whatever p.G and p.H hold.
func ToVisualTransform(level int, p Params) VisualTransform {
	vt := VisualTransform{
		TranslateX: p.TX,
		TranslateY: p.TY,
		Scale:      p.S,
	}
	if level >= ShearLevel {
		vt.SkewX = p.G
		vt.SkewY = p.H
	}
	return vt
}

// CSS renders the transform as a CSS transform list.
func (vt VisualTransform) CSS() string {
	return fmt.Sprintf("translate(%spx, %spx) skew(%sdeg, %sdeg) scale(%s)",
		formatNumber(vt.TranslateX), formatNumber(vt.TranslateY),
		formatNumber(vt.SkewX), formatNumber(vt.SkewY),
		formatNumber(vt.Scale))
}

// formatNumber prints the shortest decimal form, with no negative zero.
func formatNumber(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
