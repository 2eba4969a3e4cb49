// Package affine contains the pure model of the AffineAffinity puzzle:
// transform parameters, the per-level target table, the solved check and
// the slider value mappings. It has no I/O and no UI dependencies, so every
// host (terminal, SSH, HTTP, exporter) shares the same rules.
package affine

import "math"

// Params is the player's current transform parameters for one level.
// Units: TX/TY in pixels, S a uniform scale factor, G/H shear angles in degrees.
type Params struct {
	TX float64 `json:"tx" yaml:"tx"`
	TY float64 `json:"ty" yaml:"ty"`
	S  float64 `json:"s" yaml:"s"`
	G  float64 `json:"g" yaml:"g"`
	H  float64 `json:"h" yaml:"h"`
}

// DefaultParams returns the identity parameter set.
func DefaultParams() Params {
	return Params{TX: 0, TY: 0, S: 1, G: 0, H: 0}
}

// Field identifies one of the five adjustable parameters.
type Field int

const (
	FieldTX Field = iota
	FieldTY
	FieldS
	FieldG
	FieldH
)

// Fields lists every field in display order.
var Fields = []Field{FieldTX, FieldTY, FieldS, FieldG, FieldH}

// UI ranges.
const (
	LinearMin = -50.0
	LinearMax = 50.0
	ScaleMin  = 0.0
	ScaleMax  = 3.0
)

// String returns the short name used in the matrix and on the wire.
func (f Field) String() string {
	switch f {
	case FieldTX:
		return "tx"
	case FieldTY:
		return "ty"
	case FieldS:
		return "s"
	case FieldG:
		return "g"
	case FieldH:
		return "h"
	default:
		return "unknown"
	}
}

// ParseField maps a short name back to a Field.
func ParseField(name string) (Field, bool) {
	for _, f := range Fields {
		if f.String() == name {
			return f, true
		}
	}
	return 0, false
}

// Get returns the value of f in p.
func (f Field) Get(p Params) float64 {
	switch f {
	case FieldTX:
		return p.TX
	case FieldTY:
		return p.TY
	case FieldS:
		return p.S
	case FieldG:
		return p.G
	case FieldH:
		return p.H
	}
	return 0
}

// Set returns a copy of p with f replaced by v.
func (f Field) Set(p Params, v float64) Params {
	switch f {
	case FieldTX:
		p.TX = v
	case FieldTY:
		p.TY = v
	case FieldS:
		p.S = v
	case FieldG:
		p.G = v
	case FieldH:
		p.H = v
	}
	return p
}

// Range returns the UI bounds of f.
func (f Field) Range() (lo, hi float64) {
	if f == FieldS {
		return ScaleMin, ScaleMax
	}
	return LinearMin, LinearMax
}

// Clamp limits v to the UI range of f. NaN collapses to the identity value.
func Clamp(f Field, v float64) float64 {
	if math.IsNaN(v) {
		return f.Get(DefaultParams())
	}
	lo, hi := f.Range()
	return math.Max(lo, math.Min(hi, v))
}

// Clamped returns p with every field limited to its UI range.
func (p Params) Clamped() Params {
	for _, f := range Fields {
		p = f.Set(p, Clamp(f, f.Get(p)))
	}
	return p
}
