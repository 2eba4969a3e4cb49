package affine

import "math"

// Slider resolution: linear sliders move in whole units, the scale slider in tenths.
const (
	LinearSteps = 100
	ScaleSteps  = 30
)

// LinearFromFraction maps a slider position in [0, 1] to an integer in [-50, 50].
func LinearFromFraction(f float64) float64 {
	return roundHalfUp(clamp01(f)*LinearSteps + LinearMin)
}

// ScaleFromFraction maps a slider position in [0, 1] to [0, 3] in steps of 0.1.
func ScaleFromFraction(f float64) float64 {
	return roundHalfUp(clamp01(f)*ScaleSteps) / 10
}

// LinearFraction is the slider position of a linear value.
func LinearFraction(v float64) float64 {
	return clamp01((v - LinearMin) / LinearSteps)
}

// ScaleFraction is the slider position of a scale value.
func ScaleFraction(v float64) float64 {
	return clamp01(v / ScaleMax)
}

// FromFraction maps a slider position to a value of f.
func FromFraction(f Field, fraction float64) float64 {
	if f == FieldS {
		return ScaleFromFraction(fraction)
	}
	return LinearFromFraction(fraction)
}

// Fraction is the slider position of value v of f.
func Fraction(f Field, v float64) float64 {
	if f == FieldS {
		return ScaleFraction(v)
	}
	return LinearFraction(v)
}

// Step moves v by delta slider notches, snapping to the slider grid and
// staying inside the range of f.
func Step(f Field, v float64, delta int) float64 {
	if f == FieldS {
		k := roundHalfUp(Clamp(f, v)*10) + float64(delta)
		k = math.Max(0, math.Min(ScaleSteps, k))
		return k / 10
	}
	return Clamp(f, roundHalfUp(v)+float64(delta))
}

func clamp01(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return math.Max(0, math.Min(1, f))
}

// roundHalfUp rounds .5 toward positive infinity and never returns -0.
func roundHalfUp(v float64) float64 {
	r := math.Floor(v + 0.5)
	if r == 0 {
		return 0
	}
	return r
}
