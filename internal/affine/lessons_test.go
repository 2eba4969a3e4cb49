package affine

import (
	"slices"
	"testing"
)

func TestModeFor(t *testing.T) {
	want := map[int]Mode{
		1: ModeTranslate, 2: ModeTranslate,
		3: ModeScale, 4: ModeScale,
		5: ModeShear, 6: ModeShear, 7: ModeShear,
		8: ModeAll, 9: ModeAll, 10: ModeAll,
	}
	for level, mode := range want {
		if got := ModeFor(level); got != mode {
			t.Errorf("ModeFor(%d) = %s, expected %s", level, got, mode)
		}
	}
}

func TestControlsFor(t *testing.T) {
	tests := []struct {
		level int
		want  []Field
	}{
		{1, []Field{FieldTX, FieldTY}},
		{3, []Field{FieldS}},
		{5, []Field{FieldG}},
		{6, []Field{FieldH}},
		{7, []Field{FieldG, FieldH}},
		{9, Fields},
	}
	for _, tt := range tests {
		if got := ControlsFor(tt.level); !slices.Equal(got, tt.want) {
			t.Errorf("ControlsFor(%d) = %v, expected %v", tt.level, got, tt.want)
		}
	}
}

func TestControlsCoverTargets(t *testing.T) {
	for level := 1; level <= LevelCount; level++ {
		target, _ := TargetFor(level)
		controls := ControlsFor(level)
		for _, f := range Fields {
			c := target.Constraint(f)
			if c.Active && c.Value != f.Get(DefaultParams()) && !slices.Contains(controls, f) {
				t.Errorf("level %d needs %s but offers no control for it", level, f)
			}
		}
	}
}

func TestMatrixFor(t *testing.T) {
	p := Params{TX: 20, TY: -5, S: 2.5, G: 25, H: 10}

	m := MatrixFor(1, p)
	if m[0][2].Text != "20" || m[1][2].Text != "-5" || !m[0][2].Live {
		t.Errorf("translate level should show tx/ty, got %q %q", m[0][2].Text, m[1][2].Text)
	}
	if m[0][0].Text != "1" || m[2][0].Text != "0" {
		t.Errorf("translate level should hide scale and shear, got %q %q", m[0][0].Text, m[2][0].Text)
	}

	m = MatrixFor(4, p)
	if m[0][0].Text != "2.5" || m[1][1].Text != "2.5" || m[0][2].Text != "0" {
		t.Errorf("scale level matrix wrong: %q %q %q", m[0][0].Text, m[1][1].Text, m[0][2].Text)
	}

	m = MatrixFor(5, p)
	if m[2][0].Text != "25" || m[2][1].Text != "0" || m[2][1].Live {
		t.Errorf("level 5 should only show g, got %q %q", m[2][0].Text, m[2][1].Text)
	}

	m = MatrixFor(6, p)
	if m[2][0].Text != "0" || m[2][1].Text != "10" {
		t.Errorf("level 6 should only show h, got %q %q", m[2][0].Text, m[2][1].Text)
	}

	m = MatrixFor(10, Params{TX: -15, TY: 20, S: 1, G: -30, H: 20})
	got := []string{m[0][0].Text, m[0][2].Text, m[1][2].Text, m[2][0].Text, m[2][1].Text}
	want := []string{"1.0", "-15", "20", "-30", "20"}
	if !slices.Equal(got, want) {
		t.Errorf("level 10 matrix = %v, expected %v", got, want)
	}
}

func TestLessons(t *testing.T) {
	for level := 1; level <= LevelCount; level++ {
		lesson, ok := LessonFor(level)
		if !ok || lesson.Action == "" {
			t.Errorf("level %d should have a lesson with an action", level)
		}
	}
	first, _ := LessonFor(1)
	if first.Formula == "" || len(first.Links) != 2 {
		t.Error("first lesson should carry the matrix formula and links")
	}
	if _, ok := LessonFor(11); ok {
		t.Error("LessonFor(11) should not be found")
	}
}
