package progress

import "github.com/vovakirdan/affine-affinity/internal/affine"

// LevelStatus is one row of the progress list.
type LevelStatus struct {
	Level    int           `json:"level"`
	Solved   bool          `json:"solved"`
	Mode     affine.Mode   `json:"mode"`
	Controls []string      `json:"controls"`
	Params   affine.Params `json:"params"`
}

// Snapshot is everything a host needs to draw the current level.
type Snapshot struct {
	Level        int                     `json:"level"`
	Params       affine.Params           `json:"params"`
	Solved       bool                    `json:"solved"`
	Terminal     bool                    `json:"terminal"`
	CanAdvance   bool                    `json:"canAdvance"`
	NextLevel    int                     `json:"nextLevel"`
	SolvedLevels []int                   `json:"solvedLevels"`
	AllSolved    bool                    `json:"allSolved"`
	Mode         affine.Mode             `json:"mode"`
	Controls     []string                `json:"controls"`
	Live         affine.VisualTransform  `json:"live"`
	Goal         affine.VisualTransform  `json:"goal"`
	LiveCSS      string                  `json:"liveTransform"`
	GoalCSS      string                  `json:"goalTransform"`
	Matrix       [3][3]affine.MatrixCell `json:"matrix"`
	Lesson       affine.Lesson           `json:"lesson"`
}

// Snapshot captures the current session state by value.
func (s *Session) Snapshot() Snapshot {
	target, _ := affine.TargetFor(s.level)
	goal, _ := affine.GoalTransform(s.level)
	lesson, _ := affine.LessonFor(s.level)
	live := affine.ToVisualTransform(s.level, s.params)

	return Snapshot{
		Level:        s.level,
		Params:       s.params,
		Solved:       s.CurrentSolved(),
		Terminal:     affine.IsTerminal(s.level),
		CanAdvance:   s.CanAdvance(),
		NextLevel:    target.NextLevel,
		SolvedLevels: s.SolvedLevels(),
		AllSolved:    s.AllSolved(),
		Mode:         affine.ModeFor(s.level),
		Controls:     fieldNames(affine.ControlsFor(s.level)),
		Live:         live,
		Goal:         goal,
		LiveCSS:      live.CSS(),
		GoalCSS:      goal.CSS(),
		Matrix:       affine.MatrixFor(s.level, s.params),
		Lesson:       lesson,
	}
}

// Levels returns the progress list for every level.
func (s *Session) Levels() []LevelStatus {
	out := make([]LevelStatus, 0, affine.LevelCount)
	for lv := 1; lv <= affine.LevelCount; lv++ {
		// The current level shows as solved as soon as its parameters match.
		out = append(out, LevelStatus{
			Level:    lv,
			Solved:   s.solved[lv] || (lv == s.level && s.CurrentSolved()),
			Mode:     affine.ModeFor(lv),
			Controls: fieldNames(affine.ControlsFor(lv)),
			Params:   s.ParamsFor(lv),
		})
	}
	return out
}

func fieldNames(fields []affine.Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}
	return names
}
