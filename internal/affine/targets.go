package affine

// LevelCount is the number of levels in the game.
const LevelCount = 10

// Constraint is an optional target value. The zero value matches anything.
type Constraint struct {
	Value  float64
	Active bool
}

// Exactly returns a constraint that only v satisfies.
func Exactly(v float64) Constraint {
	return Constraint{Value: v, Active: true}
}

// Any is the unconstrained value.
var Any = Constraint{}

// Allows reports whether v satisfies c. Comparison is exact.
func (c Constraint) Allows(v float64) bool {
	return !c.Active || c.Value == v
}

// Target is the goal for one level.
type Target struct {
	TX, TY, S, G, H Constraint
	NextLevel       int
}

// Constraint returns the constraint for f.
func (t Target) Constraint(f Field) Constraint {
	switch f {
	case FieldTX:
		return t.TX
	case FieldTY:
		return t.TY
	case FieldS:
		return t.S
	case FieldG:
		return t.G
	case FieldH:
		return t.H
	}
	return Any
}

// targets is indexed by level-1 and never mutated.
var targets = [LevelCount]Target{
	{TX: Exactly(20), TY: Exactly(20), NextLevel: 2},
	{TX: Exactly(-10), TY: Exactly(-30), NextLevel: 3},
	{S: Exactly(0.5), NextLevel: 4},
	{S: Exactly(2.5), NextLevel: 5},
	{G: Exactly(20), NextLevel: 6},
	{H: Exactly(40), NextLevel: 7},
	{G: Exactly(25), H: Exactly(10), NextLevel: 8},
	{TX: Exactly(25), TY: Exactly(25), S: Exactly(1.0), G: Exactly(0), H: Exactly(15), NextLevel: 9},
	{TX: Exactly(-20), TY: Exactly(0), S: Exactly(2.0), G: Exactly(15), H: Exactly(0), NextLevel: 10},
	{TX: Exactly(-15), TY: Exactly(20), S: Exactly(1.5), G: Exactly(-30), H: Exactly(20), NextLevel: 10},
}

// ValidLevel reports whether level is one of 1..LevelCount.
func ValidLevel(level int) bool {
	return level >= 1 && level <= LevelCount
}

// TargetFor returns the target of level. ok is false outside 1..LevelCount.
func TargetFor(level int) (t Target, ok bool) {
	if !ValidLevel(level) {
		return Target{}, false
	}
	return targets[level-1], true
}

// IsTerminal reports whether level is the last one (it points back to itself).
func IsTerminal(level int) bool {
	t, ok := TargetFor(level)
	return ok && t.NextLevel == level
}

// IsSolved reports whether p satisfies every constrained field of level's
// target. Unknown levels are never solved.
func IsSolved(level int, p Params) bool {
	t, ok := TargetFor(level)
	if !ok {
		return false
	}
	for _, f := range Fields {
		if !t.Constraint(f).Allows(f.Get(p)) {
			return false
		}
	}
	return true
}

// GoalParams returns the parameters that draw the goal image of level.
// Unconstrained fields take their identity value.
func GoalParams(level int) (Params, bool) {
	t, ok := TargetFor(level)
	if !ok {
		return Params{}, false
	}
	p := DefaultParams()
	for _, f := range Fields {
		if c := t.Constraint(f); c.Active {
			p = f.Set(p, c.Value)
		}
	}
	return p, true
}

// GoalTransform returns the fixed transform of level's goal image.
func GoalTransform(level int) (VisualTransform, bool) {
	p, ok := GoalParams(level)
	if !ok {
		return VisualTransform{}, false
	}
	return ToVisualTransform(level, p), true
}
