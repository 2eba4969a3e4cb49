package affine

import "strconv"

// Mode is the family of parameters a level teaches.
type Mode string

const (
	ModeTranslate Mode = "translate"
	ModeScale     Mode = "scale"
	ModeShear     Mode = "shear"
	ModeAll       Mode = "all"
)

// ModeFor returns the mode of level.
func ModeFor(level int) Mode {
	switch {
	case level == 3 || level == 4:
		return ModeScale
	case level >= 5 && level <= 7:
		return ModeShear
	case level >= 8:
		return ModeAll
	default:
		return ModeTranslate
	}
}

// ShowsG reports whether the horizontal shear is live on level.
func ShowsG(level int) bool {
	return level == 5 || level == 7 || level >= 8
}

// ShowsH reports whether the vertical shear is live on level.
func ShowsH(level int) bool {
	return level == 6 || level == 7 || level >= 8
}

// ControlsFor lists the sliders the player may move on level.
func ControlsFor(level int) []Field {
	switch ModeFor(level) {
	case ModeScale:
		return []Field{FieldS}
	case ModeShear:
		var fields []Field
		if ShowsG(level) {
			fields = append(fields, FieldG)
		}
		if ShowsH(level) {
			fields = append(fields, FieldH)
		}
		return fields
	case ModeAll:
		return []Field{FieldTX, FieldTY, FieldS, FieldG, FieldH}
	default:
		return []Field{FieldTX, FieldTY}
	}
}

// MatrixCell is one entry of the displayed matrix. Live cells show a
// player parameter and carry the field they come from.
type MatrixCell struct {
	Text  string `json:"text"`
	Live  bool   `json:"live"`
	Field Field  `json:"-"`
}

// MatrixFor builds the 3x3 matrix shown next to the sliders,
//
//	| s 0 tx |
//	| 0 s ty |
//	| g h 1  |
//
// with the entries the level does not teach held at their identity value.
func MatrixFor(level int, p Params) [3][3]MatrixCell {
	mode := ModeFor(level)
	showScale := mode == ModeScale || mode == ModeAll
	showShift := mode == ModeTranslate || mode == ModeAll
	showShear := mode == ModeShear || mode == ModeAll

	fixed := func(text string) MatrixCell { return MatrixCell{Text: text} }
	live := func(f Field, text string) MatrixCell { return MatrixCell{Text: text, Live: true, Field: f} }

	var m [3][3]MatrixCell
	m[0][1], m[1][0], m[2][2] = fixed("0"), fixed("0"), fixed("1")

	if showScale {
		s := strconv.FormatFloat(p.S, 'f', 1, 64)
		m[0][0], m[1][1] = live(FieldS, s), live(FieldS, s)
	} else {
		m[0][0], m[1][1] = fixed("1"), fixed("1")
	}

	if showShift {
		m[0][2], m[1][2] = live(FieldTX, formatNumber(p.TX)), live(FieldTY, formatNumber(p.TY))
	} else {
		m[0][2], m[1][2] = fixed("0"), fixed("0")
	}

	m[2][0], m[2][1] = fixed("0"), fixed("0")
	if showShear {
		if ShowsG(level) {
			m[2][0] = live(FieldG, formatNumber(p.G))
		}
		if ShowsH(level) {
			m[2][1] = live(FieldH, formatNumber(p.H))
		}
	}
	return m
}

// Link is a reference shown in a lesson.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Lesson is the tutorial copy of one level.
type Lesson struct {
	Intro   string   `json:"intro,omitempty"`
	Info    string   `json:"info,omitempty"`
	Bullets []string `json:"bullets,omitempty"`
	Formula string   `json:"formula,omitempty"`
	Links   []Link   `json:"links,omitempty"`
	Action  string   `json:"action"`
}

var combineBullets = []string{
	"Translation (tx, ty) shifts position.",
	"Scaling (s) resizes the image.",
	"Shearing (g, h) skews the image.",
}

const combineAction = "Warp Scotty to match the goal image. HINT: all numbers are divisible by 5."

var lessons = [LevelCount]Lesson{
	{
		Intro: "Welcome to AffineAffinity, a game where you move, scale and skew Scotty by writing transformation matrices. It is inspired by Flexbox Froggy.",
		Info:  "An affine transform multiplies the homogeneous coordinates [x, y, 1] by a 3x3 matrix. Each column of the matrix controls how x, y and the translation combine into the new position.",
		Formula: "[x' y' 1] = M · [x y 1],  M = | s 0 tx |\n" +
			"                            | 0 s ty |\n" +
			"                            | g h 1  |",
		Links: []Link{
			{Label: "Flexbox Froggy", URL: "https://flexboxfroggy.com/"},
			{Label: "More on transformation matrices", URL: "https://en.wikipedia.org/wiki/Affine_transformation#Image_transformation"},
		},
		Action: "Move Scotty right 20 and down 20 by changing tx and ty.",
	},
	{
		Intro:  "Let's practice once more.",
		Info:   "Translation shifts positions without stretching or rotating.",
		Action: "Change tx and ty to move Scotty up 30 and left 10.",
	},
	{
		Intro:  "You're getting the hang of it! Now scale Scotty to shrink or grow him.",
		Info:   "The s variable controls scaling. Values above 1 enlarge Scotty, values between 0 and 1 shrink him.",
		Action: "Shrink Scotty to half his size.",
	},
	{
		Info:   "Keep adjusting s to see how Scotty scales up and down.",
		Action: "Grow Scotty to 2.5 times his original size.",
	},
	{
		Intro:  "Let's shear Scotty this time.",
		Info:   "Change the g variable to see how Scotty skews.",
		Action: "Skew Scotty horizontally by 20.",
	},
	{
		Intro:  "Now do it again vertically.",
		Info:   "Change the h variable to see how Scotty skews this time.",
		Action: "Skew Scotty vertically by 40.",
	},
	{
		Intro:  "Keep shearing, but combine the horizontal and vertical shears.",
		Info:   "Isolate one variable at a time to see how it behaves on its own.",
		Action: "Skew Scotty horizontally by 25 and vertically by 10.",
	},
	{
		Intro:   "Let's combine every variable learned so far.",
		Info:    "Remember how the transformations build on each other in the matrix:",
		Bullets: combineBullets,
		Action:  combineAction,
	},
	{
		Intro:   "Great, do it again!",
		Info:    "Remember how the transformations build on each other in the matrix:",
		Bullets: combineBullets,
		Action:  combineAction,
	},
	{
		Intro:   "Final challenge! This one is hard, so don't worry if it takes a while.",
		Info:    "Remember how the transformations build on each other in the matrix:",
		Bullets: combineBullets,
		Action:  combineAction,
	},
}

// LessonFor returns the tutorial copy of level.
func LessonFor(level int) (Lesson, bool) {
	if !ValidLevel(level) {
		return Lesson{}, false
	}
	return lessons[level-1], true
}
