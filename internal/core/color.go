package core

// Color is the role of a screen cell. The platform maps roles to terminal
// colors, so drawing code never deals with escape sequences.
type Color uint8

const (
	ColorDefault Color = iota
	ColorMuted         // borders, hints, disabled buttons
	ColorTitle         // headings and the level indicator
	ColorGoal          // the goal image
	ColorLive          // the player's image
	ColorGhost         // untransformed outline behind the player's image
	ColorTX            // translation x
	ColorTY            // translation y
	ColorScale
	ColorShearG
	ColorShearH
	ColorSolved // check marks and the next button once enabled
	ColorFocus  // focused slider
	ColorWarning
)

// FieldColors is the color of each parameter in slider order: tx, ty, s, g, h.
var FieldColors = [5]Color{ColorTX, ColorTY, ColorScale, ColorShearG, ColorShearH}
