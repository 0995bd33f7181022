package core

// Color is a palette slot for a screen cell. The platform maps each slot to an
// ANSI or true-colour style; games only pick slots.
type Color uint8

// Palette slots used by the renderer.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorYellow
	ColorRed
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
	ColorBackground // playfield background
	ColorBorder
	ColorHighlight
)

// SandColors lists the six sand palette slots in field colour order.
var SandColors = [6]Color{
	ColorGreen,
	ColorYellow,
	ColorRed,
	ColorBlue,
	ColorMagenta,
	ColorCyan,
}
