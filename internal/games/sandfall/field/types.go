// Package field holds the grain-resolution playfield of sandfall: a grid of
// coloured sand grains, the gravity automaton that settles them, and the
// edge-to-edge connectivity detector that clears them.
package field

import "fmt"

// GrainScale is the number of grains along each side of one playfield block.
const GrainScale = 6

// SpawnBandRows is the height in grains of the reserved band at the top of
// the field where new pieces appear.
const SpawnBandRows = 2 * GrainScale

// Color identifies one of the six sand colours.
type Color uint8

const (
	Green Color = iota
	Yellow
	Red
	Blue
	Magenta
	Cyan
)

// ColorCount is the number of sand colours.
const ColorCount = 6

// Colors lists every sand colour in index order.
var Colors = [ColorCount]Color{Green, Yellow, Red, Blue, Magenta, Cyan}

var colorNames = [ColorCount]string{"green", "yellow", "red", "blue", "magenta", "cyan"}

func (c Color) String() string {
	if int(c) < ColorCount {
		return colorNames[c]
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// Valid reports whether c is one of the six sand colours.
func (c Color) Valid() bool {
	return int(c) < ColorCount
}

// Grain is the state of one field cell. The zero value is empty.
type Grain uint8

// Empty is the empty grain.
const Empty Grain = 0

// Sand returns a grain of colour c.
func Sand(c Color) Grain {
	return Grain(c) + 1
}

// IsEmpty reports whether the cell holds no sand.
func (g Grain) IsEmpty() bool {
	return g == Empty
}

// Color returns the grain colour. ok is false for an empty grain.
func (g Grain) Color() (c Color, ok bool) {
	if g == Empty {
		return 0, false
	}
	return Color(g - 1), true
}

// Coord is a grain-space position. Y grows downward.
type Coord struct {
	X, Y int
}
