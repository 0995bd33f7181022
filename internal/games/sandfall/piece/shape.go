// Package piece describes sandfall tetrominoes on the coarse block grid and
// the queue that deals them.
package piece

import (
	"fmt"

	"github.com/vovakirdan/sandfall/internal/games/sandfall/field"
)

// Shape is one of the seven tetrominoes.
type Shape uint8

const (
	I Shape = iota
	O
	T
	S
	Z
	J
	L
)

// ShapeCount is the number of shapes in a bag.
const ShapeCount = 7

// Shapes lists every shape in bag order.
var Shapes = [ShapeCount]Shape{I, O, T, S, Z, J, L}

var shapeNames = [ShapeCount]string{"I", "O", "T", "S", "Z", "J", "L"}

func (s Shape) String() string {
	if int(s) < ShapeCount {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", uint8(s))
}

// Offset is a position on the block grid relative to a piece origin.
type Offset struct {
	X, Y int
}

// cells holds the spawn orientation of every shape.
var cells = [ShapeCount][4]Offset{
	I: {{0, 0}, {1, 0}, {2, 0}, {3, 0}},
	O: {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	T: {{0, 0}, {1, 0}, {2, 0}, {1, 1}},
	S: {{1, 0}, {2, 0}, {0, 1}, {1, 1}},
	Z: {{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	J: {{0, 0}, {0, 1}, {1, 1}, {2, 1}},
	L: {{2, 0}, {0, 1}, {1, 1}, {2, 1}},
}

// pivot returns the rotation centre of a shape on the block grid.
func (s Shape) pivot() Offset {
	if s == I {
		return Offset{1, 0}
	}
	return Offset{1, 1}
}

// Cells returns the four occupied blocks of the shape in orientation rot
// (0..3, clockwise quarter turns). O never turns.
func (s Shape) Cells(rot int) [4]Offset {
	out := cells[s]
	rot = ((rot % 4) + 4) % 4
	if s == O || rot == 0 {
		return out
	}
	c := s.pivot()
	for i, o := range out {
		dx, dy := o.X-c.X, o.Y-c.Y
		switch rot {
		case 1:
			dx, dy = -dy, dx
		case 2:
			dx, dy = -dx, -dy
		case 3:
			dx, dy = dy, -dx
		}
		out[i] = Offset{X: dx + c.X, Y: dy + c.Y}
	}
	return out
}

// Kicks lists the horizontal offsets, in blocks, tried in order when a
// rotation collides.
var Kicks = [...]int{0, -1, 1, -2, 2}

// Entry is one element of the next queue.
type Entry struct {
	Shape Shape
	Color field.Color
}
