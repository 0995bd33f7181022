// Package core provides the platform-neutral types shared by the game and the
// terminal layer. It contains no external dependencies (especially no Bubble
// Tea) so the simulation stays pure and testable.
package core

// Rect is an axis-aligned area of screen cells.
type Rect struct {
	X, Y, W, H int
}

// Right is the first column past r.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is the first row past r.
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inner is the area inside a box drawn along the edge of r.
func (r Rect) Inner() Rect {
	return Rect{X: r.X + 1, Y: r.Y + 1, W: max(r.W-2, 0), H: max(r.H-2, 0)}
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
