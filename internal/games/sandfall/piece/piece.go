package piece

import "github.com/vovakirdan/sandfall/internal/games/sandfall/field"

// Direction of a rotation.
type Direction int

const (
	CW  Direction = 1
	CCW Direction = -1
)

// Piece is the falling tetromino. X is always a whole number of blocks in
// grain units; Y is in grain rows because gravity moves one grain at a time.
type Piece struct {
	Shape Shape
	Color field.Color
	Rot   int
	X, Y  int
}

// Spawn places an entry at the top centre of a field widthBlocks wide,
// shifted left when the shape would cross the right wall.
func Spawn(e Entry, widthBlocks int) Piece {
	p := Piece{
		Shape: e.Shape,
		Color: e.Color,
		X:     max(widthBlocks/2-1, 0) * field.GrainScale,
		Y:     0,
	}
	if _, _, right, _ := p.Bounds(); right > widthBlocks*field.GrainScale {
		p.X = max(p.X-(right-widthBlocks*field.GrainScale), 0)
	}
	return p
}

// Blocks returns the grain coordinates of the top-left grain of each block.
func (p Piece) Blocks() [4]field.Coord {
	var out [4]field.Coord
	for i, o := range p.Shape.Cells(p.Rot) {
		out[i] = field.Coord{
			X: p.X + o.X*field.GrainScale,
			Y: p.Y + o.Y*field.GrainScale,
		}
	}
	return out
}

// Moved returns the piece shifted by dx, dy grains.
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Rotated returns the piece turned a quarter in dir.
func (p Piece) Rotated(dir Direction) Piece {
	p.Rot = ((p.Rot+int(dir))%4 + 4) % 4
	return p
}

// Footprint calls blocked for every grain the piece covers and reports
// whether any call returned true.
func (p Piece) Footprint(blocked func(x, y int) bool) bool {
	for _, b := range p.Blocks() {
		for dy := 0; dy < field.GrainScale; dy++ {
			for dx := 0; dx < field.GrainScale; dx++ {
				if blocked(b.X+dx, b.Y+dy) {
					return true
				}
			}
		}
	}
	return false
}

// Bounds returns the grain-space box covered by the piece: left, top and the
// exclusive right and bottom edges.
func (p Piece) Bounds() (left, top, right, bottom int) {
	bs := p.Blocks()
	left, top = bs[0].X, bs[0].Y
	right, bottom = left, top
	for _, b := range bs {
		left = min(left, b.X)
		top = min(top, b.Y)
		right = max(right, b.X)
		bottom = max(bottom, b.Y)
	}
	return left, top, right + field.GrainScale, bottom + field.GrainScale
}
