package field

import "fmt"

// Field is the grain grid. Cells are stored in row-major order: index = y*W + x.
// Any access outside [0,W)×[0,H) is a programming error and panics.
type Field struct {
	w, h  int
	cells []Grain
}

// New creates an empty field of width×height blocks, i.e. width*6 by
// height*6 grains. Dimensions must be positive; callers validate first.
func New(width, height int) *Field {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("field: non-positive size %dx%d", width, height))
	}
	w, h := width*GrainScale, height*GrainScale
	return &Field{
		w:     w,
		h:     h,
		cells: make([]Grain, w*h),
	}
}

// W returns the width in grains.
func (f *Field) W() int { return f.w }

// H returns the height in grains.
func (f *Field) H() int { return f.h }

// InBounds reports whether (x, y) addresses a grain of the field.
func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && x < f.w && y >= 0 && y < f.h
}

func (f *Field) index(x, y int) int {
	if !f.InBounds(x, y) {
		panic(fmt.Sprintf("field: grain (%d,%d) outside %dx%d", x, y, f.w, f.h))
	}
	return y*f.w + x
}

// Get returns the grain at (x, y).
func (f *Field) Get(x, y int) Grain {
	return f.cells[f.index(x, y)]
}

// Set stores a grain at (x, y).
func (f *Field) Set(x, y int, g Grain) {
	f.cells[f.index(x, y)] = g
}

// Occupied reports whether (x, y) blocks a falling piece. Cells outside the
// field count as occupied; this never reads outside the grid.
func (f *Field) Occupied(x, y int) bool {
	if !f.InBounds(x, y) {
		return true
	}
	return f.cells[y*f.w+x] != Empty
}

// BlockOrigin converts block coordinates to the grain coordinates of the
// block's top-left grain.
func BlockOrigin(bx, by int) Coord {
	return Coord{X: bx * GrainScale, Y: by * GrainScale}
}

// WriteBlock stamps a GrainScale×GrainScale block of colour c whose top-left
// grain is (x, y). Every grain of the block must lie inside the field.
func (f *Field) WriteBlock(x, y int, c Color) {
	if !f.InBounds(x, y) || !f.InBounds(x+GrainScale-1, y+GrainScale-1) {
		panic(fmt.Sprintf("field: block at (%d,%d) outside %dx%d", x, y, f.w, f.h))
	}
	g := Sand(c)
	for dy := 0; dy < GrainScale; dy++ {
		row := (y+dy)*f.w + x
		for dx := 0; dx < GrainScale; dx++ {
			f.cells[row+dx] = g
		}
	}
}

// HasOverflow reports whether any grain rests in the spawn band.
func (f *Field) HasOverflow() bool {
	rows := min(SpawnBandRows, f.h)
	for _, g := range f.cells[:rows*f.w] {
		if g != Empty {
			return true
		}
	}
	return false
}

// Count returns the number of non-empty grains.
func (f *Field) Count() int {
	n := 0
	for _, g := range f.cells {
		if g != Empty {
			n++
		}
	}
	return n
}

// CountColor returns the number of grains of colour c.
func (f *Field) CountColor(c Color) int {
	want := Sand(c)
	n := 0
	for _, g := range f.cells {
		if g == want {
			n++
		}
	}
	return n
}

// Height returns the number of rows from the topmost grain in column x to the
// floor, or 0 for an empty column.
func (f *Field) Height(x int) int {
	for y := 0; y < f.h; y++ {
		if f.cells[f.index(x, y)] != Empty {
			return f.h - y
		}
	}
	return 0
}

// Clear empties every grain.
func (f *Field) Clear() {
	clear(f.cells)
}

// Clone returns a deep copy of the field.
func (f *Field) Clone() *Field {
	cells := make([]Grain, len(f.cells))
	copy(cells, f.cells)
	return &Field{w: f.w, h: f.h, cells: cells}
}

// Equal reports whether both fields have the same size and grains.
func (f *Field) Equal(o *Field) bool {
	if f.w != o.w || f.h != o.h {
		return false
	}
	for i, g := range f.cells {
		if o.cells[i] != g {
			return false
		}
	}
	return true
}

// Cells returns a copy of the grains in row-major order.
func (f *Field) Cells() []Grain {
	out := make([]Grain, len(f.cells))
	copy(out, f.cells)
	return out
}
