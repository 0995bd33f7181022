package field

import "github.com/kamstrup/intmap"

// Span is one connected body of same-colour grains that touches both the left
// and the right edge of the field under 8-neighbour adjacency.
type Span struct {
	Color  Color
	Grains []Coord
}

// ClearResult summarises one detection pass.
type ClearResult struct {
	Spans         []Span
	GrainsCleared int
	Colors        int // distinct colours among the spans
}

// Empty reports whether nothing qualified.
func (r ClearResult) Empty() bool {
	return len(r.Spans) == 0
}

var neighbours8 = [8]Coord{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Detect finds every qualifying span without modifying the field. For each
// colour it flood-fills from every grain of that colour in column 0; a
// component qualifies when it also reaches column W-1.
func Detect(f *Field) []Span {
	var spans []Span
	visited := intmap.New[int32, struct{}](f.h * 4)
	var stack []Coord

	for _, c := range Colors {
		want := Sand(c)
		visited.Clear()
		for y := 0; y < f.h; y++ {
			start := int32(y * f.w)
			if f.cells[start] != want {
				continue
			}
			if _, seen := visited.Get(start); seen {
				continue
			}

			var component []Coord
			touchesRight := false
			visited.Put(start, struct{}{})
			stack = append(stack[:0], Coord{X: 0, Y: y})

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				component = append(component, p)
				if p.X == f.w-1 {
					touchesRight = true
				}
				for _, d := range neighbours8 {
					nx, ny := p.X+d.X, p.Y+d.Y
					if !f.InBounds(nx, ny) {
						continue
					}
					idx := int32(ny*f.w + nx)
					if f.cells[idx] != want {
						continue
					}
					if _, seen := visited.Get(idx); seen {
						continue
					}
					visited.Put(idx, struct{}{})
					stack = append(stack, Coord{X: nx, Y: ny})
				}
			}

			if touchesRight {
				spans = append(spans, Span{Color: c, Grains: component})
			}
		}
	}
	return spans
}

// DetectAndClear removes every qualifying span of every colour at once and
// reports what was removed.
func DetectAndClear(f *Field) ClearResult {
	spans := Detect(f)
	if len(spans) == 0 {
		return ClearResult{}
	}

	var seen [ColorCount]bool
	res := ClearResult{Spans: spans}
	for _, s := range spans {
		for _, p := range s.Grains {
			f.Set(p.X, p.Y, Empty)
		}
		res.GrainsCleared += len(s.Grains)
		if !seen[s.Color] {
			seen[s.Color] = true
			res.Colors++
		}
	}
	return res
}
