package field

import "fmt"

// Settle runs one pass of the gravity automaton and reports whether any grain
// moved. Rows are scanned from the bottom up, so a grain descends at most one
// row per pass. A grain falls straight down when it can; with diagonal set it
// otherwise tries down-left, then down-right.
func (f *Field) Settle(diagonal bool) bool {
	moved := false
	for y := f.h - 2; y >= 0; y-- {
		row := y * f.w
		below := row + f.w
		for x := 0; x < f.w; x++ {
			g := f.cells[row+x]
			if g == Empty {
				continue
			}
			switch {
			case f.cells[below+x] == Empty:
				f.cells[below+x] = g
			case diagonal && x > 0 && f.cells[below+x-1] == Empty:
				f.cells[below+x-1] = g
			case diagonal && x+1 < f.w && f.cells[below+x+1] == Empty:
				f.cells[below+x+1] = g
			default:
				continue
			}
			f.cells[row+x] = Empty
			moved = true
		}
	}
	return moved
}

// SettleToStable repeats Settle until a pass moves nothing and returns the
// number of passes that moved grains.
func (f *Field) SettleToStable(diagonal bool) int {
	// Every moving pass lowers at least one grain by a row, so the total
	// height of all grains above the floor bounds the pass count.
	limit := f.potential()
	passes := 0
	for f.Settle(diagonal) {
		passes++
		if passes > limit {
			panic(fmt.Sprintf("field: settle did not converge after %d passes", passes))
		}
	}
	return passes
}

// Stable reports whether a settle pass would move nothing. The field is not
// modified.
func (f *Field) Stable(diagonal bool) bool {
	for y := f.h - 2; y >= 0; y-- {
		row := y * f.w
		below := row + f.w
		for x := 0; x < f.w; x++ {
			if f.cells[row+x] == Empty {
				continue
			}
			if f.cells[below+x] == Empty {
				return false
			}
			if diagonal {
				if x > 0 && f.cells[below+x-1] == Empty {
					return false
				}
				if x+1 < f.w && f.cells[below+x+1] == Empty {
					return false
				}
			}
		}
	}
	return true
}

func (f *Field) potential() int {
	total := 0
	for y := 0; y < f.h; y++ {
		row := y * f.w
		for x := 0; x < f.w; x++ {
			if f.cells[row+x] != Empty {
				total += f.h - 1 - y
			}
		}
	}
	return total
}
