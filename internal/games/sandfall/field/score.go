package field

// MaxChain caps the cascade multiplier.
const MaxChain = 10

// Score returns the points for one detection pass: grains cleared times level,
// times the number of distinct colours when more than one colour cleared,
// times the cascade chain (1 for the first clear after a lock, capped at
// MaxChain).
func Score(r ClearResult, level, chain int) int {
	if r.Empty() {
		return 0
	}
	level = max(level, 1)
	chain = min(max(chain, 1), MaxChain)
	pts := r.GrainsCleared * level * chain
	if r.Colors > 1 {
		pts *= r.Colors
	}
	return pts
}
