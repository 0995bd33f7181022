package tui

import (
	"strings"

	"github.com/vovakirdan/sandfall/internal/core"
)

var defaultTheme = ANSITheme()

// RenderScreen converts a Screen buffer to a styled string with the ANSI theme.
func RenderScreen(s *core.Screen) string {
	return defaultTheme.Render(s)
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colours to minimize ANSI escape sequences.
func (t *Theme) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != start.Fg || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			if start.Fg == core.ColorDefault && start.Bg == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(t.Style(start.Fg, start.Bg).Render(run.String()))
		}
	}
	return sb.String()
}
