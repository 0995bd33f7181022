package sandfall

import (
	"fmt"
	"time"

	"github.com/vovakirdan/sandfall/internal/config"
	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/games/sandfall/field"
	"github.com/vovakirdan/sandfall/internal/games/sandfall/piece"
)

// Layout of the terminal view. One terminal cell shows one grain column and
// two grain rows with the upper half block glyph.
const (
	sidebarWidth = 18
	halfBlock    = '▀'
	popupTicks   = 90
)

// FitPlayfield shrinks a playfield (in blocks) until its half-block view and
// sidebar fit the screen. ok is false when even the minimum size does not fit.
func FitPlayfield(width, height, screenW, screenH int) (w, h int, ok bool) {
	maxW := (screenW - 2 - sidebarWidth) / field.GrainScale
	maxH := (screenH - 2) * 2 / field.GrainScale
	w = core.Clamp(width, config.MinWidth, max(maxW, config.MinWidth))
	h = core.Clamp(height, config.MinHeight, max(maxH, config.MinHeight))
	ok = maxW >= config.MinWidth && maxH >= config.MinHeight
	return w, h, ok
}

type popup struct {
	x, y   int // grain coordinates
	text   string
	ageTck int
}

func newPopup(c ClearEvent) popup {
	text := fmt.Sprintf("+%d", c.Points)
	if c.Chain > 1 {
		text += fmt.Sprintf(" x%d", c.Chain)
	}
	return popup{x: c.At.X, y: c.At.Y, text: text}
}

func (g *Game) agePopups() {
	kept := g.popups[:0]
	for _, p := range g.popups {
		p.ageTck++
		if p.ageTck%10 == 0 && p.y > 1 {
			p.y -= 2 // one terminal row
		}
		if p.ageTck < popupTicks {
			kept = append(kept, p)
		}
	}
	g.popups = kept
}

// Render draws the field, piece, sidebar and overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		dst.DrawTextCentered(dst.Height()/2, "sandfall: "+fmt.Sprint(g.err))
		return
	}
	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Terminal too small")
		dst.DrawTextCentered(dst.Height()/2+1, "Enlarge the window or press Q")
		return
	}
	RenderSnapshot(dst, g.engine.Snapshot())
	for _, p := range g.popups {
		dst.DrawTextColor(1+p.x, 1+p.y/2, p.text, core.ColorHighlight)
	}
}

// RenderSnapshot draws a snapshot. It is shared by the TUI and the PNG export.
func RenderSnapshot(dst *core.Screen, s Snapshot) {
	rows := (s.H + 1) / 2
	frame := core.Rect{W: s.W + 2, H: rows + 2}
	dst.DrawBoxColor(frame, core.ColorBorder)
	well := frame.Inner()

	// Overlay grains: ghost first, then the falling piece.
	overlay := make(map[field.Coord]core.Color)
	if s.HasPiece {
		ghost := s.Piece
		ghost.Y = s.GhostY
		ghost.Footprint(func(x, y int) bool {
			if y >= 0 && y < s.H && x >= 0 && x < s.W {
				overlay[field.Coord{X: x, Y: y}] = core.ColorGray
			}
			return false
		})
		col := core.SandColors[s.Piece.Color]
		s.Piece.Footprint(func(x, y int) bool {
			if y >= 0 && y < s.H && x >= 0 && x < s.W {
				overlay[field.Coord{X: x, Y: y}] = col
			}
			return false
		})
	}

	colorAt := func(x, y int) core.Color {
		if y >= s.H {
			return core.ColorBackground
		}
		if c, ok := s.At(x, y).Color(); ok {
			return core.SandColors[c]
		}
		if c, ok := overlay[field.Coord{X: x, Y: y}]; ok {
			return c
		}
		return core.ColorBackground
	}

	for cy := 0; cy < rows; cy++ {
		for x := 0; x < s.W; x++ {
			dst.SetColor(well.X+x, well.Y+cy, halfBlock, colorAt(x, 2*cy), colorAt(x, 2*cy+1))
		}
	}

	renderSidebar(dst, s, frame.Right()+1)
	renderOverlay(dst, s, rows)
}

func renderSidebar(dst *core.Screen, s Snapshot, x int) {
	y := 1
	line := func(text string, fg core.Color) {
		dst.DrawTextColor(x, y, text, fg)
		y++
	}

	line("SANDFALL", core.ColorHighlight)
	line(s.Mode.String(), core.ColorGray)
	y++
	line(fmt.Sprintf("Score %d", s.Score), core.ColorWhite)
	line(fmt.Sprintf("Level %d", s.Level), core.ColorWhite)
	line(fmt.Sprintf("Lines %d", s.Spans), core.ColorWhite)
	switch s.Mode.Kind() {
	case ModeTimed:
		line("Left  "+formatClock(s.Remaining), core.ColorWhite)
	case ModeClear:
		goal := fmt.Sprintf("Goal  %d/%d", min(s.Spans, s.Mode.Target()), s.Mode.Target())
		if s.GoalReached {
			goal += " ✓"
		}
		line(goal, core.ColorWhite)
		line("Time  "+formatClock(s.Elapsed), core.ColorWhite)
	default:
		line("Time  "+formatClock(s.Elapsed), core.ColorWhite)
	}
	if s.Chain > 1 {
		line(fmt.Sprintf("Chain x%d", s.Chain), core.ColorHighlight)
	} else {
		y++
	}

	y++
	line("Next", core.ColorGray)
	for _, e := range s.Next {
		y = drawMiniPiece(dst, x, y, e) + 1
	}
}

// drawMiniPiece draws an entry two characters per block and returns the row
// below it.
func drawMiniPiece(dst *core.Screen, x, y int, e piece.Entry) int {
	col := core.SandColors[e.Color]
	bottom := y
	for _, o := range e.Shape.Cells(0) {
		dst.SetColor(x+o.X*2, y+o.Y, '█', col, core.ColorDefault)
		dst.SetColor(x+o.X*2+1, y+o.Y, '█', col, core.ColorDefault)
		bottom = max(bottom, y+o.Y+1)
	}
	return bottom
}

func renderOverlay(dst *core.Screen, s Snapshot, rows int) {
	var title, sub string
	switch s.State {
	case StatePaused:
		title, sub = "PAUSED", "P to resume"
	case StateGameOver:
		title, sub = "GAME OVER", s.Reason.String()
	case StateTimeUp:
		title, sub = "TIME UP", fmt.Sprintf("%d lines", s.Spans)
	case StateWin:
		title, sub = "CLEARED!", "in "+formatClock(s.GoalTime)
	default:
		return
	}

	mid := 1 + rows/2
	cx := 1 + s.W/2
	for _, l := range []struct {
		dy   int
		text string
		fg   core.Color
	}{
		{-1, title, core.ColorHighlight},
		{0, sub, core.ColorWhite},
		{2, "R restart  Q quit", core.ColorGray},
	} {
		n := len([]rune(l.text))
		for i := -1; i <= n; i++ {
			dst.SetColor(cx-n/2+i, mid+l.dy, ' ', core.ColorDefault, core.ColorDefault)
		}
		dst.DrawTextColor(cx-n/2, mid+l.dy, l.text, l.fg)
	}
}

func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
