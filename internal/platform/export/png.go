// Package export writes snapshots of a sandfall run to PNG images.
package export

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/vovakirdan/sandfall/internal/games/sandfall"
	"github.com/vovakirdan/sandfall/internal/games/sandfall/field"
)

// Options control the image layout.
type Options struct {
	Scale      int // pixels per grain
	Palette    [field.ColorCount]string
	Background string
	Border     string
	Ghost      string
	Text       string
	HUD        bool // draw the score line under the field
}

// DefaultOptions returns the One Dark palette used by the high-colour theme.
func DefaultOptions() Options {
	return Options{
		Scale: 4,
		Palette: [field.ColorCount]string{
			field.Green:   "#98C379",
			field.Yellow:  "#E5C07B",
			field.Red:     "#E06C75",
			field.Blue:    "#61AFEF",
			field.Magenta: "#C678DD",
			field.Cyan:    "#56B6C2",
		},
		Background: "#31353F",
		Border:     "#5C6370",
		Ghost:      "#4B5263",
		Text:       "#ABB2BF",
		HUD:        true,
	}
}

const (
	border    = 2  // frame width in grains
	hudHeight = 20 // pixels
)

// Render draws s into a new context.
func Render(s sandfall.Snapshot, o Options) (*gg.Context, error) {
	if o.Scale < 1 {
		return nil, fmt.Errorf("export: scale %d below 1", o.Scale)
	}
	if s.W <= 0 || s.H <= 0 || len(s.Grains) != s.W*s.H {
		return nil, fmt.Errorf("export: empty snapshot")
	}
	scale := float64(o.Scale)
	width := (s.W + 2*border) * o.Scale
	height := (s.H + 2*border) * o.Scale
	if o.HUD {
		height += hudHeight
	}

	dc := gg.NewContext(width, height)
	dc.SetHexColor(o.Border)
	dc.Clear()
	dc.SetHexColor(o.Background)
	dc.DrawRectangle(border*scale, border*scale, float64(s.W)*scale, float64(s.H)*scale)
	dc.Fill()

	cell := func(x, y int, hex string) {
		dc.SetHexColor(hex)
		dc.DrawRectangle(float64(x+border)*scale, float64(y+border)*scale, scale, scale)
		dc.Fill()
	}

	if s.HasPiece {
		ghost := s.Piece
		ghost.Y = s.GhostY
		ghost.Footprint(func(x, y int) bool {
			if y >= 0 && s.At(x, y).IsEmpty() {
				cell(x, y, o.Ghost)
			}
			return false
		})
	}
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			if c, ok := s.At(x, y).Color(); ok {
				cell(x, y, o.Palette[c])
			}
		}
	}
	if s.HasPiece {
		s.Piece.Footprint(func(x, y int) bool {
			if y >= 0 && y < s.H && x >= 0 && x < s.W {
				cell(x, y, o.Palette[s.Piece.Color])
			}
			return false
		})
	}

	if o.HUD {
		face, err := monoFace(12)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		dc.SetHexColor(o.Text)
		line := fmt.Sprintf("%d pts  L%d  %d lines", s.Score, s.Level, s.Spans)
		dc.DrawStringAnchored(line, float64(width)/2, float64(height-hudHeight/2), 0.5, 0.35)
	}
	return dc, nil
}

// Image renders s to an image.
func Image(s sandfall.Snapshot, o Options) (image.Image, error) {
	dc, err := Render(s, o)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// SavePNG renders s and writes it to path, creating parent directories.
func SavePNG(path string, s sandfall.Snapshot, o Options) error {
	dc, err := Render(s, o)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: cannot create directory: %w", err)
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("export: cannot write %s: %w", path, err)
	}
	return nil
}

// Filename returns the screenshot path for a variant taken at t.
func Filename(dir, gameID string, t time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.png", gameID, t.Format("20060102_150405")))
}

func monoFace(size float64) (font.Face, error) {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("export: cannot parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
