package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sandfall/internal/config"
	"github.com/vovakirdan/sandfall/internal/core"
)

const (
	paletteSize = int(core.ColorHighlight) + 1
	ansiName    = "ansi"
)

// Sand colours of the alternative palettes, in field colour order.
var (
	highContrastSand = [6]string{"#00FF00", "#FFFF00", "#FF0000", "#0088FF", "#FF00FF", "#00FFFF"}
	highContrastANSI = [6]string{"10", "11", "9", "12", "13", "14"}
	colorblindSand   = [6]string{"#0077BB", "#EE7733", "#009988", "#CC3311", "#EE3377", "#BBBB00"}
)

// Theme maps palette slots to terminal colours. Styles for every
// foreground/background pair are built once.
type Theme struct {
	Name    string
	Palette [paletteSize]lipgloss.TerminalColor

	styles [paletteSize][paletteSize]lipgloss.Style
}

// NewTheme builds the style table for a palette. A nil entry keeps the
// terminal default.
func NewTheme(name string, palette [paletteSize]lipgloss.TerminalColor) Theme {
	t := Theme{Name: name, Palette: palette}
	for fg := range paletteSize {
		for bg := range paletteSize {
			s := lipgloss.NewStyle()
			if c := palette[fg]; c != nil {
				s = s.Foreground(c)
			}
			if c := palette[bg]; c != nil && core.Color(bg) != core.ColorDefault {
				s = s.Background(c)
			}
			t.styles[fg][bg] = s
		}
	}
	return t
}

// Style returns the style for a cell.
func (t *Theme) Style(fg, bg core.Color) lipgloss.Style {
	if int(fg) >= paletteSize {
		fg = core.ColorDefault
	}
	if int(bg) >= paletteSize {
		bg = core.ColorDefault
	}
	return t.styles[fg][bg]
}

// ANSITheme uses the 16 base terminal colours.
func ANSITheme() Theme {
	var p [paletteSize]lipgloss.TerminalColor
	p[core.ColorGreen] = lipgloss.Color("2")
	p[core.ColorYellow] = lipgloss.Color("3")
	p[core.ColorRed] = lipgloss.Color("1")
	p[core.ColorBlue] = lipgloss.Color("4")
	p[core.ColorMagenta] = lipgloss.Color("5")
	p[core.ColorCyan] = lipgloss.Color("6")
	p[core.ColorWhite] = lipgloss.Color("15")
	p[core.ColorGray] = lipgloss.Color("8")
	p[core.ColorBackground] = lipgloss.Color("0")
	p[core.ColorBorder] = lipgloss.Color("7")
	p[core.ColorHighlight] = lipgloss.Color("11")
	return NewTheme(ansiName, p)
}

// HighColorTheme uses One Dark true colours, degraded by lipgloss on
// terminals that lack them.
func HighColorTheme() Theme {
	var p [paletteSize]lipgloss.TerminalColor
	p[core.ColorGreen] = lipgloss.Color("#98C379")
	p[core.ColorYellow] = lipgloss.Color("#E5C07B")
	p[core.ColorRed] = lipgloss.Color("#E06C75")
	p[core.ColorBlue] = lipgloss.Color("#61AFEF")
	p[core.ColorMagenta] = lipgloss.Color("#C678DD")
	p[core.ColorCyan] = lipgloss.Color("#56B6C2")
	p[core.ColorWhite] = lipgloss.Color("#ABB2BF")
	p[core.ColorGray] = lipgloss.Color("#4B5263")
	p[core.ColorBackground] = lipgloss.Color("#31353F")
	p[core.ColorBorder] = lipgloss.Color("#5C6370")
	p[core.ColorHighlight] = lipgloss.Color("#D19A66")
	return NewTheme("one-dark", p)
}

// HighContrastTheme is One Dark with saturated sand colours.
func HighContrastTheme() Theme {
	return HighColorTheme().WithPalette(config.PaletteHighContrast)
}

// ColorblindTheme is One Dark with sand colours that do not rely on telling
// red from green.
func ColorblindTheme() Theme {
	return HighColorTheme().WithPalette(config.PaletteColorblind)
}

// WithPalette returns t with the sand slots replaced by the palette's colours.
// The normal palette keeps t as is.
func (t Theme) WithPalette(p config.Palette) Theme {
	var sand [6]string
	switch p {
	case config.PaletteHighContrast:
		sand = highContrastSand
		if t.Name == ansiName {
			sand = highContrastANSI
		}
	case config.PaletteColorblind:
		sand = colorblindSand
	default:
		return t
	}
	palette := t.Palette
	for i, slot := range core.SandColors {
		palette[slot] = lipgloss.Color(sand[i])
	}
	return NewTheme(t.Name+"+"+string(p), palette)
}

// BuildTheme loads the theme file when path is set, otherwise picks the theme
// for the colour depth, and applies the palette. A theme file that cannot be
// read falls back to the colour depth default and its error is returned.
func BuildTheme(highColor bool, palette config.Palette, path string) (Theme, error) {
	base := ThemeFor(highColor)
	var err error
	if path != "" {
		var loaded Theme
		if loaded, err = LoadThemeFile(path); err == nil {
			base = loaded
		}
	}
	return base.WithPalette(palette), err
}

// ThemeFor picks the theme for the configured colour depth.
func ThemeFor(highColor bool) Theme {
	if highColor {
		return HighColorTheme()
	}
	return ANSITheme()
}
