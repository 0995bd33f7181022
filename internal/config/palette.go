package config

import (
	"fmt"
	"strings"
)

// Palette selects the sand colour set.
type Palette string

const (
	PaletteNormal       Palette = "normal"
	PaletteHighContrast Palette = "high-contrast"
	PaletteColorblind   Palette = "colorblind"
)

// Palettes lists the palettes in menu order.
var Palettes = []Palette{PaletteNormal, PaletteHighContrast, PaletteColorblind}

// Valid reports whether p is a known palette. Empty means normal.
func (p Palette) Valid() bool {
	switch p {
	case "", PaletteNormal, PaletteHighContrast, PaletteColorblind:
		return true
	}
	return false
}

// ParsePalette converts a user string to a palette.
func ParsePalette(s string) (Palette, error) {
	p := Palette(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "highcontrast", "high_contrast", "contrast":
		p = PaletteHighContrast
	case "colourblind", "color-blind", "colour-blind":
		p = PaletteColorblind
	}
	if p == "" || !p.Valid() {
		return "", fmt.Errorf("config: unknown palette %q: %w", s, ErrInvalidConfig)
	}
	return p, nil
}
