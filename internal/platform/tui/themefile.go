package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/sandfall/internal/core"
)

// themeKeys maps palette slots to btop theme keys, first match wins.
var themeKeys = []struct {
	slot core.Color
	keys []string
}{
	{core.ColorGreen, []string{"mem_box", "cpu_start"}},
	{core.ColorYellow, []string{"title", "cpu_mid"}},
	{core.ColorRed, []string{"cpu_end", "temp_end"}},
	{core.ColorBlue, []string{"cpu_box"}},
	{core.ColorMagenta, []string{"net_box"}},
	{core.ColorCyan, []string{"hi_fg", "proc_misc"}},
	{core.ColorBackground, []string{"meter_bg"}},
	{core.ColorBorder, []string{"div_line"}},
	{core.ColorWhite, []string{"main_fg"}},
	{core.ColorHighlight, []string{"title"}},
	{core.ColorGray, []string{"inactive_fg"}},
}

// LoadThemeFile reads a btop-style theme file.
func LoadThemeFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("tui: cannot read theme: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseTheme(name, data), nil
}

// ParseTheme builds a theme from `theme[key]="#RRGGBB"` lines. Keys that are
// missing or hold an invalid colour keep the One Dark value.
func ParseTheme(name string, data []byte) Theme {
	values := make(map[string]string)
	for line := range strings.Lines(string(data)) {
		line = strings.TrimSpace(line)
		rest, ok := strings.CutPrefix(line, "theme[")
		if !ok {
			continue
		}
		key, rest, ok := strings.Cut(rest, "]")
		if !ok {
			continue
		}
		_, value, ok := strings.Cut(rest, "=")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if value != "" {
			values[strings.TrimSpace(key)] = value
		}
	}

	palette := HighColorTheme().Palette
	for _, tk := range themeKeys {
		for _, key := range tk.keys {
			if c, ok := parseHex(values[key]); ok {
				palette[tk.slot] = c
				break
			}
		}
	}
	return NewTheme(name, palette)
}

// parseHex accepts #RRGGBB or #RGB, with or without the hash.
func parseHex(s string) (lipgloss.Color, bool) {
	if s == "" {
		return "", false
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return "", false
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", false
	}
	return lipgloss.Color(c.Hex()), true
}
