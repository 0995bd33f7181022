package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sandfall/internal/config"
	"github.com/vovakirdan/sandfall/internal/core"
)

func TestRenderKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "plain")
	s.DrawTextColor(2, 1, "sand", core.ColorYellow)
	s.SetColor(0, 2, '▀', core.ColorRed, core.ColorBackground)
	s.SetColor(1, 2, '▀', core.ColorRed, core.ColorBackground)

	for _, th := range []Theme{ANSITheme(), HighColorTheme(), HighContrastTheme(), ColorblindTheme()} {
		assert.Equal(t, s.String(), ansi.Strip(th.Render(s)), th.Name)
	}
	assert.Equal(t, s.String(), ansi.Strip(RenderScreen(s)))
}

func TestThemeStyleOutOfRange(t *testing.T) {
	th := ANSITheme()
	assert.NotPanics(t, func() {
		th.Style(core.Color(200), core.Color(250)).Render("x")
	})
}

func TestThemeFor(t *testing.T) {
	assert.Equal(t, "one-dark", ThemeFor(true).Name)
	assert.Equal(t, "ansi", ThemeFor(false).Name)
	for _, c := range core.SandColors {
		assert.NotNil(t, HighColorTheme().Palette[c])
		assert.NotNil(t, ANSITheme().Palette[c])
	}
}

func TestPaletteThemesReplaceSand(t *testing.T) {
	base := HighColorTheme()
	hc := HighContrastTheme()
	cb := ColorblindTheme()

	assert.Equal(t, "one-dark+high-contrast", hc.Name)
	assert.Equal(t, lipgloss.Color("#FF0000"), hc.Palette[core.ColorRed])
	assert.Equal(t, lipgloss.Color("#00FFFF"), hc.Palette[core.ColorCyan])
	assert.Equal(t, lipgloss.Color("#0077BB"), cb.Palette[core.ColorGreen])
	assert.Equal(t, lipgloss.Color("#BBBB00"), cb.Palette[core.ColorCyan])

	// Frame colours stay with the base theme.
	for _, c := range []core.Color{core.ColorBackground, core.ColorBorder, core.ColorHighlight, core.ColorGray} {
		assert.Equal(t, base.Palette[c], hc.Palette[c])
		assert.Equal(t, base.Palette[c], cb.Palette[c])
	}

	assert.Equal(t, lipgloss.Color("9"), ANSITheme().WithPalette(config.PaletteHighContrast).Palette[core.ColorRed])
	assert.Equal(t, base.Name, base.WithPalette(config.PaletteNormal).Name)
	assert.Equal(t, base.Palette, base.WithPalette("").Palette)
}

const btopTheme = `# One Dark by Vova
theme[main_bg]=""
theme[main_fg]="#abb2bf"
theme[title]='#E5C07B'
theme[cpu_start]="#112233"
theme[cpu_box]="#0af"
theme[net_box]="not-a-colour"
theme[meter_bg] = "#000000"
theme[temp_end]="ff0000"
theme[unknown]="#ffffff"
`

func TestParseTheme(t *testing.T) {
	th := ParseTheme("onedark", []byte(btopTheme))
	base := HighColorTheme()

	assert.Equal(t, "onedark", th.Name)
	assert.Equal(t, lipgloss.Color("#112233"), th.Palette[core.ColorGreen], "mem_box falls back to cpu_start")
	assert.Equal(t, lipgloss.Color("#e5c07b"), th.Palette[core.ColorYellow])
	assert.Equal(t, lipgloss.Color("#e5c07b"), th.Palette[core.ColorHighlight])
	assert.Equal(t, lipgloss.Color("#ff0000"), th.Palette[core.ColorRed], "hash is optional")
	assert.Equal(t, lipgloss.Color("#00aaff"), th.Palette[core.ColorBlue], "short hex expands")
	assert.Equal(t, lipgloss.Color("#000000"), th.Palette[core.ColorBackground])
	assert.Equal(t, lipgloss.Color("#abb2bf"), th.Palette[core.ColorWhite])
	assert.Equal(t, base.Palette[core.ColorMagenta], th.Palette[core.ColorMagenta], "invalid colour keeps the default")
	assert.Equal(t, base.Palette[core.ColorBorder], th.Palette[core.ColorBorder])
}

func TestBuildTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gruvbox.theme")
	require.NoError(t, os.WriteFile(path, []byte(btopTheme), 0o644))

	th, err := BuildTheme(true, config.PaletteColorblind, path)
	require.NoError(t, err)
	assert.Equal(t, "gruvbox+colorblind", th.Name)
	assert.Equal(t, lipgloss.Color("#0077BB"), th.Palette[core.ColorGreen], "palette applies after the file")
	assert.Equal(t, lipgloss.Color("#000000"), th.Palette[core.ColorBackground])

	th, err = BuildTheme(false, config.PaletteNormal, filepath.Join(t.TempDir(), "missing.theme"))
	assert.Error(t, err)
	assert.Equal(t, "ansi", th.Name)

	s := core.NewScreen(6, 1)
	s.DrawTextColor(0, 0, "grain", core.ColorGreen)
	assert.Equal(t, s.String(), ansi.Strip(th.Render(s)))
}
