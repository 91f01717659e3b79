package ui

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CompactTheme is the default fyne theme with smaller text and padding so a
// full bin list fits on a laptop screen. A zero variant follows the system.
type CompactTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	pinned  bool
}

func NewCompactTheme() *CompactTheme {
	return &CompactTheme{base: theme.DefaultTheme()}
}

// NewCompactThemeWithVariant always renders the given variant.
func NewCompactThemeWithVariant(variant fyne.ThemeVariant) *CompactTheme {
	return &CompactTheme{base: theme.DefaultTheme(), variant: variant, pinned: true}
}

// ThemeByName maps the --theme flag values "system", "light" and "dark".
func ThemeByName(name string) (*CompactTheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "system":
		return NewCompactTheme(), nil
	case "light":
		return NewCompactThemeWithVariant(theme.VariantLight), nil
	case "dark":
		return NewCompactThemeWithVariant(theme.VariantDark), nil
	}
	return nil, fmt.Errorf("unknown theme %q (use system, light or dark)", name)
}

func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.pinned {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// compactSizes overrides the base sizes; anything missing falls through.
var compactSizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNameText:           12,
	theme.SizeNameCaptionText:    9,
	theme.SizeNameHeadingText:    20,
	theme.SizeNameSubHeadingText: 15,
	theme.SizeNamePadding:        3,
	theme.SizeNameInnerPadding:   6,
}

func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	if s, ok := compactSizes[name]; ok {
		return s
	}
	return t.base.Size(name)
}
