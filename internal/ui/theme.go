// Package ui provides the ToonChess launcher window and the settings
// session behind it.
//
// This file defines the launcher's compact Fyne theme.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// accent is the default dark board square color.
var accent = color.NRGBA{R: 179, G: 153, B: 105, A: 0xff}

// LauncherTheme wraps the default Fyne theme with a board-colored accent and
// compact sizing so the whole form fits in a small window.
type LauncherTheme struct {
	base fyne.Theme
}

// NewLauncherTheme creates a LauncherTheme following the system variant.
func NewLauncherTheme() *LauncherTheme {
	return &LauncherTheme{
		base: theme.DefaultTheme(),
	}
}

// Color delegates to the base theme, overriding the primary color.
func (t *LauncherTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return accent
	default:
		return t.base.Color(name, variant)
	}
}

// Font delegates to the base theme.
func (t *LauncherTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *LauncherTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *LauncherTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 4
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return t.base.Size(name)
	}
}
