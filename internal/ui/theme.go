package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// UploaderTheme tightens spacing so more video rows fit on screen
type UploaderTheme struct {
	base fyne.Theme
}

// NewUploaderTheme creates the application theme
func NewUploaderTheme() fyne.Theme {
	return &UploaderTheme{base: theme.DefaultTheme()}
}

// Color returns theme colors
func (t *UploaderTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0, G: 150, B: 136, A: 255} // teal
	case theme.ColorNameSuccess:
		return color.NRGBA{R: 56, G: 142, B: 60, A: 255}
	case theme.ColorNameError:
		return color.NRGBA{R: 211, G: 47, B: 47, A: 255}
	case theme.ColorNameWarning:
		return color.NRGBA{R: 245, G: 124, B: 0, A: 255}
	}
	return t.base.Color(name, variant)
}

// Font returns theme fonts
func (t *UploaderTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon returns theme icons
func (t *UploaderTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns theme sizes
func (t *UploaderTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 3
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 17
	case theme.SizeNameCaptionText:
		return 11
	case theme.SizeNameInputRadius, theme.SizeNameSelectionRadius:
		return 4
	}
	return t.base.Size(name)
}
