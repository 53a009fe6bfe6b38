package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

var (
	styleDefault = tcell.StyleDefault
	styleFocused = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleOpen    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleClosed  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

var colorNames = map[string]tcell.Color{
	"black":        tcell.ColorBlack,
	"red":          tcell.ColorRed,
	"green":        tcell.ColorGreen,
	"yellow":       tcell.ColorYellow,
	"blue":         tcell.ColorBlue,
	"magenta":      tcell.ColorDarkMagenta,
	"cyan":         tcell.ColorDarkCyan,
	"gray":         tcell.ColorGray,
	"grey":         tcell.ColorGray,
	"white":        tcell.ColorWhite,
	"lightred":     tcell.ColorIndianRed,
	"lightgreen":   tcell.ColorLightGreen,
	"lightyellow":  tcell.ColorLightYellow,
	"lightblue":    tcell.ColorLightBlue,
	"lightmagenta": tcell.ColorOrchid,
	"lightcyan":    tcell.ColorLightCyan,
	"lightgray":    tcell.ColorLightGray,
	"lightgrey":    tcell.ColorLightGray,
}

// colorByName maps a configured color name to a tcell color, falling
// back to white for unknown names.
func colorByName(name string) tcell.Color {
	if c, ok := colorNames[strings.ToLower(strings.ReplaceAll(name, " ", ""))]; ok {
		return c
	}
	return tcell.ColorWhite
}

// tagStyle returns the style a label is rendered with.
func tagStyle(colorName string) tcell.Style {
	return tcell.StyleDefault.Foreground(colorByName(colorName))
}
