package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Base palette. Linked words get the accent color so they read as
// interactive; the hover shade is derived from it rather than hand-picked.
const (
	hexText   = "#d8d8d8"
	hexAccent = "#ffaf00"
	hexDim    = "#808080"
	hexGuess  = "#87afff"
)

var hexAccentHover = func() string {
	accent, _ := colorful.Hex(hexAccent)
	white, _ := colorful.Hex("#ffffff")
	return accent.BlendLab(white, 0.4).Clamped().Hex()
}()

var (
	styleText  = tcell.StyleDefault.Foreground(tcell.GetColor(hexText))
	styleDim   = tcell.StyleDefault.Foreground(tcell.GetColor(hexDim))
	styleGuess = tcell.StyleDefault.Foreground(tcell.GetColor(hexGuess))
	styleGold  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)
