package quiz

import "github.com/lucasb-eyer/go-colorful"

// Answer palette. Attempted answers dim so the player can see which ones
// were already tried; the hover shade is derived from the accent color
// rather than hard-coded, so palette tweaks stay consistent.
const (
	colorFresh     = "#e8e8e8"
	colorAttempted = "#6f6f6f"
	colorAccent    = "#ffaf00"
)

var colorHover = func() string {
	accent, _ := colorful.Hex(colorAccent)
	white, _ := colorful.Hex("#ffffff")
	return accent.BlendLab(white, 0.35).Clamped().Hex()
}()

// ColorFor picks the display color for one answer. It is a pure function
// of its inputs: rebuilding answer markup with identical state always
// produces identical output.
func ColorFor(idx int, attempted map[int]bool, hovered int) string {
	if idx == hovered {
		return colorHover
	}
	if attempted[idx] {
		return colorAttempted
	}
	return colorFresh
}
