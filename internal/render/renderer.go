// Package render draws annotated dialogue markup, quiz answers, and
// translation popups onto a tcell screen, and records link hit regions for
// mouse hover and click resolution.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"lingotrail/internal/dialogue"
	"lingotrail/internal/markup"
)

// LinkRegion is one clickable run of cells. Key is the dictionary key for
// word links, or the decimal answer index for quiz answer links.
type LinkRegion struct {
	X1, X2, Y int // inclusive cell range on row Y
	Key       string
}

// Renderer draws one frame at a time. Link regions accumulate between
// Begin and Show and feed HitTest for the mouse handlers.
type Renderer struct {
	screen tcell.Screen
	links  []LinkRegion
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Begin clears the screen and drops last frame's link regions.
func (r *Renderer) Begin() {
	r.screen.Clear()
	r.links = r.links[:0]
}

// Show flushes the frame to the terminal.
func (r *Renderer) Show() { r.screen.Show() }

// HitTest resolves screen coordinates to the link under them.
func (r *Renderer) HitTest(x, y int) (string, bool) {
	for _, l := range r.links {
		if l.Y == y && x >= l.X1 && x <= l.X2 {
			return l.Key, true
		}
	}
	return "", false
}

// PutText writes plain text at (x, y), clipped at the screen edge.
func (r *Renderer) PutText(x, y int, s string, st tcell.Style) int {
	sw, _ := r.screen.Size()
	for _, cluster := range clusters(s) {
		w := runewidth.StringWidth(cluster)
		if x+w > sw {
			break
		}
		r.putCluster(x, y, cluster, st)
		x += w
	}
	return x
}

// putCluster writes one grapheme cluster into a cell, passing trailing
// runes as combining characters so accents and emoji stay intact.
func (r *Renderer) putCluster(x, y int, cluster string, st tcell.Style) {
	runes := []rune(cluster)
	r.screen.SetContent(x, y, runes[0], runes[1:], st)
}

func clusters(s string) []string {
	var out []string
	for s != "" {
		c, rest, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
		out = append(out, c)
		s = rest
	}
	return out
}

// styleFor maps one markup segment to a tcell style. Links render in the
// accent color (hover-brightened when hovered) unless the markup carries
// an explicit color.
func styleFor(seg markup.Segment, hovered bool) tcell.Style {
	st := styleText
	switch {
	case seg.Color != "":
		st = tcell.StyleDefault.Foreground(tcell.GetColor(seg.Color))
	case seg.Key != "" && hovered:
		st = tcell.StyleDefault.Foreground(tcell.GetColor(hexAccentHover))
	case seg.Key != "":
		st = tcell.StyleDefault.Foreground(tcell.GetColor(hexAccent))
	}
	if seg.Underline {
		st = st.Underline(true)
	}
	return st
}

// DrawMarkup renders annotated markup inside a column range, wrapping at
// the right edge, and records link regions. hoveredKey brightens the
// matching link. Returns the row after the last one drawn.
func (r *Renderer) DrawMarkup(m string, x, y, maxWidth int, hoveredKey string) int {
	cx, cy := x, y
	var open *LinkRegion

	closeRegion := func() {
		if open != nil {
			r.links = append(r.links, *open)
			open = nil
		}
	}
	newline := func() {
		closeRegion()
		cx = x
		cy++
	}

	for _, seg := range markup.Parse(m) {
		st := styleFor(seg, seg.Key != "" && seg.Key == hoveredKey)
		for _, cluster := range clusters(seg.Text) {
			if cluster == "\n" {
				newline()
				continue
			}
			w := runewidth.StringWidth(cluster)
			if cx+w > x+maxWidth {
				newline()
			}
			r.putCluster(cx, cy, cluster, st)
			if seg.Key != "" {
				if open != nil && open.Key == seg.Key && open.Y == cy {
					open.X2 = cx + w - 1
				} else {
					closeRegion()
					open = &LinkRegion{X1: cx, X2: cx + w - 1, Y: cy, Key: seg.Key}
				}
			} else {
				closeRegion()
			}
			cx += w
		}
		if seg.Key == "" {
			closeRegion()
		}
	}
	closeRegion()
	return cy + 1
}

// DrawSpeaker draws the speaker name on its side of the dialogue box row.
// SideNone hides the name entirely.
func (r *Renderer) DrawSpeaker(name string, side dialogue.Side, y int) {
	if side == dialogue.SideNone || name == "" {
		return
	}
	sw, _ := r.screen.Size()
	label := " " + name + " "
	x := 2
	if side == dialogue.SideRight {
		x = sw - runewidth.StringWidth(label) - 2
	}
	r.PutText(x, y, label, styleGold.Bold(true))
}

// DrawPopup draws the translation popup near the bottom of the screen.
// Guesses render in their own color, marked as uncertain.
func (r *Renderer) DrawPopup(p markup.Popup, y int) {
	text := p.Text
	st := styleText.Bold(true)
	if p.IsGuess {
		text = text + "  (your guess)"
		st = styleGuess
	}
	r.PutText(4, y, text, st)
	if p.WordClass != "" {
		r.PutText(4, y+1, p.WordClass, styleDim)
	}
}

// DrawInput draws the fill-in-blank prompt line with a block cursor.
func (r *Renderer) DrawInput(typed string, x, y int) {
	end := r.PutText(x, y, "> "+typed, styleText)
	r.screen.SetContent(end, y, '█', nil, styleGold)
}

// DrawSeparator draws a horizontal rule across the screen.
func (r *Renderer) DrawSeparator(y int) {
	sw, _ := r.screen.Size()
	for x := 0; x < sw; x++ {
		r.screen.SetContent(x, y, '─', nil, styleDim)
	}
}

// DrawStatus draws the hint bar on the bottom row.
func (r *Renderer) DrawStatus(text string) {
	_, sh := r.screen.Size()
	r.PutText(1, sh-1, text, styleDim)
}

// DrawJournal lists unlocked vocabulary in unlock order.
func (r *Renderer) DrawJournal(labels []string, completed int) {
	r.PutText(2, 1, "JOURNAL", styleGold.Bold(true))
	r.DrawSeparator(2)
	y := 4
	if len(labels) == 0 {
		r.PutText(4, y, "No words collected yet.", styleDim)
		y += 2
	}
	for _, l := range labels {
		r.PutText(4, y, l, styleText)
		y++
	}
	y++
	r.PutText(2, y, fmt.Sprintf("Dialogues completed: %d", completed), styleDim)
}
