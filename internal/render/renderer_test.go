package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"lingotrail/internal/markup"
)

func newTestRenderer(t *testing.T) (*Renderer, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	sim.SetSize(40, 12)
	t.Cleanup(sim.Fini)
	return NewRenderer(sim), sim
}

// rowText reads the visible text of one simulation screen row.
func rowText(sim tcell.SimulationScreen, y int) string {
	cells, w, _ := sim.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		for _, r := range cells[y*w+x].Runes {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func TestDrawMarkupRecordsLinkRegion(t *testing.T) {
	r, sim := newTestRenderer(t)
	r.Begin()
	m := "Mám pro vás " + markup.Link("dopis", "dopis") + "."
	r.DrawMarkup(m, 2, 3, 30, "")
	r.Show()

	if got := rowText(sim, 3); got != "  Mám pro vás dopis." {
		t.Errorf("row = %q", got)
	}

	// Every cell of the word resolves to its key, neighbors to nothing.
	for x := 14; x <= 18; x++ {
		key, ok := r.HitTest(x, 3)
		if !ok || key != "dopis" {
			t.Errorf("HitTest(%d, 3) = %q, %v", x, key, ok)
		}
	}
	if _, ok := r.HitTest(13, 3); ok {
		t.Error("cell before the link should not hit")
	}
	if _, ok := r.HitTest(19, 3); ok {
		t.Error("cell after the link should not hit")
	}
}

func TestDrawMarkupWrapsAtWidth(t *testing.T) {
	r, _ := newTestRenderer(t)
	r.Begin()
	next := r.DrawMarkup("aaaa bbbb cccc dddd", 0, 0, 10, "")
	if next < 2 {
		t.Errorf("text should wrap onto multiple rows, got next row %d", next)
	}
}

func TestDrawMarkupSplitsRegionAcrossWrap(t *testing.T) {
	r, _ := newTestRenderer(t)
	r.Begin()
	// Link longer than the column: the region must split per row, never
	// span rows.
	r.DrawMarkup(markup.Link("k", "abcdefghij"), 0, 0, 6, "")

	if _, ok := r.HitTest(2, 0); !ok {
		t.Error("first row of the wrapped link should hit")
	}
	if _, ok := r.HitTest(2, 1); !ok {
		t.Error("second row of the wrapped link should hit")
	}
	if _, ok := r.HitTest(8, 0); ok {
		t.Error("cells past the wrap column should not hit")
	}
}

func TestBeginDropsStaleRegions(t *testing.T) {
	r, _ := newTestRenderer(t)
	r.Begin()
	r.DrawMarkup(markup.Link("k", "word"), 0, 0, 20, "")
	if _, ok := r.HitTest(0, 0); !ok {
		t.Fatal("region should exist after drawing")
	}
	r.Begin()
	if _, ok := r.HitTest(0, 0); ok {
		t.Error("regions must reset between frames")
	}
}

func TestPutTextKeepsCombiningMarks(t *testing.T) {
	r, sim := newTestRenderer(t)
	r.Begin()
	r.PutText(0, 0, "známka", tcell.StyleDefault)
	r.Show()
	if got := rowText(sim, 0); got != "známka" {
		t.Errorf("row = %q, want známka", got)
	}
}

func TestDrawPopupMarksGuesses(t *testing.T) {
	r, sim := newTestRenderer(t)
	r.Begin()
	r.DrawPopup(markup.Popup{Text: "letter?", IsGuess: true}, 2)
	r.Show()
	if got := rowText(sim, 2); !strings.Contains(got, "(your guess)") {
		t.Errorf("guess popup row = %q, want guess marker", got)
	}
}

func TestDrawSpeakerSides(t *testing.T) {
	r, sim := newTestRenderer(t)
	r.Begin()
	r.DrawSpeaker("Listonoš", 1, 0) // dialogue.SideLeft
	r.Show()
	if got := rowText(sim, 0); !strings.Contains(got, "Listonoš") {
		t.Errorf("row = %q, want speaker name", got)
	}

	r.Begin()
	r.DrawSpeaker("Listonoš", 0, 0) // dialogue.SideNone
	r.Show()
	if got := rowText(sim, 0); got != "" {
		t.Errorf("SideNone drew %q, want nothing", got)
	}
}
