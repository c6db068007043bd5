package dialogue

import (
	"testing"
	"time"
)

func testEntry(lines ...string) *Entry {
	e := &Entry{ID: "test.entry", Speaker: "Jana", Side: SideLeft}
	for _, l := range lines {
		e.Lines = append(e.Lines, Line{Text: l})
	}
	return e
}

func newTestPlayer() *Player {
	p := NewPlayer()
	p.RevealInterval = 10 * time.Millisecond
	p.Debounce = 300 * time.Millisecond
	return p
}

func TestPlayRejectsEmptyEntry(t *testing.T) {
	p := newTestPlayer()
	if err := p.Play(&Entry{ID: "empty"}); err != ErrEmptyEntry {
		t.Fatalf("expected ErrEmptyEntry, got %v", err)
	}
	if err := p.Play(nil); err != ErrEmptyEntry {
		t.Fatalf("expected ErrEmptyEntry for nil entry, got %v", err)
	}
	if p.Phase() != PhaseIdle {
		t.Fatal("rejected Play must not change phase")
	}
}

func TestTypewriterRevealsOverTime(t *testing.T) {
	p := newTestPlayer()
	if err := p.Play(testEntry("abcde")); err != nil {
		t.Fatal(err)
	}
	if !p.IsTyping() {
		t.Fatal("expected Typing after Play")
	}
	if got := p.VisibleMarkup(); got != "" {
		t.Fatalf("nothing should be revealed at t=0, got %q", got)
	}

	p.Tick(25 * time.Millisecond) // 2 intervals
	if got := p.VisibleMarkup(); got != "ab" {
		t.Fatalf("after 25ms got %q, want %q", got, "ab")
	}

	p.Tick(100 * time.Millisecond)
	if !p.IsLineComplete() {
		t.Fatal("line should complete after enough ticks")
	}
	if got := p.VisibleMarkup(); got != "abcde" {
		t.Fatalf("completed line = %q", got)
	}
}

func TestAdvanceMidTypeSkipsAndDebounces(t *testing.T) {
	p := newTestPlayer()
	line := "hello <link=dopis><u>dopis</u></link> world"
	if err := p.Play(testEntry(line, "second")); err != nil {
		t.Fatal(err)
	}
	p.Tick(15 * time.Millisecond)

	p.Advance()
	if !p.IsLineComplete() {
		t.Fatal("skip should complete the line")
	}
	// Verbatim: the full annotated string, byte-for-byte.
	if got := p.VisibleMarkup(); got != line {
		t.Fatalf("skipped line = %q, want %q", got, line)
	}
	if !p.InDebounce() {
		t.Fatal("skip must open a debounce window")
	}

	// A second Advance inside the window is swallowed.
	p.Advance()
	if got, _ := p.CurrentLine(); got.Text != line {
		t.Fatalf("debounced Advance must not move to the next line, now at %q", got.Text)
	}

	// After the window passes, Advance moves on.
	p.Tick(300 * time.Millisecond)
	p.Advance()
	if got, _ := p.CurrentLine(); got.Text != "second" {
		t.Fatalf("expected second line, got %q", got.Text)
	}
	if !p.IsTyping() {
		t.Fatal("next line should re-enter Typing")
	}
}

func TestNaturalCompletionHasNoDebounce(t *testing.T) {
	p := newTestPlayer()
	if err := p.Play(testEntry("ab", "next")); err != nil {
		t.Fatal(err)
	}
	p.Tick(time.Second)
	if !p.IsLineComplete() || p.InDebounce() {
		t.Fatal("a naturally completed line needs no debounce")
	}
	p.Advance()
	if got, _ := p.CurrentLine(); got.Text != "next" {
		t.Fatalf("expected immediate advance, got %q", got.Text)
	}
}

func TestCompletionCallbackAndSessionClear(t *testing.T) {
	p := newTestPlayer()
	var completed string
	p.OnComplete = func(id string) {
		completed = id
		// The session must already be cleared when the callback fires.
		if p.Entry() != nil {
			t.Error("session not cleared before OnComplete")
		}
	}

	if err := p.Play(testEntry("only line")); err != nil {
		t.Fatal(err)
	}
	p.Tick(time.Second)
	p.Advance()

	if completed != "test.entry" {
		t.Fatalf("OnComplete got %q", completed)
	}
	if !p.IsEnded() {
		t.Fatal("expected Ended phase")
	}
	if p.VisibleMarkup() != "" {
		t.Fatal("no markup after session end")
	}
}

func TestCanAdvanceGateVetoes(t *testing.T) {
	p := newTestPlayer()
	blocked := true
	p.CanAdvance = func() bool { return !blocked }

	if err := p.Play(testEntry("abc")); err != nil {
		t.Fatal(err)
	}
	p.Tick(15 * time.Millisecond)
	shown := p.VisibleMarkup()

	p.Advance() // vetoed
	if p.VisibleMarkup() != shown || !p.IsTyping() {
		t.Fatal("vetoed Advance must be a no-op")
	}

	blocked = false
	p.Advance()
	if !p.IsLineComplete() {
		t.Fatal("Advance should work once the gate opens")
	}
}

func TestPlayReplacesActiveSession(t *testing.T) {
	p := newTestPlayer()
	if err := p.Play(testEntry("first entry line")); err != nil {
		t.Fatal(err)
	}
	p.Tick(15 * time.Millisecond)
	p.Advance() // opens debounce

	replacement := &Entry{ID: "other", Lines: []Line{{Text: "fresh"}}}
	if err := p.Play(replacement); err != nil {
		t.Fatal(err)
	}
	if p.Entry().ID != "other" || !p.IsTyping() {
		t.Fatal("Play must reset to the new entry")
	}
	if p.InDebounce() {
		t.Fatal("replacing the session must cancel the pending debounce")
	}
	if p.VisibleMarkup() != "" {
		t.Fatal("new session starts unrevealed")
	}
}

func TestAnnotateHookRunsPerLine(t *testing.T) {
	p := newTestPlayer()
	p.Annotate = func(raw string) string { return "<u>" + raw + "</u>" }
	if err := p.Play(testEntry("ab")); err != nil {
		t.Fatal(err)
	}
	p.Tick(time.Second)
	if got := p.VisibleMarkup(); got != "<u>ab</u>" {
		t.Fatalf("annotated line = %q", got)
	}
}

func TestTagsRevealAtomically(t *testing.T) {
	p := newTestPlayer()
	p.Annotate = func(raw string) string { return "<link=k><u>" + raw + "</u></link>" }
	if err := p.Play(testEntry("ab")); err != nil {
		t.Fatal(err)
	}
	p.Tick(10 * time.Millisecond) // one visible cluster
	if got := p.VisibleMarkup(); got != "<link=k><u>a" {
		t.Fatalf("partial reveal = %q", got)
	}
}

func TestSideString(t *testing.T) {
	if SideLeft.String() != "left" || SideRight.String() != "right" || SideNone.String() != "none" {
		t.Fatal("Side.String mismatch")
	}
}
