package dialogue

import (
	"errors"
	"time"

	"lingotrail/internal/markup"
)

// ErrEmptyEntry rejects Play calls on entries with no lines.
var ErrEmptyEntry = errors.New("dialogue entry has no lines")

// Phase tracks the playback state machine.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseTyping
	PhaseLineComplete
	PhaseEnded
)

// Defaults for the reveal rate and the post-skip input debounce.
const (
	DefaultRevealInterval = 40 * time.Millisecond
	DefaultDebounce       = 300 * time.Millisecond
)

// Player plays one dialogue entry at a time. The host loop calls Tick every
// frame to advance the typewriter; Advance is wired to the player's input.
// Starting a new Play replaces any in-flight session, which implicitly
// cancels its pending reveal and debounce timers.
type Player struct {
	// Annotate converts a raw script line into renderable markup.
	// Required; typically closes over the vocabulary index and the
	// current unlock state.
	Annotate func(raw string) string

	// CanAdvance lets the host veto advance input, e.g. while a popup
	// is open. Nil means never vetoed.
	CanAdvance func() bool

	// OnComplete fires after the last line is advanced and the session
	// has been cleared.
	OnComplete func(id string)

	RevealInterval time.Duration
	Debounce       time.Duration

	entry     *Entry
	lineIdx   int
	phase     Phase
	current   string // annotated markup of the current line
	total     int    // visible length of current
	shown     int    // revealed visible clusters
	revealAcc time.Duration
	debounce  time.Duration // remaining debounce window
}

// NewPlayer creates a Player with the default timing configuration.
func NewPlayer() *Player {
	return &Player{
		RevealInterval: DefaultRevealInterval,
		Debounce:       DefaultDebounce,
	}
}

// Play starts the entry at its first line, replacing any active session.
func (p *Player) Play(entry *Entry) error {
	if entry == nil || len(entry.Lines) == 0 {
		return ErrEmptyEntry
	}
	p.entry = entry
	p.lineIdx = 0
	p.debounce = 0
	p.startLine()
	return nil
}

// startLine annotates the current line and enters Typing. A line that
// annotates to nothing visible completes immediately.
func (p *Player) startLine() {
	raw := p.entry.Lines[p.lineIdx].Text
	p.current = raw
	if p.Annotate != nil {
		p.current = p.Annotate(raw)
	}
	p.total = markup.VisibleLen(p.current)
	p.shown = 0
	p.revealAcc = 0
	if p.total == 0 {
		p.phase = PhaseLineComplete
		return
	}
	p.phase = PhaseTyping
}

// Tick advances the reveal cursor and the debounce window by dt. The host
// frame loop drives all timing through here; no real timers are involved.
func (p *Player) Tick(dt time.Duration) {
	if p.debounce > 0 {
		p.debounce -= dt
		if p.debounce < 0 {
			p.debounce = 0
		}
	}
	if p.phase != PhaseTyping {
		return
	}
	interval := p.RevealInterval
	if interval <= 0 {
		interval = DefaultRevealInterval
	}
	p.revealAcc += dt
	for p.revealAcc >= interval && p.shown < p.total {
		p.revealAcc -= interval
		p.shown++
	}
	if p.shown >= p.total {
		p.phase = PhaseLineComplete
	}
}

// Advance handles one advance input. While Typing it skips the reveal,
// shows the full line, and opens a debounce window so the same click or
// keypress cannot double-fire. In LineComplete it moves to the next line,
// or ends the session and notifies the scene flow.
func (p *Player) Advance() {
	if p.CanAdvance != nil && !p.CanAdvance() {
		return
	}
	switch p.phase {
	case PhaseTyping:
		p.shown = p.total
		p.phase = PhaseLineComplete
		p.debounce = p.Debounce

	case PhaseLineComplete:
		if p.debounce > 0 {
			return
		}
		if p.lineIdx+1 < len(p.entry.Lines) {
			p.lineIdx++
			p.startLine()
			return
		}
		id := p.entry.ID
		p.entry = nil
		p.current = ""
		p.phase = PhaseEnded
		if p.OnComplete != nil {
			p.OnComplete(id)
		}
	}
}

// VisibleMarkup returns the currently revealed portion of the annotated
// line. Tags are always whole, so partial lines render correctly.
func (p *Player) VisibleMarkup() string {
	if p.entry == nil {
		return ""
	}
	if p.shown >= p.total {
		return p.current
	}
	return markup.RevealPrefix(p.current, p.shown)
}

// CurrentLine returns the line being played, if a session is active.
func (p *Player) CurrentLine() (Line, bool) {
	if p.entry == nil {
		return Line{}, false
	}
	return p.entry.Lines[p.lineIdx], true
}

// Entry returns the active entry, or nil between sessions.
func (p *Player) Entry() *Entry { return p.entry }

// Phase returns the current playback phase.
func (p *Player) Phase() Phase { return p.phase }

// IsTyping reports whether the typewriter is mid-reveal.
func (p *Player) IsTyping() bool { return p.phase == PhaseTyping }

// IsLineComplete reports whether the current line is fully shown and
// waiting for advance input.
func (p *Player) IsLineComplete() bool { return p.phase == PhaseLineComplete }

// IsEnded reports whether the last session finished.
func (p *Player) IsEnded() bool { return p.phase == PhaseEnded }

// InDebounce reports whether advance input is currently swallowed.
func (p *Player) InDebounce() bool { return p.debounce > 0 }
