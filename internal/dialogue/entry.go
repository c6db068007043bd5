// Package dialogue implements the scripted-dialogue playback state machine:
// an ordered list of annotated lines revealed with a typewriter effect,
// advance/skip input with debouncing, and a completion callback back to the
// scene flow.
package dialogue

// Side selects which speaker portrait/name the presentation layer shows.
type Side uint8

const (
	SideNone Side = iota // hide both speakers
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Line is one raw script line. QuizID, when set, hands control to the quiz
// resolver once the line has fully typed out.
type Line struct {
	Text   string
	QuizID string
}

// Entry is one named, ordered sequence of lines with speaker metadata.
// Unlocks lists vocabulary tokens granted when the entry completes.
type Entry struct {
	ID      string
	Speaker string
	Side    Side
	Lines   []Line
	Unlocks []string
}
