package game

import "github.com/gdamore/tcell/v2"

// Action represents a player-requested action.
type Action uint8

const (
	ActionNone Action = iota
	ActionAdvance
	ActionJournal
	ActionSave
	ActionQuit
)

// keyToAction maps a tcell key event to an action. Quiz answer digits and
// fill-in-blank typing are handled separately by mode.
func keyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEnter:
		return ActionAdvance
	case tcell.KeyEscape:
		return ActionQuit
	}

	switch ev.Rune() {
	case ' ':
		return ActionAdvance
	case 'j', 'J':
		return ActionJournal
	case 's', 'S':
		return ActionSave
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}
