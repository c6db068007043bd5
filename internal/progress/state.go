// Package progress holds the persisted player state: completed dialogue,
// unlocked vocabulary, quiz attempts, and the save-slot bookkeeping around
// them. It is the single mutable resource shared by the dialogue player and
// the quiz resolver.
package progress

import "time"

// State is one player's full progress record. The three ID collections are
// idempotent sets that preserve insertion order, so the journal can list
// unlocks chronologically.
type State struct {
	PlayerName     string    `json:"player_name"`
	CurrentSceneID string    `json:"current_scene_id"`
	SaveSlot       int       `json:"save_slot"`
	LastSaved      time.Time `json:"last_saved"`

	CompletedDialogues     []string `json:"completed_dialogues"`
	CompletedInteractables []string `json:"completed_interactables"`

	// UnlockedVocabulary holds raw unlock tokens: canonical keys or any
	// surface form. Resolution to keys happens at annotation time.
	UnlockedVocabulary []string `json:"unlocked_vocabulary"`

	// PuzzleAttempts maps a dialogue id to the deduplicated, ordered list
	// of answer tokens the player has submitted for it.
	PuzzleAttempts map[string][]string `json:"puzzle_attempts"`
}

// NewState creates a fresh progress record for a new game.
func NewState(playerName string) *State {
	return &State{
		PlayerName:     playerName,
		PuzzleAttempts: make(map[string][]string),
	}
}

// appendUnique adds v to an insertion-ordered set. Reports whether v was new.
func appendUnique(set *[]string, v string) bool {
	for _, s := range *set {
		if s == v {
			return false
		}
	}
	*set = append(*set, v)
	return true
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// MarkDialogueComplete records a finished dialogue entry. Calling it twice
// for the same id leaves the set with the id exactly once.
func (s *State) MarkDialogueComplete(id string) bool {
	return appendUnique(&s.CompletedDialogues, id)
}

// DialogueCompleted reports whether the dialogue entry has been finished.
func (s *State) DialogueCompleted(id string) bool {
	return contains(s.CompletedDialogues, id)
}

// MarkInteractableComplete records a consumed world interaction.
func (s *State) MarkInteractableComplete(id string) bool {
	return appendUnique(&s.CompletedInteractables, id)
}

// InteractableCompleted reports whether the interaction has been consumed.
func (s *State) InteractableCompleted(id string) bool {
	return contains(s.CompletedInteractables, id)
}

// UnlockVocabulary records an unlock token (a key or any surface form).
func (s *State) UnlockVocabulary(token string) bool {
	return appendUnique(&s.UnlockedVocabulary, token)
}

// RecordAttempt stores one quiz answer token for a dialogue id.
// Attempts are per-id sets: resubmitting the same answer is a no-op.
func (s *State) RecordAttempt(dialogueID, token string) bool {
	if s.PuzzleAttempts == nil {
		s.PuzzleAttempts = make(map[string][]string)
	}
	attempts := s.PuzzleAttempts[dialogueID]
	if contains(attempts, token) {
		return false
	}
	s.PuzzleAttempts[dialogueID] = append(attempts, token)
	return true
}

// Attempts returns the recorded answer tokens for a dialogue id, in
// submission order.
func (s *State) Attempts(dialogueID string) []string {
	return s.PuzzleAttempts[dialogueID]
}

// HasAttempt reports whether the given answer token was already submitted.
func (s *State) HasAttempt(dialogueID, token string) bool {
	return contains(s.PuzzleAttempts[dialogueID], token)
}
