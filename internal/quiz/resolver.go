package quiz

import (
	"log/slog"
	"strconv"
	"strings"

	"lingotrail/internal/markup"
	"lingotrail/internal/progress"
)

// Wrong fill-in submissions before the check bottoms out: the first
// maxWrong-1 route to "wrong", the maxWrong-th routes to "failed" and the
// counter stays terminal. A correct answer forces the counter terminal too.
const maxWrong = 3

// Resolver handles the player's quiz input for the active check. It records
// every attempt in the progress state and maps answers to the next dialogue
// id through the branch table.
type Resolver struct {
	State    *progress.State
	Branches BranchTable

	// PlayNext hands the resolved next dialogue id back to the scene
	// flow, which starts it on the dialogue player.
	PlayNext func(nextID string)

	Log *slog.Logger

	// Multiple-choice state.
	mcID    string
	answers []string
	hovered int

	// Fill-in-blank state. fibID and wrongCount survive quiz teardown:
	// the counter resets only when a different dialogue id is set up.
	fibID      string
	accepted   []string
	wrongCount int
}

// NewResolver wires a Resolver to the progress state and branch tables.
func NewResolver(state *progress.State, branches BranchTable) *Resolver {
	return &Resolver{State: state, Branches: branches, hovered: -1}
}

func (r *Resolver) log() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}

// MultipleChoiceActive reports whether a multiple-choice quiz is waiting
// for a click.
func (r *Resolver) MultipleChoiceActive() bool { return r.mcID != "" }

// FillInBlankActive reports whether a fill-in-blank check is accepting
// submissions.
func (r *Resolver) FillInBlankActive() bool { return r.fibID != "" && r.accepted != nil }

// SetupMultipleChoice makes the given quiz active and builds its initial
// answer markup. Answers are linked by ordinal index and colored by their
// already-attempted status.
func (r *Resolver) SetupMultipleChoice(dialogueID string, answers []string) string {
	r.mcID = dialogueID
	r.answers = append([]string(nil), answers...)
	r.hovered = -1
	return r.AnswerMarkup()
}

// AnswerMarkup rebuilds the full answer list markup from current state.
// The rebuild is deterministic and total, never incremental: identical
// attempt and hover state always yields identical markup.
func (r *Resolver) AnswerMarkup() string {
	if r.mcID == "" {
		return ""
	}
	attempted := r.attemptedIndexes()
	lines := make([]string, len(r.answers))
	for i, text := range r.answers {
		color := ColorFor(i, attempted, r.hovered)
		lines[i] = markup.Link(strconv.Itoa(i), markup.Color(color, text))
	}
	return strings.Join(lines, "\n")
}

// attemptedIndexes projects the recorded attempt tokens for the active quiz
// onto answer indexes.
func (r *Resolver) attemptedIndexes() map[int]bool {
	attempted := make(map[int]bool)
	for _, token := range r.State.Attempts(r.mcID) {
		if i, err := strconv.Atoi(token); err == nil {
			attempted[i] = true
		}
	}
	return attempted
}

// Hover recolors exactly the hovered answer and returns the rebuilt markup.
// Out-of-range ids are ignored.
func (r *Resolver) Hover(answerID int, hovering bool) string {
	if r.mcID == "" || answerID < 0 || answerID >= len(r.answers) {
		return r.AnswerMarkup()
	}
	if hovering {
		r.hovered = answerID
	} else if r.hovered == answerID {
		r.hovered = -1
	}
	return r.AnswerMarkup()
}

// Click resolves a chosen answer. Invalid ids are a silent no-op: the
// player is never punished for a stray click. A valid click records the
// attempt, routes through the branch table, clears the quiz, and starts
// the next dialogue entry.
func (r *Resolver) Click(answerID int) {
	if r.mcID == "" || answerID < 0 || answerID >= len(r.answers) {
		return
	}
	r.State.RecordAttempt(r.mcID, strconv.Itoa(answerID))

	next, ok := r.Branches.NextIndex(r.mcID, answerID)
	if !ok {
		// Content bug: leave the quiz up so the player can pick a
		// wired answer instead of getting stuck.
		r.log().Warn("quiz branch missing", "dialogue", r.mcID, "answer", answerID)
		return
	}
	r.mcID = ""
	r.answers = nil
	r.hovered = -1
	if r.PlayNext != nil {
		r.PlayNext(next)
	}
}

// normalizeAnswer folds case and surrounding whitespace, the only
// normalization free-text matching performs.
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SetupFillInBlank makes the given fill-in-blank check active. Accepted
// answers are normalized once here. The wrong-attempt counter resets only
// when a different dialogue id is set up; repeated setups of the same
// check keep accumulating.
func (r *Resolver) SetupFillInBlank(dialogueID string, acceptedAnswers []string) {
	if dialogueID != r.fibID {
		r.wrongCount = 0
	}
	r.fibID = dialogueID
	r.accepted = make([]string, len(acceptedAnswers))
	for i, a := range acceptedAnswers {
		r.accepted[i] = normalizeAnswer(a)
	}
}

// Submit checks one free-text answer. Every submission, right or wrong, is
// recorded as an attempt. Wrong answers route to the retry branch until the
// cap, then to the terminal failed branch; a correct answer before the cap
// routes to correct and forces the counter terminal so later setups of the
// same check cannot re-open it. Returns the branch taken.
func (r *Resolver) Submit(freeText string) string {
	if !r.FillInBlankActive() {
		return ""
	}
	answer := normalizeAnswer(freeText)
	r.State.RecordAttempt(r.fibID, answer)

	var branch string
	switch {
	case r.wrongCount >= maxWrong:
		branch = BranchFailed
	case r.matches(answer):
		branch = BranchCorrect
		r.wrongCount = maxWrong
	default:
		r.wrongCount++
		if r.wrongCount >= maxWrong {
			branch = BranchFailed
		} else {
			branch = BranchWrong
		}
	}

	next, ok := r.Branches.Next(r.fibID, branch)
	if !ok {
		r.log().Warn("fill-in branch missing", "dialogue", r.fibID, "branch", branch)
		return branch
	}
	if r.PlayNext != nil {
		r.PlayNext(next)
	}
	return branch
}

func (r *Resolver) matches(normalized string) bool {
	for _, a := range r.accepted {
		if a == normalized {
			return true
		}
	}
	return false
}

// Answers returns the active multiple-choice answer texts.
func (r *Resolver) Answers() []string { return r.answers }
