package assets

import (
	"fmt"

	"lingotrail/internal/quiz"
)

// Flow maps a completed dialogue entry to the next one. An empty or absent
// value ends the scene. Entries whose last line carries a quiz never
// complete through here; their branch table decides instead.
var Flow = map[string]string{
	"base.intro":             "base.letterman",
	"base.letterman":         "base.letterman.ask",
	"base.letterman.wrong":   "base.letterman.ask",
	"base.letterman.correct": "base.blank.ask",
	"base.blank.retry":       "base.blank.ask",
	"base.blank.correct":     "base.farewell",
	"base.blank.failed":      "base.farewell",
	"base.farewell":          "",
}

// QuizDef describes one check referenced from a script line. Answers set
// means multiple choice; Accepted set means fill-in-the-blank.
type QuizDef struct {
	Answers  []string
	Accepted []string
}

// Quizzes is the quiz registry, keyed by the dialogue id used for attempt
// tracking and branch lookup.
var Quizzes = map[string]QuizDef{
	"base.letterman.quiz": {
		Answers: []string{"pošta", "dopis", "známka", "schránka"},
	},
	"base.letterman.blank": {
		Accepted: []string{"dopis"},
	},
}

// Branches routes every quiz answer to its next dialogue entry.
var Branches = quiz.BranchTable{
	"base.letterman.quiz": {
		"0": "base.letterman.wrong",
		"1": "base.letterman.correct",
		"2": "base.letterman.wrong",
		"3": "base.letterman.wrong",
	},
	"base.letterman.blank": {
		quiz.BranchCorrect: "base.blank.correct",
		quiz.BranchWrong:   "base.blank.retry",
		quiz.BranchFailed:  "base.blank.failed",
	},
}

// Validate cross-checks the content tables at startup: every flow and
// branch target must be a real entry, every quiz line must have a quiz
// definition and a branch row, and the branch rows themselves must be
// well-formed. Content bugs surface here instead of stranding the player.
func Validate() error {
	if err := Branches.Validate(); err != nil {
		return err
	}
	if _, ok := Entries[StartEntry]; !ok {
		return fmt.Errorf("start entry %q missing from script", StartEntry)
	}
	for id, next := range Flow {
		if _, ok := Entries[id]; !ok {
			return fmt.Errorf("flow source %q missing from script", id)
		}
		if next != "" {
			if _, ok := Entries[next]; !ok {
				return fmt.Errorf("flow target %q (from %q) missing from script", next, id)
			}
		}
	}
	for id, row := range Branches {
		if _, ok := Quizzes[id]; !ok {
			return fmt.Errorf("branch row %q has no quiz definition", id)
		}
		for choice, target := range row {
			if _, ok := Entries[target]; !ok {
				return fmt.Errorf("branch %s/%s targets missing entry %q", id, choice, target)
			}
		}
	}
	for _, entry := range Entries {
		for _, line := range entry.Lines {
			if line.QuizID == "" {
				continue
			}
			if _, ok := Quizzes[line.QuizID]; !ok {
				return fmt.Errorf("entry %q references unknown quiz %q", entry.ID, line.QuizID)
			}
			if _, ok := Branches[line.QuizID]; !ok {
				return fmt.Errorf("quiz %q has no branch row", line.QuizID)
			}
		}
	}
	return nil
}
