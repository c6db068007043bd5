// Package quiz resolves multiple-choice and fill-in-the-blank checks:
// answer markup with attempted/hover coloring, idempotent attempt tracking,
// and declarative branch tables mapping a chosen answer to the next
// dialogue entry.
package quiz

import (
	"fmt"
	"strconv"
)

// Fill-in-the-blank branch keys. Multiple-choice rows key branches by the
// decimal answer index instead.
const (
	BranchCorrect = "correct"
	BranchWrong   = "wrong"
	BranchFailed  = "failed"
)

// BranchTable maps (dialogueID, choiceKey) to the next dialogue id.
// Tables are content: they come from the scene scripts and are validated
// once at startup so a bad row can never strand the player mid-game.
type BranchTable map[string]map[string]string

// Next resolves one branch. ok is false for unknown rows or choices.
func (t BranchTable) Next(dialogueID, choice string) (string, bool) {
	row, ok := t[dialogueID]
	if !ok {
		return "", false
	}
	next, ok := row[choice]
	return next, ok
}

// NextIndex resolves a multiple-choice branch by answer index.
func (t BranchTable) NextIndex(dialogueID string, idx int) (string, bool) {
	return t.Next(dialogueID, strconv.Itoa(idx))
}

// Validate checks that every row can terminate. A multiple-choice row must
// have at least one indexed branch; a fill-in-blank row needs all three of
// correct/wrong/failed so the retry path always bottoms out.
func (t BranchTable) Validate() error {
	for id, row := range t {
		if len(row) == 0 {
			return fmt.Errorf("branch table %s: empty row", id)
		}
		if _, fib := row[BranchCorrect]; fib {
			if _, ok := row[BranchWrong]; !ok {
				return fmt.Errorf("branch table %s: missing %q branch", id, BranchWrong)
			}
			if _, ok := row[BranchFailed]; !ok {
				return fmt.Errorf("branch table %s: missing %q branch", id, BranchFailed)
			}
			continue
		}
		for choice := range row {
			if _, err := strconv.Atoi(choice); err != nil {
				return fmt.Errorf("branch table %s: choice %q is neither an index nor a fill-in branch", id, choice)
			}
		}
	}
	return nil
}
