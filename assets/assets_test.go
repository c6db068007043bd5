package assets

import (
	"testing"

	"lingotrail/internal/vocab"
)

func TestContentValidates(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("shipped content must validate: %v", err)
	}
}

func TestDictionaryLoadsCleanly(t *testing.T) {
	ix, err := vocab.Load(Dictionary())
	if err != nil {
		t.Fatalf("shipped dictionary has format errors: %v", err)
	}
	if ix.Len() == 0 {
		t.Fatal("dictionary is empty")
	}
	if key, ok := ix.ResolveToken("dopise"); !ok || key != "dopis" {
		t.Fatalf("dopise should resolve to dopis, got %q %v", key, ok)
	}
}

func TestUnlockTokensResolve(t *testing.T) {
	ix, _ := vocab.Load(Dictionary())
	for _, entry := range Entries {
		for _, token := range entry.Unlocks {
			if _, ok := ix.ResolveToken(token); !ok {
				t.Errorf("entry %q unlocks unknown token %q", entry.ID, token)
			}
		}
	}
}

func TestQuizAnswerCountsMatchBranches(t *testing.T) {
	for id, def := range Quizzes {
		if def.Answers == nil {
			continue
		}
		row := Branches[id]
		for i := range def.Answers {
			if _, ok := Branches.NextIndex(id, i); !ok {
				t.Errorf("quiz %q answer %d has no branch (row %v)", id, i, row)
			}
		}
	}
}

func TestEntryIDsMatchMapKeys(t *testing.T) {
	for key, entry := range Entries {
		if entry.ID != key {
			t.Errorf("entry key %q carries ID %q", key, entry.ID)
		}
	}
}
