package progress

import (
	"testing"
	"time"
)

func TestMarkDialogueCompleteIdempotent(t *testing.T) {
	s := NewState("Jana")
	if !s.MarkDialogueComplete("base.intro") {
		t.Fatal("first mark should report newly added")
	}
	if s.MarkDialogueComplete("base.intro") {
		t.Fatal("second mark should be a no-op")
	}
	if len(s.CompletedDialogues) != 1 {
		t.Fatalf("set must contain the id exactly once, got %v", s.CompletedDialogues)
	}
	if !s.DialogueCompleted("base.intro") {
		t.Fatal("DialogueCompleted should see the id")
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	s := NewState("Jana")
	for _, id := range []string{"c", "a", "b", "a"} {
		s.UnlockVocabulary(id)
	}
	want := []string{"c", "a", "b"}
	if len(s.UnlockedVocabulary) != len(want) {
		t.Fatalf("got %v", s.UnlockedVocabulary)
	}
	for i, w := range want {
		if s.UnlockedVocabulary[i] != w {
			t.Fatalf("order lost: got %v, want %v", s.UnlockedVocabulary, want)
		}
	}
}

func TestRecordAttemptDeduplicates(t *testing.T) {
	s := NewState("Jana")
	if !s.RecordAttempt("base.letterman.quiz", "1") {
		t.Fatal("first attempt should be new")
	}
	if s.RecordAttempt("base.letterman.quiz", "1") {
		t.Fatal("duplicate attempt must be a no-op")
	}
	s.RecordAttempt("base.letterman.quiz", "3")
	s.RecordAttempt("other.quiz", "1")

	got := s.Attempts("base.letterman.quiz")
	if len(got) != 2 || got[0] != "1" || got[1] != "3" {
		t.Fatalf("attempts wrong: %v", got)
	}
	if !s.HasAttempt("other.quiz", "1") || s.HasAttempt("other.quiz", "2") {
		t.Fatal("per-id attempt tracking broken")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := NewStore(t.TempDir(), 8)

	s := NewState("Jana")
	s.CurrentSceneID = "base.street"
	s.MarkDialogueComplete("base.intro")
	s.MarkDialogueComplete("base.letterman")
	s.MarkInteractableComplete("mailbox")
	s.UnlockVocabulary("dopise")
	s.UnlockVocabulary("pošta")
	s.RecordAttempt("base.letterman.quiz", "0")
	s.RecordAttempt("base.letterman.quiz", "1")

	slot, err := st.Save(s, 3)
	if err != nil || slot != 3 {
		t.Fatalf("Save = %d, %v", slot, err)
	}

	loaded, err := st.Load(3)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected state in slot 3")
	}
	if loaded.PlayerName != "Jana" || loaded.CurrentSceneID != "base.street" {
		t.Fatalf("scalar fields lost: %+v", loaded)
	}
	if loaded.SaveSlot != 3 {
		t.Fatalf("slot not stamped: %d", loaded.SaveSlot)
	}
	wantDialogues := []string{"base.intro", "base.letterman"}
	for i, w := range wantDialogues {
		if loaded.CompletedDialogues[i] != w {
			t.Fatalf("dialogue order lost: %v", loaded.CompletedDialogues)
		}
	}
	if got := loaded.Attempts("base.letterman.quiz"); len(got) != 2 || got[0] != "0" || got[1] != "1" {
		t.Fatalf("attempts lost: %v", got)
	}
	if loaded.UnlockedVocabulary[0] != "dopise" {
		t.Fatalf("vocabulary order lost: %v", loaded.UnlockedVocabulary)
	}
}

func TestLoadMissingSlotIsNoState(t *testing.T) {
	st := NewStore(t.TempDir(), 8)
	s, err := st.Load(5)
	if err != nil {
		t.Fatalf("missing slot must not error: %v", err)
	}
	if s != nil {
		t.Fatal("missing slot must yield nil state")
	}
}

func TestAutoSlotPicksFirstFree(t *testing.T) {
	st := NewStore(t.TempDir(), 8)
	for slot := 1; slot <= 3; slot++ {
		if _, err := st.Save(NewState("x"), slot); err != nil {
			t.Fatalf("seed slot %d: %v", slot, err)
		}
	}

	got, err := st.Save(NewState("y"), 0)
	if err != nil {
		t.Fatalf("auto save: %v", err)
	}
	if got != 4 {
		t.Fatalf("expected first free slot 4, got %d", got)
	}
}

func TestAutoSlotOverwritesLastWhenFull(t *testing.T) {
	st := NewStore(t.TempDir(), 8)
	for slot := 1; slot <= 8; slot++ {
		if _, err := st.Save(NewState("x"), slot); err != nil {
			t.Fatalf("seed slot %d: %v", slot, err)
		}
	}

	got, err := st.Save(NewState("overflow"), 0)
	if err != nil {
		t.Fatalf("auto save: %v", err)
	}
	if got != 8 {
		t.Fatalf("expected overwrite of slot 8, got %d", got)
	}
	s, err := st.Load(8)
	if err != nil || s == nil || s.PlayerName != "overflow" {
		t.Fatalf("slot 8 not overwritten: %+v, %v", s, err)
	}
}

func TestSaveRejectsOutOfRangeSlot(t *testing.T) {
	st := NewStore(t.TempDir(), 8)
	if _, err := st.Save(NewState("x"), 9); err == nil {
		t.Fatal("slot 9 must be rejected")
	}
	if _, err := st.Save(NewState("x"), -1); err == nil {
		t.Fatal("negative slot must be rejected")
	}
}

func TestLatestFindsNewestSave(t *testing.T) {
	st := NewStore(t.TempDir(), 8)
	if _, err := st.Save(NewState("old"), 1); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := st.Save(NewState("new"), 5); err != nil {
		t.Fatal(err)
	}

	latest, err := st.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest == nil || latest.PlayerName != "new" {
		t.Fatalf("expected newest save, got %+v", latest)
	}
}
