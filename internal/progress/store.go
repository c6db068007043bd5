package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultSlots is the fixed save-slot range (1..DefaultSlots).
const DefaultSlots = 8

// Store reads and writes save slots as one JSON document per slot.
type Store struct {
	dir   string
	slots int
}

// NewStore creates a Store over the given directory with slots 1..slots.
// slots <= 0 selects the default range.
func NewStore(dir string, slots int) *Store {
	if slots <= 0 {
		slots = DefaultSlots
	}
	return &Store{dir: dir, slots: slots}
}

// DefaultDir returns the save directory per the XDG Base Directory spec:
// $XDG_DATA_HOME/lingotrail, defaulting to ~/.local/share/lingotrail.
func DefaultDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "lingotrail"), nil
}

// Slots returns the number of slots in the fixed range.
func (st *Store) Slots() int { return st.slots }

func (st *Store) slotPath(slot int) string {
	return filepath.Join(st.dir, fmt.Sprintf("slot%d.json", slot))
}

// Occupied reports whether the slot holds a save.
func (st *Store) Occupied(slot int) bool {
	_, err := os.Stat(st.slotPath(slot))
	return err == nil
}

// Save writes the state to the given slot. Slot 0 means "pick for me":
// the first empty slot in the range, or the last slot when all are full.
// The chosen slot and save time are stamped into the state before writing.
// Returns the slot written.
func (st *Store) Save(s *State, slot int) (int, error) {
	if slot == 0 {
		slot = st.pickSlot()
	}
	if slot < 1 || slot > st.slots {
		return 0, fmt.Errorf("save slot %d out of range 1..%d", slot, st.slots)
	}
	if err := os.MkdirAll(st.dir, 0o755); err != nil {
		return 0, fmt.Errorf("create save directory: %w", err)
	}

	s.SaveSlot = slot
	s.LastSaved = time.Now().UTC()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("marshal save: %w", err)
	}
	if err := os.WriteFile(st.slotPath(slot), data, 0o644); err != nil {
		return 0, fmt.Errorf("write slot %d: %w", slot, err)
	}
	return slot, nil
}

// pickSlot returns the first empty slot, or the last slot when full.
func (st *Store) pickSlot() int {
	for slot := 1; slot <= st.slots; slot++ {
		if !st.Occupied(slot) {
			return slot
		}
	}
	return st.slots
}

// Load reads the state saved in the given slot. A slot that was never
// written returns (nil, nil): no state is not an error.
func (st *Store) Load(slot int) (*State, error) {
	data, err := os.ReadFile(st.slotPath(slot))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %d: %w", slot, err)
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse slot %d: %w", slot, err)
	}
	if s.PuzzleAttempts == nil {
		s.PuzzleAttempts = make(map[string][]string)
	}
	return &s, nil
}

// Latest returns the most recently saved state across all slots, or nil
// when no slot is occupied. Used by the "continue" flow at startup.
func (st *Store) Latest() (*State, error) {
	var latest *State
	for slot := 1; slot <= st.slots; slot++ {
		s, err := st.Load(slot)
		if err != nil {
			return nil, err
		}
		if s != nil && (latest == nil || s.LastSaved.After(latest.LastSaved)) {
			latest = s
		}
	}
	return latest, nil
}
