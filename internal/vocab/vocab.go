package vocab

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DataFormatError reports a malformed dictionary entry. Loading continues
// past individual bad entries; callers log the joined error and play on.
type DataFormatError struct {
	WordClass string
	Key       string
	Reason    string
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("dictionary entry %s/%s: %s", e.WordClass, e.Key, e.Reason)
}

// Entry is one dictionary headword with its surface forms and translations.
type Entry struct {
	Key          string
	WordClass    string
	JournalLabel string
	Translation  string
	Guess        string // optional hint shown before the word is unlocked
	Forms        []string
}

// HasGuess reports whether the entry carries a pre-unlock guess label.
func (e *Entry) HasGuess() bool { return e.Guess != "" }

// Index resolves surface forms to dictionary entries. Immutable after Load;
// unlock state lives in the progress store, never here.
type Index struct {
	entryByKey map[string]*Entry
	keyByForm  map[string]string
}

// rawEntry mirrors the on-disk dictionary format. Unknown fields are ignored.
type rawEntry struct {
	Forms       []string `json:"forms"`
	Journal     string   `json:"journal"`
	Translation string   `json:"translation"`
	Guess       string   `json:"guess"`
}

// Load parses a dictionary document shaped as
// {wordClass: {entryId: {forms[], journal, translation, guess?}}}.
//
// Entries missing a translation or any forms are skipped and reported via a
// joined DataFormatError; the returned Index always contains whatever loaded
// cleanly. Only an unparseable document yields a nil Index.
func Load(data []byte) (*Index, error) {
	var doc map[string]map[string]rawEntry
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse dictionary: %w", err)
	}

	ix := &Index{
		entryByKey: make(map[string]*Entry),
		keyByForm:  make(map[string]string),
	}
	var errs []error
	for class, entries := range doc {
		for key, raw := range entries {
			if raw.Translation == "" {
				errs = append(errs, &DataFormatError{class, key, "missing translation"})
				continue
			}
			if len(raw.Forms) == 0 {
				errs = append(errs, &DataFormatError{class, key, "no forms"})
				continue
			}
			entry := &Entry{
				Key:          strings.ToLower(key),
				WordClass:    class,
				JournalLabel: raw.Journal,
				Translation:  raw.Translation,
				Guess:        raw.Guess,
			}
			if conflict := ix.addEntry(entry, raw.Forms); conflict != "" {
				errs = append(errs, &DataFormatError{class, key,
					fmt.Sprintf("form %q already maps to %q", conflict, ix.keyByForm[conflict])})
			}
		}
	}
	return ix, errors.Join(errs...)
}

// addEntry registers the entry under all of its forms. The key itself always
// counts as a form. Returns the first conflicting form, or "" on success;
// on conflict nothing is registered.
func (ix *Index) addEntry(e *Entry, forms []string) string {
	seen := map[string]bool{e.Key: true}
	normalized := []string{e.Key}
	for _, f := range forms {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		normalized = append(normalized, f)
	}
	for _, f := range normalized {
		if owner, taken := ix.keyByForm[f]; taken && owner != e.Key {
			return f
		}
	}
	e.Forms = normalized
	ix.entryByKey[e.Key] = e
	for _, f := range normalized {
		ix.keyByForm[f] = e.Key
	}
	return ""
}

// ResolveToken maps a surface token to its canonical dictionary key.
// Lookup is case-insensitive.
func (ix *Index) ResolveToken(token string) (string, bool) {
	key, ok := ix.keyByForm[strings.ToLower(token)]
	return key, ok
}

// Entry returns the entry for a canonical key.
func (ix *Index) Entry(key string) (*Entry, bool) {
	e, ok := ix.entryByKey[key]
	return e, ok
}

// Len returns the number of loaded entries.
func (ix *Index) Len() int { return len(ix.entryByKey) }

// KeysFromTokens resolves a list of unlock tokens (canonical keys or any
// surface form) into the set of unlocked dictionary keys. Unresolvable
// tokens are dropped; the caller may log them as lookup misses.
func (ix *Index) KeysFromTokens(tokens []string) map[string]bool {
	keys := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		if key, ok := ix.ResolveToken(t); ok {
			keys[key] = true
		}
	}
	return keys
}
