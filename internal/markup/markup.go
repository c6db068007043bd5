// Package markup implements the dialogue text-annotation pipeline: raw
// script lines carry translatable spans; annotation resolves the words
// inside them against the vocabulary index and injects link/underline tags
// that the renderer turns into hoverable translations.
package markup

import (
	"strings"
	"unicode"

	"lingotrail/internal/vocab"
)

// Structural tags. Span markers appear only in raw script text and are
// stripped during annotation; the rest survive into rendered lines.
const (
	SpanOpen  = "<t>"
	SpanClose = "</t>"

	linkOpenPrefix = "<link="
	linkClose      = "</link>"
	underlineOpen  = "<u>"
	underlineClose = "</u>"
	colorPrefix    = "<color="
	colorClose     = "</color>"
)

// Annotate resolves every word inside the line's translatable spans and
// wraps the ones the player can interact with in link+underline tags.
//
// Text outside <t>…</t> spans is passed through byte-for-byte, so lines
// without spans round-trip unchanged. The span markers themselves are
// structural and never survive into the output.
func Annotate(raw string, ix *vocab.Index, unlocked func(key string) bool) string {
	if !strings.Contains(raw, SpanOpen) {
		return raw
	}

	var out strings.Builder
	rest := raw
	for {
		start := strings.Index(rest, SpanOpen)
		if start < 0 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:start])
		rest = rest[start+len(SpanOpen):]

		end := strings.Index(rest, SpanClose)
		if end < 0 {
			// Unterminated span: treat the remainder as eligible.
			out.WriteString(annotateSpan(rest, ix, unlocked))
			break
		}
		out.WriteString(annotateSpan(rest[:end], ix, unlocked))
		rest = rest[end+len(SpanClose):]
	}
	return out.String()
}

// annotateSpan tokenizes one eligible span into alternating word/non-word
// runs and links each resolvable word. Punctuation and whitespace pass
// through unchanged.
func annotateSpan(span string, ix *vocab.Index, unlocked func(string) bool) string {
	var out strings.Builder
	runes := []rune(span)
	for i := 0; i < len(runes); {
		if !isWordRune(runes[i]) {
			out.WriteRune(runes[i])
			i++
			continue
		}
		j := i
		for j < len(runes) && isWordRune(runes[j]) {
			j++
		}
		word := string(runes[i:j])
		out.WriteString(linkWord(word, ix, unlocked))
		i = j
	}
	return out.String()
}

// isWordRune reports whether r belongs to a word run. Words are maximal
// sequences of letters and apostrophes; everything else is a separator.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || r == '\'' || r == '’'
}

// linkWord decides the rendering variant for one surface word:
// unlocked entries and locked entries with a guess label become links;
// everything else stays plain text.
func linkWord(word string, ix *vocab.Index, unlocked func(string) bool) string {
	key, ok := ix.ResolveToken(strings.Trim(word, "'’"))
	if !ok {
		return word
	}
	entry, ok := ix.Entry(key)
	if !ok {
		return word
	}
	if !unlocked(key) && !entry.HasGuess() {
		return word
	}
	return Link(key, word)
}

// Link wraps text in a link tag carrying the dictionary key, underlined.
func Link(key, text string) string {
	return linkOpenPrefix + key + ">" + underlineOpen + text + underlineClose + linkClose
}

// Color wraps text in a color tag. The value is renderer-defined, typically
// a #RRGGBB hex string.
func Color(hex, text string) string {
	return colorPrefix + hex + ">" + text + colorClose
}

// Popup is the payload shown when the player inspects a linked word.
type Popup struct {
	Text      string // translation, or the guess label
	WordClass string // shown as a secondary line; empty when unknown
	IsGuess   bool   // locked entries show their guess marked as such
}

// PopupFor builds the popup payload for an entry given its unlock state.
// Locked entries without a guess have no popup at all.
func PopupFor(entry *vocab.Entry, unlocked bool) (Popup, bool) {
	if unlocked {
		return Popup{Text: entry.Translation, WordClass: entry.WordClass}, true
	}
	if entry.HasGuess() {
		return Popup{Text: entry.Guess, IsGuess: true}, true
	}
	return Popup{}, false
}
