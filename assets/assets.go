// Package assets holds the embedded game content: the vocabulary
// dictionary, the dialogue script, and the flow/branch tables that stitch
// the entries together.
package assets

import _ "embed"

//go:embed dictionary.json
var dictionary []byte

// Dictionary returns the embedded vocabulary dictionary document,
// structured as {wordClass: {entryId: {forms[], journal, translation, guess?}}}.
func Dictionary() []byte { return dictionary }
