// Package textutil validates and normalizes user-supplied session notes.
package textutil

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/piepero/rusty-pom/pkg/errclass"
)

// MaxNoteLength is the rune cap applied to session notes.
const MaxNoteLength = 500

// NormalizeNote NFC-normalizes a note and rejects control characters.
// Notes longer than MaxNoteLength runes are truncated. An empty note is valid
// and stays empty.
func NormalizeNote(note string) (string, error) {
	note = norm.NFC.String(note)

	for _, r := range note {
		if unicode.IsControl(r) && r != '\t' {
			return "", errclass.ErrNoteInvalid.WithMessagef("note must not contain control characters: %q", note)
		}
	}

	if utf8.RuneCountInString(note) > MaxNoteLength {
		runes := []rune(note)
		note = string(runes[:MaxNoteLength])
	}

	return note, nil
}
