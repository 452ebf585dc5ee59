package textutil_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/piepero/rusty-pom/pkg/errclass"
	"github.com/piepero/rusty-pom/pkg/textutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNote_Plain(t *testing.T) {
	note, err := textutil.NormalizeNote("write the quarterly report")
	require.NoError(t, err)
	assert.Equal(t, "write the quarterly report", note)
}

func TestNormalizeNote_Empty(t *testing.T) {
	note, err := textutil.NormalizeNote("")
	require.NoError(t, err)
	assert.Empty(t, note)
}

func TestNormalizeNote_NFC(t *testing.T) {
	// e + combining acute normalizes to the precomposed form
	note, err := textutil.NormalizeNote("café")
	require.NoError(t, err)
	assert.Equal(t, "café", note)
}

func TestNormalizeNote_ControlCharacters(t *testing.T) {
	_, err := textutil.NormalizeNote("evil\x00note")
	require.ErrorIs(t, err, errclass.ErrNoteInvalid)

	_, err = textutil.NormalizeNote("line\nbreak")
	require.ErrorIs(t, err, errclass.ErrNoteInvalid)
}

func TestNormalizeNote_TabAllowed(t *testing.T) {
	note, err := textutil.NormalizeNote("a\tb")
	require.NoError(t, err)
	assert.Equal(t, "a\tb", note)
}

func TestNormalizeNote_Truncates(t *testing.T) {
	long := strings.Repeat("x", textutil.MaxNoteLength+50)
	note, err := textutil.NormalizeNote(long)
	require.NoError(t, err)
	assert.Equal(t, textutil.MaxNoteLength, utf8.RuneCountInString(note))
}
