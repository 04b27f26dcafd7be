package understanding

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
)

func TestDecodeJSON_PlainObject(t *testing.T) {
	var out struct {
		Theme string `json:"theme"`
	}

	err := decodeJSON(`{"theme":"energy"}`, &out)

	require.NoError(t, err)
	assert.Equal(t, "energy", out.Theme)
}

func TestDecodeJSON_MarkdownFences(t *testing.T) {
	var out struct {
		Theme string `json:"theme"`
	}

	err := decodeJSON("```json\n{\"theme\":\"energy\"}\n```", &out)

	require.NoError(t, err)
	assert.Equal(t, "energy", out.Theme)
}

func TestDecodeJSON_ProseWrapped(t *testing.T) {
	var out struct {
		Theme string `json:"theme"`
	}

	err := decodeJSON(`Here is the result: {"theme":"energy"} hope that helps!`, &out)

	require.NoError(t, err)
	assert.Equal(t, "energy", out.Theme)
}

func TestDecodeJSON_Array(t *testing.T) {
	var out []string

	err := decodeJSON(`The concepts are ["a","b"] as requested.`, &out)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestDecodeJSON_NoPayload(t *testing.T) {
	var out map[string]string

	err := decodeJSON("no json here at all", &out)

	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestDecodeJSON_Unterminated(t *testing.T) {
	var out map[string]string

	err := decodeJSON(`{"theme":"energy"`, &out)

	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestSplitLines_StripsNumberingAndBullets(t *testing.T) {
	resp := "1. first point\n2) second point\n- third point\n* fourth point\n\n"

	lines := splitLines(resp, 10)

	assert.Equal(t, []string{"first point", "second point", "third point", "fourth point"}, lines)
}

func TestSplitLines_RespectsLimit(t *testing.T) {
	lines := splitLines("a\nb\nc\nd", 2)

	assert.Equal(t, []string{"a", "b"}, lines)
}

func TestTruncate_CutsAtWordBoundary(t *testing.T) {
	text := "alpha bravo charlie delta echo"

	out := truncate(text, 14)

	assert.Equal(t, "alpha bravo", out)
}

func TestTruncate_ShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 100))
}

func TestTruncate_NoNearbySpace(t *testing.T) {
	out := truncate(strings.Repeat("a", 100), 10)

	assert.Len(t, out, 10)
}

func TestTruncate_DoesNotSplitRunes(t *testing.T) {
	// Byte 5 is inside the third two-byte rune.
	out := truncate(strings.Repeat("α", 5), 5)

	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, "αα", out)
}
