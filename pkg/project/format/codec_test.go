package format

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakLinesIsCosmetic(t *testing.T) {
	in := []byte(`{"a":1,"b":{"c":[1,2,3]},"d":"x"}`)
	out := breakLines(in)

	// The broken form must parse back to the same value.
	var v1, v2 map[string]any
	require.NoError(t, json.Unmarshal(in, &v1))
	require.NoError(t, json.Unmarshal(out, &v2))
	assert.Equal(t, v1, v2)

	assert.True(t, strings.HasPrefix(string(out), "{\n"))
	assert.Contains(t, string(out), ",\n")
}

func TestBreakLinesLeavesStringsAlone(t *testing.T) {
	in := []byte(`{"text":"braces { and commas , stay put","esc":"quote \" and slash \\"}`)
	out := breakLines(in)

	assert.Contains(t, string(out), `braces { and commas , stay put`)
	assert.Contains(t, string(out), `quote \" and slash \\`)

	var v map[string]any
	require.NoError(t, json.Unmarshal(out, &v))
	assert.Equal(t, "braces { and commas , stay put", v["text"])
}

func TestCompactRaw(t *testing.T) {
	raw := json.RawMessage("{\n\"a\": 1,\n\"b\": 2}")
	assert.Equal(t, json.RawMessage(`{"a":1,"b":2}`), compactRaw(raw))

	// Broken payloads pass through unchanged.
	bad := json.RawMessage(`{oops`)
	assert.Equal(t, bad, compactRaw(bad))
}

func TestUnwrapRequiresExactMagicPrefix(t *testing.T) {
	_, err := unwrapFile([]byte("### bincase proj v2.0 ###\n{}"))
	assert.ErrorIs(t, err, ErrNotProjectFile)

	// Leading whitespace is not tolerated either.
	_, err = unwrapFile([]byte(" " + MagicLine + "\n{}"))
	assert.ErrorIs(t, err, ErrNotProjectFile)

	rec, err := unwrapFile([]byte(MagicLine + "\n{\"_contentVersion\":3,\"dataLength\":10,\"dataCrc32\":0}\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, rec.ContentVersion)
	assert.Equal(t, int64(10), rec.DataLength)
}
