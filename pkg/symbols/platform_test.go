package symbols

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroware/bincase/pkg/project"
)

const sampleFile = `platform: c64
symbols:
  - label: VIC_SPR0_X
    value: 53248
    comment: sprite 0 x position
    direction: rw
    width: 1
  - label: CIA1_TIMER
    value: 56324
    direction: r
  - label: COLOR_BLACK
    value: 0
    constant: true
  - label: VIC_ANY
    value: 53248
    multiMask:
      compareMask: 65472
      compareValue: 53248
      addressMask: 65535
  - label: 9bad
    value: 1
  - label: VIC_SPR0_X
    value: 99
`

func writeSymFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "c64.sym.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPlatformFile(t *testing.T) {
	path := writeSymFile(t, sampleFile)

	platform, syms, err := LoadPlatformFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "c64", platform)

	// The bad label and the duplicate are skipped, not fatal.
	require.Len(t, syms, 4)

	sprX := syms[0]
	assert.Equal(t, "VIC_SPR0_X", sprX.Label)
	assert.Equal(t, int64(53248), sprX.Value)
	assert.Equal(t, project.SourcePlatform, sprX.Source)
	assert.Equal(t, project.TypeAddress, sprX.Type)
	assert.Equal(t, project.DirReadWrite, sprX.Direction)
	assert.True(t, sprX.HasWidth)
	require.NotNil(t, sprX.Format)
	assert.Equal(t, 1, sprX.Format.Length)

	timer := syms[1]
	assert.Equal(t, project.DirRead, timer.Direction)
	assert.False(t, timer.HasWidth)

	black := syms[2]
	assert.Equal(t, project.TypeConstant, black.Type)

	masked := syms[3]
	require.NotNil(t, masked.Mask)
	assert.Equal(t, int64(65472), masked.Mask.CompareMask)
	assert.Equal(t, int64(53248), masked.Mask.CompareValue)
}

func TestLoadPlatformFileBadDirectionSkipped(t *testing.T) {
	path := writeSymFile(t, `platform: test
symbols:
  - label: GOOD_SYM
    value: 1
  - label: BAD_DIR
    value: 2
    direction: sideways
`)

	_, syms, err := LoadPlatformFile(path, nil)
	require.NoError(t, err)
	require.Len(t, syms, 1)
	assert.Equal(t, "GOOD_SYM", syms[0].Label)
}

func TestLoadPlatformFileMissing(t *testing.T) {
	_, _, err := LoadPlatformFile(filepath.Join(t.TempDir(), "nope.sym.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadPlatformFileUnparsable(t *testing.T) {
	path := writeSymFile(t, "platform: [unclosed")
	_, _, err := LoadPlatformFile(path, nil)
	assert.Error(t, err)
}
