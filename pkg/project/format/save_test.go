package format

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroware/bincase/pkg/project"
)

func TestSaveFraming(t *testing.T) {
	path := saveToTemp(t, sampleProject())
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(raw)
	assert.True(t, strings.HasPrefix(content, MagicLine+"\n"), "magic line must be first")
	assert.True(t, strings.HasSuffix(content, "\n"), "file must end with a line break")

	// The cosmetic breaking puts collection fields on their own lines.
	assert.Greater(t, strings.Count(content, "\n"), 10)
}

func TestSaveRefusesReadOnlyDestination(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "locked.bcproj")
	require.NoError(t, os.WriteFile(dest, []byte("prior content"), 0o444))

	err := Save(sampleProject(), dest)
	require.ErrorIs(t, err, ErrReadOnlyDestination)

	// The doomed overwrite must fail before any temp file is written.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	raw, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "prior content", string(raw))
}

func TestSaveOverwritesExistingFile(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "proj.bcproj")
	require.NoError(t, os.WriteFile(dest, []byte("old"), 0o644))

	require.NoError(t, Save(sampleProject(), dest))

	p := &project.Project{}
	_, err := Load(dest, p)
	require.NoError(t, err)

	// No stray temp files after a successful save.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAtomicSaveFaultBeforeRename(t *testing.T) {
	// Simulate a fault between the temp write and the rename: the
	// destination's prior contents must be untouched.
	dir := t.TempDir()
	dest := filepath.Join(dir, "proj.bcproj")
	require.NoError(t, os.WriteFile(dest, []byte("prior content"), 0o644))

	rec := buildRecord(sampleProject())
	data, err := wrapRecord(rec)
	require.NoError(t, err)

	tmpPath, err := writeTemp(dest, data)
	require.NoError(t, err)

	// Fault injected here: commit never runs.
	raw, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "prior content", string(raw))

	// The fully-written temp sits beside the destination until cleanup.
	tmpRaw, err := os.ReadFile(tmpPath)
	require.NoError(t, err)
	assert.Equal(t, data, tmpRaw)
	require.NoError(t, os.Remove(tmpPath))
}

func TestAtomicSaveFaultWithNoPriorFile(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "proj.bcproj")

	rec := buildRecord(sampleProject())
	data, err := wrapRecord(rec)
	require.NoError(t, err)

	tmpPath, err := writeTemp(dest, data)
	require.NoError(t, err)

	// Destination absence is preserved.
	_, err = os.Stat(dest)
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, os.Remove(tmpPath))
}

func TestCommitReplacesDestination(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "proj.bcproj")
	require.NoError(t, os.WriteFile(dest, []byte("old"), 0o644))

	tmpPath, err := writeTemp(dest, []byte("new content"))
	require.NoError(t, err)
	require.NoError(t, commit(tmpPath, dest))

	raw, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "new content", string(raw))

	_, err = os.Stat(tmpPath)
	assert.True(t, os.IsNotExist(err))
}
