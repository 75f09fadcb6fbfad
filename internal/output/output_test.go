package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCreatesFileAndParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "src", "api", "client.ts")

	res, err := Write(path, []byte("export {}\n"), Options{})
	require.NoError(t, err)
	assert.True(t, res.Written)
	assert.False(t, res.Exists)
	assert.True(t, res.Changed)
	assert.Equal(t, 10, res.Size)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "export {}\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteDryRunLeavesDiskAlone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "client.go")
	require.NoError(t, os.WriteFile(path, []byte("package old\n"), 0o644))

	res, err := Write(path, []byte("package api\n"), Options{DryRun: true, Diff: true})
	require.NoError(t, err)
	assert.False(t, res.Written)
	assert.True(t, res.Exists)
	assert.True(t, res.Changed)
	assert.Contains(t, res.Diff, "-package old")
	assert.Contains(t, res.Diff, "+package api")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package old\n", string(data))
}

func TestWriteSkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "client.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o644))

	res, err := Write(path, []byte("x = 1\n"), Options{Diff: true})
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.False(t, res.Written)
	assert.Empty(t, res.Diff)
}

func TestDiffAgainstMissingFile(t *testing.T) {
	d := Diff("out/client.ts", "", "a\nb\n")
	assert.True(t, strings.HasPrefix(d, "--- a/out/client.ts\n+++ b/out/client.ts\n"), d)
	assert.Contains(t, d, "+a\n+b\n")
	assert.Empty(t, Diff("x", "same", "same"))
}
