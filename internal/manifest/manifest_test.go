package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.amy"), []byte(""), 0o644))
	path := writeManifest(t, dir, "files:\n  - main.amy\n")

	m, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "main.amy")}, m.Files)
	require.Equal(t, filepath.Join(dir, "wasmout"), m.OutDir)
	require.Equal(t, DefaultPages, m.Pages)
}

func TestLoadHonorsExplicitOptions(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "files:\n  - a.amy\n  - b.amy\noutDir: build\npages: 200\n")

	m, err := Load(path)
	require.NoError(t, err)
	require.Len(t, m.Files, 2)
	require.Equal(t, filepath.Join(dir, "build"), m.OutDir)
	require.Equal(t, 200, m.Pages)
}

func TestLoadRejectsEmptyFileList(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "outDir: build\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestFindDefaultMissingIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	m, ok, err := FindDefault(dir)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, m)
}
