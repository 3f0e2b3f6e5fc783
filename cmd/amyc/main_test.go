package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amy-lang/amyc/internal/diag"
	"github.com/amy-lang/amyc/internal/manifest"
)

const sampleSource = `object Main {
  def double(x: Int): Int = { x + x }
  Std.printInt(double(21))
}
`

func writeSample(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "sample.amy")
	require.NoError(t, os.WriteFile(path, []byte(sampleSource), 0o644))
	return path
}

func TestRunCompileWritesWatHtmlAndRunner(t *testing.T) {
	dir := t.TempDir()
	path := writeSample(t, dir)

	rep := diag.NewReporter()
	code := run([]string{path}, "compile", "", manifest.DefaultPages, rep)
	require.Equal(t, 0, code)
	require.False(t, rep.HadError())

	watBytes, err := os.ReadFile(filepath.Join(dir, "sample.wat"))
	require.NoError(t, err)
	require.Contains(t, string(watBytes), "(module")
	require.Contains(t, string(watBytes), "call $Main_double")

	htmlBytes, err := os.ReadFile(filepath.Join(dir, "sample.html"))
	require.NoError(t, err)
	require.Contains(t, string(htmlBytes), "WebAssembly.instantiateStreaming")
	require.Contains(t, string(htmlBytes), "Main_main")

	runnerBytes, err := os.ReadFile(filepath.Join(dir, "wasmout", "nodejs"))
	require.NoError(t, err)
	require.Contains(t, string(runnerBytes), "WebAssembly.instantiate")

	info, err := os.Stat(filepath.Join(dir, "wasmout", "nodejs"))
	require.NoError(t, err)
	require.NotZero(t, info.Mode()&0o111)
}

func TestRunCompileHonorsExplicitOutDir(t *testing.T) {
	dir := t.TempDir()
	path := writeSample(t, dir)
	outDir := filepath.Join(dir, "custom-out")

	rep := diag.NewReporter()
	code := run([]string{path}, "compile", outDir, manifest.DefaultPages, rep)
	require.Equal(t, 0, code)

	_, err := os.Stat(filepath.Join(outDir, "nodejs"))
	require.NoError(t, err)
}

func TestRunTokensModePrintsAndSkipsOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeSample(t, dir)

	rep := diag.NewReporter()
	code := run([]string{path}, "tokens", "", manifest.DefaultPages, rep)
	require.Equal(t, 0, code)

	_, err := os.Stat(filepath.Join(dir, "sample.wat"))
	require.True(t, os.IsNotExist(err))
}

func TestRunInterpretModeExecutesProgram(t *testing.T) {
	dir := t.TempDir()
	path := writeSample(t, dir)

	rep := diag.NewReporter()
	code := run([]string{path}, "interpret", "", manifest.DefaultPages, rep)
	require.Equal(t, 0, code)
	require.False(t, rep.HadError())
}

func TestRunReportsErrorOnMissingFile(t *testing.T) {
	rep := diag.NewReporter()
	code := run([]string{filepath.Join(t.TempDir(), "missing.amy")}, "compile", "", manifest.DefaultPages, rep)
	require.Equal(t, 1, code)
}

func TestRunReportsTypeErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.amy")
	require.NoError(t, os.WriteFile(path, []byte(`object Main {
  Std.printInt(1 + true)
}
`), 0o644))

	rep := diag.NewReporter()
	code := run([]string{path}, "compile", "", manifest.DefaultPages, rep)
	require.Equal(t, 1, code)
	require.True(t, rep.HadError())
}
