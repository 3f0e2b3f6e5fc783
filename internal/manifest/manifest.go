// Package manifest loads amy.yaml, the compiler's optional project file:
// a list of source files to compile together plus WASM emission options,
// consulted by cmd/amyc before falling back to positional CLI arguments.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFilename is the manifest amyc looks for in the current
// directory when no source files are given on the command line.
const DefaultFilename = "amy.yaml"

// DefaultPages is the WASM memory page count used when a manifest (or
// the CLI) doesn't specify one, matching spec.md §4.5's `(memory 100)`
// and codegen.DefaultPages.
const DefaultPages = 100

// Manifest is the decoded shape of amy.yaml.
type Manifest struct {
	// Files lists the Amy source files to compile together, in order.
	// Relative paths are resolved against the manifest's own directory.
	Files []string `yaml:"files"`

	// OutDir is the directory compiled artifacts are written to,
	// defaulting to "wasmout" (spec.md §6).
	OutDir string `yaml:"outDir"`

	// Pages is the initial WASM memory page count, forwarded by cmd/amyc
	// into codegen.Emit's `(memory N)` import and the generated loaders.
	Pages int `yaml:"pages"`

	dir string // directory the manifest was loaded from, for path resolution
}

// Load reads and decodes the manifest at path, filling in defaults and
// resolving Files against the manifest's directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: parsing %s: %w", path, err)
	}
	m.dir = filepath.Dir(path)

	if err := m.applyDefaults(); err != nil {
		return nil, err
	}
	return &m, nil
}

// FindDefault looks for DefaultFilename in dir and loads it if present.
// It reports ok=false, with no error, when the file simply doesn't exist.
func FindDefault(dir string) (m *Manifest, ok bool, err error) {
	path := filepath.Join(dir, DefaultFilename)
	if _, statErr := os.Stat(path); statErr != nil {
		return nil, false, nil
	}
	m, err = Load(path)
	return m, err == nil, err
}

func (m *Manifest) applyDefaults() error {
	if len(m.Files) == 0 {
		return fmt.Errorf("manifest: %q lists no files", DefaultFilename)
	}
	for i, f := range m.Files {
		if !filepath.IsAbs(f) {
			m.Files[i] = filepath.Join(m.dir, f)
		}
	}
	if m.OutDir == "" {
		m.OutDir = "wasmout"
	}
	if !filepath.IsAbs(m.OutDir) {
		m.OutDir = filepath.Join(m.dir, m.OutDir)
	}
	if m.Pages <= 0 {
		m.Pages = DefaultPages
	}
	return nil
}
