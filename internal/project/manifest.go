package project

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"vega/internal/sema"
)

// Manifest is the parsed vega.toml. Absent sections fall back to the
// analyzer defaults, so an empty manifest is valid.
type Manifest struct {
	Package  PackageSection  `toml:"package"`
	Analyzer AnalyzerSection `toml:"analyzer"`
}

type PackageSection struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// AnalyzerSection maps one-to-one onto sema.Config. Pointer fields
// distinguish "not set" from "set to false".
type AnalyzerSection struct {
	StrictMode     *bool `toml:"strict_mode"`
	AllowUnsafe    *bool `toml:"allow_unsafe"`
	CheckOwnership *bool `toml:"check_ownership"`
	ValidateFFI    *bool `toml:"validate_ffi"`
	EnableWarnings *bool `toml:"enable_warnings"`
	TestMode       *bool `toml:"test_mode"`
	MaxErrors      int   `toml:"max_errors"`
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the caller
	if err != nil {
		return nil, err
	}
	return ParseManifest(string(data))
}

// ParseManifest parses manifest text.
func ParseManifest(text string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.Decode(text, &m)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", ManifestName, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse %s: unknown key %q", ManifestName, undecoded[0].String())
	}
	return &m, nil
}

// AnalyzerConfig folds the manifest over the analyzer defaults.
func (m *Manifest) AnalyzerConfig() sema.Config {
	cfg := sema.DefaultConfig()
	if m == nil {
		return cfg
	}
	s := m.Analyzer
	apply := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&cfg.StrictMode, s.StrictMode)
	apply(&cfg.AllowUnsafe, s.AllowUnsafe)
	apply(&cfg.CheckOwnership, s.CheckOwnership)
	apply(&cfg.ValidateFFI, s.ValidateFFI)
	apply(&cfg.EnableWarnings, s.EnableWarnings)
	apply(&cfg.TestMode, s.TestMode)
	if s.MaxErrors > 0 {
		cfg.MaxErrors = s.MaxErrors
	}
	return cfg
}

// ConfigForDir locates the manifest governing dir and returns its analyzer
// configuration; defaults when no manifest exists.
func ConfigForDir(dir string) (sema.Config, error) {
	path, ok, err := FindManifest(dir)
	if err != nil {
		return sema.DefaultConfig(), err
	}
	if !ok {
		return sema.DefaultConfig(), nil
	}
	m, err := LoadManifest(path)
	if err != nil {
		return sema.DefaultConfig(), err
	}
	return m.AnalyzerConfig(), nil
}
