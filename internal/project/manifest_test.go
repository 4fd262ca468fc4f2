package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest(`
[package]
name = "demo"
version = "0.1.0"

[analyzer]
strict_mode = false
allow_unsafe = true
max_errors = 25
`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.Package.Name != "demo" {
		t.Fatalf("package name lost: %+v", m.Package)
	}
	cfg := m.AnalyzerConfig()
	if cfg.StrictMode {
		t.Fatal("strict_mode=false must override the default")
	}
	if !cfg.AllowUnsafe {
		t.Fatal("allow_unsafe=true must override the default")
	}
	if cfg.MaxErrors != 25 {
		t.Fatalf("max_errors lost: %d", cfg.MaxErrors)
	}
	// keys the manifest does not set keep their defaults
	if !cfg.ValidateFFI || !cfg.EnableWarnings {
		t.Fatalf("unset keys must keep defaults: %+v", cfg)
	}
}

func TestParseManifestRejectsUnknownKeys(t *testing.T) {
	if _, err := ParseManifest("[analyzer]\nstrictness = 3\n"); err == nil {
		t.Fatal("unknown keys must be rejected")
	}
}

func TestEmptyManifestKeepsDefaults(t *testing.T) {
	m, err := ParseManifest("")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := m.AnalyzerConfig()
	if !cfg.StrictMode || cfg.AllowUnsafe || !cfg.CheckOwnership {
		t.Fatalf("empty manifest must keep defaults: %+v", cfg)
	}
}

func TestFindRootWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ManifestName), []byte("[package]\nname = \"x\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	found, ok, err := FindRoot(nested)
	if err != nil || !ok {
		t.Fatalf("expected to find root: %v %v", ok, err)
	}
	resolved, err := filepath.EvalSymlinks(found)
	if err != nil {
		t.Fatal(err)
	}
	want, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != want {
		t.Fatalf("found %q, want %q", resolved, want)
	}
}

func TestConfigForDirWithoutManifest(t *testing.T) {
	cfg, err := ConfigForDir(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.StrictMode {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestDigestCombine(t *testing.T) {
	a := HashBytes([]byte("alpha"))
	b := HashBytes([]byte("beta"))
	if a == b {
		t.Fatal("distinct content must hash differently")
	}
	if Combine(a, b) == Combine(b, a) {
		t.Fatal("combine must be order-sensitive")
	}
	if Combine(a) == a {
		t.Fatal("combine must rehash even without deps")
	}
	var zero Digest
	if !zero.IsZero() || a.IsZero() {
		t.Fatal("IsZero misbehaves")
	}
}
