// Package driver orchestrates semantic analysis over serialized AST units:
// discovery, parallel analysis, result caching and timing reports.
package driver

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"vega/internal/ast"
	"vega/internal/astio"
	"vega/internal/diag"
	"vega/internal/project"
	"vega/internal/source"
)

// Unit is one analyzable compilation unit: a deserialized AST plus the
// metadata needed to cache and report on it.
type Unit struct {
	// Path of the .vgast artifact this unit was loaded from.
	Path string
	// SourcePath recorded in the artifact envelope.
	SourcePath string
	Program    *ast.Program
	// Digest of the artifact bytes, the cache key for this unit.
	Digest project.Digest

	// Files holds the unit's source when it could be loaded next to the
	// artifact. Spans in a serialized program assume its source was the
	// first file registered, so every unit gets its own set.
	Files *source.FileSet

	// LoadErr is set when the artifact could not be read; Program is nil.
	LoadErr error
}

// ListUnitFiles returns every *.vgast artifact under dir, sorted for
// deterministic ordering.
func ListUnitFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, astio.Ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// LoadUnit reads a single artifact. Read failures are captured in LoadErr
// rather than returned, so a broken artifact surfaces as a diagnostic
// instead of aborting the whole batch.
func LoadUnit(path string) Unit {
	u := Unit{Path: path}

	digest, err := project.HashFile(path)
	if err != nil {
		u.LoadErr = err
		return u
	}
	u.Digest = digest

	sourcePath, prog, err := astio.ReadFile(path)
	if err != nil {
		u.LoadErr = err
		return u
	}
	u.SourcePath = sourcePath
	u.Program = prog

	u.Files = source.NewFileSet()
	if sourcePath != "" {
		if _, err := u.Files.Load(resolveSourcePath(path, sourcePath)); err != nil {
			// Missing source only degrades rendering, analysis proceeds.
			u.Files = source.NewFileSet()
		}
	}
	return u
}

// LoadUnits discovers and loads every artifact under dir.
func LoadUnits(dir string) ([]Unit, error) {
	files, err := ListUnitFiles(dir)
	if err != nil {
		return nil, err
	}
	units := make([]Unit, len(files))
	for i, path := range files {
		units[i] = LoadUnit(path)
	}
	return units, nil
}

// resolveSourcePath interprets a relative envelope path against the
// artifact's directory.
func resolveSourcePath(artifactPath, sourcePath string) string {
	if filepath.IsAbs(sourcePath) {
		return sourcePath
	}
	return filepath.Join(filepath.Dir(artifactPath), sourcePath)
}

func loadErrorDiagnostic(err error) diag.Diagnostic {
	return diag.New(diag.SevError, diag.IOLoadFile, source.Span{},
		"failed to load unit: "+err.Error())
}
