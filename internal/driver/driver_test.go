package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"vega/internal/ast"
	"vega/internal/astio"
	"vega/internal/diag"
	"vega/internal/project"
	"vega/internal/sema"
)

func cleanProgram() *ast.Program {
	return &ast.Program{
		Package: "main",
		Decls: []*ast.Decl{{
			Kind: ast.DeclFunction,
			Function: &ast.FunctionDecl{
				Name: "main",
				Body: &ast.Stmt{Kind: ast.StmtBlock, Block: &ast.BlockStmt{}},
			},
		}},
	}
}

func brokenProgram() *ast.Program {
	return &ast.Program{
		Package: "main",
		Decls: []*ast.Decl{{
			Kind: ast.DeclFunction,
			Function: &ast.FunctionDecl{
				Name: "main",
				Body: &ast.Stmt{Kind: ast.StmtBlock, Block: &ast.BlockStmt{
					Stmts: []*ast.Stmt{{
						Kind: ast.StmtLet,
						Let: &ast.LetStmt{
							Name: "x",
							Type: &ast.TypeNode{Kind: ast.TypeNamed, Name: "i32"},
							Value: &ast.Expr{Kind: ast.ExprLit, Lit: &ast.LitExpr{
								Kind: ast.LitBool, Bool: true,
							}},
						},
					}},
				}},
			},
		}},
	}
}

func writeUnit(t *testing.T, dir, name string, prog *ast.Program) string {
	t.Helper()
	path := filepath.Join(dir, name+astio.Ext)
	if err := astio.WriteFile(path, name+".vg", prog); err != nil {
		t.Fatalf("write unit %s: %v", name, err)
	}
	return path
}

func TestLoadUnitsSortedOrder(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "beta", cleanProgram())
	writeUnit(t, dir, "alpha", cleanProgram())

	units, err := LoadUnits(dir)
	if err != nil {
		t.Fatalf("LoadUnits: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	if filepath.Base(units[0].Path) != "alpha"+astio.Ext {
		t.Fatalf("units not sorted: %s first", units[0].Path)
	}
	if units[0].SourcePath != "alpha.vg" {
		t.Fatalf("envelope path lost: %q", units[0].SourcePath)
	}
	if units[0].Digest.IsZero() {
		t.Fatal("unit digest not computed")
	}
}

func TestAnalyzeUnitsOutcomes(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "bad", brokenProgram())
	writeUnit(t, dir, "good", cleanProgram())

	results, err := AnalyzeDir(context.Background(), dir, Options{Config: sema.DefaultConfig()})
	if err != nil {
		t.Fatalf("AnalyzeDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// Results follow the sorted unit order regardless of scheduling.
	if results[0].Success {
		t.Fatalf("bad unit reported clean: %+v", results[0])
	}
	if got := countCode(results[0].Bag, diag.SemaTypeMismatch); got != 1 {
		t.Fatalf("expected one type mismatch, got %d", got)
	}
	if !results[1].Success {
		t.Fatalf("good unit reported broken: %+v", results[1].Bag.Items())
	}
	if results[1].Stats.NodesAnalyzed == 0 {
		t.Fatal("stats not captured")
	}
}

func TestAnalyzeUnitBadArtifact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "junk"+astio.Ext)
	if err := os.WriteFile(path, []byte("not an artifact"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	unit := LoadUnit(path)
	if unit.LoadErr == nil {
		t.Fatal("expected load error")
	}
	res := AnalyzeUnit(unit, Options{Config: sema.DefaultConfig()})
	if res.Success {
		t.Fatal("unreadable unit must not succeed")
	}
	if got := countCode(res.Bag, diag.IOLoadFile); got != 1 {
		t.Fatalf("expected one load diagnostic, got %d", got)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	unit := LoadUnit(writeUnit(t, t.TempDir(), "u", cleanProgram()))
	payload := DiskPayload{
		Schema:     diskCacheSchemaVersion,
		SourcePath: "u.vg",
		Digest:     unit.Digest,
		Success:    true,
	}
	if err := cache.Put(unit.Digest, &payload); err != nil {
		t.Fatalf("put: %v", err)
	}

	var got DiskPayload
	ok, err := cache.Get(unit.Digest, &got)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.SourcePath != "u.vg" || !got.Success || got.Digest != unit.Digest {
		t.Fatalf("payload mismatch: %+v", got)
	}

	var missing DiskPayload
	ok, err = cache.Get(project.HashBytes([]byte("other")), &missing)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if ok {
		t.Fatal("unexpected hit for unknown key")
	}
}

func TestCacheSkipsCleanUnit(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	opts := Options{Config: sema.DefaultConfig(), Cache: cache}
	unit := LoadUnit(writeUnit(t, t.TempDir(), "u", cleanProgram()))

	first := AnalyzeUnit(unit, opts)
	if !first.Success || first.Cached {
		t.Fatalf("first run: %+v", first)
	}
	second := AnalyzeUnit(unit, opts)
	if !second.Success || !second.Cached {
		t.Fatalf("second run should hit the cache: %+v", second)
	}
}

func TestBrokenUnitNotCached(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	opts := Options{Config: sema.DefaultConfig(), Cache: cache}
	unit := LoadUnit(writeUnit(t, t.TempDir(), "bad", brokenProgram()))

	for i := 0; i < 2; i++ {
		res := AnalyzeUnit(unit, opts)
		if res.Success || res.Cached {
			t.Fatalf("run %d: broken unit must re-analyze: %+v", i, res)
		}
		if got := countCode(res.Bag, diag.SemaTypeMismatch); got != 1 {
			t.Fatalf("run %d: diagnostics lost: %d", i, got)
		}
	}
}

func TestTimingsDiagnostic(t *testing.T) {
	unit := LoadUnit(writeUnit(t, t.TempDir(), "u", cleanProgram()))

	res := AnalyzeUnit(unit, Options{Config: sema.DefaultConfig(), Timings: true})
	if !res.Success {
		t.Fatalf("analysis failed: %+v", res.Bag.Items())
	}
	if got := countCode(res.Bag, diag.ObsTimings); got != 1 {
		t.Fatalf("expected one timing diagnostic, got %d", got)
	}
}

func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}
