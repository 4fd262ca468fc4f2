package astio

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"vega/internal/ast"
)

func sampleProgram() *ast.Program {
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
							Value: &ast.Expr{Kind: ast.ExprLit, Lit: &ast.LitExpr{
								Kind: ast.LitInt, Int: 42,
							}},
						},
					}},
				}},
			},
		}},
	}
}

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "demo.vg", sampleProgram()); err != nil {
		t.Fatalf("write: %v", err)
	}
	path, prog, err := Read(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if path != "demo.vg" {
		t.Fatalf("source path lost: %q", path)
	}
	if prog.Package != "main" || len(prog.Decls) != 1 {
		t.Fatalf("program shape lost: %+v", prog)
	}
	fn := prog.Decls[0].Function
	if fn == nil || fn.Name != "main" {
		t.Fatalf("function decl lost: %+v", prog.Decls[0])
	}
	let := fn.Body.Block.Stmts[0].Let
	if let == nil || let.Name != "x" || let.Value.Lit.Int != 42 {
		t.Fatalf("let statement lost: %+v", fn.Body.Block.Stmts[0])
	}
}

func TestAnalysisFlagsNotSerialized(t *testing.T) {
	prog := sampleProgram()
	prog.Decls[0].Function.Body.Block.Stmts[0].Let.Value.IsConstantExpr = true

	var buf bytes.Buffer
	if err := Write(&buf, "demo.vg", prog); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, decoded, err := Read(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	value := decoded.Decls[0].Function.Body.Block.Stmts[0].Let.Value
	if value.IsConstantExpr {
		t.Fatal("analyzer flags must not travel on the wire")
	}
}

func TestRejectsBadMagic(t *testing.T) {
	if _, _, err := Read(bytes.NewReader([]byte("nope nope nope"))); !errors.Is(err, ErrBadMagic) {
		t.Fatalf("expected ErrBadMagic, got %v", err)
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unit"+Ext)
	if err := WriteFile(path, "demo.vg", sampleProgram()); err != nil {
		t.Fatalf("write file: %v", err)
	}
	src, prog, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if src != "demo.vg" || prog == nil {
		t.Fatalf("unexpected result: %q %v", src, prog)
	}
}
