package sema

import (
	"testing"

	"vega/internal/ast"
	"vega/internal/diag"
)

func spawnStmt(call *ast.Expr) *ast.Stmt {
	return &ast.Stmt{Kind: ast.StmtSpawn, Spawn: &ast.SpawnStmt{Call: call}}
}

func spawnWithHandleStmt(handle string, call *ast.Expr) *ast.Stmt {
	return &ast.Stmt{Kind: ast.StmtSpawnWithHandle, Spawn: &ast.SpawnStmt{Call: call, HandleName: handle}}
}

func awaitStmt(handle *ast.Expr) *ast.Stmt {
	return &ast.Stmt{Kind: ast.StmtAwait, Await: &ast.AwaitExpr{Handle: handle}}
}

func awaitExpr(handle *ast.Expr) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprAwait, Await: &ast.AwaitExpr{Handle: handle}}
}

func TestSpawnPlainCall(t *testing.T) {
	a := testAnalyzer()
	prog := program(
		fnDecl("work", nil, nil, block()),
		mainFn(spawnStmt(callExpr("work"))),
	)
	if !a.AnalyzeProgram(prog) {
		t.Fatalf("expected success, got %+v", a.Diagnostics().Items())
	}
}

func TestSpawnRequiresCall(t *testing.T) {
	a := testAnalyzer()
	prog := program(mainFn(
		letStmt("x", namedType("i32"), intLit(1)),
		spawnStmt(identExpr("x")),
	))
	if a.AnalyzeProgram(prog) {
		t.Fatal("expected failure")
	}
	if countCode(a.Diagnostics(), diag.SemaInvalidExpression) != 1 {
		t.Fatalf("expected invalid-expression, got %+v", a.Diagnostics().Items())
	}
}

func TestSpawnWithHandleTypesAwait(t *testing.T) {
	a := testAnalyzer()
	prog := program(
		fnDecl("work", nil, namedType("i32"), block(returnStmt(intLit(7)))),
		mainFn(
			spawnWithHandleStmt("h", callExpr("work")),
			letStmt("v", namedType("i32"), awaitExpr(identExpr("h"))),
		),
	)
	if !a.AnalyzeProgram(prog) {
		t.Fatalf("await must yield the task's result type, got %+v", a.Diagnostics().Items())
	}
}

func TestAwaitStatementDiscardsResult(t *testing.T) {
	a := testAnalyzer()
	prog := program(
		fnDecl("work", nil, namedType("i32"), block(returnStmt(intLit(7)))),
		mainFn(
			spawnWithHandleStmt("h", callExpr("work")),
			awaitStmt(identExpr("h")),
		),
	)
	if !a.AnalyzeProgram(prog) {
		t.Fatalf("expected success, got %+v", a.Diagnostics().Items())
	}
}

func TestAwaitNeedsTaskHandle(t *testing.T) {
	a := testAnalyzer()
	prog := program(mainFn(
		letStmt("x", namedType("i32"), intLit(1)),
		awaitStmt(identExpr("x")),
	))
	if a.AnalyzeProgram(prog) {
		t.Fatal("expected failure")
	}
	if countCode(a.Diagnostics(), diag.SemaAwaitNotHandle) != 1 {
		t.Fatalf("expected await-not-handle, got %+v", a.Diagnostics().Items())
	}
}

func TestNonDeterministicIsContagious(t *testing.T) {
	a := testAnalyzer()
	rng := fnDecl("rng", nil, namedType("i32"), block(returnStmt(intLit(4))))
	rng.Annotations = []*ast.Annotation{{Name: ast.AnnotationNonDeterministic}}
	caller := fnDecl("caller", nil, nil, block(exprStmt(callExpr("rng"))))
	prog := program(rng, caller)
	if a.AnalyzeProgram(prog) {
		t.Fatal("expected failure")
	}
	if countCode(a.Diagnostics(), diag.SemaMissingAnnotation) != 1 {
		t.Fatalf("expected missing-annotation, got %+v", a.Diagnostics().Items())
	}
}

func TestNonDeterministicCallerAllowed(t *testing.T) {
	a := testAnalyzer()
	rng := fnDecl("rng", nil, namedType("i32"), block(returnStmt(intLit(4))))
	rng.Annotations = []*ast.Annotation{{Name: ast.AnnotationNonDeterministic}}
	caller := fnDecl("caller", nil, nil, block(exprStmt(callExpr("rng"))))
	caller.Annotations = []*ast.Annotation{{Name: ast.AnnotationNonDeterministic}}
	prog := program(rng, caller)
	if !a.AnalyzeProgram(prog) {
		t.Fatalf("annotated caller must be allowed, got %+v", a.Diagnostics().Items())
	}
}

func TestUnsafeBlocksDisabledByConfig(t *testing.T) {
	cfg := DefaultConfig() // AllowUnsafe off, TestMode off
	a := New(cfg)
	prog := program(mainFn(&ast.Stmt{Kind: ast.StmtUnsafe, Unsafe: &ast.UnsafeStmt{
		Body: block(),
	}}))
	if a.AnalyzeProgram(prog) {
		t.Fatal("expected failure")
	}
	if countCode(a.Diagnostics(), diag.SemaUnsafeRequired) != 1 {
		t.Fatalf("expected unsafe-required, got %+v", a.Diagnostics().Items())
	}
}
