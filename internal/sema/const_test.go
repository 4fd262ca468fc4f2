package sema

import (
	"testing"

	"vega/internal/ast"
	"vega/internal/diag"
)

func TestConstFoldingAndUse(t *testing.T) {
	a := testAnalyzer()
	prog := program(
		constDecl("SIZE", namedType("i32"), binExpr(ast.BinAdd, intLit(2), intLit(3))),
		mainFn(
			letStmt("x", namedType("i32"), identExpr("SIZE")),
			letStmt("buf", arrayType(namedType("u8"), identExpr("SIZE")), repeatedExpr(intLit(0), identExpr("SIZE"))),
		),
	)
	if !a.AnalyzeProgram(prog) {
		t.Fatalf("folded constant must serve as an array size, got %+v", a.Diagnostics().Items())
	}
	sym := a.GlobalScope().Lookup("SIZE")
	if sym == nil || sym.Const == nil {
		t.Fatal("constant must carry its folded value")
	}
	v, ok := sym.Const.(Value)
	if !ok || v.Kind != ValueInt || v.Int != 5 {
		t.Fatalf("expected folded value 5, got %+v", sym.Const)
	}
}

func TestConstForwardReference(t *testing.T) {
	a := testAnalyzer()
	prog := program(
		constDecl("A", namedType("i32"), binExpr(ast.BinAdd, identExpr("B"), intLit(1))),
		constDecl("B", namedType("i32"), intLit(2)),
	)
	if !a.AnalyzeProgram(prog) {
		t.Fatalf("constants must fold in dependency order, got %+v", a.Diagnostics().Items())
	}
	sym := a.GlobalScope().Lookup("A")
	if sym == nil || sym.Const == nil {
		t.Fatal("A must carry a folded value")
	}
	if v, ok := sym.Const.(Value); !ok || v.Int != 3 {
		t.Fatalf("A must fold to 3, got %+v", sym.Const)
	}
}

func TestConstCycleDetected(t *testing.T) {
	a := testAnalyzer()
	prog := program(
		constDecl("A", namedType("i32"), identExpr("B")),
		constDecl("B", namedType("i32"), identExpr("A")),
	)
	if a.AnalyzeProgram(prog) {
		t.Fatal("expected failure")
	}
	if countCode(a.Diagnostics(), diag.SemaConstCycle) != 1 {
		t.Fatalf("a cycle must be reported exactly once, got %+v", a.Diagnostics().Items())
	}
}

func TestConstSelfReference(t *testing.T) {
	a := testAnalyzer()
	prog := program(
		constDecl("LOOP", namedType("i32"), identExpr("LOOP")),
	)
	if a.AnalyzeProgram(prog) {
		t.Fatal("expected failure")
	}
	if countCode(a.Diagnostics(), diag.SemaConstCycle) != 1 {
		t.Fatalf("expected const-cycle, got %+v", a.Diagnostics().Items())
	}
}

func TestConstOverflow(t *testing.T) {
	a := testAnalyzer()
	prog := program(
		constDecl("BIG", namedType("u8"), binExpr(ast.BinAdd, intLit(200), intLit(100))),
	)
	if a.AnalyzeProgram(prog) {
		t.Fatal("expected failure")
	}
	if countCode(a.Diagnostics(), diag.SemaConstOverflow) != 1 {
		t.Fatalf("expected const-overflow, got %+v", a.Diagnostics().Items())
	}
}

func TestConstRequiresConstantInitializer(t *testing.T) {
	a := testAnalyzer()
	prog := program(
		constDecl("BAD", namedType("i32"), callExpr("exit", intLit(0))),
	)
	if a.AnalyzeProgram(prog) {
		t.Fatal("expected failure")
	}
	if countCode(a.Diagnostics(), diag.SemaConstNotConstant) != 1 {
		t.Fatalf("expected const-not-constant, got %+v", a.Diagnostics().Items())
	}
}

func TestConstDivisionByZero(t *testing.T) {
	a := testAnalyzer()
	prog := program(
		constDecl("BAD", namedType("i32"), binExpr(ast.BinDiv, intLit(1), intLit(0))),
	)
	if a.AnalyzeProgram(prog) {
		t.Fatal("expected failure")
	}
	if a.ErrorCount() == 0 {
		t.Fatalf("division by zero in a constant must be rejected, got %+v", a.Diagnostics().Items())
	}
}

func TestConstTypeInference(t *testing.T) {
	a := testAnalyzer()
	prog := program(
		constDecl("N", nil, intLit(10)),
		mainFn(letStmt("x", namedType("i32"), identExpr("N"))),
	)
	if !a.AnalyzeProgram(prog) {
		t.Fatalf("untyped constants default to i32, got %+v", a.Diagnostics().Items())
	}
}
