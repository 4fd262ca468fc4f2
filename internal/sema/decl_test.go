package sema

import (
	"strings"
	"testing"

	"vega/internal/ast"
	"vega/internal/diag"
	"vega/internal/symbols"
)

func importDecl(module, alias string) *ast.Decl {
	return &ast.Decl{Kind: ast.DeclImport, Import: &ast.ImportDecl{Module: module, Alias: alias}}
}

func programImporting(imports []*ast.Decl, decls ...*ast.Decl) *ast.Program {
	return &ast.Program{Package: "main", Imports: imports, Decls: decls}
}

func TestImportAliasDefaultsToLastSegment(t *testing.T) {
	a := testAnalyzer()
	b := a.Types().Builtins()
	a.GlobalScope().Insert("mathlib.PI", &symbols.Entry{
		Name:       "mathlib.PI",
		Kind:       symbols.KindConst,
		Type:       b.F64,
		Visibility: symbols.Public,
		Flags:      symbols.FlagInitialized,
	})
	prog := programImporting(
		[]*ast.Decl{importDecl("core/mathlib", "")},
		mainFn(letStmt("x", namedType("f64"), fieldExpr(identExpr("mathlib"), "PI"))),
	)
	if !a.AnalyzeProgram(prog) {
		t.Fatalf("expected success, got %+v", a.Diagnostics().Items())
	}
	if path, ok := a.Aliases().Resolve("mathlib"); !ok || path != "core/mathlib" {
		t.Fatalf("alias must default to the last path segment, got %q %v", path, ok)
	}
}

func TestModulePrivateMember(t *testing.T) {
	a := testAnalyzer()
	b := a.Types().Builtins()
	a.GlobalScope().Insert("mathlib.seed", &symbols.Entry{
		Name:       "mathlib.seed",
		Kind:       symbols.KindConst,
		Type:       b.I64,
		Visibility: symbols.Private,
		Flags:      symbols.FlagInitialized,
	})
	prog := programImporting(
		[]*ast.Decl{importDecl("core/mathlib", "")},
		mainFn(letStmt("x", nil, fieldExpr(identExpr("mathlib"), "seed"))),
	)
	if a.AnalyzeProgram(prog) {
		t.Fatal("expected failure")
	}
	if countCode(a.Diagnostics(), diag.SemaVisibility) != 1 {
		t.Fatalf("expected visibility error, got %+v", a.Diagnostics().Items())
	}
}

func TestModuleUnknownMember(t *testing.T) {
	a := testAnalyzer()
	prog := programImporting(
		[]*ast.Decl{importDecl("core/mathlib", "m")},
		mainFn(letStmt("x", nil, fieldExpr(identExpr("m"), "TAU"))),
	)
	if a.AnalyzeProgram(prog) {
		t.Fatal("expected failure")
	}
	if countCode(a.Diagnostics(), diag.SemaUndeclaredName) != 1 {
		t.Fatalf("expected undeclared-name, got %+v", a.Diagnostics().Items())
	}
}

func TestDuplicateImportAlias(t *testing.T) {
	a := testAnalyzer()
	prog := programImporting([]*ast.Decl{
		importDecl("core/mathlib", "m"),
		importDecl("net/metrics", "m"),
	})
	if a.AnalyzeProgram(prog) {
		t.Fatal("expected failure")
	}
	if countCode(a.Diagnostics(), diag.SemaRedeclaration) != 1 {
		t.Fatalf("expected alias redeclaration, got %+v", a.Diagnostics().Items())
	}
}

func TestUnknownAnnotationStrictMode(t *testing.T) {
	a := testAnalyzer() // strict by default
	fn := fnDecl("f", nil, nil, block())
	fn.Annotations = []*ast.Annotation{{Name: "frobnicate"}}
	prog := program(fn)
	if a.AnalyzeProgram(prog) {
		t.Fatal("expected failure")
	}
	if countCode(a.Diagnostics(), diag.SemaMissingAnnotation) != 1 {
		t.Fatalf("expected missing-annotation, got %+v", a.Diagnostics().Items())
	}
}

func TestUnknownAnnotationLenientMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StrictMode = false
	cfg.TestMode = true
	a := New(cfg)
	fn := fnDecl("f", nil, nil, block())
	fn.Annotations = []*ast.Annotation{{Name: "frobnicate"}}
	prog := program(fn)
	if !a.AnalyzeProgram(prog) {
		t.Fatalf("unknown annotations must only warn outside strict mode, got %+v", a.Diagnostics().Items())
	}
	if a.Diagnostics().WarningCount() != 1 {
		t.Fatalf("expected 1 warning, got %d", a.Diagnostics().WarningCount())
	}
}

func TestDeprecatedAnnotationAccepted(t *testing.T) {
	a := testAnalyzer()
	fn := fnDecl("f", nil, nil, block())
	fn.Annotations = []*ast.Annotation{{Name: "deprecated", Args: []string{"use g instead"}}}
	prog := program(fn)
	if !a.AnalyzeProgram(prog) {
		t.Fatalf("deprecated is a known annotation, got %+v", a.Diagnostics().Items())
	}
}

func TestUnusedParameterWarns(t *testing.T) {
	a := testAnalyzer()
	prog := program(fnDecl("f",
		[]*ast.Param{param("unused", namedType("i32")), param("_ignored", namedType("i32"))},
		nil,
		block(),
	))
	if !a.AnalyzeProgram(prog) {
		t.Fatalf("unused parameters must not fail the unit, got %+v", a.Diagnostics().Items())
	}
	if countCode(a.Diagnostics(), diag.SemaUnusedSymbol) != 1 {
		t.Fatalf("underscore-prefixed names are exempt, got %+v", a.Diagnostics().Items())
	}
}

func TestUnusedParameterWarningsFollowDeclarationOrder(t *testing.T) {
	a := testAnalyzer()
	prog := program(fnDecl("f",
		[]*ast.Param{param("first", namedType("i32")), param("second", namedType("i32"))},
		nil,
		block(),
	))
	if !a.AnalyzeProgram(prog) {
		t.Fatalf("unused parameters must not fail the unit, got %+v", a.Diagnostics().Items())
	}
	var messages []string
	for _, d := range a.Diagnostics().Items() {
		if d.Code == diag.SemaUnusedSymbol {
			messages = append(messages, d.Message)
		}
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 warnings, got %+v", messages)
	}
	if !strings.Contains(messages[0], "'first'") || !strings.Contains(messages[1], "'second'") {
		t.Fatalf("warnings must follow parameter order, got %+v", messages)
	}
}

func TestUnusedParameterSuggestsUnderscorePrefix(t *testing.T) {
	a := testAnalyzer()
	prog := program(fnDecl("f", []*ast.Param{param("extra", namedType("i32"))}, nil, block()))
	if !a.AnalyzeProgram(prog) {
		t.Fatalf("unused parameters must not fail the unit, got %+v", a.Diagnostics().Items())
	}
	for _, d := range a.Diagnostics().Items() {
		if d.Code != diag.SemaUnusedSymbol {
			continue
		}
		if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 1 {
			t.Fatalf("expected one suggested edit, got %+v", d)
		}
		if d.Fixes[0].Edits[0].NewText != "_extra" {
			t.Fatalf("fix must prefix the name, got %q", d.Fixes[0].Edits[0].NewText)
		}
		return
	}
	t.Fatal("expected an unused-parameter warning")
}

func TestRedeclarationNotesPreviousDeclaration(t *testing.T) {
	a := testAnalyzer()
	prog := program(mainFn(
		letStmt("v", namedType("i32"), intLit(1)),
		letStmt("v", namedType("i32"), intLit(2)),
	))
	if a.AnalyzeProgram(prog) {
		t.Fatal("expected failure")
	}
	for _, d := range a.Diagnostics().Items() {
		if d.Code != diag.SemaRedeclaration {
			continue
		}
		if len(d.Notes) != 1 {
			t.Fatalf("redeclaration must point at the previous declaration, got %+v", d)
		}
		return
	}
	t.Fatal("expected a redeclaration diagnostic")
}

func TestDuplicateStructField(t *testing.T) {
	a := testAnalyzer()
	prog := program(structDecl("Pair",
		structField("x", namedType("i32")),
		structField("x", namedType("i32")),
	))
	if a.AnalyzeProgram(prog) {
		t.Fatal("expected failure")
	}
	if countCode(a.Diagnostics(), diag.SemaDuplicateField) != 1 {
		t.Fatalf("expected duplicate-field, got %+v", a.Diagnostics().Items())
	}
}

func TestForeignFunctionNeedsNoBody(t *testing.T) {
	a := testAnalyzer()
	fn := fnDecl("ghost", nil, nil, nil)
	prog := program(fn)
	if a.AnalyzeProgram(prog) {
		t.Fatal("expected failure")
	}
	if a.ErrorCount() == 0 {
		t.Fatal("a bodyless non-extern function must be rejected")
	}
}

func TestEnumPatternBindsPayload(t *testing.T) {
	a := testAnalyzer()
	shape := &ast.Decl{Kind: ast.DeclEnum, Enum: &ast.EnumDecl{
		Name: "Shape",
		Variants: []*ast.EnumVariant{
			{Name: "Circle", Payload: []*ast.TypeNode{namedType("f64")}},
			{Name: "Empty"},
		},
	}}
	match := &ast.Expr{Kind: ast.ExprMatch, Match: &ast.MatchExpr{
		Scrutinee: identExpr("s"),
		Arms: []*ast.MatchArm{
			{
				Pattern: &ast.Pattern{
					Kind:     ast.PatEnumVariant,
					EnumName: "Shape",
					Variant:  "Circle",
					Payload:  []*ast.Pattern{{Kind: ast.PatBinding, Name: "r"}},
				},
				Value: identExpr("r"),
			},
			{Pattern: &ast.Pattern{Kind: ast.PatWildcard}, Value: floatLit(0)},
		},
	}}
	lit := &ast.Expr{Kind: ast.ExprEnumLit, Enum: &ast.EnumLitExpr{
		EnumName: "Shape", Variant: "Circle", Payload: []*ast.Expr{floatLit(2.5)},
	}}
	prog := program(shape, mainFn(
		letStmt("s", nil, lit),
		letStmt("radius", namedType("f64"), match),
	))
	if !a.AnalyzeProgram(prog) {
		t.Fatalf("pattern bindings must carry the payload type, got %+v", a.Diagnostics().Items())
	}
}

func TestIfLetScopesBindingToThenBranch(t *testing.T) {
	a := testAnalyzer()
	shape := &ast.Decl{Kind: ast.DeclEnum, Enum: &ast.EnumDecl{
		Name: "Shape",
		Variants: []*ast.EnumVariant{
			{Name: "Circle", Payload: []*ast.TypeNode{namedType("f64")}},
			{Name: "Empty"},
		},
	}}
	lit := &ast.Expr{Kind: ast.ExprEnumLit, Enum: &ast.EnumLitExpr{
		EnumName: "Shape", Variant: "Circle", Payload: []*ast.Expr{floatLit(2.5)},
	}}
	ifLet := &ast.Stmt{Kind: ast.StmtIfLet, IfLet: &ast.IfLetStmt{
		Pattern: &ast.Pattern{
			Kind:     ast.PatEnumVariant,
			EnumName: "Shape",
			Variant:  "Circle",
			Payload:  []*ast.Pattern{{Kind: ast.PatBinding, Name: "r"}},
		},
		Scrutinee: identExpr("s"),
		Then:      block(letStmt("d", namedType("f64"), identExpr("r"))),
	}}
	prog := program(shape, mainFn(
		letStmt("s", nil, lit),
		ifLet,
		exprStmt(identExpr("r")), // out of scope here
	))
	if a.AnalyzeProgram(prog) {
		t.Fatal("expected failure")
	}
	if countCode(a.Diagnostics(), diag.SemaUndeclaredName) != 1 {
		t.Fatalf("binding must not leak past the then-branch, got %+v", a.Diagnostics().Items())
	}
}
