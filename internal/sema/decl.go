package sema

import (
	"strings"

	"vega/internal/ast"
	"vega/internal/diag"
	"vega/internal/source"
	"vega/internal/symbols"
)

// AnalyzeProgram is the analyzer entry point for one compilation unit.
// Imports run first, then nominal type headers are hoisted so declaration
// order inside a unit never matters, then type bodies and constants in
// source order, then function and method signatures, then bodies.
// Success means a full walk with zero errors; warnings never fail a unit.
func (a *Analyzer) AnalyzeProgram(prog *ast.Program) bool {
	if prog == nil {
		a.report(diag.SemaInternal, source.Span{}, "nil program")
		return false
	}
	for _, imp := range prog.Imports {
		a.analyzeAnnotations(imp.Annotations)
		a.analyzeImport(imp)
	}
	for _, d := range prog.Decls {
		a.hoistHeader(d)
	}
	for _, d := range prog.Decls {
		switch d.Kind {
		case ast.DeclStruct, ast.DeclEnum, ast.DeclConst:
			a.analyzeAnnotations(d.Annotations)
			a.analyzeDecl(d)
		}
	}
	for _, d := range prog.Decls {
		switch d.Kind {
		case ast.DeclFunction:
			a.declareFunction(d)
		case ast.DeclExtern:
			a.analyzeAnnotations(d.Annotations)
			a.analyzeExtern(d)
		case ast.DeclImpl:
			a.declareImplMethods(d)
		}
	}
	for _, d := range prog.Decls {
		switch d.Kind {
		case ast.DeclFunction:
			a.analyzeAnnotations(d.Annotations)
			a.analyzeFunctionBody(d)
		case ast.DeclImpl:
			a.analyzeAnnotations(d.Annotations)
			a.analyzeImplBodies(d)
		case ast.DeclStruct, ast.DeclEnum, ast.DeclConst, ast.DeclExtern, ast.DeclImport:
			// handled in earlier passes
		default:
			a.stats.NodesAnalyzed.Add(1)
			a.report(diag.SemaUnsupportedDecl, d.Span, "unsupported declaration kind %d", d.Kind)
		}
	}
	return a.bag.ErrorCount() == 0
}

func (a *Analyzer) analyzeDecl(d *ast.Decl) bool {
	if d == nil {
		return false
	}
	a.stats.NodesAnalyzed.Add(1)
	switch d.Kind {
	case ast.DeclStruct:
		return a.analyzeStruct(d)
	case ast.DeclEnum:
		return a.analyzeEnum(d)
	case ast.DeclConst:
		return a.analyzeConst(d)
	default:
		a.report(diag.SemaUnsupportedDecl, d.Span, "unsupported declaration kind %d", d.Kind)
		return false
	}
}

// analyzeImport registers a module alias. The alias defaults to the last
// path segment.
func (a *Analyzer) analyzeImport(d *ast.Decl) bool {
	a.stats.NodesAnalyzed.Add(1)
	imp := d.Import
	if imp == nil || imp.Module == "" {
		a.report(diag.SemaInternal, d.Span, "import declaration without a module path")
		return false
	}
	alias := imp.Alias
	if alias == "" {
		alias = imp.Module
		if i := strings.LastIndexByte(alias, '/'); i >= 0 {
			alias = alias[i+1:]
		}
	}
	if a.aliases.Has(alias) {
		a.report(diag.SemaRedeclaration, d.Span, "module alias '%s' is already in use", alias)
		return false
	}
	a.aliases.Register(alias, imp.Module)
	return true
}

// knownAnnotations is the closed annotation vocabulary. Unknown annotations
// are a warning by default and an error in strict mode.
var knownAnnotations = map[string]bool{
	ast.AnnotationNonDeterministic: true,
	"packed":                       true,
	"deprecated":                   true,
}

func (a *Analyzer) analyzeAnnotations(list []*ast.Annotation) {
	for _, ann := range list {
		if ann == nil {
			continue
		}
		if knownAnnotations[ann.Name] {
			continue
		}
		if a.cfg.StrictMode {
			a.report(diag.SemaMissingAnnotation, ann.Span, "unknown annotation #[%s]", ann.Name)
		} else {
			a.warn(diag.SemaInfo, ann.Span, "unknown annotation #[%s]", ann.Name)
		}
	}
}

func declVisibility(v ast.Visibility) symbols.Visibility {
	if v == ast.Public {
		return symbols.Public
	}
	return symbols.Private
}
