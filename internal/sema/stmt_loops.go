package sema

import (
	"vega/internal/ast"
	"vega/internal/diag"
	"vega/internal/symbols"
	"vega/internal/types"
)

// analyzeFor binds the loop variable to the iterable's element type. The
// binding is immutable and scoped to the body.
func (a *Analyzer) analyzeFor(stmt *ast.Stmt) bool {
	f := stmt.For
	if f == nil || f.Iterable == nil || f.Body == nil {
		a.report(diag.SemaInternal, stmt.Span, "for statement without payload")
		return false
	}
	if !a.analyzeExpr(f.Iterable) {
		return false
	}
	iter := a.ExpressionType(f.Iterable)
	t, ok := a.types.Lookup(iter)
	if !ok || (t.Kind != types.KindSlice && t.Kind != types.KindArray) {
		a.report(diag.SemaTypeMismatch, f.Iterable.Span,
			"for loops iterate slices and arrays, got %s", a.types.Label(iter))
		return false
	}

	a.pushScope()
	defer a.popScope()
	if f.Binding != "" {
		entry := &symbols.Entry{
			Name:  f.Binding,
			Kind:  symbols.KindVariable,
			Type:  t.Elem,
			Span:  stmt.Span,
			Flags: symbols.FlagInitialized,
		}
		if !a.declare(f.Binding, entry) {
			a.report(diag.SemaRedeclaration, stmt.Span,
				"'%s' is already declared in this scope", f.Binding)
			return false
		}
	}
	a.loopDepth++
	ok = a.analyzeStmt(f.Body)
	a.loopDepth--
	return ok
}

func (a *Analyzer) analyzeWhile(stmt *ast.Stmt) bool {
	w := stmt.While
	if w == nil || w.Cond == nil || w.Body == nil {
		a.report(diag.SemaInternal, stmt.Span, "while statement without payload")
		return false
	}
	ok := a.requireBoolCond(w.Cond, "while condition")
	a.loopDepth++
	if !a.analyzeStmt(w.Body) {
		ok = false
	}
	a.loopDepth--
	return ok
}

func (a *Analyzer) analyzeLoopControl(stmt *ast.Stmt) bool {
	if a.loopDepth > 0 {
		return true
	}
	a.report(diag.SemaBreakOutsideLoop, stmt.Span, "%s outside a loop", stmt.Kind)
	return false
}
