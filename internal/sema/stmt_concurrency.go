package sema

import (
	"vega/internal/ast"
	"vega/internal/diag"
	"vega/internal/source"
	"vega/internal/symbols"
	"vega/internal/types"
)

// The concurrency model is tiered. Tier 1 (spawn, spawn_with_handle,
// await) is deterministic enough to be always allowed. Tier 2 is anything
// reaching a #[non_deterministic] function; that requirement propagates
// through calls and is enforced in checkCallDeterminism.

// analyzeTier1ConcurrencyFeature is the admission point for tier-1
// primitives. They are unconditionally allowed; the hook exists so every
// concurrency construct funnels through one place.
func (a *Analyzer) analyzeTier1ConcurrencyFeature(string, source.Span) bool {
	return true
}

// analyzeSpawn handles both spawn f(...) and spawn_with_handle h = f(...).
// The spawned expression must be a call; with a handle the binding gets
// TaskHandle<R> where R is the call's result type.
func (a *Analyzer) analyzeSpawn(stmt *ast.Stmt) bool {
	sp := stmt.Spawn
	if sp == nil || sp.Call == nil {
		a.report(diag.SemaInternal, stmt.Span, "spawn statement without payload")
		return false
	}
	if !a.analyzeTier1ConcurrencyFeature(stmt.Kind.String(), stmt.Span) {
		return false
	}
	if sp.Call.Kind != ast.ExprCall && sp.Call.Kind != ast.ExprAssociatedCall {
		a.report(diag.SemaInvalidExpression, sp.Call.Span,
			"spawn needs a function call, got a %s expression", sp.Call.Kind)
		return false
	}
	if !a.analyzeExpr(sp.Call) {
		return false
	}
	if stmt.Kind != ast.StmtSpawnWithHandle {
		return true
	}
	if sp.HandleName == "" {
		a.report(diag.SemaInternal, stmt.Span, "spawn_with_handle without a binding name")
		return false
	}
	result := a.ExpressionType(sp.Call)
	handle := a.types.Intern(types.MakeTaskHandle(result))
	entry := &symbols.Entry{
		Name:     sp.HandleName,
		Kind:     symbols.KindVariable,
		Type:     handle,
		DeclStmt: stmt,
		Span:     stmt.Span,
		Flags:    symbols.FlagInitialized,
	}
	if !a.declare(sp.HandleName, entry) {
		a.report(diag.SemaRedeclaration, stmt.Span,
			"'%s' is already declared in this scope", sp.HandleName)
		return false
	}
	return true
}

// analyzeAwaitStmt validates a statement-position await; the result is
// discarded.
func (a *Analyzer) analyzeAwaitStmt(stmt *ast.Stmt) bool {
	aw := stmt.Await
	if aw == nil || aw.Handle == nil {
		a.report(diag.SemaInternal, stmt.Span, "await statement without payload")
		return false
	}
	if !a.analyzeTier1ConcurrencyFeature("await", stmt.Span) {
		return false
	}
	if !a.analyzeExpr(aw.Handle) {
		return false
	}
	handleType := a.ExpressionType(aw.Handle)
	tt, ok := a.types.Lookup(handleType)
	if !ok || tt.Kind != types.KindTaskHandle {
		a.report(diag.SemaAwaitNotHandle, aw.Handle.Span,
			"await needs a TaskHandle, got %s", a.types.Label(handleType))
		return false
	}
	return true
}

// analyzeUnsafe runs the body inside an unsafe context. Unsafe blocks can
// be disabled wholesale by configuration.
func (a *Analyzer) analyzeUnsafe(stmt *ast.Stmt) bool {
	u := stmt.Unsafe
	if u == nil || u.Body == nil {
		a.report(diag.SemaInternal, stmt.Span, "unsafe statement without payload")
		return false
	}
	if !a.cfg.AllowUnsafe && !a.cfg.TestMode {
		a.report(diag.SemaUnsafeRequired, stmt.Span,
			"unsafe blocks are disabled by configuration")
		return false
	}
	return a.withUnsafe(func() bool {
		return a.analyzeStmt(u.Body)
	})
}
