package sema

import (
	"vega/internal/ast"
	"vega/internal/diag"
	"vega/internal/source"
	"vega/internal/symbols"
	"vega/internal/types"
)

// analyzeStmt validates one statement. Sibling statements keep being
// analyzed after a failure so one run reports as much as possible.
func (a *Analyzer) analyzeStmt(stmt *ast.Stmt) bool {
	if stmt == nil {
		return false
	}
	a.stats.NodesAnalyzed.Add(1)
	switch stmt.Kind {
	case ast.StmtBlock:
		return a.analyzeBlock(stmt)
	case ast.StmtExpr:
		if stmt.Expr == nil {
			a.report(diag.SemaInternal, stmt.Span, "expression statement without payload")
			return false
		}
		return a.analyzeExpr(stmt.Expr)
	case ast.StmtLet:
		return a.analyzeLet(stmt)
	case ast.StmtAssign:
		return a.analyzeAssign(stmt)
	case ast.StmtReturn:
		return a.analyzeReturn(stmt)
	case ast.StmtIf:
		return a.analyzeIf(stmt)
	case ast.StmtIfLet:
		return a.analyzeIfLet(stmt)
	case ast.StmtMatch:
		return a.analyzeMatchStmt(stmt)
	case ast.StmtFor:
		return a.analyzeFor(stmt)
	case ast.StmtWhile:
		return a.analyzeWhile(stmt)
	case ast.StmtBreak, ast.StmtContinue:
		return a.analyzeLoopControl(stmt)
	case ast.StmtSpawn, ast.StmtSpawnWithHandle:
		return a.analyzeSpawn(stmt)
	case ast.StmtAwait:
		return a.analyzeAwaitStmt(stmt)
	case ast.StmtUnsafe:
		return a.analyzeUnsafe(stmt)
	default:
		a.report(diag.SemaUnsupportedStmt, stmt.Span, "unsupported statement kind %d", stmt.Kind)
		return false
	}
}

// analyzeBlock opens a scope and analyzes every statement in it, even after
// errors.
func (a *Analyzer) analyzeBlock(stmt *ast.Stmt) bool {
	if stmt.Block == nil {
		a.report(diag.SemaInternal, stmt.Span, "block statement without payload")
		return false
	}
	a.pushScope()
	defer a.popScope()
	all := true
	for _, s := range stmt.Block.Stmts {
		if !a.analyzeStmt(s) {
			all = false
		}
	}
	return all
}

// analyzeLet binds a new variable. With both a declared type and an
// initializer the initializer must fit the declared type; with only an
// initializer the variable takes its type; a declared type alone leaves
// the variable uninitialized.
func (a *Analyzer) analyzeLet(stmt *ast.Stmt) bool {
	let := stmt.Let
	if let == nil {
		a.report(diag.SemaInternal, stmt.Span, "let statement without payload")
		return false
	}
	declared := types.NoTypeID
	if let.Type != nil {
		declared = a.resolveTypeNode(let.Type)
		if !declared.IsValid() {
			return false
		}
	}
	varType := declared
	initialized := false
	if let.Value != nil {
		if declared.IsValid() {
			a.pushExpected(declared)
		}
		ok := a.analyzeExpr(let.Value)
		if declared.IsValid() {
			a.popExpected()
		}
		if !ok {
			return false
		}
		got := a.ExpressionType(let.Value)
		if declared.IsValid() {
			if !a.requireAssignable(declared, got, let.Value.Span, "initializer for '"+let.Name+"'") {
				return false
			}
		} else {
			varType = got
		}
		initialized = true
	}
	if !varType.IsValid() {
		a.report(diag.SemaTypeInferenceFailed, stmt.Span,
			"cannot infer the type of '%s' without a type or initializer", let.Name)
		return false
	}

	entry := &symbols.Entry{
		Name:     let.Name,
		Kind:     symbols.KindVariable,
		Type:     varType,
		DeclStmt: stmt,
		Span:     stmt.Span,
	}
	if let.Mutable {
		entry.Set(symbols.FlagMutable)
	}
	if initialized {
		entry.Set(symbols.FlagInitialized)
	}
	if !a.declare(let.Name, entry) {
		rb := a.errorAt(diag.SemaRedeclaration, stmt.Span,
			"'%s' is already declared in this scope", let.Name)
		if prev := a.current.Lookup(let.Name); prev != nil {
			rb.WithNote(prev.Span, "previous declaration is here")
		}
		rb.Emit()
		return false
	}
	return true
}

// analyzeAssign requires a mutable lvalue target. Bindings are immutable
// unless declared mut.
func (a *Analyzer) analyzeAssign(stmt *ast.Stmt) bool {
	asg := stmt.Assign
	if asg == nil || asg.Target == nil || asg.Value == nil {
		a.report(diag.SemaInternal, stmt.Span, "assignment without payload")
		return false
	}
	if !a.analyzeExpr(asg.Target) {
		return false
	}
	if !asg.Target.IsLValue {
		a.report(diag.SemaInvalidExpression, asg.Target.Span,
			"left side of assignment is not assignable")
		return false
	}
	// writing through a projection (field, index) of an immutable binding
	// is an ownership violation; the direct case is always an error
	direct := asg.Target.Kind == ast.ExprIdent
	if sym := a.assignedSymbol(asg.Target); sym != nil {
		if !sym.IsMutable() && sym.Has(symbols.FlagInitialized) && (direct || a.cfg.CheckOwnership) {
			a.report(diag.SemaImmutableAssign, asg.Target.Span,
				"cannot assign to immutable binding '%s'", sym.Name)
			return false
		}
		sym.Set(symbols.FlagInitialized)
	}
	target := a.ExpressionType(asg.Target)
	a.pushExpected(target)
	ok := a.analyzeExpr(asg.Value)
	a.popExpected()
	if !ok {
		return false
	}
	return a.requireAssignable(target, a.ExpressionType(asg.Value), asg.Value.Span, "assignment")
}

// assignedSymbol finds the root binding behind an lvalue chain, nil when
// the target is not rooted in a named symbol.
func (a *Analyzer) assignedSymbol(expr *ast.Expr) *symbols.Entry {
	for expr != nil {
		switch expr.Kind {
		case ast.ExprIdent:
			if expr.Ident == nil {
				return nil
			}
			return a.current.Resolve(source.NormalizeIdent(expr.Ident.Name))
		case ast.ExprFieldAccess:
			if expr.Field == nil {
				return nil
			}
			expr = expr.Field.Object
		case ast.ExprIndex:
			if expr.Index == nil {
				return nil
			}
			expr = expr.Index.Object
		case ast.ExprGroup:
			if expr.Group == nil {
				return nil
			}
			expr = expr.Group.Inner
		default:
			return nil
		}
	}
	return nil
}

func (a *Analyzer) analyzeReturn(stmt *ast.Stmt) bool {
	ret := stmt.Return
	if ret == nil {
		a.report(diag.SemaInternal, stmt.Span, "return statement without payload")
		return false
	}
	if a.currentFn == nil {
		a.report(diag.SemaUnsupportedStmt, stmt.Span, "return outside a function body")
		return false
	}
	a.currentFn.sawReturn = true
	want := a.currentFn.returnType
	b := a.types.Builtins()
	if ret.Value == nil {
		if a.types.Equal(want, b.Void) || a.types.Equal(want, b.Unit) {
			return true
		}
		a.report(diag.SemaTypeMismatch, stmt.Span,
			"function '%s' returns %s, bare return needs void",
			a.currentFn.name, a.types.Label(want))
		return false
	}
	a.pushExpected(want)
	ok := a.analyzeExpr(ret.Value)
	a.popExpected()
	if !ok {
		return false
	}
	return a.requireAssignable(want, a.ExpressionType(ret.Value), ret.Value.Span,
		"return value of '"+a.currentFn.name+"'")
}

func (a *Analyzer) analyzeIf(stmt *ast.Stmt) bool {
	ifs := stmt.If
	if ifs == nil || ifs.Cond == nil || ifs.Then == nil {
		a.report(diag.SemaInternal, stmt.Span, "if statement without payload")
		return false
	}
	ok := a.requireBoolCond(ifs.Cond, "if condition")
	if !a.analyzeStmt(ifs.Then) {
		ok = false
	}
	if ifs.Else != nil && !a.analyzeStmt(ifs.Else) {
		ok = false
	}
	return ok
}

// analyzeIfLet destructures the scrutinee; pattern bindings are visible in
// the then-branch only.
func (a *Analyzer) analyzeIfLet(stmt *ast.Stmt) bool {
	il := stmt.IfLet
	if il == nil || il.Pattern == nil || il.Scrutinee == nil || il.Then == nil {
		a.report(diag.SemaInternal, stmt.Span, "if-let statement without payload")
		return false
	}
	if !a.analyzeExpr(il.Scrutinee) {
		return false
	}
	scrutinee := a.ExpressionType(il.Scrutinee)

	a.pushScope()
	ok := a.analyzePattern(il.Pattern, scrutinee)
	if ok {
		ok = a.analyzeStmt(il.Then)
	}
	a.popScope()

	if il.Else != nil && !a.analyzeStmt(il.Else) {
		ok = false
	}
	return ok
}

func (a *Analyzer) analyzeMatchStmt(stmt *ast.Stmt) bool {
	m := stmt.Match
	if m == nil || m.Scrutinee == nil {
		a.report(diag.SemaInternal, stmt.Span, "match statement without payload")
		return false
	}
	if !a.analyzeExpr(m.Scrutinee) {
		return false
	}
	scrutinee := a.ExpressionType(m.Scrutinee)
	all := true
	for _, arm := range m.Arms {
		if _, ok := a.analyzeMatchArm(arm, scrutinee, false); !ok {
			all = false
		}
	}
	return all
}

func (a *Analyzer) requireBoolCond(cond *ast.Expr, what string) bool {
	if !a.analyzeExpr(cond) {
		return false
	}
	got := a.ExpressionType(cond)
	if !a.types.Equal(got, a.types.Builtins().Bool) {
		a.report(diag.SemaTypeMismatch, cond.Span,
			"%s must be bool, got %s", what, a.types.Label(got))
		return false
	}
	return true
}

// blockReturnsNever reports whether every path through stmt leaves the
// function, either by returning or by reaching a Never-typed expression.
// Match statements count only when an irrefutable arm makes the arm list
// exhaustive; exhaustiveness over variants is not computed.
func (a *Analyzer) blockReturnsNever(stmt *ast.Stmt) bool {
	if stmt == nil {
		return false
	}
	switch stmt.Kind {
	case ast.StmtReturn:
		return true
	case ast.StmtExpr:
		if stmt.Expr == nil {
			return false
		}
		return a.types.Kind(a.ExpressionType(stmt.Expr)) == types.KindNever
	case ast.StmtBlock:
		if stmt.Block == nil {
			return false
		}
		for _, s := range stmt.Block.Stmts {
			if a.blockReturnsNever(s) {
				return true
			}
		}
		return false
	case ast.StmtIf:
		ifs := stmt.If
		return ifs != nil && ifs.Else != nil &&
			a.blockReturnsNever(ifs.Then) && a.blockReturnsNever(ifs.Else)
	case ast.StmtIfLet:
		il := stmt.IfLet
		return il != nil && il.Else != nil &&
			a.blockReturnsNever(il.Then) && a.blockReturnsNever(il.Else)
	case ast.StmtMatch:
		m := stmt.Match
		if m == nil || len(m.Arms) == 0 {
			return false
		}
		irrefutable := false
		for _, arm := range m.Arms {
			if arm == nil {
				return false
			}
			body := arm.Body
			if body == nil || !a.blockReturnsNever(body) {
				return false
			}
			if arm.Guard == nil && arm.Pattern != nil &&
				(arm.Pattern.Kind == ast.PatWildcard || arm.Pattern.Kind == ast.PatBinding) {
				irrefutable = true
			}
		}
		return irrefutable
	case ast.StmtUnsafe:
		return stmt.Unsafe != nil && a.blockReturnsNever(stmt.Unsafe.Body)
	default:
		return false
	}
}
