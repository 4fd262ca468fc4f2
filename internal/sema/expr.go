package sema

import (
	"vega/internal/ast"
	"vega/internal/diag"
	"vega/internal/symbols"
	"vega/internal/types"
)

// analyzeExpr validates one expression subtree and attaches its type.
// A false return means the expression (or a required child) failed; sibling
// subtrees keep being analyzed by their callers so one run surfaces as many
// errors as feasible.
func (a *Analyzer) analyzeExpr(expr *ast.Expr) bool {
	if expr == nil {
		return false
	}
	a.stats.NodesAnalyzed.Add(1)
	switch expr.Kind {
	case ast.ExprLit:
		return a.analyzeLiteral(expr)
	case ast.ExprIdent:
		return a.analyzeIdent(expr)
	case ast.ExprBinary:
		return a.analyzeBinary(expr)
	case ast.ExprUnary:
		return a.analyzeUnary(expr)
	case ast.ExprCall, ast.ExprAssociatedCall:
		return a.analyzeCall(expr)
	case ast.ExprFieldAccess:
		return a.analyzeFieldAccess(expr)
	case ast.ExprIndex:
		return a.analyzeIndex(expr)
	case ast.ExprSlice:
		return a.analyzeSliceExpr(expr)
	case ast.ExprArrayLit:
		return a.analyzeArrayLiteral(expr)
	case ast.ExprRepeatedArray:
		return a.analyzeRepeatedArray(expr)
	case ast.ExprTupleLit:
		return a.analyzeTupleLiteral(expr)
	case ast.ExprStructLit:
		return a.analyzeStructLiteral(expr)
	case ast.ExprEnumLit:
		return a.analyzeEnumLiteral(expr)
	case ast.ExprCast:
		return a.analyzeCast(expr)
	case ast.ExprMatch:
		return a.analyzeMatchExpr(expr)
	case ast.ExprAwait:
		return a.analyzeAwait(expr)
	case ast.ExprGroup:
		return a.analyzeGroup(expr)
	case ast.ExprSizeof:
		return a.analyzeSizeof(expr)
	default:
		// no silent skip for unknown kinds, ever
		a.report(diag.SemaUnsupportedExpr, expr.Span, "unsupported expression kind %d", expr.Kind)
		return false
	}
}

func (a *Analyzer) analyzeIdent(expr *ast.Expr) bool {
	if expr.Ident == nil {
		a.report(diag.SemaInternal, expr.Span, "identifier node without payload")
		return false
	}
	sym := a.resolve(expr.Ident.Name)
	if sym == nil {
		a.report(diag.SemaUndeclaredName, expr.Span, "undefined symbol '%s'", expr.Ident.Name)
		return false
	}
	sym.Set(symbols.FlagUsed)
	switch sym.Kind {
	case symbols.KindVariable, symbols.KindParameter:
		expr.IsLValue = true
	case symbols.KindConst:
		if sym.Const == nil && sym.Decl != nil && !a.evalConstSymbol(sym) {
			return false
		}
		expr.IsConstantExpr = true
	}
	a.SetExpressionType(expr, sym.Type)
	return sym.Type.IsValid()
}

func (a *Analyzer) analyzeGroup(expr *ast.Expr) bool {
	if expr.Group == nil || expr.Group.Inner == nil {
		a.report(diag.SemaInvalidExpression, expr.Span, "empty grouping expression")
		return false
	}
	if !a.analyzeExpr(expr.Group.Inner) {
		return false
	}
	inner := expr.Group.Inner
	expr.IsLValue = inner.IsLValue
	expr.IsConstantExpr = inner.IsConstantExpr
	a.SetExpressionType(expr, a.ExpressionType(inner))
	return true
}

func (a *Analyzer) analyzeSizeof(expr *ast.Expr) bool {
	if expr.Sizeof == nil {
		a.report(diag.SemaInternal, expr.Span, "sizeof node without payload")
		return false
	}
	target := a.resolveTypeNode(expr.Sizeof.Target)
	if !target.IsValid() {
		return false
	}
	if _, ok := a.types.SizeOf(target); !ok {
		a.report(diag.SemaInvalidType, expr.Span, "%s has no statically known size", a.types.Label(target))
		return false
	}
	expr.IsConstantExpr = true
	a.SetExpressionType(expr, a.types.Builtins().Usize)
	return true
}

// analyzeAwait types an await expression. Await is a Tier-1 concurrency
// feature: always permitted, but still routed through the tier check for
// uniform instrumentation.
func (a *Analyzer) analyzeAwait(expr *ast.Expr) bool {
	if expr.Await == nil || expr.Await.Handle == nil {
		a.report(diag.SemaInvalidExpression, expr.Span, "await expression missing handle")
		return false
	}
	if !a.analyzeTier1ConcurrencyFeature("await", expr.Span) {
		return false
	}
	if !a.analyzeExpr(expr.Await.Handle) {
		return false
	}
	handleType := a.ExpressionType(expr.Await.Handle)
	tt, ok := a.types.Lookup(handleType)
	if !ok || tt.Kind != types.KindTaskHandle {
		a.report(diag.SemaAwaitNotHandle, expr.Await.Handle.Span,
			"await needs a TaskHandle, got %s", a.types.Label(handleType))
		return false
	}
	expr.HasSideEffects = true
	a.SetExpressionType(expr, tt.Elem)
	return true
}
