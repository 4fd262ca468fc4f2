package sema

import (
	"vega/internal/ast"
	"vega/internal/diag"
	"vega/internal/types"
)

// analyzeCast validates value as T against the allowed conversion pairs.
// Numeric casts are always permitted; anything involving raw pointers
// needs an unsafe context.
func (a *Analyzer) analyzeCast(expr *ast.Expr) bool {
	cast := expr.Cast
	if cast == nil || cast.Value == nil {
		a.report(diag.SemaInternal, expr.Span, "cast node without payload")
		return false
	}
	target := a.resolveTypeNode(cast.Target)
	if !target.IsValid() {
		return false
	}
	a.pushExpected(target)
	valueOK := a.analyzeExpr(cast.Value)
	a.popExpected()
	if !valueOK {
		return false
	}
	source := a.ExpressionType(cast.Value)
	expr.IsConstantExpr = cast.Value.IsConstantExpr
	expr.HasSideEffects = cast.Value.HasSideEffects

	if a.types.Equal(source, target) {
		a.SetExpressionType(expr, target)
		return true
	}
	srcKind := a.types.Kind(source)
	dstKind := a.types.Kind(target)

	switch {
	case srcKind.IsNumeric() && dstKind.IsNumeric():
		a.SetExpressionType(expr, target)
		return true
	case srcKind == types.KindEnum && dstKind.IsInteger():
		// the variant tag, explicit and lossy by construction
		a.SetExpressionType(expr, target)
		return true
	case srcKind == types.KindPointer || dstKind == types.KindPointer:
		okPair := (srcKind == types.KindPointer && dstKind == types.KindPointer) ||
			(srcKind == types.KindPointer && dstKind == types.KindUsize) ||
			(srcKind == types.KindUsize && dstKind == types.KindPointer)
		if !okPair {
			break
		}
		if !a.inUnsafe {
			a.report(diag.SemaUnsafeRequired, expr.Span,
				"pointer cast requires an unsafe block")
			return false
		}
		expr.IsConstantExpr = false
		a.SetExpressionType(expr, target)
		return true
	}
	a.report(diag.SemaInvalidCast, expr.Span,
		"cannot cast %s to %s", a.types.Label(source), a.types.Label(target))
	return false
}
