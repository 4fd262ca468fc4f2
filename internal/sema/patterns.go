package sema

import (
	"vega/internal/ast"
	"vega/internal/diag"
	"vega/internal/symbols"
	"vega/internal/types"
)

// analyzeMatchExpr types a match used as an expression: every arm yields a
// value and all arms must agree on one type (Never arms coerce).
// Exhaustiveness is not checked; unmatched scrutinees fault at runtime.
func (a *Analyzer) analyzeMatchExpr(expr *ast.Expr) bool {
	m := expr.Match
	if m == nil || m.Scrutinee == nil {
		a.report(diag.SemaInternal, expr.Span, "match node without payload")
		return false
	}
	if len(m.Arms) == 0 {
		a.report(diag.SemaInvalidExpression, expr.Span, "match expression needs at least one arm")
		return false
	}
	if !a.analyzeExpr(m.Scrutinee) {
		return false
	}
	scrutinee := a.ExpressionType(m.Scrutinee)

	result := types.NoTypeID
	all := true
	for _, arm := range m.Arms {
		armType, ok := a.analyzeMatchArm(arm, scrutinee, true)
		if !ok {
			all = false
			continue
		}
		switch {
		case !result.IsValid() || a.types.Kind(result) == types.KindNever:
			result = armType
		case a.types.Kind(armType) == types.KindNever:
			// a diverging arm agrees with anything
		case !a.typeAssignable(result, armType):
			a.report(diag.SemaTypeMismatch, arm.Span,
				"match arms disagree: %s vs %s", a.types.Label(result), a.types.Label(armType))
			all = false
		}
	}
	if !all || !result.IsValid() {
		return false
	}
	a.SetExpressionType(expr, result)
	return true
}

// analyzeMatchArm opens an arm scope, binds the pattern, checks the guard
// and analyzes the arm body. In expression form the arm's value type is
// returned; statement-form arms yield Unit.
func (a *Analyzer) analyzeMatchArm(arm *ast.MatchArm, scrutinee types.TypeID, wantValue bool) (types.TypeID, bool) {
	if arm == nil || arm.Pattern == nil {
		return types.NoTypeID, false
	}
	a.pushScope()
	defer a.popScope()

	if !a.analyzePattern(arm.Pattern, scrutinee) {
		return types.NoTypeID, false
	}
	if arm.Guard != nil {
		if !a.analyzeExpr(arm.Guard) {
			return types.NoTypeID, false
		}
		guard := a.ExpressionType(arm.Guard)
		if !a.types.Equal(guard, a.types.Builtins().Bool) {
			a.report(diag.SemaTypeMismatch, arm.Guard.Span,
				"match guard must be bool, got %s", a.types.Label(guard))
			return types.NoTypeID, false
		}
	}
	switch {
	case arm.Value != nil:
		if !a.analyzeExpr(arm.Value) {
			return types.NoTypeID, false
		}
		return a.ExpressionType(arm.Value), true
	case arm.Body != nil:
		if !a.analyzeStmt(arm.Body) {
			return types.NoTypeID, false
		}
		if wantValue {
			if a.blockReturnsNever(arm.Body) {
				return a.types.Builtins().Never, true
			}
			a.report(diag.SemaInvalidExpression, arm.Span,
				"match arm in expression position must yield a value")
			return types.NoTypeID, false
		}
		return a.types.Builtins().Unit, true
	default:
		a.report(diag.SemaInvalidExpression, arm.Span, "match arm without a body")
		return types.NoTypeID, false
	}
}

// analyzePattern checks a pattern against the scrutinee type and declares
// its bindings in the current (arm) scope.
func (a *Analyzer) analyzePattern(p *ast.Pattern, scrutinee types.TypeID) bool {
	if p == nil {
		return false
	}
	a.stats.NodesAnalyzed.Add(1)
	switch p.Kind {
	case ast.PatWildcard:
		return true
	case ast.PatBinding:
		entry := &symbols.Entry{
			Name:  p.Name,
			Kind:  symbols.KindVariable,
			Type:  scrutinee,
			Span:  p.Span,
			Flags: symbols.FlagInitialized,
		}
		if !a.declare(p.Name, entry) {
			a.report(diag.SemaRedeclaration, p.Span,
				"'%s' is bound more than once in this pattern", p.Name)
			return false
		}
		return true
	case ast.PatLiteral:
		return a.analyzeLiteralPattern(p, scrutinee)
	case ast.PatTuple:
		ti, ok := a.types.TupleInfo(scrutinee)
		if !ok {
			a.report(diag.SemaInvalidPattern, p.Span,
				"tuple pattern cannot match %s", a.types.Label(scrutinee))
			return false
		}
		if len(p.Elems) != len(ti.Elems) {
			a.report(diag.SemaTupleArity, p.Span,
				"tuple pattern has %d elements, %s has %d",
				len(p.Elems), a.types.Label(scrutinee), len(ti.Elems))
			return false
		}
		ok = true
		for i, sub := range p.Elems {
			if !a.analyzePattern(sub, ti.Elems[i]) {
				ok = false
			}
		}
		return ok
	case ast.PatEnumVariant:
		return a.analyzeEnumPattern(p, scrutinee)
	default:
		a.report(diag.SemaInvalidPattern, p.Span, "unsupported pattern kind %d", p.Kind)
		return false
	}
}

func (a *Analyzer) analyzeLiteralPattern(p *ast.Pattern, scrutinee types.TypeID) bool {
	if p.Lit == nil {
		a.report(diag.SemaInvalidPattern, p.Span, "literal pattern without a literal")
		return false
	}
	kind := a.types.Kind(scrutinee)
	switch p.Lit.Kind {
	case ast.LitInt, ast.LitChar:
		if kind.IsInteger() {
			return true
		}
	case ast.LitFloat:
		if kind == types.KindFloat {
			return true
		}
	case ast.LitBool:
		if kind == types.KindBool {
			return true
		}
	case ast.LitString:
		if kind == types.KindString {
			return true
		}
	}
	a.report(diag.SemaInvalidPattern, p.Span,
		"%s literal pattern cannot match %s", p.Lit.Kind, a.types.Label(scrutinee))
	return false
}

func (a *Analyzer) analyzeEnumPattern(p *ast.Pattern, scrutinee types.TypeID) bool {
	ei, ok := a.types.EnumInfo(scrutinee)
	if !ok {
		a.report(diag.SemaInvalidPattern, p.Span,
			"enum pattern cannot match %s", a.types.Label(scrutinee))
		return false
	}
	if p.EnumName != "" && p.EnumName != ei.Name {
		a.report(diag.SemaInvalidPattern, p.Span,
			"pattern names enum %s, scrutinee is %s", p.EnumName, ei.Name)
		return false
	}
	v := ei.VariantByName(p.Variant)
	if v == nil {
		a.report(diag.SemaUnknownVariant, p.Span,
			"enum %s has no variant '%s'", ei.Name, p.Variant)
		return false
	}
	if len(p.Payload) != len(v.Payload) {
		a.report(diag.SemaArityMismatch, p.Span,
			"variant %s.%s carries %d value(s), pattern binds %d",
			ei.Name, p.Variant, len(v.Payload), len(p.Payload))
		return false
	}
	ok = true
	for i, sub := range p.Payload {
		if !a.analyzePattern(sub, v.Payload[i]) {
			ok = false
		}
	}
	return ok
}
