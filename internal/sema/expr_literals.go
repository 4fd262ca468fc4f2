package sema

import (
	"vega/internal/ast"
	"vega/internal/diag"
	"vega/internal/types"
)

// analyzeLiteral types a literal node. Numeric literals adopt the expected
// type when an integer or float context is in force; otherwise integers
// default to i32 and floats to f64.
func (a *Analyzer) analyzeLiteral(expr *ast.Expr) bool {
	lit := expr.Lit
	if lit == nil {
		a.report(diag.SemaInternal, expr.Span, "literal node without payload")
		return false
	}
	expr.IsConstantExpr = true
	b := a.types.Builtins()
	switch lit.Kind {
	case ast.LitInt:
		target := b.I32
		if exp := a.expectedType(); exp.IsValid() {
			if kind := a.types.Kind(exp); kind.IsInteger() {
				target = exp
			} else if kind == types.KindFloat {
				a.SetExpressionType(expr, exp)
				return true
			}
		}
		if !a.intLiteralFits(lit.Int, target) {
			a.report(diag.SemaInvalidLiteral, expr.Span,
				"integer literal %d out of range for %s", lit.Int, a.types.Label(target))
			return false
		}
		a.SetExpressionType(expr, target)
		return true
	case ast.LitFloat:
		target := b.F64
		if exp := a.expectedType(); exp.IsValid() && a.types.Kind(exp) == types.KindFloat {
			target = exp
		}
		a.SetExpressionType(expr, target)
		return true
	case ast.LitBool:
		a.SetExpressionType(expr, b.Bool)
		return true
	case ast.LitString:
		a.SetExpressionType(expr, b.String)
		return true
	case ast.LitUnit:
		a.SetExpressionType(expr, b.Unit)
		return true
	case ast.LitChar:
		return a.analyzeCharLiteral(expr, lit)
	default:
		a.report(diag.SemaInvalidLiteral, expr.Span, "unknown literal kind %d", lit.Kind)
		return false
	}
}

// analyzeCharLiteral validates the scalar value and demands an explicit
// integer type context. Test mode relaxes the context requirement and
// defaults the literal to u32.
func (a *Analyzer) analyzeCharLiteral(expr *ast.Expr, lit *ast.LitExpr) bool {
	if lit.Char > 0x10FFFF || (lit.Char >= 0xD800 && lit.Char <= 0xDFFF) {
		a.report(diag.SemaInvalidLiteral, expr.Span,
			"char literal U+%04X is not a Unicode scalar value", lit.Char)
		return false
	}
	exp := a.expectedType()
	if !exp.IsValid() || !a.types.Kind(exp).IsInteger() {
		if !a.cfg.TestMode {
			a.report(diag.SemaCharNeedsContext, expr.Span,
				"char literal needs an explicit integer type context")
			return false
		}
		exp = a.types.Builtins().U32
	}
	if !a.intLiteralFits(int64(lit.Char), exp) {
		a.report(diag.SemaInvalidLiteral, expr.Span,
			"char literal U+%04X out of range for %s", lit.Char, a.types.Label(exp))
		return false
	}
	a.SetExpressionType(expr, exp)
	return true
}

// intLiteralFits reports whether v is representable in the integer type id.
func (a *Analyzer) intLiteralFits(v int64, id types.TypeID) bool {
	t, ok := a.types.Lookup(id)
	if !ok {
		return false
	}
	switch t.Kind {
	case types.KindInt:
		switch t.Width {
		case types.Width8:
			return v >= -128 && v <= 127
		case types.Width16:
			return v >= -32768 && v <= 32767
		case types.Width32:
			return v >= -2147483648 && v <= 2147483647
		default:
			return true // i64 and i128 hold any literal value
		}
	case types.KindIsize:
		return true
	case types.KindUint:
		if v < 0 {
			return false
		}
		switch t.Width {
		case types.Width8:
			return v <= 255
		case types.Width16:
			return v <= 65535
		case types.Width32:
			return v <= 4294967295
		default:
			return true
		}
	case types.KindUsize:
		return v >= 0
	default:
		return false
	}
}
