package sema

import (
	"vega/internal/ast"
	"vega/internal/diag"
	"vega/internal/source"
	"vega/internal/types"
)

func (a *Analyzer) analyzeBinary(expr *ast.Expr) bool {
	bin := expr.Binary
	if bin == nil || bin.Left == nil || bin.Right == nil {
		a.report(diag.SemaInternal, expr.Span, "binary node without operands")
		return false
	}
	leftOK := a.analyzeExpr(bin.Left)
	// the right operand infers its literals from the left operand's type
	if leftOK {
		a.pushExpected(a.ExpressionType(bin.Left))
	}
	rightOK := a.analyzeExpr(bin.Right)
	if leftOK {
		a.popExpected()
	}
	if !leftOK || !rightOK {
		return false
	}
	expr.IsConstantExpr = bin.Left.IsConstantExpr && bin.Right.IsConstantExpr
	expr.HasSideEffects = bin.Left.HasSideEffects || bin.Right.HasSideEffects

	left := a.ExpressionType(bin.Left)
	right := a.ExpressionType(bin.Right)
	b := a.types.Builtins()

	switch {
	case bin.Op.IsLogical():
		if !a.types.Equal(left, b.Bool) || !a.types.Equal(right, b.Bool) {
			a.report(diag.SemaInvalidBinaryOp, expr.Span,
				"operator %s needs bool operands, got %s and %s",
				bin.Op, a.types.Label(left), a.types.Label(right))
			return false
		}
		a.SetExpressionType(expr, b.Bool)
		return true
	case bin.Op.IsComparison():
		if _, ok := a.commonOperandType(bin.Op, left, right, expr.Span); !ok {
			return false
		}
		a.SetExpressionType(expr, b.Bool)
		return true
	default:
		result, ok := a.arithmeticResult(bin.Op, left, right, expr.Span)
		if !ok {
			return false
		}
		a.SetExpressionType(expr, result)
		return true
	}
}

// commonOperandType checks that two comparison operands share a type,
// applying integer promotion first. Equality additionally admits bool and
// string operands; ordering admits numerics and strings.
func (a *Analyzer) commonOperandType(op ast.BinOp, left, right types.TypeID, span source.Span) (types.TypeID, bool) {
	if promoted, ok, mixed := a.promoteIntegers(left, right); ok {
		return promoted, true
	} else if mixed {
		a.report(diag.SemaMixedSignedness, span,
			"cannot compare %s with %s without an explicit cast",
			a.types.Label(left), a.types.Label(right))
		return types.NoTypeID, false
	}
	if !a.types.Equal(left, right) {
		a.report(diag.SemaInvalidBinaryOp, span,
			"operator %s needs matching operand types, got %s and %s",
			op, a.types.Label(left), a.types.Label(right))
		return types.NoTypeID, false
	}
	kind := a.types.Kind(left)
	eqOnly := op == ast.BinEq || op == ast.BinNotEq
	switch kind {
	case types.KindFloat, types.KindString:
		return left, true
	case types.KindBool:
		if eqOnly {
			return left, true
		}
	case types.KindEnum:
		if eqOnly {
			return left, true
		}
	}
	a.report(diag.SemaInvalidBinaryOp, span,
		"operator %s is not defined for %s", op, a.types.Label(left))
	return types.NoTypeID, false
}

// arithmeticResult types +, -, *, /, %, bitwise ops and shifts.
func (a *Analyzer) arithmeticResult(op ast.BinOp, left, right types.TypeID, span source.Span) (types.TypeID, bool) {
	leftKind := a.types.Kind(left)
	rightKind := a.types.Kind(right)

	// shifts keep the left operand's type; the shift amount is any integer
	if op == ast.BinShl || op == ast.BinShr {
		if !leftKind.IsInteger() || !rightKind.IsInteger() {
			a.report(diag.SemaInvalidBinaryOp, span,
				"operator %s needs integer operands, got %s and %s",
				op, a.types.Label(left), a.types.Label(right))
			return types.NoTypeID, false
		}
		return left, true
	}

	if promoted, ok, mixed := a.promoteIntegers(left, right); ok {
		return promoted, true
	} else if mixed {
		a.report(diag.SemaMixedSignedness, span,
			"cannot mix %s and %s in arithmetic without an explicit cast",
			a.types.Label(left), a.types.Label(right))
		return types.NoTypeID, false
	}

	bitwise := op == ast.BinBitAnd || op == ast.BinBitOr || op == ast.BinBitXor
	if bitwise {
		a.report(diag.SemaInvalidBinaryOp, span,
			"operator %s needs integer operands, got %s and %s",
			op, a.types.Label(left), a.types.Label(right))
		return types.NoTypeID, false
	}

	if leftKind == types.KindFloat && a.types.Equal(left, right) {
		return left, true
	}
	if leftKind == types.KindString && rightKind == types.KindString && op == ast.BinAdd {
		return left, true
	}
	a.report(diag.SemaInvalidBinaryOp, span,
		"operator %s is not defined for %s and %s",
		op, a.types.Label(left), a.types.Label(right))
	return types.NoTypeID, false
}

// promoteIntegers applies the integer promotion rule: both operands must be
// integers of the same signedness, and the wider width wins. The third
// result reports the mixed-signedness case so callers can emit the
// dedicated diagnostic.
func (a *Analyzer) promoteIntegers(left, right types.TypeID) (types.TypeID, bool, bool) {
	lSigned, lWidth, lInt := a.intClass(left)
	rSigned, rWidth, rInt := a.intClass(right)
	if !lInt || !rInt {
		return types.NoTypeID, false, false
	}
	if lSigned != rSigned {
		return types.NoTypeID, false, true
	}
	if lWidth >= rWidth {
		return left, true, false
	}
	return right, true, false
}

// intClass flattens isize/usize into 64-bit signed/unsigned for promotion.
func (a *Analyzer) intClass(id types.TypeID) (signed bool, width int, isInt bool) {
	t, ok := a.types.Lookup(id)
	if !ok {
		return false, 0, false
	}
	switch t.Kind {
	case types.KindInt:
		return true, int(t.Width), true
	case types.KindUint:
		return false, int(t.Width), true
	case types.KindIsize:
		return true, 64, true
	case types.KindUsize:
		return false, 64, true
	default:
		return false, 0, false
	}
}

func (a *Analyzer) analyzeUnary(expr *ast.Expr) bool {
	un := expr.Unary
	if un == nil || un.Operand == nil {
		a.report(diag.SemaInternal, expr.Span, "unary node without operand")
		return false
	}
	if !a.analyzeExpr(un.Operand) {
		return false
	}
	expr.IsConstantExpr = un.Operand.IsConstantExpr
	expr.HasSideEffects = un.Operand.HasSideEffects

	operand := a.ExpressionType(un.Operand)
	t, ok := a.types.Lookup(operand)
	if !ok {
		return false
	}
	b := a.types.Builtins()
	switch un.Op {
	case ast.UnNeg:
		if t.Kind == types.KindFloat || (t.Kind.IsInteger() && t.Kind.IsSigned()) {
			a.SetExpressionType(expr, operand)
			return true
		}
		a.report(diag.SemaInvalidUnaryOp, expr.Span,
			"cannot negate %s", a.types.Label(operand))
		return false
	case ast.UnNot:
		if t.Kind == types.KindBool {
			a.SetExpressionType(expr, b.Bool)
			return true
		}
		a.report(diag.SemaInvalidUnaryOp, expr.Span,
			"operator ! needs a bool operand, got %s", a.types.Label(operand))
		return false
	case ast.UnBitNot:
		if t.Kind.IsInteger() {
			a.SetExpressionType(expr, operand)
			return true
		}
		a.report(diag.SemaInvalidUnaryOp, expr.Span,
			"operator ~ needs an integer operand, got %s", a.types.Label(operand))
		return false
	case ast.UnDeref:
		if t.Kind != types.KindPointer {
			a.report(diag.SemaInvalidUnaryOp, expr.Span,
				"cannot dereference %s", a.types.Label(operand))
			return false
		}
		if !a.inUnsafe {
			a.report(diag.SemaUnsafeRequired, expr.Span,
				"pointer dereference requires an unsafe block")
			return false
		}
		expr.IsLValue = true
		expr.IsConstantExpr = false
		a.SetExpressionType(expr, t.Elem)
		return true
	case ast.UnAddrOf:
		if !un.Operand.IsLValue {
			a.report(diag.SemaInvalidUnaryOp, expr.Span,
				"cannot take the address of a non-lvalue expression")
			return false
		}
		expr.IsConstantExpr = false
		a.SetExpressionType(expr, a.types.Intern(types.MakePointer(operand)))
		return true
	default:
		a.report(diag.SemaInvalidUnaryOp, expr.Span, "unknown unary operator %d", un.Op)
		return false
	}
}
