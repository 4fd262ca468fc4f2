package sema

import (
	"fmt"
	"math"

	"fortio.org/safecast"

	"vega/internal/ast"
	"vega/internal/source"
	"vega/internal/symbols"
)

// ValueKind tags a folded compile-time value.
type ValueKind uint8

const (
	ValueInvalid ValueKind = iota
	ValueInt
	ValueFloat
	ValueBool
	ValueString
)

func (k ValueKind) String() string {
	switch k {
	case ValueInt:
		return "int"
	case ValueFloat:
		return "float"
	case ValueBool:
		return "bool"
	case ValueString:
		return "string"
	default:
		return "invalid"
	}
}

// Value is a folded constant. Integer arithmetic wraps two's-complement on
// 64 bits, matching the target's runtime integer semantics.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Bool  bool
	Str   string
}

func IntValue(v int64) Value     { return Value{Kind: ValueInt, Int: v} }
func FloatValue(v float64) Value { return Value{Kind: ValueFloat, Float: v} }
func BoolValue(v bool) Value     { return Value{Kind: ValueBool, Bool: v} }
func StringValue(v string) Value { return Value{Kind: ValueString, Str: v} }

func (v Value) String() string {
	switch v.Kind {
	case ValueInt:
		return fmt.Sprintf("%d", v.Int)
	case ValueFloat:
		return fmt.Sprintf("%g", v.Float)
	case ValueBool:
		return fmt.Sprintf("%t", v.Bool)
	case ValueString:
		return fmt.Sprintf("%q", v.Str)
	default:
		return "<invalid>"
	}
}

// EvalConst attempts to fold an expression into a compile-time value.
// Returns false when the expression is not constant-foldable (non-const
// identifier, call, operand mismatch). Folding never mutates the AST; the
// only diagnostics it can emit come from on-demand constant evaluation,
// which reports dependency cycles.
func (a *Analyzer) EvalConst(expr *ast.Expr) (Value, bool) {
	if expr == nil {
		return Value{}, false
	}
	switch expr.Kind {
	case ast.ExprLit:
		return a.constLiteral(expr.Lit)
	case ast.ExprGroup:
		if expr.Group == nil {
			return Value{}, false
		}
		return a.EvalConst(expr.Group.Inner)
	case ast.ExprIdent:
		if expr.Ident == nil {
			return Value{}, false
		}
		sym := a.current.Resolve(source.NormalizeIdent(expr.Ident.Name))
		if sym == nil || sym.Kind != symbols.KindConst {
			return Value{}, false
		}
		// hoisted but not yet folded constants evaluate on demand; the
		// visiting state machine turns cycles into diagnostics
		if sym.Const == nil && sym.Decl != nil {
			if !a.evalConstSymbol(sym) {
				return Value{}, false
			}
		}
		if v, ok := sym.Const.(Value); ok {
			return v, true
		}
		return Value{}, false
	case ast.ExprUnary:
		if expr.Unary == nil {
			return Value{}, false
		}
		operand, ok := a.EvalConst(expr.Unary.Operand)
		if !ok {
			return Value{}, false
		}
		return constUnary(expr.Unary.Op, operand)
	case ast.ExprBinary:
		if expr.Binary == nil {
			return Value{}, false
		}
		left, ok := a.EvalConst(expr.Binary.Left)
		if !ok {
			return Value{}, false
		}
		// && and || short-circuit even at compile time
		if expr.Binary.Op.IsLogical() && left.Kind == ValueBool {
			if expr.Binary.Op == ast.BinLogicalAnd && !left.Bool {
				return BoolValue(false), true
			}
			if expr.Binary.Op == ast.BinLogicalOr && left.Bool {
				return BoolValue(true), true
			}
		}
		right, ok := a.EvalConst(expr.Binary.Right)
		if !ok {
			return Value{}, false
		}
		return constBinary(expr.Binary.Op, left, right)
	case ast.ExprSizeof:
		if expr.Sizeof == nil {
			return Value{}, false
		}
		id := a.resolveTypeNode(expr.Sizeof.Target)
		if !id.IsValid() {
			return Value{}, false
		}
		size, ok := a.types.SizeOf(id)
		if !ok {
			return Value{}, false
		}
		signed, err := safecast.Conv[int64](size)
		if err != nil {
			return Value{}, false
		}
		return IntValue(signed), true
	default:
		return Value{}, false
	}
}

func (a *Analyzer) constLiteral(lit *ast.LitExpr) (Value, bool) {
	if lit == nil {
		return Value{}, false
	}
	switch lit.Kind {
	case ast.LitInt:
		return IntValue(lit.Int), true
	case ast.LitFloat:
		return FloatValue(lit.Float), true
	case ast.LitBool:
		return BoolValue(lit.Bool), true
	case ast.LitString:
		return StringValue(lit.Str), true
	case ast.LitChar:
		return IntValue(int64(lit.Char)), true
	default:
		return Value{}, false
	}
}

func constUnary(op ast.UnOp, v Value) (Value, bool) {
	switch op {
	case ast.UnNeg:
		switch v.Kind {
		case ValueInt:
			// two's-complement wraparound: -MinInt64 == MinInt64
			return IntValue(-v.Int), true
		case ValueFloat:
			return FloatValue(-v.Float), true
		}
	case ast.UnNot:
		if v.Kind == ValueBool {
			return BoolValue(!v.Bool), true
		}
	case ast.UnBitNot:
		if v.Kind == ValueInt {
			return IntValue(^v.Int), true
		}
	}
	return Value{}, false
}

func constBinary(op ast.BinOp, left, right Value) (Value, bool) {
	if left.Kind != right.Kind {
		return Value{}, false
	}
	switch left.Kind {
	case ValueInt:
		return constIntBinary(op, left.Int, right.Int)
	case ValueFloat:
		return constFloatBinary(op, left.Float, right.Float)
	case ValueBool:
		return constBoolBinary(op, left.Bool, right.Bool)
	case ValueString:
		return constStringBinary(op, left.Str, right.Str)
	default:
		return Value{}, false
	}
}

// constIntBinary folds with two's-complement wraparound semantics:
// Go's int64 arithmetic already wraps, the div/mod edge cases are guarded
// so the compiler itself never faults.
func constIntBinary(op ast.BinOp, l, r int64) (Value, bool) {
	switch op {
	case ast.BinAdd:
		return IntValue(l + r), true
	case ast.BinSub:
		return IntValue(l - r), true
	case ast.BinMul:
		return IntValue(l * r), true
	case ast.BinDiv:
		if r == 0 {
			return Value{}, false
		}
		if l == math.MinInt64 && r == -1 {
			return IntValue(math.MinInt64), true // wraps
		}
		return IntValue(l / r), true
	case ast.BinMod:
		if r == 0 {
			return Value{}, false
		}
		if l == math.MinInt64 && r == -1 {
			return IntValue(0), true
		}
		return IntValue(l % r), true
	case ast.BinBitAnd:
		return IntValue(l & r), true
	case ast.BinBitOr:
		return IntValue(l | r), true
	case ast.BinBitXor:
		return IntValue(l ^ r), true
	case ast.BinShl:
		if r < 0 || r >= 64 {
			return Value{}, false
		}
		return IntValue(l << uint(r)), true
	case ast.BinShr:
		if r < 0 || r >= 64 {
			return Value{}, false
		}
		return IntValue(l >> uint(r)), true
	case ast.BinEq:
		return BoolValue(l == r), true
	case ast.BinNotEq:
		return BoolValue(l != r), true
	case ast.BinLess:
		return BoolValue(l < r), true
	case ast.BinLessEq:
		return BoolValue(l <= r), true
	case ast.BinGreater:
		return BoolValue(l > r), true
	case ast.BinGreaterEq:
		return BoolValue(l >= r), true
	default:
		return Value{}, false
	}
}

func constFloatBinary(op ast.BinOp, l, r float64) (Value, bool) {
	switch op {
	case ast.BinAdd:
		return FloatValue(l + r), true
	case ast.BinSub:
		return FloatValue(l - r), true
	case ast.BinMul:
		return FloatValue(l * r), true
	case ast.BinDiv:
		return FloatValue(l / r), true // IEEE: inf/nan, not a fault
	case ast.BinEq:
		return BoolValue(l == r), true
	case ast.BinNotEq:
		return BoolValue(l != r), true
	case ast.BinLess:
		return BoolValue(l < r), true
	case ast.BinLessEq:
		return BoolValue(l <= r), true
	case ast.BinGreater:
		return BoolValue(l > r), true
	case ast.BinGreaterEq:
		return BoolValue(l >= r), true
	default:
		return Value{}, false
	}
}

func constBoolBinary(op ast.BinOp, l, r bool) (Value, bool) {
	switch op {
	case ast.BinLogicalAnd:
		return BoolValue(l && r), true
	case ast.BinLogicalOr:
		return BoolValue(l || r), true
	case ast.BinEq:
		return BoolValue(l == r), true
	case ast.BinNotEq:
		return BoolValue(l != r), true
	default:
		return Value{}, false
	}
}

func constStringBinary(op ast.BinOp, l, r string) (Value, bool) {
	switch op {
	case ast.BinAdd:
		return StringValue(l + r), true
	case ast.BinEq:
		return BoolValue(l == r), true
	case ast.BinNotEq:
		return BoolValue(l != r), true
	case ast.BinLess:
		return BoolValue(l < r), true
	case ast.BinLessEq:
		return BoolValue(l <= r), true
	case ast.BinGreater:
		return BoolValue(l > r), true
	case ast.BinGreaterEq:
		return BoolValue(l >= r), true
	default:
		return Value{}, false
	}
}
