package ast

import (
	"vega/internal/source"
)

// ExprKind enumerates every expression node the parser can produce.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIdent
	ExprLit
	ExprBinary
	ExprUnary
	ExprCall
	ExprAssociatedCall // Type::func(args)
	ExprFieldAccess    // obj.field, module.name, value.len
	ExprIndex
	ExprSlice // a[lo:hi]
	ExprArrayLit
	ExprRepeatedArray // [value; count]
	ExprTupleLit
	ExprStructLit
	ExprEnumLit // Enum.Variant(payload...)
	ExprCast
	ExprMatch
	ExprAwait
	ExprGroup
	ExprSizeof // sizeof(Type)
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdent:
		return "identifier"
	case ExprLit:
		return "literal"
	case ExprBinary:
		return "binary"
	case ExprUnary:
		return "unary"
	case ExprCall:
		return "call"
	case ExprAssociatedCall:
		return "associated-call"
	case ExprFieldAccess:
		return "field-access"
	case ExprIndex:
		return "index"
	case ExprSlice:
		return "slice"
	case ExprArrayLit:
		return "array-literal"
	case ExprRepeatedArray:
		return "repeated-array"
	case ExprTupleLit:
		return "tuple-literal"
	case ExprStructLit:
		return "struct-literal"
	case ExprEnumLit:
		return "enum-literal"
	case ExprCast:
		return "cast"
	case ExprMatch:
		return "match"
	case ExprAwait:
		return "await"
	case ExprGroup:
		return "group"
	case ExprSizeof:
		return "sizeof"
	default:
		return "invalid"
	}
}

// Expr is one expression node. Exactly one payload pointer matches Kind.
// The three analysis flags are the only fields the analyzer mutates.
type Expr struct {
	Kind ExprKind
	Span source.Span

	// Set by the analyzer, never by the parser.
	IsConstantExpr bool `msgpack:"-"`
	HasSideEffects bool `msgpack:"-"`
	IsLValue       bool `msgpack:"-"`

	Ident     *IdentExpr     `msgpack:",omitempty"`
	Lit       *LitExpr       `msgpack:",omitempty"`
	Binary    *BinaryExpr    `msgpack:",omitempty"`
	Unary     *UnaryExpr     `msgpack:",omitempty"`
	Call      *CallExpr      `msgpack:",omitempty"`
	Field     *FieldExpr     `msgpack:",omitempty"`
	Index     *IndexExpr     `msgpack:",omitempty"`
	SliceExpr *SliceExpr     `msgpack:",omitempty"`
	Array     *ArrayLitExpr  `msgpack:",omitempty"`
	Repeated  *RepeatedExpr  `msgpack:",omitempty"`
	Tuple     *TupleLitExpr  `msgpack:",omitempty"`
	Struct    *StructLitExpr `msgpack:",omitempty"`
	Enum      *EnumLitExpr   `msgpack:",omitempty"`
	Cast      *CastExpr      `msgpack:",omitempty"`
	Match     *MatchExpr     `msgpack:",omitempty"`
	Await     *AwaitExpr     `msgpack:",omitempty"`
	Group     *GroupExpr     `msgpack:",omitempty"`
	Sizeof    *SizeofExpr    `msgpack:",omitempty"`
}

type IdentExpr struct {
	Name string
}

// LitKind enumerates literal categories.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitBool
	LitChar
	LitUnit
)

func (k LitKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	case LitString:
		return "string"
	case LitBool:
		return "bool"
	case LitChar:
		return "char"
	case LitUnit:
		return "unit"
	default:
		return "invalid"
	}
}

type LitExpr struct {
	Kind   LitKind
	Int    int64
	Float  float64
	Str    string
	Bool   bool
	Char   uint32 // raw scalar value; the analyzer validates the range
}

// BinOp enumerates binary operators.
type BinOp uint8

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
	BinLogicalAnd
	BinLogicalOr
	BinEq
	BinNotEq
	BinLess
	BinLessEq
	BinGreater
	BinGreaterEq
)

func (op BinOp) String() string {
	switch op {
	case BinAdd:
		return "+"
	case BinSub:
		return "-"
	case BinMul:
		return "*"
	case BinDiv:
		return "/"
	case BinMod:
		return "%"
	case BinBitAnd:
		return "&"
	case BinBitOr:
		return "|"
	case BinBitXor:
		return "^"
	case BinShl:
		return "<<"
	case BinShr:
		return ">>"
	case BinLogicalAnd:
		return "&&"
	case BinLogicalOr:
		return "||"
	case BinEq:
		return "=="
	case BinNotEq:
		return "!="
	case BinLess:
		return "<"
	case BinLessEq:
		return "<="
	case BinGreater:
		return ">"
	case BinGreaterEq:
		return ">="
	default:
		return "?"
	}
}

// IsComparison reports whether the operator yields bool.
func (op BinOp) IsComparison() bool {
	switch op {
	case BinEq, BinNotEq, BinLess, BinLessEq, BinGreater, BinGreaterEq:
		return true
	default:
		return false
	}
}

// IsLogical reports whether the operator takes bool operands.
func (op BinOp) IsLogical() bool {
	return op == BinLogicalAnd || op == BinLogicalOr
}

type BinaryExpr struct {
	Op    BinOp
	Left  *Expr
	Right *Expr
}

// UnOp enumerates unary operators.
type UnOp uint8

const (
	UnNeg UnOp = iota
	UnNot
	UnBitNot
	UnDeref
	UnAddrOf
)

func (op UnOp) String() string {
	switch op {
	case UnNeg:
		return "-"
	case UnNot:
		return "!"
	case UnBitNot:
		return "~"
	case UnDeref:
		return "*"
	case UnAddrOf:
		return "&"
	default:
		return "?"
	}
}

type UnaryExpr struct {
	Op      UnOp
	Operand *Expr
}

// CallExpr covers plain calls, associated calls (Type::func) and method
// calls (receiver.method(...), represented as a field-access callee).
type CallExpr struct {
	Callee   *Expr
	TypeName string // associated calls only: the Type in Type::func
	Args     []*Expr
}

type FieldExpr struct {
	Object *Expr
	Name   string
}

type IndexExpr struct {
	Object *Expr
	Index  *Expr
}

type SliceExpr struct {
	Object *Expr
	Low    *Expr // optional
	High   *Expr // optional
}

type ArrayLitExpr struct {
	Elements []*Expr
}

// RepeatedExpr is the [value; count] form. The count must const-evaluate to
// a positive integer; the analyzer enforces that.
type RepeatedExpr struct {
	Value *Expr
	Count *Expr
}

type TupleLitExpr struct {
	Elements []*Expr
}

type FieldInit struct {
	Name  string
	Value *Expr
	Span  source.Span
}

type StructLitExpr struct {
	TypeName string
	TypeArgs []*TypeNode
	Fields   []*FieldInit
}

type EnumLitExpr struct {
	EnumName string
	Variant  string
	Payload  []*Expr
}

type CastExpr struct {
	Value  *Expr
	Target *TypeNode
}

type MatchExpr struct {
	Scrutinee *Expr
	Arms      []*MatchArm
}

// MatchArm pairs a pattern with its arm body. Bindings introduced by the
// pattern are scoped to the arm.
type MatchArm struct {
	Pattern *Pattern
	Guard   *Expr // optional
	Body    *Stmt // block or expression statement
	Value   *Expr // expression-form arm body, exclusive with Body
	Span    source.Span
}

type AwaitExpr struct {
	Handle *Expr
}

type GroupExpr struct {
	Inner *Expr
}

type SizeofExpr struct {
	Target *TypeNode
}
