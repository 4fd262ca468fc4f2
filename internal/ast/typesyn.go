package ast

import (
	"vega/internal/source"
)

// TypeNodeKind enumerates type-syntax nodes.
type TypeNodeKind uint8

const (
	TypeInvalid TypeNodeKind = iota
	TypeNamed                // identifier, possibly with generic args: Name<T, U>
	TypeSlice                // []T
	TypeArray                // [T; N]
	TypePointer              // *T
	TypeTuple                // (A, B, ...)
	TypeFunction             // fn(A, B) -> R
	TypeOption               // Option<T>
	TypeResult               // Result<T, E>
)

func (k TypeNodeKind) String() string {
	switch k {
	case TypeNamed:
		return "named"
	case TypeSlice:
		return "slice"
	case TypeArray:
		return "array"
	case TypePointer:
		return "pointer"
	case TypeTuple:
		return "tuple"
	case TypeFunction:
		return "function"
	case TypeOption:
		return "option"
	case TypeResult:
		return "result"
	default:
		return "invalid"
	}
}

// TypeNode is one type-syntax node.
type TypeNode struct {
	Kind TypeNodeKind
	Span source.Span

	Name     string      `msgpack:",omitempty"` // TypeNamed
	TypeArgs []*TypeNode `msgpack:",omitempty"` // TypeNamed generic arguments
	Elem     *TypeNode   `msgpack:",omitempty"` // slice/array/pointer/option element
	Size     *Expr       `msgpack:",omitempty"` // TypeArray size expression
	Mutable  bool        `msgpack:",omitempty"` // TypeSlice mutability
	Elems    []*TypeNode `msgpack:",omitempty"` // TypeTuple elements
	Params   []*TypeNode `msgpack:",omitempty"` // TypeFunction parameters
	Return   *TypeNode   `msgpack:",omitempty"` // TypeFunction return
	Ok       *TypeNode   `msgpack:",omitempty"` // TypeResult ok side
	Err      *TypeNode   `msgpack:",omitempty"` // TypeResult err side
}
