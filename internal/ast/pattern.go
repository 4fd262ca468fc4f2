package ast

import (
	"vega/internal/source"
)

// PatternKind enumerates match-arm patterns.
type PatternKind uint8

const (
	PatInvalid PatternKind = iota
	PatWildcard
	PatBinding // bare identifier, always matches and binds
	PatLiteral
	PatTuple
	PatEnumVariant // Enum.Variant(subpatterns...)
)

func (k PatternKind) String() string {
	switch k {
	case PatWildcard:
		return "wildcard"
	case PatBinding:
		return "binding"
	case PatLiteral:
		return "literal"
	case PatTuple:
		return "tuple"
	case PatEnumVariant:
		return "enum-variant"
	default:
		return "invalid"
	}
}

// Pattern is one match pattern node.
type Pattern struct {
	Kind PatternKind
	Span source.Span

	Name     string     `msgpack:",omitempty"` // PatBinding
	Lit      *LitExpr   `msgpack:",omitempty"` // PatLiteral
	Elems    []*Pattern `msgpack:",omitempty"` // PatTuple
	EnumName string     `msgpack:",omitempty"` // PatEnumVariant
	Variant  string     `msgpack:",omitempty"` // PatEnumVariant
	Payload  []*Pattern `msgpack:",omitempty"` // PatEnumVariant subpatterns
}
