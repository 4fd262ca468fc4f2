package symbols

import (
	"vega/internal/ast"
	"vega/internal/source"
	"vega/internal/types"
)

// Kind classifies the semantic meaning of a symbol.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVariable
	KindFunction
	KindType
	KindParameter
	KindField
	KindMethod
	KindEnumVariant
	KindTypeParameter
	KindConst
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindFunction:
		return "function"
	case KindType:
		return "type"
	case KindParameter:
		return "parameter"
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	case KindEnumVariant:
		return "enum-variant"
	case KindTypeParameter:
		return "type-parameter"
	case KindConst:
		return "const"
	default:
		return "invalid"
	}
}

// Flags encode mutable symbol attributes for quick checks.
type Flags uint16

const (
	FlagUsed Flags = 1 << iota
	FlagExported
	FlagMutable
	FlagInitialized
	FlagPredeclared
)

// Visibility of a symbol.
type Visibility uint8

const (
	Private Visibility = iota
	Public
)

// ConstValue is the folded compile-time value stored on const symbols.
// The concrete type lives in the analyzer; the table only carries it.
type ConstValue interface{}

// Entry represents one bound name. The declaration node is borrowed from
// the AST, the type is shared with the interner; the entry owns neither.
type Entry struct {
	Name       string
	Kind       Kind
	Type       types.TypeID
	Decl       *ast.Decl
	DeclStmt   *ast.Stmt
	Span       source.Span
	Visibility Visibility
	ScopeID    uint32
	Flags      Flags
	Const      ConstValue

	// TypeParamCount is the declared generic arity on KindType entries;
	// zero means the type is not generic.
	TypeParamCount int

	// TypeParams holds the placeholder types minted when a function or
	// method signature was registered. Body analysis rebinds these same
	// IDs so a parameter type resolved in the body is identical to the
	// one in the signature.
	TypeParams []types.TypeID

	// Methods bound via impl blocks, keyed by method name. Only set on
	// KindType entries for struct receivers.
	Methods map[string]*Entry
	// SelfShape is meaningful on KindMethod entries.
	SelfShape ast.SelfShape
}

// Has reports whether all given flags are set.
func (e *Entry) Has(f Flags) bool { return e.Flags&f == f }

// Set sets the given flags.
func (e *Entry) Set(f Flags) { e.Flags |= f }

// Clear removes the given flags.
func (e *Entry) Clear(f Flags) { e.Flags &^= f }

// IsMutable is a convenience for assignment checking.
func (e *Entry) IsMutable() bool { return e.Has(FlagMutable) }
