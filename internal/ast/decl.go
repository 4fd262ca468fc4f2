package ast

import (
	"vega/internal/source"
)

// DeclKind enumerates every top-level declaration node.
type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	DeclImport
	DeclFunction
	DeclStruct
	DeclEnum
	DeclExtern
	DeclConst
	DeclImpl
)

func (k DeclKind) String() string {
	switch k {
	case DeclImport:
		return "import"
	case DeclFunction:
		return "function"
	case DeclStruct:
		return "struct"
	case DeclEnum:
		return "enum"
	case DeclExtern:
		return "extern"
	case DeclConst:
		return "const"
	case DeclImpl:
		return "impl"
	default:
		return "invalid"
	}
}

// Decl is one declaration node. Exactly one payload pointer matches Kind.
type Decl struct {
	Kind        DeclKind
	Span        source.Span
	Visibility  Visibility
	Annotations []*Annotation `msgpack:",omitempty"`

	Import   *ImportDecl   `msgpack:",omitempty"`
	Function *FunctionDecl `msgpack:",omitempty"`
	Struct   *StructDecl   `msgpack:",omitempty"`
	Enum     *EnumDecl     `msgpack:",omitempty"`
	Extern   *ExternDecl   `msgpack:",omitempty"`
	Const    *ConstDecl    `msgpack:",omitempty"`
	Impl     *ImplDecl     `msgpack:",omitempty"`
}

// ImportDecl registers a module alias: `import alias "module/path"`.
// Alias defaults to the last path segment when empty.
type ImportDecl struct {
	Module string
	Alias  string `msgpack:",omitempty"`
}

type Param struct {
	Name string
	Type *TypeNode
	Span source.Span
}

type FunctionDecl struct {
	Name       string
	TypeParams []string `msgpack:",omitempty"`
	Params     []*Param
	Return     *TypeNode `msgpack:",omitempty"` // nil means void
	Body       *Stmt     `msgpack:",omitempty"` // nil for declarations without bodies
}

type StructField struct {
	Name       string
	Type       *TypeNode
	Visibility Visibility
	Span       source.Span
}

type StructDecl struct {
	Name       string
	TypeParams []string `msgpack:",omitempty"`
	Fields     []*StructField
	Packed     bool
}

type EnumVariant struct {
	Name    string
	Payload []*TypeNode `msgpack:",omitempty"`
	Span    source.Span
}

type EnumDecl struct {
	Name       string
	TypeParams []string `msgpack:",omitempty"`
	Variants   []*EnumVariant
}

// ExternDecl declares a foreign function. Its signature must stay inside the
// FFI-safe type subset, which the analyzer enforces.
type ExternDecl struct {
	Name   string
	ABI    string `msgpack:",omitempty"` // e.g. "C"
	Params []*Param
	Return *TypeNode `msgpack:",omitempty"`
}

type ConstDecl struct {
	Name  string
	Type  *TypeNode `msgpack:",omitempty"`
	Value *Expr
}

// SelfShape distinguishes the two method-call shapes an impl method can bind.
type SelfShape uint8

const (
	SelfNone SelfShape = iota
	SelfByValue
	SelfByReference
)

func (s SelfShape) String() string {
	switch s {
	case SelfByValue:
		return "self"
	case SelfByReference:
		return "&self"
	default:
		return "none"
	}
}

type MethodDecl struct {
	Self     SelfShape
	Function *FunctionDecl
	Span     source.Span
	Vis      Visibility
}

type ImplDecl struct {
	TypeName string
	Methods  []*MethodDecl
}
