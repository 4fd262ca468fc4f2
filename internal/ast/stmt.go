package ast

import (
	"vega/internal/source"
)

// StmtKind enumerates every statement node the parser can produce.
type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtBlock
	StmtExpr
	StmtLet
	StmtReturn
	StmtIf
	StmtIfLet
	StmtMatch
	StmtFor
	StmtWhile
	StmtBreak
	StmtContinue
	StmtSpawn
	StmtSpawnWithHandle
	StmtAwait
	StmtUnsafe
	StmtAssign
)

func (k StmtKind) String() string {
	switch k {
	case StmtBlock:
		return "block"
	case StmtExpr:
		return "expression"
	case StmtLet:
		return "let"
	case StmtReturn:
		return "return"
	case StmtIf:
		return "if"
	case StmtIfLet:
		return "if-let"
	case StmtMatch:
		return "match"
	case StmtFor:
		return "for"
	case StmtWhile:
		return "while"
	case StmtBreak:
		return "break"
	case StmtContinue:
		return "continue"
	case StmtSpawn:
		return "spawn"
	case StmtSpawnWithHandle:
		return "spawn-with-handle"
	case StmtAwait:
		return "await"
	case StmtUnsafe:
		return "unsafe"
	case StmtAssign:
		return "assignment"
	default:
		return "invalid"
	}
}

// Stmt is one statement node. Exactly one payload pointer matches Kind.
type Stmt struct {
	Kind        StmtKind
	Span        source.Span
	Annotations []*Annotation `msgpack:",omitempty"`

	Block    *BlockStmt      `msgpack:",omitempty"`
	Expr     *Expr           `msgpack:",omitempty"` // StmtExpr
	Let      *LetStmt        `msgpack:",omitempty"`
	Return   *ReturnStmt     `msgpack:",omitempty"`
	If       *IfStmt         `msgpack:",omitempty"`
	IfLet    *IfLetStmt      `msgpack:",omitempty"`
	Match    *MatchExpr      `msgpack:",omitempty"` // statement form shares arm logic
	For      *ForStmt        `msgpack:",omitempty"`
	While    *WhileStmt      `msgpack:",omitempty"`
	Spawn    *SpawnStmt      `msgpack:",omitempty"`
	Await    *AwaitExpr      `msgpack:",omitempty"` // StmtAwait
	Unsafe   *UnsafeStmt     `msgpack:",omitempty"`
	Assign   *AssignStmt     `msgpack:",omitempty"`
}

type BlockStmt struct {
	Stmts []*Stmt
}

type LetStmt struct {
	Name    string
	Mutable bool
	Type    *TypeNode `msgpack:",omitempty"` // optional declared type
	Value   *Expr     `msgpack:",omitempty"` // optional initializer
}

type ReturnStmt struct {
	Value *Expr `msgpack:",omitempty"` // nil for bare `return`
}

type IfStmt struct {
	Cond *Expr
	Then *Stmt // block
	Else *Stmt `msgpack:",omitempty"` // block or nested if, optional
}

// IfLetStmt destructures the scrutinee when the pattern matches; pattern
// bindings are scoped to the then-branch.
type IfLetStmt struct {
	Pattern   *Pattern
	Scrutinee *Expr
	Then      *Stmt
	Else      *Stmt `msgpack:",omitempty"`
}

type ForStmt struct {
	Binding  string
	Iterable *Expr
	Body     *Stmt
}

type WhileStmt struct {
	Cond *Expr
	Body *Stmt
}

// SpawnStmt covers both spawn and spawn_with_handle; HandleName is empty for
// plain spawn.
type SpawnStmt struct {
	Call       *Expr
	HandleName string `msgpack:",omitempty"`
}

type UnsafeStmt struct {
	Body *Stmt
}

type AssignStmt struct {
	Target *Expr
	Value  *Expr
}
