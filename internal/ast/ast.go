// Package ast defines the tree produced by the external parser tool and
// consumed by semantic analysis. The set of node kinds is closed: the
// analyzer dispatches exhaustively and reports any unrecognized kind as an
// error instead of skipping it.
//
// The analyzer never rewrites grammar-level fields. It only sets the
// analysis flags (IsConstantExpr, HasSideEffects, IsLValue) and attaches
// type information out-of-band, keyed by node identity.
package ast

import (
	"vega/internal/source"
)

// Program is the root of one compilation unit.
type Program struct {
	Package string
	Span    source.Span
	Imports []*Decl // import declarations, analyzed before Decls
	Decls   []*Decl // remaining declarations in source order
}

// Visibility of a declaration or field.
type Visibility uint8

const (
	Private Visibility = iota
	Public
)

func (v Visibility) String() string {
	if v == Public {
		return "pub"
	}
	return "priv"
}

// Annotation is a #[name(args...)] marker attached to a declaration,
// statement, or expression.
type Annotation struct {
	Name string
	Args []string
	Span source.Span
}

// AnnotationNonDeterministic gates Tier-2 concurrency primitives.
const AnnotationNonDeterministic = "non_deterministic"

// HasAnnotation reports whether the list carries the named annotation.
func HasAnnotation(list []*Annotation, name string) bool {
	for _, a := range list {
		if a != nil && a.Name == name {
			return true
		}
	}
	return false
}
