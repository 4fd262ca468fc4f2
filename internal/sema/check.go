package sema

import (
	"vega/internal/diag"
	"vega/internal/source"
	"vega/internal/types"
)

// typeAssignable reports whether a value of type actual can flow into a
// slot of type expected. The rules are deliberately narrow: identical
// interned IDs, Never flowing anywhere, and a mutable slice decaying to an
// immutable view of the same element type.
func (a *Analyzer) typeAssignable(expected, actual types.TypeID) bool {
	if !expected.IsValid() || !actual.IsValid() {
		return false
	}
	if a.types.Equal(expected, actual) {
		return true
	}
	if a.types.Kind(actual) == types.KindNever {
		return true
	}
	et, eok := a.types.Lookup(expected)
	at, aok := a.types.Lookup(actual)
	if eok && aok && et.Kind == types.KindSlice && at.Kind == types.KindSlice {
		return !et.Mutable && at.Mutable && a.types.Equal(et.Elem, at.Elem)
	}
	return false
}

// requireAssignable emits the type-mismatch diagnostic when actual does not
// fit expected. what names the slot for the message ("argument 2",
// "return value", "initializer").
func (a *Analyzer) requireAssignable(expected, actual types.TypeID, span source.Span, what string) bool {
	if a.typeAssignable(expected, actual) {
		return true
	}
	a.report(diag.SemaTypeMismatch, span, "%s expects %s, got %s",
		what, a.types.Label(expected), a.types.Label(actual))
	return false
}
