package sema

import (
	"strconv"

	"vega/internal/ast"
	"vega/internal/diag"
	"vega/internal/source"
	"vega/internal/symbols"
	"vega/internal/types"
)

// analyzeFieldAccess covers struct fields, tuple positions, the builtin
// .len property, module-qualified names, and payload-less enum variants
// (Enum.Variant).
func (a *Analyzer) analyzeFieldAccess(expr *ast.Expr) bool {
	field := expr.Field
	if field == nil || field.Object == nil {
		a.report(diag.SemaInternal, expr.Span, "field access without object")
		return false
	}

	// a bare identifier object may name a module alias or an enum type
	// rather than a value; both take precedence only when no value symbol
	// shadows the name
	if field.Object.Kind == ast.ExprIdent && field.Object.Ident != nil {
		name := source.NormalizeIdent(field.Object.Ident.Name)
		sym := a.current.Resolve(name)
		if sym == nil && a.aliases.Has(name) {
			return a.analyzeModuleAccess(expr, name, field.Name)
		}
		if sym != nil && sym.Kind == symbols.KindType && a.types.Kind(sym.Type) == types.KindEnum {
			sym.Set(symbols.FlagUsed)
			return a.analyzeEnumConstruction(expr, sym, field.Name, nil)
		}
	}

	if !a.analyzeExpr(field.Object) {
		return false
	}
	objType := a.ExpressionType(field.Object)
	t, ok := a.types.Lookup(objType)
	if !ok {
		return false
	}

	if field.Name == "len" {
		switch t.Kind {
		case types.KindSlice, types.KindArray, types.KindString:
			a.SetExpressionType(expr, a.types.Builtins().Usize)
			return true
		}
	}

	// generic instances expose the base type's fields
	lookupType := objType
	if t.Kind == types.KindGenericInstance {
		if gi, ok := a.types.GenericInfo(objType); ok {
			lookupType = gi.Base
			if lt, ok := a.types.Lookup(lookupType); ok {
				t = lt
			}
		}
	}

	switch t.Kind {
	case types.KindStruct:
		si, ok := a.types.StructInfo(lookupType)
		if !ok {
			return false
		}
		f := si.FieldByName(field.Name)
		if f == nil {
			a.report(diag.SemaUnknownField, expr.Span,
				"struct %s has no field named '%s'", si.Name, field.Name)
			return false
		}
		expr.IsLValue = field.Object.IsLValue
		a.SetExpressionType(expr, f.Type)
		return true
	case types.KindTuple:
		return a.analyzeTupleField(expr, lookupType, field.Name)
	default:
		a.report(diag.SemaUnknownField, expr.Span,
			"%s has no field '%s'", a.types.Label(objType), field.Name)
		return false
	}
}

// analyzeTupleField resolves positional access like pair.0.
func (a *Analyzer) analyzeTupleField(expr *ast.Expr, tuple types.TypeID, name string) bool {
	ti, ok := a.types.TupleInfo(tuple)
	if !ok {
		return false
	}
	idx, err := strconv.Atoi(name)
	if err != nil || idx < 0 {
		a.report(diag.SemaUnknownField, expr.Span,
			"tuples are accessed by position, '%s' is not an index", name)
		return false
	}
	if idx >= len(ti.Elems) {
		a.report(diag.SemaUnknownField, expr.Span,
			"tuple has %d elements, index %d is out of range", len(ti.Elems), idx)
		return false
	}
	expr.IsLValue = expr.Field.Object.IsLValue
	a.SetExpressionType(expr, ti.Elems[idx])
	return true
}

// analyzeModuleAccess resolves alias.name through the import alias table.
// Imported symbols are registered in the global scope under their
// qualified name by whoever loaded the dependency.
func (a *Analyzer) analyzeModuleAccess(expr *ast.Expr, alias, member string) bool {
	if _, ok := a.aliases.Resolve(alias); !ok {
		a.report(diag.SemaModuleNotFound, expr.Span, "unknown module '%s'", alias)
		return false
	}
	sym := a.global.Lookup(alias + "." + source.NormalizeIdent(member))
	if sym == nil {
		a.report(diag.SemaUndeclaredName, expr.Span,
			"module '%s' has no member '%s'", alias, member)
		return false
	}
	if sym.Visibility != symbols.Public {
		a.report(diag.SemaVisibility, expr.Span,
			"'%s.%s' is private to its module", alias, member)
		return false
	}
	sym.Set(symbols.FlagUsed)
	a.stats.SymbolsResolved.Add(1)
	a.SetExpressionType(expr, sym.Type)
	return true
}

func (a *Analyzer) analyzeIndex(expr *ast.Expr) bool {
	idx := expr.Index
	if idx == nil || idx.Object == nil || idx.Index == nil {
		a.report(diag.SemaInternal, expr.Span, "index node without payload")
		return false
	}
	objOK := a.analyzeExpr(idx.Object)
	idxOK := a.analyzeExpr(idx.Index)
	if !objOK || !idxOK {
		return false
	}
	objType := a.ExpressionType(idx.Object)
	t, ok := a.types.Lookup(objType)
	if !ok || (t.Kind != types.KindSlice && t.Kind != types.KindArray) {
		a.report(diag.SemaNotIndexable, expr.Span,
			"%s cannot be indexed", a.types.Label(objType))
		return false
	}
	idxType := a.ExpressionType(idx.Index)
	if !a.types.Kind(idxType).IsInteger() {
		a.report(diag.SemaTypeMismatch, idx.Index.Span,
			"index must be an integer, got %s", a.types.Label(idxType))
		return false
	}
	expr.IsLValue = idx.Object.IsLValue && (t.Kind == types.KindArray || t.Mutable)
	a.SetExpressionType(expr, t.Elem)
	return true
}

// analyzeSliceExpr types a[lo:hi]. Both bounds are optional integers; the
// result is a view over the same element type, inheriting the source
// slice's mutability (arrays yield immutable views).
func (a *Analyzer) analyzeSliceExpr(expr *ast.Expr) bool {
	sl := expr.SliceExpr
	if sl == nil || sl.Object == nil {
		a.report(diag.SemaInternal, expr.Span, "slice node without payload")
		return false
	}
	if !a.analyzeExpr(sl.Object) {
		return false
	}
	objType := a.ExpressionType(sl.Object)
	t, ok := a.types.Lookup(objType)
	if !ok || (t.Kind != types.KindSlice && t.Kind != types.KindArray) {
		a.report(diag.SemaNotIndexable, expr.Span,
			"%s cannot be sliced", a.types.Label(objType))
		return false
	}
	for _, bound := range []*ast.Expr{sl.Low, sl.High} {
		if bound == nil {
			continue
		}
		if !a.analyzeExpr(bound) {
			return false
		}
		bt := a.ExpressionType(bound)
		if !a.types.Kind(bt).IsInteger() {
			a.report(diag.SemaTypeMismatch, bound.Span,
				"slice bound must be an integer, got %s", a.types.Label(bt))
			return false
		}
	}
	mutable := t.Kind == types.KindSlice && t.Mutable
	a.SetExpressionType(expr, a.types.Intern(types.MakeSlice(t.Elem, mutable)))
	return true
}
