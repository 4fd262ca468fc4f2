package sema

import (
	"vega/internal/ast"
	"vega/internal/diag"
	"vega/internal/symbols"
	"vega/internal/types"
)

// analyzeExtern declares a foreign function. Its signature must stay
// inside the FFI-safe subset: primitives, raw pointers, and structs built
// from them. Slices do not cross the boundary; callers pass a pointer and
// a length instead.
func (a *Analyzer) analyzeExtern(d *ast.Decl) bool {
	ext := d.Extern
	if ext == nil {
		a.report(diag.SemaInternal, d.Span, "extern declaration without payload")
		return false
	}
	a.stats.NodesAnalyzed.Add(1)

	params := make([]types.TypeID, 0, len(ext.Params))
	ok := true
	for _, p := range ext.Params {
		if p == nil || p.Type == nil {
			a.report(diag.SemaInternal, d.Span, "extern parameter without a type")
			return false
		}
		id := a.resolveTypeNode(p.Type)
		if !id.IsValid() {
			ok = false
			continue
		}
		if a.cfg.ValidateFFI && !a.ffiSafe(id) {
			a.report(diag.SemaFFIIncompatible, p.Span,
				"%s cannot cross the FFI boundary", a.types.Label(id))
			ok = false
		}
		params = append(params, id)
	}
	ret := a.types.Builtins().Void
	if ext.Return != nil {
		ret = a.resolveTypeNode(ext.Return)
		if !ret.IsValid() {
			return false
		}
		if a.cfg.ValidateFFI && !a.ffiSafe(ret) {
			a.report(diag.SemaFFIIncompatible, d.Span,
				"%s cannot cross the FFI boundary", a.types.Label(ret))
			ok = false
		}
	}
	if !ok {
		return false
	}

	entry := &symbols.Entry{
		Name:       ext.Name,
		Kind:       symbols.KindFunction,
		Type:       a.types.RegisterFunction(ret, params),
		Decl:       d,
		Span:       d.Span,
		Visibility: declVisibility(d.Visibility),
	}
	if d.Visibility == ast.Public {
		entry.Set(symbols.FlagExported)
	}
	if !a.declare(ext.Name, entry) {
		a.report(diag.SemaRedeclaration, d.Span, "'%s' is already declared", ext.Name)
		return false
	}
	return true
}

// ffiSafe reports whether a type may appear in an extern signature.
// Generics, options, results, slices, tuples and task handles stay on this
// side of the boundary.
func (a *Analyzer) ffiSafe(id types.TypeID) bool {
	t, ok := a.types.Lookup(id)
	if !ok {
		return false
	}
	switch t.Kind {
	case types.KindInt, types.KindUint, types.KindIsize, types.KindUsize,
		types.KindFloat, types.KindBool, types.KindVoid, types.KindNever:
		return true
	case types.KindString:
		// marshalled as pointer plus length by the runtime shim
		return true
	case types.KindPointer:
		return a.ffiSafe(t.Elem)
	case types.KindStruct:
		si, ok := a.types.StructInfo(id)
		if !ok {
			return false
		}
		for i := range si.Fields {
			if !a.ffiSafe(si.Fields[i].Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
