package sema

import (
	"vega/internal/ast"
	"vega/internal/diag"
	"vega/internal/source"
	"vega/internal/symbols"
	"vega/internal/types"
)

// declareImplMethods binds every method signature of an impl block onto the
// receiver's type symbol. Bodies are analyzed in a later pass so methods
// can call each other freely.
func (a *Analyzer) declareImplMethods(d *ast.Decl) bool {
	impl := d.Impl
	if impl == nil {
		a.report(diag.SemaInternal, d.Span, "impl declaration without payload")
		return false
	}
	typeSym := a.implReceiver(d, impl)
	if typeSym == nil {
		return false
	}
	if typeSym.Methods == nil {
		typeSym.Methods = make(map[string]*symbols.Entry, len(impl.Methods))
	}
	ok := true
	for _, m := range impl.Methods {
		if m == nil || m.Function == nil {
			continue
		}
		fn := m.Function
		tparams, okParams := a.pushTypeParams(fn.TypeParams, d)
		sig := a.resolveSignature(fn, d)
		a.popScope()
		if !okParams || !sig.IsValid() {
			ok = false
			continue
		}
		key := source.NormalizeIdent(fn.Name)
		if _, exists := typeSym.Methods[key]; exists {
			a.report(diag.SemaRedeclaration, m.Span,
				"type %s already has a method '%s'", impl.TypeName, fn.Name)
			ok = false
			continue
		}
		visibility := symbols.Private
		if m.Vis == ast.Public {
			visibility = symbols.Public
		}
		typeSym.Methods[key] = &symbols.Entry{
			Name:       fn.Name,
			Kind:       symbols.KindMethod,
			Type:       sig,
			Decl:       d,
			Span:       m.Span,
			Visibility: visibility,
			SelfShape:  m.Self,
			TypeParams: tparams,
		}
	}
	return ok
}

// analyzeImplBodies walks the method bodies of an impl block with self
// bound to the receiver type.
func (a *Analyzer) analyzeImplBodies(d *ast.Decl) bool {
	impl := d.Impl
	if impl == nil {
		return false
	}
	a.stats.NodesAnalyzed.Add(1)
	typeSym := a.implReceiver(d, impl)
	if typeSym == nil {
		return false
	}
	ok := true
	for _, m := range impl.Methods {
		if m == nil || m.Function == nil {
			continue
		}
		fn := m.Function
		entry := typeSym.Methods[source.NormalizeIdent(fn.Name)]
		if entry == nil {
			ok = false
			continue
		}
		if fn.Body == nil {
			a.report(diag.SemaUnsupportedDecl, m.Span,
				"method '%s' has no body", fn.Name)
			ok = false
			continue
		}
		info, okInfo := a.types.FunctionInfo(entry.Type)
		if !okInfo {
			ok = false
			continue
		}
		if !a.analyzeFnBody(fn, d, info, entry.TypeParams, m.Self, typeSym.Type) {
			ok = false
		}
	}
	return ok
}

// implReceiver resolves the impl's receiver type symbol; only nominal
// struct and enum types can carry methods.
func (a *Analyzer) implReceiver(d *ast.Decl, impl *ast.ImplDecl) *symbols.Entry {
	sym := a.resolve(impl.TypeName)
	if sym == nil {
		a.report(diag.SemaUndeclaredName, d.Span, "undefined type '%s'", impl.TypeName)
		return nil
	}
	if sym.Kind != symbols.KindType {
		a.report(diag.SemaInvalidType, d.Span, "'%s' is a %s, not a type", impl.TypeName, sym.Kind)
		return nil
	}
	kind := a.types.Kind(sym.Type)
	if kind != types.KindStruct && kind != types.KindEnum {
		a.report(diag.SemaInvalidType, d.Span,
			"impl blocks need a struct or enum receiver, %s is %s",
			impl.TypeName, a.types.Label(sym.Type))
		return nil
	}
	return sym
}
