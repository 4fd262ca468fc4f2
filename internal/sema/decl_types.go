package sema

import (
	"vega/internal/ast"
	"vega/internal/diag"
	"vega/internal/symbols"
	"vega/internal/types"
)

// hoistHeader registers nominal types with their generic arity, and const
// symbols, before any body is analyzed, so declarations can reference each
// other regardless of order.
func (a *Analyzer) hoistHeader(d *ast.Decl) {
	switch d.Kind {
	case ast.DeclConst:
		a.hoistConst(d)
	case ast.DeclStruct:
		st := d.Struct
		if st == nil {
			a.report(diag.SemaInternal, d.Span, "struct declaration without payload")
			return
		}
		packed := st.Packed || ast.HasAnnotation(d.Annotations, "packed")
		id := a.types.RegisterStruct(st.Name, d.Span, packed)
		a.declareTypeSymbol(d, st.Name, id, len(st.TypeParams))
	case ast.DeclEnum:
		en := d.Enum
		if en == nil {
			a.report(diag.SemaInternal, d.Span, "enum declaration without payload")
			return
		}
		id := a.types.RegisterEnum(en.Name, d.Span)
		a.declareTypeSymbol(d, en.Name, id, len(en.TypeParams))
	}
}

func (a *Analyzer) declareTypeSymbol(d *ast.Decl, name string, id types.TypeID, typeParams int) {
	entry := &symbols.Entry{
		Name:           name,
		Kind:           symbols.KindType,
		Type:           id,
		Decl:           d,
		Span:           d.Span,
		Visibility:     declVisibility(d.Visibility),
		TypeParamCount: typeParams,
	}
	if d.Visibility == ast.Public {
		entry.Set(symbols.FlagExported)
	}
	if !a.declare(name, entry) {
		a.report(diag.SemaRedeclaration, d.Span, "'%s' is already declared", name)
	}
}

// pushTypeParams opens a scope holding the declaration's type parameters
// as resolvable type symbols and returns the minted placeholder types.
// Returns false on duplicate parameters; the scope is open either way and
// the caller pops it.
func (a *Analyzer) pushTypeParams(params []string, d *ast.Decl) ([]types.TypeID, bool) {
	return a.bindTypeParams(params, nil, d)
}

// bindTypeParams reuses previously minted placeholder types where given,
// so a T resolved in a function body is the same TypeID the signature was
// registered with. Missing slots mint fresh placeholders.
func (a *Analyzer) bindTypeParams(params []string, ids []types.TypeID, d *ast.Decl) ([]types.TypeID, bool) {
	a.pushScope()
	ok := true
	bound := make([]types.TypeID, 0, len(params))
	for i, name := range params {
		id := types.NoTypeID
		if i < len(ids) {
			id = ids[i]
		}
		if !id.IsValid() {
			id = a.types.RegisterTypeParam(name, d.Span)
		}
		bound = append(bound, id)
		entry := &symbols.Entry{
			Name: name,
			Kind: symbols.KindTypeParameter,
			Type: id,
			Decl: d,
			Span: d.Span,
		}
		if !a.declare(name, entry) {
			a.report(diag.SemaRedeclaration, d.Span,
				"type parameter '%s' is declared twice", name)
			ok = false
		}
	}
	return bound, ok
}

func (a *Analyzer) analyzeStruct(d *ast.Decl) bool {
	st := d.Struct
	if st == nil {
		return false
	}
	sym := a.resolve(st.Name)
	if sym == nil || sym.Kind != symbols.KindType {
		a.report(diag.SemaInternal, d.Span, "struct '%s' missing its hoisted symbol", st.Name)
		return false
	}
	_, ok := a.pushTypeParams(st.TypeParams, d)
	defer a.popScope()
	for _, f := range st.Fields {
		if f == nil {
			continue
		}
		fieldType := a.resolveTypeNode(f.Type)
		if !fieldType.IsValid() {
			ok = false
			continue
		}
		added := a.types.AddStructField(sym.Type, types.StructField{
			Name:   f.Name,
			Type:   fieldType,
			Decl:   f.Span,
			Public: f.Visibility == ast.Public,
		})
		if !added {
			a.report(diag.SemaDuplicateField, f.Span,
				"struct %s declares field '%s' twice", st.Name, f.Name)
			ok = false
		}
	}
	return ok
}

func (a *Analyzer) analyzeEnum(d *ast.Decl) bool {
	en := d.Enum
	if en == nil {
		return false
	}
	sym := a.resolve(en.Name)
	if sym == nil || sym.Kind != symbols.KindType {
		a.report(diag.SemaInternal, d.Span, "enum '%s' missing its hoisted symbol", en.Name)
		return false
	}
	_, ok := a.pushTypeParams(en.TypeParams, d)
	defer a.popScope()
	for _, v := range en.Variants {
		if v == nil {
			continue
		}
		payload := make([]types.TypeID, 0, len(v.Payload))
		valid := true
		for _, p := range v.Payload {
			id := a.resolveTypeNode(p)
			if !id.IsValid() {
				valid = false
				break
			}
			payload = append(payload, id)
		}
		if !valid {
			ok = false
			continue
		}
		added := a.types.AddEnumVariant(sym.Type, types.EnumVariant{
			Name:    v.Name,
			Payload: payload,
			Decl:    v.Span,
		})
		if !added {
			a.report(diag.SemaDuplicateField, v.Span,
				"enum %s declares variant '%s' twice", en.Name, v.Name)
			ok = false
		}
	}
	return ok
}
