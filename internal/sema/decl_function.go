package sema

import (
	"vega/internal/ast"
	"vega/internal/diag"
	"vega/internal/symbols"
	"vega/internal/types"
)

// declareFunction registers a function's signature in the global scope so
// later bodies can call earlier-or-later functions alike.
func (a *Analyzer) declareFunction(d *ast.Decl) bool {
	fn := d.Function
	if fn == nil {
		a.report(diag.SemaInternal, d.Span, "function declaration without payload")
		return false
	}
	// type parameters must be in scope while the signature resolves
	tparams, ok := a.pushTypeParams(fn.TypeParams, d)
	sig := a.resolveSignature(fn, d)
	a.popScope()
	if !ok || !sig.IsValid() {
		return false
	}
	entry := &symbols.Entry{
		Name:       fn.Name,
		Kind:       symbols.KindFunction,
		Type:       sig,
		Decl:       d,
		Span:       d.Span,
		Visibility: declVisibility(d.Visibility),
		TypeParams: tparams,
	}
	if d.Visibility == ast.Public {
		entry.Set(symbols.FlagExported)
	}
	if !a.declare(fn.Name, entry) {
		rb := a.errorAt(diag.SemaRedeclaration, d.Span, "'%s' is already declared", fn.Name)
		if prev := a.current.Lookup(fn.Name); prev != nil {
			rb.WithNote(prev.Span, "previous declaration is here")
		}
		rb.Emit()
		return false
	}
	return true
}

// resolveSignature resolves a function's parameter and return types into a
// canonical function TypeID. A nil return type node means void.
func (a *Analyzer) resolveSignature(fn *ast.FunctionDecl, d *ast.Decl) types.TypeID {
	params := make([]types.TypeID, 0, len(fn.Params))
	for _, p := range fn.Params {
		if p == nil || p.Type == nil {
			a.report(diag.SemaInternal, d.Span, "parameter of '%s' without a type", fn.Name)
			return types.NoTypeID
		}
		id := a.resolveTypeNode(p.Type)
		if !id.IsValid() {
			return types.NoTypeID
		}
		params = append(params, id)
	}
	ret := a.types.Builtins().Void
	if fn.Return != nil {
		ret = a.resolveTypeNode(fn.Return)
		if !ret.IsValid() {
			return types.NoTypeID
		}
	}
	return a.types.RegisterFunction(ret, params)
}

// analyzeFunctionBody opens the function scope, binds parameters and walks
// the body. Unless the function returns void or Never, every path through
// the body must return.
func (a *Analyzer) analyzeFunctionBody(d *ast.Decl) bool {
	fn := d.Function
	if fn == nil {
		return false
	}
	a.stats.NodesAnalyzed.Add(1)
	sym := a.resolve(fn.Name)
	if sym == nil || sym.Kind != symbols.KindFunction {
		// the signature pass already reported why
		return false
	}
	if fn.Body == nil {
		a.report(diag.SemaUnsupportedDecl, d.Span,
			"function '%s' has no body; foreign functions use extern", fn.Name)
		return false
	}
	info, okInfo := a.types.FunctionInfo(sym.Type)
	if !okInfo {
		return false
	}
	return a.analyzeFnBody(fn, d, info, sym.TypeParams, ast.SelfNone, types.NoTypeID)
}

// analyzeFnBody is shared between free functions and impl methods. For
// methods, self binds to receiver with the declared shape. tparams are the
// placeholder types the signature was registered with; the body rebinds
// them instead of minting new ones.
func (a *Analyzer) analyzeFnBody(fn *ast.FunctionDecl, d *ast.Decl, info *types.FunctionInfo, tparams []types.TypeID, self ast.SelfShape, receiver types.TypeID) bool {
	prevFn := a.currentFn
	a.currentFn = &fnContext{
		name:             fn.Name,
		returnType:       info.Return,
		nonDeterministic: ast.HasAnnotation(d.Annotations, ast.AnnotationNonDeterministic),
	}
	defer func() { a.currentFn = prevFn }()

	_, okParams := a.bindTypeParams(fn.TypeParams, tparams, d)
	defer a.popScope()
	a.pushScope()
	defer a.popScope()

	if self != ast.SelfNone && receiver.IsValid() {
		entry := &symbols.Entry{
			Name:      "self",
			Kind:      symbols.KindParameter,
			Type:      receiver,
			Span:      d.Span,
			Flags:     symbols.FlagInitialized,
			SelfShape: self,
		}
		a.declare("self", entry)
	}
	for i, p := range fn.Params {
		if p == nil || i >= len(info.Params) {
			continue
		}
		entry := &symbols.Entry{
			Name:  p.Name,
			Kind:  symbols.KindParameter,
			Type:  info.Params[i],
			Span:  p.Span,
			Flags: symbols.FlagInitialized,
		}
		if !a.declare(p.Name, entry) {
			a.report(diag.SemaRedeclaration, p.Span,
				"parameter '%s' is declared twice", p.Name)
			okParams = false
		}
	}

	okBody := a.analyzeStmt(fn.Body)

	b := a.types.Builtins()
	voidLike := a.types.Equal(info.Return, b.Void) || a.types.Equal(info.Return, b.Unit) ||
		a.types.Kind(info.Return) == types.KindNever
	if !voidLike && !a.blockReturnsNever(fn.Body) {
		a.report(diag.SemaMissingReturn, d.Span,
			"function '%s' returns %s but not on every path",
			fn.Name, a.types.Label(info.Return))
		okBody = false
	}
	a.warnUnusedParams(fn.Params)
	return okParams && okBody
}

// warnUnusedParams flags parameters that were never read, walking the
// declared order so repeated runs emit identical diagnostics. Names
// starting with an underscore opt out.
func (a *Analyzer) warnUnusedParams(params []*ast.Param) {
	if !a.cfg.EnableWarnings {
		return
	}
	for _, p := range params {
		if p == nil || p.Name == "" || p.Name[0] == '_' {
			continue
		}
		e := a.current.Lookup(p.Name)
		if e == nil || e.Kind != symbols.KindParameter || e.Has(symbols.FlagUsed) {
			continue
		}
		a.warnAt(diag.SemaUnusedSymbol, e.Span, "parameter '%s' is never used", e.Name).
			WithFix("prefix with an underscore to keep it",
				diag.FixEdit{Span: e.Span, NewText: "_" + e.Name}).
			Emit()
	}
}
