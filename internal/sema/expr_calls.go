package sema

import (
	"strconv"

	"vega/internal/ast"
	"vega/internal/diag"
	"vega/internal/source"
	"vega/internal/symbols"
	"vega/internal/types"
)

// analyzeCall types plain calls, associated calls (Type::func) and method
// calls (receiver.method(...), arriving as a field-access callee).
func (a *Analyzer) analyzeCall(expr *ast.Expr) bool {
	call := expr.Call
	if call == nil {
		a.report(diag.SemaInternal, expr.Span, "call node without payload")
		return false
	}
	expr.HasSideEffects = true
	if expr.Kind == ast.ExprAssociatedCall {
		return a.analyzeAssociatedCall(expr, call)
	}
	if call.Callee != nil && call.Callee.Kind == ast.ExprFieldAccess {
		return a.analyzeMethodCall(expr, call)
	}
	if call.Callee == nil || call.Callee.Kind != ast.ExprIdent || call.Callee.Ident == nil {
		return a.analyzeIndirectCall(expr, call)
	}

	name := call.Callee.Ident.Name
	sym := a.resolve(name)
	if sym == nil {
		a.report(diag.SemaUndeclaredName, call.Callee.Span, "undefined function '%s'", name)
		return false
	}
	sym.Set(symbols.FlagUsed)
	a.stats.NodesAnalyzed.Add(1) // the callee identifier is a node too
	a.SetExpressionType(call.Callee, sym.Type)

	if sym.Has(symbols.FlagPredeclared) && sym.Kind == symbols.KindFunction {
		return a.analyzePredeclaredCall(expr, call, sym)
	}
	if sym.Kind != symbols.KindFunction && a.types.Kind(sym.Type) != types.KindFunction {
		a.report(diag.SemaNotCallable, expr.Span, "'%s' is a %s, not a function", name, sym.Kind)
		return false
	}
	if !a.checkCallDeterminism(sym, expr.Span) {
		return false
	}
	return a.checkCallSignature(expr, call.Args, sym.Type, "'"+name+"'")
}

// analyzeIndirectCall handles calls through a function-typed expression.
func (a *Analyzer) analyzeIndirectCall(expr *ast.Expr, call *ast.CallExpr) bool {
	if call.Callee == nil {
		a.report(diag.SemaInvalidExpression, expr.Span, "call without a callee")
		return false
	}
	if !a.analyzeExpr(call.Callee) {
		return false
	}
	callee := a.ExpressionType(call.Callee)
	if a.types.Kind(callee) != types.KindFunction {
		a.report(diag.SemaNotCallable, call.Callee.Span,
			"%s is not callable", a.types.Label(callee))
		return false
	}
	return a.checkCallSignature(expr, call.Args, callee, "function value")
}

// analyzeAssociatedCall resolves Type::func(args).
func (a *Analyzer) analyzeAssociatedCall(expr *ast.Expr, call *ast.CallExpr) bool {
	if call.TypeName == "" || call.Callee == nil || call.Callee.Kind != ast.ExprIdent ||
		call.Callee.Ident == nil {
		a.report(diag.SemaInvalidExpression, expr.Span, "malformed associated call")
		return false
	}
	typeSym := a.resolve(call.TypeName)
	if typeSym == nil {
		a.report(diag.SemaUndeclaredName, expr.Span, "undefined type '%s'", call.TypeName)
		return false
	}
	if typeSym.Kind != symbols.KindType {
		a.report(diag.SemaInvalidType, expr.Span,
			"'%s' is a %s, not a type", call.TypeName, typeSym.Kind)
		return false
	}
	typeSym.Set(symbols.FlagUsed)

	// Enum::Variant(payload) arrives as an associated call
	if a.types.Kind(typeSym.Type) == types.KindEnum {
		return a.analyzeEnumConstruction(expr, typeSym, call.Callee.Ident.Name, call.Args)
	}

	name := call.Callee.Ident.Name
	method := typeSym.Methods[source.NormalizeIdent(name)]
	if method == nil {
		a.report(diag.SemaUndeclaredName, expr.Span,
			"type %s has no associated function '%s'", call.TypeName, name)
		return false
	}
	if method.SelfShape != ast.SelfNone {
		a.report(diag.SemaNotCallable, expr.Span,
			"'%s::%s' takes %s and must be called on a value",
			call.TypeName, name, method.SelfShape)
		return false
	}
	method.Set(symbols.FlagUsed)
	if !a.checkCallDeterminism(method, expr.Span) {
		return false
	}
	return a.checkCallSignature(expr, call.Args, method.Type, "'"+call.TypeName+"::"+name+"'")
}

// analyzeMethodCall resolves receiver.method(args) through the methods
// bound on the receiver's nominal type.
func (a *Analyzer) analyzeMethodCall(expr *ast.Expr, call *ast.CallExpr) bool {
	field := call.Callee.Field
	if field == nil || field.Object == nil {
		a.report(diag.SemaInternal, expr.Span, "method call without receiver")
		return false
	}
	if !a.analyzeExpr(field.Object) {
		return false
	}
	recv := a.ExpressionType(field.Object)
	typeSym := a.typeSymbolFor(recv)
	if typeSym == nil {
		a.report(diag.SemaNotCallable, expr.Span,
			"%s has no methods", a.types.Label(recv))
		return false
	}
	method := typeSym.Methods[source.NormalizeIdent(field.Name)]
	if method == nil {
		a.report(diag.SemaUndeclaredName, expr.Span,
			"type %s has no method '%s'", a.types.Label(recv), field.Name)
		return false
	}
	if method.SelfShape == ast.SelfNone {
		a.report(diag.SemaNotCallable, expr.Span,
			"'%s' is an associated function, call it as %s::%s",
			field.Name, typeSym.Name, field.Name)
		return false
	}
	if method.SelfShape == ast.SelfByReference && !field.Object.IsLValue {
		a.report(diag.SemaNotCallable, expr.Span,
			"method '%s' takes &self and needs an addressable receiver", field.Name)
		return false
	}
	method.Set(symbols.FlagUsed)
	if !a.checkCallDeterminism(method, expr.Span) {
		return false
	}
	return a.checkCallSignature(expr, call.Args, method.Type, "method '"+field.Name+"'")
}

// typeSymbolFor maps a nominal TypeID back to its declaring type symbol.
// Generic instances dispatch through their base type.
func (a *Analyzer) typeSymbolFor(id types.TypeID) *symbols.Entry {
	if gi, ok := a.types.GenericInfo(id); ok {
		id = gi.Base
	}
	var name string
	if si, ok := a.types.StructInfo(id); ok {
		name = si.Name
	} else if ei, ok := a.types.EnumInfo(id); ok {
		name = ei.Name
	} else {
		return nil
	}
	sym := a.resolve(name)
	if sym == nil || sym.Kind != symbols.KindType {
		return nil
	}
	return sym
}

// checkCallSignature validates arity and argument types against a function
// type and attaches the return type to the call expression. Parameters
// typed by an unresolved type parameter accept any argument.
func (a *Analyzer) checkCallSignature(expr *ast.Expr, args []*ast.Expr, fn types.TypeID, what string) bool {
	info, ok := a.types.FunctionInfo(fn)
	if !ok {
		a.report(diag.SemaNotCallable, expr.Span, "%s is not callable", what)
		return false
	}
	if len(args) != len(info.Params) {
		a.report(diag.SemaArityMismatch, expr.Span,
			"%s expects %d argument(s), got %d", what, len(info.Params), len(args))
		return false
	}
	all := true
	for i, arg := range args {
		param := info.Params[i]
		a.pushExpected(param)
		ok := a.analyzeExpr(arg)
		a.popExpected()
		if !ok {
			all = false
			continue
		}
		if a.types.Kind(param) == types.KindTypeParam {
			continue
		}
		if !a.requireAssignable(param, a.ExpressionType(arg), arg.Span,
			what+" argument "+strconv.Itoa(i+1)) {
			all = false
		}
	}
	a.SetExpressionType(expr, info.Return)
	return all
}

// analyzePredeclaredCall hand-validates len and range, whose shapes the
// nominal signatures cannot express; the rest go through the normal path.
func (a *Analyzer) analyzePredeclaredCall(expr *ast.Expr, call *ast.CallExpr, sym *symbols.Entry) bool {
	b := a.types.Builtins()
	switch {
	case isPredeclaredFn(sym, "len"):
		if len(call.Args) != 1 {
			a.report(diag.SemaArityMismatch, expr.Span,
				"len expects 1 argument, got %d", len(call.Args))
			return false
		}
		if !a.analyzeExpr(call.Args[0]) {
			return false
		}
		argType := a.ExpressionType(call.Args[0])
		kind := a.types.Kind(argType)
		if kind != types.KindSlice && kind != types.KindArray && kind != types.KindString {
			a.report(diag.SemaTypeMismatch, call.Args[0].Span,
				"len expects a slice, array or string, got %s", a.types.Label(argType))
			return false
		}
		a.SetExpressionType(expr, b.Usize)
		return true
	case isPredeclaredFn(sym, "range"):
		if len(call.Args) < 1 || len(call.Args) > 2 {
			a.report(diag.SemaArityMismatch, expr.Span,
				"range expects 1 or 2 arguments, got %d", len(call.Args))
			return false
		}
		all := true
		for i, arg := range call.Args {
			a.pushExpected(b.I32)
			ok := a.analyzeExpr(arg)
			a.popExpected()
			if !ok {
				all = false
				continue
			}
			if !a.requireAssignable(b.I32, a.ExpressionType(arg), arg.Span,
				"range argument "+strconv.Itoa(i+1)) {
				all = false
			}
		}
		a.SetExpressionType(expr, a.types.Intern(types.MakeSlice(b.I32, false)))
		return all
	default:
		return a.checkCallSignature(expr, call.Args, sym.Type, "'"+sym.Name+"'")
	}
}

// checkCallDeterminism enforces the tiered concurrency contract: calling a
// function annotated #[non_deterministic] requires the same annotation on
// the caller. The annotation is contagious through the call graph.
func (a *Analyzer) checkCallDeterminism(callee *symbols.Entry, span source.Span) bool {
	if callee.Decl == nil || !ast.HasAnnotation(callee.Decl.Annotations, ast.AnnotationNonDeterministic) {
		return true
	}
	if a.currentFn != nil && a.currentFn.nonDeterministic {
		return true
	}
	a.report(diag.SemaMissingAnnotation, span,
		"calling non-deterministic function '%s' requires #[non_deterministic] on the caller",
		callee.Name)
	return false
}
