package sema

import (
	"fortio.org/safecast"

	"vega/internal/ast"
	"vega/internal/diag"
	"vega/internal/symbols"
	"vega/internal/types"
)

// resolveTypeNode converts type syntax into a TypeID, resolving names
// through the scope chain. On failure a diagnostic has been reported and
// NoTypeID is returned.
func (a *Analyzer) resolveTypeNode(node *ast.TypeNode) types.TypeID {
	if node == nil {
		return types.NoTypeID
	}
	switch node.Kind {
	case ast.TypeNamed:
		return a.resolveNamedType(node)
	case ast.TypeSlice:
		elem := a.resolveTypeNode(node.Elem)
		if !elem.IsValid() {
			return types.NoTypeID
		}
		return a.types.Intern(types.MakeSlice(elem, node.Mutable))
	case ast.TypeArray:
		return a.resolveArrayType(node)
	case ast.TypePointer:
		elem := a.resolveTypeNode(node.Elem)
		if !elem.IsValid() {
			return types.NoTypeID
		}
		return a.types.Intern(types.MakePointer(elem))
	case ast.TypeTuple:
		if len(node.Elems) < 2 {
			a.report(diag.SemaTupleArity, node.Span, "tuple types need at least 2 elements, got %d", len(node.Elems))
			return types.NoTypeID
		}
		elems := make([]types.TypeID, 0, len(node.Elems))
		for _, e := range node.Elems {
			id := a.resolveTypeNode(e)
			if !id.IsValid() {
				return types.NoTypeID
			}
			elems = append(elems, id)
		}
		return a.types.RegisterTuple(elems)
	case ast.TypeFunction:
		params := make([]types.TypeID, 0, len(node.Params))
		for _, p := range node.Params {
			id := a.resolveTypeNode(p)
			if !id.IsValid() {
				return types.NoTypeID
			}
			params = append(params, id)
		}
		ret := a.types.Builtins().Void
		if node.Return != nil {
			ret = a.resolveTypeNode(node.Return)
			if !ret.IsValid() {
				return types.NoTypeID
			}
		}
		return a.types.RegisterFunction(ret, params)
	case ast.TypeOption:
		elem := a.resolveTypeNode(node.Elem)
		if !elem.IsValid() {
			return types.NoTypeID
		}
		return a.types.Intern(types.MakeOption(elem))
	case ast.TypeResult:
		ok := a.resolveTypeNode(node.Ok)
		errID := a.resolveTypeNode(node.Err)
		if !ok.IsValid() || !errID.IsValid() {
			return types.NoTypeID
		}
		return a.types.Intern(types.MakeResult(ok, errID))
	default:
		a.report(diag.SemaInvalidType, node.Span, "unsupported type syntax kind %d", node.Kind)
		return types.NoTypeID
	}
}

func (a *Analyzer) resolveNamedType(node *ast.TypeNode) types.TypeID {
	if id, ok := a.builtinTypes[node.Name]; ok {
		if len(node.TypeArgs) > 0 {
			a.report(diag.SemaGenericArity, node.Span, "primitive type %s takes no type arguments", node.Name)
			return types.NoTypeID
		}
		return id
	}
	sym := a.resolve(node.Name)
	if sym == nil {
		a.report(diag.SemaUndeclaredName, node.Span, "undefined type '%s'", node.Name)
		return types.NoTypeID
	}
	if sym.Kind != symbols.KindType && sym.Kind != symbols.KindTypeParameter {
		a.report(diag.SemaInvalidType, node.Span, "'%s' is a %s, not a type", node.Name, sym.Kind)
		return types.NoTypeID
	}
	sym.Set(symbols.FlagUsed)
	if len(node.TypeArgs) == 0 {
		if sym.TypeParamCount > 0 {
			a.report(diag.SemaGenericArity, node.Span,
				"generic type %s needs %d type argument(s)", node.Name, sym.TypeParamCount)
			return types.NoTypeID
		}
		return sym.Type
	}
	if sym.TypeParamCount != len(node.TypeArgs) {
		a.report(diag.SemaGenericArity, node.Span,
			"generic type %s instantiated with %d type argument(s), needs %d",
			node.Name, len(node.TypeArgs), sym.TypeParamCount)
		return types.NoTypeID
	}
	args := make([]types.TypeID, 0, len(node.TypeArgs))
	for _, arg := range node.TypeArgs {
		id := a.resolveTypeNode(arg)
		if !id.IsValid() {
			return types.NoTypeID
		}
		args = append(args, id)
	}
	return a.types.RegisterGenericInstance(sym.Type, args)
}

func (a *Analyzer) resolveArrayType(node *ast.TypeNode) types.TypeID {
	elem := a.resolveTypeNode(node.Elem)
	if !elem.IsValid() {
		return types.NoTypeID
	}
	size, ok := a.EvalConst(node.Size)
	if !ok {
		a.report(diag.SemaInvalidArraySize, node.Span, "array size must be a compile-time constant")
		return types.NoTypeID
	}
	if size.Kind != ValueInt || size.Int <= 0 {
		a.report(diag.SemaInvalidArraySize, node.Span, "array size must be a positive integer, got %s", size)
		return types.NoTypeID
	}
	count, err := safecast.Conv[uint32](size.Int)
	if err != nil {
		a.report(diag.SemaInvalidArraySize, node.Span, "array size %d out of range", size.Int)
		return types.NoTypeID
	}
	return a.types.Intern(types.MakeArray(elem, count))
}
