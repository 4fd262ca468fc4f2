package sema

import (
	"fortio.org/safecast"

	"vega/internal/ast"
	"vega/internal/diag"
	"vega/internal/symbols"
	"vega/internal/types"
)

// analyzeArrayLiteral types [a, b, c]. When an array or slice context is
// in force its element type drives the elements; otherwise the first
// element sets the expected type for the rest.
func (a *Analyzer) analyzeArrayLiteral(expr *ast.Expr) bool {
	arr := expr.Array
	if arr == nil {
		a.report(diag.SemaInternal, expr.Span, "array literal without payload")
		return false
	}
	elemType := types.NoTypeID
	if exp := a.expectedType(); exp.IsValid() {
		if t, ok := a.types.Lookup(exp); ok && (t.Kind == types.KindSlice || t.Kind == types.KindArray) {
			elemType = t.Elem
		}
	}
	if len(arr.Elements) == 0 {
		if !elemType.IsValid() {
			a.report(diag.SemaTypeInferenceFailed, expr.Span,
				"cannot infer the element type of an empty array literal")
			return false
		}
		a.SetExpressionType(expr, a.types.Intern(types.MakeSlice(elemType, false)))
		return true
	}

	all := true
	constant := true
	for i, el := range arr.Elements {
		if elemType.IsValid() {
			a.pushExpected(elemType)
		}
		ok := a.analyzeExpr(el)
		if elemType.IsValid() {
			a.popExpected()
		}
		if !ok {
			all = false
			continue
		}
		constant = constant && el.IsConstantExpr
		got := a.ExpressionType(el)
		if !elemType.IsValid() {
			elemType = got
			continue
		}
		if !a.typeAssignable(elemType, got) {
			a.report(diag.SemaTypeMismatch, el.Span,
				"array element %d is %s, expected %s", i, a.types.Label(got), a.types.Label(elemType))
			all = false
		}
	}
	if !all || !elemType.IsValid() {
		return false
	}
	expr.IsConstantExpr = constant
	count, err := safecast.Conv[uint32](len(arr.Elements))
	if err != nil {
		a.report(diag.SemaInvalidArraySize, expr.Span, "array literal too large")
		return false
	}
	a.SetExpressionType(expr, a.types.Intern(types.MakeArray(elemType, count)))
	return true
}

// analyzeRepeatedArray types [value; count]. The count must fold to a
// positive compile-time integer.
func (a *Analyzer) analyzeRepeatedArray(expr *ast.Expr) bool {
	rep := expr.Repeated
	if rep == nil || rep.Value == nil || rep.Count == nil {
		a.report(diag.SemaInternal, expr.Span, "repeated-array literal without payload")
		return false
	}
	elemType := types.NoTypeID
	if exp := a.expectedType(); exp.IsValid() {
		if t, ok := a.types.Lookup(exp); ok && (t.Kind == types.KindSlice || t.Kind == types.KindArray) {
			elemType = t.Elem
		}
	}
	if elemType.IsValid() {
		a.pushExpected(elemType)
	}
	valueOK := a.analyzeExpr(rep.Value)
	if elemType.IsValid() {
		a.popExpected()
	}
	if !valueOK {
		return false
	}

	count, ok := a.EvalConst(rep.Count)
	if !ok {
		a.report(diag.SemaInvalidArraySize, rep.Count.Span,
			"repeated-array count must be a compile-time constant")
		return false
	}
	if count.Kind != ValueInt || count.Int <= 0 {
		a.report(diag.SemaInvalidArraySize, rep.Count.Span,
			"repeated-array count must be a positive integer, got %s", count)
		return false
	}
	n, err := safecast.Conv[uint32](count.Int)
	if err != nil {
		a.report(diag.SemaInvalidArraySize, rep.Count.Span,
			"repeated-array count %d out of range", count.Int)
		return false
	}
	expr.IsConstantExpr = rep.Value.IsConstantExpr
	elem := a.ExpressionType(rep.Value)
	a.SetExpressionType(expr, a.types.Intern(types.MakeArray(elem, n)))
	return true
}

func (a *Analyzer) analyzeTupleLiteral(expr *ast.Expr) bool {
	tup := expr.Tuple
	if tup == nil {
		a.report(diag.SemaInternal, expr.Span, "tuple literal without payload")
		return false
	}
	if len(tup.Elements) < 2 {
		a.report(diag.SemaTupleArity, expr.Span,
			"tuples need at least 2 elements, got %d", len(tup.Elements))
		return false
	}
	var expectedElems []types.TypeID
	if exp := a.expectedType(); exp.IsValid() {
		if ti, ok := a.types.TupleInfo(exp); ok && len(ti.Elems) == len(tup.Elements) {
			expectedElems = ti.Elems
		}
	}
	elems := make([]types.TypeID, 0, len(tup.Elements))
	all := true
	constant := true
	for i, el := range tup.Elements {
		if expectedElems != nil {
			a.pushExpected(expectedElems[i])
		}
		ok := a.analyzeExpr(el)
		if expectedElems != nil {
			a.popExpected()
		}
		if !ok {
			all = false
			continue
		}
		constant = constant && el.IsConstantExpr
		elems = append(elems, a.ExpressionType(el))
	}
	if !all {
		return false
	}
	expr.IsConstantExpr = constant
	a.SetExpressionType(expr, a.types.RegisterTuple(elems))
	return true
}

// analyzeStructLiteral validates Type { field: value, ... }: the type must
// be a struct, every initializer must name a declared field exactly once,
// and every declared field must be covered.
func (a *Analyzer) analyzeStructLiteral(expr *ast.Expr) bool {
	lit := expr.Struct
	if lit == nil {
		a.report(diag.SemaInternal, expr.Span, "struct literal without payload")
		return false
	}
	sym := a.resolve(lit.TypeName)
	if sym == nil {
		a.report(diag.SemaUndeclaredName, expr.Span, "undefined type '%s'", lit.TypeName)
		return false
	}
	if sym.Kind != symbols.KindType || a.types.Kind(sym.Type) != types.KindStruct {
		a.report(diag.SemaInvalidType, expr.Span, "'%s' is not a struct type", lit.TypeName)
		return false
	}
	sym.Set(symbols.FlagUsed)
	si, ok := a.types.StructInfo(sym.Type)
	if !ok {
		return false
	}

	resultType := sym.Type
	if len(lit.TypeArgs) > 0 || sym.TypeParamCount > 0 {
		if len(lit.TypeArgs) != sym.TypeParamCount {
			a.report(diag.SemaGenericArity, expr.Span,
				"generic struct %s instantiated with %d type argument(s), needs %d",
				lit.TypeName, len(lit.TypeArgs), sym.TypeParamCount)
			return false
		}
		args := make([]types.TypeID, 0, len(lit.TypeArgs))
		for _, arg := range lit.TypeArgs {
			id := a.resolveTypeNode(arg)
			if !id.IsValid() {
				return false
			}
			args = append(args, id)
		}
		resultType = a.types.RegisterGenericInstance(sym.Type, args)
	}

	seen := make(map[string]bool, len(lit.Fields))
	all := true
	for _, init := range lit.Fields {
		if init == nil {
			continue
		}
		if seen[init.Name] {
			a.report(diag.SemaDuplicateField, init.Span,
				"field '%s' initialized more than once", init.Name)
			all = false
			continue
		}
		seen[init.Name] = true
		f := si.FieldByName(init.Name)
		if f == nil {
			a.report(diag.SemaUnknownField, init.Span,
				"struct %s has no field named '%s'", si.Name, init.Name)
			all = false
			continue
		}
		a.pushExpected(f.Type)
		ok := a.analyzeExpr(init.Value)
		a.popExpected()
		if !ok {
			all = false
			continue
		}
		// type-parameter fields are checked at instantiation, not here
		if a.types.Kind(f.Type) != types.KindTypeParam {
			if !a.requireAssignable(f.Type, a.ExpressionType(init.Value), init.Value.Span,
				"field '"+init.Name+"'") {
				all = false
			}
		}
	}
	for i := range si.Fields {
		if !seen[si.Fields[i].Name] {
			a.report(diag.SemaMissingField, expr.Span,
				"struct literal is missing field '%s'", si.Fields[i].Name)
			all = false
		}
	}
	if !all {
		return false
	}
	a.SetExpressionType(expr, resultType)
	return true
}

func (a *Analyzer) analyzeEnumLiteral(expr *ast.Expr) bool {
	lit := expr.Enum
	if lit == nil {
		a.report(diag.SemaInternal, expr.Span, "enum literal without payload")
		return false
	}
	sym := a.resolve(lit.EnumName)
	if sym == nil {
		a.report(diag.SemaUndeclaredName, expr.Span, "undefined type '%s'", lit.EnumName)
		return false
	}
	if sym.Kind != symbols.KindType || a.types.Kind(sym.Type) != types.KindEnum {
		a.report(diag.SemaInvalidType, expr.Span, "'%s' is not an enum type", lit.EnumName)
		return false
	}
	sym.Set(symbols.FlagUsed)
	return a.analyzeEnumConstruction(expr, sym, lit.Variant, lit.Payload)
}

// analyzeEnumConstruction validates a variant reference with its payload
// arity. Shared between enum literals, Enum.Variant field syntax, and
// Enum::Variant associated-call syntax.
func (a *Analyzer) analyzeEnumConstruction(expr *ast.Expr, enumSym *symbols.Entry, variant string, payload []*ast.Expr) bool {
	ei, ok := a.types.EnumInfo(enumSym.Type)
	if !ok {
		return false
	}
	v := ei.VariantByName(variant)
	if v == nil {
		a.report(diag.SemaUnknownVariant, expr.Span,
			"enum %s has no variant '%s'", ei.Name, variant)
		return false
	}
	if len(payload) != len(v.Payload) {
		a.report(diag.SemaArityMismatch, expr.Span,
			"variant %s.%s carries %d value(s), got %d",
			ei.Name, variant, len(v.Payload), len(payload))
		return false
	}
	all := true
	for i, p := range payload {
		a.pushExpected(v.Payload[i])
		ok := a.analyzeExpr(p)
		a.popExpected()
		if !ok {
			all = false
			continue
		}
		if !a.requireAssignable(v.Payload[i], a.ExpressionType(p), p.Span,
			"variant payload") {
			all = false
		}
	}
	if !all {
		return false
	}
	a.SetExpressionType(expr, enumSym.Type)
	return true
}
