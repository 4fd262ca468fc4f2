package sema

import (
	"vega/internal/ast"
	"vega/internal/diag"
	"vega/internal/symbols"
	"vega/internal/types"
)

// const evaluation states for cycle detection
const (
	constUnvisited uint8 = iota
	constVisiting
	constDone
)

// hoistConst declares the const symbol before evaluation so constants can
// reference each other in any order; cycles are caught by the visiting
// state machine in evalConstSymbol.
func (a *Analyzer) hoistConst(d *ast.Decl) {
	c := d.Const
	if c == nil {
		a.report(diag.SemaInternal, d.Span, "const declaration without payload")
		return
	}
	entry := &symbols.Entry{
		Name:       c.Name,
		Kind:       symbols.KindConst,
		Decl:       d,
		Span:       d.Span,
		Visibility: declVisibility(d.Visibility),
	}
	if d.Visibility == ast.Public {
		entry.Set(symbols.FlagExported)
	}
	if !a.declare(c.Name, entry) {
		a.report(diag.SemaRedeclaration, d.Span, "'%s' is already declared", c.Name)
	}
}

func (a *Analyzer) analyzeConst(d *ast.Decl) bool {
	c := d.Const
	if c == nil {
		return false
	}
	sym := a.resolve(c.Name)
	if sym == nil || sym.Kind != symbols.KindConst {
		return false
	}
	return a.evalConstSymbol(sym)
}

// evalConstSymbol folds a constant's initializer, on demand when another
// constant references it first. Visiting twice means a dependency cycle.
func (a *Analyzer) evalConstSymbol(sym *symbols.Entry) bool {
	switch a.constState[sym] {
	case constDone:
		return sym.Const != nil
	case constVisiting:
		a.report(diag.SemaConstCycle, sym.Span,
			"constant '%s' depends on itself", sym.Name)
		a.constState[sym] = constDone
		return false
	}
	a.constState[sym] = constVisiting
	defer func() { a.constState[sym] = constDone }()

	d := sym.Decl
	if d == nil || d.Const == nil || d.Const.Value == nil {
		a.report(diag.SemaInternal, sym.Span, "constant '%s' without an initializer", sym.Name)
		return false
	}
	c := d.Const

	declared := types.NoTypeID
	if c.Type != nil {
		declared = a.resolveTypeNode(c.Type)
		if !declared.IsValid() {
			return false
		}
	}
	if declared.IsValid() {
		a.pushExpected(declared)
	}
	exprOK := a.analyzeExpr(c.Value)
	if declared.IsValid() {
		a.popExpected()
	}
	if !exprOK {
		return false
	}
	got := a.ExpressionType(c.Value)
	if declared.IsValid() {
		if !a.requireAssignable(declared, got, c.Value.Span, "constant '"+c.Name+"'") {
			return false
		}
	} else {
		declared = got
	}

	v, ok := a.EvalConst(c.Value)
	if !ok {
		a.report(diag.SemaConstNotConstant, c.Value.Span,
			"initializer of '%s' is not a compile-time constant", c.Name)
		return false
	}
	if v.Kind == ValueInt && a.types.Kind(declared).IsInteger() {
		if !a.intLiteralFits(v.Int, declared) {
			a.report(diag.SemaConstOverflow, c.Value.Span,
				"constant value %d does not fit %s", v.Int, a.types.Label(declared))
			return false
		}
	}

	sym.Type = declared
	sym.Const = v
	sym.Set(symbols.FlagInitialized)
	return true
}
