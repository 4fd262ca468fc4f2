package sema

import (
	"vega/internal/symbols"
	"vega/internal/types"
)

// installBuiltins seeds the global scope with the primitive type names and
// the predeclared functions. Runs once per New/Reset.
func (a *Analyzer) installBuiltins() {
	b := a.types.Builtins()
	a.builtinTypes = map[string]types.TypeID{
		"i8":     b.I8,
		"i16":    b.I16,
		"i32":    b.I32,
		"i64":    b.I64,
		"i128":   b.I128,
		"u8":     b.U8,
		"u16":    b.U16,
		"u32":    b.U32,
		"u64":    b.U64,
		"u128":   b.U128,
		"isize":  b.Isize,
		"usize":  b.Usize,
		"f32":    b.F32,
		"f64":    b.F64,
		"bool":   b.Bool,
		"string": b.String,
		"void":   b.Void,
		"Never":  b.Never,
	}
	for name, id := range a.builtinTypes {
		a.global.Insert(name, &symbols.Entry{
			Name:  name,
			Kind:  symbols.KindType,
			Type:  id,
			Flags: symbols.FlagPredeclared | symbols.FlagInitialized,
		})
	}
	a.installPredeclared()
}

// predeclaredSpec describes one predeclared function's shape. len and range
// have hand-written argument validators in the call analyzer; the signatures
// here cover resolution and diagnostics.
type predeclaredSpec struct {
	name   string
	ret    types.TypeID
	params []types.TypeID
}

func (a *Analyzer) installPredeclared() {
	b := a.types.Builtins()
	i32Slice := a.types.Intern(types.MakeSlice(b.I32, false))
	specs := []predeclaredSpec{
		{name: "log", ret: b.Void, params: []types.TypeID{b.String}},
		{name: "panic", ret: b.Never, params: []types.TypeID{b.String}},
		{name: "exit", ret: b.Never, params: []types.TypeID{b.I32}},
		// range(end) and range(start, end); arity is validated by hand
		{name: "range", ret: i32Slice, params: []types.TypeID{b.I32}},
		// len accepts any slice or array; the parameter here is nominal
		{name: "len", ret: b.Usize, params: []types.TypeID{i32Slice}},
	}
	for _, spec := range specs {
		fn := a.types.RegisterFunction(spec.ret, spec.params)
		a.global.Insert(spec.name, &symbols.Entry{
			Name:  spec.name,
			Kind:  symbols.KindFunction,
			Type:  fn,
			Flags: symbols.FlagPredeclared | symbols.FlagInitialized,
		})
	}
}

// isPredeclaredFn reports whether the entry is one of the hand-validated
// predeclared functions.
func isPredeclaredFn(e *symbols.Entry, name string) bool {
	return e != nil && e.Kind == symbols.KindFunction && e.Has(symbols.FlagPredeclared) && e.Name == name
}
