package types

import (
	"testing"

	"vega/internal/source"
)

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.I32 == NoTypeID || b.Bool == NoTypeID || b.Never == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	i32, _ := in.Lookup(b.I32)
	if i32.Kind != KindInt || i32.Width != Width32 {
		t.Fatalf("expected i32 descriptor, got %+v", i32)
	}
}

func TestPrimitivesAreSingletons(t *testing.T) {
	in := NewInterner()
	a := in.Intern(MakeInt(Width64))
	b := in.Intern(MakeInt(Width64))
	if a != b || a != in.Builtins().I64 {
		t.Fatalf("i64 must intern to the builtin singleton")
	}
}

func TestSliceRoundTripEquality(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	s1 := in.Intern(MakeSlice(b.I32, false))
	s2 := in.Intern(MakeSlice(b.I32, false))
	if !in.Equal(s1, s2) {
		t.Fatalf("independently built Slice(i32) must be equal")
	}
	if in.Hash(s1) != in.Hash(s2) {
		t.Fatalf("equal types must hash equal")
	}
	mut := in.Intern(MakeSlice(b.I32, true))
	if in.Equal(s1, mut) {
		t.Fatalf("mutable and immutable slices must differ")
	}
}

func TestStructsAreNominal(t *testing.T) {
	in := NewInterner()
	a := in.RegisterStruct("Point", source.Span{}, false)
	b := in.RegisterStruct("Point", source.Span{}, false)
	if in.Equal(a, b) {
		t.Fatalf("separately registered structs must be distinct types")
	}
}

func TestAddStructFieldRejectsDuplicates(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	id := in.RegisterStruct("Point", source.Span{}, false)
	if !in.AddStructField(id, StructField{Name: "x", Type: b.I32}) {
		t.Fatalf("first field insert failed")
	}
	if in.AddStructField(id, StructField{Name: "x", Type: b.I64}) {
		t.Fatalf("duplicate field name must be rejected")
	}
	info, ok := in.StructInfo(id)
	if !ok || len(info.Fields) != 1 {
		t.Fatalf("struct info wrong: %+v", info)
	}
}

func TestEnumVariants(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	id := in.RegisterEnum("Shape", source.Span{})
	if !in.AddEnumVariant(id, EnumVariant{Name: "Circle", Payload: []TypeID{b.F64}}) {
		t.Fatalf("variant insert failed")
	}
	if in.AddEnumVariant(id, EnumVariant{Name: "Circle"}) {
		t.Fatalf("duplicate variant must be rejected")
	}
	info, _ := in.EnumInfo(id)
	if v := info.VariantByName("Circle"); v == nil || len(v.Payload) != 1 {
		t.Fatalf("variant lookup failed")
	}
}

func TestFunctionSignaturesMemoized(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	f1 := in.RegisterFunction(b.Bool, []TypeID{b.I32, b.String})
	f2 := in.RegisterFunction(b.Bool, []TypeID{b.I32, b.String})
	if f1 != f2 {
		t.Fatalf("identical signatures must share a TypeID")
	}
	f3 := in.RegisterFunction(b.Bool, []TypeID{b.String, b.I32})
	if f1 == f3 {
		t.Fatalf("parameter order must matter")
	}
}

func TestGenericInstancesMemoized(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	base := in.RegisterStruct("Vec", source.Span{}, false)
	g1 := in.RegisterGenericInstance(base, []TypeID{b.I32})
	g2 := in.RegisterGenericInstance(base, []TypeID{b.I32})
	if !in.Equal(g1, g2) {
		t.Fatalf("memoized instantiation must return the same TypeID")
	}
	g3 := in.RegisterGenericInstance(base, []TypeID{b.I64})
	if in.Equal(g1, g3) {
		t.Fatalf("different type arguments must differ")
	}
}

func TestTupleMemoization(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	t1 := in.RegisterTuple([]TypeID{b.I32, b.Bool})
	t2 := in.RegisterTuple([]TypeID{b.I32, b.Bool})
	if t1 != t2 {
		t.Fatalf("identical tuples must share a TypeID")
	}
	info, ok := in.TupleInfo(t1)
	if !ok || len(info.Elems) != 2 {
		t.Fatalf("tuple info wrong")
	}
}

func TestSizeOf(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	cases := []struct {
		id   TypeID
		want uint64
	}{
		{b.I8, 1},
		{b.I32, 4},
		{b.I128, 16},
		{b.Usize, 8},
		{b.F64, 8},
		{b.Bool, 1},
		{b.String, 16},
		{b.Void, 0},
		{in.Intern(MakeArray(b.I32, 5)), 20},
		{in.Intern(MakeSlice(b.I32, false)), 16},
		{in.Intern(MakePointer(b.I64)), 8},
	}
	for _, c := range cases {
		got, ok := in.SizeOf(c.id)
		if !ok || got != c.want {
			t.Errorf("sizeof(%s) = %d (ok=%v), want %d", in.Label(c.id), got, ok, c.want)
		}
	}
}

func TestStructSizePackedVsPadded(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	packed := in.RegisterStruct("P", source.Span{}, true)
	in.AddStructField(packed, StructField{Name: "a", Type: b.U8})
	in.AddStructField(packed, StructField{Name: "b", Type: b.U32})
	if size, _ := in.SizeOf(packed); size != 5 {
		t.Fatalf("packed size = %d, want 5", size)
	}

	padded := in.RegisterStruct("Q", source.Span{}, false)
	in.AddStructField(padded, StructField{Name: "a", Type: b.U8})
	in.AddStructField(padded, StructField{Name: "b", Type: b.U32})
	if size, _ := in.SizeOf(padded); size != 8 {
		t.Fatalf("padded size = %d, want 8", size)
	}
}

func TestTypeParamHasNoSize(t *testing.T) {
	in := NewInterner()
	tp := in.RegisterTypeParam("T", source.Span{})
	if _, ok := in.SizeOf(tp); ok {
		t.Fatalf("type parameters must have no static size")
	}
}

func TestLabels(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	cases := map[TypeID]string{
		b.I32:                              "i32",
		b.Never:                            "Never",
		in.Intern(MakeSlice(b.I32, false)): "[]i32",
		in.Intern(MakeArray(b.U8, 4)):      "[u8; 4]",
		in.Intern(MakeOption(b.String)):    "Option<string>",
		in.Intern(MakeResult(b.I32, b.String)):   "Result<i32, string>",
		in.Intern(MakeTaskHandle(b.Bool)):        "TaskHandle<bool>",
		in.RegisterTuple([]TypeID{b.I32, b.I64}): "(i32, i64)",
	}
	for id, want := range cases {
		if got := in.Label(id); got != want {
			t.Errorf("label = %q, want %q", got, want)
		}
	}
}
