package types

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the process-wide primitive singletons. Within
// one interner every primitive is interned exactly once, so identity
// comparison on TypeIDs is structural equality for primitives.
type Builtins struct {
	Invalid TypeID
	I8      TypeID
	I16     TypeID
	I32     TypeID
	I64     TypeID
	I128    TypeID
	U8      TypeID
	U16     TypeID
	U32     TypeID
	U64     TypeID
	U128    TypeID
	Isize   TypeID
	Usize   TypeID
	F32     TypeID
	F64     TypeID
	Bool    TypeID
	String  TypeID
	Void    TypeID
	Never   TypeID
	Unit    TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Structural kinds (slices, arrays, pointers, options, results, functions,
// tuples, generic instances) are deduplicated, so two independently built
// descriptors with identical structure receive the same TypeID. Nominal
// kinds (structs, enums, type parameters) get a fresh ID per registration.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	builtins Builtins

	structs   []StructInfo
	enums     []EnumInfo
	fns       []FunctionInfo
	tuples    []TupleInfo
	generics  []GenericInfo
	params    []TypeParamInfo
	fnMemo    map[string]TypeID
	tupleMemo map[string]TypeID
	genMemo   map[string]TypeID
}

// NewInterner constructs an interner seeded with the builtin primitives.
func NewInterner() *Interner {
	in := &Interner{
		index:     make(map[Type]TypeID, 64),
		fnMemo:    make(map[string]TypeID),
		tupleMemo: make(map[string]TypeID),
		genMemo:   make(map[string]TypeID),
	}
	// slot 0 of every side table is an invalid sentinel
	in.structs = append(in.structs, StructInfo{})
	in.enums = append(in.enums, EnumInfo{})
	in.fns = append(in.fns, FunctionInfo{})
	in.tuples = append(in.tuples, TupleInfo{})
	in.generics = append(in.generics, GenericInfo{})
	in.params = append(in.params, TypeParamInfo{})

	b := &in.builtins
	b.Invalid = in.internRaw(Type{Kind: KindInvalid})
	b.I8 = in.Intern(MakeInt(Width8))
	b.I16 = in.Intern(MakeInt(Width16))
	b.I32 = in.Intern(MakeInt(Width32))
	b.I64 = in.Intern(MakeInt(Width64))
	b.I128 = in.Intern(MakeInt(Width128))
	b.U8 = in.Intern(MakeUint(Width8))
	b.U16 = in.Intern(MakeUint(Width16))
	b.U32 = in.Intern(MakeUint(Width32))
	b.U64 = in.Intern(MakeUint(Width64))
	b.U128 = in.Intern(MakeUint(Width128))
	b.Isize = in.Intern(Type{Kind: KindIsize})
	b.Usize = in.Intern(Type{Kind: KindUsize})
	b.F32 = in.Intern(MakeFloat(Width32))
	b.F64 = in.Intern(MakeFloat(Width64))
	b.Bool = in.Intern(Type{Kind: KindBool})
	b.String = in.Intern(Type{Kind: KindString})
	b.Void = in.Intern(Type{Kind: KindVoid})
	b.Never = in.Intern(Type{Kind: KindNever})
	b.Unit = in.Intern(Type{Kind: KindUnit})
	return in
}

// Builtins returns TypeIDs for the primitive singletons.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to storage without consulting the dedup map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Kind returns the kind for a TypeID, KindInvalid for unknown IDs.
func (in *Interner) Kind(id TypeID) Kind {
	tt, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return tt.Kind
}

// Len reports the number of interned descriptors including the sentinel.
func (in *Interner) Len() int { return len(in.types) }

// Equal reports structural equality. Structural kinds are canonicalized by
// interning, nominal kinds by registration, so ID identity is exactly
// structural equality.
func (in *Interner) Equal(a, b TypeID) bool {
	return a.IsValid() && a == b
}

// Hash returns a structural hash consistent with Equal, fit for use as a
// map key when memoizing instantiations.
func (in *Interner) Hash(id TypeID) uint64 {
	tt, ok := in.Lookup(id)
	if !ok {
		return 0
	}
	// FNV-1a over the canonical descriptor fields.
	const prime = 1099511628211
	h := uint64(14695981039346656037)
	mix := func(v uint64) {
		h ^= v
		h *= prime
	}
	mix(uint64(tt.Kind))
	mix(uint64(tt.Width))
	mix(uint64(tt.Elem))
	mix(uint64(tt.Elem2))
	mix(uint64(tt.Count))
	if tt.Mutable {
		mix(1)
	}
	mix(uint64(tt.Payload))
	return h
}

func memoKey(parts ...TypeID) string {
	var sb strings.Builder
	for i, p := range parts {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", p)
	}
	return sb.String()
}
