package types

// Target layout constants. The analyzer assumes an LP64 target: pointers and
// size types are 8 bytes, slices and strings are pointer+length pairs.
const (
	PointerSize = 8
	SliceSize   = PointerSize + 8
	enumTagSize = 4
)

// SizeOf computes the byte size of a type for sizeof and array layout.
// Returns false for types without a knowable static size (type parameters,
// generic instances, void-like and Never types inside composites are fine
// at zero).
func (in *Interner) SizeOf(id TypeID) (uint64, bool) {
	tt, ok := in.Lookup(id)
	if !ok {
		return 0, false
	}
	switch tt.Kind {
	case KindInt, KindUint, KindFloat:
		return uint64(tt.Width) / 8, true
	case KindIsize, KindUsize, KindPointer, KindFunction:
		return PointerSize, true
	case KindBool:
		return 1, true
	case KindString, KindSlice:
		return SliceSize, true
	case KindVoid, KindNever, KindUnit:
		return 0, true
	case KindArray:
		elem, ok := in.SizeOf(tt.Elem)
		if !ok {
			return 0, false
		}
		return elem * uint64(tt.Count), true
	case KindStruct:
		info := in.structInfo(id)
		if info == nil {
			return 0, false
		}
		return in.structSize(info)
	case KindEnum:
		info := in.enumInfo(id)
		if info == nil {
			return 0, false
		}
		size := uint64(0)
		for i := range info.Variants {
			payload := uint64(0)
			for _, p := range info.Variants[i].Payload {
				ps, ok := in.SizeOf(p)
				if !ok {
					return 0, false
				}
				payload += ps
			}
			if payload > size {
				size = payload
			}
		}
		return enumTagSize + size, true
	case KindTuple:
		info, ok := in.TupleInfo(id)
		if !ok {
			return 0, false
		}
		size := uint64(0)
		for _, e := range info.Elems {
			es, ok := in.SizeOf(e)
			if !ok {
				return 0, false
			}
			size += es
		}
		return size, true
	case KindOption:
		elem, ok := in.SizeOf(tt.Elem)
		if !ok {
			return 0, false
		}
		return enumTagSize + elem, true
	case KindResult:
		okSize, ok1 := in.SizeOf(tt.Elem)
		errSize, ok2 := in.SizeOf(tt.Elem2)
		if !ok1 || !ok2 {
			return 0, false
		}
		if errSize > okSize {
			okSize = errSize
		}
		return enumTagSize + okSize, true
	case KindTaskHandle:
		return PointerSize, true
	default:
		// type parameters and uninstantiated generics have no static size
		return 0, false
	}
}

func (in *Interner) structSize(info *StructInfo) (uint64, bool) {
	size := uint64(0)
	maxAlign := uint64(1)
	for i := range info.Fields {
		fs, ok := in.SizeOf(info.Fields[i].Type)
		if !ok {
			return 0, false
		}
		if info.Packed {
			size += fs
			continue
		}
		align := in.alignOf(info.Fields[i].Type)
		if align > maxAlign {
			maxAlign = align
		}
		if align > 0 && size%align != 0 {
			size += align - size%align
		}
		size += fs
	}
	if !info.Packed && maxAlign > 0 && size%maxAlign != 0 {
		size += maxAlign - size%maxAlign
	}
	return size, true
}

func (in *Interner) alignOf(id TypeID) uint64 {
	size, ok := in.SizeOf(id)
	if !ok || size == 0 {
		return 1
	}
	if size >= PointerSize {
		return PointerSize
	}
	// round down to a power of two
	align := uint64(1)
	for align*2 <= size {
		align *= 2
	}
	return align
}
