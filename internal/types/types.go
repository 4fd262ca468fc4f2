package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// IsValid reports whether the ID refers to an interned type.
func (id TypeID) IsValid() bool { return id != NoTypeID }

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt          // signed integer, Width set
	KindUint         // unsigned integer, Width set
	KindIsize
	KindUsize
	KindFloat // Width 32 or 64
	KindBool
	KindString
	KindVoid
	KindNever
	KindUnit // zero-field struct-like type for void-like values
	KindStruct
	KindEnum
	KindSlice
	KindArray
	KindPointer
	KindFunction
	KindTuple
	KindOption
	KindResult
	KindGenericInstance
	KindTypeParam
	KindTaskHandle // TaskHandle<T> produced by spawn_with_handle
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindIsize:
		return "isize"
	case KindUsize:
		return "usize"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindVoid:
		return "void"
	case KindNever:
		return "Never"
	case KindUnit:
		return "unit"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindSlice:
		return "slice"
	case KindArray:
		return "array"
	case KindPointer:
		return "pointer"
	case KindFunction:
		return "function"
	case KindTuple:
		return "tuple"
	case KindOption:
		return "Option"
	case KindResult:
		return "Result"
	case KindGenericInstance:
		return "generic-instance"
	case KindTypeParam:
		return "type-parameter"
	case KindTaskHandle:
		return "TaskHandle"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsPrimitive reports whether the kind is one of the fixed primitive types.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindInt, KindUint, KindIsize, KindUsize, KindFloat,
		KindBool, KindString, KindVoid, KindNever:
		return true
	default:
		return false
	}
}

// IsInteger covers signed and unsigned integers including isize/usize.
func (k Kind) IsInteger() bool {
	switch k {
	case KindInt, KindUint, KindIsize, KindUsize:
		return true
	default:
		return false
	}
}

// IsSigned reports signed integer kinds.
func (k Kind) IsSigned() bool {
	return k == KindInt || k == KindIsize
}

// IsNumeric covers integers and floats.
func (k Kind) IsNumeric() bool {
	return k.IsInteger() || k == KindFloat
}

// Width captures the precision of integers and floats in bits.
type Width uint8

const (
	WidthNone Width = 0
	Width8    Width = 8
	Width16   Width = 16
	Width32   Width = 32
	Width64   Width = 64
	Width128  Width = 128
)

// Type is a compact descriptor for any supported type. Composite payloads
// (struct fields, enum variants, function signatures, tuple and generic
// arguments) live in interner side tables addressed by Payload.
type Type struct {
	Kind    Kind
	Width   Width  // numeric primitives
	Elem    TypeID // slice/array/pointer/option/task-handle element, result ok side
	Elem2   TypeID // result err side
	Count   uint32 // array length
	Mutable bool   // slice mutability
	Payload uint32 // side-table slot for struct/enum/function/tuple/generic/type-param
}

// Descriptor helpers ---------------------------------------------------------

// MakeInt describes a signed integer of the given width.
func MakeInt(width Width) Type {
	return Type{Kind: KindInt, Width: width}
}

// MakeUint describes an unsigned integer of the given width.
func MakeUint(width Width) Type {
	return Type{Kind: KindUint, Width: width}
}

// MakeFloat describes a floating-point type of the given width.
func MakeFloat(width Width) Type {
	return Type{Kind: KindFloat, Width: width}
}

// MakeSlice describes a bounds-checked view over elem.
func MakeSlice(elem TypeID, mutable bool) Type {
	return Type{Kind: KindSlice, Elem: elem, Mutable: mutable}
}

// MakeArray describes a fixed-size array. The count must already be
// validated as a positive compile-time constant; this layer trusts its
// caller.
func MakeArray(elem TypeID, count uint32) Type {
	return Type{Kind: KindArray, Elem: elem, Count: count}
}

// MakePointer describes a raw pointer.
func MakePointer(elem TypeID) Type {
	return Type{Kind: KindPointer, Elem: elem}
}

// MakeOption describes Option<elem>.
func MakeOption(elem TypeID) Type {
	return Type{Kind: KindOption, Elem: elem}
}

// MakeResult describes Result<ok, err>.
func MakeResult(ok, err TypeID) Type {
	return Type{Kind: KindResult, Elem: ok, Elem2: err}
}

// MakeTaskHandle describes TaskHandle<elem>.
func MakeTaskHandle(elem TypeID) Type {
	return Type{Kind: KindTaskHandle, Elem: elem}
}
