package types

import (
	"slices"
)

// FunctionInfo stores a function signature.
type FunctionInfo struct {
	Return TypeID
	Params []TypeID
}

// TupleInfo stores the element types for a tuple type.
type TupleInfo struct {
	Elems []TypeID
}

// GenericInfo stores a generic instantiation: base type plus arguments.
type GenericInfo struct {
	Base TypeID
	Args []TypeID
}

// RegisterFunction returns the canonical TypeID for fn(params) -> ret.
// Identical signatures are memoized to a single ID.
func (in *Interner) RegisterFunction(ret TypeID, params []TypeID) TypeID {
	key := "f:" + memoKey(append([]TypeID{ret}, params...)...)
	if id, ok := in.fnMemo[key]; ok {
		return id
	}
	slot := appendSlot(&in.fns, FunctionInfo{Return: ret, Params: slices.Clone(params)})
	id := in.internRaw(Type{Kind: KindFunction, Payload: slot})
	in.fnMemo[key] = id
	return id
}

// FunctionInfo returns the signature for a function TypeID.
func (in *Interner) FunctionInfo(id TypeID) (*FunctionInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFunction {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[tt.Payload], true
}

// RegisterTuple returns the canonical TypeID for a tuple of elems.
// The grammar-level minimum of two elements is the caller's concern; this
// layer trusts its caller.
func (in *Interner) RegisterTuple(elems []TypeID) TypeID {
	key := "t:" + memoKey(elems...)
	if id, ok := in.tupleMemo[key]; ok {
		return id
	}
	slot := appendSlot(&in.tuples, TupleInfo{Elems: slices.Clone(elems)})
	id := in.internRaw(Type{Kind: KindTuple, Payload: slot})
	in.tupleMemo[key] = id
	return id
}

// TupleInfo returns the element types for a tuple TypeID.
func (in *Interner) TupleInfo(id TypeID) (*TupleInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTuple {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.tuples) {
		return nil, false
	}
	return &in.tuples[tt.Payload], true
}

// RegisterGenericInstance memoizes base<args...> so repeated instantiations
// of the same generic with the same arguments share one TypeID.
func (in *Interner) RegisterGenericInstance(base TypeID, args []TypeID) TypeID {
	key := "g:" + memoKey(append([]TypeID{base}, args...)...)
	if id, ok := in.genMemo[key]; ok {
		return id
	}
	slot := appendSlot(&in.generics, GenericInfo{Base: base, Args: slices.Clone(args)})
	id := in.internRaw(Type{Kind: KindGenericInstance, Payload: slot})
	in.genMemo[key] = id
	return id
}

// GenericInfo returns base and arguments for a generic-instance TypeID.
func (in *Interner) GenericInfo(id TypeID) (*GenericInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindGenericInstance {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.generics) {
		return nil, false
	}
	return &in.generics[tt.Payload], true
}
