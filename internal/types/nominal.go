package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"vega/internal/source"
)

// StructField describes a single field inside a nominal struct type.
type StructField struct {
	Name   string
	Type   TypeID
	Decl   source.Span
	Public bool
}

// StructInfo stores metadata for a struct type. Fields keep insertion order.
type StructInfo struct {
	Name   string
	Decl   source.Span
	Fields []StructField
	Packed bool
}

// FieldByName finds a field by name, nil when absent.
func (si *StructInfo) FieldByName(name string) *StructField {
	for i := range si.Fields {
		if si.Fields[i].Name == name {
			return &si.Fields[i]
		}
	}
	return nil
}

// EnumVariant describes one declared variant with its payload types.
type EnumVariant struct {
	Name    string
	Payload []TypeID
	Decl    source.Span
}

// EnumInfo stores metadata for an enum type.
type EnumInfo struct {
	Name     string
	Decl     source.Span
	Variants []EnumVariant
}

// VariantByName finds a variant by name, nil when absent.
func (ei *EnumInfo) VariantByName(name string) *EnumVariant {
	for i := range ei.Variants {
		if ei.Variants[i].Name == name {
			return &ei.Variants[i]
		}
	}
	return nil
}

// TypeParamInfo stores metadata for a generic type-parameter placeholder.
type TypeParamInfo struct {
	Name string
	Decl source.Span
}

// RegisterStruct allocates a nominal struct type and returns its TypeID.
// Two registrations with the same name yield distinct types.
func (in *Interner) RegisterStruct(name string, decl source.Span, packed bool) TypeID {
	slot := appendSlot(&in.structs, StructInfo{Name: name, Decl: decl, Packed: packed})
	return in.internRaw(Type{Kind: KindStruct, Payload: slot})
}

// AddStructField appends a field. It fails when a field with that name
// already exists or the ID is not a struct.
func (in *Interner) AddStructField(id TypeID, field StructField) bool {
	info := in.structInfo(id)
	if info == nil {
		return false
	}
	if info.FieldByName(field.Name) != nil {
		return false
	}
	info.Fields = append(info.Fields, field)
	return true
}

// StructInfo returns metadata for a struct TypeID.
func (in *Interner) StructInfo(id TypeID) (*StructInfo, bool) {
	info := in.structInfo(id)
	if info == nil {
		return nil, false
	}
	return info, true
}

// RegisterEnum allocates a nominal enum type and returns its TypeID.
func (in *Interner) RegisterEnum(name string, decl source.Span) TypeID {
	slot := appendSlot(&in.enums, EnumInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Kind: KindEnum, Payload: slot})
}

// AddEnumVariant appends a variant; fails on duplicate names.
func (in *Interner) AddEnumVariant(id TypeID, variant EnumVariant) bool {
	info := in.enumInfo(id)
	if info == nil {
		return false
	}
	if info.VariantByName(variant.Name) != nil {
		return false
	}
	variant.Payload = slices.Clone(variant.Payload)
	info.Variants = append(info.Variants, variant)
	return true
}

// EnumInfo returns metadata for an enum TypeID.
func (in *Interner) EnumInfo(id TypeID) (*EnumInfo, bool) {
	info := in.enumInfo(id)
	if info == nil {
		return nil, false
	}
	return info, true
}

// RegisterTypeParam allocates a placeholder type for a generic parameter.
func (in *Interner) RegisterTypeParam(name string, decl source.Span) TypeID {
	slot := appendSlot(&in.params, TypeParamInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Kind: KindTypeParam, Payload: slot})
}

// TypeParamInfo returns metadata for a type-parameter TypeID.
func (in *Interner) TypeParamInfo(id TypeID) (*TypeParamInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindTypeParam {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.params) {
		return nil, false
	}
	return &in.params[tt.Payload], true
}

func (in *Interner) structInfo(id TypeID) *StructInfo {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindStruct {
		return nil
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.structs) {
		return nil
	}
	return &in.structs[tt.Payload]
}

func (in *Interner) enumInfo(id TypeID) *EnumInfo {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindEnum {
		return nil
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.enums) {
		return nil
	}
	return &in.enums[tt.Payload]
}

func appendSlot[T any](table *[]T, info T) uint32 {
	*table = append(*table, info)
	slot, err := safecast.Conv[uint32](len(*table) - 1)
	if err != nil {
		panic(fmt.Errorf("side table overflow: %w", err))
	}
	return slot
}
