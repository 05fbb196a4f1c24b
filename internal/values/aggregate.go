package values

import (
	"irkit/internal/native"
	"irkit/internal/types"
)

// ArrayValue is a value of array type.
type ArrayValue struct{ ref native.ValueRef }

// NewArrayValue wraps ref, which must have array type.
func NewArrayValue(ref native.ValueRef) (ArrayValue, error) {
	if err := checkTyped(ref, KindArray); err != nil {
		return ArrayValue{}, err
	}
	return ArrayValue{ref}, nil
}

func (v ArrayValue) AsValueRef() native.ValueRef             { return v.ref }
func (v ArrayValue) kind() Kind                              { return KindArray }
func (v ArrayValue) Kind() Kind                              { return KindArray }
func (v ArrayValue) Name() string                            { return v.ref.Name() }
func (v ArrayValue) SetName(name string)                     { v.ref.SetName(name) }
func (v ArrayValue) AsInstruction() (InstructionValue, bool) { return asInstruction(v.ref) }
func (v ArrayValue) String() string                          { return describe(KindArray, v.ref) }

// Type returns the array type of the value.
func (v ArrayValue) Type() types.ArrayType { return must(types.NewArrayType(v.ref.Type())) }

// Len returns the number of elements.
func (v ArrayValue) Len() uint32 { return v.ref.Type().Len() }

// StructValue is a value of struct type.
type StructValue struct{ ref native.ValueRef }

// NewStructValue wraps ref, which must have struct type.
func NewStructValue(ref native.ValueRef) (StructValue, error) {
	if err := checkTyped(ref, KindStruct); err != nil {
		return StructValue{}, err
	}
	return StructValue{ref}, nil
}

func (v StructValue) AsValueRef() native.ValueRef             { return v.ref }
func (v StructValue) kind() Kind                              { return KindStruct }
func (v StructValue) Kind() Kind                              { return KindStruct }
func (v StructValue) Name() string                            { return v.ref.Name() }
func (v StructValue) SetName(name string)                     { v.ref.SetName(name) }
func (v StructValue) AsInstruction() (InstructionValue, bool) { return asInstruction(v.ref) }
func (v StructValue) String() string                          { return describe(KindStruct, v.ref) }

// Type returns the struct type of the value.
func (v StructValue) Type() types.StructType { return must(types.NewStructType(v.ref.Type())) }

// FieldCount returns the number of fields.
func (v StructValue) FieldCount() int { return len(v.ref.Type().FieldTypes()) }

// VectorValue is a value of vector type.
type VectorValue struct{ ref native.ValueRef }

// NewVectorValue wraps ref, which must have vector type.
func NewVectorValue(ref native.ValueRef) (VectorValue, error) {
	if err := checkTyped(ref, KindVector); err != nil {
		return VectorValue{}, err
	}
	return VectorValue{ref}, nil
}

func (v VectorValue) AsValueRef() native.ValueRef             { return v.ref }
func (v VectorValue) kind() Kind                              { return KindVector }
func (v VectorValue) Kind() Kind                              { return KindVector }
func (v VectorValue) Name() string                            { return v.ref.Name() }
func (v VectorValue) SetName(name string)                     { v.ref.SetName(name) }
func (v VectorValue) AsInstruction() (InstructionValue, bool) { return asInstruction(v.ref) }
func (v VectorValue) String() string                          { return describe(KindVector, v.ref) }

// Type returns the vector type of the value.
func (v VectorValue) Type() types.VectorType { return must(types.NewVectorType(v.ref.Type())) }

// Len returns the number of lanes.
func (v VectorValue) Len() uint32 { return v.ref.Type().Len() }
