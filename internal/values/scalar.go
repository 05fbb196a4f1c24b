package values

import (
	"irkit/internal/native"
	"irkit/internal/types"
)

// IntValue is a value of integer type.
type IntValue struct{ ref native.ValueRef }

// NewIntValue wraps ref, which must have integer type.
func NewIntValue(ref native.ValueRef) (IntValue, error) {
	if err := checkTyped(ref, KindInt); err != nil {
		return IntValue{}, err
	}
	return IntValue{ref}, nil
}

func (v IntValue) AsValueRef() native.ValueRef             { return v.ref }
func (v IntValue) kind() Kind                              { return KindInt }
func (v IntValue) Kind() Kind                              { return KindInt }
func (v IntValue) Name() string                            { return v.ref.Name() }
func (v IntValue) SetName(name string)                     { v.ref.SetName(name) }
func (v IntValue) AsInstruction() (InstructionValue, bool) { return asInstruction(v.ref) }
func (v IntValue) String() string                          { return describe(KindInt, v.ref) }

// Type returns the integer type of the value.
func (v IntValue) Type() types.IntType { return must(types.NewIntType(v.ref.Type())) }

// IsConst reports whether the value is a compile-time constant.
func (v IntValue) IsConst() bool { return v.ref.IsConstant() }

// ConstZExtValue returns the zero-extended payload of a constant.
func (v IntValue) ConstZExtValue() (uint64, bool) {
	if !v.ref.IsConstant() {
		return 0, false
	}
	return v.ref.ConstZExtValue(), true
}

// FloatValue is a value of any floating-point type.
type FloatValue struct{ ref native.ValueRef }

// NewFloatValue wraps ref, which must have a floating-point type.
func NewFloatValue(ref native.ValueRef) (FloatValue, error) {
	if err := checkTyped(ref, KindFloat); err != nil {
		return FloatValue{}, err
	}
	return FloatValue{ref}, nil
}

func (v FloatValue) AsValueRef() native.ValueRef             { return v.ref }
func (v FloatValue) kind() Kind                              { return KindFloat }
func (v FloatValue) Kind() Kind                              { return KindFloat }
func (v FloatValue) Name() string                            { return v.ref.Name() }
func (v FloatValue) SetName(name string)                     { v.ref.SetName(name) }
func (v FloatValue) AsInstruction() (InstructionValue, bool) { return asInstruction(v.ref) }
func (v FloatValue) String() string                          { return describe(KindFloat, v.ref) }

// Type returns the floating-point type of the value.
func (v FloatValue) Type() types.FloatType { return must(types.NewFloatType(v.ref.Type())) }

// IsConst reports whether the value is a compile-time constant.
func (v FloatValue) IsConst() bool { return v.ref.IsConstant() }

// ConstValue returns the payload of a constant.
func (v FloatValue) ConstValue() (float64, bool) {
	if !v.ref.IsConstant() {
		return 0, false
	}
	return v.ref.ConstReal(), true
}

// PointerValue is a value of pointer type.
type PointerValue struct{ ref native.ValueRef }

// NewPointerValue wraps ref, which must have pointer type.
func NewPointerValue(ref native.ValueRef) (PointerValue, error) {
	if err := checkTyped(ref, KindPointer); err != nil {
		return PointerValue{}, err
	}
	return PointerValue{ref}, nil
}

func (v PointerValue) AsValueRef() native.ValueRef             { return v.ref }
func (v PointerValue) kind() Kind                              { return KindPointer }
func (v PointerValue) Kind() Kind                              { return KindPointer }
func (v PointerValue) Name() string                            { return v.ref.Name() }
func (v PointerValue) SetName(name string)                     { v.ref.SetName(name) }
func (v PointerValue) AsInstruction() (InstructionValue, bool) { return asInstruction(v.ref) }
func (v PointerValue) String() string                          { return describe(KindPointer, v.ref) }

// Type returns the pointer type of the value.
func (v PointerValue) Type() types.PointerType { return must(types.NewPointerType(v.ref.Type())) }

// IsNull reports whether the value is the null pointer constant.
func (v PointerValue) IsNull() bool { return v.ref.IsNull() }
