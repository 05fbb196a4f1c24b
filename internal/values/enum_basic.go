package values

import "irkit/internal/types"

// BasicValueEnum is one of {Array, Int, Float, Pointer, Struct, Vector}:
// the values usable as ordinary operands.
type BasicValueEnum struct{ variant }

func (e BasicValueEnum) Name() string        { return e.name() }
func (e BasicValueEnum) SetName(name string) { e.setName(name) }
func (e BasicValueEnum) String() string      { return e.format(basicValueSet.name) }

// Type returns the type of the active member, classified as BasicTypeEnum.
func (e BasicValueEnum) Type() types.BasicTypeEnum {
	return types.NewBasicTypeEnum(e.ref.Type())
}

// AsInstruction returns the instruction producing the value, if any. The
// tag is left untouched.
func (e BasicValueEnum) AsInstruction() (InstructionValue, bool) {
	return e.asInstruction()
}

func (e BasicValueEnum) IsArrayValue() bool   { return e.kind == KindArray }
func (e BasicValueEnum) IsIntValue() bool     { return e.kind == KindInt }
func (e BasicValueEnum) IsFloatValue() bool   { return e.kind == KindFloat }
func (e BasicValueEnum) IsPointerValue() bool { return e.kind == KindPointer }
func (e BasicValueEnum) IsStructValue() bool  { return e.kind == KindStruct }
func (e BasicValueEnum) IsVectorValue() bool  { return e.kind == KindVector }

// As<Kind>Value panics with a *NarrowError when another member is active;
// Try<Kind>Value is the checked form.

func (e BasicValueEnum) AsArrayValue() ArrayValue {
	return ArrayValue{e.narrow(basicValueSet.name, KindArray)}
}

func (e BasicValueEnum) TryArrayValue() (ArrayValue, bool) {
	if e.kind != KindArray {
		return ArrayValue{}, false
	}
	return ArrayValue{e.ref}, true
}

func (e BasicValueEnum) AsIntValue() IntValue {
	return IntValue{e.narrow(basicValueSet.name, KindInt)}
}

func (e BasicValueEnum) TryIntValue() (IntValue, bool) {
	if e.kind != KindInt {
		return IntValue{}, false
	}
	return IntValue{e.ref}, true
}

func (e BasicValueEnum) AsFloatValue() FloatValue {
	return FloatValue{e.narrow(basicValueSet.name, KindFloat)}
}

func (e BasicValueEnum) TryFloatValue() (FloatValue, bool) {
	if e.kind != KindFloat {
		return FloatValue{}, false
	}
	return FloatValue{e.ref}, true
}

func (e BasicValueEnum) AsPointerValue() PointerValue {
	return PointerValue{e.narrow(basicValueSet.name, KindPointer)}
}

func (e BasicValueEnum) TryPointerValue() (PointerValue, bool) {
	if e.kind != KindPointer {
		return PointerValue{}, false
	}
	return PointerValue{e.ref}, true
}

func (e BasicValueEnum) AsStructValue() StructValue {
	return StructValue{e.narrow(basicValueSet.name, KindStruct)}
}

func (e BasicValueEnum) TryStructValue() (StructValue, bool) {
	if e.kind != KindStruct {
		return StructValue{}, false
	}
	return StructValue{e.ref}, true
}

func (e BasicValueEnum) AsVectorValue() VectorValue {
	return VectorValue{e.narrow(basicValueSet.name, KindVector)}
}

func (e BasicValueEnum) TryVectorValue() (VectorValue, bool) {
	if e.kind != KindVector {
		return VectorValue{}, false
	}
	return VectorValue{e.ref}, true
}
