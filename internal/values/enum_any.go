package values

import "irkit/internal/types"

// AnyValueEnum is one of {Array, Int, Float, Phi, Function, Pointer, Struct,
// Vector, Instruction}: every value kind except metadata. Void never occurs
// as a value.
type AnyValueEnum struct{ variant }

func (e AnyValueEnum) Name() string        { return e.name() }
func (e AnyValueEnum) SetName(name string) { e.setName(name) }
func (e AnyValueEnum) String() string      { return e.format(anyValueSet.name) }

// Type returns the type of the active member, classified as AnyTypeEnum.
func (e AnyValueEnum) Type() types.AnyTypeEnum {
	return types.NewAnyTypeEnum(e.ref.Type())
}

func (e AnyValueEnum) IsArrayValue() bool       { return e.kind == KindArray }
func (e AnyValueEnum) IsIntValue() bool         { return e.kind == KindInt }
func (e AnyValueEnum) IsFloatValue() bool       { return e.kind == KindFloat }
func (e AnyValueEnum) IsPhiValue() bool         { return e.kind == KindPhi }
func (e AnyValueEnum) IsFunctionValue() bool    { return e.kind == KindFunction }
func (e AnyValueEnum) IsPointerValue() bool     { return e.kind == KindPointer }
func (e AnyValueEnum) IsStructValue() bool      { return e.kind == KindStruct }
func (e AnyValueEnum) IsVectorValue() bool      { return e.kind == KindVector }
func (e AnyValueEnum) IsInstructionValue() bool { return e.kind == KindInstruction }

// As<Kind>Value panics with a *NarrowError when another member is active;
// Try<Kind>Value is the checked form.

func (e AnyValueEnum) AsArrayValue() ArrayValue {
	return ArrayValue{e.narrow(anyValueSet.name, KindArray)}
}

func (e AnyValueEnum) TryArrayValue() (ArrayValue, bool) {
	if e.kind != KindArray {
		return ArrayValue{}, false
	}
	return ArrayValue{e.ref}, true
}

func (e AnyValueEnum) AsIntValue() IntValue {
	return IntValue{e.narrow(anyValueSet.name, KindInt)}
}

func (e AnyValueEnum) TryIntValue() (IntValue, bool) {
	if e.kind != KindInt {
		return IntValue{}, false
	}
	return IntValue{e.ref}, true
}

func (e AnyValueEnum) AsFloatValue() FloatValue {
	return FloatValue{e.narrow(anyValueSet.name, KindFloat)}
}

func (e AnyValueEnum) TryFloatValue() (FloatValue, bool) {
	if e.kind != KindFloat {
		return FloatValue{}, false
	}
	return FloatValue{e.ref}, true
}

func (e AnyValueEnum) AsPhiValue() PhiValue {
	return PhiValue{e.narrow(anyValueSet.name, KindPhi)}
}

func (e AnyValueEnum) TryPhiValue() (PhiValue, bool) {
	if e.kind != KindPhi {
		return PhiValue{}, false
	}
	return PhiValue{e.ref}, true
}

func (e AnyValueEnum) AsFunctionValue() FunctionValue {
	return FunctionValue{e.narrow(anyValueSet.name, KindFunction)}
}

func (e AnyValueEnum) TryFunctionValue() (FunctionValue, bool) {
	if e.kind != KindFunction {
		return FunctionValue{}, false
	}
	return FunctionValue{e.ref}, true
}

func (e AnyValueEnum) AsPointerValue() PointerValue {
	return PointerValue{e.narrow(anyValueSet.name, KindPointer)}
}

func (e AnyValueEnum) TryPointerValue() (PointerValue, bool) {
	if e.kind != KindPointer {
		return PointerValue{}, false
	}
	return PointerValue{e.ref}, true
}

func (e AnyValueEnum) AsStructValue() StructValue {
	return StructValue{e.narrow(anyValueSet.name, KindStruct)}
}

func (e AnyValueEnum) TryStructValue() (StructValue, bool) {
	if e.kind != KindStruct {
		return StructValue{}, false
	}
	return StructValue{e.ref}, true
}

func (e AnyValueEnum) AsVectorValue() VectorValue {
	return VectorValue{e.narrow(anyValueSet.name, KindVector)}
}

func (e AnyValueEnum) TryVectorValue() (VectorValue, bool) {
	if e.kind != KindVector {
		return VectorValue{}, false
	}
	return VectorValue{e.ref}, true
}

func (e AnyValueEnum) AsInstructionValue() InstructionValue {
	return InstructionValue{e.narrow(anyValueSet.name, KindInstruction)}
}

func (e AnyValueEnum) TryInstructionValue() (InstructionValue, bool) {
	if e.kind != KindInstruction {
		return InstructionValue{}, false
	}
	return InstructionValue{e.ref}, true
}
