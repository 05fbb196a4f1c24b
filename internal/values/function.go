package values

import (
	"irkit/internal/native"
	"irkit/internal/types"
)

// FunctionValue is a function definition or declaration.
type FunctionValue struct{ ref native.ValueRef }

// NewFunctionValue wraps ref. A handle of function type that is not a
// function (an undef of function type, say) is rejected.
func NewFunctionValue(ref native.ValueRef) (FunctionValue, error) {
	if err := checkTyped(ref, KindFunction); err != nil {
		return FunctionValue{}, err
	}
	if !ref.IsAFunction() {
		return FunctionValue{}, &WrapError{Want: KindFunction, Handle: ref, Reason: "not a function"}
	}
	return FunctionValue{ref}, nil
}

func (v FunctionValue) AsValueRef() native.ValueRef { return v.ref }
func (v FunctionValue) kind() Kind                  { return KindFunction }
func (v FunctionValue) Kind() Kind                  { return KindFunction }
func (v FunctionValue) Name() string                { return v.ref.Name() }
func (v FunctionValue) SetName(name string)         { v.ref.SetName(name) }
func (v FunctionValue) String() string              { return describe(KindFunction, v.ref) }

// AsInstruction always reports false: functions are never instructions.
func (v FunctionValue) AsInstruction() (InstructionValue, bool) { return InstructionValue{}, false }

// Type returns the signature of the function.
func (v FunctionValue) Type() types.FunctionType {
	return must(types.NewFunctionType(v.ref.Type()))
}

// CountParams returns the number of parameters.
func (v FunctionValue) CountParams() int { return v.ref.ParamCount() }

// Param returns the i-th parameter, classified by its type.
func (v FunctionValue) Param(i int) (BasicValueEnum, bool) {
	if i < 0 || i >= v.ref.ParamCount() {
		return BasicValueEnum{}, false
	}
	return NewBasicValueEnum(v.ref.Param(i)), true
}

// Params returns every parameter, classified by its type.
func (v FunctionValue) Params() []BasicValueEnum {
	params := v.ref.Params()
	out := make([]BasicValueEnum, len(params))
	for i, p := range params {
		out[i] = NewBasicValueEnum(p)
	}
	return out
}
