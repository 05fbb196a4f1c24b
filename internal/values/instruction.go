package values

import "irkit/internal/native"

// InstructionValue is any instruction, whatever its result type.
type InstructionValue struct{ ref native.ValueRef }

// NewInstructionValue wraps ref, which must be an instruction.
func NewInstructionValue(ref native.ValueRef) (InstructionValue, error) {
	if ref.IsNil() {
		return InstructionValue{}, &WrapError{Want: KindInstruction, Reason: "null handle"}
	}
	if !ref.IsAInstruction() {
		return InstructionValue{}, &WrapError{Want: KindInstruction, Handle: ref, Reason: "not an instruction"}
	}
	return InstructionValue{ref}, nil
}

func (v InstructionValue) AsValueRef() native.ValueRef             { return v.ref }
func (v InstructionValue) kind() Kind                              { return KindInstruction }
func (v InstructionValue) Kind() Kind                              { return KindInstruction }
func (v InstructionValue) Name() string                            { return v.ref.Name() }
func (v InstructionValue) SetName(name string)                     { v.ref.SetName(name) }
func (v InstructionValue) AsInstruction() (InstructionValue, bool) { return v, true }
func (v InstructionValue) String() string                          { return describe(KindInstruction, v.ref) }

// Opcode returns the operation the instruction performs.
func (v InstructionValue) Opcode() native.Opcode { return v.ref.Opcode() }

// Operands returns the raw operand handles.
func (v InstructionValue) Operands() []native.ValueRef { return v.ref.Operands() }

// AsPhi narrows the instruction to a phi when it is one.
func (v InstructionValue) AsPhi() (PhiValue, bool) {
	if !v.ref.IsAPHINode() {
		return PhiValue{}, false
	}
	return PhiValue{v.ref}, true
}

// PhiValue is a phi instruction.
type PhiValue struct{ ref native.ValueRef }

// NewPhiValue wraps ref, which must be a phi instruction.
func NewPhiValue(ref native.ValueRef) (PhiValue, error) {
	if ref.IsNil() {
		return PhiValue{}, &WrapError{Want: KindPhi, Reason: "null handle"}
	}
	if !ref.IsAPHINode() {
		return PhiValue{}, &WrapError{Want: KindPhi, Handle: ref, Reason: "not a phi instruction"}
	}
	return PhiValue{ref}, nil
}

func (v PhiValue) AsValueRef() native.ValueRef             { return v.ref }
func (v PhiValue) kind() Kind                              { return KindPhi }
func (v PhiValue) Kind() Kind                              { return KindPhi }
func (v PhiValue) Name() string                            { return v.ref.Name() }
func (v PhiValue) SetName(name string)                     { v.ref.SetName(name) }
func (v PhiValue) AsInstruction() (InstructionValue, bool) { return InstructionValue(v), true }
func (v PhiValue) String() string                          { return describe(KindPhi, v.ref) }

// CountIncoming returns the number of incoming edges.
func (v PhiValue) CountIncoming() int { return v.ref.IncomingCount() }

// Incoming returns the i-th incoming value and the block it flows from.
func (v PhiValue) Incoming(i int) (BasicValueEnum, native.ValueRef, bool) {
	if i < 0 || i >= v.ref.IncomingCount() {
		return BasicValueEnum{}, native.ValueRef{}, false
	}
	val, block := v.ref.Incoming(i)
	return NewBasicValueEnum(val), block, true
}
