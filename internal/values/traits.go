package values

import "irkit/internal/native"

// ValueRefer is implemented by every wrapper and every set: it exposes the
// native handle underneath.
type ValueRefer interface {
	AsValueRef() native.ValueRef
}

// NamedValue is a value whose native object carries a name.
type NamedValue interface {
	ValueRefer
	Name() string
	SetName(name string)
}

// InstructionCaster is implemented by wrappers that may be backed by an
// instruction.
type InstructionCaster interface {
	AsInstruction() (InstructionValue, bool)
}

// member is the method set shared by all concrete wrappers; the set
// constraints in convert.go build on it.
type member interface {
	ValueRefer
	kind() Kind
}

var (
	_ NamedValue = IntValue{}
	_ NamedValue = FloatValue{}
	_ NamedValue = PointerValue{}
	_ NamedValue = ArrayValue{}
	_ NamedValue = StructValue{}
	_ NamedValue = VectorValue{}
	_ NamedValue = FunctionValue{}
	_ NamedValue = InstructionValue{}
	_ NamedValue = PhiValue{}
	_ ValueRefer = MetadataValue{}

	_ NamedValue = AnyValueEnum{}
	_ NamedValue = BasicValueEnum{}
	_ NamedValue = AggregateValueEnum{}
	_ ValueRefer = BasicMetadataValueEnum{}
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// asInstruction is the shared cross-cast used by every wrapper.
func asInstruction(ref native.ValueRef) (InstructionValue, bool) {
	if ref.IsNil() || !ref.IsAInstruction() {
		return InstructionValue{}, false
	}
	return InstructionValue{ref}, true
}

// wrapperKindOf maps a native type kind to the wrapper that represents a
// value of that type. Instruction and Phi never come out of this mapping:
// they are only reachable by injection.
func wrapperKindOf(tk native.TypeKind) Kind {
	if tk.IsFloat() {
		return KindFloat
	}
	switch tk {
	case native.IntegerTypeKind:
		return KindInt
	case native.StructTypeKind:
		return KindStruct
	case native.PointerTypeKind:
		return KindPointer
	case native.ArrayTypeKind:
		return KindArray
	case native.VectorTypeKind:
		return KindVector
	case native.FunctionTypeKind:
		return KindFunction
	case native.MetadataTypeKind:
		return KindMetadata
	default:
		return KindInvalid
	}
}

func checkTyped(ref native.ValueRef, want Kind) error {
	if ref.IsNil() {
		return &WrapError{Want: want, Reason: "null handle"}
	}
	if tk := ref.Type().TypeKind(); wrapperKindOf(tk) != want {
		return &WrapError{Want: want, Handle: ref, Reason: "value has " + tk.String() + " type"}
	}
	return nil
}
