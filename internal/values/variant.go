package values

import (
	"fmt"

	"irkit/internal/native"
)

// variant is the tag-plus-handle core every set embeds. It forwards the
// shared capabilities to whichever wrapper the tag selects, so the sets only
// spell out their member lists and per-kind accessors.
type variant struct {
	kind Kind
	ref  native.ValueRef
}

// AsValueRef returns the handle of the active member.
func (v variant) AsValueRef() native.ValueRef { return v.ref }

// Kind reports the active member's kind.
func (v variant) Kind() Kind { return v.kind }

// member rebuilds the active wrapper from the tag.
func (v variant) member() ValueRefer {
	switch v.kind {
	case KindArray:
		return ArrayValue{v.ref}
	case KindInt:
		return IntValue{v.ref}
	case KindFloat:
		return FloatValue{v.ref}
	case KindPointer:
		return PointerValue{v.ref}
	case KindStruct:
		return StructValue{v.ref}
	case KindVector:
		return VectorValue{v.ref}
	case KindFunction:
		return FunctionValue{v.ref}
	case KindInstruction:
		return InstructionValue{v.ref}
	case KindMetadata:
		return MetadataValue{v.ref}
	case KindPhi:
		return PhiValue{v.ref}
	default:
		panic(fmt.Sprintf("values: variant with invalid tag %d", v.kind))
	}
}

func (v variant) named() NamedValue {
	n, ok := v.member().(NamedValue)
	if !ok {
		panic(fmt.Sprintf("values: %s is not nameable", v.kind.WrapperName()))
	}
	return n
}

func (v variant) name() string        { return v.named().Name() }
func (v variant) setName(name string) { v.named().SetName(name) }

func (v variant) asInstruction() (InstructionValue, bool) {
	return v.member().(InstructionCaster).AsInstruction()
}

// narrow returns the handle when the tag is want and panics otherwise.
func (v variant) narrow(set string, want Kind) native.ValueRef {
	if v.kind != want {
		panic(&NarrowError{Set: set, Want: want, Have: v.kind})
	}
	return v.ref
}

func (v variant) format(set string) string {
	return set + "(" + describe(v.kind, v.ref) + ")"
}

func describe(k Kind, ref native.ValueRef) string {
	if ref.IsNil() {
		return k.WrapperName() + " <nil>"
	}
	return k.WrapperName() + " " + ref.String()
}
