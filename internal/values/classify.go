package values

import "irkit/internal/native"

// valueSet describes one closed set: its name and its member kinds.
type valueSet struct {
	name    string
	members KindSet
}

var (
	anyValueSet = valueSet{"AnyValueEnum", kindSetOf(
		KindArray, KindInt, KindFloat, KindPhi, KindFunction,
		KindPointer, KindStruct, KindVector, KindInstruction,
	)}
	basicValueSet = valueSet{"BasicValueEnum", kindSetOf(
		KindArray, KindInt, KindFloat, KindPointer, KindStruct, KindVector,
	)}
	aggregateValueSet = valueSet{"AggregateValueEnum", kindSetOf(
		KindArray, KindStruct,
	)}
	basicMetadataValueSet = valueSet{"BasicMetadataValueEnum", kindSetOf(
		KindArray, KindInt, KindFloat, KindPointer, KindStruct, KindVector, KindMetadata,
	)}
)

// SetInfo describes a value set for tooling that reports on them.
type SetInfo struct {
	Name    string
	Members KindSet
}

// Sets lists the four value sets in a stable order.
func Sets() []SetInfo {
	out := make([]SetInfo, 0, 4)
	for _, s := range []valueSet{anyValueSet, basicValueSet, aggregateValueSet, basicMetadataValueSet} {
		out = append(out, SetInfo{Name: s.name, Members: s.members})
	}
	return out
}

// classify inspects the type kind of ref and picks the member of set that
// represents it. It never returns a variant whose tag disagrees with the
// handle's type.
func (s valueSet) classify(ref native.ValueRef) (variant, error) {
	if ref.IsNil() {
		return variant{}, &ClassifyError{Set: s.name, Reason: "null handle"}
	}
	tk := ref.Type().TypeKind()
	fail := func(reason string) (variant, error) {
		return variant{}, &ClassifyError{Set: s.name, TypeKind: tk, Handle: ref, Reason: reason}
	}
	if tk == native.VoidTypeKind {
		return fail("void values cannot exist")
	}
	k := wrapperKindOf(tk)
	switch {
	case k == KindMetadata && !s.members.Has(KindMetadata):
		return fail("metadata values are not supported in this set")
	case k == KindInvalid || !s.members.Has(k):
		return fail("type kind is not a member of this set")
	case k == KindFunction && !ref.IsAFunction():
		return fail("value of function type is not a function")
	}
	return variant{kind: k, ref: ref}, nil
}

func (s valueSet) mustClassify(ref native.ValueRef) variant {
	v, err := s.classify(ref)
	if err != nil {
		panic(err)
	}
	return v
}

// TryNewAnyValueEnum classifies ref into AnyValueEnum. Void, metadata and
// other unsupported kinds are reported as a *ClassifyError.
func TryNewAnyValueEnum(ref native.ValueRef) (AnyValueEnum, error) {
	v, err := anyValueSet.classify(ref)
	return AnyValueEnum{v}, err
}

// NewAnyValueEnum classifies ref into AnyValueEnum and panics with a
// *ClassifyError when the handle's kind is outside the set.
func NewAnyValueEnum(ref native.ValueRef) AnyValueEnum {
	return AnyValueEnum{anyValueSet.mustClassify(ref)}
}

// TryNewBasicValueEnum classifies ref into BasicValueEnum.
func TryNewBasicValueEnum(ref native.ValueRef) (BasicValueEnum, error) {
	v, err := basicValueSet.classify(ref)
	return BasicValueEnum{v}, err
}

// NewBasicValueEnum classifies ref into BasicValueEnum, panicking on
// unsupported kinds.
func NewBasicValueEnum(ref native.ValueRef) BasicValueEnum {
	return BasicValueEnum{basicValueSet.mustClassify(ref)}
}

// TryNewAggregateValueEnum classifies ref into AggregateValueEnum.
func TryNewAggregateValueEnum(ref native.ValueRef) (AggregateValueEnum, error) {
	v, err := aggregateValueSet.classify(ref)
	return AggregateValueEnum{v}, err
}

// NewAggregateValueEnum classifies ref into AggregateValueEnum, panicking
// unless ref has array or struct type.
func NewAggregateValueEnum(ref native.ValueRef) AggregateValueEnum {
	return AggregateValueEnum{aggregateValueSet.mustClassify(ref)}
}

// TryNewBasicMetadataValueEnum classifies ref into BasicMetadataValueEnum.
func TryNewBasicMetadataValueEnum(ref native.ValueRef) (BasicMetadataValueEnum, error) {
	v, err := basicMetadataValueSet.classify(ref)
	return BasicMetadataValueEnum{v}, err
}

// NewBasicMetadataValueEnum classifies ref into BasicMetadataValueEnum,
// panicking on unsupported kinds.
func NewBasicMetadataValueEnum(ref native.ValueRef) BasicMetadataValueEnum {
	return BasicMetadataValueEnum{basicMetadataValueSet.mustClassify(ref)}
}
