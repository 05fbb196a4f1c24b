package values

// The member constraints below spell out each set's member list. A wrapper
// outside a set does not satisfy its constraint, so injection into the wrong
// set is a compile error.

// AnyValueMember is satisfied by the members of AnyValueEnum.
type AnyValueMember interface {
	ArrayValue | IntValue | FloatValue | PhiValue | FunctionValue |
		PointerValue | StructValue | VectorValue | InstructionValue
	member
}

// BasicValueMember is satisfied by the members of BasicValueEnum.
type BasicValueMember interface {
	ArrayValue | IntValue | FloatValue | PointerValue | StructValue | VectorValue
	member
}

// AggregateValueMember is satisfied by the members of AggregateValueEnum.
type AggregateValueMember interface {
	ArrayValue | StructValue
	member
}

// BasicMetadataValueMember is satisfied by the members of
// BasicMetadataValueEnum.
type BasicMetadataValueMember interface {
	ArrayValue | IntValue | FloatValue | PointerValue | StructValue | VectorValue | MetadataValue
	member
}

func inject[V member](v V) variant {
	return variant{kind: v.kind(), ref: v.AsValueRef()}
}

// AnyValueFrom injects a wrapper into AnyValueEnum, keeping its kind as the tag.
func AnyValueFrom[V AnyValueMember](v V) AnyValueEnum { return AnyValueEnum{inject(v)} }

// BasicValueFrom injects a wrapper into BasicValueEnum.
func BasicValueFrom[V BasicValueMember](v V) BasicValueEnum { return BasicValueEnum{inject(v)} }

// AggregateValueFrom injects a wrapper into AggregateValueEnum.
func AggregateValueFrom[V AggregateValueMember](v V) AggregateValueEnum {
	return AggregateValueEnum{inject(v)}
}

// BasicMetadataValueFrom injects a wrapper into BasicMetadataValueEnum.
func BasicMetadataValueFrom[V BasicMetadataValueMember](v V) BasicMetadataValueEnum {
	return BasicMetadataValueEnum{inject(v)}
}

// AnyValueFromBasic widens a basic value. It copies the tag rather than
// classifying the handle again: every BasicValueEnum member is also an
// AnyValueEnum member, and the tag already agrees with the handle's type.
func AnyValueFromBasic(v BasicValueEnum) AnyValueEnum { return AnyValueEnum(v) }

// AsAnyValueEnum widens the value to AnyValueEnum. See AnyValueFromBasic.
func (e BasicValueEnum) AsAnyValueEnum() AnyValueEnum { return AnyValueEnum(e) }

// AsBasicMetadataValueEnum widens the value to BasicMetadataValueEnum.
func (e BasicValueEnum) AsBasicMetadataValueEnum() BasicMetadataValueEnum {
	return BasicMetadataValueEnum(e)
}

// AsBasicValueEnum widens an aggregate to BasicValueEnum.
func (e AggregateValueEnum) AsBasicValueEnum() BasicValueEnum { return BasicValueEnum(e) }

// AsAnyValueEnum widens an aggregate to AnyValueEnum.
func (e AggregateValueEnum) AsAnyValueEnum() AnyValueEnum { return AnyValueEnum(e) }

// ToBasicValueEnum narrows to BasicValueEnum when the active member is basic.
func (e AnyValueEnum) ToBasicValueEnum() (BasicValueEnum, bool) {
	if !basicValueSet.members.Has(e.kind) {
		return BasicValueEnum{}, false
	}
	return BasicValueEnum(e), true
}

// ToAggregateValueEnum narrows to AggregateValueEnum when the active member
// is an array or a struct.
func (e AnyValueEnum) ToAggregateValueEnum() (AggregateValueEnum, bool) {
	if !aggregateValueSet.members.Has(e.kind) {
		return AggregateValueEnum{}, false
	}
	return AggregateValueEnum(e), true
}

// ToBasicValueEnum narrows to BasicValueEnum unless metadata is active.
func (e BasicMetadataValueEnum) ToBasicValueEnum() (BasicValueEnum, bool) {
	if !basicValueSet.members.Has(e.kind) {
		return BasicValueEnum{}, false
	}
	return BasicValueEnum(e), true
}
