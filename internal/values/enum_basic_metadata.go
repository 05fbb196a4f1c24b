package values

// BasicMetadataValueEnum is one of {Array, Int, Float, Pointer, Struct,
// Vector, Metadata}, for operand positions that also accept metadata. It has
// no name accessors since metadata is not nameable.
type BasicMetadataValueEnum struct{ variant }

func (e BasicMetadataValueEnum) String() string { return e.format(basicMetadataValueSet.name) }

func (e BasicMetadataValueEnum) IsArrayValue() bool    { return e.kind == KindArray }
func (e BasicMetadataValueEnum) IsIntValue() bool      { return e.kind == KindInt }
func (e BasicMetadataValueEnum) IsFloatValue() bool    { return e.kind == KindFloat }
func (e BasicMetadataValueEnum) IsPointerValue() bool  { return e.kind == KindPointer }
func (e BasicMetadataValueEnum) IsStructValue() bool   { return e.kind == KindStruct }
func (e BasicMetadataValueEnum) IsVectorValue() bool   { return e.kind == KindVector }
func (e BasicMetadataValueEnum) IsMetadataValue() bool { return e.kind == KindMetadata }

// As<Kind>Value panics with a *NarrowError when another member is active;
// Try<Kind>Value is the checked form.

func (e BasicMetadataValueEnum) AsArrayValue() ArrayValue {
	return ArrayValue{e.narrow(basicMetadataValueSet.name, KindArray)}
}

func (e BasicMetadataValueEnum) TryArrayValue() (ArrayValue, bool) {
	if e.kind != KindArray {
		return ArrayValue{}, false
	}
	return ArrayValue{e.ref}, true
}

func (e BasicMetadataValueEnum) AsIntValue() IntValue {
	return IntValue{e.narrow(basicMetadataValueSet.name, KindInt)}
}

func (e BasicMetadataValueEnum) TryIntValue() (IntValue, bool) {
	if e.kind != KindInt {
		return IntValue{}, false
	}
	return IntValue{e.ref}, true
}

func (e BasicMetadataValueEnum) AsFloatValue() FloatValue {
	return FloatValue{e.narrow(basicMetadataValueSet.name, KindFloat)}
}

func (e BasicMetadataValueEnum) TryFloatValue() (FloatValue, bool) {
	if e.kind != KindFloat {
		return FloatValue{}, false
	}
	return FloatValue{e.ref}, true
}

func (e BasicMetadataValueEnum) AsPointerValue() PointerValue {
	return PointerValue{e.narrow(basicMetadataValueSet.name, KindPointer)}
}

func (e BasicMetadataValueEnum) TryPointerValue() (PointerValue, bool) {
	if e.kind != KindPointer {
		return PointerValue{}, false
	}
	return PointerValue{e.ref}, true
}

func (e BasicMetadataValueEnum) AsStructValue() StructValue {
	return StructValue{e.narrow(basicMetadataValueSet.name, KindStruct)}
}

func (e BasicMetadataValueEnum) TryStructValue() (StructValue, bool) {
	if e.kind != KindStruct {
		return StructValue{}, false
	}
	return StructValue{e.ref}, true
}

func (e BasicMetadataValueEnum) AsVectorValue() VectorValue {
	return VectorValue{e.narrow(basicMetadataValueSet.name, KindVector)}
}

func (e BasicMetadataValueEnum) TryVectorValue() (VectorValue, bool) {
	if e.kind != KindVector {
		return VectorValue{}, false
	}
	return VectorValue{e.ref}, true
}

func (e BasicMetadataValueEnum) AsMetadataValue() MetadataValue {
	return MetadataValue{e.narrow(basicMetadataValueSet.name, KindMetadata)}
}

func (e BasicMetadataValueEnum) TryMetadataValue() (MetadataValue, bool) {
	if e.kind != KindMetadata {
		return MetadataValue{}, false
	}
	return MetadataValue{e.ref}, true
}
