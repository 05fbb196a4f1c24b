package values

// AggregateValueEnum is one of {Array, Struct}.
type AggregateValueEnum struct{ variant }

func (e AggregateValueEnum) Name() string        { return e.name() }
func (e AggregateValueEnum) SetName(name string) { e.setName(name) }
func (e AggregateValueEnum) String() string      { return e.format(aggregateValueSet.name) }

func (e AggregateValueEnum) IsArrayValue() bool  { return e.kind == KindArray }
func (e AggregateValueEnum) IsStructValue() bool { return e.kind == KindStruct }

// As<Kind>Value panics with a *NarrowError when another member is active;
// Try<Kind>Value is the checked form.

func (e AggregateValueEnum) AsArrayValue() ArrayValue {
	return ArrayValue{e.narrow(aggregateValueSet.name, KindArray)}
}

func (e AggregateValueEnum) TryArrayValue() (ArrayValue, bool) {
	if e.kind != KindArray {
		return ArrayValue{}, false
	}
	return ArrayValue{e.ref}, true
}

func (e AggregateValueEnum) AsStructValue() StructValue {
	return StructValue{e.narrow(aggregateValueSet.name, KindStruct)}
}

func (e AggregateValueEnum) TryStructValue() (StructValue, bool) {
	if e.kind != KindStruct {
		return StructValue{}, false
	}
	return StructValue{e.ref}, true
}
