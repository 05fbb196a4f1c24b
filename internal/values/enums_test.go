package values

import (
	"errors"
	"testing"

	"irkit/internal/native"
)

// world holds one handle of every interesting kind.
type world struct {
	c       *native.Context
	i32     native.ValueRef
	f64     native.ValueRef
	half    native.ValueRef
	ptr     native.ValueRef
	arr     native.ValueRef
	st      native.ValueRef
	vec     native.ValueRef
	fn      native.ValueRef
	fnUndef native.ValueRef
	md      native.ValueRef
	add     native.ValueRef
	phi     native.ValueRef
	ret     native.ValueRef
	block   native.ValueRef
}

func newWorld(t *testing.T) *world {
	t.Helper()
	c := native.NewContext()
	m := c.NewModule("test")
	i32 := c.IntType(32)
	check := func(v native.ValueRef, err error) native.ValueRef {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return v
	}
	w := &world{c: c}
	w.i32 = check(c.ConstInt(i32, 42))
	w.f64 = check(c.ConstFloat(c.DoubleType(), 1.5))
	w.half = check(c.ConstFloat(c.HalfType(), 0.5))
	w.ptr = c.ConstNull(c.PointerType(0))
	w.arr = check(c.ConstArray(i32, []native.ValueRef{w.i32, w.i32}))
	w.st = check(c.ConstStruct([]native.ValueRef{w.i32, w.f64}, false))
	w.vec = check(c.ConstVector([]native.ValueRef{w.i32, w.i32, w.i32, w.i32}))
	fnTy := c.FunctionType(i32, []native.TypeRef{i32}, false)
	w.fn = check(m.AddFunction("f", fnTy))
	w.fnUndef = c.Undef(fnTy)
	w.md = c.MDString("hint")
	w.block = check(c.AppendBlock(w.fn, "entry"))
	w.add = check(c.AddInstruction(w.block, native.OpAdd, i32, w.fn.Param(0), w.i32))
	w.phi = check(c.AddPhi(w.block, i32))
	w.ret = check(c.AddInstruction(w.block, native.OpRet, c.VoidType(), w.add))
	return w
}

func expectClassifyPanic(t *testing.T, fn func()) *ClassifyError {
	t.Helper()
	var got *ClassifyError
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			err, ok := r.(error)
			if !ok || !errors.As(err, &got) {
				t.Fatalf("unexpected panic payload %v", r)
			}
		}()
		fn()
	}()
	if got == nil {
		t.Fatalf("expected classification to panic")
	}
	return got
}

func TestIntegerScenario(t *testing.T) {
	w := newWorld(t)
	v := NewAnyValueEnum(w.i32)
	if !v.IsIntValue() || v.IsFloatValue() {
		t.Fatalf("expected int member, got %s", v)
	}
	if v.AsIntValue().AsValueRef() != w.i32 {
		t.Fatalf("AsIntValue did not recover the original handle")
	}
	if n, ok := v.AsIntValue().ConstZExtValue(); !ok || n != 42 {
		t.Fatalf("unexpected constant payload %d", n)
	}
}

func TestVoidIsFatal(t *testing.T) {
	w := newWorld(t)
	err := expectClassifyPanic(t, func() { NewAnyValueEnum(w.ret) })
	if err.TypeKind != native.VoidTypeKind || err.Set != "AnyValueEnum" {
		t.Fatalf("unexpected error %v", err)
	}
	if _, err := TryNewAnyValueEnum(w.ret); err == nil {
		t.Fatalf("checked classifier accepted a void value")
	}
}

func TestMetadataScenario(t *testing.T) {
	w := newWorld(t)
	expectClassifyPanic(t, func() { NewBasicValueEnum(w.md) })
	expectClassifyPanic(t, func() { NewAnyValueEnum(w.md) })
	v := NewBasicMetadataValueEnum(w.md)
	if !v.IsMetadataValue() {
		t.Fatalf("expected metadata member, got %s", v)
	}
	if s, ok := v.AsMetadataValue().StringValue(); !ok || s != "hint" {
		t.Fatalf("unexpected metadata payload %q", s)
	}
	if _, ok := v.ToBasicValueEnum(); ok {
		t.Fatalf("metadata must not narrow to BasicValueEnum")
	}
}

func TestFunctionValidation(t *testing.T) {
	w := newWorld(t)
	if !NewAnyValueEnum(w.fn).IsFunctionValue() {
		t.Fatalf("function should classify as FunctionValue")
	}
	err := expectClassifyPanic(t, func() { NewAnyValueEnum(w.fnUndef) })
	if err.TypeKind != native.FunctionTypeKind {
		t.Fatalf("unexpected error %v", err)
	}
	expectClassifyPanic(t, func() { NewBasicValueEnum(w.fn) })
}

func TestLabelIsOutsideEverySet(t *testing.T) {
	w := newWorld(t)
	for _, try := range []func(native.ValueRef) error{
		func(r native.ValueRef) error { _, err := TryNewAnyValueEnum(r); return err },
		func(r native.ValueRef) error { _, err := TryNewBasicValueEnum(r); return err },
		func(r native.ValueRef) error { _, err := TryNewAggregateValueEnum(r); return err },
		func(r native.ValueRef) error { _, err := TryNewBasicMetadataValueEnum(r); return err },
	} {
		if try(w.block) == nil {
			t.Fatalf("label value should not classify")
		}
		if try(native.ValueRef{}) == nil {
			t.Fatalf("null handle should not classify")
		}
	}
}

func TestAggregateClassification(t *testing.T) {
	w := newWorld(t)
	if !NewAggregateValueEnum(w.arr).IsArrayValue() {
		t.Fatalf("array should be an aggregate array")
	}
	if !NewAggregateValueEnum(w.st).IsStructValue() {
		t.Fatalf("struct should be an aggregate struct")
	}
	expectClassifyPanic(t, func() { NewAggregateValueEnum(w.vec) })
	expectClassifyPanic(t, func() { NewAggregateValueEnum(w.i32) })
}

// Classification and direct injection agree for every member of every set.
func TestClassificationAgreesWithInjection(t *testing.T) {
	w := newWorld(t)
	iv := must(NewIntValue(w.i32))
	fv := must(NewFloatValue(w.f64))
	hv := must(NewFloatValue(w.half))
	pv := must(NewPointerValue(w.ptr))
	av := must(NewArrayValue(w.arr))
	sv := must(NewStructValue(w.st))
	vv := must(NewVectorValue(w.vec))
	fnv := must(NewFunctionValue(w.fn))
	mv := must(NewMetadataValue(w.md))

	anyCases := []struct {
		ref  native.ValueRef
		want AnyValueEnum
	}{
		{w.i32, AnyValueFrom(iv)},
		{w.f64, AnyValueFrom(fv)},
		{w.half, AnyValueFrom(hv)},
		{w.ptr, AnyValueFrom(pv)},
		{w.arr, AnyValueFrom(av)},
		{w.st, AnyValueFrom(sv)},
		{w.vec, AnyValueFrom(vv)},
		{w.fn, AnyValueFrom(fnv)},
	}
	for _, tc := range anyCases {
		if got := NewAnyValueEnum(tc.ref); got != tc.want {
			t.Fatalf("%s: classified %s, injected %s", tc.ref, got, tc.want)
		}
	}

	basicCases := []struct {
		ref  native.ValueRef
		want BasicValueEnum
	}{
		{w.i32, BasicValueFrom(iv)},
		{w.f64, BasicValueFrom(fv)},
		{w.ptr, BasicValueFrom(pv)},
		{w.arr, BasicValueFrom(av)},
		{w.st, BasicValueFrom(sv)},
		{w.vec, BasicValueFrom(vv)},
	}
	for _, tc := range basicCases {
		if got := NewBasicValueEnum(tc.ref); got != tc.want {
			t.Fatalf("%s: classified %s, injected %s", tc.ref, got, tc.want)
		}
		if got := NewBasicMetadataValueEnum(tc.ref); got != tc.want.AsBasicMetadataValueEnum() {
			t.Fatalf("%s: basic-metadata classification disagrees", tc.ref)
		}
	}
	if NewBasicMetadataValueEnum(w.md) != BasicMetadataValueFrom(mv) {
		t.Fatalf("metadata classification disagrees with injection")
	}
	if NewAggregateValueEnum(w.arr) != AggregateValueFrom(av) || NewAggregateValueEnum(w.st) != AggregateValueFrom(sv) {
		t.Fatalf("aggregate classification disagrees with injection")
	}
}

func TestTagExclusivity(t *testing.T) {
	w := newWorld(t)
	for _, ref := range []native.ValueRef{w.i32, w.f64, w.ptr, w.arr, w.st, w.vec, w.fn, w.add} {
		v := NewAnyValueEnum(ref)
		preds := []bool{
			v.IsArrayValue(), v.IsIntValue(), v.IsFloatValue(), v.IsPhiValue(), v.IsFunctionValue(),
			v.IsPointerValue(), v.IsStructValue(), v.IsVectorValue(), v.IsInstructionValue(),
		}
		n := 0
		for _, p := range preds {
			if p {
				n++
			}
		}
		if n != 1 {
			t.Fatalf("%s: %d predicates true", v, n)
		}
		if want := wrapperKindOf(ref.Type().TypeKind()); v.Kind() != want {
			t.Fatalf("%s: tag %s does not match native kind (want %s)", v, v.Kind(), want)
		}
	}
}

func TestBasicToAnyIsTotalAndTagPreserving(t *testing.T) {
	w := newWorld(t)
	for _, ref := range []native.ValueRef{w.i32, w.f64, w.ptr, w.arr, w.st, w.vec, w.add, w.phi} {
		b := NewBasicValueEnum(ref)
		a := b.AsAnyValueEnum()
		if a.Kind() != b.Kind() || a.AsValueRef() != ref {
			t.Fatalf("%s: widening changed the value to %s", b, a)
		}
		if a != NewAnyValueEnum(ref) {
			t.Fatalf("%s: widening disagrees with classification", b)
		}
		back, ok := a.ToBasicValueEnum()
		if !ok || back != b {
			t.Fatalf("%s: narrowing back failed", a)
		}
	}
}

func TestNarrowingRoundTrip(t *testing.T) {
	w := newWorld(t)
	iv := must(NewIntValue(w.i32))
	if AnyValueFrom(iv).AsIntValue() != iv || BasicValueFrom(iv).AsIntValue() != iv {
		t.Fatalf("int narrowing round trip failed")
	}
	phi := must(NewPhiValue(w.phi))
	if AnyValueFrom(phi).AsPhiValue() != phi {
		t.Fatalf("phi narrowing round trip failed")
	}
	inst := must(NewInstructionValue(w.add))
	if AnyValueFrom(inst).AsInstructionValue() != inst {
		t.Fatalf("instruction narrowing round trip failed")
	}
	sv := must(NewStructValue(w.st))
	if AggregateValueFrom(sv).AsBasicValueEnum().AsStructValue() != sv {
		t.Fatalf("struct narrowing round trip failed")
	}
}

func TestNarrowingMismatch(t *testing.T) {
	w := newWorld(t)
	v := NewAnyValueEnum(w.i32)
	if _, ok := v.TryFloatValue(); ok {
		t.Fatalf("TryFloatValue should fail on an int")
	}
	defer func() {
		r := recover()
		var nerr *NarrowError
		err, _ := r.(error)
		if !errors.As(err, &nerr) || nerr.Want != KindFloat || nerr.Have != KindInt {
			t.Fatalf("expected NarrowError, got %v", r)
		}
	}()
	_ = v.AsFloatValue()
}

func TestTypeIdentity(t *testing.T) {
	w := newWorld(t)
	for _, ref := range []native.ValueRef{w.i32, w.f64, w.ptr, w.arr, w.st, w.vec, w.fn} {
		if got := NewAnyValueEnum(ref).Type().AsTypeRef(); got != ref.Type() {
			t.Fatalf("%s: Type() returned %s, want %s", ref, got, ref.Type())
		}
	}
	b := NewBasicValueEnum(w.vec)
	if !b.Type().IsVectorType() || b.Type().AsTypeRef() != w.vec.Type() {
		t.Fatalf("basic Type() mismatch")
	}
}

func TestNameForwarding(t *testing.T) {
	w := newWorld(t)
	v := NewAnyValueEnum(w.add)
	v.SetName("sum")
	if w.add.Name() != "sum" || v.Name() != "sum" {
		t.Fatalf("rename did not reach the native object")
	}
	if v.Kind() != KindInt {
		t.Fatalf("rename changed the tag")
	}
	a := NewAggregateValueEnum(w.arr)
	a.SetName("table")
	if NewBasicValueEnum(w.arr).Name() != "table" {
		t.Fatalf("aggregate rename not visible")
	}
}

func TestAsInstructionIsACrossCast(t *testing.T) {
	w := newWorld(t)
	b := NewBasicValueEnum(w.add)
	inst, ok := b.AsInstruction()
	if !ok || inst.Opcode() != native.OpAdd {
		t.Fatalf("expected add instruction, got %v %v", inst, ok)
	}
	if !b.IsIntValue() {
		t.Fatalf("AsInstruction changed the tag")
	}
	if _, ok := NewBasicValueEnum(w.i32).AsInstruction(); ok {
		t.Fatalf("constant should not be instruction-backed")
	}
	phi, ok := NewBasicValueEnum(w.phi).AsInstruction()
	if !ok {
		t.Fatalf("phi should be instruction-backed")
	}
	if _, ok := phi.AsPhi(); !ok {
		t.Fatalf("phi instruction should narrow to PhiValue")
	}
}

func TestWrapperConstructorsCheckKinds(t *testing.T) {
	w := newWorld(t)
	var werr *WrapError
	if _, err := NewIntValue(w.f64); !errors.As(err, &werr) || werr.Want != KindInt {
		t.Fatalf("expected WrapError, got %v", err)
	}
	if _, err := NewFunctionValue(w.fnUndef); err == nil {
		t.Fatalf("undef of function type is not a function")
	}
	if _, err := NewPhiValue(w.add); err == nil {
		t.Fatalf("add is not a phi")
	}
	if _, err := NewInstructionValue(w.i32); err == nil {
		t.Fatalf("constant is not an instruction")
	}
	if _, err := NewMetadataValue(native.ValueRef{}); err == nil {
		t.Fatalf("null handle must be rejected")
	}
}

func TestSetMembership(t *testing.T) {
	sets := Sets()
	if len(sets) != 4 {
		t.Fatalf("expected 4 sets, got %d", len(sets))
	}
	want := map[string]int{
		"AnyValueEnum":           9,
		"BasicValueEnum":         6,
		"AggregateValueEnum":     2,
		"BasicMetadataValueEnum": 7,
	}
	for _, s := range sets {
		if s.Members.Len() != want[s.Name] {
			t.Fatalf("%s: %d members, want %d", s.Name, s.Members.Len(), want[s.Name])
		}
	}
	if anyValueSet.members.Has(KindMetadata) || basicValueSet.members.Has(KindPhi) {
		t.Fatalf("membership tables are wrong")
	}
}

func TestBFloatClassifiesAsFloat(t *testing.T) {
	c := native.NewContext()
	ref := c.Undef(c.BFloatType())
	if v := NewBasicValueEnum(ref); !v.IsFloatValue() {
		t.Fatalf("bfloat should be a float member, got %s", v)
	}
	if v := NewBasicMetadataValueEnum(ref); !v.IsFloatValue() {
		t.Fatalf("bfloat should be a float member, got %s", v)
	}
	if _, err := NewFloatValue(ref); err != nil {
		t.Fatalf("NewFloatValue rejected bfloat: %v", err)
	}
}
