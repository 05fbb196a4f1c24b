package types

import (
	"fmt"

	"irkit/internal/native"
)

// AnyTypeEnum is one of {Array, Float, Function, Int, Pointer, Struct,
// Vector, Void}. Labels, tokens and metadata types are not representable.
type AnyTypeEnum struct {
	kind Kind
	ref  native.TypeRef
}

// BasicTypeEnum is one of {Array, Float, Int, Pointer, Struct, Vector}: the
// types a first-class operand can have.
type BasicTypeEnum struct {
	kind Kind
	ref  native.TypeRef
}

const (
	anyTypeKinds   = 1<<KindArray | 1<<KindFloat | 1<<KindFunction | 1<<KindInt | 1<<KindPointer | 1<<KindStruct | 1<<KindVector | 1<<KindVoid
	basicTypeKinds = 1<<KindArray | 1<<KindFloat | 1<<KindInt | 1<<KindPointer | 1<<KindStruct | 1<<KindVector
)

func classify(set string, members uint16, ref native.TypeRef) (Kind, error) {
	if ref.IsNil() {
		return KindInvalid, fmt.Errorf("types: null type handle for %s", set)
	}
	tk := ref.TypeKind()
	k := kindOf(tk)
	if k == KindInvalid || members&(1<<k) == 0 {
		return KindInvalid, &KindError{Want: set, Have: tk}
	}
	return k, nil
}

// TryNewAnyTypeEnum classifies ref, reporting unsupported kinds as errors.
func TryNewAnyTypeEnum(ref native.TypeRef) (AnyTypeEnum, error) {
	k, err := classify("AnyTypeEnum", anyTypeKinds, ref)
	if err != nil {
		return AnyTypeEnum{}, err
	}
	return AnyTypeEnum{kind: k, ref: ref}, nil
}

// NewAnyTypeEnum classifies ref and panics on unsupported kinds.
func NewAnyTypeEnum(ref native.TypeRef) AnyTypeEnum {
	t, err := TryNewAnyTypeEnum(ref)
	if err != nil {
		panic(err)
	}
	return t
}

// TryNewBasicTypeEnum classifies ref, reporting unsupported kinds as errors.
func TryNewBasicTypeEnum(ref native.TypeRef) (BasicTypeEnum, error) {
	k, err := classify("BasicTypeEnum", basicTypeKinds, ref)
	if err != nil {
		return BasicTypeEnum{}, err
	}
	return BasicTypeEnum{kind: k, ref: ref}, nil
}

// NewBasicTypeEnum classifies ref and panics on unsupported kinds.
func NewBasicTypeEnum(ref native.TypeRef) BasicTypeEnum {
	t, err := TryNewBasicTypeEnum(ref)
	if err != nil {
		panic(err)
	}
	return t
}

func (t AnyTypeEnum) AsTypeRef() native.TypeRef   { return t.ref }
func (t AnyTypeEnum) Kind() Kind                  { return t.kind }
func (t AnyTypeEnum) String() string              { return t.ref.String() }
func (t BasicTypeEnum) AsTypeRef() native.TypeRef { return t.ref }
func (t BasicTypeEnum) Kind() Kind                { return t.kind }
func (t BasicTypeEnum) String() string            { return t.ref.String() }

// AsAnyTypeEnum widens a basic type. Every basic kind is also an any kind.
func (t BasicTypeEnum) AsAnyTypeEnum() AnyTypeEnum { return AnyTypeEnum(t) }

func mismatch(set string, want, have Kind) {
	panic(fmt.Sprintf("types: %s holds %s, not %s", set, have, want))
}

func (t AnyTypeEnum) IsArrayType() bool    { return t.kind == KindArray }
func (t AnyTypeEnum) IsFloatType() bool    { return t.kind == KindFloat }
func (t AnyTypeEnum) IsFunctionType() bool { return t.kind == KindFunction }
func (t AnyTypeEnum) IsIntType() bool      { return t.kind == KindInt }
func (t AnyTypeEnum) IsPointerType() bool  { return t.kind == KindPointer }
func (t AnyTypeEnum) IsStructType() bool   { return t.kind == KindStruct }
func (t AnyTypeEnum) IsVectorType() bool   { return t.kind == KindVector }
func (t AnyTypeEnum) IsVoidType() bool     { return t.kind == KindVoid }

func (t AnyTypeEnum) AsArrayType() ArrayType {
	if t.kind != KindArray {
		mismatch("AnyTypeEnum", KindArray, t.kind)
	}
	return ArrayType{t.ref}
}

func (t AnyTypeEnum) AsFloatType() FloatType {
	if t.kind != KindFloat {
		mismatch("AnyTypeEnum", KindFloat, t.kind)
	}
	return FloatType{t.ref}
}

func (t AnyTypeEnum) AsFunctionType() FunctionType {
	if t.kind != KindFunction {
		mismatch("AnyTypeEnum", KindFunction, t.kind)
	}
	return FunctionType{t.ref}
}

func (t AnyTypeEnum) AsIntType() IntType {
	if t.kind != KindInt {
		mismatch("AnyTypeEnum", KindInt, t.kind)
	}
	return IntType{t.ref}
}

func (t AnyTypeEnum) AsPointerType() PointerType {
	if t.kind != KindPointer {
		mismatch("AnyTypeEnum", KindPointer, t.kind)
	}
	return PointerType{t.ref}
}

func (t AnyTypeEnum) AsStructType() StructType {
	if t.kind != KindStruct {
		mismatch("AnyTypeEnum", KindStruct, t.kind)
	}
	return StructType{t.ref}
}

func (t AnyTypeEnum) AsVectorType() VectorType {
	if t.kind != KindVector {
		mismatch("AnyTypeEnum", KindVector, t.kind)
	}
	return VectorType{t.ref}
}

func (t AnyTypeEnum) AsVoidType() VoidType {
	if t.kind != KindVoid {
		mismatch("AnyTypeEnum", KindVoid, t.kind)
	}
	return VoidType{t.ref}
}

func (t BasicTypeEnum) IsArrayType() bool   { return t.kind == KindArray }
func (t BasicTypeEnum) IsFloatType() bool   { return t.kind == KindFloat }
func (t BasicTypeEnum) IsIntType() bool     { return t.kind == KindInt }
func (t BasicTypeEnum) IsPointerType() bool { return t.kind == KindPointer }
func (t BasicTypeEnum) IsStructType() bool  { return t.kind == KindStruct }
func (t BasicTypeEnum) IsVectorType() bool  { return t.kind == KindVector }

func (t BasicTypeEnum) AsArrayType() ArrayType     { return t.AsAnyTypeEnum().AsArrayType() }
func (t BasicTypeEnum) AsFloatType() FloatType     { return t.AsAnyTypeEnum().AsFloatType() }
func (t BasicTypeEnum) AsIntType() IntType         { return t.AsAnyTypeEnum().AsIntType() }
func (t BasicTypeEnum) AsPointerType() PointerType { return t.AsAnyTypeEnum().AsPointerType() }
func (t BasicTypeEnum) AsStructType() StructType   { return t.AsAnyTypeEnum().AsStructType() }
func (t BasicTypeEnum) AsVectorType() VectorType   { return t.AsAnyTypeEnum().AsVectorType() }
