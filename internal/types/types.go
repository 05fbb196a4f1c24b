// Package types mirrors native types as strongly typed wrappers and
// classifies raw type handles into the AnyTypeEnum and BasicTypeEnum sets.
package types

import (
	"fmt"

	"irkit/internal/native"
)

// Kind enumerates the concrete type wrappers.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindArray
	KindFloat
	KindFunction
	KindInt
	KindPointer
	KindStruct
	KindVector
	KindVoid
)

func (k Kind) String() string {
	switch k {
	case KindArray:
		return "array"
	case KindFloat:
		return "float"
	case KindFunction:
		return "function"
	case KindInt:
		return "int"
	case KindPointer:
		return "pointer"
	case KindStruct:
		return "struct"
	case KindVector:
		return "vector"
	case KindVoid:
		return "void"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// kindOf maps a native type kind to the wrapper that represents it.
func kindOf(tk native.TypeKind) Kind {
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
	case native.VoidTypeKind:
		return KindVoid
	default:
		return KindInvalid
	}
}

// KindError reports a type handle whose kind does not fit the requested
// wrapper or set.
type KindError struct {
	Want string
	Have native.TypeKind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("types: %s type kind is not a %s", e.Have, e.Want)
}

func check(ref native.TypeRef, want Kind) error {
	if ref.IsNil() {
		return fmt.Errorf("types: null type handle for %s", want)
	}
	if tk := ref.TypeKind(); kindOf(tk) != want {
		return &KindError{Want: want.String(), Have: tk}
	}
	return nil
}

// IntType is an integer type of some bit width.
type IntType struct{ ref native.TypeRef }

// FloatType is any member of the floating-point family.
type FloatType struct{ ref native.TypeRef }

// PointerType is an opaque pointer in some address space.
type PointerType struct{ ref native.TypeRef }

// ArrayType is a fixed-length array.
type ArrayType struct{ ref native.TypeRef }

// StructType is a literal struct.
type StructType struct{ ref native.TypeRef }

// VectorType is a fixed-length SIMD vector.
type VectorType struct{ ref native.TypeRef }

// FunctionType is a function signature.
type FunctionType struct{ ref native.TypeRef }

// VoidType is the empty result type.
type VoidType struct{ ref native.TypeRef }

// The New*Type constructors check that ref has the wrapper's kind.

func NewIntType(ref native.TypeRef) (IntType, error) {
	if err := check(ref, KindInt); err != nil {
		return IntType{}, err
	}
	return IntType{ref}, nil
}

func NewFloatType(ref native.TypeRef) (FloatType, error) {
	if err := check(ref, KindFloat); err != nil {
		return FloatType{}, err
	}
	return FloatType{ref}, nil
}

func NewPointerType(ref native.TypeRef) (PointerType, error) {
	if err := check(ref, KindPointer); err != nil {
		return PointerType{}, err
	}
	return PointerType{ref}, nil
}

func NewArrayType(ref native.TypeRef) (ArrayType, error) {
	if err := check(ref, KindArray); err != nil {
		return ArrayType{}, err
	}
	return ArrayType{ref}, nil
}

func NewStructType(ref native.TypeRef) (StructType, error) {
	if err := check(ref, KindStruct); err != nil {
		return StructType{}, err
	}
	return StructType{ref}, nil
}

func NewVectorType(ref native.TypeRef) (VectorType, error) {
	if err := check(ref, KindVector); err != nil {
		return VectorType{}, err
	}
	return VectorType{ref}, nil
}

func NewFunctionType(ref native.TypeRef) (FunctionType, error) {
	if err := check(ref, KindFunction); err != nil {
		return FunctionType{}, err
	}
	return FunctionType{ref}, nil
}

func NewVoidType(ref native.TypeRef) (VoidType, error) {
	if err := check(ref, KindVoid); err != nil {
		return VoidType{}, err
	}
	return VoidType{ref}, nil
}

func (t IntType) AsTypeRef() native.TypeRef      { return t.ref }
func (t FloatType) AsTypeRef() native.TypeRef    { return t.ref }
func (t PointerType) AsTypeRef() native.TypeRef  { return t.ref }
func (t ArrayType) AsTypeRef() native.TypeRef    { return t.ref }
func (t StructType) AsTypeRef() native.TypeRef   { return t.ref }
func (t VectorType) AsTypeRef() native.TypeRef   { return t.ref }
func (t FunctionType) AsTypeRef() native.TypeRef { return t.ref }
func (t VoidType) AsTypeRef() native.TypeRef     { return t.ref }

func (t IntType) String() string      { return t.ref.String() }
func (t FloatType) String() string    { return t.ref.String() }
func (t PointerType) String() string  { return t.ref.String() }
func (t ArrayType) String() string    { return t.ref.String() }
func (t StructType) String() string   { return t.ref.String() }
func (t VectorType) String() string   { return t.ref.String() }
func (t FunctionType) String() string { return t.ref.String() }
func (t VoidType) String() string     { return t.ref.String() }

// BitWidth returns the integer width in bits.
func (t IntType) BitWidth() uint32 { return t.ref.IntWidth() }

// NativeKind distinguishes half, float, double and the wider formats.
func (t FloatType) NativeKind() native.TypeKind { return t.ref.TypeKind() }

// AddressSpace returns the pointer's address space.
func (t PointerType) AddressSpace() uint32 { return t.ref.AddressSpace() }

// Len returns the element count.
func (t ArrayType) Len() uint32 { return t.ref.Len() }

// ElementType returns the element type.
func (t ArrayType) ElementType() BasicTypeEnum { return NewBasicTypeEnum(t.ref.ElementType()) }

// Len returns the lane count.
func (t VectorType) Len() uint32 { return t.ref.Len() }

// ElementType returns the lane type.
func (t VectorType) ElementType() BasicTypeEnum { return NewBasicTypeEnum(t.ref.ElementType()) }

// FieldCount returns the number of struct fields.
func (t StructType) FieldCount() int { return len(t.ref.FieldTypes()) }

// FieldTypes returns the field types in declaration order.
func (t StructType) FieldTypes() []BasicTypeEnum {
	fields := t.ref.FieldTypes()
	out := make([]BasicTypeEnum, len(fields))
	for i, f := range fields {
		out[i] = NewBasicTypeEnum(f)
	}
	return out
}

// IsPacked reports whether the struct has no padding.
func (t StructType) IsPacked() bool { return t.ref.IsPacked() }

// ReturnType returns the result type; void results classify as KindVoid.
func (t FunctionType) ReturnType() AnyTypeEnum { return NewAnyTypeEnum(t.ref.ReturnType()) }

// ParamTypes returns the parameter types.
func (t FunctionType) ParamTypes() []BasicTypeEnum {
	params := t.ref.ParamTypes()
	out := make([]BasicTypeEnum, len(params))
	for i, p := range params {
		out[i] = NewBasicTypeEnum(p)
	}
	return out
}

// IsVariadic reports whether the signature ends in "...".
func (t FunctionType) IsVariadic() bool { return t.ref.IsVariadic() }
