package values

import "irkit/internal/native"

// MetadataValue is a metadata string or node used as an operand. It has no
// name: metadata is not nameable in the native library.
type MetadataValue struct{ ref native.ValueRef }

// NewMetadataValue wraps ref, which must have metadata type.
func NewMetadataValue(ref native.ValueRef) (MetadataValue, error) {
	if err := checkTyped(ref, KindMetadata); err != nil {
		return MetadataValue{}, err
	}
	return MetadataValue{ref}, nil
}

func (v MetadataValue) AsValueRef() native.ValueRef { return v.ref }
func (v MetadataValue) kind() Kind                  { return KindMetadata }
func (v MetadataValue) Kind() Kind                  { return KindMetadata }
func (v MetadataValue) String() string              { return describe(KindMetadata, v.ref) }

// AsInstruction always reports false.
func (v MetadataValue) AsInstruction() (InstructionValue, bool) { return InstructionValue{}, false }

// IsString reports whether the value is a metadata string.
func (v MetadataValue) IsString() bool { return v.ref.IsMDString() }

// StringValue returns the payload of a metadata string.
func (v MetadataValue) StringValue() (string, bool) {
	if !v.ref.IsMDString() {
		return "", false
	}
	return v.ref.MDString(), true
}

// Operands returns the elements of a metadata node.
func (v MetadataValue) Operands() []native.ValueRef { return v.ref.Operands() }
