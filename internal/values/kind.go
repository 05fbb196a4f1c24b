// Package values wraps native value handles in strongly typed values and
// groups them into four closed sets: AnyValueEnum, BasicValueEnum,
// AggregateValueEnum and BasicMetadataValueEnum.
//
// A set value holds exactly one active member. It is created either by
// injecting a concrete wrapper (AnyValueFrom and friends, which cannot fail)
// or by classifying a raw handle on its type kind (NewAnyValueEnum and
// friends, which panic with a *ClassifyError when the kind lies outside the
// set). The TryNew* classifiers report the same condition as an error.
//
// Every wrapper is a non-owning reference: the native context owns the
// underlying object and must outlive all wrappers built from it.
package values

import (
	"fmt"
	"math/bits"
	"strings"
)

// Kind enumerates the concrete wrapper kinds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindArray
	KindInt
	KindFloat
	KindPointer
	KindStruct
	KindVector
	KindFunction
	KindInstruction
	KindMetadata
	KindPhi
)

// Kinds lists every concrete wrapper kind in declaration order.
var Kinds = [...]Kind{
	KindArray, KindInt, KindFloat, KindPointer, KindStruct,
	KindVector, KindFunction, KindInstruction, KindMetadata, KindPhi,
}

func (k Kind) String() string {
	switch k {
	case KindArray:
		return "array"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindPointer:
		return "pointer"
	case KindStruct:
		return "struct"
	case KindVector:
		return "vector"
	case KindFunction:
		return "function"
	case KindInstruction:
		return "instruction"
	case KindMetadata:
		return "metadata"
	case KindPhi:
		return "phi"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// WrapperName returns the Go type name of the wrapper for k.
func (k Kind) WrapperName() string {
	if k == KindInvalid || k > KindPhi {
		return "invalid"
	}
	s := k.String()
	return strings.ToUpper(s[:1]) + s[1:] + "Value"
}

// KindSet is a bitset of wrapper kinds.
type KindSet uint16

func kindSetOf(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

// Has reports whether k is a member of the set.
func (s KindSet) Has(k Kind) bool { return k != KindInvalid && s&(1<<k) != 0 }

// Len returns the number of members.
func (s KindSet) Len() int { return bits.OnesCount16(uint16(s)) }

// Kinds lists the members in declaration order.
func (s KindSet) Kinds() []Kind {
	out := make([]Kind, 0, s.Len())
	for _, k := range Kinds {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

func (s KindSet) String() string {
	parts := make([]string, 0, s.Len())
	for _, k := range s.Kinds() {
		parts = append(parts, k.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
