package native

import "fmt"

// TypeKind is the structural category of a native type. The numbering follows
// the C enumeration of the underlying library, so values survive snapshots.
type TypeKind uint8

const (
	VoidTypeKind TypeKind = iota
	HalfTypeKind
	FloatTypeKind
	DoubleTypeKind
	X86FP80TypeKind
	FP128TypeKind
	PPCFP128TypeKind
	LabelTypeKind
	IntegerTypeKind
	FunctionTypeKind
	StructTypeKind
	ArrayTypeKind
	PointerTypeKind
	VectorTypeKind
	MetadataTypeKind
	X86MMXTypeKind
	TokenTypeKind
	ScalableVectorTypeKind
	BFloatTypeKind
	X86AMXTypeKind
	TargetExtTypeKind
)

func (k TypeKind) String() string {
	switch k {
	case VoidTypeKind:
		return "void"
	case HalfTypeKind:
		return "half"
	case FloatTypeKind:
		return "float"
	case DoubleTypeKind:
		return "double"
	case X86FP80TypeKind:
		return "x86_fp80"
	case FP128TypeKind:
		return "fp128"
	case PPCFP128TypeKind:
		return "ppc_fp128"
	case LabelTypeKind:
		return "label"
	case IntegerTypeKind:
		return "integer"
	case FunctionTypeKind:
		return "function"
	case StructTypeKind:
		return "struct"
	case ArrayTypeKind:
		return "array"
	case PointerTypeKind:
		return "pointer"
	case VectorTypeKind:
		return "vector"
	case MetadataTypeKind:
		return "metadata"
	case X86MMXTypeKind:
		return "x86_mmx"
	case TokenTypeKind:
		return "token"
	case ScalableVectorTypeKind:
		return "scalable_vector"
	case BFloatTypeKind:
		return "bfloat"
	case X86AMXTypeKind:
		return "x86_amx"
	case TargetExtTypeKind:
		return "target_ext"
	default:
		return fmt.Sprintf("TypeKind(%d)", k)
	}
}

// IsFloat reports whether the kind belongs to the floating-point family.
func (k TypeKind) IsFloat() bool {
	switch k {
	case HalfTypeKind, BFloatTypeKind, FloatTypeKind, DoubleTypeKind,
		X86FP80TypeKind, FP128TypeKind, PPCFP128TypeKind:
		return true
	default:
		return false
	}
}

// Opcode identifies the operation performed by an instruction value.
type Opcode uint8

const (
	OpInvalid Opcode = iota
	OpRet
	OpBr
	OpAdd
	OpFAdd
	OpSub
	OpFSub
	OpMul
	OpFMul
	OpICmp
	OpFCmp
	OpAlloca
	OpLoad
	OpStore
	OpGetElementPtr
	OpCall
	OpPHI
	OpSelect
	OpExtractValue
	OpInsertValue
	OpTrunc
	OpZExt
	OpBitCast
)

var opcodeNames = [...]string{
	OpInvalid:       "invalid",
	OpRet:           "ret",
	OpBr:            "br",
	OpAdd:           "add",
	OpFAdd:          "fadd",
	OpSub:           "sub",
	OpFSub:          "fsub",
	OpMul:           "mul",
	OpFMul:          "fmul",
	OpICmp:          "icmp",
	OpFCmp:          "fcmp",
	OpAlloca:        "alloca",
	OpLoad:          "load",
	OpStore:         "store",
	OpGetElementPtr: "getelementptr",
	OpCall:          "call",
	OpPHI:           "phi",
	OpSelect:        "select",
	OpExtractValue:  "extractvalue",
	OpInsertValue:   "insertvalue",
	OpTrunc:         "trunc",
	OpZExt:          "zext",
	OpBitCast:       "bitcast",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return fmt.Sprintf("Opcode(%d)", op)
}

// ParseOpcode resolves an instruction mnemonic.
func ParseOpcode(s string) (Opcode, error) {
	for i, name := range opcodeNames {
		if Opcode(i) != OpInvalid && name == s {
			return Opcode(i), nil
		}
	}
	return OpInvalid, fmt.Errorf("unknown opcode %q", s)
}
