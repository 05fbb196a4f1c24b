package native

import (
	"fmt"
	"strings"
)

// TypeRef is an opaque, non-owning handle to a type owned by a Context.
// The zero TypeRef is the null handle.
type TypeRef struct {
	c  *Context
	id TypeID
}

// IsNil reports whether the handle is null.
func (t TypeRef) IsNil() bool { return t.c == nil || t.id == NoTypeID }

// ID exposes the table index of the handle.
func (t TypeRef) ID() TypeID { return t.id }

// Context returns the owning context.
func (t TypeRef) Context() *Context { return t.c }

func (t TypeRef) desc() typeDesc {
	if t.IsNil() {
		panic("native: query on null type handle")
	}
	t.c.mu.RLock()
	defer t.c.mu.RUnlock()
	return *t.c.typeDesc(t.id)
}

// TypeKind returns the structural category of the type.
func (t TypeRef) TypeKind() TypeKind { return t.desc().Kind }

// IntWidth returns the bit width of an integer type.
func (t TypeRef) IntWidth() uint32 { return t.desc().Width }

// ElementType returns the element of an array, vector or pointer type.
func (t TypeRef) ElementType() TypeRef { return t.c.typeRef(t.desc().Elem) }

// Len returns the element count of an array or vector type.
func (t TypeRef) Len() uint32 { return t.desc().Count }

// AddressSpace returns the address space of a pointer type.
func (t TypeRef) AddressSpace() uint32 { return t.desc().AddrSpace }

// IsPacked reports whether a struct type is packed.
func (t TypeRef) IsPacked() bool { return t.desc().Packed }

// IsVariadic reports whether a function type accepts variadic arguments.
func (t TypeRef) IsVariadic() bool { return t.desc().Variadic }

// ReturnType returns the result type of a function type.
func (t TypeRef) ReturnType() TypeRef { return t.c.typeRef(t.desc().Ret) }

// FieldTypes returns the element types of a struct type.
func (t TypeRef) FieldTypes() []TypeRef { return t.refs(t.desc().Fields) }

// ParamTypes returns the parameter types of a function type.
func (t TypeRef) ParamTypes() []TypeRef { return t.refs(t.desc().Params) }

func (t TypeRef) refs(ids []TypeID) []TypeRef {
	out := make([]TypeRef, len(ids))
	for i, id := range ids {
		out[i] = t.c.typeRef(id)
	}
	return out
}

// String renders the type in the compact notation used by fixtures.
func (t TypeRef) String() string {
	if t.IsNil() {
		return "<nil>"
	}
	d := t.desc()
	switch d.Kind {
	case IntegerTypeKind:
		return fmt.Sprintf("i%d", d.Width)
	case PointerTypeKind:
		if d.AddrSpace != 0 {
			return fmt.Sprintf("ptr addrspace(%d)", d.AddrSpace)
		}
		return "ptr"
	case ArrayTypeKind:
		return fmt.Sprintf("[%d x %s]", d.Count, t.c.typeRef(d.Elem))
	case VectorTypeKind:
		return fmt.Sprintf("<%d x %s>", d.Count, t.c.typeRef(d.Elem))
	case StructTypeKind:
		parts := make([]string, len(d.Fields))
		for i, f := range d.Fields {
			parts[i] = t.c.typeRef(f).String()
		}
		if d.Packed {
			return "<{" + strings.Join(parts, ", ") + "}>"
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case FunctionTypeKind:
		parts := make([]string, 0, len(d.Params)+1)
		for _, p := range d.Params {
			parts = append(parts, t.c.typeRef(p).String())
		}
		if d.Variadic {
			parts = append(parts, "...")
		}
		return fmt.Sprintf("%s (%s)", t.c.typeRef(d.Ret), strings.Join(parts, ", "))
	default:
		return d.Kind.String()
	}
}

// Type constructors ---------------------------------------------------------

func (c *Context) intern(t typeDesc) TypeRef {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.typeRef(c.addType(t))
}

func (c *Context) simple(kind TypeKind) TypeRef { return c.intern(typeDesc{Kind: kind}) }

// IntType returns the integer type of the given bit width.
func (c *Context) IntType(bits uint32) TypeRef {
	return c.intern(typeDesc{Kind: IntegerTypeKind, Width: bits})
}

func (c *Context) HalfType() TypeRef     { return c.simple(HalfTypeKind) }
func (c *Context) BFloatType() TypeRef   { return c.simple(BFloatTypeKind) }
func (c *Context) FloatType() TypeRef    { return c.simple(FloatTypeKind) }
func (c *Context) DoubleType() TypeRef   { return c.simple(DoubleTypeKind) }
func (c *Context) X86FP80Type() TypeRef  { return c.simple(X86FP80TypeKind) }
func (c *Context) FP128Type() TypeRef    { return c.simple(FP128TypeKind) }
func (c *Context) PPCFP128Type() TypeRef { return c.simple(PPCFP128TypeKind) }
func (c *Context) VoidType() TypeRef     { return c.simple(VoidTypeKind) }
func (c *Context) LabelType() TypeRef    { return c.simple(LabelTypeKind) }
func (c *Context) TokenType() TypeRef    { return c.simple(TokenTypeKind) }
func (c *Context) MetadataType() TypeRef { return c.simple(MetadataTypeKind) }

// PointerType returns the opaque pointer type of an address space.
func (c *Context) PointerType(addrSpace uint32) TypeRef {
	return c.intern(typeDesc{Kind: PointerTypeKind, AddrSpace: addrSpace})
}

// ArrayType returns [n x elem].
func (c *Context) ArrayType(elem TypeRef, n uint32) TypeRef {
	c.mustOwn(elem)
	return c.intern(typeDesc{Kind: ArrayTypeKind, Elem: elem.id, Count: n})
}

// VectorType returns <n x elem>.
func (c *Context) VectorType(elem TypeRef, n uint32) TypeRef {
	c.mustOwn(elem)
	return c.intern(typeDesc{Kind: VectorTypeKind, Elem: elem.id, Count: n})
}

// StructType returns a literal struct type over the given fields.
func (c *Context) StructType(fields []TypeRef, packed bool) TypeRef {
	ids := make([]TypeID, len(fields))
	for i, f := range fields {
		c.mustOwn(f)
		ids[i] = f.id
	}
	return c.intern(typeDesc{Kind: StructTypeKind, Fields: ids, Packed: packed})
}

// FunctionType returns the signature ret (params...).
func (c *Context) FunctionType(ret TypeRef, params []TypeRef, variadic bool) TypeRef {
	c.mustOwn(ret)
	ids := make([]TypeID, len(params))
	for i, p := range params {
		c.mustOwn(p)
		ids[i] = p.id
	}
	return c.intern(typeDesc{Kind: FunctionTypeKind, Ret: ret.id, Params: ids, Variadic: variadic})
}

func (c *Context) mustOwn(t TypeRef) {
	if !c.owns(t) {
		panic("native: type handle belongs to a different context")
	}
}
