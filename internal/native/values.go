package native

import "fmt"

// ValueRef is an opaque, non-owning handle to a value owned by a Context.
// The zero ValueRef is the null handle. Handles are comparable; two handles
// are equal exactly when they name the same native object.
type ValueRef struct {
	c  *Context
	id ValueID
}

// IsNil reports whether the handle is null.
func (v ValueRef) IsNil() bool { return v.c == nil || v.id == NoValueID }

// ID exposes the table index of the handle.
func (v ValueRef) ID() ValueID { return v.id }

// Context returns the owning context.
func (v ValueRef) Context() *Context { return v.c }

func (v ValueRef) desc() valueDesc {
	if v.IsNil() {
		panic("native: query on null value handle")
	}
	v.c.mu.RLock()
	defer v.c.mu.RUnlock()
	return *v.c.valueDesc(v.id)
}

// Type returns the type of the value.
func (v ValueRef) Type() TypeRef { return v.c.typeRef(v.desc().Type) }

// Name returns the current name of the value; unnamed values yield "".
func (v ValueRef) Name() string { return v.desc().Name }

// SetName renames the value. Metadata cannot carry a name and is left as is.
func (v ValueRef) SetName(name string) {
	if v.IsNil() {
		panic("native: rename of null value handle")
	}
	v.c.mu.Lock()
	defer v.c.mu.Unlock()
	d := v.c.valueDesc(v.id)
	if d.Class == classMetadata {
		return
	}
	d.Name = name
}

// IsAFunction reports whether the value is a function definition or declaration.
func (v ValueRef) IsAFunction() bool { return v.desc().Class == classFunction }

// IsAInstruction reports whether the value is produced by an instruction.
func (v ValueRef) IsAInstruction() bool { return v.desc().Class == classInstruction }

// IsAPHINode reports whether the value is a phi instruction.
func (v ValueRef) IsAPHINode() bool {
	d := v.desc()
	return d.Class == classInstruction && d.Op == OpPHI
}

// IsABasicBlock reports whether the value is a basic block label.
func (v ValueRef) IsABasicBlock() bool { return v.desc().Class == classBlock }

// IsAArgument reports whether the value is a function parameter.
func (v ValueRef) IsAArgument() bool { return v.desc().Class == classParam }

// IsAGlobal reports whether the value is a global variable.
func (v ValueRef) IsAGlobal() bool { return v.desc().Class == classGlobal }

// IsConstant reports whether the value is a compile-time constant.
func (v ValueRef) IsConstant() bool {
	switch v.desc().Class {
	case classConstant, classUndef, classNull, classFunction, classGlobal:
		return true
	default:
		return false
	}
}

// IsUndef reports whether the value is an undef constant.
func (v ValueRef) IsUndef() bool { return v.desc().Class == classUndef }

// IsNull reports whether the value is the null constant of its type.
func (v ValueRef) IsNull() bool { return v.desc().Class == classNull }

// IsMDString reports whether the value is a metadata string.
func (v ValueRef) IsMDString() bool {
	d := v.desc()
	return d.Class == classMetadata && len(d.Operands) == 0
}

// MDString returns the payload of a metadata string.
func (v ValueRef) MDString() string { return v.desc().Str }

// ConstZExtValue returns the zero-extended payload of an integer constant.
func (v ValueRef) ConstZExtValue() uint64 { return v.desc().Bits }

// ConstReal returns the payload of a floating-point constant.
func (v ValueRef) ConstReal() float64 { return v.desc().Real }

// Opcode returns the opcode of an instruction, OpInvalid otherwise.
func (v ValueRef) Opcode() Opcode {
	d := v.desc()
	if d.Class != classInstruction {
		return OpInvalid
	}
	return d.Op
}

// Operands returns the operands of an instruction, constant aggregate or
// metadata node.
func (v ValueRef) Operands() []ValueRef { return v.refs(v.desc().Operands) }

// Parent returns the enclosing function of a parameter or block, or the
// enclosing block of an instruction.
func (v ValueRef) Parent() ValueRef { return v.c.valueRef(v.desc().Parent) }

// ParamCount returns the number of parameters of a function.
func (v ValueRef) ParamCount() int { return len(v.desc().Params) }

// Param returns the i-th parameter of a function.
func (v ValueRef) Param(i int) ValueRef {
	params := v.desc().Params
	if i < 0 || i >= len(params) {
		panic(fmt.Sprintf("native: parameter index %d out of range [0,%d)", i, len(params)))
	}
	return v.c.valueRef(params[i])
}

// Params returns all parameters of a function.
func (v ValueRef) Params() []ValueRef { return v.refs(v.desc().Params) }

// Blocks returns the basic blocks of a function.
func (v ValueRef) Blocks() []ValueRef { return v.refs(v.desc().Blocks) }

// Instructions returns the instructions of a basic block.
func (v ValueRef) Instructions() []ValueRef { return v.refs(v.desc().Instrs) }

// IncomingCount returns the number of incoming edges of a phi.
func (v ValueRef) IncomingCount() int { return len(v.desc().Incoming) }

// Incoming returns the i-th (value, block) pair of a phi.
func (v ValueRef) Incoming(i int) (ValueRef, ValueRef) {
	in := v.desc().Incoming
	if i < 0 || i >= len(in) {
		panic(fmt.Sprintf("native: incoming index %d out of range [0,%d)", i, len(in)))
	}
	return v.c.valueRef(in[i].Value), v.c.valueRef(in[i].Block)
}

// AddIncoming appends an edge to a phi instruction.
func (v ValueRef) AddIncoming(val, block ValueRef) error {
	if v.IsNil() {
		return fmt.Errorf("add incoming: null phi handle")
	}
	c := v.c
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.valueDesc(v.id)
	if d.Class != classInstruction || d.Op != OpPHI {
		return fmt.Errorf("add incoming: value %d is not a phi", v.id)
	}
	if !c.ownsValue(val) || !c.ownsValue(block) {
		return fmt.Errorf("add incoming: handle belongs to a different context")
	}
	if c.valueDesc(block.id).Class != classBlock {
		return fmt.Errorf("add incoming: value %d is not a basic block", block.id)
	}
	if got := c.valueDesc(val.id).Type; got != d.Type {
		return fmt.Errorf("add incoming: type mismatch (%d vs %d)", got, d.Type)
	}
	d.Incoming = append(d.Incoming, incoming{Value: val.id, Block: block.id})
	return nil
}

func (v ValueRef) refs(ids []ValueID) []ValueRef {
	out := make([]ValueRef, len(ids))
	for i, id := range ids {
		out[i] = v.c.valueRef(id)
	}
	return out
}

func (v ValueRef) String() string {
	if v.IsNil() {
		return "<nil>"
	}
	d := v.desc()
	if d.Name != "" {
		return fmt.Sprintf("%%%s#%d", d.Name, v.id)
	}
	return fmt.Sprintf("#%d", v.id)
}

// Constant constructors ------------------------------------------------------

func (c *Context) newValue(t TypeRef, v valueDesc) ValueRef {
	c.mustOwn(t)
	v.Type = t.id
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.valueRef(c.addValue(v))
}

// ConstInt returns an integer constant, truncated to the width of t.
func (c *Context) ConstInt(t TypeRef, bits uint64) (ValueRef, error) {
	if !c.owns(t) || t.TypeKind() != IntegerTypeKind {
		return ValueRef{}, fmt.Errorf("const int: %s is not an integer type", t)
	}
	if w := t.IntWidth(); w < 64 {
		bits &= (uint64(1) << w) - 1
	}
	return c.newValue(t, valueDesc{Class: classConstant, Bits: bits}), nil
}

// ConstFloat returns a floating-point constant of type t.
func (c *Context) ConstFloat(t TypeRef, f float64) (ValueRef, error) {
	if !c.owns(t) || !t.TypeKind().IsFloat() {
		return ValueRef{}, fmt.Errorf("const float: %s is not a floating-point type", t)
	}
	if t.TypeKind() == FloatTypeKind {
		f = float64(float32(f))
	}
	return c.newValue(t, valueDesc{Class: classConstant, Real: f}), nil
}

// ConstNull returns the all-zero constant of t.
func (c *Context) ConstNull(t TypeRef) ValueRef {
	return c.newValue(t, valueDesc{Class: classNull})
}

// Undef returns the undef constant of t. Any type is accepted, including
// function and void types, mirroring the C API.
func (c *Context) Undef(t TypeRef) ValueRef {
	return c.newValue(t, valueDesc{Class: classUndef})
}

// ConstArray returns a constant array of elem values.
func (c *Context) ConstArray(elem TypeRef, vals []ValueRef) (ValueRef, error) {
	if err := c.checkElems("const array", vals, func(int) TypeRef { return elem }); err != nil {
		return ValueRef{}, err
	}
	n, err := lenU32(len(vals))
	if err != nil {
		return ValueRef{}, err
	}
	return c.newValue(c.ArrayType(elem, n), valueDesc{Class: classConstant, Operands: ids(vals)}), nil
}

// ConstVector returns a constant vector; vals must share one element type.
func (c *Context) ConstVector(vals []ValueRef) (ValueRef, error) {
	if len(vals) == 0 {
		return ValueRef{}, fmt.Errorf("const vector: no elements")
	}
	elem := vals[0].Type()
	if err := c.checkElems("const vector", vals, func(int) TypeRef { return elem }); err != nil {
		return ValueRef{}, err
	}
	n, err := lenU32(len(vals))
	if err != nil {
		return ValueRef{}, err
	}
	return c.newValue(c.VectorType(elem, n), valueDesc{Class: classConstant, Operands: ids(vals)}), nil
}

// ConstStruct returns a constant of a literal struct type built from the
// types of vals.
func (c *Context) ConstStruct(vals []ValueRef, packed bool) (ValueRef, error) {
	fields := make([]TypeRef, len(vals))
	for i, v := range vals {
		if !c.ownsValue(v) {
			return ValueRef{}, fmt.Errorf("const struct: field %d belongs to a different context", i)
		}
		fields[i] = v.Type()
	}
	return c.newValue(c.StructType(fields, packed), valueDesc{Class: classConstant, Operands: ids(vals)}), nil
}

// MDString returns a metadata string value.
func (c *Context) MDString(s string) ValueRef {
	return c.newValue(c.MetadataType(), valueDesc{Class: classMetadata, Str: s})
}

// MDNode returns a metadata tuple over vals.
func (c *Context) MDNode(vals []ValueRef) (ValueRef, error) {
	for i, v := range vals {
		if !c.ownsValue(v) {
			return ValueRef{}, fmt.Errorf("md node: operand %d belongs to a different context", i)
		}
	}
	return c.newValue(c.MetadataType(), valueDesc{Class: classMetadata, Operands: ids(vals)}), nil
}

func (c *Context) checkElems(what string, vals []ValueRef, want func(int) TypeRef) error {
	for i, v := range vals {
		if !c.ownsValue(v) {
			return fmt.Errorf("%s: element %d belongs to a different context", what, i)
		}
		if got := v.Type(); got != want(i) {
			return fmt.Errorf("%s: element %d has type %s, want %s", what, i, got, want(i))
		}
	}
	return nil
}

func ids(vals []ValueRef) []ValueID {
	out := make([]ValueID, len(vals))
	for i, v := range vals {
		out[i] = v.id
	}
	return out
}
