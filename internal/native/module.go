package native

import (
	"fmt"

	"fortio.org/safecast"
)

// Module groups globals, functions and free-standing values under a name.
type Module struct {
	c         *Context
	name      string
	attached  []ValueID
	globals   []ValueID
	functions []ValueID
}

// NewModule creates an empty module owned by c.
func (c *Context) NewModule(name string) *Module {
	m := &Module{c: c, name: name}
	c.mu.Lock()
	c.modules = append(c.modules, m)
	c.mu.Unlock()
	return m
}

// Name returns the module name.
func (m *Module) Name() string { return m.name }

// Context returns the owning context.
func (m *Module) Context() *Context { return m.c }

// Attach records a free-standing value (a constant or metadata) so that
// module walks visit it.
func (m *Module) Attach(v ValueRef) {
	if !m.c.ownsValue(v) {
		panic("native: attached value belongs to a different context")
	}
	m.c.mu.Lock()
	defer m.c.mu.Unlock()
	m.attached = append(m.attached, v.id)
}

// AddGlobal declares a global variable holding a value of type valueType.
// The global itself is pointer-typed.
func (m *Module) AddGlobal(name string, valueType TypeRef, init ValueRef) (ValueRef, error) {
	c := m.c
	c.mustOwn(valueType)
	if !init.IsNil() && init.Type() != valueType {
		return ValueRef{}, fmt.Errorf("global %q: initializer has type %s, want %s", name, init.Type(), valueType)
	}
	ptr := c.PointerType(0)
	c.mu.Lock()
	defer c.mu.Unlock()
	d := valueDesc{Class: classGlobal, Type: ptr.id, Name: name}
	if !init.IsNil() {
		d.Operands = []ValueID{init.id}
	}
	id := c.addValue(d)
	m.globals = append(m.globals, id)
	return c.valueRef(id), nil
}

// AddFunction declares a function of type fnType. The resulting value has
// the function type itself, so it classifies as a function.
func (m *Module) AddFunction(name string, fnType TypeRef) (ValueRef, error) {
	c := m.c
	if !c.owns(fnType) || fnType.TypeKind() != FunctionTypeKind {
		return ValueRef{}, fmt.Errorf("function %q: %s is not a function type", name, fnType)
	}
	params := fnType.ParamTypes()
	c.mu.Lock()
	defer c.mu.Unlock()
	fn := c.addValue(valueDesc{Class: classFunction, Type: fnType.id, Name: name})
	ids := make([]ValueID, len(params))
	for i, p := range params {
		ids[i] = c.addValue(valueDesc{Class: classParam, Type: p.id, Parent: fn})
	}
	c.valueDesc(fn).Params = ids
	m.functions = append(m.functions, fn)
	return c.valueRef(fn), nil
}

// Functions lists the functions of the module in declaration order.
func (m *Module) Functions() []ValueRef { return m.refs(func() []ValueID { return m.functions }) }

// Globals lists the global variables of the module.
func (m *Module) Globals() []ValueRef { return m.refs(func() []ValueID { return m.globals }) }

// Attached lists the free-standing values recorded with Attach.
func (m *Module) Attached() []ValueRef { return m.refs(func() []ValueID { return m.attached }) }

func (m *Module) refs(pick func() []ValueID) []ValueRef {
	m.c.mu.RLock()
	defer m.c.mu.RUnlock()
	ids := pick()
	out := make([]ValueRef, len(ids))
	for i, id := range ids {
		out[i] = m.c.valueRef(id)
	}
	return out
}

// Values walks the module: attached values, globals, then every function
// followed by its parameters, blocks and instructions.
func (m *Module) Values() []ValueRef {
	out := append(m.Attached(), m.Globals()...)
	for _, fn := range m.Functions() {
		out = append(out, fn)
		out = append(out, fn.Params()...)
		for _, bb := range fn.Blocks() {
			out = append(out, bb)
			out = append(out, bb.Instructions()...)
		}
	}
	return out
}

// AppendBlock adds a basic block to the end of fn.
func (c *Context) AppendBlock(fn ValueRef, name string) (ValueRef, error) {
	if !c.ownsValue(fn) || !fn.IsAFunction() {
		return ValueRef{}, fmt.Errorf("append block %q: %s is not a function", name, fn)
	}
	label := c.LabelType()
	c.mu.Lock()
	defer c.mu.Unlock()
	bb := c.addValue(valueDesc{Class: classBlock, Type: label.id, Name: name, Parent: fn.id})
	f := c.valueDesc(fn.id)
	f.Blocks = append(f.Blocks, bb)
	return c.valueRef(bb), nil
}

// AddInstruction appends an instruction producing a value of type t to the
// end of block bb. Instructions without a result use the void type.
func (c *Context) AddInstruction(bb ValueRef, op Opcode, t TypeRef, operands ...ValueRef) (ValueRef, error) {
	if !c.ownsValue(bb) || !bb.IsABasicBlock() {
		return ValueRef{}, fmt.Errorf("add %s: %s is not a basic block", op, bb)
	}
	if op == OpInvalid {
		return ValueRef{}, fmt.Errorf("add instruction: invalid opcode")
	}
	c.mustOwn(t)
	for i, o := range operands {
		if !c.ownsValue(o) {
			return ValueRef{}, fmt.Errorf("add %s: operand %d belongs to a different context", op, i)
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.addValue(valueDesc{Class: classInstruction, Type: t.id, Op: op, Operands: ids(operands), Parent: bb.id})
	b := c.valueDesc(bb.id)
	b.Instrs = append(b.Instrs, id)
	return c.valueRef(id), nil
}

// AddPhi appends an empty phi of type t to bb. Edges are added with
// ValueRef.AddIncoming.
func (c *Context) AddPhi(bb ValueRef, t TypeRef) (ValueRef, error) {
	return c.AddInstruction(bb, OpPHI, t)
}

func lenU32(n int) (uint32, error) {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return 0, fmt.Errorf("length %d overflows uint32: %w", n, err)
	}
	return v, nil
}
