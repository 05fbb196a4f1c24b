// Package native is the in-process handle source that the typed value layer
// sits on. A Context owns every type and value it creates; callers only ever
// see opaque TypeRef and ValueRef handles that index into those tables.
package native

import (
	"fmt"
	"sync"

	"fortio.org/safecast"
	"github.com/google/uuid"
)

// TypeID indexes the type table of a Context.
type TypeID uint32

// ValueID indexes the value table of a Context.
type ValueID uint32

// NoTypeID and NoValueID mark the absence of an object.
const (
	NoTypeID  TypeID  = 0
	NoValueID ValueID = 0
)

type valueClass uint8

const (
	classInvalid valueClass = iota
	classConstant
	classUndef
	classNull
	classGlobal
	classFunction
	classParam
	classBlock
	classInstruction
	classMetadata
)

type typeDesc struct {
	Kind      TypeKind
	Width     uint32
	Elem      TypeID
	Count     uint32
	Fields    []TypeID
	Ret       TypeID
	Params    []TypeID
	Variadic  bool
	Packed    bool
	AddrSpace uint32
}

type incoming struct {
	Value ValueID
	Block ValueID
}

type valueDesc struct {
	Class    valueClass
	Type     TypeID
	Name     string
	Op       Opcode
	Operands []ValueID
	Bits     uint64
	Real     float64
	Str      string
	Parent   ValueID
	Params   []ValueID
	Blocks   []ValueID
	Instrs   []ValueID
	Incoming []incoming
}

// Context owns the type and value tables. All methods are safe for
// concurrent use; renames are serialized against lookups.
type Context struct {
	mu      sync.RWMutex
	id      uuid.UUID
	types   []typeDesc
	index   map[string]TypeID
	values  []valueDesc
	modules []*Module
}

// NewContext constructs an empty context with a fresh identity.
func NewContext() *Context {
	c := &Context{
		id:    uuid.New(),
		index: make(map[string]TypeID, 32),
	}
	c.types = append(c.types, typeDesc{})   // reserve 0 as invalid sentinel
	c.values = append(c.values, valueDesc{}) // reserve 0 as invalid sentinel
	return c
}

// ID returns the identity of the context. Snapshots preserve it.
func (c *Context) ID() uuid.UUID {
	return c.id
}

// Modules lists the modules created in this context, in creation order.
func (c *Context) Modules() []*Module {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Module, len(c.modules))
	copy(out, c.modules)
	return out
}

// Module returns the module with the given name.
func (c *Context) Module(name string) (*Module, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.modules {
		if m.name == name {
			return m, true
		}
	}
	return nil, false
}

// addType must be called with c.mu held for writing.
func (c *Context) addType(t typeDesc) TypeID {
	key := typeKey(t)
	if id, ok := c.index[key]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(c.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(n)
	c.types = append(c.types, t)
	c.index[key] = id
	return id
}

// addValue must be called with c.mu held for writing.
func (c *Context) addValue(v valueDesc) ValueID {
	n, err := safecast.Conv[uint32](len(c.values))
	if err != nil {
		panic(fmt.Errorf("len(values) overflow: %w", err))
	}
	c.values = append(c.values, v)
	return ValueID(n)
}

func (c *Context) typeDesc(id TypeID) *typeDesc {
	if id == NoTypeID || int(id) >= len(c.types) {
		panic(fmt.Sprintf("native: invalid type handle %d", id))
	}
	return &c.types[id]
}

func (c *Context) valueDesc(id ValueID) *valueDesc {
	if id == NoValueID || int(id) >= len(c.values) {
		panic(fmt.Sprintf("native: invalid value handle %d", id))
	}
	return &c.values[id]
}

func (c *Context) typeRef(id TypeID) TypeRef {
	if id == NoTypeID {
		return TypeRef{}
	}
	return TypeRef{c: c, id: id}
}

func (c *Context) valueRef(id ValueID) ValueRef {
	if id == NoValueID {
		return ValueRef{}
	}
	return ValueRef{c: c, id: id}
}

func (c *Context) owns(t TypeRef) bool {
	return t.c == c && t.id != NoTypeID
}

func (c *Context) ownsValue(v ValueRef) bool {
	return v.c == c && v.id != NoValueID
}

func typeKey(t typeDesc) string {
	return fmt.Sprintf("%d/%d/%d/%d/%v/%d/%v/%t/%t/%d",
		t.Kind, t.Width, t.Elem, t.Count, t.Fields, t.Ret, t.Params, t.Variadic, t.Packed, t.AddrSpace)
}
