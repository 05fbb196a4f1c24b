package native

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when the snapshot layout changes
const snapshotSchemaVersion uint16 = 1

// ErrSchemaMismatch is returned by Decode for snapshots written by a
// different schema version.
var ErrSchemaMismatch = errors.New("native: snapshot schema mismatch")

type moduleDesc struct {
	Name      string
	Attached  []ValueID
	Globals   []ValueID
	Functions []ValueID
}

// snapshot is the on-disk form of a Context. Slot 0 of both tables is the
// invalid sentinel and is stored as well so handles keep their indices.
type snapshot struct {
	Schema  uint16
	ID      string
	Types   []typeDesc
	Values  []valueDesc
	Modules []moduleDesc
}

// Encode writes a snapshot of c to w.
func Encode(w io.Writer, c *Context) error {
	if c == nil {
		return fmt.Errorf("encode snapshot: nil context")
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap := snapshot{
		Schema:  snapshotSchemaVersion,
		ID:      c.id.String(),
		Types:   c.types,
		Values:  c.values,
		Modules: make([]moduleDesc, len(c.modules)),
	}
	for i, m := range c.modules {
		snap.Modules[i] = moduleDesc{Name: m.name, Attached: m.attached, Globals: m.globals, Functions: m.functions}
	}
	if err := msgpack.NewEncoder(w).Encode(&snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// Decode reads a snapshot written by Encode and rebuilds the context.
func Decode(r io.Reader) (*Context, error) {
	var snap snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Schema != snapshotSchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchemaMismatch, snap.Schema, snapshotSchemaVersion)
	}
	id, err := uuid.Parse(snap.ID)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: context id: %w", err)
	}
	if len(snap.Types) == 0 || len(snap.Values) == 0 {
		return nil, fmt.Errorf("decode snapshot: missing sentinel entries")
	}
	c := &Context{
		id:     id,
		types:  snap.Types,
		values: snap.Values,
		index:  make(map[string]TypeID, len(snap.Types)),
	}
	for i := 1; i < len(c.types); i++ {
		n, err := lenU32(i)
		if err != nil {
			return nil, err
		}
		c.index[typeKey(c.types[i])] = TypeID(n)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	for _, md := range snap.Modules {
		if err := c.validateModule(md); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		c.modules = append(c.modules, &Module{
			c:         c,
			name:      md.Name,
			attached:  md.Attached,
			globals:   md.Globals,
			functions: md.Functions,
		})
	}
	return c, nil
}

// validate checks that every reference stored in the tables stays in range.
// Child types always precede their parents, so a type may only refer to
// lower ids; that also rules out cycles. Child value lists never hold the
// null id, while Parent may.
func (c *Context) validate() error {
	nt, nv := len(c.types), len(c.values)
	valueOK := func(id ValueID) bool { return id != NoValueID && int(id) < nv }
	for i := 1; i < nt; i++ {
		t := c.types[i]
		below := func(id TypeID) bool { return id != NoTypeID && int(id) < i }
		switch t.Kind {
		case ArrayTypeKind, VectorTypeKind:
			if !below(t.Elem) {
				return fmt.Errorf("type %d has an invalid element type", i)
			}
		case FunctionTypeKind:
			if !below(t.Ret) {
				return fmt.Errorf("type %d has an invalid return type", i)
			}
		default:
			if t.Elem != NoTypeID || t.Ret != NoTypeID {
				return fmt.Errorf("type %d (%s) carries child types", i, t.Kind)
			}
		}
		for _, f := range t.Fields {
			if !below(f) {
				return fmt.Errorf("type %d has an invalid field type", i)
			}
		}
		for _, p := range t.Params {
			if !below(p) {
				return fmt.Errorf("type %d has an invalid parameter type", i)
			}
		}
	}
	for i := 1; i < nv; i++ {
		v := c.values[i]
		if v.Type == NoTypeID || int(v.Type) >= nt {
			return fmt.Errorf("value %d has an invalid type", i)
		}
		if v.Parent != NoValueID && int(v.Parent) >= nv {
			return fmt.Errorf("value %d has an invalid parent", i)
		}
		for _, list := range [][]ValueID{v.Operands, v.Params, v.Blocks, v.Instrs} {
			for _, r := range list {
				if !valueOK(r) {
					return fmt.Errorf("value %d references a missing value", i)
				}
			}
		}
		for _, in := range v.Incoming {
			if !valueOK(in.Value) || !valueOK(in.Block) {
				return fmt.Errorf("value %d has an invalid incoming edge", i)
			}
		}
	}
	return nil
}

func (c *Context) validateModule(md moduleDesc) error {
	nv := len(c.values)
	for _, list := range [][]ValueID{md.Attached, md.Globals, md.Functions} {
		for _, id := range list {
			if id == NoValueID || int(id) >= nv {
				return fmt.Errorf("module %q references a missing value %d", md.Name, id)
			}
		}
	}
	return nil
}
