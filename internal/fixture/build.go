package fixture

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"irkit/internal/native"
)

// scope maps declared names to values. Function scopes chain to the module
// scope.
type scope struct {
	parent *scope
	names  map[string]native.ValueRef
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: make(map[string]native.ValueRef)}
}

func (s *scope) define(name string, v native.ValueRef) error {
	if name == "" {
		return nil
	}
	if _, dup := s.names[name]; dup {
		return fmt.Errorf("duplicate name %q", name)
	}
	s.names[name] = v
	return nil
}

func (s *scope) lookup(name string) (native.ValueRef, error) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.names[name]; ok {
			return v, nil
		}
	}
	return native.ValueRef{}, fmt.Errorf("undefined name %q", name)
}

func (s *scope) lookupAll(names []string) ([]native.ValueRef, error) {
	out := make([]native.ValueRef, len(names))
	for i, n := range names {
		v, err := s.lookup(normalize(n))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func normalize(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// Build materializes doc as a new module of c.
func Build(c *native.Context, doc *Document) (*native.Module, error) {
	b := &builder{c: c, m: c.NewModule(normalize(doc.Module.Name)), module: newScope(nil)}
	for i := range doc.Globals {
		if err := b.global(&doc.Globals[i]); err != nil {
			return nil, fmt.Errorf("global[%d] %q: %w", i, doc.Globals[i].Name, err)
		}
	}
	for i := range doc.Metadata {
		if err := b.metadata(&doc.Metadata[i]); err != nil {
			return nil, fmt.Errorf("metadata[%d] %q: %w", i, doc.Metadata[i].Name, err)
		}
	}
	// Declare every function before any body so calls may refer forward.
	fns := make([]native.ValueRef, len(doc.Functions))
	for i := range doc.Functions {
		fn, err := b.declare(&doc.Functions[i])
		if err != nil {
			return nil, fmt.Errorf("function[%d] %q: %w", i, doc.Functions[i].Name, err)
		}
		fns[i] = fn
	}
	for i := range doc.Functions {
		if err := b.body(fns[i], &doc.Functions[i]); err != nil {
			return nil, fmt.Errorf("function %q: %w", doc.Functions[i].Name, err)
		}
	}
	return b.m, nil
}

type builder struct {
	c      *native.Context
	m      *native.Module
	module *scope
}

func (b *builder) global(g *GlobalSpec) error {
	name := normalize(g.Name)
	t, err := ParseType(b.c, g.Type)
	if err != nil {
		return err
	}
	k, err := b.constant(t, g)
	if err != nil {
		return err
	}
	b.m.Attach(k)
	if !g.Variable {
		k.SetName(name)
		return b.module.define(name, k)
	}
	gv, err := b.m.AddGlobal(name, t, k)
	if err != nil {
		return err
	}
	return b.module.define(name, gv)
}

func (b *builder) constant(t native.TypeRef, g *GlobalSpec) (native.ValueRef, error) {
	lit := strings.TrimSpace(g.Value)
	switch lit {
	case "undef":
		return b.c.Undef(t), nil
	case "null", "zeroinitializer":
		return b.c.ConstNull(t), nil
	}
	if len(g.Elems) > 0 {
		if lit != "" {
			return native.ValueRef{}, fmt.Errorf("value and elems are mutually exclusive")
		}
		return b.aggregate(t, g.Elems)
	}
	switch kind := t.TypeKind(); {
	case kind == native.IntegerTypeKind:
		bits, err := parseInt(lit)
		if err != nil {
			return native.ValueRef{}, err
		}
		return b.c.ConstInt(t, bits)
	case kind.IsFloat():
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return native.ValueRef{}, fmt.Errorf("invalid float literal %q", lit)
		}
		return b.c.ConstFloat(t, f)
	case lit == "":
		return native.ValueRef{}, fmt.Errorf("missing value for %s", t)
	default:
		return native.ValueRef{}, fmt.Errorf("literal %q is not valid for %s", lit, t)
	}
}

func parseInt(lit string) (uint64, error) {
	if strings.HasPrefix(lit, "-") {
		v, err := strconv.ParseInt(lit, 0, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid integer literal %q", lit)
		}
		return uint64(v), nil
	}
	switch lit {
	case "true":
		return 1, nil
	case "false":
		return 0, nil
	}
	v, err := strconv.ParseUint(lit, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %q", lit)
	}
	return v, nil
}

func (b *builder) aggregate(t native.TypeRef, elems []string) (native.ValueRef, error) {
	vals, err := b.module.lookupAll(elems)
	if err != nil {
		return native.ValueRef{}, err
	}
	var v native.ValueRef
	switch t.TypeKind() {
	case native.ArrayTypeKind:
		v, err = b.c.ConstArray(t.ElementType(), vals)
	case native.VectorTypeKind:
		v, err = b.c.ConstVector(vals)
	case native.StructTypeKind:
		v, err = b.c.ConstStruct(vals, t.IsPacked())
	default:
		return native.ValueRef{}, fmt.Errorf("%s cannot be built from elements", t)
	}
	if err != nil {
		return native.ValueRef{}, err
	}
	if v.Type() != t {
		return native.ValueRef{}, fmt.Errorf("elements build %s, declared %s", v.Type(), t)
	}
	return v, nil
}

func (b *builder) metadata(md *MetadataSpec) error {
	var v native.ValueRef
	switch {
	case md.String != nil && len(md.Nodes) > 0:
		return fmt.Errorf("string and nodes are mutually exclusive")
	case md.String != nil:
		v = b.c.MDString(norm.NFC.String(*md.String))
	default:
		ops, err := b.module.lookupAll(md.Nodes)
		if err != nil {
			return err
		}
		if v, err = b.c.MDNode(ops); err != nil {
			return err
		}
	}
	b.m.Attach(v)
	return b.module.define(normalize(md.Name), v)
}

func (b *builder) declare(f *FunctionSpec) (native.ValueRef, error) {
	t, err := ParseType(b.c, f.Type)
	if err != nil {
		return native.ValueRef{}, err
	}
	name := normalize(f.Name)
	fn, err := b.m.AddFunction(name, t)
	if err != nil {
		return native.ValueRef{}, err
	}
	if len(f.Params) > fn.ParamCount() {
		return native.ValueRef{}, fmt.Errorf("%d parameter names for %d parameters", len(f.Params), fn.ParamCount())
	}
	for i, p := range f.Params {
		fn.Param(i).SetName(normalize(p))
	}
	return fn, b.module.define(name, fn)
}

type pendingPhi struct {
	phi  native.ValueRef
	spec *InstSpec
}

func (b *builder) body(fn native.ValueRef, f *FunctionSpec) error {
	local := newScope(b.module)
	for _, p := range fn.Params() {
		if err := local.define(p.Name(), p); err != nil {
			return err
		}
	}
	blocks := make([]native.ValueRef, len(f.Blocks))
	for i := range f.Blocks {
		name := normalize(f.Blocks[i].Name)
		bb, err := b.c.AppendBlock(fn, name)
		if err != nil {
			return err
		}
		if err := local.define(name, bb); err != nil {
			return err
		}
		blocks[i] = bb
	}
	var phis []pendingPhi
	for i := range f.Blocks {
		for j := range f.Blocks[i].Insts {
			spec := &f.Blocks[i].Insts[j]
			v, err := b.inst(local, blocks[i], spec)
			if err != nil {
				return fmt.Errorf("block %q inst[%d]: %w", f.Blocks[i].Name, j, err)
			}
			if v.IsAPHINode() {
				phis = append(phis, pendingPhi{phi: v, spec: spec})
			}
		}
	}
	for _, p := range phis {
		for k, in := range p.spec.Incoming {
			val, err := local.lookup(normalize(in.Value))
			if err != nil {
				return fmt.Errorf("phi %q incoming[%d]: %w", p.spec.Name, k, err)
			}
			bb, err := local.lookup(normalize(in.Block))
			if err != nil {
				return fmt.Errorf("phi %q incoming[%d]: %w", p.spec.Name, k, err)
			}
			if err := p.phi.AddIncoming(val, bb); err != nil {
				return fmt.Errorf("phi %q incoming[%d]: %w", p.spec.Name, k, err)
			}
		}
	}
	return nil
}

func (b *builder) inst(local *scope, bb native.ValueRef, spec *InstSpec) (native.ValueRef, error) {
	op, err := native.ParseOpcode(strings.ToLower(strings.TrimSpace(spec.Op)))
	if err != nil {
		return native.ValueRef{}, err
	}
	typ := spec.Type
	if typ == "" {
		typ = "void"
	}
	t, err := ParseType(b.c, typ)
	if err != nil {
		return native.ValueRef{}, err
	}
	var v native.ValueRef
	if op == native.OpPHI {
		if len(spec.Args) > 0 {
			return native.ValueRef{}, fmt.Errorf("phi takes incoming edges, not args")
		}
		v, err = b.c.AddPhi(bb, t)
	} else {
		if len(spec.Incoming) > 0 {
			return native.ValueRef{}, fmt.Errorf("incoming edges are only valid on phi")
		}
		args, lerr := local.lookupAll(spec.Args)
		if lerr != nil {
			return native.ValueRef{}, lerr
		}
		v, err = b.c.AddInstruction(bb, op, t, args...)
	}
	if err != nil {
		return native.ValueRef{}, err
	}
	name := normalize(spec.Name)
	v.SetName(name)
	return v, local.define(name, v)
}
