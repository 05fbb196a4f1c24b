package native

import (
	"bytes"
	"errors"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestTypesAreInterned(t *testing.T) {
	c := NewContext()
	i32a := c.IntType(32)
	i32b := c.IntType(32)
	if i32a != i32b {
		t.Fatalf("i32 should be interned")
	}
	if c.IntType(64) == i32a {
		t.Fatalf("i64 and i32 must differ")
	}
	arr := c.ArrayType(i32a, 4)
	if arr != c.ArrayType(i32b, 4) {
		t.Fatalf("array types should be deduplicated")
	}
	if got := arr.String(); got != "[4 x i32]" {
		t.Fatalf("unexpected array rendering %q", got)
	}
	st := c.StructType([]TypeRef{i32a, c.PointerType(0)}, false)
	if st.String() != "{i32, ptr}" {
		t.Fatalf("unexpected struct rendering %q", st.String())
	}
	if c.StructType([]TypeRef{i32a, c.PointerType(0)}, true) == st {
		t.Fatalf("packed and unpacked structs must differ")
	}
}

func TestTypeKindsFollowConstructors(t *testing.T) {
	c := NewContext()
	i8 := c.IntType(8)
	cases := []struct {
		ty   TypeRef
		want TypeKind
	}{
		{c.IntType(1), IntegerTypeKind},
		{c.HalfType(), HalfTypeKind},
		{c.BFloatType(), BFloatTypeKind},
		{c.FloatType(), FloatTypeKind},
		{c.DoubleType(), DoubleTypeKind},
		{c.X86FP80Type(), X86FP80TypeKind},
		{c.FP128Type(), FP128TypeKind},
		{c.PPCFP128Type(), PPCFP128TypeKind},
		{c.VoidType(), VoidTypeKind},
		{c.LabelType(), LabelTypeKind},
		{c.TokenType(), TokenTypeKind},
		{c.MetadataType(), MetadataTypeKind},
		{c.PointerType(1), PointerTypeKind},
		{c.ArrayType(i8, 2), ArrayTypeKind},
		{c.VectorType(i8, 2), VectorTypeKind},
		{c.StructType(nil, false), StructTypeKind},
		{c.FunctionType(c.VoidType(), nil, false), FunctionTypeKind},
	}
	for _, tc := range cases {
		if got := tc.ty.TypeKind(); got != tc.want {
			t.Fatalf("%s: got kind %s, want %s", tc.ty, got, tc.want)
		}
	}
}

func TestRenameIsVisibleThroughEveryHandleCopy(t *testing.T) {
	c := NewContext()
	v, err := c.ConstInt(c.IntType(32), 7)
	if err != nil {
		t.Fatal(err)
	}
	alias := v
	v.SetName("seven")
	if alias.Name() != "seven" {
		t.Fatalf("rename not visible through copy, got %q", alias.Name())
	}

	md := c.MDString("note")
	md.SetName("ignored")
	if md.Name() != "" {
		t.Fatalf("metadata must stay unnamed, got %q", md.Name())
	}
}

func TestConstIntTruncatesToWidth(t *testing.T) {
	c := NewContext()
	v, err := c.ConstInt(c.IntType(8), 0x1ff)
	if err != nil {
		t.Fatal(err)
	}
	if v.ConstZExtValue() != 0xff {
		t.Fatalf("expected truncation to 0xff, got %#x", v.ConstZExtValue())
	}
	if _, err := c.ConstInt(c.FloatType(), 1); err == nil {
		t.Fatalf("expected error for non-integer type")
	}
}

func TestFunctionValuesCarryTheirSignature(t *testing.T) {
	c := NewContext()
	m := c.NewModule("m")
	i32 := c.IntType(32)
	fnTy := c.FunctionType(i32, []TypeRef{i32, c.PointerType(0)}, false)
	fn, err := m.AddFunction("f", fnTy)
	if err != nil {
		t.Fatal(err)
	}
	if fn.Type() != fnTy || !fn.IsAFunction() {
		t.Fatalf("function value should have its function type")
	}
	if fn.ParamCount() != 2 || fn.Param(1).Type().TypeKind() != PointerTypeKind {
		t.Fatalf("unexpected parameters")
	}
	if fn.Param(0).Parent() != fn {
		t.Fatalf("parameter parent mismatch")
	}
	if _, err := m.AddFunction("g", i32); err == nil {
		t.Fatalf("expected error for non-function type")
	}
}

func TestPhiIncomingChecksTypes(t *testing.T) {
	c := NewContext()
	m := c.NewModule("m")
	i32 := c.IntType(32)
	fn, _ := m.AddFunction("f", c.FunctionType(i32, []TypeRef{i32}, false))
	entry, _ := c.AppendBlock(fn, "entry")
	phi, err := c.AddPhi(entry, i32)
	if err != nil {
		t.Fatal(err)
	}
	if !phi.IsAPHINode() || !phi.IsAInstruction() {
		t.Fatalf("phi should be an instruction and a phi node")
	}
	if err := phi.AddIncoming(fn.Param(0), entry); err != nil {
		t.Fatal(err)
	}
	f, _ := c.ConstFloat(c.FloatType(), 1)
	if err := phi.AddIncoming(f, entry); err == nil {
		t.Fatalf("expected type mismatch error")
	}
	if phi.IncomingCount() != 1 {
		t.Fatalf("expected one incoming edge, got %d", phi.IncomingCount())
	}
	val, block := phi.Incoming(0)
	if val != fn.Param(0) || block != entry {
		t.Fatalf("incoming edge mismatch")
	}
}

func TestModuleValuesWalkOrder(t *testing.T) {
	c := NewContext()
	m := c.NewModule("m")
	i32 := c.IntType(32)
	k, _ := c.ConstInt(i32, 1)
	m.Attach(k)
	g, _ := m.AddGlobal("g", i32, k)
	fn, _ := m.AddFunction("f", c.FunctionType(c.VoidType(), []TypeRef{i32}, false))
	bb, _ := c.AppendBlock(fn, "entry")
	ret, _ := c.AddInstruction(bb, OpRet, c.VoidType())

	want := []ValueRef{k, g, fn, fn.Param(0), bb, ret}
	got := m.Values()
	if len(got) != len(want) {
		t.Fatalf("got %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("value %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := NewContext()
	m := c.NewModule("demo")
	i32 := c.IntType(32)
	k, _ := c.ConstInt(i32, 42)
	k.SetName("answer")
	m.Attach(k)
	fn, _ := m.AddFunction("main", c.FunctionType(i32, nil, false))
	bb, _ := c.AppendBlock(fn, "entry")
	if _, err := c.AddInstruction(bb, OpRet, c.VoidType(), k); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		t.Fatal(err)
	}
	back, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if back.ID() != c.ID() {
		t.Fatalf("context id not preserved")
	}
	mod, ok := back.Module("demo")
	if !ok {
		t.Fatalf("module not restored")
	}
	vals := mod.Values()
	if len(vals) != len(m.Values()) {
		t.Fatalf("got %d values, want %d", len(vals), len(m.Values()))
	}
	if vals[0].Name() != "answer" || vals[0].ConstZExtValue() != 42 {
		t.Fatalf("constant not restored: %s", vals[0])
	}
	if vals[1].Type().String() != "i32 ()" {
		t.Fatalf("function type not restored: %s", vals[1].Type())
	}
	if back.IntType(32).ID() != i32.ID() {
		t.Fatalf("type interning index not rebuilt")
	}
}

func TestSnapshotRejectsOtherSchemas(t *testing.T) {
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(&snapshot{Schema: snapshotSchemaVersion + 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(&buf); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}

func TestSnapshotRejectsDanglingReferences(t *testing.T) {
	id := NewContext().ID().String()
	i32 := typeDesc{Kind: IntegerTypeKind, Width: 32}
	constant := valueDesc{Class: classConstant, Type: 1}
	cases := []struct {
		name string
		snap snapshot
	}{
		{"module null id", snapshot{
			Types:   []typeDesc{{}, i32},
			Values:  []valueDesc{{}, constant},
			Modules: []moduleDesc{{Name: "m", Attached: []ValueID{0}}},
		}},
		{"module out of range", snapshot{
			Types:   []typeDesc{{}, i32},
			Values:  []valueDesc{{}, constant},
			Modules: []moduleDesc{{Name: "m", Functions: []ValueID{999}}},
		}},
		{"null operand", snapshot{
			Types:  []typeDesc{{}, i32},
			Values: []valueDesc{{}, {Class: classInstruction, Type: 1, Operands: []ValueID{0}}},
		}},
		{"self-referential array", snapshot{
			Types:  []typeDesc{{}, {Kind: ArrayTypeKind, Elem: 1, Count: 2}},
			Values: []valueDesc{{}},
		}},
		{"forward field", snapshot{
			Types:  []typeDesc{{}, {Kind: StructTypeKind, Fields: []TypeID{2}}, i32},
			Values: []valueDesc{{}},
		}},
		{"null incoming block", snapshot{
			Types:  []typeDesc{{}, i32},
			Values: []valueDesc{{}, {Class: classInstruction, Type: 1, Op: OpPHI, Incoming: []incoming{{Value: 1}}}},
		}},
	}
	for _, tc := range cases {
		tc.snap.Schema = snapshotSchemaVersion
		tc.snap.ID = id
		var buf bytes.Buffer
		if err := msgpack.NewEncoder(&buf).Encode(&tc.snap); err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if _, err := Decode(&buf); err == nil {
			t.Fatalf("%s: expected decode error", tc.name)
		}
	}
}

func TestSnapshotKeepsRootParent(t *testing.T) {
	c := NewContext()
	m := c.NewModule("m")
	fn, err := m.AddFunction("f", c.FunctionType(c.VoidType(), []TypeRef{c.ArrayType(c.IntType(8), 2)}, false))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.AppendBlock(fn, "entry"); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(&buf); err != nil {
		t.Fatalf("valid snapshot rejected: %v", err)
	}
}
