package fixture

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"irkit/internal/native"
)

func TestParseTypeRoundTripsNotation(t *testing.T) {
	c := native.NewContext()
	for _, src := range []string{
		"i1",
		"i128",
		"half",
		"ppc_fp128",
		"ptr",
		"ptr addrspace(3)",
		"[4 x i8]",
		"<2 x double>",
		"{i32, ptr}",
		"<{i8, i8}>",
		"{}",
		"[2 x {i32, [3 x float]}]",
		"void (i32)",
		"i32 (ptr, ...)",
		"void ()",
		"label",
		"metadata",
	} {
		ty, err := ParseType(c, src)
		if err != nil {
			t.Fatalf("%s: %v", src, err)
		}
		if got := ty.String(); got != src {
			t.Fatalf("%s: rendered back as %q", src, got)
		}
	}
}

func TestParseTypeErrors(t *testing.T) {
	c := native.NewContext()
	for _, src := range []string{
		"",
		"i0",
		"i99999999",
		"[4 i8]",
		"<2 x double",
		"{i32, ptr",
		"quad",
		"i32 i32",
		"[99999999999 x i8]",
	} {
		if _, err := ParseType(c, src); err == nil {
			t.Fatalf("%q: expected error", src)
		}
	}
}

func TestLoadTOMLFixture(t *testing.T) {
	c, err := Load(filepath.Join("testdata", "demo.toml"))
	if err != nil {
		t.Fatal(err)
	}
	m, ok := c.Module("demo")
	if !ok {
		t.Fatalf("module demo missing")
	}
	if len(m.Globals()) != 1 || m.Globals()[0].Name() != "table" {
		t.Fatalf("expected one global variable named table")
	}
	if m.Globals()[0].Type().TypeKind() != native.PointerTypeKind {
		t.Fatalf("global variables must be pointer-typed")
	}

	byName := map[string]native.ValueRef{}
	for _, v := range m.Values() {
		if v.Name() != "" {
			byName[v.Name()] = v
		}
	}
	if byName["answer"].ConstZExtValue() != 42 {
		t.Fatalf("answer not loaded")
	}
	if got := byName["pair"].Type().String(); got != "{i32, double}" {
		t.Fatalf("pair has type %s", got)
	}
	if byName["nothing"].Type().TypeKind() != native.VoidTypeKind || !byName["nothing"].IsUndef() {
		t.Fatalf("void undef not loaded")
	}
	phi := byName["merged"]
	if !phi.IsAPHINode() || phi.IncomingCount() != 1 {
		t.Fatalf("phi not wired")
	}
	if in, bb := phi.Incoming(0); in != byName["sum"] || bb != byName["entry"] {
		t.Fatalf("phi edge mismatch")
	}
	if byName["x"].Parent() != byName["main"] {
		t.Fatalf("parameter name not applied")
	}

	var md []native.ValueRef
	for _, v := range m.Attached() {
		if v.Type().TypeKind() == native.MetadataTypeKind {
			md = append(md, v)
		}
	}
	if len(md) != 2 || md[0].MDString() != "caf\u00e9" || len(md[1].Operands()) != 2 {
		t.Fatalf("metadata not loaded: %v", md)
	}
}

func TestLoadYAMLFixture(t *testing.T) {
	c, err := Load(filepath.Join("testdata", "demo.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	m, ok := c.Module("demo-yaml")
	if !ok {
		t.Fatalf("module demo-yaml missing")
	}
	fns := m.Functions()
	if len(fns) != 1 || !fns[0].Type().IsVariadic() {
		t.Fatalf("variadic helper not loaded")
	}
	vals := m.Attached()
	if len(vals) != 2 || !vals[0].IsNull() || vals[1].ConstZExtValue() != 1 {
		t.Fatalf("constants not loaded")
	}
}

func TestLoadSnapshot(t *testing.T) {
	c, err := Load(filepath.Join("testdata", "demo.toml"))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "demo.irk")
	var buf bytes.Buffer
	if err := native.Encode(&buf, c); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.ID() != c.ID() {
		t.Fatalf("snapshot lost context identity")
	}
}

func TestNamesAreNFCNormalized(t *testing.T) {
	doc := &Document{
		Module:  ModuleSpec{Name: "n"},
		Globals: []GlobalSpec{{Name: "cafe\u0301", Type: "i8", Value: "1"}},
	}
	c := native.NewContext()
	m, err := Build(c, doc)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Attached()[0].Name(); got != "caf\u00e9" {
		t.Fatalf("name not normalized: %q", got)
	}
}

func TestBuildErrorsNameTheEntry(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"undefined", "[[global]]\nname = \"a\"\ntype = \"[1 x i8]\"\nelems = [\"b\"]\n", "undefined name \"b\""},
		{"duplicate", "[[global]]\nname = \"a\"\ntype = \"i8\"\nvalue = \"1\"\n[[global]]\nname = \"a\"\ntype = \"i8\"\nvalue = \"2\"\n", "duplicate name"},
		{"badop", "[[function]]\nname = \"f\"\ntype = \"void ()\"\n[[function.block]]\nname = \"b\"\n[[function.block.inst]]\nop = \"jump\"\n", "unknown opcode"},
		{"notfn", "[[function]]\nname = \"f\"\ntype = \"i32\"\n", "not a function type"},
		{"literal", "[[global]]\nname = \"p\"\ntype = \"ptr\"\nvalue = \"7\"\n", "not valid for ptr"},
		{"phi", "[[function]]\nname = \"f\"\ntype = \"void (i32)\"\nparams = [\"x\"]\n[[function.block]]\nname = \"b\"\n[[function.block.inst]]\nop = \"phi\"\ntype = \"float\"\nincoming = [{ value = \"x\", block = \"b\" }]\n", "phi"},
	}
	for _, tc := range cases {
		doc, err := Parse([]byte(tc.src), FormatTOML)
		if err != nil {
			t.Fatalf("%s: parse: %v", tc.name, err)
		}
		_, err = Build(native.NewContext(), doc)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: got %v, want error containing %q", tc.name, err, tc.want)
		}
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("[module]\nnmae = \"x\"\n"), FormatTOML); err == nil {
		t.Fatalf("expected TOML unknown key error")
	}
	if _, err := Parse([]byte("module:\n  nmae: x\n"), FormatYAML); err == nil {
		t.Fatalf("expected YAML unknown key error")
	}
}

func TestFormatOf(t *testing.T) {
	if f, err := FormatOf("a/b.YML"); err != nil || f != FormatYAML {
		t.Fatalf("got %v, %v", f, err)
	}
	if _, err := FormatOf("a.json"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}
