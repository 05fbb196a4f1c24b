// Package fixture loads declarative module descriptions into a native
// context. A fixture is a TOML or YAML document:
//
//	[module]
//	name = "demo"
//
//	[[global]]
//	name  = "answer"
//	type  = "i32"
//	value = "42"
//
//	[[metadata]]
//	name   = "note"
//	string = "hello"
//
//	[[function]]
//	name   = "main"
//	type   = "i32 (i32)"
//	params = ["x"]
//
//	[[function.block]]
//	name = "entry"
//
//	[[function.block.inst]]
//	name = "sum"
//	op   = "add"
//	type = "i32"
//	args = ["x", "answer"]
//
// Snapshots written by "irkit snapshot" (.irk) load through the same entry
// point.
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"irkit/internal/native"
)

// Format selects the document syntax.
type Format uint8

const (
	FormatTOML Format = iota + 1
	FormatYAML
	FormatSnapshot
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatSnapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// ErrUnknownFormat is returned for paths whose extension names no format.
var ErrUnknownFormat = errors.New("unknown fixture format")

// FormatOf picks a format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".irk":
		return FormatSnapshot, nil
	default:
		return 0, fmt.Errorf("%s: %w (want .toml, .yaml, .yml or .irk)", path, ErrUnknownFormat)
	}
}

// Document is the decoded form of a fixture file.
type Document struct {
	Module    ModuleSpec     `toml:"module" yaml:"module"`
	Globals   []GlobalSpec   `toml:"global" yaml:"global"`
	Metadata  []MetadataSpec `toml:"metadata" yaml:"metadata"`
	Functions []FunctionSpec `toml:"function" yaml:"function"`
}

type ModuleSpec struct {
	Name string `toml:"name" yaml:"name"`
}

// GlobalSpec declares a module-level constant. Value is a literal ("42",
// "-1", "0.5", "null", "undef", "zeroinitializer"); aggregates list their
// elements by name instead. Variable wraps the constant in a pointer-typed
// global variable that takes over the name.
type GlobalSpec struct {
	Name     string   `toml:"name" yaml:"name"`
	Type     string   `toml:"type" yaml:"type"`
	Value    string   `toml:"value" yaml:"value"`
	Elems    []string `toml:"elems" yaml:"elems"`
	Variable bool     `toml:"variable" yaml:"variable"`
}

// MetadataSpec declares either a metadata string or a tuple over other
// named metadata and constants. Name only serves references; metadata
// values stay unnamed.
type MetadataSpec struct {
	Name   string   `toml:"name" yaml:"name"`
	String *string  `toml:"string" yaml:"string"`
	Nodes  []string `toml:"nodes" yaml:"nodes"`
}

type FunctionSpec struct {
	Name   string      `toml:"name" yaml:"name"`
	Type   string      `toml:"type" yaml:"type"`
	Params []string    `toml:"params" yaml:"params"`
	Blocks []BlockSpec `toml:"block" yaml:"block"`
}

type BlockSpec struct {
	Name  string     `toml:"name" yaml:"name"`
	Insts []InstSpec `toml:"inst" yaml:"inst"`
}

// InstSpec declares one instruction. Type defaults to void. Phi nodes list
// their edges in Incoming; those may refer to values defined later in the
// function.
type InstSpec struct {
	Name     string         `toml:"name" yaml:"name"`
	Op       string         `toml:"op" yaml:"op"`
	Type     string         `toml:"type" yaml:"type"`
	Args     []string       `toml:"args" yaml:"args"`
	Incoming []IncomingSpec `toml:"incoming" yaml:"incoming"`
}

type IncomingSpec struct {
	Value string `toml:"value" yaml:"value"`
	Block string `toml:"block" yaml:"block"`
}

// Load reads the file at path and materializes it into a fresh context.
// Each call owns its context, so loads may run concurrently.
func Load(path string) (*native.Context, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if format == FormatSnapshot {
		return loadSnapshot(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Module.Name == "" {
		doc.Module.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	c := native.NewContext()
	if _, err := Build(c, doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func loadSnapshot(path string) (*native.Context, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()
	c, err := native.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a TOML or YAML document. Unknown keys are rejected so typos
// surface instead of silently dropping entries.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatTOML:
		meta, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return &doc, nil
}
