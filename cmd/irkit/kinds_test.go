package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestKindsTable(t *testing.T) {
	var buf bytes.Buffer
	if err := renderKindsTable(&buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 11 {
		t.Fatalf("expected header + 10 kinds, got %d lines:\n%s", len(lines), buf.String())
	}
	header := lines[0]
	col := strings.Index(header, "AggregateValueEnum")
	want := map[string]byte{
		"ArrayValue":    'x',
		"IntValue":      '-',
		"StructValue":   'x',
		"MetadataValue": '-',
	}
	for _, line := range lines[1:] {
		name := strings.Fields(line)[0]
		mark, ok := want[name]
		if !ok {
			continue
		}
		if len(line) <= col || line[col] != mark {
			t.Fatalf("%s: aggregate column shows %q, want %q\n%s\n%s", name, line[col:col+1], mark, header, line)
		}
	}
}

func TestKindsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := renderKindsJSON(&buf); err != nil {
		t.Fatal(err)
	}
	var got []kindsPayload
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	sizes := map[string]int{}
	for _, p := range got {
		sizes[p.Set] = len(p.Members)
	}
	if sizes["AnyValueEnum"] != 9 || sizes["BasicValueEnum"] != 6 || sizes["AggregateValueEnum"] != 2 || sizes["BasicMetadataValueEnum"] != 7 {
		t.Fatalf("unexpected membership sizes %v", sizes)
	}
}
