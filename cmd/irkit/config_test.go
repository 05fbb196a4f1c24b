package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, configFileName), "[inspect]\njobs = 2\nformat = \"json\"\nfixtures = [\"fx/*.toml\", \"fx/a.toml\"]\n")
	writeFile(t, filepath.Join(root, "fx", "a.toml"), "")
	writeFile(t, filepath.Join(root, "fx", "b.toml"), "")
	nested := filepath.Join(root, "deep", "er")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, ok, err := loadConfig(nested)
	if err != nil || !ok {
		t.Fatalf("got ok=%v err=%v", ok, err)
	}
	if cfg.Inspect.Jobs != 2 || cfg.Inspect.Format != "json" {
		t.Fatalf("unexpected config %+v", cfg.Inspect)
	}
	files, err := cfg.fixtures()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "a.toml" || filepath.Base(files[1]) != "b.toml" {
		t.Fatalf("unexpected fixtures %v", files)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	for _, body := range []string{
		"[inspect]\nformat = \"xml\"\n",
		"[inspect]\njobs = -1\n",
		"[inspect]\njbos = 1\n",
	} {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, configFileName), body)
		if _, _, err := loadConfig(dir); err == nil || !strings.Contains(err.Error(), configFileName) {
			t.Fatalf("%q: expected error naming the file, got %v", body, err)
		}
	}
}

func TestFixturePatternMustMatch(t *testing.T) {
	dir := t.TempDir()
	cfg := projectConfig{Path: filepath.Join(dir, configFileName), Inspect: inspectConfig{Fixtures: []string{"none/*.toml"}}}
	if _, err := cfg.fixtures(); err == nil {
		t.Fatalf("expected error for empty match")
	}
}

func TestBrokenConfigIgnoredWithExplicitFixtures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, configFileName), "[inspect\n")
	if _, _, err := configForInspect(dir, nil); err == nil {
		t.Fatalf("expected config error without explicit fixtures")
	}
	cfg, ok, err := configForInspect(dir, []string{"a.toml"})
	if err != nil || ok || cfg.Path != "" {
		t.Fatalf("got cfg=%+v ok=%v err=%v", cfg, ok, err)
	}
}
