package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const configFileName = "irkit.toml"

type projectConfig struct {
	Path    string        `toml:"-"`
	Inspect inspectConfig `toml:"inspect"`
}

type inspectConfig struct {
	Jobs     int      `toml:"jobs"`
	Format   string   `toml:"format"`
	Fixtures []string `toml:"fixtures"`
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig finds and parses irkit.toml above startDir. A missing file
// yields a zero config and ok == false.
func loadConfig(startDir string) (projectConfig, bool, error) {
	path, ok, err := findConfig(startDir)
	if err != nil || !ok {
		return projectConfig{}, ok, err
	}
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, true, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return projectConfig{}, true, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.Inspect.Jobs < 0 {
		return projectConfig{}, true, fmt.Errorf("%s: [inspect].jobs must not be negative", path)
	}
	switch strings.ToLower(cfg.Inspect.Format) {
	case "", "pretty", "json":
	default:
		return projectConfig{}, true, fmt.Errorf("%s: [inspect].format must be pretty or json", path)
	}
	cfg.Path = path
	return cfg, true, nil
}

// fixtures expands the configured fixture patterns relative to the config
// file, in pattern order, without duplicates.
func (c projectConfig) fixtures() ([]string, error) {
	root := filepath.Dir(c.Path)
	seen := make(map[string]struct{})
	var out []string
	for _, pattern := range c.Inspect.Fixtures {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(root, filepath.FromSlash(pattern))
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: bad fixture pattern %q: %w", c.Path, pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%s: fixture pattern %q matches nothing", c.Path, pattern)
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out, nil
}

// configForInspect loads irkit.toml for the inspect command. Fixtures named on
// the command line make the config optional: a broken file is then ignored
// instead of failing the run.
func configForInspect(startDir string, args []string) (projectConfig, bool, error) {
	cfg, ok, err := loadConfig(startDir)
	if err != nil && len(args) > 0 {
		return projectConfig{}, false, nil
	}
	return cfg, ok, err
}
