// Package config loads conform.toml project settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"conform/internal/dialect"
)

// FileName is the project configuration file searched for upwards from the
// checked path.
const FileName = "conform.toml"

// Output formats accepted by [check].format.
var Formats = []string{"pretty", "short", "json", "yaml"}

type Config struct {
	Check    CheckConfig              `toml:"check"`
	Dialects map[string]DialectConfig `toml:"dialects"`
}

type CheckConfig struct {
	Dialect string   `toml:"dialect"`
	Format  string   `toml:"format"`
	Jobs    int      `toml:"jobs"`
	Exclude []string `toml:"exclude"`
}

// DialectConfig derives a custom dialect from Base.
type DialectConfig struct {
	Base   string   `toml:"base"`
	Add    []string `toml:"add"`
	Remove []string `toml:"remove"`
}

// Manifest is a loaded configuration together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Default returns the settings used without a configuration file.
func Default() Config {
	return Config{
		Check: CheckConfig{
			Dialect: dialect.Default.String(),
			Format:  "pretty",
		},
	}
}

// Find walks up from startDir looking for conform.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
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

// Discover finds and loads the configuration governing startDir.
// ok is false when no file exists; the returned manifest then holds defaults.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return &Manifest{Config: Default()}, false, nil
	}
	m, err := LoadManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// LoadManifest loads path as a configuration file.
func LoadManifest(path string) (*Manifest, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

// Load decodes and validates a configuration file. Keys that are not part
// of the schema are rejected so typos do not silently change behavior.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("check", "format") && !validFormat(cfg.Check.Format) {
		return Config{}, fmt.Errorf("%s: [check].format must be one of %s, got %q",
			path, strings.Join(Formats, "|"), cfg.Check.Format)
	}
	if cfg.Check.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [check].jobs must be >= 0", path)
	}
	if meta.IsDefined("check", "dialect") && strings.TrimSpace(cfg.Check.Dialect) == "" {
		return Config{}, fmt.Errorf("%s: [check].dialect is empty", path)
	}
	for _, name := range cfg.DialectNames() {
		if !meta.IsDefined("dialects", name, "base") || strings.TrimSpace(cfg.Dialects[name].Base) == "" {
			return Config{}, fmt.Errorf("%s: missing [dialects.%s].base", path, name)
		}
	}
	return cfg, nil
}

func validFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// DialectNames returns custom dialect names in sorted order.
func (c Config) DialectNames() []string {
	names := make([]string, 0, len(c.Dialects))
	for name := range c.Dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Excluded reports whether rel (slash or OS separated, relative to the
// checked root) has a path segment matching one of the exclude patterns.
func (c CheckConfig) Excluded(rel string) bool {
	if len(c.Exclude) == 0 {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		for _, pattern := range c.Exclude {
			if ok, err := filepath.Match(pattern, part); err == nil && ok {
				return true
			}
		}
	}
	return false
}
