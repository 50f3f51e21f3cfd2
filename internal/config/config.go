// Package config loads the per-project .cascade.toml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"cascade/internal/diag"
	"cascade/internal/knowledge"
	"cascade/internal/syntax"
)

// FileName is the configuration file searched for upward from the target.
const FileName = ".cascade.toml"

// DefaultMaxDiagnostics caps markers per file unless configured.
const DefaultMaxDiagnostics = 200

// ErrNotFound: no .cascade.toml between the start directory and the root.
var ErrNotFound = errors.New("no " + FileName + " found")

type Config struct {
	Parse       ParseConfig       `toml:"parse"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Knowledge   KnowledgeConfig   `toml:"knowledge"`
	Cache       CacheConfig       `toml:"cache"`

	// Path is where the config was read from; empty for Default().
	Path string `toml:"-"`
}

type ParseConfig struct {
	// Dialect is auto, css, scss or less. auto picks by extension.
	Dialect string `toml:"dialect"`
	// Extensions maps ".pcss" style extensions onto dialects.
	Extensions map[string]string `toml:"extensions,omitempty"`
}

type DiagnosticsConfig struct {
	Max int `toml:"max"`
	// Levels maps rule ids (css-rcurlyexpected) onto ignore|warning|error.
	Levels map[string]string `toml:"levels,omitempty"`
}

type KnowledgeConfig struct {
	// CustomData lists VS Code customData JSON files, relative to the config.
	CustomData []string `toml:"custom_data,omitempty"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir,omitempty"`
}

// Default is the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Parse:       ParseConfig{Dialect: "auto"},
		Diagnostics: DiagnosticsConfig{Max: DefaultMaxDiagnostics},
		Cache:       CacheConfig{Enabled: true},
	}
}

// Find walks up from startDir to locate .cascade.toml.
func Find(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Discover finds and loads the config for startDir, falling back to
// Default when there is none.
func Discover(startDir string) (*Config, error) {
	path, err := Find(startDir)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Load reads path on top of Default and validates it.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("parse", "dialect") {
		if d := strings.TrimSpace(cfg.Parse.Dialect); d == "" {
			return nil, fmt.Errorf("%s: empty [parse].dialect", path)
		}
	}
	if meta.IsDefined("diagnostics", "max") && cfg.Diagnostics.Max < 0 {
		return nil, fmt.Errorf("%s: [diagnostics].max must be >= 0", path)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks dialect names, extension overrides and level overrides.
func (c *Config) Validate() error {
	if !strings.EqualFold(strings.TrimSpace(c.Parse.Dialect), "auto") {
		if _, err := syntax.ParseDialect(c.Parse.Dialect); err != nil {
			return fmt.Errorf("[parse].dialect: %w", err)
		}
	}
	for ext, d := range c.Parse.Extensions {
		if _, err := syntax.ParseDialect(d); err != nil {
			return fmt.Errorf("[parse.extensions].%s: %w", ext, err)
		}
	}
	_, err := c.Levels()
	return err
}

// Dir is the directory holding the config file, or "" for Default().
func (c *Config) Dir() string {
	if c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

// Levels resolves [diagnostics.levels] into per-kind overrides.
func (c *Config) Levels() (diag.Levels, error) {
	if len(c.Diagnostics.Levels) == 0 {
		return nil, nil
	}
	out := make(diag.Levels, len(c.Diagnostics.Levels))
	for id, lv := range c.Diagnostics.Levels {
		kind, ok := diag.LookupRule(id)
		if !ok {
			return nil, fmt.Errorf("[diagnostics.levels]: unknown rule %q", id)
		}
		level, err := diag.ParseLevel(lv)
		if err != nil {
			return nil, fmt.Errorf("[diagnostics.levels].%s: %w", id, err)
		}
		out[kind] = level
	}
	return out, nil
}

// DialectFor picks the dialect of path: a fixed [parse].dialect wins, then
// [parse.extensions], then the built-in extension table.
func (c *Config) DialectFor(path string) (syntax.Dialect, bool) {
	if d := strings.TrimSpace(c.Parse.Dialect); d != "" && !strings.EqualFold(d, "auto") {
		if dialect, err := syntax.ParseDialect(d); err == nil {
			return dialect, true
		}
	}
	ext := strings.ToLower(filepath.Ext(path))
	for k, v := range c.Parse.Extensions {
		if strings.ToLower("."+strings.TrimPrefix(k, ".")) == ext {
			if dialect, err := syntax.ParseDialect(v); err == nil {
				return dialect, true
			}
		}
	}
	return syntax.DialectForPath(path)
}

// Extensions lists every extension DialectFor accepts, sorted.
func (c *Config) Extensions() []string {
	set := map[string]bool{".css": true, ".scss": true, ".less": true}
	for k := range c.Parse.Extensions {
		set[strings.ToLower("."+strings.TrimPrefix(k, "."))] = true
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Oracle merges the builtin tables with the configured custom data files.
func (c *Config) Oracle() (knowledge.Oracle, error) {
	if len(c.Knowledge.CustomData) == 0 {
		return knowledge.Default(), nil
	}
	providers := []knowledge.Provider{knowledge.Builtin()}
	for _, p := range c.Knowledge.CustomData {
		if !filepath.IsAbs(p) && c.Dir() != "" {
			p = filepath.Join(c.Dir(), p)
		}
		cd, err := knowledge.LoadCustomData(p)
		if err != nil {
			return nil, fmt.Errorf("[knowledge].custom_data: %w", err)
		}
		providers = append(providers, cd)
	}
	return knowledge.NewRegistry(providers...), nil
}

// Save writes c as TOML. An existing file is not overwritten unless force.
func Save(path string, c *Config, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	// #nosec G304 -- path is provided by the caller
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	enc := toml.NewEncoder(f)
	enc.Indent = ""
	if err := enc.Encode(c); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
