package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cascade/internal/diag"
	"cascade/internal/syntax"
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

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "[parse]\ndialect = \"auto\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != filepath.Join(root, FileName) {
		t.Errorf("Find = %q", got)
	}

	// файл как стартовая точка
	file := filepath.Join(nested, "x.css")
	writeFile(t, file, "a{}")
	if got, err := Find(file); err != nil || got != filepath.Join(root, FileName) {
		t.Errorf("Find(file) = %q, %v", got, err)
	}
}

func TestFindNotFound(t *testing.T) {
	// корень tmp может лежать под чужим .cascade.toml только в экзотических окружениях
	_, err := Find(t.TempDir())
	if err != nil && !errors.Is(err, ErrNotFound) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	writeFile(t, path, `
[parse]
dialect = "auto"
[parse.extensions]
pcss = "css"
".less3" = "less"

[diagnostics]
max = 5
[diagnostics.levels]
css-rcurlyexpected = "warning"
css-unknownatrule = "ignore"

[cache]
enabled = false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Diagnostics.Max != 5 || cfg.Cache.Enabled {
		t.Errorf("unexpected values: %+v", cfg)
	}
	if cfg.Dir() != dir {
		t.Errorf("Dir = %q", cfg.Dir())
	}
	levels, err := cfg.Levels()
	if err != nil {
		t.Fatal(err)
	}
	if levels.For(diag.RightCurlyExpected) != diag.LevelWarning {
		t.Errorf("rcurly level = %s", levels.For(diag.RightCurlyExpected))
	}
	if levels.For(diag.UnknownAtRule) != diag.LevelIgnore {
		t.Errorf("unknownatrule level = %s", levels.For(diag.UnknownAtRule))
	}
	if levels.For(diag.ColonExpected) != diag.LevelError {
		t.Errorf("default level = %s", levels.For(diag.ColonExpected))
	}

	tests := []struct {
		path string
		want syntax.Dialect
		ok   bool
	}{
		{"a.scss", syntax.DialectSCSS, true},
		{"a.PCSS", syntax.DialectCSS, true},
		{"a.less3", syntax.DialectLESS, true},
		{"a.txt", syntax.DialectCSS, false},
	}
	for _, tt := range tests {
		got, ok := cfg.DialectFor(tt.path)
		if got != tt.want || ok != tt.ok {
			t.Errorf("DialectFor(%q) = %s,%v; want %s,%v", tt.path, got, ok, tt.want, tt.ok)
		}
	}
	exts := cfg.Extensions()
	if len(exts) != 5 {
		t.Errorf("Extensions = %v", exts)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[parse\n"},
		{"unknown key", "[parse]\nflavour = \"x\"\n"},
		{"bad dialect", "[parse]\ndialect = \"sass2\"\n"},
		{"bad rule", "[diagnostics.levels]\ncss-nope = \"error\"\n"},
		{"bad level", "[diagnostics.levels]\ncss-rcurlyexpected = \"loud\"\n"},
		{"negative max", "[diagnostics]\nmax = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			writeFile(t, path, tt.content)
			if _, err := Load(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestFixedDialectWins(t *testing.T) {
	cfg := Default()
	cfg.Parse.Dialect = "less"
	if d, ok := cfg.DialectFor("x.css"); !ok || d != syntax.DialectLESS {
		t.Errorf("DialectFor = %s,%v", d, ok)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := Default()
	cfg.Diagnostics.Levels = map[string]string{"css-semicolonexpected": "warning"}
	if err := Save(path, cfg, false); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := Save(path, cfg, false); err == nil {
		t.Error("second Save without force should fail")
	}
	if err := Save(path, cfg, true); err != nil {
		t.Errorf("forced Save: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Parse.Dialect != "auto" || back.Diagnostics.Max != DefaultMaxDiagnostics || !back.Cache.Enabled {
		t.Errorf("round trip lost values: %+v", back)
	}
	if back.Diagnostics.Levels["css-semicolonexpected"] != "warning" {
		t.Errorf("levels = %v", back.Diagnostics.Levels)
	}
}

func TestOracleWithCustomData(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "data.json"), `{"version":1.1,"properties":[{"name":"my-prop"}]}`)
	cfg := Default()
	cfg.Path = filepath.Join(dir, FileName)
	cfg.Knowledge.CustomData = []string{"data.json"}
	o, err := cfg.Oracle()
	if err != nil {
		t.Fatalf("Oracle: %v", err)
	}
	if !o.IsKnownProperty("my-prop") || !o.IsKnownProperty("color") {
		t.Error("custom and builtin properties should both be known")
	}
	cfg.Knowledge.CustomData = []string{"missing.json"}
	if _, err := cfg.Oracle(); err == nil {
		t.Error("expected error for missing custom data")
	}
}
