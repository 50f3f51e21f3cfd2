package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cascade/internal/config"
	"cascade/internal/diagfmt"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func project(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, config.Save(filepath.Join(dir, config.FileName), config.Default(), false))
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

func TestDiagShort(t *testing.T) {
	dir := project(t, map[string]string{
		"a.css":      "a { color: red",
		"b/c.scss":   "$x: 1px;\n.c { width: $x; }\n",
		"d.css":      "@unknown-thing { }\n",
		"notes.txt":  "ignored",
		"e.css":      ".x { color : ; }",
		"ok/ok.less": "@c: red;\n.a { color: @c; }\n",
	})
	out, _, err := execute(t, "", "diag", "--no-cache", "--ui", "off", "--format", "short", dir)
	require.ErrorIs(t, err, errFoundErrors)

	assert.Contains(t, out, "css-rcurlyexpected")
	assert.Contains(t, out, "css-propertyvalueexpected")
	assert.Contains(t, out, "css-unknownatrule")
	assert.Equal(t, 3, strings.Count(out, "\n"), out)
}

func TestDiagCleanProject(t *testing.T) {
	dir := project(t, map[string]string{"a.css": "a { color: red }\n"})
	out, stderr, err := execute(t, "", "diag", "--no-cache", "--ui", "off", dir)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "1 files: 0 errors, 0 warnings")
}

func TestDiagJSON(t *testing.T) {
	dir := project(t, map[string]string{"a.css": "a { color: red"})
	out, _, err := execute(t, "", "diag", "--no-cache", "--ui", "off", "--format", "json", filepath.Join(dir, "a.css"))
	require.ErrorIs(t, err, errFoundErrors)

	var got diagfmt.DiagnosticsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, 1, got.Count)
	assert.Equal(t, "css-rcurlyexpected", got.Diagnostics[0].Rule)
	assert.EqualValues(t, 15, got.Diagnostics[0].Location.StartCol)
}

func TestDiagIgnoredByConfig(t *testing.T) {
	dir := project(t, map[string]string{"a.css": "@unknown-thing { }\n"})
	cfg := config.Default()
	cfg.Diagnostics.Levels = map[string]string{"css-unknownatrule": "ignore"}
	require.NoError(t, config.Save(filepath.Join(dir, config.FileName), cfg, true))

	_, _, err := execute(t, "", "diag", "--no-cache", "--ui", "off", dir)
	require.NoError(t, err)
}

func TestDiagUsesCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := project(t, map[string]string{"a.css": "a { color: red", "b.css": "b {}"})

	for range 2 {
		out, stderr, err := execute(t, "", "--timings", "diag", "--ui", "off", "--format", "short", dir)
		require.ErrorIs(t, err, errFoundErrors)
		assert.Contains(t, out, "css-rcurlyexpected")
		assert.Contains(t, stderr, "timings:")
	}
	_, stderr, _ := execute(t, "", "--timings", "diag", "--ui", "off", dir)
	assert.Contains(t, stderr, "2 cached")

	out, _, err := execute(t, "", "cache", "clean", "--config", filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Contains(t, out, "removed")
}

func TestDiagRejectsConflictingFlags(t *testing.T) {
	_, _, err := execute(t, "", "diag", "--no-warnings", "--warnings-as-errors", ".")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errFoundErrors)
}

func TestParseStdin(t *testing.T) {
	out, stderr, err := execute(t, "a{b:c", "--dialect", "css", "parse", "--format", "nodes", "-")
	require.ErrorIs(t, err, errFoundErrors)
	assert.Contains(t, out, "Stylesheet")
	assert.Contains(t, stderr, "<stdin>:1:6")
}

func TestParseStdinGuessesDialect(t *testing.T) {
	out, _, err := execute(t, "$x: 1px;\n.a { width: $x; }\n", "parse", "--format", "nodes", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "VariableDeclaration")
}

func TestParseCSTRoundTrips(t *testing.T) {
	dir := project(t, map[string]string{"a.scss": "@mixin m($a) { b: $a; }\n.c { @include m(1px); }\n"})
	out, _, err := execute(t, "", "parse", "--format", "cst", "--trivia", filepath.Join(dir, "a.scss"))
	require.NoError(t, err)
	assert.Contains(t, out, "MixinDeclaration")
}

func TestTokenizeJSON(t *testing.T) {
	out, _, err := execute(t, "a { b: 1px }", "--dialect", "css", "tokenize", "--format", "json", "--trivia", "-")
	require.NoError(t, err)
	var toks []diagfmt.TokenOutput
	require.NoError(t, json.Unmarshal([]byte(out), &toks))
	var text strings.Builder
	for _, tok := range toks {
		text.WriteString(tok.Text)
	}
	assert.Equal(t, "a { b: 1px }", text.String())
}

func TestTokenizeReportsLexicalErrors(t *testing.T) {
	out, stderr, err := execute(t, "a { content: \"x }", "--dialect", "css", "tokenize", "-")
	require.ErrorIs(t, err, errFoundErrors)
	assert.NotEmpty(t, out)
	assert.Contains(t, stderr, "css-unterminatedstring")
}

func TestTokenizeUnsupportedExtension(t *testing.T) {
	dir := project(t, map[string]string{"a.styl": "a\n  color red\n"})
	_, _, err := execute(t, "", "tokenize", filepath.Join(dir, "a.styl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported stylesheet extension")
}

func TestFixAll(t *testing.T) {
	dir := project(t, map[string]string{
		"a.css": "a { color: red",
		"b.css": "b { margin: 0 }\n",
	})
	out, stderr, err := execute(t, "", "fix", "--all", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Applied 1 fix(es).")
	assert.Contains(t, stderr, "insert `}`")

	data, err := os.ReadFile(filepath.Join(dir, "a.css"))
	require.NoError(t, err)
	assert.Equal(t, "a { color: red }", string(data))

	out, _, err = execute(t, "", "fix", "--all", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No applicable fixes found.")
}

func TestFixDryRunKeepsFile(t *testing.T) {
	dir := project(t, map[string]string{"a.css": "a { color: red"})
	path := filepath.Join(dir, "a.css")
	out, _, err := execute(t, "", "fix", "--dry-run", path)
	require.NoError(t, err)
	assert.Equal(t, "a { color: red }", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a { color: red", string(data))
}

func TestFixList(t *testing.T) {
	dir := project(t, map[string]string{"a.css": "a { color: red"})
	out, _, err := execute(t, "", "fix", "--list", filepath.Join(dir, "a.css"))
	require.NoError(t, err)
	assert.Contains(t, out, "a.css:1:15: insert `}` [css-rcurlyexpected-14-0] (always-safe)")
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	out, _, err := execute(t, "", "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, config.FileName)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultMaxDiagnostics, cfg.Diagnostics.Max)

	_, _, err = execute(t, "", "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "", "--dialect", "scss", "init", "--force", dir)
	require.NoError(t, err)
	cfg, err = config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "scss", cfg.Parse.Dialect)
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "", "version", "--format", "json", "--full")
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "cascade", payload["tool"])
	assert.NotEmpty(t, payload["version"])
	assert.NotEmpty(t, payload["git_commit"])
}
