package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cascade/internal/config"
	"cascade/internal/diag"
	"cascade/internal/driver"
	"cascade/internal/observ"
	"cascade/internal/source"
	"cascade/internal/syntax"
)

func TestParseReportsAndRoundTrips(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		dialect syntax.Dialect
		want    []diag.ErrorKind
	}{
		{"missing brace", "a { color: red", syntax.DialectCSS, []diag.ErrorKind{diag.RightCurlyExpected}},
		{"missing value", ".x { color : ; }", syntax.DialectCSS, []diag.ErrorKind{diag.PropertyValueExpected}},
		{"unknown at-rule", "@unknown-thing { }", syntax.DialectCSS, []diag.ErrorKind{diag.UnknownAtRule}},
		{"clean scss", "$a: 1;\n.b { c: $a; &:hover { d: e } }\n", syntax.DialectSCSS, nil},
		{"empty", "", syntax.DialectLESS, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := driver.Parse(context.Background(), tc.src, tc.dialect, driver.Options{})
			require.Equal(t, tc.src, res.Text())
			var got []diag.ErrorKind
			for _, m := range res.Markers() {
				got = append(got, m.Kind)
			}
			assert.Equal(t, tc.want, got)
			assert.Equal(t, len(tc.want) > 0, res.HasErrors())
		})
	}
}

func TestParseIgnoredLevelHidesMarker(t *testing.T) {
	levels := diag.Levels{diag.RightCurlyExpected: diag.LevelIgnore}
	res := driver.Parse(context.Background(), "a { color: red", syntax.DialectCSS, driver.Options{Levels: levels})
	assert.Empty(t, res.Markers())
	// в дереве маркер остаётся, просто не выводится
	require.Len(t, res.Tree.CollectIssues(), 1)
}

func TestParseWarningLevel(t *testing.T) {
	levels := diag.Levels{diag.UnknownAtRule: diag.LevelWarning}
	res := driver.Parse(context.Background(), "@nope;", syntax.DialectCSS, driver.Options{Levels: levels})
	require.Len(t, res.Markers(), 1)
	assert.False(t, res.HasErrors())
	assert.True(t, res.Bag.HasWarnings())
}

func TestParseMaxDiagnostics(t *testing.T) {
	src := "a{b:;}\nc{d:;}\ne{f:;}\n"
	res := driver.Parse(context.Background(), src, syntax.DialectCSS, driver.Options{MaxDiagnostics: 2})
	assert.Len(t, res.Markers(), 2)
	assert.Equal(t, src, res.Text())

	res = driver.Parse(context.Background(), src, syntax.DialectCSS, driver.Options{})
	assert.Len(t, res.Markers(), 3)
}

func TestParsePhases(t *testing.T) {
	timer := observ.NewTimer()
	var mu sync.Mutex
	var seen []string
	opts := driver.Options{
		Timer: timer,
		OnPhase: func(ev driver.PhaseEvent) {
			mu.Lock()
			defer mu.Unlock()
			if ev.Status == driver.PhaseEnd {
				seen = append(seen, ev.Name)
			}
		},
	}
	driver.Parse(context.Background(), "a{}", syntax.DialectCSS, opts)
	assert.Equal(t, []string{"lex", "parse", "project"}, seen)

	var names []string
	for _, p := range timer.Report().Phases {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"lex", "parse", "project"}, names)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "x.pcss", "a { b: c")

	fs := source.NewFileSet()
	_, err := driver.ParseFile(context.Background(), fs, path, nil, driver.Options{})
	require.ErrorIs(t, err, driver.ErrUnsupportedExtension)

	cfg := config.Default()
	cfg.Parse.Extensions = map[string]string{"pcss": "css"}
	res, err := driver.ParseFile(context.Background(), fs, path, cfg, driver.Options{})
	require.NoError(t, err)
	require.NotNil(t, res.File)
	assert.Equal(t, syntax.DialectCSS, res.Dialect)
	require.Len(t, res.Markers(), 1)
	assert.Equal(t, diag.RightCurlyExpected, res.Markers()[0].Kind)
}

type recordingSink struct {
	mu     sync.Mutex
	events []driver.Event
}

func (s *recordingSink) OnEvent(ev driver.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) final(file string) driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	var st driver.Status
	for _, ev := range s.events {
		if ev.File == file {
			st = ev.Status
		}
	}
	return st
}

func sampleTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "a.css", "a { color: red }\n")
	writeFile(t, dir, "b.scss", "@use 'x';\n.b { c: ; }\n")
	writeFile(t, dir, "sub/c.less", "@v: 1;\n.c { .m(); \n")
	writeFile(t, dir, "node_modules/pkg/x.css", "a {")
	writeFile(t, dir, ".cache/y.css", "a {")
	writeFile(t, dir, "README.md", "# styles")
	return dir
}

func TestListFiles(t *testing.T) {
	dir := sampleTree(t)
	files, err := driver.ListFiles(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.css"),
		filepath.Join(dir, "b.scss"),
		filepath.Join(dir, "sub", "c.less"),
	}, files)
}

func TestAnalyzeDir(t *testing.T) {
	dir := sampleTree(t)
	sink := &recordingSink{}
	_, results, err := driver.AnalyzeDir(context.Background(), dir, driver.AnalyzeOptions{Jobs: 2, Progress: sink})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Empty(t, results[0].Markers())
	assert.Equal(t, syntax.DialectSCSS, results[1].Dialect)
	require.Len(t, results[1].Markers(), 1)
	assert.Equal(t, diag.PropertyValueExpected, results[1].Markers()[0].Kind)
	assert.Equal(t, syntax.DialectLESS, results[2].Dialect)
	assert.True(t, results[2].HasErrors())

	assert.Equal(t, driver.StatusDone, sink.final(results[0].Path))
	assert.Equal(t, driver.StatusError, sink.final(results[2].Path))

	sum := driver.Summarize(results)
	assert.Equal(t, 3, sum.Files)
	assert.Equal(t, 0, sum.Failed)
	assert.GreaterOrEqual(t, sum.Errors, 2)
}

func TestAnalyzeReportsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "a.css", "a{}")
	missing := filepath.Join(dir, "gone.css")
	odd := writeFile(t, dir, "notes.txt", "a{}")

	results, err := driver.Analyze(context.Background(), source.NewFileSet(), []string{good, missing, odd}, driver.AnalyzeOptions{})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, os.ErrNotExist)
	assert.ErrorIs(t, results[2].Err, driver.ErrUnsupportedExtension)
	assert.Equal(t, 2, driver.Summarize(results).Failed)
}

func TestAnalyzeCancelled(t *testing.T) {
	dir := sampleTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := driver.AnalyzeDir(ctx, dir, driver.AnalyzeOptions{Jobs: 1})
	require.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeUsesDiskCache(t *testing.T) {
	dir := sampleTree(t)
	cache, err := driver.OpenDiskCache("cascade", t.TempDir())
	require.NoError(t, err)
	opts := driver.AnalyzeOptions{Cache: cache, CacheSalt: "test"}

	_, first, err := driver.AnalyzeDir(context.Background(), dir, opts)
	require.NoError(t, err)
	for _, r := range first {
		assert.False(t, r.Cached)
		assert.NotNil(t, r.Tree)
	}

	_, second, err := driver.AnalyzeDir(context.Background(), dir, opts)
	require.NoError(t, err)
	require.Len(t, second, len(first))
	for i, r := range second {
		assert.True(t, r.Cached, r.Path)
		assert.Nil(t, r.Tree)
		assert.Equal(t, first[i].Markers(), r.Markers())
	}

	// другие уровни: другой ключ
	opts.Levels = diag.Levels{diag.PropertyValueExpected: diag.LevelIgnore}
	_, third, err := driver.AnalyzeDir(context.Background(), dir, opts)
	require.NoError(t, err)
	assert.False(t, third[1].Cached)
	assert.Empty(t, third[1].Markers())

	require.NoError(t, cache.DropAll())
	_, fourth, err := driver.AnalyzeDir(context.Background(), dir, opts)
	require.NoError(t, err)
	assert.False(t, fourth[0].Cached)
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := driver.OpenDiskCache("cascade", t.TempDir())
	require.NoError(t, err)
	var key driver.Digest
	key[0] = 0xab

	var out driver.DiskPayload
	hit, err := cache.Get(key, &out)
	require.NoError(t, err)
	assert.False(t, hit)

	in := &driver.DiskPayload{
		Path:    "a.css",
		Dialect: uint8(syntax.DialectCSS),
		Markers: []diag.Marker{{Kind: diag.RightCurlyExpected, Level: diag.LevelError, Message: "} expected", Offset: 3}},
	}
	require.NoError(t, cache.Put(key, in))
	hit, err = cache.Get(key, &out)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, in.Markers, out.Markers)
	assert.Equal(t, "a.css", out.Path)
}

func TestNilDiskCacheIsNoop(t *testing.T) {
	var cache *driver.DiskCache
	require.NoError(t, cache.Put(driver.Digest{}, &driver.DiskPayload{}))
	hit, err := cache.Get(driver.Digest{}, &driver.DiskPayload{})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, cache.DropAll())
}

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
