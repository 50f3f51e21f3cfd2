package lsp

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"cascade/internal/config"
	"cascade/internal/source"
)

type published struct {
	mu     sync.Mutex
	params []protocol.PublishDiagnosticsParams
}

func (p *published) notify(method string, params any) {
	if method != protocol.ServerTextDocumentPublishDiagnostics {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.params = append(p.params, params.(protocol.PublishDiagnosticsParams))
}

func (p *published) last() (protocol.PublishDiagnosticsParams, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.params) == 0 {
		return protocol.PublishDiagnosticsParams{}, 0
	}
	return p.params[len(p.params)-1], len(p.params)
}

func newTestServer(t *testing.T, debounce time.Duration) (*Server, *glsp.Context, *published) {
	t.Helper()
	s := NewServer(ServerOptions{Version: "test", Debounce: debounce, Config: config.Default()})
	pub := &published{}
	return s, &glsp.Context{Notify: pub.notify}, pub
}

const testURI = "file:///work/site.css"

func open(t *testing.T, s *Server, ctx *glsp.Context, uri, text string) {
	t.Helper()
	err := s.didOpen(ctx, &protocol.DidOpenTextDocumentParams{TextDocument: protocol.TextDocumentItem{
		URI: uri, LanguageID: "css", Version: 1, Text: text,
	}})
	require.NoError(t, err)
}

func TestPositionOffsetUTF16(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("a.css", []byte("a{}\n/* 😀 */ b{c:;}\n")))

	// 😀 занимает две UTF-16 единицы и четыре байта
	off := strings.Index(string(f.Content), "b{")
	pos := positionForOffset(f, off)
	assert.Equal(t, protocol.Position{Line: 1, Character: 9}, pos)
	assert.Equal(t, off, offsetForPosition(f, pos))

	// за концом строки позиция прижимается к её концу
	end := offsetForPosition(f, protocol.Position{Line: 0, Character: 99})
	assert.Equal(t, 3, end)
	assert.Equal(t, len(f.Content), offsetForPosition(f, protocol.Position{Line: 9}))
}

func TestApplyChanges(t *testing.T) {
	text := "a { color: red }"
	start := protocol.Position{Line: 0, Character: 11}
	end := protocol.Position{Line: 0, Character: 14}
	got := applyChanges(text, []any{
		protocol.TextDocumentContentChangeEvent{Range: &protocol.Range{Start: start, End: end}, Text: "blue"},
	})
	assert.Equal(t, "a { color: blue }", got)

	got = applyChanges(got, []any{protocol.TextDocumentContentChangeEventWhole{Text: "b {}"}})
	assert.Equal(t, "b {}", got)
}

func TestURIToPath(t *testing.T) {
	path := uriToPath("file:///work/dir%20x/a.scss")
	assert.Equal(t, "/work/dir x/a.scss", path)
	assert.Empty(t, uriToPath("untitled:Untitled-1"))
	assert.True(t, isConfigURI("file:///work/"+config.FileName))
	assert.False(t, isConfigURI("file:///work/a.css"))
}

func TestPublishOnOpen(t *testing.T) {
	s, ctx, pub := newTestServer(t, 0)
	open(t, s, ctx, testURI, "a { color: red")

	params, n := pub.last()
	require.Equal(t, 1, n)
	require.Equal(t, testURI, params.URI)
	require.Len(t, params.Diagnostics, 1)

	d := params.Diagnostics[0]
	assert.Equal(t, "css-rcurlyexpected", d.Code.Value)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	assert.Equal(t, protocol.Position{Line: 0, Character: 14}, d.Range.Start)
	require.NotNil(t, params.Version)
	assert.EqualValues(t, 1, *params.Version)
}

func TestChangeAndClose(t *testing.T) {
	s, ctx, pub := newTestServer(t, 0)
	open(t, s, ctx, testURI, ".x { color : ; }")
	params, _ := pub.last()
	require.Len(t, params.Diagnostics, 1)
	assert.Equal(t, "css-propertyvalueexpected", params.Diagnostics[0].Code.Value)

	err := s.didChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEvent{
			Range: &protocol.Range{
				Start: protocol.Position{Line: 0, Character: 13},
				End:   protocol.Position{Line: 0, Character: 13},
			},
			Text: "red",
		}},
	})
	require.NoError(t, err)
	params, _ = pub.last()
	assert.Empty(t, params.Diagnostics)
	assert.Equal(t, ".x { color : red; }", s.snapshot(testURI).text)

	require.NoError(t, s.didClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	}))
	params, n := pub.last()
	assert.Equal(t, 3, n)
	assert.Empty(t, params.Diagnostics)
	assert.Nil(t, s.snapshot(testURI))
}

func TestDebouncedChanges(t *testing.T) {
	s, ctx, pub := newTestServer(t, 20*time.Millisecond)
	open(t, s, ctx, testURI, "a {}")

	for i, text := range []string{"a {", "a { b", "a { b: ; }"} {
		err := s.didChange(ctx, &protocol.DidChangeTextDocumentParams{
			TextDocument: protocol.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
				Version:                protocol.Integer(i + 2),
			},
			ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: text}},
		})
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool {
		_, n := pub.last()
		return n == 2
	}, time.Second, 5*time.Millisecond)
	params, _ := pub.last()
	require.Len(t, params.Diagnostics, 1)
	assert.Equal(t, "css-propertyvalueexpected", params.Diagnostics[0].Code.Value)
	assert.EqualValues(t, 4, *params.Version)
}

func TestUnknownDialectFallsBackToLanguageID(t *testing.T) {
	s, ctx, pub := newTestServer(t, 0)
	err := s.didOpen(ctx, &protocol.DidOpenTextDocumentParams{TextDocument: protocol.TextDocumentItem{
		URI: "untitled:Untitled-1", LanguageID: "scss", Version: 1, Text: "$x: 1px;\na { b: $x; }",
	}})
	require.NoError(t, err)
	params, _ := pub.last()
	assert.Empty(t, params.Diagnostics)
}

func TestPlaintextBufferDialectIsGuessed(t *testing.T) {
	s, ctx, pub := newTestServer(t, 0)
	err := s.didOpen(ctx, &protocol.DidOpenTextDocumentParams{TextDocument: protocol.TextDocumentItem{
		URI: "untitled:Untitled-2", LanguageID: "plaintext", Version: 1, Text: "@w: 1px;\n.a { &:extend(.b); width: @w; }",
	}})
	require.NoError(t, err)
	params, _ := pub.last()
	assert.Empty(t, params.Diagnostics)
	assert.Equal(t, "less", s.snapshot("untitled:Untitled-2").dialect.String())
}

func TestDocumentSymbols(t *testing.T) {
	s, ctx, _ := newTestServer(t, 0)
	open(t, s, ctx, testURI, "@media screen {\n  .a, .b { color: red }\n}\n:root { --gap: 4px }\n")

	got, err := s.documentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	syms := got.([]protocol.DocumentSymbol)
	require.Len(t, syms, 2)
	assert.Equal(t, "@media screen", syms[0].Name)
	assert.Equal(t, protocol.SymbolKindNamespace, syms[0].Kind)
	require.Len(t, syms[0].Children, 1)
	assert.Equal(t, ".a, .b", syms[0].Children[0].Name)
	assert.Equal(t, protocol.UInteger(1), syms[0].Children[0].Range.Start.Line)

	assert.Equal(t, ":root", syms[1].Name)
	require.Len(t, syms[1].Children, 1)
	assert.Equal(t, "--gap", syms[1].Children[0].Name)
}

func TestFoldingRanges(t *testing.T) {
	s, ctx, _ := newTestServer(t, 0)
	open(t, s, ctx, testURI, "/*\n header\n*/\na {\n  color: red;\n  b {\n    c: d;\n  }\n}\ne { f: g }\n")

	ranges, err := s.foldingRange(ctx, &protocol.FoldingRangeParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)

	var spans [][2]protocol.UInteger
	var comments int
	for _, r := range ranges {
		if r.Kind != nil {
			comments++
		}
		spans = append(spans, [2]protocol.UInteger{r.StartLine, r.EndLine})
	}
	assert.ElementsMatch(t, [][2]protocol.UInteger{{0, 2}, {3, 7}, {5, 6}}, spans)
	assert.Equal(t, 1, comments)
}

func TestHover(t *testing.T) {
	s, ctx, _ := newTestServer(t, 0)
	open(t, s, ctx, testURI, "@unknown-thing { }\na { colr: red }")

	hover, err := s.hover(ctx, &protocol.HoverParams{TextDocumentPositionParams: protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Position:     protocol.Position{Line: 0, Character: 3},
	}})
	require.NoError(t, err)
	require.NotNil(t, hover)
	content := hover.Contents.(protocol.MarkupContent)
	assert.Contains(t, content.Value, "`@unknown-thing`")

	hover, err = s.hover(ctx, &protocol.HoverParams{TextDocumentPositionParams: protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Position:     protocol.Position{Line: 1, Character: 5},
	}})
	require.NoError(t, err)
	require.NotNil(t, hover)
	content = hover.Contents.(protocol.MarkupContent)
	assert.Contains(t, content.Value, "`colr`")
	assert.Contains(t, content.Value, "unknown property")
}

func TestConfigSaveClearsSettings(t *testing.T) {
	s, ctx, pub := newTestServer(t, 0)
	open(t, s, ctx, testURI, "a {}")
	require.Len(t, s.settings, 1)

	err := s.didSave(ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///work/" + config.FileName},
	})
	require.NoError(t, err)
	_, n := pub.last()
	assert.Equal(t, 2, n)
	assert.Len(t, s.settings, 1)
}

func TestCodeActionClosesBlock(t *testing.T) {
	s, ctx, _ := newTestServer(t, 0)
	open(t, s, ctx, testURI, "a { color: red")

	got, err := s.codeAction(ctx, &protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 14},
			End:   protocol.Position{Line: 0, Character: 14},
		},
	})
	require.NoError(t, err)
	actions := got.([]protocol.CodeAction)
	require.Len(t, actions, 1)
	assert.Equal(t, "insert `}`", actions[0].Title)
	assert.True(t, *actions[0].IsPreferred)

	edits := actions[0].Edit.Changes[testURI]
	require.Len(t, edits, 1)
	assert.Equal(t, " }", edits[0].NewText)
	assert.Equal(t, protocol.Position{Line: 0, Character: 14}, edits[0].Range.Start)
}
