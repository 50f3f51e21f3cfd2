// Package lsp serves diagnostics, quick fixes, hover, folding and outline
// for stylesheets over the Language Server Protocol.
package lsp

import (
	"context"
	"sync"
	"time"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	// регистрирует backend для commonlog
	_ "github.com/tliron/commonlog/simple"

	"cascade/internal/config"
)

const lsName = "cascade"

var log = commonlog.GetLogger("cascade.lsp")

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	Version string
	// Debounce delays re-analysis after edits; 0 analyses synchronously.
	Debounce       time.Duration
	MaxDiagnostics int
	// Config, when set, is used for every document instead of the
	// .cascade.toml found above it.
	Config *config.Config
}

// Server keeps one analysed snapshot per open document. Snapshots are
// replaced, never mutated, so request handlers read them under RLock and
// keep using them after the lock is released.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	opts    ServerOptions

	mu       sync.RWMutex
	docs     map[protocol.DocumentUri]*document
	timers   map[protocol.DocumentUri]*time.Timer
	settings map[string]*workspace // по каталогу документа
	shutdown bool
}

// NewServer constructs a new LSP server.
func NewServer(opts ServerOptions) *Server {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = config.DefaultMaxDiagnostics
	}
	s := &Server{
		opts:     opts,
		docs:     make(map[protocol.DocumentUri]*document),
		timers:   make(map[protocol.DocumentUri]*time.Timer),
		settings: make(map[string]*workspace),
	}
	s.handler = protocol.Handler{
		Initialize:                 s.initialize,
		Initialized:                s.initialized,
		Shutdown:                   s.shutdownHandler,
		SetTrace:                   s.setTrace,
		TextDocumentDidOpen:        s.didOpen,
		TextDocumentDidChange:      s.didChange,
		TextDocumentDidSave:        s.didSave,
		TextDocumentDidClose:       s.didClose,
		TextDocumentHover:          s.hover,
		TextDocumentFoldingRange:   s.foldingRange,
		TextDocumentDocumentSymbol: s.documentSymbol,
		TextDocumentCodeAction:     s.codeAction,
	}
	s.server = server.NewServer(&s.handler, lsName, false)
	return s
}

// RunStdio serves on stdin/stdout until the client exits.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()
	change := protocol.TextDocumentSyncKindIncremental
	includeText := true
	openClose := true
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &openClose,
		Change:    &change,
		Save:      &protocol.SaveOptions{IncludeText: &includeText},
	}

	if params.RootURI != nil {
		log.Infof("workspace root: %s", uriToPath(*params.RootURI))
	}
	version := s.opts.Version
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdownHandler(ctx *glsp.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdown = true
	for uri, t := range s.timers {
		t.Stop()
		delete(s.timers, uri)
	}
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	doc := newDocument(item.URI, item.LanguageID, item.Version, item.Text)
	s.mu.Lock()
	s.docs[item.URI] = doc
	s.mu.Unlock()
	s.schedule(ctx.Notify, item.URI, 0)
	return nil
}

func (s *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	prev, ok := s.docs[uri]
	if !ok {
		s.mu.Unlock()
		log.Warningf("change for unknown document %s", uri)
		return nil
	}
	text := applyChanges(prev.text, params.ContentChanges)
	s.docs[uri] = newDocument(uri, prev.languageID, params.TextDocument.Version, text)
	s.mu.Unlock()
	s.schedule(ctx.Notify, uri, s.opts.Debounce)
	return nil
}

func (s *Server) didSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI
	if isConfigURI(uri) {
		// поменялся .cascade.toml: перечитать и переанализировать всё
		s.mu.Lock()
		s.settings = make(map[string]*workspace)
		uris := make([]protocol.DocumentUri, 0, len(s.docs))
		for u := range s.docs {
			uris = append(uris, u)
		}
		s.mu.Unlock()
		for _, u := range uris {
			s.schedule(ctx.Notify, u, 0)
		}
		return nil
	}
	s.mu.Lock()
	prev, ok := s.docs[uri]
	if ok && params.Text != nil && *params.Text != prev.text {
		s.docs[uri] = newDocument(uri, prev.languageID, prev.version, *params.Text)
	}
	s.mu.Unlock()
	if ok {
		s.schedule(ctx.Notify, uri, 0)
	}
	return nil
}

func (s *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	delete(s.docs, uri)
	if t, ok := s.timers[uri]; ok {
		t.Stop()
		delete(s.timers, uri)
	}
	s.mu.Unlock()
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

// schedule analyses uri after delay and publishes its diagnostics. A newer
// call for the same document replaces a pending one.
func (s *Server) schedule(notify glsp.NotifyFunc, uri protocol.DocumentUri, delay time.Duration) {
	if delay <= 0 {
		s.analyzeAndPublish(notify, uri)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shutdown {
		return
	}
	if t, ok := s.timers[uri]; ok {
		t.Stop()
	}
	s.timers[uri] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, uri)
		s.mu.Unlock()
		s.analyzeAndPublish(notify, uri)
	})
}

func (s *Server) analyzeAndPublish(notify glsp.NotifyFunc, uri protocol.DocumentUri) {
	s.mu.RLock()
	doc, ok := s.docs[uri]
	s.mu.RUnlock()
	if !ok {
		return
	}
	analysed := s.analyze(context.Background(), doc)

	s.mu.Lock()
	// документ мог измениться, пока шёл анализ: старый результат не сохраняем
	if cur, ok := s.docs[uri]; !ok || cur != doc {
		s.mu.Unlock()
		return
	}
	s.docs[uri] = analysed
	s.mu.Unlock()

	if notify != nil {
		notify(protocol.ServerTextDocumentPublishDiagnostics, analysed.publishParams())
	}
}

// snapshot returns the latest document state, analysed or not.
func (s *Server) snapshot(uri protocol.DocumentUri) *document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[uri]
}
