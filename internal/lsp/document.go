package lsp

import (
	"context"
	"errors"
	"path/filepath"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"cascade/internal/config"
	"cascade/internal/diag"
	"cascade/internal/dialect"
	"cascade/internal/driver"
	"cascade/internal/knowledge"
	"cascade/internal/source"
	"cascade/internal/syntax"
)

// document is an immutable snapshot of one open buffer. result is nil until
// the snapshot has been analysed.
type document struct {
	uri        protocol.DocumentUri
	path       string
	languageID string
	version    protocol.Integer
	text       string

	dialect syntax.Dialect
	file    *source.File
	result  *driver.Result
	oracle  knowledge.Oracle
}

func newDocument(uri protocol.DocumentUri, languageID string, version protocol.Integer, text string) *document {
	return &document{
		uri:        uri,
		path:       uriToPath(uri),
		languageID: languageID,
		version:    version,
		text:       text,
	}
}

// workspace is the resolved configuration of one directory.
type workspace struct {
	cfg    *config.Config
	levels diag.Levels
	oracle knowledge.Oracle
}

func (s *Server) workspaceFor(path string) *workspace {
	dir := ""
	if path != "" {
		dir = filepath.Dir(path)
	}
	s.mu.RLock()
	ws, ok := s.settings[dir]
	s.mu.RUnlock()
	if ok {
		return ws
	}

	cfg := s.opts.Config
	if cfg == nil {
		cfg = config.Default()
		if dir != "" {
			found, err := config.Discover(dir)
			switch {
			case err == nil:
				cfg = found
			case !errors.Is(err, config.ErrNotFound):
				log.Warningf("%s: %v", dir, err)
			}
		}
	}
	ws = &workspace{cfg: cfg}
	var err error
	if ws.levels, err = cfg.Levels(); err != nil {
		log.Warningf("%s: %v", cfg.Path, err)
	}
	if ws.oracle, err = cfg.Oracle(); err != nil {
		log.Warningf("%s: %v", cfg.Path, err)
		ws.oracle = knowledge.Default()
	}

	s.mu.Lock()
	s.settings[dir] = ws
	s.mu.Unlock()
	return ws
}

// dialectFor prefers the configured extension mapping, then the client's
// languageId, then a guess from the buffer itself.
func dialectFor(cfg *config.Config, path, languageID, text string) syntax.Dialect {
	if path != "" {
		if d, ok := cfg.DialectFor(path); ok {
			return d
		}
	}
	if d, err := syntax.ParseDialect(languageID); err == nil {
		return d
	}
	return dialect.Guess(text).Dialect
}

// analyze returns a new snapshot of doc carrying the parse result.
func (s *Server) analyze(ctx context.Context, doc *document) *document {
	ws := s.workspaceFor(doc.path)
	out := *doc
	out.dialect = dialectFor(ws.cfg, doc.path, doc.languageID, doc.text)
	out.oracle = ws.oracle

	max := s.opts.MaxDiagnostics
	if ws.cfg.Diagnostics.Max > 0 {
		max = ws.cfg.Diagnostics.Max
	}
	name := doc.path
	if name == "" {
		name = doc.uri
	}
	fileSet := source.NewFileSet()
	out.file = fileSet.Get(fileSet.AddVirtual(name, []byte(doc.text)))
	out.result = driver.ParseSource(ctx, out.file, out.dialect, driver.Options{
		Levels:         ws.levels,
		Oracle:         ws.oracle,
		MaxDiagnostics: max,
	})
	return &out
}
