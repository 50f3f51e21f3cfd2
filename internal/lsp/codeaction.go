package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"cascade/internal/fix"
)

func (s *Server) codeAction(ctx *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	doc := s.snapshot(params.TextDocument.URI)
	if doc == nil || doc.result == nil || doc.file == nil {
		return []protocol.CodeAction{}, nil
	}
	from := offsetForPosition(doc.file, params.Range.Start)
	to := offsetForPosition(doc.file, params.Range.End)
	return codeActions(doc, from, to), nil
}

// codeActions offers a quick fix for every marker touching [from, to].
func codeActions(doc *document, from, to int) []protocol.CodeAction {
	out := []protocol.CodeAction{}
	kind := protocol.CodeActionKind(protocol.CodeActionKindQuickFix)
	for _, c := range fix.Collect(doc.file.Content, doc.result.Markers()) {
		m := c.Marker
		if m.End() < from || m.Offset > to {
			continue
		}
		edits := make([]protocol.TextEdit, 0, len(c.Fix.Edits))
		for _, e := range c.Fix.Edits {
			edits = append(edits, protocol.TextEdit{
				Range:   rangeFor(doc.file, e.Offset, e.Length),
				NewText: e.NewText,
			})
		}
		preferred := c.Fix.IsPreferred && c.Fix.Applicability == fix.AlwaysSafe
		out = append(out, protocol.CodeAction{
			Title:       c.Fix.Title,
			Kind:        &kind,
			Diagnostics: []protocol.Diagnostic{toDiagnostic(doc, m)},
			IsPreferred: &preferred,
			Edit: &protocol.WorkspaceEdit{
				Changes: map[protocol.DocumentUri][]protocol.TextEdit{doc.uri: edits},
			},
		})
	}
	return out
}
