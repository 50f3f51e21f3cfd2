package lsp

import (
	"fmt"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"cascade/internal/cssnode"
	"cascade/internal/knowledge"
	"cascade/internal/syntax"
)

const maxSymbolName = 80

var symbolKinds = map[cssnode.Tag]protocol.SymbolKind{
	cssnode.TagRuleset:                   protocol.SymbolKindClass,
	cssnode.TagMedia:                     protocol.SymbolKindNamespace,
	cssnode.TagSupports:                  protocol.SymbolKindNamespace,
	cssnode.TagContainer:                 protocol.SymbolKindNamespace,
	cssnode.TagLayer:                     protocol.SymbolKindNamespace,
	cssnode.TagAtRoot:                    protocol.SymbolKindNamespace,
	cssnode.TagPage:                      protocol.SymbolKindNamespace,
	cssnode.TagFontFace:                  protocol.SymbolKindNamespace,
	cssnode.TagKeyframe:                  protocol.SymbolKindNamespace,
	cssnode.TagGenericAtRule:             protocol.SymbolKindNamespace,
	cssnode.TagUnknownAtRule:             protocol.SymbolKindNamespace,
	cssnode.TagPropertyAtRule:            protocol.SymbolKindProperty,
	cssnode.TagKeyframeSelector:          protocol.SymbolKindKey,
	cssnode.TagCustomPropertyDeclaration: protocol.SymbolKindProperty,
	cssnode.TagVariableDeclaration:       protocol.SymbolKindVariable,
	cssnode.TagMixinDeclaration:          protocol.SymbolKindMethod,
	cssnode.TagFunctionDeclaration:       protocol.SymbolKindFunction,
}

func (s *Server) documentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc := s.snapshot(params.TextDocument.URI)
	if doc == nil || doc.result == nil || doc.result.Tree == nil {
		return []protocol.DocumentSymbol{}, nil
	}
	return documentSymbols(doc), nil
}

func documentSymbols(doc *document) []protocol.DocumentSymbol {
	t := doc.result.Tree
	return symbolsUnder(doc, t, t.Node(t.Root))
}

func symbolsUnder(doc *document, t *cssnode.Tree, parent *cssnode.Node) []protocol.DocumentSymbol {
	var out []protocol.DocumentSymbol
	for _, id := range parent.Children {
		n := t.Node(id)
		if n.End() == cssnode.Unset {
			continue
		}
		kind, ok := symbolKinds[n.Type.Tag]
		if !ok {
			out = append(out, symbolsUnder(doc, t, n)...)
			continue
		}
		name, nameLen := symbolName(doc.text, t, n)
		detail := n.Type.Tag.String()
		sym := protocol.DocumentSymbol{
			Name:           name,
			Detail:         &detail,
			Kind:           kind,
			Range:          rangeFor(doc.file, n.Offset, n.Length),
			SelectionRange: rangeFor(doc.file, n.Offset, nameLen),
			Children:       symbolsUnder(doc, t, n),
		}
		out = append(out, sym)
	}
	return out
}

// symbolName is the node's header: the text before its block, whitespace
// collapsed. nameLen is the byte length of that header in the source.
func symbolName(text string, t *cssnode.Tree, n *cssnode.Node) (name string, nameLen int) {
	end := n.End()
	for _, id := range n.Children {
		ch := t.Node(id)
		if ch.Type.Tag == cssnode.TagDeclarations && ch.Offset != cssnode.Unset {
			end = ch.Offset
			break
		}
	}
	header := text[n.Offset:end]
	switch n.Type.Tag {
	case cssnode.TagVariableDeclaration, cssnode.TagCustomPropertyDeclaration:
		// $var: value, --x: y
		if i := strings.IndexByte(header, ':'); i > 0 {
			header = header[:i]
		}
	}
	nameLen = len(strings.TrimRight(header, " \t\r\n"))
	name = strings.Join(strings.Fields(header), " ")
	if len(name) > maxSymbolName {
		name = name[:maxSymbolName] + "…"
	}
	if name == "" {
		name = n.Type.Tag.String()
	}
	return name, nameLen
}

func (s *Server) foldingRange(ctx *glsp.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	doc := s.snapshot(params.TextDocument.URI)
	if doc == nil || doc.result == nil || doc.result.Tree == nil {
		return []protocol.FoldingRange{}, nil
	}
	return foldingRanges(doc), nil
}

// foldingRanges folds every multi-line block and block comment. The closing
// line stays visible.
func foldingRanges(doc *document) []protocol.FoldingRange {
	out := []protocol.FoldingRange{}
	add := func(start, end int, kind *string) {
		from := positionForOffset(doc.file, start).Line
		to := positionForOffset(doc.file, end).Line
		if to <= from+1 && kind == nil {
			return
		}
		if kind == nil {
			to--
		}
		if to <= from {
			return
		}
		out = append(out, protocol.FoldingRange{StartLine: from, EndLine: to, Kind: kind})
	}

	t := doc.result.Tree
	t.Walk(cssnode.VisitorFunc(func(t *cssnode.Tree, id cssnode.NodeID) bool {
		n := t.Node(id)
		if n.Type.Tag == cssnode.TagDeclarations && n.End() != cssnode.Unset {
			start := n.Offset
			if p := t.Node(n.Parent); p != nil && p.Offset != cssnode.Unset {
				start = p.Offset
			}
			add(start, n.End(), nil)
		}
		return true
	}))

	if lexed := doc.result.Lexed; lexed != nil {
		comment := string(protocol.FoldingRangeKindComment)
		for _, tok := range lexed.Tokens() {
			if tok.Kind == syntax.Comment {
				add(int(tok.Start), int(tok.End), &comment)
			}
		}
	}
	return out
}

// propertyInfo is implemented by *knowledge.Registry.
type propertyInfo interface {
	Property(name string) (knowledge.Entry, bool)
}

func (s *Server) hover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.snapshot(params.TextDocument.URI)
	if doc == nil || doc.result == nil || doc.result.Tree == nil {
		return nil, nil
	}
	return hoverAt(doc, offsetForPosition(doc.file, params.Position)), nil
}

func hoverAt(doc *document, offset int) *protocol.Hover {
	t := doc.result.Tree
	id := t.NodeAt(offset)
	for id != cssnode.NoNode {
		n := t.Node(id)
		var value string
		switch n.Type.Tag {
		case cssnode.TagProperty:
			value = propertyHover(doc, t, id)
		case cssnode.TagUnknownAtRule:
			value = fmt.Sprintf("`%s`\n\nunknown at-rule", atKeyword(doc.text[n.Offset:n.End()]))
		case cssnode.TagVariableRef:
			if d, ok := t.Aux(id, cssnode.AuxReferences); ok {
				value = fmt.Sprintf("variable reference `%s`", d.Name)
			}
		}
		if value != "" {
			r := rangeFor(doc.file, n.Offset, n.Length)
			return &protocol.Hover{
				Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: value},
				Range:    &r,
			}
		}
		if id == t.Root {
			break
		}
		id = n.Parent
	}
	return nil
}

func propertyHover(doc *document, t *cssnode.Tree, id cssnode.NodeID) string {
	n := t.Node(id)
	name := strings.TrimSpace(doc.text[n.Offset:n.End()])
	var b strings.Builder
	fmt.Fprintf(&b, "`%s`", name)
	if info, ok := doc.oracle.(propertyInfo); ok {
		if e, ok := info.Property(name); ok {
			if e.Description != "" {
				b.WriteString("\n\n" + e.Description)
			}
			if e.Status != "" && e.Status != "standard" {
				b.WriteString("\n\nstatus: " + e.Status)
			}
			return b.String()
		}
	}
	if d, ok := t.Aux(id, cssnode.AuxKnownProperty); ok && !d.Flag {
		b.WriteString("\n\nunknown property")
	}
	return b.String()
}

func atKeyword(s string) string {
	if i := strings.IndexAny(s, " \t\r\n{;("); i > 0 {
		return s[:i]
	}
	return s
}
