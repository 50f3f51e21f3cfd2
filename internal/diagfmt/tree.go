package diagfmt

import (
	"encoding/json"
	"io"

	"cascade/internal/cssnode"
	"cascade/internal/cst"
)

// TreeFormat selects which tree FormatTree prints.
type TreeFormat uint8

const (
	// TreeCST is the lossless syntax tree.
	TreeCST TreeFormat = iota
	// TreeNodes is the diagnostic node tree with issues attached.
	TreeNodes
	// TreeJSON is the diagnostic node tree as JSON.
	TreeJSON
)

// FormatTree prints one of the trees of a parse.
func FormatTree(w io.Writer, format TreeFormat, tree *cst.Tree, nodes *cssnode.Tree, withTrivia bool) error {
	switch format {
	case TreeNodes:
		_, err := io.WriteString(w, cssnode.Dump(nodes))
		return err
	case TreeJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(nodeJSON(nodes, nodes.Root))
	default:
		_, err := io.WriteString(w, cst.Dump(tree.Root(), withTrivia))
		return err
	}
}

type NodeJSON struct {
	Tag      string           `json:"tag"`
	Offset   int              `json:"offset"`
	Length   int              `json:"length"`
	Refs     uint16           `json:"refs,omitempty"`
	Custom   bool             `json:"custom_property,omitempty"`
	Aux      map[string]any   `json:"aux,omitempty"`
	Issues   []DiagnosticJSON `json:"issues,omitempty"`
	Children []NodeJSON       `json:"children,omitempty"`
}

func nodeJSON(t *cssnode.Tree, id cssnode.NodeID) NodeJSON {
	n := t.Node(id)
	out := NodeJSON{
		Tag:    n.Type.Tag.String(),
		Offset: n.Offset,
		Length: n.Length,
		Refs:   uint16(n.Type.Refs),
		Custom: n.Type.CustomProperty,
	}
	for _, a := range n.Aux {
		if out.Aux == nil {
			out.Aux = make(map[string]any, len(n.Aux))
		}
		switch a.Kind {
		case cssnode.AuxKnownProperty:
			out.Aux[a.Kind.String()] = a.Flag
		case cssnode.AuxSemicolonOffset:
			out.Aux[a.Kind.String()] = a.Offset
		default:
			out.Aux[a.Kind.String()] = a.Name
		}
	}
	for _, m := range n.Issues {
		out.Issues = append(out.Issues, DiagnosticJSON{
			Level:   m.Level.String(),
			Rule:    m.Kind.ID(),
			Message: m.Message,
			Location: LocationJSON{
				StartByte: uint32(max(m.Offset, 0)),
				EndByte:   uint32(max(m.End(), 0)),
			},
		})
	}
	for _, ch := range n.Children {
		out.Children = append(out.Children, nodeJSON(t, ch))
	}
	return out
}
