package cssnode

import (
	"fmt"
	"strings"

	"cascade/internal/diag"
)

// Visitor is called for every node in pre-order. Returning false skips the
// node's children.
type Visitor interface {
	Visit(t *Tree, id NodeID) bool
}

type VisitorFunc func(t *Tree, id NodeID) bool

func (f VisitorFunc) Visit(t *Tree, id NodeID) bool { return f(t, id) }

// Walk traverses the tree from Root in pre-order.
func (t *Tree) Walk(v Visitor) {
	if t.Root == NoNode {
		return
	}
	// явный стек: глубина дерева ограничена только входом
	stack := []NodeID{t.Root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !v.Visit(t, id) {
			continue
		}
		ch := t.Node(id).Children
		for i := len(ch) - 1; i >= 0; i-- {
			stack = append(stack, ch[i])
		}
	}
}

type issueCollector struct {
	out []diag.Marker
}

func (c *issueCollector) Visit(t *Tree, id NodeID) bool {
	c.out = append(c.out, t.Node(id).Issues...)
	return true
}

// CollectIssues gathers every node's issues in traversal order. No
// filtering or deduplication happens here; see diag.FilterLevel.
func (t *Tree) CollectIssues() []diag.Marker {
	c := &issueCollector{}
	t.Walk(c)
	return c.out
}

// OfTag returns the ids of all nodes with the given tag, in pre-order.
func (t *Tree) OfTag(tag Tag) []NodeID {
	var out []NodeID
	t.Walk(VisitorFunc(func(t *Tree, id NodeID) bool {
		if t.Node(id).Type.Tag == tag {
			out = append(out, id)
		}
		return true
	}))
	return out
}

// Dump renders the tree one node per line: tag, extent, identifier data,
// annotations and issue rule ids.
func Dump(t *Tree) string {
	var b strings.Builder
	depth := map[NodeID]int{}
	t.Walk(VisitorFunc(func(t *Tree, id NodeID) bool {
		n := t.Node(id)
		d := 0
		if n.Parent != NoNode {
			d = depth[n.Parent] + 1
		}
		depth[id] = d
		b.WriteString(strings.Repeat("  ", d))
		fmt.Fprintf(&b, "%s %d+%d", n.Type, n.Offset, n.Length)
		if n.Type.Refs != 0 {
			fmt.Fprintf(&b, " refs=%#x", uint16(n.Type.Refs))
		}
		if n.Type.CustomProperty {
			b.WriteString(" custom")
		}
		for _, a := range n.Aux {
			switch a.Kind {
			case AuxKnownProperty:
				fmt.Fprintf(&b, " %s=%t", a.Kind, a.Flag)
			case AuxSemicolonOffset:
				fmt.Fprintf(&b, " %s=%d", a.Kind, a.Offset)
			default:
				fmt.Fprintf(&b, " %s=%q", a.Kind, a.Name)
			}
		}
		for _, m := range n.Issues {
			fmt.Fprintf(&b, " !%s", m.Kind.ID())
		}
		b.WriteByte('\n')
		return true
	}))
	return b.String()
}
