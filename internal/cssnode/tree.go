// Package cssnode is the diagnostic tree: a mutable, offset/length
// addressed view of a parsed stylesheet whose nodes carry issue lists.
//
// The tree is derived from the lossless CST in one pass (see Project) and is
// never patched afterwards; a new parse yields a new Tree. Readers may walk
// a Tree concurrently as long as nobody mutates it.
package cssnode

import (
	"cascade/internal/diag"
)

// NodeID addresses a node in its Tree. Zero is "no node".
type NodeID uint32

const NoNode NodeID = 0

// Unset marks an offset or length that is not known yet.
const Unset = -1

type Node struct {
	Type     NodeType
	Offset   int
	Length   int
	Parent   NodeID
	Children []NodeID
	Issues   []diag.Marker
	Aux      []AuxData

	// openEnd: узел (или его последний потомок) потерял закрывающую скобку.
	openEnd bool
}

// End is Offset+Length; it is Unset while either is unset.
func (n *Node) End() int {
	if n.Offset == Unset || n.Length == Unset {
		return Unset
	}
	return n.Offset + n.Length
}

// Encloses reports whether other lies within n. Nodes with an unset extent
// enclose nothing and are enclosed by nothing.
func (n *Node) Encloses(other *Node) bool {
	if n.End() == Unset || other.End() == Unset {
		return false
	}
	return n.Offset <= other.Offset && n.End() >= other.End()
}

func (n *Node) IsErroneous() bool {
	return len(n.Issues) > 0
}

type Tree struct {
	nodes *arena[Node]
	Root  NodeID
}

func New() *Tree {
	return &Tree{nodes: newArena[Node](64)}
}

// NewNode allocates a detached node with an unset extent.
func (t *Tree) NewNode(tag Tag) NodeID {
	return NodeID(t.nodes.allocate(Node{
		Type:   NodeType{Tag: tag},
		Offset: Unset,
		Length: Unset,
	}))
}

// Node returns the node for id, or nil for NoNode.
func (t *Tree) Node(id NodeID) *Node {
	return t.nodes.get(uint32(id))
}

// Len is the number of allocated nodes.
func (t *Tree) Len() int {
	return t.nodes.len()
}

func (t *Tree) Encloses(a, b NodeID) bool {
	na, nb := t.Node(a), t.Node(b)
	if na == nil || nb == nil {
		return false
	}
	return na.Encloses(nb)
}

// UpdateOffsetAndLength widens parent so that it covers child. It never
// shrinks parent.
func (t *Tree) UpdateOffsetAndLength(parent, child NodeID) {
	p, c := t.Node(parent), t.Node(child)
	if p == nil || c == nil || c.End() == Unset {
		return
	}
	if p.End() == Unset {
		p.Offset, p.Length = c.Offset, c.Length
		return
	}
	start, end := min(p.Offset, c.Offset), max(p.End(), c.End())
	p.Offset, p.Length = start, end-start
}

// AddChild appends child to parent and widens parent over it.
func (t *Tree) AddChild(parent, child NodeID) {
	p, c := t.Node(parent), t.Node(child)
	if p == nil || c == nil {
		return
	}
	c.Parent = parent
	p.Children = append(p.Children, child)
	t.UpdateOffsetAndLength(parent, child)
}

func (t *Tree) AddIssue(id NodeID, m diag.Marker) {
	if n := t.Node(id); n != nil {
		n.Issues = append(n.Issues, m)
	}
}

func (t *Tree) IsErroneous(id NodeID) bool {
	n := t.Node(id)
	return n != nil && n.IsErroneous()
}

// Enclosing returns the deepest node that encloses [offset, offset+length).
//
// An empty span sitting exactly at a node's end belongs to that node only if
// the node lost its closing delimiter there: "a { color: red" reports the
// missing brace on the declaration block, not on "red".
func (t *Tree) Enclosing(offset, length int) NodeID {
	id := t.Root
	for {
		var next NodeID
		for _, ch := range t.Node(id).Children {
			if t.accepts(t.Node(ch), offset, length) {
				next = ch
				break
			}
		}
		if next == NoNode {
			return id
		}
		id = next
	}
}

func (t *Tree) accepts(n *Node, offset, length int) bool {
	end := n.End()
	if end == Unset || offset < n.Offset {
		return false
	}
	if length > 0 {
		return offset+length <= end
	}
	if offset < end {
		return true
	}
	return offset == end && n.openEnd
}

// NodeAt returns the deepest node containing offset, or Root when none does.
func (t *Tree) NodeAt(offset int) NodeID {
	id := t.Root
	for {
		var next NodeID
		for _, ch := range t.Node(id).Children {
			n := t.Node(ch)
			if n.End() != Unset && n.Offset <= offset && offset < n.End() {
				next = ch
				break
			}
		}
		if next == NoNode {
			return id
		}
		id = next
	}
}
