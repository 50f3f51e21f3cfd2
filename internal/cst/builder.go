package cst

import (
	"fmt"
	"sort"

	"cascade/internal/diag"
	"cascade/internal/syntax"
)

// SyntaxError is a problem found while building the tree. It is attached
// to the tree, not to a node; the diagnostic tree decides where it lands.
type SyntaxError struct {
	Kind    diag.ErrorKind
	Message string
	Offset  int
	Length  int
}

func (e SyntaxError) String() string {
	return fmt.Sprintf("%s@%d+%d: %s", e.Kind.ID(), e.Offset, e.Length, e.Message)
}

// Checkpoint remembers a position in the child list of the open node so a
// wrapper node can be started there later (e.g. a selector list turning
// out to be the prelude of a ruleset).
type Checkpoint int

type parentEntry struct {
	kind  syntax.Kind
	first int
}

// Builder assembles a green tree from a stream of events.
type Builder struct {
	cache    *NodeCache
	parents  []parentEntry
	children []GreenElement
	errors   []SyntaxError
}

// NewBuilder creates a builder. A nil cache gets a private one.
func NewBuilder(cache *NodeCache) *Builder {
	if cache == nil {
		cache = NewNodeCache()
	}
	return &Builder{
		cache:    cache,
		parents:  make([]parentEntry, 0, 16),
		children: make([]GreenElement, 0, 64),
	}
}

// StartNode opens a new interior node.
func (b *Builder) StartNode(kind syntax.Kind) {
	b.parents = append(b.parents, parentEntry{kind: kind, first: len(b.children)})
}

// Token appends a leaf to the open node.
func (b *Builder) Token(kind syntax.Kind, text string) {
	b.children = append(b.children, GreenElement{Token: b.cache.token(kind, text)})
}

// FinishNode closes the innermost open node.
func (b *Builder) FinishNode() {
	if len(b.parents) == 0 {
		panic("cst: FinishNode called with empty stack")
	}
	top := b.parents[len(b.parents)-1]
	b.parents = b.parents[:len(b.parents)-1]
	node := b.cache.node(top.kind, b.children[top.first:])
	b.children = append(b.children[:top.first], GreenElement{Node: node})
}

// Checkpoint captures the current position for StartNodeAt.
func (b *Builder) Checkpoint() Checkpoint {
	return Checkpoint(len(b.children))
}

// StartNodeAt opens a node that adopts every child added since cp.
// cp must belong to the currently open node.
func (b *Builder) StartNodeAt(cp Checkpoint, kind syntax.Kind) {
	at := int(cp)
	if at > len(b.children) {
		panic(fmt.Sprintf("cst: checkpoint %d beyond %d children", at, len(b.children)))
	}
	if n := len(b.parents); n > 0 && b.parents[n-1].first > at {
		panic("cst: checkpoint no longer valid: a node was started after it")
	}
	b.parents = append(b.parents, parentEntry{kind: kind, first: at})
}

// Error records a syntax error at [offset, offset+length).
func (b *Builder) Error(kind diag.ErrorKind, msg string, offset, length int) {
	if msg == "" {
		msg = kind.Issue().Message
	}
	b.errors = append(b.errors, SyntaxError{Kind: kind, Message: msg, Offset: offset, Length: length})
}

// Depth is the number of open nodes.
func (b *Builder) Depth() int {
	return len(b.parents)
}

// Finish returns the tree. Exactly one root node must have been built.
func (b *Builder) Finish() *Tree {
	if len(b.parents) != 0 {
		panic(fmt.Sprintf("cst: %d nodes still open at Finish", len(b.parents)))
	}
	if len(b.children) != 1 || b.children[0].Node == nil {
		panic(fmt.Sprintf("cst: expected a single root node, got %d elements", len(b.children)))
	}
	errs := b.errors
	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].Offset < errs[j].Offset
	})
	return &Tree{green: b.children[0].Node, errors: errs}
}
