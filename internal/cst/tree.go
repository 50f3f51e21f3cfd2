package cst

import (
	"iter"
	"strings"

	"cascade/internal/syntax"
)

// Tree is a finished CST plus the errors found while building it.
type Tree struct {
	green  *GreenNode
	errors []SyntaxError
}

// Green returns the root green node.
func (t *Tree) Green() *GreenNode { return t.green }

// Errors are sorted by offset.
func (t *Tree) Errors() []SyntaxError { return t.errors }

// Root returns a red cursor on the root node.
func (t *Tree) Root() *Node {
	return &Node{green: t.green}
}

// Text reproduces the parsed input.
func (t *Tree) Text() string {
	var b strings.Builder
	b.Grow(t.green.width)
	GreenElement{Node: t.green}.writeTo(&b)
	return b.String()
}

// Node is a positioned view of a green node.
type Node struct {
	green  *GreenNode
	parent *Node
	offset int
	index  int // позиция среди детей родителя
}

// Token is a positioned view of a green token.
type Token struct {
	green  *GreenToken
	parent *Node
	offset int
	index  int
}

// Element holds exactly one of Node or Token.
type Element struct {
	Node  *Node
	Token *Token
}

func (e Element) Kind() syntax.Kind {
	if e.Node != nil {
		return e.Node.Kind()
	}
	return e.Token.Kind()
}

func (e Element) Offset() int {
	if e.Node != nil {
		return e.Node.offset
	}
	return e.Token.offset
}

func (n *Node) Kind() syntax.Kind { return n.green.kind }
func (n *Node) Green() *GreenNode { return n.green }
func (n *Node) Parent() *Node { return n.parent }
func (n *Node) Offset() int { return n.offset }
func (n *Node) Len() int { return n.green.width }
func (n *Node) End() int { return n.offset + n.green.width }

// Range returns [Offset, End).
func (n *Node) Range() (start, end int) {
	return n.offset, n.End()
}

// Text concatenates the node's tokens.
func (n *Node) Text() string {
	var b strings.Builder
	b.Grow(n.green.width)
	GreenElement{Node: n.green}.writeTo(&b)
	return b.String()
}

// ChildrenWithTokens iterates over direct children in order.
func (n *Node) ChildrenWithTokens() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		off := n.offset
		for i, ch := range n.green.children {
			var e Element
			if ch.Node != nil {
				e.Node = &Node{green: ch.Node, parent: n, offset: off, index: i}
			} else {
				e.Token = &Token{green: ch.Token, parent: n, offset: off, index: i}
			}
			if !yield(e) {
				return
			}
			off += ch.Width()
		}
	}
}

// Children iterates over direct child nodes.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for e := range n.ChildrenWithTokens() {
			if e.Node != nil && !yield(e.Node) {
				return
			}
		}
	}
}

// Descendants walks the subtree in pre-order, n included.
func (n *Node) Descendants() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.descend(yield)
	}
}

func (n *Node) descend(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for ch := range n.Children() {
		if !ch.descend(yield) {
			return false
		}
	}
	return true
}

// Tokens iterates over every token of the subtree, trivia included.
func (n *Node) Tokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		n.tokens(yield)
	}
}

func (n *Node) tokens(yield func(*Token) bool) bool {
	for e := range n.ChildrenWithTokens() {
		if e.Token != nil {
			if !yield(e.Token) {
				return false
			}
			continue
		}
		if !e.Node.tokens(yield) {
			return false
		}
	}
	return true
}

// ChildOfKind returns the first direct child node of kind k, or nil.
func (n *Node) ChildOfKind(k syntax.Kind) *Node {
	for ch := range n.Children() {
		if ch.Kind() == k {
			return ch
		}
	}
	return nil
}

// TokenOfKind returns the first direct child token of kind k, or nil.
func (n *Node) TokenOfKind(k syntax.Kind) *Token {
	for e := range n.ChildrenWithTokens() {
		if e.Token != nil && e.Token.Kind() == k {
			return e.Token
		}
	}
	return nil
}

// FirstToken returns the first non-trivia token of the subtree, or nil.
func (n *Node) FirstToken() *Token {
	for t := range n.Tokens() {
		if !t.Kind().IsTrivia() {
			return t
		}
	}
	return nil
}

// TokenAt returns the token covering offset, or nil when offset is out of range.
func (n *Node) TokenAt(offset int) *Token {
	if offset < n.offset || offset >= n.End() {
		return nil
	}
	for e := range n.ChildrenWithTokens() {
		if e.Token != nil {
			if offset < e.Token.End() {
				return e.Token
			}
			continue
		}
		if offset < e.Node.End() {
			return e.Node.TokenAt(offset)
		}
	}
	return nil
}

func (t *Token) Kind() syntax.Kind { return t.green.kind }
func (t *Token) Text() string { return t.green.text }
func (t *Token) Parent() *Node { return t.parent }
func (t *Token) Offset() int { return t.offset }
func (t *Token) Len() int { return len(t.green.text) }
func (t *Token) End() int { return t.offset + len(t.green.text) }

// Index is the position of n among its parent's children.
func (n *Node) Index() int { return n.index }

// Index is the position of t among its parent's children.
func (t *Token) Index() int { return t.index }

// CoveringNode returns the deepest node whose range contains [start, end).
func (n *Node) CoveringNode(start, end int) *Node {
	if start < n.offset || end > n.End() {
		return nil
	}
	for ch := range n.Children() {
		if ch.offset <= start && end <= ch.End() && (start < ch.End() || ch.Len() == 0) {
			return ch.CoveringNode(start, end)
		}
	}
	return n
}
