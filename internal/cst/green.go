// Package cst is the lossless concrete syntax tree.
//
// The tree has two layers. Green nodes are immutable, position-free and
// shared through a NodeCache: they know their kind, their width and their
// children. Red nodes (Node, Token) are cursors created on demand while
// walking; they add the parent link and the absolute offset.
//
// Every byte of the input belongs to exactly one token, so Tree.Text()
// reproduces the input exactly.
package cst

import (
	"strings"

	"cascade/internal/syntax"
)

// GreenToken is a leaf: a kind and its exact text.
type GreenToken struct {
	kind syntax.Kind
	text string
}

func (t *GreenToken) Kind() syntax.Kind { return t.kind }
func (t *GreenToken) Text() string { return t.text }
func (t *GreenToken) Width() int { return len(t.text) }

// GreenNode is an interior node. Width is the sum of its children's widths.
type GreenNode struct {
	kind     syntax.Kind
	width    int
	children []GreenElement
}

func (n *GreenNode) Kind() syntax.Kind { return n.kind }
func (n *GreenNode) Width() int { return n.width }
func (n *GreenNode) Children() []GreenElement { return n.children }

// GreenElement holds exactly one of Node or Token.
type GreenElement struct {
	Node  *GreenNode
	Token *GreenToken
}

func (e GreenElement) Kind() syntax.Kind {
	if e.Node != nil {
		return e.Node.kind
	}
	return e.Token.kind
}

func (e GreenElement) Width() int {
	if e.Node != nil {
		return e.Node.width
	}
	return len(e.Token.text)
}

func (e GreenElement) writeTo(b *strings.Builder) {
	if e.Token != nil {
		b.WriteString(e.Token.text)
		return
	}
	for _, c := range e.Node.children {
		c.writeTo(b)
	}
}

type tokenKey struct {
	kind syntax.Kind
	text string
}

// Интернируем только маленькие узлы: ключ фиксированного размера.
const maxCachedChildren = 3

type nodeKey struct {
	kind     syntax.Kind
	n        uint8
	children [maxCachedChildren]GreenElement
}

// NodeCache deduplicates green tokens by (kind, text) and small green
// nodes by (kind, children). Not safe for concurrent use; give each
// goroutine its own cache.
type NodeCache struct {
	tokens map[tokenKey]*GreenToken
	nodes  map[nodeKey]*GreenNode
}

func NewNodeCache() *NodeCache {
	return &NodeCache{
		tokens: make(map[tokenKey]*GreenToken),
		nodes:  make(map[nodeKey]*GreenNode),
	}
}

// Len reports the number of interned tokens and nodes.
func (c *NodeCache) Len() (tokens, nodes int) {
	return len(c.tokens), len(c.nodes)
}

func (c *NodeCache) token(kind syntax.Kind, text string) *GreenToken {
	key := tokenKey{kind, text}
	if t, ok := c.tokens[key]; ok {
		return t
	}
	t := &GreenToken{kind: kind, text: strings.Clone(text)}
	c.tokens[key] = t
	return t
}

func (c *NodeCache) node(kind syntax.Kind, children []GreenElement) *GreenNode {
	width := 0
	for _, ch := range children {
		width += ch.Width()
	}
	if len(children) > maxCachedChildren {
		return &GreenNode{kind: kind, width: width, children: append([]GreenElement(nil), children...)}
	}
	key := nodeKey{kind: kind, n: uint8(len(children))}
	copy(key.children[:], children)
	if n, ok := c.nodes[key]; ok {
		return n
	}
	n := &GreenNode{kind: kind, width: width, children: append([]GreenElement(nil), children...)}
	c.nodes[key] = n
	return n
}
