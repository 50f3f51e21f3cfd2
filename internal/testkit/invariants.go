// Package testkit checks structural invariants of parse results. Tests of
// the parser, the projection and the fuzz harnesses share it.
package testkit

import (
	"fmt"

	"cascade/internal/cssnode"
	"cascade/internal/cst"
	"cascade/internal/lexer"
)

// CheckTree runs the invariants every parse must satisfy:
//  1. the CST reproduces input byte for byte, token for token
//  2. every syntax error ends up as exactly one issue of the node tree
//  3. every node with an extent lies inside its parent and inside input
//
// nodes may be nil to check the CST alone.
func CheckTree(input string, lexed *lexer.Lexed, tree *cst.Tree, nodes *cssnode.Tree) error {
	if tree == nil {
		return fmt.Errorf("nil tree")
	}
	if got := tree.Text(); got != input {
		return fmt.Errorf("tree text differs from input: got %d bytes, want %d", len(got), len(input))
	}
	if err := checkTokens(lexed, tree); err != nil {
		return err
	}
	if nodes == nil {
		return nil
	}

	if issues, errs := len(nodes.CollectIssues()), len(tree.Errors()); issues != errs {
		return fmt.Errorf("tree has %d errors but %d issues", errs, issues)
	}
	root := nodes.Node(nodes.Root)
	if root == nil || root.Offset != 0 || root.Length != len(input) {
		return fmt.Errorf("root does not cover input: %+v", root)
	}
	var bad error
	nodes.Walk(cssnode.VisitorFunc(func(t *cssnode.Tree, id cssnode.NodeID) bool {
		n := t.Node(id)
		for _, ch := range n.Children {
			c := t.Node(ch)
			if c.Parent != id {
				bad = fmt.Errorf("node %d lists child %d whose parent is %d", id, ch, c.Parent)
				return false
			}
			if c.End() == cssnode.Unset || n.End() == cssnode.Unset {
				continue
			}
			if !n.Encloses(c) {
				bad = fmt.Errorf("%s [%d,%d) is outside its parent %s [%d,%d)",
					c.Type, c.Offset, c.End(), n.Type, n.Offset, n.End())
				return false
			}
		}
		for _, m := range n.Issues {
			if m.Offset < 0 || m.End() > len(input) {
				bad = fmt.Errorf("issue %s at %d+%d is outside input", m.Kind.ID(), m.Offset, m.Length)
				return false
			}
		}
		return true
	}))
	return bad
}

// checkTokens compares token texts only: the parser may re-kind a token
// (keywords, function names) but never splits or merges one.
func checkTokens(lexed *lexer.Lexed, tree *cst.Tree) error {
	if lexed == nil {
		return nil
	}
	i := 0
	for tok := range tree.Root().Tokens() {
		if tok.Len() == 0 {
			// синтезированный при восстановлении токен
			continue
		}
		if i >= lexed.Len() {
			return fmt.Errorf("tree has more tokens than the lexer produced (%d)", lexed.Len())
		}
		if tok.Offset() != lexed.Start(i) || tok.Text() != lexed.Text(i) {
			return fmt.Errorf("token %d: %q at %d, lexer said %q at %d",
				i, tok.Text(), tok.Offset(), lexed.Text(i), lexed.Start(i))
		}
		i++
	}
	if i != lexed.Len() {
		return fmt.Errorf("tree has %d tokens, lexer produced %d", i, lexed.Len())
	}
	return nil
}
