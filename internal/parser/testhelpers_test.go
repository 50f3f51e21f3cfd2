package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"cascade/internal/cst"
	"cascade/internal/diag"
	"cascade/internal/lexer"
	"cascade/internal/parser"
	"cascade/internal/syntax"
)

func parseSource(t *testing.T, src string, d syntax.Dialect) *cst.Tree {
	t.Helper()
	tree := parser.Parse(lexer.Tokenize(src, d), parser.Options{})
	if got := tree.Text(); got != src {
		t.Fatalf("tree text differs from input:\n got %q\nwant %q", got, src)
	}
	return tree
}

func errorKinds(tree *cst.Tree) []diag.ErrorKind {
	var out []diag.ErrorKind
	for _, e := range tree.Errors() {
		out = append(out, e.Kind)
	}
	return out
}

func errorsSummary(tree *cst.Tree) string {
	errs := tree.Errors()
	if len(errs) == 0 {
		return "<none>"
	}
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = fmt.Sprintf("[%s@%d] %s", e.Kind.ID(), e.Offset, e.Message)
	}
	return strings.Join(lines, "; ")
}

func expectNoErrors(t *testing.T, src string, d syntax.Dialect) *cst.Tree {
	t.Helper()
	tree := parseSource(t, src, d)
	if len(tree.Errors()) != 0 {
		t.Fatalf("unexpected errors for %q: %s", src, errorsSummary(tree))
	}
	return tree
}

func expectErrors(t *testing.T, src string, d syntax.Dialect, want ...diag.ErrorKind) *cst.Tree {
	t.Helper()
	tree := parseSource(t, src, d)
	got := errorKinds(tree)
	if len(got) != len(want) {
		t.Fatalf("%q: got %s, want %v", src, errorsSummary(tree), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: got %s, want %v", src, errorsSummary(tree), want)
		}
	}
	return tree
}

// findNode возвращает первый узел kind в прямом обходе.
func findNode(tree *cst.Tree, kind syntax.Kind) *cst.Node {
	for n := range tree.Root().Descendants() {
		if n.Kind() == kind {
			return n
		}
	}
	return nil
}

func countNodes(tree *cst.Tree, kind syntax.Kind) int {
	n := 0
	for node := range tree.Root().Descendants() {
		if node.Kind() == kind {
			n++
		}
	}
	return n
}
