package cst

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders the subtree one element per line:
//
//	RuleSet@0..12
//	  Ident@0..1 "a"
//
// Trivia tokens are included when withTrivia is set.
func Dump(n *Node, withTrivia bool) string {
	var b strings.Builder
	dump(&b, n, 0, withTrivia)
	return b.String()
}

func dump(b *strings.Builder, n *Node, depth int, withTrivia bool) {
	fmt.Fprintf(b, "%s%s@%d..%d\n", strings.Repeat("  ", depth), n.Kind(), n.Offset(), n.End())
	for e := range n.ChildrenWithTokens() {
		if e.Node != nil {
			dump(b, e.Node, depth+1, withTrivia)
			continue
		}
		t := e.Token
		if !withTrivia && t.Kind().IsTrivia() {
			continue
		}
		fmt.Fprintf(b, "%s%s@%d..%d %s\n", strings.Repeat("  ", depth+1), t.Kind(), t.Offset(), t.End(), strconv.Quote(t.Text()))
	}
}
