package cst

import (
	"strings"
	"testing"

	"cascade/internal/diag"
	"cascade/internal/syntax"
)

func buildSample() *Tree {
	b := NewBuilder(nil)
	b.StartNode(syntax.SourceFile)
	b.StartNode(syntax.RuleSet)
	cp := b.Checkpoint()
	b.Token(syntax.Ident, "a")
	b.StartNodeAt(cp, syntax.Selector)
	b.FinishNode()
	b.Token(syntax.Whitespace, " ")
	b.StartNode(syntax.Block)
	b.Token(syntax.LBrace, "{")
	b.Token(syntax.RBrace, "}")
	b.FinishNode()
	b.FinishNode()
	b.Error(diag.UnknownKeyword, "", 0, 1)
	b.Error(diag.ColonExpected, "x", 0, 0)
	b.FinishNode()
	return b.Finish()
}

func TestBuilderShape(t *testing.T) {
	tree := buildSample()
	if got := tree.Text(); got != "a {}" {
		t.Fatalf("Text = %q", got)
	}
	want := strings.Join([]string{
		"SourceFile@0..4",
		"  RuleSet@0..4",
		"    Selector@0..1",
		`      Ident@0..1 "a"`,
		`    Whitespace@1..2 " "`,
		"    Block@2..4",
		`      LBrace@2..3 "{"`,
		`      RBrace@3..4 "}"`,
		"",
	}, "\n")
	if got := Dump(tree.Root(), true); got != want {
		t.Errorf("Dump:\n%s\nwant:\n%s", got, want)
	}
}

func TestErrorsSortedStable(t *testing.T) {
	errs := buildSample().Errors()
	if len(errs) != 2 {
		t.Fatalf("errors = %v", errs)
	}
	// одинаковый offset: порядок добавления сохраняется
	if errs[0].Kind != diag.UnknownKeyword || errs[1].Kind != diag.ColonExpected {
		t.Errorf("order = %v", errs)
	}
	if errs[0].Message != "unknown keyword" {
		t.Errorf("default message = %q", errs[0].Message)
	}
}

func TestCacheDeduplicates(t *testing.T) {
	cache := NewNodeCache()
	mk := func() *GreenNode {
		b := NewBuilder(cache)
		b.StartNode(syntax.Identifier)
		b.Token(syntax.Ident, "red")
		b.FinishNode()
		return b.Finish().Green()
	}
	if mk() != mk() {
		t.Error("identical small nodes should be shared")
	}
	toks, nodes := cache.Len()
	if toks != 1 || nodes != 1 {
		t.Errorf("cache = %d tokens, %d nodes", toks, nodes)
	}
}

func TestRedNavigation(t *testing.T) {
	root := buildSample().Root()
	var kinds []string
	for n := range root.Descendants() {
		kinds = append(kinds, n.Kind().String())
	}
	if got := strings.Join(kinds, ","); got != "SourceFile,RuleSet,Selector,Block" {
		t.Errorf("Descendants = %s", got)
	}
	rs := root.ChildOfKind(syntax.RuleSet)
	block := rs.ChildOfKind(syntax.Block)
	if block.Offset() != 2 || block.Parent() != rs || block.Index() != 2 {
		t.Errorf("block at %d, index %d", block.Offset(), block.Index())
	}
	if tok := root.TokenAt(3); tok == nil || tok.Kind() != syntax.RBrace || tok.Parent().Kind() != syntax.Block {
		t.Errorf("TokenAt(3) = %v", tok)
	}
	if root.TokenAt(4) != nil {
		t.Error("TokenAt past end must be nil")
	}
	if ft := rs.FirstToken(); ft.Text() != "a" {
		t.Errorf("FirstToken = %q", ft.Text())
	}
	if block.TokenOfKind(syntax.RBrace) == nil {
		t.Error("TokenOfKind missed RBrace")
	}
}

func TestBuilderPanics(t *testing.T) {
	cases := map[string]func(){
		"finish with open node": func() {
			b := NewBuilder(nil)
			b.StartNode(syntax.SourceFile)
			b.Finish()
		},
		"finish empty stack": func() {
			NewBuilder(nil).FinishNode()
		},
		"stale checkpoint": func() {
			b := NewBuilder(nil)
			b.StartNode(syntax.SourceFile)
			cp := b.Checkpoint()
			b.Token(syntax.Ident, "a")
			b.StartNode(syntax.Block)
			b.StartNodeAt(cp, syntax.RuleSet)
		},
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			fn()
		})
	}
}

func TestCoveringNode(t *testing.T) {
	root := buildSample().Root()
	if got := root.CoveringNode(2, 4); got == nil || got.Kind() != syntax.Block {
		t.Errorf("CoveringNode(2,4) = %v", got)
	}
	if got := root.CoveringNode(0, 4); got.Kind() != syntax.RuleSet {
		t.Errorf("CoveringNode(0,4) = %v", got.Kind())
	}
	if root.CoveringNode(0, 9) != nil {
		t.Error("out of range must be nil")
	}
}
