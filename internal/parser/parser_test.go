package parser_test

import (
	"strings"
	"testing"

	"cascade/internal/cst"
	"cascade/internal/diag"
	"cascade/internal/lexer"
	"cascade/internal/parser"
	"cascade/internal/syntax"
)

func TestUnclosedRuleSetSpansToEOF(t *testing.T) {
	src := "a { color: red"
	tree := expectErrors(t, src, syntax.DialectCSS, diag.RightCurlyExpected)
	e := tree.Errors()[0]
	if e.Offset != len(src) || e.Length != 0 {
		t.Errorf("error at %d+%d, want %d+0", e.Offset, e.Length, len(src))
	}
	rs := tree.Root().ChildOfKind(syntax.RuleSet)
	if rs == nil {
		t.Fatal("no RuleSet")
	}
	if rs.Offset() != 0 || rs.End() != len(src) {
		t.Errorf("RuleSet range %d..%d, want 0..%d", rs.Offset(), rs.End(), len(src))
	}
	if findNode(tree, syntax.Declaration) == nil {
		t.Error("declaration was not kept")
	}
}

func TestMissingValueRecoversAtBrace(t *testing.T) {
	src := ".x { color : ; }"
	tree := expectErrors(t, src, syntax.DialectCSS, diag.PropertyValueExpected)
	if got, want := tree.Errors()[0].Offset, strings.Index(src, ";"); got != want {
		t.Errorf("error offset %d, want %d", got, want)
	}
	block := findNode(tree, syntax.Block)
	if block == nil || block.TokenOfKind(syntax.RBrace) == nil {
		t.Fatalf("block not closed:\n%s", cst.Dump(tree.Root(), false))
	}
}

func TestUnknownAtRuleInCSS(t *testing.T) {
	src := "@unknown-thing { }"
	tree := expectErrors(t, src, syntax.DialectCSS, diag.UnknownAtRule)
	e := tree.Errors()[0]
	if e.Offset != 0 || e.Length != len("@unknown-thing") {
		t.Errorf("error at %d+%d", e.Offset, e.Length)
	}
	if !strings.Contains(e.Message, "@unknown-thing") {
		t.Errorf("message %q does not name the rule", e.Message)
	}
	at := tree.Root().ChildOfKind(syntax.UnknownAtRule)
	if at == nil || at.End() != len(src) {
		t.Fatalf("UnknownAtRule node missing:\n%s", cst.Dump(tree.Root(), false))
	}
}

func TestKnownGenericAtRule(t *testing.T) {
	tree := expectNoErrors(t, "@counter-style thumbs { system: cyclic; symbols: a b; }", syntax.DialectCSS)
	at := tree.Root().ChildOfKind(syntax.AtRule)
	if at == nil || at.ChildOfKind(syntax.Prelude) == nil {
		t.Fatalf("generic at-rule shape:\n%s", cst.Dump(tree.Root(), false))
	}
	if countNodes(tree, syntax.Declaration) != 2 {
		t.Errorf("declarations in body = %d", countNodes(tree, syntax.Declaration))
	}
}

func TestDumpSimpleRule(t *testing.T) {
	tree := expectNoErrors(t, "a{b:c}", syntax.DialectCSS)
	want := strings.Join([]string{
		"SourceFile@0..6",
		"  RuleSet@0..6",
		"    SelectorList@0..1",
		"      Selector@0..1",
		"        CompoundSelector@0..1",
		"          TypeSelector@0..1",
		`            Ident@0..1 "a"`,
		"    Block@1..6",
		`      LBrace@1..2 "{"`,
		"      Declaration@2..5",
		"        Property@2..3",
		`          Ident@2..3 "b"`,
		`        Colon@3..4 ":"`,
		"        Expression@4..5",
		"          Identifier@4..5",
		`            Ident@4..5 "c"`,
		`      RBrace@5..6 "}"`,
		"",
	}, "\n")
	if got := cst.Dump(tree.Root(), false); got != want {
		t.Errorf("Dump:\n%s\nwant:\n%s", got, want)
	}
}

func TestTriviaAttachment(t *testing.T) {
	src := "/* c */ a { }\n"
	tree := expectNoErrors(t, src, syntax.DialectCSS)
	root := tree.Root()
	var first cst.Element
	for e := range root.ChildrenWithTokens() {
		first = e
		break
	}
	if first.Token == nil || first.Token.Kind() != syntax.Comment {
		t.Errorf("leading comment should belong to the file, got %v", first.Kind())
	}
	rs := root.ChildOfKind(syntax.RuleSet)
	if rs.End() != len(src)-1 {
		t.Errorf("trailing newline must stay outside the rule, RuleSet ends at %d", rs.End())
	}
}

func TestSelectors(t *testing.T) {
	cases := []struct {
		src  string
		kind syntax.Kind
	}{
		{"ns|a {}", syntax.NamespacePrefix},
		{"*|* {}", syntax.UniversalSelector},
		{".a.b {}", syntax.ClassSelector},
		{"#id {}", syntax.IdSelector},
		{`a[href^="http" i] {}`, syntax.AttributeSelector},
		{"a:hover {}", syntax.PseudoClass},
		{"p::first-line {}", syntax.PseudoElement},
		{"a:not(.b, #c) {}", syntax.PseudoArgs},
		{"li:nth-child(2n + 1) {}", syntax.PseudoArgs},
		{"a > b ~ c + d {}", syntax.Combinator},
		{"a || b {}", syntax.Combinator},
	}
	for _, tc := range cases {
		tree := expectNoErrors(t, tc.src, syntax.DialectCSS)
		if findNode(tree, tc.kind) == nil {
			t.Errorf("%q: no %s node:\n%s", tc.src, tc.kind, cst.Dump(tree.Root(), false))
		}
	}
}

func TestNotArgumentIsSelectorList(t *testing.T) {
	tree := expectNoErrors(t, "a:not(.b, #c) {}", syntax.DialectCSS)
	args := findNode(tree, syntax.PseudoArgs)
	if args.ChildOfKind(syntax.SelectorList) == nil {
		t.Errorf("PseudoArgs of :not should hold a selector list")
	}
	tree = expectNoErrors(t, "li:nth-child(2n+1) {}", syntax.DialectCSS)
	if findNode(tree, syntax.PseudoArgs).ChildOfKind(syntax.SelectorList) != nil {
		t.Errorf("nth-child argument must stay raw")
	}
}

func TestNestedRulesAndDeclarations(t *testing.T) {
	src := `.card {
  color: red;
  &:hover { color: blue }
  > .title { margin: 0 }
  .icon:focus-visible { outline: none; }
  a:hover{color:green}
}`
	tree := expectNoErrors(t, src, syntax.DialectCSS)
	if got := countNodes(tree, syntax.RuleSet); got != 5 {
		t.Errorf("rulesets = %d, want 5\n%s", got, cst.Dump(tree.Root(), false))
	}
	if got := countNodes(tree, syntax.Declaration); got != 5 {
		t.Errorf("declarations = %d, want 5", got)
	}
}

func TestDeclarationValues(t *testing.T) {
	src := `a {
  font: italic bold 12px/30px Georgia, serif;
  background: url(img.png) no-repeat, linear-gradient(to right, #fff 0%, rgba(0,0,0,.5) 100%);
  width: calc(100% - 2 * var(--gap, 4px));
  unicode-range: U+0025-00FF;
  grid-template-columns: [full-start] 1fr [full-end];
  color: red !important;
  --brand: { anything [goes] here };
  --empty:;
}`
	tree := expectNoErrors(t, src, syntax.DialectCSS)
	for _, k := range []syntax.Kind{
		syntax.Function, syntax.Arguments, syntax.UrlValue, syntax.HexColorValue,
		syntax.NumericValue, syntax.Operator, syntax.UnicodeRangeValue, syntax.Prio,
		syntax.CustomPropertyDeclaration, syntax.CustomPropertyValue,
	} {
		if findNode(tree, k) == nil {
			t.Errorf("no %s node", k)
		}
	}
	if got := countNodes(tree, syntax.CustomPropertyDeclaration); got != 2 {
		t.Errorf("custom properties = %d, want 2", got)
	}
}

func TestFunctionNameToken(t *testing.T) {
	tree := expectNoErrors(t, "a { color: rgb(1, 2, 3) }", syntax.DialectCSS)
	fn := findNode(tree, syntax.Function)
	if tok := fn.TokenOfKind(syntax.FunctionToken); tok == nil || tok.Text() != "rgb" {
		t.Errorf("function name token = %v", tok)
	}
}

func TestCSSAtRules(t *testing.T) {
	cases := []struct {
		src  string
		kind syntax.Kind
	}{
		{`@charset "utf-8";`, syntax.Charset},
		{`@import url("a.css") layer(base) supports(display: grid) screen and (min-width: 600px);`, syntax.Import},
		{`@import "b.css" print, screen;`, syntax.Import},
		{`@namespace svg url(http://www.w3.org/2000/svg);`, syntax.Namespace},
		{`@media screen and (min-width: 600px), print { a { color: red } }`, syntax.MediaFeature},
		{`@media not all and (monochrome) {}`, syntax.MediaQuery},
		{`@media (400px <= width <= 700px) {}`, syntax.MediaFeature},
		{`@media (aspect-ratio: 16/9) {}`, syntax.Ratio},
		{`@media ((color) or (hover)) and (not (pointer: coarse)) {}`, syntax.MediaCondition},
		{`@supports (display: grid) and (not (display: inline-grid)) { a { b: c } }`, syntax.SupportsCondition},
		{`@supports selector(:has(a)) {}`, syntax.Supports},
		{`@font-face { font-family: x; src: url(x.woff2) format("woff2"); }`, syntax.FontFace},
		{`@keyframes spin { from { rotate: 0 } 50%, 75% { rotate: 90deg } to { rotate: 1turn } }`, syntax.KeyframeSelector},
		{`@-webkit-keyframes spin { 0% { opacity: 0 } }`, syntax.Keyframes},
		{`@page :first { margin: 1in; @top-left { content: "x" } }`, syntax.PageMarginBox},
		{`@layer reset, base.components;`, syntax.LayerName},
		{`@layer base { a { color: red } }`, syntax.Layer},
		{`@container sidebar (min-width: 400px) { a { color: red } }`, syntax.Container},
		{`@container style(--dark: true) {}`, syntax.Container},
		{`@property --x { syntax: '<length>'; inherits: false; initial-value: 0px; }`, syntax.PropertyAtRule},
	}
	for _, tc := range cases {
		tree := expectNoErrors(t, tc.src, syntax.DialectCSS)
		if findNode(tree, tc.kind) == nil {
			t.Errorf("%q: no %s node:\n%s", tc.src, tc.kind, cst.Dump(tree.Root(), false))
		}
	}
}

func TestRecovery(t *testing.T) {
	cases := []struct {
		src  string
		want []diag.ErrorKind
	}{
		{"a { color red; }", []diag.ErrorKind{diag.ColonExpected}},
		{"a { b }", []diag.ErrorKind{diag.ColonExpected}},
		{"a { color: red background: blue }", []diag.ErrorKind{diag.SemiColonExpected}},
		{"a {} }", []diag.ErrorKind{diag.RuleOrSelectorExpected}},
		{"} } } a {}", []diag.ErrorKind{diag.RuleOrSelectorExpected}},
		{"a, { }", []diag.ErrorKind{diag.SelectorExpected}},
		{"a[href { }", []diag.ErrorKind{diag.RightSquareBracketExpected}},
		{"a { color: rgb(1, 2; }", []diag.ErrorKind{diag.RightParenthesisExpected}},
		{"a b; c {}", []diag.ErrorKind{diag.LeftCurlyExpected}},
		{"@charset ;", []diag.ErrorKind{diag.StringLiteralExpected}},
		{"@import ;", []diag.ErrorKind{diag.URIOrStringExpected}},
		{"@media {}", []diag.ErrorKind{diag.MediaQueryExpected}},
		{"@supports {}", []diag.ErrorKind{diag.ConditionExpected}},
		{"@keyframes x { 50 { } }", []diag.ErrorKind{diag.PercentageExpected}},
		{"@page { foo { } }", []diag.ErrorKind{diag.PageDirectiveOrDeclarationExpected}},
		{"@charset \"x\" a {}", []diag.ErrorKind{diag.SemiColonExpected}},
		{"a { color: red !ie; }", []diag.ErrorKind{diag.UnknownKeyword}},
		{"@mixin m {}", []diag.ErrorKind{diag.UnknownAtRule}},
	}
	for _, tc := range cases {
		expectErrors(t, tc.src, syntax.DialectCSS, tc.want...)
	}
}

func TestLexicalErrorsAreKept(t *testing.T) {
	tree := expectErrors(t, "a { content: \"open\n}", syntax.DialectCSS, diag.UnterminatedString)
	if findNode(tree, syntax.StringLiteral) == nil {
		t.Errorf("bad string should still be a value:\n%s", cst.Dump(tree.Root(), false))
	}
}

func TestMaxErrors(t *testing.T) {
	src := strings.Repeat("a { b } ", 10)
	tree := parser.Parse(lexer.Tokenize(src, syntax.DialectCSS), parser.Options{MaxErrors: 3})
	if got := len(tree.Errors()); got != 3 {
		t.Errorf("errors = %d, want 3", got)
	}
	if tree.Text() != src {
		t.Error("text lost after error cap")
	}
}

func TestSharedCache(t *testing.T) {
	cache := cst.NewNodeCache()
	src := "a{color:red}"
	t1 := parser.Parse(lexer.Tokenize(src, syntax.DialectCSS), parser.Options{Cache: cache})
	t2 := parser.Parse(lexer.Tokenize(src, syntax.DialectCSS), parser.Options{Cache: cache})
	d1 := t1.Root().ChildOfKind(syntax.RuleSet).ChildOfKind(syntax.Block).ChildOfKind(syntax.Declaration)
	d2 := t2.Root().ChildOfKind(syntax.RuleSet).ChildOfKind(syntax.Block).ChildOfKind(syntax.Declaration)
	if d1.Green() != d2.Green() {
		t.Error("identical declarations should share a green node")
	}
}

func TestLeadingTriviaBelongsToRoot(t *testing.T) {
	cases := []struct {
		src     string
		dialect syntax.Dialect
		first   syntax.Kind
	}{
		{" ", syntax.DialectCSS, syntax.Whitespace},
		{"\n", syntax.DialectCSS, syntax.Whitespace},
		{"/* x */", syntax.DialectCSS, syntax.Comment},
		{"/* x */\na { b: c }", syntax.DialectCSS, syntax.Comment},
		{" ", syntax.DialectSCSS, syntax.Whitespace},
		{"/* x */", syntax.DialectSCSS, syntax.Comment},
		{"// x\n", syntax.DialectSCSS, syntax.LineComment},
		{"// x\n$a: 1px;\n.b { c: $a; }", syntax.DialectSCSS, syntax.LineComment},
		{"\n", syntax.DialectLESS, syntax.Whitespace},
		{"/* x */", syntax.DialectLESS, syntax.Comment},
		{"// x\n", syntax.DialectLESS, syntax.LineComment},
		{"\t// x\n@a: 1px;\n.b { c: @a; }", syntax.DialectLESS, syntax.Whitespace},
	}
	for _, tc := range cases {
		tree := expectNoErrors(t, tc.src, tc.dialect)
		root := tree.Root()
		if root.Kind() != syntax.SourceFile || root.Offset() != 0 || root.End() != len(tc.src) {
			t.Errorf("%s %q: root %s %d..%d", tc.dialect, tc.src, root.Kind(), root.Offset(), root.End())
			continue
		}
		var first cst.Element
		for e := range root.ChildrenWithTokens() {
			first = e
			break
		}
		if first.Token == nil || first.Token.Kind() != tc.first {
			t.Errorf("%s %q: root does not start with %s:\n%s", tc.dialect, tc.src, tc.first, cst.Dump(root, true))
		}
	}
}

func TestKnownGenericAtRuleBodiesInEveryDialect(t *testing.T) {
	srcs := []string{
		"@counter-style thumbs { system: cyclic; symbols: a b; suffix: \" \"; }",
		"@font-palette-values --warm { font-family: Bixa; base-palette: 1; }",
		"@viewport { width: device-width; }",
	}
	for _, d := range dialects {
		for _, src := range srcs {
			tree := expectNoErrors(t, src, d)
			if n := countNodes(tree, syntax.Declaration); n < 1 {
				t.Errorf("%s %q: %d declarations", d, src, n)
			}
			if findNode(tree, syntax.RuleSet) != nil {
				t.Errorf("%s %q: descriptors parsed as a ruleset:\n%s", d, src, cst.Dump(tree.Root(), false))
			}
		}
	}
}

func TestKnownGenericAtRuleKeepsNestedRules(t *testing.T) {
	tree := expectNoErrors(t, "@scope (.card) { img { border: 0; } .title { color: red; } }", syntax.DialectCSS)
	if n := countNodes(tree, syntax.RuleSet); n != 2 {
		t.Errorf("rulesets = %d, want 2:\n%s", n, cst.Dump(tree.Root(), false))
	}
}
