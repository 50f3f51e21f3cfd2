package parser_test

import (
	"testing"

	"cascade/internal/cst"
	"cascade/internal/diag"
	"cascade/internal/syntax"
)

const scssSample = `// модули
@use "sass:math" as m;
@use "config" with ($primary: blue, $secondary: red);
@forward "src/list" as list-* hide list-reset, $horizontal-list-gap;
$base: 16px !default;
$map: (key1: value1, key2: value2);
%placeholder { color: red; }
@mixin theme($theme: DarkGray, $args...) { background: $theme; }
@function double($n) { @return $n * 2; }
.info {
  @include theme;
  @include theme($theme: DarkRed);
  @extend %placeholder;
  width: math.div(100%, 3);
  height: m.$unit;
  font: { family: $font; size: 12px; }
  &__elem { color: red; }
  #{$prop}-top: 1px;
  @if $a == 1 { color: red; } @else if $a > 2 { color: blue; } @else { color: green; }
  @each $name, $glyph in $icons { .icon-#{$name}:before { content: $glyph; } }
  @for $i from 1 through 3 { .item-#{$i} { width: 2em * $i; } }
  @while $i > 0 { .w-#{$i} { width: 10px * $i; } }
  @at-root .child { color: red; }
  @debug "x: #{$x}";
}
@include breakpoint(md) { .a { b: c } }
`

const lessSample = `// переменные и миксины
@import (reference, optional) "foo.less";
@plugin "my-plugin";
@color: #333;
@min768: ~"(min-width: 768px)";
@detached: { background: red; };
.mixin(@a; @b: 2) when (iscolor(@a)) and (@b > 1) { color: @a; }
.bordered(@width: 2px) { border: @width solid black; }
#ns { .m() { color: blue } }
.guard when (@mode = dark) { color: white; }
.a:extend(.b all) { margin: 0; }
.c {
  .bordered(4px);
  .bordered;
  #ns > .m();
  #ns.m();
  &:extend(.d);
  @detached();
  width: (@a + 5) * 2;
  height: ~"calc(100% - @{h})";
  @r: @@name;
  .@{name}-x { color: red; }
  @media @phone { color: red; }
}
`

func TestSCSSSample(t *testing.T) {
	tree := expectNoErrors(t, scssSample, syntax.DialectSCSS)
	for _, k := range []syntax.Kind{
		syntax.Use, syntax.ModuleConfig, syntax.Forward, syntax.ForwardVisibility,
		syntax.VariableDeclaration, syntax.VariableFlag, syntax.MapEntry,
		syntax.PlaceholderSelector, syntax.MixinDeclaration, syntax.ParameterList,
		syntax.FunctionDeclaration, syntax.ReturnStatement, syntax.MixinReference,
		syntax.ExtendDirective, syntax.ModuleMember, syntax.NestedProperties,
		syntax.Interpolation, syntax.IfStatement, syntax.ElseClause, syntax.EachStatement,
		syntax.ForStatement, syntax.WhileStatement, syntax.AtRoot, syntax.DebugDirective,
	} {
		if findNode(tree, k) == nil {
			t.Errorf("no %s node", k)
		}
	}
	if got := countNodes(tree, syntax.ElseClause); got != 2 {
		t.Errorf("else clauses = %d, want 2", got)
	}
}

func TestSCSSForBoundsStopAtKeyword(t *testing.T) {
	tree := expectNoErrors(t, "@for $i from 1 to $n { }", syntax.DialectSCSS)
	f := findNode(tree, syntax.ForStatement)
	if f.TokenOfKind(syntax.KwTo) == nil || f.TokenOfKind(syntax.KwFrom) == nil {
		t.Errorf("for keywords not tagged:\n%s", cst.Dump(f, false))
	}
	n := 0
	for c := range f.Children() {
		if c.Kind() == syntax.Expression {
			n++
		}
	}
	if n != 2 {
		t.Errorf("bounds = %d expressions, want 2", n)
	}
}

func TestSCSSRecovery(t *testing.T) {
	cases := []struct {
		src  string
		want []diag.ErrorKind
	}{
		{"$a: ;", []diag.ErrorKind{diag.VariableValueExpected}},
		{"$x: 1 !foo;", []diag.ErrorKind{diag.UnknownKeyword}},
		{"@each $x {}", []diag.ErrorKind{diag.InExpected}},
		{"@for $i {}", []diag.ErrorKind{diag.FromExpected}},
		{"@for $i from 1 {}", []diag.ErrorKind{diag.ThroughOrToExpected}},
		{"@if {}", []diag.ErrorKind{diag.ExpressionExpected}},
		{`@use "a" as ;`, []diag.ErrorKind{diag.IdentifierOrWildcardExpected}},
		{`@use x;`, []diag.ErrorKind{diag.StringLiteralExpected, diag.SemiColonExpected}},
		{`@forward "a" as b;`, []diag.ErrorKind{diag.WildcardExpected}},
		{`@forward "a" show ;`, []diag.ErrorKind{diag.IdentifierOrVariableExpected}},
		{"@mixin m(1) {}", []diag.ErrorKind{diag.VariableNameExpected, diag.RightParenthesisExpected}},
		{"@function f($a) { @return; }", []diag.ErrorKind{diag.ExpressionExpected}},
		{".a { @extend ; }", []diag.ErrorKind{diag.SelectorExpected}},
		{"a { b: #{$x; }", []diag.ErrorKind{diag.RightCurlyExpected}},
		{`@plugin "x";`, []diag.ErrorKind{diag.UnknownAtRule}},
	}
	for _, tc := range cases {
		expectErrors(t, tc.src, syntax.DialectSCSS, tc.want...)
	}
}

func TestLESSSample(t *testing.T) {
	tree := expectNoErrors(t, lessSample, syntax.DialectLESS)
	for _, k := range []syntax.Kind{
		syntax.ImportOptions, syntax.Plugin, syntax.VariableDeclaration, syntax.EscapedValue,
		syntax.DetachedRuleset, syntax.DetachedRulesetCall, syntax.MixinDeclaration,
		syntax.Guard, syntax.GuardCondition, syntax.MixinReference, syntax.ExtendDirective,
		syntax.VariableRef, syntax.Interpolation, syntax.Media,
	} {
		if findNode(tree, k) == nil {
			t.Errorf("no %s node", k)
		}
	}
	if got := countNodes(tree, syntax.MixinReference); got != 4 {
		t.Errorf("mixin calls = %d, want 4", got)
	}
	if got := countNodes(tree, syntax.ExtendDirective); got != 2 {
		t.Errorf("extends = %d, want 2", got)
	}
}

func TestLESSRecovery(t *testing.T) {
	cases := []struct {
		src  string
		want []diag.ErrorKind
	}{
		{"@x: ;", []diag.ErrorKind{diag.VariableValueExpected}},
		{".m() when { }", []diag.ErrorKind{diag.LeftParenthesisExpected}},
		{"@plugin ;", []diag.ErrorKind{diag.URIOrStringExpected}},
		{`@import (reference "a.less";`, []diag.ErrorKind{diag.RightParenthesisExpected, diag.URIOrStringExpected}},
		{"@include x;", []diag.ErrorKind{diag.UnknownAtRule}},
	}
	for _, tc := range cases {
		expectErrors(t, tc.src, syntax.DialectLESS, tc.want...)
	}
}

func TestPreprocessorDirectivesUnknownInCSS(t *testing.T) {
	expectErrors(t, "@include x;", syntax.DialectCSS, diag.UnknownAtRule)
	expectErrors(t, `@use "a";`, syntax.DialectCSS, diag.UnknownAtRule)
	expectNoErrors(t, `@use "a";`, syntax.DialectSCSS)
}
