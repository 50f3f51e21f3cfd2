package lexer_test

import (
	"strings"
	"testing"

	"cascade/internal/diag"
	"cascade/internal/lexer"
	"cascade/internal/syntax"
)

type tok struct {
	kind syntax.Kind
	ctx  syntax.Kind
	text string
}

// significant возвращает все не-trivia токены
func significant(l *lexer.Lexed) []tok {
	var out []tok
	for i, tk := range l.Tokens() {
		if tk.Kind.IsTrivia() {
			continue
		}
		out = append(out, tok{tk.Kind, tk.Ctx, l.Text(i)})
	}
	return out
}

func join(l *lexer.Lexed) string {
	var b strings.Builder
	for i := 0; i < l.Len(); i++ {
		b.WriteString(l.Text(i))
	}
	return b.String()
}

func expectTokens(t *testing.T, src string, d syntax.Dialect, want []tok) {
	t.Helper()
	l := lexer.Tokenize(src, d)
	got := significant(l)
	if len(got) != len(want) {
		t.Fatalf("%q: got %d tokens %v, want %d %v", src, len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%q: token %d = %v, want %v", src, i, got[i], want[i])
		}
	}
}

func TestRuleset(t *testing.T) {
	expectTokens(t, "a { color: red; }", syntax.DialectCSS, []tok{
		{syntax.Ident, syntax.None, "a"},
		{syntax.LBrace, syntax.None, "{"},
		{syntax.Ident, syntax.None, "color"},
		{syntax.Colon, syntax.None, ":"},
		{syntax.Ident, syntax.None, "red"},
		{syntax.Semicolon, syntax.None, ";"},
		{syntax.RBrace, syntax.None, "}"},
	})
}

func TestNumbers(t *testing.T) {
	expectTokens(t, "10px 1.5em 50% -3 +.5 1e3 2fr 90DEG 3foo", syntax.DialectCSS, []tok{
		{syntax.Dimension, syntax.DimLength, "10px"},
		{syntax.Dimension, syntax.DimLength, "1.5em"},
		{syntax.Percentage, syntax.None, "50%"},
		{syntax.Number, syntax.None, "-3"},
		{syntax.Number, syntax.None, "+.5"},
		{syntax.Number, syntax.None, "1e3"},
		{syntax.Dimension, syntax.DimFlex, "2fr"},
		{syntax.Dimension, syntax.DimAngle, "90DEG"},
		{syntax.Dimension, syntax.UnknownDimension, "3foo"},
	})
}

func TestHashes(t *testing.T) {
	expectTokens(t, "#fff #main #1a #-x #", syntax.DialectCSS, []tok{
		{syntax.HashToken, syntax.HexColor, "#fff"},
		{syntax.HashToken, syntax.IdHash, "#main"},
		{syntax.HashToken, syntax.UnrestrictedHash, "#1a"},
		{syntax.HashToken, syntax.IdHash, "#-x"},
		{syntax.Hash, syntax.None, "#"},
	})
}

func TestFunctionsAndURLs(t *testing.T) {
	expectTokens(t, `rgb(1) url(a.png) url("b.png") url( c d )`, syntax.DialectCSS, []tok{
		{syntax.Ident, syntax.FunctionToken, "rgb"},
		{syntax.LParen, syntax.None, "("},
		{syntax.Number, syntax.None, "1"},
		{syntax.RParen, syntax.None, ")"},
		{syntax.Url, syntax.None, "url(a.png)"},
		{syntax.Ident, syntax.FunctionToken, "url"},
		{syntax.LParen, syntax.None, "("},
		{syntax.String, syntax.None, `"b.png"`},
		{syntax.RParen, syntax.None, ")"},
		{syntax.BadUrl, syntax.None, "url( c d )"},
	})
}

func TestAtKeywords(t *testing.T) {
	expectTokens(t, "@media @mixin @-webkit-keyframes @foo", syntax.DialectCSS, []tok{
		{syntax.AtKeyword, syntax.AtMedia, "@media"},
		{syntax.AtKeyword, syntax.None, "@mixin"},
		{syntax.AtKeyword, syntax.AtKeyframes, "@-webkit-keyframes"},
		{syntax.AtKeyword, syntax.None, "@foo"},
	})
	expectTokens(t, "@mixin", syntax.DialectSCSS, []tok{
		{syntax.AtKeyword, syntax.AtMixin, "@mixin"},
	})
}

func TestKeywordsAndOperators(t *testing.T) {
	expectTokens(t, "and NOT [a|=b] a::before <!-- -->", syntax.DialectCSS, []tok{
		{syntax.Ident, syntax.KwAnd, "and"},
		{syntax.Ident, syntax.KwNot, "NOT"},
		{syntax.LBracket, syntax.None, "["},
		{syntax.Ident, syntax.None, "a"},
		{syntax.PipeEq, syntax.None, "|="},
		{syntax.Ident, syntax.None, "b"},
		{syntax.RBracket, syntax.None, "]"},
		{syntax.Ident, syntax.None, "a"},
		{syntax.ColonColon, syntax.None, "::"},
		{syntax.Ident, syntax.None, "before"},
		{syntax.CDO, syntax.None, "<!--"},
		{syntax.CDC, syntax.None, "-->"},
	})
}

func TestSCSSExtensions(t *testing.T) {
	expectTokens(t, "$a: 1; // note\n#{$b} ... == !=", syntax.DialectSCSS, []tok{
		{syntax.DollarName, syntax.None, "$a"},
		{syntax.Colon, syntax.None, ":"},
		{syntax.Number, syntax.None, "1"},
		{syntax.Semicolon, syntax.None, ";"},
		{syntax.HashLBrace, syntax.None, "#{"},
		{syntax.DollarName, syntax.None, "$b"},
		{syntax.RBrace, syntax.None, "}"},
		{syntax.Ellipsis, syntax.None, "..."},
		{syntax.EqEq, syntax.None, "=="},
		{syntax.BangEq, syntax.None, "!="},
	})
}

func TestLESSExtensions(t *testing.T) {
	expectTokens(t, "@a: ~\"x\"; @{b} =< url(@c)", syntax.DialectLESS, []tok{
		{syntax.AtKeyword, syntax.None, "@a"},
		{syntax.Colon, syntax.None, ":"},
		{syntax.Tilde, syntax.None, "~"},
		{syntax.String, syntax.None, `"x"`},
		{syntax.Semicolon, syntax.None, ";"},
		{syntax.AtLBrace, syntax.None, "@{"},
		{syntax.Ident, syntax.None, "b"},
		{syntax.RBrace, syntax.None, "}"},
		{syntax.EqLt, syntax.None, "=<"},
		{syntax.Ident, syntax.FunctionToken, "url"},
		{syntax.LParen, syntax.None, "("},
		{syntax.AtKeyword, syntax.None, "@c"},
		{syntax.RParen, syntax.None, ")"},
	})
}

func TestLineCommentOnlyInPreprocessors(t *testing.T) {
	l := lexer.Tokenize("// x", syntax.DialectCSS)
	if l.Kind(0) != syntax.Slash {
		t.Errorf("CSS: first token = %v, want Slash", l.Kind(0))
	}
	l = lexer.Tokenize("// x", syntax.DialectLESS)
	if l.Len() != 1 || l.Kind(0) != syntax.LineComment {
		t.Errorf("LESS: got %d tokens, first %v", l.Len(), l.Kind(0))
	}
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		src  string
		want diag.ErrorKind
		last syntax.Kind
	}{
		{`"abc`, diag.UnterminatedString, syntax.String},
		{"'ab\nc'", diag.UnterminatedString, syntax.BadString},
		{"/* open", diag.UnterminatedComment, syntax.Comment},
		{"url(a b)", diag.BadUrl, syntax.BadUrl},
		{"a ` b", diag.UnexpectedCharacter, syntax.ErrorToken},
	}
	for _, tt := range tests {
		l := lexer.Tokenize(tt.src, syntax.DialectCSS)
		errs := l.Errors()
		if len(errs) == 0 || errs[0].Kind != tt.want {
			t.Errorf("%q: errors = %+v, want %v", tt.src, errs, tt.want)
			continue
		}
		found := false
		for i := 0; i < l.Len(); i++ {
			if l.Kind(i) == tt.last {
				found = true
			}
		}
		if !found {
			t.Errorf("%q: no %v token", tt.src, tt.last)
		}
		if join(l) != tt.src {
			t.Errorf("%q: round-trip mismatch %q", tt.src, join(l))
		}
	}
}

func TestReporterReceivesErrors(t *testing.T) {
	bag := diag.NewBag(0)
	l := lexer.New("a { b: \"x }", lexer.Options{Reporter: &lexer.BagReporter{Bag: bag}}).All()
	if bag.Len() != 1 || len(l.Errors()) != 1 {
		t.Fatalf("bag = %v, errors = %v", bag.Items(), l.Errors())
	}
	if m := bag.Items()[0]; m.Kind != diag.UnterminatedString || m.Level != diag.LevelError {
		t.Errorf("marker = %v", m)
	}
}

func TestLosslessAndContiguous(t *testing.T) {
	inputs := []string{
		"",
		"a{}",
		"\uFEFF@charset \"utf-8\";\r\n.a > b ~ c + d { x: y !important }",
		"@media (min-width: 100px) and (max-width: 200px) { a { b: c } }",
		"$map: (a: 1, b: 2); @each $k, $v in $map { .#{$k} { w: $v * 2px } }",
		".m(@a; @b: 2) when (iscolor(@a)) { @r: { color: red }; }",
		"\\31 0 \\\n u+0-7F U+4?? --x: { a }",
		"\x00\x01 \xff\xfe é",
		"url(",
		"'",
		"#",
		"@",
		"\\",
	}
	for _, d := range []syntax.Dialect{syntax.DialectCSS, syntax.DialectSCSS, syntax.DialectLESS} {
		for _, src := range inputs {
			l := lexer.Tokenize(src, d)
			if got := join(l); got != src {
				t.Errorf("%v %q: round-trip %q", d, src, got)
			}
			for i := 0; i < l.Len(); i++ {
				if l.Start(i) >= l.End(i) {
					t.Errorf("%v %q: empty token %d (%v)", d, src, i, l.Kind(i))
				}
			}
		}
	}
}

func TestToInput(t *testing.T) {
	l := lexer.Tokenize("a  { /* c */ b:c }", syntax.DialectCSS)
	in, raw := l.ToInput()
	if in.Len() != 6 || len(raw) != 6 {
		t.Fatalf("Len = %d, raw = %v", in.Len(), raw)
	}
	if in.Kind(0) != syntax.Ident || !in.WhitespaceAfter(0) {
		t.Errorf("token 0: %v ws=%v", in.Kind(0), in.WhitespaceAfter(0))
	}
	if in.Kind(2) != syntax.Ident || in.WhitespaceAfter(2) {
		t.Errorf("token 2 (b): %v ws=%v", in.Kind(2), in.WhitespaceAfter(2))
	}
	if in.Kind(6) != syntax.EOF {
		t.Errorf("past end = %v", in.Kind(6))
	}
	if l.Text(raw[2]) != "b" {
		t.Errorf("raw map broken: %q", l.Text(raw[2]))
	}
}

func TestBOMIsTrivia(t *testing.T) {
	l := lexer.Tokenize("\xEF\xBB\xBF@charset \"utf-8\";", syntax.DialectCSS)
	if l.Kind(0) != syntax.Whitespace || l.Text(0) != "\xEF\xBB\xBF" {
		t.Fatalf("first token = %v %q", l.Kind(0), l.Text(0))
	}
	if l.ContextualKind(1) != syntax.AtCharset {
		t.Errorf("second token ctx = %v", l.ContextualKind(1))
	}
}
