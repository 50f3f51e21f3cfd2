package dialect

import (
	"strings"

	"cascade/internal/lexer"
	"cascade/internal/syntax"
)

type directiveSignal struct {
	Dialect syntax.Dialect
	Score   int
}

var directiveSignals = map[string]directiveSignal{
	"@mixin":    {syntax.DialectSCSS, 5},
	"@include":  {syntax.DialectSCSS, 5},
	"@extend":   {syntax.DialectSCSS, 4},
	"@use":      {syntax.DialectSCSS, 5},
	"@forward":  {syntax.DialectSCSS, 5},
	"@function": {syntax.DialectSCSS, 5},
	"@return":   {syntax.DialectSCSS, 4},
	"@each":     {syntax.DialectSCSS, 4},
	"@if":       {syntax.DialectSCSS, 3},
	"@else":     {syntax.DialectSCSS, 3},
	"@for":      {syntax.DialectSCSS, 3},
	"@while":    {syntax.DialectSCSS, 3},
	"@content":  {syntax.DialectSCSS, 4},
	"@at-root":  {syntax.DialectSCSS, 4},
	"@debug":    {syntax.DialectSCSS, 3},
	"@warn":     {syntax.DialectSCSS, 3},
	"@error":    {syntax.DialectSCSS, 3},
	"@plugin":   {syntax.DialectLESS, 5},
}

// Collect scans a CSS-mode token stream for preprocessor syntax.
func Collect(lexed *lexer.Lexed) *Evidence {
	e := NewEvidence()
	n := lexed.Len()
	adjacent := func(i int) bool {
		return i+1 < n && lexed.End(i) == lexed.Start(i+1)
	}
	nextSignificant := func(i int) int {
		for i++; i < n && lexed.Kind(i).IsTrivia(); i++ {
		}
		return i
	}
	prevSignificant := func(i int) int {
		for i--; i >= 0 && lexed.Kind(i).IsTrivia(); i-- {
		}
		return i
	}
	add := func(d syntax.Dialect, score int, reason string, i int) {
		e.Add(Hint{Dialect: d, Score: score, Reason: reason, Offset: lexed.Start(i)})
	}

	for i := 0; i < n; i++ {
		switch lexed.Kind(i) {
		case syntax.AtKeyword:
			name := strings.ToLower(lexed.Text(i))
			if sig, ok := directiveSignals[name]; ok {
				add(sig.Dialect, sig.Score, "directive `"+name+"`", i)
				continue
			}
			// @var: value; известные CSS-директивы (@page :first) не в счёт
			if lexed.ContextualKind(i) != syntax.None {
				continue
			}
			if j := nextSignificant(i); j < n && lexed.Kind(j) == syntax.Colon {
				add(syntax.DialectLESS, 4, "less variable declaration", i)
			}
		case syntax.At:
			if adjacent(i) && lexed.Kind(i+1) == syntax.LBrace {
				add(syntax.DialectLESS, 4, "less interpolation `@{`", i)
			}
		case syntax.Hash:
			if adjacent(i) && lexed.Kind(i+1) == syntax.LBrace {
				add(syntax.DialectSCSS, 4, "scss interpolation `#{`", i)
			}
		case syntax.Dollar:
			if adjacent(i) && lexed.Kind(i+1) == syntax.Ident {
				add(syntax.DialectSCSS, 3, "scss variable `$name`", i)
			}
		case syntax.Percent:
			if adjacent(i) && lexed.Kind(i+1) == syntax.Ident {
				add(syntax.DialectSCSS, 3, "scss placeholder `%name`", i)
			}
		case syntax.Tilde:
			if adjacent(i) && lexed.Kind(i+1) == syntax.String {
				add(syntax.DialectLESS, 3, "less escape `~\"...\"`", i)
			}
		case syntax.Ident:
			text := strings.ToLower(lexed.Text(i))
			switch {
			case text == "when":
				if j := prevSignificant(i); j >= 0 && lexed.Kind(j) == syntax.RParen {
					add(syntax.DialectLESS, 3, "less guard `when`", i)
				}
			case text == "extend" && lexed.ContextualKind(i) == syntax.FunctionToken:
				if i > 0 && lexed.Kind(i-1) == syntax.Colon {
					add(syntax.DialectLESS, 4, "less `:extend()`", i)
				}
			}
		case syntax.Slash:
			// строчный комментарий есть в обоих препроцессорах
			if adjacent(i) && lexed.Kind(i+1) == syntax.Slash {
				add(syntax.DialectSCSS, 1, "line comment", i)
				add(syntax.DialectLESS, 1, "line comment", i)
			}
		}
	}
	return e
}

// Guess classifies text. Plain CSS is the answer when nothing points
// elsewhere.
func Guess(text string) Classification {
	return Classifier{}.Classify(Collect(lexer.Tokenize(text, syntax.DialectCSS)))
}
