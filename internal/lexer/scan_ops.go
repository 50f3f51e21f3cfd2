package lexer

import (
	"fmt"

	"cascade/internal/diag"
	"cascade/internal/syntax"
)

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
// Часть сочетаний есть только в препроцессорах (..., ==, !=, =<).
func (lx *Lexer) scanOperatorOrPunct() Token {
	start := lx.cursor.Mark()
	emit := func(k syntax.Kind) Token {
		return lx.emit(start, k, syntax.None)
	}
	d := lx.opts.Dialect

	switch {
	case d.IsPreprocessor() && lx.try3('.', '.', '.'):
		return emit(syntax.Ellipsis)
	case lx.try2(':', ':'):
		return emit(syntax.ColonColon)
	case lx.try2('|', '|'):
		return emit(syntax.PipePipe)
	case lx.try2('~', '='):
		return emit(syntax.TildeEq)
	case lx.try2('|', '='):
		return emit(syntax.PipeEq)
	case lx.try2('^', '='):
		return emit(syntax.CaretEq)
	case lx.try2('$', '='):
		return emit(syntax.DollarEq)
	case lx.try2('*', '='):
		return emit(syntax.StarEq)
	case lx.try2('<', '='):
		return emit(syntax.LtEq)
	case lx.try2('>', '='):
		return emit(syntax.GtEq)
	case d.IsPreprocessor() && lx.try2('=', '='):
		return emit(syntax.EqEq)
	case d == syntax.DialectSCSS && lx.try2('!', '='):
		return emit(syntax.BangEq)
	case d == syntax.DialectLESS && lx.try2('=', '<'):
		return emit(syntax.EqLt)
	}

	// односимвольные
	ch := lx.cursor.Peek()
	if k, ok := singlePunct[ch]; ok {
		lx.cursor.Bump()
		return emit(k)
	}

	lx.bumpRune()
	s, e := lx.cursor.From(start)
	lx.errLex(diag.UnexpectedCharacter, s, e, fmt.Sprintf("unexpected character %q", lx.src[s:e]))
	return emit(syntax.ErrorToken)
}

var singlePunct = map[byte]syntax.Kind{
	';': syntax.Semicolon,
	',': syntax.Comma,
	':': syntax.Colon,
	'(': syntax.LParen,
	')': syntax.RParen,
	'[': syntax.LBracket,
	']': syntax.RBracket,
	'{': syntax.LBrace,
	'}': syntax.RBrace,
	'.': syntax.Dot,
	'#': syntax.Hash,
	'&': syntax.Amp,
	'>': syntax.Gt,
	'+': syntax.Plus,
	'-': syntax.Minus,
	'~': syntax.Tilde,
	'*': syntax.Star,
	'/': syntax.Slash,
	'=': syntax.Eq,
	'!': syntax.Bang,
	'%': syntax.Percent,
	'|': syntax.Pipe,
	'<': syntax.Lt,
	'@': syntax.At,
	'$': syntax.Dollar,
	'?': syntax.Question,
	'^': syntax.Caret,
}
