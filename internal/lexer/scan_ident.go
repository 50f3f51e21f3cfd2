package lexer

import (
	"cascade/internal/diag"
	"cascade/internal/syntax"
)

// scanIdentLike: идентификатор, функция (идентификатор вплотную к '(') или url(...).
func (lx *Lexer) scanIdentLike() Token {
	start := lx.cursor.Mark()
	lx.consumeName()
	name := lx.text(start)

	if lx.cursor.Peek() == '(' {
		if asciiLower(name) == "url" {
			if tok, ok := lx.scanURL(start); ok {
				return tok
			}
		}
		return lx.emit(start, syntax.Ident, syntax.FunctionToken)
	}
	return lx.emit(start, syntax.Ident, syntax.Keyword(name))
}

// scanURL пробует разобрать url(...) без кавычек как один токен.
// Если внутри строка или интерполяция, возвращает false: тогда url: обычная функция.
func (lx *Lexer) scanURL(start Mark) (Token, bool) {
	open := lx.cursor.Mark()
	lx.cursor.Bump() // '('
	for isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if b := lx.cursor.Peek(); b == '"' || b == '\'' || lx.cursor.EOF() || lx.urlHasInterpolation() {
		lx.cursor.Reset(open)
		return Token{}, false
	}

	for {
		if lx.cursor.EOF() {
			s, e := lx.cursor.From(start)
			lx.errLex(diag.BadUrl, s, e, "unterminated url")
			return lx.emit(start, syntax.Url, syntax.None), true
		}
		b := lx.cursor.Peek()
		switch {
		case b == ')':
			lx.cursor.Bump()
			return lx.emit(start, syntax.Url, syntax.None), true
		case isSpace(b):
			for isSpace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			if lx.cursor.EOF() || lx.cursor.Peek() == ')' {
				continue
			}
			return lx.badURL(start), true
		case b == '"' || b == '\'' || b == '(' || isNonPrintable(b):
			return lx.badURL(start), true
		case b == '\\':
			if !lx.validEscapeAt(0) {
				return lx.badURL(start), true
			}
			lx.consumeEscape()
		default:
			lx.cursor.Bump()
		}
	}
}

// badURL поглощает остаток до ')' или конца текста.
func (lx *Lexer) badURL(start Mark) Token {
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == ')' {
			lx.cursor.Bump()
			break
		}
		if lx.validEscapeAt(0) {
			lx.consumeEscape()
			continue
		}
		lx.cursor.Bump()
	}
	s, e := lx.cursor.From(start)
	lx.errLex(diag.BadUrl, s, e, "malformed url")
	return lx.emit(start, syntax.BadUrl, syntax.None)
}

// urlHasInterpolation: в SCSS/LESS url($var), url(#{...}), url(@{...}): это вызов функции.
func (lx *Lexer) urlHasInterpolation() bool {
	if !lx.opts.Dialect.IsPreprocessor() {
		return false
	}
	for i := lx.cursor.Off; i < lx.cursor.Limit; i++ {
		switch lx.src[i] {
		case ')':
			return false
		case '$', '@':
			return true
		case '#':
			if i+1 < lx.cursor.Limit && lx.src[i+1] == '{' {
				return true
			}
		}
	}
	return false
}

func isNonPrintable(b byte) bool {
	return b <= 0x08 || b == 0x0B || (b >= 0x0E && b <= 0x1F) || b == 0x7F
}

// scanHash: #{ (SCSS), #name, либо одиночный '#'.
func (lx *Lexer) scanHash() Token {
	start := lx.cursor.Mark()
	if lx.opts.Dialect == syntax.DialectSCSS && lx.try2('#', '{') {
		return lx.emit(start, syntax.HashLBrace, syntax.None)
	}
	if !isNameChar(lx.cursor.PeekAt(1)) && !lx.validEscapeAt(1) {
		lx.cursor.Bump()
		return lx.emit(start, syntax.Hash, syntax.None)
	}
	isID := lx.startsIdentAt(1)
	lx.cursor.Bump() // '#'
	nameStart := lx.cursor.Mark()
	lx.consumeName()
	name := lx.text(nameStart)

	switch {
	case isHexColor(name):
		return lx.emit(start, syntax.HashToken, syntax.HexColor)
	case isID:
		return lx.emit(start, syntax.HashToken, syntax.IdHash)
	default:
		return lx.emit(start, syntax.HashToken, syntax.UnrestrictedHash)
	}
}

func isHexColor(name string) bool {
	switch len(name) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isHex(name[i]) {
			return false
		}
	}
	return true
}

// scanAt: @{ (LESS), @name с контекстной директивой, либо одиночный '@'.
func (lx *Lexer) scanAt() Token {
	start := lx.cursor.Mark()
	if lx.opts.Dialect == syntax.DialectLESS && lx.try2('@', '{') {
		return lx.emit(start, syntax.AtLBrace, syntax.None)
	}
	if !lx.startsIdentAt(1) {
		lx.cursor.Bump()
		return lx.emit(start, syntax.At, syntax.None)
	}
	lx.cursor.Bump() // '@'
	nameStart := lx.cursor.Mark()
	lx.consumeName()
	return lx.emit(start, syntax.AtKeyword, syntax.Directive(lx.text(nameStart), lx.opts.Dialect))
}

// startsUnicodeRange: u+ за которым hex или '?'
func (lx *Lexer) startsUnicodeRange() bool {
	if lx.cursor.PeekAt(1) != '+' {
		return false
	}
	b := lx.cursor.PeekAt(2)
	return isHex(b) || b == '?'
}

func (lx *Lexer) scanUnicodeRange() Token {
	start := lx.cursor.Mark()
	lx.cursor.Off += 2 // u+
	n := 0
	for n < 6 && isHex(lx.cursor.Peek()) {
		lx.cursor.Bump()
		n++
	}
	wild := false
	for n < 6 && lx.cursor.Peek() == '?' {
		lx.cursor.Bump()
		n++
		wild = true
	}
	if !wild && lx.cursor.Peek() == '-' && isHex(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		for i := 0; i < 6 && isHex(lx.cursor.Peek()); i++ {
			lx.cursor.Bump()
		}
	}
	return lx.emit(start, syntax.UnicodeRange, syntax.None)
}
