package lexer

import (
	"cascade/internal/diag"
	"cascade/internal/syntax"
)

// "..." и '...'. Экранированный перевод строки продолжает строку,
// неэкранированный делает BadString (сам перевод строки не поглощается).
func (lx *Lexer) scanString() Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == quote:
			lx.cursor.Bump()
			return lx.emit(start, syntax.String, syntax.None)
		case isNewline(b):
			s, e := lx.cursor.From(start)
			lx.errLex(diag.UnterminatedString, s, e, "newline in string")
			return lx.emit(start, syntax.BadString, syntax.None)
		case b == '\\':
			next := lx.cursor.PeekAt(1)
			switch {
			case lx.cursor.Off+1 >= lx.cursor.Limit:
				lx.cursor.Bump()
			case isNewline(next):
				lx.cursor.Off += 2
				if next == '\r' {
					lx.cursor.Eat('\n')
				}
			default:
				lx.consumeEscape()
			}
		default:
			lx.cursor.Bump()
		}
	}
	// EOF без закрывающей кавычки
	s, e := lx.cursor.From(start)
	lx.errLex(diag.UnterminatedString, s, e, "unterminated string")
	return lx.emit(start, syntax.String, syntax.None)
}
