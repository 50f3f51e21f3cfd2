package lexer

import (
	"cascade/internal/diag"
	"cascade/internal/syntax"
)

// scanTrivia распознаёт пробелы и комментарии.
//   - ' ', '\t', '\n', '\r', '\f' коалесцируются в один Whitespace
//   - /* ... */ -> Comment (без вложенности; если не закрыт: репорт и обрезаем на EOF)
//   - //... до перевода строки -> LineComment, только в SCSS и LESS
//   - BOM в начале текста -> Whitespace
func (lx *Lexer) scanTrivia() (Token, bool) {
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()

	if start == 0 && lx.try3(0xEF, 0xBB, 0xBF) {
		return lx.emit(start, syntax.Whitespace, syntax.None), true
	}

	if isSpace(b) {
		for isSpace(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return lx.emit(start, syntax.Whitespace, syntax.None), true
	}

	if b != '/' {
		return Token{}, false
	}
	switch lx.cursor.PeekAt(1) {
	case '*':
		lx.cursor.Off += 2
		for {
			if lx.cursor.EOF() {
				s, e := lx.cursor.From(start)
				lx.errLex(diag.UnterminatedComment, s, e, "unterminated comment")
				break
			}
			if lx.try2('*', '/') {
				break
			}
			lx.cursor.Bump()
		}
		return lx.emit(start, syntax.Comment, syntax.None), true

	case '/':
		if !lx.opts.Dialect.IsPreprocessor() {
			return Token{}, false
		}
		lx.cursor.Off += 2
		for !lx.cursor.EOF() && !isNewline(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return lx.emit(start, syntax.LineComment, syntax.None), true
	}
	return Token{}, false
}
