package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"
)

// ===== Работа с рунами поверх Cursor =====

// bumpRune перемещает курсор на размер текущей руны
func (lx *Lexer) bumpRune() {
	if lx.cursor.EOF() {
		return
	}
	if lx.cursor.Peek() < utf8.RuneSelf { // fast-path ASCII
		lx.cursor.Bump()
		return
	}
	_, sz := utf8.DecodeRuneInString(lx.src[lx.cursor.Off:])
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bumpRune overflow: %w", err))
	}
	lx.cursor.Off += usz
}

// ===== Классификаторы =====

// Байты >= 0x80 всегда часть имени, поэтому многобайтовые руны не разрезаются.
func isNameStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b >= utf8.RuneSelf
}

func isNameChar(b byte) bool {
	return isNameStart(b) || isDec(b) || b == '-'
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}

func isNewline(b byte) bool {
	return b == '\n' || b == '\r' || b == '\f'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || isNewline(b)
}

// validEscapeAt: '\' на позиции n, за которым не перевод строки и не конец.
func (lx *Lexer) validEscapeAt(n uint32) bool {
	if lx.cursor.PeekAt(n) != '\\' || lx.cursor.Off+n+1 >= lx.cursor.Limit {
		return false
	}
	return !isNewline(lx.cursor.PeekAt(n + 1))
}

// startsIdentAt checks whether an identifier begins n bytes ahead.
func (lx *Lexer) startsIdentAt(n uint32) bool {
	b := lx.cursor.PeekAt(n)
	switch {
	case b == '-':
		next := lx.cursor.PeekAt(n + 1)
		return isNameStart(next) || next == '-' || lx.validEscapeAt(n+1)
	case b == '\\':
		return lx.validEscapeAt(n)
	default:
		return lx.cursor.Off+n < lx.cursor.Limit && isNameStart(b)
	}
}

func (lx *Lexer) startsIdent() bool {
	return lx.startsIdentAt(0)
}

// startsNumber: знак, за которым цифра или ".цифра"
func (lx *Lexer) startsNumber() bool {
	b1 := lx.cursor.PeekAt(1)
	if isDec(b1) {
		return true
	}
	return b1 == '.' && isDec(lx.cursor.PeekAt(2))
}

func (lx *Lexer) consumeName() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isNameChar(b):
			lx.cursor.Bump()
		case lx.validEscapeAt(0):
			lx.consumeEscape()
		default:
			return
		}
	}
}

// consumeEscape: '\' + до 6 hex и один пробельный символ, либо любая руна.
func (lx *Lexer) consumeEscape() {
	lx.cursor.Bump() // '\'
	if !isHex(lx.cursor.Peek()) {
		lx.bumpRune()
		return
	}
	for i := 0; i < 6 && isHex(lx.cursor.Peek()); i++ {
		lx.cursor.Bump()
	}
	if b := lx.cursor.Peek(); isSpace(b) {
		lx.cursor.Bump()
		if b == '\r' {
			lx.cursor.Eat('\n')
		}
	}
}

// ===== Матчеры последовательностей операторов (жадность) =====

// try2/try3 пробуют "съесть" 2/3 байта, если совпадает.
func (lx *Lexer) try3(a, b, c byte) bool {
	b0, b1, b2, ok := lx.cursor.Peek3()
	if !ok || b0 != a || b1 != b || b2 != c {
		return false
	}
	lx.cursor.Off += 3
	return true
}

func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Off += 2
	return true
}

func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
