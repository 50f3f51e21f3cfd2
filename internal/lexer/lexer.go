// Package lexer classifies stylesheet text into tokens. It never drops a byte:
// concatenating the text of every token, trivia included, yields the input.
package lexer

import (
	"cascade/internal/diag"
	"cascade/internal/source"
	"cascade/internal/syntax"
)

// Token is one classified slice of the input. Ctx is the contextual
// reading (keyword, directive, unit class) or syntax.None.
type Token struct {
	Kind       syntax.Kind
	Ctx        syntax.Kind
	Start, End uint32
}

// LexError is a lexical problem. The offending bytes are still covered by a token.
type LexError struct {
	Kind    diag.ErrorKind
	Offset  int
	Length  int
	Message string
}

// Marker converts the error into a diagnostic marker.
func (e LexError) Marker(levels diag.Levels) diag.Marker {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Issue().Message
	}
	return diag.Marker{Kind: e.Kind, Level: levels.For(e.Kind), Message: msg, Offset: e.Offset, Length: e.Length}
}

type Lexer struct {
	src    string
	cursor Cursor
	opts   Options
	errs   []LexError
}

func New(src string, opts Options) *Lexer {
	return &Lexer{
		src:    src,
		cursor: NewCursor(src),
		opts:   opts,
	}
}

// Next возвращает следующий токен, включая trivia.
// После конца текста всегда возвращает EOF нулевой длины.
func (lx *Lexer) Next() Token {
	if lx.cursor.EOF() {
		return Token{Kind: syntax.EOF, Start: lx.cursor.Off, End: lx.cursor.Off}
	}
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()

	if tok, ok := lx.scanTrivia(); ok {
		return tok
	}

	switch {
	case ch == '"' || ch == '\'':
		return lx.scanString()

	case isDec(ch):
		return lx.scanNumeric()

	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		return lx.scanNumeric()

	case (ch == '+' || ch == '-') && lx.startsNumber():
		return lx.scanNumeric()

	case ch == '-' && lx.cursor.PeekAt(1) == '-' && lx.cursor.PeekAt(2) == '>':
		lx.cursor.Off += 3
		return lx.emit(start, syntax.CDC, syntax.None)

	case (ch == 'u' || ch == 'U') && lx.startsUnicodeRange():
		return lx.scanUnicodeRange()

	case lx.startsIdent():
		return lx.scanIdentLike()

	case ch == '#':
		return lx.scanHash()

	case ch == '@':
		return lx.scanAt()

	case ch == '$' && lx.opts.Dialect == syntax.DialectSCSS && lx.startsIdentAt(1):
		lx.cursor.Bump()
		lx.consumeName()
		return lx.emit(start, syntax.DollarName, syntax.None)

	case ch == '<' && lx.cursor.PeekAt(1) == '!' && lx.cursor.PeekAt(2) == '-' && lx.cursor.PeekAt(3) == '-':
		lx.cursor.Off += 4
		return lx.emit(start, syntax.CDO, syntax.None)
	}

	return lx.scanOperatorOrPunct()
}

// All drains the lexer into a Lexed buffer.
func (lx *Lexer) All() *Lexed {
	out := &Lexed{
		src:     lx.src,
		dialect: lx.opts.Dialect,
		kinds:   make([]syntax.Kind, 0, len(lx.src)/3+1),
		ctx:     make([]syntax.Kind, 0, len(lx.src)/3+1),
		starts:  make([]uint32, 0, len(lx.src)/3+2),
	}
	for {
		tok := lx.Next()
		if tok.Kind == syntax.EOF {
			out.starts = append(out.starts, tok.Start)
			break
		}
		out.kinds = append(out.kinds, tok.Kind)
		out.ctx = append(out.ctx, tok.Ctx)
		out.starts = append(out.starts, tok.Start)
	}
	out.errors = lx.errs
	return out
}

// Tokenize classifies text under the given dialect.
func Tokenize(text string, dialect syntax.Dialect) *Lexed {
	return New(text, Options{Dialect: dialect}).All()
}

// TokenizeFile is Tokenize over a loaded source file.
func TokenizeFile(f *source.File, dialect syntax.Dialect) *Lexed {
	return Tokenize(string(f.Content), dialect)
}

func (lx *Lexer) emit(start Mark, kind, ctx syntax.Kind) Token {
	s, e := lx.cursor.From(start)
	return Token{Kind: kind, Ctx: ctx, Start: s, End: e}
}

func (lx *Lexer) text(start Mark) string {
	s, e := lx.cursor.From(start)
	return lx.src[s:e]
}
