package lexer

import (
	"cascade/internal/diag"
	"cascade/internal/syntax"
)

// Reporter: тонкий интерфейс для лексических ошибок.
// Лексер **только вызывает** его; в Lexed ошибки сохраняются в любом случае.
type Reporter interface {
	Report(kind diag.ErrorKind, offset, length int, msg string)
}

type Options struct {
	Dialect  syntax.Dialect
	Reporter Reporter // может быть nil
}

func (lx *Lexer) errLex(kind diag.ErrorKind, start, end uint32, msg string) {
	e := LexError{Kind: kind, Offset: int(start), Length: int(end - start), Message: msg}
	lx.errs = append(lx.errs, e)
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(e.Kind, e.Offset, e.Length, e.Message)
	}
}
