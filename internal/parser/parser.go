// Package parser is a recursive-descent parser for CSS, SCSS and LESS that
// builds a lossless CST. It never fails: every mismatch is reported as a
// cst.SyntaxError and recovered locally, and the returned tree always
// covers the whole input.
package parser

import (
	"cascade/internal/cst"
	"cascade/internal/diag"
	"cascade/internal/knowledge"
	"cascade/internal/lexer"
	"cascade/internal/syntax"
)

type Options struct {
	Knowledge knowledge.Oracle // nil: встроенные таблицы
	MaxDepth  int              // 0: defaultMaxDepth
	MaxErrors uint             // 0: без ограничения
	Cache     *cst.NodeCache   // nil: свой кэш на каждый разбор
}

const defaultMaxDepth = 256

// Parser: состояние парсера на один текст
type Parser struct {
	lexed   *lexer.Lexed
	in      *syntax.Input
	raw     []int // индекс во входе -> индекс в lexed
	pos     int   // текущий значимый токен
	next    int   // следующий raw-токен, ещё не отданный билдеру
	b       *cst.Builder
	dialect syntax.Dialect
	oracle  knowledge.Oracle
	opts    Options
	depth   int
	errors  uint
	// exprStop: ключевые слова, на которых обрывается выражение (@for ... to)
	exprStop syntax.TokenSet
}

// Parse builds the CST of an already tokenized text. The dialect is the
// one the text was tokenized with.
func Parse(lexed *lexer.Lexed, opts Options) *cst.Tree {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = defaultMaxDepth
	}
	in, raw := lexed.ToInput()
	p := &Parser{
		lexed:   lexed,
		in:      in,
		raw:     raw,
		b:       cst.NewBuilder(opts.Cache),
		dialect: lexed.Dialect(),
		oracle:  knowledge.ForDialect(opts.Knowledge, lexed.Dialect()),
		opts:    opts,
	}
	for _, e := range lexed.Errors() {
		p.report(e.Kind, e.Message, e.Offset, e.Length)
	}
	p.parseStylesheet()
	return p.b.Finish()
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (p *Parser) Enough() bool {
	return p.opts.MaxErrors != 0 && p.errors >= p.opts.MaxErrors
}

// ===== Курсор =====

func (p *Parser) current() syntax.Kind {
	return p.in.Kind(p.pos)
}

func (p *Parser) at(k syntax.Kind) bool {
	return p.in.Kind(p.pos) == k
}

// nth смотрит на n токенов вперёд
func (p *Parser) nth(n int) syntax.Kind {
	return p.in.Kind(p.pos + n)
}

func (p *Parser) atSet(s syntax.TokenSet) bool {
	return s.Contains(p.in.Kind(p.pos))
}

func (p *Parser) ctx() syntax.Kind {
	return p.in.ContextualKind(p.pos)
}

func (p *Parser) atContextual(k syntax.Kind) bool {
	return p.in.ContextualKind(p.pos) == k
}

// glued: между токеном pos+n и следующим нет trivia
func (p *Parser) glued(n int) bool {
	i := p.pos + n
	return i >= 0 && i < p.in.Len()-1 && !p.in.WhitespaceAfter(i)
}

func (p *Parser) eof() bool {
	return p.pos >= p.in.Len()
}

// textAt возвращает текст значимого токена i или "" за концом.
func (p *Parser) textAt(i int) string {
	if i < 0 || i >= len(p.raw) {
		return ""
	}
	return p.lexed.Text(p.raw[i])
}

func (p *Parser) text() string {
	return p.textAt(p.pos)
}

// atIdent: идентификатор с заданным именем (без учёта ASCII-регистра)
func (p *Parser) atIdent(name string) bool {
	return p.at(syntax.Ident) && equalFold(p.text(), name)
}

// offset текущего токена; на EOF: длина текста.
func (p *Parser) offset() int {
	if p.pos >= len(p.raw) {
		return len(p.lexed.Source())
	}
	return p.lexed.Start(p.raw[p.pos])
}

func (p *Parser) tokenLen() int {
	if p.pos >= len(p.raw) {
		return 0
	}
	s, e := p.lexed.Range(p.raw[p.pos])
	return e - s
}

// ===== События билдера =====

// flushTrivia отдаёт билдеру trivia перед текущим токеном.
func (p *Parser) flushTrivia() {
	limit := p.lexed.Len()
	if p.pos < len(p.raw) {
		limit = p.raw[p.pos]
	}
	for ; p.next < limit; p.next++ {
		p.b.Token(p.lexed.Kind(p.next), p.lexed.Text(p.next))
	}
}

// bump съедает текущий токен с его собственным видом.
func (p *Parser) bump() {
	p.bumpAs(p.current())
}

// bumpAs съедает текущий токен под видом kind (ключевые слова, имена функций).
func (p *Parser) bumpAs(kind syntax.Kind) {
	if p.eof() {
		return
	}
	p.flushTrivia()
	r := p.raw[p.pos]
	p.b.Token(kind, p.lexed.Text(r))
	p.next = r + 1
	p.pos++
}

// bumpKeyword съедает идентификатор как его контекстное ключевое слово.
func (p *Parser) bumpKeyword() {
	if k := p.ctx(); p.at(syntax.Ident) && k >= syntax.KwAnd && k <= syntax.KwUsing {
		p.bumpAs(k)
		return
	}
	p.bump()
}

func (p *Parser) start(kind syntax.Kind) {
	p.flushTrivia()
	p.b.StartNode(kind)
}

func (p *Parser) finish() {
	p.b.FinishNode()
}

func (p *Parser) checkpoint() cst.Checkpoint {
	p.flushTrivia()
	return p.b.Checkpoint()
}

func (p *Parser) startAt(cp cst.Checkpoint, kind syntax.Kind) {
	p.b.StartNodeAt(cp, kind)
}

// ===== Ошибки =====

func (p *Parser) report(kind diag.ErrorKind, msg string, offset, length int) {
	p.errors++
	if p.Enough() && p.errors > p.opts.MaxErrors {
		return
	}
	p.b.Error(kind, msg, offset, length)
}

// errorAt репортует ошибку на текущем токене (на EOF: нулевой длины).
func (p *Parser) errorAt(kind diag.ErrorKind) {
	p.report(kind, "", p.offset(), p.tokenLen())
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
