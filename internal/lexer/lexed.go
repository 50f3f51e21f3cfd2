package lexer

import (
	"iter"

	"cascade/internal/syntax"
)

// Lexed is the full token sequence of one text, trivia included.
// starts has one extra entry: the end offset of the last token.
type Lexed struct {
	src     string
	dialect syntax.Dialect
	kinds   []syntax.Kind
	ctx     []syntax.Kind
	starts  []uint32
	errors  []LexError
}

func (l *Lexed) Source() string { return l.src }
func (l *Lexed) Dialect() syntax.Dialect { return l.dialect }
func (l *Lexed) Len() int { return len(l.kinds) }
func (l *Lexed) Errors() []LexError { return l.errors }
func (l *Lexed) Kind(i int) syntax.Kind { return l.kinds[i] }
func (l *Lexed) Start(i int) int { return int(l.starts[i]) }
func (l *Lexed) End(i int) int { return int(l.starts[i+1]) }
func (l *Lexed) Text(i int) string { return l.src[l.starts[i]:l.starts[i+1]] }
func (l *Lexed) Range(i int) (start, end int) {
	return int(l.starts[i]), int(l.starts[i+1])
}

// ContextualKind returns the contextual reading of token i, or syntax.None.
func (l *Lexed) ContextualKind(i int) syntax.Kind {
	return l.ctx[i]
}

// Tokens iterates over all tokens in order.
func (l *Lexed) Tokens() iter.Seq2[int, Token] {
	return func(yield func(int, Token) bool) {
		for i := range l.kinds {
			tok := Token{Kind: l.kinds[i], Ctx: l.ctx[i], Start: l.starts[i], End: l.starts[i+1]}
			if !yield(i, tok) {
				return
			}
		}
	}
}

// ToInput builds the parser input from the non-trivia tokens.
// The returned slice maps an input index to its raw index in l.
func (l *Lexed) ToInput() (*syntax.Input, []int) {
	in := syntax.NewInput(len(l.kinds) / 2)
	raw := make([]int, 0, len(l.kinds)/2)
	for i, k := range l.kinds {
		if k.IsTrivia() {
			if in.Len() > 0 && !l.kinds[i-1].IsTrivia() {
				in.MarkWhitespaceFollows()
			}
			continue
		}
		raw = append(raw, i)
		ctx := l.ctx[i]
		switch k {
		case syntax.Ident:
			if ctx == syntax.FunctionToken {
				in.PushFunction()
			} else {
				in.PushIdentifier(ctx)
			}
		case syntax.AtKeyword:
			in.PushAtKeyword(ctx)
		case syntax.HashToken:
			switch ctx {
			case syntax.HexColor:
				in.PushHexColor()
			case syntax.IdHash:
				in.PushIDHash()
			default:
				in.PushUnrestrictedHash()
			}
		case syntax.Dimension:
			if ctx == syntax.UnknownDimension || ctx == syntax.None {
				in.PushUnknownDimension()
			} else {
				in.PushDimension(ctx)
			}
		default:
			in.Push(k)
		}
	}
	return in, raw
}
