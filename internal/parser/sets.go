package parser

import "cascade/internal/syntax"

var (
	semiSet       = syntax.NewTokenSet(syntax.Semicolon)
	rbraceSet     = syntax.NewTokenSet(syntax.RBrace)
	declStopSet   = syntax.NewTokenSet(syntax.Semicolon, syntax.RBrace)
	colonSet      = syntax.NewTokenSet(syntax.Colon)
	rparenSet     = syntax.NewTokenSet(syntax.RParen)
	rbracketSet   = syntax.NewTokenSet(syntax.RBracket)
	blockStartSet = syntax.NewTokenSet(syntax.LBrace, syntax.Semicolon, syntax.RBrace)
	// preludeStop: где кончается прелюдия at-правила
	preludeStop = syntax.NewTokenSet(syntax.LBrace, syntax.Semicolon, syntax.RBrace)

	combinatorSet = syntax.NewTokenSet(syntax.Gt, syntax.Plus, syntax.Tilde, syntax.PipePipe)

	attrOperatorSet = syntax.NewTokenSet(
		syntax.Eq, syntax.TildeEq, syntax.PipeEq, syntax.CaretEq, syntax.DollarEq, syntax.StarEq,
	)

	operatorSet = syntax.NewTokenSet(
		syntax.Comma, syntax.Slash, syntax.Star, syntax.Plus, syntax.Minus, syntax.Eq,
	)
	scssOperatorSet = operatorSet.Union(syntax.NewTokenSet(
		syntax.Percent, syntax.EqEq, syntax.BangEq, syntax.Lt, syntax.LtEq,
		syntax.Gt, syntax.GtEq,
	))
	lessOperatorSet = operatorSet.Union(syntax.NewTokenSet(
		syntax.Lt, syntax.LtEq, syntax.Gt, syntax.GtEq, syntax.EqLt,
	))

	guardOperatorSet = syntax.NewTokenSet(
		syntax.Gt, syntax.GtEq, syntax.Eq, syntax.EqLt, syntax.Lt, syntax.LtEq,
	)
)
