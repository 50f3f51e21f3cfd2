package parser

import (
	"cascade/internal/diag"
	"cascade/internal/syntax"
)

func (p *Parser) operators() syntax.TokenSet {
	switch p.dialect {
	case syntax.DialectSCSS:
		return scssOperatorSet
	case syntax.DialectLESS:
		return lessOperatorSet
	}
	return operatorSet
}

func (p *Parser) atOperator(commas bool) bool {
	k := p.current()
	if k == syntax.Comma {
		return commas
	}
	if k == syntax.Ident && p.dialect == syntax.DialectSCSS {
		c := p.ctx()
		return c == syntax.KwAnd || c == syntax.KwOr
	}
	return p.operators().Contains(k)
}

func (p *Parser) atTermStart() bool {
	switch p.current() {
	case syntax.Number, syntax.Percentage, syntax.Dimension, syntax.String, syntax.BadString,
		syntax.Url, syntax.BadUrl, syntax.UnicodeRange, syntax.HashToken, syntax.LParen, syntax.LBracket:
		return true
	case syntax.Ident:
		c := p.ctx()
		if p.exprStop.Contains(c) {
			return false
		}
		if p.dialect == syntax.DialectSCSS && (c == syntax.KwAnd || c == syntax.KwOr) {
			return false
		}
		return true
	case syntax.Minus, syntax.Plus:
		if !p.glued(0) {
			return false
		}
		switch p.nth(1) {
		case syntax.DollarName, syntax.LParen, syntax.Ident, syntax.AtKeyword, syntax.HashLBrace:
			return p.dialect.IsPreprocessor() || p.nth(1) == syntax.Ident
		}
		return false
	case syntax.DollarName, syntax.HashLBrace:
		return p.dialect == syntax.DialectSCSS
	case syntax.AtKeyword, syntax.AtLBrace:
		return p.dialect == syntax.DialectLESS
	case syntax.At:
		return p.dialect == syntax.DialectLESS && p.glued(0) && p.nth(1) == syntax.AtKeyword
	case syntax.Tilde:
		return p.dialect == syntax.DialectLESS && p.glued(0) && p.nth(1) == syntax.String
	}
	return false
}

// parseExpression: термы, разделённые операторами или пробелами.
// commas: ',': оператор (значение свойства), а не разделитель аргументов.
func (p *Parser) parseExpression(commas bool) bool {
	if !p.atTermStart() {
		return false
	}
	p.start(syntax.Expression)
	p.parseTerm()
	for !p.eof() {
		if p.atOperator(commas) {
			comma := p.at(syntax.Comma)
			p.start(syntax.Operator)
			p.bumpKeyword()
			p.finish()
			if !p.atTermStart() {
				// (a, b,): висячая запятая в списках SCSS
				if !(comma && p.dialect == syntax.DialectSCSS && p.at(syntax.RParen)) {
					p.errorAt(diag.TermExpected)
				}
				break
			}
		}
		if !p.atTermStart() {
			break
		}
		p.parseTerm()
	}
	p.finish()
	return true
}

func (p *Parser) single(kind syntax.Kind) {
	p.start(kind)
	p.bump()
	p.finish()
}

func (p *Parser) parseTerm() bool {
	if !p.enter() {
		p.tooDeep()
		return true
	}
	defer p.leave()

	switch p.current() {
	case syntax.Number, syntax.Percentage, syntax.Dimension:
		p.single(syntax.NumericValue)
	case syntax.String, syntax.BadString:
		p.single(syntax.StringLiteral)
	case syntax.Url, syntax.BadUrl:
		p.single(syntax.UrlValue)
	case syntax.UnicodeRange:
		p.single(syntax.UnicodeRangeValue)
	case syntax.HashToken:
		p.single(syntax.HexColorValue)
	case syntax.Ident:
		switch {
		case p.ctx() == syntax.FunctionToken:
			p.parseFunction()
		case p.atModuleMember():
			p.parseModuleMember()
		case p.dialect == syntax.DialectSCSS && p.atContextual(syntax.KwNot):
			p.start(syntax.Term)
			p.start(syntax.Operator)
			p.bumpKeyword()
			p.finish()
			if !p.atTermStart() || !p.parseTerm() {
				p.errorAt(diag.TermExpected)
			}
			p.finish()
		default:
			p.single(syntax.Identifier)
		}
	case syntax.LParen:
		p.parseParenthesized()
	case syntax.LBracket:
		// [line-name] и списки SCSS в квадратных скобках
		p.start(syntax.Term)
		p.bump()
		p.parseExpression(true)
		if !p.eat(syntax.RBracket) {
			p.errorAt(diag.RightSquareBracketExpected)
			p.recoverUntil(rbracketSet, blockStartSet)
		}
		p.finish()
	case syntax.DollarName, syntax.AtKeyword:
		p.parseVariableRef()
	case syntax.At:
		// LESS @@name
		p.start(syntax.VariableRef)
		p.bump()
		p.bump()
		p.finish()
	case syntax.HashLBrace, syntax.AtLBrace:
		p.parseInterpolation()
	case syntax.Minus, syntax.Plus:
		p.start(syntax.Term)
		p.start(syntax.Operator)
		p.bump()
		p.finish()
		if !p.atTermStart() || !p.parseTerm() {
			p.errorAt(diag.TermExpected)
		}
		p.finish()
	case syntax.Tilde:
		p.start(syntax.EscapedValue)
		p.bump()
		p.bump()
		p.finish()
	default:
		return false
	}
	return true
}

func (p *Parser) parseVariableRef() {
	p.single(syntax.VariableRef)
}

// ns.$var / ns.func()
func (p *Parser) atModuleMember() bool {
	if p.dialect != syntax.DialectSCSS || !p.glued(0) || p.nth(1) != syntax.Dot || !p.glued(1) {
		return false
	}
	switch p.nth(2) {
	case syntax.DollarName:
		return true
	case syntax.Ident:
		return p.in.ContextualKind(p.pos+2) == syntax.FunctionToken
	}
	return false
}

func (p *Parser) parseModuleMember() {
	p.start(syntax.ModuleMember)
	p.bump()
	p.bump() // '.'
	if p.at(syntax.DollarName) {
		p.parseVariableRef()
	} else {
		p.parseFunction()
	}
	p.finish()
}

// parseFunction вызывается на имени, вплотную за которым идёт '('.
func (p *Parser) parseFunction() {
	p.start(syntax.Function)
	p.bumpAs(syntax.FunctionToken)
	p.parseArguments()
	p.finish()
}

func (p *Parser) parseArguments() {
	p.start(syntax.Arguments)
	if !p.expect(syntax.LParen, diag.LeftParenthesisExpected) {
		p.finish()
		return
	}
	for !p.eof() && !p.at(syntax.RParen) {
		if !p.parseArgument() {
			break
		}
		if p.eat(syntax.Comma) || (p.dialect == syntax.DialectLESS && p.eat(syntax.Semicolon)) {
			continue
		}
		break
	}
	if !p.eat(syntax.RParen) {
		p.errorAt(diag.RightParenthesisExpected)
		p.recoverUntil(rparenSet, blockStartSet)
	}
	p.finish()
}

func (p *Parser) parseArgument() bool {
	if p.atNamedArgument() {
		p.start(syntax.Parameter)
		p.single(syntax.VariableName)
		p.bump() // ':'
		if !p.parseExpression(false) {
			p.errorAt(diag.ExpressionExpected)
		}
		p.finish()
		return true
	}
	if !p.parseExpression(false) {
		// var(--x,): пустой аргумент
		return p.at(syntax.Comma)
	}
	if p.dialect == syntax.DialectSCSS {
		p.eat(syntax.Ellipsis)
	}
	return true
}

// $name: value (SCSS) / @name: value (LESS) внутри аргументов
func (p *Parser) atNamedArgument() bool {
	if p.nth(1) != syntax.Colon {
		return false
	}
	switch p.current() {
	case syntax.DollarName:
		return p.dialect == syntax.DialectSCSS
	case syntax.AtKeyword:
		return p.dialect == syntax.DialectLESS
	}
	return false
}

// parseParenthesized: (expr), SCSS-списки и карты (key: value, ...)
func (p *Parser) parseParenthesized() {
	p.start(syntax.ParenthesizedExpr)
	p.bump()
	for !p.eof() && !p.at(syntax.RParen) {
		cp := p.checkpoint()
		if !p.parseExpression(p.dialect != syntax.DialectSCSS) {
			break
		}
		if p.dialect == syntax.DialectSCSS && p.at(syntax.Colon) {
			p.startAt(cp, syntax.MapEntry)
			p.bump()
			if !p.parseExpression(false) {
				p.errorAt(diag.ExpressionExpected)
			}
			p.finish()
		}
		if !p.eat(syntax.Comma) {
			break
		}
	}
	if !p.eat(syntax.RParen) {
		p.errorAt(diag.RightParenthesisExpected)
		p.recoverUntil(rparenSet, blockStartSet)
	}
	p.finish()
}
