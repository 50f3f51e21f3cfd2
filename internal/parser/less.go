package parser

import (
	"cascade/internal/diag"
	"cascade/internal/syntax"
)

// @name: value; | @name: { detached ruleset }
func (p *Parser) parseLessVariable() itemResult {
	p.start(syntax.VariableDeclaration)
	p.single(syntax.VariableName)
	p.bump() // ':'
	if p.at(syntax.LBrace) {
		p.start(syntax.DetachedRuleset)
		p.parseBlock(modeDeclarations)
		p.finish()
		p.finish()
		return itemBlock
	}
	if !p.parseExpression(true) {
		p.errorAt(diag.VariableValueExpected)
	}
	p.parsePrio()
	p.finish()
	return itemSemi
}

// @detached();
func (p *Parser) parseDetachedCall() itemResult {
	p.start(syntax.DetachedRulesetCall)
	p.bump()
	p.bump() // '('
	if !p.eat(syntax.RParen) {
		p.errorAt(diag.RightParenthesisExpected)
		p.recoverUntil(rparenSet, blockStartSet)
	}
	p.finish()
	return itemSemi
}

// scanTerminator находит первый '{', ';' или '}' вне скобок.
func (p *Parser) scanTerminator() syntax.Kind {
	for i := p.pos; ; {
		switch k := p.in.Kind(i); k {
		case syntax.LBrace, syntax.Semicolon, syntax.RBrace, syntax.EOF:
			return k
		case syntax.LParen, syntax.LBracket, syntax.HashLBrace, syntax.AtLBrace:
			if i = p.scanGroupAt(i); i < 0 {
				return syntax.EOF
			}
		default:
			i++
		}
	}
}

func (p *Parser) atLessExtend() bool {
	return p.at(syntax.Amp) && p.glued(0) && p.nth(1) == syntax.Colon && p.glued(1) &&
		p.nth(2) == syntax.Ident && p.in.ContextualKind(p.pos+2) == syntax.FunctionToken &&
		equalFold(p.textAt(p.pos+2), "extend")
}

// parseLessMixin: объявление .m() { }, вызов .m(); или &:extend(...);
// itemNone: это обычное правило.
func (p *Parser) parseLessMixin(mode blockMode) itemResult {
	if p.atLessExtend() {
		if p.scanTerminator() == syntax.LBrace {
			return itemNone
		}
		p.start(syntax.ExtendDirective)
		p.bump()
		p.bump()
		p.parseExtendArgs()
		p.finish()
		return itemSemi
	}
	if !p.at(syntax.Dot) && !p.at(syntax.HashToken) {
		return itemNone
	}
	switch p.scanTerminator() {
	case syntax.LBrace:
		if p.atLessMixinDefinition() {
			return p.parseLessMixinDeclaration()
		}
		return itemNone
	case syntax.Semicolon:
		return p.parseLessMixinCall()
	default:
		if mode != modeStylesheet {
			return p.parseLessMixinCall()
		}
		return itemNone
	}
}

func (p *Parser) atLessMixinDefinition() bool {
	if !p.glued(0) {
		return false
	}
	if p.at(syntax.Dot) {
		return p.nth(1) == syntax.Ident && p.in.ContextualKind(p.pos+1) == syntax.FunctionToken
	}
	return p.at(syntax.HashToken) && p.nth(1) == syntax.LParen
}

// .name(params) [when guard] { }
func (p *Parser) parseLessMixinDeclaration() itemResult {
	p.start(syntax.MixinDeclaration)
	if p.at(syntax.Dot) {
		p.bump()
	}
	p.bump()
	p.parseParameterList()
	if p.atContextual(syntax.KwWhen) {
		p.parseGuard()
	}
	p.parseBody(modeDeclarations)
	p.finish()
	return itemBlock
}

// #ns > .name(args) [!important];
func (p *Parser) parseLessMixinCall() itemResult {
	p.start(syntax.MixinReference)
	for p.at(syntax.Dot) || p.at(syntax.HashToken) || p.at(syntax.Gt) {
		if !p.at(syntax.Dot) {
			p.bump()
			continue
		}
		p.bump()
		if !p.eat(syntax.Ident) {
			p.errorAt(diag.IdentifierExpected)
			break
		}
	}
	if p.at(syntax.LParen) {
		p.parseArguments()
	}
	p.parsePrio()
	p.finish()
	return itemSemi
}

// :extend(selectors [all]) внутри селектора
func (p *Parser) parseLessExtend() {
	p.start(syntax.ExtendDirective)
	p.bump() // ':'
	p.parseExtendArgs()
	p.finish()
}

func (p *Parser) parseExtendArgs() {
	p.bumpAs(syntax.FunctionToken)
	p.start(syntax.Arguments)
	p.bump()
	if p.atSelectorStart(true) {
		p.parseSelectorList(true)
	} else {
		p.errorAt(diag.SelectorExpected)
	}
	if !p.eat(syntax.RParen) {
		p.errorAt(diag.RightParenthesisExpected)
		p.recoverUntil(rparenSet, blockStartSet)
	}
	p.finish()
}

// when [not] (cond) [and|or|, (cond)]*
func (p *Parser) parseGuard() {
	p.start(syntax.Guard)
	p.bumpKeyword()
	for {
		p.start(syntax.GuardCondition)
		if p.atContextual(syntax.KwNot) {
			p.bumpKeyword()
		}
		if !p.at(syntax.LParen) {
			p.errorAt(diag.LeftParenthesisExpected)
			p.finish()
			break
		}
		p.bump()
	cond:
		for !p.eof() && !p.at(syntax.RParen) {
			switch {
			case p.atSet(guardOperatorSet):
				p.start(syntax.Operator)
				p.bump()
				p.finish()
			case p.atContextual(syntax.KwAnd), p.atContextual(syntax.KwOr):
				p.bumpKeyword()
			case p.atTermStart():
				p.parseTerm()
			default:
				break cond
			}
		}
		if !p.eat(syntax.RParen) {
			p.errorAt(diag.RightParenthesisExpected)
			p.recoverUntil(rparenSet, blockStartSet)
		}
		p.finish()
		if p.at(syntax.Comma) || p.atContextual(syntax.KwAnd) || p.atContextual(syntax.KwOr) {
			p.bumpKeyword()
			continue
		}
		break
	}
	p.finish()
}

// @plugin "name";
func (p *Parser) parsePlugin() itemResult {
	p.start(syntax.Plugin)
	p.bump()
	if !p.parseURIOrString() {
		p.errorAt(diag.URIOrStringExpected)
	}
	p.finish()
	return itemSemi
}
