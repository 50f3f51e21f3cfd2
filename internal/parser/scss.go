package parser

import (
	"cascade/internal/diag"
	"cascade/internal/syntax"
)

// $name: value [!default] [!global]
func (p *Parser) parseScssVariable() itemResult {
	p.start(syntax.VariableDeclaration)
	p.single(syntax.VariableName)
	p.bump() // ':'
	if !p.parseExpression(true) {
		p.errorAt(diag.VariableValueExpected)
	}
	for p.at(syntax.Bang) && p.nth(1) == syntax.Ident {
		p.start(syntax.VariableFlag)
		p.bump()
		switch p.in.ContextualKind(p.pos) {
		case syntax.KwDefault, syntax.KwGlobal:
			p.bumpKeyword()
		default:
			p.errorAt(diag.UnknownKeyword)
			p.bump()
		}
		p.finish()
	}
	p.finish()
	return itemSemi
}

func (p *Parser) variableToken() syntax.Kind {
	if p.dialect == syntax.DialectLESS {
		return syntax.AtKeyword
	}
	return syntax.DollarName
}

// ($a, $b: 1, $rest...): для LESS также ';' и образцы значений
func (p *Parser) parseParameterList() {
	p.start(syntax.ParameterList)
	p.bump()
	for !p.eof() && !p.at(syntax.RParen) {
		if !p.parseParameter() {
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

func (p *Parser) parseParameter() bool {
	switch {
	case p.at(p.variableToken()):
		p.start(syntax.Parameter)
		p.single(syntax.VariableName)
		if p.eat(syntax.Colon) && !p.parseExpression(false) {
			p.errorAt(diag.VariableValueExpected)
		}
		p.eat(syntax.Ellipsis)
		p.finish()
	case p.dialect == syntax.DialectLESS && p.at(syntax.Ellipsis):
		p.start(syntax.Parameter)
		p.bump()
		p.finish()
	case p.dialect == syntax.DialectLESS && p.atTermStart():
		// .m(dark; @c): сопоставление с образцом
		p.start(syntax.Parameter)
		p.parseExpression(false)
		p.finish()
	default:
		p.errorAt(diag.VariableNameExpected)
		return false
	}
	return true
}

// @mixin name[(params)] { }
func (p *Parser) parseMixinDeclaration() itemResult {
	p.start(syntax.MixinDeclaration)
	p.bump()
	if p.at(syntax.Ident) {
		p.bump()
	} else {
		p.errorAt(diag.IdentifierExpected)
	}
	if p.at(syntax.LParen) {
		p.parseParameterList()
	}
	p.parseBody(modeDeclarations)
	p.finish()
	return itemBlock
}

// @include [ns.]name[(args)] [using (params)] [{ content }]
func (p *Parser) parseInclude() itemResult {
	p.start(syntax.MixinReference)
	p.bump()
	if p.at(syntax.Ident) {
		if p.glued(0) && p.nth(1) == syntax.Dot && p.glued(1) && p.nth(2) == syntax.Ident {
			p.bump()
			p.bump()
		}
		p.bump()
	} else {
		p.errorAt(diag.IdentifierExpected)
	}
	if p.at(syntax.LParen) {
		p.parseArguments()
	}
	if p.atContextual(syntax.KwUsing) {
		p.bumpKeyword()
		if p.at(syntax.LParen) {
			p.parseParameterList()
		} else {
			p.errorAt(diag.LeftParenthesisExpected)
		}
	}
	if p.at(syntax.LBrace) {
		p.parseBlock(modeDeclarations)
		p.finish()
		return itemBlock
	}
	p.finish()
	return itemSemi
}

func (p *Parser) parseContent() itemResult {
	p.start(syntax.ContentDirective)
	p.bump()
	if p.at(syntax.LParen) {
		p.parseArguments()
	}
	p.finish()
	return itemSemi
}

func (p *Parser) parseFunctionDeclaration() itemResult {
	p.start(syntax.FunctionDeclaration)
	p.bump()
	if p.at(syntax.Ident) {
		p.bump()
	} else {
		p.errorAt(diag.IdentifierExpected)
	}
	if p.at(syntax.LParen) {
		p.parseParameterList()
	} else {
		p.errorAt(diag.LeftParenthesisExpected)
	}
	p.parseBody(modeDeclarations)
	p.finish()
	return itemBlock
}

// @return expr; @debug expr; @warn expr; @error expr;
func (p *Parser) parseStatementWithExpression(kind syntax.Kind) itemResult {
	p.start(kind)
	p.bump()
	if !p.parseExpression(true) {
		p.errorAt(diag.ExpressionExpected)
	}
	p.finish()
	return itemSemi
}

func (p *Parser) parseIf(mode blockMode) itemResult {
	p.start(syntax.IfStatement)
	p.bump()
	if !p.parseExpression(true) {
		p.errorAt(diag.ExpressionExpected)
	}
	p.parseBody(nestedMode(mode))
	for p.at(syntax.AtKeyword) && p.ctx() == syntax.AtElse {
		p.start(syntax.ElseClause)
		p.bump()
		if p.atContextual(syntax.KwIf) {
			p.bumpKeyword()
			if !p.parseExpression(true) {
				p.errorAt(diag.ExpressionExpected)
			}
		}
		p.parseBody(nestedMode(mode))
		p.finish()
	}
	p.finish()
	return itemBlock
}

// @each $k, $v in expr { }
func (p *Parser) parseEach(mode blockMode) itemResult {
	p.start(syntax.EachStatement)
	p.bump()
	if !p.at(syntax.DollarName) {
		p.errorAt(diag.VariableNameExpected)
	}
	for p.at(syntax.DollarName) {
		p.single(syntax.VariableName)
		if !p.eat(syntax.Comma) {
			break
		}
		if !p.at(syntax.DollarName) {
			p.errorAt(diag.VariableNameExpected)
		}
	}
	if p.atContextual(syntax.KwIn) {
		p.bumpKeyword()
		if !p.parseExpression(true) {
			p.errorAt(diag.ExpressionExpected)
		}
	} else {
		p.errorAt(diag.InExpected)
	}
	p.parseBody(nestedMode(mode))
	p.finish()
	return itemBlock
}

// @for $i from a (through|to) b { }
func (p *Parser) parseFor(mode blockMode) itemResult {
	p.start(syntax.ForStatement)
	p.bump()
	if p.at(syntax.DollarName) {
		p.single(syntax.VariableName)
	} else {
		p.errorAt(diag.VariableNameExpected)
	}
	if p.atContextual(syntax.KwFrom) {
		p.bumpKeyword()
		saved := p.exprStop
		p.exprStop = syntax.NewTokenSet(syntax.KwThrough, syntax.KwTo)
		if !p.parseExpression(true) {
			p.errorAt(diag.ExpressionExpected)
		}
		p.exprStop = saved
		if p.atContextual(syntax.KwThrough) || p.atContextual(syntax.KwTo) {
			p.bumpKeyword()
			if !p.parseExpression(true) {
				p.errorAt(diag.ExpressionExpected)
			}
		} else {
			p.errorAt(diag.ThroughOrToExpected)
		}
	} else {
		p.errorAt(diag.FromExpected)
	}
	p.parseBody(nestedMode(mode))
	p.finish()
	return itemBlock
}

func (p *Parser) parseWhile(mode blockMode) itemResult {
	p.start(syntax.WhileStatement)
	p.bump()
	if !p.parseExpression(true) {
		p.errorAt(diag.ExpressionExpected)
	}
	p.parseBody(nestedMode(mode))
	p.finish()
	return itemBlock
}

// @use "url" [as name|*] [with (config)];
func (p *Parser) parseUse() itemResult {
	p.start(syntax.Use)
	p.bump()
	if p.at(syntax.String) {
		p.single(syntax.StringLiteral)
	} else {
		p.errorAt(diag.StringLiteralExpected)
	}
	if p.atContextual(syntax.KwAs) {
		p.bumpKeyword()
		if p.at(syntax.Ident) || p.at(syntax.Star) {
			p.bump()
		} else {
			p.errorAt(diag.IdentifierOrWildcardExpected)
		}
	}
	if p.atContextual(syntax.KwWith) {
		p.parseModuleConfig()
	}
	p.finish()
	return itemSemi
}

func (p *Parser) parseModuleConfig() {
	p.start(syntax.ModuleConfig)
	p.bumpKeyword()
	if p.at(syntax.LParen) {
		p.parseParenthesized()
	} else {
		p.errorAt(diag.LeftParenthesisExpected)
	}
	p.finish()
}

// @forward "url" [as prefix-*] [show|hide names] [with (config)];
func (p *Parser) parseForward() itemResult {
	p.start(syntax.Forward)
	p.bump()
	if p.at(syntax.String) {
		p.single(syntax.StringLiteral)
	} else {
		p.errorAt(diag.StringLiteralExpected)
	}
	if p.atContextual(syntax.KwAs) {
		p.bumpKeyword()
		if p.at(syntax.Ident) && p.glued(0) && p.nth(1) == syntax.Star {
			p.bump()
			p.bump()
		} else {
			p.errorAt(diag.WildcardExpected)
			if p.at(syntax.Ident) {
				p.bump()
			}
		}
	}
	if p.atContextual(syntax.KwShow) || p.atContextual(syntax.KwHide) {
		p.start(syntax.ForwardVisibility)
		p.bumpKeyword()
		for {
			if p.at(syntax.Ident) || p.at(syntax.DollarName) {
				p.bump()
			} else {
				p.errorAt(diag.IdentifierOrVariableExpected)
				break
			}
			if !p.eat(syntax.Comma) {
				break
			}
		}
		p.finish()
	}
	if p.atContextual(syntax.KwWith) {
		p.parseModuleConfig()
	}
	p.finish()
	return itemSemi
}

// @extend selectors [!optional];
func (p *Parser) parseExtend() itemResult {
	p.start(syntax.ExtendDirective)
	p.bump()
	if p.atSelectorStart(true) {
		p.parseSelectorList(true)
	} else {
		p.errorAt(diag.SelectorExpected)
	}
	if p.at(syntax.Bang) && p.in.ContextualKind(p.pos+1) == syntax.KwOptional {
		p.start(syntax.VariableFlag)
		p.bump()
		p.bumpKeyword()
		p.finish()
	}
	p.finish()
	return itemSemi
}

// @at-root [selectors | (without: x)] { }
func (p *Parser) parseAtRoot() itemResult {
	p.start(syntax.AtRoot)
	p.bump()
	switch {
	case p.at(syntax.LParen):
		p.parseParenthesized()
	case p.atSelectorStart(true):
		p.parseSelectorList(true)
	}
	p.parseBody(modeDeclarations)
	p.finish()
	return itemBlock
}
