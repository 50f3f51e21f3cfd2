package parser

import (
	"fmt"
	"strings"

	"cascade/internal/diag"
	"cascade/internal/syntax"
)

// parseAtRule разбирает at-правило по контекстному виду ключевого слова.
func (p *Parser) parseAtRule(mode blockMode) itemResult {
	switch p.ctx() {
	case syntax.AtCharset:
		return p.parseCharset()
	case syntax.AtImport:
		return p.parseImport()
	case syntax.AtNamespace:
		return p.parseNamespace()
	case syntax.AtMedia:
		return p.parseMedia(mode)
	case syntax.AtSupports:
		return p.parseSupports(mode)
	case syntax.AtFontFace:
		return p.parseSimpleBlockRule(syntax.FontFace)
	case syntax.AtKeyframes:
		return p.parseKeyframes()
	case syntax.AtPage:
		return p.parsePage()
	case syntax.AtLayer:
		return p.parseLayer(mode)
	case syntax.AtContainer:
		return p.parseContainer(mode)
	case syntax.AtProperty:
		return p.parsePropertyRule()
	case syntax.AtMixin:
		return p.parseMixinDeclaration()
	case syntax.AtInclude:
		return p.parseInclude()
	case syntax.AtContent:
		return p.parseContent()
	case syntax.AtFunction:
		return p.parseFunctionDeclaration()
	case syntax.AtReturn:
		return p.parseStatementWithExpression(syntax.ReturnStatement)
	case syntax.AtIf:
		return p.parseIf(mode)
	case syntax.AtEach:
		return p.parseEach(mode)
	case syntax.AtFor:
		return p.parseFor(mode)
	case syntax.AtWhile:
		return p.parseWhile(mode)
	case syntax.AtUse:
		return p.parseUse()
	case syntax.AtForward:
		return p.parseForward()
	case syntax.AtExtend:
		return p.parseExtend()
	case syntax.AtAtRoot:
		return p.parseAtRoot()
	case syntax.AtDebug, syntax.AtWarn, syntax.AtError:
		return p.parseStatementWithExpression(syntax.DebugDirective)
	case syntax.AtPlugin:
		return p.parsePlugin()
	}
	return p.parseGenericAtRule(mode)
}

// parseGenericAtRule: @name prelude (block | ;). Неизвестные имена
// получают UnknownAtRule, а их тело не разбирается.
func (p *Parser) parseGenericAtRule(mode blockMode) itemResult {
	name := strings.TrimPrefix(p.text(), "@")
	known := p.oracle.IsKnownAtRule(name)
	if known {
		p.start(syntax.AtRule)
	} else {
		p.start(syntax.UnknownAtRule)
		p.report(diag.UnknownAtRule, fmt.Sprintf("Unknown at rule @%s", name), p.offset(), p.tokenLen())
	}
	p.bump()
	if !p.eof() && !p.atSet(preludeStop) {
		p.start(syntax.Prelude)
		for !p.eof() && !p.atSet(preludeStop) {
			p.skipBalanced()
		}
		p.finish()
	}
	if !p.at(syntax.LBrace) {
		p.finish()
		return itemSemi
	}
	if known {
		// @counter-style, @font-feature-values...: тело из дескрипторов,
		// вложенные правила режим деклараций тоже принимает
		p.parseBlock(modeDeclarations)
	} else {
		p.parseRawBlock()
	}
	p.finish()
	return itemBlock
}

func (p *Parser) parseCharset() itemResult {
	p.start(syntax.Charset)
	p.bump()
	if p.at(syntax.String) {
		p.single(syntax.StringLiteral)
	} else {
		p.errorAt(diag.StringLiteralExpected)
	}
	p.finish()
	return itemSemi
}

// parseURIOrString: url(...), "..." или url("...").
func (p *Parser) parseURIOrString() bool {
	switch {
	case p.at(syntax.Url), p.at(syntax.BadUrl):
		p.single(syntax.UrlValue)
	case p.at(syntax.String), p.at(syntax.BadString):
		p.single(syntax.StringLiteral)
	case p.at(syntax.Ident) && p.atContextual(syntax.FunctionToken) && equalFold(p.text(), "url"):
		p.parseFunction()
	case p.atInterpolation(), p.at(syntax.DollarName) && p.dialect == syntax.DialectSCSS:
		p.parseTerm()
	default:
		return false
	}
	return true
}

func (p *Parser) parseImport() itemResult {
	p.start(syntax.Import)
	p.bump()
	if p.dialect == syntax.DialectLESS && p.at(syntax.LParen) {
		p.parseImportOptions()
	}
	if !p.parseURIOrString() {
		p.errorAt(diag.URIOrStringExpected)
		p.finish()
		return itemSemi
	}
	// SCSS: @import "a", "b";
	for p.dialect == syntax.DialectSCSS && p.at(syntax.Comma) {
		p.bump()
		if !p.parseURIOrString() {
			p.errorAt(diag.URIOrStringExpected)
			break
		}
	}
	if p.atIdent("layer") {
		if p.atContextual(syntax.FunctionToken) {
			p.parseFunction()
		} else {
			p.single(syntax.Identifier)
		}
	}
	if p.at(syntax.Ident) && p.atContextual(syntax.FunctionToken) && equalFold(p.text(), "supports") {
		p.parseSupportsFunction()
	}
	if !p.eof() && !p.atSet(preludeStop) {
		if !p.parseMediaQueryList() {
			p.errorAt(diag.MediaQueryExpected)
		}
	}
	p.finish()
	return itemSemi
}

// LESS: @import (reference, optional) "x";
func (p *Parser) parseImportOptions() {
	p.start(syntax.ImportOptions)
	p.bump()
	for p.at(syntax.Ident) {
		p.single(syntax.Identifier)
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

// supports(...) внутри @import
func (p *Parser) parseSupportsFunction() {
	p.start(syntax.Function)
	p.bumpAs(syntax.FunctionToken)
	p.start(syntax.Arguments)
	p.bump()
	if p.isDeclarationStart() {
		p.parseDeclaration()
	} else if !p.parseSupportsCondition() {
		p.errorAt(diag.ConditionExpected)
	}
	if !p.eat(syntax.RParen) {
		p.errorAt(diag.RightParenthesisExpected)
		p.recoverUntil(rparenSet, blockStartSet)
	}
	p.finish()
	p.finish()
}

func (p *Parser) parseNamespace() itemResult {
	p.start(syntax.Namespace)
	p.bump()
	if p.at(syntax.Ident) && !p.atContextual(syntax.FunctionToken) {
		p.single(syntax.Identifier)
	}
	if !p.parseURIOrString() {
		p.errorAt(diag.URIOrStringExpected)
	}
	p.finish()
	return itemSemi
}

func (p *Parser) parseMedia(mode blockMode) itemResult {
	p.start(syntax.Media)
	p.bump()
	if !p.parseMediaQueryList() {
		p.errorAt(diag.MediaQueryExpected)
	}
	p.parseBody(nestedMode(mode))
	p.finish()
	return itemBlock
}

func (p *Parser) atMediaQueryStart() bool {
	switch p.current() {
	case syntax.Ident, syntax.LParen:
		return true
	case syntax.DollarName, syntax.HashLBrace:
		return p.dialect == syntax.DialectSCSS
	case syntax.AtKeyword, syntax.AtLBrace:
		return p.dialect == syntax.DialectLESS
	}
	return false
}

func (p *Parser) parseMediaQueryList() bool {
	if !p.atMediaQueryStart() {
		return false
	}
	p.start(syntax.MediaQueryList)
	p.parseMediaQuery()
	for p.at(syntax.Comma) {
		p.bump()
		if !p.atMediaQueryStart() {
			p.errorAt(diag.MediaQueryExpected)
			break
		}
		p.parseMediaQuery()
	}
	p.finish()
	return true
}

// [not|only] type [and cond] | cond
func (p *Parser) parseMediaQuery() {
	p.start(syntax.MediaQuery)
	switch {
	case p.at(syntax.Ident) && !p.atContextual(syntax.FunctionToken) &&
		!(p.atContextual(syntax.KwNot) && p.nth(1) == syntax.LParen):
		if (p.atContextual(syntax.KwNot) || p.atContextual(syntax.KwOnly)) && p.nth(1) == syntax.Ident {
			p.bumpKeyword()
		}
		p.single(syntax.Identifier)
		for p.atContextual(syntax.KwAnd) {
			p.bumpKeyword()
			if !p.parseMediaInParens() {
				p.errorAt(diag.LeftParenthesisExpected)
				break
			}
		}
	case p.at(syntax.DollarName), p.at(syntax.AtKeyword), p.atInterpolation():
		p.parseTerm()
		for p.atContextual(syntax.KwAnd) {
			p.bumpKeyword()
			if !p.parseMediaInParens() {
				p.errorAt(diag.LeftParenthesisExpected)
				break
			}
		}
	default:
		p.parseMediaCondition()
	}
	p.finish()
}

// parseMediaCondition: [not] (..) [and|or (..)]*
func (p *Parser) parseMediaCondition() bool {
	if !p.at(syntax.LParen) && !p.atContextual(syntax.KwNot) && !p.atContextual(syntax.FunctionToken) {
		return false
	}
	p.start(syntax.MediaCondition)
	if p.atContextual(syntax.KwNot) {
		p.bumpKeyword()
	}
	if !p.parseMediaInParens() {
		p.errorAt(diag.LeftParenthesisExpected)
	}
	for p.atContextual(syntax.KwAnd) || p.atContextual(syntax.KwOr) {
		p.bumpKeyword()
		if !p.parseMediaInParens() {
			p.errorAt(diag.LeftParenthesisExpected)
			break
		}
	}
	p.finish()
	return true
}

func (p *Parser) parseMediaInParens() bool {
	if p.at(syntax.Ident) && p.atContextual(syntax.FunctionToken) {
		// style(...), scroll-state(...) в @container
		p.parseFunctionalQuery()
		return true
	}
	if p.atInterpolation() || p.at(syntax.DollarName) && p.dialect == syntax.DialectSCSS {
		p.parseTerm()
		return true
	}
	if !p.at(syntax.LParen) {
		return false
	}
	if !p.enter() {
		p.tooDeep()
		return true
	}
	defer p.leave()

	if p.nth(1) == syntax.LParen || p.in.ContextualKind(p.pos+1) == syntax.KwNot {
		// вложенное условие
		p.start(syntax.ParenthesizedExpr)
		p.bump()
		p.parseMediaCondition()
		if !p.eat(syntax.RParen) {
			p.errorAt(diag.RightParenthesisExpected)
			p.recoverUntil(rparenSet, blockStartSet)
		}
		p.finish()
		return true
	}
	p.parseMediaFeature()
	return true
}

var rangeOperatorSet = syntax.NewTokenSet(syntax.Lt, syntax.LtEq, syntax.Gt, syntax.GtEq, syntax.Eq)

// (name: value) | (name) | (value op name op value)
func (p *Parser) parseMediaFeature() {
	p.start(syntax.MediaFeature)
	p.bump()
loop:
	for !p.eof() && !p.at(syntax.RParen) {
		switch {
		case p.at(syntax.Colon), p.atSet(rangeOperatorSet):
			p.bump()
		case p.at(syntax.Number) && p.nth(1) == syntax.Slash && p.nth(2) == syntax.Number:
			p.start(syntax.Ratio)
			p.bump()
			p.bump()
			p.bump()
			p.finish()
		case p.atTermStart():
			p.parseTerm()
		default:
			break loop
		}
	}
	if !p.eat(syntax.RParen) {
		p.errorAt(diag.RightParenthesisExpected)
		p.recoverUntil(rparenSet, blockStartSet)
	}
	p.finish()
}

// style(--x: y) и подобные: аргумент: декларация или условие.
func (p *Parser) parseFunctionalQuery() {
	p.start(syntax.Function)
	p.bumpAs(syntax.FunctionToken)
	p.start(syntax.Arguments)
	p.bump()
	for !p.eof() && !p.atSet(rparenSet.Union(blockStartSet)) {
		if p.isDeclarationStart() {
			p.parseDeclaration()
			continue
		}
		p.skipBalanced()
	}
	if !p.eat(syntax.RParen) {
		p.errorAt(diag.RightParenthesisExpected)
		p.recoverUntil(rparenSet, blockStartSet)
	}
	p.finish()
	p.finish()
}

func (p *Parser) parseSupports(mode blockMode) itemResult {
	p.start(syntax.Supports)
	p.bump()
	if !p.parseSupportsCondition() {
		p.errorAt(diag.ConditionExpected)
	}
	p.parseBody(nestedMode(mode))
	p.finish()
	return itemBlock
}

// [not] in-parens [and|or in-parens]*
func (p *Parser) parseSupportsCondition() bool {
	if !p.at(syntax.LParen) && !p.atContextual(syntax.KwNot) && !p.atContextual(syntax.FunctionToken) {
		return false
	}
	p.start(syntax.SupportsCondition)
	if p.atContextual(syntax.KwNot) {
		p.bumpKeyword()
	}
	if !p.parseSupportsInParens() {
		p.errorAt(diag.LeftParenthesisExpected)
	}
	for p.atContextual(syntax.KwAnd) || p.atContextual(syntax.KwOr) {
		p.bumpKeyword()
		if !p.parseSupportsInParens() {
			p.errorAt(diag.LeftParenthesisExpected)
			break
		}
	}
	p.finish()
	return true
}

func (p *Parser) parseSupportsInParens() bool {
	if p.at(syntax.Ident) && p.atContextual(syntax.FunctionToken) {
		if equalFold(p.text(), "selector") {
			p.start(syntax.Function)
			p.bumpAs(syntax.FunctionToken)
			p.parsePseudoArgs(true)
			p.finish()
			return true
		}
		p.parseFunction()
		return true
	}
	if !p.at(syntax.LParen) {
		return false
	}
	if !p.enter() {
		p.tooDeep()
		return true
	}
	defer p.leave()

	p.start(syntax.ParenthesizedExpr)
	p.bump()
	switch {
	case p.at(syntax.LParen), p.atContextual(syntax.KwNot), p.atContextual(syntax.FunctionToken):
		p.parseSupportsCondition()
	case p.isDeclarationStart():
		p.parseDeclaration()
	default:
		// general-enclosed
		for !p.eof() && !p.atSet(rparenSet.Union(blockStartSet)) {
			p.skipBalanced()
		}
	}
	if !p.eat(syntax.RParen) {
		p.errorAt(diag.RightParenthesisExpected)
		p.recoverUntil(rparenSet, blockStartSet)
	}
	p.finish()
	return true
}

// @font-face и подобные: только блок деклараций.
func (p *Parser) parseSimpleBlockRule(kind syntax.Kind) itemResult {
	p.start(kind)
	p.bump()
	p.parseBody(modeDeclarations)
	p.finish()
	return itemBlock
}

func (p *Parser) parseKeyframes() itemResult {
	p.start(syntax.Keyframes)
	p.bump()
	switch {
	case p.at(syntax.Ident) && !p.atContextual(syntax.FunctionToken):
		p.single(syntax.Identifier)
	case p.at(syntax.String):
		p.single(syntax.StringLiteral)
	case p.atInterpolation(), p.at(syntax.DollarName) && p.dialect == syntax.DialectSCSS,
		p.at(syntax.AtKeyword) && p.dialect == syntax.DialectLESS:
		p.parseTerm()
	default:
		p.errorAt(diag.IdentifierExpected)
	}
	p.parseBody(modeKeyframes)
	p.finish()
	return itemBlock
}

func (p *Parser) atKeyframeSelector() bool {
	switch p.current() {
	case syntax.Percentage:
		return true
	case syntax.Ident:
		return !p.atContextual(syntax.FunctionToken)
	case syntax.DollarName, syntax.HashLBrace:
		return p.dialect == syntax.DialectSCSS
	case syntax.AtKeyword, syntax.AtLBrace:
		return p.dialect == syntax.DialectLESS
	}
	return false
}

// from, to, 50% (и entry 10% для scroll-timeline) через запятую
func (p *Parser) parseKeyframeBlock() itemResult {
	if !p.atKeyframeSelector() {
		return itemNone
	}
	p.start(syntax.KeyframeBlock)
	for {
		p.start(syntax.KeyframeSelector)
		switch {
		case p.at(syntax.Ident):
			p.bumpKeyword()
			if p.at(syntax.Percentage) {
				p.bump()
			}
		case p.at(syntax.Percentage):
			p.bump()
		default:
			p.parseTerm()
		}
		p.finish()
		if !p.at(syntax.Comma) {
			break
		}
		p.bump()
		if !p.atKeyframeSelector() {
			p.errorAt(diag.PercentageExpected)
			break
		}
	}
	p.parseBody(modeDeclarations)
	p.finish()
	return itemBlock
}

func (p *Parser) parsePage() itemResult {
	p.start(syntax.Page)
	p.bump()
	for p.at(syntax.Ident) || p.at(syntax.Colon) {
		p.start(syntax.PageSelector)
		if p.at(syntax.Ident) {
			p.bump()
		}
		for p.at(syntax.Colon) && p.glued(0) {
			p.bump()
			if !p.eat(syntax.Ident) {
				p.errorAt(diag.IdentifierExpected)
			}
		}
		p.finish()
		if !p.eat(syntax.Comma) {
			break
		}
	}
	p.parseBody(modePage)
	p.finish()
	return itemBlock
}

// @top-left { ... } внутри @page
func (p *Parser) parsePageMarginBox() itemResult {
	if !p.oracle.IsKnownAtRule(strings.TrimPrefix(p.text(), "@")) {
		return p.parseGenericAtRule(modePage)
	}
	p.start(syntax.PageMarginBox)
	p.bump()
	p.parseBody(modeDeclarations)
	p.finish()
	return itemBlock
}

// @layer a.b, c; | @layer name { } | @layer { }
func (p *Parser) parseLayer(mode blockMode) itemResult {
	p.start(syntax.Layer)
	p.bump()
	if p.at(syntax.Ident) {
		p.start(syntax.LayerNameList)
		for {
			p.start(syntax.LayerName)
			p.bump()
			for p.at(syntax.Dot) && p.glued(-1) && p.glued(0) {
				p.bump()
				if !p.eat(syntax.Ident) {
					p.errorAt(diag.IdentifierExpected)
				}
			}
			p.finish()
			if !p.at(syntax.Comma) {
				break
			}
			p.bump()
			if !p.at(syntax.Ident) {
				p.errorAt(diag.IdentifierExpected)
				break
			}
		}
		p.finish()
	}
	if !p.at(syntax.LBrace) {
		p.finish()
		return itemSemi
	}
	p.parseBlock(nestedMode(mode))
	p.finish()
	return itemBlock
}

// @container [name] condition { }
func (p *Parser) parseContainer(mode blockMode) itemResult {
	p.start(syntax.Container)
	p.bump()
	if p.at(syntax.Ident) && !p.atContextual(syntax.FunctionToken) && !p.atContextual(syntax.KwNot) {
		p.single(syntax.Identifier)
	}
	if !p.parseMediaCondition() && !p.at(syntax.LBrace) {
		p.errorAt(diag.ConditionExpected)
	}
	p.parseBody(nestedMode(mode))
	p.finish()
	return itemBlock
}

// @property --name { syntax: ...; }
func (p *Parser) parsePropertyRule() itemResult {
	p.start(syntax.PropertyAtRule)
	p.bump()
	if p.at(syntax.Ident) {
		p.single(syntax.Identifier)
	} else {
		p.errorAt(diag.IdentifierExpected)
	}
	p.parseBody(modeDeclarations)
	p.finish()
	return itemBlock
}
