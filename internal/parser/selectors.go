package parser

import (
	"strings"

	"cascade/internal/diag"
	"cascade/internal/syntax"
)

// псевдоклассы, аргумент которых: список селекторов
var selectorArgPseudos = map[string]bool{
	"not": true, "is": true, "where": true, "has": true, "matches": true,
	"any": true, "host": true, "host-context": true, "slotted": true,
	"current": true, "past": true, "future": true, "global": true, "local": true,
	"deep": true, "cue": true,
}

func (p *Parser) atSimpleSelectorStart() bool {
	switch p.current() {
	case syntax.Ident, syntax.Star, syntax.Pipe, syntax.Dot, syntax.HashToken,
		syntax.LBracket, syntax.Colon, syntax.ColonColon, syntax.Amp:
		if p.dialect == syntax.DialectLESS && p.atContextual(syntax.KwWhen) {
			return false
		}
		return true
	case syntax.Percent, syntax.HashLBrace:
		return p.dialect == syntax.DialectSCSS
	case syntax.AtLBrace:
		return p.dialect == syntax.DialectLESS
	}
	return false
}

func (p *Parser) atSelectorStart(nested bool) bool {
	return p.atSimpleSelectorStart() || (nested && p.atSet(combinatorSet))
}

func (p *Parser) parseSelectorList(nested bool) {
	p.start(syntax.SelectorList)
	p.parseSelector(nested)
	for p.at(syntax.Comma) {
		p.bump()
		if !p.parseSelector(nested) {
			p.errorAt(diag.SelectorExpected)
			break
		}
	}
	p.finish()
}

// parseSelector: составные селекторы, разделённые комбинаторами.
// Пробел между составными: комбинатор потомка, отдельного узла нет.
func (p *Parser) parseSelector(relative bool) bool {
	if !p.atSelectorStart(relative) {
		return false
	}
	p.start(syntax.Selector)
	for {
		if p.atSet(combinatorSet) {
			p.start(syntax.Combinator)
			p.bump()
			p.finish()
			continue
		}
		if !p.atSimpleSelectorStart() {
			break
		}
		p.parseCompound()
	}
	p.finish()
	return true
}

func (p *Parser) parseCompound() {
	p.start(syntax.CompoundSelector)
	for {
		before := p.pos
		p.parseSimpleSelector()
		if p.pos == before {
			break
		}
		if p.in.WhitespaceAfter(p.pos-1) || !p.atSimpleSelectorStart() {
			break
		}
		// тип может стоять только первым
		if p.at(syntax.Ident) || p.at(syntax.Star) {
			break
		}
	}
	p.finish()
}

func (p *Parser) parseSimpleSelector() {
	switch p.current() {
	case syntax.Ident, syntax.Star, syntax.Pipe:
		p.parseTypeSelector()
	case syntax.Dot:
		p.start(syntax.ClassSelector)
		p.bump()
		p.parseNamePart()
		p.finish()
	case syntax.HashToken:
		p.start(syntax.IdSelector)
		p.bump()
		p.finish()
	case syntax.LBracket:
		p.parseAttributeSelector()
	case syntax.Colon, syntax.ColonColon:
		p.parsePseudo()
	case syntax.Amp:
		p.start(syntax.NestingSelector)
		p.bump()
		// &-suffix, &__elem
		if !p.in.WhitespaceAfter(p.pos-1) && (p.at(syntax.Ident) || p.at(syntax.Number) || p.at(syntax.Dimension)) {
			p.bump()
		}
		p.finish()
	case syntax.Percent:
		p.start(syntax.PlaceholderSelector)
		p.bump()
		p.parseNamePart()
		p.finish()
	case syntax.HashLBrace, syntax.AtLBrace:
		p.parseInterpolation()
	}
}

// parseNamePart: имя после '.', '%': идентификатор и/или интерполяции.
func (p *Parser) parseNamePart() {
	if p.in.WhitespaceAfter(p.pos - 1) {
		p.errorAt(diag.IdentifierExpected)
		return
	}
	got := false
	for {
		switch {
		case p.at(syntax.Ident):
			p.bump()
		case p.atInterpolation():
			p.parseInterpolation()
		case got && (p.at(syntax.Minus) || p.at(syntax.Number) || p.at(syntax.Dimension)):
			p.bump()
		default:
			if !got {
				p.errorAt(diag.IdentifierExpected)
			}
			return
		}
		got = true
		if p.in.WhitespaceAfter(p.pos - 1) {
			return
		}
	}
}

func (p *Parser) atInterpolation() bool {
	switch p.current() {
	case syntax.HashLBrace:
		return p.dialect == syntax.DialectSCSS
	case syntax.AtLBrace:
		return p.dialect == syntax.DialectLESS
	}
	return false
}

// parseTypeSelector: [ns|]name или [ns|]*
func (p *Parser) parseTypeSelector() {
	cp := p.checkpoint()
	if p.at(syntax.Pipe) || ((p.at(syntax.Ident) || p.at(syntax.Star)) && p.glued(0) && p.nth(1) == syntax.Pipe) {
		p.start(syntax.NamespacePrefix)
		if !p.at(syntax.Pipe) {
			p.bump()
		}
		p.bump()
		p.finish()
	}
	switch p.current() {
	case syntax.Star:
		p.startAt(cp, syntax.UniversalSelector)
		p.bump()
	case syntax.Ident:
		p.startAt(cp, syntax.TypeSelector)
		p.bump()
		if p.atInterpolation() && !p.in.WhitespaceAfter(p.pos-1) {
			p.parseNamePart()
		}
	default:
		p.startAt(cp, syntax.TypeSelector)
		p.errorAt(diag.IdentifierExpected)
	}
	p.finish()
}

// [ns|attr op value i]
func (p *Parser) parseAttributeSelector() {
	p.start(syntax.AttributeSelector)
	p.bump()
	if p.at(syntax.Pipe) || (p.glued(0) && p.nth(1) == syntax.Pipe && (p.at(syntax.Ident) || p.at(syntax.Star))) {
		p.start(syntax.NamespacePrefix)
		if !p.at(syntax.Pipe) {
			p.bump()
		}
		p.bump()
		p.finish()
	}
	switch {
	case p.at(syntax.Ident):
		p.bump()
	case p.atInterpolation():
		p.parseInterpolation()
	default:
		p.errorAt(diag.IdentifierExpected)
	}
	if p.atSet(attrOperatorSet) {
		p.bump()
		switch {
		case p.at(syntax.Ident) || p.at(syntax.String) || p.at(syntax.Number):
			p.bump()
		case p.atInterpolation():
			p.parseInterpolation()
		case p.at(syntax.DollarName) && p.dialect == syntax.DialectSCSS:
			p.parseVariableRef()
		default:
			p.errorAt(diag.TermExpected)
		}
		// флаг i / s
		if p.at(syntax.Ident) {
			p.bump()
		}
	}
	if !p.eat(syntax.RBracket) {
		p.errorAt(diag.RightSquareBracketExpected)
		p.recoverUntil(rbracketSet, syntax.NewTokenSet(syntax.LBrace, syntax.RBrace, syntax.Semicolon))
	}
	p.finish()
}

func (p *Parser) parsePseudo() {
	kind := syntax.PseudoClass
	if p.at(syntax.ColonColon) {
		kind = syntax.PseudoElement
	}
	if p.dialect == syntax.DialectLESS && kind == syntax.PseudoClass &&
		p.nth(1) == syntax.Ident && equalFold(p.textAt(p.pos+1), "extend") && p.in.ContextualKind(p.pos+1) == syntax.FunctionToken {
		p.parseLessExtend()
		return
	}
	p.start(kind)
	p.bump()
	if p.in.WhitespaceAfter(p.pos - 1) {
		p.errorAt(diag.IdentifierExpected)
		p.finish()
		return
	}
	switch {
	case p.at(syntax.Ident) && p.atContextual(syntax.FunctionToken):
		name := strings.ToLower(syntax.StripVendorPrefix(p.text()))
		p.bumpAs(syntax.FunctionToken)
		p.parsePseudoArgs(selectorArgPseudos[name])
	case p.at(syntax.Ident):
		p.bump()
		if p.atInterpolation() && !p.in.WhitespaceAfter(p.pos-1) {
			p.parseNamePart()
		}
	case p.atInterpolation():
		p.parseNamePart()
	default:
		p.errorAt(diag.IdentifierExpected)
	}
	p.finish()
}

// parsePseudoArgs: '(' селекторы | сырые токены ')'
func (p *Parser) parsePseudoArgs(selectors bool) {
	if !p.enter() {
		p.tooDeep()
		return
	}
	defer p.leave()

	p.start(syntax.PseudoArgs)
	p.bump() // '('
	if selectors && !p.at(syntax.RParen) {
		p.parseSelectorList(true)
	} else {
		for !p.eof() && !p.atSet(rparenSet.Union(blockStartSet)) {
			p.skipBalanced()
		}
	}
	if !p.eat(syntax.RParen) {
		p.errorAt(diag.RightParenthesisExpected)
		p.recoverUntil(rparenSet, blockStartSet)
	}
	p.finish()
}

// parseInterpolation: SCSS #{expr} или LESS @{name}
func (p *Parser) parseInterpolation() {
	if !p.enter() {
		p.tooDeep()
		return
	}
	defer p.leave()

	p.start(syntax.Interpolation)
	scss := p.at(syntax.HashLBrace)
	p.bump()
	if scss {
		if !p.parseExpression(true) {
			p.errorAt(diag.ExpressionExpected)
		}
	} else if !p.eat(syntax.Ident) {
		p.errorAt(diag.IdentifierExpected)
	}
	if !p.eat(syntax.RBrace) {
		p.errorAt(diag.RightCurlyExpected)
		// внутри интерполяции '}': своя, её можно съесть
		p.recoverUntil(rbraceSet, syntax.NewTokenSet(syntax.Semicolon, syntax.LBrace))
	}
	p.finish()
}
