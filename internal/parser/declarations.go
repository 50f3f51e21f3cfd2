package parser

import (
	"strings"

	"cascade/internal/diag"
	"cascade/internal/syntax"
)

// scanGroupAt: i указывает на открывающую скобку; возвращает индекс
// после парной закрывающей или -1 (EOF либо чужая '}').
func (p *Parser) scanGroupAt(i int) int {
	var stack []syntax.Kind
	for ; i < p.in.Len(); i++ {
		switch k := p.in.Kind(i); k {
		case syntax.LBrace, syntax.HashLBrace, syntax.AtLBrace:
			stack = append(stack, syntax.RBrace)
		case syntax.LParen:
			stack = append(stack, syntax.RParen)
		case syntax.LBracket:
			stack = append(stack, syntax.RBracket)
		case syntax.RBrace, syntax.RParen, syntax.RBracket:
			if len(stack) == 0 {
				return -1
			}
			if stack[len(stack)-1] != k {
				if k == syntax.RBrace {
					return -1
				}
				continue
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// scanProperty возвращает индекс ':' после имени свойства, начинающегося
// в текущей позиции, или -1.
func (p *Parser) scanProperty() int {
	i := p.pos
	if p.in.Kind(i) == syntax.Star && !p.in.WhitespaceAfter(i) {
		i++ // *zoom: 1
	}
	started := false
loop:
	for {
		switch k := p.in.Kind(i); {
		case k == syntax.Ident,
			started && (k == syntax.Minus || k == syntax.Number || k == syntax.Dimension):
			i++
		case k == syntax.HashLBrace && p.dialect == syntax.DialectSCSS,
			k == syntax.AtLBrace && p.dialect == syntax.DialectLESS:
			if i = p.scanGroupAt(i); i < 0 {
				return -1
			}
		default:
			break loop
		}
		started = true
		if p.in.WhitespaceAfter(i - 1) {
			break
		}
	}
	if !started || p.in.Kind(i) != syntax.Colon {
		return -1
	}
	return i
}

// isDeclarationStart различает "name: value;" и "a:hover {".
func (p *Parser) isDeclarationStart() bool {
	colon := p.scanProperty()
	if colon < 0 {
		return false
	}
	if p.atCustomProperty() {
		return true
	}
	scss := p.dialect == syntax.DialectSCSS
	if scss && p.in.Kind(colon+1) == syntax.LBrace {
		return true // font: { family: x }
	}
	for i := colon + 1; ; {
		switch p.in.Kind(i) {
		case syntax.Semicolon, syntax.RBrace, syntax.EOF, syntax.RParen, syntax.RBracket:
			return true
		case syntax.LBrace:
			return scss && p.in.WhitespaceAfter(colon)
		case syntax.LParen, syntax.LBracket, syntax.HashLBrace, syntax.AtLBrace:
			if i = p.scanGroupAt(i); i < 0 {
				return true
			}
		default:
			i++
		}
	}
}

func (p *Parser) atCustomProperty() bool {
	return p.at(syntax.Ident) && strings.HasPrefix(p.text(), "--")
}

// parseDeclaration: property ':' value [!important] [; ]
func (p *Parser) parseDeclaration() itemResult {
	if p.atCustomProperty() {
		p.start(syntax.CustomPropertyDeclaration)
		p.parseProperty()
		p.eat(syntax.Colon)
		p.parseCustomPropertyValue()
		p.finish()
		return itemSemi
	}

	p.start(syntax.Declaration)
	p.parseProperty()
	if !p.eat(syntax.Colon) {
		p.errorAt(diag.ColonExpected)
		p.recoverUntil(colonSet, declStopSet)
		if p.eof() || p.atSet(declStopSet) {
			p.finish()
			return itemSemi
		}
	}
	if p.dialect == syntax.DialectSCSS && p.at(syntax.LBrace) {
		p.parseNestedProperties()
		p.finish()
		return itemBlock
	}
	if !p.parseExpression(true) {
		p.errorAt(diag.PropertyValueExpected)
	}
	p.parsePrio()
	if p.dialect == syntax.DialectSCSS && p.at(syntax.LBrace) {
		p.parseNestedProperties()
		p.finish()
		return itemBlock
	}
	p.finish()
	return itemSemi
}

func (p *Parser) parseProperty() {
	p.start(syntax.Property)
	end := p.scanProperty()
	if end < 0 {
		p.bump()
		p.finish()
		return
	}
	for p.pos < end && !p.eof() {
		if p.atInterpolation() {
			p.parseInterpolation()
			continue
		}
		p.bump()
	}
	p.finish()
}

// parseCustomPropertyValue: значение --x сохраняется как есть.
func (p *Parser) parseCustomPropertyValue() {
	p.start(syntax.CustomPropertyValue)
	for !p.eof() && !p.atSet(declStopSet) && !p.at(syntax.RParen) && !p.at(syntax.RBracket) {
		if p.at(syntax.Bang) && p.nth(1) == syntax.Ident && p.in.ContextualKind(p.pos+1) == syntax.KwImportant {
			break
		}
		p.skipBalanced()
	}
	p.finish()
	p.parsePrio()
}

// parsePrio: !important (и хаки вида !ie)
func (p *Parser) parsePrio() {
	if !p.at(syntax.Bang) {
		return
	}
	p.start(syntax.Prio)
	p.bump()
	switch {
	case p.atContextual(syntax.KwImportant):
		p.bumpKeyword()
	case p.at(syntax.Ident):
		p.errorAt(diag.UnknownKeyword)
		p.bump()
	default:
		p.errorAt(diag.IdentifierExpected)
	}
	p.finish()
}

// SCSS: font: bold { family: x; size: 1px; }
func (p *Parser) parseNestedProperties() {
	p.start(syntax.NestedProperties)
	p.parseBlock(modeDeclarations)
	p.finish()
}
