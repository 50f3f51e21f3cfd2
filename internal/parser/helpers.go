package parser

import (
	"cascade/internal/diag"
	"cascade/internal/syntax"
)

// eat съедает токен kind, если он текущий.
func (p *Parser) eat(kind syntax.Kind) bool {
	if !p.at(kind) {
		return false
	}
	p.bump()
	return true
}

// expect съедает kind или репортует errKind на текущем токене.
func (p *Parser) expect(kind syntax.Kind, errKind diag.ErrorKind) bool {
	if p.eat(kind) {
		return true
	}
	p.errorAt(errKind)
	return false
}

// recoverUntil пропускает токены до stop (или EOF), оборачивая их в Error.
// Сбалансированные скобки пропускаются целиком. Если consume содержит
// текущий токен после пропуска, он тоже съедается. Возвращает true,
// если остановились на токене из consume или stop.
func (p *Parser) recoverUntil(consume, stop syntax.TokenSet) bool {
	all := consume.Union(stop)
	if !p.atSet(all) && !p.eof() {
		p.start(syntax.Error)
		for !p.eof() && !p.atSet(all) {
			if !p.skipBalanced() {
				break
			}
		}
		p.finish()
	}
	if p.atSet(consume) {
		p.bump()
		return true
	}
	return p.atSet(stop)
}

// skipBalanced съедает один токен или целую скобочную группу.
// Непарная '}' не съедается: она закрывает внешний блок.
func (p *Parser) skipBalanced() bool {
	switch p.current() {
	case syntax.RBrace:
		return false
	case syntax.LBrace, syntax.HashLBrace, syntax.AtLBrace, syntax.LParen, syntax.LBracket:
		p.skipGroup()
	default:
		p.bump()
	}
	return true
}

func closerOf(k syntax.Kind) syntax.Kind {
	switch k {
	case syntax.LParen:
		return syntax.RParen
	case syntax.LBracket:
		return syntax.RBracket
	}
	return syntax.RBrace
}

// skipGroup съедает группу от открывающей скобки до парной закрывающей.
// '}' без парной '{' внутри группы закрывает внешний блок и не съедается.
func (p *Parser) skipGroup() {
	closers := []syntax.Kind{closerOf(p.current())}
	p.bump()
	for !p.eof() && len(closers) > 0 {
		switch k := p.current(); k {
		case syntax.LBrace, syntax.HashLBrace, syntax.AtLBrace, syntax.LParen, syntax.LBracket:
			closers = append(closers, closerOf(k))
		case syntax.RBrace:
			i := len(closers) - 1
			for i >= 0 && closers[i] != syntax.RBrace {
				i--
			}
			if i < 0 {
				return
			}
			closers = closers[:i]
		case syntax.RParen, syntax.RBracket:
			if closers[len(closers)-1] == k {
				closers = closers[:len(closers)-1]
			}
		}
		p.bump()
	}
}

// bumpError оборачивает один токен в Error; гарантирует прогресс.
func (p *Parser) bumpError() {
	if p.eof() {
		return
	}
	p.start(syntax.Error)
	p.bump()
	p.finish()
}

// enter/leave ограничивают глубину рекурсии.
func (p *Parser) enter() bool {
	if p.depth >= p.opts.MaxDepth {
		return false
	}
	p.depth++
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// tooDeep: текущая конструкция пропускается целиком как Error.
func (p *Parser) tooDeep() {
	p.errorAt(diag.RuleOrSelectorExpected)
	p.start(syntax.Error)
	for !p.eof() && !p.at(syntax.RBrace) {
		p.skipBalanced()
	}
	p.finish()
}
