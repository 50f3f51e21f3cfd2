package parser

import (
	"cascade/internal/diag"
	"cascade/internal/syntax"
)

// itemResult описывает, чем закончился элемент списка правил.
type itemResult uint8

const (
	itemNone  itemResult = iota // ничего не разобрано
	itemBlock                   // закончился блоком, ';' не нужна
	itemSemi                    // нужна ';' (или '}' / EOF)
)

// blockMode: что допустимо внутри блока.
type blockMode uint8

const (
	modeStylesheet   blockMode = iota // правила и at-правила
	modeDeclarations                  // декларации, вложенные правила, at-правила
	modeKeyframes                     // блоки from/to/%
	modePage                          // декларации и margin boxes
)

func (m blockMode) itemExpected() diag.ErrorKind {
	switch m {
	case modeStylesheet:
		return diag.RuleOrSelectorExpected
	case modeKeyframes:
		return diag.PercentageExpected
	case modePage:
		return diag.PageDirectiveOrDeclarationExpected
	default:
		return diag.IdentifierExpected
	}
}

// nestedMode: тело at-правила наследует режим окружающего блока.
func nestedMode(outer blockMode) blockMode {
	if outer == modeStylesheet {
		return modeStylesheet
	}
	return modeDeclarations
}

func (p *Parser) parseStylesheet() {
	// без flushTrivia: ведущие пробелы и комментарии принадлежат корню
	p.b.StartNode(syntax.SourceFile)
	inRecovery := false
	for !p.eof() {
		if p.at(syntax.Semicolon) || p.at(syntax.CDO) || p.at(syntax.CDC) {
			p.bump()
			continue
		}
		res := p.parseItem(modeStylesheet)
		if res == itemNone {
			// одна ошибка на серию мусора
			if !inRecovery {
				p.errorAt(diag.RuleOrSelectorExpected)
				inRecovery = true
			}
			p.start(syntax.Error)
			if !p.skipBalanced() {
				p.bump() // лишняя '}'
			}
			p.finish()
			continue
		}
		inRecovery = false
		if res == itemSemi && !p.eof() && !p.at(syntax.Semicolon) {
			p.errorAt(diag.SemiColonExpected)
			p.recoverUntil(semiSet, rbraceSet)
		}
	}
	p.flushTrivia()
	p.finish()
}

// parseBlock разбирает '{' body '}'. Вызывается на '{'.
func (p *Parser) parseBlock(mode blockMode) {
	if !p.enter() {
		p.tooDeep()
		return
	}
	defer p.leave()

	p.start(syntax.Block)
	p.bump() // '{'
	for !p.eof() && !p.at(syntax.RBrace) {
		if p.eat(syntax.Semicolon) {
			continue
		}
		res := p.parseItem(mode)
		if res == itemNone {
			p.errorAt(mode.itemExpected())
			p.recoverUntil(semiSet, rbraceSet)
			continue
		}
		if p.eof() || p.at(syntax.RBrace) {
			break
		}
		if res == itemSemi && !p.at(syntax.Semicolon) {
			p.errorAt(diag.SemiColonExpected)
			p.recoverUntil(semiSet, rbraceSet)
		}
	}
	p.expect(syntax.RBrace, diag.RightCurlyExpected)
	p.finish()
}

// parseRawBlock пропускает тело, не разбирая его (неизвестные at-правила).
func (p *Parser) parseRawBlock() {
	p.start(syntax.Block)
	p.bump()
	for !p.eof() && p.skipBalanced() {
	}
	p.expect(syntax.RBrace, diag.RightCurlyExpected)
	p.finish()
}

// parseBody: блок, либо LeftCurlyExpected и попытка дойти до '{'.
func (p *Parser) parseBody(mode blockMode) {
	if p.at(syntax.LBrace) {
		p.parseBlock(mode)
		return
	}
	p.errorAt(diag.LeftCurlyExpected)
	p.recoverUntil(syntax.EmptySet, blockStartSet)
	if p.at(syntax.LBrace) {
		p.parseBlock(mode)
	}
}

// parseItem разбирает один элемент списка правил в режиме mode.
func (p *Parser) parseItem(mode blockMode) itemResult {
	switch p.current() {
	case syntax.AtKeyword:
		// @page :first: не переменная
		if p.dialect == syntax.DialectLESS && (p.ctx() == syntax.None || p.glued(0)) {
			if p.nth(1) == syntax.Colon {
				return p.parseLessVariable()
			}
			if p.ctx() == syntax.None && p.glued(0) && p.nth(1) == syntax.LParen {
				return p.parseDetachedCall()
			}
		}
		if mode == modePage && p.ctx() == syntax.None {
			return p.parsePageMarginBox()
		}
		return p.parseAtRule(mode)
	case syntax.DollarName:
		if p.dialect == syntax.DialectSCSS && p.nth(1) == syntax.Colon {
			return p.parseScssVariable()
		}
		return itemNone
	}

	if p.dialect == syntax.DialectLESS {
		if res := p.parseLessMixin(mode); res != itemNone {
			return res
		}
	}
	if mode != modeStylesheet && (p.isDeclarationStart() || p.atBrokenDeclaration()) {
		return p.parseDeclaration()
	}
	switch mode {
	case modeKeyframes:
		return p.parseKeyframeBlock()
	case modePage:
		return itemNone
	}
	return p.parseRuleSet(mode != modeStylesheet)
}

// parseRuleSet: selectors [guard] block.
func (p *Parser) parseRuleSet(nested bool) itemResult {
	if !p.atSelectorStart(nested) {
		return itemNone
	}
	p.start(syntax.RuleSet)
	p.parseSelectorList(nested)
	if p.dialect == syntax.DialectLESS && p.atContextual(syntax.KwWhen) {
		p.parseGuard()
	}
	if p.at(syntax.LBrace) {
		p.parseBlock(modeDeclarations)
	} else {
		p.errorAt(diag.LeftCurlyExpected)
		consume := semiSet
		if !nested {
			consume = declStopSet
		}
		p.recoverUntil(consume, syntax.NewTokenSet(syntax.LBrace, syntax.RBrace))
		if p.at(syntax.LBrace) {
			p.parseBlock(modeDeclarations)
		}
	}
	p.finish()
	return itemBlock
}

// atBrokenDeclaration: "color red;": идентификатор без ':' и без блока
// впереди разбирается как декларация, чтобы получить ColonExpected.
func (p *Parser) atBrokenDeclaration() bool {
	if !p.at(syntax.Ident) || p.atContextual(syntax.FunctionToken) {
		return false
	}
	return p.scanTerminator() != syntax.LBrace
}
