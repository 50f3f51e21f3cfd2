package lexer

import (
	"cascade/internal/syntax"
)

// [+-]? digits [. digits] [e [+-] digits], затем '%' или единица измерения.
func (lx *Lexer) scanNumeric() Token {
	start := lx.cursor.Mark()
	if b := lx.cursor.Peek(); b == '+' || b == '-' {
		lx.cursor.Bump()
	}
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		next := lx.cursor.PeekAt(1)
		signed := (next == '+' || next == '-') && isDec(lx.cursor.PeekAt(2))
		if isDec(next) || signed {
			lx.cursor.Bump() // 'e'
			if signed {
				lx.cursor.Bump()
			}
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

	if lx.startsIdent() {
		unitStart := lx.cursor.Mark()
		lx.consumeName()
		return lx.emit(start, syntax.Dimension, unitKind(lx.text(unitStart)))
	}
	if lx.cursor.Eat('%') {
		return lx.emit(start, syntax.Percentage, syntax.None)
	}
	return lx.emit(start, syntax.Number, syntax.None)
}

var units = map[string]syntax.Kind{
	"px": syntax.DimLength, "em": syntax.DimLength, "rem": syntax.DimLength,
	"ex": syntax.DimLength, "rex": syntax.DimLength, "ch": syntax.DimLength,
	"rch": syntax.DimLength, "ic": syntax.DimLength, "ric": syntax.DimLength,
	"cap": syntax.DimLength, "rcap": syntax.DimLength, "lh": syntax.DimLength,
	"rlh": syntax.DimLength, "vw": syntax.DimLength, "vh": syntax.DimLength,
	"vi": syntax.DimLength, "vb": syntax.DimLength, "vmin": syntax.DimLength,
	"vmax": syntax.DimLength, "svw": syntax.DimLength, "svh": syntax.DimLength,
	"lvw": syntax.DimLength, "lvh": syntax.DimLength, "dvw": syntax.DimLength,
	"dvh": syntax.DimLength, "cqw": syntax.DimLength, "cqh": syntax.DimLength,
	"cqi": syntax.DimLength, "cqb": syntax.DimLength, "cqmin": syntax.DimLength,
	"cqmax": syntax.DimLength, "cm": syntax.DimLength, "mm": syntax.DimLength,
	"q": syntax.DimLength, "in": syntax.DimLength, "pt": syntax.DimLength,
	"pc": syntax.DimLength,

	"deg": syntax.DimAngle, "grad": syntax.DimAngle, "rad": syntax.DimAngle, "turn": syntax.DimAngle,

	"s": syntax.DimTime, "ms": syntax.DimTime,

	"hz": syntax.DimFrequency, "khz": syntax.DimFrequency,

	"dpi": syntax.DimResolution, "dpcm": syntax.DimResolution,
	"dppx": syntax.DimResolution, "x": syntax.DimResolution,

	"fr": syntax.DimFlex,
}

// unitKind classifies a dimension unit, case-insensitively.
func unitKind(unit string) syntax.Kind {
	if k, ok := units[asciiLower(unit)]; ok {
		return k
	}
	return syntax.UnknownDimension
}
