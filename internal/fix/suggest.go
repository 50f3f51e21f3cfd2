package fix

import (
	"fmt"

	"cascade/internal/diag"
)

// Suggest returns the fixes for one marker in text. Most markers have none:
// only missing punctuation and unterminated tokens are mechanical to repair.
func Suggest(text []byte, m diag.Marker) []Fix {
	if m.Offset < 0 || m.End() > len(text) {
		return nil
	}
	var fixes []Fix
	switch m.Kind {
	case diag.SemiColonExpected:
		fixes = append(fixes, insertAfterPrev(text, m.Offset, ";", AlwaysSafe))
	case diag.ColonExpected:
		fixes = append(fixes, insertAfterPrev(text, m.Offset, ":", AlwaysSafe))
	case diag.RightParenthesisExpected:
		fixes = append(fixes, insertAfterPrev(text, m.Offset, ")", SafeWithHeuristics))
	case diag.RightSquareBracketExpected:
		fixes = append(fixes, insertAfterPrev(text, m.Offset, "]", SafeWithHeuristics))
	case diag.RightCurlyExpected:
		// в конце файла закрывающая скобка однозначна
		app := SafeWithHeuristics
		if isBlankFrom(text, m.Offset) {
			app = AlwaysSafe
		}
		f := insertAfterPrev(text, m.Offset, "}", app)
		f.Edits[0].NewText = " }"
		fixes = append(fixes, f)
	case diag.UnterminatedString:
		if m.Length == 0 {
			break
		}
		if q := text[m.Offset]; q == '"' || q == '\'' {
			end := m.End()
			for end > m.Offset+1 && (text[end-1] == '\n' || text[end-1] == '\r') {
				end--
			}
			fixes = append(fixes, InsertText("close string", end, string(q)))
		}
	case diag.UnterminatedComment:
		fixes = append(fixes, InsertText("close comment", m.End(), "*/"))
	case diag.UnexpectedCharacter:
		if m.Length > 0 {
			fixes = append(fixes, DeleteSpan("remove unexpected character", m.Offset, m.Length,
				string(text[m.Offset:m.End()]), WithApplicability(SafeWithHeuristics)))
		}
	}
	for i := range fixes {
		fixes[i].Kind = m.Kind
		if len(fixes) == 1 {
			fixes[i].IsPreferred = true
		}
	}
	return fixes
}

// insertAfterPrev inserts punct right after the last non-blank byte before
// offset, so `a: b c: d` becomes `a: b; c: d` rather than `a: b ;c: d`.
func insertAfterPrev(text []byte, offset int, punct string, app Applicability) Fix {
	at := offset
	for at > 0 && isBlank(text[at-1]) {
		at--
	}
	return InsertText(fmt.Sprintf("insert `%s`", punct), at, punct, WithApplicability(app))
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func isBlankFrom(text []byte, offset int) bool {
	for _, b := range text[offset:] {
		if !isBlank(b) {
			return false
		}
	}
	return true
}
