package diag

import "fmt"

// ErrorKind is the closed set of problems the lexer and parser can report.
// Each kind maps to exactly one Rule via Issue.
type ErrorKind uint8

const (
	// Грамматические "ожидалось X"
	NumberExpected ErrorKind = iota + 1
	ConditionExpected
	RuleOrSelectorExpected
	DotExpected
	ColonExpected
	SemiColonExpected
	TermExpected
	ExpressionExpected
	OperatorExpected
	IdentifierExpected
	PercentageExpected
	URIOrStringExpected
	URIExpected
	VariableNameExpected
	VariableValueExpected
	PropertyValueExpected
	LeftCurlyExpected
	RightCurlyExpected
	LeftSquareBracketExpected
	RightSquareBracketExpected
	LeftParenthesisExpected
	RightParenthesisExpected
	CommaExpected
	PageDirectiveOrDeclarationExpected
	UnknownAtRule
	UnknownKeyword
	SelectorExpected
	StringLiteralExpected
	WhitespaceExpected
	MediaQueryExpected
	IdentifierOrWildcardExpected
	WildcardExpected
	IdentifierOrVariableExpected

	// SCSS control flow
	FromExpected
	ThroughOrToExpected
	InExpected

	// Лексические
	UnterminatedString
	UnterminatedComment
	BadUrl
	UnexpectedCharacter

	errorKindEnd
)

// Rule is the stable external identity of an ErrorKind.
type Rule struct {
	ID      string
	Message string
}

// AllErrorKinds lists every declared kind in order.
func AllErrorKinds() []ErrorKind {
	out := make([]ErrorKind, 0, int(errorKindEnd)-1)
	for k := NumberExpected; k < errorKindEnd; k++ {
		out = append(out, k)
	}
	return out
}

// Issue returns the rule for k. It panics on values outside the enumeration.
func (k ErrorKind) Issue() Rule {
	switch k {
	case NumberExpected:
		return Rule{"css-numberexpected", "number expected"}
	case ConditionExpected:
		return Rule{"css-conditionexpected", "condition expected"}
	case RuleOrSelectorExpected:
		return Rule{"css-ruleorselectorexpected", "at-rule or selector expected"}
	case DotExpected:
		return Rule{"css-dotexpected", "dot expected"}
	case ColonExpected:
		return Rule{"css-colonexpected", "colon expected"}
	case SemiColonExpected:
		return Rule{"css-semicolonexpected", "semi-colon expected"}
	case TermExpected:
		return Rule{"css-termexpected", "term expected"}
	case ExpressionExpected:
		return Rule{"css-expressionexpected", "expression expected"}
	case OperatorExpected:
		return Rule{"css-operatorexpected", "operator expected"}
	case IdentifierExpected:
		return Rule{"css-identifierexpected", "identifier expected"}
	case PercentageExpected:
		return Rule{"css-percentageexpected", "percentage expected"}
	case URIOrStringExpected:
		return Rule{"css-uriorstringexpected", "uri or string expected"}
	case URIExpected:
		return Rule{"css-uriexpected", "URI expected"}
	case VariableNameExpected:
		return Rule{"css-varnameexpected", "variable name expected"}
	case VariableValueExpected:
		return Rule{"css-varvalueexpected", "variable value expected"}
	case PropertyValueExpected:
		return Rule{"css-propertyvalueexpected", "property value expected"}
	case LeftCurlyExpected:
		return Rule{"css-lcurlyexpected", "{ expected"}
	case RightCurlyExpected:
		return Rule{"css-rcurlyexpected", "} expected"}
	case LeftSquareBracketExpected:
		return Rule{"css-lbracketexpected", "[ expected"}
	case RightSquareBracketExpected:
		return Rule{"css-rbracketexpected", "] expected"}
	case LeftParenthesisExpected:
		return Rule{"css-lparentexpected", "( expected"}
	case RightParenthesisExpected:
		return Rule{"css-rparentexpected", ") expected"}
	case CommaExpected:
		return Rule{"css-commaexpected", "comma expected"}
	case PageDirectiveOrDeclarationExpected:
		return Rule{"css-pagedirordeclexpected", "page directive or declaration expected"}
	case UnknownAtRule:
		return Rule{"css-unknownatrule", "at-rule unknown"}
	case UnknownKeyword:
		return Rule{"css-unknownkeyword", "unknown keyword"}
	case SelectorExpected:
		return Rule{"css-selectorexpected", "selector expected"}
	case StringLiteralExpected:
		return Rule{"css-stringliteralexpected", "string literal expected"}
	case WhitespaceExpected:
		return Rule{"css-whitespaceexpected", "whitespace expected"}
	case MediaQueryExpected:
		return Rule{"css-mediaqueryexpected", "media query expected"}
	case IdentifierOrWildcardExpected:
		return Rule{"css-idorwildcardexpected", "identifier or wildcard expected"}
	case WildcardExpected:
		return Rule{"css-wildcardexpected", "wildcard expected"}
	case IdentifierOrVariableExpected:
		return Rule{"css-idorvarexpected", "identifier or variable expected"}
	case FromExpected:
		return Rule{"scss-fromexpected", "'from' expected"}
	case ThroughOrToExpected:
		return Rule{"scss-throughortoexpected", "'through' or 'to' expected"}
	case InExpected:
		return Rule{"scss-inexpected", "'in' expected"}
	case UnterminatedString:
		return Rule{"css-unterminatedstring", "unterminated string"}
	case UnterminatedComment:
		return Rule{"css-unterminatedcomment", "unterminated comment"}
	case BadUrl:
		return Rule{"css-badurl", "malformed url"}
	case UnexpectedCharacter:
		return Rule{"css-unexpectedcharacter", "unexpected character"}
	}
	panic(fmt.Sprintf("diag: no rule for error kind %d", uint8(k)))
}

// ID is shorthand for Issue().ID.
func (k ErrorKind) ID() string {
	return k.Issue().ID
}

func (k ErrorKind) String() string {
	if k == 0 || k >= errorKindEnd {
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
	return k.Issue().ID
}

// LookupRule finds the kind for a rule id; config files refer to rules by id.
func LookupRule(id string) (ErrorKind, bool) {
	for _, k := range AllErrorKinds() {
		if k.Issue().ID == id {
			return k, true
		}
	}
	return 0, false
}
