// Package syntax holds the kind taxonomy shared by the lexer, the parser and
// the tree layers, plus the token-set and input-buffer primitives built on it.
package syntax

//go:generate go run ../../cmd/kindgen -in grammar.toml -out kind_gen.go

import "fmt"

// Kind labels both tokens and CST nodes.
// Token kinds are numbered below TokenKindLimit, node kinds above.
type Kind uint16

type directive struct {
	kind    Kind
	dialect Dialect
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

// IsToken reports whether k is a token-class kind.
func (k Kind) IsToken() bool {
	return k < firstNodeKind
}

// IsNode reports whether k labels a CST node.
func (k Kind) IsNode() bool {
	return k >= firstNodeKind && int(k) < kindCount
}

// IsTrivia: whitespace and comments.
func (k Kind) IsTrivia() bool {
	return k.IsToken() && triviaKinds.Contains(k)
}

// IsPunct reports whether k has a fixed spelling.
func (k Kind) IsPunct() bool {
	return int(k) < len(punctText) && punctText[k] != ""
}

// Text returns the fixed spelling of a punctuation kind, or "".
func (k Kind) Text() string {
	if int(k) < len(punctText) {
		return punctText[k]
	}
	return ""
}

// NodeDialect reports which list of the taxonomy a node kind belongs to.
// Token kinds and core nodes report DialectCSS.
func (k Kind) NodeDialect() Dialect {
	switch {
	case k >= firstLessNode:
		return DialectLESS
	case k >= firstScssNode:
		return DialectSCSS
	default:
		return DialectCSS
	}
}

// Keyword returns the contextual keyword kind for an identifier, or None.
// Matching is ASCII case-insensitive.
func Keyword(name string) Kind {
	if k, ok := keywordKinds[asciiLower(name)]; ok {
		return k
	}
	return None
}

// Directive returns the contextual kind of an at-keyword name (without '@')
// under dialect d. Directives that belong to another dialect return None.
// Vendor-prefixed keyframes (-webkit-keyframes) classify as AtKeyframes.
func Directive(name string, d Dialect) Kind {
	name = asciiLower(name)
	entry, ok := directiveKinds[name]
	if !ok {
		if stripped := StripVendorPrefix(name); stripped != name && stripped == "keyframes" {
			return AtKeyframes
		}
		return None
	}
	if entry.dialect != DialectCSS && entry.dialect != d {
		return None
	}
	return entry.kind
}

// StripVendorPrefix drops a leading -webkit-, -moz-, -ms-, -o- style prefix.
// Custom properties (--x) are returned unchanged.
func StripVendorPrefix(name string) string {
	if len(name) < 3 || name[0] != '-' || name[1] == '-' {
		return name
	}
	for i := 1; i < len(name); i++ {
		if name[i] == '-' {
			if i+1 < len(name) {
				return name[i+1:]
			}
			return name
		}
	}
	return name
}

// VendorPrefix returns the "-webkit-" style prefix of name, or "".
func VendorPrefix(name string) string {
	stripped := StripVendorPrefix(name)
	if stripped == name {
		return ""
	}
	return name[:len(name)-len(stripped)]
}

func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
