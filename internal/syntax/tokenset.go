package syntax

import "fmt"

// TokenSet is a bitset over token-class kinds.
// Every token kind is below TokenKindLimit (128), so two words suffice.
type TokenSet [2]uint64

// EmptySet contains nothing.
var EmptySet TokenSet

// NewTokenSet builds a set from a literal list of token kinds.
func NewTokenSet(kinds ...Kind) TokenSet {
	var s TokenSet
	for _, k := range kinds {
		if !k.IsToken() {
			// узел попал бы на бит чужого токена
			panic(fmt.Sprintf("syntax: %s is not a token kind", k))
		}
		s[k>>6&1] |= 1 << (k & 63)
	}
	return s
}

// Union returns s ∪ o.
func (s TokenSet) Union(o TokenSet) TokenSet {
	return TokenSet{s[0] | o[0], s[1] | o[1]}
}

// With returns s plus the given kinds.
func (s TokenSet) With(kinds ...Kind) TokenSet {
	return s.Union(NewTokenSet(kinds...))
}

// Contains is a single shift and mask. Node kinds are never members.
func (s TokenSet) Contains(k Kind) bool {
	return k < TokenKindLimit && s[k>>6&1]>>(k&63)&1 == 1
}

// Kinds lists members in ascending order.
func (s TokenSet) Kinds() []Kind {
	var out []Kind
	for k := Kind(0); k < TokenKindLimit; k++ {
		if s.Contains(k) {
			out = append(out, k)
		}
	}
	return out
}
