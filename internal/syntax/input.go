package syntax

// Input is the parser's view of the non-trivia token stream.
// It is a struct of arrays and never stores text: callers address text
// by token index through the lexer output.
type Input struct {
	kind       []Kind
	contextual []Kind
	joint      []uint64 // bit i: token i is followed by trivia
}

// NewInput preallocates room for n tokens.
func NewInput(n int) *Input {
	return &Input{
		kind:       make([]Kind, 0, n),
		contextual: make([]Kind, 0, n),
		joint:      make([]uint64, 0, n/64+1),
	}
}

// Push appends a token without a contextual reading.
func (in *Input) Push(kind Kind) {
	in.push(kind, None)
}

// PushIdentifier appends an identifier; ctx is a keyword kind or None.
func (in *Input) PushIdentifier(ctx Kind) {
	in.push(Ident, ctx)
}

// PushFunction appends an identifier immediately followed by '('.
func (in *Input) PushFunction() {
	in.push(Ident, FunctionToken)
}

// PushAtKeyword appends an at-keyword; ctx is a directive kind or None.
func (in *Input) PushAtKeyword(ctx Kind) {
	in.push(AtKeyword, ctx)
}

// PushIDHash appends a hash whose name is a valid identifier.
func (in *Input) PushIDHash() {
	in.push(HashToken, IdHash)
}

// PushUnrestrictedHash appends a hash whose name is not an identifier.
func (in *Input) PushUnrestrictedHash() {
	in.push(HashToken, UnrestrictedHash)
}

// PushHexColor appends a hash of 3, 4, 6 or 8 hex digits.
func (in *Input) PushHexColor() {
	in.push(HashToken, HexColor)
}

// PushDimension appends a dimension with a classified unit.
func (in *Input) PushDimension(unit Kind) {
	in.push(Dimension, unit)
}

// PushUnknownDimension appends a dimension whose unit is not recognised.
func (in *Input) PushUnknownDimension() {
	in.push(Dimension, UnknownDimension)
}

func (in *Input) push(kind, ctx Kind) {
	idx := len(in.kind)
	if idx%64 == 0 {
		in.joint = append(in.joint, 0)
	}
	in.kind = append(in.kind, kind)
	in.contextual = append(in.contextual, ctx)
}

// MarkWhitespaceFollows flags the most recently pushed token.
func (in *Input) MarkWhitespaceFollows() {
	idx := len(in.kind) - 1
	if idx < 0 {
		return
	}
	in.joint[idx/64] |= 1 << (idx % 64)
}

// Len is the number of pushed tokens.
func (in *Input) Len() int {
	return len(in.kind)
}

// Kind returns EOF for indices outside the buffer.
func (in *Input) Kind(i int) Kind {
	if i < 0 || i >= len(in.kind) {
		return EOF
	}
	return in.kind[i]
}

// ContextualKind returns None for indices outside the buffer.
func (in *Input) ContextualKind(i int) Kind {
	if i < 0 || i >= len(in.contextual) {
		return None
	}
	return in.contextual[i]
}

// WhitespaceAfter reports whether trivia separates token i from token i+1.
func (in *Input) WhitespaceAfter(i int) bool {
	if i < 0 || i >= len(in.kind) {
		return false
	}
	return in.joint[i/64]>>(i%64)&1 == 1
}

// words exposes the joint bitset size for tests.
func (in *Input) words() int {
	return len(in.joint)
}
