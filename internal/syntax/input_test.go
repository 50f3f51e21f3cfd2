package syntax

import "testing"

func TestInputEOFSentinel(t *testing.T) {
	in := NewInput(0)
	in.Push(Semicolon)
	tests := []struct {
		idx  int
		kind Kind
	}{
		{-1, EOF},
		{0, Semicolon},
		{1, EOF},
		{1000, EOF},
	}
	for _, tt := range tests {
		if got := in.Kind(tt.idx); got != tt.kind {
			t.Errorf("Kind(%d) = %s, want %s", tt.idx, got, tt.kind)
		}
	}
	if in.ContextualKind(5) != None {
		t.Errorf("ContextualKind past end should be None")
	}
	if in.WhitespaceAfter(5) {
		t.Errorf("WhitespaceAfter past end should be false")
	}
}

func TestInputContextualVariants(t *testing.T) {
	in := NewInput(8)
	in.PushIdentifier(KwAnd)
	in.PushFunction()
	in.PushIDHash()
	in.PushUnrestrictedHash()
	in.PushHexColor()
	in.PushUnknownDimension()
	in.PushDimension(DimLength)
	in.PushAtKeyword(AtMedia)

	want := []struct{ kind, ctx Kind }{
		{Ident, KwAnd},
		{Ident, FunctionToken},
		{HashToken, IdHash},
		{HashToken, UnrestrictedHash},
		{HashToken, HexColor},
		{Dimension, UnknownDimension},
		{Dimension, DimLength},
		{AtKeyword, AtMedia},
	}
	for i, w := range want {
		if in.Kind(i) != w.kind || in.ContextualKind(i) != w.ctx {
			t.Errorf("token %d = (%s, %s), want (%s, %s)", i, in.Kind(i), in.ContextualKind(i), w.kind, w.ctx)
		}
	}
}

func TestInputJointGrowsPerWord(t *testing.T) {
	in := NewInput(0)
	for i := 0; i < 130; i++ {
		in.Push(Ident)
		wantWords := i/64 + 1
		if in.words() != wantWords {
			t.Fatalf("after %d pushes: %d words, want %d", i+1, in.words(), wantWords)
		}
		if i%3 == 0 {
			in.MarkWhitespaceFollows()
		}
	}
	for i := 0; i < 130; i++ {
		if got, want := in.WhitespaceAfter(i), i%3 == 0; got != want {
			t.Errorf("WhitespaceAfter(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestInputMarkOnEmptyIsNoop(t *testing.T) {
	in := NewInput(0)
	in.MarkWhitespaceFollows()
	if in.Len() != 0 {
		t.Fatalf("Len = %d", in.Len())
	}
}
