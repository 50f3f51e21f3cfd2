package cssnode

import (
	"testing"

	"cascade/internal/cst"
	"cascade/internal/syntax"
)

func TestMixinNameStopsAtFirstForeignToken(t *testing.T) {
	b := cst.NewBuilder(nil)
	b.StartNode(syntax.MixinReference)
	b.Token(syntax.Dot, ".")
	b.Token(syntax.Ident, "m")
	b.Token(syntax.Whitespace, " ")
	b.Token(syntax.Bang, "!")
	b.Token(syntax.Ident, "important")
	b.FinishNode()

	if got := mixinName(b.Finish().Root()); got != ".m" {
		t.Fatalf("mixinName = %q, want %q", got, ".m")
	}
}
