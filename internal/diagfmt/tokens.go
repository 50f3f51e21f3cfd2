package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"cascade/internal/lexer"
	"cascade/internal/source"
	"cascade/internal/syntax"
)

type TokenOutput struct {
	Kind    string `json:"kind"`
	Context string `json:"context,omitempty"`
	Text    string `json:"text"`
	Start   uint32 `json:"start"`
	End     uint32 `json:"end"`
	Trivia  bool   `json:"trivia,omitempty"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате.
// f may be nil; positions are then byte offsets only.
func FormatTokensPretty(w io.Writer, lexed *lexer.Lexed, f *source.File, withTrivia bool) error {
	n := 0
	for i, tok := range lexed.Tokens() {
		if !withTrivia && tok.Kind.IsTrivia() {
			continue
		}
		n++
		if _, err := fmt.Fprintf(w, "%3d: %-18s %q", n, tok.Kind.String(), lexed.Text(i)); err != nil {
			return err
		}
		if tok.Ctx != syntax.None {
			fmt.Fprintf(w, " [%s]", tok.Ctx)
		}
		if f != nil {
			start, end := f.LineCol(tok.Start), f.LineCol(tok.End)
			fmt.Fprintf(w, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		} else {
			fmt.Fprintf(w, " at %d..%d", tok.Start, tok.End)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, lexed *lexer.Lexed, withTrivia bool) error {
	output := make([]TokenOutput, 0, lexed.Len())
	for i, tok := range lexed.Tokens() {
		if !withTrivia && tok.Kind.IsTrivia() {
			continue
		}
		out := TokenOutput{
			Kind:   tok.Kind.String(),
			Text:   lexed.Text(i),
			Start:  tok.Start,
			End:    tok.End,
			Trivia: tok.Kind.IsTrivia(),
		}
		if tok.Ctx != syntax.None {
			out.Context = tok.Ctx.String()
		}
		output = append(output, out)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
