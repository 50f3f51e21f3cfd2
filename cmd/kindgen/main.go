// Command kindgen renders internal/syntax/kind_gen.go from grammar.toml.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"go/format"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type word struct {
	Text    string `toml:"text"`
	Name    string `toml:"name"`
	Dialect string `toml:"dialect"`
}

type grammar struct {
	TokenLimit int      `toml:"token_limit"`
	Tokens     []string `toml:"tokens"`
	Trivia     []string `toml:"trivia"`
	Contextual []string `toml:"contextual"`
	Punct      []word   `toml:"punct"`
	Keyword    []word   `toml:"keyword"`
	Directive  []word   `toml:"directive"`
	Nodes      struct {
		Core []string `toml:"core"`
		Scss []string `toml:"scss"`
		Less []string `toml:"less"`
	} `toml:"nodes"`
}

var errMissingKey = errors.New("grammar: missing required key")

func main() {
	in := flag.String("in", "grammar.toml", "grammar description")
	out := flag.String("out", "kind_gen.go", "output Go file")
	flag.Parse()

	g, err := load(*in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "kindgen:", err)
		os.Exit(1)
	}
	src, err := render(g)
	if err != nil {
		fmt.Fprintln(os.Stderr, "kindgen:", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, src, 0o600); err != nil {
		fmt.Fprintln(os.Stderr, "kindgen:", err)
		os.Exit(1)
	}
}

func load(path string) (*grammar, error) {
	var g grammar
	meta, err := toml.DecodeFile(path, &g)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	for _, key := range [][]string{{"token_limit"}, {"tokens"}, {"punct"}, {"nodes", "core"}} {
		if !meta.IsDefined(key...) {
			return nil, fmt.Errorf("%w: %s", errMissingKey, strings.Join(key, "."))
		}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in %s: %v", path, undecoded)
	}
	return &g, nil
}

// tokenNames returns every token-class kind in declaration order.
func (g *grammar) tokenNames() []string {
	names := []string{"None", "EOF"}
	for _, p := range g.Punct {
		names = append(names, p.Name)
	}
	names = append(names, g.Tokens...)
	names = append(names, g.Contextual...)
	for _, k := range g.Keyword {
		names = append(names, k.Name)
	}
	for _, d := range g.Directive {
		names = append(names, d.Name)
	}
	return names
}

func (g *grammar) nodeNames() []string {
	names := make([]string, 0, len(g.Nodes.Core)+len(g.Nodes.Scss)+len(g.Nodes.Less))
	names = append(names, g.Nodes.Core...)
	names = append(names, g.Nodes.Scss...)
	names = append(names, g.Nodes.Less...)
	return names
}

func dialectConst(name string) (string, error) {
	switch name {
	case "", "css":
		return "DialectCSS", nil
	case "scss":
		return "DialectSCSS", nil
	case "less":
		return "DialectLESS", nil
	default:
		return "", fmt.Errorf("unknown dialect %q", name)
	}
}

func render(g *grammar) ([]byte, error) {
	tokens := g.tokenNames()
	nodes := g.nodeNames()
	if len(tokens) > g.TokenLimit {
		return nil, fmt.Errorf("%d token kinds do not fit below the token limit %d", len(tokens), g.TokenLimit)
	}
	if len(g.Nodes.Scss) == 0 || len(g.Nodes.Less) == 0 {
		return nil, fmt.Errorf("%w: nodes.scss and nodes.less must be non-empty", errMissingKey)
	}
	seen := make(map[string]bool, len(tokens)+len(nodes))
	for _, name := range append(append([]string{}, tokens...), nodes...) {
		if seen[name] {
			return nil, fmt.Errorf("duplicate kind name %q", name)
		}
		seen[name] = true
	}

	var b bytes.Buffer
	b.WriteString("// Code generated by kindgen from grammar.toml. DO NOT EDIT.\n\n")
	b.WriteString("package syntax\n\n")

	b.WriteString("const (\n")
	for i, name := range append(append([]string{}, tokens...), nodes...) {
		if i == 0 {
			fmt.Fprintf(&b, "\t%s Kind = iota\n", name)
			continue
		}
		fmt.Fprintf(&b, "\t%s\n", name)
	}
	b.WriteString(")\n\n")

	b.WriteString("const (\n")
	fmt.Fprintf(&b, "\tTokenKindLimit = %d\n", g.TokenLimit)
	fmt.Fprintf(&b, "\tfirstNodeKind = %s\n", g.Nodes.Core[0])
	fmt.Fprintf(&b, "\tfirstScssNode = %s\n", g.Nodes.Scss[0])
	fmt.Fprintf(&b, "\tfirstLessNode = %s\n", g.Nodes.Less[0])
	fmt.Fprintf(&b, "\tkindCount = int(%s) + 1\n", nodes[len(nodes)-1])
	b.WriteString(")\n\n")

	b.WriteString("var kindNames = [...]string{\n")
	for _, name := range append(append([]string{}, tokens...), nodes...) {
		fmt.Fprintf(&b, "\t%s: %q,\n", name, name)
	}
	b.WriteString("}\n\n")

	b.WriteString("var punctText = [...]string{\n")
	for _, p := range g.Punct {
		fmt.Fprintf(&b, "\t%s: %q,\n", p.Name, p.Text)
	}
	b.WriteString("}\n\n")

	b.WriteString("var triviaKinds = NewTokenSet(")
	b.WriteString(strings.Join(g.Trivia, ", "))
	b.WriteString(")\n\n")

	b.WriteString("var keywordKinds = map[string]Kind{\n")
	for _, k := range g.Keyword {
		fmt.Fprintf(&b, "\t%q: %s,\n", k.Text, k.Name)
	}
	b.WriteString("}\n\n")

	b.WriteString("var directiveKinds = map[string]directive{\n")
	for _, d := range g.Directive {
		dc, err := dialectConst(d.Dialect)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&b, "\t%q: {%s, %s},\n", d.Text, d.Name, dc)
	}
	b.WriteString("}\n")

	return format.Source(b.Bytes())
}
