package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cascade/internal/cssnode"
	"cascade/internal/lexer"
	"cascade/internal/parser"
	"cascade/internal/syntax"
)

func TestTestdataSatisfiesInvariants(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "testdata", "*", "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no testdata")
	}
	for _, path := range paths {
		dialect, ok := syntax.DialectForPath(path)
		if !ok {
			continue
		}
		t.Run(filepath.Base(filepath.Dir(path))+"/"+filepath.Base(path), func(t *testing.T) {
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			text := string(src)
			lexed := lexer.Tokenize(text, dialect)
			tree := parser.Parse(lexed, parser.Options{})
			nodes := cssnode.Project(tree, cssnode.ProjectOptions{})
			if err := CheckTree(text, lexed, tree, nodes); err != nil {
				t.Fatal(err)
			}
			if strings.Contains(path, "broken") && len(tree.Errors()) == 0 {
				t.Error("broken input parsed without errors")
			}
		})
	}
}

func TestCheckTreeDetectsLostText(t *testing.T) {
	lexed := lexer.Tokenize("a {}", syntax.DialectCSS)
	tree := parser.Parse(lexed, parser.Options{})
	if err := CheckTree("a {} ", lexed, tree, nil); err == nil {
		t.Fatal("expected a text mismatch")
	}
}

func TestCheckTreeDetectsOrphanIssue(t *testing.T) {
	text := "a { color: red"
	lexed := lexer.Tokenize(text, syntax.DialectCSS)
	tree := parser.Parse(lexed, parser.Options{})
	nodes := cssnode.Project(tree, cssnode.ProjectOptions{})
	if err := CheckTree(text, lexed, tree, nodes); err != nil {
		t.Fatal(err)
	}

	// проекция чужого дерева: ошибка парсера не нашла свой узел
	clean := cssnode.Project(parser.Parse(lexer.Tokenize("a {}", syntax.DialectCSS), parser.Options{}), cssnode.ProjectOptions{})
	if err := CheckTree(text, lexed, tree, clean); err == nil {
		t.Fatal("expected an issue count mismatch")
	}
}
