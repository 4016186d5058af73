package docsource

import (
	"bytes"
	"os"
	"strings"

	"github.com/complyscan/complyscan/internal/document"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// openMarkdown reads a Markdown document as a single page. Block text
// comes from the goldmark AST; pipe tables in the source are recovered
// as grids by the shared heuristic.
func openMarkdown(path string) ([]document.Page, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	root := md.Parser().Parse(reader)

	var blocks []string
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if t := nodeText(n, src); t != "" {
			blocks = append(blocks, t)
		}
	}

	page := document.Page{
		Number: 1,
		Text:   strings.Join(blocks, "\n\n"),
		Tables: tablesFromText(string(src)),
	}
	return []document.Page{page}, nil
}

// nodeText gets the text content of a goldmark AST node, preserving
// source line breaks within block nodes.
func nodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			if n.Type() != ast.TypeBlock {
				buf.Write(t.Value(src))
			}
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(nodeText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
