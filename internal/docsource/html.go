package docsource

import (
	"fmt"
	"os"
	"strings"

	"github.com/complyscan/complyscan/internal/document"
	"golang.org/x/net/html"
)

// openHTML reads an HTML document as a single page. Block text is
// flattened in document order and <table> elements become real grids.
func openHTML(path string) ([]document.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	root, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var (
		text   strings.Builder
		tables []document.Table
	)

	appendBlock := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if text.Len() > 0 {
			text.WriteString("\n")
		}
		text.WriteString(s)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "table":
				tbl := tableFromNode(n)
				if len(tbl.Rows) >= 2 {
					tables = append(tables, tbl)
				}
				// Flatten the grid into the page text so phrase
				// search sees cell content too.
				for _, row := range tbl.Rows {
					appendBlock(strings.Join(row, "  "))
				}
				return
			case "h1", "h2", "h3", "h4", "h5", "h6", "p", "li", "blockquote":
				appendBlock(textContent(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(root); body != nil {
		walk(body)
	} else {
		walk(root)
	}

	page := document.Page{
		Number: 1,
		Text:   text.String(),
		Tables: tables,
	}
	return []document.Page{page}, nil
}

func tableFromNode(table *html.Node) document.Table {
	var rows [][]string
	var findRows func(*html.Node)
	findRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					cells = append(cells, textContent(c))
				}
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findRows(c)
		}
	}
	findRows(table)
	return document.Table{Rows: rows}
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
