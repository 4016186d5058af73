package docsource

import (
	"fmt"
	"os"
	"strings"

	"github.com/complyscan/complyscan/internal/document"
	"github.com/fumiama/go-docx"
)

// openDOCX reads a .docx document as a single page. Paragraph runs are
// flattened to lines; tabular content laid out with tab stops is
// recovered by the shared grid heuristic.
func openDOCX(path string) ([]document.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var lines []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if text := paragraphText(para); text != "" {
			lines = append(lines, text)
		}
	}

	text := strings.Join(lines, "\n")
	page := document.Page{
		Number: 1,
		Text:   text,
		Tables: tablesFromText(text),
	}
	return []document.Page{page}, nil
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
