package docsource

import (
	"regexp"
	"strings"

	"github.com/complyscan/complyscan/internal/document"
)

// Cell grids are recovered from runs of delimited text lines: a line
// splits into cells on tabs, runs of 2+ spaces, or pipes. Consecutive
// multi-cell lines form one table; a table needs at least two rows
// (header plus data). This is a best-effort reconstruction from
// extracted text, not layout analysis.

var spaceSplit = regexp.MustCompile(`\t+|\s{2,}`)

func tablesFromText(text string) []document.Table {
	var tables []document.Table
	var rows [][]string

	flush := func() {
		if len(rows) >= 2 {
			tables = append(tables, document.Table{Rows: rows})
		}
		rows = nil
	}

	for _, line := range strings.Split(text, "\n") {
		cells := splitCells(line)
		if len(cells) >= 2 {
			rows = append(rows, cells)
		} else {
			flush()
		}
	}
	flush()
	return tables
}

func splitCells(line string) []string {
	s := strings.TrimSpace(line)
	if s == "" {
		return nil
	}

	var parts []string
	if strings.Contains(s, "|") {
		parts = strings.Split(strings.Trim(s, "|"), "|")
	} else {
		parts = spaceSplit.Split(s, -1)
	}

	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	// A line that collapses to a single cell is prose, not a row.
	if len(cells) < 2 {
		return nil
	}
	return cells
}

// pagesFromText splits form-feed separated text into numbered pages,
// each with its recovered tables. Page numbering follows the separator
// positions so blank pages keep their slot.
func pagesFromText(text string) []document.Page {
	var pages []document.Page
	for i, chunk := range strings.Split(text, "\f") {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		pages = append(pages, document.Page{
			Number: i + 1,
			Text:   chunk,
			Tables: tablesFromText(chunk),
		})
	}
	return pages
}
