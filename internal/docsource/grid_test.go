package docsource

import "testing"

func TestTablesFromTextSpaceAligned(t *testing.T) {
	text := "Consolidated Balance Sheet\n" +
		"\n" +
		"Line Item            2023      2022\n" +
		"Total Assets         1,000     900\n" +
		"Total Liabilities    600       550\n" +
		"Total Equity         400       350\n" +
		"\n" +
		"Narrative paragraph follows the table and is ignored.\n"

	tables := tablesFromText(text)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	rows := tables[0].Rows
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0][1] != "2023" || rows[0][2] != "2022" {
		t.Errorf("header row = %v", rows[0])
	}
	if rows[1][0] != "Total Assets" || rows[1][1] != "1,000" {
		t.Errorf("data row = %v", rows[1])
	}
}

func TestTablesFromTextPipeDelimited(t *testing.T) {
	text := "| Item | 2023 |\n| Revenue | 120 |\n| Total | 120 |\n"
	tables := tablesFromText(text)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	rows := tables[0].Rows
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[1][0] != "Revenue" || rows[1][1] != "120" {
		t.Errorf("data row = %v", rows[1])
	}
}

func TestTablesFromTextSingleRowRunsIgnored(t *testing.T) {
	// A lone aligned line is not a table (no header + data pair).
	text := "Label      Value\nprose line\nmore prose\n"
	if tables := tablesFromText(text); len(tables) != 0 {
		t.Fatalf("expected no tables, got %d", len(tables))
	}
}

func TestTablesFromTextMultipleTables(t *testing.T) {
	text := "A    1\nB    2\n\nprose\n\nC    3\nD    4\n"
	tables := tablesFromText(text)
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
}

func TestPagesFromText(t *testing.T) {
	text := "page one text\fpage two text\f\fpage four text"
	pages := pagesFromText(text)
	if len(pages) != 3 {
		t.Fatalf("expected 3 non-empty pages, got %d", len(pages))
	}
	// Page numbering follows separator positions: the empty third
	// slot is skipped but page four keeps its number.
	if pages[0].Number != 1 || pages[1].Number != 2 || pages[2].Number != 4 {
		t.Errorf("page numbers = %d, %d, %d", pages[0].Number, pages[1].Number, pages[2].Number)
	}
}

func TestSplitCellsProse(t *testing.T) {
	if cells := splitCells("This is a normal sentence with single spaces."); cells != nil {
		t.Fatalf("prose should not split into cells, got %v", cells)
	}
	if cells := splitCells(""); cells != nil {
		t.Fatalf("empty line should yield no cells, got %v", cells)
	}
}
