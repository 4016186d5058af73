package docsource

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/complyscan/complyscan/internal/document"
)

// openCSV reads a CSV file as a single-page document whose records form
// one table. The page text joins the cells so phrase search still sees
// the content.
func openCSV(path string) ([]document.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var text strings.Builder
	for _, row := range records {
		text.WriteString(strings.Join(row, "  "))
		text.WriteString("\n")
	}

	page := document.Page{
		Number: 1,
		Text:   text.String(),
		Tables: []document.Table{{Rows: records}},
	}
	return []document.Page{page}, nil
}
