// Package statement classifies pages by financial-statement type and
// extracts period columns and key line items from their tables.
package statement

import (
	"regexp"
	"strings"

	"github.com/complyscan/complyscan/internal/catalog"
	"github.com/complyscan/complyscan/internal/document"
	"github.com/complyscan/complyscan/internal/money"
)

// Statement is one classified table: its reporting periods and the
// key financial line items found in it. Derived per table and discarded
// after the operation returns.
type Statement struct {
	Type    catalog.StatementType `json:"type"`
	Page    int                   `json:"page"`
	Periods []string              `json:"periods"`
	// KeyItems maps the literal row label (not canonicalized) to
	// period→value; nil values mark unparseable cells.
	KeyItems map[string]map[string]*float64 `json:"key_items"`
	// TableData preserves the first rows of the raw grid for audit.
	TableData [][]string `json:"table_data"`
}

// maxAuditRows bounds the raw table content carried in results.
const maxAuditRows = 10

var yearToken = regexp.MustCompile(`20\d{2}`)

// ClassifyPage returns the statement type for a page's text, checking
// phrase groups in fixed precedence. StatementNone means the page (and
// all its tables) is skipped.
func ClassifyPage(pageText string) catalog.StatementType {
	lower := strings.ToLower(pageText)
	for _, group := range catalog.StatementPhrases {
		for _, phrase := range group.Phrases {
			if strings.Contains(lower, phrase) {
				return group.Type
			}
		}
	}
	return catalog.StatementNone
}

// FromTable derives a Statement from one table on a classified page.
func FromTable(typ catalog.StatementType, page int, tbl document.Table) Statement {
	st := Statement{
		Type:     typ,
		Page:     page,
		KeyItems: map[string]map[string]*float64{},
	}

	if len(tbl.Rows) > 0 {
		// Period columns: header cells carrying a 20xx year token, in
		// header order, duplicates allowed.
		for _, cell := range tbl.Rows[0] {
			if yearToken.MatchString(cell) {
				st.Periods = append(st.Periods, strings.TrimSpace(cell))
			}
		}
	}

	if len(tbl.Rows) == 0 {
		return st
	}
	for _, row := range tbl.Rows[1:] {
		if len(row) == 0 {
			continue
		}
		label := strings.TrimSpace(row[0])
		if !matchesKeyItem(label) {
			continue
		}
		values := map[string]*float64{}
		for i, period := range st.Periods {
			if i+1 < len(row) {
				values[period] = money.Normalize(row[i+1])
			}
		}
		st.KeyItems[label] = values
	}

	rows := tbl.Rows
	if len(rows) > maxAuditRows {
		rows = rows[:maxAuditRows]
	}
	st.TableData = rows

	return st
}

func matchesKeyItem(label string) bool {
	lower := strings.ToLower(label)
	for _, kw := range catalog.KeyItemKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
