// Package finmath verifies cross-cell arithmetic invariants in
// financial tables: the accounting equation, the income equation, and
// column-sum consistency. Checks that cannot be evaluated (missing or
// unparseable governing values) are skipped, not reported.
package finmath

import (
	"fmt"
	"math"
	"strings"

	"github.com/complyscan/complyscan/internal/catalog"
	"github.com/complyscan/complyscan/internal/document"
	"github.com/complyscan/complyscan/internal/money"
)

// Kind identifies the invariant a discrepancy violates.
type Kind string

const (
	KindBalanceSheetImbalance   Kind = "Balance Sheet Imbalance"
	KindIncomeStatementMismatch Kind = "Income Statement Mismatch"
	KindColumnSumMismatch       Kind = "Column Sum Mismatch"
)

// Tolerance absorbs rounding noise; only differences beyond it are
// reported.
const Tolerance = 0.01

// Discrepancy is one detected arithmetic violation. Numeric fields are
// kind-specific; unset ones are omitted from JSON.
type Discrepancy struct {
	Kind        Kind             `json:"type"`
	Page        int              `json:"page"`
	Severity    catalog.Severity `json:"severity,omitempty"`
	TableNumber int              `json:"table_number,omitempty"`
	Column      int              `json:"column,omitempty"`

	Assets            *float64 `json:"assets,omitempty"`
	LiabilitiesEquity *float64 `json:"liabilities_equity,omitempty"`
	Revenue           *float64 `json:"revenue,omitempty"`
	Expenses          *float64 `json:"expenses,omitempty"`
	ExpectedNet       *float64 `json:"expected_net,omitempty"`
	ReportedNet       *float64 `json:"reported_net,omitempty"`
	CalculatedSum     *float64 `json:"calculated_sum,omitempty"`
	ReportedSum       *float64 `json:"reported_sum,omitempty"`

	Difference  float64 `json:"difference"`
	Description string  `json:"description"`
}

// CheckTable runs every applicable check against one table. The
// equation checks are gated on the page text carrying the relevant
// statement phrase; the column-sum check runs unconditionally for any
// table with at least three rows.
func CheckTable(pageText string, page, tableNum int, tbl document.Table) []Discrepancy {
	if len(tbl.Rows) < 2 {
		return nil
	}
	lower := strings.ToLower(pageText)

	var out []Discrepancy
	if strings.Contains(lower, "balance sheet") || strings.Contains(lower, "statement of financial position") {
		if d := CheckBalanceEquation(tbl, page); d != nil {
			out = append(out, *d)
		}
	}
	if strings.Contains(lower, "income statement") || strings.Contains(lower, "statement of operations") {
		if d := CheckIncomeEquation(tbl, page); d != nil {
			out = append(out, *d)
		}
	}
	out = append(out, CheckColumnSums(tbl, page, tableNum)...)
	return out
}

// CheckBalanceEquation verifies assets = liabilities + equity using the
// first value column. The check is suppressed when any governing value
// is unparseable or zero.
func CheckBalanceEquation(tbl document.Table, page int) *Discrepancy {
	var assets, liabilities, equity *float64

	for _, row := range tbl.Rows {
		if len(row) < 2 {
			continue
		}
		label := strings.ToLower(row[0])
		switch {
		case strings.Contains(label, "total assets"):
			assets = money.Normalize(row[1])
		case strings.Contains(label, "total liabilities"):
			liabilities = money.Normalize(row[1])
		case strings.Contains(label, "total equity") || strings.Contains(label, "total stockholders"):
			equity = money.Normalize(row[1])
		}
	}

	if !present(assets) || !present(liabilities) || !present(equity) {
		return nil
	}
	combined := *liabilities + *equity
	diff := math.Abs(*assets - combined)
	if diff <= Tolerance {
		return nil
	}
	d := money.Round2(diff)
	return &Discrepancy{
		Kind:              KindBalanceSheetImbalance,
		Page:              page,
		Severity:          catalog.SeverityCritical,
		Assets:            assets,
		LiabilitiesEquity: &combined,
		Difference:        d,
		Description: fmt.Sprintf("Assets (%s) != Liabilities + Equity (%s)",
			money.Format(*assets), money.Format(combined)),
	}
}

// CheckIncomeEquation verifies revenue - expenses = net income. The
// check is suppressed when any governing value is unparseable.
func CheckIncomeEquation(tbl document.Table, page int) *Discrepancy {
	var revenue, expenses, netIncome *float64

	for _, row := range tbl.Rows {
		if len(row) < 2 {
			continue
		}
		label := strings.ToLower(row[0])
		switch {
		case strings.Contains(label, "total revenue") || strings.Contains(label, "net revenue"):
			revenue = money.Normalize(row[1])
		case strings.Contains(label, "total expenses") || strings.Contains(label, "total operating expenses"):
			expenses = money.Normalize(row[1])
		case strings.Contains(label, "net income") || strings.Contains(label, "net loss"):
			netIncome = money.Normalize(row[1])
		}
	}

	if revenue == nil || expenses == nil || netIncome == nil {
		return nil
	}
	expected := *revenue - *expenses
	diff := math.Abs(expected - *netIncome)
	if diff <= Tolerance {
		return nil
	}
	expectedRounded := money.Round2(expected)
	return &Discrepancy{
		Kind:        KindIncomeStatementMismatch,
		Page:        page,
		Severity:    catalog.SeverityCritical,
		Revenue:     revenue,
		Expenses:    expenses,
		ExpectedNet: &expectedRounded,
		ReportedNet: netIncome,
		Difference:  money.Round2(diff),
		Description: fmt.Sprintf("Revenue - Expenses (%s) != Net Income (%s)",
			money.Format(expected), money.Format(*netIncome)),
	}
}

// CheckColumnSums treats every column after the label column as a
// candidate total column: data rows (header and final row excluded) are
// summed, nulls skipped, and the final row is the reported total. A
// table without a trailing total row therefore reports a spurious
// mismatch; this is a known false-positive source, kept as-is.
func CheckColumnSums(tbl document.Table, page, tableNum int) []Discrepancy {
	if len(tbl.Rows) < 3 {
		return nil
	}
	numCols := len(tbl.Rows[0])
	lastRow := tbl.Rows[len(tbl.Rows)-1]

	var out []Discrepancy
	for col := 1; col < numCols; col++ {
		var sum float64
		summed := false
		for rowIdx := 1; rowIdx < len(tbl.Rows)-1; rowIdx++ {
			cell, ok := tbl.Cell(rowIdx, col)
			if !ok {
				continue
			}
			if v := money.Normalize(cell); v != nil {
				sum += *v
				summed = true
			}
		}
		if !summed || col >= len(lastRow) {
			continue
		}
		reported := money.Normalize(lastRow[col])
		if reported == nil {
			continue
		}
		if math.Abs(sum-*reported) <= Tolerance {
			continue
		}
		calc := money.Round2(sum)
		rep := money.Round2(*reported)
		out = append(out, Discrepancy{
			Kind:          KindColumnSumMismatch,
			Page:          page,
			TableNumber:   tableNum,
			Column:        col + 1,
			CalculatedSum: &calc,
			ReportedSum:   &rep,
			Difference:    money.Round2(sum - *reported),
			Description: fmt.Sprintf("Column total mismatch: calculated %s, reported %s",
				money.Format(sum), money.Format(*reported)),
		})
	}
	return out
}

// present reports whether a governing balance-sheet value can drive the
// check: parseable and non-zero.
func present(v *float64) bool {
	return v != nil && *v != 0
}
