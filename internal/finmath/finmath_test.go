package finmath

import (
	"testing"

	"github.com/complyscan/complyscan/internal/document"
)

func TestBalanceEquationHolds(t *testing.T) {
	tbl := document.Table{Rows: [][]string{
		{"Line Item", "2023"},
		{"Total Assets", "100"},
		{"Total Liabilities", "60"},
		{"Total Equity", "40"},
	}}
	if d := CheckBalanceEquation(tbl, 1); d != nil {
		t.Fatalf("balanced sheet should produce no discrepancy, got %+v", d)
	}
}

func TestBalanceEquationImbalance(t *testing.T) {
	tbl := document.Table{Rows: [][]string{
		{"Line Item", "2023"},
		{"Total Assets", "100"},
		{"Total Liabilities", "60"},
		{"Total Equity", "30"},
	}}
	d := CheckBalanceEquation(tbl, 3)
	if d == nil {
		t.Fatal("expected a balance sheet imbalance")
	}
	if d.Kind != KindBalanceSheetImbalance {
		t.Errorf("kind = %q, want %q", d.Kind, KindBalanceSheetImbalance)
	}
	if d.Page != 3 {
		t.Errorf("page = %d, want 3", d.Page)
	}
	if d.Difference != 10.00 {
		t.Errorf("difference = %v, want 10.00", d.Difference)
	}
	if d.Assets == nil || *d.Assets != 100 {
		t.Errorf("assets = %v, want 100", d.Assets)
	}
	if d.LiabilitiesEquity == nil || *d.LiabilitiesEquity != 90 {
		t.Errorf("liabilities_equity = %v, want 90", d.LiabilitiesEquity)
	}
}

func TestBalanceEquationStockholdersLabel(t *testing.T) {
	tbl := document.Table{Rows: [][]string{
		{"Line Item", "2023"},
		{"Total Assets", "100"},
		{"Total Liabilities", "60"},
		{"Total Stockholders' Equity", "25"},
	}}
	d := CheckBalanceEquation(tbl, 1)
	if d == nil || d.Difference != 15.00 {
		t.Fatalf("expected imbalance of 15.00 via stockholders label, got %+v", d)
	}
}

func TestBalanceEquationSuppressedOnMissingOrZero(t *testing.T) {
	// Unparseable equity suppresses the check entirely.
	unparseable := document.Table{Rows: [][]string{
		{"Line Item", "2023"},
		{"Total Assets", "100"},
		{"Total Liabilities", "60"},
		{"Total Equity", "n.m."},
	}}
	if d := CheckBalanceEquation(unparseable, 1); d != nil {
		t.Errorf("unparseable equity should suppress the check, got %+v", d)
	}

	// A zero governing value also suppresses it.
	zero := document.Table{Rows: [][]string{
		{"Line Item", "2023"},
		{"Total Assets", "100"},
		{"Total Liabilities", "60"},
		{"Total Equity", "-"},
	}}
	if d := CheckBalanceEquation(zero, 1); d != nil {
		t.Errorf("zero equity should suppress the check, got %+v", d)
	}
}

func TestIncomeEquation(t *testing.T) {
	tbl := document.Table{Rows: [][]string{
		{"Line Item", "2023"},
		{"Total Revenue", "500"},
		{"Total Expenses", "300"},
		{"Net Income", "150"},
	}}
	d := CheckIncomeEquation(tbl, 2)
	if d == nil {
		t.Fatal("expected an income statement mismatch")
	}
	if d.Kind != KindIncomeStatementMismatch {
		t.Errorf("kind = %q", d.Kind)
	}
	if d.ExpectedNet == nil || *d.ExpectedNet != 200 {
		t.Errorf("expected_net = %v, want 200", d.ExpectedNet)
	}
	if d.Difference != 50.00 {
		t.Errorf("difference = %v, want 50.00", d.Difference)
	}

	consistent := document.Table{Rows: [][]string{
		{"Line Item", "2023"},
		{"Net Revenue", "500"},
		{"Total Operating Expenses", "300"},
		{"Net Income", "200"},
	}}
	if d := CheckIncomeEquation(consistent, 2); d != nil {
		t.Errorf("consistent income statement should pass, got %+v", d)
	}
}

func TestIncomeEquationNetLossParenthesized(t *testing.T) {
	tbl := document.Table{Rows: [][]string{
		{"Line Item", "2023"},
		{"Total Revenue", "100"},
		{"Total Expenses", "150"},
		{"Net Loss", "(50)"},
	}}
	if d := CheckIncomeEquation(tbl, 1); d != nil {
		t.Errorf("parenthesized net loss should balance, got %+v", d)
	}
}

func TestColumnSumMismatch(t *testing.T) {
	tbl := document.Table{Rows: [][]string{
		{"Item", "2023"},
		{"A", "10"},
		{"B", "20"},
		{"Total", "25"},
	}}
	ds := CheckColumnSums(tbl, 1, 1)
	if len(ds) != 1 {
		t.Fatalf("expected 1 discrepancy, got %d", len(ds))
	}
	d := ds[0]
	if d.Kind != KindColumnSumMismatch {
		t.Errorf("kind = %q", d.Kind)
	}
	if d.CalculatedSum == nil || *d.CalculatedSum != 30 {
		t.Errorf("calculated_sum = %v, want 30", d.CalculatedSum)
	}
	if d.ReportedSum == nil || *d.ReportedSum != 25 {
		t.Errorf("reported_sum = %v, want 25", d.ReportedSum)
	}
	if d.Difference != 5 {
		t.Errorf("difference = %v, want 5", d.Difference)
	}
	if d.Column != 2 {
		t.Errorf("column = %d, want 2 (1-based including label column)", d.Column)
	}
}

func TestColumnSumHeaderYearExcluded(t *testing.T) {
	// The header cell "2023" parses as a number but must not poison
	// the sum.
	tbl := document.Table{Rows: [][]string{
		{"Item", "2023"},
		{"A", "10"},
		{"B", "20"},
		{"Total", "30"},
	}}
	if ds := CheckColumnSums(tbl, 1, 1); len(ds) != 0 {
		t.Fatalf("consistent column should pass, got %+v", ds)
	}
}

func TestColumnSumSkipsNullsAndShortRows(t *testing.T) {
	tbl := document.Table{Rows: [][]string{
		{"Item", "2023", "2022"},
		{"A", "10", "5"},
		{"B", "-", "n/m"}, // dash is zero, n/m is null (skipped)
		{"C", "20"},       // short row: no 2022 cell
		{"Total", "30", "5"},
	}}
	if ds := CheckColumnSums(tbl, 1, 1); len(ds) != 0 {
		t.Fatalf("expected no discrepancies, got %+v", ds)
	}
}

func TestColumnSumRequiresThreeRows(t *testing.T) {
	tbl := document.Table{Rows: [][]string{
		{"Item", "2023"},
		{"Total", "10"},
	}}
	if ds := CheckColumnSums(tbl, 1, 1); ds != nil {
		t.Fatalf("two-row table should not be checked, got %+v", ds)
	}
}

func TestCheckTableGatedByPageText(t *testing.T) {
	tbl := document.Table{Rows: [][]string{
		{"Line Item", "2023"},
		{"Total Assets", "100"},
		{"Total Liabilities", "60"},
		{"Total Equity", "30"},
	}}

	// Without the statement phrase the equation check does not fire;
	// the column-sum check still runs (and finds 100+60 != 30).
	ds := CheckTable("miscellaneous schedule", 1, 1, tbl)
	for _, d := range ds {
		if d.Kind == KindBalanceSheetImbalance {
			t.Fatalf("balance check should be gated off: %+v", d)
		}
	}

	ds = CheckTable("Consolidated Balance Sheet", 1, 1, tbl)
	found := false
	for _, d := range ds {
		if d.Kind == KindBalanceSheetImbalance {
			found = true
		}
	}
	if !found {
		t.Fatal("balance check should fire when the page names a balance sheet")
	}
}

func TestCheckTableCanReportBothKinds(t *testing.T) {
	// One table can yield a classification-specific discrepancy and a
	// column-sum discrepancy at the same time.
	tbl := document.Table{Rows: [][]string{
		{"Line Item", "2023"},
		{"Total Assets", "100"},
		{"Total Liabilities", "60"},
		{"Total Equity", "30"},
	}}
	ds := CheckTable("Balance Sheet", 2, 1, tbl)
	kinds := map[Kind]bool{}
	for _, d := range ds {
		kinds[d.Kind] = true
	}
	if !kinds[KindBalanceSheetImbalance] || !kinds[KindColumnSumMismatch] {
		t.Fatalf("expected both discrepancy kinds, got %+v", ds)
	}
}
