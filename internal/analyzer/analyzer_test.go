package analyzer

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/complyscan/complyscan/internal/catalog"
	"github.com/complyscan/complyscan/internal/docsource"
	"github.com/complyscan/complyscan/internal/finmath"
	"github.com/complyscan/complyscan/internal/metrics"
)

// Four pages separated by form feeds: cover, risk factors, financials
// with a deliberately imbalanced balance sheet, and a signature page
// with no CAO signature.
const annualReportFixture = "Item 1: Business\n" +
	"We design and sell widgets across three segments.\n" +
	"\f" +
	"Item 1A: Risk Factors\n" +
	"There is substantial doubt about our ability to continue as a going concern.\n" +
	"\f" +
	"Item 7: Management's Discussion and Analysis\n" +
	"Revenue grew on higher widget volumes.\n" +
	"Item 8: Financial Statements\n" +
	"\n" +
	"Consolidated Balance Sheet\n" +
	"\n" +
	"Line Item            2023      2022\n" +
	"Total Assets         1,000     900\n" +
	"Total Liabilities    600       550\n" +
	"Total Equity         300       350\n" +
	"\f" +
	"SIGNATURES\n" +
	"Signed by the Chief Executive Officer and Chief Financial Officer.\n" +
	"/s/ John Smith, CEO\n" +
	"/s/ Jane Roe, CFO\n"

const invoiceFixture = "INVOICE\n" +
	"Invoice Number: INV-100\n" +
	"Date: 2024-01-15\n" +
	"\n" +
	"Description          Amount\n" +
	"Consulting           12,000\n" +
	"Total                12,000\n" +
	"\n" +
	"Payment Terms: Net 30\n" +
	"Approved by Pat Lee\n"

func newTestAnalyzer() *Analyzer {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(docsource.Options{}, log, metrics.NewRegistry(time.Hour))
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindSections10K(t *testing.T) {
	a := newTestAnalyzer()
	path := writeFixture(t, "10k.txt", annualReportFixture)

	res, err := a.FindSections(path, catalog.Type10K)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success {
		t.Error("success should be true")
	}
	if res.Summary.TotalRequired != 5 || res.Summary.TotalFound != 4 {
		t.Errorf("summary = %+v", res.Summary)
	}
	if len(res.Summary.MissingCritical) != 1 || res.Summary.MissingCritical[0] != "Item 9A: Controls and Procedures" {
		t.Errorf("missing critical = %v", res.Summary.MissingCritical)
	}

	risk := res.SectionsFound["Item 1A: Risk Factors"]
	if !risk.Found || risk.Page != 2 {
		t.Errorf("risk factors status = %+v", risk)
	}
	if risk.Excerpt == "" {
		t.Error("found section should carry an excerpt")
	}

	controls := res.SectionsFound["Item 9A: Controls and Procedures"]
	if controls.Found || controls.Page != 0 || controls.Excerpt != "" {
		t.Errorf("absent section status = %+v", controls)
	}
}

func TestFindSectionsUnknownType(t *testing.T) {
	a := newTestAnalyzer()
	path := writeFixture(t, "10k.txt", annualReportFixture)

	res, err := a.FindSections(path, catalog.DocumentType("Prospectus"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Summary.TotalRequired != 0 || len(res.SectionsFound) != 0 {
		t.Errorf("unknown type should require nothing: %+v", res)
	}
	if res.Summary.MissingCritical == nil {
		t.Error("missing_critical should marshal as [], not null")
	}
}

func TestExtractStatements(t *testing.T) {
	a := newTestAnalyzer()
	path := writeFixture(t, "10k.txt", annualReportFixture)

	res, err := a.ExtractStatements(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(res.Statements))
	}

	st := res.Statements[0]
	if st.Type != catalog.StatementBalanceSheet || st.Page != 3 {
		t.Errorf("statement = type %q page %d", st.Type, st.Page)
	}
	if len(st.Periods) != 2 || st.Periods[0] != "2023" {
		t.Errorf("periods = %v", st.Periods)
	}
	assets := st.KeyItems["Total Assets"]
	if assets == nil || assets["2023"] == nil || *assets["2023"] != 1000 {
		t.Errorf("total assets = %v", assets)
	}
}

func TestValidateMathFindsImbalance(t *testing.T) {
	a := newTestAnalyzer()
	path := writeFixture(t, "10k.txt", annualReportFixture)

	res, err := a.ValidateMath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Validation.TablesChecked != 1 {
		t.Errorf("tables_checked = %d", res.Validation.TablesChecked)
	}

	var balance *finmath.Discrepancy
	for i := range res.Validation.Errors {
		if res.Validation.Errors[i].Kind == finmath.KindBalanceSheetImbalance {
			balance = &res.Validation.Errors[i]
		}
	}
	if balance == nil {
		t.Fatal("expected a balance sheet imbalance")
	}
	// Assets 1000 vs liabilities+equity 900.
	if balance.Difference != 100 || balance.Page != 3 {
		t.Errorf("imbalance = %+v", balance)
	}
	if len(res.Validation.Warnings) != 0 {
		t.Errorf("warnings should be empty, got %v", res.Validation.Warnings)
	}
}

func TestValidateMathCleanInvoice(t *testing.T) {
	a := newTestAnalyzer()
	path := writeFixture(t, "invoice.txt", invoiceFixture)

	res, err := a.ValidateMath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Validation.TablesChecked != 1 || len(res.Validation.Errors) != 0 {
		t.Errorf("validation = %+v", res.Validation)
	}
}

func TestCheckSignatures10K(t *testing.T) {
	a := newTestAnalyzer()
	path := writeFixture(t, "10k.txt", annualReportFixture)

	res, err := a.CheckSignatures(path, catalog.Type10K, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := res.SignatureRequirements
	if req.ComplianceStatus != "INCOMPLETE" {
		t.Errorf("status = %q", req.ComplianceStatus)
	}
	if len(req.Missing) != 1 || req.Missing[0] != "CAO Signature" {
		t.Errorf("missing = %v", req.Missing)
	}

	roles := map[string]bool{}
	for _, f := range req.Found {
		roles[f.Signer] = true
	}
	for _, want := range []string{"CEO", "CFO", "Authorized Signer"} {
		if !roles[want] {
			t.Errorf("expected found signer %q, have %v", want, roles)
		}
	}
}

func TestCheckSignaturesInvoiceAboveThreshold(t *testing.T) {
	a := newTestAnalyzer()
	path := writeFixture(t, "invoice.txt", invoiceFixture)

	amount := 12_000.0
	res, err := a.CheckSignatures(path, catalog.TypeInvoice, &amount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := res.SignatureRequirements
	if req.ComplianceStatus != "COMPLETE" {
		t.Errorf("status = %q, missing = %v", req.ComplianceStatus, req.Missing)
	}
	if len(req.Required) != 1 || req.Required[0] != "Authorized Approver" {
		t.Errorf("required = %v", req.Required)
	}
}

func TestDetectRedFlags(t *testing.T) {
	a := newTestAnalyzer()
	path := writeFixture(t, "10k.txt", annualReportFixture)

	res, err := a.DetectRedFlags(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.RedFlags) != 1 {
		t.Fatalf("expected 1 red flag, got %v", res.RedFlags)
	}
	f := res.RedFlags[0]
	if f.Phrase != "going concern" || f.Page != 2 || f.Severity != catalog.SeverityCritical {
		t.Errorf("finding = %+v", f)
	}
	if f.Context != "Item 1A: Risk Factors" {
		t.Errorf("context = %q", f.Context)
	}
	if res.Summary.TotalFlags != 1 || res.Summary.Critical != 1 {
		t.Errorf("summary = %+v", res.Summary)
	}
}

func TestComparativePeriods(t *testing.T) {
	a := newTestAnalyzer()
	path := writeFixture(t, "10k.txt", annualReportFixture)

	res, err := a.ComparativePeriods(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.ComparativeData) != 3 {
		t.Fatalf("expected 3 metric rows, got %d", len(res.ComparativeData))
	}

	assets := res.ComparativeData[0]
	if assets.Metric != "Total Assets" {
		t.Errorf("metric = %q", assets.Metric)
	}
	ch, ok := assets.Changes["2023_vs_2022"]
	if !ok {
		t.Fatalf("changes = %v", assets.Changes)
	}
	if ch.Absolute != 100 || ch.Direction != "increase" || !ch.Material {
		t.Errorf("change = %+v", ch)
	}
	if ch.Percent == nil || *ch.Percent != 11.11 {
		t.Errorf("percent = %v", ch.Percent)
	}
}

func TestFullAudit(t *testing.T) {
	a := newTestAnalyzer()
	path := writeFixture(t, "10k.txt", annualReportFixture)

	report, err := a.FullAudit(path, catalog.Type10K, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Sections == nil || report.Statements == nil || report.Math == nil ||
		report.Signatures == nil || report.RedFlags == nil || report.Comparative == nil {
		t.Fatalf("report has nil sections: %+v", report)
	}
	if !report.HasCriticalFindings() {
		t.Error("fixture has a missing critical section and math errors")
	}

	clean, err := a.FullAudit(writeFixture(t, "invoice.txt", invoiceFixture), catalog.TypeInvoice, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clean.HasCriticalFindings() {
		t.Error("invoice fixture should be clean")
	}
}

func TestOperationsAreIdempotent(t *testing.T) {
	a := newTestAnalyzer()
	path := writeFixture(t, "10k.txt", annualReportFixture)

	first, err := a.FullAudit(path, catalog.Type10K, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.FullAudit(path, catalog.Type10K, nil)
	if err != nil {
		t.Fatal(err)
	}

	b1, err := json.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := json.Marshal(second)
	if err != nil {
		t.Fatal(err)
	}
	if string(b1) != string(b2) {
		t.Error("repeated audits should serialize identically")
	}
}

func TestOpenFailureSurfacesAsOpenError(t *testing.T) {
	a := newTestAnalyzer()
	_, err := a.FindSections(filepath.Join(t.TempDir(), "absent.txt"), catalog.Type10K)

	var oe *docsource.OpenError
	if !errors.As(err, &oe) {
		t.Fatalf("expected OpenError, got %v", err)
	}
}

func TestLatencyIsRecorded(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	stats := metrics.NewRegistry(time.Hour)
	a := New(docsource.Options{}, log, stats)

	path := writeFixture(t, "invoice.txt", invoiceFixture)
	if _, err := a.DetectRedFlags(path); err != nil {
		t.Fatal(err)
	}

	if _, ok := stats.Snapshots()[OpDetectRedFlags]; !ok {
		t.Error("expected a latency sample for detect_red_flags")
	}
}
