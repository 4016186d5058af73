// Package analyzer exposes the document analysis operations: each one
// opens a document, walks its pages in order, runs the relevant engines,
// and returns a JSON-serializable result. Operations are stateless and
// deterministic; running one twice on the same file yields identical
// results.
package analyzer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/complyscan/complyscan/internal/catalog"
	"github.com/complyscan/complyscan/internal/compare"
	"github.com/complyscan/complyscan/internal/docsource"
	"github.com/complyscan/complyscan/internal/document"
	"github.com/complyscan/complyscan/internal/finmath"
	"github.com/complyscan/complyscan/internal/metrics"
	"github.com/complyscan/complyscan/internal/redflag"
	"github.com/complyscan/complyscan/internal/scan"
	"github.com/complyscan/complyscan/internal/signature"
	"github.com/complyscan/complyscan/internal/statement"
)

// Operation names, used for latency tracking and error context.
const (
	OpFindSections       = "find_sections"
	OpExtractStatements  = "extract_statements"
	OpValidateMath       = "validate_math"
	OpCheckSignatures    = "check_signatures"
	OpDetectRedFlags     = "detect_red_flags"
	OpComparativePeriods = "comparative_periods"
	OpFullAudit          = "full_audit"
)

// AnalysisError marks a failure after the document opened successfully,
// as opposed to docsource.OpenError for documents that never opened.
type AnalysisError struct {
	Op  string
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// Analyzer runs analysis operations with shared open options, logging,
// and latency tracking. The zero value is unusable; use New.
type Analyzer struct {
	opts  docsource.Options
	log   *slog.Logger
	stats *metrics.Registry
}

func New(opts docsource.Options, log *slog.Logger, stats *metrics.Registry) *Analyzer {
	if log == nil {
		log = slog.Default()
	}
	return &Analyzer{opts: opts, log: log, stats: stats}
}

func (a *Analyzer) open(path string) (*document.Document, error) {
	return docsource.Open(path, a.opts)
}

func (a *Analyzer) track(op string) func() {
	start := time.Now()
	return func() {
		elapsed := time.Since(start)
		if a.stats != nil {
			a.stats.Record(op, elapsed)
		}
		a.log.Debug("operation complete", "op", op, "duration_ms", elapsed.Milliseconds())
	}
}

// SectionStatus is the per-section outcome of a requirements check.
type SectionStatus struct {
	Required bool   `json:"required"`
	Critical bool   `json:"critical"`
	Found    bool   `json:"found"`
	Page     int    `json:"page,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`
}

type SectionsSummary struct {
	TotalRequired   int      `json:"total_required"`
	TotalFound      int      `json:"total_found"`
	MissingCritical []string `json:"missing_critical"`
}

type SectionsResult struct {
	Success       bool                     `json:"success"`
	DocType       catalog.DocumentType     `json:"doc_type"`
	SectionsFound map[string]SectionStatus `json:"sections_found"`
	Summary       SectionsSummary          `json:"summary"`
}

// FindSections checks a document against the required-section catalog
// for its type. Unknown document types have zero required sections and
// trivially pass.
func (a *Analyzer) FindSections(path string, docType catalog.DocumentType) (*SectionsResult, error) {
	defer a.track(OpFindSections)()

	doc, err := a.open(path)
	if err != nil {
		return nil, err
	}

	res := sectionsFromPages(doc.Pages, docType)
	if err := doc.Close(); err != nil {
		return nil, &AnalysisError{Op: OpFindSections, Err: err}
	}
	return res, nil
}

func sectionsFromPages(pages []document.Page, docType catalog.DocumentType) *SectionsResult {
	required := catalog.RequiredSections(docType)
	res := &SectionsResult{
		Success:       true,
		DocType:       docType,
		SectionsFound: make(map[string]SectionStatus, len(required)),
		Summary: SectionsSummary{
			TotalRequired:   len(required),
			MissingCritical: []string{},
		},
	}

	for _, req := range required {
		hit := scan.Locate(pages, req.SearchTerms)
		res.SectionsFound[req.Name] = SectionStatus{
			Required: true,
			Critical: req.Critical,
			Found:    hit.Found,
			Page:     hit.Page,
			Excerpt:  hit.Excerpt,
		}
		if hit.Found {
			res.Summary.TotalFound++
		} else if req.Critical {
			res.Summary.MissingCritical = append(res.Summary.MissingCritical, req.Name)
		}
	}
	return res
}

type StatementsResult struct {
	Success    bool                  `json:"success"`
	Statements []statement.Statement `json:"statements"`
}

// ExtractStatements classifies each page and extracts every table on
// classified pages as a financial statement.
func (a *Analyzer) ExtractStatements(path string) (*StatementsResult, error) {
	defer a.track(OpExtractStatements)()

	doc, err := a.open(path)
	if err != nil {
		return nil, err
	}

	res := statementsFromPages(doc.Pages)
	if err := doc.Close(); err != nil {
		return nil, &AnalysisError{Op: OpExtractStatements, Err: err}
	}
	return res, nil
}

func statementsFromPages(pages []document.Page) *StatementsResult {
	res := &StatementsResult{Success: true, Statements: []statement.Statement{}}
	for _, page := range pages {
		typ := statement.ClassifyPage(page.Text)
		if typ == catalog.StatementNone {
			continue
		}
		for _, tbl := range page.Tables {
			res.Statements = append(res.Statements, statement.FromTable(typ, page.Number, tbl))
		}
	}
	return res
}

type MathValidation struct {
	TablesChecked int                   `json:"tables_checked"`
	Errors        []finmath.Discrepancy `json:"errors"`
	Warnings      []finmath.Discrepancy `json:"warnings"`
}

type MathResult struct {
	Success    bool           `json:"success"`
	Validation MathValidation `json:"validation"`
}

// ValidateMath runs the arithmetic checks over every table in the
// document. All discrepancies land in Errors; Warnings is reserved in
// the payload and currently always empty.
func (a *Analyzer) ValidateMath(path string) (*MathResult, error) {
	defer a.track(OpValidateMath)()

	doc, err := a.open(path)
	if err != nil {
		return nil, err
	}

	res := mathFromPages(doc.Pages)
	if err := doc.Close(); err != nil {
		return nil, &AnalysisError{Op: OpValidateMath, Err: err}
	}
	return res, nil
}

func mathFromPages(pages []document.Page) *MathResult {
	res := &MathResult{
		Success: true,
		Validation: MathValidation{
			Errors:   []finmath.Discrepancy{},
			Warnings: []finmath.Discrepancy{},
		},
	}
	for _, page := range pages {
		for tableNum, tbl := range page.Tables {
			res.Validation.TablesChecked++
			res.Validation.Errors = append(res.Validation.Errors,
				finmath.CheckTable(page.Text, page.Number, tableNum+1, tbl)...)
		}
	}
	return res
}

type SignaturesResult struct {
	Success               bool             `json:"success"`
	SignatureRequirements signature.Report `json:"signature_requirements"`
}

// CheckSignatures detects signatures and evaluates them against the
// requirements for the document type. invoiceAmount is only consulted
// for invoices; nil means "amount unknown" and requires no approver.
func (a *Analyzer) CheckSignatures(path string, docType catalog.DocumentType, invoiceAmount *float64) (*SignaturesResult, error) {
	defer a.track(OpCheckSignatures)()

	doc, err := a.open(path)
	if err != nil {
		return nil, err
	}

	res := signaturesFromPages(doc.Pages, docType, invoiceAmount)
	if err := doc.Close(); err != nil {
		return nil, &AnalysisError{Op: OpCheckSignatures, Err: err}
	}
	return res, nil
}

func signaturesFromPages(pages []document.Page, docType catalog.DocumentType, invoiceAmount *float64) *SignaturesResult {
	found := signature.Detect(pages)
	return &SignaturesResult{
		Success:               true,
		SignatureRequirements: signature.Evaluate(docType, invoiceAmount, found),
	}
}

type RedFlagsResult struct {
	Success  bool              `json:"success"`
	RedFlags []redflag.Finding `json:"red_flags"`
	Summary  redflag.Summary   `json:"summary"`
}

// DetectRedFlags scans every page for compliance warning phrases.
func (a *Analyzer) DetectRedFlags(path string) (*RedFlagsResult, error) {
	defer a.track(OpDetectRedFlags)()

	doc, err := a.open(path)
	if err != nil {
		return nil, err
	}

	res := redFlagsFromPages(doc.Pages)
	if err := doc.Close(); err != nil {
		return nil, &AnalysisError{Op: OpDetectRedFlags, Err: err}
	}
	return res, nil
}

func redFlagsFromPages(pages []document.Page) *RedFlagsResult {
	findings := redflag.Detect(pages)
	if findings == nil {
		findings = []redflag.Finding{}
	}
	return &RedFlagsResult{
		Success:  true,
		RedFlags: findings,
		Summary:  redflag.Summarize(findings),
	}
}

type ComparativeResult struct {
	Success         bool                   `json:"success"`
	ComparativeData []compare.PeriodChange `json:"comparative_data"`
}

// ComparativePeriods extracts period-over-period changes from every
// table carrying at least two distinct year columns.
func (a *Analyzer) ComparativePeriods(path string) (*ComparativeResult, error) {
	defer a.track(OpComparativePeriods)()

	doc, err := a.open(path)
	if err != nil {
		return nil, err
	}

	res := comparativeFromPages(doc.Pages)
	if err := doc.Close(); err != nil {
		return nil, &AnalysisError{Op: OpComparativePeriods, Err: err}
	}
	return res, nil
}

func comparativeFromPages(pages []document.Page) *ComparativeResult {
	res := &ComparativeResult{Success: true, ComparativeData: []compare.PeriodChange{}}
	for _, page := range pages {
		for _, tbl := range page.Tables {
			res.ComparativeData = append(res.ComparativeData, compare.FromTable(page.Number, tbl)...)
		}
	}
	return res
}
