package analyzer

import (
	"github.com/complyscan/complyscan/internal/catalog"
)

// AuditReport bundles the results of every operation for one document,
// produced from a single open so batch jobs and the CLI pay the parse
// cost once.
type AuditReport struct {
	Path        string               `json:"path"`
	DocType     catalog.DocumentType `json:"doc_type"`
	Sections    *SectionsResult      `json:"sections"`
	Statements  *StatementsResult    `json:"statements"`
	Math        *MathResult          `json:"math"`
	Signatures  *SignaturesResult    `json:"signatures"`
	RedFlags    *RedFlagsResult      `json:"red_flags"`
	Comparative *ComparativeResult   `json:"comparative"`
}

// HasCriticalFindings reports whether the audit surfaced anything that
// demands attention: a missing critical section, a math error, an
// incomplete signature set, or a critical red flag.
func (r *AuditReport) HasCriticalFindings() bool {
	if r.Sections != nil && len(r.Sections.Summary.MissingCritical) > 0 {
		return true
	}
	if r.Math != nil && len(r.Math.Validation.Errors) > 0 {
		return true
	}
	if r.Signatures != nil && r.Signatures.SignatureRequirements.ComplianceStatus == "INCOMPLETE" {
		return true
	}
	if r.RedFlags != nil && r.RedFlags.Summary.Critical > 0 {
		return true
	}
	return false
}

// FullAudit runs all six operations over one document open.
func (a *Analyzer) FullAudit(path string, docType catalog.DocumentType, invoiceAmount *float64) (*AuditReport, error) {
	defer a.track(OpFullAudit)()

	doc, err := a.open(path)
	if err != nil {
		return nil, err
	}

	report := &AuditReport{
		Path:        path,
		DocType:     docType,
		Sections:    sectionsFromPages(doc.Pages, docType),
		Statements:  statementsFromPages(doc.Pages),
		Math:        mathFromPages(doc.Pages),
		Signatures:  signaturesFromPages(doc.Pages, docType, invoiceAmount),
		RedFlags:    redFlagsFromPages(doc.Pages),
		Comparative: comparativeFromPages(doc.Pages),
	}
	if err := doc.Close(); err != nil {
		return nil, &AnalysisError{Op: OpFullAudit, Err: err}
	}
	return report, nil
}
