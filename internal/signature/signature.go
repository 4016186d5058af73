// Package signature detects signatures in documents from two sources:
// digital signature form fields and literal textual mentions, then
// evaluates them against the per-document-type requirements.
package signature

import (
	"strings"

	"github.com/complyscan/complyscan/internal/catalog"
	"github.com/complyscan/complyscan/internal/document"
	"github.com/complyscan/complyscan/internal/scan"
)

const (
	KindDigital     = "digital_signature"
	KindTextMention = "text_mention"
)

// Finding is one detected signature, deduplicated by (signer, page).
type Finding struct {
	Kind    string `json:"type"`
	Signer  string `json:"signer"`
	Page    int    `json:"page"`
	Excerpt string `json:"excerpt"`
}

// Report is the full signature-compliance result for a document.
type Report struct {
	DocType          catalog.DocumentType `json:"doc_type"`
	InvoiceAmount    *float64             `json:"invoice_amount"`
	Required         []string             `json:"required_signatures"`
	Found            []Finding            `json:"found_signatures"`
	Missing          []string             `json:"missing_signatures"`
	ComplianceStatus string               `json:"compliance_status"`
}

// Detect merges digital signature fields and textual mentions per page.
// Digital findings are recorded first and take precedence: a textual
// mention is suppressed when a finding with the same (signer, page)
// already exists.
func Detect(pages []document.Page) []Finding {
	var findings []Finding

	for _, p := range pages {
		for _, f := range p.SignatureFields {
			if f.FieldType != "Sig" {
				continue
			}
			name := f.FieldName
			if name == "" {
				name = "Unknown"
			}
			findings = append(findings, Finding{
				Kind:    KindDigital,
				Signer:  name,
				Page:    p.Number,
				Excerpt: "Digital signature field: " + f.FieldName,
			})
		}

		lower := strings.ToLower(p.Text)
		for _, kw := range catalog.SignatureKeywords {
			pos := strings.Index(lower, strings.ToLower(kw.Keyword))
			if pos < 0 {
				continue
			}
			if hasFinding(findings, kw.Role, p.Number) {
				continue
			}
			findings = append(findings, Finding{
				Kind:    KindTextMention,
				Signer:  kw.Role,
				Page:    p.Number,
				Excerpt: scan.Excerpt(p.Text, pos, 50, 100),
			})
		}
	}
	return findings
}

func hasFinding(findings []Finding, signer string, page int) bool {
	for _, f := range findings {
		if f.Signer == signer && f.Page == page {
			return true
		}
	}
	return false
}

// Evaluate checks found signatures against the required set. A required
// signature is satisfied when any found signer shares an uppercase word
// with it (word-level substring match, not exact equality).
func Evaluate(docType catalog.DocumentType, invoiceAmount *float64, found []Finding) Report {
	required := catalog.RequiredSignatures(docType, invoiceAmount)

	missing := []string{}
	for _, req := range required {
		if !satisfied(req, found) {
			missing = append(missing, req)
		}
	}

	status := "COMPLETE"
	if len(missing) > 0 {
		status = "INCOMPLETE"
	}

	if required == nil {
		required = []string{}
	}
	if found == nil {
		found = []Finding{}
	}

	return Report{
		DocType:          docType,
		InvoiceAmount:    invoiceAmount,
		Required:         required,
		Found:            found,
		Missing:          missing,
		ComplianceStatus: status,
	}
}

func satisfied(required string, found []Finding) bool {
	words := strings.Fields(strings.ToUpper(required))
	for _, f := range found {
		role := strings.ToUpper(f.Signer)
		for _, w := range words {
			if strings.Contains(role, w) {
				return true
			}
		}
	}
	return false
}
