// Package catalog holds the static compliance tables: required sections
// per document type, signature requirements, red-flag phrases, and the
// statement classification vocabulary. Everything here is immutable
// configuration loaded once at process start; slices are ordered where
// evaluation order is significant (first matching term wins).
package catalog

// DocumentType identifies the regulatory document category.
type DocumentType string

const (
	Type10K     DocumentType = "10-K"
	TypeSOX404  DocumentType = "SOX 404"
	Type8K      DocumentType = "8-K"
	TypeInvoice DocumentType = "Invoice"
)

// Severity grades a finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
)
