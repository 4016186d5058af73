package catalog

// SectionRequirement is one section a document type must contain.
// SearchTerms are alternatives tried in order; the first match wins.
type SectionRequirement struct {
	Name        string
	Critical    bool
	SearchTerms []string
}

var sectionCatalog = map[DocumentType][]SectionRequirement{
	Type10K: {
		{Name: "Item 1: Business", Critical: false, SearchTerms: []string{"item 1", "business"}},
		{Name: "Item 1A: Risk Factors", Critical: true, SearchTerms: []string{"item 1a", "risk factors"}},
		{Name: "Item 7: MD&A", Critical: true, SearchTerms: []string{"item 7", "management's discussion", "md&a"}},
		{Name: "Item 8: Financial Statements", Critical: true, SearchTerms: []string{"item 8", "financial statements"}},
		{Name: "Item 9A: Controls and Procedures", Critical: true, SearchTerms: []string{"item 9a", "controls and procedures"}},
	},
	TypeSOX404: {
		{Name: "IT General Controls", Critical: true, SearchTerms: []string{"it general controls", "itgc", "it controls"}},
		{Name: "Access Controls", Critical: true, SearchTerms: []string{"access controls", "access management"}},
		{Name: "Change Management", Critical: false, SearchTerms: []string{"change management", "change controls"}},
		{Name: "Management Assessment", Critical: true, SearchTerms: []string{"management assessment", "management certification"}},
	},
	Type8K: {
		{Name: "Item 1.01: Material Agreements", Critical: true, SearchTerms: []string{"item 1.01", "material definitive agreement", "material agreement"}},
		{Name: "Item 2.01: Acquisition/Disposition", Critical: true, SearchTerms: []string{"item 2.01", "acquisition", "disposition of assets"}},
		{Name: "Item 5.02: Officer Changes", Critical: false, SearchTerms: []string{"item 5.02", "departure of directors", "officer changes"}},
		{Name: "Item 9.01: Financial Statements/Exhibits", Critical: true, SearchTerms: []string{"item 9.01", "financial statements and exhibits"}},
		{Name: "Filing Timeliness", Critical: true, SearchTerms: []string{"date of report", "date of earliest event"}},
	},
	TypeInvoice: {
		{Name: "Invoice Number", Critical: true, SearchTerms: []string{"invoice number", "invoice #", "inv #", "invoice no"}},
		{Name: "Date", Critical: true, SearchTerms: []string{"date", "invoice date"}},
		{Name: "Line Items", Critical: true, SearchTerms: []string{"description", "line items", "item"}},
		{Name: "Total", Critical: true, SearchTerms: []string{"total", "amount due", "balance due"}},
		{Name: "Payment Terms", Critical: false, SearchTerms: []string{"payment terms", "due date", "net 30", "net 60"}},
	},
}

// RequiredSections returns the ordered requirement set for a document
// type. Unknown types yield an empty set, not an error: callers treat
// that as "zero required sections".
func RequiredSections(dt DocumentType) []SectionRequirement {
	return sectionCatalog[dt]
}
