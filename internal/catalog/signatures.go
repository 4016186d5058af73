package catalog

// SignatureKeyword maps a literal phrase to the signer role it implies.
type SignatureKeyword struct {
	Keyword string
	Role    string
}

// SignatureKeywords is scanned in order against page text.
var SignatureKeywords = []SignatureKeyword{
	{Keyword: "CFO", Role: "CFO"},
	{Keyword: "CEO", Role: "CEO"},
	{Keyword: "Chief Financial Officer", Role: "CFO"},
	{Keyword: "Chief Executive Officer", Role: "CEO"},
	{Keyword: "Chief Accounting Officer", Role: "CAO"},
	{Keyword: "signed by", Role: "Authorized Signer"},
	{Keyword: "approved by", Role: "Approver"},
	{Keyword: "certified by", Role: "Certifier"},
}

// ApprovalThreshold is the invoice amount above which an additional
// approver signature is required.
const ApprovalThreshold = 10_000

// RequiredSignatures returns the signatures a document type must carry.
// Invoices only require approval above the amount threshold; a nil
// amount means no threshold applies.
func RequiredSignatures(dt DocumentType, invoiceAmount *float64) []string {
	switch dt {
	case TypeSOX404:
		return []string{"CFO Certification", "CEO Certification"}
	case Type10K:
		return []string{"CEO Signature", "CFO Signature", "CAO Signature"}
	case Type8K:
		return []string{"Authorized Signer"}
	case TypeInvoice:
		if invoiceAmount != nil && *invoiceAmount > ApprovalThreshold {
			return []string{"Authorized Approver"}
		}
		return nil
	}
	return nil
}
