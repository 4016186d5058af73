package catalog

// StatementType is the financial-statement category a table belongs to.
type StatementType string

const (
	StatementBalanceSheet StatementType = "Balance Sheet"
	StatementIncome       StatementType = "Income Statement"
	StatementCashFlow     StatementType = "Cash Flow Statement"
	StatementInvoice      StatementType = "Invoice"
	StatementNone         StatementType = ""
)

// StatementPhraseGroup maps classification phrases to a statement type.
type StatementPhraseGroup struct {
	Type    StatementType
	Phrases []string
}

// StatementPhrases are checked in fixed precedence: Balance Sheet
// before Income Statement before Cash Flow before Invoice.
var StatementPhrases = []StatementPhraseGroup{
	{Type: StatementBalanceSheet, Phrases: []string{"balance sheet", "statement of financial position"}},
	{Type: StatementIncome, Phrases: []string{"income statement", "statement of operations", "p&l"}},
	{Type: StatementCashFlow, Phrases: []string{"cash flow"}},
	{Type: StatementInvoice, Phrases: []string{"invoice", "bill to"}},
}

// KeyItemKeywords is the fixed vocabulary of financial line items
// matched (as substrings) against lowercased row labels.
var KeyItemKeywords = []string{
	"total assets",
	"total liabilities",
	"total equity",
	"stockholders",
	"revenue",
	"net income",
	"net loss",
	"total",
	"subtotal",
	"operating",
	"investing",
	"financing",
}
