package catalog

// RedFlag is a literal phrase whose presence signals a compliance risk.
type RedFlag struct {
	Phrase   string
	Category string
	Severity Severity
}

// RedFlags is scanned in order per page so output is deterministic.
// "related party transaction" precedes "related party": both are
// distinct catalog keys for the same category and may both match.
var RedFlags = []RedFlag{
	{Phrase: "going concern", Category: "going_concern", Severity: SeverityCritical},
	{Phrase: "material weakness", Category: "material_weakness", Severity: SeverityCritical},
	{Phrase: "restatement", Category: "restatement", Severity: SeverityCritical},
	{Phrase: "significant deficiency", Category: "significant_deficiency", Severity: SeverityHigh},
	{Phrase: "qualified opinion", Category: "qualified_opinion", Severity: SeverityHigh},
	{Phrase: "adverse opinion", Category: "adverse_opinion", Severity: SeverityHigh},
	{Phrase: "related party transaction", Category: "related_party", Severity: SeverityMedium},
	{Phrase: "related party", Category: "related_party", Severity: SeverityMedium},
	{Phrase: "subsequent event", Category: "subsequent_event", Severity: SeverityMedium},
	{Phrase: "contingent liability", Category: "contingent_liability", Severity: SeverityMedium},
}
