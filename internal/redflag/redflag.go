// Package redflag scans pages for compliance warning phrases and
// reports them with severity and the note/item/section they fall under.
package redflag

import (
	"strings"

	"github.com/complyscan/complyscan/internal/catalog"
	"github.com/complyscan/complyscan/internal/document"
	"github.com/complyscan/complyscan/internal/scan"
)

// Finding is one red-flag occurrence, deduplicated by (phrase, page).
type Finding struct {
	Phrase   string           `json:"phrase"`
	Category string           `json:"type"`
	Severity catalog.Severity `json:"severity"`
	Page     int              `json:"page"`
	Excerpt  string           `json:"excerpt"`
	Context  string           `json:"context"`
}

// Summary aggregates findings by severity.
type Summary struct {
	TotalFlags int `json:"total_flags"`
	Critical   int `json:"critical"`
	High       int `json:"high"`
	Medium     int `json:"medium"`
}

type flagKey struct {
	phrase string
	page   int
}

// Detect scans every page against the red-flag catalog in its fixed
// order. "related party transaction" and "related party" are distinct
// keys, so both may be reported for the same page.
func Detect(pages []document.Page) []Finding {
	var findings []Finding
	seen := map[flagKey]bool{}

	for _, p := range pages {
		lower := strings.ToLower(p.Text)
		for _, rf := range catalog.RedFlags {
			pos := strings.Index(lower, rf.Phrase)
			if pos < 0 {
				continue
			}
			key := flagKey{phrase: rf.Phrase, page: p.Number}
			if seen[key] {
				continue
			}
			seen[key] = true
			findings = append(findings, Finding{
				Phrase:   rf.Phrase,
				Category: rf.Category,
				Severity: rf.Severity,
				Page:     p.Number,
				Excerpt:  scan.Excerpt(p.Text, pos, 100, 300),
				Context:  scan.SectionContext(p.Text, pos),
			})
		}
	}
	return findings
}

// Summarize counts findings by severity.
func Summarize(findings []Finding) Summary {
	s := Summary{TotalFlags: len(findings)}
	for _, f := range findings {
		switch f.Severity {
		case catalog.SeverityCritical:
			s.Critical++
		case catalog.SeverityHigh:
			s.High++
		case catalog.SeverityMedium:
			s.Medium++
		}
	}
	return s
}
