// Package scan implements literal phrase search over document pages:
// first-match location, bounded excerpts, and backward section-context
// recovery. All matching is case-insensitive substring search; there is
// no tokenization or fuzzy matching.
package scan

import (
	"strings"
	"unicode/utf8"

	"github.com/complyscan/complyscan/internal/document"
)

// Hit is the first location of any search term within a document.
type Hit struct {
	Found   bool   `json:"found"`
	Page    int    `json:"page,omitempty"`    // 1-based, absent when not found
	Excerpt string `json:"excerpt,omitempty"` // bounded window, absent when not found
}

// Locate scans pages in ascending order; within a page, terms are tried
// in caller order. Earlier pages dominate regardless of term order;
// among terms on the same page, the first-listed term wins even if a
// later-listed term appears earlier in the text.
func Locate(pages []document.Page, terms []string) Hit {
	for _, p := range pages {
		lower := strings.ToLower(p.Text)
		for _, term := range terms {
			if term == "" {
				continue
			}
			pos := strings.Index(lower, strings.ToLower(term))
			if pos < 0 {
				continue
			}
			return Hit{
				Found:   true,
				Page:    p.Number,
				Excerpt: Excerpt(p.Text, pos, 100, 200),
			}
		}
	}
	return Hit{}
}

// Excerpt returns the trimmed window [pos-before, pos+after], clipped
// to the text bounds. Window edges that land inside a multi-byte rune
// are widened to the nearest rune boundary so the excerpt stays valid
// UTF-8.
func Excerpt(text string, pos, before, after int) string {
	start := pos - before
	if start < 0 {
		start = 0
	}
	end := pos + after
	if end > len(text) {
		end = len(text)
	}
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}
	return strings.TrimSpace(text[start:end])
}

var contextMarkers = []string{"note ", "item ", "section "}

// SectionContext recovers which note/item/section a match at pos falls
// under: scan backward for the nearest preceding marker and take its
// line. A marker whose line never ends is skipped in favor of the next
// marker kind. Without any usable marker the context is unknown.
func SectionContext(text string, pos int) string {
	if pos < 0 {
		pos = 0
	}
	if pos > len(text) {
		pos = len(text)
	}
	lower := strings.ToLower(text)
	for _, marker := range contextMarkers {
		at := strings.LastIndex(lower[:pos], marker)
		if at < 0 {
			continue
		}
		if nl := strings.Index(text[at:], "\n"); nl >= 0 {
			return strings.TrimSpace(text[at : at+nl])
		}
	}
	return "Unknown section"
}
