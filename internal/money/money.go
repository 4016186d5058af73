package money

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Placeholder tokens that mean "explicitly zero" rather than "missing".
var placeholders = map[string]bool{
	"":       true,
	"-":      true,
	"—": true, // em dash
	"–": true, // en dash
	"N/A":    true,
	"n/a":    true,
}

var nonNumeric = regexp.MustCompile(`[^\d.]`)

// Normalize converts free-form currency text into a signed value.
// Handles $1,000.00, (500), dashes-as-zero, and M/K magnitude suffixes.
// Returns nil when the text contains no parseable number; nil is a
// first-class outcome that downstream checks treat as "not applicable".
func Normalize(text string) *float64 {
	s := strings.TrimSpace(text)
	if placeholders[s] {
		zero := 0.0
		return &zero
	}

	// Parentheses denote a negative amount.
	negative := strings.Contains(s, "(") && strings.Contains(s, ")")

	cleaned := nonNumeric.ReplaceAllString(s, "")
	if cleaned == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}

	// Magnitude suffixes. "MANAGEMENT" guards against prose false
	// positives on "M"; kept as the literal substring check.
	upper := strings.ToUpper(s)
	if strings.Contains(upper, "M") && !strings.Contains(upper, "MANAGEMENT") {
		v *= 1_000_000
	} else if strings.Contains(upper, "K") {
		v *= 1_000
	}

	if negative {
		v = -v
	}
	return &v
}

// Round2 rounds to two decimal places using decimal arithmetic so that
// reported figures are exact cents, not float residue.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Format renders an amount as $1,234.56 for human-readable descriptions.
func Format(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)

	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "$" + b.String() + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
