// Package compare computes period-over-period changes for tables that
// carry at least two distinct year columns, with materiality judgments.
package compare

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/complyscan/complyscan/internal/document"
	"github.com/complyscan/complyscan/internal/money"
)

// Materiality thresholds: a change is material beyond either a 10%
// relative or $100,000 absolute move.
const (
	MaterialPercent  = 10
	MaterialAbsolute = 100_000
)

// Change is one adjacent-period delta. Percent is nil exactly when the
// previous-period value is zero.
type Change struct {
	Absolute  float64  `json:"absolute"`
	Percent   *float64 `json:"percent"`
	Material  bool     `json:"material"`
	Direction string   `json:"direction"`
}

// PeriodChange is the comparative record for one metric row.
type PeriodChange struct {
	Metric  string             `json:"metric"`
	Page    int                `json:"page"`
	Periods map[string]float64 `json:"periods"`
	// Changes is keyed "current_vs_previous" per adjacent period pair.
	Changes map[string]Change `json:"changes"`
}

var yearCapture = regexp.MustCompile(`(20\d{2})`)

// FromTable extracts comparative records from one table. Tables with
// fewer than two distinct year columns contribute nothing; rows with a
// label shorter than three characters or fewer than two parseable
// period values are skipped entirely.
func FromTable(page int, tbl document.Table) []PeriodChange {
	if len(tbl.Rows) < 2 {
		return nil
	}

	// Distinct years from the header; a repeated year keeps the last
	// column it appears in.
	periodCols := map[string]int{}
	for colIdx, cell := range tbl.Rows[0] {
		if m := yearCapture.FindString(cell); m != "" {
			periodCols[m] = colIdx
		}
	}
	if len(periodCols) < 2 {
		return nil
	}

	// Descending lexicographic order works for 4-digit years and
	// defines adjacency: element i is "current" to element i+1.
	sorted := make([]string, 0, len(periodCols))
	for p := range periodCols {
		sorted = append(sorted, p)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))

	var out []PeriodChange
	for _, row := range tbl.Rows[1:] {
		if len(row) < 2 {
			continue
		}
		metric := strings.TrimSpace(row[0])
		if len(metric) < 3 {
			continue
		}

		values := map[string]float64{}
		for period, colIdx := range periodCols {
			if colIdx < len(row) {
				if v := money.Normalize(row[colIdx]); v != nil {
					values[period] = *v
				}
			}
		}
		if len(values) < 2 {
			continue
		}

		changes := map[string]Change{}
		for i := 0; i < len(sorted)-1; i++ {
			current, previous := sorted[i], sorted[i+1]
			curr, okC := values[current]
			prev, okP := values[previous]
			if !okC || !okP {
				continue
			}
			changes[current+"_vs_"+previous] = newChange(curr, prev)
		}
		if len(changes) == 0 {
			continue
		}

		out = append(out, PeriodChange{
			Metric:  metric,
			Page:    page,
			Periods: values,
			Changes: changes,
		})
	}
	return out
}

func newChange(curr, prev float64) Change {
	abs := curr - prev

	// Materiality is judged on the raw percent; rounding is for output
	// only, so a 10.004% move is still material.
	material := math.Abs(abs) > MaterialAbsolute
	var pct *float64
	if prev != 0 {
		raw := (curr - prev) / math.Abs(prev) * 100
		if math.Abs(raw) > MaterialPercent {
			material = true
		}
		p := money.Round2(raw)
		pct = &p
	}

	direction := "decrease"
	if abs > 0 {
		direction = "increase"
	}

	return Change{
		Absolute:  money.Round2(abs),
		Percent:   pct,
		Material:  material,
		Direction: direction,
	}
}
