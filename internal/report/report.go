// Package report renders engine results to console, HTML, CSV, and
// per-student JSON — the three file formats and the console table the
// CLI can produce from a single analyze run.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/panbanda/combfino/internal/engine"
)

// byQuestion groups rows by question number, each already sorted by
// lowercase AuthorTag (the order engine.Run guarantees).
func byQuestion(rows []engine.Row) map[int][]engine.Row {
	out := make(map[int][]engine.Row)
	for _, r := range rows {
		out[r.Question] = append(out[r.Question], r)
	}
	return out
}

func sortedQuestions(byQ map[int][]engine.Row) []int {
	qs := make([]int, 0, len(byQ))
	for q := range byQ {
		qs = append(qs, q)
	}
	sort.Ints(qs)
	return qs
}

func studentDir(question int) string {
	return fmt.Sprintf("Q%02d_per_student", question)
}

func questionTitle(question int) string {
	return fmt.Sprintf("Q%02d", question)
}

func pct(x float64) string {
	return fmt.Sprintf("%.1f%%", x*100)
}

func baselineLine(b engine.Baseline) string {
	if !b.Valid {
		return "Baseline (composite score) — insufficient pairs"
	}
	return fmt.Sprintf("Baseline (composite score) — mean=%.3f; stddev=%.3f (n=%d pairs)", b.Mean, b.StdDev, b.Pairs)
}

func displayName(r engine.Row) string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return ""
}

func statusClass(s string) string {
	switch strings.ToUpper(s) {
	case "SUSPEITO":
		return "bad"
	case "REVISAR":
		return "mid"
	default:
		return "good"
	}
}
