package report

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/panbanda/combfino/internal/engine"
	"github.com/panbanda/combfino/internal/similarity"
)

//go:embed template.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "template.html"))

type htmlRow struct {
	AuthorTag        string
	DisplayName      string
	Basename         string
	BestPeerBasename string
	Score            string
	Jaccard          string
	Control          string
	Idents           string
	Loops            string
	Calls            string
	Status           string
	StatusClass      string
}

type htmlQuestion struct {
	Title        string
	BaselineLine string
	Rows         []htmlRow
}

type htmlPage struct {
	RootLabel   string
	GeneratedAt string
	WeightsJSON string
	Questions   []htmlQuestion
}

// WriteHTML renders one section per question, each with its baseline and
// a table of rows sorted by AuthorTag, matching the original tool's
// per-question HTML sectioning.
func WriteHTML(w io.Writer, rootLabel, generatedAt string, rows []engine.Row, baselines map[int]engine.Baseline, weights similarity.Weights) error {
	weightsJSON, err := json.Marshal(map[string]float64{
		"jaccard": weights.Jaccard, "control": weights.Control,
		"idents": weights.Idents, "loops": weights.Loops, "calls": weights.Calls,
	})
	if err != nil {
		return fmt.Errorf("marshaling weights: %w", err)
	}

	grouped := byQuestion(rows)
	page := htmlPage{RootLabel: rootLabel, GeneratedAt: generatedAt, WeightsJSON: string(weightsJSON)}

	for _, q := range sortedQuestions(grouped) {
		hq := htmlQuestion{Title: questionTitle(q), BaselineLine: baselineLine(baselines[q])}
		for _, r := range grouped[q] {
			hq.Rows = append(hq.Rows, htmlRow{
				AuthorTag:        r.AuthorTag,
				DisplayName:      displayName(r),
				Basename:         r.Basename,
				BestPeerBasename: r.BestPeerBasename,
				Score:            pct(r.Composite),
				Jaccard:          pct(r.Breakdown.Jaccard),
				Control:          pct(r.Breakdown.Control),
				Idents:           pct(r.Breakdown.Idents),
				Loops:            pct(r.Breakdown.Loops),
				Calls:            pct(r.Breakdown.Calls),
				Status:           string(r.Status),
				StatusClass:      statusClass(string(r.Status)),
			})
		}
		page.Questions = append(page.Questions, hq)
	}

	return pageTemplate.Execute(w, page)
}
