package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/panbanda/combfino/internal/engine"
)

var csvHeader = []string{
	"question", "sigla", "nome", "file", "best_with",
	"score", "jaccard", "control", "idents", "loops", "calls", "status",
}

// WriteCSV writes one row per file, in the same column order as the
// original tool's CSV export.
func WriteCSV(w io.Writer, rows []engine.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			fmt.Sprintf("%d", r.Question),
			r.AuthorTag,
			displayName(r),
			r.Basename,
			r.BestPeerBasename,
			fmt.Sprintf("%.6f", r.Composite),
			fmt.Sprintf("%.6f", r.Breakdown.Jaccard),
			fmt.Sprintf("%.6f", r.Breakdown.Control),
			fmt.Sprintf("%.6f", r.Breakdown.Idents),
			fmt.Sprintf("%.6f", r.Breakdown.Loops),
			fmt.Sprintf("%.6f", r.Breakdown.Calls),
			string(r.Status),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row for %s: %w", r.Basename, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
