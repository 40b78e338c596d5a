package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/panbanda/combfino/internal/engine"
)

// Console renders the top-N rows by composite score, descending, as a
// single table — the ordering spec.md requires for console listings
// regardless of question grouping. topN <= 0 means "no limit".
func Console(w io.Writer, rows []engine.Row, colored bool, topN int) error {
	sorted := make([]engine.Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Composite > sorted[j].Composite
	})
	if topN > 0 && topN < len(sorted) {
		sorted = sorted[:topN]
	}

	if colored {
		color.New(color.Bold).Fprintln(w, "Similarity report")
	} else {
		fmt.Fprintln(w, "Similarity report")
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}},
			Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{Left: tw.Off, Right: tw.Off, Top: tw.Off, Bottom: tw.Off},
			Settings: tw.Settings{
				Separators: tw.Separators{BetweenColumns: tw.Off},
			},
		}),
	)
	table.Header([]string{"Q", "Tag", "File", "Best match", "Score", "Status"})
	for _, r := range sorted {
		row := []string{
			questionTitle(r.Question), r.AuthorTag, r.Basename, r.BestPeerBasename,
			pct(r.Composite), string(r.Status),
		}
		if colored {
			row[5] = colorizeStatus(string(r.Status))
		}
		table.Append(row)
	}
	table.Render()
	fmt.Fprintln(w)
	return nil
}

func colorizeStatus(status string) string {
	switch status {
	case "SUSPEITO":
		return color.RedString(status)
	case "REVISAR":
		return color.YellowString(status)
	default:
		return color.GreenString(status)
	}
}
