package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/panbanda/combfino/internal/engine"
)

// studentRecord is the per-student JSON document shape, matching the
// original per-student JSON field names and nesting.
type studentRecord struct {
	Question  int             `json:"question"`
	Sigla     string          `json:"sigla"`
	Nome      string          `json:"nome,omitempty"`
	File      string          `json:"file"`
	BestWith  string          `json:"best_with"`
	Score     float64         `json:"score"`
	Breakdown breakdownRecord `json:"br"`
	Status    string          `json:"status"`
	ZScore    *float64        `json:"z_score,omitempty"`
	Error     string          `json:"error,omitempty"`
}

type breakdownRecord struct {
	Jaccard float64 `json:"jaccard"`
	Control float64 `json:"control"`
	Idents  float64 `json:"idents"`
	Loops   float64 `json:"loops"`
	Calls   float64 `json:"calls"`
}

func toStudentRecord(r engine.Row) studentRecord {
	return studentRecord{
		Question: r.Question,
		Sigla:    r.AuthorTag,
		Nome:     displayName(r),
		File:     r.Basename,
		BestWith: r.BestPeerBasename,
		Score:    r.Composite,
		Breakdown: breakdownRecord{
			Jaccard: r.Breakdown.Jaccard,
			Control: r.Breakdown.Control,
			Idents:  r.Breakdown.Idents,
			Loops:   r.Breakdown.Loops,
			Calls:   r.Breakdown.Calls,
		},
		Status: string(r.Status),
		ZScore: r.ZScore,
		Error:  r.Error,
	}
}

// WriteJSONDir writes one JSON file per student under
// <dir>/Q<NN>_per_student/<sigla>.json, mirroring the original tool's
// per-student JSON export layout.
func WriteJSONDir(dir string, rows []engine.Row) error {
	for _, r := range rows {
		qDir := filepath.Join(dir, studentDir(r.Question))
		if err := os.MkdirAll(qDir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", qDir, err)
		}
		data, err := json.MarshalIndent(toStudentRecord(r), "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling row for %s: %w", r.AuthorTag, err)
		}
		path := filepath.Join(qDir, r.AuthorTag+".json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
