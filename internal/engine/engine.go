// Package engine implements Stage B: grouping files by question, scoring
// every eligible pair within a group, and deriving per-file best-match
// rows plus a per-question baseline.
package engine

import (
	"context"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/panbanda/combfino/internal/cache"
	"github.com/panbanda/combfino/internal/features"
	"github.com/panbanda/combfino/internal/fileproc"
	"github.com/panbanda/combfino/internal/gather"
	"github.com/panbanda/combfino/internal/progress"
	"github.com/panbanda/combfino/internal/similarity"
	"github.com/panbanda/combfino/internal/status"
)

// Options configures both feature extraction and pairwise scoring.
type Options struct {
	features.Options
	Weights   similarity.Weights
	Threshold float64
	Policy    status.Policy
	Jobs      int
}

// Row is one file's result within its question: its best peer, composite
// score and breakdown, z-score against the question baseline, and status.
type Row struct {
	Question         int
	AuthorTag         string
	DisplayName       string
	Basename          string
	BestPeerBasename  string // "—" if the file has no valid pair
	Composite         float64
	Breakdown         similarity.Breakdown
	ZScore            *float64 // nil renders as "—"
	Status            status.Status
	Error             string
}

// Baseline is a question's pairwise composite-score statistics.
type Baseline struct {
	Mean   float64
	StdDev float64
	Pairs  int
	Valid  bool // false when there were fewer than 1 pair ("—, —")
}

// Result is everything the engine produces for a full run.
type Result struct {
	Rows      []Row
	Baselines map[int]Baseline
}

// Run gathers features for every entry (consulting and updating store),
// then groups by question and scores every eligible pair within each
// group. Stage A runs before Stage B completes so pairwise scoring always
// sees fully extracted features.
func Run(ctx context.Context, entries []gather.Entry, store *cache.Store, opts Options, tracker *progress.Tracker) (*Result, error) {
	bundleByPath, err := extractAll(ctx, entries, store, opts.Options, opts.Jobs, tracker)
	if err != nil {
		return nil, err
	}

	groups := groupByQuestion(entries)

	result := &Result{Baselines: make(map[int]Baseline)}

	type groupResult struct {
		question  int
		rows      []Row
		baseline  Baseline
	}

	p := pool.NewWithResults[groupResult]().WithMaxGoroutines(maxGroupWorkers(opts.Jobs))
	for q, group := range groups {
		q, group := q, group
		p.Go(func() groupResult {
			rows, baseline := scoreGroup(q, group, bundleByPath, opts)
			return groupResult{question: q, rows: rows, baseline: baseline}
		})
	}

	for _, gr := range p.Wait() {
		result.Rows = append(result.Rows, gr.rows...)
		result.Baselines[gr.question] = gr.baseline
	}

	sort.Slice(result.Rows, func(i, j int) bool {
		if result.Rows[i].Question != result.Rows[j].Question {
			return result.Rows[i].Question < result.Rows[j].Question
		}
		return strings.ToLower(result.Rows[i].AuthorTag) < strings.ToLower(result.Rows[j].AuthorTag)
	})

	return result, nil
}

func maxGroupWorkers(jobs int) int {
	if jobs > 0 {
		return jobs
	}
	return fileproc.DefaultWorkerMultiplier
}

// groupByQuestion partitions entries by question and drops questions with
// fewer than 2 files; each kept group is sorted by lowercase AuthorTag.
func groupByQuestion(entries []gather.Entry) map[int][]gather.Entry {
	byQ := make(map[int][]gather.Entry)
	for _, e := range entries {
		byQ[e.Question] = append(byQ[e.Question], e)
	}
	for q, group := range byQ {
		if len(group) < 2 {
			delete(byQ, q)
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			return strings.ToLower(group[i].Author) < strings.ToLower(group[j].Author)
		})
		byQ[q] = group
	}
	return byQ
}
