package engine

import (
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/panbanda/combfino/internal/gather"
	"github.com/panbanda/combfino/internal/similarity"
	"github.com/panbanda/combfino/internal/status"
)

const noPeer = "—"

// scoreGroup scores every eligible pair within one question's file group
// (files already sorted by lowercase AuthorTag), selects each file's best
// peer, and computes the question's baseline. Pairs are enumerated in a
// single fixed (i<j) order so that "first seen wins" ties are well
// defined regardless of which file is i or j in a given pair.
func scoreGroup(question int, group []gather.Entry, bundles map[string]*bundle, opts Options) ([]Row, Baseline) {
	n := len(group)
	best := make([]*pairResult, n)
	var composites []float64

	for i := 0; i < n; i++ {
		bi := bundles[group[i].Path]
		if bi == nil || bi.err != nil || bi.features.TooShort {
			continue
		}
		for j := i + 1; j < n; j++ {
			if strings.EqualFold(group[i].Author, group[j].Author) {
				continue
			}
			bj := bundles[group[j].Path]
			if bj == nil || bj.err != nil || bj.features.TooShort {
				continue
			}

			breakdown := similarity.Breakdown{
				Jaccard: similarity.Jaccard(bi.shingles, bj.shingles),
				Control: similarity.EditSimilarity(bi.features.ControlStream, bj.features.ControlStream),
				Idents:  similarity.Jaccard(bi.identifiers, bj.identifiers),
				Loops:   similarity.Jaccard(bi.loops, bj.loops),
				Calls:   similarity.Jaccard(bi.calls, bj.calls),
			}
			composite := similarity.Composite(opts.Weights, breakdown)
			composites = append(composites, composite)

			if best[i] == nil || composite > best[i].composite {
				best[i] = &pairResult{peer: j, composite: composite, breakdown: breakdown}
			}
			if best[j] == nil || composite > best[j].composite {
				best[j] = &pairResult{peer: i, composite: composite, breakdown: breakdown}
			}
		}
	}

	baseline := computeBaseline(composites)

	rows := make([]Row, n)
	for i, e := range group {
		row := Row{
			Question:  question,
			AuthorTag: e.Author,
			Basename:  basename(e.Path),
		}
		b := bundles[e.Path]
		switch {
		case b == nil || b.err != nil:
			row.BestPeerBasename = noPeer
			row.Status = status.OK
			if b != nil {
				row.Error = b.err.Error()
			}
		case b.features.TooShort:
			row.BestPeerBasename = noPeer
			row.Status = status.OK
		case best[i] == nil:
			row.BestPeerBasename = noPeer
			row.Status = status.OK
		default:
			peer := best[i]
			row.BestPeerBasename = basename(group[peer.peer].Path)
			row.Composite = peer.composite
			row.Breakdown = peer.breakdown
			row.Status = status.Classify(peer.composite, peer.breakdown, opts.Threshold, opts.Policy)
			row.ZScore = zScore(peer.composite, baseline)
		}
		rows[i] = row
	}

	return rows, baseline
}

type pairResult struct {
	peer      int
	composite float64
	breakdown similarity.Breakdown
}

func computeBaseline(composites []float64) Baseline {
	if len(composites) < 1 {
		return Baseline{}
	}
	mean, std := stat.PopMeanStdDev(composites, nil)
	return Baseline{Mean: mean, StdDev: std, Pairs: len(composites), Valid: true}
}

func zScore(composite float64, baseline Baseline) *float64 {
	if !baseline.Valid || baseline.StdDev == 0 {
		return nil
	}
	z := (composite - baseline.Mean) / baseline.StdDev
	return &z
}

func basename(path string) string {
	i := strings.LastIndexAny(path, "/\\")
	if i < 0 {
		return path
	}
	return path[i+1:]
}
