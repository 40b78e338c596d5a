package engine

import (
	"context"
	"fmt"

	"github.com/panbanda/combfino/internal/cache"
	"github.com/panbanda/combfino/internal/features"
	"github.com/panbanda/combfino/internal/fileproc"
	"github.com/panbanda/combfino/internal/gather"
	"github.com/panbanda/combfino/internal/progress"
	"github.com/panbanda/combfino/internal/similarity"
)

// bundle is a file's features plus the IDSets built once for reuse across
// every pair it participates in.
type bundle struct {
	features    features.Features
	err         error
	shingles    *similarity.IDSet
	identifiers *similarity.IDSet
	calls       *similarity.IDSet
	loops       *similarity.IDSet
}

// extractAll stats every entry single-threaded to split hits from misses
// (the cache's single-writer rule), runs Stage A over the miss set only,
// folds the results back into store, and builds each file's reusable
// IDSets.
func extractAll(ctx context.Context, entries []gather.Entry, store *cache.Store, opts features.Options, jobs int, tracker *progress.Tracker) (map[string]*bundle, error) {
	bundles := make(map[string]*bundle, len(entries))

	var misses []string
	for _, e := range entries {
		key, err := fileproc.StatKey(e.Path)
		if err != nil {
			bundles[e.Path] = &bundle{err: fmt.Errorf("stat %s: %w", e.Path, err)}
			continue
		}
		if f, ok := store.Get(key); ok {
			bundles[e.Path] = newBundle(f)
			continue
		}
		misses = append(misses, e.Path)
	}

	if tracker == nil && len(misses) > 0 {
		tracker = progress.NewTracker("extracting features", len(misses))
	}

	results, _ := fileproc.Extract(ctx, misses, opts, jobs, tracker)
	if tracker != nil {
		tracker.FinishSuccess()
	}

	for _, res := range results {
		if res.Err != nil {
			bundles[res.Path] = &bundle{err: res.Err}
			continue
		}
		store.Put(res.Key, res.Features)
		bundles[res.Path] = newBundle(res.Features)
	}

	return bundles, nil
}

func newBundle(f features.Features) *bundle {
	b := &bundle{features: f}
	if f.TooShort {
		return b
	}
	b.shingles = similarity.NewIDSet(f.Shingles)
	b.identifiers = similarity.NewIDSet(f.Identifiers)
	b.calls = similarity.NewIDSet(f.Calls)
	b.loops = similarity.NewIDSet(f.LoopSignatures)
	return b
}
