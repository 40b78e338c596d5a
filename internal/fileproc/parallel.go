// Package fileproc runs Stage A of the engine: parallel, stateless feature
// extraction over the cache-miss set. Workers share no mutable state; the
// cache itself stays single-writer and is never exposed to them — callers
// stat and consult the cache single-threaded, hand this package only the
// paths that missed, and fold the results back in afterward.
package fileproc

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/panbanda/combfino/internal/cache"
	"github.com/panbanda/combfino/internal/features"
	"github.com/panbanda/combfino/internal/progress"
)

// DefaultWorkerMultiplier sizes the pool from hardware parallelism when the
// caller asks for auto-sizing (jobs == 0).
const DefaultWorkerMultiplier = 2

// Result is one file's extraction outcome.
type Result struct {
	Path     string
	Key      cache.Key
	Features features.Features
	Err      error
}

// ProcessingError is a single file's I/O or extraction failure.
type ProcessingError struct {
	Path string
	Err  error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// ProcessingErrors is a thread-safe collector of ProcessingError values;
// per-file errors never abort the batch.
type ProcessingErrors struct {
	mu   sync.Mutex
	errs []*ProcessingError
}

func (p *ProcessingErrors) add(e *ProcessingError) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs = append(p.errs, e)
}

// Errors returns every collected error.
func (p *ProcessingErrors) Errors() []*ProcessingError {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*ProcessingError, len(p.errs))
	copy(out, p.errs)
	return out
}

// Len reports how many errors were collected.
func (p *ProcessingErrors) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.errs)
}

// Error implements error, summarizing every collected failure.
func (p *ProcessingErrors) Error() string {
	errs := p.Errors()
	if len(errs) == 0 {
		return ""
	}
	msg := fmt.Sprintf("%d file(s) failed extraction:", len(errs))
	for _, e := range errs {
		msg += "\n  " + e.Error()
	}
	return msg
}

// Extract runs Stage A over paths — the cache-miss set the caller has
// already computed — reading and extracting each file on a bounded worker
// pool. jobs <= 0 auto-sizes from runtime.NumCPU. A per-file I/O or
// extraction failure is recorded in the returned ProcessingErrors and the
// file's Result carries the same error; the batch continues regardless.
func Extract(ctx context.Context, paths []string, opts features.Options, jobs int, tracker *progress.Tracker) ([]Result, *ProcessingErrors) {
	maxWorkers := jobs
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU() * DefaultWorkerMultiplier
	}

	errs := &ProcessingErrors{}
	p := pool.NewWithResults[Result]().WithMaxGoroutines(maxWorkers).WithContext(ctx)

	for _, path := range paths {
		p.Go(func(ctx context.Context) (Result, error) {
			res := extractOne(path, opts)
			if res.Err != nil {
				errs.add(&ProcessingError{Path: path, Err: res.Err})
			}
			if tracker != nil {
				tracker.Tick()
			}
			return res, nil
		})
	}

	results, _ := p.Wait()
	return results, errs
}

func extractOne(path string, opts features.Options) Result {
	info, err := os.Stat(path)
	if err != nil {
		return Result{Path: path, Err: fmt.Errorf("stat: %w", err)}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Result{Path: path, Err: fmt.Errorf("read: %w", err)}
	}

	key := cache.Key{Path: path, MTimeNS: info.ModTime().UnixNano(), Size: info.Size()}
	f := features.Extract(raw, opts)
	return Result{Path: path, Key: key, Features: *f}
}

// StatKey stats path and returns its current cache key, for the
// coordinator's single-threaded hit/miss split before Stage A runs.
func StatKey(path string) (cache.Key, error) {
	info, err := os.Stat(path)
	if err != nil {
		return cache.Key{}, fmt.Errorf("stat: %w", err)
	}
	return cache.Key{Path: path, MTimeNS: info.ModTime().UnixNano(), Size: info.Size()}, nil
}
