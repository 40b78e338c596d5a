package main

import (
	"fmt"
	"os"

	"github.com/panbanda/combfino/internal/gather"
)

// getPaths returns paths from args, defaulting to ["."]
func getPaths(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

// gatherEntries walks directory arguments and parses file arguments
// directly, merging the results into a single gathered file set.
func gatherEntries(paths []string, opts gather.Options) ([]gather.Entry, error) {
	var all []gather.Entry
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if info.IsDir() {
			entries, err := gather.Walk(p, opts)
			if err != nil {
				return nil, err
			}
			all = append(all, entries...)
			continue
		}
		entries, err := gather.Files([]string{p}, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}
