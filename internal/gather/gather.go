// Package gather turns a root directory (or explicit path list) into the
// sorted file set the engine groups by question: parsing the
// `qN_SIGLA.c` filename convention and, optionally, honoring .gitignore
// and caller-supplied ignore globs. This sits outside the similarity
// core — the core only ever sees a plain list of paths.
package gather

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// filenamePattern is the filename convention from spec.md §6: group 1 is
// the question number, group 2 is the author tag. Files not matching are
// silently ignored.
var filenamePattern = regexp.MustCompile(`^[qQ](\d+)[ _-]([A-Za-z0-9_-]+)\.c$`)

// Entry is one gathered, filename-parsed source file.
type Entry struct {
	Path     string
	Question int
	Author   string
}

// ParseFilename extracts the question number and author tag from a
// basename per the `^[qQ](\d+)[ _-]([A-Za-z0-9_-]+)\.c$` convention.
func ParseFilename(basename string) (question int, author string, ok bool) {
	m := filenamePattern.FindStringSubmatch(basename)
	if m == nil {
		return 0, "", false
	}
	q, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}
	return q, m[2], true
}

// Options controls directory traversal.
type Options struct {
	IgnoreGlobs []string
	Gitignore   bool
}

// Files parses an explicit list of candidate paths, silently dropping any
// whose basename doesn't match the filename convention or matches an
// ignore glob.
func Files(paths []string, opts Options) ([]Entry, error) {
	var entries []Entry
	for _, p := range paths {
		base := filepath.Base(p)
		if ignoredByGlob(base, opts.IgnoreGlobs) {
			continue
		}
		q, author, ok := ParseFilename(base)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Path: p, Question: q, Author: author})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// Walk recursively collects candidate files under root, applying
// opts.IgnoreGlobs and, if opts.Gitignore is set, the repository's
// .gitignore patterns (matched relative to root).
func Walk(root string, opts Options) ([]Entry, error) {
	var matcher gitignore.Matcher
	if opts.Gitignore {
		fs := osfs.New(root)
		patterns, err := gitignore.ReadPatterns(fs, nil)
		if err != nil {
			return nil, fmt.Errorf("reading .gitignore under %s: %w", root, err)
		}
		matcher = gitignore.NewMatcher(patterns)
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if matcher != nil && matcher.Match(splitPath(rel), false) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return Files(paths, opts)
}

func splitPath(rel string) []string {
	return strings.Split(filepath.ToSlash(rel), "/")
}

func ignoredByGlob(basename string, globs []string) bool {
	for _, g := range globs {
		if ok, err := filepath.Match(g, basename); err == nil && ok {
			return true
		}
	}
	return false
}
