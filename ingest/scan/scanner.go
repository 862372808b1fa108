package scan

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Match pairs a discovered file's path with its extracted Metadata.
type Match struct {
	Path     string
	Metadata Metadata
}

// Scanner tries a set of Patterns against a directory tree, in order, and
// deduplicates files matched by more than one pattern.
type Scanner struct {
	patterns []Pattern
}

// New builds a Scanner over the default four filename conventions.
func New() *Scanner {
	return &Scanner{patterns: DefaultPatterns()}
}

// WithPatterns builds a Scanner over a custom pattern set.
func WithPatterns(patterns []Pattern) *Scanner {
	return &Scanner{patterns: patterns}
}

// MatchFilename tries filename against every registered pattern in order,
// returning the first match.
func (s *Scanner) MatchFilename(filename string) (Metadata, bool) {
	for _, p := range s.patterns {
		if m, ok := p.Match(filename); ok {
			return m, true
		}
	}
	return Metadata{}, false
}

// ScanDirectory globs dir for every file recognized by at least one
// pattern, returning paths joined back onto dir, sorted and deduplicated.
// kindFilter, if non-nil, restricts the result to that table kind.
func (s *Scanner) ScanDirectory(dir string, kindFilter *Kind) ([]Match, error) {
	fsys := os.DirFS(dir)

	var results []Match
	seen := map[string]bool{}

	for _, p := range s.patterns {
		paths, err := doublestar.Glob(fsys, p.Glob())
		if err != nil {
			return nil, err
		}

		for _, rel := range paths {
			if seen[rel] {
				continue
			}
			filename := filepath.Base(rel)
			meta, ok := p.Match(filename)
			if !ok {
				continue
			}
			if kindFilter != nil && meta.Kind != *kindFilter {
				continue
			}
			seen[rel] = true
			results = append(results, Match{Path: filepath.Join(dir, rel), Metadata: meta})
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}
