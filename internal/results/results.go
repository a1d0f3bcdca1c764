// Package results organizes raw matches into per-file groups and computes
// replacement previews.
package results

import (
	"strings"

	"github.com/standardbeagle/findsweep/internal/searchtypes"
)

// FileGroup collects the matches of one file, in arrival order
type FileGroup struct {
	Path    string
	Matches []searchtypes.Match
}

// GroupByFile buckets matches by path. Groups appear in order of each
// path's first occurrence, and matches inside a group keep their arrival
// order, so grouped output mirrors the tool's own file ordering.
func GroupByFile(matches []searchtypes.Match) []FileGroup {
	if len(matches) == 0 {
		return nil
	}

	index := make(map[string]int, len(matches))
	groups := make([]FileGroup, 0)

	for _, m := range matches {
		i, seen := index[m.Path]
		if !seen {
			i = len(groups)
			index[m.Path] = i
			groups = append(groups, FileGroup{Path: m.Path})
		}
		groups[i].Matches = append(groups[i].Matches, m)
	}

	return groups
}

// LineDiff is a before/after view of one matched line
type LineDiff struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// Preview computes the per-line effect of substituting replacement for
// pattern, without touching any file. Both operands are literal text.
// With an empty pattern or an empty replacement the after text equals the
// before text: previews are a display concern and an unset replacement
// renders as "nothing changes yet", not as deletion.
func Preview(pattern, replacement string, matches []searchtypes.Match) []LineDiff {
	diffs := make([]LineDiff, 0, len(matches))
	for _, m := range matches {
		after := m.Text
		if pattern != "" && replacement != "" {
			after = strings.ReplaceAll(m.Text, pattern, replacement)
		}
		diffs = append(diffs, LineDiff{
			Path:   m.Path,
			Line:   m.Line,
			Before: m.Text,
			After:  after,
		})
	}
	return diffs
}

// CountByFile returns the number of matches per path, keyed by path
func CountByFile(matches []searchtypes.Match) map[string]int {
	counts := make(map[string]int, len(matches))
	for _, m := range matches {
		counts[m.Path]++
	}
	return counts
}
