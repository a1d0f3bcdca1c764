package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/findsweep/internal/searchtypes"
)

func TestGroupByFilePreservesOrder(t *testing.T) {
	matches := []searchtypes.Match{
		{Path: "b.go", Line: 3, Column: 1, Text: "first in b"},
		{Path: "a.go", Line: 1, Column: 1, Text: "first in a"},
		{Path: "b.go", Line: 9, Column: 4, Text: "second in b"},
		{Path: "a.go", Line: 7, Column: 2, Text: "second in a"},
	}

	groups := GroupByFile(matches)
	require.Len(t, groups, 2)

	// First-occurrence order: b.go arrived before a.go.
	assert.Equal(t, "b.go", groups[0].Path)
	assert.Equal(t, "a.go", groups[1].Path)

	require.Len(t, groups[0].Matches, 2)
	assert.Equal(t, 3, groups[0].Matches[0].Line)
	assert.Equal(t, 9, groups[0].Matches[1].Line)

	require.Len(t, groups[1].Matches, 2)
	assert.Equal(t, 1, groups[1].Matches[0].Line)
	assert.Equal(t, 7, groups[1].Matches[1].Line)
}

func TestGroupByFileEmpty(t *testing.T) {
	assert.Nil(t, GroupByFile(nil))
	assert.Nil(t, GroupByFile([]searchtypes.Match{}))
}

func TestPreviewSubstitution(t *testing.T) {
	matches := []searchtypes.Match{
		{Path: "main.go", Line: 4, Column: 1, Text: "oldName := oldName + 1"},
	}

	diffs := Preview("oldName", "newName", matches)
	require.Len(t, diffs, 1)
	assert.Equal(t, "oldName := oldName + 1", diffs[0].Before)
	assert.Equal(t, "newName := newName + 1", diffs[0].After)
	assert.Equal(t, "main.go", diffs[0].Path)
	assert.Equal(t, 4, diffs[0].Line)
}

func TestPreviewEmptyReplacementIsVisualNoop(t *testing.T) {
	matches := []searchtypes.Match{
		{Path: "x.go", Line: 1, Text: "debugPrint(x)"},
	}

	diffs := Preview("debugPrint", "", matches)
	require.Len(t, diffs, 1)
	assert.Equal(t, diffs[0].Before, diffs[0].After)
}

func TestPreviewLiteralOperands(t *testing.T) {
	matches := []searchtypes.Match{
		{Path: "x.go", Line: 1, Text: "a.b matched a.b"},
	}

	// Dots are literal, not regex wildcards.
	diffs := Preview("a.b", "c", matches)
	require.Len(t, diffs, 1)
	assert.Equal(t, "c matched c", diffs[0].After)

	diffs = Preview("axb", "c", matches)
	assert.Equal(t, "a.b matched a.b", diffs[0].After)
}

func TestCountByFile(t *testing.T) {
	matches := []searchtypes.Match{
		{Path: "a.go"},
		{Path: "b.go"},
		{Path: "a.go"},
	}

	counts := CountByFile(matches)
	assert.Equal(t, map[string]int{"a.go": 2, "b.go": 1}, counts)
}
