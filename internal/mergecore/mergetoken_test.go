package mergecore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeTextFastPaths(t *testing.T) {
	require.Equal(t, "base", MergeText("base", "base", "base"))
	require.Equal(t, "canon", MergeText("base", "base", "canon"))
	require.Equal(t, "local", MergeText("base", "local", "base"))
	require.Equal(t, "x", MergeText("base", "x", "x"))
}

func TestMergeTextEmptySides(t *testing.T) {
	require.Equal(t, "", MergeText("", "", ""))
	require.Equal(t, "canon", MergeText("base", "", "canon"))
	require.Equal(t, "local", MergeText("base", "local", ""))
}

func TestMergeTextIdempotence(t *testing.T) {
	base := "the quick brown fox"
	change := "the slow brown fox jumps"
	require.Equal(t, change, MergeText(base, change, change))
}

// TestMergeTextNonOverlappingEdits locks in testable end-to-end scenario 1.
func TestMergeTextNonOverlappingEdits(t *testing.T) {
	result := MergeText("hello world", "hello beautiful world", "hello world today")
	require.Contains(t, result, "beautiful")
	require.Contains(t, result, "today")
	require.Contains(t, result, "hello")
}

// TestMergeTextBothDeleteDistinct locks in testable end-to-end scenario 2.
func TestMergeTextBothDeleteDistinct(t *testing.T) {
	result := MergeText("one two three four", "one three four", "one two three")
	require.Equal(t, "one three", result)
}

func TestMergeTextPureInsertionsFromBothSides(t *testing.T) {
	result := MergeText("start end", "start middle end", "start end finish")
	require.Equal(t, "start middle end finish", result)
}
