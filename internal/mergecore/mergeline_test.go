package mergecore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeWithConflictsFastPaths(t *testing.T) {
	merged, has, count := MergeWithConflicts("base", "base", "base", "A", "B")
	require.Equal(t, "base", merged)
	require.False(t, has)
	require.Equal(t, 0, count)

	merged, has, count = MergeWithConflicts("base", "base", "canon", "A", "B")
	require.Equal(t, "canon", merged)
	require.False(t, has)
	require.Equal(t, 0, count)
}

// TestMergeWithConflictsConflictBlockRoundTrip locks in testable end-to-end scenario 5.
func TestMergeWithConflictsConflictBlockRoundTrip(t *testing.T) {
	base := "A\nB\nC"
	patchA := "A\nX\nC"
	patchB := "A\nY\nC"

	merged, has, count := MergeWithConflicts(base, patchA, patchB, "Alice", "Bob")
	require.True(t, has)
	require.Equal(t, 1, count)

	want := "A\n" + ConflictMarkerStart + " Alice\nX\n" + ConflictMarkerMid + "\nY\n" + ConflictMarkerEnd + " Bob\nC"
	require.Equal(t, want, merged)

	resolved := ResolveConflict(merged, 0, "A")
	require.Equal(t, "A\nX\nC", resolved)
}

func TestMergeWithConflictsNonOverlappingEditsMergeSilently(t *testing.T) {
	base := "line 1\nline 2\nline 3\nline 4\nline 5"
	patchA := "changed 1\nline 2\nline 3\nline 4\nline 5"
	patchB := "line 1\nline 2\nline 3\nline 4\nchanged 5"

	merged, has, count := MergeWithConflicts(base, patchA, patchB, "A", "B")
	require.False(t, has)
	require.Equal(t, 0, count)
	require.Equal(t, "changed 1\nline 2\nline 3\nline 4\nchanged 5", merged)
}

// TestHasConflictsSoundness locks in the conflict-free merge soundness property.
func TestHasConflictsSoundness(t *testing.T) {
	base := "line 1\nline 2\nline 3"
	patchA := "changed 1\nline 2\nline 3"
	patchB := "line 1\nline 2\nchanged 3"

	require.False(t, HasConflicts(base, patchA, patchB))

	merged, _, count := MergeWithConflicts(base, patchA, patchB, "A", "B")
	require.Equal(t, 0, count)
	require.False(t, HasUnresolvedConflicts(merged))
}

func TestResolveAllAClearsConflicts(t *testing.T) {
	base := "A\nB\nC\nD\nE"
	patchA := "A\nX\nC\nY\nE"
	patchB := "A\nZ\nC\nW\nE"

	merged, has, count := MergeWithConflicts(base, patchA, patchB, "A", "B")
	require.True(t, has)
	require.Equal(t, 2, count)

	for CountConflicts(merged) > 0 {
		merged = ResolveConflict(merged, 0, "A")
	}
	require.Equal(t, 0, CountConflicts(merged))
	require.Equal(t, patchA, merged)
}
