package mergecore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLCSPairsIdentity(t *testing.T) {
	a := []string{"a", "b", "c", "d"}
	pairs := LCSPairs(a, a)
	want := []LCSPair{{0, 0}, {1, 1}, {2, 2}, {3, 3}}
	require.Equal(t, want, pairs)
}

func TestLCSPairsEmpty(t *testing.T) {
	require.Nil(t, LCSPairs(nil, nil))
	require.Nil(t, LCSPairs([]string{"a"}, nil))
	require.Nil(t, LCSPairs(nil, []string{"a"}))
}

func TestLCSPairsLengthBoundedByShorterInput(t *testing.T) {
	a := []string{"a", "b", "c"}
	b := []string{"x", "a", "y", "b", "z", "c", "w"}
	pairs := LCSPairs(a, b)
	require.LessOrEqual(t, len(pairs), len(a))
	require.LessOrEqual(t, len(pairs), len(b))
	require.Equal(t, 3, len(pairs)) // a, b, c all appear in order in b
}

func TestLCSPairsAscending(t *testing.T) {
	a := []string{"x", "m", "y", "n", "z"}
	b := []string{"m", "p", "n", "q"}
	pairs := LCSPairs(a, b)
	for i := 1; i < len(pairs); i++ {
		require.Greater(t, pairs[i].A, pairs[i-1].A)
		require.Greater(t, pairs[i].B, pairs[i-1].B)
	}
}

// TestLCSPairsTieBreak locks in the >= tie-break: at a mismatch, UP (consuming an a-token first)
// is preferred whenever dp[i-1][j] >= dp[i][j-1]. This changes which common subsequence is
// reported when several of the same maximal length exist.
func TestLCSPairsTieBreak(t *testing.T) {
	a := []string{"x", "y"}
	b := []string{"y", "x"}
	pairs := LCSPairs(a, b)
	require.Len(t, pairs, 1)
	// Either "x" (A:0,B:1) or "y" (A:1,B:0) has length 1; the >= tie-break deterministically picks "x".
	require.Equal(t, LCSPair{A: 0, B: 1}, pairs[0])
}

// TestLCSPairsLargeInputUsesRollingPath exercises the n*m > lcsTableCellBudget branch.
func TestLCSPairsLargeInputUsesRollingPath(t *testing.T) {
	n := 150
	a := make([]string, n)
	b := make([]string, n)
	for i := range a {
		a[i] = "line"
		b[i] = "line"
	}
	require.Greater(t, n*n, lcsTableCellBudget)
	pairs := LCSPairs(a, b)
	require.Len(t, pairs, n)
	for i, p := range pairs {
		require.Equal(t, LCSPair{A: i, B: i}, p)
	}
}

func TestLCSPairsLargeInputWithGaps(t *testing.T) {
	n := 120
	a := make([]string, n)
	for i := range a {
		a[i] = "common"
	}
	a[10] = "onlyInA"
	b := make([]string, n)
	for i := range b {
		b[i] = "common"
	}
	b[50] = "onlyInB"

	require.Greater(t, n*n, lcsTableCellBudget)
	pairs := LCSPairs(a, b)
	require.Equal(t, n-1, len(pairs))
}
