package mergecore

import "strings"

// MergeWithConflicts performs a line-level three-way merge that marks genuine overlaps instead of
// silently resolving them. Fast paths mirror MergeText exactly, but over whole-string equality of
// base/patchA/patchB.
//
// Algorithm: base lines matched by both patchA and patchB (relative to base) serve as
// synchronization anchors. Between two consecutive anchors, the "gap" on each side is compared:
// if A's gap equals B's gap, or either side's gap equals base's own gap there (that side made no
// change), the result is taken without a marker. Only when both sides changed the same gap, and
// disagree, is a conflict block emitted.
func MergeWithConflicts(base, patchA, patchB, labelA, labelB string) (merged string, hasConflicts bool, conflictCount int) {
	switch {
	case patchA == base && patchB == base:
		return base, false, 0
	case patchA == base:
		return patchB, false, 0
	case patchB == base:
		return patchA, false, 0
	case patchA == patchB:
		return patchA, false, 0
	}

	baseLines := SplitLines(base)
	aLines := SplitLines(patchA)
	bLines := SplitLines(patchB)

	pairsA := pairMapByA(LCSPairs(baseLines, aLines))
	pairsB := pairMapByA(LCSPairs(baseLines, bLines))

	var anchors []int
	for i := range baseLines {
		if _, ok := pairsA[i]; !ok {
			continue
		}
		if _, ok := pairsB[i]; ok {
			anchors = append(anchors, i)
		}
	}

	var out []string
	conflicts := 0

	processGap := func(baseGap, gapA, gapB []string) {
		switch {
		case linesEqual(gapA, gapB):
			out = append(out, gapA...)
		case linesEqual(baseGap, gapA):
			out = append(out, gapB...)
		case linesEqual(baseGap, gapB):
			out = append(out, gapA...)
		default:
			conflicts++
			out = append(out, formatConflictBlock(labelA, labelB, gapA, gapB)...)
		}
	}

	prevBase, prevA, prevB := -1, -1, -1
	for _, anchor := range anchors {
		aIdx := pairsA[anchor]
		bIdx := pairsB[anchor]
		processGap(baseLines[prevBase+1:anchor], aLines[prevA+1:aIdx], bLines[prevB+1:bIdx])
		out = append(out, baseLines[anchor])
		prevBase, prevA, prevB = anchor, aIdx, bIdx
	}
	processGap(baseLines[prevBase+1:], aLines[prevA+1:], bLines[prevB+1:])

	merged = strings.Join(out, "\n")
	return merged, conflicts > 0, conflicts
}

// linesEqual compares two line slices for exact equality.
func linesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// HasConflicts reports whether merging base against patchA and patchB would produce any conflict
// block, without requiring the caller to run MergeWithConflicts and inspect its result themselves.
func HasConflicts(base, patchA, patchB string) bool {
	_, hasConflicts, _ := MergeWithConflicts(base, patchA, patchB, "A", "B")
	return hasConflicts
}
