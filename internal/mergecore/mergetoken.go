package mergecore

import "strings"

// MergeText performs a silent three-way token-level merge: base is the common ancestor, local and
// canonical are two independently edited descendants. The result incorporates the non-overlapping
// edits of both sides; there are no conflict markers. On overlap, insertions from both sides are
// kept, and a base token removed by either side is dropped.
//
// Fast paths: all three equal returns base unchanged; local == base returns canonical; canonical
// == base returns local; local == canonical returns local.
//
// Deterministic tie-break: at a shared insertion point, canonical's insertion is emitted before
// local's. This is a contract, not an accident — see MergeWithConflicts for the line-level,
// conflict-marking counterpart.
func MergeText(base, local, canonical string) string {
	switch {
	case local == base && canonical == base:
		return base
	case local == base:
		return canonical
	case canonical == base:
		return local
	case local == canonical:
		return local
	}

	baseTokens := Tokenize(base)
	localTokens := Tokenize(local)
	canonTokens := Tokenize(canonical)

	localPairs := LCSPairs(tokenTexts(baseTokens), tokenTexts(localTokens))
	canonPairs := LCSPairs(tokenTexts(baseTokens), tokenTexts(canonTokens))

	localMap := pairMapByA(localPairs)
	canonMap := pairMapByA(canonPairs)

	var out strings.Builder
	localCursor, canonCursor := 0, 0

	for baseIdx := 0; baseIdx < len(baseTokens); baseIdx++ {
		canonIdx, cMatched := canonMap[baseIdx]
		localIdx, lMatched := localMap[baseIdx]

		if cMatched {
			for canonCursor < canonIdx {
				out.WriteString(canonTokens[canonCursor].Text)
				canonCursor++
			}
		}
		if lMatched {
			for localCursor < localIdx {
				out.WriteString(localTokens[localCursor].Text)
				localCursor++
			}
		}

		switch {
		case lMatched && cMatched:
			out.WriteString(baseTokens[baseIdx].Text)
			localCursor = localIdx + 1
			canonCursor = canonIdx + 1
		case lMatched:
			// canonical removed this base token: drop it.
			localCursor = localIdx + 1
		case cMatched:
			// local removed this base token: drop it.
			canonCursor = canonIdx + 1
		default:
			// both removed it: drop.
		}
	}

	for canonCursor < len(canonTokens) {
		out.WriteString(canonTokens[canonCursor].Text)
		canonCursor++
	}
	for localCursor < len(localTokens) {
		out.WriteString(localTokens[localCursor].Text)
		localCursor++
	}

	return out.String()
}

// pairMapByA indexes pairs by their A (first-array) coordinate, for O(1) lookup of "is baseIdx
// matched, and if so to what index in the other array."
func pairMapByA(pairs []LCSPair) map[int]int {
	m := make(map[int]int, len(pairs))
	for _, p := range pairs {
		m[p.A] = p.B
	}
	return m
}
