package mergecore

import "fmt"

// HunkType classifies a Hunk by which sides it touches.
type HunkType int

const (
	HunkAdd HunkType = iota
	HunkDelete
	HunkModify
)

// Hunk is a contiguous edit region between two line sequences.
//
// Invariant: Type == HunkModify iff both BaseLines and ModifiedLines are non-empty; HunkDelete iff
// only BaseLines is non-empty; HunkAdd iff only ModifiedLines is non-empty. BaseEndLine and
// ModifiedEndLine are exclusive.
type Hunk struct {
	Type              HunkType
	BaseStartLine     int
	BaseEndLine       int
	ModifiedStartLine int
	ModifiedEndLine   int
	BaseLines         []string
	ModifiedLines     []string
}

// CalculateHunks computes the ordered list of line-level edit hunks between baseText and
// modifiedText: split both into lines, find their LCS, and group contiguous non-equal line
// operations into Hunks. An equal line between two changed regions always terminates the current
// Hunk.
//
// CalculateHunks(x, x) returns nil. A single changed line yields exactly one Hunk; non-adjacent
// changes yield separate Hunks; consecutive changed lines merge into one Hunk.
func CalculateHunks(baseText, modifiedText string) []Hunk {
	baseLines := SplitLines(baseText)
	modLines := SplitLines(modifiedText)
	pairs := LCSPairs(baseLines, modLines)

	var hunks []Hunk
	var baseBuf, modBuf []string
	pendingBaseStart, pendingModStart := -1, -1

	flush := func() {
		if len(baseBuf) == 0 && len(modBuf) == 0 {
			return
		}
		var t HunkType
		switch {
		case len(baseBuf) > 0 && len(modBuf) > 0:
			t = HunkModify
		case len(baseBuf) > 0:
			t = HunkDelete
		default:
			t = HunkAdd
		}
		h := Hunk{
			Type:              t,
			BaseStartLine:     pendingBaseStart,
			BaseEndLine:       pendingBaseStart + len(baseBuf),
			ModifiedStartLine: pendingModStart,
			ModifiedEndLine:   pendingModStart + len(modBuf),
		}
		if len(baseBuf) > 0 {
			h.BaseLines = append([]string(nil), baseBuf...)
		}
		if len(modBuf) > 0 {
			h.ModifiedLines = append([]string(nil), modBuf...)
		}
		hunks = append(hunks, h)
		baseBuf, modBuf = nil, nil
		pendingBaseStart, pendingModStart = -1, -1
	}

	bi, mi := 0, 0
	markStart := func() {
		if pendingBaseStart == -1 {
			pendingBaseStart, pendingModStart = bi, mi
		}
	}

	for _, p := range pairs {
		for bi < p.A {
			markStart()
			baseBuf = append(baseBuf, baseLines[bi])
			bi++
		}
		for mi < p.B {
			markStart()
			modBuf = append(modBuf, modLines[mi])
			mi++
		}
		flush()
		bi++
		mi++
	}
	for bi < len(baseLines) {
		markStart()
		baseBuf = append(baseBuf, baseLines[bi])
		bi++
	}
	for mi < len(modLines) {
		markStart()
		modBuf = append(modBuf, modLines[mi])
		mi++
	}
	flush()

	if err := validateHunks(hunks); err != nil {
		panic(fmt.Errorf("CalculateHunks: %w", err))
	}

	return hunks
}
