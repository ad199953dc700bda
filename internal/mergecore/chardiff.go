package mergecore

import (
	"fmt"
	"strings"
)

// DiffOpKind tags a DiffOp.
type DiffOpKind int

const (
	DiffEqual DiffOpKind = iota
	DiffAdd
	DiffDelete
)

// DiffOp is one operation in a word-level diff: a run of text that is unchanged, added, or
// deleted. A valid DiffOp sequence never has two consecutive ops with the same Kind — adjacent
// same-kind ops are always merged.
type DiffOp struct {
	Kind DiffOpKind
	Text string
}

// CalculateCharDiff computes a word-level diff from oldText to newText: tokenize both sides,
// find their LCS, and emit delete/add/equal ops by walking both token streams against the LCS
// alignment.
//
// Invariants: no two consecutive ops share a Kind; concatenating the Text of ops with
// Kind in {DiffEqual, DiffAdd} reproduces newText; concatenating Text of ops with Kind in
// {DiffEqual, DiffDelete} reproduces oldText.
func CalculateCharDiff(oldText, newText string) []DiffOp {
	switch {
	case oldText == newText:
		if oldText == "" {
			return nil
		}
		return []DiffOp{{Kind: DiffEqual, Text: oldText}}
	case oldText == "":
		return []DiffOp{{Kind: DiffAdd, Text: newText}}
	case newText == "":
		return []DiffOp{{Kind: DiffDelete, Text: oldText}}
	}

	oldTokens := Tokenize(oldText)
	newTokens := Tokenize(newText)
	pairs := LCSPairs(tokenTexts(oldTokens), tokenTexts(newTokens))

	var ops []DiffOp
	oi, ni := 0, 0
	for _, p := range pairs {
		for oi < p.A {
			ops = appendDiffOp(ops, DiffDelete, oldTokens[oi].Text)
			oi++
		}
		for ni < p.B {
			ops = appendDiffOp(ops, DiffAdd, newTokens[ni].Text)
			ni++
		}
		ops = appendDiffOp(ops, DiffEqual, oldTokens[oi].Text)
		oi++
		ni++
	}
	for oi < len(oldTokens) {
		ops = appendDiffOp(ops, DiffDelete, oldTokens[oi].Text)
		oi++
	}
	for ni < len(newTokens) {
		ops = appendDiffOp(ops, DiffAdd, newTokens[ni].Text)
		ni++
	}

	if err := validateDiffOps(ops, oldText, newText); err != nil {
		panic(fmt.Errorf("CalculateCharDiff: %w", err))
	}

	return ops
}

// appendDiffOp appends (kind, text) to ops, merging into the last op if it has the same kind.
func appendDiffOp(ops []DiffOp, kind DiffOpKind, text string) []DiffOp {
	if text == "" {
		return ops
	}
	if len(ops) > 0 && ops[len(ops)-1].Kind == kind {
		ops[len(ops)-1].Text += text
		return ops
	}
	return append(ops, DiffOp{Kind: kind, Text: text})
}

// AddRange is a span of newText contributed by a DiffAdd op, as byte offsets into newText.
type AddRange struct {
	From int
	To   int
}

// DeleteMark records a DiffDelete op's text and the byte offset in newText where it would be
// reinserted (the new-side cursor position at the point the deletion occurred).
type DeleteMark struct {
	Text string
	Pos  int
}

// DiffRanges is the range-oriented view of a DiffOp sequence produced by DiffToRanges.
type DiffRanges struct {
	Additions []AddRange
	Deletions []DeleteMark
}

// DiffToRanges walks diff maintaining a new-side byte cursor: DiffEqual and DiffAdd advance it.
// Each DiffAdd records the span it occupies in newText; each DiffDelete records its text and the
// new-side position it would be reinserted at.
func DiffToRanges(diff []DiffOp) DiffRanges {
	var ranges DiffRanges
	cursor := 0
	for _, op := range diff {
		switch op.Kind {
		case DiffEqual:
			cursor += len(op.Text)
		case DiffAdd:
			from := cursor
			cursor += len(op.Text)
			ranges.Additions = append(ranges.Additions, AddRange{From: from, To: cursor})
		case DiffDelete:
			ranges.Deletions = append(ranges.Deletions, DeleteMark{Text: op.Text, Pos: cursor})
		}
	}
	return ranges
}

// BuildInlineDiffText concatenates the text of every op in order. This is a diagnostic view, not
// authoritative — it is neither oldText nor newText, but an interleaving of both.
func BuildInlineDiffText(diff []DiffOp) string {
	var b strings.Builder
	for _, op := range diff {
		b.WriteString(op.Text)
	}
	return b.String()
}
